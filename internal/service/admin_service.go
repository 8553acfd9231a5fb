package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"stagelink/backend/internal/dto"
	"stagelink/backend/internal/model"
	"stagelink/backend/internal/repository"
)

// ── 账户管理模块业务错误 ──

var (
	ErrSupervisorNotFound   = errors.New("责任教师不存在")
	ErrSecretaryNotFound    = errors.New("秘书不存在")
	ErrSecretaryUnavailable = errors.New("无权执行秘书职能")
)

// AdminService 账户管理业务接口（秘书/管理员，及代行秘书职能的教师）
type AdminService interface {
	// CanActAsSecretary 秘书职能授权：秘书与管理员恒可；
	// 持秘书权限的教师仅在全部秘书休假期间可代行
	CanActAsSecretary(ctx context.Context, callerID, callerRole string) (bool, error)
	CreateSupervisor(ctx context.Context, callerID string, req *dto.CreateSupervisorRequest) (*dto.SupervisorResponse, error)
	CreateSecretary(ctx context.Context, callerID string, req *dto.CreateSecretaryRequest) (*dto.SecretaryResponse, error)
	CreateStudent(ctx context.Context, callerID string, req *dto.CreateStudentRequest) (*dto.StudentResponse, error)
	SetSecretaryLeave(ctx context.Context, secretaryID string, onLeave bool) (*dto.SecretaryResponse, error)
	SetSupervisorSecretaryRights(ctx context.Context, supervisorID string, rights bool) (*dto.SupervisorResponse, error)
	SetCompanyActive(ctx context.Context, companyID string, active bool) (*dto.CompanyResponse, error)
	ListSupervisors(ctx context.Context, req *dto.PaginationRequest) ([]dto.SupervisorResponse, int64, error)
	ListSecretaries(ctx context.Context, req *dto.PaginationRequest) ([]dto.SecretaryResponse, int64, error)
}

type adminService struct {
	repo         *repository.Repository
	notification NotificationService
	logger       *zap.Logger
}

// NewAdminService 创建 AdminService 实例
func NewAdminService(repo *repository.Repository, notification NotificationService, logger *zap.Logger) AdminService {
	return &adminService{repo: repo, notification: notification, logger: logger}
}

func (s *adminService) CanActAsSecretary(ctx context.Context, callerID, callerRole string) (bool, error) {
	switch callerRole {
	case model.RoleSecretary, model.RoleAdmin:
		return true, nil
	case model.RoleSupervisor:
		supervisor, err := s.repo.Supervisor.GetByID(ctx, callerID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return false, nil
			}
			return false, err
		}
		if !supervisor.SecretaryRights {
			return false, nil
		}
		available, err := s.repo.Secretary.CountAvailable(ctx)
		if err != nil {
			return false, err
		}
		return available == 0, nil
	}
	return false, nil
}

func (s *adminService) createUser(ctx context.Context, txRepo *repository.Repository, email, password, role, callerID string) (*model.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user := &model.User{
		UserID:       uuid.New().String(),
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
	}
	user.CreatedBy = &callerID
	return user, txRepo.User.Create(ctx, user)
}

func (s *adminService) checkEmailFree(ctx context.Context, email string) error {
	if _, err := s.repo.User.GetByEmail(ctx, email); err == nil {
		return ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("查询用户失败", zap.Error(err))
		return err
	}
	return nil
}

func (s *adminService) CreateSupervisor(ctx context.Context, callerID string, req *dto.CreateSupervisorRequest) (*dto.SupervisorResponse, error) {
	if err := s.checkEmailFree(ctx, req.Email); err != nil {
		return nil, err
	}

	var supervisor *model.Supervisor
	err := s.repo.Transaction(ctx, func(txRepo *repository.Repository) error {
		user, err := s.createUser(ctx, txRepo, req.Email, req.Password, model.RoleSupervisor, callerID)
		if err != nil {
			return err
		}
		supervisor = &model.Supervisor{
			UserID:          user.UserID,
			LastName:        req.LastName,
			FirstName:       req.FirstName,
			SecretaryRights: req.SecretaryRights,
		}
		supervisor.CreatedBy = &callerID
		supervisor.User = user
		return txRepo.Supervisor.Create(ctx, supervisor)
	})
	if err != nil {
		s.logger.Error("创建责任教师账户失败", zap.Error(err))
		return nil, err
	}
	return buildSupervisorResponse(supervisor), nil
}

func (s *adminService) CreateSecretary(ctx context.Context, callerID string, req *dto.CreateSecretaryRequest) (*dto.SecretaryResponse, error) {
	if err := s.checkEmailFree(ctx, req.Email); err != nil {
		return nil, err
	}

	var secretary *model.Secretary
	err := s.repo.Transaction(ctx, func(txRepo *repository.Repository) error {
		user, err := s.createUser(ctx, txRepo, req.Email, req.Password, model.RoleSecretary, callerID)
		if err != nil {
			return err
		}
		secretary = &model.Secretary{
			UserID:    user.UserID,
			LastName:  req.LastName,
			FirstName: req.FirstName,
		}
		secretary.CreatedBy = &callerID
		secretary.User = user
		return txRepo.Secretary.Create(ctx, secretary)
	})
	if err != nil {
		s.logger.Error("创建秘书账户失败", zap.Error(err))
		return nil, err
	}
	return buildSecretaryResponse(secretary), nil
}

// CreateStudent 秘书代建学生账户，记录经办人
func (s *adminService) CreateStudent(ctx context.Context, callerID string, req *dto.CreateStudentRequest) (*dto.StudentResponse, error) {
	if err := s.checkEmailFree(ctx, req.Email); err != nil {
		return nil, err
	}
	if _, err := s.repo.Student.GetByStudentNumber(ctx, req.StudentNumber); err == nil {
		return nil, ErrStudentNumberTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("查询学生档案失败", zap.Error(err))
		return nil, err
	}

	var birthDate *time.Time
	if req.BirthDate != "" {
		t, _ := time.Parse(dateLayout, req.BirthDate)
		birthDate = &t
	}

	var student *model.Student
	err := s.repo.Transaction(ctx, func(txRepo *repository.Repository) error {
		user, err := s.createUser(ctx, txRepo, req.Email, req.Password, model.RoleStudent, callerID)
		if err != nil {
			return err
		}
		student = &model.Student{
			UserID:           user.UserID,
			StudentNumber:    req.StudentNumber,
			LastName:         req.LastName,
			FirstName:        req.FirstName,
			BirthDate:        birthDate,
			Program:          req.Program,
			ProgramYear:      req.ProgramYear,
			SearchStatus:     model.StudentSearching,
			AccountCreatorID: &callerID,
		}
		student.CreatedBy = &callerID
		student.User = user
		return txRepo.Student.Create(ctx, student)
	})
	if err != nil {
		s.logger.Error("创建学生账户失败", zap.Error(err))
		return nil, err
	}
	return buildStudentResponse(student), nil
}

func (s *adminService) SetSecretaryLeave(ctx context.Context, secretaryID string, onLeave bool) (*dto.SecretaryResponse, error) {
	secretary, err := s.repo.Secretary.GetByID(ctx, secretaryID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSecretaryNotFound
		}
		s.logger.Error("查询秘书失败", zap.Error(err))
		return nil, err
	}

	if err := s.repo.Secretary.SetOnLeave(ctx, secretaryID, onLeave); err != nil {
		s.logger.Error("设置秘书休假状态失败", zap.Error(err))
		return nil, err
	}
	secretary.OnLeave = onLeave
	return buildSecretaryResponse(secretary), nil
}

func (s *adminService) SetSupervisorSecretaryRights(ctx context.Context, supervisorID string, rights bool) (*dto.SupervisorResponse, error) {
	supervisor, err := s.repo.Supervisor.GetByID(ctx, supervisorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSupervisorNotFound
		}
		s.logger.Error("查询责任教师失败", zap.Error(err))
		return nil, err
	}

	supervisor.SecretaryRights = rights
	if err := s.repo.Supervisor.Update(ctx, supervisor); err != nil {
		s.logger.Error("更新责任教师失败", zap.Error(err))
		return nil, err
	}
	return buildSupervisorResponse(supervisor), nil
}

func (s *adminService) SetCompanyActive(ctx context.Context, companyID string, active bool) (*dto.CompanyResponse, error) {
	company, err := s.repo.Company.GetByID(ctx, companyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCompanyNotFound
		}
		s.logger.Error("查询企业档案失败", zap.Error(err))
		return nil, err
	}

	if err := s.repo.Company.SetActive(ctx, companyID, active); err != nil {
		s.logger.Error("切换企业启停失败", zap.Error(err))
		return nil, err
	}
	company.IsActive = active

	if !active {
		s.notification.Notify(ctx, companyID, "账户已停用",
			"您的企业账户已被停用，如有疑问请联系教学秘书。")
	}
	return buildCompanyResponse(company), nil
}

func (s *adminService) ListSupervisors(ctx context.Context, req *dto.PaginationRequest) ([]dto.SupervisorResponse, int64, error) {
	supervisors, total, err := s.repo.Supervisor.List(ctx, req.GetOffset(), req.GetPageSize())
	if err != nil {
		s.logger.Error("查询责任教师列表失败", zap.Error(err))
		return nil, 0, err
	}

	items := make([]dto.SupervisorResponse, 0, len(supervisors))
	for i := range supervisors {
		items = append(items, *buildSupervisorResponse(&supervisors[i]))
	}
	return items, total, nil
}

func (s *adminService) ListSecretaries(ctx context.Context, req *dto.PaginationRequest) ([]dto.SecretaryResponse, int64, error) {
	secretaries, total, err := s.repo.Secretary.List(ctx, req.GetOffset(), req.GetPageSize())
	if err != nil {
		s.logger.Error("查询秘书列表失败", zap.Error(err))
		return nil, 0, err
	}

	items := make([]dto.SecretaryResponse, 0, len(secretaries))
	for i := range secretaries {
		items = append(items, *buildSecretaryResponse(&secretaries[i]))
	}
	return items, total, nil
}
