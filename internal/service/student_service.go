package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"stagelink/backend/internal/dto"
	"stagelink/backend/internal/repository"
)

var ErrStudentNotFound = errors.New("学生档案不存在")

// StudentService 学生档案业务接口
type StudentService interface {
	GetProfile(ctx context.Context, studentID string) (*dto.StudentResponse, error)
	UpdateProfile(ctx context.Context, studentID, callerID string, req *dto.UpdateStudentRequest) (*dto.StudentResponse, error)
	// 秘书确认学生责任保险
	ValidateInsurance(ctx context.Context, studentID, validatorID string) (*dto.StudentResponse, error)
	List(ctx context.Context, req *dto.StudentListRequest) ([]dto.StudentResponse, int64, error)
	// 企业浏览：仅档案可见的学生
	ListVisible(ctx context.Context, req *dto.StudentListRequest) ([]dto.StudentResponse, int64, error)
}

type studentService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewStudentService 创建 StudentService 实例
func NewStudentService(repo *repository.Repository, logger *zap.Logger) StudentService {
	return &studentService{repo: repo, logger: logger}
}

func (s *studentService) GetProfile(ctx context.Context, studentID string) (*dto.StudentResponse, error) {
	student, err := s.repo.Student.GetByID(ctx, studentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStudentNotFound
		}
		s.logger.Error("查询学生档案失败", zap.Error(err))
		return nil, err
	}
	return buildStudentResponse(student), nil
}

func (s *studentService) UpdateProfile(ctx context.Context, studentID, callerID string, req *dto.UpdateStudentRequest) (*dto.StudentResponse, error) {
	student, err := s.repo.Student.GetByID(ctx, studentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStudentNotFound
		}
		s.logger.Error("查询学生档案失败", zap.Error(err))
		return nil, err
	}

	if req.LastName != nil {
		student.LastName = *req.LastName
	}
	if req.FirstName != nil {
		student.FirstName = *req.FirstName
	}
	if req.BirthDate != nil {
		t, _ := time.Parse(dateLayout, *req.BirthDate)
		student.BirthDate = &t
	}
	if req.Program != nil {
		student.Program = *req.Program
	}
	if req.ProgramYear != nil {
		student.ProgramYear = *req.ProgramYear
	}
	if req.Visible != nil {
		student.Visible = *req.Visible
	}
	student.UpdatedBy = &callerID

	if err := s.repo.Student.Update(ctx, student); err != nil {
		s.logger.Error("更新学生档案失败", zap.Error(err))
		return nil, err
	}
	return buildStudentResponse(student), nil
}

func (s *studentService) ValidateInsurance(ctx context.Context, studentID, validatorID string) (*dto.StudentResponse, error) {
	student, err := s.repo.Student.GetByID(ctx, studentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStudentNotFound
		}
		s.logger.Error("查询学生档案失败", zap.Error(err))
		return nil, err
	}

	student.LiabilityInsurance = true
	student.InsuranceValidatorID = &validatorID
	student.UpdatedBy = &validatorID

	if err := s.repo.Student.Update(ctx, student); err != nil {
		s.logger.Error("确认责任保险失败", zap.Error(err))
		return nil, err
	}
	return buildStudentResponse(student), nil
}

func (s *studentService) List(ctx context.Context, req *dto.StudentListRequest) ([]dto.StudentResponse, int64, error) {
	filter := repository.StudentFilter{
		SearchStatus: req.SearchStatus,
		Program:      req.Program,
		Keyword:      req.Keyword,
	}
	return s.list(ctx, filter, req)
}

func (s *studentService) ListVisible(ctx context.Context, req *dto.StudentListRequest) ([]dto.StudentResponse, int64, error) {
	filter := repository.StudentFilter{
		SearchStatus: req.SearchStatus,
		Program:      req.Program,
		Keyword:      req.Keyword,
		VisibleOnly:  true,
	}
	return s.list(ctx, filter, req)
}

func (s *studentService) list(ctx context.Context, filter repository.StudentFilter, req *dto.StudentListRequest) ([]dto.StudentResponse, int64, error) {
	students, total, err := s.repo.Student.List(ctx, filter, req.GetOffset(), req.GetPageSize())
	if err != nil {
		s.logger.Error("查询学生列表失败", zap.Error(err))
		return nil, 0, err
	}

	items := make([]dto.StudentResponse, 0, len(students))
	for i := range students {
		items = append(items, *buildStudentResponse(&students[i]))
	}
	return items, total, nil
}
