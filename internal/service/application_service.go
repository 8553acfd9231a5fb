package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"stagelink/backend/internal/dto"
	"stagelink/backend/internal/model"
	"stagelink/backend/internal/repository"
	pkgerrors "stagelink/backend/pkg/errors"
)

// ── 申请模块业务错误 ──

var (
	ErrApplicationNotFound     = errors.New("申请不存在")
	ErrApplicationNotOwned     = errors.New("无权操作他人的申请")
	ErrDuplicateApplication    = errors.New("已对该机会提交过申请")
	ErrStudentAlreadyPlaced    = errors.New("学生已获得分配，不可再申请")
	ErrApplicationTerminal     = errors.New("申请已处于终态，不可再变更")
	ErrApplicationNotSubmitted = errors.New("申请不在待企业处理状态")
	ErrApplicationNotAccepted  = errors.New("申请不在待教师终审状态")
)

// 级联改写时写入的理由
const (
	cascadeReasonStudentPlaced = "学生已被其他机会录用，申请自动放弃"
	cascadeReasonSlotTaken     = "该机会名额已被占用"
)

// ApplicationService 申请业务接口
type ApplicationService interface {
	// 学生提交申请
	Submit(ctx context.Context, studentID string, req *dto.SubmitApplicationRequest) (*dto.ApplicationResponse, error)
	// 学生主动放弃（任一非终态）
	Withdraw(ctx context.Context, applicationID, studentID string) (*dto.ApplicationResponse, error)
	// 企业初审
	CompanyDecide(ctx context.Context, applicationID, companyID string, req *dto.CompanyDecisionRequest) (*dto.ApplicationResponse, error)
	// 责任教师终审（批准触发级联分配）
	SupervisorDecide(ctx context.Context, applicationID, supervisorID string, req *dto.SupervisorDecisionRequest) (*dto.ApplicationResponse, error)
	// 获取详情（按角色校验归属）
	Get(ctx context.Context, applicationID, callerID, callerRole string) (*dto.ApplicationResponse, error)
	// 学生自己的申请列表
	ListMine(ctx context.Context, studentID string, req *dto.ApplicationListRequest) ([]dto.ApplicationResponse, int64, error)
	// 某机会收到的申请列表（企业）
	ListForOffer(ctx context.Context, offerID, companyID string, req *dto.ApplicationListRequest) ([]dto.ApplicationResponse, int64, error)
	// 待教师终审队列
	ListPendingValidation(ctx context.Context, req *dto.PaginationRequest) ([]dto.ApplicationResponse, int64, error)
}

type applicationService struct {
	repo         *repository.Repository
	notification NotificationService
	logger       *zap.Logger
}

// NewApplicationService 创建 ApplicationService 实例
func NewApplicationService(repo *repository.Repository, notification NotificationService, logger *zap.Logger) ApplicationService {
	return &applicationService{repo: repo, notification: notification, logger: logger}
}

// ════════════════════════════════════════════════════════════
// Submit — 学生提交申请
// ════════════════════════════════════════════════════════════

func (s *applicationService) Submit(ctx context.Context, studentID string, req *dto.SubmitApplicationRequest) (*dto.ApplicationResponse, error) {
	// 1. 学生须在求职中
	student, err := s.repo.Student.GetByID(ctx, studentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		s.logger.Error("查询学生档案失败", zap.Error(err))
		return nil, err
	}
	if student.SearchStatus == model.StudentPlaced {
		return nil, ErrStudentAlreadyPlaced
	}

	// 2. 机会须对学生可见
	offer, err := s.repo.Offer.GetByID(ctx, req.OfferID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOfferNotFound
		}
		s.logger.Error("查询机会失败", zap.Error(err))
		return nil, err
	}
	if !offer.IsVisibleToStudents(time.Now()) {
		return nil, ErrOfferNotVisible
	}

	// 3. 同一机会不可重复申请（放弃后可重投）
	exists, err := s.repo.Application.ExistsLive(ctx, studentID, req.OfferID)
	if err != nil {
		s.logger.Error("查询重复申请失败", zap.Error(err))
		return nil, err
	}
	if exists {
		return nil, ErrDuplicateApplication
	}

	app := &model.Application{
		StudentID: studentID,
		OfferID:   req.OfferID,
		Statut:    model.ApplicationSubmitted,
		Version:   1,
	}
	if req.MotivationLetter != "" {
		app.MotivationLetter = &req.MotivationLetter
	}
	app.CreatedBy = &studentID

	if err := s.repo.Application.Create(ctx, app); err != nil {
		s.logger.Error("创建申请失败", zap.Error(err))
		return nil, err
	}

	s.notification.Notify(ctx, offer.CompanyID, "收到新申请",
		fmt.Sprintf("学生 %s %s 申请了您发布的机会。", student.FirstName, student.LastName))

	app.Student = student
	app.Offer = offer
	return buildApplicationResponse(app), nil
}

func (s *applicationService) Withdraw(ctx context.Context, applicationID, studentID string) (*dto.ApplicationResponse, error) {
	app, err := s.getApplication(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	if app.StudentID != studentID {
		return nil, ErrApplicationNotOwned
	}
	if app.Statut != model.ApplicationSubmitted {
		if app.IsTerminal() {
			return nil, ErrApplicationTerminal
		}
		return nil, ErrApplicationNotSubmitted
	}

	app.Statut = model.ApplicationWithdrawn
	app.UpdatedBy = &studentID

	if err := s.repo.Application.UpdateStatusIf(ctx, app, model.ApplicationSubmitted); err != nil {
		if errors.Is(err, pkgerrors.ErrOptimisticLock) {
			return nil, s.resolveConflict(ctx, applicationID)
		}
		s.logger.Error("放弃申请失败", zap.Error(err))
		return nil, err
	}

	if app.Offer != nil {
		s.notification.Notify(ctx, app.Offer.CompanyID, "申请已放弃",
			"一名学生放弃了对您机会的申请。")
	}

	return buildApplicationResponse(app), nil
}

// ════════════════════════════════════════════════════════════
// CompanyDecide — 企业初审
// ════════════════════════════════════════════════════════════

func (s *applicationService) CompanyDecide(ctx context.Context, applicationID, companyID string, req *dto.CompanyDecisionRequest) (*dto.ApplicationResponse, error) {
	app, err := s.getApplication(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	if app.Offer == nil || app.Offer.CompanyID != companyID {
		return nil, ErrOfferNotOwned
	}
	if app.Statut != model.ApplicationSubmitted {
		if app.IsTerminal() {
			return nil, ErrApplicationTerminal
		}
		return nil, ErrApplicationNotSubmitted
	}

	now := time.Now()
	if req.Accept {
		app.Statut = model.ApplicationCompanyAccepted
	} else {
		app.Statut = model.ApplicationCompanyRejected
		if req.Reason != "" {
			app.RejectionReason = &req.Reason
		}
	}
	app.CompanyDecisionAt = &now
	app.UpdatedBy = &companyID

	if err := s.repo.Application.UpdateStatusIf(ctx, app, model.ApplicationSubmitted); err != nil {
		if errors.Is(err, pkgerrors.ErrOptimisticLock) {
			return nil, s.resolveConflict(ctx, applicationID)
		}
		s.logger.Error("企业初审失败", zap.Error(err))
		return nil, err
	}

	if req.Accept {
		s.notification.Notify(ctx, app.StudentID, "企业已接受申请",
			"您的申请已通过企业初审，等待责任教师终审。")
	} else {
		s.notification.Notify(ctx, app.StudentID, "企业已拒绝申请",
			fmt.Sprintf("您的申请未通过企业初审。理由：%s", req.Reason))
	}

	return buildApplicationResponse(app), nil
}

// ════════════════════════════════════════════════════════════
// SupervisorDecide — 教师终审，批准触发级联分配
// ════════════════════════════════════════════════════════════
//
// 批准在单个数据库事务内完成五步：
//   1. 目标申请 ACCEPTEE_ENTREPRISE → VALIDEE（条件转移）
//   2. 该学生其余非终态申请 → RENONCEE
//   3. 该机会其余非终态申请 → REFUSEE_RESPONSABLE
//   4. 机会下架（statut → NON_ACTIVE）
//   5. 学生求职状态 → AFFECTE

func (s *applicationService) SupervisorDecide(ctx context.Context, applicationID, supervisorID string, req *dto.SupervisorDecisionRequest) (*dto.ApplicationResponse, error) {
	if !req.Approve && req.Reason == "" {
		return nil, ErrRejectionReasonRequired
	}

	app, err := s.getApplication(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	if app.Statut != model.ApplicationCompanyAccepted {
		if app.IsTerminal() {
			return nil, ErrApplicationTerminal
		}
		return nil, ErrApplicationNotAccepted
	}

	now := time.Now()
	app.SupervisorID = &supervisorID
	app.SupervisorDecisionAt = &now
	app.UpdatedBy = &supervisorID

	if !req.Approve {
		app.Statut = model.ApplicationSupervisorRefused
		app.RejectionReason = &req.Reason

		if err := s.repo.Application.UpdateStatusIf(ctx, app, model.ApplicationCompanyAccepted); err != nil {
			if errors.Is(err, pkgerrors.ErrOptimisticLock) {
				return nil, s.resolveConflict(ctx, applicationID)
			}
			s.logger.Error("教师终审失败", zap.Error(err))
			return nil, err
		}

		s.notification.Notify(ctx, app.StudentID, "申请未获批准",
			fmt.Sprintf("您的申请未通过责任教师终审。理由：%s", req.Reason))
		return buildApplicationResponse(app), nil
	}

	// 级联前收集将被挤出的申请人，事务提交后通知
	squeezedOut := s.collectSqueezedOut(ctx, app)

	app.Statut = model.ApplicationValidated
	err = s.repo.Transaction(ctx, func(txRepo *repository.Repository) error {
		if err := txRepo.Application.UpdateStatusIf(ctx, app, model.ApplicationCompanyAccepted); err != nil {
			return err
		}
		if _, err := txRepo.Application.ForceStatusByStudent(ctx, app.StudentID, app.ApplicationID,
			model.ApplicationWithdrawn, cascadeReasonStudentPlaced); err != nil {
			return err
		}
		if _, err := txRepo.Application.ForceStatusByOffer(ctx, app.OfferID, app.ApplicationID,
			model.ApplicationSupervisorRefused, cascadeReasonSlotTaken); err != nil {
			return err
		}
		if err := txRepo.Offer.SetStatut(ctx, app.OfferID, model.OfferInactive); err != nil {
			return err
		}
		return txRepo.Student.UpdateSearchStatus(ctx, app.StudentID, model.StudentPlaced)
	})
	if err != nil {
		if errors.Is(err, pkgerrors.ErrOptimisticLock) {
			return nil, s.resolveConflict(ctx, applicationID)
		}
		s.logger.Error("级联分配失败", zap.Error(err))
		return nil, err
	}

	// 提交成功后通知各方（尽力投递）
	s.notification.Notify(ctx, app.StudentID, "申请已获批准",
		"恭喜！您的申请已通过责任教师终审，分配正式生效。")
	if app.Offer != nil {
		s.notification.Notify(ctx, app.Offer.CompanyID, "分配已确认",
			"您机会的一名候选人已由责任教师批准，该机会已自动下架。")
	}
	for _, studentID := range squeezedOut {
		s.notification.Notify(ctx, studentID, "申请状态变更",
			"您的一项申请因名额分配已自动关闭。")
	}

	return buildApplicationResponse(app), nil
}

// collectSqueezedOut 级联将改写的其他非终态申请的学生（去重，不含目标学生）
func (s *applicationService) collectSqueezedOut(ctx context.Context, app *model.Application) []string {
	apps, _, err := s.repo.Application.ListByOffer(ctx, app.OfferID, "", 0, 1000)
	if err != nil {
		s.logger.Warn("收集受影响申请失败", zap.Error(err))
		return nil
	}

	seen := make(map[string]bool)
	var studentIDs []string
	for i := range apps {
		other := &apps[i]
		if other.ApplicationID == app.ApplicationID || other.IsTerminal() {
			continue
		}
		if other.StudentID != app.StudentID && !seen[other.StudentID] {
			seen[other.StudentID] = true
			studentIDs = append(studentIDs, other.StudentID)
		}
	}
	return studentIDs
}

// resolveConflict 条件转移失败后重读，给出更准确的业务错误
func (s *applicationService) resolveConflict(ctx context.Context, applicationID string) error {
	app, err := s.repo.Application.GetByID(ctx, applicationID)
	if err != nil {
		return pkgerrors.ErrOptimisticLock
	}
	if app.IsTerminal() {
		return ErrApplicationTerminal
	}
	return pkgerrors.ErrOptimisticLock
}

func (s *applicationService) Get(ctx context.Context, applicationID, callerID, callerRole string) (*dto.ApplicationResponse, error) {
	app, err := s.getApplication(ctx, applicationID)
	if err != nil {
		return nil, err
	}

	switch callerRole {
	case model.RoleStudent:
		if app.StudentID != callerID {
			return nil, ErrApplicationNotOwned
		}
	case model.RoleCompany:
		if app.Offer == nil || app.Offer.CompanyID != callerID {
			return nil, ErrOfferNotOwned
		}
	}

	return buildApplicationResponse(app), nil
}

func (s *applicationService) ListMine(ctx context.Context, studentID string, req *dto.ApplicationListRequest) ([]dto.ApplicationResponse, int64, error) {
	apps, total, err := s.repo.Application.ListByStudent(ctx, studentID, req.Statut, req.GetOffset(), req.GetPageSize())
	if err != nil {
		s.logger.Error("查询学生申请列表失败", zap.Error(err))
		return nil, 0, err
	}
	return buildApplicationList(apps), total, nil
}

func (s *applicationService) ListForOffer(ctx context.Context, offerID, companyID string, req *dto.ApplicationListRequest) ([]dto.ApplicationResponse, int64, error) {
	offer, err := s.repo.Offer.GetByID(ctx, offerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, 0, ErrOfferNotFound
		}
		s.logger.Error("查询机会失败", zap.Error(err))
		return nil, 0, err
	}
	if offer.CompanyID != companyID {
		return nil, 0, ErrOfferNotOwned
	}

	apps, total, err := s.repo.Application.ListByOffer(ctx, offerID, req.Statut, req.GetOffset(), req.GetPageSize())
	if err != nil {
		s.logger.Error("查询机会申请列表失败", zap.Error(err))
		return nil, 0, err
	}
	return buildApplicationList(apps), total, nil
}

func (s *applicationService) ListPendingValidation(ctx context.Context, req *dto.PaginationRequest) ([]dto.ApplicationResponse, int64, error) {
	apps, total, err := s.repo.Application.ListPendingValidation(ctx, req.GetOffset(), req.GetPageSize())
	if err != nil {
		s.logger.Error("查询待终审申请失败", zap.Error(err))
		return nil, 0, err
	}
	return buildApplicationList(apps), total, nil
}

func (s *applicationService) getApplication(ctx context.Context, applicationID string) (*model.Application, error) {
	app, err := s.repo.Application.GetByID(ctx, applicationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrApplicationNotFound
		}
		s.logger.Error("查询申请失败", zap.Error(err))
		return nil, err
	}
	return app, nil
}

func buildApplicationList(apps []model.Application) []dto.ApplicationResponse {
	items := make([]dto.ApplicationResponse, 0, len(apps))
	for i := range apps {
		items = append(items, *buildApplicationResponse(&apps[i]))
	}
	return items
}
