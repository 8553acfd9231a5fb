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

// ── 机会模块业务错误 ──

var (
	ErrOfferNotFound           = errors.New("机会不存在")
	ErrOfferNotOwned           = errors.New("无权操作他人发布的机会")
	ErrOfferNotPending         = errors.New("机会已审核，不可修改")
	ErrOfferAlreadyReviewed    = errors.New("机会已被审核")
	ErrOfferNotVisible         = errors.New("机会当前不可见")
	ErrRejectionReasonRequired = errors.New("拒绝时必须填写理由")
	ErrInvalidDateRange        = errors.New("截止日期不得早于当前日期")
	ErrRemunerationBelowScale  = errors.New("报酬低于该类型与时长的法定最低标准")
)

// OfferService 机会业务接口
type OfferService interface {
	// 企业发布机会，入待审核队列
	Create(ctx context.Context, companyID string, req *dto.CreateOfferRequest) (*dto.OfferResponse, error)
	// 企业修改机会（仅待审核状态）
	Update(ctx context.Context, offerID, companyID string, req *dto.UpdateOfferRequest) (*dto.OfferResponse, error)
	// 责任教师审核
	Review(ctx context.Context, offerID, supervisorID string, req *dto.ReviewOfferRequest) (*dto.OfferResponse, error)
	// 企业上下架（发布轴，独立于审核轴）
	SetVisibility(ctx context.Context, offerID, companyID string, active bool) (*dto.OfferResponse, error)
	// 获取详情（按角色裁剪可见性）
	Get(ctx context.Context, offerID, callerID, callerRole string) (*dto.OfferResponse, error)
	// 学生可见列表
	ListVisible(ctx context.Context, req *dto.OfferListRequest) ([]dto.OfferResponse, int64, error)
	// 企业自己的机会列表
	ListMine(ctx context.Context, companyID string, req *dto.OfferListRequest) ([]dto.OfferResponse, int64, error)
	// 待审核队列
	ListPendingReview(ctx context.Context, req *dto.PaginationRequest) ([]dto.OfferResponse, int64, error)
}

type offerService struct {
	repo         *repository.Repository
	notification NotificationService
	logger       *zap.Logger
}

// NewOfferService 创建 OfferService 实例
func NewOfferService(repo *repository.Repository, notification NotificationService, logger *zap.Logger) OfferService {
	return &offerService{repo: repo, notification: notification, logger: logger}
}

// ════════════════════════════════════════════════════════════
// Create — 发布机会 + 法定报酬标准校验
// ════════════════════════════════════════════════════════════

func (s *offerService) Create(ctx context.Context, companyID string, req *dto.CreateOfferRequest) (*dto.OfferResponse, error) {
	company, err := s.repo.Company.GetByID(ctx, companyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		s.logger.Error("查询企业档案失败", zap.Error(err))
		return nil, err
	}
	if !company.IsActive {
		return nil, ErrCompanyDeactivated
	}

	startDate, _ := time.Parse(dateLayout, req.StartDate)
	expirationDate, _ := time.Parse(dateLayout, req.ExpirationDate)
	today := time.Now().Truncate(24 * time.Hour)
	if expirationDate.Before(today) {
		return nil, ErrInvalidDateRange
	}

	// 法定最低报酬校验：存在适用标准且低于下限时拒绝
	if err := s.checkRemuneration(ctx, req.Type, req.Country, req.DurationWeeks, req.Remuneration); err != nil {
		return nil, err
	}

	offer := &model.Offer{
		CompanyID:      companyID,
		Type:           req.Type,
		Description:    req.Description,
		Remuneration:   req.Remuneration,
		Country:        req.Country,
		City:           req.City,
		DurationWeeks:  req.DurationWeeks,
		StartDate:      startDate,
		ExpirationDate: expirationDate,
		Etat:           model.OfferPendingValidation,
		Statut:         model.OfferActive,
		Version:        1,
	}
	offer.CreatedBy = &companyID

	if err := s.repo.Offer.Create(ctx, offer); err != nil {
		s.logger.Error("创建机会失败", zap.Error(err))
		return nil, err
	}

	offer.Company = company
	return buildOfferResponse(offer), nil
}

func (s *offerService) checkRemuneration(ctx context.Context, offerType, country string, durationWeeks int, remuneration float64) error {
	scale, err := s.repo.Scale.FindMatching(ctx, offerType, country, durationWeeks)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil // 无适用标准，不限制
		}
		s.logger.Error("查询报酬标准失败", zap.Error(err))
		return err
	}
	if remuneration < scale.MinMonthlyAmount {
		return ErrRemunerationBelowScale
	}
	return nil
}

func (s *offerService) Update(ctx context.Context, offerID, companyID string, req *dto.UpdateOfferRequest) (*dto.OfferResponse, error) {
	offer, err := s.getOffer(ctx, offerID)
	if err != nil {
		return nil, err
	}
	if offer.CompanyID != companyID {
		return nil, ErrOfferNotOwned
	}
	if offer.Etat != model.OfferPendingValidation {
		return nil, ErrOfferNotPending
	}

	if req.Description != nil {
		offer.Description = *req.Description
	}
	if req.Remuneration != nil {
		offer.Remuneration = *req.Remuneration
	}
	if req.City != nil {
		offer.City = *req.City
	}
	if req.DurationWeeks != nil {
		offer.DurationWeeks = *req.DurationWeeks
	}
	if req.StartDate != nil {
		offer.StartDate, _ = time.Parse(dateLayout, *req.StartDate)
	}
	if req.ExpirationDate != nil {
		offer.ExpirationDate, _ = time.Parse(dateLayout, *req.ExpirationDate)
	}
	offer.UpdatedBy = &companyID

	// 修改后重新校验法定报酬
	if err := s.checkRemuneration(ctx, offer.Type, offer.Country, offer.DurationWeeks, offer.Remuneration); err != nil {
		return nil, err
	}

	if err := s.repo.Offer.Update(ctx, offer); err != nil {
		if errors.Is(err, pkgerrors.ErrOptimisticLock) {
			return nil, err
		}
		s.logger.Error("更新机会失败", zap.Error(err))
		return nil, err
	}

	return buildOfferResponse(offer), nil
}

// ════════════════════════════════════════════════════════════
// Review — 责任教师审核（条件转移，并发安全）
// ════════════════════════════════════════════════════════════

func (s *offerService) Review(ctx context.Context, offerID, supervisorID string, req *dto.ReviewOfferRequest) (*dto.OfferResponse, error) {
	if !req.Approve && req.Reason == "" {
		return nil, ErrRejectionReasonRequired
	}

	offer, err := s.getOffer(ctx, offerID)
	if err != nil {
		return nil, err
	}
	if offer.Etat != model.OfferPendingValidation {
		return nil, ErrOfferAlreadyReviewed
	}

	now := time.Now()
	if req.Approve {
		offer.Etat = model.OfferValidated
		offer.RejectionReason = nil
	} else {
		offer.Etat = model.OfferRejected
		offer.RejectionReason = &req.Reason
	}
	offer.SupervisorID = &supervisorID
	offer.DecidedAt = &now
	offer.UpdatedBy = &supervisorID

	if err := s.repo.Offer.ReviewIf(ctx, offer, model.OfferPendingValidation); err != nil {
		if errors.Is(err, pkgerrors.ErrOptimisticLock) {
			// 另一位教师已先行审核
			return nil, ErrOfferAlreadyReviewed
		}
		s.logger.Error("审核机会失败", zap.Error(err))
		return nil, err
	}

	// 审核结果通知企业（尽力投递）
	if req.Approve {
		s.notification.Notify(ctx, offer.CompanyID, "机会审核通过",
			fmt.Sprintf("您发布的机会（%s）已通过审核，现已对学生可见。", offer.Type))
	} else {
		s.notification.Notify(ctx, offer.CompanyID, "机会审核未通过",
			fmt.Sprintf("您发布的机会（%s）未通过审核。理由：%s", offer.Type, req.Reason))
	}

	return buildOfferResponse(offer), nil
}

func (s *offerService) SetVisibility(ctx context.Context, offerID, companyID string, active bool) (*dto.OfferResponse, error) {
	offer, err := s.getOffer(ctx, offerID)
	if err != nil {
		return nil, err
	}
	if offer.CompanyID != companyID {
		return nil, ErrOfferNotOwned
	}

	statut := model.OfferInactive
	if active {
		statut = model.OfferActive
	}
	if err := s.repo.Offer.SetStatut(ctx, offerID, statut); err != nil {
		s.logger.Error("切换机会上下架失败", zap.Error(err))
		return nil, err
	}

	offer.Statut = statut
	return buildOfferResponse(offer), nil
}

func (s *offerService) Get(ctx context.Context, offerID, callerID, callerRole string) (*dto.OfferResponse, error) {
	offer, err := s.getOffer(ctx, offerID)
	if err != nil {
		return nil, err
	}

	switch callerRole {
	case model.RoleStudent:
		// 学生只能看到可申请的机会
		if !offer.IsVisibleToStudents(time.Now()) {
			return nil, ErrOfferNotVisible
		}
	case model.RoleCompany:
		if offer.CompanyID != callerID {
			return nil, ErrOfferNotOwned
		}
	}
	// 教师/秘书/管理员不受限

	return buildOfferResponse(offer), nil
}

func (s *offerService) ListVisible(ctx context.Context, req *dto.OfferListRequest) ([]dto.OfferResponse, int64, error) {
	filter := repository.OfferFilter{
		Type:    req.Type,
		Country: req.Country,
		Keyword: req.Keyword,
	}
	today := time.Now().Truncate(24 * time.Hour)
	offers, total, err := s.repo.Offer.ListVisible(ctx, filter, today, req.GetOffset(), req.GetPageSize())
	if err != nil {
		s.logger.Error("查询可见机会列表失败", zap.Error(err))
		return nil, 0, err
	}
	return buildOfferList(offers), total, nil
}

func (s *offerService) ListMine(ctx context.Context, companyID string, req *dto.OfferListRequest) ([]dto.OfferResponse, int64, error) {
	filter := repository.OfferFilter{
		Type:    req.Type,
		Country: req.Country,
		Etat:    req.Etat,
		Keyword: req.Keyword,
	}
	offers, total, err := s.repo.Offer.ListByCompany(ctx, companyID, filter, req.GetOffset(), req.GetPageSize())
	if err != nil {
		s.logger.Error("查询企业机会列表失败", zap.Error(err))
		return nil, 0, err
	}
	return buildOfferList(offers), total, nil
}

func (s *offerService) ListPendingReview(ctx context.Context, req *dto.PaginationRequest) ([]dto.OfferResponse, int64, error) {
	offers, total, err := s.repo.Offer.ListPendingReview(ctx, req.GetOffset(), req.GetPageSize())
	if err != nil {
		s.logger.Error("查询待审核机会失败", zap.Error(err))
		return nil, 0, err
	}
	return buildOfferList(offers), total, nil
}

func (s *offerService) getOffer(ctx context.Context, offerID string) (*model.Offer, error) {
	offer, err := s.repo.Offer.GetByID(ctx, offerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOfferNotFound
		}
		s.logger.Error("查询机会失败", zap.Error(err))
		return nil, err
	}
	return offer, nil
}

func buildOfferList(offers []model.Offer) []dto.OfferResponse {
	items := make([]dto.OfferResponse, 0, len(offers))
	for i := range offers {
		items = append(items, *buildOfferResponse(&offers[i]))
	}
	return items
}
