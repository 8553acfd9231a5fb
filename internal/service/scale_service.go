package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"stagelink/backend/internal/dto"
	"stagelink/backend/internal/model"
	"stagelink/backend/internal/repository"
)

// ── 报酬标准模块业务错误 ──

var (
	ErrScaleNotFound     = errors.New("报酬标准不存在")
	ErrScaleInvalidRange = errors.New("周数区间下限不得大于上限")
)

// ScaleService 法定报酬标准业务接口
type ScaleService interface {
	Create(ctx context.Context, callerID string, req *dto.CreateScaleRequest) (*dto.ScaleResponse, error)
	Update(ctx context.Context, scaleID, callerID string, req *dto.UpdateScaleRequest) (*dto.ScaleResponse, error)
	Delete(ctx context.Context, scaleID string) error
	List(ctx context.Context) ([]dto.ScaleResponse, error)
}

type scaleService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewScaleService 创建 ScaleService 实例
func NewScaleService(repo *repository.Repository, logger *zap.Logger) ScaleService {
	return &scaleService{repo: repo, logger: logger}
}

func (s *scaleService) Create(ctx context.Context, callerID string, req *dto.CreateScaleRequest) (*dto.ScaleResponse, error) {
	if req.MinDurationWeeks > req.MaxDurationWeeks {
		return nil, ErrScaleInvalidRange
	}

	country := req.Country
	if country == "" {
		country = "France"
	}

	scale := &model.RemunerationScale{
		OfferType:        req.OfferType,
		Country:          country,
		MinDurationWeeks: req.MinDurationWeeks,
		MaxDurationWeeks: req.MaxDurationWeeks,
		MinMonthlyAmount: req.MinMonthlyAmount,
	}
	scale.CreatedBy = &callerID

	if err := s.repo.Scale.Create(ctx, scale); err != nil {
		s.logger.Error("创建报酬标准失败", zap.Error(err))
		return nil, err
	}
	return buildScaleResponse(scale), nil
}

// Update 指针字段区分「未提供」与「显式更新」
func (s *scaleService) Update(ctx context.Context, scaleID, callerID string, req *dto.UpdateScaleRequest) (*dto.ScaleResponse, error) {
	scale, err := s.repo.Scale.GetByID(ctx, scaleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrScaleNotFound
		}
		s.logger.Error("查询报酬标准失败", zap.Error(err))
		return nil, err
	}

	if req.Country != nil {
		scale.Country = *req.Country
	}
	if req.MinDurationWeeks != nil {
		scale.MinDurationWeeks = *req.MinDurationWeeks
	}
	if req.MaxDurationWeeks != nil {
		scale.MaxDurationWeeks = *req.MaxDurationWeeks
	}
	if req.MinMonthlyAmount != nil {
		scale.MinMonthlyAmount = *req.MinMonthlyAmount
	}
	if scale.MinDurationWeeks > scale.MaxDurationWeeks {
		return nil, ErrScaleInvalidRange
	}
	scale.UpdatedBy = &callerID

	if err := s.repo.Scale.Update(ctx, scale); err != nil {
		s.logger.Error("更新报酬标准失败", zap.Error(err))
		return nil, err
	}
	return buildScaleResponse(scale), nil
}

func (s *scaleService) Delete(ctx context.Context, scaleID string) error {
	if _, err := s.repo.Scale.GetByID(ctx, scaleID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrScaleNotFound
		}
		s.logger.Error("查询报酬标准失败", zap.Error(err))
		return err
	}
	return s.repo.Scale.Delete(ctx, scaleID)
}

func (s *scaleService) List(ctx context.Context) ([]dto.ScaleResponse, error) {
	scales, err := s.repo.Scale.List(ctx)
	if err != nil {
		s.logger.Error("查询报酬标准列表失败", zap.Error(err))
		return nil, err
	}

	items := make([]dto.ScaleResponse, 0, len(scales))
	for i := range scales {
		items = append(items, *buildScaleResponse(&scales[i]))
	}
	return items, nil
}
