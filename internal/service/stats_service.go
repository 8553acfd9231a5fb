package service

import (
	"context"

	"go.uber.org/zap"

	"stagelink/backend/internal/dto"
	"stagelink/backend/internal/model"
	"stagelink/backend/internal/repository"
)

// StatsService 统计看板业务接口
type StatsService interface {
	Dashboard(ctx context.Context) (*dto.DashboardStatsResponse, error)
	CompanyStats(ctx context.Context, companyID string) (*dto.CompanyStatsResponse, error)
}

type statsService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewStatsService 创建 StatsService 实例
func NewStatsService(repo *repository.Repository, logger *zap.Logger) StatsService {
	return &statsService{repo: repo, logger: logger}
}

func (s *statsService) Dashboard(ctx context.Context) (*dto.DashboardStatsResponse, error) {
	byStatus, err := s.repo.Stats.CountStudentsBySearchStatus(ctx)
	if err != nil {
		s.logger.Error("统计学生求职状态失败", zap.Error(err))
		return nil, err
	}
	byEtat, err := s.repo.Stats.CountOffersByEtat(ctx)
	if err != nil {
		s.logger.Error("统计机会审核状态失败", zap.Error(err))
		return nil, err
	}
	byType, err := s.repo.Stats.CountOffersByType(ctx)
	if err != nil {
		s.logger.Error("统计机会类型失败", zap.Error(err))
		return nil, err
	}
	byStatut, err := s.repo.Stats.CountApplicationsByStatut(ctx)
	if err != nil {
		s.logger.Error("统计申请状态失败", zap.Error(err))
		return nil, err
	}

	resp := &dto.DashboardStatsResponse{
		PlacedStudents:      byStatus[model.StudentPlaced],
		SearchingStudents:   byStatus[model.StudentSearching],
		PendingOffers:       byEtat[model.OfferPendingValidation],
		ValidatedOffers:     byEtat[model.OfferValidated],
		ApplicationsByState: byStatut,
		OffersByType:        byType,
	}
	for _, n := range byStatus {
		resp.TotalStudents += n
	}
	for _, n := range byEtat {
		resp.TotalOffers += n
	}
	for _, n := range byStatut {
		resp.TotalApplications += n
	}
	if resp.TotalStudents > 0 {
		resp.PlacementRate = float64(resp.PlacedStudents) / float64(resp.TotalStudents)
	}
	return resp, nil
}

func (s *statsService) CompanyStats(ctx context.Context, companyID string) (*dto.CompanyStatsResponse, error) {
	total, active, err := s.repo.Stats.CountOffersByCompany(ctx, companyID)
	if err != nil {
		s.logger.Error("统计企业机会失败", zap.Error(err))
		return nil, err
	}
	byStatut, err := s.repo.Stats.CountApplicationsByCompany(ctx, companyID)
	if err != nil {
		s.logger.Error("统计企业申请失败", zap.Error(err))
		return nil, err
	}

	resp := &dto.CompanyStatsResponse{
		TotalOffers:      total,
		ActiveOffers:     active,
		PendingDecisions: byStatut[model.ApplicationSubmitted],
		HiredStudents:    byStatut[model.ApplicationValidated],
	}
	for _, n := range byStatut {
		resp.TotalApplications += n
	}
	return resp, nil
}
