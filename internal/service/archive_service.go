package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"stagelink/backend/internal/dto"
	"stagelink/backend/internal/repository"
)

const archiveCloseReason = "学年结束，统一归档关闭"

// ArchiveService 学年归档业务接口
// 学年末（8 月 31 日）由定时任务触发，也可由管理员手动执行
type ArchiveService interface {
	RunYearEnd(ctx context.Context, now time.Time) (*dto.ArchiveResultResponse, error)
}

type archiveService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewArchiveService 创建 ArchiveService 实例
func NewArchiveService(repo *repository.Repository, logger *zap.Logger) ArchiveService {
	return &archiveService{repo: repo, logger: logger}
}

// AcademicYear 归档标记，如 "2025-2026"：9 月起算新学年
func AcademicYear(now time.Time) string {
	year := now.Year()
	if now.Month() >= time.September {
		return fmt.Sprintf("%d-%d", year, year+1)
	}
	return fmt.Sprintf("%d-%d", year-1, year)
}

// RunYearEnd 单事务完成三步归档：
//  1. 已过期机会打归档标记并下架
//  2. 全部非终态申请关闭
//  3. 已分配学生恢复求职中（迎接新学年）
func (s *archiveService) RunYearEnd(ctx context.Context, now time.Time) (*dto.ArchiveResultResponse, error) {
	academicYear := AcademicYear(now)
	result := &dto.ArchiveResultResponse{AcademicYear: academicYear}

	err := s.repo.Transaction(ctx, func(txRepo *repository.Repository) error {
		archived, err := txRepo.Offer.ArchiveBefore(ctx, now, academicYear)
		if err != nil {
			return err
		}
		result.ArchivedOffers = archived

		closed, err := txRepo.Application.CloseAllLive(ctx, archiveCloseReason)
		if err != nil {
			return err
		}
		result.ClosedApps = closed

		reset, err := txRepo.Student.ResetAllSearchStatus(ctx)
		if err != nil {
			return err
		}
		result.ResetStudents = reset
		return nil
	})
	if err != nil {
		s.logger.Error("学年归档失败", zap.Error(err))
		return nil, err
	}

	s.logger.Info("学年归档完成",
		zap.String("academic_year", academicYear),
		zap.Int64("archived_offers", result.ArchivedOffers),
		zap.Int64("closed_applications", result.ClosedApps),
		zap.Int64("reset_students", result.ResetStudents))

	return result, nil
}
