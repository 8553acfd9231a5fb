package service

import (
	"go.uber.org/zap"

	"stagelink/backend/config"
	"stagelink/backend/internal/repository"
	"stagelink/backend/pkg/jwt"
	"stagelink/backend/pkg/redis"
)

// Service 所有 Service 的聚合入口
type Service struct {
	Auth         AuthService
	Student      StudentService
	Company      CompanyService
	Admin        AdminService
	Offer        OfferService
	Application  ApplicationService
	Notification NotificationService
	Scale        ScaleService
	Stats        StatsService
	Archive      ArchiveService
	Export       ExportService
}

// NewService 创建 Service 聚合
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	rdb *redis.Client,
	logger *zap.Logger,
) *Service {
	notification := NewNotificationService(repo, logger)
	return &Service{
		Auth:         NewAuthService(cfg, repo, jwtMgr, rdb, logger),
		Student:      NewStudentService(repo, logger),
		Company:      NewCompanyService(repo, logger),
		Admin:        NewAdminService(repo, notification, logger),
		Offer:        NewOfferService(repo, notification, logger),
		Application:  NewApplicationService(repo, notification, logger),
		Notification: notification,
		Scale:        NewScaleService(repo, logger),
		Stats:        NewStatsService(repo, logger),
		Archive:      NewArchiveService(repo, logger),
		Export:       NewExportService(repo, logger),
	}
}
