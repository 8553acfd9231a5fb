package handler

import "stagelink/backend/internal/service"

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Auth         *AuthHandler
	Student      *StudentHandler
	Company      *CompanyHandler
	Admin        *AdminHandler
	Offer        *OfferHandler
	Application  *ApplicationHandler
	Notification *NotificationHandler
	Scale        *ScaleHandler
	Stats        *StatsHandler
	Export       *ExportHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Auth:         NewAuthHandler(svc.Auth),
		Student:      NewStudentHandler(svc.Student, svc.Admin),
		Company:      NewCompanyHandler(svc.Company, svc.Stats),
		Admin:        NewAdminHandler(svc.Admin),
		Offer:        NewOfferHandler(svc.Offer),
		Application:  NewApplicationHandler(svc.Application),
		Notification: NewNotificationHandler(svc.Notification),
		Scale:        NewScaleHandler(svc.Scale),
		Stats:        NewStatsHandler(svc.Stats, svc.Archive),
		Export:       NewExportHandler(svc.Export),
	}
}
