package service

import (
	"context"

	"go.uber.org/zap"

	"stagelink/backend/internal/dto"
	"stagelink/backend/internal/model"
	"stagelink/backend/internal/repository"
)

// NotificationService 站内通知业务接口
type NotificationService interface {
	// Notify 尽力投递：失败只记日志，不阻断主流程
	Notify(ctx context.Context, userID, subject, message string)
	List(ctx context.Context, userID string, req *dto.NotificationListRequest) ([]dto.NotificationResponse, int64, error)
	CountUnread(ctx context.Context, userID string) (int64, error)
	MarkRead(ctx context.Context, userID, notificationID string) error
	MarkAllRead(ctx context.Context, userID string) error
}

type notificationService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewNotificationService 创建 NotificationService 实例
func NewNotificationService(repo *repository.Repository, logger *zap.Logger) NotificationService {
	return &notificationService{repo: repo, logger: logger}
}

func (s *notificationService) Notify(ctx context.Context, userID, subject, message string) {
	notification := &model.Notification{
		UserID:  userID,
		Subject: subject,
		Message: message,
	}
	if err := s.repo.Notification.Create(ctx, notification); err != nil {
		s.logger.Warn("通知投递失败",
			zap.String("user_id", userID),
			zap.String("subject", subject),
			zap.Error(err))
	}
}

func (s *notificationService) List(ctx context.Context, userID string, req *dto.NotificationListRequest) ([]dto.NotificationResponse, int64, error) {
	notifications, total, err := s.repo.Notification.ListByUser(ctx, userID, req.UnreadOnly, req.GetOffset(), req.GetPageSize())
	if err != nil {
		s.logger.Error("查询通知列表失败", zap.Error(err))
		return nil, 0, err
	}

	items := make([]dto.NotificationResponse, 0, len(notifications))
	for _, n := range notifications {
		items = append(items, dto.NotificationResponse{
			ID:        n.NotificationID,
			Subject:   n.Subject,
			Message:   n.Message,
			IsRead:    n.IsRead,
			CreatedAt: formatTime(n.CreatedAt),
		})
	}
	return items, total, nil
}

func (s *notificationService) CountUnread(ctx context.Context, userID string) (int64, error) {
	return s.repo.Notification.CountUnread(ctx, userID)
}

func (s *notificationService) MarkRead(ctx context.Context, userID, notificationID string) error {
	return s.repo.Notification.MarkRead(ctx, userID, notificationID)
}

func (s *notificationService) MarkAllRead(ctx context.Context, userID string) error {
	return s.repo.Notification.MarkAllRead(ctx, userID)
}
