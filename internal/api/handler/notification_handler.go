package handler

import (
	"github.com/gin-gonic/gin"

	"stagelink/backend/internal/dto"
	"stagelink/backend/internal/service"
	"stagelink/backend/pkg/response"
)

// NotificationHandler 通知模块 HTTP 处理器
type NotificationHandler struct {
	notificationSvc service.NotificationService
}

// NewNotificationHandler 创建 NotificationHandler
func NewNotificationHandler(notificationSvc service.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationSvc: notificationSvc}
}

// List 本人通知列表
// GET /api/v1/notifications
func (h *NotificationHandler) List(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.NotificationListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	notifications, total, err := h.notificationSvc.List(c.Request.Context(), userID, &req)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OKPage(c, notifications, total, req.GetPage(), req.GetPageSize())
}

// CountUnread 未读数量
// GET /api/v1/notifications/unread-count
func (h *NotificationHandler) CountUnread(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	count, err := h.notificationSvc.CountUnread(c.Request.Context(), userID)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, gin.H{"unread": count})
}

// MarkRead 标记单条已读
// PUT /api/v1/notifications/:id/read
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "通知ID不能为空")
		return
	}

	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.notificationSvc.MarkRead(c.Request.Context(), userID, id); err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, gin.H{"message": "已标记为已读"})
}

// MarkAllRead 全部标记已读
// PUT /api/v1/notifications/read-all
func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.notificationSvc.MarkAllRead(c.Request.Context(), userID); err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, gin.H{"message": "已全部标记为已读"})
}
