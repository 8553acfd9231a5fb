package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	"stagelink/backend/internal/service"
	"stagelink/backend/pkg/response"
)

// StatsHandler 统计与归档模块 HTTP 处理器
type StatsHandler struct {
	statsSvc   service.StatsService
	archiveSvc service.ArchiveService
}

// NewStatsHandler 创建 StatsHandler
func NewStatsHandler(statsSvc service.StatsService, archiveSvc service.ArchiveService) *StatsHandler {
	return &StatsHandler{statsSvc: statsSvc, archiveSvc: archiveSvc}
}

// Dashboard 全局看板统计
// GET /api/v1/stats/dashboard
func (h *StatsHandler) Dashboard(c *gin.Context) {
	stats, err := h.statsSvc.Dashboard(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, stats)
}

// RunArchive 手动触发学年归档（管理员）
// POST /api/v1/admin/archive
func (h *StatsHandler) RunArchive(c *gin.Context) {
	result, err := h.archiveSvc.RunYearEnd(c.Request.Context(), time.Now())
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, result)
}
