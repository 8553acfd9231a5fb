package handler

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"stagelink/backend/internal/service"
	"stagelink/backend/pkg/response"
)

const (
	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	icsContentType  = "text/calendar"
)

// ExportHandler 导出模块 HTTP 处理器
type ExportHandler struct {
	exportSvc service.ExportService
}

// NewExportHandler 创建 ExportHandler
func NewExportHandler(exportSvc service.ExportService) *ExportHandler {
	return &ExportHandler{exportSvc: exportSvc}
}

// ExportPlacements 导出分配名册 Excel
// GET /api/v1/export/placements
func (h *ExportHandler) ExportPlacements(c *gin.Context) {
	buf, filename, err := h.exportSvc.ExportPlacements(c.Request.Context())
	if err != nil {
		h.handleExportError(c, err)
		return
	}

	writeDownload(c, xlsxContentType, filename, buf.Bytes())
}

// ExportPlacementCalendar 导出实习日历 ICS
// GET /api/v1/export/placements/calendar
func (h *ExportHandler) ExportPlacementCalendar(c *gin.Context) {
	buf, filename, err := h.exportSvc.ExportPlacementCalendar(c.Request.Context())
	if err != nil {
		h.handleExportError(c, err)
		return
	}

	writeDownload(c, icsContentType, filename, buf.Bytes())
}

// writeDownload 设置下载响应头并写入内容
func writeDownload(c *gin.Context, contentType, filename string, data []byte) {
	encodedFilename := url.QueryEscape(filename)
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+encodedFilename)
	c.Header("Content-Type", contentType)
	c.Data(http.StatusOK, contentType, data)
}

func (h *ExportHandler) handleExportError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrExportNoPlacements):
		response.NotFound(c, 17101, "暂无已确认的分配")
	case errors.Is(err, service.ErrExportGenerateFail):
		response.InternalError(c)
	default:
		response.InternalError(c)
	}
}
