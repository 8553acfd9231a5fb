package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"stagelink/backend/internal/dto"
	"stagelink/backend/internal/service"
	"stagelink/backend/pkg/response"
)

// ScaleHandler 报酬标准模块 HTTP 处理器
type ScaleHandler struct {
	scaleSvc service.ScaleService
}

// NewScaleHandler 创建 ScaleHandler
func NewScaleHandler(scaleSvc service.ScaleService) *ScaleHandler {
	return &ScaleHandler{scaleSvc: scaleSvc}
}

// Create 创建报酬标准
// POST /api/v1/scales
func (h *ScaleHandler) Create(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.CreateScaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.scaleSvc.Create(c.Request.Context(), callerID, &req)
	if err != nil {
		h.handleScaleError(c, err)
		return
	}

	response.Created(c, result)
}

// Update 更新报酬标准
// PUT /api/v1/scales/:id
func (h *ScaleHandler) Update(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "标准ID不能为空")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateScaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.scaleSvc.Update(c.Request.Context(), id, callerID, &req)
	if err != nil {
		h.handleScaleError(c, err)
		return
	}

	response.OK(c, result)
}

// Delete 删除报酬标准
// DELETE /api/v1/scales/:id
func (h *ScaleHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "标准ID不能为空")
		return
	}

	if err := h.scaleSvc.Delete(c.Request.Context(), id); err != nil {
		h.handleScaleError(c, err)
		return
	}

	response.OK(c, gin.H{"message": "已删除"})
}

// List 报酬标准列表
// GET /api/v1/scales
func (h *ScaleHandler) List(c *gin.Context) {
	scales, err := h.scaleSvc.List(c.Request.Context())
	if err != nil {
		h.handleScaleError(c, err)
		return
	}

	response.OK(c, gin.H{"list": scales})
}

// handleScaleError 统一处理报酬标准模块业务错误
func (h *ScaleHandler) handleScaleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrScaleNotFound):
		response.NotFound(c, 16101, "报酬标准不存在")
	case errors.Is(err, service.ErrScaleInvalidRange):
		response.BadRequest(c, 16102, "周数区间下限不得大于上限")
	default:
		response.InternalError(c)
	}
}
