package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"stagelink/backend/internal/dto"
	"stagelink/backend/internal/service"
	"stagelink/backend/pkg/response"
)

// CompanyHandler 企业档案模块 HTTP 处理器
type CompanyHandler struct {
	companySvc service.CompanyService
	statsSvc   service.StatsService
}

// NewCompanyHandler 创建 CompanyHandler
func NewCompanyHandler(companySvc service.CompanyService, statsSvc service.StatsService) *CompanyHandler {
	return &CompanyHandler{companySvc: companySvc, statsSvc: statsSvc}
}

// GetMe 获取本企业档案
// GET /api/v1/companies/me
func (h *CompanyHandler) GetMe(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	profile, err := h.companySvc.GetProfile(c.Request.Context(), userID)
	if err != nil {
		h.handleCompanyError(c, err)
		return
	}

	response.OK(c, profile)
}

// UpdateMe 更新本企业档案
// PUT /api/v1/companies/me
func (h *CompanyHandler) UpdateMe(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	profile, err := h.companySvc.UpdateProfile(c.Request.Context(), userID, userID, &req)
	if err != nil {
		h.handleCompanyError(c, err)
		return
	}

	response.OK(c, profile)
}

// GetMyStats 本企业统计
// GET /api/v1/companies/me/stats
func (h *CompanyHandler) GetMyStats(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	stats, err := h.statsSvc.CompanyStats(c.Request.Context(), userID)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, stats)
}

// Get 获取指定企业档案（职能角色）
// GET /api/v1/companies/:id
func (h *CompanyHandler) Get(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "企业ID不能为空")
		return
	}

	profile, err := h.companySvc.GetProfile(c.Request.Context(), id)
	if err != nil {
		h.handleCompanyError(c, err)
		return
	}

	response.OK(c, profile)
}

// List 企业列表（职能角色）
// GET /api/v1/companies
func (h *CompanyHandler) List(c *gin.Context) {
	var req dto.CompanyListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	companies, total, err := h.companySvc.List(c.Request.Context(), &req)
	if err != nil {
		h.handleCompanyError(c, err)
		return
	}

	response.OKPage(c, companies, total, req.GetPage(), req.GetPageSize())
}

// handleCompanyError 统一处理企业模块业务错误
func (h *CompanyHandler) handleCompanyError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrCompanyNotFound):
		response.NotFound(c, 13101, "企业档案不存在")
	default:
		response.InternalError(c)
	}
}
