package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"stagelink/backend/internal/dto"
	"stagelink/backend/internal/service"
	pkgerrors "stagelink/backend/pkg/errors"
	"stagelink/backend/pkg/response"
)

// OfferHandler 机会模块 HTTP 处理器
type OfferHandler struct {
	offerSvc service.OfferService
}

// NewOfferHandler 创建 OfferHandler
func NewOfferHandler(offerSvc service.OfferService) *OfferHandler {
	return &OfferHandler{offerSvc: offerSvc}
}

// Create 发布机会
// POST /api/v1/offers
func (h *OfferHandler) Create(c *gin.Context) {
	companyID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.CreateOfferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.offerSvc.Create(c.Request.Context(), companyID, &req)
	if err != nil {
		h.handleOfferError(c, err)
		return
	}

	response.Created(c, result)
}

// Update 修改机会（仅待审核状态）
// PUT /api/v1/offers/:id
func (h *OfferHandler) Update(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "机会ID不能为空")
		return
	}

	companyID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateOfferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.offerSvc.Update(c.Request.Context(), id, companyID, &req)
	if err != nil {
		h.handleOfferError(c, err)
		return
	}

	response.OK(c, result)
}

// Review 审核机会（责任教师）
// POST /api/v1/offers/:id/review
func (h *OfferHandler) Review(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "机会ID不能为空")
		return
	}

	supervisorID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.ReviewOfferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.offerSvc.Review(c.Request.Context(), id, supervisorID, &req)
	if err != nil {
		h.handleOfferError(c, err)
		return
	}

	response.OK(c, result)
}

// SetVisibility 上下架
// PUT /api/v1/offers/:id/visibility
func (h *OfferHandler) SetVisibility(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "机会ID不能为空")
		return
	}

	companyID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.SetOfferVisibilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.offerSvc.SetVisibility(c.Request.Context(), id, companyID, req.Active)
	if err != nil {
		h.handleOfferError(c, err)
		return
	}

	response.OK(c, result)
}

// Get 机会详情
// GET /api/v1/offers/:id
func (h *OfferHandler) Get(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "机会ID不能为空")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	role, ok := MustGetRole(c)
	if !ok {
		return
	}

	result, err := h.offerSvc.Get(c.Request.Context(), id, callerID, role)
	if err != nil {
		h.handleOfferError(c, err)
		return
	}

	response.OK(c, result)
}

// ListVisible 学生可见机会列表
// GET /api/v1/offers
func (h *OfferHandler) ListVisible(c *gin.Context) {
	var req dto.OfferListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	offers, total, err := h.offerSvc.ListVisible(c.Request.Context(), &req)
	if err != nil {
		h.handleOfferError(c, err)
		return
	}

	response.OKPage(c, offers, total, req.GetPage(), req.GetPageSize())
}

// ListMine 本企业机会列表
// GET /api/v1/offers/mine
func (h *OfferHandler) ListMine(c *gin.Context) {
	companyID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.OfferListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	offers, total, err := h.offerSvc.ListMine(c.Request.Context(), companyID, &req)
	if err != nil {
		h.handleOfferError(c, err)
		return
	}

	response.OKPage(c, offers, total, req.GetPage(), req.GetPageSize())
}

// ListPendingReview 待审核机会队列（责任教师）
// GET /api/v1/offers/pending
func (h *OfferHandler) ListPendingReview(c *gin.Context) {
	var req dto.PaginationRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	offers, total, err := h.offerSvc.ListPendingReview(c.Request.Context(), &req)
	if err != nil {
		h.handleOfferError(c, err)
		return
	}

	response.OKPage(c, offers, total, req.GetPage(), req.GetPageSize())
}

// handleOfferError 统一处理机会模块业务错误
func (h *OfferHandler) handleOfferError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrOfferNotFound):
		response.NotFound(c, 14101, "机会不存在")
	case errors.Is(err, service.ErrOfferNotOwned):
		response.Forbidden(c, 14102, "无权操作他人发布的机会")
	case errors.Is(err, service.ErrOfferNotPending):
		response.BadRequest(c, 14103, "机会已审核，不可修改")
	case errors.Is(err, service.ErrOfferAlreadyReviewed):
		response.Conflict(c, 14104, "机会已被审核")
	case errors.Is(err, service.ErrOfferNotVisible):
		response.NotFound(c, 14105, "机会当前不可见")
	case errors.Is(err, service.ErrRejectionReasonRequired):
		response.BadRequest(c, 14106, "拒绝时必须填写理由")
	case errors.Is(err, service.ErrInvalidDateRange):
		response.BadRequest(c, 14107, "截止日期不得早于当前日期")
	case errors.Is(err, service.ErrRemunerationBelowScale):
		response.BadRequest(c, 14108, "报酬低于该类型与时长的法定最低标准")
	case errors.Is(err, service.ErrCompanyDeactivated):
		response.Forbidden(c, 11102, "企业账户已被停用")
	case errors.Is(err, pkgerrors.ErrOptimisticLock):
		response.Conflict(c, 14109, "数据已被其他操作修改，请刷新后重试")
	default:
		response.InternalError(c)
	}
}
