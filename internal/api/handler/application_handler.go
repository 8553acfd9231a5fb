package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"stagelink/backend/internal/dto"
	"stagelink/backend/internal/service"
	pkgerrors "stagelink/backend/pkg/errors"
	"stagelink/backend/pkg/response"
)

// ApplicationHandler 申请模块 HTTP 处理器
type ApplicationHandler struct {
	appSvc service.ApplicationService
}

// NewApplicationHandler 创建 ApplicationHandler
func NewApplicationHandler(appSvc service.ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{appSvc: appSvc}
}

// Submit 提交申请（学生）
// POST /api/v1/applications
func (h *ApplicationHandler) Submit(c *gin.Context) {
	studentID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.SubmitApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.appSvc.Submit(c.Request.Context(), studentID, &req)
	if err != nil {
		h.handleApplicationError(c, err)
		return
	}

	response.Created(c, result)
}

// Withdraw 放弃申请（学生）
// POST /api/v1/applications/:id/withdraw
func (h *ApplicationHandler) Withdraw(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "申请ID不能为空")
		return
	}

	studentID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	result, err := h.appSvc.Withdraw(c.Request.Context(), id, studentID)
	if err != nil {
		h.handleApplicationError(c, err)
		return
	}

	response.OK(c, result)
}

// CompanyDecide 企业初审
// POST /api/v1/applications/:id/company-decision
func (h *ApplicationHandler) CompanyDecide(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "申请ID不能为空")
		return
	}

	companyID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.CompanyDecisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.appSvc.CompanyDecide(c.Request.Context(), id, companyID, &req)
	if err != nil {
		h.handleApplicationError(c, err)
		return
	}

	response.OK(c, result)
}

// SupervisorDecide 责任教师终审
// POST /api/v1/applications/:id/supervisor-decision
func (h *ApplicationHandler) SupervisorDecide(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "申请ID不能为空")
		return
	}

	supervisorID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.SupervisorDecisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.appSvc.SupervisorDecide(c.Request.Context(), id, supervisorID, &req)
	if err != nil {
		h.handleApplicationError(c, err)
		return
	}

	response.OK(c, result)
}

// Get 申请详情
// GET /api/v1/applications/:id
func (h *ApplicationHandler) Get(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "申请ID不能为空")
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

	result, err := h.appSvc.Get(c.Request.Context(), id, callerID, role)
	if err != nil {
		h.handleApplicationError(c, err)
		return
	}

	response.OK(c, result)
}

// ListMine 本人申请列表（学生）
// GET /api/v1/applications/mine
func (h *ApplicationHandler) ListMine(c *gin.Context) {
	studentID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.ApplicationListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	apps, total, err := h.appSvc.ListMine(c.Request.Context(), studentID, &req)
	if err != nil {
		h.handleApplicationError(c, err)
		return
	}

	response.OKPage(c, apps, total, req.GetPage(), req.GetPageSize())
}

// ListForOffer 某机会收到的申请（企业）
// GET /api/v1/offers/:id/applications
func (h *ApplicationHandler) ListForOffer(c *gin.Context) {
	offerID := c.Param("id")
	if offerID == "" {
		response.BadRequest(c, 10001, "机会ID不能为空")
		return
	}

	companyID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.ApplicationListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	apps, total, err := h.appSvc.ListForOffer(c.Request.Context(), offerID, companyID, &req)
	if err != nil {
		h.handleApplicationError(c, err)
		return
	}

	response.OKPage(c, apps, total, req.GetPage(), req.GetPageSize())
}

// ListPendingValidation 待终审申请队列（责任教师）
// GET /api/v1/applications/pending
func (h *ApplicationHandler) ListPendingValidation(c *gin.Context) {
	var req dto.PaginationRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	apps, total, err := h.appSvc.ListPendingValidation(c.Request.Context(), &req)
	if err != nil {
		h.handleApplicationError(c, err)
		return
	}

	response.OKPage(c, apps, total, req.GetPage(), req.GetPageSize())
}

// handleApplicationError 统一处理申请模块业务错误
func (h *ApplicationHandler) handleApplicationError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrApplicationNotFound):
		response.NotFound(c, 15101, "申请不存在")
	case errors.Is(err, service.ErrApplicationNotOwned):
		response.Forbidden(c, 15102, "无权操作他人的申请")
	case errors.Is(err, service.ErrDuplicateApplication):
		response.Conflict(c, 15103, "已对该机会提交过申请")
	case errors.Is(err, service.ErrStudentAlreadyPlaced):
		response.BadRequest(c, 15104, "学生已获得分配，不可再申请")
	case errors.Is(err, service.ErrApplicationTerminal):
		response.Conflict(c, 15105, "申请已处于终态，不可再变更")
	case errors.Is(err, service.ErrApplicationNotSubmitted):
		response.BadRequest(c, 15106, "申请不在待企业处理状态")
	case errors.Is(err, service.ErrApplicationNotAccepted):
		response.BadRequest(c, 15107, "申请不在待教师终审状态")
	case errors.Is(err, service.ErrRejectionReasonRequired):
		response.BadRequest(c, 14106, "拒绝时必须填写理由")
	case errors.Is(err, service.ErrOfferNotFound):
		response.NotFound(c, 14101, "机会不存在")
	case errors.Is(err, service.ErrOfferNotOwned):
		response.Forbidden(c, 14102, "无权操作他人发布的机会")
	case errors.Is(err, service.ErrOfferNotVisible):
		response.NotFound(c, 14105, "机会当前不可见")
	case errors.Is(err, service.ErrUserNotFound):
		response.NotFound(c, 11108, "用户不存在")
	case errors.Is(err, pkgerrors.ErrOptimisticLock):
		response.Conflict(c, 15108, "数据已被其他操作修改，请刷新后重试")
	default:
		response.InternalError(c)
	}
}
