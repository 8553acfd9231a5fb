package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"stagelink/backend/internal/dto"
	"stagelink/backend/internal/service"
	"stagelink/backend/pkg/response"
)

// AdminHandler 账户管理模块 HTTP 处理器
type AdminHandler struct {
	adminSvc service.AdminService
}

// NewAdminHandler 创建 AdminHandler
func NewAdminHandler(adminSvc service.AdminService) *AdminHandler {
	return &AdminHandler{adminSvc: adminSvc}
}

// CreateSupervisor 创建责任教师账户
// POST /api/v1/admin/supervisors
func (h *AdminHandler) CreateSupervisor(c *gin.Context) {
	callerID, ok := h.requireSecretaryDuty(c)
	if !ok {
		return
	}

	var req dto.CreateSupervisorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.adminSvc.CreateSupervisor(c.Request.Context(), callerID, &req)
	if err != nil {
		h.handleAdminError(c, err)
		return
	}

	response.Created(c, result)
}

// CreateSecretary 创建秘书账户
// POST /api/v1/admin/secretaries
func (h *AdminHandler) CreateSecretary(c *gin.Context) {
	callerID, ok := h.requireSecretaryDuty(c)
	if !ok {
		return
	}

	var req dto.CreateSecretaryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.adminSvc.CreateSecretary(c.Request.Context(), callerID, &req)
	if err != nil {
		h.handleAdminError(c, err)
		return
	}

	response.Created(c, result)
}

// CreateStudent 代建学生账户
// POST /api/v1/admin/students
func (h *AdminHandler) CreateStudent(c *gin.Context) {
	callerID, ok := h.requireSecretaryDuty(c)
	if !ok {
		return
	}

	var req dto.CreateStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.adminSvc.CreateStudent(c.Request.Context(), callerID, &req)
	if err != nil {
		h.handleAdminError(c, err)
		return
	}

	response.Created(c, result)
}

// SetSecretaryLeave 设置秘书休假状态
// PUT /api/v1/admin/secretaries/:id/leave
func (h *AdminHandler) SetSecretaryLeave(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "秘书ID不能为空")
		return
	}

	var req dto.SetSecretaryLeaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.adminSvc.SetSecretaryLeave(c.Request.Context(), id, req.OnLeave)
	if err != nil {
		h.handleAdminError(c, err)
		return
	}

	response.OK(c, result)
}

// SetSupervisorSecretaryRights 授予/收回教师的秘书权限
// PUT /api/v1/admin/supervisors/:id/secretary-rights
func (h *AdminHandler) SetSupervisorSecretaryRights(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "教师ID不能为空")
		return
	}

	var req struct {
		Rights bool `json:"rights"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.adminSvc.SetSupervisorSecretaryRights(c.Request.Context(), id, req.Rights)
	if err != nil {
		h.handleAdminError(c, err)
		return
	}

	response.OK(c, result)
}

// SetCompanyActive 启用/停用企业账户
// PUT /api/v1/admin/companies/:id/active
func (h *AdminHandler) SetCompanyActive(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "企业ID不能为空")
		return
	}

	if _, ok := h.requireSecretaryDuty(c); !ok {
		return
	}

	var req dto.SetCompanyActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.adminSvc.SetCompanyActive(c.Request.Context(), id, req.Active)
	if err != nil {
		h.handleAdminError(c, err)
		return
	}

	response.OK(c, result)
}

// ListSupervisors 责任教师列表
// GET /api/v1/admin/supervisors
func (h *AdminHandler) ListSupervisors(c *gin.Context) {
	var req dto.PaginationRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	supervisors, total, err := h.adminSvc.ListSupervisors(c.Request.Context(), &req)
	if err != nil {
		h.handleAdminError(c, err)
		return
	}

	response.OKPage(c, supervisors, total, req.GetPage(), req.GetPageSize())
}

// ListSecretaries 秘书列表
// GET /api/v1/admin/secretaries
func (h *AdminHandler) ListSecretaries(c *gin.Context) {
	var req dto.PaginationRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	secretaries, total, err := h.adminSvc.ListSecretaries(c.Request.Context(), &req)
	if err != nil {
		h.handleAdminError(c, err)
		return
	}

	response.OKPage(c, secretaries, total, req.GetPage(), req.GetPageSize())
}

// requireSecretaryDuty 校验调用者可执行秘书职能
func (h *AdminHandler) requireSecretaryDuty(c *gin.Context) (string, bool) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return "", false
	}
	role, ok := MustGetRole(c)
	if !ok {
		return "", false
	}

	allowed, err := h.adminSvc.CanActAsSecretary(c.Request.Context(), callerID, role)
	if err != nil {
		response.InternalError(c)
		return "", false
	}
	if !allowed {
		response.Forbidden(c, 12102, "无权执行秘书职能")
		return "", false
	}
	return callerID, true
}

// handleAdminError 统一处理账户管理模块业务错误
func (h *AdminHandler) handleAdminError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrEmailTaken):
		response.Conflict(c, 11103, "该邮箱已被注册")
	case errors.Is(err, service.ErrStudentNumberTaken):
		response.Conflict(c, 11104, "该学号已被注册")
	case errors.Is(err, service.ErrSupervisorNotFound):
		response.NotFound(c, 13201, "责任教师不存在")
	case errors.Is(err, service.ErrSecretaryNotFound):
		response.NotFound(c, 13202, "秘书不存在")
	case errors.Is(err, service.ErrCompanyNotFound):
		response.NotFound(c, 13101, "企业档案不存在")
	default:
		response.InternalError(c)
	}
}
