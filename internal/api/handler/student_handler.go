package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"stagelink/backend/internal/dto"
	"stagelink/backend/internal/service"
	"stagelink/backend/pkg/response"
)

// StudentHandler 学生档案模块 HTTP 处理器
type StudentHandler struct {
	studentSvc service.StudentService
	adminSvc   service.AdminService
}

// NewStudentHandler 创建 StudentHandler
func NewStudentHandler(studentSvc service.StudentService, adminSvc service.AdminService) *StudentHandler {
	return &StudentHandler{studentSvc: studentSvc, adminSvc: adminSvc}
}

// GetMe 获取本人档案
// GET /api/v1/students/me
func (h *StudentHandler) GetMe(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	profile, err := h.studentSvc.GetProfile(c.Request.Context(), userID)
	if err != nil {
		h.handleStudentError(c, err)
		return
	}

	response.OK(c, profile)
}

// UpdateMe 更新本人档案
// PUT /api/v1/students/me
func (h *StudentHandler) UpdateMe(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	profile, err := h.studentSvc.UpdateProfile(c.Request.Context(), userID, userID, &req)
	if err != nil {
		h.handleStudentError(c, err)
		return
	}

	response.OK(c, profile)
}

// Get 获取指定学生档案（职能角色）
// GET /api/v1/students/:id
func (h *StudentHandler) Get(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "学生ID不能为空")
		return
	}

	profile, err := h.studentSvc.GetProfile(c.Request.Context(), id)
	if err != nil {
		h.handleStudentError(c, err)
		return
	}

	response.OK(c, profile)
}

// Update 更新指定学生档案（秘书职能）
// PUT /api/v1/students/:id
func (h *StudentHandler) Update(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "学生ID不能为空")
		return
	}

	callerID, ok := h.requireSecretaryDuty(c)
	if !ok {
		return
	}

	var req dto.UpdateStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	profile, err := h.studentSvc.UpdateProfile(c.Request.Context(), id, callerID, &req)
	if err != nil {
		h.handleStudentError(c, err)
		return
	}

	response.OK(c, profile)
}

// ValidateInsurance 确认学生责任保险（秘书职能）
// POST /api/v1/students/:id/insurance
func (h *StudentHandler) ValidateInsurance(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "学生ID不能为空")
		return
	}

	callerID, ok := h.requireSecretaryDuty(c)
	if !ok {
		return
	}

	profile, err := h.studentSvc.ValidateInsurance(c.Request.Context(), id, callerID)
	if err != nil {
		h.handleStudentError(c, err)
		return
	}

	response.OK(c, profile)
}

// List 学生列表（职能角色）
// GET /api/v1/students
func (h *StudentHandler) List(c *gin.Context) {
	var req dto.StudentListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	students, total, err := h.studentSvc.List(c.Request.Context(), &req)
	if err != nil {
		h.handleStudentError(c, err)
		return
	}

	response.OKPage(c, students, total, req.GetPage(), req.GetPageSize())
}

// ListVisible 可见学生列表（企业浏览）
// GET /api/v1/students/visible
func (h *StudentHandler) ListVisible(c *gin.Context) {
	var req dto.StudentListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	students, total, err := h.studentSvc.ListVisible(c.Request.Context(), &req)
	if err != nil {
		h.handleStudentError(c, err)
		return
	}

	response.OKPage(c, students, total, req.GetPage(), req.GetPageSize())
}

// requireSecretaryDuty 校验调用者可执行秘书职能
func (h *StudentHandler) requireSecretaryDuty(c *gin.Context) (string, bool) {
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

// handleStudentError 统一处理学生模块业务错误
func (h *StudentHandler) handleStudentError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrStudentNotFound):
		response.NotFound(c, 12101, "学生档案不存在")
	default:
		response.InternalError(c)
	}
}
