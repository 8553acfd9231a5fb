package handler

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"

	"stagelink/backend/internal/dto"
	"stagelink/backend/internal/service"
	"stagelink/backend/pkg/response"
)

// AuthHandler 认证模块 HTTP 处理器
type AuthHandler struct {
	authSvc service.AuthService
}

// NewAuthHandler 创建 AuthHandler
func NewAuthHandler(authSvc service.AuthService) *AuthHandler {
	return &AuthHandler{authSvc: authSvc}
}

// Login 登录
// POST /api/v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.authSvc.Login(c.Request.Context(), &req)
	if err != nil {
		h.handleAuthError(c, err)
		return
	}

	response.OK(c, result)
}

// RegisterStudent 学生注册
// POST /api/v1/auth/register/student
func (h *AuthHandler) RegisterStudent(c *gin.Context) {
	var req dto.RegisterStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.authSvc.RegisterStudent(c.Request.Context(), &req)
	if err != nil {
		h.handleAuthError(c, err)
		return
	}

	response.Created(c, result)
}

// RegisterCompany 企业注册
// POST /api/v1/auth/register/company
func (h *AuthHandler) RegisterCompany(c *gin.Context) {
	var req dto.RegisterCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.authSvc.RegisterCompany(c.Request.Context(), &req)
	if err != nil {
		h.handleAuthError(c, err)
		return
	}

	response.Created(c, result)
}

// RefreshToken 刷新 Token 对
// POST /api/v1/auth/refresh
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	var req dto.RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.authSvc.RefreshToken(c.Request.Context(), &req)
	if err != nil {
		h.handleAuthError(c, err)
		return
	}

	response.OK(c, result)
}

// Logout 注销（当前 access token 加入黑名单）
// POST /api/v1/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	jti, _ := c.Get("jti")
	exp, _ := c.Get("token_exp")

	jtiStr, _ := jti.(string)
	expTime, _ := exp.(time.Time)
	if jtiStr == "" {
		response.Unauthorized(c, 10002, "未认证")
		return
	}

	if err := h.authSvc.Logout(c.Request.Context(), jtiStr, expTime); err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, gin.H{"message": "已注销"})
}

// ChangePassword 修改密码
// POST /api/v1/auth/change-password
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	if err := h.authSvc.ChangePassword(c.Request.Context(), userID, &req); err != nil {
		h.handleAuthError(c, err)
		return
	}

	response.OK(c, gin.H{"message": "密码修改成功"})
}

// handleAuthError 统一处理认证模块业务错误
func (h *AuthHandler) handleAuthError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		response.Unauthorized(c, 11101, "邮箱或密码错误")
	case errors.Is(err, service.ErrCompanyDeactivated):
		response.Forbidden(c, 11102, "企业账户已被停用")
	case errors.Is(err, service.ErrEmailTaken):
		response.Conflict(c, 11103, "该邮箱已被注册")
	case errors.Is(err, service.ErrStudentNumberTaken):
		response.Conflict(c, 11104, "该学号已被注册")
	case errors.Is(err, service.ErrSIRETTaken):
		response.Conflict(c, 11105, "该 SIRET 编号已被注册")
	case errors.Is(err, service.ErrInvalidRefreshToken):
		response.Unauthorized(c, 11106, "refresh token 无效或已过期")
	case errors.Is(err, service.ErrWrongOldPassword):
		response.BadRequest(c, 11107, "原密码错误")
	case errors.Is(err, service.ErrUserNotFound):
		response.NotFound(c, 11108, "用户不存在")
	default:
		response.InternalError(c)
	}
}
