package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"unisports/backend/internal/dto"
	"unisports/backend/internal/service"
	"unisports/backend/pkg/jwt"
	"unisports/backend/pkg/response"
)

// AuthHandler 认证模块 HTTP 处理器
type AuthHandler struct {
	authSvc service.AuthService
}

// NewAuthHandler 创建 AuthHandler
func NewAuthHandler(authSvc service.AuthService) *AuthHandler {
	return &AuthHandler{authSvc: authSvc}
}

// Login 用户登录
// POST /api/v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.authSvc.Login(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCredentials):
			response.Error(c, http.StatusUnauthorized, 11001, "账号或密码错误")
		case errors.Is(err, service.ErrAccountBlocked):
			response.Forbidden(c, 11002, "账号已被管理员封禁")
		default:
			internalOrStorage(c, err)
		}
		return
	}

	response.OK(c, result)
}

// Refresh 刷新 Token 对
// POST /api/v1/auth/refresh
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req dto.RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.authSvc.Refresh(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRefreshToken):
			response.Error(c, http.StatusUnauthorized, 11004, "refresh token 无效或已过期")
		case errors.Is(err, service.ErrAccountBlocked):
			response.Forbidden(c, 11002, "账号已被管理员封禁")
		default:
			internalOrStorage(c, err)
		}
		return
	}

	response.OK(c, result)
}

// Register 学生注册
// POST /api/v1/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.authSvc.Register(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrDuplicateID) {
			response.Conflict(c, 11003, "该学号已注册")
			return
		}
		internalOrStorage(c, err)
		return
	}

	response.Created(c, result)
}

// Logout 用户登出，将当前 Token 加入黑名单
// POST /api/v1/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	claims, ok := c.Get("claims")
	if !ok {
		response.OK(c, nil)
		return
	}
	cl := claims.(*jwt.Claims)
	if err := h.authSvc.Logout(c.Request.Context(), cl.ID, cl.ExpiresAt.Time); err != nil {
		internalOrStorage(c, err)
		return
	}
	response.OK(c, nil)
}

// Me 当前用户信息
// GET /api/v1/auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	user, err := h.authSvc.GetCurrentUser(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			response.NotFound(c, 12001, "用户不存在")
			return
		}
		internalOrStorage(c, err)
		return
	}

	response.OK(c, user)
}
