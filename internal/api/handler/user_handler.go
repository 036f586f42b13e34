package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"unisports/backend/internal/dto"
	"unisports/backend/internal/service"
	"unisports/backend/pkg/response"
)

// UserHandler 用户管理 HTTP 处理器（管理员侧）
type UserHandler struct {
	userSvc service.UserService
}

// NewUserHandler 创建 UserHandler
func NewUserHandler(userSvc service.UserService) *UserHandler {
	return &UserHandler{userSvc: userSvc}
}

// ListStudents 学生列表
// GET /api/v1/admin/students
func (h *UserHandler) ListStudents(c *gin.Context) {
	students, err := h.userSvc.ListStudents(c.Request.Context())
	if err != nil {
		internalOrStorage(c, err)
		return
	}
	response.OK(c, students)
}

// SetBlocked 封禁/解封学生
// PUT /api/v1/admin/students/:id/blocked
func (h *UserHandler) SetBlocked(c *gin.Context) {
	var req dto.SetBlockedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	err := h.userSvc.SetBlocked(c.Request.Context(), c.Param("id"), *req.Blocked)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			response.NotFound(c, 12001, "用户不存在")
		case errors.Is(err, service.ErrCannotBlockAdmin):
			response.Forbidden(c, 12002, "不能封禁管理员账号")
		default:
			internalOrStorage(c, err)
		}
		return
	}

	response.OK(c, nil)
}
