package handler

import (
	"github.com/gin-gonic/gin"

	"unisports/backend/internal/dto"
	"unisports/backend/internal/service"
	"unisports/backend/pkg/response"
)

// SettingsHandler 场地设置 HTTP 处理器
type SettingsHandler struct {
	settingsSvc service.SettingsService
}

// NewSettingsHandler 创建 SettingsHandler
func NewSettingsHandler(settingsSvc service.SettingsService) *SettingsHandler {
	return &SettingsHandler{settingsSvc: settingsSvc}
}

// Get 查询场地设置（学生端也可见，用于提示维护状态）
// GET /api/v1/settings
func (h *SettingsHandler) Get(c *gin.Context) {
	settings, err := h.settingsSvc.Get(c.Request.Context())
	if err != nil {
		internalOrStorage(c, err)
		return
	}
	response.OK(c, settings)
}

// Update 管理员更新场地设置
// PUT /api/v1/admin/settings
func (h *SettingsHandler) Update(c *gin.Context) {
	var req dto.UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	settings, err := h.settingsSvc.Update(c.Request.Context(), &req)
	if err != nil {
		internalOrStorage(c, err)
		return
	}
	response.OK(c, settings)
}
