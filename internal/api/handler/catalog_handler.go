package handler

import (
	"github.com/gin-gonic/gin"

	"unisports/backend/internal/service"
	"unisports/backend/pkg/response"
)

// CatalogHandler 静态目录 HTTP 处理器
type CatalogHandler struct {
	catalogSvc service.CatalogService
}

// NewCatalogHandler 创建 CatalogHandler
func NewCatalogHandler(catalogSvc service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogSvc: catalogSvc}
}

// ListSports 运动项目列表
// GET /api/v1/catalog/sports
func (h *CatalogHandler) ListSports(c *gin.Context) {
	sports, err := h.catalogSvc.ListSports(c.Request.Context())
	if err != nil {
		internalOrStorage(c, err)
		return
	}
	response.OK(c, sports)
}

// ListTimeSlots 时间段列表
// GET /api/v1/catalog/time-slots
func (h *CatalogHandler) ListTimeSlots(c *gin.Context) {
	slots, err := h.catalogSvc.ListTimeSlots(c.Request.Context())
	if err != nil {
		internalOrStorage(c, err)
		return
	}
	response.OK(c, slots)
}
