package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"unisports/backend/internal/service"
	pkgerrors "unisports/backend/pkg/errors"
	"unisports/backend/pkg/response"
)

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Auth     *AuthHandler
	User     *UserHandler
	Catalog  *CatalogHandler
	Booking  *BookingHandler
	Settings *SettingsHandler
	Export   *ExportHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Auth:     NewAuthHandler(svc.Auth),
		User:     NewUserHandler(svc.User),
		Catalog:  NewCatalogHandler(svc.Catalog),
		Booking:  NewBookingHandler(svc.Booking),
		Settings: NewSettingsHandler(svc.Settings),
		Export:   NewExportHandler(svc.Export),
	}
}

// internalOrStorage 未被业务分支识别的错误统一收口：
// 存储层故障返回 503，其余返回 500
func internalOrStorage(c *gin.Context, err error) {
	if errors.Is(err, pkgerrors.ErrStorageUnavailable) {
		response.StorageUnavailable(c)
		return
	}
	response.InternalError(c)
}
