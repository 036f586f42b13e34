package service

import (
	"go.uber.org/zap"

	"unisports/backend/config"
	"unisports/backend/internal/repository"
	"unisports/backend/pkg/jwt"
	"unisports/backend/pkg/mq"
	"unisports/backend/pkg/redis"
)

// Service 所有 Service 的聚合入口
type Service struct {
	Auth     AuthService
	User     UserService
	Catalog  CatalogService
	Booking  BookingService
	Settings SettingsService
	Export   ExportService
}

// NewService 创建 Service 聚合
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	rdb *redis.Client,
	pub *mq.Publisher,
	logger *zap.Logger,
) *Service {
	return &Service{
		Auth:     NewAuthService(cfg, repo, jwtMgr, rdb, logger),
		User:     NewUserService(repo, logger),
		Catalog:  NewCatalogService(repo, logger),
		Booking:  NewBookingService(repo, pub, logger),
		Settings: NewSettingsService(repo, logger),
		Export:   NewExportService(repo, logger),
	}
}
