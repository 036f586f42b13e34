package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"unisports/backend/internal/dto"
	"unisports/backend/internal/model"
	"unisports/backend/internal/repository"
)

// SettingsService 场地设置业务接口
type SettingsService interface {
	Get(ctx context.Context) (*dto.SettingsResponse, error)
	Update(ctx context.Context, req *dto.UpdateSettingsRequest) (*dto.SettingsResponse, error)
}

type settingsService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewSettingsService 创建 SettingsService 实例
func NewSettingsService(repo *repository.Repository, logger *zap.Logger) SettingsService {
	return &settingsService{repo: repo, logger: logger}
}

func (s *settingsService) Get(ctx context.Context) (*dto.SettingsResponse, error) {
	settings, err := s.repo.Settings.Get(ctx)
	if err != nil {
		// 单行表尚未播种时返回默认值
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &dto.SettingsResponse{BlockedDates: []string{}}, nil
		}
		s.logger.Error("查询场地设置失败", zap.Error(err))
		return nil, err
	}
	return toSettingsResponse(settings), nil
}

func (s *settingsService) Update(ctx context.Context, req *dto.UpdateSettingsRequest) (*dto.SettingsResponse, error) {
	settings := &model.GroundSettings{
		ID:              1,
		MaintenanceMode: *req.MaintenanceMode,
		BlockedDates:    model.DateArray(req.BlockedDates),
	}
	if err := s.repo.Settings.Save(ctx, settings); err != nil {
		s.logger.Error("保存场地设置失败", zap.Error(err))
		return nil, err
	}
	s.logger.Info("场地设置已更新",
		zap.Bool("maintenance_mode", settings.MaintenanceMode),
		zap.Int("blocked_dates", len(settings.BlockedDates)))
	return toSettingsResponse(settings), nil
}

func toSettingsResponse(settings *model.GroundSettings) *dto.SettingsResponse {
	dates := []string(settings.BlockedDates)
	if dates == nil {
		dates = []string{}
	}
	return &dto.SettingsResponse{
		MaintenanceMode: settings.MaintenanceMode,
		BlockedDates:    dates,
	}
}
