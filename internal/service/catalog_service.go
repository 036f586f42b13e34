package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"unisports/backend/internal/dto"
	"unisports/backend/internal/model"
	"unisports/backend/internal/repository"
)

// CatalogService 目录业务接口。
// 运动项目与时间段为静态参照数据，仅在进程启动时播种，
// 运行期只读（"新增运动项目"不在本期范围）。
type CatalogService interface {
	ListSports(ctx context.Context) ([]dto.SportResponse, error)
	ListTimeSlots(ctx context.Context) ([]dto.TimeSlotResponse, error)
	EnsureSeeded(ctx context.Context) error
}

type catalogService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewCatalogService 创建 CatalogService 实例
func NewCatalogService(repo *repository.Repository, logger *zap.Logger) CatalogService {
	return &catalogService{repo: repo, logger: logger}
}

func (s *catalogService) ListSports(ctx context.Context) ([]dto.SportResponse, error) {
	sports, err := s.repo.Sport.List(ctx)
	if err != nil {
		s.logger.Error("查询运动项目失败", zap.Error(err))
		return nil, err
	}

	resp := make([]dto.SportResponse, 0, len(sports))
	for _, sp := range sports {
		resp = append(resp, dto.SportResponse{ID: sp.SportID, Name: sp.Name, Icon: sp.Icon})
	}
	return resp, nil
}

func (s *catalogService) ListTimeSlots(ctx context.Context) ([]dto.TimeSlotResponse, error) {
	slots, err := s.repo.TimeSlot.List(ctx)
	if err != nil {
		s.logger.Error("查询时间段失败", zap.Error(err))
		return nil, err
	}

	resp := make([]dto.TimeSlotResponse, 0, len(slots))
	for _, sl := range slots {
		resp = append(resp, dto.TimeSlotResponse{
			ID:        sl.SlotID,
			Label:     sl.Label,
			StartHour: sl.StartHour,
			EndHour:   sl.EndHour,
		})
	}
	return resp, nil
}

// EnsureSeeded 播种静态目录（幂等）。
// 时段不重叠的目录不变式只在这里校验一次，请求期不再重复检查。
func (s *catalogService) EnsureSeeded(ctx context.Context) error {
	if err := model.ValidateTimeSlots(model.DefaultTimeSlots); err != nil {
		return fmt.Errorf("时间段目录配置非法: %w", err)
	}

	if err := s.repo.Sport.Seed(ctx, model.DefaultSports); err != nil {
		return fmt.Errorf("播种运动项目失败: %w", err)
	}
	if err := s.repo.TimeSlot.Seed(ctx, model.DefaultTimeSlots); err != nil {
		return fmt.Errorf("播种时间段失败: %w", err)
	}
	if err := s.repo.Settings.EnsureRow(ctx); err != nil {
		return fmt.Errorf("初始化场地设置失败: %w", err)
	}

	s.logger.Info("静态目录播种完成",
		zap.Int("sports", len(model.DefaultSports)),
		zap.Int("time_slots", len(model.DefaultTimeSlots)),
	)
	return nil
}
