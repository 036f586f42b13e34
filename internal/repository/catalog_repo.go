package repository

import (
	"context"

	"gorm.io/gorm"

	"unisports/backend/internal/model"
)

// SportRepository 运动项目目录访问接口（只读 + 播种）
type SportRepository interface {
	List(ctx context.Context) ([]model.Sport, error)
	GetByID(ctx context.Context, id string) (*model.Sport, error)
	Seed(ctx context.Context, sports []model.Sport) error
}

// TimeSlotRepository 时间段目录访问接口（只读 + 播种）
type TimeSlotRepository interface {
	List(ctx context.Context) ([]model.TimeSlot, error)
	GetByID(ctx context.Context, id string) (*model.TimeSlot, error)
	Seed(ctx context.Context, slots []model.TimeSlot) error
}

// ── Sport ──

type sportRepo struct {
	db *gorm.DB
}

// NewSportRepo 创建 SportRepository 实例
func NewSportRepo(db *gorm.DB) SportRepository {
	return &sportRepo{db: db}
}

func (r *sportRepo) List(ctx context.Context) ([]model.Sport, error) {
	var sports []model.Sport
	if err := r.db.WithContext(ctx).Order("sport_id").Find(&sports).Error; err != nil {
		return nil, wrapStorage(err)
	}
	return sports, nil
}

func (r *sportRepo) GetByID(ctx context.Context, id string) (*model.Sport, error) {
	var sport model.Sport
	if err := r.db.WithContext(ctx).Where("sport_id = ?", id).First(&sport).Error; err != nil {
		return nil, wrapStorage(err)
	}
	return &sport, nil
}

// Seed 目录为空时写入种子数据，已播种则跳过
func (r *sportRepo) Seed(ctx context.Context, sports []model.Sport) error {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.Sport{}).Count(&count).Error; err != nil {
		return wrapStorage(err)
	}
	if count > 0 {
		return nil
	}
	return wrapStorage(r.db.WithContext(ctx).Create(&sports).Error)
}

// ── TimeSlot ──

type timeSlotRepo struct {
	db *gorm.DB
}

// NewTimeSlotRepo 创建 TimeSlotRepository 实例
func NewTimeSlotRepo(db *gorm.DB) TimeSlotRepository {
	return &timeSlotRepo{db: db}
}

func (r *timeSlotRepo) List(ctx context.Context) ([]model.TimeSlot, error) {
	var slots []model.TimeSlot
	if err := r.db.WithContext(ctx).Order("start_hour").Find(&slots).Error; err != nil {
		return nil, wrapStorage(err)
	}
	return slots, nil
}

func (r *timeSlotRepo) GetByID(ctx context.Context, id string) (*model.TimeSlot, error) {
	var slot model.TimeSlot
	if err := r.db.WithContext(ctx).Where("slot_id = ?", id).First(&slot).Error; err != nil {
		return nil, wrapStorage(err)
	}
	return &slot, nil
}

func (r *timeSlotRepo) Seed(ctx context.Context, slots []model.TimeSlot) error {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.TimeSlot{}).Count(&count).Error; err != nil {
		return wrapStorage(err)
	}
	if count > 0 {
		return nil
	}
	return wrapStorage(r.db.WithContext(ctx).Create(&slots).Error)
}
