package repository

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	pkgerrors "unisports/backend/pkg/errors"
)

// ── 台账级业务错误（由 Service 层映射为对外错误）──

var (
	// ErrSlotTaken 目标三元组已存在 APPROVED 记录
	ErrSlotTaken = errors.New("该时段已被批准占用")
	// ErrNotPending 目标预约不处于 PENDING，状态机不允许该迁移
	ErrNotPending = errors.New("预约不处于待审批状态")
	// ErrDuplicateKey 主键 / 唯一键冲突（并发写入竞争的败者）
	ErrDuplicateKey = errors.New("记录已存在")
)

// Repository 所有 Repository 的聚合入口
type Repository struct {
	User     UserRepository
	Sport    SportRepository
	TimeSlot TimeSlotRepository
	Booking  BookingRepository
	Settings SettingsRepository
}

// NewRepository 创建 Repository 聚合
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		User:     NewUserRepo(db),
		Sport:    NewSportRepo(db),
		TimeSlot: NewTimeSlotRepo(db),
		Booking:  NewBookingRepo(db),
		Settings: NewSettingsRepo(db),
	}
}

// wrapStorage 将驱动级故障统一包装为 ErrStorageUnavailable，
// 业务语义错误（未找到 / 冲突 / 状态机）原样透传
func wrapStorage(err error) error {
	if err == nil ||
		errors.Is(err, gorm.ErrRecordNotFound) ||
		errors.Is(err, ErrSlotTaken) ||
		errors.Is(err, ErrNotPending) ||
		errors.Is(err, ErrDuplicateKey) {
		return err
	}
	return fmt.Errorf("%w: %v", pkgerrors.ErrStorageUnavailable, err)
}
