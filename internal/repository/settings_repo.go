package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"unisports/backend/internal/model"
)

// 单行表固定主键
const settingsRowID = 1

// SettingsRepository 场地设置访问接口
type SettingsRepository interface {
	Get(ctx context.Context) (*model.GroundSettings, error)
	Save(ctx context.Context, settings *model.GroundSettings) error
	EnsureRow(ctx context.Context) error
}

// settingsRepo SettingsRepository 的 GORM 实现
type settingsRepo struct {
	db *gorm.DB
}

// NewSettingsRepo 创建 SettingsRepository 实例
func NewSettingsRepo(db *gorm.DB) SettingsRepository {
	return &settingsRepo{db: db}
}

func (r *settingsRepo) Get(ctx context.Context) (*model.GroundSettings, error) {
	var settings model.GroundSettings
	if err := r.db.WithContext(ctx).Where("id = ?", settingsRowID).First(&settings).Error; err != nil {
		return nil, wrapStorage(err)
	}
	return &settings, nil
}

func (r *settingsRepo) Save(ctx context.Context, settings *model.GroundSettings) error {
	settings.ID = settingsRowID
	return wrapStorage(r.db.WithContext(ctx).Save(settings).Error)
}

// EnsureRow 保证单行记录存在（启动时调用，幂等）
func (r *settingsRepo) EnsureRow(ctx context.Context) error {
	row := &model.GroundSettings{ID: settingsRowID, BlockedDates: model.DateArray{}}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(row).Error
	return wrapStorage(err)
}
