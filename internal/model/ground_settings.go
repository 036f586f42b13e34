package model

import "time"

// GroundSettings 场地设置 — 对应 ground_settings（单行表，id 恒为 1）
// MaintenanceMode 开启时暂停接受新预约；BlockedDates 为管理员关闭预约的日期
type GroundSettings struct {
	ID              int       `gorm:"primaryKey"             json:"-"`
	MaintenanceMode bool      `gorm:"not null;default:false" json:"maintenance_mode"`
	BlockedDates    DateArray `gorm:"type:text[]"            json:"blocked_dates"`
	UpdatedAt       time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName 指定表名
func (GroundSettings) TableName() string { return "ground_settings" }
