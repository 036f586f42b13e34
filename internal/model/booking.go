package model

import "time"

// 预约状态
const (
	BookingStatusPending  = "PENDING"
	BookingStatusApproved = "APPROVED"
	BookingStatusRejected = "REJECTED"
)

// 参与人数上下限
const (
	PlayerCountMin = 1
	PlayerCountMax = 20
)

// Booking 预约台账 — 对应 bookings
// 台账只追加和改状态，从不物理删除（保留为历史）。
// Seq 由数据库自增生成，用于相同 CreatedAt 时按插入顺序稳定排序。
// StudentName 为创建时的姓名快照，用户改名不回写历史记录。
type Booking struct {
	BookingID    string    `gorm:"type:uuid;primaryKey"        json:"booking_id"`
	Seq          int64     `gorm:"->;column:seq"               json:"-"`
	StudentID    string    `gorm:"type:varchar(20);not null"   json:"student_id"`
	StudentName  string    `gorm:"type:varchar(100);not null"  json:"student_name"`
	SportID      string    `gorm:"type:varchar(50);not null"   json:"sport_id"`
	Date         string    `gorm:"type:varchar(10);not null"   json:"date"` // YYYY-MM-DD，无时区分量
	SlotID       string    `gorm:"type:varchar(50);not null"   json:"slot_id"`
	Status       string    `gorm:"type:varchar(20);not null;default:'PENDING'" json:"status"`
	TeamName     *string   `gorm:"type:varchar(100)"           json:"team_name,omitempty"`
	PlayerCount  int       `gorm:"not null"                    json:"player_count"`
	AdminRemarks *string   `gorm:"type:text"                   json:"admin_remarks,omitempty"` // 仅 REJECTED 时必填
	CreatedAt    time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

// TableName 指定表名
func (Booking) TableName() string { return "bookings" }

// Terminal 判断预约是否已处于终态（APPROVED / REJECTED 不可再变更）
func (b *Booking) Terminal() bool {
	return b.Status == BookingStatusApproved || b.Status == BookingStatusRejected
}
