package model

// TimeSlot 时间段表 — 对应 time_slots
// 静态目录数据，按 StartHour 升序排列；
// 目录内任意两个时段的 [StartHour, EndHour) 区间不得重叠（播种时校验）。
type TimeSlot struct {
	SlotID    string  `gorm:"type:varchar(50);primaryKey" json:"slot_id"`
	Label     string  `gorm:"type:varchar(100);not null"  json:"label"` // 例如 "08:00 AM - 09:30 AM"
	StartHour float64 `gorm:"type:numeric(4,2);not null"  json:"start_hour"`
	EndHour   float64 `gorm:"type:numeric(4,2);not null"  json:"end_hour"`
}

// TableName 指定表名
func (TimeSlot) TableName() string { return "time_slots" }
