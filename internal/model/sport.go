package model

// Sport 运动项目表 — 对应 sports
// 静态目录数据，启动时播种后不再变更
type Sport struct {
	SportID string `gorm:"type:varchar(50);primaryKey" json:"sport_id"`
	Name    string `gorm:"type:varchar(100);not null"  json:"name"`
	Icon    string `gorm:"type:varchar(20);not null"   json:"icon"`
}

// TableName 指定表名
func (Sport) TableName() string { return "sports" }
