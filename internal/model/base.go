package model

import (
	"database/sql/driver"
	"fmt"
	"strings"
	"time"
)

// ── PostgreSQL TEXT[] 自定义类型 ──

// DateArray 对应 PostgreSQL TEXT[] 类型，存放 YYYY-MM-DD 日期串，
// 实现 GORM Scanner/Valuer 接口。
type DateArray []string

// Scan 将 PostgreSQL 返回的 {2025-06-01,2025-06-02} 文本解析为 []string。
func (a *DateArray) Scan(src interface{}) error {
	if src == nil {
		*a = nil
		return nil
	}
	var s string
	switch v := src.(type) {
	case []byte:
		s = string(v)
	case string:
		s = v
	default:
		return fmt.Errorf("DateArray.Scan: unsupported type %T", src)
	}
	s = strings.Trim(s, "{}")
	if s == "" {
		*a = DateArray{}
		return nil
	}
	parts := strings.Split(s, ",")
	arr := make(DateArray, 0, len(parts))
	for _, p := range parts {
		arr = append(arr, strings.Trim(strings.TrimSpace(p), `"`))
	}
	*a = arr
	return nil
}

// Value 将 []string 序列化为 PostgreSQL {a,b,c} 文本。
func (a DateArray) Value() (driver.Value, error) {
	if a == nil {
		return "{}", nil
	}
	return "{" + strings.Join(a, ",") + "}", nil
}

// Contains 判断日期是否在数组中
func (a DateArray) Contains(date string) bool {
	for _, d := range a {
		if d == date {
			return true
		}
	}
	return false
}

// BaseModel 通用审计字段（业务模型按需嵌入）
type BaseModel struct {
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}
