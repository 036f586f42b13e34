package model

// 用户角色
const (
	RoleStudent = "STUDENT"
	RoleAdmin   = "ADMIN"
)

// User 用户表 — 对应 users
// UserID 为注册时提交的学号（管理员为账号名），创建后不可变。
// Blocked 是管理员在创建后唯一可修改的字段。
type User struct {
	UserID       string  `gorm:"type:varchar(20);primaryKey"                 json:"user_id"`
	Name         string  `gorm:"type:varchar(100);not null"                  json:"name"`
	Email        string  `gorm:"type:varchar(255);not null"                  json:"email"`
	PasswordHash string  `gorm:"type:varchar(255);not null"                  json:"-"`
	Role         string  `gorm:"type:varchar(20);not null;default:'STUDENT'" json:"role"`
	Department   *string `gorm:"type:varchar(100)"                           json:"department,omitempty"` // 仅学生
	Semester     *string `gorm:"type:varchar(20)"                            json:"semester,omitempty"`   // 仅学生
	Blocked      bool    `gorm:"not null;default:false"                      json:"blocked"`
	BaseModel
}

// TableName 指定表名
func (User) TableName() string { return "users" }
