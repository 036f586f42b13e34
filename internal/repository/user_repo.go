package repository

import (
	"context"

	"gorm.io/gorm"

	"unisports/backend/internal/model"
)

// UserRepository 用户数据访问接口
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id string) (*model.User, error)
	ListStudents(ctx context.Context) ([]model.User, error)
	SetBlocked(ctx context.Context, id string, blocked bool) error
}

// userRepo UserRepository 的 GORM 实现
type userRepo struct {
	db *gorm.DB
}

// NewUserRepo 创建 UserRepository 实例
func NewUserRepo(db *gorm.DB) UserRepository {
	return &userRepo{db: db}
}

func (r *userRepo) Create(ctx context.Context, user *model.User) error {
	err := r.db.WithContext(ctx).Create(user).Error
	// 并发注册同一学号时，先查后插的败者在此触发主键冲突
	if isUniqueViolation(err) {
		return ErrDuplicateKey
	}
	return wrapStorage(err)
}

func (r *userRepo) GetByID(ctx context.Context, id string) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).
		Where("user_id = ?", id).
		First(&user).Error
	if err != nil {
		return nil, wrapStorage(err)
	}
	return &user, nil
}

func (r *userRepo) ListStudents(ctx context.Context) ([]model.User, error) {
	var users []model.User
	err := r.db.WithContext(ctx).
		Where("role = ?", model.RoleStudent).
		Order("created_at DESC").
		Find(&users).Error
	if err != nil {
		return nil, wrapStorage(err)
	}
	return users, nil
}

// SetBlocked 设置目标封禁状态（幂等），读改写在同一语句内完成
func (r *userRepo) SetBlocked(ctx context.Context, id string, blocked bool) error {
	res := r.db.WithContext(ctx).
		Model(&model.User{}).
		Where("user_id = ?", id).
		Update("blocked", blocked)
	if res.Error != nil {
		return wrapStorage(res.Error)
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
