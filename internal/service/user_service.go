package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"unisports/backend/internal/dto"
	"unisports/backend/internal/model"
	"unisports/backend/internal/repository"
)

// ── 用户模块业务错误 ──

var ErrCannotBlockAdmin = errors.New("不能封禁管理员账号")

// UserService 用户管理业务接口（管理员侧）
type UserService interface {
	ListStudents(ctx context.Context) ([]dto.UserResponse, error)
	SetBlocked(ctx context.Context, id string, blocked bool) error
}

type userService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewUserService 创建 UserService 实例
func NewUserService(repo *repository.Repository, logger *zap.Logger) UserService {
	return &userService{repo: repo, logger: logger}
}

func (s *userService) ListStudents(ctx context.Context) ([]dto.UserResponse, error) {
	users, err := s.repo.User.ListStudents(ctx)
	if err != nil {
		s.logger.Error("查询学生列表失败", zap.Error(err))
		return nil, err
	}

	resp := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		resp = append(resp, toUserResponse(&users[i]))
	}
	return resp, nil
}

// SetBlocked 设置目标封禁状态。提交目标状态而非翻转指令，重复提交幂等。
// blocked 是用户创建后管理员唯一可修改的字段。
func (s *userService) SetBlocked(ctx context.Context, id string, blocked bool) error {
	user, err := s.repo.User.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		s.logger.Error("查询用户失败", zap.Error(err))
		return err
	}
	if user.Role == model.RoleAdmin {
		return ErrCannotBlockAdmin
	}

	if err := s.repo.User.SetBlocked(ctx, id, blocked); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		s.logger.Error("更新封禁状态失败", zap.Error(err))
		return err
	}
	return nil
}
