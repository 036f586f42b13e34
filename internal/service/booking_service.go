package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"unisports/backend/internal/dto"
	"unisports/backend/internal/metrics"
	"unisports/backend/internal/model"
	"unisports/backend/internal/repository"
	"unisports/backend/pkg/mq"
)

// ── 预约模块业务错误 ──

var (
	ErrBookingNotFound     = errors.New("预约不存在")
	ErrSlotAlreadyApproved = errors.New("该时段已被批准占用，请另选时段")
	ErrInvalidTransition   = errors.New("预约已处于终态，不可重复审批")
	ErrMissingRemarks      = errors.New("驳回预约必须填写备注")
	ErrInvalidDate         = errors.New("日期格式无效，应为 YYYY-MM-DD")
	ErrPastDate            = errors.New("不能预约已过去的日期")
	ErrInvalidPlayerCount  = errors.New("参与人数必须在 1 到 20 之间")
	ErrSportNotFound       = errors.New("运动项目不存在")
	ErrTimeSlotNotFound    = errors.New("时间段不存在")
	ErrNotStudent          = errors.New("仅学生账号可提交预约")
	ErrStudentBlocked      = errors.New("账号已被封禁，无法提交预约")
	ErrMaintenanceMode     = errors.New("场地维护中，暂停接受预约")
	ErrDateBlocked         = errors.New("该日期已被管理员关闭预约")
)

// 通知决策事件路由键
const (
	eventBookingCreated  = "booking.created"
	eventBookingApproved = "booking.approved"
	eventBookingRejected = "booking.rejected"
)

// BookingService 预约生命周期业务接口。
// 状态机：PENDING --approve--> APPROVED（终态）；PENDING --reject--> REJECTED（终态）。
// 所有状态迁移都经由台账的加锁事务再校验可用性，见 repository.BookingRepository。
type BookingService interface {
	Create(ctx context.Context, studentID string, req *dto.CreateBookingRequest) (*dto.BookingResponse, error)
	Approve(ctx context.Context, bookingID string) (*dto.BookingResponse, error)
	Reject(ctx context.Context, bookingID string, req *dto.RejectBookingRequest) (*dto.BookingResponse, error)
	ListForStudent(ctx context.Context, studentID string) ([]dto.BookingResponse, error)
	ListAll(ctx context.Context, req *dto.BookingListRequest) ([]dto.BookingResponse, error)
}

type bookingService struct {
	repo   *repository.Repository
	pub    *mq.Publisher
	logger *zap.Logger
	now    func() time.Time // 可注入时钟，测试用
}

// NewBookingService 创建 BookingService 实例
func NewBookingService(repo *repository.Repository, pub *mq.Publisher, logger *zap.Logger) BookingService {
	return &bookingService{
		repo:   repo,
		pub:    pub,
		logger: logger,
		now:    time.Now,
	}
}

// ────────────────────── Create ──────────────────────

func (s *bookingService) Create(ctx context.Context, studentID string, req *dto.CreateBookingRequest) (*dto.BookingResponse, error) {
	// 1. 入参校验
	if req.PlayerCount < model.PlayerCountMin || req.PlayerCount > model.PlayerCountMax {
		return nil, ErrInvalidPlayerCount
	}
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, ErrInvalidDate
	}

	// 2. 不允许预约过去的日期（按自然日比较，无时区分量）
	now := s.now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if date.Before(today) {
		return nil, ErrPastDate
	}

	// 3. 提交人必须是未封禁的学生
	user, err := s.repo.User.GetByID(ctx, studentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		s.logger.Error("查询用户失败", zap.Error(err))
		return nil, err
	}
	if user.Role != model.RoleStudent {
		return nil, ErrNotStudent
	}
	if user.Blocked {
		return nil, ErrStudentBlocked
	}

	// 4. 场地设置检查：维护模式 / 管理员封禁日期
	settings, err := s.repo.Settings.Get(ctx)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("查询场地设置失败", zap.Error(err))
		return nil, err
	}
	if settings != nil {
		if settings.MaintenanceMode {
			return nil, ErrMaintenanceMode
		}
		if settings.BlockedDates.Contains(req.Date) {
			return nil, ErrDateBlocked
		}
	}

	// 5. 目录外键校验
	if _, err := s.repo.Sport.GetByID(ctx, req.SportID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSportNotFound
		}
		s.logger.Error("查询运动项目失败", zap.Error(err))
		return nil, err
	}
	if _, err := s.repo.TimeSlot.GetByID(ctx, req.SlotID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTimeSlotNotFound
		}
		s.logger.Error("查询时间段失败", zap.Error(err))
		return nil, err
	}

	// 6. 写入台账。可用性在台账事务内重查——UI 刚展示过可用也可能已被抢占
	booking := &model.Booking{
		BookingID:   uuid.New().String(),
		StudentID:   user.UserID,
		StudentName: user.Name, // 创建时快照，后续改名不回写
		SportID:     req.SportID,
		Date:        req.Date,
		SlotID:      req.SlotID,
		Status:      model.BookingStatusPending,
		TeamName:    optional(req.TeamName),
		PlayerCount: req.PlayerCount,
		CreatedAt:   s.now(),
	}
	if err := s.repo.Booking.CreatePending(ctx, booking); err != nil {
		if errors.Is(err, repository.ErrSlotTaken) {
			metrics.BookingConflicts.Inc()
			return nil, ErrSlotAlreadyApproved
		}
		s.logger.Error("写入预约失败", zap.Error(err))
		return nil, err
	}

	metrics.BookingsCreated.Inc()
	s.publish(ctx, eventBookingCreated, booking)

	resp := toBookingResponse(booking)
	return &resp, nil
}

// ────────────────────── Approve ──────────────────────

func (s *bookingService) Approve(ctx context.Context, bookingID string) (*dto.BookingResponse, error) {
	booking, err := s.repo.Booking.Approve(ctx, bookingID)
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			return nil, ErrBookingNotFound
		case errors.Is(err, repository.ErrNotPending):
			return nil, ErrInvalidTransition
		case errors.Is(err, repository.ErrSlotTaken):
			// 创建之后、审批之前，同三元组的竞争记录已被批准（先批先得）
			metrics.BookingConflicts.Inc()
			return nil, ErrSlotAlreadyApproved
		default:
			s.logger.Error("审批预约失败", zap.Error(err))
			return nil, err
		}
	}

	metrics.BookingsApproved.Inc()
	s.publish(ctx, eventBookingApproved, booking)

	resp := toBookingResponse(booking)
	return &resp, nil
}

// ────────────────────── Reject ──────────────────────

func (s *bookingService) Reject(ctx context.Context, bookingID string, req *dto.RejectBookingRequest) (*dto.BookingResponse, error) {
	remarks := strings.TrimSpace(req.Remarks)
	if remarks == "" {
		return nil, ErrMissingRemarks
	}

	booking, err := s.repo.Booking.Reject(ctx, bookingID, remarks)
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			return nil, ErrBookingNotFound
		case errors.Is(err, repository.ErrNotPending):
			return nil, ErrInvalidTransition
		default:
			s.logger.Error("驳回预约失败", zap.Error(err))
			return nil, err
		}
	}

	metrics.BookingsRejected.Inc()
	s.publish(ctx, eventBookingRejected, booking)

	resp := toBookingResponse(booking)
	return &resp, nil
}

// ────────────────────── 查询 ──────────────────────

func (s *bookingService) ListForStudent(ctx context.Context, studentID string) ([]dto.BookingResponse, error) {
	bookings, err := s.repo.Booking.ListByStudent(ctx, studentID)
	if err != nil {
		s.logger.Error("查询学生预约失败", zap.Error(err))
		return nil, err
	}
	return toBookingResponses(bookings), nil
}

func (s *bookingService) ListAll(ctx context.Context, req *dto.BookingListRequest) ([]dto.BookingResponse, error) {
	bookings, err := s.repo.Booking.List(ctx, req.Status)
	if err != nil {
		s.logger.Error("查询预约台账失败", zap.Error(err))
		return nil, err
	}
	return toBookingResponses(bookings), nil
}

// ────────────────────── 辅助 ──────────────────────

// publish 发布通知决策事件（投递由外部消费者负责，失败不影响主流程）
func (s *bookingService) publish(ctx context.Context, key string, b *model.Booking) {
	_ = s.pub.PublishJSON(ctx, key, map[string]any{
		"booking_id": b.BookingID,
		"student_id": b.StudentID,
		"sport_id":   b.SportID,
		"date":       b.Date,
		"slot_id":    b.SlotID,
		"status":     b.Status,
		"remarks":    b.AdminRemarks,
	})
}

func toBookingResponse(b *model.Booking) dto.BookingResponse {
	return dto.BookingResponse{
		ID:           b.BookingID,
		StudentID:    b.StudentID,
		StudentName:  b.StudentName,
		SportID:      b.SportID,
		Date:         b.Date,
		SlotID:       b.SlotID,
		Status:       b.Status,
		TeamName:     b.TeamName,
		PlayerCount:  b.PlayerCount,
		AdminRemarks: b.AdminRemarks,
		CreatedAt:    b.CreatedAt.Format(time.RFC3339),
	}
}

func toBookingResponses(bookings []model.Booking) []dto.BookingResponse {
	resp := make([]dto.BookingResponse, 0, len(bookings))
	for i := range bookings {
		resp = append(resp, toBookingResponse(&bookings[i]))
	}
	return resp
}
