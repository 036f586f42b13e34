package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"unisports/backend/internal/model"
)

// BookingRepository 预约台账访问接口。
// 台账是时段占用的唯一事实来源：create/approve 的"查可用性→写入"临界区
// 在实现内部以事务 + 行锁按三元组串行化，锁内只做一次判定和一次写入。
type BookingRepository interface {
	CreatePending(ctx context.Context, booking *model.Booking) error
	Approve(ctx context.Context, id string) (*model.Booking, error)
	Reject(ctx context.Context, id, remarks string) (*model.Booking, error)
	GetByID(ctx context.Context, id string) (*model.Booking, error)
	ListByStudent(ctx context.Context, studentID string) ([]model.Booking, error)
	List(ctx context.Context, status string) ([]model.Booking, error)
}

// bookingRepo BookingRepository 的 GORM 实现
type bookingRepo struct {
	db *gorm.DB
}

// NewBookingRepo 创建 BookingRepository 实例
func NewBookingRepo(db *gorm.DB) BookingRepository {
	return &bookingRepo{db: db}
}

// lockTriple 对三元组的全部既有记录加 FOR UPDATE 行锁并返回快照。
// 两个并发审批会互相锁住对方的 PENDING 行，从而按键串行化。
func lockTriple(tx *gorm.DB, date, slotID, sportID string) ([]model.Booking, error) {
	var siblings []model.Booking
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("date = ? AND slot_id = ? AND sport_id = ?", date, slotID, sportID).
		Find(&siblings).Error
	return siblings, err
}

// isUniqueViolation 识别 PostgreSQL 唯一键冲突（23505）
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// CreatePending 在一个事务内完成"锁三元组→判可用→写入 PENDING"。
// 即便 UI 层刚展示过该时段可用，这里也必须重查（竞态防护）。
func (r *bookingRepo) CreatePending(ctx context.Context, booking *model.Booking) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		siblings, err := lockTriple(tx, booking.Date, booking.SlotID, booking.SportID)
		if err != nil {
			return err
		}
		if !model.SlotAvailable(siblings, booking.Date, booking.SlotID, booking.SportID, "") {
			return ErrSlotTaken
		}
		return tx.Create(booking).Error
	})
	return wrapStorage(err)
}

// Approve 审批通过。事务内先锁定目标记录校验状态机，再锁整个三元组
// 重跑冲突判定（排除自身）——创建之后可能已有竞争记录被批准。
func (r *bookingRepo) Approve(ctx context.Context, id string) (*model.Booking, error) {
	var approved *model.Booking
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var booking model.Booking
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("booking_id = ?", id).
			First(&booking).Error; err != nil {
			return err
		}
		if booking.Status != model.BookingStatusPending {
			return ErrNotPending
		}

		siblings, err := lockTriple(tx, booking.Date, booking.SlotID, booking.SportID)
		if err != nil {
			return err
		}
		if !model.SlotAvailable(siblings, booking.Date, booking.SlotID, booking.SportID, id) {
			return ErrSlotTaken
		}

		if err := tx.Model(&booking).Update("status", model.BookingStatusApproved).Error; err != nil {
			// 部分唯一索引兜底：并发竞批触发唯一键冲突时归一为 ErrSlotTaken
			if isUniqueViolation(err) {
				return ErrSlotTaken
			}
			return err
		}
		booking.Status = model.BookingStatusApproved
		approved = &booking
		return nil
	})
	if err != nil {
		return nil, wrapStorage(err)
	}
	return approved, nil
}

// Reject 驳回。备注非空由 Service 层保证，这里只执行状态机迁移。
func (r *bookingRepo) Reject(ctx context.Context, id, remarks string) (*model.Booking, error) {
	var rejected *model.Booking
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var booking model.Booking
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("booking_id = ?", id).
			First(&booking).Error; err != nil {
			return err
		}
		if booking.Status != model.BookingStatusPending {
			return ErrNotPending
		}

		updates := map[string]interface{}{
			"status":        model.BookingStatusRejected,
			"admin_remarks": remarks,
		}
		if err := tx.Model(&booking).Updates(updates).Error; err != nil {
			return err
		}
		booking.Status = model.BookingStatusRejected
		booking.AdminRemarks = &remarks
		rejected = &booking
		return nil
	})
	if err != nil {
		return nil, wrapStorage(err)
	}
	return rejected, nil
}

func (r *bookingRepo) GetByID(ctx context.Context, id string) (*model.Booking, error) {
	var booking model.Booking
	if err := r.db.WithContext(ctx).Where("booking_id = ?", id).First(&booking).Error; err != nil {
		return nil, wrapStorage(err)
	}
	return &booking, nil
}

// ListByStudent 按创建时间降序；时间戳相同按插入顺序（seq）稳定排序
func (r *bookingRepo) ListByStudent(ctx context.Context, studentID string) ([]model.Booking, error) {
	var bookings []model.Booking
	err := r.db.WithContext(ctx).
		Where("student_id = ?", studentID).
		Order("created_at DESC, seq ASC").
		Find(&bookings).Error
	if err != nil {
		return nil, wrapStorage(err)
	}
	return bookings, nil
}

// List 全量台账，status 非空时过滤
func (r *bookingRepo) List(ctx context.Context, status string) ([]model.Booking, error) {
	db := r.db.WithContext(ctx).Model(&model.Booking{})
	if status != "" {
		db = db.Where("status = ?", status)
	}

	var bookings []model.Booking
	if err := db.Order("created_at DESC, seq ASC").Find(&bookings).Error; err != nil {
		return nil, wrapStorage(err)
	}
	return bookings, nil
}
