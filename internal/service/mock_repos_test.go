package service

import (
	"context"
	"sort"
	"sync"

	"gorm.io/gorm"

	"unisports/backend/internal/model"
	"unisports/backend/internal/repository"
)

// ── Mock UserRepository ──

type mockUserRepo struct {
	users map[string]*model.User
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*model.User)}
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	// 与数据库主键约束保持一致
	if _, ok := m.users[user.UserID]; ok {
		return repository.ErrDuplicateKey
	}
	m.users[user.UserID] = user
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) ListStudents(_ context.Context) ([]model.User, error) {
	var result []model.User
	for _, u := range m.users {
		if u.Role == model.RoleStudent {
			result = append(result, *u)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].UserID < result[j].UserID })
	return result, nil
}

func (m *mockUserRepo) SetBlocked(_ context.Context, id string, blocked bool) error {
	u, ok := m.users[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	u.Blocked = blocked
	return nil
}

// ── Mock SportRepository ──

type mockSportRepo struct {
	sports map[string]*model.Sport
}

func newMockSportRepo() *mockSportRepo {
	return &mockSportRepo{sports: make(map[string]*model.Sport)}
}

func (m *mockSportRepo) List(_ context.Context) ([]model.Sport, error) {
	var result []model.Sport
	for _, s := range m.sports {
		result = append(result, *s)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].SportID < result[j].SportID })
	return result, nil
}

func (m *mockSportRepo) GetByID(_ context.Context, id string) (*model.Sport, error) {
	if s, ok := m.sports[id]; ok {
		return s, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockSportRepo) Seed(_ context.Context, sports []model.Sport) error {
	if len(m.sports) > 0 {
		return nil
	}
	for i := range sports {
		s := sports[i]
		m.sports[s.SportID] = &s
	}
	return nil
}

// ── Mock TimeSlotRepository ──

type mockTimeSlotRepo struct {
	slots map[string]*model.TimeSlot
}

func newMockTimeSlotRepo() *mockTimeSlotRepo {
	return &mockTimeSlotRepo{slots: make(map[string]*model.TimeSlot)}
}

func (m *mockTimeSlotRepo) List(_ context.Context) ([]model.TimeSlot, error) {
	var result []model.TimeSlot
	for _, s := range m.slots {
		result = append(result, *s)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].StartHour < result[j].StartHour })
	return result, nil
}

func (m *mockTimeSlotRepo) GetByID(_ context.Context, id string) (*model.TimeSlot, error) {
	if s, ok := m.slots[id]; ok {
		return s, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockTimeSlotRepo) Seed(_ context.Context, slots []model.TimeSlot) error {
	if len(m.slots) > 0 {
		return nil
	}
	for i := range slots {
		s := slots[i]
		m.slots[s.SlotID] = &s
	}
	return nil
}

// ── Mock BookingRepository ──
// 与 GORM 实现保持同一套可用性判定（model.SlotAvailable），
// 用互斥锁模拟事务的串行化，供并发测试使用。

type mockBookingRepo struct {
	mu       sync.Mutex
	bookings []model.Booking
	nextSeq  int64
}

func newMockBookingRepo() *mockBookingRepo {
	return &mockBookingRepo{nextSeq: 1}
}

func (m *mockBookingRepo) CreatePending(_ context.Context, booking *model.Booking) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !model.SlotAvailable(m.bookings, booking.Date, booking.SlotID, booking.SportID, "") {
		return repository.ErrSlotTaken
	}
	booking.Seq = m.nextSeq
	m.nextSeq++
	m.bookings = append(m.bookings, *booking)
	return nil
}

func (m *mockBookingRepo) Approve(_ context.Context, id string) (*model.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	b := m.find(id)
	if b == nil {
		return nil, gorm.ErrRecordNotFound
	}
	if b.Status != model.BookingStatusPending {
		return nil, repository.ErrNotPending
	}
	if !model.SlotAvailable(m.bookings, b.Date, b.SlotID, b.SportID, b.BookingID) {
		return nil, repository.ErrSlotTaken
	}
	b.Status = model.BookingStatusApproved
	result := *b
	return &result, nil
}

func (m *mockBookingRepo) Reject(_ context.Context, id, remarks string) (*model.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	b := m.find(id)
	if b == nil {
		return nil, gorm.ErrRecordNotFound
	}
	if b.Status != model.BookingStatusPending {
		return nil, repository.ErrNotPending
	}
	b.Status = model.BookingStatusRejected
	b.AdminRemarks = &remarks
	result := *b
	return &result, nil
}

func (m *mockBookingRepo) GetByID(_ context.Context, id string) (*model.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if b := m.find(id); b != nil {
		result := *b
		return &result, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockBookingRepo) ListByStudent(_ context.Context, studentID string) ([]model.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var result []model.Booking
	for _, b := range m.bookings {
		if b.StudentID == studentID {
			result = append(result, b)
		}
	}
	sortBookings(result)
	return result, nil
}

func (m *mockBookingRepo) List(_ context.Context, status string) ([]model.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var result []model.Booking
	for _, b := range m.bookings {
		if status == "" || b.Status == status {
			result = append(result, b)
		}
	}
	sortBookings(result)
	return result, nil
}

func (m *mockBookingRepo) find(id string) *model.Booking {
	for i := range m.bookings {
		if m.bookings[i].BookingID == id {
			return &m.bookings[i]
		}
	}
	return nil
}

// sortBookings 创建时间降序，时间戳相同按插入顺序（seq）升序
func sortBookings(bookings []model.Booking) {
	sort.SliceStable(bookings, func(i, j int) bool {
		if !bookings[i].CreatedAt.Equal(bookings[j].CreatedAt) {
			return bookings[i].CreatedAt.After(bookings[j].CreatedAt)
		}
		return bookings[i].Seq < bookings[j].Seq
	})
}

// ── Mock SettingsRepository ──

type mockSettingsRepo struct {
	settings *model.GroundSettings
}

func newMockSettingsRepo() *mockSettingsRepo {
	return &mockSettingsRepo{}
}

func (m *mockSettingsRepo) Get(_ context.Context) (*model.GroundSettings, error) {
	if m.settings == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return m.settings, nil
}

func (m *mockSettingsRepo) Save(_ context.Context, settings *model.GroundSettings) error {
	m.settings = settings
	return nil
}

func (m *mockSettingsRepo) EnsureRow(_ context.Context) error {
	if m.settings == nil {
		m.settings = &model.GroundSettings{ID: 1}
	}
	return nil
}

// ── 测试辅助 ──

func newMockRepository() *repository.Repository {
	return &repository.Repository{
		User:     newMockUserRepo(),
		Sport:    newMockSportRepo(),
		TimeSlot: newMockTimeSlotRepo(),
		Booking:  newMockBookingRepo(),
		Settings: newMockSettingsRepo(),
	}
}
