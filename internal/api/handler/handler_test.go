package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"unisports/backend/internal/dto"
	"unisports/backend/internal/service"
	pkgerrors "unisports/backend/pkg/errors"
	"unisports/backend/pkg/response"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// ═══════════════════════════════════════════════════════════
// Mock Services
// ═══════════════════════════════════════════════════════════

// ── Mock AuthService ──

type mockAuthService struct {
	loginResult    *dto.TokenResponse
	loginErr       error
	refreshResult  *dto.TokenResponse
	refreshErr     error
	registerResult *dto.RegisterResponse
	registerErr    error
	logoutErr      error
	meResult       *dto.UserResponse
	meErr          error
}

func (m *mockAuthService) Login(_ context.Context, _ *dto.LoginRequest) (*dto.TokenResponse, error) {
	return m.loginResult, m.loginErr
}
func (m *mockAuthService) Refresh(_ context.Context, _ *dto.RefreshTokenRequest) (*dto.TokenResponse, error) {
	return m.refreshResult, m.refreshErr
}
func (m *mockAuthService) Register(_ context.Context, _ *dto.RegisterRequest) (*dto.RegisterResponse, error) {
	return m.registerResult, m.registerErr
}
func (m *mockAuthService) Logout(_ context.Context, _ string, _ time.Time) error {
	return m.logoutErr
}
func (m *mockAuthService) GetCurrentUser(_ context.Context, _ string) (*dto.UserResponse, error) {
	return m.meResult, m.meErr
}
func (m *mockAuthService) EnsureSeedAdmin(_ context.Context) error { return nil }

// ── Mock BookingService ──

type mockBookingService struct {
	createResult  *dto.BookingResponse
	createErr     error
	approveResult *dto.BookingResponse
	approveErr    error
	rejectResult  *dto.BookingResponse
	rejectErr     error
	mineResult    []dto.BookingResponse
	mineErr       error
	allResult     []dto.BookingResponse
	allErr        error
}

func (m *mockBookingService) Create(_ context.Context, _ string, _ *dto.CreateBookingRequest) (*dto.BookingResponse, error) {
	return m.createResult, m.createErr
}
func (m *mockBookingService) Approve(_ context.Context, _ string) (*dto.BookingResponse, error) {
	return m.approveResult, m.approveErr
}
func (m *mockBookingService) Reject(_ context.Context, _ string, _ *dto.RejectBookingRequest) (*dto.BookingResponse, error) {
	return m.rejectResult, m.rejectErr
}
func (m *mockBookingService) ListForStudent(_ context.Context, _ string) ([]dto.BookingResponse, error) {
	return m.mineResult, m.mineErr
}
func (m *mockBookingService) ListAll(_ context.Context, _ *dto.BookingListRequest) ([]dto.BookingResponse, error) {
	return m.allResult, m.allErr
}

// ── Mock UserService ──

type mockUserService struct {
	listResult []dto.UserResponse
	listErr    error
	blockErr   error
}

func (m *mockUserService) ListStudents(_ context.Context) ([]dto.UserResponse, error) {
	return m.listResult, m.listErr
}
func (m *mockUserService) SetBlocked(_ context.Context, _ string, _ bool) error {
	return m.blockErr
}

// ── Mock SettingsService ──

type mockSettingsService struct {
	getResult    *dto.SettingsResponse
	getErr       error
	updateResult *dto.SettingsResponse
	updateErr    error
}

func (m *mockSettingsService) Get(_ context.Context) (*dto.SettingsResponse, error) {
	return m.getResult, m.getErr
}
func (m *mockSettingsService) Update(_ context.Context, _ *dto.UpdateSettingsRequest) (*dto.SettingsResponse, error) {
	return m.updateResult, m.updateErr
}

// ── Mock ExportService ──

type mockExportService struct {
	buf      *bytes.Buffer
	filename string
	ical     string
	err      error
}

func (m *mockExportService) ExportBookings(_ context.Context, _ string) (*bytes.Buffer, string, error) {
	return m.buf, m.filename, m.err
}
func (m *mockExportService) StudentCalendar(_ context.Context, _ string) (string, error) {
	return m.ical, m.err
}

// ═══════════════════════════════════════════════════════════
// Test Helpers
// ═══════════════════════════════════════════════════════════

func jsonBody(v interface{}) io.Reader {
	b, _ := json.Marshal(v)
	return bytes.NewReader(b)
}

func parseResponse(w *httptest.ResponseRecorder) response.Response {
	var resp response.Response
	json.Unmarshal(w.Body.Bytes(), &resp)
	return resp
}

// injectUser 模拟 JWT 中间件注入的上下文
func injectUser(userID, role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("user_id", userID)
		c.Set("role", role)
		c.Next()
	}
}

// ═══════════════════════════════════════════════════════════
// AuthHandler Tests
// ═══════════════════════════════════════════════════════════

func TestAuthHandler_Login_Success(t *testing.T) {
	mock := &mockAuthService{
		loginResult: &dto.TokenResponse{
			AccessToken:  "test-access-token",
			RefreshToken: "test-refresh-token",
			ExpiresIn:    900,
		},
	}
	h := NewAuthHandler(mock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/auth/login", jsonBody(dto.LoginRequest{
		UserID:   "S2024001",
		Password: "password123",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/auth/login", h.Login)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 0 {
		t.Errorf("expected code 0, got %d", resp.Code)
	}
}

func TestAuthHandler_Login_BadJSON(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/auth/login", bytes.NewReader([]byte("invalid json")))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/auth/login", h.Login)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{loginErr: service.ErrInvalidCredentials})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/auth/login", jsonBody(dto.LoginRequest{
		UserID:   "S2024001",
		Password: "wrong",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/auth/login", h.Login)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
	if resp := parseResponse(w); resp.Code != 11001 {
		t.Errorf("expected error code 11001, got %d", resp.Code)
	}
}

func TestAuthHandler_Login_Blocked(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{loginErr: service.ErrAccountBlocked})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/auth/login", jsonBody(dto.LoginRequest{
		UserID:   "S2024001",
		Password: "password123",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/auth/login", h.Login)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Errorf("expected 403, got %d", w.Code)
	}
	if resp := parseResponse(w); resp.Code != 11002 {
		t.Errorf("expected error code 11002, got %d", resp.Code)
	}
}

func TestAuthHandler_Refresh_Success(t *testing.T) {
	mock := &mockAuthService{
		refreshResult: &dto.TokenResponse{
			AccessToken:  "new-access-token",
			RefreshToken: "new-refresh-token",
			ExpiresIn:    900,
		},
	}
	h := NewAuthHandler(mock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/auth/refresh", jsonBody(dto.RefreshTokenRequest{
		RefreshToken: "old-refresh-token",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/auth/refresh", h.Refresh)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 0 {
		t.Errorf("expected code 0, got %d", resp.Code)
	}
}

func TestAuthHandler_Refresh_InvalidToken(t *testing.T) {
	mock := &mockAuthService{refreshErr: service.ErrRefreshToken}
	h := NewAuthHandler(mock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/auth/refresh", jsonBody(dto.RefreshTokenRequest{
		RefreshToken: "expired-or-forged",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/auth/refresh", h.Refresh)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 11004 {
		t.Errorf("expected code 11004, got %d", resp.Code)
	}
}

func TestAuthHandler_Refresh_MissingToken(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/auth/refresh", jsonBody(map[string]string{}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/auth/refresh", h.Refresh)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestAuthHandler_Register_Duplicate(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{registerErr: service.ErrDuplicateID})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/auth/register", jsonBody(dto.RegisterRequest{
		UserID:   "S2024001",
		Name:     "张三",
		Email:    "s2024001@uni.edu",
		Password: "password123",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/auth/register", h.Register)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusConflict {
		t.Errorf("expected 409, got %d", w.Code)
	}
	if resp := parseResponse(w); resp.Code != 11003 {
		t.Errorf("expected error code 11003, got %d", resp.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// BookingHandler Tests
// ═══════════════════════════════════════════════════════════

func bookingRouter(h *BookingHandler) *gin.Engine {
	r := gin.New()
	auth := r.Group("", injectUser("S2024001", "STUDENT"))
	auth.POST("/bookings", h.Create)
	auth.GET("/bookings", h.ListMine)
	r.GET("/admin/bookings", h.ListAll)
	r.PUT("/admin/bookings/:id/approve", h.Approve)
	r.PUT("/admin/bookings/:id/reject", h.Reject)
	return r
}

func TestBookingHandler_Create_Success(t *testing.T) {
	mock := &mockBookingService{
		createResult: &dto.BookingResponse{ID: "b1", Status: "PENDING"},
	}
	r := bookingRouter(NewBookingHandler(mock))

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/bookings", jsonBody(dto.CreateBookingRequest{
		SportID: "cricket", Date: "2026-03-15", SlotID: "slot1", PlayerCount: 10,
	}))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Errorf("expected 201, got %d", w.Code)
	}
}

func TestBookingHandler_Create_Unauthenticated(t *testing.T) {
	r := gin.New()
	r.POST("/bookings", NewBookingHandler(&mockBookingService{}).Create)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/bookings", jsonBody(dto.CreateBookingRequest{
		SportID: "cricket", Date: "2026-03-15", SlotID: "slot1", PlayerCount: 10,
	}))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
}

func TestBookingHandler_Create_Conflict(t *testing.T) {
	mock := &mockBookingService{createErr: service.ErrSlotAlreadyApproved}
	r := bookingRouter(NewBookingHandler(mock))

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/bookings", jsonBody(dto.CreateBookingRequest{
		SportID: "cricket", Date: "2026-03-15", SlotID: "slot1", PlayerCount: 10,
	}))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusConflict {
		t.Errorf("expected 409, got %d", w.Code)
	}
	if resp := parseResponse(w); resp.Code != 13002 {
		t.Errorf("expected error code 13002, got %d", resp.Code)
	}
}

func TestBookingHandler_Create_MissingFields(t *testing.T) {
	r := bookingRouter(NewBookingHandler(&mockBookingService{}))

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/bookings", jsonBody(map[string]string{"sport_id": "cricket"}))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestBookingHandler_Approve_InvalidTransition(t *testing.T) {
	mock := &mockBookingService{approveErr: service.ErrInvalidTransition}
	r := bookingRouter(NewBookingHandler(mock))

	w := httptest.NewRecorder()
	req := httptest.NewRequest("PUT", "/admin/bookings/b1/approve", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusConflict {
		t.Errorf("expected 409, got %d", w.Code)
	}
	if resp := parseResponse(w); resp.Code != 13003 {
		t.Errorf("expected error code 13003, got %d", resp.Code)
	}
}

func TestBookingHandler_Approve_NotFound(t *testing.T) {
	mock := &mockBookingService{approveErr: service.ErrBookingNotFound}
	r := bookingRouter(NewBookingHandler(mock))

	w := httptest.NewRecorder()
	req := httptest.NewRequest("PUT", "/admin/bookings/no-such/approve", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
}

func TestBookingHandler_Reject_MissingRemarks(t *testing.T) {
	r := bookingRouter(NewBookingHandler(&mockBookingService{}))

	w := httptest.NewRecorder()
	req := httptest.NewRequest("PUT", "/admin/bookings/b1/reject", jsonBody(map[string]string{}))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
	if resp := parseResponse(w); resp.Code != 13004 {
		t.Errorf("expected error code 13004, got %d", resp.Code)
	}
}

func TestBookingHandler_ListAll_BadStatus(t *testing.T) {
	r := bookingRouter(NewBookingHandler(&mockBookingService{}))

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/admin/bookings?status=UNKNOWN", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestBookingHandler_Create_StorageDown(t *testing.T) {
	mock := &mockBookingService{createErr: pkgerrors.ErrStorageUnavailable}
	r := bookingRouter(NewBookingHandler(mock))

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/bookings", jsonBody(dto.CreateBookingRequest{
		SportID: "cricket", Date: "2026-03-15", SlotID: "slot1", PlayerCount: 10,
	}))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("expected 503, got %d", w.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// UserHandler Tests
// ═══════════════════════════════════════════════════════════

func TestUserHandler_SetBlocked_Success(t *testing.T) {
	h := NewUserHandler(&mockUserService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("PUT", "/admin/students/S2024001/blocked", jsonBody(map[string]bool{"blocked": true}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.PUT("/admin/students/:id/blocked", h.SetBlocked)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}

func TestUserHandler_SetBlocked_MissingBody(t *testing.T) {
	h := NewUserHandler(&mockUserService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("PUT", "/admin/students/S2024001/blocked", jsonBody(map[string]string{}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.PUT("/admin/students/:id/blocked", h.SetBlocked)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestUserHandler_SetBlocked_Admin(t *testing.T) {
	h := NewUserHandler(&mockUserService{blockErr: service.ErrCannotBlockAdmin})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("PUT", "/admin/students/admin/blocked", jsonBody(map[string]bool{"blocked": true}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.PUT("/admin/students/:id/blocked", h.SetBlocked)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Errorf("expected 403, got %d", w.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// ExportHandler Tests
// ═══════════════════════════════════════════════════════════

func TestExportHandler_ExportBookings(t *testing.T) {
	mock := &mockExportService{
		buf:      bytes.NewBufferString("xlsx-bytes"),
		filename: "bookings_20260315.xlsx",
	}
	h := NewExportHandler(mock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/admin/bookings/export", nil)

	r := gin.New()
	r.GET("/admin/bookings/export", h.ExportBookings)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet" {
		t.Errorf("unexpected content type %s", ct)
	}
}

func TestExportHandler_Calendar(t *testing.T) {
	mock := &mockExportService{ical: "BEGIN:VCALENDAR\nEND:VCALENDAR"}
	h := NewExportHandler(mock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/bookings/calendar", nil)

	r := gin.New()
	r.GET("/bookings/calendar", injectUser("S2024001", "STUDENT"), h.Calendar)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	if !bytes.Contains(w.Body.Bytes(), []byte("VCALENDAR")) {
		t.Error("expected iCalendar body")
	}
}

// ═══════════════════════════════════════════════════════════
// SettingsHandler Tests
// ═══════════════════════════════════════════════════════════

func TestSettingsHandler_Update(t *testing.T) {
	mock := &mockSettingsService{
		updateResult: &dto.SettingsResponse{MaintenanceMode: true, BlockedDates: []string{"2026-04-01"}},
	}
	h := NewSettingsHandler(mock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("PUT", "/admin/settings", jsonBody(map[string]interface{}{
		"maintenance_mode": true,
		"blocked_dates":    []string{"2026-04-01"},
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.PUT("/admin/settings", h.Update)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}

func TestSettingsHandler_Update_BadDate(t *testing.T) {
	h := NewSettingsHandler(&mockSettingsService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("PUT", "/admin/settings", jsonBody(map[string]interface{}{
		"maintenance_mode": false,
		"blocked_dates":    []string{"01/04/2026"},
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.PUT("/admin/settings", h.Update)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}
