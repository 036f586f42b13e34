package dto

// ── 预约模块 DTO ──

// CreateBookingRequest 提交预约请求
// StudentID 取自认证上下文，不从请求体读取
type CreateBookingRequest struct {
	SportID     string `json:"sport_id"     binding:"required"`
	Date        string `json:"date"         binding:"required"` // YYYY-MM-DD
	SlotID      string `json:"slot_id"      binding:"required"`
	TeamName    string `json:"team_name"    binding:"omitempty,max=100"`
	PlayerCount int    `json:"player_count" binding:"required,min=1,max=20"`
}

// RejectBookingRequest 驳回预约请求
type RejectBookingRequest struct {
	Remarks string `json:"remarks" binding:"required"`
}

// BookingListRequest 预约列表查询参数
type BookingListRequest struct {
	Status string `form:"status" binding:"omitempty,oneof=PENDING APPROVED REJECTED"`
}

// BookingResponse 预约响应
type BookingResponse struct {
	ID           string  `json:"id"`
	StudentID    string  `json:"student_id"`
	StudentName  string  `json:"student_name"`
	SportID      string  `json:"sport_id"`
	Date         string  `json:"date"`
	SlotID       string  `json:"slot_id"`
	Status       string  `json:"status"`
	TeamName     *string `json:"team_name,omitempty"`
	PlayerCount  int     `json:"player_count"`
	AdminRemarks *string `json:"admin_remarks,omitempty"`
	CreatedAt    string  `json:"created_at"`
}
