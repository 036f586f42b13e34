package dto

// ── 场地设置 DTO ──

// UpdateSettingsRequest 更新场地设置请求
type UpdateSettingsRequest struct {
	MaintenanceMode *bool    `json:"maintenance_mode" binding:"required"`
	BlockedDates    []string `json:"blocked_dates"    binding:"omitempty,dive,datetime=2006-01-02"`
}

// SettingsResponse 场地设置响应
type SettingsResponse struct {
	MaintenanceMode bool     `json:"maintenance_mode"`
	BlockedDates    []string `json:"blocked_dates"`
}
