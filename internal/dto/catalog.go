package dto

// ── 目录模块 DTO ──

// SportResponse 运动项目响应
type SportResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Icon string `json:"icon"`
}

// TimeSlotResponse 时间段响应
type TimeSlotResponse struct {
	ID        string  `json:"id"`
	Label     string  `json:"label"`
	StartHour float64 `json:"start_hour"`
	EndHour   float64 `json:"end_hour"`
}
