package dto

// ── 用户模块 DTO ──

// UserResponse 用户信息响应（脱敏）
type UserResponse struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Email      string  `json:"email"`
	Role       string  `json:"role"`
	Department *string `json:"department,omitempty"`
	Semester   *string `json:"semester,omitempty"`
	Blocked    bool    `json:"blocked"`
	CreatedAt  string  `json:"created_at"`
}

// SetBlockedRequest 封禁/解封请求
// 提交目标状态而非翻转指令，重复提交幂等
type SetBlockedRequest struct {
	Blocked *bool `json:"blocked" binding:"required"`
}
