package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"unisports/backend/internal/dto"
	"unisports/backend/internal/service"
	"unisports/backend/pkg/response"
)

// BookingHandler 预约模块 HTTP 处理器
type BookingHandler struct {
	bookingSvc service.BookingService
}

// NewBookingHandler 创建 BookingHandler
func NewBookingHandler(bookingSvc service.BookingService) *BookingHandler {
	return &BookingHandler{bookingSvc: bookingSvc}
}

// Create 学生提交预约
// POST /api/v1/bookings
func (h *BookingHandler) Create(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	booking, err := h.bookingSvc.Create(c.Request.Context(), userID, &req)
	if err != nil {
		handleBookingError(c, err)
		return
	}

	response.Created(c, booking)
}

// ListMine 学生查看自己的预约
// GET /api/v1/bookings
func (h *BookingHandler) ListMine(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	bookings, err := h.bookingSvc.ListForStudent(c.Request.Context(), userID)
	if err != nil {
		internalOrStorage(c, err)
		return
	}
	response.OK(c, bookings)
}

// ListAll 管理员查看预约台账
// GET /api/v1/admin/bookings?status=PENDING
func (h *BookingHandler) ListAll(c *gin.Context) {
	var req dto.BookingListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	bookings, err := h.bookingSvc.ListAll(c.Request.Context(), &req)
	if err != nil {
		internalOrStorage(c, err)
		return
	}
	response.OK(c, bookings)
}

// Approve 管理员审批通过
// PUT /api/v1/admin/bookings/:id/approve
func (h *BookingHandler) Approve(c *gin.Context) {
	booking, err := h.bookingSvc.Approve(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleBookingError(c, err)
		return
	}
	response.OK(c, booking)
}

// Reject 管理员驳回
// PUT /api/v1/admin/bookings/:id/reject
func (h *BookingHandler) Reject(c *gin.Context) {
	var req dto.RejectBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 13004, "驳回预约必须填写备注")
		return
	}

	booking, err := h.bookingSvc.Reject(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		handleBookingError(c, err)
		return
	}
	response.OK(c, booking)
}

// handleBookingError 预约模块业务错误到 HTTP 响应的映射
func handleBookingError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrBookingNotFound):
		response.NotFound(c, 13001, "预约不存在")
	case errors.Is(err, service.ErrSlotAlreadyApproved):
		response.Conflict(c, 13002, "该时段已被批准占用，请另选时段")
	case errors.Is(err, service.ErrInvalidTransition):
		response.Conflict(c, 13003, "预约已处于终态，不可重复审批")
	case errors.Is(err, service.ErrMissingRemarks):
		response.BadRequest(c, 13004, "驳回预约必须填写备注")
	case errors.Is(err, service.ErrInvalidDate):
		response.BadRequest(c, 13005, "日期格式无效，应为 YYYY-MM-DD")
	case errors.Is(err, service.ErrPastDate):
		response.BadRequest(c, 13005, "不能预约已过去的日期")
	case errors.Is(err, service.ErrInvalidPlayerCount):
		response.BadRequest(c, 13006, "参与人数必须在 1 到 20 之间")
	case errors.Is(err, service.ErrSportNotFound):
		response.BadRequest(c, 13007, "运动项目不存在")
	case errors.Is(err, service.ErrTimeSlotNotFound):
		response.BadRequest(c, 13007, "时间段不存在")
	case errors.Is(err, service.ErrMaintenanceMode):
		response.Forbidden(c, 13008, "场地维护中，暂停接受预约")
	case errors.Is(err, service.ErrDateBlocked):
		response.Forbidden(c, 13009, "该日期已被管理员关闭预约")
	case errors.Is(err, service.ErrStudentBlocked):
		response.Forbidden(c, 11002, "账号已被管理员封禁")
	case errors.Is(err, service.ErrNotStudent):
		response.Forbidden(c, 10003, "仅学生账号可提交预约")
	case errors.Is(err, service.ErrUserNotFound):
		response.NotFound(c, 12001, "用户不存在")
	default:
		internalOrStorage(c, err)
	}
}
