package handler

import (
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"unisports/backend/internal/service"
)

// ExportHandler 导出模块 HTTP 处理器
type ExportHandler struct {
	exportSvc service.ExportService
}

// NewExportHandler 创建 ExportHandler
func NewExportHandler(exportSvc service.ExportService) *ExportHandler {
	return &ExportHandler{exportSvc: exportSvc}
}

// ExportBookings 管理员导出预约台账
// GET /api/v1/admin/bookings/export?status=APPROVED
func (h *ExportHandler) ExportBookings(c *gin.Context) {
	buf, filename, err := h.exportSvc.ExportBookings(c.Request.Context(), c.Query("status"))
	if err != nil {
		internalOrStorage(c, err)
		return
	}

	// 设置下载响应头
	encodedFilename := url.QueryEscape(filename)
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+encodedFilename)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}

// Calendar 学生订阅已批准预约的日历
// GET /api/v1/bookings/calendar
func (h *ExportHandler) Calendar(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	ical, err := h.exportSvc.StudentCalendar(c.Request.Context(), userID)
	if err != nil {
		internalOrStorage(c, err)
		return
	}

	c.Header("Content-Disposition", "attachment; filename=bookings.ics")
	c.Data(http.StatusOK, "text/calendar; charset=utf-8", []byte(ical))
}
