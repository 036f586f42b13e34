package service

import (
	"bytes"
	"context"
	"fmt"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"unisports/backend/internal/model"
	"unisports/backend/internal/repository"
)

// ExportService 导出业务接口：预约台账 Excel 报表与学生日历订阅
type ExportService interface {
	ExportBookings(ctx context.Context, status string) (*bytes.Buffer, string, error)
	StudentCalendar(ctx context.Context, studentID string) (string, error)
}

type exportService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewExportService 创建 ExportService 实例
func NewExportService(repo *repository.Repository, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, logger: logger}
}

// ExportBookings 导出预约台账为 xlsx，status 为空时导出全部
func (s *exportService) ExportBookings(ctx context.Context, status string) (*bytes.Buffer, string, error) {
	bookings, err := s.repo.Booking.List(ctx, status)
	if err != nil {
		s.logger.Error("导出时查询台账失败", zap.Error(err))
		return nil, "", err
	}
	sports, slots, err := s.catalogNames(ctx)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Bookings"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"预约编号", "学号", "姓名", "运动项目", "日期", "时间段", "状态", "队名", "人数", "备注", "提交时间"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}

	for row, b := range bookings {
		team, remarks := "", ""
		if b.TeamName != nil {
			team = *b.TeamName
		}
		if b.AdminRemarks != nil {
			remarks = *b.AdminRemarks
		}
		values := []any{
			b.BookingID, b.StudentID, b.StudentName,
			sports[b.SportID], b.Date, slots[b.SlotID],
			b.Status, team, b.PlayerCount, remarks,
			b.CreatedAt.Format("2006-01-02 15:04:05"),
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			f.SetCellValue(sheet, cell, v)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		s.logger.Error("生成 xlsx 失败", zap.Error(err))
		return nil, "", err
	}
	filename := fmt.Sprintf("bookings_%s.xlsx", time.Now().Format("20060102_150405"))
	return buf, filename, nil
}

// StudentCalendar 生成学生已批准预约的 iCalendar 订阅内容。
// 事件时间按小数小时偏移量换算，如 9.5 对应 09:30。
func (s *exportService) StudentCalendar(ctx context.Context, studentID string) (string, error) {
	bookings, err := s.repo.Booking.ListByStudent(ctx, studentID)
	if err != nil {
		s.logger.Error("生成日历时查询预约失败", zap.Error(err))
		return "", err
	}
	sports, _, err := s.catalogNames(ctx)
	if err != nil {
		return "", err
	}
	slotList, err := s.repo.TimeSlot.List(ctx)
	if err != nil {
		s.logger.Error("生成日历时查询时间段失败", zap.Error(err))
		return "", err
	}
	slotByID := make(map[string]model.TimeSlot, len(slotList))
	for _, slot := range slotList {
		slotByID[slot.SlotID] = slot
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//unisports//booking//CN")

	for i := range bookings {
		b := &bookings[i]
		if b.Status != model.BookingStatusApproved {
			continue
		}
		day, err := time.Parse("2006-01-02", b.Date)
		if err != nil {
			continue
		}
		slot, ok := slotByID[b.SlotID]
		if !ok {
			continue
		}
		start := day.Add(time.Duration(slot.StartHour * float64(time.Hour)))
		end := day.Add(time.Duration(slot.EndHour * float64(time.Hour)))

		ev := cal.AddEvent(b.BookingID)
		ev.SetCreatedTime(b.CreatedAt)
		ev.SetStartAt(start)
		ev.SetEndAt(end)
		ev.SetSummary(fmt.Sprintf("%s（%s）", sports[b.SportID], slot.Label))
		if b.TeamName != nil {
			ev.SetDescription("队名：" + *b.TeamName)
		}
	}

	return cal.Serialize(), nil
}

// catalogNames 一次性加载目录名称映射，避免逐行回查
func (s *exportService) catalogNames(ctx context.Context) (map[string]string, map[string]string, error) {
	sportList, err := s.repo.Sport.List(ctx)
	if err != nil {
		s.logger.Error("查询运动项目目录失败", zap.Error(err))
		return nil, nil, err
	}
	slotList, err := s.repo.TimeSlot.List(ctx)
	if err != nil {
		s.logger.Error("查询时间段目录失败", zap.Error(err))
		return nil, nil, err
	}
	sports := make(map[string]string, len(sportList))
	for _, sp := range sportList {
		sports[sp.SportID] = sp.Name
	}
	slots := make(map[string]string, len(slotList))
	for _, slot := range slotList {
		slots[slot.SlotID] = slot.Label
	}
	return sports, slots, nil
}
