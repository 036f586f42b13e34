package model

import (
	"fmt"
	"sort"
)

// ── 静态目录种子数据 ──
// 场地按"每个运动项目一块场地"建模：同一日期同一时段、不同运动项目
// 可独立预约，冲突键为 (date, slot_id, sport_id) 三元组。

// DefaultSports 默认运动项目目录
var DefaultSports = []Sport{
	{SportID: "cricket", Name: "Cricket", Icon: "🏏"},
	{SportID: "football", Name: "Football", Icon: "⚽"},
	{SportID: "futsal", Name: "Futsal", Icon: "🥅"},
	{SportID: "basketball", Name: "Basketball", Icon: "🏀"},
	{SportID: "tennis", Name: "Tennis", Icon: "🎾"},
	{SportID: "volleyball", Name: "Volleyball", Icon: "🏐"},
}

// DefaultTimeSlots 默认时间段目录（90 分钟一段）
var DefaultTimeSlots = []TimeSlot{
	{SlotID: "slot1", Label: "08:00 AM - 09:30 AM", StartHour: 8, EndHour: 9.5},
	{SlotID: "slot2", Label: "09:30 AM - 11:00 AM", StartHour: 9.5, EndHour: 11},
	{SlotID: "slot3", Label: "11:00 AM - 12:30 PM", StartHour: 11, EndHour: 12.5},
	{SlotID: "slot4", Label: "02:00 PM - 03:30 PM", StartHour: 14, EndHour: 15.5},
	{SlotID: "slot5", Label: "03:30 PM - 05:00 PM", StartHour: 15.5, EndHour: 17},
	{SlotID: "slot6", Label: "05:00 PM - 06:30 PM", StartHour: 17, EndHour: 18.5},
}

// ValidateTimeSlots 校验时间段目录：ID 唯一、区间合法且两两不重叠。
// 该不变式只在播种/配置阶段检查，请求处理期不再重复校验。
func ValidateTimeSlots(slots []TimeSlot) error {
	seen := make(map[string]bool, len(slots))
	sorted := make([]TimeSlot, len(slots))
	copy(sorted, slots)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].StartHour < sorted[j].StartHour })

	for i := range sorted {
		s := &sorted[i]
		if seen[s.SlotID] {
			return fmt.Errorf("时间段 ID 重复: %s", s.SlotID)
		}
		seen[s.SlotID] = true

		if s.EndHour <= s.StartHour {
			return fmt.Errorf("时间段 %s 区间非法: [%.2f, %.2f)", s.SlotID, s.StartHour, s.EndHour)
		}
		if i > 0 && s.StartHour < sorted[i-1].EndHour {
			return fmt.Errorf("时间段 %s 与 %s 在时间上重叠", sorted[i-1].SlotID, s.SlotID)
		}
	}
	return nil
}
