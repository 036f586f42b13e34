package model

// SlotAvailable 冲突判定：给定台账快照，判断 (date, slotID, sportID) 三元组
// 是否仍可被批准占用。
//
// 仅 APPROVED 状态消耗场地资源；PENDING 不占用，多名学生可对同一时段提交
// 竞争请求，先批先得。excludeID 用于审批场景排除待审批记录自身，创建场景
// 传空串即可。
//
// 本函数是纯函数，必须在持有与后续写入相同的锁/事务内对一致快照求值，
// 否则 check-then-write 之间存在竞态。
func SlotAvailable(bookings []Booking, date, slotID, sportID, excludeID string) bool {
	for i := range bookings {
		b := &bookings[i]
		if b.Status != BookingStatusApproved {
			continue
		}
		if excludeID != "" && b.BookingID == excludeID {
			continue
		}
		if b.Date == date && b.SlotID == slotID && b.SportID == sportID {
			return false
		}
	}
	return true
}
