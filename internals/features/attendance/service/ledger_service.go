package service

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"studentorg_backend/internals/features/attendance/model"
)

// AttendanceEntry is a ledger row joined with the student it belongs to.
type AttendanceEntry struct {
	AttendanceID          uuid.UUID `json:"attendance_id"`
	AttendanceSessionID   uuid.UUID `json:"attendance_session_id"`
	AttendanceEventID     uuid.UUID `json:"attendance_event_id"`
	AttendanceUserID      uuid.UUID `json:"attendance_user_id"`
	AttendanceCheckedInAt time.Time `json:"attendance_checked_in_at"`
	UserName              string    `json:"user_name"`
	StudentNumber         string    `json:"student_number"`
}

const entrySelect = `attendance_records.attendance_id,
	attendance_records.attendance_session_id,
	attendance_records.attendance_event_id,
	attendance_records.attendance_user_id,
	attendance_records.attendance_checked_in_at,
	users.user_name,
	users.student_number`

// ListSessionAttendance returns one page of a session's ledger, newest first.
func ListSessionAttendance(db *gorm.DB, sessionID uuid.UUID, offset, limit int) ([]AttendanceEntry, int64, error) {
	total, err := CountSessionAttendance(db, sessionID)
	if err != nil {
		return nil, 0, err
	}

	var entries []AttendanceEntry
	if err := db.Model(&model.AttendanceRecordModel{}).
		Select(entrySelect).
		Joins("JOIN users ON users.id = attendance_records.attendance_user_id").
		Where("attendance_records.attendance_session_id = ?", sessionID).
		Order("attendance_records.attendance_checked_in_at DESC").
		Limit(limit).Offset(offset).
		Scan(&entries).Error; err != nil {
		return nil, 0, err
	}
	return entries, total, nil
}

func CountSessionAttendance(db *gorm.DB, sessionID uuid.UUID) (int64, error) {
	var total int64
	err := db.Model(&model.AttendanceRecordModel{}).
		Where("attendance_session_id = ?", sessionID).
		Count(&total).Error
	return total, err
}

// ListMyAttendance returns the calling student's records for one event.
func ListMyAttendance(db *gorm.DB, eventID, userID uuid.UUID) ([]model.AttendanceRecordModel, error) {
	var records []model.AttendanceRecordModel
	err := db.
		Where("attendance_event_id = ? AND attendance_user_id = ?", eventID, userID).
		Order("attendance_checked_in_at ASC").
		Find(&records).Error
	return records, err
}

// SearchEventAttendance does a case-insensitive substring match on student
// name or student number across one event's ledger.
func SearchEventAttendance(db *gorm.DB, eventID uuid.UUID, query string, offset, limit int) ([]AttendanceEntry, int64, error) {
	pattern := "%" + strings.ToLower(strings.TrimSpace(query)) + "%"

	base := db.Model(&model.AttendanceRecordModel{}).
		Joins("JOIN users ON users.id = attendance_records.attendance_user_id").
		Where("attendance_records.attendance_event_id = ?", eventID).
		Where("LOWER(users.user_name) LIKE ? OR LOWER(users.student_number) LIKE ?", pattern, pattern)

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var entries []AttendanceEntry
	if err := base.Session(&gorm.Session{}).
		Select(entrySelect).
		Order("attendance_records.attendance_checked_in_at DESC").
		Limit(limit).Offset(offset).
		Scan(&entries).Error; err != nil {
		return nil, 0, err
	}
	return entries, total, nil
}
