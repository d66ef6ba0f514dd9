package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AttendanceRecordModel is append-only: rows are created by a successful
// check-in and never mutated. The unique index on (session, user) is the
// idempotency boundary: the insert is a compare-and-insert, so two
// near-simultaneous check-ins from different devices cannot both land.
type AttendanceRecordModel struct {
	AttendanceID          uuid.UUID `gorm:"column:attendance_id;type:uuid;primaryKey" json:"attendance_id"`
	AttendanceSessionID   uuid.UUID `gorm:"column:attendance_session_id;type:uuid;not null;uniqueIndex:uq_attendance_session_user" json:"attendance_session_id"`
	AttendanceEventID     uuid.UUID `gorm:"column:attendance_event_id;type:uuid;not null;index" json:"attendance_event_id"`
	AttendanceUserID      uuid.UUID `gorm:"column:attendance_user_id;type:uuid;not null;uniqueIndex:uq_attendance_session_user" json:"attendance_user_id"`
	AttendanceCheckedInAt time.Time `gorm:"column:attendance_checked_in_at;autoCreateTime" json:"attendance_checked_in_at"`
}

func (AttendanceRecordModel) TableName() string {
	return "attendance_records"
}

func (m *AttendanceRecordModel) BeforeCreate(tx *gorm.DB) error {
	if m.AttendanceID == uuid.Nil {
		m.AttendanceID = uuid.New()
	}
	return nil
}
