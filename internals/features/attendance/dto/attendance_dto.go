package dto

import (
	"time"

	"github.com/google/uuid"

	"studentorg_backend/internals/features/attendance/model"
)

type CheckInRequest struct {
	Credential string `json:"credential" validate:"required"`
}

type AttendanceRecordResponse struct {
	AttendanceID          uuid.UUID `json:"attendance_id"`
	AttendanceSessionID   uuid.UUID `json:"attendance_session_id"`
	AttendanceEventID     uuid.UUID `json:"attendance_event_id"`
	AttendanceUserID      uuid.UUID `json:"attendance_user_id"`
	AttendanceCheckedInAt time.Time `json:"attendance_checked_in_at"`
}

func ToAttendanceRecordResponse(m *model.AttendanceRecordModel) *AttendanceRecordResponse {
	return &AttendanceRecordResponse{
		AttendanceID:          m.AttendanceID,
		AttendanceSessionID:   m.AttendanceSessionID,
		AttendanceEventID:     m.AttendanceEventID,
		AttendanceUserID:      m.AttendanceUserID,
		AttendanceCheckedInAt: m.AttendanceCheckedInAt,
	}
}
