package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// SessionStatus is the check-in lifecycle: PENDING → ACTIVE → COMPLETED.
// COMPLETED is terminal; ACTIVE → PENDING is allowed as a correction path.
type SessionStatus string

const (
	SessionPending   SessionStatus = "PENDING"
	SessionActive    SessionStatus = "ACTIVE"
	SessionCompleted SessionStatus = "COMPLETED"
)

// ParseSessionStatus is the only way request input becomes a SessionStatus,
// so an invalid transition target cannot be constructed.
func ParseSessionStatus(s string) (SessionStatus, error) {
	switch SessionStatus(strings.ToUpper(strings.TrimSpace(s))) {
	case SessionPending:
		return SessionPending, nil
	case SessionActive:
		return SessionActive, nil
	case SessionCompleted:
		return SessionCompleted, nil
	default:
		return "", fmt.Errorf("invalid session status %q", s)
	}
}

type EventSessionModel struct {
	EventSessionID           uuid.UUID      `gorm:"column:event_session_id;type:uuid;primaryKey" json:"event_session_id"`
	EventSessionEventID      uuid.UUID      `gorm:"column:event_session_event_id;type:uuid;not null;index" json:"event_session_event_id"`
	EventSessionTitle        string         `gorm:"column:event_session_title;type:varchar(255);not null" json:"event_session_title"`
	EventSessionDate         datatypes.Date `gorm:"column:event_session_date;not null" json:"event_session_date"`
	EventSessionStartTime    string         `gorm:"column:event_session_start_time;type:varchar(5);not null" json:"event_session_start_time"`
	EventSessionEndTime      string         `gorm:"column:event_session_end_time;type:varchar(5);not null" json:"event_session_end_time"`
	EventSessionStatus       SessionStatus  `gorm:"column:event_session_status;type:varchar(16);not null;default:'PENDING'" json:"event_session_status"`
	EventSessionCheckinToken *string        `gorm:"column:event_session_checkin_token;type:varchar(32)" json:"-"`
	EventSessionCreatedAt    time.Time      `gorm:"column:event_session_created_at;autoCreateTime" json:"event_session_created_at"`
	EventSessionUpdatedAt    time.Time      `gorm:"column:event_session_updated_at;autoUpdateTime" json:"event_session_updated_at"`
	EventSessionDeletedAt    gorm.DeletedAt `gorm:"column:event_session_deleted_at;index" json:"event_session_deleted_at,omitempty"`
}

func (EventSessionModel) TableName() string {
	return "event_sessions"
}

func (m *EventSessionModel) BeforeCreate(tx *gorm.DB) error {
	if m.EventSessionID == uuid.Nil {
		m.EventSessionID = uuid.New()
	}
	return nil
}

// IsCheckInOpen is the single definition of "open for check-in"; the check-in
// processor gates on this, not on token freshness.
func (s *EventSessionModel) IsCheckInOpen() bool {
	return s.EventSessionStatus == SessionActive
}
