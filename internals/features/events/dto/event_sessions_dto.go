package dto

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"studentorg_backend/internals/features/events/model"
)

//
// ========= Request DTO =========
//

// Times of day are "HH:MM" strings; the session date is a calendar day.
type EventSessionRequest struct {
	EventSessionTitle     string    `json:"event_session_title" validate:"required,min=3,max=255"`
	EventSessionDate      time.Time `json:"event_session_date" validate:"required"`
	EventSessionStartTime string    `json:"event_session_start_time" validate:"required"`
	EventSessionEndTime   string    `json:"event_session_end_time" validate:"required"`
}

// Partial update; status is deliberately absent; it only moves through the
// transition endpoint.
type EventSessionUpdateRequest struct {
	EventSessionTitle     *string    `json:"event_session_title"`
	EventSessionDate      *time.Time `json:"event_session_date"`
	EventSessionStartTime *string    `json:"event_session_start_time"`
	EventSessionEndTime   *string    `json:"event_session_end_time"`
}

type SessionStatusRequest struct {
	EventSessionStatus string `json:"event_session_status" validate:"required"`
}

//
// ========= Response DTO =========
//

type EventSessionResponse struct {
	EventSessionID        uuid.UUID `json:"event_session_id"`
	EventSessionEventID   uuid.UUID `json:"event_session_event_id"`
	EventSessionTitle     string    `json:"event_session_title"`
	EventSessionDate      string    `json:"event_session_date"`
	EventSessionStartTime string    `json:"event_session_start_time"`
	EventSessionEndTime   string    `json:"event_session_end_time"`
	EventSessionStatus    string    `json:"event_session_status"`
	EventSessionCreatedAt time.Time `json:"event_session_created_at"`
}

type SessionTokenResponse struct {
	EventSessionID uuid.UUID `json:"event_session_id"`
	CheckinToken   string    `json:"checkin_token"`
	CheckinLink    string    `json:"checkin_link"`
}

//
// ========= Converters =========
//

func ValidateTimeOfDay(s string) error {
	if _, err := time.Parse("15:04", s); err != nil {
		return fmt.Errorf("invalid time of day %q, want HH:MM", s)
	}
	return nil
}

func (r *EventSessionRequest) ToModel(eventID uuid.UUID) *model.EventSessionModel {
	return &model.EventSessionModel{
		EventSessionEventID:   eventID,
		EventSessionTitle:     strings.TrimSpace(r.EventSessionTitle),
		EventSessionDate:      datatypes.Date(r.EventSessionDate),
		EventSessionStartTime: r.EventSessionStartTime,
		EventSessionEndTime:   r.EventSessionEndTime,
		EventSessionStatus:    model.SessionPending,
	}
}

func (r *EventSessionUpdateRequest) ApplyToModel(m *model.EventSessionModel) {
	if r.EventSessionTitle != nil {
		m.EventSessionTitle = strings.TrimSpace(*r.EventSessionTitle)
	}
	if r.EventSessionDate != nil {
		m.EventSessionDate = datatypes.Date(*r.EventSessionDate)
	}
	if r.EventSessionStartTime != nil {
		m.EventSessionStartTime = *r.EventSessionStartTime
	}
	if r.EventSessionEndTime != nil {
		m.EventSessionEndTime = *r.EventSessionEndTime
	}
}

func ToEventSessionResponse(m *model.EventSessionModel) *EventSessionResponse {
	return &EventSessionResponse{
		EventSessionID:        m.EventSessionID,
		EventSessionEventID:   m.EventSessionEventID,
		EventSessionTitle:     m.EventSessionTitle,
		EventSessionDate:      time.Time(m.EventSessionDate).Format("2006-01-02"),
		EventSessionStartTime: m.EventSessionStartTime,
		EventSessionEndTime:   m.EventSessionEndTime,
		EventSessionStatus:    string(m.EventSessionStatus),
		EventSessionCreatedAt: m.EventSessionCreatedAt,
	}
}
