package dto

import (
	"time"

	"github.com/google/uuid"

	"studentorg_backend/internals/features/events/model"
)

type EventParticipantResponse struct {
	EventParticipantID       uuid.UUID `json:"event_participant_id"`
	EventParticipantEventID  uuid.UUID `json:"event_participant_event_id"`
	EventParticipantUserID   uuid.UUID `json:"event_participant_user_id"`
	EventParticipantJoinedAt time.Time `json:"event_participant_joined_at"`
}

func ToEventParticipantResponse(m *model.EventParticipantModel) *EventParticipantResponse {
	return &EventParticipantResponse{
		EventParticipantID:       m.EventParticipantID,
		EventParticipantEventID:  m.EventParticipantEventID,
		EventParticipantUserID:   m.EventParticipantUserID,
		EventParticipantJoinedAt: m.EventParticipantJoinedAt,
	}
}
