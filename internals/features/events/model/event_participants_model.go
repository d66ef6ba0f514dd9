package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// EventParticipantModel is the join record a student must hold before they
// may check in to any session of the event. Leaving deletes the row.
type EventParticipantModel struct {
	EventParticipantID       uuid.UUID `gorm:"column:event_participant_id;type:uuid;primaryKey" json:"event_participant_id"`
	EventParticipantEventID  uuid.UUID `gorm:"column:event_participant_event_id;type:uuid;not null;uniqueIndex:uq_event_participants_event_user" json:"event_participant_event_id"`
	EventParticipantUserID   uuid.UUID `gorm:"column:event_participant_user_id;type:uuid;not null;uniqueIndex:uq_event_participants_event_user" json:"event_participant_user_id"`
	EventParticipantJoinedAt time.Time `gorm:"column:event_participant_joined_at;autoCreateTime" json:"event_participant_joined_at"`
}

func (EventParticipantModel) TableName() string {
	return "event_participants"
}

func (m *EventParticipantModel) BeforeCreate(tx *gorm.DB) error {
	if m.EventParticipantID == uuid.Nil {
		m.EventParticipantID = uuid.New()
	}
	return nil
}
