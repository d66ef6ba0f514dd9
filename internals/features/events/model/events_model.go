package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// EventStatus is a closed enum; values outside Parse cannot reach the DB.
type EventStatus string

const (
	EventUpcoming  EventStatus = "UPCOMING"
	EventActive    EventStatus = "ACTIVE"
	EventFinished  EventStatus = "FINISHED"
	EventCancelled EventStatus = "CANCELLED"
)

func ParseEventStatus(s string) (EventStatus, error) {
	switch EventStatus(strings.ToUpper(strings.TrimSpace(s))) {
	case EventUpcoming:
		return EventUpcoming, nil
	case EventActive:
		return EventActive, nil
	case EventFinished:
		return EventFinished, nil
	case EventCancelled:
		return EventCancelled, nil
	default:
		return "", fmt.Errorf("invalid event status %q", s)
	}
}

type EventModel struct {
	EventID          uuid.UUID      `gorm:"column:event_id;type:uuid;primaryKey" json:"event_id"`
	EventName        string         `gorm:"column:event_name;type:varchar(255);not null" json:"event_name"`
	EventDescription string         `gorm:"column:event_description;type:text" json:"event_description"`
	EventDate        datatypes.Date `gorm:"column:event_date;not null" json:"event_date"`
	EventLocation    string         `gorm:"column:event_location;type:varchar(255)" json:"event_location"`
	EventStatus      EventStatus    `gorm:"column:event_status;type:varchar(16);not null;default:'UPCOMING'" json:"event_status"`
	EventImageURL    string         `gorm:"column:event_image_url;type:text" json:"event_image_url"`
	EventTags        pq.StringArray `gorm:"column:event_tags;type:text[]" json:"event_tags"`
	EventCreatedBy   *uuid.UUID     `gorm:"column:event_created_by;type:uuid" json:"event_created_by"`
	EventCreatedAt   time.Time      `gorm:"column:event_created_at;autoCreateTime" json:"event_created_at"`
	EventUpdatedAt   time.Time      `gorm:"column:event_updated_at;autoUpdateTime" json:"event_updated_at"`
	EventDeletedAt   gorm.DeletedAt `gorm:"column:event_deleted_at;index" json:"event_deleted_at,omitempty"`
}

func (EventModel) TableName() string {
	return "events"
}

func (m *EventModel) BeforeCreate(tx *gorm.DB) error {
	if m.EventID == uuid.Nil {
		m.EventID = uuid.New()
	}
	return nil
}
