package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/datatypes"

	"studentorg_backend/internals/features/events/model"
)

//
// ========= Request DTO =========
//

type EventRequest struct {
	EventName        string    `json:"event_name" validate:"required,min=3,max=255"`
	EventDescription string    `json:"event_description"`
	EventDate        time.Time `json:"event_date" validate:"required"`
	EventLocation    string    `json:"event_location" validate:"max=255"`
	EventImageURL    string    `json:"event_image_url"`
	EventTags        []string  `json:"event_tags"`
}

// Partial update (PUT with pointers). A provided event_status must parse
// through ParseEventStatus before it is applied; session status is never
// updatable this way, only through the transition endpoint.
type EventUpdateRequest struct {
	EventName        *string    `json:"event_name"`
	EventDescription *string    `json:"event_description"`
	EventDate        *time.Time `json:"event_date"`
	EventLocation    *string    `json:"event_location"`
	EventImageURL    *string    `json:"event_image_url"`
	EventTags        *[]string  `json:"event_tags"`
	EventStatus      *string    `json:"event_status"`
}

//
// ========= Response DTO =========
//

type EventResponse struct {
	EventID          uuid.UUID  `json:"event_id"`
	EventName        string     `json:"event_name"`
	EventDescription string     `json:"event_description"`
	EventDate        string     `json:"event_date"`
	EventLocation    string     `json:"event_location"`
	EventStatus      string     `json:"event_status"`
	EventImageURL    string     `json:"event_image_url"`
	EventTags        []string   `json:"event_tags"`
	EventCreatedBy   *uuid.UUID `json:"event_created_by"`
	EventCreatedAt   time.Time  `json:"event_created_at"`
}

//
// ========= Converters =========
//

func (r *EventRequest) ToModel() *model.EventModel {
	return &model.EventModel{
		EventName:        strings.TrimSpace(r.EventName),
		EventDescription: r.EventDescription,
		EventDate:        datatypes.Date(r.EventDate),
		EventLocation:    strings.TrimSpace(r.EventLocation),
		EventStatus:      model.EventUpcoming,
		EventImageURL:    strings.TrimSpace(r.EventImageURL),
		EventTags:        pq.StringArray(r.EventTags),
	}
}

// ApplyToModel applies only the provided fields. Returns an error for an
// unparseable status so an invalid value never reaches the DB.
func (r *EventUpdateRequest) ApplyToModel(m *model.EventModel) error {
	if r.EventName != nil {
		m.EventName = strings.TrimSpace(*r.EventName)
	}
	if r.EventDescription != nil {
		m.EventDescription = *r.EventDescription
	}
	if r.EventDate != nil {
		m.EventDate = datatypes.Date(*r.EventDate)
	}
	if r.EventLocation != nil {
		m.EventLocation = strings.TrimSpace(*r.EventLocation)
	}
	if r.EventImageURL != nil {
		m.EventImageURL = strings.TrimSpace(*r.EventImageURL)
	}
	if r.EventTags != nil {
		m.EventTags = pq.StringArray(*r.EventTags)
	}
	if r.EventStatus != nil {
		status, err := model.ParseEventStatus(*r.EventStatus)
		if err != nil {
			return err
		}
		m.EventStatus = status
	}
	return nil
}

func ToEventResponse(m *model.EventModel) *EventResponse {
	return &EventResponse{
		EventID:          m.EventID,
		EventName:        m.EventName,
		EventDescription: m.EventDescription,
		EventDate:        time.Time(m.EventDate).Format("2006-01-02"),
		EventLocation:    m.EventLocation,
		EventStatus:      string(m.EventStatus),
		EventImageURL:    m.EventImageURL,
		EventTags:        []string(m.EventTags),
		EventCreatedBy:   m.EventCreatedBy,
		EventCreatedAt:   m.EventCreatedAt,
	}
}
