package service

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"studentorg_backend/internals/features/events/model"
)

// ListJoinedEvents returns one page of the events a user has joined, soonest
// first. Count and page run through the same join, so pagination metadata
// stays in step with the rows even when a joined event has been soft-deleted.
func ListJoinedEvents(db *gorm.DB, userID uuid.UUID, offset, limit int) ([]model.EventModel, int64, error) {
	base := db.Model(&model.EventModel{}).
		Joins("JOIN event_participants ON event_participants.event_participant_event_id = events.event_id").
		Where("event_participants.event_participant_user_id = ?", userID)

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var events []model.EventModel
	if err := base.Session(&gorm.Session{}).
		Order("events.event_date ASC").
		Limit(limit).Offset(offset).
		Find(&events).Error; err != nil {
		return nil, 0, err
	}
	return events, total, nil
}
