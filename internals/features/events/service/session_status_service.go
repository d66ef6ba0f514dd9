package service

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"studentorg_backend/internals/features/events/model"
)

var (
	ErrSessionNotFound = errors.New("event session not found")
	// ErrSessionCompleted: the session reached its terminal status and no
	// further status writes are accepted.
	ErrSessionCompleted = errors.New("event session already completed")
)

// TransitionSession sets the session status in a single guarded UPDATE.
// Any target is allowed while the session is not COMPLETED, including
// ACTIVE → PENDING ("reopen for correction"). Once COMPLETED the write is a
// no-op failure and the stored status is untouched. Attendance recorded
// earlier is never affected by a transition.
func TransitionSession(db *gorm.DB, sessionID uuid.UUID, target model.SessionStatus) (*model.EventSessionModel, error) {
	res := db.Model(&model.EventSessionModel{}).
		Where("event_session_id = ? AND event_session_status <> ?", sessionID, model.SessionCompleted).
		Update("event_session_status", target)
	if res.Error != nil {
		return nil, res.Error
	}

	var session model.EventSessionModel
	if err := db.Where("event_session_id = ?", sessionID).First(&session).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}

	if res.RowsAffected == 0 {
		// Row exists but was not writable: terminal status.
		return &session, ErrSessionCompleted
	}
	return &session, nil
}
