package service

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"studentorg_backend/internals/configs"
	eventModel "studentorg_backend/internals/features/events/model"
	"studentorg_backend/internals/features/attendance/model"
)

// Check-in failure taxonomy. Every CheckIn outcome is either a record or one
// of these; nothing here retries or blocks.
var (
	ErrSessionNotFound = errors.New("session not found")
	// The two ErrSessionNot* variants both mean "not open"; they are kept
	// apart so the caller can tell "not started yet" from "already finished".
	ErrSessionNotStarted = errors.New("session has not started check-in")
	ErrSessionFinished   = errors.New("session check-in has finished")
	ErrInvalidToken      = errors.New("check-in token does not match")
	ErrNotParticipant    = errors.New("student has not joined this event")
	ErrAlreadyCheckedIn  = errors.New("attendance already recorded")
)

// IsSessionNotOpen reports whether err is either of the not-open failures.
func IsSessionNotOpen(err error) bool {
	return errors.Is(err, ErrSessionNotStarted) || errors.Is(err, ErrSessionFinished)
}

// NormalizeCredential strips the known deep-link prefix so a scanned
// "https://host/checkin/<token>" and a bare "<token>" are equivalent inputs.
func NormalizeCredential(raw string) string {
	s := strings.TrimSpace(raw)
	base := configs.CheckinLinkBase
	if base != "" && strings.HasPrefix(s, base) {
		s = strings.TrimPrefix(s, base)
		s = strings.TrimPrefix(s, "/")
	}
	return s
}

// CheckIn validates a submitted credential against a session and records
// attendance at most once per (session, student). The whole decision runs in
// one transaction so the status and token checks see the same session
// snapshot, and the insert relies on the unique index rather than a prior
// read. The second of two concurrent submissions loses and gets
// ErrAlreadyCheckedIn.
func CheckIn(db *gorm.DB, sessionID, userID uuid.UUID, submitted string) (*model.AttendanceRecordModel, error) {
	var record *model.AttendanceRecordModel

	err := db.Transaction(func(tx *gorm.DB) error {
		var session eventModel.EventSessionModel
		if err := tx.Where("event_session_id = ?", sessionID).First(&session).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrSessionNotFound
			}
			return err
		}

		if !session.IsCheckInOpen() {
			if session.EventSessionStatus == eventModel.SessionCompleted {
				return ErrSessionFinished
			}
			return ErrSessionNotStarted
		}

		token := session.EventSessionCheckinToken
		if token == nil || *token == "" || NormalizeCredential(submitted) != *token {
			return ErrInvalidToken
		}

		var participants int64
		if err := tx.Model(&eventModel.EventParticipantModel{}).
			Where("event_participant_event_id = ? AND event_participant_user_id = ?",
				session.EventSessionEventID, userID).
			Count(&participants).Error; err != nil {
			return err
		}
		if participants == 0 {
			return ErrNotParticipant
		}

		rec := model.AttendanceRecordModel{
			AttendanceSessionID: sessionID,
			AttendanceEventID:   session.EventSessionEventID,
			AttendanceUserID:    userID,
		}
		res := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "attendance_session_id"}, {Name: "attendance_user_id"}},
			DoNothing: true,
		}).Create(&rec)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrAlreadyCheckedIn
		}
		record = &rec
		return nil
	})
	if err != nil {
		return nil, err
	}
	return record, nil
}
