package service

import (
	"crypto/rand"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"studentorg_backend/internals/configs"
	"studentorg_backend/internals/features/events/model"
)

const tokenAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789" // no 0/O, 1/I
const tokenLength = 8

// IssueOrFetchToken returns the session's check-in credential, generating one
// only when the session has none yet. Repeated calls during the same open
// window return the same value, so one displayed code stays valid for the
// whole scanning period. The credential carries no expiry of its own; the
// check-in processor re-checks session status instead.
func IssueOrFetchToken(db *gorm.DB, sessionID uuid.UUID) (string, error) {
	var session model.EventSessionModel
	if err := db.Where("event_session_id = ?", sessionID).First(&session).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrSessionNotFound
		}
		return "", err
	}
	if session.EventSessionCheckinToken != nil && *session.EventSessionCheckinToken != "" {
		return *session.EventSessionCheckinToken, nil
	}

	candidate, err := generateToken(tokenLength)
	if err != nil {
		return "", err
	}

	// Guarded write: only the first issuer wins under concurrent calls.
	res := db.Model(&model.EventSessionModel{}).
		Where("event_session_id = ? AND event_session_checkin_token IS NULL", sessionID).
		Update("event_session_checkin_token", candidate)
	if res.Error != nil {
		return "", res.Error
	}
	if res.RowsAffected == 0 {
		// Someone else issued in the meantime; read theirs.
		if err := db.Where("event_session_id = ?", sessionID).First(&session).Error; err != nil {
			return "", err
		}
		if session.EventSessionCheckinToken == nil {
			return "", fmt.Errorf("token issuance lost update on session %s", sessionID)
		}
		return *session.EventSessionCheckinToken, nil
	}
	return candidate, nil
}

// TokenDeepLink is the URL form the QR display encodes; scanners may submit
// either this or the raw token.
func TokenDeepLink(token string) string {
	if configs.CheckinLinkBase == "" {
		return token
	}
	return configs.CheckinLinkBase + "/" + token
}

func generateToken(n int) (string, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	for i := range buf {
		buf[i] = tokenAlphabet[int(buf[i])%len(tokenAlphabet)]
	}
	return string(buf), nil
}
