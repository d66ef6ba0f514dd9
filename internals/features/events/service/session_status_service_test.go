package service

import (
	"errors"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"studentorg_backend/internals/features/events/model"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("unwrap db: %v", err)
	}
	// one connection so every query sees the same in-memory database
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&model.EventSessionModel{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func seedSession(t *testing.T, db *gorm.DB, status model.SessionStatus) *model.EventSessionModel {
	t.Helper()
	session := &model.EventSessionModel{
		EventSessionEventID:   uuid.New(),
		EventSessionTitle:     "Day 1 Workshop",
		EventSessionDate:      datatypes.Date(time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)),
		EventSessionStartTime: "09:00",
		EventSessionEndTime:   "12:00",
		EventSessionStatus:    status,
	}
	if err := db.Create(session).Error; err != nil {
		t.Fatalf("seed session: %v", err)
	}
	return session
}

func TestTransitionSession(t *testing.T) {
	tests := []struct {
		name    string
		from    model.SessionStatus
		to      model.SessionStatus
		wantErr error
		want    model.SessionStatus
	}{
		{name: "pending to active", from: model.SessionPending, to: model.SessionActive, want: model.SessionActive},
		{name: "active to completed", from: model.SessionActive, to: model.SessionCompleted, want: model.SessionCompleted},
		{name: "reopen active to pending", from: model.SessionActive, to: model.SessionPending, want: model.SessionPending},
		{name: "completed is terminal", from: model.SessionCompleted, to: model.SessionActive, wantErr: ErrSessionCompleted, want: model.SessionCompleted},
		{name: "completed rejects pending too", from: model.SessionCompleted, to: model.SessionPending, wantErr: ErrSessionCompleted, want: model.SessionCompleted},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := openTestDB(t)
			session := seedSession(t, db, tt.from)

			got, err := TransitionSession(db, session.EventSessionID, tt.to)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("transition err = %v, want %v", err, tt.wantErr)
			}
			if got == nil || got.EventSessionStatus != tt.want {
				t.Fatalf("returned status = %v, want %v", got.EventSessionStatus, tt.want)
			}

			var stored model.EventSessionModel
			if err := db.Where("event_session_id = ?", session.EventSessionID).First(&stored).Error; err != nil {
				t.Fatalf("reload: %v", err)
			}
			if stored.EventSessionStatus != tt.want {
				t.Fatalf("stored status = %v, want %v", stored.EventSessionStatus, tt.want)
			}
		})
	}
}

func TestTransitionSessionNotFound(t *testing.T) {
	db := openTestDB(t)
	if _, err := TransitionSession(db, uuid.New(), model.SessionActive); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("err = %v, want ErrSessionNotFound", err)
	}
}

func TestTransitionDoesNotTouchOtherSessions(t *testing.T) {
	db := openTestDB(t)
	a := seedSession(t, db, model.SessionPending)
	b := seedSession(t, db, model.SessionPending)

	if _, err := TransitionSession(db, a.EventSessionID, model.SessionActive); err != nil {
		t.Fatalf("transition: %v", err)
	}

	var stored model.EventSessionModel
	if err := db.Where("event_session_id = ?", b.EventSessionID).First(&stored).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if stored.EventSessionStatus != model.SessionPending {
		t.Fatalf("unrelated session status changed to %v", stored.EventSessionStatus)
	}
}

func TestIssueOrFetchTokenIdempotent(t *testing.T) {
	db := openTestDB(t)
	session := seedSession(t, db, model.SessionActive)

	first, err := IssueOrFetchToken(db, session.EventSessionID)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if len(first) != tokenLength {
		t.Fatalf("token length = %d, want %d", len(first), tokenLength)
	}

	second, err := IssueOrFetchToken(db, session.EventSessionID)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if second != first {
		t.Fatalf("token changed between calls: %q then %q", first, second)
	}

	// still the same after a status change; freshness is the processor's job
	if _, err := TransitionSession(db, session.EventSessionID, model.SessionPending); err != nil {
		t.Fatalf("transition: %v", err)
	}
	third, err := IssueOrFetchToken(db, session.EventSessionID)
	if err != nil {
		t.Fatalf("refetch: %v", err)
	}
	if third != first {
		t.Fatalf("token changed after transition: %q then %q", first, third)
	}
}

func TestIssueOrFetchTokenMissingSession(t *testing.T) {
	db := openTestDB(t)
	if _, err := IssueOrFetchToken(db, uuid.New()); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("err = %v, want ErrSessionNotFound", err)
	}
}

func TestParseSessionStatus(t *testing.T) {
	for _, ok := range []string{"PENDING", "active", " Completed "} {
		if _, err := model.ParseSessionStatus(ok); err != nil {
			t.Fatalf("ParseSessionStatus(%q) unexpected error: %v", ok, err)
		}
	}
	for _, bad := range []string{"", "CANCELLED", "DONE", "open"} {
		if _, err := model.ParseSessionStatus(bad); err == nil {
			t.Fatalf("ParseSessionStatus(%q) expected error", bad)
		}
	}
}
