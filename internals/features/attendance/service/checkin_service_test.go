package service

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"studentorg_backend/internals/configs"
	"studentorg_backend/internals/features/attendance/model"
	eventModel "studentorg_backend/internals/features/events/model"
	userModel "studentorg_backend/internals/features/users/model"
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
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(
		&userModel.UserModel{},
		&eventModel.EventSessionModel{},
		&eventModel.EventParticipantModel{},
		&model.AttendanceRecordModel{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

type fixture struct {
	eventID   uuid.UUID
	sessionID uuid.UUID
	userID    uuid.UUID
	token     string
}

// seedCheckIn sets up an ACTIVE session with a stored token and a student
// who joined the event.
func seedCheckIn(t *testing.T, db *gorm.DB) fixture {
	t.Helper()
	f := fixture{eventID: uuid.New(), token: "TOK2ABCD"}

	user := userModel.UserModel{
		UserName:      "Alice Tan",
		StudentNumber: "S1234567",
		Email:         "alice@example.edu",
		Password:      "irrelevant-hash",
		Role:          "user",
		IsActive:      true,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	f.userID = user.ID

	session := eventModel.EventSessionModel{
		EventSessionEventID:      f.eventID,
		EventSessionTitle:        "Opening Night",
		EventSessionDate:         datatypes.Date(time.Date(2026, 4, 2, 0, 0, 0, 0, time.UTC)),
		EventSessionStartTime:    "18:00",
		EventSessionEndTime:      "21:00",
		EventSessionStatus:       eventModel.SessionActive,
		EventSessionCheckinToken: &f.token,
	}
	if err := db.Create(&session).Error; err != nil {
		t.Fatalf("seed session: %v", err)
	}
	f.sessionID = session.EventSessionID

	participant := eventModel.EventParticipantModel{
		EventParticipantEventID: f.eventID,
		EventParticipantUserID:  f.userID,
	}
	if err := db.Create(&participant).Error; err != nil {
		t.Fatalf("seed participant: %v", err)
	}
	return f
}

func countRecords(t *testing.T, db *gorm.DB, sessionID uuid.UUID) int64 {
	t.Helper()
	n, err := CountSessionAttendance(db, sessionID)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	return n
}

func TestCheckInSuccess(t *testing.T) {
	db := openTestDB(t)
	f := seedCheckIn(t, db)

	rec, err := CheckIn(db, f.sessionID, f.userID, f.token)
	if err != nil {
		t.Fatalf("check-in: %v", err)
	}
	if rec.AttendanceSessionID != f.sessionID || rec.AttendanceUserID != f.userID {
		t.Fatalf("record keys = (%s, %s)", rec.AttendanceSessionID, rec.AttendanceUserID)
	}
	if rec.AttendanceEventID != f.eventID {
		t.Fatalf("record event = %s, want %s", rec.AttendanceEventID, f.eventID)
	}
	if rec.AttendanceCheckedInAt.IsZero() {
		t.Fatal("checked-in timestamp not set")
	}
	if got := countRecords(t, db, f.sessionID); got != 1 {
		t.Fatalf("ledger count = %d, want 1", got)
	}
}

func TestCheckInIdempotent(t *testing.T) {
	db := openTestDB(t)
	f := seedCheckIn(t, db)

	if _, err := CheckIn(db, f.sessionID, f.userID, f.token); err != nil {
		t.Fatalf("first check-in: %v", err)
	}
	if _, err := CheckIn(db, f.sessionID, f.userID, f.token); !errors.Is(err, ErrAlreadyCheckedIn) {
		t.Fatalf("second check-in err = %v, want ErrAlreadyCheckedIn", err)
	}
	if got := countRecords(t, db, f.sessionID); got != 1 {
		t.Fatalf("ledger count = %d, want exactly 1", got)
	}
}

func TestCheckInConcurrentDuplicate(t *testing.T) {
	db := openTestDB(t)
	f := seedCheckIn(t, db)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = CheckIn(db, f.sessionID, f.userID, f.token)
		}(i)
	}
	wg.Wait()

	var successes, duplicates int
	for _, err := range errs {
		switch {
		case err == nil:
			successes++
		case errors.Is(err, ErrAlreadyCheckedIn):
			duplicates++
		default:
			t.Fatalf("unexpected err: %v", err)
		}
	}
	if successes != 1 || duplicates != 1 {
		t.Fatalf("got %d successes, %d duplicates; want 1 and 1", successes, duplicates)
	}
	if got := countRecords(t, db, f.sessionID); got != 1 {
		t.Fatalf("ledger count = %d, want exactly 1", got)
	}
}

func TestCheckInGatedByStatus(t *testing.T) {
	tests := []struct {
		name    string
		status  eventModel.SessionStatus
		wantErr error
	}{
		{name: "pending session", status: eventModel.SessionPending, wantErr: ErrSessionNotStarted},
		{name: "completed session", status: eventModel.SessionCompleted, wantErr: ErrSessionFinished},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := openTestDB(t)
			f := seedCheckIn(t, db)
			if err := db.Model(&eventModel.EventSessionModel{}).
				Where("event_session_id = ?", f.sessionID).
				Update("event_session_status", tt.status).Error; err != nil {
				t.Fatalf("set status: %v", err)
			}

			// credential is correct; the gate must still reject
			_, err := CheckIn(db, f.sessionID, f.userID, f.token)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("err = %v, want %v", err, tt.wantErr)
			}
			if !IsSessionNotOpen(err) {
				t.Fatalf("IsSessionNotOpen(%v) = false", err)
			}
			if got := countRecords(t, db, f.sessionID); got != 0 {
				t.Fatalf("ledger count = %d, want 0", got)
			}
		})
	}
}

func TestCheckInInvalidCredential(t *testing.T) {
	db := openTestDB(t)
	f := seedCheckIn(t, db)

	if _, err := CheckIn(db, f.sessionID, f.userID, "WRONG123"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("err = %v, want ErrInvalidToken", err)
	}
	if got := countRecords(t, db, f.sessionID); got != 0 {
		t.Fatalf("ledger count = %d, want 0", got)
	}
}

func TestCheckInDeepLinkCredential(t *testing.T) {
	old := configs.CheckinLinkBase
	configs.CheckinLinkBase = "https://org.example.edu/checkin"
	t.Cleanup(func() { configs.CheckinLinkBase = old })

	db := openTestDB(t)
	f := seedCheckIn(t, db)

	// the scanned payload wraps the raw token in the deep-link URL
	rec, err := CheckIn(db, f.sessionID, f.userID, "https://org.example.edu/checkin/"+f.token)
	if err != nil {
		t.Fatalf("check-in with deep link: %v", err)
	}
	if rec == nil {
		t.Fatal("expected a record")
	}
}

func TestCheckInNotParticipant(t *testing.T) {
	db := openTestDB(t)
	f := seedCheckIn(t, db)

	stranger := userModel.UserModel{
		UserName:      "Bob Lee",
		StudentNumber: "S7654321",
		Email:         "bob@example.edu",
		Password:      "irrelevant-hash",
		IsActive:      true,
	}
	if err := db.Create(&stranger).Error; err != nil {
		t.Fatalf("seed stranger: %v", err)
	}

	if _, err := CheckIn(db, f.sessionID, stranger.ID, f.token); !errors.Is(err, ErrNotParticipant) {
		t.Fatalf("err = %v, want ErrNotParticipant", err)
	}
	if got := countRecords(t, db, f.sessionID); got != 0 {
		t.Fatalf("ledger count = %d, want 0", got)
	}
}

func TestCheckInSessionNotFound(t *testing.T) {
	db := openTestDB(t)
	seedCheckIn(t, db)

	if _, err := CheckIn(db, uuid.New(), uuid.New(), "whatever"); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("err = %v, want ErrSessionNotFound", err)
	}
}

func TestNormalizeCredential(t *testing.T) {
	old := configs.CheckinLinkBase
	configs.CheckinLinkBase = "https://org.example.edu/checkin"
	t.Cleanup(func() { configs.CheckinLinkBase = old })

	tests := []struct {
		in   string
		want string
	}{
		{"TOK2ABCD", "TOK2ABCD"},
		{"  TOK2ABCD \n", "TOK2ABCD"},
		{"https://org.example.edu/checkin/TOK2ABCD", "TOK2ABCD"},
		{"https://other.example/checkin/TOK2ABCD", "https://other.example/checkin/TOK2ABCD"},
	}
	for _, tt := range tests {
		if got := NormalizeCredential(tt.in); got != tt.want {
			t.Errorf("NormalizeCredential(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
