package service

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"studentorg_backend/internals/features/attendance/model"
	userModel "studentorg_backend/internals/features/users/model"
)

func seedStudent(t *testing.T, db *gorm.DB, name, number string) uuid.UUID {
	t.Helper()
	u := userModel.UserModel{
		UserName:      name,
		StudentNumber: number,
		Email:         number + "@example.edu",
		Password:      "irrelevant-hash",
		IsActive:      true,
	}
	if err := db.Create(&u).Error; err != nil {
		t.Fatalf("seed student %s: %v", number, err)
	}
	return u.ID
}

func seedRecord(t *testing.T, db *gorm.DB, sessionID, eventID, userID uuid.UUID, at time.Time) {
	t.Helper()
	rec := model.AttendanceRecordModel{
		AttendanceSessionID:   sessionID,
		AttendanceEventID:     eventID,
		AttendanceUserID:      userID,
		AttendanceCheckedInAt: at,
	}
	if err := db.Create(&rec).Error; err != nil {
		t.Fatalf("seed record: %v", err)
	}
}

func TestListSessionAttendance(t *testing.T) {
	db := openTestDB(t)
	f := seedCheckIn(t, db)

	base := time.Date(2026, 4, 2, 18, 0, 0, 0, time.UTC)
	carol := seedStudent(t, db, "Carol Ng", "S2000001")
	dave := seedStudent(t, db, "Dave Kim", "S2000002")
	seedRecord(t, db, f.sessionID, f.eventID, f.userID, base)
	seedRecord(t, db, f.sessionID, f.eventID, carol, base.Add(5*time.Minute))
	seedRecord(t, db, f.sessionID, f.eventID, dave, base.Add(10*time.Minute))

	entries, total, err := ListSessionAttendance(db, f.sessionID, 0, 10)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if total != 3 {
		t.Fatalf("total = %d, want 3", total)
	}
	if len(entries) != 3 {
		t.Fatalf("len = %d, want 3", len(entries))
	}
	// newest first
	if entries[0].StudentNumber != "S2000002" || entries[2].StudentNumber != "S1234567" {
		t.Fatalf("order = [%s %s %s]", entries[0].StudentNumber, entries[1].StudentNumber, entries[2].StudentNumber)
	}
	if entries[0].UserName != "Dave Kim" {
		t.Fatalf("join did not fill user_name: %q", entries[0].UserName)
	}

	// paging
	entries, total, err = ListSessionAttendance(db, f.sessionID, 2, 2)
	if err != nil {
		t.Fatalf("list page 2: %v", err)
	}
	if total != 3 || len(entries) != 1 {
		t.Fatalf("page 2: total = %d len = %d, want 3 and 1", total, len(entries))
	}
}

func TestListMyAttendance(t *testing.T) {
	db := openTestDB(t)
	f := seedCheckIn(t, db)

	otherEvent := uuid.New()
	base := time.Date(2026, 4, 2, 18, 0, 0, 0, time.UTC)
	seedRecord(t, db, f.sessionID, f.eventID, f.userID, base.Add(time.Hour))
	seedRecord(t, db, uuid.New(), f.eventID, f.userID, base)
	seedRecord(t, db, uuid.New(), otherEvent, f.userID, base)

	records, err := ListMyAttendance(db, f.eventID, f.userID)
	if err != nil {
		t.Fatalf("list mine: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("len = %d, want 2", len(records))
	}
	// oldest first
	if !records[0].AttendanceCheckedInAt.Before(records[1].AttendanceCheckedInAt) {
		t.Fatal("records not in ascending check-in order")
	}
}

func TestSearchEventAttendance(t *testing.T) {
	db := openTestDB(t)
	f := seedCheckIn(t, db)

	base := time.Date(2026, 4, 2, 18, 0, 0, 0, time.UTC)
	carol := seedStudent(t, db, "Carol Ng", "S2000001")
	seedRecord(t, db, f.sessionID, f.eventID, f.userID, base)
	seedRecord(t, db, f.sessionID, f.eventID, carol, base.Add(time.Minute))

	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{name: "by name case-insensitive", query: "ALICE", want: []string{"S1234567"}},
		{name: "by student number", query: "2000001", want: []string{"S2000001"}},
		{name: "substring matches both", query: "s", want: []string{"S2000001", "S1234567"}},
		{name: "no match", query: "zzz", want: nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entries, total, err := SearchEventAttendance(db, f.eventID, tt.query, 0, 10)
			if err != nil {
				t.Fatalf("search %q: %v", tt.query, err)
			}
			if int(total) != len(tt.want) {
				t.Fatalf("total = %d, want %d", total, len(tt.want))
			}
			if len(entries) != len(tt.want) {
				t.Fatalf("len = %d, want %d", len(entries), len(tt.want))
			}
			for i, num := range tt.want {
				if entries[i].StudentNumber != num {
					t.Errorf("entries[%d] = %s, want %s", i, entries[i].StudentNumber, num)
				}
			}
		})
	}
}
