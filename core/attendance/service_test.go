package attendance_test

import (
	"context"
	"testing"
	"time"

	"github.com/edutrack/backend/core/attendance"
	"github.com/edutrack/backend/core/school"
	inmemdb "github.com/edutrack/backend/storage/database/inmem"
)

type testEnv struct {
	svc       *attendance.Service
	repo      attendance.Repository
	schoolSvc *school.Service
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db, err := inmemdb.Open()
	if err != nil {
		t.Fatalf("inmemdb.Open(): %v", err)
	}
	repo := inmemdb.NewAttendanceRepository(db)
	schoolSvc := school.NewService(inmemdb.NewSchoolRepository(db))
	return &testEnv{
		svc:       attendance.NewService(repo, schoolSvc),
		repo:      repo,
		schoolSvc: schoolSvc,
	}
}

func (te *testEnv) createStudent(t *testing.T, studentID string) school.Student {
	t.Helper()
	st, err := te.schoolSvc.CreateStudent(context.Background(), school.NewStudent{
		UserID:    "u-" + studentID,
		StudentID: studentID,
		Program:   "B.Tech Computer Science",
		Year:      3,
		Semester:  6,
	})
	if err != nil {
		t.Fatalf("CreateStudent(): %v", err)
	}
	return st
}

func Test_Service_Mark(t *testing.T) {
	te := newTestEnv(t)
	ctx := context.Background()
	st := te.createStudent(t, "CS2021001")

	att, err := te.svc.Mark(ctx, st.QRCode, "class-1")
	if err != nil {
		t.Fatalf("Mark(): %v", err)
	}
	if att.StudentID != st.ID {
		t.Errorf("StudentID = %q; want %q", att.StudentID, st.ID)
	}
	if !att.Present {
		t.Error("Present = false; want true")
	}
	if att.Date != attendance.Day(att.MarkedAt) {
		t.Errorf("Date = %v; want the calendar day of MarkedAt", att.Date)
	}
}

func Test_Service_Mark_duplicate(t *testing.T) {
	te := newTestEnv(t)
	ctx := context.Background()
	st := te.createStudent(t, "CS2021001")

	if _, err := te.svc.Mark(ctx, st.QRCode, "class-1"); err != nil {
		t.Fatalf("Mark(): %v", err)
	}
	if _, err := te.svc.Mark(ctx, st.QRCode, "class-1"); err != attendance.ErrAlreadyMarked {
		t.Fatalf("second Mark() = %v; want ErrAlreadyMarked", err)
	}

	// the failed mark must not have written anything
	records, err := te.svc.ForStudent(ctx, st.ID)
	if err != nil {
		t.Fatalf("ForStudent(): %v", err)
	}
	if len(records) != 1 {
		t.Errorf("got %d records; want exactly 1", len(records))
	}

	// a different class on the same day is a separate record
	if _, err := te.svc.Mark(ctx, st.QRCode, "class-2"); err != nil {
		t.Errorf("Mark() for another class: %v", err)
	}
}

func Test_Service_Mark_nextDay(t *testing.T) {
	te := newTestEnv(t)
	ctx := context.Background()
	st := te.createStudent(t, "CS2021001")

	old := attendance.NowFunc
	t.Cleanup(func() { attendance.NowFunc = old })

	day1 := time.Date(2024, 3, 11, 10, 30, 0, 0, time.UTC)
	attendance.NowFunc = func() time.Time { return day1 }
	if _, err := te.svc.Mark(ctx, st.QRCode, "class-1"); err != nil {
		t.Fatalf("Mark() day 1: %v", err)
	}

	attendance.NowFunc = func() time.Time { return day1.Add(24 * time.Hour) }
	if _, err := te.svc.Mark(ctx, st.QRCode, "class-1"); err != nil {
		t.Errorf("Mark() day 2: %v; want success", err)
	}
}

func Test_Service_Mark_tokenResolution(t *testing.T) {
	te := newTestEnv(t)
	ctx := context.Background()
	st := te.createStudent(t, "CS2021001")

	t.Run("unknown token", func(t *testing.T) {
		if _, err := te.svc.Mark(ctx, "NOPE-123", "class-1"); err != school.ErrStudentNotFound {
			t.Errorf("Mark() = %v; want ErrStudentNotFound", err)
		}
	})

	t.Run("legacy prefix token", func(t *testing.T) {
		// tokens minted under the old convention carry the student ID
		// before the first separator
		att, err := te.svc.Mark(ctx, st.StudentID+"-legacysuffix", "class-2")
		if err != nil {
			t.Fatalf("Mark(): %v", err)
		}
		if att.StudentID != st.ID {
			t.Errorf("StudentID = %q; want %q", att.StudentID, st.ID)
		}
	})
}
