package echoapi

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/edutrack/backend/core/schedule"
	"github.com/edutrack/backend/core/school"
	"github.com/edutrack/backend/core/user"
)

func intPtr(i int) *int { return &i }

// mockClock pins the schedule clock to a Monday.
func mockClock(t *testing.T, hour, min int) {
	t.Helper()
	old := schedule.NowFunc
	t.Cleanup(func() { schedule.NowFunc = old })
	schedule.NowFunc = func() time.Time {
		return time.Date(2024, 3, 11, hour, min, 0, 0, time.UTC) // a Monday
	}
}

func (te *testEnv) createClass(t *testing.T, sub school.Subject, tchr school.Teacher, day int, start, end string) schedule.Class {
	t.Helper()
	cls, err := te.scheduleSvc.Create(nil, schedule.NewClass{
		SubjectID: sub.ID,
		TeacherID: tchr.ID,
		DayOfWeek: intPtr(day),
		StartTime: start,
		EndTime:   end,
		Room:      "204",
		Building:  "Science Block",
	})
	if err != nil {
		t.Fatalf("createClass(): %v", err)
	}
	return cls
}

func Test_scheduleApi_timetable(t *testing.T) {
	te := newTestEnv(t)
	te.start(t, "")

	studentUsr, _ := te.createStudent(t, "rahul.sharma", "CS2021001")
	_, tchr := te.createTeacher(t, "sarah.johnson", "T001")
	sub := te.createSubject(t, "CS301")

	te.createClass(t, sub, tchr, 1, "10:30", "12:00")
	te.createClass(t, sub, tchr, 1, "14:00", "15:30")
	te.createClass(t, sub, tchr, 2, "09:00", "10:00") // Tuesday, out of scope
	token := te.getToken(t, studentUsr)

	t.Run("today", func(t *testing.T) {
		mockClock(t, 8, 0)
		req, rec := newAuthRequest(http.MethodGet, "/api/timetable", token)
		te.app.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("code = %v; want %v", rec.Code, http.StatusOK)
		}
		var entries []schedule.TimetableEntry
		if err := json.Unmarshal(rec.Body.Bytes(), &entries); err != nil {
			t.Fatalf("unmarshalling entries: %v", err)
		}
		if len(entries) != 2 {
			t.Fatalf("got %d entries; want 2", len(entries))
		}
		if entries[0].StartTime.String() != "10:30" || entries[1].StartTime.String() != "14:00" {
			t.Errorf("entries out of order: %v, %v", entries[0].StartTime, entries[1].StartTime)
		}
		if entries[0].Subject == nil || entries[0].Subject.ID != sub.ID {
			t.Error("subject not embedded")
		}
		if entries[0].Teacher == nil || entries[0].Teacher.Name != "Test User" {
			t.Error("teacher info not embedded")
		}
	})

	t.Run("next at 11:00", func(t *testing.T) {
		mockClock(t, 11, 0)
		req, rec := newAuthRequest(http.MethodGet, "/api/timetable/next", token)
		te.app.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("code = %v; want %v", rec.Code, http.StatusOK)
		}
		var entry schedule.TimetableEntry
		if err := json.Unmarshal(rec.Body.Bytes(), &entry); err != nil {
			t.Fatalf("unmarshalling entry: %v", err)
		}
		if entry.StartTime.String() != "14:00" {
			t.Errorf("next class starts at %v; want 14:00", entry.StartTime)
		}
	})

	t.Run("next at 15:00", func(t *testing.T) {
		mockClock(t, 15, 0)
		tt := httpTest{
			wantCode: http.StatusOK,
			wantData: marshallObj(t, map[string]string{"message": noMoreClassesText}),
		}
		req, rec := newAuthRequest(http.MethodGet, "/api/timetable/next", token)
		te.app.ServeHTTP(rec, req)
		checkCodeAndData(t, tt, rec)
	})
}

func Test_scheduleApi_classes(t *testing.T) {
	te := newTestEnv(t)
	te.start(t, "")

	adminUsr := te.createUser(t, "admin", user.RoleAdmin)
	teacherAUsr, teacherA := te.createTeacher(t, "sarah.johnson", "T001")
	_, teacherB := te.createTeacher(t, "james.smith", "T002")
	studentUsr, _ := te.createStudent(t, "rahul.sharma", "CS2021001")
	sub := te.createSubject(t, "CS301")

	clsA := te.createClass(t, sub, teacherA, 1, "10:30", "12:00")
	te.createClass(t, sub, teacherB, 2, "09:00", "10:00")

	query := func(t *testing.T, token string) []schedule.ManagedClass {
		t.Helper()
		req, rec := newAuthRequest(http.MethodGet, "/api/classes", token)
		te.app.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("code = %v; want %v", rec.Code, http.StatusOK)
		}
		var classes []schedule.ManagedClass
		if err := json.Unmarshal(rec.Body.Bytes(), &classes); err != nil {
			t.Fatalf("unmarshalling classes: %v", err)
		}
		return classes
	}

	t.Run("teacher sees own only", func(t *testing.T) {
		classes := query(t, te.getToken(t, teacherAUsr))
		if len(classes) != 1 || classes[0].ID != clsA.ID {
			t.Errorf("teacher sees %d class(es); want only their own", len(classes))
		}
	})

	t.Run("admin sees all", func(t *testing.T) {
		if classes := query(t, te.getToken(t, adminUsr)); len(classes) != 2 {
			t.Errorf("admin sees %d class(es); want 2", len(classes))
		}
	})

	t.Run("student forbidden", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodGet, "/api/classes", te.getToken(t, studentUsr))
		te.app.ServeHTTP(rec, req)
		if rec.Code != http.StatusForbidden {
			t.Errorf("code = %v; want %v", rec.Code, http.StatusForbidden)
		}
	})

	t.Run("admin creates and deletes", func(t *testing.T) {
		adminToken := te.getToken(t, adminUsr)
		body := marshallObj(t, schedule.NewClass{
			SubjectID: sub.ID,
			TeacherID: teacherA.ID,
			DayOfWeek: intPtr(3),
			StartTime: "08:00",
			EndTime:   "09:30",
			Room:      "101",
			Building:  "Main Block",
		})
		req, rec := newAuthRequest(http.MethodPost, "/api/classes", adminToken, body)
		te.app.ServeHTTP(rec, req)
		if rec.Code != http.StatusCreated {
			t.Fatalf("create code = %v; want %v; body %s", rec.Code, http.StatusCreated, rec.Body.String())
		}
		var cls schedule.Class
		if err := json.Unmarshal(rec.Body.Bytes(), &cls); err != nil {
			t.Fatalf("unmarshalling Class: %v", err)
		}

		req, rec = newAuthRequest(http.MethodDelete, "/api/classes/"+cls.ID, adminToken)
		te.app.ServeHTTP(rec, req)
		if rec.Code != http.StatusNoContent {
			t.Errorf("delete code = %v; want %v", rec.Code, http.StatusNoContent)
		}

		req, rec = newAuthRequest(http.MethodDelete, "/api/classes/"+cls.ID, adminToken)
		te.app.ServeHTTP(rec, req)
		if rec.Code != http.StatusNotFound {
			t.Errorf("re-delete code = %v; want %v", rec.Code, http.StatusNotFound)
		}
	})

	t.Run("teacher cannot create", func(t *testing.T) {
		body := marshallObj(t, schedule.NewClass{
			SubjectID: sub.ID,
			TeacherID: teacherA.ID,
			DayOfWeek: intPtr(4),
			StartTime: "08:00",
			EndTime:   "09:30",
			Room:      "101",
			Building:  "Main Block",
		})
		req, rec := newAuthRequest(http.MethodPost, "/api/classes", te.getToken(t, teacherAUsr), body)
		te.app.ServeHTTP(rec, req)
		if rec.Code != http.StatusForbidden {
			t.Errorf("code = %v; want %v", rec.Code, http.StatusForbidden)
		}
	})
}
