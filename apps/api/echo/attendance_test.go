package echoapi

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/edutrack/backend/core/attendance"
)

func Test_attendanceApi_mark(t *testing.T) {
	te := newTestEnv(t)
	te.start(t, "")

	teacherUsr, _ := te.createTeacher(t, "sarah.johnson", "T001")
	studentUsr, st := te.createStudent(t, "rahul.sharma", "CS2021001")
	teacherToken := te.getToken(t, teacherUsr)

	mark := func(token, qr, classID string) *http.Response {
		body := marshallObj(t, MarkAttendanceRequest{StudentQR: qr, ClassID: classID})
		req, rec := newAuthRequest(http.MethodPost, "/api/attendance/mark", token, body)
		te.app.ServeHTTP(rec, req)
		return rec.Result()
	}

	t.Run("first scan", func(t *testing.T) {
		body := marshallObj(t, MarkAttendanceRequest{StudentQR: st.QRCode, ClassID: "class-1"})
		req, rec := newAuthRequest(http.MethodPost, "/api/attendance/mark", teacherToken, body)
		te.app.ServeHTTP(rec, req)
		if rec.Code != http.StatusCreated {
			t.Fatalf("code = %v; want %v; body %s", rec.Code, http.StatusCreated, rec.Body.String())
		}
		var att attendance.Attendance
		if err := json.Unmarshal(rec.Body.Bytes(), &att); err != nil {
			t.Fatalf("unmarshalling Attendance: %v", err)
		}
		if att.StudentID != st.ID {
			t.Errorf("StudentID = %q; want %q", att.StudentID, st.ID)
		}
		if !att.Present {
			t.Error("Present = false; want true")
		}
	})

	t.Run("duplicate scan", func(t *testing.T) {
		if res := mark(teacherToken, st.QRCode, "class-1"); res.StatusCode != http.StatusBadRequest {
			t.Errorf("code = %v; want %v", res.StatusCode, http.StatusBadRequest)
		}

		records, err := te.attendanceSvc.ForStudent(nil, st.ID)
		if err != nil {
			t.Fatalf("ForStudent(): %v", err)
		}
		if len(records) != 1 {
			t.Errorf("got %d record(s); want exactly 1", len(records))
		}
	})

	t.Run("unknown credential", func(t *testing.T) {
		if res := mark(teacherToken, "NOPE-123", "class-1"); res.StatusCode != http.StatusNotFound {
			t.Errorf("code = %v; want %v", res.StatusCode, http.StatusNotFound)
		}
	})

	t.Run("student cannot mark", func(t *testing.T) {
		res := mark(te.getToken(t, studentUsr), st.QRCode, "class-2")
		if res.StatusCode != http.StatusForbidden {
			t.Errorf("code = %v; want %v", res.StatusCode, http.StatusForbidden)
		}
	})
}

func Test_attendanceApi_byStudent(t *testing.T) {
	te := newTestEnv(t)
	te.start(t, "")

	teacherUsr, _ := te.createTeacher(t, "sarah.johnson", "T001")
	studentUsr, st := te.createStudent(t, "rahul.sharma", "CS2021001")

	if _, err := te.attendanceSvc.Mark(nil, st.QRCode, "class-1"); err != nil {
		t.Fatalf("Mark(): %v", err)
	}

	for _, token := range []string{te.getToken(t, teacherUsr), te.getToken(t, studentUsr)} {
		req, rec := newAuthRequest(http.MethodGet, "/api/attendance/student/"+st.ID, token)
		te.app.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("code = %v; want %v", rec.Code, http.StatusOK)
		}
		var records []attendance.Attendance
		if err := json.Unmarshal(rec.Body.Bytes(), &records); err != nil {
			t.Fatalf("unmarshalling records: %v", err)
		}
		if len(records) != 1 {
			t.Errorf("got %d record(s); want 1", len(records))
		}
	}
}
