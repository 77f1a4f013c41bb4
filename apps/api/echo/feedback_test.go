package echoapi

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/edutrack/backend/core/feedback"
)

func Test_feedbackApi(t *testing.T) {
	te := newTestEnv(t)
	te.start(t, "")

	teacherUsr, tchr := te.createTeacher(t, "sarah.johnson", "T001")
	studentUsr, st := te.createStudent(t, "rahul.sharma", "CS2021001")
	sub := te.createSubject(t, "CS301")

	studentToken := te.getToken(t, studentUsr)
	teacherToken := te.getToken(t, teacherUsr)

	t.Run("student submits", func(t *testing.T) {
		body := marshallObj(t, feedback.NewFeedback{
			SubjectID: sub.ID,
			TeacherID: tchr.ID,
			Type:      "teaching",
			Rating:    4,
			Comments:  "clear lectures",
		})
		req, rec := newAuthRequest(http.MethodPost, "/api/feedback", studentToken, body)
		te.app.ServeHTTP(rec, req)
		if rec.Code != http.StatusCreated {
			t.Fatalf("code = %v; want %v; body %s", rec.Code, http.StatusCreated, rec.Body.String())
		}
		var fb feedback.Feedback
		if err := json.Unmarshal(rec.Body.Bytes(), &fb); err != nil {
			t.Fatalf("unmarshalling Feedback: %v", err)
		}
		if fb.StudentID != st.ID {
			t.Errorf("StudentID = %q; want the caller's student id %q", fb.StudentID, st.ID)
		}
		if !fb.Anonymous {
			t.Error("Anonymous = false; want the default true")
		}
	})

	t.Run("rating out of range", func(t *testing.T) {
		body := marshallObj(t, feedback.NewFeedback{
			SubjectID: sub.ID,
			Type:      "teaching",
			Rating:    6,
		})
		req, rec := newAuthRequest(http.MethodPost, "/api/feedback", studentToken, body)
		te.app.ServeHTTP(rec, req)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("code = %v; want %v", rec.Code, http.StatusBadRequest)
		}
	})

	t.Run("teacher cannot submit", func(t *testing.T) {
		body := marshallObj(t, feedback.NewFeedback{SubjectID: sub.ID, Type: "general", Rating: 5})
		req, rec := newAuthRequest(http.MethodPost, "/api/feedback", teacherToken, body)
		te.app.ServeHTTP(rec, req)
		if rec.Code != http.StatusForbidden {
			t.Errorf("code = %v; want %v", rec.Code, http.StatusForbidden)
		}
	})

	t.Run("teacher reads by subject", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodGet, "/api/feedback/subject/"+sub.ID, teacherToken)
		te.app.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("code = %v; want %v", rec.Code, http.StatusOK)
		}
		var records []feedback.Feedback
		if err := json.Unmarshal(rec.Body.Bytes(), &records); err != nil {
			t.Fatalf("unmarshalling records: %v", err)
		}
		if len(records) != 1 {
			t.Errorf("got %d record(s); want 1", len(records))
		}
	})

	t.Run("student cannot read by subject", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodGet, "/api/feedback/subject/"+sub.ID, studentToken)
		te.app.ServeHTTP(rec, req)
		if rec.Code != http.StatusForbidden {
			t.Errorf("code = %v; want %v", rec.Code, http.StatusForbidden)
		}
	})
}
