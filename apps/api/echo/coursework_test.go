package echoapi

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/edutrack/backend/core/coursework"
	"github.com/edutrack/backend/core/school"
	"github.com/edutrack/backend/core/user"
)

func (te *testEnv) createAssignment(t *testing.T, teacherID string, sub school.Subject) coursework.Assignment {
	t.Helper()
	a, err := te.courseworkRepo.CreateAssignment(nil, coursework.Assignment{
		Title:     "Binary Tree Implementation",
		SubjectID: sub.ID,
		TeacherID: teacherID,
		DueDate:   time.Now().Add(24 * time.Hour).UTC(),
		MaxMarks:  intPtr(100),
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("CreateAssignment(): %v", err)
	}
	return a
}

func Test_courseworkApi_query(t *testing.T) {
	te := newTestEnv(t)
	sub := te.createSubject(t, "CS301")
	te.start(t, sub.ID)

	teacherAUsr, teacherA := te.createTeacher(t, "sarah.johnson", "T001")
	teacherBUsr, teacherB := te.createTeacher(t, "james.smith", "T002")
	studentUsr, _ := te.createStudent(t, "rahul.sharma", "CS2021001")

	aA := te.createAssignment(t, teacherA.ID, sub)
	other := te.createSubject(t, "CS302")
	te.createAssignment(t, teacherB.ID, other)

	query := func(t *testing.T, token string) []coursework.EnrichedAssignment {
		t.Helper()
		req, rec := newAuthRequest(http.MethodGet, "/api/assignments", token)
		te.app.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("code = %v; want %v", rec.Code, http.StatusOK)
		}
		var assignments []coursework.EnrichedAssignment
		if err := json.Unmarshal(rec.Body.Bytes(), &assignments); err != nil {
			t.Fatalf("unmarshalling assignments: %v", err)
		}
		return assignments
	}

	t.Run("teacher sees own only", func(t *testing.T) {
		got := query(t, te.getToken(t, teacherAUsr))
		if len(got) != 1 || got[0].ID != aA.ID {
			t.Fatalf("teacher A sees %d assignment(s); want only their own", len(got))
		}
		if got[0].Subject == nil || got[0].Subject.ID != sub.ID {
			t.Error("subject not embedded")
		}

		if got := query(t, te.getToken(t, teacherBUsr)); len(got) != 1 || got[0].ID == aA.ID {
			t.Errorf("teacher B sees teacher A's assignment")
		}
	})

	t.Run("student sees default subject", func(t *testing.T) {
		got := query(t, te.getToken(t, studentUsr))
		if len(got) != 1 || got[0].ID != aA.ID {
			t.Errorf("student sees %d assignment(s); want the default subject's one", len(got))
		}
	})

	t.Run("admin sees none", func(t *testing.T) {
		adminUsr := te.createUser(t, "admin", user.RoleAdmin)
		if got := query(t, te.getToken(t, adminUsr)); len(got) != 0 {
			t.Errorf("admin sees %d assignment(s); want 0", len(got))
		}
	})
}

func Test_courseworkApi_create(t *testing.T) {
	te := newTestEnv(t)
	sub := te.createSubject(t, "CS301")
	te.start(t, sub.ID)
	teacherUsr, tchr := te.createTeacher(t, "sarah.johnson", "T001")

	body := marshallObj(t, coursework.NewAssignment{
		Title:     "Graph Traversals",
		SubjectID: sub.ID,
		DueDate:   time.Now().Add(48 * time.Hour).UTC(),
		MaxMarks:  intPtr(50),
	})
	req, rec := newAuthRequest(http.MethodPost, "/api/assignments", te.getToken(t, teacherUsr), body)
	te.app.ServeHTTP(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("code = %v; want %v; body %s", rec.Code, http.StatusCreated, rec.Body.String())
	}
	var a coursework.Assignment
	if err := json.Unmarshal(rec.Body.Bytes(), &a); err != nil {
		t.Fatalf("unmarshalling Assignment: %v", err)
	}
	if a.TeacherID != tchr.ID {
		t.Errorf("TeacherID = %q; want the caller's teacher id %q", a.TeacherID, tchr.ID)
	}
}

func Test_courseworkApi_submissions(t *testing.T) {
	te := newTestEnv(t)
	sub := te.createSubject(t, "CS301")
	te.start(t, sub.ID)

	teacherUsr, tchr := te.createTeacher(t, "sarah.johnson", "T001")
	otherUsr, _ := te.createTeacher(t, "james.smith", "T002")
	studentUsr, st := te.createStudent(t, "rahul.sharma", "CS2021001")
	a := te.createAssignment(t, tchr.ID, sub)

	studentToken := te.getToken(t, studentUsr)
	teacherToken := te.getToken(t, teacherUsr)

	t.Run("student submits", func(t *testing.T) {
		body := marshallObj(t, coursework.NewSubmission{Content: "my solution"})
		req, rec := newAuthRequest(http.MethodPost, "/api/assignments/"+a.ID+"/submissions", studentToken, body)
		te.app.ServeHTTP(rec, req)
		if rec.Code != http.StatusCreated {
			t.Fatalf("code = %v; want %v; body %s", rec.Code, http.StatusCreated, rec.Body.String())
		}
		var s coursework.Submission
		if err := json.Unmarshal(rec.Body.Bytes(), &s); err != nil {
			t.Fatalf("unmarshalling Submission: %v", err)
		}
		if s.StudentID != st.ID {
			t.Errorf("StudentID = %q; want %q", s.StudentID, st.ID)
		}
	})

	t.Run("submit to unknown assignment", func(t *testing.T) {
		body := marshallObj(t, coursework.NewSubmission{Content: "lost"})
		req, rec := newAuthRequest(http.MethodPost, "/api/assignments/nope/submissions", studentToken, body)
		te.app.ServeHTTP(rec, req)
		if rec.Code != http.StatusNotFound {
			t.Errorf("code = %v; want %v", rec.Code, http.StatusNotFound)
		}
	})

	t.Run("owner lists submissions", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodGet, "/api/assignments/"+a.ID+"/submissions", teacherToken)
		te.app.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("code = %v; want %v", rec.Code, http.StatusOK)
		}
		var submissions []coursework.Submission
		if err := json.Unmarshal(rec.Body.Bytes(), &submissions); err != nil {
			t.Fatalf("unmarshalling submissions: %v", err)
		}
		if len(submissions) != 1 {
			t.Fatalf("got %d submission(s); want 1", len(submissions))
		}

		t.Run("other teacher forbidden", func(t *testing.T) {
			req, rec := newAuthRequest(http.MethodGet, "/api/assignments/"+a.ID+"/submissions", te.getToken(t, otherUsr))
			te.app.ServeHTTP(rec, req)
			if rec.Code != http.StatusForbidden {
				t.Errorf("code = %v; want %v", rec.Code, http.StatusForbidden)
			}
		})

		t.Run("grade", func(t *testing.T) {
			sID := submissions[0].ID
			body := marshallObj(t, coursework.Grade{Marks: intPtr(85), Feedback: "solid work"})

			req, rec := newAuthRequest(http.MethodPut, "/api/submissions/"+sID+"/grade", te.getToken(t, otherUsr), body)
			te.app.ServeHTTP(rec, req)
			if rec.Code != http.StatusForbidden {
				t.Errorf("non-owner grade code = %v; want %v", rec.Code, http.StatusForbidden)
			}

			req, rec = newAuthRequest(http.MethodPut, "/api/submissions/"+sID+"/grade", teacherToken, body)
			te.app.ServeHTTP(rec, req)
			if rec.Code != http.StatusOK {
				t.Fatalf("grade code = %v; want %v; body %s", rec.Code, http.StatusOK, rec.Body.String())
			}
			var graded coursework.Submission
			if err := json.Unmarshal(rec.Body.Bytes(), &graded); err != nil {
				t.Fatalf("unmarshalling Submission: %v", err)
			}
			if graded.Marks == nil || *graded.Marks != 85 {
				t.Errorf("Marks = %v; want 85", graded.Marks)
			}
			if graded.Feedback != "solid work" {
				t.Errorf("Feedback = %q; want %q", graded.Feedback, "solid work")
			}
		})
	})
}
