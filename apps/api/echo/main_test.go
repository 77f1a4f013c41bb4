package echoapi

import (
	"bytes"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/edutrack/backend/core"
	"github.com/edutrack/backend/core/attendance"
	"github.com/edutrack/backend/core/coursework"
	"github.com/edutrack/backend/core/feedback"
	"github.com/edutrack/backend/core/notice"
	"github.com/edutrack/backend/core/schedule"
	"github.com/edutrack/backend/core/school"
	"github.com/edutrack/backend/core/user"
	assistantsvc "github.com/edutrack/backend/services/assistant"
	emailsvc "github.com/edutrack/backend/services/email"
	logsvc "github.com/edutrack/backend/services/logger"
	inmemdb "github.com/edutrack/backend/storage/database/inmem"
)

var errNotAuthenticated = httpErr{Error: "user not authenticated"}

type testEnv struct {
	conf *core.Config
	app  Server

	usrRepo        user.Repository
	scheduleRepo   schedule.Repository
	attendanceRepo attendance.Repository
	courseworkRepo coursework.Repository
	noticeRepo     notice.Repository

	usrSvc        *user.Service
	schoolSvc     *school.Service
	scheduleSvc   *schedule.Service
	attendanceSvc *attendance.Service
	noticeSvc     *notice.Service
	feedbackSvc   *feedback.Service
	assistantSvc  *assistantsvc.DummyService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	conf := &core.Config{
		TestMode:         true,
		Env:              "TEST",
		AppName:          "EduTrack",
		SecretKey:        []byte("test-secret-key"),
		DefaultFromEmail: "noreply@localhost",
		Server:           core.ServerConfig{JWTExpirationDelta: time.Hour},
	}

	db, err := inmemdb.Open()
	if err != nil {
		t.Fatalf("inmemdb.Open(): %v", err)
	}

	te := &testEnv{
		conf:           conf,
		usrRepo:        inmemdb.NewUserRepository(db),
		scheduleRepo:   inmemdb.NewScheduleRepository(db),
		attendanceRepo: inmemdb.NewAttendanceRepository(db),
		courseworkRepo: inmemdb.NewCourseworkRepository(db),
		noticeRepo:     inmemdb.NewNoticeRepository(db),
		assistantSvc:   &assistantsvc.DummyService{},
	}
	te.usrSvc = user.NewService(conf, te.usrRepo, emailsvc.NewConsoleServiceMock(conf))
	te.schoolSvc = school.NewService(inmemdb.NewSchoolRepository(db))
	te.scheduleSvc = schedule.NewService(te.scheduleRepo, te.schoolSvc, te.usrSvc)
	te.attendanceSvc = attendance.NewService(te.attendanceRepo, te.schoolSvc)
	te.noticeSvc = notice.NewService(te.noticeRepo)
	te.feedbackSvc = feedback.NewService(inmemdb.NewFeedbackRepository(db))
	return te
}

// start builds the server; coursework's default subject must be known first.
func (te *testEnv) start(t *testing.T, defaultSubjectID string) {
	t.Helper()
	te.app = NewServer(&Options{
		Conf:           te.conf,
		Logger:         logsvc.NewStdLogger(log.New(io.Discard, "", 0)),
		DisableReqLogs: true,
		UserSvc:        te.usrSvc,
		SchoolSvc:      te.schoolSvc,
		ScheduleSvc:    te.scheduleSvc,
		AttendanceSvc:  te.attendanceSvc,
		CourseworkSvc:  coursework.NewService(te.courseworkRepo, te.schoolSvc, defaultSubjectID),
		NoticeSvc:      te.noticeSvc,
		FeedbackSvc:    te.feedbackSvc,
		AssistantSvc:   te.assistantSvc,
	})
}

// Fixtures

func (te *testEnv) createUser(t *testing.T, uname, role string) user.User {
	t.Helper()
	usr, err := te.usrSvc.Register(nil, user.NewUser{
		Username:  uname,
		Password:  "password123",
		Role:      role,
		FirstName: "Test",
		LastName:  "User",
		Email:     uname + "@test.cd",
	})
	if err != nil {
		t.Fatalf("createUser(%q): %v", uname, err)
	}
	return usr
}

func (te *testEnv) createStudent(t *testing.T, uname, studentID string) (user.User, school.Student) {
	t.Helper()
	usr := te.createUser(t, uname, user.RoleStudent)
	st, err := te.schoolSvc.CreateStudent(nil, school.NewStudent{
		UserID:    usr.ID,
		StudentID: studentID,
		Program:   "B.Tech Computer Science",
		Year:      3,
		Semester:  6,
	})
	if err != nil {
		t.Fatalf("createStudent(%q): %v", studentID, err)
	}
	return usr, st
}

func (te *testEnv) createTeacher(t *testing.T, uname, teacherID string) (user.User, school.Teacher) {
	t.Helper()
	usr := te.createUser(t, uname, user.RoleTeacher)
	tchr, err := te.schoolSvc.CreateTeacher(nil, school.NewTeacher{
		UserID:     usr.ID,
		TeacherID:  teacherID,
		Department: "Computer Science",
	})
	if err != nil {
		t.Fatalf("createTeacher(%q): %v", teacherID, err)
	}
	return usr, tchr
}

func (te *testEnv) createSubject(t *testing.T, code string) school.Subject {
	t.Helper()
	sub, err := te.schoolSvc.CreateSubject(nil, school.NewSubject{
		Name:       "Data Structures & Algorithms",
		Code:       code,
		Credits:    4,
		Department: "Computer Science",
	})
	if err != nil {
		t.Fatalf("createSubject(%q): %v", code, err)
	}
	return sub
}

func (te *testEnv) getToken(t *testing.T, usr user.User) string {
	t.Helper()
	token, err := GenerateToken(te.conf, GetUserClaims(te.conf, usr))
	if err != nil {
		t.Fatalf("getToken(): %v", err)
	}
	return token
}

// Request plumbing

type httpErr struct {
	Error string `json:"error"`
}

type httpTest struct {
	name     string
	body     []byte
	token    string
	wantCode int
	wantData []byte
}

func newAuthRequest(method, path, token string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	var body bytes.Buffer
	if len(data) > 0 {
		body.Write(data[0])
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	return req, rec
}

func marshallObj(t *testing.T, obj interface{}) []byte {
	t.Helper()
	data, err := json.Marshal(obj)
	if err != nil {
		t.Fatalf("marshallObj(): %v", err)
	}
	return data
}

func jsonBytesEqual(b1, b2 []byte) (bool, error) {
	var j1, j2 interface{}
	if err := json.Unmarshal(b1, &j1); err != nil {
		return false, err
	}
	if err := json.Unmarshal(b2, &j2); err != nil {
		return false, err
	}
	return assert.ObjectsAreEqual(j1, j2), nil
}

func checkCodeAndData(t *testing.T, tt httpTest, rec *httptest.ResponseRecorder) {
	t.Helper()
	if rec.Code != tt.wantCode {
		t.Errorf("failed! code = %v; wantCode %v", rec.Code, tt.wantCode)
	}
	if tt.wantData == nil {
		return
	}
	ok, err := jsonBytesEqual(rec.Body.Bytes(), tt.wantData)
	if err != nil {
		t.Errorf("jsonBytesEqual() failed to compare; err %v", err)
	}
	if !ok {
		t.Errorf("failed! data = %v; wantData %v", rec.Body.String(), string(tt.wantData))
	}
}
