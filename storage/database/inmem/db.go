package inmemdb

import (
	"sync"

	"github.com/edutrack/backend/core/attendance"
	"github.com/edutrack/backend/core/coursework"
	"github.com/edutrack/backend/core/feedback"
	"github.com/edutrack/backend/core/notice"
	"github.com/edutrack/backend/core/schedule"
	"github.com/edutrack/backend/core/school"
	"github.com/edutrack/backend/core/user"
)

type (
	// DB is the in-memory backend: one table per entity. Individual table
	// operations are atomic under the table's lock; cross-record invariants
	// (attendance uniqueness) are enforced inside the write path.
	DB struct {
		user       *userTable
		student    *studentTable
		teacher    *teacherTable
		subject    *subjectTable
		class      *classTable
		attendance *attendanceTable
		assignment *assignmentTable
		submission *submissionTable
		notice     *noticeTable
		feedback   *feedbackTable
	}

	userTable struct {
		sync.RWMutex
		table map[string]*user.User
	}
	studentTable struct {
		sync.RWMutex
		table map[string]*school.Student
	}
	teacherTable struct {
		sync.RWMutex
		table map[string]*school.Teacher
	}
	subjectTable struct {
		sync.RWMutex
		table map[string]*school.Subject
	}
	classTable struct {
		sync.RWMutex
		table map[string]*schedule.Class
	}
	attendanceTable struct {
		sync.RWMutex
		table map[string]*attendance.Attendance
		byDay map[string]string // (student, class, day) -> attendance id
	}
	assignmentTable struct {
		sync.RWMutex
		table map[string]*coursework.Assignment
	}
	submissionTable struct {
		sync.RWMutex
		table map[string]*coursework.Submission
	}
	noticeTable struct {
		sync.RWMutex
		table map[string]*notice.Notice
	}
	feedbackTable struct {
		sync.RWMutex
		table map[string]*feedback.Feedback
	}
)

func Open() (*DB, error) {
	db := &DB{
		user:       &userTable{table: make(map[string]*user.User)},
		student:    &studentTable{table: make(map[string]*school.Student)},
		teacher:    &teacherTable{table: make(map[string]*school.Teacher)},
		subject:    &subjectTable{table: make(map[string]*school.Subject)},
		class:      &classTable{table: make(map[string]*schedule.Class)},
		attendance: &attendanceTable{table: make(map[string]*attendance.Attendance), byDay: make(map[string]string)},
		assignment: &assignmentTable{table: make(map[string]*coursework.Assignment)},
		submission: &submissionTable{table: make(map[string]*coursework.Submission)},
		notice:     &noticeTable{table: make(map[string]*notice.Notice)},
		feedback:   &feedbackTable{table: make(map[string]*feedback.Feedback)},
	}
	return db, nil
}
