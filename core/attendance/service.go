package attendance

import (
	"context"
	"errors"
	"time"

	"github.com/edutrack/backend/core/school"
)

var (
	NowFunc = time.Now // mockable

	// ErrAlreadyMarked is returned on a second mark for the same
	// (student, class, calendar day).
	ErrAlreadyMarked = errors.New("attendance already marked for this student")
)

type (
	Repository interface {
		// CreateAttendance persists the record, failing with ErrAlreadyMarked
		// when one already exists for the same (student, class, day).
		CreateAttendance(ctx context.Context, att Attendance) (Attendance, error)
		QueryAttendanceByStudent(ctx context.Context, studentID string) ([]Attendance, error)
	}

	// StudentResolver resolves a scanned QR token to a Student.
	StudentResolver interface {
		ResolveQRToken(ctx context.Context, token string) (school.Student, error)
	}

	Service struct {
		repo     Repository
		students StudentResolver
	}
)

func NewService(repo Repository, students StudentResolver) *Service {
	return &Service{repo: repo, students: students}
}

// Mark records presence for the student behind qrToken in the given class
// today. Fails with school.ErrStudentNotFound when the token resolves to no
// student and ErrAlreadyMarked on duplicates.
func (svc *Service) Mark(ctx context.Context, qrToken, classID string) (Attendance, error) {
	st, err := svc.students.ResolveQRToken(ctx, qrToken)
	if err != nil {
		return Attendance{}, err
	}

	now := NowFunc().UTC()
	att := Attendance{
		StudentID: st.ID,
		ClassID:   classID,
		Date:      Day(now),
		Present:   true,
		MarkedAt:  now,
	}
	return svc.repo.CreateAttendance(ctx, att)
}

func (svc *Service) ForStudent(ctx context.Context, studentID string) ([]Attendance, error) {
	return svc.repo.QueryAttendanceByStudent(ctx, studentID)
}
