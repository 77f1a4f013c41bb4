package school

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/edutrack/backend/core"
)

var (
	// errors
	ErrStudentNotFound   = errors.New("student not found")
	ErrTeacherNotFound   = errors.New("teacher not found")
	ErrSubjectNotFound   = errors.New("subject not found")
	ErrStudentIDExists   = errors.New("a student with this student ID already exists")
	ErrTeacherIDExists   = errors.New("a teacher with this teacher ID already exists")
	ErrSubjectCodeExists = errors.New("a subject with this code already exists")
)

type (
	Repository interface {
		CreateStudent(ctx context.Context, st Student) (Student, error)
		GetStudentByID(ctx context.Context, id string) (Student, error)
		GetStudentByUserID(ctx context.Context, userID string) (Student, error)
		GetStudentByStudentID(ctx context.Context, studentID string) (Student, error)
		GetStudentByQRToken(ctx context.Context, token string) (Student, error)

		CreateTeacher(ctx context.Context, t Teacher) (Teacher, error)
		GetTeacherByID(ctx context.Context, id string) (Teacher, error)
		GetTeacherByUserID(ctx context.Context, userID string) (Teacher, error)

		CreateSubject(ctx context.Context, sub Subject) (Subject, error)
		GetSubjectByID(ctx context.Context, id string) (Subject, error)
		GetSubjectByCode(ctx context.Context, code string) (Subject, error)
		QueryAllSubjects(ctx context.Context) ([]Subject, error)
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// CreateStudent binds a Student profile to a User and issues its QR token.
// The token is the student ID plus a random suffix; the full token is also
// indexed so scans resolve without string-splitting.
func (svc *Service) CreateStudent(ctx context.Context, ns NewStudent) (Student, error) {
	if _, err := svc.repo.GetStudentByStudentID(ctx, ns.StudentID); err == nil {
		return Student{}, core.NewValidationError(ErrStudentIDExists, core.FieldError{Field: "studentId", Error: ErrStudentIDExists.Error()})
	} else if err != ErrStudentNotFound {
		return Student{}, err
	}
	st := Student{
		UserID:    ns.UserID,
		StudentID: ns.StudentID,
		Program:   ns.Program,
		Year:      ns.Year,
		Semester:  ns.Semester,
		QRCode:    ns.StudentID + "-" + uuid.New().String()[:8],
	}
	return svc.repo.CreateStudent(ctx, st)
}

func (svc *Service) CreateTeacher(ctx context.Context, nt NewTeacher) (Teacher, error) {
	t := Teacher{
		UserID:     nt.UserID,
		TeacherID:  nt.TeacherID,
		Department: nt.Department,
		Subjects:   nt.Subjects,
	}
	return svc.repo.CreateTeacher(ctx, t)
}

func (svc *Service) CreateSubject(ctx context.Context, ns NewSubject) (Subject, error) {
	if _, err := svc.repo.GetSubjectByCode(ctx, ns.Code); err == nil {
		return Subject{}, core.NewValidationError(ErrSubjectCodeExists, core.FieldError{Field: "code", Error: ErrSubjectCodeExists.Error()})
	} else if err != ErrSubjectNotFound {
		return Subject{}, err
	}
	sub := Subject{
		Name:       ns.Name,
		Code:       ns.Code,
		Credits:    ns.Credits,
		Department: ns.Department,
	}
	return svc.repo.CreateSubject(ctx, sub)
}

func (svc *Service) GetStudentByID(ctx context.Context, id string) (Student, error) {
	return svc.repo.GetStudentByID(ctx, id)
}

func (svc *Service) GetStudentByUserID(ctx context.Context, userID string) (Student, error) {
	return svc.repo.GetStudentByUserID(ctx, userID)
}

func (svc *Service) GetTeacherByID(ctx context.Context, id string) (Teacher, error) {
	return svc.repo.GetTeacherByID(ctx, id)
}

func (svc *Service) GetTeacherByUserID(ctx context.Context, userID string) (Teacher, error) {
	return svc.repo.GetTeacherByUserID(ctx, userID)
}

func (svc *Service) GetSubjectByID(ctx context.Context, id string) (Subject, error) {
	return svc.repo.GetSubjectByID(ctx, id)
}

func (svc *Service) QueryAllSubjects(ctx context.Context) ([]Subject, error) {
	return svc.repo.QueryAllSubjects(ctx)
}

// ResolveQRToken resolves a scanned attendance credential to a Student.
// The full token is tried against the token index first; tokens minted under
// the legacy "studentID-suffix" convention fall back to a prefix lookup.
func (svc *Service) ResolveQRToken(ctx context.Context, token string) (Student, error) {
	st, err := svc.repo.GetStudentByQRToken(ctx, token)
	if err == nil {
		return st, nil
	}
	if err != ErrStudentNotFound {
		return Student{}, err
	}
	prefix := token
	if i := strings.Index(token, "-"); i >= 0 {
		prefix = token[:i]
	}
	return svc.repo.GetStudentByStudentID(ctx, prefix)
}

// QRCodePNG renders the student's attendance credential as a QR code image.
func (svc *Service) QRCodePNG(st Student, size int) ([]byte, error) {
	return qrcode.Encode(st.QRCode, qrcode.Medium, size)
}
