package coursework

import (
	"context"
	"errors"
	"time"

	"github.com/edutrack/backend/core/school"
)

var (
	// errors
	ErrAssignmentNotFound = errors.New("assignment not found")
	ErrSubmissionNotFound = errors.New("submission not found")
	ErrNotOwner           = errors.New("assignment belongs to another teacher")
)

type (
	Repository interface {
		CreateAssignment(ctx context.Context, a Assignment) (Assignment, error)
		GetAssignmentByID(ctx context.Context, id string) (Assignment, error)
		QueryAssignmentsBySubject(ctx context.Context, subjectID string) ([]Assignment, error)
		QueryAssignmentsByTeacher(ctx context.Context, teacherID string) ([]Assignment, error)

		CreateSubmission(ctx context.Context, s Submission) (Submission, error)
		GetSubmissionByID(ctx context.Context, id string) (Submission, error)
		QuerySubmissionsByAssignment(ctx context.Context, assignmentID string) ([]Submission, error)
		QuerySubmissionsByStudent(ctx context.Context, studentID string) ([]Submission, error)
		UpdateSubmission(ctx context.Context, s Submission) (Submission, error)
	}

	SubjectDirectory interface {
		GetSubjectByID(ctx context.Context, id string) (school.Subject, error)
	}

	Service struct {
		repo     Repository
		subjects SubjectDirectory

		// TODO: replace with a student-subject enrollment relation; every
		// student currently sees the default subject's assignments only.
		defaultSubjectID string
	}
)

func NewService(repo Repository, subjects SubjectDirectory, defaultSubjectID string) *Service {
	return &Service{repo: repo, subjects: subjects, defaultSubjectID: defaultSubjectID}
}

// EnrichedAssignment is an Assignment with its Subject embedded
// (null when the reference dangles).
type EnrichedAssignment struct {
	Assignment
	Subject *school.Subject `json:"subject"`
}

// ForStudent returns the assignments a student identity may see.
func (svc *Service) ForStudent(ctx context.Context) ([]EnrichedAssignment, error) {
	if svc.defaultSubjectID == "" {
		return []EnrichedAssignment{}, nil
	}
	assignments, err := svc.repo.QueryAssignmentsBySubject(ctx, svc.defaultSubjectID)
	if err != nil {
		return nil, err
	}
	return svc.enrich(ctx, assignments), nil
}

// ForTeacher returns exactly the assignments owned by the given teacher.
func (svc *Service) ForTeacher(ctx context.Context, teacherID string) ([]EnrichedAssignment, error) {
	assignments, err := svc.repo.QueryAssignmentsByTeacher(ctx, teacherID)
	if err != nil {
		return nil, err
	}
	return svc.enrich(ctx, assignments), nil
}

// Create creates an assignment owned by teacherID, regardless of any owner
// supplied in the request.
func (svc *Service) Create(ctx context.Context, teacherID string, na NewAssignment) (Assignment, error) {
	a := Assignment{
		Title:       na.Title,
		Description: na.Description,
		SubjectID:   na.SubjectID,
		TeacherID:   teacherID,
		DueDate:     na.DueDate,
		MaxMarks:    na.MaxMarks,
		Attachments: na.Attachments,
		CreatedAt:   time.Now().UTC(),
	}
	return svc.repo.CreateAssignment(ctx, a)
}

// Submit records a student's submission against an existing assignment.
func (svc *Service) Submit(ctx context.Context, assignmentID, studentID string, ns NewSubmission) (Submission, error) {
	if _, err := svc.repo.GetAssignmentByID(ctx, assignmentID); err != nil {
		return Submission{}, err
	}
	s := Submission{
		AssignmentID: assignmentID,
		StudentID:    studentID,
		Content:      ns.Content,
		Attachments:  ns.Attachments,
		SubmittedAt:  time.Now().UTC(),
	}
	return svc.repo.CreateSubmission(ctx, s)
}

// SubmissionsForAssignment lists submissions; only the owning teacher may.
func (svc *Service) SubmissionsForAssignment(ctx context.Context, assignmentID, teacherID string) ([]Submission, error) {
	a, err := svc.repo.GetAssignmentByID(ctx, assignmentID)
	if err != nil {
		return nil, err
	}
	if a.TeacherID != teacherID {
		return nil, ErrNotOwner
	}
	return svc.repo.QuerySubmissionsByAssignment(ctx, assignmentID)
}

// GradeSubmission sets marks and feedback; only the owning teacher may.
func (svc *Service) GradeSubmission(ctx context.Context, submissionID, teacherID string, g Grade) (Submission, error) {
	s, err := svc.repo.GetSubmissionByID(ctx, submissionID)
	if err != nil {
		return Submission{}, err
	}
	a, err := svc.repo.GetAssignmentByID(ctx, s.AssignmentID)
	if err != nil {
		return Submission{}, err
	}
	if a.TeacherID != teacherID {
		return Submission{}, ErrNotOwner
	}
	s.Marks = g.Marks
	s.Feedback = g.Feedback
	return svc.repo.UpdateSubmission(ctx, s)
}

func (svc *Service) enrich(ctx context.Context, assignments []Assignment) []EnrichedAssignment {
	enriched := make([]EnrichedAssignment, 0, len(assignments))
	for _, a := range assignments {
		ea := EnrichedAssignment{Assignment: a}
		if sub, err := svc.subjects.GetSubjectByID(ctx, a.SubjectID); err == nil {
			ea.Subject = &sub
		}
		enriched = append(enriched, ea)
	}
	return enriched
}
