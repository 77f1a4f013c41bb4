package coursework

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/edutrack/backend/core"
)

type Assignment struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	SubjectID   string    `json:"subjectId"`
	TeacherID   string    `json:"teacherId"`
	DueDate     time.Time `json:"dueDate"`
	MaxMarks    *int      `json:"maxMarks,omitempty"`
	Attachments []string  `json:"attachments,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Submission ties one Assignment to one Student. Marks and feedback are set
// later when a teacher grades it.
type Submission struct {
	ID           string    `json:"id"`
	AssignmentID string    `json:"assignmentId"`
	StudentID    string    `json:"studentId"`
	Content      string    `json:"content,omitempty"`
	Attachments  []string  `json:"attachments,omitempty"`
	SubmittedAt  time.Time `json:"submittedAt"`
	Marks        *int      `json:"marks,omitempty"`
	Feedback     string    `json:"feedback,omitempty"`
}

// NewAssignment contains information needed to create a new Assignment.
// The owning teacher is never taken from the request.
type NewAssignment struct {
	Title       string    `json:"title" validate:"required"`
	Description string    `json:"description"`
	SubjectID   string    `json:"subjectId" validate:"required"`
	DueDate     time.Time `json:"dueDate" validate:"required"`
	MaxMarks    *int      `json:"maxMarks" validate:"omitempty,min=1"`
	Attachments []string  `json:"attachments"`
}

func (na *NewAssignment) Validate(validate *validator.Validate) error {
	na.Title = core.CleanString(na.Title)
	na.Description = core.CleanString(na.Description)
	return validate.Struct(na)
}

type NewSubmission struct {
	Content     string   `json:"content"`
	Attachments []string `json:"attachments"`
}

func (ns *NewSubmission) Validate(validate *validator.Validate) error {
	ns.Content = core.CleanString(ns.Content)
	return validate.Struct(ns)
}

type Grade struct {
	Marks    *int   `json:"marks" validate:"required,min=0"`
	Feedback string `json:"feedback"`
}

func (g *Grade) Validate(validate *validator.Validate) error {
	g.Feedback = core.CleanString(g.Feedback)
	return validate.Struct(g)
}
