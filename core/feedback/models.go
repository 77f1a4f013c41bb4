package feedback

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/edutrack/backend/core"
)

// Feedback is a rating submitted by a Student about a Subject/Teacher pairing.
type Feedback struct {
	ID        string    `json:"id"`
	StudentID string    `json:"studentId"`
	SubjectID string    `json:"subjectId,omitempty"`
	TeacherID string    `json:"teacherId,omitempty"`
	Type      string    `json:"type"`
	Rating    int       `json:"rating"`
	Comments  string    `json:"comments,omitempty"`
	Anonymous bool      `json:"anonymous"`
	CreatedAt time.Time `json:"createdAt"`
}

// NewFeedback contains information needed to submit Feedback.
// The submitting student is never taken from the request.
type NewFeedback struct {
	SubjectID string `json:"subjectId"`
	TeacherID string `json:"teacherId"`
	Type      string `json:"type" validate:"required,oneof=teaching resources general"`
	Rating    int    `json:"rating" validate:"required,min=1,max=5"`
	Comments  string `json:"comments"`
	Anonymous *bool  `json:"anonymous"`
}

func (nf *NewFeedback) Validate(validate *validator.Validate) error {
	nf.Comments = core.CleanString(nf.Comments)
	return validate.Struct(nf)
}
