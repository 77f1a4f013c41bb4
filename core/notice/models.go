package notice

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/edutrack/backend/core"
)

// Notice types
const (
	TypeGeneral  = "general"
	TypeAcademic = "academic"
	TypeExam     = "exam"
	TypeEvent    = "event"
)

// Priorities
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

// Audiences
const (
	AudienceAll      = "all"
	AudienceStudents = "students"
	AudienceTeachers = "teachers"
)

type Notice struct {
	ID             string     `json:"id"`
	Title          string     `json:"title"`
	Content        string     `json:"content"`
	Type           string     `json:"type"`
	Priority       string     `json:"priority"`
	TargetAudience []string   `json:"targetAudience"`
	CreatedBy      string     `json:"createdBy"`
	CreatedAt      time.Time  `json:"createdAt"`
	ExpiresAt      *time.Time `json:"expiresAt,omitempty"` // stored, not used for filtering
}

// NewNotice contains information needed to publish a Notice.
// The creator is never taken from the request.
type NewNotice struct {
	Title          string     `json:"title" validate:"required"`
	Content        string     `json:"content" validate:"required"`
	Type           string     `json:"type" validate:"required,oneof=general academic exam event"`
	Priority       string     `json:"priority" validate:"required,oneof=low medium high"`
	TargetAudience []string   `json:"targetAudience" validate:"required,min=1,dive,oneof=all students teachers"`
	ExpiresAt      *time.Time `json:"expiresAt"`
}

func (nn *NewNotice) Validate(validate *validator.Validate) error {
	nn.Title = core.CleanString(nn.Title)
	nn.Content = core.CleanString(nn.Content)
	return validate.Struct(nn)
}
