package schedule

import (
	"github.com/go-playground/validator/v10"

	"github.com/edutrack/backend/core"
)

// Class is a recurring weekly timeslot. There is no date range or exception
// mechanism: a Class recurs on its weekday indefinitely.
type Class struct {
	ID        string    `json:"id"`
	SubjectID string    `json:"subjectId"`
	TeacherID string    `json:"teacherId"`
	DayOfWeek int       `json:"dayOfWeek"` // 0-6, Sunday-first
	StartTime TimeOfDay `json:"startTime"`
	EndTime   TimeOfDay `json:"endTime"` // start < end; midnight-crossing unsupported
	Room      string    `json:"room"`
	Building  string    `json:"building"`
}

// NewClass contains information needed to create a new Class.
type NewClass struct {
	SubjectID string `json:"subjectId" validate:"required"`
	TeacherID string `json:"teacherId" validate:"required"`
	DayOfWeek *int   `json:"dayOfWeek" validate:"required,min=0,max=6"`
	StartTime string `json:"startTime" validate:"required,timehhmm"`
	EndTime   string `json:"endTime" validate:"required,timehhmm"`
	Room      string `json:"room" validate:"required"`
	Building  string `json:"building" validate:"required"`
}

func (nc *NewClass) Validate(validate *validator.Validate) error {
	nc.Room = core.CleanString(nc.Room)
	nc.Building = core.CleanString(nc.Building)

	if err := validate.Struct(nc); err != nil {
		return err
	}
	start, _ := ParseTimeOfDay(nc.StartTime)
	end, _ := ParseTimeOfDay(nc.EndTime)
	if !start.Before(end) {
		return core.NewValidationError(nil, core.FieldError{Field: "endTime", Error: "must be after startTime"})
	}
	return nil
}
