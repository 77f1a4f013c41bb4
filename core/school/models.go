package school

import (
	"github.com/go-playground/validator/v10"

	"github.com/edutrack/backend/core"
)

type Student struct {
	ID        string `json:"id"`
	UserID    string `json:"userId"`
	StudentID string `json:"studentId"` // human-readable, unique
	Program   string `json:"program"`
	Year      int    `json:"year"`
	Semester  int    `json:"semester"`
	QRCode    string `json:"qrCode"` // attendance credential, unique
}

type Teacher struct {
	ID         string   `json:"id"`
	UserID     string   `json:"userId"`
	TeacherID  string   `json:"teacherId"` // human-readable, unique
	Department string   `json:"department"`
	Subjects   []string `json:"subjects"` // informational subject names
}

type Subject struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Code       string `json:"code"` // unique
	Credits    int    `json:"credits"`
	Department string `json:"department"`
}

// NewStudent contains information needed to bind a Student profile to a User.
type NewStudent struct {
	UserID    string `json:"userId" validate:"required"`
	StudentID string `json:"studentId" validate:"required,alphanum_"`
	Program   string `json:"program" validate:"required"`
	Year      int    `json:"year" validate:"required,min=1"`
	Semester  int    `json:"semester" validate:"required,min=1"`
}

func (ns *NewStudent) Validate(validate *validator.Validate) error {
	ns.StudentID = core.CleanString(ns.StudentID)
	ns.Program = core.CleanString(ns.Program)
	return validate.Struct(ns)
}

type NewTeacher struct {
	UserID     string   `json:"userId" validate:"required"`
	TeacherID  string   `json:"teacherId" validate:"required,alphanum_"`
	Department string   `json:"department" validate:"required"`
	Subjects   []string `json:"subjects"`
}

func (nt *NewTeacher) Validate(validate *validator.Validate) error {
	nt.TeacherID = core.CleanString(nt.TeacherID)
	nt.Department = core.CleanString(nt.Department)
	return validate.Struct(nt)
}

type NewSubject struct {
	Name       string `json:"name" validate:"required"`
	Code       string `json:"code" validate:"required,alphanum_"`
	Credits    int    `json:"credits" validate:"required,min=1"`
	Department string `json:"department" validate:"required"`
}

func (ns *NewSubject) Validate(validate *validator.Validate) error {
	ns.Name = core.CleanString(ns.Name)
	ns.Code = core.CleanString(ns.Code)
	ns.Department = core.CleanString(ns.Department)
	return validate.Struct(ns)
}
