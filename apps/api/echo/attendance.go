package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/edutrack/backend/core"
	"github.com/edutrack/backend/core/attendance"
	"github.com/edutrack/backend/core/school"
	"github.com/edutrack/backend/core/user"
)

type attendanceApi struct {
	svc      *attendance.Service
	validate *validator.Validate
}

func registerAttendanceAPI(
	g *echo.Group,
	jwt echo.MiddlewareFunc,
	ident *identityResolver,
	svc *attendance.Service,
	validate *validator.Validate,
) {
	api := attendanceApi{svc: svc, validate: validate}

	ag := g.Group("/attendance", jwt)
	ag.POST("/mark", api.mark, roleMiddleware(ident, user.RoleTeacher))
	ag.GET("/student/:studentId", api.byStudent)
}

// MarkAttendanceRequest is a scanned student credential plus the target class.
type MarkAttendanceRequest struct {
	StudentQR string `json:"studentQR" validate:"required"`
	ClassID   string `json:"classId" validate:"required"`
}

// Handlers

func (api *attendanceApi) mark(ctx echo.Context) error {
	var data MarkAttendanceRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to MarkAttendanceRequest")
	}
	if err := api.validate.Struct(&data); err != nil {
		return err
	}

	att, err := api.svc.Mark(ctx.Request().Context(), data.StudentQR, data.ClassID)
	if err != nil {
		switch err {
		case school.ErrStudentNotFound:
			return errHTTPNotFound
		case attendance.ErrAlreadyMarked:
			return core.NewValidationError(err)
		}
		return errors.Wrap(err, "marking attendance")
	}
	return ctx.JSON(http.StatusCreated, att)
}

func (api *attendanceApi) byStudent(ctx echo.Context) error {
	records, err := api.svc.ForStudent(ctx.Request().Context(), ctx.Param("studentId"))
	if err != nil {
		return errors.Wrap(err, "querying attendance")
	}
	return ctx.JSON(http.StatusOK, records)
}
