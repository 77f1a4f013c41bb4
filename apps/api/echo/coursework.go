package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/edutrack/backend/core/coursework"
	"github.com/edutrack/backend/core/user"
)

type courseworkApi struct {
	ident    *identityResolver
	svc      *coursework.Service
	validate *validator.Validate
}

func registerCourseworkAPI(
	g *echo.Group,
	jwt echo.MiddlewareFunc,
	ident *identityResolver,
	svc *coursework.Service,
	validate *validator.Validate,
) {
	api := courseworkApi{ident: ident, svc: svc, validate: validate}

	teacher := roleMiddleware(ident, user.RoleTeacher)
	student := roleMiddleware(ident, user.RoleStudent)

	ag := g.Group("/assignments", jwt)
	ag.GET("", api.query)
	ag.POST("", api.create, teacher)
	ag.POST("/:id/submissions", api.submit, student)
	ag.GET("/:id/submissions", api.querySubmissions, teacher)

	g.PUT("/submissions/:id/grade", api.grade, jwt, teacher)
}

// Handlers

func (api *courseworkApi) query(ctx echo.Context) error {
	ident, err := api.ident.resolve(ctx)
	if err != nil {
		return err
	}

	// only students and teachers have assignment visibility
	assignments := []coursework.EnrichedAssignment{}
	switch {
	case ident.IsTeacher():
		assignments, err = api.svc.ForTeacher(ctx.Request().Context(), ident.TeacherID)
	case ident.IsStudent():
		assignments, err = api.svc.ForStudent(ctx.Request().Context())
	}
	if err != nil {
		return errors.Wrap(err, "querying assignments")
	}
	return ctx.JSON(http.StatusOK, assignments)
}

func (api *courseworkApi) create(ctx echo.Context) error {
	ident, err := api.ident.resolve(ctx)
	if err != nil {
		return err
	}

	var data coursework.NewAssignment
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewAssignment")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	a, err := api.svc.Create(ctx.Request().Context(), ident.TeacherID, data)
	if err != nil {
		return errors.Wrap(err, "creating assignment")
	}
	return ctx.JSON(http.StatusCreated, a)
}

func (api *courseworkApi) submit(ctx echo.Context) error {
	ident, err := api.ident.resolve(ctx)
	if err != nil {
		return err
	}

	var data coursework.NewSubmission
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewSubmission")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	s, err := api.svc.Submit(ctx.Request().Context(), ctx.Param("id"), ident.StudentID, data)
	if err != nil {
		if err == coursework.ErrAssignmentNotFound {
			return errHTTPNotFound
		}
		return errors.Wrap(err, "submitting assignment")
	}
	return ctx.JSON(http.StatusCreated, s)
}

func (api *courseworkApi) querySubmissions(ctx echo.Context) error {
	ident, err := api.ident.resolve(ctx)
	if err != nil {
		return err
	}

	submissions, err := api.svc.SubmissionsForAssignment(ctx.Request().Context(), ctx.Param("id"), ident.TeacherID)
	if err != nil {
		switch err {
		case coursework.ErrAssignmentNotFound:
			return errHTTPNotFound
		case coursework.ErrNotOwner:
			return errHTTPForbidden
		}
		return errors.Wrap(err, "querying submissions")
	}
	return ctx.JSON(http.StatusOK, submissions)
}

func (api *courseworkApi) grade(ctx echo.Context) error {
	ident, err := api.ident.resolve(ctx)
	if err != nil {
		return err
	}

	var data coursework.Grade
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to Grade")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	s, err := api.svc.GradeSubmission(ctx.Request().Context(), ctx.Param("id"), ident.TeacherID, data)
	if err != nil {
		switch err {
		case coursework.ErrSubmissionNotFound, coursework.ErrAssignmentNotFound:
			return errHTTPNotFound
		case coursework.ErrNotOwner:
			return errHTTPForbidden
		}
		return errors.Wrap(err, "grading submission")
	}
	return ctx.JSON(http.StatusOK, s)
}
