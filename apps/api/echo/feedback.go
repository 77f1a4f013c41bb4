package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/edutrack/backend/core/feedback"
	"github.com/edutrack/backend/core/user"
)

type feedbackApi struct {
	ident    *identityResolver
	svc      *feedback.Service
	validate *validator.Validate
}

func registerFeedbackAPI(
	g *echo.Group,
	jwt echo.MiddlewareFunc,
	ident *identityResolver,
	svc *feedback.Service,
	validate *validator.Validate,
) {
	api := feedbackApi{ident: ident, svc: svc, validate: validate}

	fg := g.Group("/feedback", jwt)
	fg.POST("", api.create, roleMiddleware(ident, user.RoleStudent))
	fg.GET("/subject/:subjectId", api.bySubject, roleMiddleware(ident, user.RoleAdmin, user.RoleTeacher))
}

// Handlers

func (api *feedbackApi) create(ctx echo.Context) error {
	ident, err := api.ident.resolve(ctx)
	if err != nil {
		return err
	}

	var data feedback.NewFeedback
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewFeedback")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	fb, err := api.svc.Create(ctx.Request().Context(), ident.StudentID, data)
	if err != nil {
		return errors.Wrap(err, "creating feedback")
	}
	return ctx.JSON(http.StatusCreated, fb)
}

func (api *feedbackApi) bySubject(ctx echo.Context) error {
	records, err := api.svc.BySubject(ctx.Request().Context(), ctx.Param("subjectId"))
	if err != nil {
		return errors.Wrap(err, "querying feedback")
	}
	return ctx.JSON(http.StatusOK, records)
}
