package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/edutrack/backend/core/schedule"
	"github.com/edutrack/backend/core/user"
)

const noMoreClassesText = "No more classes today"

type scheduleApi struct {
	ident    *identityResolver
	svc      *schedule.Service
	validate *validator.Validate
}

func registerScheduleAPI(
	g *echo.Group,
	jwt echo.MiddlewareFunc,
	ident *identityResolver,
	svc *schedule.Service,
	validate *validator.Validate,
) {
	api := scheduleApi{ident: ident, svc: svc, validate: validate}

	tg := g.Group("/timetable", jwt)
	tg.GET("", api.today)
	tg.GET("/next", api.next)

	staff := roleMiddleware(ident, user.RoleAdmin, user.RoleTeacher)
	admin := roleMiddleware(ident, user.RoleAdmin)

	cg := g.Group("/classes", jwt)
	cg.GET("", api.queryClasses, staff)
	cg.POST("", api.createClass, admin)
	cg.DELETE("/:id", api.deleteClass, admin)
}

// Handlers

func (api *scheduleApi) today(ctx echo.Context) error {
	entries, err := api.svc.TodayClasses(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying today's classes")
	}
	return ctx.JSON(http.StatusOK, entries)
}

func (api *scheduleApi) next(ctx echo.Context) error {
	entry, ok, err := api.svc.NextClass(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying next class")
	}
	if !ok {
		return ctx.JSON(http.StatusOK, echo.Map{"message": noMoreClassesText})
	}
	return ctx.JSON(http.StatusOK, entry)
}

func (api *scheduleApi) queryClasses(ctx echo.Context) error {
	ident, err := api.ident.resolve(ctx)
	if err != nil {
		return err
	}

	var classes []schedule.ManagedClass
	if ident.IsTeacher() {
		classes, err = api.svc.ClassesForTeacher(ctx.Request().Context(), ident.TeacherID)
	} else {
		classes, err = api.svc.AllClasses(ctx.Request().Context())
	}
	if err != nil {
		return errors.Wrap(err, "querying classes")
	}
	return ctx.JSON(http.StatusOK, classes)
}

func (api *scheduleApi) createClass(ctx echo.Context) error {
	var data schedule.NewClass
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewClass")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	cls, err := api.svc.Create(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating class")
	}
	return ctx.JSON(http.StatusCreated, cls)
}

func (api *scheduleApi) deleteClass(ctx echo.Context) error {
	if err := api.svc.Delete(ctx.Request().Context(), ctx.Param("id")); err != nil {
		if err == schedule.ErrClassNotFound {
			return errHTTPNotFound
		}
		return errors.Wrap(err, "deleting class")
	}
	return ctx.NoContent(http.StatusNoContent)
}
