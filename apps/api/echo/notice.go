package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/edutrack/backend/core/notice"
	"github.com/edutrack/backend/core/user"
)

type noticeApi struct {
	ident    *identityResolver
	svc      *notice.Service
	validate *validator.Validate
}

func registerNoticeAPI(
	g *echo.Group,
	jwt echo.MiddlewareFunc,
	ident *identityResolver,
	svc *notice.Service,
	validate *validator.Validate,
) {
	api := noticeApi{ident: ident, svc: svc, validate: validate}

	ng := g.Group("/notices", jwt)
	ng.GET("", api.query)
	ng.POST("", api.create, roleMiddleware(ident, user.RoleAdmin, user.RoleTeacher))
	ng.DELETE("/:id", api.delete)
}

// Handlers

func (api *noticeApi) query(ctx echo.Context) error {
	ident, err := api.ident.resolve(ctx)
	if err != nil {
		return err
	}

	notices, err := api.svc.ForRole(ctx.Request().Context(), ident.Role)
	if err != nil {
		return errors.Wrap(err, "querying notices")
	}
	return ctx.JSON(http.StatusOK, notices)
}

func (api *noticeApi) create(ctx echo.Context) error {
	ident, err := api.ident.resolve(ctx)
	if err != nil {
		return err
	}

	var data notice.NewNotice
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewNotice")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	n, err := api.svc.Create(ctx.Request().Context(), ident.UserID, data)
	if err != nil {
		return errors.Wrap(err, "creating notice")
	}
	return ctx.JSON(http.StatusCreated, n)
}

func (api *noticeApi) delete(ctx echo.Context) error {
	ident, err := api.ident.resolve(ctx)
	if err != nil {
		return err
	}

	if err := api.svc.Delete(ctx.Request().Context(), ctx.Param("id"), ident.UserID, ident.IsAdmin()); err != nil {
		switch err {
		case notice.ErrNotFound:
			return errHTTPNotFound
		case notice.ErrNotOwner:
			return errHTTPForbidden
		}
		return errors.Wrap(err, "deleting notice")
	}
	return ctx.NoContent(http.StatusNoContent)
}
