package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/edutrack/backend/core"
	"github.com/edutrack/backend/core/school"
	"github.com/edutrack/backend/core/user"
)

type authApi struct {
	conf     *core.Config
	ident    *identityResolver
	svc      *user.Service
	school   *school.Service
	validate *validator.Validate
}

func registerAuthAPI(
	g *echo.Group,
	jwt echo.MiddlewareFunc,
	conf *core.Config,
	ident *identityResolver,
	svc *user.Service,
	schoolSvc *school.Service,
	validate *validator.Validate,
) {
	api := authApi{
		conf:     conf,
		ident:    ident,
		svc:      svc,
		school:   schoolSvc,
		validate: validate,
	}

	ag := g.Group("/auth")

	// un-authed endpoints
	ag.POST("/login", api.login)
	ag.POST("/register", api.register)

	// authed endpoints
	ag.GET("/me", api.me, jwt)
}

type (
	LoginRequest struct {
		Username string `json:"username" validate:"required"`
		Password string `json:"password" validate:"required"`
	}

	// AuthResponse is returned on successful login and registration.
	AuthResponse struct {
		Token string    `json:"token"`
		User  user.User `json:"user"`
	}

	// MeResponse carries the caller's user and role profile; Profile is null
	// for admins.
	MeResponse struct {
		User    user.User   `json:"user"`
		Profile interface{} `json:"profile"`
	}
)

// Handlers

func (api *authApi) login(ctx echo.Context) error {
	var data LoginRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to LoginRequest")
	}
	if err := api.validate.Struct(&data); err != nil {
		return err
	}

	usr, err := authenticate(ctx, data.Username, data.Password, api.svc)
	if err != nil {
		return err
	}
	token, err := GenerateToken(api.conf, GetUserClaims(api.conf, usr))
	if err != nil {
		return errors.Wrap(err, "generating token")
	}

	return ctx.JSON(http.StatusOK, AuthResponse{Token: token, User: usr})
}

func (api *authApi) register(ctx echo.Context) error {
	var data user.NewUser
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewUser")
	}
	if err := data.Validate(ctx.Request().Context(), api.validate, api.svc); err != nil {
		return err
	}

	usr, err := api.svc.Register(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "registering user")
	}
	token, err := GenerateToken(api.conf, GetUserClaims(api.conf, usr))
	if err != nil {
		return errors.Wrap(err, "generating token")
	}

	return ctx.JSON(http.StatusCreated, AuthResponse{Token: token, User: usr})
}

func (api *authApi) me(ctx echo.Context) error {
	ident, err := api.ident.resolve(ctx)
	if err != nil {
		return err
	}

	res := MeResponse{User: ident.User}
	reqCtx := ctx.Request().Context()
	switch {
	case ident.IsStudent():
		if st, err := api.school.GetStudentByID(reqCtx, ident.StudentID); err == nil {
			res.Profile = st
		}
	case ident.IsTeacher():
		if t, err := api.school.GetTeacherByID(reqCtx, ident.TeacherID); err == nil {
			res.Profile = t
		}
	}
	return ctx.JSON(http.StatusOK, res)
}
