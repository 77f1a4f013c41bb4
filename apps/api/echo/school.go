package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/edutrack/backend/core/school"
	"github.com/edutrack/backend/core/user"
)

const qrImageSize = 256

type schoolApi struct {
	ident    *identityResolver
	svc      *school.Service
	validate *validator.Validate
}

func registerSchoolAPI(
	g *echo.Group,
	jwt echo.MiddlewareFunc,
	ident *identityResolver,
	svc *school.Service,
	validate *validator.Validate,
) {
	api := schoolApi{ident: ident, svc: svc, validate: validate}

	admin := roleMiddleware(ident, user.RoleAdmin)
	student := roleMiddleware(ident, user.RoleStudent)

	sg := g.Group("/subjects", jwt)
	sg.GET("", api.querySubjects)
	sg.POST("", api.createSubject, admin)

	pg := g.Group("/student", jwt, student)
	pg.GET("/profile", api.studentProfile)
	pg.GET("/qr.png", api.studentQR)

	g.POST("/students", api.createStudent, jwt, admin)
	g.POST("/teachers", api.createTeacher, jwt, admin)
}

// StudentProfileResponse carries a student's profile plus its bound user.
type StudentProfileResponse struct {
	Profile school.Student `json:"profile"`
	User    user.User      `json:"user"`
}

// Handlers

func (api *schoolApi) querySubjects(ctx echo.Context) error {
	subjects, err := api.svc.QueryAllSubjects(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying subjects")
	}
	return ctx.JSON(http.StatusOK, subjects)
}

func (api *schoolApi) createSubject(ctx echo.Context) error {
	var data school.NewSubject
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewSubject")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	sub, err := api.svc.CreateSubject(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating subject")
	}
	return ctx.JSON(http.StatusCreated, sub)
}

func (api *schoolApi) studentProfile(ctx echo.Context) error {
	ident, err := api.ident.resolve(ctx)
	if err != nil {
		return err
	}

	st, err := api.svc.GetStudentByID(ctx.Request().Context(), ident.StudentID)
	if err != nil {
		return errors.Wrap(err, "getting student")
	}
	return ctx.JSON(http.StatusOK, StudentProfileResponse{Profile: st, User: ident.User})
}

func (api *schoolApi) studentQR(ctx echo.Context) error {
	ident, err := api.ident.resolve(ctx)
	if err != nil {
		return err
	}

	st, err := api.svc.GetStudentByID(ctx.Request().Context(), ident.StudentID)
	if err != nil {
		return errors.Wrap(err, "getting student")
	}
	png, err := api.svc.QRCodePNG(st, qrImageSize)
	if err != nil {
		return errors.Wrap(err, "encoding QR code")
	}
	return ctx.Blob(http.StatusOK, "image/png", png)
}

func (api *schoolApi) createStudent(ctx echo.Context) error {
	var data school.NewStudent
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewStudent")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	st, err := api.svc.CreateStudent(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating student")
	}
	return ctx.JSON(http.StatusCreated, st)
}

func (api *schoolApi) createTeacher(ctx echo.Context) error {
	var data school.NewTeacher
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewTeacher")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	t, err := api.svc.CreateTeacher(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating teacher")
	}
	return ctx.JSON(http.StatusCreated, t)
}
