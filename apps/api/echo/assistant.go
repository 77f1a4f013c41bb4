package echoapi

import (
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/edutrack/backend/core"
)

var errAssistantUnavailable = echo.NewHTTPError(http.StatusInternalServerError, "Failed to get AI response")

type assistantApi struct {
	ident    *identityResolver
	svc      core.AssistantService
	logger   core.Logger
	validate *validator.Validate
}

func registerAssistantAPI(
	g *echo.Group,
	jwt echo.MiddlewareFunc,
	ident *identityResolver,
	svc core.AssistantService,
	logger core.Logger,
	validate *validator.Validate,
) {
	api := assistantApi{ident: ident, svc: svc, logger: logger, validate: validate}
	g.POST("/ai-assistant", api.chat, jwt)
}

type (
	ChatRequest struct {
		Message string `json:"message" validate:"required"`
		Context string `json:"context"`
	}

	ChatResponse struct {
		Response string `json:"response"`
	}
)

// Handlers

func (api *assistantApi) chat(ctx echo.Context) error {
	ident, err := api.ident.resolve(ctx)
	if err != nil {
		return err
	}

	var data ChatRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to ChatRequest")
	}
	if err := api.validate.Struct(&data); err != nil {
		return err
	}

	userContext := fmt.Sprintf("User: %s (%s)", ident.User.FullName(), ident.Role)
	if ident.IsStudent() {
		if st, stErr := api.ident.school.GetStudentByID(ctx.Request().Context(), ident.StudentID); stErr == nil {
			userContext += fmt.Sprintf(", Student ID: %s, Program: %s, Year: %d", st.StudentID, st.Program, st.Year)
		}
	}

	reply, err := api.svc.Chat(ctx.Request().Context(), data.Message, userContext, data.Context)
	if err != nil {
		api.logger.Error("assistant upstream failure", err, ident.User)
		return errAssistantUnavailable
	}
	return ctx.JSON(http.StatusOK, ChatResponse{Response: reply})
}
