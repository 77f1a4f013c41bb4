package echoapi

import (
	"context"
	"net/http"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"

	"github.com/edutrack/backend/core"
	"github.com/edutrack/backend/core/attendance"
	"github.com/edutrack/backend/core/coursework"
	"github.com/edutrack/backend/core/feedback"
	"github.com/edutrack/backend/core/notice"
	"github.com/edutrack/backend/core/schedule"
	"github.com/edutrack/backend/core/school"
	"github.com/edutrack/backend/core/user"
)

type (
	Options struct {
		Conf           *core.Config
		Logger         core.Logger
		DisableReqLogs bool

		UserSvc       *user.Service
		SchoolSvc     *school.Service
		ScheduleSvc   *schedule.Service
		AttendanceSvc *attendance.Service
		CourseworkSvc *coursework.Service
		NoticeSvc     *notice.Service
		FeedbackSvc   *feedback.Service
		AssistantSvc  core.AssistantService
	}

	Server interface {
		http.Handler
		Start()
		Stop(context.Context) error
	}

	server struct {
		opts *Options
		app  *echo.Echo
	}
)

var _ Server = (*server)(nil)

func NewServer(opts *Options) Server {
	s := &server{
		opts: opts,
		app:  echo.New(),
	}
	s.setup()
	return s
}

func (s *server) setup() {
	conf := s.opts.Conf

	validate := validator.New()
	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ := uni.GetTranslator("en")
	core.InitValidators(validate, translator)

	s.app.Pre(middleware.RemoveTrailingSlash())
	if !s.opts.DisableReqLogs {
		s.app.Use(middleware.Logger())
	}
	// do not recover in DEV|TEST mode
	if !(conf.Debug || conf.TestMode) {
		s.app.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{LogLevel: log.ERROR}))
	}

	s.app.HTTPErrorHandler = newAppHTTPErrorHandler(s.opts.Logger, translator)
	s.app.Debug = conf.Debug

	s.app.GET("/", home)

	api := s.app.Group("/api")
	jwt := middleware.JWTWithConfig(newJWTConfig(conf))
	ident := &identityResolver{users: s.opts.UserSvc, school: s.opts.SchoolSvc}

	registerAuthAPI(api, jwt, conf, ident, s.opts.UserSvc, s.opts.SchoolSvc, validate)
	registerSchoolAPI(api, jwt, ident, s.opts.SchoolSvc, validate)
	registerScheduleAPI(api, jwt, ident, s.opts.ScheduleSvc, validate)
	registerAttendanceAPI(api, jwt, ident, s.opts.AttendanceSvc, validate)
	registerCourseworkAPI(api, jwt, ident, s.opts.CourseworkSvc, validate)
	registerNoticeAPI(api, jwt, ident, s.opts.NoticeSvc, validate)
	registerFeedbackAPI(api, jwt, ident, s.opts.FeedbackSvc, validate)
	registerAssistantAPI(api, jwt, ident, s.opts.AssistantSvc, s.opts.Logger, validate)
}

func (s *server) Start() {
	s.app.Logger.Fatal(s.app.Start(s.opts.Conf.Server.Addr))
}

func (s *server) Stop(ctx context.Context) error {
	return s.app.Shutdown(ctx)
}

func (s *server) ServeHTTP(w http.ResponseWriter, r *http.Request) { // for tests
	s.app.ServeHTTP(w, r)
}

func home(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Welcome to EduTrack API!")
}
