package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	echoapi "github.com/edutrack/backend/apps/api/echo"
	"github.com/edutrack/backend/core"
	"github.com/edutrack/backend/core/attendance"
	"github.com/edutrack/backend/core/coursework"
	"github.com/edutrack/backend/core/feedback"
	"github.com/edutrack/backend/core/notice"
	"github.com/edutrack/backend/core/schedule"
	"github.com/edutrack/backend/core/school"
	"github.com/edutrack/backend/core/user"
	assistantsvc "github.com/edutrack/backend/services/assistant"
	emailsvc "github.com/edutrack/backend/services/email"
	logsvc "github.com/edutrack/backend/services/logger"
	"github.com/edutrack/backend/storage/database"
	inmemdb "github.com/edutrack/backend/storage/database/inmem"
	"github.com/edutrack/backend/storage/database/sqlxrepos"
)

const shutdownTimeout = 20 * time.Second

type repositories struct {
	users      user.Repository
	school     school.Repository
	schedule   schedule.Repository
	attendance attendance.Repository
	coursework coursework.Repository
	notices    notice.Repository
	feedback   feedback.Repository
}

func main() {
	// =========================================================================
	// Set up Dependencies

	conf := core.NewConfig()

	std := log.New(os.Stdout, "API : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)
	var logger core.Logger
	if conf.Debug {
		logger = logsvc.NewStdLogger(std)
	} else {
		logger = logsvc.NewRollbarLogger(std, conf)
	}

	repos, err := setUpStorage(conf)
	if err != nil {
		logger.Fatal(fmt.Sprintf("setting up storage: %v", err), err)
	}

	var mailSvc core.EmailService
	if conf.Debug {
		mailSvc = emailsvc.NewConsoleService(conf)
	} else {
		mailSvc = emailsvc.NewSendgridService(conf, logger)
	}

	var assistantSvc core.AssistantService
	if conf.GeminiAPIKey != "" {
		assistantSvc, err = assistantsvc.NewGeminiService(context.Background(), conf)
		if err != nil {
			logger.Fatal(fmt.Sprintf("setting up assistant: %v", err), err)
		}
	} else {
		assistantSvc = assistantsvc.DummyService{}
	}

	usrSvc := user.NewService(conf, repos.users, mailSvc)
	schoolSvc := school.NewService(repos.school)
	scheduleSvc := schedule.NewService(repos.schedule, schoolSvc, usrSvc)
	attendanceSvc := attendance.NewService(repos.attendance, schoolSvc)
	noticeSvc := notice.NewService(repos.notices)
	feedbackSvc := feedback.NewService(repos.feedback)

	// debug fixtures; the seeded subject becomes the coursework default
	defaultSubjectID := conf.DefaultSubjectID
	if conf.Debug {
		seededSubjectID, err := loadFixtures(context.Background(), repos, schoolSvc)
		if err != nil {
			logger.Fatal(fmt.Sprintf("loading fixtures: %v", err), err)
		}
		if defaultSubjectID == "" {
			defaultSubjectID = seededSubjectID
		}
	}
	courseworkSvc := coursework.NewService(repos.coursework, schoolSvc, defaultSubjectID)

	// =========================================================================
	// Start API Service

	logger.Info(fmt.Sprintf("Application initializing : version %q", conf.Build))
	defer logger.Info("Application stopped")

	server := echoapi.NewServer(&echoapi.Options{
		Conf:          conf,
		Logger:        logger,
		UserSvc:       usrSvc,
		SchoolSvc:     schoolSvc,
		ScheduleSvc:   scheduleSvc,
		AttendanceSvc: attendanceSvc,
		CourseworkSvc: courseworkSvc,
		NoticeSvc:     noticeSvc,
		FeedbackSvc:   feedbackSvc,
		AssistantSvc:  assistantSvc,
	})

	go server.Start()

	// =========================================================================
	// Shutdown

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)
	sig := <-shutdown
	logger.Info(fmt.Sprintf("%v: Start shutdown...", sig))

	// give outstanding requests a deadline for completion
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Stop(ctx); err != nil {
		logger.Error(fmt.Sprintf("could not stop server gracefully: %v", err), err)
	}
}

// setUpStorage opens the Postgres backend when a database URL is configured,
// the in-memory backend otherwise.
func setUpStorage(conf *core.Config) (*repositories, error) {
	if conf.DatabaseURL == "" {
		db, err := inmemdb.Open()
		if err != nil {
			return nil, err
		}
		return &repositories{
			users:      inmemdb.NewUserRepository(db),
			school:     inmemdb.NewSchoolRepository(db),
			schedule:   inmemdb.NewScheduleRepository(db),
			attendance: inmemdb.NewAttendanceRepository(db),
			coursework: inmemdb.NewCourseworkRepository(db),
			notices:    inmemdb.NewNoticeRepository(db),
			feedback:   inmemdb.NewFeedbackRepository(db),
		}, nil
	}

	db, err := database.Open(conf)
	if err != nil {
		return nil, err
	}
	if err = database.Migrate(db); err != nil {
		return nil, err
	}
	return &repositories{
		users:      sqlxrepos.NewUserRepository(db),
		school:     sqlxrepos.NewSchoolRepository(db),
		schedule:   sqlxrepos.NewScheduleRepository(db),
		attendance: sqlxrepos.NewAttendanceRepository(db),
		coursework: sqlxrepos.NewCourseworkRepository(db),
		notices:    sqlxrepos.NewNoticeRepository(db),
		feedback:   sqlxrepos.NewFeedbackRepository(db),
	}, nil
}
