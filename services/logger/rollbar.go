package logsvc

import (
	"log"

	"github.com/rollbar/rollbar-go"
	"github.com/rollbar/rollbar-go/errors"

	"github.com/edutrack/backend/core"
	"github.com/edutrack/backend/core/user"
)

// RollbarLogger reports entries to rollbar and mirrors each one to a standard
// logger so they also land on stdout.
type RollbarLogger struct {
	std *log.Logger
}

var _ core.Logger = (*RollbarLogger)(nil)

func NewRollbarLogger(std *log.Logger, conf *core.Config) *RollbarLogger {
	rollbar.SetToken(conf.RollbarToken)
	rollbar.SetEnvironment(conf.Env)
	rollbar.SetServerHost(conf.Server.Host)
	rollbar.SetCodeVersion(conf.Build)
	rollbar.SetStackTracer(errors.StackTracer)
	return &RollbarLogger{std: std}
}

func (l RollbarLogger) Enable(enabled bool) {
	rollbar.SetEnabled(enabled)
}

// report assembles the rollbar payload from msg and args. A user.User among
// the args becomes the rollbar person (first one wins) and is dropped from
// the payload; with no user the person is cleared.
func (l RollbarLogger) report(msg string, args []interface{}) []interface{} {
	payload := make([]interface{}, 0, len(args)+1)
	payload = append(payload, msg)

	var personSet bool
	for _, arg := range args {
		usr, ok := arg.(user.User)
		if !ok {
			payload = append(payload, arg)
			continue
		}
		if !personSet {
			rollbar.SetPerson(usr.ID, usr.Username, usr.Email)
			personSet = true
		}
	}
	if !personSet {
		rollbar.ClearPerson()
	}
	return payload
}

func (l RollbarLogger) mirror(msg string, args []interface{}) {
	l.std.Println(msg)
	for _, arg := range args {
		l.std.Printf("%+v\n", arg)
	}
}

func (l RollbarLogger) Debug(msg string, args ...interface{}) {
	rollbar.Debug(l.report(msg, args)...)
	l.mirror(msg, args)
}

func (l RollbarLogger) Info(msg string, args ...interface{}) {
	rollbar.Info(l.report(msg, args)...)
	l.mirror(msg, args)
}

func (l RollbarLogger) Warn(msg string, args ...interface{}) {
	rollbar.Warning(l.report(msg, args)...)
	l.mirror(msg, args)
}

func (l RollbarLogger) Error(msg string, args ...interface{}) {
	rollbar.Error(l.report(msg, args)...)
	l.mirror(msg, args)
}

func (l RollbarLogger) Fatal(msg string, args ...interface{}) {
	rollbar.Critical(l.report(msg, args)...)
	l.mirror(msg, args)
	l.std.Fatal(msg)
}
