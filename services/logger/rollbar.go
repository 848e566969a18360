// Package logsvc implements core.Logger backends for the portal
// binaries.
package logsvc

import (
	"log"

	"github.com/rollbar/rollbar-go"
	"github.com/rollbar/rollbar-go/errors"

	"github.com/iljicevs/eduportal/core"
	"github.com/iljicevs/eduportal/core/user"
)

// RollbarLogger reports to Rollbar and mirrors everything to a
// standard logger so deployed portal logs stay greppable.
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

// Enable toggles Rollbar reporting; the standard logger keeps writing
// either way. Disabled in DEV so local noise never reaches the
// dashboard.
func (l RollbarLogger) Enable(enabled bool) {
	rollbar.SetEnabled(enabled)
}

// annotate builds the Rollbar argument list from msg and args. A
// user.User among the args becomes the reported person instead of a
// payload value; at most one is honored.
func (l RollbarLogger) annotate(msg string, args []interface{}) []interface{} {
	out := make([]interface{}, 0, len(args)+1)
	out = append(out, msg)
	var person *user.User
	for _, arg := range args {
		usr, ok := arg.(user.User)
		if !ok {
			out = append(out, arg)
			continue
		}
		if person == nil {
			person = &usr
		}
	}
	if person == nil {
		rollbar.ClearPerson()
	} else {
		rollbar.SetPerson(person.ID, person.Username, person.Email)
	}
	return out
}

func (l RollbarLogger) echo(msg string, args []interface{}) {
	l.std.Println(msg)
	for _, arg := range args {
		l.std.Printf("%+v\n", arg)
	}
}

func (l RollbarLogger) Debug(msg string, args ...interface{}) {
	rollbar.Debug(l.annotate(msg, args)...)
	l.echo(msg, args)
}

func (l RollbarLogger) Info(msg string, args ...interface{}) {
	rollbar.Info(l.annotate(msg, args)...)
	l.echo(msg, args)
}

func (l RollbarLogger) Warn(msg string, args ...interface{}) {
	rollbar.Warning(l.annotate(msg, args)...)
	l.echo(msg, args)
}

func (l RollbarLogger) Error(msg string, args ...interface{}) {
	rollbar.Error(l.annotate(msg, args)...)
	l.echo(msg, args)
}

func (l RollbarLogger) Fatal(msg string, args ...interface{}) {
	rollbar.Critical(l.annotate(msg, args)...)
	l.echo(msg, args)
	l.std.Fatal(msg)
}
