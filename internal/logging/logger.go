// Package logging provides the leveled logger used across the client.
package logging

import (
	"io"
	"strings"

	"github.com/labstack/gommon/log"
)

// Logger is the logging contract every component depends on.
// ctx is an optional list of key/value pairs.
type Logger interface {
	Debug(msg string, ctx ...any)
	Info(msg string, ctx ...any)
	Warn(msg string, ctx ...any)
	Error(msg string, ctx ...any)
}

// GommonLogger writes JSON lines through labstack/gommon.
type GommonLogger struct {
	l *log.Logger
}

var _ Logger = (*GommonLogger)(nil)

// New returns a logger writing to w at the given level
// (debug, info, warn, error, off). Unknown levels mean warn.
func New(w io.Writer, level string) *GommonLogger {
	l := log.New("organo")
	l.SetOutput(w)
	l.SetHeader(`{"time":"${time_rfc3339}","level":"${level}","prefix":"${prefix}"}`)
	l.SetLevel(ParseLevel(level))
	return &GommonLogger{l: l}
}

// ParseLevel maps a config string to a gommon level.
func ParseLevel(level string) log.Lvl {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return log.DEBUG
	case "info":
		return log.INFO
	case "error":
		return log.ERROR
	case "off", "none":
		return log.OFF
	default:
		return log.WARN
	}
}

func (g *GommonLogger) Debug(msg string, ctx ...any) { g.l.Debugj(fields(msg, ctx)) }
func (g *GommonLogger) Info(msg string, ctx ...any)  { g.l.Infoj(fields(msg, ctx)) }
func (g *GommonLogger) Warn(msg string, ctx ...any)  { g.l.Warnj(fields(msg, ctx)) }
func (g *GommonLogger) Error(msg string, ctx ...any) { g.l.Errorj(fields(msg, ctx)) }

// fields folds msg and key/value pairs into a gommon JSON map.
// A trailing key without value is kept under "extra".
func fields(msg string, ctx []any) log.JSON {
	j := log.JSON{"msg": msg}
	for i := 0; i < len(ctx); i += 2 {
		key, ok := ctx[i].(string)
		if !ok {
			key = "extra"
		}
		if i+1 >= len(ctx) {
			j["extra"] = ctx[i]
			break
		}
		if err, isErr := ctx[i+1].(error); isErr {
			j[key] = err.Error()
			continue
		}
		j[key] = ctx[i+1]
	}
	return j
}

// Nop discards everything.
type Nop struct{}

var _ Logger = Nop{}

func (Nop) Debug(string, ...any) {}
func (Nop) Info(string, ...any)  {}
func (Nop) Warn(string, ...any)  {}
func (Nop) Error(string, ...any) {}
