// Package logger holds the process-wide zerolog logger.
//
// Call Init once from main with the deployment environment; everything else
// asks for it through Get.
package logger

import (
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// EnvDevelopment is the environment that gets console output and debug logs.
const EnvDevelopment = "development"

// Options describes the logger built by Init.
type Options struct {
	// Env is the deployment environment. Development logs at debug level to
	// a console writer; every other environment logs JSON at info.
	Env string
	// Level overrides the environment's default level when it names one of
	// trace, debug, info, warn or error.
	Level string
	// Output defaults to os.Stdout.
	Output io.Writer
	// Service is attached to every entry.
	Service string
}

func (o Options) level() zerolog.Level {
	if lvl, ok := parseLevel(o.Level); ok {
		return lvl
	}
	if o.Env == EnvDevelopment {
		return zerolog.DebugLevel
	}
	return zerolog.InfoLevel
}

func (o Options) writer() io.Writer {
	out := o.Output
	if out == nil {
		out = os.Stdout
	}
	if o.Env == EnvDevelopment {
		return zerolog.ConsoleWriter{Out: out, TimeFormat: time.Kitchen}
	}
	return out
}

var (
	mu       sync.RWMutex
	instance *zerolog.Logger
)

// Init builds the logger on first call and returns it. Later calls return
// the existing logger and ignore opts.
func Init(opts Options) zerolog.Logger {
	mu.Lock()
	defer mu.Unlock()
	if instance != nil {
		return *instance
	}

	zerolog.TimeFieldFormat = time.RFC3339Nano
	lvl := opts.level()
	zerolog.SetGlobalLevel(lvl)

	ctx := zerolog.New(opts.writer()).Level(lvl).With().Timestamp().Caller()
	if opts.Service != "" {
		ctx = ctx.Str("service", opts.Service)
	}
	l := ctx.Logger()
	instance = &l
	return l
}

// Get panics if Init has not run.
func Get() zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	if instance == nil {
		panic("logger: Get() called before Init()")
	}
	return *instance
}

// Reset forgets the logger so tests can Init again.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	instance = nil
}

func parseLevel(s string) (zerolog.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trace":
		return zerolog.TraceLevel, true
	case "debug":
		return zerolog.DebugLevel, true
	case "info":
		return zerolog.InfoLevel, true
	case "warn", "warning":
		return zerolog.WarnLevel, true
	case "error":
		return zerolog.ErrorLevel, true
	}
	return zerolog.NoLevel, false
}
