// Package logger builds the zerolog loggers used by the POS binaries.
//
// The API server initialises the process-wide logger once with Init and reads
// it back with Get. Short-lived tools such as the terminal client build their
// own with New.
package logger

import (
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Options describes how a logger is built.
type Options struct {
	// Service is stamped on every entry as "service" when set.
	Service string
	// Level accepts any zerolog level name plus "warning". Unknown or empty
	// values fall back to info.
	Level string
	// Pretty switches from JSON lines to a console writer with kitchen-clock
	// timestamps, meant for terminals.
	Pretty bool
	// Output receives the log lines; nil means stdout.
	Output io.Writer
}

var (
	mu     sync.RWMutex
	global *zerolog.Logger
)

// New builds a logger from opts without touching the process-wide instance.
func New(opts Options) zerolog.Logger {
	var w io.Writer = os.Stdout
	if opts.Output != nil {
		w = opts.Output
	}
	if opts.Pretty {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}
	}

	lc := zerolog.New(w).Level(parseLevel(opts.Level)).With().Timestamp()
	if opts.Service != "" {
		lc = lc.Str("service", opts.Service)
	}
	return lc.Logger()
}

// Init installs the process-wide logger and returns it. A second call keeps
// the first logger.
func Init(opts Options) zerolog.Logger {
	mu.Lock()
	defer mu.Unlock()
	if global != nil {
		return *global
	}

	zerolog.TimeFieldFormat = time.RFC3339Nano
	zerolog.SetGlobalLevel(parseLevel(opts.Level))
	l := New(opts).With().Caller().Logger()
	global = &l
	return l
}

// Get returns the logger installed by Init and panics without one.
func Get() zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	if global == nil {
		panic("logger: Init has not been called")
	}
	return *global
}

// Reset drops the process-wide logger. Tests use it between cases.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	global = nil
	zerolog.SetGlobalLevel(zerolog.TraceLevel)
}

func parseLevel(s string) zerolog.Level {
	name := strings.ToLower(strings.TrimSpace(s))
	if name == "warning" {
		name = "warn"
	}
	lvl, err := zerolog.ParseLevel(name)
	if err != nil || name == "" {
		return zerolog.InfoLevel
	}
	return lvl
}
