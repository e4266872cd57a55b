package logger

import (
	"io"
	"os"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
)

// Options controls how the process-wide logger writes.
type Options struct {
	Level  string    // debug, info, warn, error
	Format string    // console or json
	Output io.Writer // defaults to os.Stderr
}

var (
	current atomic.Pointer[zerolog.Logger]
	once    sync.Once
)

// Init installs a console logger at info level writing to os.Stderr.
// It has no effect once a logger is installed.
func Init() {
	once.Do(func() {
		if current.Load() == nil {
			Setup(Options{Level: "info", Format: "console"})
		}
	})
}

// Setup replaces the process-wide logger.
func Setup(opts Options) {
	out := opts.Output
	if out == nil {
		out = os.Stderr
	}

	if strings.EqualFold(opts.Format, "console") || opts.Format == "" {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.Kitchen, NoColor: opts.Output != nil}
	}

	level, err := zerolog.ParseLevel(strings.ToLower(opts.Level))
	if err != nil || opts.Level == "" {
		level = zerolog.InfoLevel
	}

	l := zerolog.New(out).Level(level).With().Timestamp().Logger()
	current.Store(&l)
}

// Get returns the process-wide logger, initialising it if needed.
func Get() *zerolog.Logger {
	if l := current.Load(); l != nil {
		return l
	}
	Init()
	return current.Load()
}

// With returns a child logger carrying the given key/value pairs.
func With(args ...any) zerolog.Logger {
	return Get().With().Fields(args).Logger()
}

// Info logs an informational message with optional key/value pairs.
func Info(msg string, args ...any) {
	Get().Info().Fields(args).Msg(msg)
}

// Warn logs a warning message with optional key/value pairs.
func Warn(msg string, args ...any) {
	Get().Warn().Fields(args).Msg(msg)
}

// Error logs an error message. err may be nil.
func Error(msg string, err error, args ...any) {
	Get().Error().Err(err).Fields(args).Msg(msg)
}

// Debug logs a debug message with optional key/value pairs.
func Debug(msg string, args ...any) {
	Get().Debug().Fields(args).Msg(msg)
}
