package logger

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

var (
	mu  sync.RWMutex
	log = zerolog.New(os.Stderr).With().Timestamp().Logger()
)

// Init configures the package logger for the given environment.
// "development" and "test" use a console writer at debug level, any other
// environment writes JSON at info level.
func Init(env string) {
	var w io.Writer = os.Stderr
	level := zerolog.InfoLevel

	switch env {
	case "development", "test":
		w = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
		level = zerolog.DebugLevel
	}

	SetOutput(w, level)
}

// SetOutput replaces the logger sink. Tests use it to capture output.
func SetOutput(w io.Writer, level zerolog.Level) {
	mu.Lock()
	defer mu.Unlock()

	log = zerolog.New(w).Level(level).With().Timestamp().Logger()
}

func Debug(msg string, args ...any) {
	write(zerolog.DebugLevel, msg, args)
}

func Info(msg string, args ...any) {
	write(zerolog.InfoLevel, msg, args)
}

func Warn(msg string, args ...any) {
	write(zerolog.WarnLevel, msg, args)
}

func Error(msg string, args ...any) {
	write(zerolog.ErrorLevel, msg, args)
}

func Fatal(msg string, args ...any) {
	write(zerolog.FatalLevel, msg, args)
	os.Exit(1)
}

func write(level zerolog.Level, msg string, args []any) {
	mu.RLock()
	l := log
	mu.RUnlock()

	ev := l.WithLevel(level)
	if ev == nil {
		return
	}
	appendFields(ev, args)
	ev.Msg(msg)
}

// appendFields accepts key/value pairs. A lone error or value without a key
// is logged under "error" or "detail".
func appendFields(ev *zerolog.Event, args []any) {
	for i := 0; i < len(args); i++ {
		key, ok := args[i].(string)
		if !ok || i+1 >= len(args) {
			if err, isErr := args[i].(error); isErr {
				ev.Err(err)
			} else {
				ev.Interface("detail", args[i])
			}
			continue
		}

		switch v := args[i+1].(type) {
		case error:
			ev.AnErr(key, v)
		case string:
			ev.Str(key, v)
		case int:
			ev.Int(key, v)
		case int64:
			ev.Int64(key, v)
		case uint64:
			ev.Uint64(key, v)
		case float64:
			ev.Float64(key, v)
		case bool:
			ev.Bool(key, v)
		case time.Duration:
			ev.Dur(key, v)
		case fmt.Stringer:
			ev.Stringer(key, v)
		default:
			ev.Interface(key, v)
		}
		i++
	}
}
