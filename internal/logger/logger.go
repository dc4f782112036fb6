package logger

import (
	"io"
	"log/slog"
	"os"
)

// Logger is usable before Init so packages can log from tests.
var Logger = slog.Default()

// Init configures the process-wide logger. DEBUG=true lowers the level and
// LOG_FORMAT=json switches to the JSON handler.
func Init() {
	InitWithWriter(os.Stdout, os.Getenv("DEBUG") == "true", os.Getenv("LOG_FORMAT") == "json")
}

func InitWithWriter(w io.Writer, debug, json bool) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	var h slog.Handler = slog.NewTextHandler(w, opts)
	if json {
		h = slog.NewJSONHandler(w, opts)
	}
	Logger = slog.New(h)
	slog.SetDefault(Logger)
}

// With returns a child logger carrying the given attributes.
func With(args ...any) *slog.Logger {
	return Logger.With(args...)
}

func Info(msg string, args ...any) {
	Logger.Info(msg, args...)
}

func Error(msg string, args ...any) {
	Logger.Error(msg, args...)
}

func Debug(msg string, args ...any) {
	Logger.Debug(msg, args...)
}

func Warn(msg string, args ...any) {
	Logger.Warn(msg, args...)
}
