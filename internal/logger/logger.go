package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
)

// Logger is the logging contract shared by every component. The first
// argument names the component emitting the entry.
type Logger interface {
	Debug(component, message string, fields map[string]interface{})
	Info(component, message string, fields map[string]interface{})
	Warning(component, message string, fields map[string]interface{})
	Error(component string, err error, fields map[string]interface{})
}

// FromEnv resolves the application logger. With LOG_FILE set, entries go to
// that file as JSON through slog; otherwise they go to the console.
func FromEnv() Logger {
	if path := os.Getenv("LOG_FILE"); path != "" {
		file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err == nil {
			return NewSlogAdapter(file, slogLevelFromEnv())
		}
	}
	return NewConsoleLogger(LevelFromEnv())
}

// SlogAdapter writes JSON log entries through log/slog, for file-backed
// logging. The console path uses the zerolog adapter instead.
type SlogAdapter struct {
	logger *slog.Logger
}

func NewSlogAdapter(writer io.Writer, level slog.Level) *SlogAdapter {
	handler := slog.NewJSONHandler(writer, &slog.HandlerOptions{Level: level})
	return &SlogAdapter{logger: slog.New(handler)}
}

func NewStderrSlogAdapter(level slog.Level) *SlogAdapter {
	return NewSlogAdapter(os.Stderr, level)
}

func (s *SlogAdapter) Debug(component, message string, fields map[string]interface{}) {
	s.log(slog.LevelDebug, component, message, fields)
}

func (s *SlogAdapter) Info(component, message string, fields map[string]interface{}) {
	s.log(slog.LevelInfo, component, message, fields)
}

func (s *SlogAdapter) Warning(component, message string, fields map[string]interface{}) {
	s.log(slog.LevelWarn, component, message, fields)
}

func (s *SlogAdapter) Error(component string, err error, fields map[string]interface{}) {
	if fields == nil {
		fields = make(map[string]interface{})
	}
	if err != nil {
		fields["error"] = err.Error()
	}
	s.log(slog.LevelError, component, "operation failed", fields)
}

func (s *SlogAdapter) log(level slog.Level, component, message string, fields map[string]interface{}) {
	args := make([]interface{}, 0, len(fields)*2+2)
	args = append(args, "component", component)
	for k, v := range fields {
		args = append(args, k, v)
	}
	s.logger.Log(context.Background(), level, message, args...)
}
