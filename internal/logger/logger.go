package logger

import (
	"context"
	"log/slog"
	"os"
	"time"
)

// Logger emits one JSON line per event with the fields shared by every
// service in the system.
type Logger struct {
	service  string
	hostname string
	handler  *slog.Logger
}

func New(service string) *Logger {
	hostname, _ := os.Hostname()
	handler := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	return &Logger{service: service, hostname: hostname, handler: handler}
}

func (l *Logger) log(level slog.Level, action, message string, err error, fields map[string]any) {
	attrs := []slog.Attr{
		slog.String("timestamp", time.Now().UTC().Format(time.RFC3339)),
		slog.String("service", l.service),
		slog.String("hostname", l.hostname),
		slog.String("action", action),
	}
	for k, v := range fields {
		attrs = append(attrs, slog.Any(k, v))
	}
	if err != nil {
		attrs = append(attrs, slog.Group("error", slog.String("msg", err.Error())))
	}
	l.handler.LogAttrs(context.Background(), level, message, attrs...)
}

func (l *Logger) Info(action string, fields map[string]any) {
	l.log(slog.LevelInfo, action, action, nil, fields)
}

func (l *Logger) Debug(action string, fields map[string]any) {
	l.log(slog.LevelDebug, action, action, nil, fields)
}

func (l *Logger) Error(action string, err error, fields map[string]any) {
	l.log(slog.LevelError, action, action, err, fields)
}
