package logger

import "log/slog"

// SlogLogger writes session lifecycle events to a slog.Logger
type SlogLogger struct {
	log *slog.Logger
}

// NewSlogLogger wraps log. A nil log uses slog.Default().
func NewSlogLogger(log *slog.Logger) SlogLogger {
	if log == nil {
		log = slog.Default()
	}
	return SlogLogger{log: log.With("component", "session")}
}

func (l SlogLogger) LogSessionEvent(message string, metadata map[string]string) {
	attrs := make([]any, 0, len(metadata)*2)
	for key, value := range metadata {
		attrs = append(attrs, key, value)
	}
	l.log.Info(message, attrs...)
}
