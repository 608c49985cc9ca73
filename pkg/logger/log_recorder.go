package logger

import (
	"fmt"
	"sync"

	"github.com/trussworks/bookclub/pkg/domain"
)

// LogLine is a recorded log line
type LogLine struct {
	Message string
	Fields  domain.LogFields
}

// EventLogger should match the EventLogger defined in bookclub
type EventLogger interface {
	LogSessionEvent(message string, metadata map[string]string)
}

// LogRecorder is a log recorder for testing
type LogRecorder struct {
	EventLogger
	mu    sync.Mutex
	lines []LogLine
}

// NewLogRecorder constructs a LogRecorder that also forwards to wrappedLogger
func NewLogRecorder(wrappedLogger EventLogger) *LogRecorder {
	return &LogRecorder{
		EventLogger: wrappedLogger,
	}
}

// RecordLine records and returns a new LogLine with its message and fields.
func (r *LogRecorder) RecordLine(message string, fields map[string]string) LogLine {
	newLine := LogLine{
		Message: message,
		Fields:  domain.LogFields{},
	}

	for k, v := range fields {
		newLine.Fields[k] = v
	}

	r.mu.Lock()
	r.lines = append(r.lines, newLine)
	r.mu.Unlock()

	return newLine
}

func (r *LogRecorder) LogSessionEvent(message string, fields map[string]string) {
	r.RecordLine(message, fields)
	if r.EventLogger != nil {
		r.EventLogger.LogSessionEvent(message, fields)
	}
}

// GetOnlyMatchingMessage returns singular LogLine that matches message or errors
func (r *LogRecorder) GetOnlyMatchingMessage(message string) (LogLine, error) {
	messages := r.MatchingMessages(message)
	if len(messages) != 1 {
		return LogLine{}, fmt.Errorf("Didn't find only one line for message: %s (%v) ", message, messages)
	}
	return messages[0], nil
}

// MatchingMessages compares message to LogLines to seek those LogLines that match on LogRecorder
func (r *LogRecorder) MatchingMessages(message string) []LogLine {
	r.mu.Lock()
	defer r.mu.Unlock()

	matches := []LogLine{}
	for _, line := range r.lines {
		if line.Message == message {
			matches = append(matches, line)
		}
	}
	return matches
}
