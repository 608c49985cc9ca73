package logger

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorderForwardsAndMatches(t *testing.T) {
	var buf bytes.Buffer
	wrapped := NewSlogLogger(slog.New(slog.NewJSONHandler(&buf, nil)))
	recorder := NewLogRecorder(wrapped)

	recorder.LogSessionEvent("New User Session Created", map[string]string{"session_id_hash": "abc"})
	recorder.LogSessionEvent("User Session Destroyed", nil)
	recorder.LogSessionEvent("User Session Destroyed", nil)

	line, err := recorder.GetOnlyMatchingMessage("New User Session Created")
	require.NoError(t, err)
	assert.Equal(t, "abc", line.Fields["session_id_hash"])

	_, err = recorder.GetOnlyMatchingMessage("User Session Destroyed")
	assert.Error(t, err)
	assert.Len(t, recorder.MatchingMessages("User Session Destroyed"), 2)
	assert.Empty(t, recorder.MatchingMessages("nothing"))

	assert.Contains(t, buf.String(), `"session_id_hash":"abc"`)
	assert.Contains(t, buf.String(), `"component":"session"`)
}

func TestRecorderWithoutWrappedLogger(t *testing.T) {
	recorder := NewLogRecorder(nil)
	recorder.LogSessionEvent("hello", map[string]string{"k": "v"})

	line, err := recorder.GetOnlyMatchingMessage("hello")
	require.NoError(t, err)
	assert.Equal(t, "v", line.Fields["k"])
}
