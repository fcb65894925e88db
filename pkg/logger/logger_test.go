package logger

import (
	"bytes"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func bufLogger(buf *bytes.Buffer) *Logger {
	return &Logger{Logger: zerolog.New(buf)}
}

func TestContextHelpers(t *testing.T) {
	t.Run("component", func(t *testing.T) {
		var buf bytes.Buffer
		bufLogger(&buf).WithComponent("engine").Info().Msg("ready")
		assert.Contains(t, buf.String(), `"component":"engine"`)
	})

	t.Run("request id", func(t *testing.T) {
		var buf bytes.Buffer
		bufLogger(&buf).WithRequestID("req-42").Info().Msg("request completed")
		assert.Contains(t, buf.String(), `"request_id":"req-42"`)
	})

	t.Run("assessment id", func(t *testing.T) {
		var buf bytes.Buffer
		bufLogger(&buf).WithAssessmentID("a1b2").Info().Msg("assessment created")
		assert.Contains(t, buf.String(), `"assessment_id":"a1b2"`)
	})

	t.Run("error", func(t *testing.T) {
		var buf bytes.Buffer
		bufLogger(&buf).WithError(errors.New("pool exhausted")).Error().Msg("failed")
		assert.Contains(t, buf.String(), "pool exhausted")
	})

	t.Run("fields", func(t *testing.T) {
		var buf bytes.Buffer
		bufLogger(&buf).WithFields(map[string]any{"version": "1.0.0", "env": "test"}).Info().Msg("starting")
		out := buf.String()
		assert.Contains(t, out, `"version":"1.0.0"`)
		assert.Contains(t, out, `"env":"test"`)
	})
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zerolog.DebugLevel, parseLevel("debug"))
	assert.Equal(t, zerolog.WarnLevel, parseLevel("warning"))
	assert.Equal(t, zerolog.ErrorLevel, parseLevel("error"))
	assert.Equal(t, zerolog.InfoLevel, parseLevel("not-a-level"))
}
