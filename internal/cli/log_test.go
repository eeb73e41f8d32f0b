package cli

import (
	"bytes"
	"context"
	"regexp"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLoggerLevels(t *testing.T) {
	tests := []struct {
		name  string
		level log.Level
		emit  func(*log.Logger)
		want  bool
	}{
		{"info at info", log.InfoLevel, func(l *log.Logger) { l.Info("synth") }, true},
		{"warn at info", log.InfoLevel, func(l *log.Logger) { l.Warn("synth") }, true},
		{"debug at info", log.InfoLevel, func(l *log.Logger) { l.Debug("cache hit") }, false},
		{"debug at debug", log.DebugLevel, func(l *log.Logger) { l.Debug("cache hit") }, true},
		{"info at warn", log.WarnLevel, func(l *log.Logger) { l.Info("synth") }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.emit(newLogger(&buf, tt.level))
			assert.Equal(t, tt.want, buf.Len() > 0, "output: %q", buf.String())
		})
	}
}

func TestNewLoggerTimestamp(t *testing.T) {
	var buf bytes.Buffer
	newLogger(&buf, log.InfoLevel).Info("patched notes.md")

	assert.Regexp(t, regexp.MustCompile(`^\d{2}:\d{2}:\d{2}\.\d{2} `), buf.String())
	assert.Contains(t, buf.String(), "patched notes.md")
}

func TestProgressDone(t *testing.T) {
	var buf bytes.Buffer
	prog := newProgress(newLogger(&buf, log.InfoLevel))
	prog.done("Synthesized 3 responses")

	assert.Regexp(t, `Synthesized 3 responses \(\d+(\.\d+)?[µnm]?s\)`, buf.String())
}

func TestLoggerFromContext(t *testing.T) {
	var buf bytes.Buffer
	custom := newLogger(&buf, log.InfoLevel)

	tests := []struct {
		name string
		ctx  context.Context
		want *log.Logger
	}{
		{"attached", withLogger(context.Background(), custom), custom},
		{"missing", context.Background(), log.Default()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := loggerFromContext(tt.ctx)
			require.NotNil(t, got)
			assert.Same(t, tt.want, got)
		})
	}
}
