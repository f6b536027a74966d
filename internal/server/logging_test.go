package server

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want LogLevel
	}{
		{"debug", LogLevelDebug},
		{"Info", LogLevelInfo},
		{"WARN", LogLevelWarn},
		{"warning", LogLevelWarn},
		{"error", LogLevelError},
		{"anything else", LogLevelInfo},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseLogLevel(tt.in), "input %q", tt.in)
	}
}

func TestLoggerFiltersBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	log := NewLogger(LogLevelWarn, &buf)

	log.Debug("hidden")
	log.Info("hidden")
	log.Warn("shown")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "[WARN] shown")
}

func TestLoggerFieldsAreSorted(t *testing.T) {
	var buf bytes.Buffer
	log := NewLogger(LogLevelInfo, &buf).WithField("zeta", 1).WithField("alpha", 2)

	log.Info("msg")
	assert.Contains(t, buf.String(), "msg alpha=2 zeta=1")
}

func TestSetLevelReachesDerivedLoggers(t *testing.T) {
	var buf bytes.Buffer
	root := NewLogger(LogLevelInfo, &buf)
	component := root.WithComponent("server")

	component.Debug("before")
	assert.Empty(t, buf.String())

	root.SetLevel(LogLevelDebug)
	component.Debug("after")
	assert.Contains(t, buf.String(), "after")
	assert.Contains(t, buf.String(), "component=server")

	// The other direction holds too: raising the level on a derived
	// logger silences the root.
	component.SetLevel(LogLevelError)
	root.Info("silenced")
	assert.NotContains(t, buf.String(), "silenced")
}
