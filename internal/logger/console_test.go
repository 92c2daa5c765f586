package logger

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log := NewConsoleLogger(&buf, "warn")

	log.Trace("trace message")
	log.Debug("debug message")
	log.Info("info message")
	log.Warn("warn message")
	log.Error("error message")

	out := buf.String()
	assert.NotContains(t, out, "trace message")
	assert.NotContains(t, out, "debug message")
	assert.NotContains(t, out, "info message")
	assert.Contains(t, out, "warn message")
	assert.Contains(t, out, "error message")
}

func TestDefaultLevelIsInfo(t *testing.T) {
	var buf bytes.Buffer
	log := NewConsoleLogger(&buf, "")

	log.Debug("hidden")
	log.Info("visible")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "visible")
}

func TestUnknownLevelDefaultsToInfo(t *testing.T) {
	var buf bytes.Buffer
	log := NewConsoleLogger(&buf, "chatty")
	log.Debug("hidden")
	assert.Empty(t, buf.String())
}

func TestMessageFormat(t *testing.T) {
	var buf bytes.Buffer
	log := NewConsoleLogger(&buf, "info")

	log.Info("count=%d", 7)

	line := buf.String()
	assert.True(t, strings.HasPrefix(line, "["), "expected timestamp prefix, got %q", line)
	assert.Contains(t, line, "count=7")
	assert.True(t, strings.HasSuffix(line, "\n"))
}

func TestNilLoggerIsSafe(t *testing.T) {
	var log *ConsoleLogger
	log.Info("no panic")

	log = NewConsoleLogger(nil, "info")
	log.Error("discarded")
}

func TestNoColorForNonTerminalWriter(t *testing.T) {
	var buf bytes.Buffer
	log := NewConsoleLogger(&buf, "info")

	log.Warn("plain")
	assert.NotContains(t, buf.String(), "\x1b[", "buffer output must not carry ANSI codes")
}
