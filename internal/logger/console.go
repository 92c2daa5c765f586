// Package logger provides the level-filtered console logger used across
// the engine. Output is prefixed with [HH:MM:SS] timestamps; color is
// enabled automatically when writing to a terminal.
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// Numeric log levels for filtering.
const (
	levelTrace = iota
	levelDebug
	levelInfo
	levelWarn
	levelError
)

// ConsoleLogger writes timestamped, level-filtered messages to a writer.
// Safe for concurrent use. A nil writer silently discards everything.
type ConsoleLogger struct {
	writer      io.Writer
	level       int
	mutex       sync.Mutex
	colorOutput bool
}

// NewConsoleLogger creates a logger writing to w at the given minimum
// level. Valid levels are trace, debug, info, warn, error
// (case-insensitive); empty or unknown values default to info.
func NewConsoleLogger(w io.Writer, level string) *ConsoleLogger {
	return &ConsoleLogger{
		writer:      w,
		level:       levelToInt(level),
		colorOutput: isTerminal(w),
	}
}

// isTerminal reports whether w is a TTY that supports colors.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	if color.NoColor {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func levelToInt(level string) int {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace":
		return levelTrace
	case "debug":
		return levelDebug
	case "warn":
		return levelWarn
	case "error":
		return levelError
	default:
		return levelInfo
	}
}

// Trace logs at trace level.
func (cl *ConsoleLogger) Trace(format string, args ...interface{}) {
	cl.log(levelTrace, nil, format, args...)
}

// Debug logs at debug level.
func (cl *ConsoleLogger) Debug(format string, args ...interface{}) {
	cl.log(levelDebug, nil, format, args...)
}

// Info logs at info level.
func (cl *ConsoleLogger) Info(format string, args ...interface{}) {
	cl.log(levelInfo, nil, format, args...)
}

// Warn logs at warn level in yellow.
func (cl *ConsoleLogger) Warn(format string, args ...interface{}) {
	cl.log(levelWarn, color.New(color.FgYellow), format, args...)
}

// Error logs at error level in red.
func (cl *ConsoleLogger) Error(format string, args ...interface{}) {
	cl.log(levelError, color.New(color.FgRed), format, args...)
}

func (cl *ConsoleLogger) log(level int, c *color.Color, format string, args ...interface{}) {
	if cl == nil || cl.writer == nil || level < cl.level {
		return
	}

	cl.mutex.Lock()
	defer cl.mutex.Unlock()

	message := fmt.Sprintf(format, args...)
	line := fmt.Sprintf("[%s] %s\n", time.Now().Format("15:04:05"), message)
	if cl.colorOutput && c != nil {
		_, _ = c.Fprint(cl.writer, line)
		return
	}
	_, _ = io.WriteString(cl.writer, line)
}
