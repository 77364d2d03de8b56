// Package logging provides a simple leveled logger for diagnostics on stderr.
package logging

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// Level represents log severity.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// ParseLevel parses a log level string. ok is false for unrecognized input,
// in which case LevelWarn is returned.
func ParseLevel(s string) (level Level, ok bool) {
	switch s {
	case "debug", "DEBUG":
		return LevelDebug, true
	case "info", "INFO":
		return LevelInfo, true
	case "warn", "WARN", "warning", "WARNING":
		return LevelWarn, true
	case "error", "ERROR":
		return LevelError, true
	default:
		return LevelWarn, false
	}
}

var levelStyles = map[Level]lipgloss.Style{
	LevelDebug: lipgloss.NewStyle().Foreground(lipgloss.Color("60")),
	LevelInfo:  lipgloss.NewStyle().Foreground(lipgloss.Color("#9D4EDD")),
	LevelWarn:  lipgloss.NewStyle().Foreground(lipgloss.Color("229")),
	LevelError: lipgloss.NewStyle().Foreground(lipgloss.Color("#E84A27")).Bold(true),
}

// Logger is a simple leveled logger. A nil *Logger discards everything.
type Logger struct {
	mu     sync.Mutex
	level  Level
	output io.Writer
	color  bool
	now    func() time.Time
}

// New creates a logger writing to stderr. Level tags are colored when stderr
// is a terminal.
func New(level Level) *Logger {
	l := NewWriter(os.Stderr, level)
	l.color = term.IsTerminal(int(os.Stderr.Fd()))
	return l
}

// NewWriter creates an uncolored logger writing to w.
func NewWriter(w io.Writer, level Level) *Logger {
	return &Logger{
		level:  level,
		output: w,
		now:    time.Now,
	}
}

// Enabled reports whether messages at level would be written.
func (l *Logger) Enabled(level Level) bool {
	if l == nil {
		return false
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	return level >= l.level
}

func (l *Logger) log(level Level, format string, args ...interface{}) {
	if l == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	if level < l.level {
		return
	}

	tag := "[" + level.String() + "]"
	if l.color {
		tag = levelStyles[level].Render(tag)
	}

	timestamp := l.now().Format("15:04:05.000")
	msg := fmt.Sprintf(format, args...)
	line := fmt.Sprintf("%s %s %s\n", timestamp, tag, msg)

	_, _ = l.output.Write([]byte(line))
}

// Debug logs a debug message.
func (l *Logger) Debug(format string, args ...interface{}) {
	l.log(LevelDebug, format, args...)
}

// Info logs an info message.
func (l *Logger) Info(format string, args ...interface{}) {
	l.log(LevelInfo, format, args...)
}

// Warn logs a warning message.
func (l *Logger) Warn(format string, args ...interface{}) {
	l.log(LevelWarn, format, args...)
}

// Error logs an error message.
func (l *Logger) Error(format string, args ...interface{}) {
	l.log(LevelError, format, args...)
}

// Discard returns a logger that discards all output.
func Discard() *Logger {
	return &Logger{
		level:  LevelError + 1, // Higher than any level
		output: io.Discard,
		now:    time.Now,
	}
}
