// Package logger provides diagnostic logging and the styled console used by plugins.
package logger

import (
	"fmt"
	"io"
	"os"
	"sync"
)

//go:generate go run go.uber.org/mock/mockgen@v0.5.2 -source=logger.go -destination=mocks/logger.gen.go -package=mocks

// Logger interface provides logging capabilities.
type Logger interface {
	// Logf logs a formatted message.
	Logf(format string, args ...interface{})
}

// noopLogger is a logger that does nothing.
type noopLogger struct{}

// NewNoopLogger creates a new noop logger.
func NewNoopLogger() Logger {
	return &noopLogger{}
}

// Logf does nothing for noop logger.
func (n *noopLogger) Logf(_ string, _ ...interface{}) {}

// defaultLogger is a thread-safe logger that writes one line per message.
type defaultLogger struct {
	mu sync.Mutex
	w  io.Writer
}

// NewDefaultLogger creates a logger writing to stderr.
func NewDefaultLogger() Logger {
	return NewWriterLogger(os.Stderr)
}

// NewWriterLogger creates a thread-safe logger writing to w.
func NewWriterLogger(w io.Writer) Logger {
	return &defaultLogger{w: w}
}

// Logf writes a formatted message with thread safety.
func (d *defaultLogger) Logf(format string, args ...interface{}) {
	d.mu.Lock()
	defer d.mu.Unlock()
	fmt.Fprintf(d.w, format+"\n", args...)
}

// attrLogger is implemented by loggers that can carry structured attributes.
type attrLogger interface {
	With(args ...any) Logger
}

// With returns l annotated with the given key/value pairs when l supports it.
func With(l Logger, args ...any) Logger {
	if al, ok := l.(attrLogger); ok {
		return al.With(args...)
	}
	return l
}

// WithComponent annotates l with the component name.
func WithComponent(l Logger, name string) Logger {
	return With(l, "component", name)
}

// WithPlugin annotates l with a plugin id.
func WithPlugin(l Logger, id string) Logger {
	return With(l, "plugin", id)
}

// WithRun annotates l with the id of an orchestrator run.
func WithRun(l Logger, runID string) Logger {
	return With(l, "run_id", runID)
}
