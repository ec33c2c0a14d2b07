// Package logger implements a logging adapter using log/slog.
package logger

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"os"
	"slices"
	"strings"
	"sync"

	"go.trai.ch/sob/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Logger = (*Logger)(nil)

// ErrorEntry is one level of an error chain prepared for display.
type ErrorEntry struct {
	Message  string
	Metadata map[string]any
}

// Logger implements ports.Logger using log/slog.
type Logger struct {
	mu       sync.RWMutex
	logger   *slog.Logger
	output   io.Writer
	jsonMode bool
	level    slog.Level
}

// Option configures a Logger.
type Option func(*Logger)

// WithOutput sets the destination of log records. It defaults to os.Stderr.
func WithOutput(w io.Writer) Option {
	return func(l *Logger) {
		if w != nil {
			l.output = w
		}
	}
}

// WithJSON enables JSON records instead of the pretty format.
func WithJSON(enable bool) Option {
	return func(l *Logger) {
		l.jsonMode = enable
	}
}

// WithLevel sets the minimum level that is written.
func WithLevel(level slog.Level) Option {
	return func(l *Logger) {
		l.level = level
	}
}

// New creates a new Logger writing pretty records to stderr by default.
func New(opts ...Option) *Logger {
	l := &Logger{
		output: os.Stderr,
		level:  slog.LevelInfo,
	}
	for _, opt := range opts {
		opt(l)
	}
	l.logger = slog.New(l.handler())
	return l
}

func (l *Logger) handler() slog.Handler {
	opts := &slog.HandlerOptions{Level: l.level}
	if l.jsonMode {
		return slog.NewJSONHandler(l.output, opts)
	}
	return NewPrettyHandler(l.output, opts)
}

// SetOutput updates the logger's output destination, keeping the current format.
// If w is nil, os.Stderr is used.
func (l *Logger) SetOutput(w io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if w == nil {
		w = os.Stderr
	}
	l.output = w
	l.logger = slog.New(l.handler())
}

// SetJSON switches between JSON and pretty logging.
func (l *Logger) SetJSON(enable bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.jsonMode = enable
	l.logger = slog.New(l.handler())
}

// Info logs an informational message.
func (l *Logger) Info(msg string) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	l.logger.Info(msg)
}

// Warn logs a warning message.
func (l *Logger) Warn(msg string) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	l.logger.Warn(msg)
}

// Error logs an error together with its cause chain and metadata.
func (l *Logger) Error(err error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if err == nil {
		return
	}

	if l.jsonMode {
		l.logger.Error("operation failed", "error", err)
		return
	}

	l.logger.Error(formatErrorEntries(collectErrorEntries(err)))
}

// collectErrorEntries flattens an error chain into one entry per message.
// Joined errors contribute the entries of each of their members in order.
// A zerr level without a message lends its metadata to the next entry.
func collectErrorEntries(err error) []ErrorEntry {
	var entries []ErrorEntry
	var pending map[string]any

	for current := err; current != nil; {
		var zErr *zerr.Error
		if z, ok := current.(*zerr.Error); ok {
			zErr = z
		}

		if zErr == nil {
			if joined, ok := current.(interface{ Unwrap() []error }); ok {
				for _, member := range joined.Unwrap() {
					entries = append(entries, collectErrorEntries(member)...)
				}
				return entries
			}
			entries = append(entries, ErrorEntry{Message: current.Error(), Metadata: pending})
			return entries
		}

		if zErr.Message() == "" {
			if pending == nil {
				pending = make(map[string]any)
			}
			maps.Copy(pending, zErr.Metadata())
		} else {
			metadata := zErr.Metadata()
			maps.Copy(metadata, pending)
			pending = nil
			entries = append(entries, ErrorEntry{Message: zErr.Message(), Metadata: metadata})
		}
		current = errors.Unwrap(current)
	}
	return entries
}

// formatErrorEntries renders entries as a headline with an indented cause list.
func formatErrorEntries(entries []ErrorEntry) string {
	var lines []string

	for i, entry := range entries {
		msgLines := strings.Split(entry.Message, "\n")

		head, indent := "Error: ", "       "
		if i > 0 {
			head, indent = "    → ", "      "
			if i == 1 {
				lines = append(lines, "", "  Caused by:")
			}
		}

		lines = append(lines, head+msgLines[0])
		for _, line := range msgLines[1:] {
			lines = append(lines, indent+line)
		}
		for _, key := range slices.Sorted(maps.Keys(entry.Metadata)) {
			lines = append(lines, fmt.Sprintf("%s%s: %v", indent, key, entry.Metadata[key]))
		}
	}

	return strings.Join(lines, "\n")
}
