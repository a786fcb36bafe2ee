package logging

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"runtime/debug"
	"time"

	charmlog "github.com/charmbracelet/log"
)

// Setup installs the default slog logger. Entries always flow into the
// in-memory service through the logfmt writer; in debug mode they are also
// pretty-printed to stderr.
func Setup(debugMode bool) {
	level := slog.LevelInfo
	if debugMode {
		level = slog.LevelDebug
	}

	buffered := slog.NewTextHandler(NewSlogWriter(), &slog.HandlerOptions{
		Level: level,
	})

	if !debugMode {
		slog.SetDefault(slog.New(buffered))
		return
	}

	pretty := charmlog.NewWithOptions(os.Stderr, charmlog.Options{
		Level:           charmlog.DebugLevel,
		ReportTimestamp: true,
	})
	slog.SetDefault(slog.New(multiHandler{buffered, pretty}))
}

// multiHandler fans one slog record out to every wrapped handler.
type multiHandler []slog.Handler

func (m multiHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, h := range m {
		if h.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (m multiHandler) Handle(ctx context.Context, r slog.Record) error {
	var firstErr error
	for _, h := range m {
		if !h.Enabled(ctx, r.Level) {
			continue
		}
		if err := h.Handle(ctx, r.Clone()); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func (m multiHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	out := make(multiHandler, len(m))
	for i, h := range m {
		out[i] = h.WithAttrs(attrs)
	}
	return out
}

func (m multiHandler) WithGroup(name string) slog.Handler {
	out := make(multiHandler, len(m))
	for i, h := range m {
		out[i] = h.WithGroup(name)
	}
	return out
}

// RecoverPanic is a common function to handle panics gracefully. It logs
// the error, creates a panic log file with a stack trace, and executes an
// optional cleanup function.
func RecoverPanic(name string, cleanup func()) {
	if r := recover(); r != nil {
		errorMsg := fmt.Sprintf("Panic in %s: %v", name, r)
		slog.Error(errorMsg)

		timestamp := time.Now().Format("20060102-150405")
		filename := fmt.Sprintf("lawdiff-panic-%s-%s.log", name, timestamp)

		file, err := os.Create(filename)
		if err != nil {
			slog.Error(fmt.Sprintf("Failed to create panic log file '%s': %v", filename, err))
		} else {
			defer file.Close()
			fmt.Fprintf(file, "Panic in %s: %v\n\n", name, r)
			fmt.Fprintf(file, "Time: %s\n\n", time.Now().Format(time.RFC3339))
			fmt.Fprintf(file, "Stack Trace:\n%s\n", string(debug.Stack()))
			slog.Info(fmt.Sprintf("Panic details written to %s", filename))
		}

		if cleanup != nil {
			cleanup()
		}
	}
}
