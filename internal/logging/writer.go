package logging

import (
	"bytes"
	"context"
	"io"
	"strings"
	"time"

	"github.com/go-logfmt/logfmt"
)

// slogWriter feeds slog's logfmt output into the logging service so the
// viewer can show recent entries without a second log pipeline.
type slogWriter struct{}

func (w *slogWriter) Write(p []byte) (int, error) {
	d := logfmt.NewDecoder(bytes.NewReader(p))
	for d.ScanRecord() {
		entry := Log{}

		for d.ScanKeyval() {
			key := string(d.Key())
			value := string(d.Value())

			switch key {
			case "time":
				parsed, err := time.Parse(time.RFC3339Nano, value)
				if err != nil {
					parsed, err = time.Parse(time.RFC3339, value)
				}
				if err == nil {
					entry.Timestamp = parsed
				}
			case "level":
				entry.Level = strings.ToLower(value)
			case "msg", "message":
				entry.Message = value
			default:
				if entry.Attributes == nil {
					entry.Attributes = make(map[string]string)
				}
				entry.Attributes[key] = value
			}
		}

		// Buffering is best-effort; a logging failure must not take the
		// slog call site down with it.
		_ = Create(context.Background(), entry)
	}
	if d.Err() != nil {
		return len(p), d.Err()
	}
	return len(p), nil
}

func NewSlogWriter() io.Writer {
	return &slogWriter{}
}
