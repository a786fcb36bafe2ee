package format

import (
	"encoding/json"
	"fmt"

	"github.com/statutedb/lawdiff/internal/diff"
)

// OutputFormat represents the format for non-interactive mode output
type OutputFormat string

const (
	// TextFormat is rendered terminal output (default)
	TextFormat OutputFormat = "text"

	// JSONFormat is the assembled section model as a JSON object
	JSONFormat OutputFormat = "json"
)

// IsValid checks if the output format is valid
func (f OutputFormat) IsValid() bool {
	return f == TextFormat || f == JSONFormat
}

// String returns the string representation of the output format
func (f OutputFormat) String() string {
	return string(f)
}

// Output formats a rendered section according to the specified format. The
// text form returns the rendered string as is; the json form marshals the
// assembled model instead, ignoring the rendering.
func Output(rendered string, assembled diff.Assembled, format OutputFormat) (string, error) {
	switch format {
	case TextFormat:
		return rendered, nil
	case JSONFormat:
		jsonBytes, err := json.MarshalIndent(assembled, "", "  ")
		if err != nil {
			return "", fmt.Errorf("failed to marshal JSON: %w", err)
		}
		return string(jsonBytes), nil
	default:
		return "", fmt.Errorf("unsupported output format: %s", format)
	}
}
