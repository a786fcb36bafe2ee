// Package section reads the JSON documents produced by the upstream
// extraction pipeline (line hunks, amendment records and the section's full
// current text) and normalizes them into the engine's model. Partial or
// inconsistent documents are repaired where possible: unknown line kinds
// become context, confidences are clamped to [0, 1], and a missing section
// id is generated.
package section

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/google/uuid"

	"github.com/statutedb/lawdiff/internal/diff"
)

// Line is one diff line on the wire. Line numbers are nullable: removed
// lines carry only old_line_number, added lines only new_line_number.
type Line struct {
	Kind          string `json:"kind"`
	Content       string `json:"content"`
	OldLineNumber *int   `json:"old_line_number"`
	NewLineNumber *int   `json:"new_line_number"`
}

// Hunk is one line hunk on the wire.
type Hunk struct {
	OldStart int    `json:"old_start"`
	NewStart int    `json:"new_start"`
	Lines    []Line `json:"lines"`
}

// Amendment is one extracted amendment record on the wire. old_text and
// new_text are nullable snippets.
type Amendment struct {
	PatternName string  `json:"pattern_name"`
	ChangeType  string  `json:"change_type"`
	Confidence  float64 `json:"confidence"`
	OldText     *string `json:"old_text"`
	NewText     *string `json:"new_text"`
	NeedsReview bool    `json:"needs_review"`
}

// Document is the complete section diff document on the wire.
type Document struct {
	Section       string      `json:"section"`
	Citation      string      `json:"citation"`
	Heading       string      `json:"heading"`
	Hunks         []Hunk      `json:"hunks"`
	Amendments    []Amendment `json:"amendments"`
	AllProvisions []Line      `json:"all_provisions"`
}

// Load decodes and normalizes a section diff document.
func Load(r io.Reader) (*diff.SectionDiff, error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to decode section document: %w", err)
	}
	return doc.Normalize(), nil
}

// LoadFile reads and normalizes a section diff document from disk.
func LoadFile(path string) (*diff.SectionDiff, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open section document: %w", err)
	}
	defer f.Close()
	return Load(f)
}

// Normalize converts the wire document into the engine's model, repairing
// what it can and dropping only what cannot be safely kept.
func (d Document) Normalize() *diff.SectionDiff {
	sd := &diff.SectionDiff{
		ID:       d.Section,
		Citation: d.Citation,
		Heading:  d.Heading,
	}
	if sd.ID == "" {
		sd.ID = uuid.NewString()
	}

	for _, h := range d.Hunks {
		hunk := diff.DiffHunk{
			OldStart: max(h.OldStart, 1),
			NewStart: max(h.NewStart, 1),
		}
		for _, l := range h.Lines {
			hunk.Lines = append(hunk.Lines, l.normalize())
		}
		sd.Hunks = append(sd.Hunks, hunk)
	}

	for _, a := range d.Amendments {
		sd.Amendments = append(sd.Amendments, a.normalize())
	}

	next := 1
	for _, l := range d.AllProvisions {
		line := l.normalize()
		// AllProvisions is the complete current text: every line exists on
		// the new side with monotonically increasing numbering. Restore the
		// sequence when the document disagrees.
		line.Kind = diff.LineContext
		if line.NewLineNo < next {
			line.NewLineNo = next
		}
		next = line.NewLineNo + 1
		sd.AllProvisions = append(sd.AllProvisions, line)
	}
	return sd
}

func (l Line) normalize() diff.DiffLine {
	line := diff.DiffLine{Content: l.Content}
	if l.OldLineNumber != nil && *l.OldLineNumber > 0 {
		line.OldLineNo = *l.OldLineNumber
	}
	if l.NewLineNumber != nil && *l.NewLineNumber > 0 {
		line.NewLineNo = *l.NewLineNumber
	}
	switch l.Kind {
	case "added":
		line.Kind = diff.LineAdded
		line.OldLineNo = 0
	case "removed":
		line.Kind = diff.LineRemoved
		line.NewLineNo = 0
	case "context":
		line.Kind = diff.LineContext
	default:
		slog.Debug("Unknown line kind treated as context", "kind", l.Kind)
		line.Kind = diff.LineContext
	}
	return line
}

func (a Amendment) normalize() diff.Amendment {
	out := diff.Amendment{
		PatternName: a.PatternName,
		ChangeType:  diff.ChangeType(a.ChangeType),
		Confidence:  clamp01(a.Confidence),
		NeedsReview: a.NeedsReview,
	}
	if a.OldText != nil {
		out.OldText = *a.OldText
	}
	if a.NewText != nil {
		out.NewText = *a.NewText
	}
	if !out.ChangeType.IsValid() {
		slog.Debug("Unknown change type on amendment", "change_type", a.ChangeType, "pattern", a.PatternName)
	}
	return out
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
