// Package hunkgen derives line hunks from two full versions of a section's
// text. It stands in for the upstream hunk source when lawdiff is fed raw
// before/after files instead of an extracted section document; the engine in
// internal/diff only ever consumes its output, never computes diffs itself.
package hunkgen

import (
	"fmt"
	"strings"

	"github.com/aymanbagabas/go-udiff"

	"github.com/statutedb/lawdiff/internal/diff"
)

// contextLines is the number of unchanged lines kept around each change
// when splitting the edit script into hunks.
const contextLines = 3

// Compute returns the ordered hunks describing the change from before to
// after. Identical inputs produce no hunks.
func Compute(before, after string) ([]diff.DiffHunk, error) {
	// go-udiff expects newline-terminated content.
	if before != "" && !strings.HasSuffix(before, "\n") {
		before += "\n"
	}
	if after != "" && !strings.HasSuffix(after, "\n") {
		after += "\n"
	}

	edits := udiff.Strings(before, after)
	if len(edits) == 0 {
		return nil, nil
	}
	unified, err := udiff.ToUnifiedDiff("before", "after", before, edits, contextLines)
	if err != nil {
		return nil, fmt.Errorf("failed to compute hunks: %w", err)
	}

	var hunks []diff.DiffHunk
	for _, h := range unified.Hunks {
		hunk := diff.DiffHunk{OldStart: h.FromLine, NewStart: h.ToLine}
		oldNo, newNo := h.FromLine, h.ToLine
		for _, l := range h.Lines {
			content := strings.TrimSuffix(l.Content, "\n")
			switch l.Kind {
			case udiff.Delete:
				hunk.Lines = append(hunk.Lines, diff.DiffLine{
					Kind:      diff.LineRemoved,
					OldLineNo: oldNo,
					Content:   content,
				})
				oldNo++
			case udiff.Insert:
				hunk.Lines = append(hunk.Lines, diff.DiffLine{
					Kind:      diff.LineAdded,
					NewLineNo: newNo,
					Content:   content,
				})
				newNo++
			default:
				hunk.Lines = append(hunk.Lines, diff.DiffLine{
					Kind:      diff.LineContext,
					OldLineNo: oldNo,
					NewLineNo: newNo,
					Content:   content,
				})
				oldNo++
				newNo++
			}
		}
		hunks = append(hunks, reorderRuns(hunk))
	}
	return hunks, nil
}

// Provisions splits the current text into the engine's AllProvisions form:
// every line present, numbered from 1.
func Provisions(after string) []diff.DiffLine {
	if after == "" {
		return nil
	}
	raw := strings.Split(strings.TrimSuffix(after, "\n"), "\n")
	lines := make([]diff.DiffLine, len(raw))
	for i, content := range raw {
		lines[i] = diff.DiffLine{
			Kind:      diff.LineContext,
			OldLineNo: i + 1,
			NewLineNo: i + 1,
			Content:   content,
		}
	}
	return lines
}

// reorderRuns enforces the engine's edit-script order: within each changed
// block, the removed run precedes the added run that replaces it. go-udiff
// already emits deletions first, so this is a safeguard against interleaved
// scripts from other sources.
func reorderRuns(h diff.DiffHunk) diff.DiffHunk {
	out := diff.DiffHunk{OldStart: h.OldStart, NewStart: h.NewStart}
	var removed, added []diff.DiffLine
	flush := func() {
		out.Lines = append(out.Lines, removed...)
		out.Lines = append(out.Lines, added...)
		removed, added = nil, nil
	}
	for _, line := range h.Lines {
		switch line.Kind {
		case diff.LineRemoved:
			removed = append(removed, line)
		case diff.LineAdded:
			added = append(added, line)
		default:
			flush()
			out.Lines = append(out.Lines, line)
		}
	}
	flush()
	return out
}
