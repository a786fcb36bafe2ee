// Package diff computes the rendering model for an amendment diff view:
// paired old/new lines, per-line highlight ranges isolating what an amendment
// changed, and a partition of a section into hunk regions and collapsible
// unchanged regions.
//
// The package consumes precomputed line hunks and independently extracted
// amendment records; it never derives hunks from full texts itself. Every
// function here is a pure transform of its inputs: malformed or partial data
// is clamped or ignored, never reported as an error.
package diff

// LineType represents the kind of line in a diff.
type LineType int

const (
	LineContext LineType = iota // Line exists in both versions
	LineAdded                   // Line added in the new version
	LineRemoved                 // Line removed from the old version
)

// String returns the wire name of the line type.
func (t LineType) String() string {
	switch t {
	case LineAdded:
		return "added"
	case LineRemoved:
		return "removed"
	default:
		return "context"
	}
}

// DiffLine represents a single line in a diff.
//
// Removed lines carry only OldLineNo, added lines only NewLineNo, context
// lines both. A zero line number means "not present on that side".
type DiffLine struct {
	OldLineNo int      // Line number in the old version (0 for added lines)
	NewLineNo int      // Line number in the new version (0 for removed lines)
	Kind      LineType // Type of line (added, removed, context)
	Content   string   // Content of the line, without trailing newline
}

// DiffHunk represents one contiguous block of changes.
//
// OldStart and NewStart are the 1-based positions of the hunk's first
// corresponding line on each side. Lines preserve edit-script order: a
// removed run is immediately followed by its replacing added run, or either
// run appears alone.
type DiffHunk struct {
	OldStart int
	NewStart int
	Lines    []DiffLine
}

// ChangeType classifies the semantic effect of an amendment.
type ChangeType string

const (
	ChangeAdd         ChangeType = "add"
	ChangeModify      ChangeType = "modify"
	ChangeDelete      ChangeType = "delete"
	ChangeRepeal      ChangeType = "repeal"
	ChangeRedesignate ChangeType = "redesignate"
	ChangeTransfer    ChangeType = "transfer"
	ChangeAddNote     ChangeType = "add_note"
)

// IsValid reports whether the change type is one of the known values.
func (c ChangeType) IsValid() bool {
	switch c {
	case ChangeAdd, ChangeModify, ChangeDelete, ChangeRepeal,
		ChangeRedesignate, ChangeTransfer, ChangeAddNote:
		return true
	}
	return false
}

// Amendment is one extracted legislative edit. OldText and NewText are short
// markup-stripped snippets of the text before and after the edit; either may
// be empty when the extractor could not isolate it. Amendments belong to a
// section as a set, not to individual lines.
type Amendment struct {
	PatternName string
	ChangeType  ChangeType
	Confidence  float64
	OldText     string
	NewText     string
	NeedsReview bool
}

// SectionDiff is the complete input for one statute section.
//
// AllProvisions is the full current ("after") text of the section with
// monotonically increasing NewLineNo, a superset context for the added and
// context lines of every hunk.
type SectionDiff struct {
	ID            string
	Citation      string
	Heading       string
	Hunks         []DiffHunk
	Amendments    []Amendment
	AllProvisions []DiffLine
}

// Range is a half-open [Start, End) byte range into a line's content.
type Range struct {
	Start int
	End   int
}

// Len returns the number of bytes covered by the range.
func (r Range) Len() int { return r.End - r.Start }

// clamp restricts the range to [0, n), returning false if nothing is left.
func (r Range) clamp(n int) (Range, bool) {
	if r.Start < 0 {
		r.Start = 0
	}
	if r.End > n {
		r.End = n
	}
	if r.Start >= r.End {
		return Range{}, false
	}
	return r, true
}

// PairedRow is one two-column row: context lines appear on both sides,
// removed/added runs are zipped positionally, and an unmatched line leaves
// its counterpart cell nil.
type PairedRow struct {
	Left            *DiffLine
	Right           *DiffLine
	LeftHighlights  []Range
	RightHighlights []Range
}

// Collapsed is a hidden span of unchanged context lines over AllProvisions,
// addressed by 0-based inclusive indices. Index is the region's stable key
// for expand/collapse state.
type Collapsed struct {
	Start int
	End   int
	Index int
}

// Region is the unit the view renders in order: either a hunk or a collapsed
// span of unchanged lines. Exactly one of Hunk and Collapsed is non-nil.
type Region struct {
	Hunk      *DiffHunk
	Collapsed *Collapsed
}

// IsCollapsed reports whether the region is a collapsed unchanged span.
func (r Region) IsCollapsed() bool { return r.Collapsed != nil }

// ExpandedSet is the caller-owned expand/collapse state, keyed by collapsed
// region index. The zero value (nil) means everything is collapsed.
type ExpandedSet map[int]bool

// Toggle returns a copy of the set with the state of one region flipped.
// The receiver is not modified.
func (s ExpandedSet) Toggle(index int) ExpandedSet {
	next := make(ExpandedSet, len(s)+1)
	for k, v := range s {
		if v {
			next[k] = true
		}
	}
	if next[index] {
		delete(next, index)
	} else {
		next[index] = true
	}
	return next
}

// Has reports whether a region is expanded.
func (s ExpandedSet) Has(index int) bool { return s[index] }
