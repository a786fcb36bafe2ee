package diff

import "github.com/sergi/go-diff/diffmatchpatch"

// Segment is one changed span for granular intra-line highlighting. Kind is
// LineRemoved for spans in the old string, LineAdded for spans in the new
// string; offsets are into the respective side.
type Segment struct {
	Start int
	End   int
	Kind  LineType
	Text  string
}

// InlineSegments computes character-level difference segments between a
// paired removed/added line. Unlike Narrow, which reduces the edit to a
// single word-aligned range, this reports every changed span on both sides.
// It backs the renderer's granular mode and leaves the engine's default
// highlight selection untouched.
func InlineSegments(oldText, newText string) []Segment {
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(oldText, newText, false)
	diffs = dmp.DiffCleanupSemantic(diffs)
	diffs = dmp.DiffCleanupMerge(diffs)
	diffs = dmp.DiffCleanupEfficiency(diffs)

	var segments []Segment
	oldPos, newPos := 0, 0
	for _, d := range diffs {
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			segments = append(segments, Segment{
				Start: oldPos,
				End:   oldPos + len(d.Text),
				Kind:  LineRemoved,
				Text:  d.Text,
			})
			oldPos += len(d.Text)
		case diffmatchpatch.DiffInsert:
			segments = append(segments, Segment{
				Start: newPos,
				End:   newPos + len(d.Text),
				Kind:  LineAdded,
				Text:  d.Text,
			})
			newPos += len(d.Text)
		default:
			oldPos += len(d.Text)
			newPos += len(d.Text)
		}
	}
	return segments
}

// SegmentRanges filters segments down to the ranges for one side.
func SegmentRanges(segments []Segment, kind LineType) []Range {
	var ranges []Range
	for _, s := range segments {
		if s.Kind == kind {
			ranges = append(ranges, Range{Start: s.Start, End: s.End})
		}
	}
	return MergeRanges(ranges)
}
