package diff

import "sort"

// Selector chooses which character ranges of a diff line to highlight.
//
// Amendment text is preferred: when a snippet from an amendment occurs in the
// line, the match is narrowed to the true changed sub-portion if the
// amendment carries both sides of the edit. When no amendment text matches,
// the selector falls back to an inline diff against the line's paired
// counterpart. Highlights covering more than InlineDiffThreshold of the line
// are suppressed entirely — at that point the whole line reads as changed.
type Selector struct {
	amendments []Amendment
}

// NewSelector returns a Selector over a section's amendments. A nil or empty
// amendment set is valid; the selector then only uses counterpart fallback.
func NewSelector(amendments []Amendment) *Selector {
	return &Selector{amendments: amendments}
}

// Select returns the highlight ranges for one removed or added line.
// counterpart is the line paired against it in the two-column layout, or nil.
// Context lines never get highlights. The result is merged, non-overlapping
// and start-ascending.
func (s *Selector) Select(line DiffLine, counterpart *DiffLine) []Range {
	if line.Kind == LineContext || line.Content == "" {
		return nil
	}

	var ranges []Range
	if m := FindRange(line.Content, s.candidates(line.Kind)); m != nil {
		r := m.Range
		if nr := s.narrowed(m.Candidate, line.Kind); nr != nil {
			// Word-level precision instead of the whole matched phrase.
			r = Range{Start: m.Start + nr.Start, End: m.Start + nr.End}
		}
		if r, ok := r.clamp(len(line.Content)); ok {
			ranges = append(ranges, r)
		}
	} else if counterpart != nil {
		if nr := Narrow(counterpart.Content, line.Content); nr != nil {
			if r, ok := nr.clamp(len(line.Content)); ok {
				ranges = append(ranges, r)
			}
		}
	}

	ranges = MergeRanges(ranges)

	total := 0
	for _, r := range ranges {
		total += r.Len()
	}
	if float64(total)/float64(len(line.Content)) > InlineDiffThreshold {
		return nil
	}
	return ranges
}

// candidates returns the amendment snippets for one side of the diff,
// aligned by index with the amendment list. Removed lines match against the
// before-text of each amendment, added lines against the after-text.
func (s *Selector) candidates(kind LineType) []string {
	out := make([]string, len(s.amendments))
	for i, a := range s.amendments {
		if kind == LineRemoved {
			out[i] = a.OldText
		} else {
			out[i] = a.NewText
		}
	}
	return out
}

// narrowed computes the changed sub-range of the matched amendment snippet,
// in the coordinates of the line's own side. Only possible when the
// amendment carries both sides of the edit.
func (s *Selector) narrowed(candidate int, kind LineType) *Range {
	if candidate < 0 || candidate >= len(s.amendments) {
		return nil
	}
	a := s.amendments[candidate]
	if a.OldText == "" || a.NewText == "" {
		return nil
	}
	if kind == LineRemoved {
		return Narrow(a.NewText, a.OldText)
	}
	return Narrow(a.OldText, a.NewText)
}

// MergeRanges sorts ranges by start and merges overlapping or touching ones.
// Empty ranges are dropped. The input slice is not modified.
func MergeRanges(ranges []Range) []Range {
	if len(ranges) == 0 {
		return nil
	}
	sorted := make([]Range, 0, len(ranges))
	for _, r := range ranges {
		if r.Len() > 0 {
			sorted = append(sorted, r)
		}
	}
	if len(sorted) == 0 {
		return nil
	}
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Start < sorted[j].Start })

	merged := sorted[:1]
	for _, r := range sorted[1:] {
		last := &merged[len(merged)-1]
		if r.Start <= last.End {
			if r.End > last.End {
				last.End = r.End
			}
			continue
		}
		merged = append(merged, r)
	}
	return merged
}
