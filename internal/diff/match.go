package diff

import "strings"

// InlineDiffThreshold caps how much of a line an inline highlight may cover.
// When the changed sub-range of a string exceeds this fraction of its length,
// the edit is treated as a rewrite and highlighting is suppressed.
const InlineDiffThreshold = 0.2

// Match is a located candidate within a line's content.
type Match struct {
	Range
	// Candidate is the index of the candidate string that matched.
	Candidate int
	// Normalized is set when the match was found only after collapsing
	// whitespace runs. Offsets are then in normalized coordinates; applied
	// against the original string they can drift by a few characters when
	// whitespace run lengths differ. That tolerance is deliberate.
	Normalized bool
}

// FindRange locates the first candidate that occurs in content. Each
// candidate is tried with an exact substring search first, then again with
// whitespace runs in both strings collapsed to single spaces. Empty
// candidates are skipped. Returns nil when nothing matches.
func FindRange(content string, candidates []string) *Match {
	for i, candidate := range candidates {
		if candidate == "" {
			continue
		}
		if idx := strings.Index(content, candidate); idx >= 0 {
			return &Match{
				Range:     Range{Start: idx, End: idx + len(candidate)},
				Candidate: i,
			}
		}
		normContent := collapseSpace(content)
		normCandidate := collapseSpace(candidate)
		if idx := strings.Index(normContent, normCandidate); idx >= 0 {
			return &Match{
				Range:      Range{Start: idx, End: idx + len(normCandidate)},
				Candidate:  i,
				Normalized: true,
			}
		}
	}
	return nil
}

// Narrow computes the minimal changed sub-range of newText relative to
// oldText via common prefix/suffix trimming, expanded outward to whole
// words. Returns nil when the strings are equivalent or when the changed
// portion is too large to be worth highlighting (InlineDiffThreshold).
func Narrow(oldText, newText string) *Range {
	if len(newText) == 0 {
		return nil
	}

	prefix := commonPrefixLen(oldText, newText)
	suffix := commonSuffixLen(oldText, newText)
	// Prefix and suffix may overlap when one string contains the other.
	if limit := min(len(oldText), len(newText)) - prefix; suffix > limit {
		suffix = limit
	}

	start := prefix
	end := len(newText) - suffix
	if start >= end {
		// Equivalent strings.
		return nil
	}

	// Widen to word boundaries so a partial-word trim like "(a)" vs "(b)"
	// highlights the whole token.
	for start > 0 && !isSpaceByte(newText[start-1]) {
		start--
	}
	for end < len(newText) && !isSpaceByte(newText[end]) {
		end++
	}
	if end > start && newText[end-1] == ' ' {
		end--
	}

	if float64(end-start)/float64(len(newText)) > InlineDiffThreshold {
		return nil
	}
	return &Range{Start: start, End: end}
}

// collapseSpace replaces every run of whitespace with a single space.
// Leading and trailing runs are kept (as single spaces) so offsets stay
// aligned with the uncollapsed string as closely as possible.
func collapseSpace(s string) string {
	var sb strings.Builder
	sb.Grow(len(s))
	inRun := false
	for i := 0; i < len(s); i++ {
		if isSpaceByte(s[i]) {
			if !inRun {
				sb.WriteByte(' ')
				inRun = true
			}
			continue
		}
		inRun = false
		sb.WriteByte(s[i])
	}
	return sb.String()
}

func commonPrefixLen(a, b string) int {
	n := min(len(a), len(b))
	i := 0
	for i < n && a[i] == b[i] {
		i++
	}
	return i
}

func commonSuffixLen(a, b string) int {
	n := min(len(a), len(b))
	i := 0
	for i < n && a[len(a)-1-i] == b[len(b)-1-i] {
		i++
	}
	return i
}

func isSpaceByte(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}
