package diff

// LineView is one single-column line with its chosen highlight ranges.
type LineView struct {
	Line       DiffLine
	Highlights []Range
}

// HunkView is one hunk prepared for both layouts: Lines is the flattened
// single-column form in original edit-script order, Rows the two-column
// form. Both are derived from the same pairing so highlights agree.
type HunkView struct {
	Hunk  *DiffHunk
	Lines []LineView
	Rows  []PairedRow
}

// CollapsedView is a collapsed region plus its current state. Lines holds
// the region's AllProvisions slice and is only populated when the region is
// expanded; expanded context renders verbatim and unhighlighted.
type CollapsedView struct {
	Index    int
	Start    int
	End      int
	Expanded bool
	Lines    []DiffLine
}

// RegionView is one renderable region in either layout. Exactly one of Hunk
// and Collapsed is non-nil.
type RegionView struct {
	Hunk      *HunkView
	Collapsed *CollapsedView
}

// Assembled is the complete rendering model for one section. Regions are in
// document order and shared between the single-column and two-column
// layouts; only the per-hunk representation differs. Empty Regions means no
// text changes were detected (the section may still carry amendments that
// had no textual effect).
type Assembled struct {
	ID             string
	Citation       string
	Heading        string
	Amendments     []Amendment
	Regions        []RegionView
	CollapsedCount int
}

// Changed reports whether the section has any textual changes.
func (a Assembled) Changed() bool { return len(a.Regions) > 0 }

// Assemble computes the full rendering model for one section. It is a pure
// function of the section and the caller-owned expand state: repeated calls
// with equal inputs yield equal output, and nothing in sd is mutated.
func Assemble(sd SectionDiff, expanded ExpandedSet) Assembled {
	sel := NewSelector(sd.Amendments)
	regions := BuildRegions(sd.Hunks, sd.AllProvisions)

	out := Assembled{
		ID:         sd.ID,
		Citation:   sd.Citation,
		Heading:    sd.Heading,
		Amendments: sd.Amendments,
	}
	for _, region := range regions {
		if region.Collapsed != nil {
			out.Regions = append(out.Regions, RegionView{
				Collapsed: collapsedView(*region.Collapsed, sd.AllProvisions, expanded),
			})
			out.CollapsedCount++
			continue
		}
		out.Regions = append(out.Regions, RegionView{
			Hunk: hunkView(region.Hunk, sel),
		})
	}
	return out
}

func hunkView(h *DiffHunk, sel *Selector) *HunkView {
	idx := pairIndices(h.Lines)
	view := &HunkView{
		Hunk:  h,
		Lines: make([]LineView, len(h.Lines)),
		Rows:  make([]PairedRow, 0, len(idx)),
	}

	// Counterpart of each line under the positional pairing, for the
	// single-column highlight fallback.
	counterpart := make([]int, len(h.Lines))
	for i := range counterpart {
		counterpart[i] = -1
	}

	for _, p := range idx {
		var row PairedRow
		if p.left >= 0 {
			row.Left = &h.Lines[p.left]
		}
		if p.right >= 0 {
			row.Right = &h.Lines[p.right]
		}
		if p.left >= 0 && p.right >= 0 && p.left != p.right {
			counterpart[p.left] = p.right
			counterpart[p.right] = p.left
		}
		if row.Left != nil && row.Left.Kind == LineRemoved {
			row.LeftHighlights = sel.Select(*row.Left, row.Right)
		}
		if row.Right != nil && row.Right.Kind == LineAdded {
			row.RightHighlights = sel.Select(*row.Right, row.Left)
		}
		view.Rows = append(view.Rows, row)
	}

	for i, line := range h.Lines {
		lv := LineView{Line: line}
		if line.Kind != LineContext {
			var other *DiffLine
			if counterpart[i] >= 0 {
				other = &h.Lines[counterpart[i]]
			}
			lv.Highlights = sel.Select(line, other)
		}
		view.Lines[i] = lv
	}
	return view
}

func collapsedView(c Collapsed, provisions []DiffLine, expanded ExpandedSet) *CollapsedView {
	view := &CollapsedView{
		Index:    c.Index,
		Start:    c.Start,
		End:      c.End,
		Expanded: expanded.Has(c.Index),
	}
	if view.Expanded {
		start, end := c.Start, c.End
		if start < 0 {
			start = 0
		}
		if end > len(provisions)-1 {
			end = len(provisions) - 1
		}
		if start <= end {
			view.Lines = provisions[start : end+1]
		}
	}
	return view
}
