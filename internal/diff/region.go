package diff

// BuildRegions partitions a section's full line sequence into hunk-covered
// regions and collapsed unchanged regions, in order. The union of all
// regions covers [0, len(provisions)-1] exactly, with no gaps or overlaps.
//
// A hunk's coverage is derived from the NewLineNo of its non-removed lines,
// looked up against provisions. Missing or inconsistent line numbers widen
// the coverage defensively (start of sequence / end of sequence) instead of
// failing. Zero hunks produce zero regions; the caller reports that as "no
// text changes detected".
func BuildRegions(hunks []DiffHunk, provisions []DiffLine) []Region {
	if len(hunks) == 0 {
		return nil
	}
	if len(provisions) == 0 {
		// Nothing to collapse; every hunk is its own region.
		regions := make([]Region, 0, len(hunks))
		for i := range hunks {
			regions = append(regions, Region{Hunk: &hunks[i]})
		}
		return regions
	}

	lineIndex := make(map[int]int, len(provisions))
	for i, line := range provisions {
		if line.NewLineNo > 0 {
			lineIndex[line.NewLineNo] = i
		}
	}

	var regions []Region
	lastEnd := -1
	collapsedIndex := 0

	emitCollapsed := func(start, end int) {
		regions = append(regions, Region{Collapsed: &Collapsed{
			Start: start,
			End:   end,
			Index: collapsedIndex,
		}})
		collapsedIndex++
	}

	for h := range hunks {
		start, end := hunkCoverage(&hunks[h], lineIndex, len(provisions))
		if start > lastEnd+1 {
			emitCollapsed(lastEnd+1, start-1)
		}
		regions = append(regions, Region{Hunk: &hunks[h]})
		if end > lastEnd {
			lastEnd = end
		}
	}

	if lastEnd < len(provisions)-1 {
		emitCollapsed(lastEnd+1, len(provisions)-1)
	}
	return regions
}

// hunkCoverage returns the inclusive [start, end] index range of provisions
// covered by one hunk. n is len(provisions).
func hunkCoverage(h *DiffHunk, lineIndex map[int]int, n int) (int, int) {
	firstNo, lastNo := 0, 0
	for _, line := range h.Lines {
		if line.Kind == LineRemoved || line.NewLineNo <= 0 {
			continue
		}
		if firstNo == 0 {
			firstNo = line.NewLineNo
		}
		lastNo = line.NewLineNo
	}

	start := 0
	if idx, ok := lineIndex[firstNo]; ok {
		start = idx
	}
	end := n - 1
	if idx, ok := lineIndex[lastNo]; ok {
		end = idx
	}

	// Clamp any inconsistency to valid bounds.
	if start < 0 {
		start = 0
	}
	if end > n-1 {
		end = n - 1
	}
	if end < start {
		end = start
	}
	return start, end
}
