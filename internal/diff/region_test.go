package diff

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func provisions(n int) []DiffLine {
	lines := make([]DiffLine, n)
	for i := range lines {
		lines[i] = DiffLine{
			Kind:      LineContext,
			OldLineNo: i + 1,
			NewLineNo: i + 1,
			Content:   "provision text",
		}
	}
	return lines
}

// hunkAt builds a hunk whose non-removed lines span new line numbers
// [first, last].
func hunkAt(first, last int) DiffHunk {
	h := DiffHunk{OldStart: first, NewStart: first}
	for no := first; no <= last; no++ {
		h.Lines = append(h.Lines, DiffLine{
			Kind:      LineAdded,
			NewLineNo: no,
			Content:   "amended text",
		})
	}
	return h
}

func TestBuildRegionsSingleHunk(t *testing.T) {
	t.Parallel()

	// Ten provisions, one hunk over new lines 4-6: collapsed head, the
	// hunk, collapsed tail.
	hunks := []DiffHunk{hunkAt(4, 6)}
	regions := BuildRegions(hunks, provisions(10))
	require.Len(t, regions, 3)

	require.True(t, regions[0].IsCollapsed())
	assert.Equal(t, Collapsed{Start: 0, End: 2, Index: 0}, *regions[0].Collapsed)

	require.False(t, regions[1].IsCollapsed())
	assert.Equal(t, &hunks[0], regions[1].Hunk)

	require.True(t, regions[2].IsCollapsed())
	assert.Equal(t, Collapsed{Start: 6, End: 9, Index: 1}, *regions[2].Collapsed)
}

func TestBuildRegionsZeroHunks(t *testing.T) {
	t.Parallel()

	assert.Empty(t, BuildRegions(nil, provisions(10)))
	assert.Empty(t, BuildRegions([]DiffHunk{}, provisions(10)))
}

func TestBuildRegionsHunkAtEdges(t *testing.T) {
	t.Parallel()

	// Hunk starting at line 1 produces no leading collapsed region.
	regions := BuildRegions([]DiffHunk{hunkAt(1, 2)}, provisions(5))
	require.Len(t, regions, 2)
	assert.False(t, regions[0].IsCollapsed())
	assert.Equal(t, Collapsed{Start: 2, End: 4, Index: 0}, *regions[1].Collapsed)

	// Hunk ending at the last line produces no trailing collapsed region.
	regions = BuildRegions([]DiffHunk{hunkAt(4, 5)}, provisions(5))
	require.Len(t, regions, 2)
	assert.True(t, regions[0].IsCollapsed())
	assert.False(t, regions[1].IsCollapsed())
}

func TestBuildRegionsAdjacentHunks(t *testing.T) {
	t.Parallel()

	// Hunks covering 2-3 and 4-5 leave no room for a collapsed region
	// between them.
	hunks := []DiffHunk{hunkAt(2, 3), hunkAt(4, 5)}
	regions := BuildRegions(hunks, provisions(8))
	require.Len(t, regions, 4)
	assert.True(t, regions[0].IsCollapsed())
	assert.False(t, regions[1].IsCollapsed())
	assert.False(t, regions[2].IsCollapsed())
	assert.True(t, regions[3].IsCollapsed())
	assert.Equal(t, Collapsed{Start: 5, End: 7, Index: 1}, *regions[3].Collapsed)
}

func TestBuildRegionsRemovedOnlyHunkWidensDefensively(t *testing.T) {
	t.Parallel()

	// A hunk with only removed lines has no anchor in the current text;
	// coverage defaults to the whole sequence rather than failing.
	h := DiffHunk{OldStart: 3, NewStart: 3, Lines: []DiffLine{
		{Kind: LineRemoved, OldLineNo: 3, Content: "struck provision"},
	}}
	regions := BuildRegions([]DiffHunk{h}, provisions(6))
	require.Len(t, regions, 1)
	assert.False(t, regions[0].IsCollapsed())
}

func TestBuildRegionsEmptyProvisions(t *testing.T) {
	t.Parallel()

	regions := BuildRegions([]DiffHunk{hunkAt(1, 2)}, nil)
	require.Len(t, regions, 1)
	assert.False(t, regions[0].IsCollapsed())
}

// The collapsed regions and hunk coverages must exactly partition the
// provision index space: no gaps, no overlaps.
func TestBuildRegionsPartitionProperty(t *testing.T) {
	t.Parallel()

	cases := [][]DiffHunk{
		{hunkAt(4, 6)},
		{hunkAt(1, 1), hunkAt(10, 12), hunkAt(20, 20)},
		{hunkAt(2, 3), hunkAt(4, 5), hunkAt(18, 20)},
		{hunkAt(1, 20)},
	}
	const n = 20

	for _, hunks := range cases {
		regions := BuildRegions(hunks, provisions(n))

		covered := make([]bool, n)
		mark := func(start, end int) {
			for i := start; i <= end; i++ {
				covered[i] = true
			}
		}
		lineIndex := make(map[int]int, n)
		for i, line := range provisions(n) {
			lineIndex[line.NewLineNo] = i
		}
		for _, region := range regions {
			if region.Collapsed != nil {
				for i := region.Collapsed.Start; i <= region.Collapsed.End; i++ {
					assert.False(t, covered[i], "index %d covered twice", i)
				}
				mark(region.Collapsed.Start, region.Collapsed.End)
				continue
			}
			start, end := hunkCoverage(region.Hunk, lineIndex, n)
			mark(start, end)
		}
		for i, ok := range covered {
			assert.True(t, ok, "index %d uncovered", i)
		}
	}
}
