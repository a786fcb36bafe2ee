package diff

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPairLinesContext(t *testing.T) {
	t.Parallel()

	lines := []DiffLine{
		{Kind: LineContext, OldLineNo: 1, NewLineNo: 1, Content: "Sec. 101. Definitions."},
	}
	rows := PairLines(lines, nil)
	require.Len(t, rows, 1)
	assert.Equal(t, &lines[0], rows[0].Left)
	assert.Equal(t, &lines[0], rows[0].Right)
	assert.Empty(t, rows[0].LeftHighlights)
	assert.Empty(t, rows[0].RightHighlights)
}

func TestPairLinesZipsRuns(t *testing.T) {
	t.Parallel()

	lines := []DiffLine{
		{Kind: LineContext, OldLineNo: 4, NewLineNo: 4, Content: "(a) In general."},
		{Kind: LineRemoved, OldLineNo: 5, Content: "subsection (a) of such section 30"},
		{Kind: LineRemoved, OldLineNo: 6, Content: "shall apply to fiscal year 2022"},
		{Kind: LineAdded, NewLineNo: 5, Content: "subsection (b) of such section 30"},
		{Kind: LineContext, OldLineNo: 7, NewLineNo: 6, Content: "(b) Exceptions."},
	}
	rows := PairLines(lines, NewSelector(nil))
	require.Len(t, rows, 4)

	// Row 0: context.
	assert.Equal(t, LineContext, rows[0].Left.Kind)

	// Row 1: first removed zipped with first added; scenario highlights.
	require.NotNil(t, rows[1].Left)
	require.NotNil(t, rows[1].Right)
	require.Len(t, rows[1].LeftHighlights, 1)
	require.Len(t, rows[1].RightHighlights, 1)
	l, r := rows[1].LeftHighlights[0], rows[1].RightHighlights[0]
	assert.Equal(t, "(a)", rows[1].Left.Content[l.Start:l.End])
	assert.Equal(t, "(b)", rows[1].Right.Content[r.Start:r.End])

	// Row 2: second removed has no counterpart.
	require.NotNil(t, rows[2].Left)
	assert.Nil(t, rows[2].Right)

	// Row 3: trailing context.
	assert.Equal(t, LineContext, rows[3].Left.Kind)
}

func TestPairLinesStandaloneAdded(t *testing.T) {
	t.Parallel()

	lines := []DiffLine{
		{Kind: LineContext, OldLineNo: 1, NewLineNo: 1, Content: "before"},
		{Kind: LineAdded, NewLineNo: 2, Content: "a newly inserted provision"},
	}
	rows := PairLines(lines, nil)
	require.Len(t, rows, 2)
	assert.Nil(t, rows[1].Left)
	require.NotNil(t, rows[1].Right)
	assert.Equal(t, "a newly inserted provision", rows[1].Right.Content)
}

func TestPairLinesAddedRunLongerThanRemoved(t *testing.T) {
	t.Parallel()

	lines := []DiffLine{
		{Kind: LineRemoved, OldLineNo: 1, Content: "old line"},
		{Kind: LineAdded, NewLineNo: 1, Content: "new line one"},
		{Kind: LineAdded, NewLineNo: 2, Content: "new line two"},
		{Kind: LineAdded, NewLineNo: 3, Content: "new line three"},
	}
	rows := PairLines(lines, nil)
	require.Len(t, rows, 3)
	assert.NotNil(t, rows[0].Left)
	assert.NotNil(t, rows[0].Right)
	assert.Nil(t, rows[1].Left)
	assert.Nil(t, rows[2].Left)
}

// Every input line must appear in exactly one row; none are dropped.
func TestPairLinesAccountsForEveryLine(t *testing.T) {
	t.Parallel()

	lines := []DiffLine{
		{Kind: LineRemoved, OldLineNo: 1, Content: "r1"},
		{Kind: LineRemoved, OldLineNo: 2, Content: "r2"},
		{Kind: LineRemoved, OldLineNo: 3, Content: "r3"},
		{Kind: LineAdded, NewLineNo: 1, Content: "a1"},
		{Kind: LineAdded, NewLineNo: 2, Content: "a2"},
		{Kind: LineContext, OldLineNo: 4, NewLineNo: 3, Content: "c1"},
		{Kind: LineAdded, NewLineNo: 4, Content: "a3"},
	}
	rows := PairLines(lines, nil)

	seen := make(map[string]int)
	for _, row := range rows {
		if row.Left != nil {
			seen[row.Left.Content]++
		}
		if row.Right != nil && row.Right != row.Left {
			seen[row.Right.Content]++
		}
	}
	for _, line := range lines {
		assert.Equal(t, 1, seen[line.Content], "line %q", line.Content)
	}
}
