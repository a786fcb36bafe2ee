package diff

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInlineSegments(t *testing.T) {
	t.Parallel()

	oldText := "shall be fined not more than $1,000"
	newText := "shall be fined not more than $2,500"

	segments := InlineSegments(oldText, newText)
	require.NotEmpty(t, segments)

	for _, s := range segments {
		assert.Less(t, s.Start, s.End)
		switch s.Kind {
		case LineRemoved:
			assert.Equal(t, s.Text, oldText[s.Start:s.End])
		case LineAdded:
			assert.Equal(t, s.Text, newText[s.Start:s.End])
		default:
			t.Fatalf("unexpected segment kind %v", s.Kind)
		}
	}
}

func TestInlineSegmentsEqualStrings(t *testing.T) {
	t.Parallel()

	assert.Empty(t, InlineSegments("identical", "identical"))
}

func TestSegmentRanges(t *testing.T) {
	t.Parallel()

	segments := []Segment{
		{Start: 0, End: 3, Kind: LineRemoved},
		{Start: 5, End: 8, Kind: LineAdded},
		{Start: 8, End: 10, Kind: LineAdded},
	}
	assert.Equal(t, []Range{{Start: 0, End: 3}}, SegmentRanges(segments, LineRemoved))
	assert.Equal(t, []Range{{Start: 5, End: 10}}, SegmentRanges(segments, LineAdded))
	assert.Empty(t, SegmentRanges(nil, LineAdded))
}
