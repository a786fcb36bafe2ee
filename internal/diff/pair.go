package diff

// pairing maps hunk line indices into two-column rows: each entry holds the
// index of the left and right line in the hunk's Lines slice, or -1 for an
// empty cell.
type pairing struct {
	left  int
	right int
}

// pairIndices groups a hunk's flat line sequence into two-column rows.
// Context lines map 1:1. A removed run and the added run immediately
// following it are zipped positionally: index i of the removed run pairs
// with index i of the added run, and the shorter run is padded with empty
// cells. A standalone added run produces right-only rows.
//
// Pairing is strictly positional, not similarity-based. When a hunk replaces
// N lines with M reordered lines the rows can pair unrelated text; the
// inline highlight suppression keeps such rows from lighting up wholesale.
func pairIndices(lines []DiffLine) []pairing {
	var rows []pairing
	i := 0
	for i < len(lines) {
		switch lines[i].Kind {
		case LineRemoved:
			removed := []int{}
			for i < len(lines) && lines[i].Kind == LineRemoved {
				removed = append(removed, i)
				i++
			}
			added := []int{}
			for i < len(lines) && lines[i].Kind == LineAdded {
				added = append(added, i)
				i++
			}
			for j := 0; j < max(len(removed), len(added)); j++ {
				p := pairing{left: -1, right: -1}
				if j < len(removed) {
					p.left = removed[j]
				}
				if j < len(added) {
					p.right = added[j]
				}
				rows = append(rows, p)
			}
		case LineAdded:
			rows = append(rows, pairing{left: -1, right: i})
			i++
		default:
			rows = append(rows, pairing{left: i, right: i})
			i++
		}
	}
	return rows
}

// PairLines converts a hunk's flat line list into ordered two-column rows
// with highlights chosen by sel. Every input line appears in exactly one
// row. A nil selector behaves like a selector with no amendments.
func PairLines(lines []DiffLine, sel *Selector) []PairedRow {
	if sel == nil {
		sel = NewSelector(nil)
	}
	idx := pairIndices(lines)
	rows := make([]PairedRow, 0, len(idx))
	for _, p := range idx {
		var row PairedRow
		if p.left >= 0 {
			row.Left = &lines[p.left]
		}
		if p.right >= 0 {
			row.Right = &lines[p.right]
		}
		if row.Left != nil && row.Left.Kind == LineRemoved {
			row.LeftHighlights = sel.Select(*row.Left, row.Right)
		}
		if row.Right != nil && row.Right.Kind == LineAdded {
			row.RightHighlights = sel.Select(*row.Right, row.Left)
		}
		rows = append(rows, row)
	}
	return rows
}
