package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/statutedb/lawdiff/internal/diff"
	"github.com/statutedb/lawdiff/internal/render"
)

func testSection() diff.SectionDiff {
	return diff.SectionDiff{
		ID:       "sec-201",
		Citation: "18 U.S.C. 201",
		Hunks: []diff.DiffHunk{
			{
				OldStart: 2,
				NewStart: 2,
				Lines: []diff.DiffLine{
					{OldLineNo: 2, Kind: diff.LineRemoved, Content: "fined under this title"},
					{NewLineNo: 2, Kind: diff.LineAdded, Content: "fined under this chapter"},
				},
			},
		},
		AllProvisions: []diff.DiffLine{
			{NewLineNo: 1, Kind: diff.LineContext, Content: "Sec. 201. Bribery."},
			{NewLineNo: 2, Kind: diff.LineContext, Content: "fined under this chapter"},
			{NewLineNo: 3, Kind: diff.LineContext, Content: "(b) Definitions."},
			{NewLineNo: 4, Kind: diff.LineContext, Content: "(c) Exceptions."},
		},
	}
}

func sized(t *testing.T) model {
	t.Helper()
	m := New(testSection(), render.LayoutUnified, false)
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	out, ok := updated.(model)
	require.True(t, ok)
	return out
}

func TestViewAfterResize(t *testing.T) {
	t.Parallel()

	m := sized(t)
	view := m.View()
	assert.Contains(t, view, "18 U.S.C. 201")
	assert.Contains(t, view, "layout")
}

func TestLayoutToggle(t *testing.T) {
	t.Parallel()

	m := sized(t)
	assert.Equal(t, render.LayoutUnified, m.layout)

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = updated.(model)
	assert.Equal(t, render.LayoutSplit, m.layout)

	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = updated.(model)
	assert.Equal(t, render.LayoutUnified, m.layout)
}

func TestRegionCursorWraps(t *testing.T) {
	t.Parallel()

	m := sized(t)
	require.Equal(t, 2, m.assembled.CollapsedCount)

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'n'}})
	m = updated.(model)
	assert.Equal(t, 1, m.focused)

	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'n'}})
	m = updated.(model)
	assert.Equal(t, 0, m.focused)

	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'p'}})
	m = updated.(model)
	assert.Equal(t, 1, m.focused)
}

func TestQuit(t *testing.T) {
	t.Parallel()

	m := sized(t)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}
