// Package render turns the engine's assembled model into styled terminal
// output. It supports the two equivalent layouts (unified and split) over
// the same region sequence; collapsed regions render as a one-line expand
// affordance until their index appears in the expand state.
package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/statutedb/lawdiff/internal/diff"
)

// Layout selects how hunks are drawn.
type Layout string

const (
	LayoutUnified Layout = "unified"
	LayoutSplit   Layout = "split"
)

// IsValid reports whether the layout is a known value.
func (l Layout) IsValid() bool { return l == LayoutUnified || l == LayoutSplit }

// Config configures a Renderer.
type Config struct {
	Width    int
	Layout   Layout
	Granular bool
	Theme    Theme
}

// Option modifies a Config.
type Option func(*Config)

// WithWidth sets the total output width.
func WithWidth(width int) Option {
	return func(c *Config) {
		if width > 0 {
			c.Width = width
		}
	}
}

// WithLayout selects the hunk layout.
func WithLayout(layout Layout) Option {
	return func(c *Config) {
		if layout.IsValid() {
			c.Layout = layout
		}
	}
}

// WithGranular enables character-level difference segments on paired rows
// instead of the single narrowed range.
func WithGranular(granular bool) Option {
	return func(c *Config) { c.Granular = granular }
}

// WithTheme overrides the color theme.
func WithTheme(t Theme) Option {
	return func(c *Config) { c.Theme = t }
}

// Renderer draws assembled sections. The zero value is not usable; call New.
type Renderer struct {
	cfg Config
}

// New creates a Renderer with defaults: 120 columns, unified layout.
func New(opts ...Option) Renderer {
	cfg := Config{
		Width:  120,
		Layout: LayoutUnified,
		Theme:  DefaultTheme(),
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return Renderer{cfg: cfg}
}

// Section renders one assembled section, header and amendments included.
func (r Renderer) Section(a diff.Assembled) string {
	t := r.cfg.Theme
	var sb strings.Builder

	header := a.Citation
	if a.Heading != "" {
		header += " — " + a.Heading
	}
	if header == "" {
		header = a.ID
	}
	sb.WriteString(lipgloss.NewStyle().
		Bold(true).
		Background(t.HeaderBg).
		Foreground(t.Text).
		Width(r.cfg.Width).
		Padding(0, 1).
		Render(header))
	sb.WriteString("\n")

	if !a.Changed() {
		sb.WriteString(lipgloss.NewStyle().
			Foreground(t.TextMuted).
			Italic(true).
			Padding(0, 1).
			Render("no text changes detected"))
		sb.WriteString("\n")
		sb.WriteString(r.amendments(a.Amendments))
		return sb.String()
	}

	for _, region := range a.Regions {
		if region.Collapsed != nil {
			sb.WriteString(r.collapsed(region.Collapsed))
			continue
		}
		if r.cfg.Layout == LayoutSplit {
			sb.WriteString(r.hunkSplit(region.Hunk))
		} else {
			sb.WriteString(r.hunkUnified(region.Hunk))
		}
	}

	sb.WriteString(r.amendments(a.Amendments))
	return sb.String()
}

// collapsed renders either the expand affordance or the revealed context.
func (r Renderer) collapsed(cv *diff.CollapsedView) string {
	t := r.cfg.Theme

	if !cv.Expanded {
		n := cv.End - cv.Start + 1
		label := fmt.Sprintf("··· %d unchanged line%s hidden · region %d ···",
			n, plural(n), cv.Index)
		return lipgloss.NewStyle().
			Foreground(t.CollapsedFg).
			Width(r.cfg.Width).
			Align(lipgloss.Center).
			Render(label) + "\n"
	}

	var sb strings.Builder
	for _, line := range cv.Lines {
		// Revealed context is verbatim and unhighlighted.
		sb.WriteString(r.unifiedLine(diff.LineView{Line: line}, r.cfg.Width))
		sb.WriteString("\n")
	}
	return sb.String()
}

func (r Renderer) hunkUnified(hv *diff.HunkView) string {
	var sb strings.Builder
	for _, lv := range hv.Lines {
		sb.WriteString(r.unifiedLine(lv, r.cfg.Width))
		sb.WriteString("\n")
	}
	return sb.String()
}

func (r Renderer) hunkSplit(hv *diff.HunkView) string {
	colWidth := r.cfg.Width / 2
	rightWidth := r.cfg.Width - colWidth

	var sb strings.Builder
	for _, row := range hv.Rows {
		left, right := row.LeftHighlights, row.RightHighlights
		if r.cfg.Granular && row.Left != nil && row.Right != nil &&
			row.Left.Kind == diff.LineRemoved && row.Right.Kind == diff.LineAdded {
			segments := diff.InlineSegments(row.Left.Content, row.Right.Content)
			left = diff.SegmentRanges(segments, diff.LineRemoved)
			right = diff.SegmentRanges(segments, diff.LineAdded)
		}
		sb.WriteString(r.column(row.Left, left, true, colWidth))
		sb.WriteString(r.column(row.Right, right, false, rightWidth))
		sb.WriteString("\n")
	}
	return sb.String()
}

// unifiedLine renders one line in the single-column layout with both line
// numbers, a change marker and highlight ranges.
func (r Renderer) unifiedLine(lv diff.LineView, width int) string {
	t := r.cfg.Theme
	line := lv.Line

	var marker string
	var lineNum string
	bg, hl := r.lineStyles(line.Kind)
	numStyle := lipgloss.NewStyle().Foreground(t.DiffLineNumber).Background(bg.GetBackground())

	switch line.Kind {
	case diff.LineRemoved:
		marker = "-"
		numStyle = numStyle.Foreground(t.DiffRemoved)
		lineNum = fmt.Sprintf("%5d      ", line.OldLineNo)
	case diff.LineAdded:
		marker = "+"
		numStyle = numStyle.Foreground(t.DiffAdded)
		lineNum = fmt.Sprintf("      %5d", line.NewLineNo)
	default:
		marker = " "
		lineNum = fmt.Sprintf("%5d %5d", line.OldLineNo, line.NewLineNo)
	}

	prefix := numStyle.Render(lineNum + " " + marker + " ")
	content := r.content(line.Content, lv.Highlights, bg, hl)

	return r.fit(prefix+content, width, bg)
}

// column renders one cell of a split row. A nil line is an empty cell.
func (r Renderer) column(line *diff.DiffLine, highlights []diff.Range, isLeft bool, colWidth int) string {
	t := r.cfg.Theme
	if line == nil {
		return lipgloss.NewStyle().
			Background(t.DiffContextBg).
			Width(colWidth).
			Render("")
	}

	bg, hl := r.lineStyles(line.Kind)
	numStyle := lipgloss.NewStyle().Foreground(t.DiffLineNumber).Background(bg.GetBackground())

	var marker string
	var lineNum string
	switch {
	case line.Kind == diff.LineRemoved && isLeft:
		marker = "-"
		numStyle = numStyle.Foreground(t.DiffRemoved)
		lineNum = fmt.Sprintf("%5d", line.OldLineNo)
	case line.Kind == diff.LineAdded && !isLeft:
		marker = "+"
		numStyle = numStyle.Foreground(t.DiffAdded)
		lineNum = fmt.Sprintf("%5d", line.NewLineNo)
	default:
		marker = " "
		if isLeft {
			lineNum = fmt.Sprintf("%5d", line.OldLineNo)
		} else {
			lineNum = fmt.Sprintf("%5d", line.NewLineNo)
		}
	}

	prefix := numStyle.Render(lineNum + " " + marker + " ")
	content := r.content(line.Content, highlights, bg, hl)

	return r.fit(prefix+content, colWidth, bg)
}

// fit truncates or pads styled text to exactly width cells. Padding keeps
// the line's background fill.
func (r Renderer) fit(styled string, width int, bg lipgloss.Style) string {
	styled = ansi.Truncate(styled, width, "…")
	if gap := width - ansi.StringWidth(styled); gap > 0 {
		styled += bg.Render(strings.Repeat(" ", gap))
	}
	return styled
}

// content styles a line's text, painting highlight ranges with the stronger
// background. Ranges are clamped to the content; offsets carried over from
// whitespace-normalized matching may drift slightly, which is tolerated.
func (r Renderer) content(content string, ranges []diff.Range, base, hl lipgloss.Style) string {
	if len(ranges) == 0 {
		return base.Render(content)
	}
	var sb strings.Builder
	pos := 0
	for _, rg := range ranges {
		if rg.Start < 0 {
			rg.Start = 0
		}
		if rg.End > len(content) {
			rg.End = len(content)
		}
		if rg.Start >= rg.End || rg.Start < pos {
			continue
		}
		if rg.Start > pos {
			sb.WriteString(base.Render(content[pos:rg.Start]))
		}
		sb.WriteString(hl.Render(content[rg.Start:rg.End]))
		pos = rg.End
	}
	if pos < len(content) {
		sb.WriteString(base.Render(content[pos:]))
	}
	return sb.String()
}

// lineStyles returns the base fill and highlight styles for a line kind.
func (r Renderer) lineStyles(kind diff.LineType) (base, highlight lipgloss.Style) {
	t := r.cfg.Theme
	switch kind {
	case diff.LineRemoved:
		base = lipgloss.NewStyle().Background(t.DiffRemovedBg).Foreground(t.Text)
		highlight = lipgloss.NewStyle().Background(t.DiffHighlightRemoved).Foreground(t.Text)
	case diff.LineAdded:
		base = lipgloss.NewStyle().Background(t.DiffAddedBg).Foreground(t.Text)
		highlight = lipgloss.NewStyle().Background(t.DiffHighlightAdded).Foreground(t.Text)
	default:
		base = lipgloss.NewStyle().Background(t.DiffContextBg).Foreground(t.TextMuted)
		highlight = base
	}
	return base, highlight
}

// amendments renders the section's amendment records below the diff.
func (r Renderer) amendments(list []diff.Amendment) string {
	if len(list) == 0 {
		return ""
	}
	t := r.cfg.Theme
	muted := lipgloss.NewStyle().Foreground(t.TextMuted)
	flag := lipgloss.NewStyle().Foreground(t.ReviewFlag).Bold(true)

	var sb strings.Builder
	sb.WriteString(muted.Render(fmt.Sprintf("%d amendment%s:", len(list), plural(len(list)))))
	sb.WriteString("\n")
	for _, a := range list {
		entry := fmt.Sprintf("  • %s [%s] confidence %.2f", a.PatternName, a.ChangeType, a.Confidence)
		line := muted.Render(entry)
		if a.NeedsReview {
			line += " " + flag.Render("needs review")
		}
		sb.WriteString(ansi.Truncate(line, r.cfg.Width, "…"))
		sb.WriteString("\n")
	}
	return sb.String()
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}
