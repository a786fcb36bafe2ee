package render

import (
	catppuccin "github.com/catppuccin/go"
	"github.com/charmbracelet/lipgloss"
)

// Theme holds the colors for the amendment diff view. Light values come
// from Catppuccin Latte, dark values from Mocha, with hand-tuned subtle
// backgrounds for the line fills.
type Theme struct {
	Text      lipgloss.AdaptiveColor
	TextMuted lipgloss.AdaptiveColor

	DiffAdded            lipgloss.AdaptiveColor
	DiffRemoved          lipgloss.AdaptiveColor
	DiffAddedBg          lipgloss.AdaptiveColor
	DiffRemovedBg        lipgloss.AdaptiveColor
	DiffContextBg        lipgloss.AdaptiveColor
	DiffHighlightAdded   lipgloss.AdaptiveColor
	DiffHighlightRemoved lipgloss.AdaptiveColor
	DiffLineNumber       lipgloss.AdaptiveColor

	HeaderBg    lipgloss.AdaptiveColor
	CollapsedFg lipgloss.AdaptiveColor
	ReviewFlag  lipgloss.AdaptiveColor
}

// DefaultTheme returns the standard lawdiff palette.
func DefaultTheme() Theme {
	latte := catppuccin.Latte
	mocha := catppuccin.Mocha

	return Theme{
		Text:      adaptive(latte.Text(), mocha.Text()),
		TextMuted: adaptive(latte.Subtext0(), mocha.Subtext0()),

		DiffAdded:   adaptive(latte.Green(), mocha.Green()),
		DiffRemoved: adaptive(latte.Red(), mocha.Red()),
		DiffAddedBg: lipgloss.AdaptiveColor{
			Light: "#e8f3e8",
			Dark:  "#2b3524",
		},
		DiffRemovedBg: lipgloss.AdaptiveColor{
			Light: "#f7e8e8",
			Dark:  "#3a2b2b",
		},
		DiffContextBg: adaptive(latte.Base(), mocha.Base()),
		DiffHighlightAdded: lipgloss.AdaptiveColor{
			Light: "#a6d0a6",
			Dark:  "#4a6b3a",
		},
		DiffHighlightRemoved: lipgloss.AdaptiveColor{
			Light: "#e0b0b0",
			Dark:  "#6b3a3a",
		},
		DiffLineNumber: adaptive(latte.Overlay0(), mocha.Overlay0()),

		HeaderBg:    adaptive(latte.Surface0(), mocha.Surface0()),
		CollapsedFg: adaptive(latte.Overlay1(), mocha.Overlay1()),
		ReviewFlag:  adaptive(latte.Peach(), mocha.Peach()),
	}
}

func adaptive(light, dark catppuccin.Color) lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: light.Hex, Dark: dark.Hex}
}
