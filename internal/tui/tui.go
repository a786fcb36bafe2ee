// Package tui is the interactive viewer for a section diff. It wraps the
// renderer in a scrollable viewport and drives expand state through the
// state manager, re-rendering on every toggle event.
package tui

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/statutedb/lawdiff/internal/diff"
	"github.com/statutedb/lawdiff/internal/pubsub"
	"github.com/statutedb/lawdiff/internal/render"
	"github.com/statutedb/lawdiff/internal/state"
)

type keyMap struct {
	Quit         key.Binding
	ToggleLayout key.Binding
	Toggle       key.Binding
	NextRegion   key.Binding
	PrevRegion   key.Binding
	ExpandAll    key.Binding
	Granular     key.Binding
}

const quitKey = "q"

var keys = keyMap{
	Quit: key.NewBinding(
		key.WithKeys(quitKey, "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
	ToggleLayout: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "layout"),
	),
	Toggle: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "expand/collapse"),
	),
	NextRegion: key.NewBinding(
		key.WithKeys("n"),
		key.WithHelp("n", "next region"),
	),
	PrevRegion: key.NewBinding(
		key.WithKeys("p"),
		key.WithHelp("p", "prev region"),
	),
	ExpandAll: key.NewBinding(
		key.WithKeys("a"),
		key.WithHelp("a", "expand all"),
	),
	Granular: key.NewBinding(
		key.WithKeys("g"),
		key.WithHelp("g", "granular"),
	),
}

type toggleMsg state.ToggleEvent

type model struct {
	section diff.SectionDiff
	manager *state.Manager
	events  <-chan pubsub.Event[state.ToggleEvent]
	cancel  context.CancelFunc

	viewport viewport.Model
	width    int
	height   int

	layout   render.Layout
	granular bool
	theme    render.Theme

	// cursor over collapsed regions, by collapsed index
	focused int

	assembled diff.Assembled
	ready     bool
}

// New creates the viewer model for one section.
func New(section diff.SectionDiff, layout render.Layout, granular bool) tea.Model {
	manager := state.NewManager(section.ID)
	ctx, cancel := context.WithCancel(context.Background())

	return model{
		section:  section,
		manager:  manager,
		events:   manager.Subscribe(ctx),
		cancel:   cancel,
		layout:   layout,
		granular: granular,
		theme:    render.DefaultTheme(),
	}
}

func (m model) Init() tea.Cmd {
	return m.waitForToggle()
}

// waitForToggle turns the manager's pubsub stream into bubbletea messages.
func (m model) waitForToggle() tea.Cmd {
	return func() tea.Msg {
		event, ok := <-m.events
		if !ok {
			return nil
		}
		return toggleMsg(event.Payload)
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if !m.ready {
			m.viewport = viewport.New(msg.Width, msg.Height-2)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = msg.Height - 2
		}
		m.refresh()
		return m, nil

	case toggleMsg:
		slog.Debug("region toggled",
			"section_id", msg.SectionID,
			"region", msg.Region,
			"expanded", msg.Expanded)
		m.refresh()
		return m, m.waitForToggle()

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			m.cancel()
			m.manager.Shutdown()
			return m, tea.Quit

		case key.Matches(msg, keys.ToggleLayout):
			if m.layout == render.LayoutUnified {
				m.layout = render.LayoutSplit
			} else {
				m.layout = render.LayoutUnified
			}
			m.refresh()
			return m, nil

		case key.Matches(msg, keys.Granular):
			m.granular = !m.granular
			m.refresh()
			return m, nil

		case key.Matches(msg, keys.Toggle):
			if m.assembled.CollapsedCount > 0 {
				m.manager.Toggle(m.focused)
			}
			return m, nil

		case key.Matches(msg, keys.NextRegion):
			if m.assembled.CollapsedCount > 0 {
				m.focused = (m.focused + 1) % m.assembled.CollapsedCount
			}
			return m, nil

		case key.Matches(msg, keys.PrevRegion):
			if m.assembled.CollapsedCount > 0 {
				m.focused = (m.focused - 1 + m.assembled.CollapsedCount) % m.assembled.CollapsedCount
			}
			return m, nil

		case key.Matches(msg, keys.ExpandAll):
			m.manager.ExpandAll(m.assembled.CollapsedCount)
			m.refresh()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// refresh re-assembles and re-renders the section into the viewport.
func (m *model) refresh() {
	if !m.ready {
		return
	}
	m.assembled = diff.Assemble(m.section, m.manager.Expanded())
	r := render.New(
		render.WithWidth(m.width),
		render.WithLayout(m.layout),
		render.WithGranular(m.granular),
		render.WithTheme(m.theme),
	)
	m.viewport.SetContent(r.Section(m.assembled))
}

func (m model) View() string {
	if !m.ready {
		return "loading..."
	}
	return m.viewport.View() + "\n" + m.statusLine()
}

func (m model) statusLine() string {
	muted := lipgloss.NewStyle().Foreground(m.theme.TextMuted)

	status := fmt.Sprintf(" %s layout", m.layout)
	if m.granular {
		status += " · granular"
	}
	if m.assembled.CollapsedCount > 0 {
		status += fmt.Sprintf(" · region %d/%d", m.focused+1, m.assembled.CollapsedCount)
	}
	hints := " q quit · tab layout · enter expand · n/p region · a all · g granular"

	return muted.Render(status) + "\n" + muted.Render(hints)
}
