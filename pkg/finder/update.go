package finder

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"
)

const (
	zonePrevious = "finder-previous"
	zoneNext     = "finder-next"
)

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetDimensions(msg.Width, msg.Height)
	case searchMsg:
		m.runPending(msg)
	case ReloadMsg:
		m.Reload(msg.Document)
	case tea.KeyMsg:
		return m, m.handleKey(msg)
	case tea.MouseMsg:
		m.handleMouse(msg)
	default:
		newInput, cmd := m.input.Update(msg)
		m.input = &newInput
		return m, cmd
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if m.showHelp {
		switch msg.String() {
		case "esc", "ctrl+c", "q", "h", "?":
			m.showHelp = false
		}
		return nil
	}

	if m.state != StateClosed {
		switch {
		case key.Matches(msg, m.keys.Close):
			m.Close()
		case key.Matches(msg, m.keys.Next):
			// Enter runs a search that is still waiting out the
			// debounce instead of stepping past it.
			if m.pending != nil {
				m.runPending(*m.pending)
			} else {
				m.Next()
			}
		case key.Matches(msg, m.keys.Previous):
			m.Previous()
		case key.Matches(msg, m.keys.Regexp):
			m.SetPatterns(!m.patterns)
		case msg.Type == tea.KeyPgUp, msg.Type == tea.KeyPgDown:
			m.scrollKey(msg)
		default:
			queryBefore := m.input.Value()
			newInput, cmd := m.input.Update(msg)
			m.input = &newInput
			if newInput.Value() != queryBefore {
				return tea.Batch(cmd, m.handleQueryChange())
			}
			return cmd
		}
		return nil
	}

	switch {
	case key.Matches(msg, m.keys.Open):
		return m.Open()
	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
	case key.Matches(msg, m.keys.Quit):
		return tea.Quit
	default:
		m.scrollKey(msg)
	}
	return nil
}

func (m *Model) scrollKey(msg tea.KeyMsg) {
	switch {
	case key.Matches(msg, m.keys.Up):
		m.ScrollBy(-1)
	case key.Matches(msg, m.keys.Down):
		m.ScrollBy(1)
	case key.Matches(msg, m.keys.PageUp):
		m.ScrollBy(-m.paneHeight())
	case key.Matches(msg, m.keys.PageDown):
		m.ScrollBy(m.paneHeight())
	case key.Matches(msg, m.keys.Top):
		m.ScrollTo(0)
	case key.Matches(msg, m.keys.Bottom):
		m.ScrollTo(len(m.lines))
	}
}

func (m *Model) handleMouse(msg tea.MouseMsg) {
	switch msg.Button {
	case tea.MouseButtonWheelDown:
		m.ScrollBy(1)
	case tea.MouseButtonWheelUp:
		m.ScrollBy(-1)
	case tea.MouseButtonLeft:
		if msg.Action != tea.MouseActionPress || m.state == StateClosed {
			return
		}
		if zone.Get(zonePrevious).InBounds(msg) {
			m.Previous()
		} else if zone.Get(zoneNext).InBounds(msg) {
			m.Next()
		}
	}
}

// handleQueryChange schedules a search for the query now in the input.
// An empty query is cleared right away.
func (m *Model) handleQueryChange() tea.Cmd {
	m.gen++
	query := m.input.Value()

	if strings.TrimSpace(query) == "" {
		m.pending = nil
		m.session.Clear()
		m.state = StateIdle
		m.layout()
		return nil
	}

	msg := searchMsg{gen: m.gen, query: query}
	m.pending = &msg
	if m.debounce <= 0 {
		m.runPending(msg)
		return nil
	}
	return tea.Tick(m.debounce, func(time.Time) tea.Msg { return msg })
}

// runPending runs a scheduled search, unless a newer query or a close has
// superseded it.
func (m *Model) runPending(msg searchMsg) {
	if m.pending == nil || m.pending.gen != msg.gen || m.state == StateClosed {
		m.logger.Printf("search: dropped stale query %q (gen %d, latest %d)", msg.query, msg.gen, m.gen)
		return
	}
	m.pending = nil
	m.search(msg.query)
}

func (m *Model) search(query string) {
	before := m.session.MatchSet()
	m.session.Search(query)
	if m.session.MatchSet() != before {
		m.runs++
	}
	if m.session.Query().Empty() {
		m.state = StateIdle
	} else {
		m.state = StateSearching
	}
	m.logger.Printf("search: %q -> %s", query, m.session.Status())
	m.layout()
}

func (m *Model) ScrollBy(lines int) {
	m.ScrollTo(m.scrollPosition + lines)
}

func (m *Model) ScrollTo(line int) {
	m.scrollPosition = clamp(0, m.maxScroll(), line)
}

func (m *Model) maxScroll() int {
	return max(0, len(m.lines)-m.paneHeight())
}

func (m *Model) paneHeight() int {
	return max(m.height-1, 0)
}
