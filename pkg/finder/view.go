package finder

import (
	"cmp"
	"strings"

	"github.com/amonks/findpage/internal/color"
	"github.com/amonks/findpage/internal/help"
	"github.com/amonks/findpage/pkg/htmltree"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
	"github.com/muesli/reflow/truncate"
	"github.com/muesli/reflow/wrap"
)

type Styles struct {
	Page      lipgloss.Style
	Hit       lipgloss.Style
	Active    lipgloss.Style
	Statusbar lipgloss.Style
	Button    lipgloss.Style
	Counter   lipgloss.Style
	Help      *help.Styles
}

var DefaultStyles = &Styles{
	Page: lipgloss.NewStyle(),
	Hit: lipgloss.NewStyle().
		Background(color.HitBackground).
		Foreground(color.HitForeground),
	Active: lipgloss.NewStyle().
		Background(color.ActiveBackground).
		Foreground(color.HitForeground).
		Bold(true),
	Statusbar: lipgloss.NewStyle().Foreground(color.XXLight),
	Button:    lipgloss.NewStyle().Bold(true).Foreground(color.Orange),
	Counter:   lipgloss.NewStyle().Foreground(color.XLight),
	Help:      help.Colored,
}

func (m *Model) View() string {
	return m.Render(m.width, m.height)
}

func (m *Model) Render(width, height int) string {
	// don't crash if window has zero area
	if width <= 0 || height <= 0 {
		return ""
	}

	if m.showHelp {
		return m.keys.helpmenu().Render(m.styles.Help, width, height)
	}

	pane := m.renderPane(width, m.paneHeight())
	if height < 2 {
		return zone.Scan(pane)
	}
	return zone.Scan(pane + "\n" + m.renderStatusbar(width))
}

func (m *Model) renderPane(width, height int) string {
	lines := make([]string, 0, height)
	for i := m.scrollPosition; i < len(m.lines) && len(lines) < height; i++ {
		lines = append(lines, m.lines[i])
	}
	for len(lines) < height {
		lines = append(lines, "")
	}
	return m.styles.Page.
		Width(width).MaxWidth(width).
		Height(height).MaxHeight(height).
		Render(strings.Join(lines, "\n"))
}

func (m *Model) renderStatusbar(width int) string {
	var out string
	if m.state == StateClosed {
		out = strings.TrimRight(m.keys.footer().Render(help.Monochrome, width, 1), "\n")
	} else {
		out = m.RenderSearchStatus()
	}
	return m.styles.Statusbar.
		Width(width).MaxWidth(width).
		Height(1).MaxHeight(1).
		Render(truncate.String(out, uint(width)))
}

// RenderSearchStatus renders the search bar: the query field, the
// previous and next buttons, and the match counter.
func (m *Model) RenderSearchStatus() string {
	var b strings.Builder
	b.WriteString(m.input.View())
	b.WriteString("  ")
	b.WriteString(zone.Mark(zonePrevious, m.styles.Button.Render("◀")))
	b.WriteString(" ")
	b.WriteString(zone.Mark(zoneNext, m.styles.Button.Render("▶")))
	b.WriteString("  ")
	b.WriteString(m.styles.Counter.Render(m.Status()))
	if m.patterns {
		b.WriteString(m.styles.Counter.Render(" (regexp)"))
	}
	return b.String()
}

// layout renders the document's lines for the current width, recording
// which line each marker lands on, and then scrolls to the marker that
// was most recently revealed.
func (m *Model) layout() {
	m.lines = m.lines[:0]
	m.markLines = map[*htmltree.Mark]int{}

	for _, line := range m.doc.Layout(m.skip) {
		start := len(m.lines)
		col := 0

		var b strings.Builder
		for _, span := range line {
			if span.Mark != nil {
				if _, seen := m.markLines[span.Mark]; !seen {
					m.markLines[span.Mark] = start + m.wrappedRow(col)
				}
			}
			b.WriteString(m.renderSpan(span))
			col += lipgloss.Width(span.Text)
		}

		rendered := b.String()
		if m.width > 0 {
			rendered = wrap.String(rendered, m.width)
		}
		m.lines = append(m.lines, strings.Split(rendered, "\n")...)
	}

	if m.revealing != nil {
		if mk, ok := m.revealing.(*htmltree.Mark); ok {
			if line, ok := m.markLines[mk]; ok {
				m.scrollPosition = line - m.paneHeight()/2
			}
		}
		m.revealing = nil
	}
	m.ScrollTo(m.scrollPosition)
}

func (m *Model) wrappedRow(col int) int {
	if m.width <= 0 {
		return 0
	}
	return col / m.width
}

func (m *Model) renderSpan(span htmltree.Span) string {
	switch {
	case span.Mark == nil:
		return span.Text
	case span.Mark.Current():
		return m.styles.Active.Render(span.Text)
	default:
		return m.styles.Hit.Render(span.Text)
	}
}

func clamp[T cmp.Ordered](lower, upper, val T) T {
	return max(lower, min(upper, val))
}
