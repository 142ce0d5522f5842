package help

import (
	"fmt"
	"strings"

	"github.com/amonks/findpage/internal/color"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
)

type Menu []Section

type Section struct {
	Title string
	Keys  []Key
}

type Key struct {
	Keys string
	Desc string
}

// FromBindings builds a section out of the help text of key bindings.
// Disabled bindings are left out.
func FromBindings(title string, bindings ...key.Binding) Section {
	s := Section{Title: title}
	for _, b := range bindings {
		if !b.Enabled() {
			continue
		}
		h := b.Help()
		s.Keys = append(s.Keys, Key{Keys: h.Key, Desc: h.Desc})
	}
	return s
}

var (
	Monochrome = &Styles{
		Container: lipgloss.NewStyle(),
		Header:    lipgloss.NewStyle().Transform(strings.ToUpper),
		Keys:      lipgloss.NewStyle().Bold(true),
		Desc:      lipgloss.NewStyle().Italic(true),
	}
	Colored = &Styles{
		Container: lipgloss.NewStyle().
			Padding(1, 2),
		Header: lipgloss.NewStyle().
			Underline(true).
			Bold(true).
			MarginBottom(1).
			Foreground(color.Yellow),
		Keys: lipgloss.NewStyle().Bold(true).
			Foreground(color.XLight),
		Desc: lipgloss.NewStyle().Italic(true).
			Foreground(color.XXXLight),
	}
)

type Styles struct {
	Container lipgloss.Style
	Header    lipgloss.Style
	Keys      lipgloss.Style
	Desc      lipgloss.Style
}

// Render lays the menu out as a column, one key per line, clipped to the
// given area.
func (m Menu) Render(styles *Styles, width, height int) string {
	var out strings.Builder
	var longest int
	for _, section := range m {
		for _, k := range section.Keys {
			if l := lipgloss.Width(k.Keys); l > longest {
				longest = l
			}
		}
	}
	for _, section := range m {
		out.WriteString(styles.Header.Render(section.Title) + "\n")
		for _, k := range section.Keys {
			pad := strings.Repeat(" ", longest-lipgloss.Width(k.Keys))
			out.WriteString(fmt.Sprintf("  %s%s %s\n", styles.Keys.Render(k.Keys), pad, styles.Desc.Render(k.Desc)))
		}
		out.WriteString("\n")
	}
	return styles.Container.MaxWidth(width).MaxHeight(height).Render(out.String())
}

// Render lays the section's keys out inline, as many per line as fit.
func (s Section) Render(styles *Styles, width, height int) string {
	var out strings.Builder
	i := 0
	for range height {
		lineLength := 0
		for ; i < len(s.Keys); i++ {
			k := s.Keys[i]
			rendered := fmt.Sprintf("%s: %s", styles.Keys.Render(k.Keys), styles.Desc.Render(k.Desc))
			if lineLength+lipgloss.Width(rendered)+4 > width {
				break
			}
			lineLength += lipgloss.Width(rendered) + 4
			out.WriteString(rendered + "    ")
		}
		out.WriteString("\n")
	}
	return out.String()
}
