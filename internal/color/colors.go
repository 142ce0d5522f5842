package color

import "github.com/charmbracelet/lipgloss"

// https://ethanschoonover.com/solarized/#the-values
var (
	Yellow = lipgloss.Color("#B58900")
	Orange = lipgloss.Color("#CB4B16")

	XXXLight = lipgloss.AdaptiveColor{Dark: "#FDF6E3", Light: "#002B36"} // base3
	XXLight  = lipgloss.AdaptiveColor{Dark: "#EEE8D5", Light: "#073642"} // base2
	XLight   = lipgloss.AdaptiveColor{Dark: "#93A1A1", Light: "#586E75"} // base1
)

// Marker colors. Hex strings are exported for renderers that don't use
// lipgloss.
const (
	HitBackgroundHex    = "#FFE19A"
	ActiveBackgroundHex = "#FFBF3A"
	HitForegroundHex    = "#4B2E05"
)

var (
	HitBackground    = lipgloss.Color(HitBackgroundHex)
	ActiveBackground = lipgloss.Color(ActiveBackgroundHex)
	HitForeground    = lipgloss.Color(HitForegroundHex)
)
