package drill

import (
	"io"

	"github.com/charmbracelet/lipgloss"
)

// Color palette
var (
	ColorPrimary = lipgloss.Color("#8B5CF6") // Violet
	ColorSuccess = lipgloss.Color("#10B981") // Emerald
	ColorError   = lipgloss.Color("#EF4444") // Red
	ColorAccent  = lipgloss.Color("#F59E0B") // Amber
	ColorMuted   = lipgloss.Color("#6B7280") // Gray
)

// styles are bound to the renderer of the output writer so that color is
// only emitted on terminals
type styles struct {
	header  lipgloss.Style
	label   lipgloss.Style
	correct lipgloss.Style
	wrong   lipgloss.Style
	hint    lipgloss.Style
	summary lipgloss.Style
}

func newStyles(w io.Writer) styles {
	r := lipgloss.NewRenderer(w)
	return styles{
		header:  r.NewStyle().Foreground(ColorPrimary).Bold(true),
		label:   r.NewStyle().Foreground(ColorMuted),
		correct: r.NewStyle().Foreground(ColorSuccess).Bold(true),
		wrong:   r.NewStyle().Foreground(ColorError).Bold(true),
		hint:    r.NewStyle().Foreground(ColorAccent).Italic(true),
		summary: r.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorPrimary).
			Padding(0, 1),
	}
}
