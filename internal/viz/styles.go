package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Styles derived from a theme.
type Styles struct {
	Panel   lipgloss.Style
	Title   lipgloss.Style
	Label   lipgloss.Style
	Value   lipgloss.Style
	Hint    lipgloss.Style
	Running lipgloss.Style
	Paused  lipgloss.Style
	High    lipgloss.Style
	Mid     lipgloss.Style
	Low     lipgloss.Style
}

func NewStyles(t Theme) Styles {
	return Styles{
		Panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.Muted).
			Padding(0, 1),
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(t.Primary).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(t.Muted),
		Label:   lipgloss.NewStyle().Foreground(t.Muted).Width(18),
		Value:   lipgloss.NewStyle().Foreground(t.Text).Bold(true),
		Hint:    lipgloss.NewStyle().Foreground(t.Muted).Italic(true),
		Running: lipgloss.NewStyle().Bold(true).Foreground(t.Good),
		Paused:  lipgloss.NewStyle().Bold(true).Foreground(t.Warn),
		High:    lipgloss.NewStyle().Foreground(t.Good),
		Mid:     lipgloss.NewStyle().Foreground(t.Warn),
		Low:     lipgloss.NewStyle().Foreground(t.Bad),
	}
}

// ProgressBar fills width cells in proportion to fraction.
func (s Styles) ProgressBar(fraction float64, width int) string {
	filled := int(fraction * float64(width))
	filled = max(0, min(filled, width))
	return s.Value.Render(strings.Repeat("█", filled)) + s.Hint.Render(strings.Repeat("░", width-filled))
}

// Sparkline draws values as block characters, sampling down to width.
func (s Styles) Sparkline(values []float64, width int) string {
	if len(values) == 0 || width <= 0 {
		return strings.Repeat("─", max(width, 0))
	}
	chars := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

	lo, hi := values[0], values[0]
	for _, v := range values {
		lo = min(lo, v)
		hi = max(hi, v)
	}
	rng := hi - lo
	if rng == 0 {
		rng = 1
	}

	step := max(len(values)/width, 1)
	var b strings.Builder
	for i := 0; i < width && i*step < len(values); i++ {
		norm := (values[i*step] - lo) / rng
		c := string(chars[max(0, min(int(norm*float64(len(chars)-1)), len(chars)-1))])
		switch {
		case norm > 0.7:
			b.WriteString(s.High.Render(c))
		case norm > 0.3:
			b.WriteString(s.Mid.Render(c))
		default:
			b.WriteString(s.Low.Render(c))
		}
	}
	return b.String()
}
