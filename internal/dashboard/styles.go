package dashboard

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rileyhilliard/netbwmon/internal/monitor"
)

// Chrome colors for the bubbletea front end. Graph colors come from the
// grid's ANSI indices.
const (
	ColorAccent        = lipgloss.Color("#FF2E97")
	ColorSurfaceBg     = lipgloss.Color("#12121A")
	ColorDarkBg        = lipgloss.Color("#0A0A0F")
	ColorTextPrimary   = lipgloss.Color("#FFFFFF")
	ColorTextSecondary = lipgloss.Color("#B4B4D0")
	ColorTextMuted     = lipgloss.Color("#6B6B8D")
)

var (
	FooterStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted)

	NoticeStyle = lipgloss.NewStyle().
			Foreground(ColorTextSecondary).
			Italic(true)

	helpBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorAccent).
			Background(ColorSurfaceBg).
			Padding(1, 2)

	helpTitleStyle = lipgloss.NewStyle().
			Foreground(ColorAccent).
			Bold(true).
			MarginBottom(1)
)

var paletteStyles = map[monitor.Color]lipgloss.Style{}

// colorStyle returns the foreground style for an ANSI palette index.
func colorStyle(c monitor.Color) lipgloss.Style {
	if st, ok := paletteStyles[c]; ok {
		return st
	}
	st := lipgloss.NewStyle().Foreground(lipgloss.Color(strconv.Itoa(int(c))))
	paletteStyles[c] = st
	return st
}

// renderGrid turns the grid into styled lines, one run at a time.
func renderGrid(g *monitor.Grid) string {
	_, height := g.Size()
	lines := make([]string, height)
	for row := 0; row < height; row++ {
		var b strings.Builder
		for _, run := range g.Runs(row) {
			if run.Color == monitor.ColorDefault {
				b.WriteString(run.Text)
				continue
			}
			b.WriteString(colorStyle(run.Color).Render(run.Text))
		}
		lines[row] = b.String()
	}
	return strings.Join(lines, "\n")
}
