package cli

import (
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/bjaus/gridfmt"
)

const (
	statusColor   = "214"
	currencyColor = "42"
	booleanColor  = "39"
	temporalColor = "245"
)

// typeStyles returns table cell styles keyed by resolved column type. The
// renderer is forced to 256 colors because --color is an explicit request.
func typeStyles(w io.Writer) map[gridfmt.ColumnType]func(string) string {
	r := lipgloss.NewRenderer(w)
	r.SetColorProfile(termenv.ANSI256)

	render := func(s lipgloss.Style) func(string) string {
		return func(text string) string { return s.Render(text) }
	}
	fg := func(c string) lipgloss.Style { return r.NewStyle().Foreground(lipgloss.Color(c)) }

	temporal := render(fg(temporalColor))
	return map[gridfmt.ColumnType]func(string) string{
		gridfmt.Status:   render(fg(statusColor).Bold(true)),
		gridfmt.Currency: render(fg(currencyColor)),
		gridfmt.Boolean:  render(fg(booleanColor)),
		gridfmt.Checkbox: render(fg(booleanColor)),
		gridfmt.Time:     temporal,
		gridfmt.Date:     temporal,
		gridfmt.TimeSpan: temporal,
	}
}
