package formatter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/theoremus-urban-solutions/stop-calendar/calendar"
)

const cellWidth = 5

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Width(cellWidth * 7).Align(lipgloss.Center)
	headerStyle   = lipgloss.NewStyle().Bold(true).Width(cellWidth).Align(lipgloss.Right)
	dayStyle      = lipgloss.NewStyle().Width(cellWidth).Align(lipgloss.Right)
	otherMonth    = dayStyle.Foreground(lipgloss.Color("8"))
	selectedStyle = dayStyle.Background(lipgloss.Color("4")).Foreground(lipgloss.Color("15"))
	todayStyle    = dayStyle.Bold(true).Underline(true)
	eventStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	dateStyle     = lipgloss.NewStyle().Bold(true)
)

// RenderGrid draws the month with the selected week highlighted. Days with
// events are marked with an asterisk.
func RenderGrid(g calendar.Grid) string {
	rows := []string{titleStyle.Render(g.Title())}

	headers := make([]string, 0, 7)
	for _, wd := range calendar.Weekdays {
		headers = append(headers, headerStyle.Render(wd.String()[:3]))
	}
	rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, headers...))

	for _, week := range g.Weeks() {
		cells := make([]string, 0, 7)
		for _, c := range week {
			cells = append(cells, cellStyle(c).Render(cellText(c)))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func cellText(c calendar.Cell) string {
	mark := " "
	if len(c.Events) > 0 {
		mark = "*"
	}
	return fmt.Sprintf("%d%s", c.Date.Day, mark)
}

func cellStyle(c calendar.Cell) lipgloss.Style {
	style := dayStyle
	switch {
	case c.SelectedWeek:
		style = selectedStyle
	case !c.InMonth:
		style = otherMonth
	}
	if c.Today {
		style = style.Inherit(todayStyle)
	}
	return style
}

// RenderWeekEvents lists the preview events of the selected week, at most
// calendar.PreviewLimit per day followed by a "+N more" line.
func RenderWeekEvents(g calendar.Grid) string {
	var b strings.Builder
	for _, c := range g.Cells {
		if !c.SelectedWeek || len(c.Events) == 0 {
			continue
		}
		b.WriteString(dateStyle.Render(fmt.Sprintf("%s %s", c.Date.Weekday(), c.Date)))
		b.WriteByte('\n')
		for i, e := range c.Events {
			if i == calendar.PreviewLimit {
				break
			}
			b.WriteString("  ")
			b.WriteString(eventStyle.Render(fmt.Sprintf("%s %s", e.Clock(), e.RouteID)))
			b.WriteString(" ")
			b.WriteString(e.ShortStop())
			b.WriteByte('\n')
		}
		if c.More > 0 {
			fmt.Fprintf(&b, "  +%d more\n", c.More)
		}
	}
	return strings.TrimRight(b.String(), "\n")
}
