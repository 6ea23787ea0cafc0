package formatter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/theoremus-urban-solutions/stop-calendar/dataset"
)

var (
	routeStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("4"))
	mutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	indexStyle = lipgloss.NewStyle().Width(4).Align(lipgloss.Right)
	badgeStyle = lipgloss.NewStyle().PaddingRight(1)
)

// RenderRoutes lists every route with its description and stop count.
func RenderRoutes(ds *dataset.Dataset) string {
	lines := make([]string, 0, ds.Len())
	for _, id := range ds.RouteIDs() {
		r, _ := ds.Route(id)
		lines = append(lines, fmt.Sprintf("%s - %s %s",
			routeStyle.Render(id), r.Description,
			mutedStyle.Render(fmt.Sprintf("(%d stops)", len(r.Stops)))))
	}
	return strings.Join(lines, "\n")
}

// RenderStops lists a route's stops in order.
func RenderStops(r *dataset.Route) string {
	lines := []string{routeStyle.Render(r.ID + " Route - All Stops")}
	for i, s := range r.Stops {
		line := indexStyle.Render(fmt.Sprintf("%d", i+1)) + "  " + s.Name
		if s.Description != "" {
			line += " " + mutedStyle.Render("- "+s.Description)
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

// RenderStopTimetable shows the weekday and weekend times of one stop.
func RenderStopTimetable(tt dataset.StopTimetable) string {
	var b strings.Builder
	b.WriteString(routeStyle.Render(fmt.Sprintf("%s - %s - Schedule Times", tt.RouteID, tt.StopName)))
	b.WriteByte('\n')
	writeTimes(&b, "Weekdays (Monday - Friday)", tt.Weekday, "No weekday service at this stop")
	writeTimes(&b, "Weekends (Saturday - Sunday)", tt.Weekend, "No weekend service at this stop")
	fmt.Fprintf(&b, "Stop #: %d of %d", tt.Position, tt.StopCount)
	return b.String()
}

func writeTimes(b *strings.Builder, heading string, times []string, empty string) {
	b.WriteString(heading)
	b.WriteByte('\n')
	if len(times) == 0 {
		b.WriteString("  " + mutedStyle.Render(empty) + "\n")
		return
	}
	badges := make([]string, len(times))
	for i, t := range times {
		badges[i] = badgeStyle.Render(t)
	}
	b.WriteString("  " + lipgloss.JoinHorizontal(lipgloss.Top, badges...) + "\n")
}
