package calendar

import (
	"fmt"
	"time"
)

// Cell is one day of a month grid.
type Cell struct {
	Date         Date    `json:"date"`
	InMonth      bool    `json:"inMonth"`
	Today        bool    `json:"today"`
	SelectedWeek bool    `json:"selectedWeek"`
	Events       []Event `json:"events,omitempty"`
	// More counts events beyond PreviewLimit that a compact view hides.
	More int `json:"more,omitempty"`
}

// Grid is a month laid out in whole Sunday-to-Saturday weeks.
type Grid struct {
	Year   int        `json:"year"`
	Month  time.Month `json:"month"`
	Anchor Date       `json:"anchor"`
	Cells  []Cell     `json:"cells"`
}

// Title renders the month heading, e.g. "June 2024".
func (g Grid) Title() string {
	return fmt.Sprintf("%s %d", g.Month, g.Year)
}

// Weeks splits the cells into rows of seven.
func (g Grid) Weeks() [][]Cell {
	rows := make([][]Cell, 0, len(g.Cells)/7)
	for i := 0; i+7 <= len(g.Cells); i += 7 {
		rows = append(rows, g.Cells[i:i+7])
	}
	return rows
}

// SelectedCount returns how many cells carry the selected-week flag.
func (g Grid) SelectedCount() int {
	n := 0
	for _, c := range g.Cells {
		if c.SelectedWeek {
			n++
		}
	}
	return n
}

// MonthGrid lays out the reference month starting at the Sunday on or
// before the 1st and ending on the Saturday on or after the last day.
// today and anchor are compared as civil dates.
func MonthGrid(year int, month time.Month, anchor, today Date) Grid {
	first := NewDate(year, month, 1)
	last := NewDate(year, month+1, 0)
	start := first.AddDays(-int(first.Weekday()))
	end := last.AddDays(int(time.Saturday - last.Weekday()))
	week := WeekOf(anchor)

	total := start.DaysUntil(end) + 1
	cells := make([]Cell, 0, total)
	for i := 0; i < total; i++ {
		d := start.AddDays(i)
		cells = append(cells, Cell{
			Date:         d,
			InMonth:      d.Month == first.Month && d.Year == first.Year,
			Today:        d == today,
			SelectedWeek: week.Contains(d),
		})
	}
	return Grid{Year: first.Year, Month: first.Month, Anchor: anchor, Cells: cells}
}

// PreviewLimit is how many events a compact cell shows before "+N more".
const PreviewLimit = 3

// AttachEvents places each event on the cell of its date. Only cells inside
// the selected week receive events, matching what an export would produce.
func AttachEvents(g Grid, events []Event) Grid {
	byDate := make(map[Date][]Event)
	for _, e := range events {
		d := DateOf(e.Start)
		byDate[d] = append(byDate[d], e)
	}
	cells := make([]Cell, len(g.Cells))
	copy(cells, g.Cells)
	for i := range cells {
		if !cells[i].SelectedWeek {
			continue
		}
		evs := byDate[cells[i].Date]
		if len(evs) == 0 {
			continue
		}
		cells[i].Events = evs
		if len(evs) > PreviewLimit {
			cells[i].More = len(evs) - PreviewLimit
		}
	}
	g.Cells = cells
	return g
}
