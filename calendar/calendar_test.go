package calendar

import (
	"errors"
	"testing"
	"time"
)

func halifax(t *testing.T) *time.Location {
	t.Helper()
	loc, err := LoadLocation("America/Halifax")
	if err != nil {
		t.Fatalf("LoadLocation: %v", err)
	}
	return loc
}

func TestDayOffset(t *testing.T) {
	tests := []struct {
		anchor, target time.Weekday
		want           int
	}{
		{time.Monday, time.Monday, 0},
		{time.Monday, time.Wednesday, 2},
		{time.Monday, time.Sunday, 6},
		{time.Wednesday, time.Monday, 5},
		{time.Saturday, time.Sunday, 1},
		{time.Sunday, time.Saturday, 6},
	}
	for _, tt := range tests {
		t.Run(tt.anchor.String()+"-"+tt.target.String(), func(t *testing.T) {
			if got := DayOffset(tt.anchor, tt.target); got != tt.want {
				t.Errorf("DayOffset() = %d, want %d", got, tt.want)
			}
		})
	}
	for a := time.Sunday; a <= time.Saturday; a++ {
		for b := time.Sunday; b <= time.Saturday; b++ {
			if off := DayOffset(a, b); off < 0 || off > 6 {
				t.Errorf("DayOffset(%s, %s) = %d outside [0,6]", a, b, off)
			}
		}
	}
}

func TestDateInWeek(t *testing.T) {
	anchor := NewDate(2024, time.June, 10) // Monday
	tests := []struct {
		day  time.Weekday
		want Date
	}{
		{time.Monday, NewDate(2024, time.June, 10)},
		{time.Wednesday, NewDate(2024, time.June, 12)},
		{time.Sunday, NewDate(2024, time.June, 16)},
	}
	for _, tt := range tests {
		if got := DateInWeek(anchor, tt.day); got != tt.want {
			t.Errorf("DateInWeek(%s) = %s, want %s", tt.day, got, tt.want)
		}
	}
}

func TestDate(t *testing.T) {
	d, err := ParseDate("2024-02-28")
	if err != nil {
		t.Fatalf("ParseDate: %v", err)
	}
	if got := d.AddDays(1).String(); got != "2024-02-29" {
		t.Errorf("leap day = %s", got)
	}
	if got := d.AddDays(2).String(); got != "2024-03-01" {
		t.Errorf("month rollover = %s", got)
	}
	if got := NewDate(2024, time.January, 32); got != NewDate(2024, time.February, 1) {
		t.Errorf("NewDate normalisation = %s", got)
	}
	if got := d.DaysUntil(NewDate(2024, time.March, 31)); got != 32 {
		t.Errorf("DaysUntil = %d, want 32", got)
	}
	if _, err := ParseDate("2024-13-01"); err == nil {
		t.Error("ParseDate should reject month 13")
	}
	if !(Date{}).IsZero() {
		t.Error("zero Date should report IsZero")
	}

	w := WeekOf(NewDate(2024, time.June, 10))
	if w.End() != NewDate(2024, time.June, 16) {
		t.Errorf("week end = %s", w.End())
	}
	if !w.Contains(NewDate(2024, time.June, 16)) || w.Contains(NewDate(2024, time.June, 17)) {
		t.Error("week bounds are inclusive of exactly seven days")
	}
}

func TestDate_JSON(t *testing.T) {
	d := NewDate(2024, time.June, 10)
	raw, err := d.MarshalJSON()
	if err != nil {
		t.Fatalf("MarshalJSON: %v", err)
	}
	if string(raw) != `"2024-06-10"` {
		t.Errorf("MarshalJSON = %s", raw)
	}
	var back Date
	if err := back.UnmarshalJSON(raw); err != nil || back != d {
		t.Errorf("UnmarshalJSON = %v, %v", back, err)
	}
	if err := back.UnmarshalJSON([]byte(`"June 10"`)); err == nil {
		t.Error("UnmarshalJSON should reject non ISO dates")
	}
}

func TestParseClock(t *testing.T) {
	tests := []struct {
		in      string
		want    Clock
		wantErr bool
	}{
		{"08:15", Clock{8, 15}, false},
		{"8:05", Clock{8, 5}, false},
		{"23:59", Clock{23, 59}, false},
		{"00:00", Clock{0, 0}, false},
		{"24:00", Clock{}, true},
		{"12:60", Clock{}, true},
		{"0815", Clock{}, true},
		{"8:5:0", Clock{}, true},
		{"-1:30", Clock{}, true},
		{"", Clock{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseClock(tt.in)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidClock) {
					t.Errorf("ParseClock(%q) error = %v, want ErrInvalidClock", tt.in, err)
				}
				return
			}
			if err != nil || got != tt.want {
				t.Errorf("ParseClock(%q) = %v, %v; want %v", tt.in, got, err, tt.want)
			}
		})
	}
	if s := (Clock{8, 5}).String(); s != "08:05" {
		t.Errorf("Clock.String() = %q", s)
	}
}

func TestParseWeekday(t *testing.T) {
	for _, name := range []string{"Monday", "monday", "MONDAY", " Monday "} {
		if wd, err := ParseWeekday(name); err != nil || wd != time.Monday {
			t.Errorf("ParseWeekday(%q) = %v, %v", name, wd, err)
		}
	}
	for _, name := range []string{"Mon", "Funday", ""} {
		if _, err := ParseWeekday(name); !errors.Is(err, ErrUnknownWeekday) {
			t.Errorf("ParseWeekday(%q) error = %v", name, err)
		}
	}
	if !IsWeekend(time.Sunday) || IsWeekend(time.Friday) {
		t.Error("IsWeekend misclassifies days")
	}
}

func TestMonthGrid(t *testing.T) {
	tests := []struct {
		name      string
		year      int
		month     time.Month
		wantCells int
		wantFirst Date
		wantLast  Date
	}{
		{"June 2024", 2024, time.June, 42, NewDate(2024, time.May, 26), NewDate(2024, time.July, 6)},
		{"February 2015", 2015, time.February, 28, NewDate(2015, time.February, 1), NewDate(2015, time.February, 28)},
		{"September 2024", 2024, time.September, 35, NewDate(2024, time.September, 1), NewDate(2024, time.October, 5)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			anchor := NewDate(tt.year, tt.month, 10)
			g := MonthGrid(tt.year, tt.month, anchor, anchor)

			if len(g.Cells) != tt.wantCells {
				t.Fatalf("cells = %d, want %d", len(g.Cells), tt.wantCells)
			}
			if len(g.Cells)%7 != 0 || len(g.Cells) < 28 {
				t.Errorf("cell count %d is not whole weeks", len(g.Cells))
			}
			first, last := g.Cells[0], g.Cells[len(g.Cells)-1]
			if first.Date != tt.wantFirst || first.Date.Weekday() != time.Sunday {
				t.Errorf("first cell = %s (%s)", first.Date, first.Date.Weekday())
			}
			if last.Date != tt.wantLast || last.Date.Weekday() != time.Saturday {
				t.Errorf("last cell = %s (%s)", last.Date, last.Date.Weekday())
			}
			for i := 1; i < len(g.Cells); i++ {
				if g.Cells[i-1].Date.AddDays(1) != g.Cells[i].Date {
					t.Fatalf("cells not consecutive at %d", i)
				}
			}
			if n := g.SelectedCount(); n != 7 {
				t.Errorf("selected cells = %d, want 7", n)
			}
			if len(g.Weeks()) != tt.wantCells/7 {
				t.Errorf("weeks = %d", len(g.Weeks()))
			}
		})
	}
}

func TestMonthGrid_Flags(t *testing.T) {
	anchor := NewDate(2024, time.June, 27) // week runs into July
	today := NewDate(2024, time.June, 3)
	g := MonthGrid(2024, time.June, anchor, today)

	if g.Title() != "June 2024" {
		t.Errorf("Title() = %q", g.Title())
	}
	todays, inMonth := 0, 0
	for _, c := range g.Cells {
		if c.Today {
			todays++
			if c.Date != today {
				t.Errorf("today flag on %s", c.Date)
			}
		}
		if c.InMonth {
			inMonth++
		}
		if c.SelectedWeek != WeekOf(anchor).Contains(c.Date) {
			t.Errorf("selected flag wrong on %s", c.Date)
		}
	}
	if todays != 1 {
		t.Errorf("today flagged %d times", todays)
	}
	if inMonth != 30 {
		t.Errorf("in-month cells = %d, want 30", inMonth)
	}
	// Only cells actually rendered count toward the selection.
	if n := g.SelectedCount(); n != 7 {
		t.Errorf("selected = %d, want 7", n)
	}

	again := MonthGrid(2024, time.June, anchor, today)
	for i := range g.Cells {
		a, b := g.Cells[i], again.Cells[i]
		if a.Date != b.Date || a.InMonth != b.InMonth || a.Today != b.Today || a.SelectedWeek != b.SelectedWeek {
			t.Fatalf("MonthGrid is not deterministic at cell %d", i)
		}
	}
}

func TestMonthGrid_AnchorOutsideMonth(t *testing.T) {
	g := MonthGrid(2024, time.June, NewDate(2024, time.August, 5), NewDate(2024, time.June, 1))
	if n := g.SelectedCount(); n != 0 {
		t.Errorf("selected = %d, want 0 when the week is not visible", n)
	}
}

func TestProject(t *testing.T) {
	loc := halifax(t)
	p := NewProjector(loc, "KV Go Bus")
	anchor := NewDate(2024, time.June, 10)

	events, err := p.Project([]Selection{{
		RouteID:  "Go1",
		StopName: "Main St",
		Time:     "08:15",
		Days:     []string{"Wednesday"},
	}}, anchor)
	if err != nil {
		t.Fatalf("Project: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("events = %d, want 1", len(events))
	}
	e := events[0]
	want := time.Date(2024, time.June, 12, 8, 15, 0, 0, loc)
	if !e.Start.Equal(want) {
		t.Errorf("start = %s, want %s", e.Start, want)
	}
	if !e.End().Equal(want.Add(5 * time.Minute)) {
		t.Errorf("end = %s", e.End())
	}
	if e.Title != "KV Go Bus - Go1" {
		t.Errorf("title = %q", e.Title)
	}
	if e.Description != "Bus arrival at Main St" || e.Location != "Main St" {
		t.Errorf("description/location = %q / %q", e.Description, e.Location)
	}
	if e.Status != StatusConfirmed || e.BusyStatus != BusyFree {
		t.Errorf("status = %s/%s", e.Status, e.BusyStatus)
	}
	if e.Clock() != "08:15" {
		t.Errorf("Clock() = %q", e.Clock())
	}
}

func TestProject_OrderAndCount(t *testing.T) {
	p := NewProjector(halifax(t), "")
	anchor := NewDate(2024, time.June, 12) // Wednesday

	events, err := p.Project([]Selection{
		{RouteID: "Go1", StopName: "Main St", Time: "8:15", Days: []string{"Monday", "Friday", "Monday"}},
		{RouteID: "Go2", StopName: "Market Square", Time: "17:45", Days: []string{"Tuesday"}},
	}, anchor)
	if err != nil {
		t.Fatalf("Project: %v", err)
	}
	if len(events) != 4 {
		t.Fatalf("events = %d, want 4", len(events))
	}
	wantDates := []Date{
		NewDate(2024, time.June, 17), // Monday after the Wednesday anchor
		NewDate(2024, time.June, 14),
		NewDate(2024, time.June, 17),
		NewDate(2024, time.June, 18),
	}
	week := WeekOf(anchor)
	for i, e := range events {
		d := DateOf(e.Start)
		if d != wantDates[i] {
			t.Errorf("event %d on %s, want %s", i, d, wantDates[i])
		}
		if !week.Contains(d) {
			t.Errorf("event %d escapes the anchor week", i)
		}
	}
	if events[3].Title != "Go2" {
		t.Errorf("title without prefix = %q", events[3].Title)
	}
}

func TestProject_DST(t *testing.T) {
	loc := halifax(t)
	p := NewProjector(loc, "")
	// Halifax moves to daylight time on 2024-03-10.
	anchor := NewDate(2024, time.March, 8)

	events, err := p.Project([]Selection{{
		RouteID: "Go1", StopName: "Main St", Time: "08:15", Days: []string{"Friday", "Monday"},
	}}, anchor)
	if err != nil {
		t.Fatalf("Project: %v", err)
	}
	for _, e := range events {
		if e.Start.Hour() != 8 || e.Start.Minute() != 15 {
			t.Errorf("wall clock drifted to %s", e.Start.Format("15:04"))
		}
	}
	_, before := events[0].Start.Zone()
	_, after := events[1].Start.Zone()
	if before != -4*3600 || after != -3*3600 {
		t.Errorf("offsets = %d, %d; want AST then ADT", before, after)
	}
}

func TestProject_Errors(t *testing.T) {
	p := NewProjector(halifax(t), "")
	anchor := NewDate(2024, time.June, 10)

	tests := []struct {
		name string
		sel  Selection
		want error
	}{
		{"bad clock", Selection{RouteID: "Go1", StopName: "Main St", Time: "25:00", Days: []string{"Monday"}}, ErrInvalidClock},
		{"bad day", Selection{RouteID: "Go1", StopName: "Main St", Time: "08:15", Days: []string{"Monday", "Someday"}}, ErrUnknownWeekday},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			events, err := p.Project([]Selection{tt.sel}, anchor)
			if !errors.Is(err, tt.want) {
				t.Fatalf("error = %v, want %v", err, tt.want)
			}
			if events != nil {
				t.Error("a failed projection must not return partial events")
			}
			var perr *ProjectionError
			if !errors.As(err, &perr) || perr.Index != 0 {
				t.Errorf("error should be a ProjectionError for item 0: %v", err)
			}
		})
	}

	if _, err := (&Projector{}).Project(nil, anchor); err == nil {
		t.Error("projector without location should fail")
	}
}

func TestShortStop(t *testing.T) {
	tests := []struct {
		name, want string
	}{
		{"Main St", "Main St"},
		{"Exactly twenty chars", "Exactly twenty chars"},
		{"Riverside Hospital Main Entrance", "Riverside Hospital M..."},
	}
	for _, tt := range tests {
		if got := (Event{StopName: tt.name}).ShortStop(); got != tt.want {
			t.Errorf("ShortStop(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestAttachEvents(t *testing.T) {
	loc := halifax(t)
	anchor := NewDate(2024, time.June, 10)
	g := MonthGrid(2024, time.June, anchor, anchor)

	var sel []Selection
	for _, clock := range []string{"07:00", "08:15", "12:30", "17:45", "18:00"} {
		sel = append(sel, Selection{RouteID: "Go1", StopName: "Main St", Time: clock, Days: []string{"Monday"}})
	}
	sel = append(sel, Selection{RouteID: "Go2", StopName: "Market Square", Time: "07:00", Days: []string{"Thursday"}})
	events, err := NewProjector(loc, "").Project(sel, anchor)
	if err != nil {
		t.Fatalf("Project: %v", err)
	}

	out := AttachEvents(g, events)
	total := 0
	for _, c := range out.Cells {
		total += len(c.Events)
		if len(c.Events) > 0 && !c.SelectedWeek {
			t.Errorf("events attached outside the selected week on %s", c.Date)
		}
		switch c.Date {
		case NewDate(2024, time.June, 10):
			if len(c.Events) != 5 || c.More != 2 {
				t.Errorf("Monday: %d events, more=%d", len(c.Events), c.More)
			}
		case NewDate(2024, time.June, 13):
			if len(c.Events) != 1 || c.More != 0 {
				t.Errorf("Thursday: %d events, more=%d", len(c.Events), c.More)
			}
		}
	}
	if total != len(events) {
		t.Errorf("attached %d of %d events", total, len(events))
	}
	for _, c := range g.Cells {
		if len(c.Events) > 0 {
			t.Fatal("AttachEvents must not modify its input grid")
		}
	}
}

func TestClockValue(t *testing.T) {
	tests := []struct {
		input    string
		expected int
	}{
		{"08:15", 815},
		{"9:05", 905},
		{"00:00", 0},
		{"23:59", 2359},
		{" 17:45 ", 1745},
		{"12:60", -1},
		{"008:15", -1},
		{"+9:30", -1},
		{"-1:00", -1},
		{"noon", -1},
		{"", -1},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := ClockValue(tt.input); got != tt.expected {
				t.Errorf("ClockValue(%q) = %d, want %d", tt.input, got, tt.expected)
			}
		})
	}
}

func TestLoadLocation(t *testing.T) {
	for _, name := range []string{"", "Local", "local"} {
		if _, err := LoadLocation(name); !errors.Is(err, ErrNotIANAZone) {
			t.Errorf("LoadLocation(%q) error = %v, want ErrNotIANAZone", name, err)
		}
	}
	if _, err := LoadLocation("Mars/Olympus"); err == nil {
		t.Error("unknown zone should fail")
	}
	if !IsIANAZone("America/Halifax") || IsIANAZone("Local") {
		t.Error("IsIANAZone misclassifies zones")
	}
}
