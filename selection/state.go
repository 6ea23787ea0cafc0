// Package selection models an interactive stop-selection session as an
// explicit state object. Every mutation re-renders the month preview, so the
// View always reflects the current items.
package selection

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/theoremus-urban-solutions/stop-calendar/calendar"
	"github.com/theoremus-urban-solutions/stop-calendar/dataset"
)

var (
	ErrNoItem         = errors.New("no such selection item")
	ErrDayDisabled    = errors.New("day not served at the chosen time")
	ErrNotOffered     = errors.New("value not offered for this item")
	ErrNothingToSend  = errors.New("no schedule items to generate")
	ErrExportInFlight = errors.New("export already in progress")
)

// Item is one row of the selection list.
type Item struct {
	ID       int
	Label    string
	RouteID  string
	StopName string
	Time     string
	Days     map[time.Weekday]bool
	Open     bool
}

// Complete reports whether the item can be exported.
func (it *Item) Complete() bool {
	return it.RouteID != "" && it.StopName != "" && it.Time != "" && len(it.selectedDays()) > 0
}

func (it *Item) selectedDays() []time.Weekday {
	var out []time.Weekday
	for _, wd := range calendar.Weekdays {
		if it.Days[wd] {
			out = append(out, wd)
		}
	}
	return out
}

// DayOption describes one day button of an item.
type DayOption struct {
	Day      time.Weekday
	Enabled  bool
	Selected bool
}

// View is the declarative render output of a State.
type View struct {
	Title     string
	Grid      calendar.Grid
	CanExport bool
	Exporting bool
}

// State is a single user's in-memory selection session.
type State struct {
	data      *dataset.Dataset
	projector *calendar.Projector
	items     []*Item
	counter   int
	anchor    calendar.Date
	year      int
	month     time.Month
	today     calendar.Date
	exporting bool
	notices   []Notice
	view      View
}

// New starts a session anchored on today, showing today's month.
func New(data *dataset.Dataset, projector *calendar.Projector, today calendar.Date) *State {
	s := &State{
		data:      data,
		projector: projector,
		anchor:    today,
		year:      today.Year,
		month:     today.Month,
		today:     today,
	}
	s.render()
	return s
}

// View returns the latest render.
func (s *State) View() View { return s.view }

// Items returns the current rows in display order.
func (s *State) Items() []*Item { return slices.Clone(s.items) }

// Anchor returns the selected week start.
func (s *State) Anchor() calendar.Date { return s.anchor }

// AddItem appends an empty row.
func (s *State) AddItem() *Item {
	s.counter++
	it := &Item{
		ID:    s.counter,
		Label: fmt.Sprintf("Stop %d", s.counter),
		Days:  map[time.Weekday]bool{},
		Open:  true,
	}
	s.items = append(s.items, it)
	s.render()
	return it
}

// RemoveItem drops a row.
func (s *State) RemoveItem(id int) error {
	i := s.index(id)
	if i < 0 {
		return ErrNoItem
	}
	s.items = slices.Delete(s.items, i, i+1)
	s.render()
	return nil
}

// ClearAll drops every row and restarts numbering.
func (s *State) ClearAll() {
	s.items = nil
	s.counter = 0
	s.render()
}

// ToggleOpen expands or collapses a row. Presentation only; no re-render.
func (s *State) ToggleOpen(id int) error {
	it := s.item(id)
	if it == nil {
		return ErrNoItem
	}
	it.Open = !it.Open
	return nil
}

// SetRoute chooses a route and clears the stop, time and days.
func (s *State) SetRoute(id int, routeID string) error {
	it := s.item(id)
	if it == nil {
		return ErrNoItem
	}
	if routeID != "" {
		if _, err := s.data.Route(routeID); err != nil {
			return fmt.Errorf("%w: route %q", ErrNotOffered, routeID)
		}
	}
	it.RouteID = routeID
	it.StopName = ""
	it.Time = ""
	clear(it.Days)
	s.render()
	return nil
}

// SetStop chooses a stop on the item's route and clears the time and days.
func (s *State) SetStop(id int, stopName string) error {
	it := s.item(id)
	if it == nil {
		return ErrNoItem
	}
	if stopName != "" && s.data.StopIndex(it.RouteID, stopName) < 0 {
		return fmt.Errorf("%w: stop %q", ErrNotOffered, stopName)
	}
	it.StopName = stopName
	it.Time = ""
	clear(it.Days)
	s.render()
	return nil
}

// SetTime chooses a time and deselects days that are not served at it. The
// clock may be written with or without padding; the offered spelling is kept.
func (s *State) SetTime(id int, clock string) error {
	it := s.item(id)
	if it == nil {
		return ErrNoItem
	}
	if clock != "" {
		offered, ok := s.offeredTime(id, clock)
		if !ok {
			return fmt.Errorf("%w: time %q", ErrNotOffered, clock)
		}
		clock = offered
	}
	it.Time = clock
	for _, opt := range s.DayOptions(id) {
		if !opt.Enabled {
			delete(it.Days, opt.Day)
		}
	}
	s.render()
	return nil
}

func (s *State) offeredTime(id int, clock string) (string, bool) {
	want := calendar.ClockValue(clock)
	if want < 0 {
		return "", false
	}
	for _, t := range s.TimeOptions(id) {
		if calendar.ClockValue(t) == want {
			return t, true
		}
	}
	return "", false
}

// ToggleDay flips one day button.
func (s *State) ToggleDay(id int, day time.Weekday) error {
	it := s.item(id)
	if it == nil {
		return ErrNoItem
	}
	if !s.dayEnabled(it, day) {
		return ErrDayDisabled
	}
	if it.Days[day] {
		delete(it.Days, day)
	} else {
		it.Days[day] = true
	}
	s.render()
	return nil
}

// AddSelection appends a complete item built through the same steps a user
// takes, so it is held to the same dataset checks. A rejected selection
// leaves no item behind.
func (s *State) AddSelection(sel calendar.Selection) (*Item, error) {
	it := s.AddItem()
	err := s.fill(it.ID, sel)
	if err != nil {
		_ = s.RemoveItem(it.ID)
		return nil, err
	}
	return it, nil
}

func (s *State) fill(id int, sel calendar.Selection) error {
	if err := s.SetRoute(id, sel.RouteID); err != nil {
		return err
	}
	if err := s.SetStop(id, sel.StopName); err != nil {
		return err
	}
	if err := s.SetTime(id, sel.Time); err != nil {
		return err
	}
	it := s.item(id)
	for _, name := range sel.Days {
		wd, err := calendar.ParseWeekday(name)
		if err != nil {
			return err
		}
		if it.Days[wd] {
			continue
		}
		if err := s.ToggleDay(id, wd); err != nil {
			return fmt.Errorf("%s: %w", wd, err)
		}
	}
	return nil
}

// SetAnchor moves the selected week.
func (s *State) SetAnchor(d calendar.Date) {
	s.anchor = d
	s.render()
}

// PrevMonth shows the previous month.
func (s *State) PrevMonth() { s.shiftMonth(-1) }

// NextMonth shows the next month.
func (s *State) NextMonth() { s.shiftMonth(1) }

// ShowMonth jumps to a month without moving the selected week.
func (s *State) ShowMonth(year int, month time.Month) {
	d := calendar.NewDate(year, month, 1)
	s.year, s.month = d.Year, d.Month
	s.render()
}

func (s *State) shiftMonth(n int) {
	d := calendar.NewDate(s.year, s.month+time.Month(n), 1)
	s.year, s.month = d.Year, d.Month
	s.render()
}

// TimeOptions lists the times offered for an item's stop.
func (s *State) TimeOptions(id int) []string {
	it := s.item(id)
	if it == nil || it.RouteID == "" || it.StopName == "" {
		return nil
	}
	return s.data.ServiceTimes(it.RouteID, it.StopName)
}

// DayOptions describes the seven day buttons of an item, Sunday first.
func (s *State) DayOptions(id int) []DayOption {
	it := s.item(id)
	if it == nil {
		return nil
	}
	out := make([]DayOption, 0, 7)
	for _, wd := range calendar.Weekdays {
		out = append(out, DayOption{Day: wd, Enabled: s.dayEnabled(it, wd), Selected: it.Days[wd]})
	}
	return out
}

// A day is enabled until a time is chosen; after that only day classes
// whose schedule serves the time at this stop stay enabled.
func (s *State) dayEnabled(it *Item, wd time.Weekday) bool {
	if it.Time == "" || it.RouteID == "" || it.StopName == "" {
		return true
	}
	return s.data.HasTime(it.RouteID, it.StopName, dataset.DayTypeOf(wd), it.Time)
}

// Selections returns the complete items in order.
func (s *State) Selections() []calendar.Selection {
	var out []calendar.Selection
	for _, it := range s.items {
		if !it.Complete() {
			continue
		}
		days := it.selectedDays()
		names := make([]string, len(days))
		for i, d := range days {
			names[i] = d.String()
		}
		out = append(out, calendar.Selection{
			RouteID:  it.RouteID,
			StopName: it.StopName,
			Time:     it.Time,
			Days:     names,
		})
	}
	return out
}

func (s *State) item(id int) *Item {
	if i := s.index(id); i >= 0 {
		return s.items[i]
	}
	return nil
}

func (s *State) index(id int) int {
	return slices.IndexFunc(s.items, func(it *Item) bool { return it.ID == id })
}

func (s *State) render() {
	grid := calendar.MonthGrid(s.year, s.month, s.anchor, s.today)
	if sel := s.Selections(); len(sel) > 0 && s.projector != nil {
		// Items were checked against the dataset on entry; a projection
		// failure leaves the preview without events.
		if events, err := s.projector.Project(sel, s.anchor); err == nil {
			grid = calendar.AttachEvents(grid, events)
		}
	}
	s.view = View{
		Title:     grid.Title(),
		Grid:      grid,
		CanExport: len(s.items) > 0 && !s.exporting,
		Exporting: s.exporting,
	}
}
