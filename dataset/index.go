package dataset

import (
	"errors"
	"slices"
	"sort"

	"github.com/theoremus-urban-solutions/stop-calendar/calendar"
)

var (
	ErrRouteNotFound    = errors.New("route not found")
	ErrStopNotFound     = errors.New("stop not found")
	ErrScheduleNotFound = errors.New("schedule not found")
)

// Dataset is the immutable, indexed route table.
type Dataset struct {
	routes  map[string]*Route
	ids     []string                  // sorted route ids
	stopIdx map[string]map[string]int // route_id -> stop name -> index
}

func newDataset(routes map[string]*Route) *Dataset {
	d := &Dataset{
		routes:  routes,
		ids:     make([]string, 0, len(routes)),
		stopIdx: make(map[string]map[string]int, len(routes)),
	}
	for id, r := range routes {
		d.ids = append(d.ids, id)
		idx := make(map[string]int, len(r.Stops))
		for i, s := range r.Stops {
			idx[s.Name] = i
		}
		d.stopIdx[id] = idx
	}
	sort.Strings(d.ids)
	return d
}

// Routes returns the full route table keyed by route id. Callers must not
// modify it.
func (d *Dataset) Routes() map[string]*Route { return d.routes }

// RouteIDs returns the route ids in sorted order.
func (d *Dataset) RouteIDs() []string { return slices.Clone(d.ids) }

// Len returns the number of routes.
func (d *Dataset) Len() int { return len(d.routes) }

// Route looks up a single route.
func (d *Dataset) Route(routeID string) (*Route, error) {
	r, ok := d.routes[routeID]
	if !ok {
		return nil, ErrRouteNotFound
	}
	return r, nil
}

// Stops returns the ordered stops of one route.
func (d *Dataset) Stops(routeID string) ([]Stop, error) {
	r, err := d.Route(routeID)
	if err != nil {
		return nil, err
	}
	return r.Stops, nil
}

// AllStops returns every route's stop sequence keyed by route id.
func (d *Dataset) AllStops() map[string][]Stop {
	out := make(map[string][]Stop, len(d.routes))
	for id, r := range d.routes {
		out[id] = r.Stops
	}
	return out
}

// Schedule returns the timetable of a route for one day type.
func (d *Dataset) Schedule(routeID string, dayType DayType) (Schedule, error) {
	r, err := d.Route(routeID)
	if err != nil {
		return Schedule{}, err
	}
	s, ok := r.Schedules[dayType]
	if !ok {
		return Schedule{}, ErrScheduleNotFound
	}
	return s, nil
}

// StopIndex returns the position of a stop within its route, or -1.
func (d *Dataset) StopIndex(routeID, stopName string) int {
	idx, ok := d.stopIdx[routeID][stopName]
	if !ok {
		return -1
	}
	return idx
}

// TimesAt returns the times served at a stop index for one day type. A
// missing schedule yields nil.
func (d *Dataset) TimesAt(routeID string, dayType DayType, stopIndex int) []string {
	r, ok := d.routes[routeID]
	if !ok {
		return nil
	}
	s, ok := r.Schedules[dayType]
	if !ok || stopIndex < 0 || stopIndex >= len(s.Times) {
		return nil
	}
	return s.Times[stopIndex]
}

// HasTime reports whether clock is served at the stop on the given day type.
func (d *Dataset) HasTime(routeID, stopName string, dayType DayType, clock string) bool {
	want := calendar.ClockValue(clock)
	if want < 0 {
		return false
	}
	for _, t := range d.TimesAt(routeID, dayType, d.StopIndex(routeID, stopName)) {
		if calendar.ClockValue(t) == want {
			return true
		}
	}
	return false
}

// ServiceTimes returns the de-duplicated union of weekday and weekend times
// at a stop, ordered by numeric HHMM value.
func (d *Dataset) ServiceTimes(routeID, stopName string) []string {
	idx := d.StopIndex(routeID, stopName)
	if idx < 0 {
		return nil
	}
	seen := map[string]struct{}{}
	var out []string
	for _, dt := range DayTypes {
		for _, t := range d.TimesAt(routeID, dt, idx) {
			if _, ok := seen[t]; ok {
				continue
			}
			seen[t] = struct{}{}
			out = append(out, t)
		}
	}
	SortClocks(out)
	return out
}

// SortClocks orders HH:MM strings by their numeric value.
func SortClocks(times []string) {
	sort.SliceStable(times, func(i, j int) bool {
		return calendar.ClockValue(times[i]) < calendar.ClockValue(times[j])
	})
}

// StopTimetable returns the weekday and weekend times of the stop at
// stopIndex.
func (d *Dataset) StopTimetable(routeID string, stopIndex int) (StopTimetable, error) {
	r, err := d.Route(routeID)
	if err != nil {
		return StopTimetable{}, err
	}
	if stopIndex < 0 || stopIndex >= len(r.Stops) {
		return StopTimetable{}, ErrStopNotFound
	}
	stop := r.Stops[stopIndex]
	return StopTimetable{
		RouteID:     routeID,
		StopName:    stop.Name,
		Description: stop.Description,
		Position:    stopIndex + 1,
		StopCount:   len(r.Stops),
		Weekday:     nonNil(d.TimesAt(routeID, Weekday, stopIndex)),
		Weekend:     nonNil(d.TimesAt(routeID, Weekend, stopIndex)),
	}, nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
