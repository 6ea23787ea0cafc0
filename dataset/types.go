package dataset

import "time"

// DayType selects a schedule variant.
type DayType string

const (
	Weekday DayType = "weekday"
	Weekend DayType = "weekend"
)

// DayTypes lists the supported schedule variants in display order.
var DayTypes = []DayType{Weekday, Weekend}

// Valid reports whether d is a supported day type.
func (d DayType) Valid() bool {
	return d == Weekday || d == Weekend
}

// DayTypeOf maps a weekday onto the schedule variant that serves it.
func DayTypeOf(wd time.Weekday) DayType {
	if wd == time.Saturday || wd == time.Sunday {
		return Weekend
	}
	return Weekday
}

// Stop is one position along a route.
type Stop struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// Schedule holds one ordered list of HH:MM times per stop index.
type Schedule struct {
	Times [][]string `json:"times"`
}

// Route is a bus route with its stop sequence and timetables.
type Route struct {
	ID          string               `json:"-"`
	Description string               `json:"description"`
	Stops       []Stop               `json:"stops"`
	Schedules   map[DayType]Schedule `json:"schedules"`
}

// StopTimetable is every time served at one stop, split by day type.
type StopTimetable struct {
	RouteID     string   `json:"routeId"`
	StopName    string   `json:"stopName"`
	Description string   `json:"description,omitempty"`
	Position    int      `json:"position"` // 1-based
	StopCount   int      `json:"stopCount"`
	Weekday     []string `json:"weekday"`
	Weekend     []string `json:"weekend"`
}
