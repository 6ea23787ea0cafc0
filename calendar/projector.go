package calendar

import (
	"errors"
	"fmt"
	"time"
)

const (
	DefaultDuration = 5 * time.Minute
	StatusConfirmed = "CONFIRMED"
	BusyFree        = "FREE"
)

// Selection is one chosen stop arrival repeated on a set of weekdays.
type Selection struct {
	RouteID  string   `json:"routeId" validate:"required"`
	StopName string   `json:"stopName" validate:"required"`
	Time     string   `json:"time" validate:"required,clock"`
	Days     []string `json:"days" validate:"required,min=1,dive,weekday"`
}

// Event is a concrete occurrence of a Selection within the anchor week.
type Event struct {
	RouteID     string        `json:"routeId"`
	StopName    string        `json:"stopName"`
	Weekday     time.Weekday  `json:"weekday"`
	Start       time.Time     `json:"start"`
	Duration    time.Duration `json:"duration"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Location    string        `json:"location"`
	Status      string        `json:"status"`
	BusyStatus  string        `json:"busyStatus"`
}

// End returns Start plus Duration.
func (e Event) End() time.Time { return e.Start.Add(e.Duration) }

// Projector turns selections into events in one fixed zone.
type Projector struct {
	Location    *time.Location
	Duration    time.Duration
	TitlePrefix string
}

// NewProjector returns a Projector with the default event length.
func NewProjector(loc *time.Location, titlePrefix string) *Projector {
	return &Projector{Location: loc, Duration: DefaultDuration, TitlePrefix: titlePrefix}
}

// ProjectionError reports the selection and day that could not be projected.
type ProjectionError struct {
	Index int
	Day   string
	Err   error
}

func (e *ProjectionError) Error() string {
	if e.Day != "" {
		return fmt.Sprintf("selection %d, day %q: %v", e.Index, e.Day, e.Err)
	}
	return fmt.Sprintf("selection %d: %v", e.Index, e.Err)
}

func (e *ProjectionError) Unwrap() error { return e.Err }

// Project emits one event per selection per selected day, in input order.
// Duplicate days are not merged. Any bad time or day name fails the whole
// projection.
func (p *Projector) Project(items []Selection, anchor Date) ([]Event, error) {
	if p.Location == nil {
		return nil, errors.New("projector has no location")
	}
	dur := p.Duration
	if dur <= 0 {
		dur = DefaultDuration
	}
	events := make([]Event, 0, len(items))
	for i, item := range items {
		clock, err := ParseClock(item.Time)
		if err != nil {
			return nil, &ProjectionError{Index: i, Err: err}
		}
		for _, name := range item.Days {
			wd, err := ParseWeekday(name)
			if err != nil {
				return nil, &ProjectionError{Index: i, Day: name, Err: err}
			}
			date := DateInWeek(anchor, wd)
			events = append(events, Event{
				RouteID:     item.RouteID,
				StopName:    item.StopName,
				Weekday:     wd,
				Start:       date.At(clock.Hour, clock.Minute, p.Location),
				Duration:    dur,
				Title:       p.title(item.RouteID),
				Description: fmt.Sprintf("Bus arrival at %s", item.StopName),
				Location:    item.StopName,
				Status:      StatusConfirmed,
				BusyStatus:  BusyFree,
			})
		}
	}
	return events, nil
}

func (p *Projector) title(routeID string) string {
	if p.TitlePrefix == "" {
		return routeID
	}
	return p.TitlePrefix + " - " + routeID
}

// stopLabelMax is the longest stop name shown untruncated in a preview.
const stopLabelMax = 20

// ShortStop returns the stop name cut to fit a preview cell.
func (e Event) ShortStop() string {
	r := []rune(e.StopName)
	if len(r) <= stopLabelMax {
		return e.StopName
	}
	return string(r[:stopLabelMax]) + "..."
}

// Clock returns the event's wall clock as HH:MM.
func (e Event) Clock() string {
	return e.Start.Format("15:04")
}
