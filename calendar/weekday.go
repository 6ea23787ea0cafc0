package calendar

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var ErrUnknownWeekday = errors.New("unknown weekday")

var weekdayNames = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// Weekdays lists the days Sunday first, the order used by the grid.
var Weekdays = []time.Weekday{
	time.Sunday, time.Monday, time.Tuesday, time.Wednesday,
	time.Thursday, time.Friday, time.Saturday,
}

// ParseWeekday accepts a full English day name in any case.
func ParseWeekday(name string) (time.Weekday, error) {
	wd, ok := weekdayNames[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownWeekday, name)
	}
	return wd, nil
}

// IsWeekdayName reports whether ParseWeekday would accept name.
func IsWeekdayName(name string) bool {
	_, err := ParseWeekday(name)
	return err == nil
}

// IsWeekend reports whether wd is Saturday or Sunday.
func IsWeekend(wd time.Weekday) bool {
	return wd == time.Saturday || wd == time.Sunday
}

// DayOffset is the number of days from an anchor weekday forward to target,
// always in [0,6] so the result stays inside the anchor's week.
func DayOffset(anchor, target time.Weekday) int {
	return (int(target) - int(anchor) + 7) % 7
}

// DateInWeek returns the date in anchor's week that falls on target.
func DateInWeek(anchor Date, target time.Weekday) Date {
	return anchor.AddDays(DayOffset(anchor.Weekday(), target))
}
