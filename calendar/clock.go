package calendar

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var ErrInvalidClock = errors.New("invalid clock time")

// Clock is a 24-hour wall clock time without seconds.
type Clock struct {
	Hour   int
	Minute int
}

// ParseClock parses H:MM or HH:MM, 24-hour, with or without zero padding.
func ParseClock(s string) (Clock, error) {
	h, m, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok || !isDigits(h, 1, 2) || !isDigits(m, 1, 2) {
		return Clock{}, fmt.Errorf("%w: %q", ErrInvalidClock, s)
	}
	hh, _ := strconv.Atoi(h)
	mm, _ := strconv.Atoi(m)
	if hh > 23 || mm > 59 {
		return Clock{}, fmt.Errorf("%w: %q", ErrInvalidClock, s)
	}
	return Clock{Hour: hh, Minute: mm}, nil
}

// IsClock reports whether ParseClock would accept s.
func IsClock(s string) bool {
	_, err := ParseClock(s)
	return err == nil
}

// Value is the numeric HHMM form, so 08:15 is 815.
func (c Clock) Value() int { return c.Hour*100 + c.Minute }

// ClockValue returns the HHMM value of s, or -1 when ParseClock rejects it.
func ClockValue(s string) int {
	c, err := ParseClock(s)
	if err != nil {
		return -1
	}
	return c.Value()
}

func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute)
}

func isDigits(s string, minLen, maxLen int) bool {
	if len(s) < minLen || len(s) > maxLen {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
