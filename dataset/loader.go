package dataset

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/theoremus-urban-solutions/stop-calendar/calendar"
)

// ErrMalformed wraps every load failure.
var ErrMalformed = errors.New("malformed route dataset")

type document struct {
	Routes map[string]*Route `json:"routes"`
}

// LoadBytes builds a Dataset from raw JSON.
func LoadBytes(raw []byte) (*Dataset, error) {
	return Load(bytes.NewReader(raw))
}

// Load decodes and validates a route dataset document.
func Load(r io.Reader) (*Dataset, error) {
	var doc document
	dec := json.NewDecoder(r)
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if doc.Routes == nil {
		return nil, fmt.Errorf("%w: missing top-level routes", ErrMalformed)
	}
	for id, route := range doc.Routes {
		if route == nil {
			return nil, fmt.Errorf("%w: route %q is null", ErrMalformed, id)
		}
		route.ID = id
		if err := validateRoute(route); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
		}
	}
	return newDataset(doc.Routes), nil
}

func validateRoute(r *Route) error {
	if r.ID == "" {
		return errors.New("empty route id")
	}
	if len(r.Stops) == 0 {
		return fmt.Errorf("route %s: no stops", r.ID)
	}
	seen := make(map[string]struct{}, len(r.Stops))
	for i, s := range r.Stops {
		if s.Name == "" {
			return fmt.Errorf("route %s: stop %d has no name", r.ID, i)
		}
		if _, dup := seen[s.Name]; dup {
			return fmt.Errorf("route %s: duplicate stop %q", r.ID, s.Name)
		}
		seen[s.Name] = struct{}{}
	}
	for dt, sched := range r.Schedules {
		if !dt.Valid() {
			return fmt.Errorf("route %s: unknown day type %q", r.ID, dt)
		}
		if len(sched.Times) != len(r.Stops) {
			return fmt.Errorf("route %s: %s schedule has %d time lists for %d stops",
				r.ID, dt, len(sched.Times), len(r.Stops))
		}
		for i, list := range sched.Times {
			for _, t := range list {
				if _, err := calendar.ParseClock(t); err != nil {
					return fmt.Errorf("route %s: %s stop %d: %w", r.ID, dt, i, err)
				}
			}
		}
	}
	return nil
}
