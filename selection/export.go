package selection

import (
	"time"

	"github.com/theoremus-urban-solutions/stop-calendar/calendar"
)

// NoticeTTL is how long a transient notice stays visible.
const NoticeTTL = 5 * time.Second

// Notice is a dismissible status message.
type Notice struct {
	Text      string
	Error     bool
	ExpiresAt time.Time
}

// Request is the payload sent to the export endpoint.
type Request struct {
	ScheduleItems []calendar.Selection `json:"scheduleItems"`
	StartDate     string               `json:"startDate"`
}

// Sender performs the export call, e.g. an HTTP POST to /generate-ics.
type Sender func(Request) error

// Export sends the complete items. The trigger stays disabled while the
// call runs and is re-enabled afterwards whatever the outcome.
func (s *State) Export(send Sender, now time.Time) error {
	if s.exporting {
		return ErrExportInFlight
	}
	sel := s.Selections()
	if len(sel) == 0 {
		s.notify("No schedule items to generate", true, now)
		return ErrNothingToSend
	}
	s.exporting = true
	s.render()
	defer func() {
		s.exporting = false
		s.render()
	}()

	err := send(Request{ScheduleItems: sel, StartDate: s.anchor.String()})
	if err != nil {
		s.notify("Error generating ICS file", true, now)
		return err
	}
	s.notify("ICS file generated successfully!", false, now)
	return nil
}

// Notices returns the notices still visible at now. Only the latest notice
// is kept, as a new one replaces the old.
func (s *State) Notices(now time.Time) []Notice {
	var out []Notice
	for _, n := range s.notices {
		if now.Before(n.ExpiresAt) {
			out = append(out, n)
		}
	}
	return out
}

func (s *State) notify(text string, isErr bool, now time.Time) {
	s.notices = []Notice{{Text: text, Error: isErr, ExpiresAt: now.Add(NoticeTTL)}}
}
