package icsexport

import (
	"errors"
	"fmt"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/google/uuid"

	"github.com/theoremus-urban-solutions/stop-calendar/calendar"
)

// ContentType is the MIME type of an export payload.
const ContentType = "text/calendar"

var ErrGeneration = errors.New("failed to generate ICS file")

// uidNamespace scopes the deterministic event UIDs.
var uidNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://kvgo.example/stop-calendar"))

// Payload is a generated calendar file.
type Payload struct {
	Data        []byte
	Filename    string
	ContentType string
	Events      int
}

// Exporter builds calendars in one fixed zone.
type Exporter struct {
	TZID         string
	Filename     string
	CalendarName string
	ProductID    string
	// Now stamps DTSTAMP; nil means time.Now.
	Now func() time.Time
}

// Export writes one VEVENT per event. Start and end are UTC instants; TZID
// only names the calendar's display zone.
func (x *Exporter) Export(events []calendar.Event) (*Payload, error) {
	if _, err := calendar.LoadLocation(x.TZID); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGeneration, err)
	}
	for i, e := range events {
		if err := check(e); err != nil {
			return nil, fmt.Errorf("%w: event %d: %v", ErrGeneration, i, err)
		}
	}

	now := time.Now
	if x.Now != nil {
		now = x.Now
	}
	stamp := now().UTC()

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	if x.ProductID != "" {
		cal.SetProductId(x.ProductID)
	}
	if x.CalendarName != "" {
		cal.SetXWRCalName(x.CalendarName)
	}
	cal.SetXWRTimezone(x.TZID)

	for _, e := range events {
		ev := cal.AddEvent(UID(e))
		ev.SetDtStampTime(stamp)
		ev.SetStartAt(e.Start)
		ev.SetEndAt(e.End())
		ev.SetSummary(e.Title)
		ev.SetDescription(e.Description)
		ev.SetLocation(e.Location)
		ev.SetStatus(ics.ObjectStatusConfirmed)
		ev.SetTimeTransparency(transparency(e.BusyStatus))
	}

	return &Payload{
		Data:        []byte(cal.Serialize()),
		Filename:    x.Filename,
		ContentType: ContentType,
		Events:      len(events),
	}, nil
}

// UID derives a stable identifier so re-importing the same stop arrival
// updates the existing entry instead of duplicating it.
func UID(e calendar.Event) string {
	key := fmt.Sprintf("%s|%s|%s", e.RouteID, e.StopName, e.Start.Format("2006-01-02T15:04"))
	return uuid.NewSHA1(uidNamespace, []byte(key)).String()
}

func transparency(busy string) ics.TimeTransparency {
	if busy == calendar.BusyFree {
		return ics.TransparencyTransparent
	}
	return ics.TransparencyOpaque
}

func check(e calendar.Event) error {
	switch {
	case e.Start.IsZero():
		return errors.New("missing start")
	case e.Duration <= 0:
		return errors.New("non-positive duration")
	case e.Title == "":
		return errors.New("missing title")
	case e.Start.Second() != 0:
		return errors.New("start has seconds")
	}
	return nil
}
