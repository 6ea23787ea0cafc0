package icsexport

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	ics "github.com/arran4/golang-ical"

	"github.com/theoremus-urban-solutions/stop-calendar/calendar"
)

func testExporter() *Exporter {
	return &Exporter{
		TZID:         "America/Halifax",
		Filename:     "kv-go-schedule.ics",
		CalendarName: "KV Go Schedule",
		ProductID:    "-//KV Go//Schedule Generator//EN",
		Now:          func() time.Time { return time.Date(2024, time.June, 1, 12, 0, 0, 0, time.UTC) },
	}
}

func testEvents(t *testing.T, items ...calendar.Selection) []calendar.Event {
	t.Helper()
	return testEventsAt(t, calendar.NewDate(2024, time.June, 10), items...)
}

func testEventsAt(t *testing.T, anchor calendar.Date, items ...calendar.Selection) []calendar.Event {
	t.Helper()
	loc, err := calendar.LoadLocation("America/Halifax")
	if err != nil {
		t.Fatalf("LoadLocation: %v", err)
	}
	events, err := calendar.NewProjector(loc, "KV Go Bus").Project(items, anchor)
	if err != nil {
		t.Fatalf("Project: %v", err)
	}
	return events
}

func TestExport(t *testing.T) {
	events := testEvents(t,
		calendar.Selection{RouteID: "Go1", StopName: "Main St", Time: "08:15", Days: []string{"Wednesday", "Friday"}},
		calendar.Selection{RouteID: "Go2", StopName: "Market Square", Time: "17:45", Days: []string{"Monday"}},
	)

	payload, err := testExporter().Export(events)
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if payload.Filename != "kv-go-schedule.ics" || payload.ContentType != ContentType {
		t.Errorf("payload meta = %q, %q", payload.Filename, payload.ContentType)
	}
	if payload.Events != 3 {
		t.Errorf("payload.Events = %d, want 3", payload.Events)
	}
	if n := strings.Count(string(payload.Data), "BEGIN:VEVENT"); n != 3 {
		t.Errorf("VEVENT count = %d, want 3", n)
	}

	cal, err := ics.ParseCalendar(bytes.NewReader(payload.Data))
	if err != nil {
		t.Fatalf("ParseCalendar: %v", err)
	}
	parsed := cal.Events()
	if len(parsed) != 3 {
		t.Fatalf("parsed events = %d, want 3", len(parsed))
	}

	first := parsed[0]
	// 08:15 Halifax daylight time is 11:15 UTC.
	start := first.GetProperty(ics.ComponentPropertyDtStart)
	if start == nil || start.Value != "20240612T111500Z" {
		t.Fatalf("DTSTART = %+v, want 20240612T111500Z", start)
	}
	if _, ok := start.ICalParameters[string(ics.ParameterTzid)]; ok {
		t.Error("DTSTART must not reference a TZID without a VTIMEZONE")
	}
	end := first.GetProperty(ics.ComponentPropertyDtEnd)
	if end == nil || end.Value != "20240612T112000Z" {
		t.Errorf("DTEND = %+v, want 20240612T112000Z", end)
	}
	got, err := first.GetStartAt()
	if err != nil || !got.Equal(events[0].Start) {
		t.Errorf("GetStartAt() = %s, %v; want %s", got, err, events[0].Start)
	}
	if strings.Contains(string(payload.Data), "TZID=") {
		t.Errorf("calendar references a TZID without a VTIMEZONE:\n%s", payload.Data)
	}

	checks := map[ics.ComponentProperty]string{
		ics.ComponentPropertySummary:     "KV Go Bus - Go1",
		ics.ComponentPropertyLocation:    "Main St",
		ics.ComponentPropertyStatus:      "CONFIRMED",
		ics.ComponentPropertyTransp:      "TRANSPARENT",
		ics.ComponentPropertyDescription: "Bus arrival at Main St",
	}
	for prop, want := range checks {
		if p := first.GetProperty(prop); p == nil || p.Value != want {
			t.Errorf("%s = %+v, want %q", prop, p, want)
		}
	}
	if first.Id() != UID(events[0]) {
		t.Errorf("UID = %q, want %q", first.Id(), UID(events[0]))
	}
}

func TestExport_WinterOffset(t *testing.T) {
	events := testEventsAt(t, calendar.NewDate(2024, time.January, 8),
		calendar.Selection{RouteID: "Go1", StopName: "Main St", Time: "08:15", Days: []string{"Monday"}},
	)
	payload, err := testExporter().Export(events)
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	// Atlantic standard time is UTC-4.
	if !strings.Contains(string(payload.Data), "DTSTART:20240108T121500Z") {
		t.Errorf("missing standard-time DTSTART:\n%s", payload.Data)
	}
}

func TestExport_Empty(t *testing.T) {
	payload, err := testExporter().Export(nil)
	if err != nil {
		t.Fatalf("Export(nil): %v", err)
	}
	if strings.Contains(string(payload.Data), "BEGIN:VEVENT") || !strings.Contains(string(payload.Data), "BEGIN:VCALENDAR") {
		t.Errorf("unexpected empty calendar:\n%s", payload.Data)
	}
}

func TestExport_Atomic(t *testing.T) {
	events := testEvents(t,
		calendar.Selection{RouteID: "Go1", StopName: "Main St", Time: "08:15", Days: []string{"Monday", "Tuesday"}},
	)
	events[1].Duration = 0

	payload, err := testExporter().Export(events)
	if !errors.Is(err, ErrGeneration) {
		t.Fatalf("error = %v, want ErrGeneration", err)
	}
	if payload != nil {
		t.Error("a failed export must not return a partial payload")
	}
}

func TestExport_BadZone(t *testing.T) {
	for _, zone := range []string{"Mars/Olympus", "Local", ""} {
		x := testExporter()
		x.TZID = zone
		if _, err := x.Export(nil); !errors.Is(err, ErrGeneration) {
			t.Errorf("TZID %q: error = %v, want ErrGeneration", zone, err)
		}
	}
}

func TestUID(t *testing.T) {
	events := testEvents(t,
		calendar.Selection{RouteID: "Go1", StopName: "Main St", Time: "08:15", Days: []string{"Monday", "Tuesday"}},
	)
	again := testEvents(t,
		calendar.Selection{RouteID: "Go1", StopName: "Main St", Time: "08:15", Days: []string{"Monday"}},
	)
	if UID(events[0]) != UID(again[0]) {
		t.Error("UID should be stable for the same arrival")
	}
	if UID(events[0]) == UID(events[1]) {
		t.Error("UID should differ between days")
	}
}
