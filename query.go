package stopcalendar

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/theoremus-urban-solutions/stop-calendar/calendar"
	"github.com/theoremus-urban-solutions/stop-calendar/dataset"
)

// ExportRequest is the body of POST /generate-ics.
type ExportRequest struct {
	ScheduleItems []calendar.Selection `json:"scheduleItems" validate:"required,min=1,dive"`
	StartDate     string               `json:"startDate" validate:"required,datetime=2006-01-02"`
}

// NewValidator returns a validator with the clock and weekday tags.
func NewValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("clock", func(fl validator.FieldLevel) bool {
		return fl.Field().Kind() == reflect.String && calendar.IsClock(fl.Field().String())
	})
	_ = v.RegisterValidation("weekday", func(fl validator.FieldLevel) bool {
		return fl.Field().Kind() == reflect.String && calendar.IsWeekdayName(fl.Field().String())
	})
	return v
}

// parseExportRequest checks the shape of the body and returns the anchor.
func parseExportRequest(v *validator.Validate, req *ExportRequest) (calendar.Date, error) {
	if err := v.Struct(req); err != nil {
		return calendar.Date{}, invalidRequest(msgInvalidRequest, err)
	}
	anchor, err := calendar.ParseDate(req.StartDate)
	if err != nil {
		return calendar.Date{}, invalidRequest(msgInvalidRequest, err)
	}
	return anchor, nil
}

// checkAgainstSchedule enforces that every item names a served arrival: the
// route and stop exist and the time runs on each selected day's schedule.
func checkAgainstSchedule(ds *dataset.Dataset, items []calendar.Selection) error {
	for i, it := range items {
		if _, err := ds.Route(it.RouteID); err != nil {
			return invalidRequest(msgInvalidRequest, fmt.Errorf("item %d: route %q: %w", i, it.RouteID, err))
		}
		if ds.StopIndex(it.RouteID, it.StopName) < 0 {
			return invalidRequest(msgInvalidRequest, fmt.Errorf("item %d: stop %q: %w", i, it.StopName, dataset.ErrStopNotFound))
		}
		for _, name := range it.Days {
			wd, err := calendar.ParseWeekday(name)
			if err != nil {
				return invalidRequest(msgInvalidRequest, fmt.Errorf("item %d: %w", i, err))
			}
			dt := dataset.DayTypeOf(wd)
			if !ds.HasTime(it.RouteID, it.StopName, dt, it.Time) {
				return invalidRequest(msgInvalidRequest,
					fmt.Errorf("item %d: %s is not served at %s on %s", i, it.Time, it.StopName, wd))
			}
		}
	}
	return nil
}

// scheduleParams reads routeId and dayType from the query string.
func scheduleParams(q map[string][]string) (string, dataset.DayType, error) {
	routeID := strings.TrimSpace(first(q["routeId"]))
	dayType := strings.TrimSpace(first(q["dayType"]))
	if routeID == "" || dayType == "" {
		return "", "", invalidRequest(msgScheduleParams, nil)
	}
	return routeID, dataset.DayType(dayType), nil
}

func parseStopIndex(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, invalidRequest("Stop index must be a non-negative integer", err)
	}
	return n, nil
}

func first(v []string) string {
	if len(v) == 0 {
		return ""
	}
	return v[0]
}

// Clock used by handlers; overridden in tests.
var nowFunc = time.Now
