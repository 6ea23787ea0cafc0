package stopcalendar

import (
	"github.com/go-playground/validator/v10"

	"github.com/theoremus-urban-solutions/stop-calendar/calendar"
	"github.com/theoremus-urban-solutions/stop-calendar/config"
	"github.com/theoremus-urban-solutions/stop-calendar/dataset"
	"github.com/theoremus-urban-solutions/stop-calendar/icsexport"
)

type exportPipeline struct {
	validate  *validator.Validate
	cfg       config.ExportConfig
	data      *dataset.Dataset
	projector *calendar.Projector
	exporter  *icsexport.Exporter
}

// run validates the request, projects it onto the anchor week and
// serializes the result. Errors are always *APIError.
func (p *exportPipeline) run(req *ExportRequest) (*icsexport.Payload, error) {
	anchor, err := parseExportRequest(p.validate, req)
	if err != nil {
		return nil, err
	}
	if !p.cfg.AllowOffSchedule {
		if err := checkAgainstSchedule(p.data, req.ScheduleItems); err != nil {
			return nil, err
		}
	}
	events, err := p.projector.Project(req.ScheduleItems, anchor)
	if err != nil {
		return nil, generationFailure(err)
	}
	payload, err := p.exporter.Export(events)
	if err != nil {
		return nil, generationFailure(err)
	}
	return payload, nil
}

// ExportCalendar runs the same export as POST /generate-ics without a
// server.
func ExportCalendar(cfg config.AppConfig, data *dataset.Dataset, req ExportRequest) (*icsexport.Payload, error) {
	loc, err := calendar.LoadLocation(cfg.Export.Timezone)
	if err != nil {
		return nil, err
	}
	p := &exportPipeline{
		validate:  NewValidator(),
		cfg:       cfg.Export,
		data:      data,
		projector: NewProjector(cfg.Export, loc),
		exporter:  NewExporter(cfg.Export),
	}
	return p.run(&req)
}
