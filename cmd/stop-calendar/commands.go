package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	stopcalendar "github.com/theoremus-urban-solutions/stop-calendar"
	"github.com/theoremus-urban-solutions/stop-calendar/calendar"
	"github.com/theoremus-urban-solutions/stop-calendar/config"
	"github.com/theoremus-urban-solutions/stop-calendar/formatter"
	"github.com/theoremus-urban-solutions/stop-calendar/selection"
)

// ServeCmd runs the HTTP API.
type ServeCmd struct {
	Port int `help:"Listen port (overrides config and PORT)."`
}

func (c *ServeCmd) Run(g *Globals) error {
	if err := g.setup(); err != nil {
		return err
	}
	if c.Port > 0 {
		config.Config.Server.Port = c.Port
	}
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	ds, err := g.loadDataset(ctx)
	if err != nil {
		return err
	}
	srv, err := stopcalendar.NewServer(config.Config, ds, g.logger)
	if err != nil {
		return err
	}
	return srv.Run(ctx)
}

// ExportCmd is the one-shot export: request JSON in, .ics out.
type ExportCmd struct {
	Request string `arg:"" help:"Request JSON file, URL or - for stdin."`
	Out     string `help:"Output file; defaults to the configured filename." short:"o"`
}

func (c *ExportCmd) Run(g *Globals) error {
	if err := g.setup(); err != nil {
		return err
	}
	ctx := context.Background()
	ds, err := g.loadDataset(ctx)
	if err != nil {
		return err
	}
	raw, err := newFetcher(30*time.Second).fetch(ctx, c.Request)
	if err != nil {
		return fmt.Errorf("read request: %w", err)
	}
	var req stopcalendar.ExportRequest
	if err := json.Unmarshal(raw, &req); err != nil {
		return fmt.Errorf("decode request: %w", err)
	}
	payload, err := stopcalendar.ExportCalendar(config.Config, ds, req)
	if err != nil {
		return err
	}
	out := c.Out
	if out == "" {
		out = payload.Filename
	}
	if err := os.WriteFile(out, payload.Data, 0644); err != nil {
		return err
	}
	g.logger.Info("calendar written", "file", out, "events", payload.Events)
	return nil
}

// CalendarCmd prints a month grid.
type CalendarCmd struct {
	Month      string `help:"Month to show as YYYY-MM; defaults to the anchor's month."`
	Anchor     string `help:"Selected week start as YYYY-MM-DD; defaults to today."`
	Selections string `help:"Request JSON whose scheduleItems are previewed."`
}

func (c *CalendarCmd) Run(g *Globals) error {
	if err := g.setup(); err != nil {
		return err
	}
	loc, err := calendar.LoadLocation(config.Config.Export.Timezone)
	if err != nil {
		return err
	}
	ds, err := g.loadDataset(context.Background())
	if err != nil {
		return err
	}
	today := calendar.Today(loc)
	state := selection.New(ds, stopcalendar.NewProjector(config.Config.Export, loc), today)

	anchor := today
	if c.Selections != "" {
		raw, err := os.ReadFile(c.Selections)
		if err != nil {
			return err
		}
		var req stopcalendar.ExportRequest
		if err := json.Unmarshal(raw, &req); err != nil {
			return fmt.Errorf("decode selections: %w", err)
		}
		for i, sel := range req.ScheduleItems {
			if _, err := state.AddSelection(sel); err != nil {
				return fmt.Errorf("selection %d: %w", i, err)
			}
		}
		if req.StartDate != "" {
			if anchor, err = calendar.ParseDate(req.StartDate); err != nil {
				return err
			}
		}
	}
	if c.Anchor != "" {
		if anchor, err = calendar.ParseDate(c.Anchor); err != nil {
			return err
		}
	}
	state.SetAnchor(anchor)
	state.ShowMonth(anchor.Year, anchor.Month)
	if c.Month != "" {
		t, err := time.Parse("2006-01", c.Month)
		if err != nil {
			return fmt.Errorf("invalid month %q: %w", c.Month, err)
		}
		state.ShowMonth(t.Year(), t.Month())
	}

	view := state.View()
	fmt.Println(formatter.RenderGrid(view.Grid))
	if len(state.Selections()) > 0 {
		fmt.Println(formatter.RenderWeekEvents(view.Grid))
	}
	return nil
}

// RoutesCmd lists the dataset.
type RoutesCmd struct {
	Route string `arg:"" optional:"" help:"Route to list stops for."`
	Stop  int    `help:"1-based stop position to show times for." default:"0"`
}

func (c *RoutesCmd) Run(g *Globals) error {
	if err := g.setup(); err != nil {
		return err
	}
	ds, err := g.loadDataset(context.Background())
	if err != nil {
		return err
	}
	if c.Route == "" {
		fmt.Println(formatter.RenderRoutes(ds))
		return nil
	}
	route, err := ds.Route(c.Route)
	if err != nil {
		return fmt.Errorf("%s: %w", c.Route, err)
	}
	if c.Stop <= 0 {
		fmt.Println(formatter.RenderStops(route))
		return nil
	}
	tt, err := ds.StopTimetable(c.Route, c.Stop-1)
	if err != nil {
		return fmt.Errorf("%s stop %d: %w", c.Route, c.Stop, err)
	}
	fmt.Println(formatter.RenderStopTimetable(tt))
	return nil
}
