package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"

	"github.com/theoremus-urban-solutions/stop-calendar/config"
	"github.com/theoremus-urban-solutions/stop-calendar/dataset"
	"github.com/theoremus-urban-solutions/stop-calendar/internal"
)

// Globals are shared by every command.
type Globals struct {
	Config  string `help:"Path to config.yml." short:"c"`
	Dataset string `help:"Route dataset file or URL (overrides config)."`

	logger *log.Logger
}

var CLI struct {
	Globals

	Version  kong.VersionFlag `help:"Print version."`
	Serve    ServeCmd         `cmd:"" default:"1" help:"Serve the route API and calendar export."`
	Export   ExportCmd        `cmd:"" help:"Write an .ics file from a generate-ics request body."`
	Calendar CalendarCmd      `cmd:"" help:"Print a month grid with the selected week."`
	Routes   RoutesCmd        `cmd:"" help:"List routes, stops and stop times."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("stop-calendar"),
		kong.Description("Bus stop schedule to calendar generator"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{Compact: true}),
		kong.Vars{"version": "v0.1.0"},
	)
	err := ctx.Run(&CLI.Globals)
	ctx.FatalIfErrorf(err)
}

// setup loads configuration and logging. A missing config file falls back to
// defaults unless a path was given explicitly.
func (g *Globals) setup() error {
	var err error
	if g.Config != "" {
		err = config.LoadAppConfig(g.Config)
	} else if err = config.LoadAppConfig(); os.IsNotExist(err) {
		config.Config, err = config.Parse(nil)
	}
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if g.Dataset != "" {
		config.Config.Dataset.Source = g.Dataset
	}
	g.logger, err = internal.InitLogging(config.Config.Logging)
	return err
}

// loadDataset fetches and validates the configured route dataset.
func (g *Globals) loadDataset(ctx context.Context) (*dataset.Dataset, error) {
	cfg := config.Config.Dataset
	start := time.Now()
	raw, err := newFetcher(time.Duration(cfg.TimeoutMS) * time.Millisecond).fetch(ctx, cfg.Source)
	if err != nil {
		return nil, fmt.Errorf("read dataset: %w", err)
	}
	ds, err := dataset.LoadBytes(raw)
	if err != nil {
		return nil, err
	}
	g.logger.Info("dataset loaded", "source", cfg.Source, "routes", ds.Len(), "elapsed", internal.Elapsed(start))
	return ds, nil
}
