package stopcalendar

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/mux"
	"golang.org/x/sync/errgroup"

	"github.com/theoremus-urban-solutions/stop-calendar/calendar"
	"github.com/theoremus-urban-solutions/stop-calendar/config"
	"github.com/theoremus-urban-solutions/stop-calendar/dataset"
	"github.com/theoremus-urban-solutions/stop-calendar/icsexport"
)

// Server serves the route dataset and the calendar export.
type Server struct {
	cfg     config.AppConfig
	data    *dataset.Dataset
	export  *exportPipeline
	log     *log.Logger
	handler http.Handler
}

// NewServer wires the handlers for a loaded dataset.
func NewServer(cfg config.AppConfig, data *dataset.Dataset, logger *log.Logger) (*Server, error) {
	if data == nil {
		return nil, errors.New("nil dataset")
	}
	if logger == nil {
		logger = log.Default()
	}
	loc, err := calendar.LoadLocation(cfg.Export.Timezone)
	if err != nil {
		return nil, err
	}
	s := &Server{
		cfg:  cfg,
		data: data,
		export: &exportPipeline{
			validate:  NewValidator(),
			cfg:       cfg.Export,
			data:      data,
			projector: NewProjector(cfg.Export, loc),
			exporter:  NewExporter(cfg.Export),
		},
		log: logger,
	}
	s.handler = s.routes()
	return s, nil
}

// NewProjector builds the projector described by the export settings.
func NewProjector(cfg config.ExportConfig, loc *time.Location) *calendar.Projector {
	p := calendar.NewProjector(loc, cfg.TitlePrefix)
	if cfg.EventMinutes > 0 {
		p.Duration = time.Duration(cfg.EventMinutes) * time.Minute
	}
	return p
}

// NewExporter builds the exporter described by the export settings.
func NewExporter(cfg config.ExportConfig) *icsexport.Exporter {
	return &icsexport.Exporter{
		TZID:         cfg.Timezone,
		Filename:     cfg.Filename,
		CalendarName: cfg.CalendarName,
		ProductID:    cfg.ProductID,
	}
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler { return s.handler }

func (s *Server) routes() http.Handler {
	r := mux.NewRouter()
	r.Use(recoverer(s.log), requestLogger(s.log))

	withCORS := cors(s.cfg.Server.AllowedOrigins)
	// Unmatched requests skip router middleware, so these carry CORS
	// themselves.
	notFound := withCORS(http.HandlerFunc(s.handleNotFound))
	notAllowed := withCORS(http.HandlerFunc(s.handleMethodNotAllowed))
	r.NotFoundHandler = notFound
	r.MethodNotAllowedHandler = notAllowed

	var api *mux.Router
	if base := s.cfg.Server.BasePath; base == "" || base == "/" {
		api = r.NewRoute().Subrouter()
	} else {
		api = r.PathPrefix(base).Subrouter()
		api.NotFoundHandler = notFound
	}
	api.MethodNotAllowedHandler = notAllowed
	api.Use(withCORS)
	api.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	api.HandleFunc("/routes", s.handleRoutes).Methods(http.MethodGet)
	api.HandleFunc("/routes/{routeId}", s.handleRoute).Methods(http.MethodGet)
	api.HandleFunc("/routes/{routeId}/stops/{index}/times", s.handleStopTimes).Methods(http.MethodGet)
	api.HandleFunc("/stops", s.handleStops).Methods(http.MethodGet)
	api.HandleFunc("/schedule", s.handleSchedule).Methods(http.MethodGet)
	api.HandleFunc("/generate-ics", s.handleGenerateICS).Methods(http.MethodPost, http.MethodOptions)

	if dir := s.cfg.Server.StaticDir; dir != "" {
		r.PathPrefix("/").Handler(http.FileServer(http.Dir(dir)))
	}
	return r
}

// Run listens until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	addr := fmt.Sprintf(":%d", s.cfg.Server.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.log.Info("server listening", "addr", addr, "basePath", s.cfg.Server.BasePath)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		s.log.Info("shutdown signal received")
		timeout := time.Duration(s.cfg.Server.ShutdownTimeoutMS) * time.Millisecond
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		sctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		if err := srv.Shutdown(sctx); err != nil {
			return fmt.Errorf("server shutdown: %w", err)
		}
		s.log.Info("server shut down successfully")
		return nil
	})
	return g.Wait()
}
