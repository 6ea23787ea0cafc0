package stopcalendar

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/theoremus-urban-solutions/stop-calendar/dataset"
)

type routesResponse struct {
	Routes map[string]*dataset.Route `json:"routes"`
}

func (s *Server) handleRoutes(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, routesResponse{Routes: s.data.Routes()})
}

func (s *Server) handleRoute(w http.ResponseWriter, r *http.Request) {
	route, err := s.data.Route(mux.Vars(r)["routeId"])
	if err != nil {
		s.fail(w, notFound(msgRouteNotFound, err))
		return
	}
	writeJSON(w, http.StatusOK, route)
}

func (s *Server) handleStops(w http.ResponseWriter, r *http.Request) {
	routeID := r.URL.Query().Get("routeId")
	if routeID == "" {
		writeJSON(w, http.StatusOK, s.data.AllStops())
		return
	}
	stops, err := s.data.Stops(routeID)
	if err != nil {
		s.fail(w, notFound(msgRouteNotFound, err))
		return
	}
	writeJSON(w, http.StatusOK, stops)
}

func (s *Server) handleSchedule(w http.ResponseWriter, r *http.Request) {
	routeID, dayType, err := scheduleParams(r.URL.Query())
	if err != nil {
		s.fail(w, asAPIError(err))
		return
	}
	sched, err := s.data.Schedule(routeID, dayType)
	switch {
	case errors.Is(err, dataset.ErrRouteNotFound):
		s.fail(w, notFound(msgRouteNotFound, err))
	case err != nil:
		s.fail(w, notFound(msgScheduleNotFound, err))
	default:
		writeJSON(w, http.StatusOK, sched)
	}
}

func (s *Server) handleStopTimes(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	idx, err := parseStopIndex(vars["index"])
	if err != nil {
		s.fail(w, asAPIError(err))
		return
	}
	tt, err := s.data.StopTimetable(vars["routeId"], idx)
	switch {
	case errors.Is(err, dataset.ErrRouteNotFound):
		s.fail(w, notFound(msgRouteNotFound, err))
	case err != nil:
		s.fail(w, notFound(msgStopNotFound, err))
	default:
		writeJSON(w, http.StatusOK, tt)
	}
}

func (s *Server) handleGenerateICS(w http.ResponseWriter, r *http.Request) {
	if s.cfg.Server.MaxBodyBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, s.cfg.Server.MaxBodyBytes)
	}
	var req ExportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.fail(w, invalidRequest(msgInvalidRequest, err))
		return
	}
	payload, err := s.export.run(&req)
	if err != nil {
		s.fail(w, asAPIError(err))
		return
	}

	s.log.Info("calendar exported", "items", len(req.ScheduleItems), "events", payload.Events, "startDate", req.StartDate)
	w.Header().Set("Content-Type", payload.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", payload.Filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(payload.Data)
}

func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	s.fail(w, notFound(msgNotFound, fmt.Errorf("%s %s", r.Method, r.URL.Path)))
}

func (s *Server) handleMethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	s.fail(w, &APIError{Kind: KindMethodNotAllowed, Message: msgMethodNotAllowed, Err: fmt.Errorf("%s %s", r.Method, r.URL.Path)})
}

// fail logs the detailed cause and sends the client-facing message.
func (s *Server) fail(w http.ResponseWriter, err *APIError) {
	if err.Status() < http.StatusInternalServerError {
		s.log.Warn("request rejected", "kind", err.Kind, "error", err)
	} else {
		s.log.Error("request failed", "kind", err.Kind, "error", err)
	}
	writeError(w, err)
}
