package stopcalendar

import (
	"net/http"

	"github.com/theoremus-urban-solutions/stop-calendar/utils"
)

type healthResponse struct {
	Status   string `json:"status"`
	Routes   int    `json:"routes"`
	Timezone string `json:"timezone"`
	Time     string `json:"time"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{
		Status:   "ok",
		Routes:   s.data.Len(),
		Timezone: s.cfg.Export.Timezone,
		Time:     utils.Iso8601FromTime(nowFunc()),
	})
}
