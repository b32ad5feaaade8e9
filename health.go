package arnav

import (
	"encoding/json"
	"net/http"
)

type healthResponse struct {
	Status      string `json:"status"`
	RouteLoaded bool   `json:"route_loaded"`
	LastFix     string `json:"last_fix,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	resp := healthResponse{
		Status:      "ok",
		RouteLoaded: s.nav.Route() != nil,
	}
	if f, ok := s.nav.Last(); ok {
		resp.LastFix = f.Timestamp
	}
	_ = json.NewEncoder(w).Encode(resp)
}
