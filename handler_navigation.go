package arnav

import (
	"errors"
	"net/http"

	"github.com/theoremus-urban-solutions/arnav/directions"
	"github.com/theoremus-urban-solutions/arnav/formatter"
)

func (s *Server) handleStateJSON(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	frame, ok := s.nav.Last()
	if parseBool(r.URL.Query().Get("visibleOnly")) {
		frame = formatter.FilterVisibleAnchors(frame)
	}
	_, _ = w.Write(formatter.NewResponseBuilder().BuildJSON(formatter.WrapState(frame, ok, s.producer)))
}

func (s *Server) handleRouteGeoJSON(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/geo+json")
	frame, _ := s.nav.Last()
	buf, err := formatter.NewResponseBuilder().BuildGeoJSON(s.nav.Route(), frame.Anchors, parseBool(r.URL.Query().Get("simplified")))
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write(buildErrorPayload("routeGeoJSON", err.Error()))
		return
	}
	_, _ = w.Write(buf)
}

func (s *Server) handleRouteGPX(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/gpx+xml")
	frame, _ := s.nav.Last()
	_, _ = w.Write(formatter.NewResponseBuilder().BuildGPX(s.producer, s.nav.Route(), frame.Anchors))
}

// handleLoadRoute fetches walking directions for ?origin=lat,lon&destination=lat,lon
// and loads them into the navigator.
func (s *Server) handleLoadRoute(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		_, _ = w.Write(buildErrorPayload("loadRoute", "POST required"))
		return
	}
	if s.routes == nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write(buildErrorPayload("loadRoute", "no directions provider configured"))
		return
	}

	q := r.URL.Query()
	origin, err := parseCoordinate("origin", q.Get("origin"))
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write(buildErrorPayload("loadRoute", err.Error()))
		return
	}
	dest, err := parseCoordinate("destination", q.Get("destination"))
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write(buildErrorPayload("loadRoute", err.Error()))
		return
	}

	leg, err := s.routes.Route(r.Context(), origin, dest)
	if err != nil {
		status := http.StatusBadGateway
		if errors.Is(err, directions.ErrNoRoute) {
			status = http.StatusNotFound
		}
		s.logger.Warn("directions request failed", "error", err)
		w.WriteHeader(status)
		_, _ = w.Write(buildErrorPayload("loadRoute", err.Error()))
		return
	}
	rt, err := s.nav.LoadRoute(leg.Steps, dest, q.Get("name"))
	if err != nil {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write(buildErrorPayload("loadRoute", err.Error()))
		return
	}

	buf, err := formatter.NewResponseBuilder().BuildGeoJSON(rt, nil, true)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write(buildErrorPayload("loadRoute", err.Error()))
		return
	}
	_, _ = w.Write(buf)
}
