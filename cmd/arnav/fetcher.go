package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/theoremus-urban-solutions/arnav/directions"
	"github.com/theoremus-urban-solutions/arnav/fixsource"
	"github.com/theoremus-urban-solutions/arnav/route"
)

// fetcher loads directions and GPS traces from URLs, local files or the
// directions provider. This is CLI-specific logic and is not part of the
// core library.
type fetcher struct {
	source *fixsource.Client
	routes *directions.Client
}

func newFetcher(source *fixsource.Client, routes *directions.Client) *fetcher {
	return &fetcher{source: source, routes: routes}
}

// leg reads a saved directions response from urlOrPath, or asks the
// provider for a route when urlOrPath is empty.
func (f *fetcher) leg(ctx context.Context, urlOrPath string, origin, destination route.Point) (directions.Leg, error) {
	if urlOrPath == "" {
		if origin.IsZero() || destination.IsZero() {
			return directions.Leg{}, fmt.Errorf("origin and destination are required without -directions")
		}
		return f.routes.Route(ctx, origin, destination)
	}
	data, err := f.source.Fetch(ctx, urlOrPath)
	if err != nil {
		return directions.Leg{}, fmt.Errorf("directions: %w", err)
	}
	return directions.ParseSteps(data)
}

// trace reads a GTFS-Realtime VehiclePositions trace for vehicleID.
func (f *fetcher) trace(ctx context.Context, urlOrPath, vehicleID string) ([]fixsource.Sample, error) {
	if urlOrPath == "" {
		return nil, fmt.Errorf("-trace is required")
	}
	data, err := f.source.Fetch(ctx, urlOrPath)
	if err != nil {
		return nil, fmt.Errorf("trace: %w", err)
	}
	return fixsource.DecodeVehiclePositions(data, vehicleID)
}

// parsePoint parses "lat,lon"; an empty string is the zero point.
func parsePoint(s string) (route.Point, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return route.Point{}, nil
	}
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return route.Point{}, fmt.Errorf("expected lat,lon, got %q", s)
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return route.Point{}, fmt.Errorf("latitude %q: %w", parts[0], err)
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return route.Point{}, fmt.Errorf("longitude %q: %w", parts[1], err)
	}
	return route.Point{Lat: lat, Lon: lon}, nil
}

func writeOutput(path string, data []byte) error {
	if path == "" || path == "-" {
		_, err := os.Stdout.Write(data)
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
