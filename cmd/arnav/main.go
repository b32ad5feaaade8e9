package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	lib "github.com/theoremus-urban-solutions/arnav"
	"github.com/theoremus-urban-solutions/arnav/anchors"
	"github.com/theoremus-urban-solutions/arnav/config"
	"github.com/theoremus-urban-solutions/arnav/directions"
	"github.com/theoremus-urban-solutions/arnav/fixsource"
	"github.com/theoremus-urban-solutions/arnav/formatter"
	"github.com/theoremus-urban-solutions/arnav/navigator"
	"github.com/theoremus-urban-solutions/arnav/route"
	"github.com/theoremus-urban-solutions/arnav/utils"
)

func main() {
	configPath := flag.String("config", "", "config file (default: config.yml or ./config/config.yml)")
	mode := flag.String("mode", "oneshot", "oneshot|replay|serve")
	format := flag.String("format", "json", "json|geojson|gpx (oneshot)")
	setName := flag.String("set", "", "spawn set name from config.spawnSets[]")
	directionsSrc := flag.String("directions", "", "saved directions JSON (URL or file); queries the provider when empty")
	originFlag := flag.String("origin", "", "origin lat,lon (overrides spawn set)")
	destFlag := flag.String("destination", "", "destination lat,lon (overrides spawn set)")
	name := flag.String("name", "", "destination name")
	at := flag.String("at", "", "walker position lat,lon for oneshot (default: origin)")
	trace := flag.String("trace", "", "GTFS-RT VehiclePositions trace (URL or file) for replay/serve")
	vehicle := flag.String("vehicle", "", "vehicle id selecting the trace entity")
	out := flag.String("out", "", "output file (default stdout)")
	flag.Parse()

	var err error
	if *configPath != "" {
		err = config.LoadAppConfigFrom(*configPath)
	} else {
		err = config.LoadAppConfig()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	cfg := config.Config

	logger, closer := lib.InitLogging(cfg.Logging)
	defer func() { _ = closer.Close() }()

	set, _ := config.SelectSpawnSet(*setName)
	origin, destination, destName, err := endpoints(set, *originFlag, *destFlag, *name)
	if err != nil {
		logger.Error("invalid endpoints", "error", err)
		os.Exit(2)
	}

	registry, err := anchors.NewRegistry(cfg.AnchorsConfig(), nil, nil, logger)
	if err != nil {
		logger.Error("invalid anchors config", "error", err)
		os.Exit(1)
	}
	deps := navigator.Deps{
		Anchors: registry,
		Logger:  logger,
		Sinks: navigator.Sinks{
			Instruction: func(text string) { logger.Info("instruction", "text", text) },
			Status:      func(text string) { logger.Info("status", "text", text) },
			Arrived:     func(name string) { logger.Info("arrived", "destination", name) },
		},
	}
	if cfg.Anchors.Proximity {
		deps.Spawner = anchors.NewProximitySpawner(registry, set.AnchorPoints(),
			cfg.Anchors.SpawnWithinMeters, cfg.Anchors.DespawnBeyondMeters)
	} else {
		deps.Points = set.AnchorPoints()
		if !origin.IsZero() {
			registry.SpawnAll(deps.Points, origin.Lat, origin.Lon)
		}
	}
	nav := navigator.New(cfg.NavigatorConfig(), deps)

	cache := directions.NewCache(cfg.Directions.CacheSize, cfg.CacheTTL(), cfg.Directions.CacheDir)
	routes := directions.NewClient(directions.Options{
		BaseURL: cfg.Directions.BaseURL,
		APIKey:  cfg.Directions.APIKey,
		Mode:    cfg.Directions.Mode,
		Timeout: time.Duration(cfg.Directions.TimeoutMS) * time.Millisecond,
		Cache:   cache,
		Logger:  logger,
	})
	f := newFetcher(fixsource.NewClient(time.Duration(cfg.Directions.TimeoutMS)*time.Millisecond), routes)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	loadRoute := func() *route.Route {
		leg, err := f.leg(ctx, *directionsSrc, origin, destination)
		if err != nil {
			logger.Error("failed to load directions", "error", err)
			os.Exit(1)
		}
		r, err := nav.LoadRoute(leg.Steps, destination, destName)
		if err != nil {
			logger.Error("failed to build route", "error", err)
			os.Exit(1)
		}
		return r
	}

	rb := formatter.NewResponseBuilder()
	switch *mode {
	case "oneshot":
		r := loadRoute()
		pos, err := parsePoint(*at)
		if err != nil {
			logger.Error("invalid -at", "error", err)
			os.Exit(2)
		}
		if pos.IsZero() {
			pos = r.Path.Points[0]
		}
		frame, ok := nav.Tick(fixsource.Sample{
			Lat:       pos.Lat,
			Lon:       pos.Lon,
			Timestamp: float64(time.Now().Unix()),
			Status:    fixsource.Running,
		}, 0, 0)

		var buf []byte
		switch *format {
		case "geojson":
			buf, err = rb.BuildGeoJSON(r, frame.Anchors, false)
		case "gpx":
			buf = rb.BuildGPX(destName, r, frame.Anchors)
		default:
			buf = rb.BuildJSON(formatter.WrapState(frame, ok, destName))
		}
		if err != nil {
			logger.Error("failed to format output", "error", err)
			os.Exit(1)
		}
		if err := writeOutput(*out, buf); err != nil {
			logger.Error("failed to write output", "error", err)
			os.Exit(1)
		}

	case "replay":
		r := loadRoute()
		samples, err := f.trace(ctx, *trace, *vehicle)
		if err != nil {
			logger.Error("failed to load trace", "error", err)
			os.Exit(1)
		}
		dt := utils.SecondsFromDuration(cfg.TickInterval())
		replay := fixsource.NewReplay(samples)
		var lines []byte
		frames := 0
		for {
			s, more := replay.Next(dt)
			if !more {
				break
			}
			frame, ok := nav.Tick(s, dt, 0)
			if !ok {
				continue
			}
			frames++
			lines = append(lines, rb.BuildFrameJSON(frame)...)
			if frame.Arrival != nil && frame.Arrival.Reached {
				break
			}
		}
		logger.Info("replay finished",
			"samples", len(samples),
			"frames", frames,
			"route", utils.PresentableDistance(r.EndAlong()))
		if err := writeOutput(*out, lines); err != nil {
			logger.Error("failed to write output", "error", err)
			os.Exit(1)
		}

	case "serve":
		if *directionsSrc != "" || (!origin.IsZero() && !destination.IsZero()) {
			loadRoute()
		}
		srv := lib.NewServer(nav, lib.ServerOptions{
			Port:         cfg.Server.Port,
			ReadTimeout:  time.Duration(cfg.Server.ReadTimeoutMS) * time.Millisecond,
			WriteTimeout: time.Duration(cfg.Server.WriteTimeoutMS) * time.Millisecond,
			Producer:     destName,
			Routes:       routes,
			Logger:       logger,
		})
		srv.Start()
		if *trace != "" {
			go runLive(ctx, logger, nav, fixsource.NewFeed(fixsource.NewClient(cfg.TickInterval()*10), *trace, *vehicle), cfg.TickInterval())
		}
		lib.HandleGracefulShutdown(ctx, srv)

	default:
		fmt.Fprintf(os.Stderr, "unknown mode %q\n", *mode)
		os.Exit(2)
	}
}

// endpoints resolves origin and destination from flags, falling back to the
// spawn set.
func endpoints(set config.SpawnSet, originFlag, destFlag, name string) (origin, destination route.Point, destName string, err error) {
	if set.Origin != nil {
		origin = route.Point{Lat: set.Origin.Lat, Lon: set.Origin.Lon}
	}
	destination = set.DestinationPoint()
	destName = utils.Ternary(name != "", name, set.Destination.Name)

	if originFlag != "" {
		if origin, err = parsePoint(originFlag); err != nil {
			return
		}
	}
	if destFlag != "" {
		if destination, err = parsePoint(destFlag); err != nil {
			return
		}
	}
	return
}

// runLive polls the position feed every interval and ticks the navigator
// until ctx is done.
func runLive(ctx context.Context, logger *slog.Logger, nav *navigator.Navigator, feed *fixsource.Feed, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			s, err := feed.Poll(ctx)
			if err != nil {
				logger.Debug("position feed poll failed", "error", err)
			}
			nav.Tick(s, utils.SecondsFromDuration(now.Sub(last)), 0)
			last = now
		}
	}
}
