package config

import (
	"time"

	"github.com/theoremus-urban-solutions/arnav/anchors"
	"github.com/theoremus-urban-solutions/arnav/arrival"
	"github.com/theoremus-urban-solutions/arnav/navigator"
	"github.com/theoremus-urban-solutions/arnav/route"
)

// DefaultPort is the HTTP port used when none is configured.
const DefaultPort = 16181

func orFloat(v *float64, def float64) {
	if *v == 0 {
		*v = def
	}
}

func orInt(v *int, def int) {
	if *v == 0 {
		*v = def
	}
}

func orString(v *string, def string) {
	if *v == "" {
		*v = def
	}
}

// ApplyDefaults replaces zero values with the defaults of each component.
func (c *AppConfig) ApplyDefaults() {
	orInt(&c.Server.Port, DefaultPort)
	orInt(&c.Server.ReadTimeoutMS, 10000)
	orInt(&c.Server.WriteTimeoutMS, 10000)

	orString(&c.Logging.Level, "info")
	orString(&c.Logging.Format, "text")
	orInt(&c.Logging.MaxSizeMB, 32)
	orInt(&c.Logging.MaxBackups, 3)
	orInt(&c.Logging.MaxAgeDays, 14)

	orString(&c.Directions.Mode, "walking")
	orInt(&c.Directions.TimeoutMS, 10000)
	orInt(&c.Directions.CacheSize, 64)
	orInt(&c.Directions.CacheTTLMinutes, 60)

	nav := navigator.DefaultConfig()
	n := &c.Navigation
	orFloat(&n.ResampleMeters, nav.Build.ResampleInterval)
	orFloat(&n.DedupMeters, nav.Build.DedupThreshold)
	orInt(&n.SmoothingWindow, nav.Tracking.WindowSize)
	orFloat(&n.AlignToleranceMeters, nav.Tracking.AlignTolerance)
	orFloat(&n.StepAdvanceMeters, nav.Tracking.StepAdvanceMeters)
	orFloat(&n.CourseWindowSeconds, nav.Course.WindowSeconds)
	orFloat(&n.MinSpeed, nav.Course.MinSpeed)
	orFloat(&n.TurnAnnouncementMeters, nav.Guidance.TurnAnnouncementThreshold)
	orInt(&n.PreviewSegmentLimit, nav.Guidance.PreviewSegmentLimit)
	orFloat(&n.ArrowSmoothTime, nav.ArrowSmoothTime)
	orFloat(&n.LookaheadMeters, nav.LookaheadMeters)
	orFloat(&n.UIArrowSmoothing, nav.UIArrowSmoothing)
	orInt(&n.TickIntervalMS, 100)

	anc := anchors.DefaultConfig()
	a := &c.Anchors
	orFloat(&a.ShowRadius, anc.ShowRadius)
	orFloat(&a.HideRadius, anc.HideRadius)
	orFloat(&a.MaxVerticalDelta, anc.MaxVerticalDelta)
	orFloat(&a.ViewerDistance, anc.ViewerDistance)
	orFloat(&a.ViewerHeight, anc.ViewerHeight)
	orFloat(&a.ReprojectMeters, anc.ReprojectMeters)
	orFloat(&a.SpawnWithinMeters, 60)
	orFloat(&a.DespawnBeyondMeters, 120)

	arr := arrival.DefaultConfig()
	orFloat(&c.Arrival.PreviewMeters, arr.PreviewMeters)
	orFloat(&c.Arrival.PreviewHideMeters, arr.PreviewHideMeters)
	orFloat(&c.Arrival.ArrivalMeters, arr.ArrivalMeters)
}

// NavigatorConfig converts the navigation and arrival sections.
func (c AppConfig) NavigatorConfig() navigator.Config {
	cfg := navigator.DefaultConfig()
	n := c.Navigation
	cfg.Build = route.BuildOptions{ResampleInterval: n.ResampleMeters, DedupThreshold: n.DedupMeters}
	cfg.Tracking.WindowSize = n.SmoothingWindow
	cfg.Tracking.AlignTolerance = n.AlignToleranceMeters
	cfg.Tracking.StepAdvanceMeters = n.StepAdvanceMeters
	cfg.Course.WindowSeconds = n.CourseWindowSeconds
	cfg.Course.MinSpeed = n.MinSpeed
	cfg.Guidance.TurnAnnouncementThreshold = n.TurnAnnouncementMeters
	cfg.Guidance.PreviewSegmentLimit = n.PreviewSegmentLimit
	cfg.ArrowSmoothTime = n.ArrowSmoothTime
	cfg.LookaheadMeters = n.LookaheadMeters
	cfg.UIArrowSmoothing = n.UIArrowSmoothing
	cfg.Arrival = arrival.Config{
		PreviewMeters:     c.Arrival.PreviewMeters,
		PreviewHideMeters: c.Arrival.PreviewHideMeters,
		ArrivalMeters:     c.Arrival.ArrivalMeters,
	}
	return cfg
}

// AnchorsConfig converts the anchors section.
func (c AppConfig) AnchorsConfig() anchors.Config {
	a := c.Anchors
	return anchors.Config{
		ShowRadius:         a.ShowRadius,
		HideRadius:         a.HideRadius,
		MaxVerticalDelta:   a.MaxVerticalDelta,
		GlobalHeightOffset: a.GlobalHeightOffset,
		ViewerDistance:     a.ViewerDistance,
		ViewerHeight:       a.ViewerHeight,
		ReprojectMeters:    a.ReprojectMeters,
		FacingExtraYaw:     a.FacingExtraYaw,
		FlipFacing:         a.FlipFacing,
	}
}

// TickInterval returns the replay tick interval.
func (c AppConfig) TickInterval() time.Duration {
	return time.Duration(c.Navigation.TickIntervalMS) * time.Millisecond
}

// CacheTTL returns the directions cache lifetime.
func (c AppConfig) CacheTTL() time.Duration {
	return time.Duration(c.Directions.CacheTTLMinutes) * time.Minute
}

// AnchorPoints converts the points of a spawn set.
func (s SpawnSet) AnchorPoints() []anchors.SpawnPoint {
	out := make([]anchors.SpawnPoint, 0, len(s.Points))
	for _, p := range s.Points {
		out = append(out, anchors.SpawnPoint{
			Name:           p.Name,
			Lat:            p.Lat,
			Lon:            p.Lon,
			HeightOffset:   p.HeightOffset,
			Enabled:        !p.Disabled,
			CameraRelative: p.CameraRelative,
		})
	}
	return out
}

// DestinationPoint returns the destination coordinate.
func (s SpawnSet) DestinationPoint() route.Point {
	return route.Point{Lat: s.Destination.Lat, Lon: s.Destination.Lon}
}
