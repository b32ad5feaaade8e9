package anchors

// Config tunes a Registry.
type Config struct {
	// ShowRadius and HideRadius are the visibility hysteresis radii, meters.
	ShowRadius float64
	HideRadius float64
	// MaxVerticalDelta clamps anchor altitude to the viewer's altitude
	// plus or minus this many meters.
	MaxVerticalDelta float64
	// GlobalHeightOffset is added to every anchor's altitude.
	GlobalHeightOffset float64
	// ViewerDistance and ViewerHeight place camera-relative anchors in
	// front of and above the viewer.
	ViewerDistance float64
	ViewerHeight   float64
	// ReprojectMeters re-places a world anchor only when its target moved
	// farther than this.
	ReprojectMeters float64
	// FacingExtraYaw is added to the facing yaw; FlipFacing turns anchors
	// around for models whose front faces away from +north.
	FacingExtraYaw float64
	FlipFacing     bool
}

// DefaultConfig returns the registry defaults.
func DefaultConfig() Config {
	return Config{
		ShowRadius:       120,
		HideRadius:       140,
		MaxVerticalDelta: 20,
		ViewerDistance:   15,
		ViewerHeight:     2,
		ReprojectMeters:  8,
	}
}

// Validate checks the hysteresis radii.
func (c Config) Validate() error {
	if c.ShowRadius <= 0 || c.HideRadius <= c.ShowRadius {
		return ErrInvalidRadii
	}
	return nil
}
