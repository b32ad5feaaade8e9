package config

// ServerConfig contains server configuration
type ServerConfig struct {
	Port           int `yaml:"port" validate:"gt=0"`
	ReadTimeoutMS  int `yaml:"readTimeoutMS" validate:"gte=0"`
	WriteTimeoutMS int `yaml:"writeTimeoutMS" validate:"gte=0"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level      string `yaml:"level" validate:"oneof=debug info warn error"`
	Format     string `yaml:"format" validate:"oneof=text json"`
	File       string `yaml:"file"`
	MaxSizeMB  int    `yaml:"maxSizeMB" validate:"gte=0"`
	MaxBackups int    `yaml:"maxBackups" validate:"gte=0"`
	MaxAgeDays int    `yaml:"maxAgeDays" validate:"gte=0"`
	Compress   bool   `yaml:"compress"`
}

// DirectionsConfig contains the walking-directions provider configuration
type DirectionsConfig struct {
	BaseURL         string `yaml:"baseURL" validate:"omitempty,url"`
	APIKey          string `yaml:"apiKey"`
	Mode            string `yaml:"mode" validate:"oneof=walking driving bicycling transit"`
	TimeoutMS       int    `yaml:"timeoutMS" validate:"gte=0"`
	CacheSize       int    `yaml:"cacheSize" validate:"gte=0"`
	CacheTTLMinutes int    `yaml:"cacheTTLMinutes" validate:"gte=0"`
	CacheDir        string `yaml:"cacheDir"`
}

// NavigationConfig contains route building, tracking and guidance tuning
type NavigationConfig struct {
	ResampleMeters         float64 `yaml:"resampleMeters" validate:"gt=0"`
	DedupMeters            float64 `yaml:"dedupMeters" validate:"gte=0"`
	SmoothingWindow        int     `yaml:"smoothingWindow" validate:"gt=0"`
	AlignToleranceMeters   float64 `yaml:"alignToleranceMeters" validate:"gte=0"`
	StepAdvanceMeters      float64 `yaml:"stepAdvanceMeters" validate:"gte=0"`
	CourseWindowSeconds    float64 `yaml:"courseWindowSeconds" validate:"gt=0"`
	MinSpeed               float64 `yaml:"minSpeed" validate:"gte=0"`
	TurnAnnouncementMeters float64 `yaml:"turnAnnouncementMeters" validate:"gt=0"`
	PreviewSegmentLimit    int     `yaml:"previewSegmentLimit" validate:"gt=0"`
	ArrowSmoothTime        float64 `yaml:"arrowSmoothTime" validate:"gt=0"`
	LookaheadMeters        float64 `yaml:"lookaheadMeters" validate:"gte=0"`
	UIArrowSmoothing       float64 `yaml:"uiArrowSmoothing" validate:"gte=0"`
	TickIntervalMS         int     `yaml:"tickIntervalMS" validate:"gt=0"`
}

// AnchorsConfig contains anchor placement and visibility configuration
type AnchorsConfig struct {
	ShowRadius          float64 `yaml:"showRadius" validate:"gt=0"`
	HideRadius          float64 `yaml:"hideRadius" validate:"gtfield=ShowRadius"`
	MaxVerticalDelta    float64 `yaml:"maxVerticalDelta" validate:"gte=0"`
	GlobalHeightOffset  float64 `yaml:"globalHeightOffset"`
	ViewerDistance      float64 `yaml:"viewerDistance" validate:"gte=0"`
	ViewerHeight        float64 `yaml:"viewerHeight"`
	ReprojectMeters     float64 `yaml:"reprojectMeters" validate:"gte=0"`
	FacingExtraYaw      float64 `yaml:"facingExtraYaw"`
	FlipFacing          bool    `yaml:"flipFacing"`
	Proximity           bool    `yaml:"proximity"`
	SpawnWithinMeters   float64 `yaml:"spawnWithinMeters" validate:"gt=0"`
	DespawnBeyondMeters float64 `yaml:"despawnBeyondMeters" validate:"gtfield=SpawnWithinMeters"`
}

// ArrivalConfig contains the destination radii
type ArrivalConfig struct {
	PreviewMeters     float64 `yaml:"previewMeters" validate:"gt=0"`
	PreviewHideMeters float64 `yaml:"previewHideMeters" validate:"gtfield=PreviewMeters"`
	ArrivalMeters     float64 `yaml:"arrivalMeters" validate:"gt=0"`
}

// Location is a named coordinate
type Location struct {
	Name string  `yaml:"name"`
	Lat  float64 `yaml:"lat" validate:"latitude"`
	Lon  float64 `yaml:"lon" validate:"longitude"`
}

// SpawnPoint is a configured point of interest
type SpawnPoint struct {
	Name           string  `yaml:"name" validate:"required"`
	Lat            float64 `yaml:"lat" validate:"latitude"`
	Lon            float64 `yaml:"lon" validate:"longitude"`
	HeightOffset   float64 `yaml:"heightOffset"`
	Disabled       bool    `yaml:"disabled"`
	CameraRelative bool    `yaml:"cameraRelative"`
}

// SpawnSet is a named walk: an origin, a destination and the points of
// interest along the way
type SpawnSet struct {
	Name        string       `yaml:"name" validate:"required"`
	Origin      *Location    `yaml:"origin"`
	Destination Location     `yaml:"destination" validate:"required"`
	Points      []SpawnPoint `yaml:"points" validate:"dive"`
}

// AppConfig is the root configuration structure
type AppConfig struct {
	Server     ServerConfig     `yaml:"server"`
	Logging    LoggingConfig    `yaml:"logging"`
	Directions DirectionsConfig `yaml:"directions"`
	Navigation NavigationConfig `yaml:"navigation"`
	Anchors    AnchorsConfig    `yaml:"anchors"`
	Arrival    ArrivalConfig    `yaml:"arrival"`
	SpawnSets  []SpawnSet       `yaml:"spawnSets" validate:"dive"`
}
