package config

import "time"

const (
	// Render targets
	ImageWidth   = 1000 // Circular sector image
	ImageHeight  = 1000
	SwatchWidth  = 100 // Palette legend
	SwatchHeight = 1000

	// Live display
	TargetFPS       = 15   // Preview redraws per second
	SweepTrailDeg   = 30.0 // Head trail highlight in degrees
	PingInterval    = 5 * time.Millisecond
	EventLogSize    = 64  // Lines kept in the event panel
	PeakHistorySize = 120 // Echo strength sparkline
	RangeStepMm     = 5000
	MinRangeMm      = 1000
	MaxRangeMm      = 100000
	SectorStepDeg   = 15.0

	// Files
	ImageFile    = "sonar.bmp"
	TextureFile  = "texture.bmp"
	PaletteFile  = "palette.bmp"
	SettingsFile = "sonar.yaml"

	// App
	AppName    = "SONAR-SCAN"
	AppVersion = "1.0"
)
