package sonar

import (
	"errors"
	"fmt"
	"math"
)

// MaxAngle is the number of head angle units in one full revolution.
const MaxAngle = 12800

// MinBlankingMm is the floor applied to the transmit-pulse blanking distance.
const MinBlankingMm = 150

// ErrInvalidGeometry is returned for sectors with a non-positive span or range.
var ErrInvalidGeometry = errors.New("invalid sector geometry")

// Setup holds the device setup settings that shape the scan. Angles are in
// head units (MaxAngle per revolution). The sign of StepSize sets the
// direction of rotation.
type Setup struct {
	MaxRangeMm     int     `yaml:"max_range_mm"`
	SectorStart    int     `yaml:"sector_start"`
	SectorSize     int     `yaml:"sector_size"`
	StepSize       int     `yaml:"step_size"`
	ImageDataPoint int     `yaml:"image_data_point"`
	SpeedOfSound   float64 `yaml:"speed_of_sound"`   // m/s
	TxPulseWidthUs float64 `yaml:"tx_pulse_width_us"` // microseconds
}

// DefaultSetup returns the factory settings.
func DefaultSetup() Setup {
	return Setup{
		MaxRangeMm:     20000,
		SectorStart:    0,
		SectorSize:     MaxAngle,
		StepSize:       32,
		ImageDataPoint: 500,
		SpeedOfSound:   1500,
		TxPulseWidthUs: 100,
	}
}

// Validate checks that the settings describe a scan the pipeline can hold.
func (s Setup) Validate() error {
	if s.StepSize == 0 || intAbs(s.StepSize) > MaxAngle {
		return fmt.Errorf("step size %d out of range", s.StepSize)
	}
	if s.ImageDataPoint <= 0 {
		return fmt.Errorf("image data points must be positive, got %d", s.ImageDataPoint)
	}
	if s.SpeedOfSound <= 0 || s.TxPulseWidthUs < 0 {
		return fmt.Errorf("acoustic settings out of range: sos=%g pulse=%g", s.SpeedOfSound, s.TxPulseWidthUs)
	}
	return s.Geometry().Validate()
}

// StepsPerRevolution is the number of bearing slots in a full turn.
func (s Setup) StepsPerRevolution() int {
	step := intAbs(s.StepSize)
	if step == 0 {
		return 0
	}
	return MaxAngle / step
}

// BlankingDistanceMm returns the range hidden by the transmit pulse.
func (s Setup) BlankingDistanceMm() float64 {
	return BlankingDistanceMm(s.SpeedOfSound, s.TxPulseWidthUs)
}

// BlankingDistanceMm converts a transmit pulse width into the minimum
// reliable range: half the pulse length in millimetres, never less than
// MinBlankingMm.
func BlankingDistanceMm(speedOfSound, txPulseWidthUs float64) float64 {
	mm := math.Floor(speedOfSound * txPulseWidthUs * 0.001 * 0.5)
	return math.Max(mm, MinBlankingMm)
}

// Geometry derives the sector geometry the renderers work in.
func (s Setup) Geometry() Geometry {
	return Geometry{
		StartAngle:         UnitsToDegrees(s.SectorStart),
		AngularSpan:        UnitsToDegrees(s.SectorSize),
		MinRangeMm:         0,
		MaxRangeMm:         float64(s.MaxRangeMm),
		SampleCount:        s.ImageDataPoint,
		StepsPerRevolution: s.StepsPerRevolution(),
	}
}

// UnitsToDegrees converts head units to degrees.
func UnitsToDegrees(u int) float64 {
	return float64(u) * 360 / MaxAngle
}

// DegreesToUnits converts degrees to the nearest head unit.
func DegreesToUnits(deg float64) int {
	return int(math.Round(deg * MaxAngle / 360))
}

// Geometry describes the region a renderer covers. Angles are degrees,
// 0 pointing up and increasing clockwise.
type Geometry struct {
	StartAngle         float64
	AngularSpan        float64
	MinRangeMm         float64
	MaxRangeMm         float64
	SampleCount        int
	StepsPerRevolution int
}

// Validate rejects degenerate sectors.
func (g Geometry) Validate() error {
	if !(g.AngularSpan > 0) {
		return fmt.Errorf("%w: angular span %g", ErrInvalidGeometry, g.AngularSpan)
	}
	if !(g.MaxRangeMm > 0) {
		return fmt.Errorf("%w: max range %g", ErrInvalidGeometry, g.MaxRangeMm)
	}
	if g.MinRangeMm < 0 || g.MinRangeMm >= g.MaxRangeMm {
		return fmt.Errorf("%w: min range %g", ErrInvalidGeometry, g.MinRangeMm)
	}
	return nil
}

// FullCircle reports whether the sector covers a whole revolution.
func (g Geometry) FullCircle() bool {
	return g.AngularSpan >= 360
}

// StepsCovered is the number of bearing slots inside the sector, at least 1.
func (g Geometry) StepsCovered() int {
	if g.StepsPerRevolution <= 0 {
		return 1
	}
	span := math.Min(g.AngularSpan, 360)
	n := int(math.Ceil(float64(g.StepsPerRevolution)*span/360 - 1e-9))
	if n < 1 {
		n = 1
	}
	return n
}

func intAbs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
