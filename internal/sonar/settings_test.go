package sonar

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBlankingDistanceMm(t *testing.T) {
	// 1500 m/s, 100 us -> 75 mm, floored to the minimum
	assert.Equal(t, float64(MinBlankingMm), BlankingDistanceMm(1500, 100))
	// 1500 m/s, 400 us -> 300 mm
	assert.Equal(t, 300.0, BlankingDistanceMm(1500, 400))
	assert.Equal(t, 337.0, BlankingDistanceMm(1500, 450))
}

func TestSetupGeometry(t *testing.T) {
	s := DefaultSetup()
	g := s.Geometry()
	assert.Equal(t, 400, s.StepsPerRevolution())
	assert.Equal(t, 0.0, g.StartAngle)
	assert.Equal(t, 360.0, g.AngularSpan)
	assert.Equal(t, 20000.0, g.MaxRangeMm)
	assert.Equal(t, 500, g.SampleCount)
	assert.True(t, g.FullCircle())
	assert.Equal(t, 400, g.StepsCovered())

	s.SectorStart = DegreesToUnits(90)
	s.SectorSize = DegreesToUnits(45)
	s.StepSize = -64
	g = s.Geometry()
	assert.Equal(t, 200, s.StepsPerRevolution())
	assert.Equal(t, 90.0, g.StartAngle)
	assert.Equal(t, 45.0, g.AngularSpan)
	assert.False(t, g.FullCircle())
	assert.Equal(t, 25, g.StepsCovered())
}

func TestSetupValidate(t *testing.T) {
	assert.NoError(t, DefaultSetup().Validate())

	s := DefaultSetup()
	s.StepSize = 0
	assert.Error(t, s.Validate())

	s = DefaultSetup()
	s.SectorSize = 0
	assert.ErrorIs(t, s.Validate(), ErrInvalidGeometry)

	s = DefaultSetup()
	s.MaxRangeMm = 0
	assert.ErrorIs(t, s.Validate(), ErrInvalidGeometry)
}

func TestGeometryValidate(t *testing.T) {
	assert.NoError(t, Geometry{AngularSpan: 10, MaxRangeMm: 10}.Validate())
	assert.ErrorIs(t, Geometry{AngularSpan: 0, MaxRangeMm: 10}.Validate(), ErrInvalidGeometry)
	assert.ErrorIs(t, Geometry{AngularSpan: -5, MaxRangeMm: 10}.Validate(), ErrInvalidGeometry)
	assert.ErrorIs(t, Geometry{AngularSpan: 10, MaxRangeMm: 0}.Validate(), ErrInvalidGeometry)
	assert.ErrorIs(t, Geometry{AngularSpan: 10, MaxRangeMm: 10, MinRangeMm: 10}.Validate(), ErrInvalidGeometry)
}

func TestNormalizeSamples(t *testing.T) {
	assert.Equal(t, []float64{0, 1}, NormalizeSamples([]uint16{0, 65535}))
}
