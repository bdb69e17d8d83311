package session

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"sonar-scan.klederson.com/internal/config"
	"sonar-scan.klederson.com/internal/logging"
	"sonar-scan.klederson.com/internal/palette"
	"sonar-scan.klederson.com/internal/radar"
	"sonar-scan.klederson.com/internal/sonar"
)

type recordingHook struct {
	setups []sonar.Setup
	err    error
}

func (h *recordingHook) Reconfigure(setup sonar.Setup) error {
	h.setups = append(h.setups, setup)
	return h.err
}

func smallSetup() sonar.Setup {
	s := sonar.DefaultSetup()
	s.StepSize = 320 // 40 steps
	s.ImageDataPoint = 32
	s.MaxRangeMm = 4000
	return s
}

func newSession(t *testing.T, setup sonar.Setup) *Session {
	t.Helper()
	s, err := New(setup, palette.Default())
	require.NoError(t, err)
	return s
}

func TestNewDerivesBuffers(t *testing.T) {
	s := newSession(t, smallSetup())

	assert.Equal(t, 40, s.Store().Steps())
	assert.Equal(t, config.ImageWidth, s.Circular().Frame().Width)
	assert.True(t, s.Circular().Bilinear())

	f := s.Texture().Frame()
	assert.Equal(t, 32, f.Width)
	assert.Equal(t, 40, f.Height)
	assert.False(t, s.Texture().Bilinear())
	assert.Equal(t, 4000.0, f.Geometry.MaxRangeMm)
}

func TestNewRejectsInvalidSetup(t *testing.T) {
	setup := smallSetup()
	setup.SectorSize = 0
	_, err := New(setup, palette.Default())
	assert.ErrorIs(t, err, sonar.ErrInvalidGeometry)

	_, err = New(smallSetup(), nil)
	assert.Error(t, err)
}

func TestHandlePingAppliesBlankingAndCountsRevolutions(t *testing.T) {
	setup := smallSetup()
	setup.TxPulseWidthUs = 400 // 300 mm blanking
	s := newSession(t, setup)
	sim := sonar.NewSimulator(setup, 5)

	revs := 0
	for i := 0; i < 2*40; i++ {
		done, err := s.HandlePing(sim.Next())
		require.NoError(t, err)
		if done {
			revs++
		}
	}
	assert.Equal(t, 2, revs)
	assert.Equal(t, Stats{Pings: 80, Revolutions: 2}, s.Stats())
	assert.Equal(t, 40, s.Store().Len())

	p, ok := s.Store().Ping(0)
	require.True(t, ok)
	assert.Equal(t, 300.0, p.BlankingDistanceMm)
	assert.Equal(t, 4000.0, p.MaxRangeMm)
	_, ok = s.Store().SampleAt(0, 299)
	assert.False(t, ok)
}

func TestHandlePingMalformedIsLoggedAndDropped(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	logging.SetLogger(zap.New(core).Sugar())
	t.Cleanup(func() { logging.SetLogger(nil) })

	setup := smallSetup()
	s := newSession(t, setup)
	_, err := s.HandlePing(sonar.PingEvent{BearingIndex: 1, Samples: make([]float64, 32), Setup: setup})
	require.NoError(t, err)

	_, err = s.HandlePing(sonar.PingEvent{BearingIndex: 2, Samples: make([]float64, 31), Setup: setup})
	assert.ErrorIs(t, err, sonar.ErrMalformedPing)
	_, err = s.HandlePing(sonar.PingEvent{BearingIndex: 99, Samples: make([]float64, 32), Setup: setup})
	assert.ErrorIs(t, err, sonar.ErrMalformedPing)

	assert.Equal(t, Stats{Pings: 1, Malformed: 2}, s.Stats())
	assert.Equal(t, 1, s.Store().Len())
	assert.Equal(t, 2, logs.FilterMessage("ping dropped").Len())
}

func TestHandleSettingsReconfigures(t *testing.T) {
	setup := smallSetup()
	s := newSession(t, setup)
	hook := &recordingHook{}
	require.NoError(t, s.AddReconfigurer(hook))

	sim := sonar.NewSimulator(setup, 2)
	for i := 0; i < 10; i++ {
		_, err := s.HandlePing(sim.Next())
		require.NoError(t, err)
	}
	image := s.Circular().Image()

	next := setup
	next.StepSize = 160 // 80 steps
	next.SectorStart = sonar.DegreesToUnits(45)
	next.SectorSize = sonar.DegreesToUnits(90)
	next.ImageDataPoint = 64
	require.NoError(t, s.HandleSettings(sonar.SettingsEvent{Setup: next, OK: true}))

	assert.Equal(t, 80, s.Store().Steps())
	assert.Zero(t, s.Store().Len())
	assert.Same(t, image, s.Circular().Image())
	assert.Equal(t, 45.0, s.Circular().Geometry().StartAngle)
	assert.Equal(t, 90.0, s.Circular().Geometry().AngularSpan)

	f := s.Texture().Frame()
	assert.Equal(t, 64, f.Width)
	assert.Equal(t, 20, f.Height)
	assert.Equal(t, 45.0, f.Geometry.StartAngle)

	require.Len(t, hook.setups, 2)
	assert.Equal(t, next, hook.setups[1])
	assert.Equal(t, next, s.Setup())

	// the first ping after reconfiguration fixes the sample count again
	_, err := s.HandlePing(sonar.PingEvent{BearingIndex: 1, Samples: make([]float64, 32), Setup: next})
	require.NoError(t, err)
	_, err = s.HandlePing(sonar.PingEvent{BearingIndex: 2, Samples: make([]float64, 64), Setup: next})
	assert.ErrorIs(t, err, sonar.ErrMalformedPing)
}

func TestHandleSettingsRefusedOrInvalid(t *testing.T) {
	setup := smallSetup()
	s := newSession(t, setup)

	bad := setup
	bad.StepSize = 1
	require.NoError(t, s.HandleSettings(sonar.SettingsEvent{Setup: bad, OK: false}))
	assert.Equal(t, setup, s.Setup())

	bad.MaxRangeMm = 0
	assert.ErrorIs(t, s.HandleSettings(sonar.SettingsEvent{Setup: bad, OK: true}), sonar.ErrInvalidGeometry)
	assert.Equal(t, setup, s.Setup())
	assert.Equal(t, 40, s.Store().Steps())
}

func TestHandleSettingsReportsHookErrors(t *testing.T) {
	s := newSession(t, smallSetup())
	boom := errors.New("boom")
	require.ErrorIs(t, s.AddReconfigurer(&recordingHook{err: boom}), boom)
	assert.ErrorIs(t, s.HandleSettings(sonar.SettingsEvent{Setup: smallSetup(), OK: true}), boom)
}

func TestRenderOutputs(t *testing.T) {
	setup := smallSetup()
	s := newSession(t, setup)
	sim := sonar.NewSimulator(setup, 11)
	for i := 0; i < 40; i++ {
		_, err := s.HandlePing(sim.Next())
		require.NoError(t, err)
	}

	img, err := s.RenderImage()
	require.NoError(t, err)
	assert.Equal(t, config.ImageWidth, img.Rect.Dx())
	assert.Equal(t, radar.DefaultBackground, img.RGBAAt(0, 0))

	tex, err := s.RenderTexture()
	require.NoError(t, err)
	assert.Equal(t, 32, tex.Rect.Dx())
	assert.Equal(t, 40, tex.Rect.Dy())

	sw, err := s.RenderSwatch()
	require.NoError(t, err)
	assert.Equal(t, config.SwatchWidth, sw.Rect.Dx())
	assert.Equal(t, config.SwatchHeight, sw.Rect.Dy())
}

func TestSetPaletteAffectsLaterRenders(t *testing.T) {
	s := newSession(t, smallSetup())

	grey, err := palette.Named("grey")
	require.NoError(t, err)
	s.SetPalette(grey)
	assert.Same(t, grey, s.Palette())

	s.SetPalette(nil)
	assert.Same(t, grey, s.Palette(), "nil keeps the current palette")

	sw, err := s.RenderSwatch()
	require.NoError(t, err)
	assert.Equal(t, grey.Lookup(1), sw.RGBAAt(0, 0))
	assert.Equal(t, grey.Lookup(0), sw.RGBAAt(0, config.SwatchHeight-1))
}
