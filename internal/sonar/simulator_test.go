package sonar

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimulatorFullRevolutionVisitsEveryBearing(t *testing.T) {
	setup := DefaultSetup()
	sim := NewSimulator(setup, 1)
	steps := setup.StepsPerRevolution()

	seen := make(map[int]bool)
	for i := 0; i < steps; i++ {
		ev := sim.Next()
		require.Len(t, ev.Samples, setup.ImageDataPoint)
		assert.LessOrEqual(t, ev.BearingIndex, steps)
		seen[ev.BearingIndex%steps] = true
		for _, v := range ev.Samples {
			require.True(t, v >= 0 && v <= 1)
		}
	}
	assert.Len(t, seen, steps)
}

func TestSimulatorIsDeterministic(t *testing.T) {
	a := NewSimulator(DefaultSetup(), 42)
	b := NewSimulator(DefaultSetup(), 42)
	for i := 0; i < 20; i++ {
		assert.Equal(t, a.Next(), b.Next())
	}
}

func TestSimulatorSectorStaysInside(t *testing.T) {
	setup := DefaultSetup()
	setup.SectorStart = DegreesToUnits(350)
	setup.SectorSize = DegreesToUnits(40)
	sim := NewSimulator(setup, 7)
	steps := setup.StepsPerRevolution()

	for i := 0; i < 3*steps; i++ {
		ev := sim.Next()
		deg := float64(ev.BearingIndex) * 360 / float64(steps)
		rel := NormalizeAngle(deg - 350)
		// bearing indexes floor to the step below the sector start
		assert.True(t, rel <= 40 || rel > 359, "bearing %d", ev.BearingIndex)
	}
}

func TestSimulatorStartStop(t *testing.T) {
	sim := NewSimulator(DefaultSetup(), 3)
	sim.SetInterval(time.Millisecond)

	got := make(chan any, 16)
	require.NoError(t, sim.Start(context.Background(), func(m any) {
		select {
		case got <- m:
		default:
		}
	}))
	assert.True(t, sim.Running())

	select {
	case m := <-got:
		_, ok := m.(PingEvent)
		assert.True(t, ok)
	case <-time.After(2 * time.Second):
		t.Fatal("no ping emitted")
	}

	sim.Stop()
	assert.False(t, sim.Running())
}

func TestSimulatorTargetsEcho(t *testing.T) {
	setup := DefaultSetup()
	sim := NewSimulator(setup, 11)

	targets := sim.Targets()
	require.NotEmpty(t, targets)
	for _, tg := range targets {
		setup.SectorStart = DegreesToUnits(tg.BearingDeg)
		setup.SectorSize = DegreesToUnits(10)
		sim.SetSetup(setup)

		ev := sim.Next()
		n := setup.ImageDataPoint
		i := int(math.Round(tg.RangeFrac*float64(n))) - 1
		assert.Greater(t, ev.Samples[i], 0.5, "target at %.1f°", tg.BearingDeg)
	}
}

func TestSimulatorSamplesAreSixteenBitSteps(t *testing.T) {
	ev := NewSimulator(DefaultSetup(), 5).Next()
	for _, v := range ev.Samples {
		raw := v * 65535
		require.InDelta(t, math.Round(raw), raw, 1e-6)
	}
}
