package sonar

import (
	"context"
	"math"
	"math/rand/v2"
	"sync"
	"time"

	"gonum.org/v1/gonum/stat/distuv"
)

// Target is a point reflector in the simulated scene.
type Target struct {
	BearingDeg float64
	RangeFrac  float64 // fraction of max range
	WidthDeg   float64
	Strength   float64
}

var simTargetTemplates = []Target{
	{BearingDeg: 35, RangeFrac: 0.30, WidthDeg: 4, Strength: 0.95},
	{BearingDeg: 110, RangeFrac: 0.55, WidthDeg: 10, Strength: 0.7},
	{BearingDeg: 200, RangeFrac: 0.42, WidthDeg: 3, Strength: 0.85},
	{BearingDeg: 290, RangeFrac: 0.68, WidthDeg: 18, Strength: 0.6},
	{BearingDeg: 330, RangeFrac: 0.15, WidthDeg: 2, Strength: 1.0},
}

// Simulator stands in for a mechanically scanned sonar head. It steps the
// head through the configured sector and produces one ping per step.
type Simulator struct {
	mu      sync.Mutex
	setup   Setup
	pos     int // head position in angle units
	dir     int
	targets []Target
	rng     *rand.Rand
	noise   distuv.Normal

	interval time.Duration
	running  bool
	cancel   context.CancelFunc
}

// NewSimulator creates a simulated head with a scene derived from seed.
func NewSimulator(setup Setup, seed uint64) *Simulator {
	src := rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)
	rng := rand.New(src)

	targets := make([]Target, len(simTargetTemplates))
	for i, t := range simTargetTemplates {
		t.BearingDeg = NormalizeAngle(t.BearingDeg + (rng.Float64()-0.5)*20)
		t.RangeFrac = math.Min(0.95, t.RangeFrac*(0.9+rng.Float64()*0.2))
		targets[i] = t
	}

	s := &Simulator{
		targets:  targets,
		rng:      rng,
		noise:    distuv.Normal{Mu: 0, Sigma: 0.04, Src: src},
		interval: 10 * time.Millisecond,
	}
	s.setSetupLocked(setup)
	return s
}

// Setup returns the settings the head is running with.
func (s *Simulator) Setup() Setup {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.setup
}

// SetSetup applies new settings and homes the head to the sector start.
func (s *Simulator) SetSetup(setup Setup) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.setSetupLocked(setup)
}

func (s *Simulator) setSetupLocked(setup Setup) {
	s.setup = setup
	s.pos = wrapUnits(setup.SectorStart)
	s.dir = 1
	if setup.StepSize < 0 {
		s.dir = -1
	}
}

// SetInterval sets the delay between pings for Start.
func (s *Simulator) SetInterval(d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.interval = d
}

// Targets returns the scene reflectors.
func (s *Simulator) Targets() []Target {
	out := make([]Target, len(s.targets))
	copy(out, s.targets)
	return out
}

// Next produces the ping at the current head position and advances the head.
func (s *Simulator) Next() PingEvent {
	s.mu.Lock()
	defer s.mu.Unlock()

	setup := s.setup
	step := intAbs(setup.StepSize)
	if step == 0 || setup.ImageDataPoint <= 0 {
		return PingEvent{Setup: setup}
	}
	steps := setup.StepsPerRevolution()
	bearing := s.pos / step

	ev := PingEvent{
		BearingIndex: bearing,
		Samples:      s.echoes(UnitsToDegrees(s.pos), setup),
		Setup:        setup,
	}
	s.advance(step)

	// The head occasionally reports one step past the end of a revolution
	// when it crosses the index mark.
	if bearing == 0 && s.setup.SectorSize >= MaxAngle && s.rng.IntN(8) == 0 {
		ev.BearingIndex = steps
	}
	return ev
}

func (s *Simulator) advance(step int) {
	if s.setup.SectorSize >= MaxAngle {
		s.pos = wrapUnits(s.pos + s.dir*step)
		return
	}

	// bounce between the sector edges
	start := s.setup.SectorStart
	end := start + s.setup.SectorSize
	rel := s.pos - wrapUnits(start)
	if rel < 0 {
		rel += MaxAngle
	}
	next := rel + s.dir*step
	if next > end-start || next < 0 {
		s.dir = -s.dir
		next = rel + s.dir*step
	}
	s.pos = wrapUnits(start + next)
}

func (s *Simulator) echoes(bearingDeg float64, setup Setup) []float64 {
	n := setup.ImageDataPoint
	maxRange := float64(setup.MaxRangeMm)
	blank := setup.BlankingDistanceMm()
	raw := make([]uint16, n)

	for i := range raw {
		r := float64(i+1) * maxRange / float64(n)
		frac := r / maxRange

		v := 0.08 * math.Exp(-frac*2)
		// seabed return
		v += 0.35 * gauss(frac-0.85, 0.03)
		for _, t := range s.targets {
			da := AngleDiff(bearingDeg, t.BearingDeg)
			v += t.Strength * gauss(da, t.WidthDeg) * gauss(frac-t.RangeFrac, 0.012)
		}
		// transducer ring-down inside the blanking range
		if r < blank {
			v += 0.9
		}
		v += math.Abs(s.noise.Rand())
		// the head reports 16-bit amplitudes
		raw[i] = uint16(math.Round(math.Max(0, math.Min(1, v)) * math.MaxUint16))
	}
	return NormalizeSamples(raw)
}

// Start emits a PingEvent through send on every tick until Stop is called
// or ctx is done.
func (s *Simulator) Start(ctx context.Context, send func(any)) error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return nil
	}
	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.running = true
	interval := s.interval
	s.mu.Unlock()

	go s.loop(ctx, interval, send)
	return nil
}

func (s *Simulator) loop(ctx context.Context, interval time.Duration, send func(any)) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			send(s.Next())
		}
	}
}

// Running reports whether Start is emitting pings.
func (s *Simulator) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// Stop halts the ping loop.
func (s *Simulator) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.running = false
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}

func gauss(x, sigma float64) float64 {
	return math.Exp(-(x * x) / (2 * sigma * sigma))
}

func wrapUnits(u int) int {
	u %= MaxAngle
	if u < 0 {
		u += MaxAngle
	}
	return u
}
