package sonar

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrMalformedPing is returned when a ping cannot be stored. The store is
	// left exactly as it was.
	ErrMalformedPing = errors.New("malformed ping")
	// ErrInvalidSteps is returned for a non-positive revolution resolution.
	ErrInvalidSteps = errors.New("invalid steps per revolution")
)

// PingStore keeps the latest ping for every bearing of one revolution.
// It is not safe for concurrent use; the owner serializes ingestion and
// rendering.
type PingStore struct {
	slots       []*Ping
	sampleCount int
	filled      int
}

// NewPingStore creates an empty store with steps bearing slots.
func NewPingStore(steps int) (*PingStore, error) {
	s := &PingStore{}
	if err := s.Configure(steps); err != nil {
		return nil, err
	}
	return s, nil
}

// Configure reallocates the store for a new resolution and drops every ping.
func (s *PingStore) Configure(steps int) error {
	if steps <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidSteps, steps)
	}
	s.slots = make([]*Ping, steps)
	s.sampleCount = 0
	s.filled = 0
	return nil
}

// Clear drops every ping but keeps the resolution.
func (s *PingStore) Clear() {
	for i := range s.slots {
		s.slots[i] = nil
	}
	s.sampleCount = 0
	s.filled = 0
}

// Steps returns the number of bearing slots.
func (s *PingStore) Steps() int { return len(s.slots) }

// SampleCount returns the per-ping sample count established by the first
// accepted ping, or 0.
func (s *PingStore) SampleCount() int { return s.sampleCount }

// Len returns the number of bearings holding a ping.
func (s *PingStore) Len() int { return s.filled }

// Add stores a copy of p in its bearing slot. A bearing equal to Steps() is
// the head overshooting by one step at the sync point and wraps to 0.
func (s *PingStore) Add(p Ping) error {
	steps := len(s.slots)
	switch {
	case steps == 0:
		return fmt.Errorf("%w: store not configured", ErrMalformedPing)
	case p.BearingIndex < 0 || p.BearingIndex > steps:
		return fmt.Errorf("%w: bearing %d outside [0, %d)", ErrMalformedPing, p.BearingIndex, steps)
	case len(p.Samples) == 0:
		return fmt.Errorf("%w: no samples", ErrMalformedPing)
	case !(p.MaxRangeMm > 0):
		return fmt.Errorf("%w: max range %g", ErrMalformedPing, p.MaxRangeMm)
	case s.sampleCount != 0 && len(p.Samples) != s.sampleCount:
		return fmt.Errorf("%w: %d samples, store holds %d", ErrMalformedPing, len(p.Samples), s.sampleCount)
	}

	idx := p.BearingIndex % steps
	cp := p.clone()
	cp.BearingIndex = idx
	if s.slots[idx] == nil {
		s.filled++
	}
	s.slots[idx] = cp
	s.sampleCount = len(p.Samples)
	return nil
}

// Ping returns a copy of the ping held for bearing.
func (s *PingStore) Ping(bearing int) (Ping, bool) {
	p := s.slot(bearing)
	if p == nil {
		return Ping{}, false
	}
	return *p.clone(), true
}

// BearingAngle returns the angle in degrees of bearing slot i.
func (s *PingStore) BearingAngle(i int) float64 {
	if len(s.slots) == 0 {
		return 0
	}
	return float64(s.wrap(i)) * 360 / float64(len(s.slots))
}

// SampleAt returns the amplitude at rangeMm on bearing, linearly
// interpolated between the two bracketing samples. It reports false, with
// NoData, when the slot is empty or the range is blanked or out of cover.
func (s *PingStore) SampleAt(bearing int, rangeMm float64) (float64, bool) {
	p := s.slot(bearing)
	if p == nil {
		return NoData, false
	}
	if rangeMm < 0 || rangeMm < p.BlankingDistanceMm || rangeMm > p.MaxRangeMm || math.IsNaN(rangeMm) {
		return NoData, false
	}

	n := len(p.Samples)
	// sample i sits at (i+1) bin widths
	pos := rangeMm/p.BinWidthMm() - 1
	if pos <= 0 {
		return p.Samples[0], true
	}
	i0 := int(pos)
	if i0 >= n-1 {
		return p.Samples[n-1], true
	}
	frac := pos - float64(i0)
	return p.Samples[i0] + frac*(p.Samples[i0+1]-p.Samples[i0]), true
}

// NeighborBearingBlend samples a continuous angle in degrees. With bilinear
// set it blends the two circularly adjacent bearings by angular fraction,
// falling back to whichever side has data. Otherwise it uses the nearest
// bearing. Range is interpolated by SampleAt in both modes.
func (s *PingStore) NeighborBearingBlend(angleDeg, rangeMm float64, bilinear bool) (float64, bool) {
	steps := len(s.slots)
	if steps == 0 {
		return NoData, false
	}
	pos := NormalizeAngle(angleDeg) * float64(steps) / 360

	if !bilinear {
		return s.SampleAt(int(math.Round(pos)), rangeMm)
	}

	b0 := int(math.Floor(pos))
	frac := pos - float64(b0)
	v0, ok0 := s.SampleAt(b0, rangeMm)
	v1, ok1 := s.SampleAt(b0+1, rangeMm)
	switch {
	case ok0 && ok1:
		return v0 + frac*(v1-v0), true
	case ok0:
		return v0, true
	case ok1:
		return v1, true
	}
	return NoData, false
}

func (s *PingStore) slot(bearing int) *Ping {
	if len(s.slots) == 0 {
		return nil
	}
	return s.slots[s.wrap(bearing)]
}

func (s *PingStore) wrap(i int) int {
	n := len(s.slots)
	i %= n
	if i < 0 {
		i += n
	}
	return i
}
