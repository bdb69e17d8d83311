package radar

import "sonar-scan.klederson.com/internal/sonar"

// Sweep tracks the transducer head from the pings it reports, so a display
// can highlight the freshly scanned trail.
type Sweep struct {
	Angle    float64 // degrees of the last ping, [0, 360)
	TrailDeg float64
	valid    bool
}

// NewSweep creates a sweep with the given trail length in degrees.
func NewSweep(trailDeg float64) *Sweep {
	return &Sweep{TrailDeg: trailDeg}
}

// Update moves the head to angle.
func (s *Sweep) Update(angle float64) {
	s.Angle = sonar.NormalizeAngle(angle)
	s.valid = true
}

// Reset forgets the head position.
func (s *Sweep) Reset() {
	s.valid = false
}

// Intensity returns the glow [0, 1] for an angle: 1 on the head, falling
// linearly to 0 at TrailDeg in either direction. The head scans both ways
// in a sector, so the trail is symmetric.
func (s *Sweep) Intensity(angle float64) float64 {
	if !s.valid || s.TrailDeg <= 0 {
		return 0
	}
	d := sonar.AngleDiff(s.Angle, angle)
	if d > s.TrailDeg {
		return 0
	}
	return 1 - d/s.TrailDeg
}
