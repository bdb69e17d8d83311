package sonar

// NoData is the amplitude reported where the store holds no valid return.
const NoData = 0.0

// Ping is one transmit/receive cycle at a known bearing. Samples are
// normalized amplitudes; sample i is the return for the range bin ending at
// (i+1) * MaxRangeMm / len(Samples).
type Ping struct {
	BearingIndex       int
	Samples            []float64
	BlankingDistanceMm float64
	MaxRangeMm         float64
}

// BinWidthMm is the range covered by one sample.
func (p *Ping) BinWidthMm() float64 {
	if len(p.Samples) == 0 {
		return 0
	}
	return p.MaxRangeMm / float64(len(p.Samples))
}

func (p Ping) clone() *Ping {
	cp := p
	cp.Samples = make([]float64, len(p.Samples))
	copy(cp.Samples, p.Samples)
	return &cp
}

// NormalizeSamples scales raw 16-bit device amplitudes into [0, 1].
func NormalizeSamples(raw []uint16) []float64 {
	out := make([]float64, len(raw))
	for i, v := range raw {
		out[i] = float64(v) / 65535
	}
	return out
}

// PingEvent is delivered by the device layer for every received ping. The
// blanking distance is derived by the receiver from Setup.
type PingEvent struct {
	BearingIndex int
	Samples      []float64
	Setup        Setup
}

// SettingsEvent is delivered when the device reports new setup settings. OK
// is false when the device refused the update.
type SettingsEvent struct {
	Setup Setup
	OK    bool
}
