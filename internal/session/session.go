// Package session wires one sonar head's event stream to the ping store and
// the renderers.
package session

import (
	"errors"
	"fmt"
	"image"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"sonar-scan.klederson.com/internal/config"
	"sonar-scan.klederson.com/internal/logging"
	"sonar-scan.klederson.com/internal/palette"
	"sonar-scan.klederson.com/internal/radar"
	"sonar-scan.klederson.com/internal/sonar"
)

// Reconfigurer is notified after the session has applied new settings.
// Extra renderers (a live preview, say) hook in through it.
type Reconfigurer interface {
	Reconfigure(setup sonar.Setup) error
}

// Stats counts what the session has ingested.
type Stats struct {
	Pings       int
	Malformed   int
	Revolutions int
}

// Session owns the ping store and both renderers for one connected head.
// It is driven from a single goroutine.
type Session struct {
	ID uuid.UUID

	setup    sonar.Setup
	store    *sonar.PingStore
	palette  *palette.Palette
	circular *radar.CircularRenderer
	texture  *radar.TextureRenderer
	hooks    []Reconfigurer

	pingCount int
	stats     Stats
	log       *zap.SugaredLogger
}

// New creates a session for a head running setup. The circular image is
// config.ImageWidth x config.ImageHeight with bilinear interpolation; the
// texture gets one texel per data point and bearing with nearest lookup.
func New(setup sonar.Setup, pal *palette.Palette) (*Session, error) {
	if pal == nil {
		return nil, errors.New("session needs a palette")
	}
	if err := setup.Validate(); err != nil {
		return nil, fmt.Errorf("setup: %w", err)
	}

	store, err := sonar.NewPingStore(setup.StepsPerRevolution())
	if err != nil {
		return nil, err
	}

	s := &Session{
		ID:       uuid.New(),
		store:    store,
		palette:  pal,
		circular: radar.NewCircularRenderer(),
		texture:  radar.NewTextureRenderer(),
	}
	s.log = logging.Named("session").With("session", s.ID.String())

	if err := s.circular.SetBuffer(config.ImageWidth, config.ImageHeight, true); err != nil {
		return nil, err
	}
	if err := s.apply(setup); err != nil {
		return nil, err
	}
	s.log.Infow("session created", "steps", setup.StepsPerRevolution(), "max_range_mm", setup.MaxRangeMm)
	return s, nil
}

// AddReconfigurer registers h and brings it up to date with the current
// settings.
func (s *Session) AddReconfigurer(h Reconfigurer) error {
	s.hooks = append(s.hooks, h)
	return h.Reconfigure(s.setup)
}

// Setup returns the settings in force.
func (s *Session) Setup() sonar.Setup { return s.setup }

// Store returns the ping store. Callers must not mutate it.
func (s *Session) Store() *sonar.PingStore { return s.store }

// Palette returns the active palette.
func (s *Session) Palette() *palette.Palette { return s.palette }

// SetPalette swaps the palette used by later renders.
func (s *Session) SetPalette(p *palette.Palette) {
	if p != nil {
		s.palette = p
	}
}

// Circular returns the sector image renderer.
func (s *Session) Circular() *radar.CircularRenderer { return s.circular }

// Texture returns the texture renderer.
func (s *Session) Texture() *radar.TextureRenderer { return s.texture }

// Stats returns the ingest counters.
func (s *Session) Stats() Stats { return s.stats }

// HandlePing ingests one ping. Malformed pings are logged, counted and
// dropped; the returned error wraps sonar.ErrMalformedPing. It reports
// true when the ping completed a revolution.
func (s *Session) HandlePing(ev sonar.PingEvent) (bool, error) {
	p := sonar.Ping{
		BearingIndex:       ev.BearingIndex,
		Samples:            ev.Samples,
		BlankingDistanceMm: ev.Setup.BlankingDistanceMm(),
		MaxRangeMm:         float64(ev.Setup.MaxRangeMm),
	}
	if err := s.store.Add(p); err != nil {
		s.stats.Malformed++
		s.log.Warnw("ping dropped", "bearing", ev.BearingIndex, "samples", len(ev.Samples), "error", err)
		return false, err
	}
	s.log.Debugw("ping", "bearing", ev.BearingIndex, "blanking_mm", p.BlankingDistanceMm)

	s.stats.Pings++
	s.pingCount++
	if s.pingCount%s.store.Steps() == 0 {
		s.pingCount = 0
		s.stats.Revolutions++
		return true, nil
	}
	return false, nil
}

// HandleSettings applies a settings report from the head. A refused update
// is logged and leaves everything as it was.
func (s *Session) HandleSettings(ev sonar.SettingsEvent) error {
	if !ev.OK {
		s.log.Warnw("setup settings failed to update")
		return nil
	}
	if err := ev.Setup.Validate(); err != nil {
		s.log.Warnw("setup settings rejected", "error", err)
		return fmt.Errorf("setup: %w", err)
	}
	if err := s.apply(ev.Setup); err != nil {
		return err
	}
	s.log.Infow("setup settings updated",
		"steps", ev.Setup.StepsPerRevolution(),
		"sector_start", ev.Setup.SectorStart,
		"sector_size", ev.Setup.SectorSize,
		"max_range_mm", ev.Setup.MaxRangeMm)
	return nil
}

func (s *Session) apply(setup sonar.Setup) error {
	g := setup.Geometry()

	// stale pings no longer line up with the new bearings or ranges
	if err := s.store.Configure(setup.StepsPerRevolution()); err != nil {
		return err
	}
	s.pingCount = 0

	if err := s.circular.SetGeometry(g); err != nil {
		return err
	}
	cols, rows := radar.TextureSize(setup)
	if err := s.texture.SetBuffer(cols, rows, false); err != nil {
		return err
	}
	if err := s.texture.SetGeometry(g); err != nil {
		return err
	}
	s.setup = setup

	var errs []error
	for _, h := range s.hooks {
		if err := h.Reconfigure(setup); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// RenderImage draws the sector image, clearing outside the sector.
func (s *Session) RenderImage() (*image.RGBA, error) {
	img, err := s.circular.Render(s.store, s.palette, true)
	if err != nil {
		s.log.Errorw("circular render failed", "error", err)
	}
	return img, err
}

// RenderTexture draws the range-by-bearing texture without clearing.
func (s *Session) RenderTexture() (*image.RGBA, error) {
	img, err := s.texture.RenderTexture(s.store, s.palette, false)
	if err != nil {
		s.log.Errorw("texture render failed", "error", err)
	}
	return img, err
}

// RenderSwatch draws the palette legend.
func (s *Session) RenderSwatch() (*image.RGBA, error) {
	return s.palette.RenderSwatch(config.SwatchWidth, config.SwatchHeight, true)
}
