package app

import (
	"context"
	"errors"
	"fmt"
	"image"
	"math"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"sonar-scan.klederson.com/internal/config"
	"sonar-scan.klederson.com/internal/export"
	"sonar-scan.klederson.com/internal/logging"
	"sonar-scan.klederson.com/internal/palette"
	"sonar-scan.klederson.com/internal/radar"
	"sonar-scan.klederson.com/internal/session"
	"sonar-scan.klederson.com/internal/sonar"
	"sonar-scan.klederson.com/internal/ui"
)

// Options configures the live view.
type Options struct {
	Setup       sonar.Setup
	Palette     *palette.Palette
	PaletteName string
	Seed        uint64
	OutDir      string
}

// shared holds state shared between the Bubble Tea model copies and main.go.
// Because Bubble Tea uses value receivers, pointer fields ensure all copies
// see the same underlying data.
type shared struct {
	session *session.Session
	head    *sonar.Simulator
	preview *preview
	sweep   *radar.Sweep
	peaks   *Ring[float64]
	events  *Ring[ui.Event]
	send    func(any)
	log     *zap.SugaredLogger
}

// AppModel is the root Bubble Tea model for the sonar console.
type AppModel struct {
	width  int
	height int

	paletteName string
	seed        uint64
	outDir      string

	shared *shared

	// Last preview frame, owned by the preview renderer
	frame *image.RGBA
}

// New creates an AppModel with a fresh session and simulated head.
func New(opts Options) (AppModel, error) {
	pal := opts.Palette
	if pal == nil {
		pal = palette.Default()
	}
	sess, err := session.New(opts.Setup, pal)
	if err != nil {
		return AppModel{}, err
	}
	pv := newPreview()
	if err := sess.AddReconfigurer(pv); err != nil {
		return AppModel{}, err
	}

	head := sonar.NewSimulator(opts.Setup, opts.Seed)
	head.SetInterval(config.PingInterval)

	name := opts.PaletteName
	if name == "" {
		name = "default"
	}
	outDir := opts.OutDir
	if outDir == "" {
		outDir = "."
	}

	return AppModel{
		paletteName: name,
		seed:        opts.Seed,
		outDir:      outDir,
		shared: &shared{
			session: sess,
			head:    head,
			preview: pv,
			sweep:   radar.NewSweep(config.SweepTrailDeg),
			peaks:   NewRing[float64](config.PeakHistorySize),
			events:  NewRing[ui.Event](config.EventLogSize),
			log:     logging.Named("app"),
		},
	}, nil
}

// Session returns the session the view drives.
func (m AppModel) Session() *session.Session { return m.shared.session }

func (m AppModel) Init() tea.Cmd {
	return tickCmd()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		cols, rows := m.previewCells()
		if err := m.shared.preview.resize(cols, rows); err != nil {
			m.event(ui.LevelError, "preview resize: %v", err)
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case TickMsg:
		if m.shared.preview.Image() != nil {
			img, err := m.shared.preview.Render(m.shared.session.Store(), m.shared.session.Palette(), true)
			if err == nil {
				m.frame = img
			}
		}
		return m, tickCmd()

	case sonar.PingEvent:
		m.handlePing(msg)
		return m, nil

	case sonar.SettingsEvent:
		if !msg.OK {
			m.event(ui.LevelWarn, "head refused settings update")
			return m, nil
		}
		if err := m.shared.session.HandleSettings(msg); err != nil {
			m.event(ui.LevelError, "settings rejected: %v", err)
			return m, nil
		}
		m.shared.sweep.Reset()
		m.shared.peaks = NewRing[float64](config.PeakHistorySize)
		s := msg.Setup
		m.event(ui.LevelInfo, "settings: range %.1fm sector %.0f°+%.0f°",
			float64(s.MaxRangeMm)/1000, sonar.UnitsToDegrees(s.SectorStart), sonar.UnitsToDegrees(s.SectorSize))
		return m, nil

	case SavedMsg:
		if msg.Err != nil {
			m.event(ui.LevelError, "save %s: %v", msg.What, msg.Err)
		} else {
			m.event(ui.LevelInfo, "saved %s to %s", msg.What, msg.Path)
		}
		return m, nil

	case ScanErrorMsg:
		m.event(ui.LevelError, "head: %v", msg.Err)
		return m, nil
	}

	return m, nil
}

func (m AppModel) handlePing(ev sonar.PingEvent) {
	sess := m.shared.session
	if ev.Setup != sess.Setup() {
		// emitted before the head applied the current settings
		return
	}
	revolution, err := sess.HandlePing(ev)
	if err != nil {
		if n := sess.Stats().Malformed; n == 1 || n%100 == 0 {
			m.event(ui.LevelWarn, "dropped %d malformed pings: %v", sess.Stats().Malformed, err)
		}
		return
	}

	store := sess.Store()
	m.shared.sweep.Update(store.BearingAngle(ev.BearingIndex % store.Steps()))

	peak := 0.0
	for _, v := range ev.Samples {
		peak = math.Max(peak, v)
	}
	m.shared.peaks.Push(peak)

	if revolution {
		st := sess.Stats()
		m.shared.log.Debugw("revolution complete", "revolutions", st.Revolutions, "pings", st.Pings)
	}
}

func (m AppModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	setup := m.shared.session.Setup()

	switch msg.String() {
	case "q", "Q", "ctrl+c":
		m.shared.head.Stop()
		return m, tea.Quit

	case "r":
		if err := m.StartHead(); err != nil {
			m.event(ui.LevelError, "start: %v", err)
		}

	case "R":
		m.StopHead()
		m.event(ui.LevelInfo, "scanning stopped")

	case "d":
		return m, m.applySetup(sonar.DefaultSetup())

	case "+", "=":
		setup.MaxRangeMm = min(setup.MaxRangeMm+config.RangeStepMm, config.MaxRangeMm)
		return m, m.applySetup(setup)

	case "-", "_":
		setup.MaxRangeMm = max(setup.MaxRangeMm-config.RangeStepMm, config.MinRangeMm)
		return m, m.applySetup(setup)

	case "]":
		step := sonar.DegreesToUnits(config.SectorStepDeg)
		setup.SectorSize = min(setup.SectorSize+step, sonar.MaxAngle)
		return m, m.applySetup(setup)

	case "[":
		step := sonar.DegreesToUnits(config.SectorStepDeg)
		setup.SectorSize = max(setup.SectorSize-step, step)
		return m, m.applySetup(setup)

	case "b", "B":
		pv := m.shared.preview
		pv.SetBilinear(!pv.Bilinear())

	case "c", "C":
		return m.cyclePalette(), nil

	case "s", "S":
		return m, m.saveSettings()

	case "i", "I":
		img, err := m.shared.session.RenderImage()
		return m, saveImageCmd("image", filepath.Join(m.outDir, config.ImageFile), img, err)

	case "t", "T":
		img, err := m.shared.session.RenderTexture()
		return m, saveImageCmd("texture", filepath.Join(m.outDir, config.TextureFile), img, err)

	case "p", "P":
		img, err := m.shared.session.RenderSwatch()
		return m, saveImageCmd("palette", filepath.Join(m.outDir, config.PaletteFile), img, err)
	}

	return m, nil
}

// cyclePalette switches the session to the next built-in palette.
func (m AppModel) cyclePalette() AppModel {
	names := palette.Names()
	next := names[0]
	for i, n := range names {
		if n == m.paletteName {
			next = names[(i+1)%len(names)]
			break
		}
	}
	pal, err := palette.Named(next)
	if err != nil {
		m.event(ui.LevelError, "palette: %v", err)
		return m
	}
	m.shared.session.SetPalette(pal)
	m.paletteName = next
	m.event(ui.LevelInfo, "palette %s", next)
	return m
}

// applySetup pushes new settings to the head and reports them back as a
// settings event, the way a real head acknowledges an update.
func (m AppModel) applySetup(setup sonar.Setup) tea.Cmd {
	if err := setup.Validate(); err != nil {
		m.event(ui.LevelWarn, "settings not sent: %v", err)
		return nil
	}
	m.shared.head.SetSetup(setup)
	return func() tea.Msg {
		return sonar.SettingsEvent{Setup: setup, OK: true}
	}
}

func (m AppModel) saveSettings() tea.Cmd {
	cfg := config.File{
		Setup:   m.shared.session.Setup(),
		Palette: m.paletteName,
		Seed:    m.seed,
	}
	path := filepath.Join(m.outDir, config.SettingsFile)
	return func() tea.Msg {
		return SavedMsg{What: "settings", Path: path, Err: config.Save(path, cfg)}
	}
}

// saveImageCmd encodes a snapshot of img in the background, since the
// renderer keeps drawing into its buffer.
func saveImageCmd(what, path string, img *image.RGBA, renderErr error) tea.Cmd {
	if renderErr != nil {
		return func() tea.Msg { return SavedMsg{What: what, Path: path, Err: renderErr} }
	}
	if img == nil {
		return func() tea.Msg { return SavedMsg{What: what, Path: path, Err: errors.New("nothing rendered")} }
	}
	snap := image.NewRGBA(img.Rect)
	copy(snap.Pix, img.Pix)
	return func() tea.Msg {
		return SavedMsg{What: what, Path: path, Err: export.Save(path, snap)}
	}
}

func (m AppModel) event(level int, format string, args ...any) {
	text := fmt.Sprintf(format, args...)
	m.shared.events.Push(ui.Event{Time: time.Now().Format("15:04:05"), Level: level, Text: text})
	switch level {
	case ui.LevelError:
		m.shared.log.Error(text)
	case ui.LevelWarn:
		m.shared.log.Warn(text)
	default:
		m.shared.log.Info(text)
	}
}

// layout splits the screen between the sonar panel and the side panels.
func (m AppModel) layout() (bodyH, sonarW, sideW int) {
	bodyH = max(m.height-2, 5)
	sonarW = max(m.width*2/3, 30)
	sideW = m.width - sonarW
	if sideW < 30 {
		sideW = 30
		sonarW = max(m.width-sideW, 10)
	}
	return bodyH, sonarW, sideW
}

// previewCells is the terminal area inside the sonar panel border, less
// one line for the legend.
func (m AppModel) previewCells() (cols, rows int) {
	bodyH, sonarW, _ := m.layout()
	return sonarW - 4, bodyH - 3
}

func (m AppModel) View() string {
	if m.width == 0 || m.height == 0 {
		return "Initializing sonar..."
	}

	bodyH, sonarW, sideW := m.layout()
	sess := m.shared.session
	setup := sess.Setup()
	stats := sess.Stats()

	scanning := m.shared.head.Running()
	menuBar := ui.RenderMenuBar(m.width, m.paletteName, scanning)

	pv := m.shared.preview
	sweep := m.shared.sweep
	content := ui.RenderSonarImage(m.frame, func(x, y int) float64 {
		_, angle, ok := pv.PixelToPolar(x, y)
		if !ok {
			return 0
		}
		return sweep.Intensity(angle)
	})
	sonarPanel := ui.RenderSonarPanel(sonarW, bodyH, content, ui.SonarLegend(setup.MaxRangeMm, pv.Bilinear()))

	settingsH := bodyH * 2 / 3
	view := ui.SettingsView{
		SessionID:    sess.ID.String()[:8],
		MaxRangeMm:   setup.MaxRangeMm,
		SectorStart:  sonar.UnitsToDegrees(setup.SectorStart),
		SectorSize:   sonar.UnitsToDegrees(setup.SectorSize),
		StepSize:     setup.StepSize,
		Steps:        setup.StepsPerRevolution(),
		DataPoints:   setup.ImageDataPoint,
		BlankingMm:   int(setup.BlankingDistanceMm()),
		HeadDeg:      sweep.Angle,
		LastPeak:     m.shared.peaks.Last(),
		PeakHistory:  m.shared.peaks.Values(),
		PaletteName:  m.paletteName,
		PaletteStrip: paletteStrip(sess.Palette(), 16),
		OutputFolder: m.outDir,
	}
	settingsPanel := ui.RenderSettingsPanel(view, sideW, settingsH)
	eventPanel := ui.RenderEventLog(m.shared.events.Values(), sideW, bodyH-settingsH)

	statusBar := ui.RenderStatusBar(m.width, scanning, stats.Pings, stats.Revolutions, stats.Malformed,
		sweep.Angle, setup.MaxRangeMm)

	return ui.ComposeLayout(menuBar, sonarPanel, settingsPanel, eventPanel, statusBar)
}

// Attach routes head messages into p. Must be called before p.Run().
func (m *AppModel) Attach(p *tea.Program) {
	m.shared.send = func(msg any) { p.Send(msg) }
}

// StartHead starts the simulated head emitting pings into the program.
func (m *AppModel) StartHead() error {
	if m.shared.send == nil {
		return errors.New("no program attached")
	}
	if m.shared.head.Running() {
		return nil
	}
	if err := m.shared.head.Start(context.Background(), m.shared.send); err != nil {
		return err
	}
	m.event(ui.LevelInfo, "scanning started")
	return nil
}

// StopHead stops the simulated head.
func (m *AppModel) StopHead() {
	m.shared.head.Stop()
}

// paletteStrip samples pal at n evenly spaced values, low to high.
func paletteStrip(pal *palette.Palette, n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = pal.Hex(float64(i) / float64(n-1))
	}
	return out
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(config.TargetFPS), func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
