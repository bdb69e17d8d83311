package main

import (
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"sonar-scan.klederson.com/internal/app"
	"sonar-scan.klederson.com/internal/config"
	"sonar-scan.klederson.com/internal/logging"
	"sonar-scan.klederson.com/internal/palette"
)

var (
	flagConfig  string
	flagRange   float64
	flagPalette string
	flagSeed    uint64
	flagOut     string
	flagLogFile string
	flagVerbose bool
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "sonar-scan",
		Short: "Sonar Scan - mechanically scanned sonar imaging in the terminal",
		Long: `Sonar Scan collects pings from a scanning sonar head and renders them as
a circular sector image and a range-by-bearing texture.

The live view runs a simulated head. Press [r] to start scanning and
[i], [t] or [p] to save the image, texture or palette.`,
		RunE:         runLive,
		SilenceUsage: true,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flagConfig, "config", "", "YAML settings file")
	pf.Float64Var(&flagRange, "range", 0, "Maximum range in meters (overrides the settings file)")
	pf.StringVar(&flagPalette, "palette", "", fmt.Sprintf("Palette name %v", palette.Names()))
	pf.Uint64Var(&flagSeed, "seed", 0, "Seed for the simulated scene")
	pf.StringVar(&flagOut, "out", ".", "Output folder for saved images and settings")
	pf.StringVar(&flagLogFile, "log-file", "", "Write logs to this file")
	pf.BoolVarP(&flagVerbose, "verbose", "v", false, "Debug logging")

	rootCmd.AddCommand(newRenderCmd(), newPaletteCmd())
	return rootCmd
}

// options merges the settings file with the command line.
func options(cmd *cobra.Command) (app.Options, error) {
	cfg := config.Defaults()
	if flagConfig != "" {
		loaded, err := config.Load(flagConfig)
		if err != nil {
			return app.Options{}, err
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("range") {
		if flagRange <= 0 {
			return app.Options{}, errors.New("--range must be positive")
		}
		cfg.Setup.MaxRangeMm = int(flagRange * 1000)
	}
	if flags.Changed("palette") {
		cfg.Palette = flagPalette
	}
	if flags.Changed("seed") {
		cfg.Seed = flagSeed
	}
	if err := cfg.Setup.Validate(); err != nil {
		return app.Options{}, err
	}

	pal, err := palette.Named(cfg.Palette)
	if err != nil {
		return app.Options{}, err
	}

	return app.Options{
		Setup:       cfg.Setup,
		Palette:     pal,
		PaletteName: cfg.Palette,
		Seed:        cfg.Seed,
		OutDir:      flagOut,
	}, nil
}

// setupLogging installs the process logger. The live view owns the
// terminal, so it only logs when given a file.
func setupLogging(console bool) (func(), error) {
	switch {
	case flagLogFile != "":
		l, err := logging.NewFile(flagLogFile, flagVerbose)
		if err != nil {
			return nil, err
		}
		logging.SetLogger(l)
	case console:
		l, err := logging.NewConsole(flagVerbose)
		if err != nil {
			return nil, err
		}
		logging.SetLogger(l)
	default:
		return func() {}, nil
	}
	return func() { _ = logging.Logger().Sync() }, nil
}

func runLive(cmd *cobra.Command, args []string) error {
	sync, err := setupLogging(false)
	if err != nil {
		return err
	}
	defer sync()

	opts, err := options(cmd)
	if err != nil {
		return err
	}
	model, err := app.New(opts)
	if err != nil {
		return err
	}

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithFPS(30),
	)

	// Start the head with a reference to the tea program
	model.Attach(p)
	if err := model.StartHead(); err != nil {
		return err
	}
	defer model.StopHead()

	_, err = p.Run()
	return err
}
