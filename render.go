package main

import (
	"fmt"
	"image"
	"io"
	"path/filepath"

	"github.com/spf13/cobra"

	"sonar-scan.klederson.com/internal/config"
	"sonar-scan.klederson.com/internal/export"
	"sonar-scan.klederson.com/internal/logging"
	"sonar-scan.klederson.com/internal/session"
	"sonar-scan.klederson.com/internal/sonar"
)

var flagRevolutions int

func newRenderCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Scan headlessly and write the sonar image, texture and palette",
		RunE:  runRender,
	}
	cmd.Flags().IntVar(&flagRevolutions, "revolutions", 1, "Full sector sweeps to collect before rendering")
	return cmd
}

func newPaletteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "palette",
		Short: "Write the palette swatch",
		RunE:  runPalette,
	}
}

type output struct {
	file string
	img  *image.RGBA
}

func runRender(cmd *cobra.Command, args []string) error {
	sync, err := setupLogging(true)
	if err != nil {
		return err
	}
	defer sync()

	if flagRevolutions < 1 {
		return fmt.Errorf("--revolutions must be at least 1, got %d", flagRevolutions)
	}
	opts, err := options(cmd)
	if err != nil {
		return err
	}
	sess, err := session.New(opts.Setup, opts.Palette)
	if err != nil {
		return err
	}
	head := sonar.NewSimulator(opts.Setup, opts.Seed)

	log := logging.Named("render")
	limit := (flagRevolutions + 1) * sess.Store().Steps() * 2
	for n := 0; sess.Stats().Revolutions < flagRevolutions; n++ {
		if n > limit {
			return fmt.Errorf("no full revolution after %d pings", n)
		}
		// malformed pings are logged and counted by the session
		_, _ = sess.HandlePing(head.Next())
	}
	st := sess.Stats()
	log.Infow("scan complete", "pings", st.Pings, "revolutions", st.Revolutions, "malformed", st.Malformed)

	img, err := sess.RenderImage()
	if err != nil {
		return err
	}
	tex, err := sess.RenderTexture()
	if err != nil {
		return err
	}
	swatch, err := sess.RenderSwatch()
	if err != nil {
		return err
	}
	return saveAll(cmd.OutOrStdout(), []output{
		{config.ImageFile, img},
		{config.TextureFile, tex},
		{config.PaletteFile, swatch},
	})
}

func runPalette(cmd *cobra.Command, args []string) error {
	sync, err := setupLogging(true)
	if err != nil {
		return err
	}
	defer sync()

	opts, err := options(cmd)
	if err != nil {
		return err
	}
	swatch, err := opts.Palette.RenderSwatch(config.SwatchWidth, config.SwatchHeight, true)
	if err != nil {
		return err
	}
	return saveAll(cmd.OutOrStdout(), []output{{config.PaletteFile, swatch}})
}

// saveAll writes each image into the output folder and prints its path.
func saveAll(w io.Writer, outs []output) error {
	log := logging.Named("export")
	for _, o := range outs {
		path := filepath.Join(flagOut, o.file)
		if err := export.Save(path, o.img); err != nil {
			return err
		}
		log.Infow("saved", "path", path, "width", o.img.Rect.Dx(), "height", o.img.Rect.Dy())
		fmt.Fprintln(w, path)
	}
	return nil
}
