// Command binarize converts images to black/white bit images the way a
// barcode decoder sees them, and optionally reports block statistics.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/ericlevine/hybridbin"
	"github.com/ericlevine/hybridbin/binarizer"
	"github.com/ericlevine/hybridbin/internal/imageio"
	"github.com/ericlevine/hybridbin/internal/report"
)

const (
	modeHybrid    = "hybrid"
	modeHistogram = "histogram"
)

type config struct {
	mode     string
	output   string
	report   bool
	row      int
	rotate   bool
	maxSize  int
	logLevel string
	paths    []string
}

func (c *config) validate() error {
	switch c.mode {
	case modeHybrid, modeHistogram:
	default:
		return fmt.Errorf("unknown mode %q (want %s or %s)", c.mode, modeHybrid, modeHistogram)
	}
	if len(c.paths) == 0 {
		return errors.New("no input images")
	}
	if c.output != "" && len(c.paths) > 1 {
		return errors.New("-o takes a single input image")
	}
	if c.maxSize < 0 {
		return errors.New("-max-size must not be negative")
	}
	return nil
}

func parseFlags(args []string, stderr io.Writer) (*config, error) {
	fs := flag.NewFlagSet("binarize", flag.ContinueOnError)
	fs.SetOutput(stderr)
	cfg := &config{}
	fs.StringVar(&cfg.mode, "mode", modeHybrid, "binarizer: hybrid or histogram")
	fs.StringVar(&cfg.output, "o", "", "write the bit image as PNG to this file")
	fs.BoolVar(&cfg.report, "report", false, "print a JSON report for each image to stdout")
	fs.IntVar(&cfg.row, "row", -1, "also binarize this row for 1D scanning and include it in the report")
	fs.BoolVar(&cfg.rotate, "rotate", false, "rotate the image 90 degrees counterclockwise first")
	fs.IntVar(&cfg.maxSize, "max-size", 0, "downscale so the longest side is at most this many pixels (0 = off)")
	fs.StringVar(&cfg.logLevel, "log-level", "info", "log level: debug, info, warn or error")
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: binarize [flags] <image-file> [image-file...]\n\n")
		fmt.Fprintf(stderr, "Binarize images (PNG, JPEG, GIF, BMP, TIFF, WebP) for barcode decoding.\n\n")
		fmt.Fprintf(stderr, "Flags:\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	cfg.paths = fs.Args()
	if err := cfg.validate(); err != nil {
		fs.Usage()
		return nil, err
	}
	return cfg, nil
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	cfg, err := parseFlags(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 2
	}
	if err := setupLogger(stderr, cfg.logLevel); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 2
	}

	exitCode := 0
	for _, path := range cfg.paths {
		r, err := binarizeFile(path, cfg)
		if err != nil {
			binLog.Error().Err(err).Str("path", path).Msg("binarization failed")
			exitCode = 1
			continue
		}
		if cfg.report {
			if err := report.Write(stdout, r); err != nil {
				binLog.Error().Err(err).Str("path", path).Msg("writing report failed")
				exitCode = 1
			}
		}
	}
	return exitCode
}

func newBinarizer(mode string, source hybridbin.LuminanceSource) hybridbin.Binarizer {
	if mode == modeHistogram {
		return binarizer.NewGlobalHistogram(source)
	}
	return binarizer.NewHybrid(source)
}

func binarizeFile(path string, cfg *config) (*report.Report, error) {
	img, format, err := imageio.Load(path)
	if err != nil {
		return nil, err
	}
	bounds := img.Bounds()
	binLog.Debug().
		Str("path", path).
		Str("format", format).
		Int("width", bounds.Dx()).
		Int("height", bounds.Dy()).
		Msg("loaded image")

	if scaled := imageio.Downscale(img, cfg.maxSize); scaled != img {
		binLog.Debug().
			Int("width", scaled.Bounds().Dx()).
			Int("height", scaled.Bounds().Dy()).
			Msg("downscaled image")
		img = scaled
	}

	source := hybridbin.NewImageLuminanceSource(img)
	if cfg.rotate {
		source = source.RotateCounterClockwise()
	}
	bitmap := hybridbin.NewBinaryBitmap(newBinarizer(cfg.mode, source))

	start := time.Now()
	r, err := report.Summarize(path, cfg.mode, bitmap)
	if err != nil {
		return nil, err
	}
	r.SetElapsed(time.Since(start))
	if cfg.row >= 0 {
		if err := r.AddRow(bitmap, cfg.row); err != nil {
			return nil, fmt.Errorf("row %d: %w", cfg.row, err)
		}
	}

	binLog.Info().
		Str("path", path).
		Str("mode", cfg.mode).
		Int("width", r.Width).
		Int("height", r.Height).
		Bool("fallback", r.Fallback).
		Int("black", r.BlackPixels).
		Float64("elapsedMs", r.ElapsedMs).
		Msg("binarized")

	if cfg.output != "" {
		m, err := bitmap.BlackMatrix()
		if err != nil {
			return nil, err
		}
		if err := imageio.WritePNG(cfg.output, hybridbin.BitMatrixToImage(m)); err != nil {
			return nil, err
		}
		binLog.Info().Str("output", cfg.output).Msg("wrote bit image")
	}
	return r, nil
}
