// Command skycat converts star, deep-sky and constellation catalogs into
// compact JSON or GeoJSON for sky charts.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"

	"github.com/litescript/ls-skycat/internal/catalog"
	"github.com/litescript/ls-skycat/internal/config"
	"github.com/litescript/ls-skycat/internal/encode"
	"github.com/litescript/ls-skycat/internal/logging"
	"github.com/litescript/ls-skycat/internal/selection"
	"github.com/litescript/ls-skycat/internal/ui"
	"github.com/litescript/ls-skycat/internal/version"
)

// previewFunc shows the selection and returns ui.ErrAborted to cancel the run.
type previewFunc func(records []catalog.Record, opts encode.Options) error

func main() {
	config.LoadEnvFiles()

	cfg, err := config.Parse(os.Args[1:], os.Getenv, os.Stderr)
	if err != nil {
		os.Exit(parseFailure(err, os.Stderr))
	}

	if cfg.ShowVersion {
		fmt.Printf("skycat %s\n", version.Version)
		return
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	logger := logging.New(cfg.Level())

	if err := run(cfg, logger, os.Stdout, terminalPreview); err != nil {
		if errors.Is(err, ui.ErrAborted) {
			logger.Warn("Preview aborted, nothing written")
			os.Exit(1)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// parseFailure reports a command line error and returns the exit code.
// The flag set has already printed usage errors, so those are not repeated.
func parseFailure(err error, stderr io.Writer) int {
	switch {
	case errors.Is(err, flag.ErrHelp):
		return 0
	case errors.Is(err, config.ErrUsage):
		return 2
	default:
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 2
	}
}

// terminalPreview runs the interactive preview on stderr so stdout stays
// reserved for the document.
func terminalPreview(records []catalog.Record, opts encode.Options) error {
	if !term.IsTerminal(int(os.Stderr.Fd())) || !term.IsTerminal(int(os.Stdin.Fd())) {
		return errors.New("--preview requires an interactive terminal")
	}
	return ui.RunPreview(records, opts, os.Stdin, os.Stderr)
}

// run executes one load → select → encode → write pass. Every stage
// completes before the next begins and any error aborts before output.
func run(cfg config.Config, logger *logging.Logger, stdout io.Writer, preview previewFunc) error {
	criteria, err := cfg.Criteria()
	if err != nil {
		return err
	}

	if !cfg.HasSources() {
		logger.Warn("No catalogs given (use --hyg, --ngc or --constellations)")
	}

	src, err := loadSources(cfg, logger)
	if err != nil {
		return err
	}

	records := selection.Gather(src, criteria, logger)

	enc := encode.New(cfg.EncodeOptions())
	if cfg.Preview && preview != nil {
		if err := preview(records, enc.Options()); err != nil {
			return err
		}
	}

	doc, err := enc.Encode(records)
	if err != nil {
		return fmt.Errorf("encode %s: %w", enc.Options().Mode, err)
	}

	fmt.Fprintf(stdout, "%d objects\n", len(records))

	if cfg.OutPath != "" {
		if err := os.WriteFile(cfg.OutPath, doc, 0644); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
		logger.Info("Wrote %d bytes to %s", len(doc), cfg.OutPath)
		return nil
	}

	if _, err := fmt.Fprintf(stdout, "%s\n", doc); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}

// loadSources reads every requested catalog in the fixed order stars,
// deep-sky, constellations.
func loadSources(cfg config.Config, logger *logging.Logger) (selection.Sources, error) {
	var (
		src selection.Sources
		err error
	)

	if cfg.HYGPath != "" {
		src.Stars, err = loadFile(cfg.HYGPath, logger, catalog.LoadHYG)
		if err != nil {
			return selection.Sources{}, err
		}
	}
	if cfg.NGCPath != "" {
		src.DeepSky, err = loadFile(cfg.NGCPath, logger, catalog.LoadNGC)
		if err != nil {
			return selection.Sources{}, err
		}
	}
	if cfg.ConstellationsPath != "" {
		src.Constellations, err = loadFile(cfg.ConstellationsPath, logger, catalog.LoadConstellations)
		if err != nil {
			return selection.Sources{}, err
		}
	}
	return src, nil
}

func loadFile[T any](path string, logger *logging.Logger, load func(io.Reader, *logging.Logger) (T, error)) (T, error) {
	var zero T

	f, err := os.Open(path)
	if err != nil {
		return zero, fmt.Errorf("open catalog: %w", err)
	}
	defer f.Close()

	logger.Debug("Loading %s", path)
	v, err := load(f, logger)
	if err != nil {
		return zero, fmt.Errorf("load %s: %w", path, err)
	}
	return v, nil
}
