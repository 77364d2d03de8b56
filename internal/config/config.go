// Package config builds the run configuration from command-line flags and
// environment defaults.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/litescript/ls-skycat/internal/encode"
	"github.com/litescript/ls-skycat/internal/logging"
	"github.com/litescript/ls-skycat/internal/selection"
)

var (
	// ErrInvalidPattern is returned when --specifically does not compile.
	ErrInvalidPattern = errors.New("invalid --specifically pattern")
	// ErrInvalidValue is returned for out-of-range flag or environment values.
	ErrInvalidValue = errors.New("invalid configuration value")
	// ErrUsage wraps flag parsing errors. The flag set has already printed
	// them along with the usage text.
	ErrUsage = errors.New("usage error")
)

// Environment variables that provide flag defaults.
const (
	EnvHYG            = "SKYCAT_HYG"
	EnvNGC            = "SKYCAT_NGC"
	EnvConstellations = "SKYCAT_CONSTELLATIONS"
	EnvMagnitude      = "SKYCAT_MAGNITUDE"
	EnvSpecifically   = "SKYCAT_SPECIFICALLY"
	EnvLogLevel       = "SKYCAT_LOG_LEVEL"
)

const (
	defaultMagnitude    = 5
	defaultSpecifically = ".*"
	defaultLogLevel     = "warn"
)

// Config is the immutable configuration for one run.
type Config struct {
	HYGPath            string
	NGCPath            string
	ConstellationsPath string
	OutPath            string

	Magnitude    int
	Specifically string

	Indent      int
	InvertRA    bool
	GeoJSON     bool
	IncludeName bool

	LogLevel    string
	Verbose     bool
	Preview     bool
	ShowVersion bool
}

// LoadEnvFiles reads .env and .env.local from the working directory.
// Variables already present in the environment are not overridden.
func LoadEnvFiles() {
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")
}

// Parse reads flags from args, using getenv for defaults. Flag usage and
// errors are written to output.
func Parse(args []string, getenv func(string) string, output io.Writer) (Config, error) {
	if getenv == nil {
		getenv = os.Getenv
	}

	magnitude := defaultMagnitude
	if v := getenv(EnvMagnitude); v != "" {
		m, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("%w: %s=%q is not an integer", ErrInvalidValue, EnvMagnitude, v)
		}
		magnitude = m
	}

	var cfg Config
	fs := flag.NewFlagSet("skycat", flag.ContinueOnError)
	fs.SetOutput(output)

	fs.StringVar(&cfg.NGCPath, "ngc", getenv(EnvNGC), "OpenNGC catalog file path")
	fs.StringVar(&cfg.HYGPath, "hyg", getenv(EnvHYG), "HYG star catalog file path")
	fs.StringVar(&cfg.ConstellationsPath, "constellations", getenv(EnvConstellations), "Constellation lines file path")
	fs.StringVar(&cfg.OutPath, "out", "", "Write output JSON to file instead of stdout")
	fs.IntVar(&cfg.Magnitude, "magnitude", magnitude, "Limit output to objects at or brighter than this magnitude")
	fs.StringVar(&cfg.Specifically, "specifically", envOr(getenv, EnvSpecifically, defaultSpecifically),
		"Regular expression matching object ids, aliases or constellation abbreviations to include")
	fs.IntVar(&cfg.Indent, "indent", 0, "Pretty-print with sorted keys and this indent width")
	fs.BoolVar(&cfg.InvertRA, "invert-ra", false, "Write 360-RA (for projections expecting longitude/latitude)")
	fs.BoolVar(&cfg.GeoJSON, "geojson", false, "Output a GeoJSON FeatureCollection")
	fs.BoolVar(&cfg.IncludeName, "includename", false, "Include the object id as its name in GeoJSON output")
	fs.StringVar(&cfg.LogLevel, "log-level", envOr(getenv, EnvLogLevel, defaultLogLevel), "Log level (debug, info, warn, error)")
	fs.BoolVar(&cfg.Verbose, "v", false, "Verbose logging (same as --log-level debug)")
	fs.BoolVar(&cfg.Preview, "preview", false, "Browse the selection in a terminal UI before writing")
	fs.BoolVar(&cfg.ShowVersion, "version", false, "Print version and exit")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return Config{}, err
		}
		return Config{}, fmt.Errorf("%w: %w", ErrUsage, err)
	}
	if fs.NArg() > 0 {
		return Config{}, fmt.Errorf("%w: unexpected argument %q", ErrInvalidValue, fs.Arg(0))
	}

	return cfg, nil
}

func envOr(getenv func(string) string, key, fallback string) string {
	if v := getenv(key); v != "" {
		return v
	}
	return fallback
}

// Validate checks values that must be rejected before any catalog is read.
func (c Config) Validate() error {
	if _, err := regexp.Compile(c.Specifically); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidPattern, err)
	}
	if c.Indent < 0 {
		return fmt.Errorf("%w: --indent must not be negative", ErrInvalidValue)
	}
	if _, ok := logging.ParseLevel(c.LogLevel); !ok {
		return fmt.Errorf("%w: unknown log level %q", ErrInvalidValue, c.LogLevel)
	}
	return nil
}

// Level returns the effective log level.
func (c Config) Level() logging.Level {
	if c.Verbose {
		return logging.LevelDebug
	}
	level, _ := logging.ParseLevel(c.LogLevel)
	return level
}

// Criteria returns the selection criteria.
func (c Config) Criteria() (selection.Criteria, error) {
	crit, err := selection.NewCriteria(float64(c.Magnitude), c.Specifically)
	if err != nil {
		return selection.Criteria{}, fmt.Errorf("%w: %v", ErrInvalidPattern, err)
	}
	return crit, nil
}

// EncodeOptions returns the encoder options.
func (c Config) EncodeOptions() encode.Options {
	mode := encode.ModePlain
	if c.GeoJSON {
		mode = encode.ModeGeoJSON
	}
	return encode.Options{
		Mode:        mode,
		InvertRA:    c.InvertRA,
		IncludeName: c.IncludeName,
		Indent:      c.Indent,
	}
}

// HasSources reports whether at least one catalog was requested.
func (c Config) HasSources() bool {
	return c.HYGPath != "" || c.NGCPath != "" || c.ConstellationsPath != ""
}
