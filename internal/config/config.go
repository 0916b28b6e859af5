// Package config loads accelspec settings from YAML and command-line flags.
package config

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"io"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/cwbudde/accel-spectrum/dsp/window"
	"github.com/cwbudde/accel-spectrum/internal/logging"
	"github.com/cwbudde/accel-spectrum/measure/vibration"
)

// DefaultMaxFreqHz bounds displayed and exported spectra.
const DefaultMaxFreqHz = 50

// TrimConfig mirrors vibration.TrimPolicy.
type TrimConfig struct {
	Axis      int `yaml:"axis"`
	Magnitude int `yaml:"magnitude"`
}

// Config is the top-level structure of an accelspec YAML file.
type Config struct {
	MaxFreqHz         float64    `yaml:"max_freq_hz"`
	RemoveDC          bool       `yaml:"remove_dc"`
	Window            string     `yaml:"window"`
	Trim              TrimConfig `yaml:"trim"`
	NominalIntervalMs float64    `yaml:"nominal_interval_ms"`
	IntervalTolerance float64    `yaml:"interval_tolerance"`
	Delimiter         string     `yaml:"delimiter"`
	OutputDir         string     `yaml:"output_dir"`
	LogLevel          string     `yaml:"log_level"`
}

// Default returns the reference settings.
func Default() Config {
	d := vibration.DefaultConfig()
	return Config{
		MaxFreqHz:         DefaultMaxFreqHz,
		Window:            d.Window.String(),
		Trim:              TrimConfig{Axis: d.Trim.Axis, Magnitude: d.Trim.Magnitude},
		IntervalTolerance: d.IntervalTolerance,
		Delimiter:         ",",
		LogLevel:          "info",
	}
}

// Load reads a YAML file over the defaults. Unknown keys are rejected.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML over the defaults.
func Parse(data []byte) (Config, error) {
	cfg := Default()

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	return cfg, nil
}

// BindFlags registers flags on fs that write into cfg. The current values
// of cfg become the flag defaults.
func BindFlags(fs *flag.FlagSet, cfg *Config) {
	fs.Float64Var(&cfg.MaxFreqHz, "max-freq", cfg.MaxFreqHz, "upper frequency bound in Hz for summaries and export (0 = Nyquist)")
	fs.BoolVar(&cfg.RemoveDC, "remove-dc", cfg.RemoveDC, "subtract the channel mean before windowing")
	fs.StringVar(&cfg.Window, "window", cfg.Window, "window function (hann, rectangular, hamming, blackman, flat-top)")
	fs.IntVar(&cfg.Trim.Axis, "trim-axis", cfg.Trim.Axis, "leading bins dropped from axis spectra")
	fs.IntVar(&cfg.Trim.Magnitude, "trim-mag", cfg.Trim.Magnitude, "leading bins dropped from the magnitude spectrum")
	fs.Float64Var(&cfg.NominalIntervalMs, "nominal-interval-ms", cfg.NominalIntervalMs, "expected logger interval in ms (0 disables the check)")
	fs.StringVar(&cfg.Delimiter, "delimiter", cfg.Delimiter, "input field delimiter")
	fs.StringVar(&cfg.OutputDir, "out", cfg.OutputDir, "directory for CSV export (empty = no export)")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level (debug, info, warn, error)")
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	if c.MaxFreqHz < 0 || math.IsNaN(c.MaxFreqHz) {
		return fmt.Errorf("config: max_freq_hz must be >= 0: %v", c.MaxFreqHz)
	}
	if _, err := window.ParseType(c.Window); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if _, err := c.DelimiterRune(); err != nil {
		return err
	}

	a, err := c.analysis()
	if err != nil {
		return err
	}
	if err := a.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// DelimiterRune returns the single-character input delimiter.
func (c Config) DelimiterRune() (rune, error) {
	r := []rune(c.Delimiter)
	if len(r) != 1 {
		return 0, fmt.Errorf("config: delimiter must be one character: %q", c.Delimiter)
	}
	return r[0], nil
}

// Analysis converts the settings into a vibration.Config.
func (c Config) Analysis() (vibration.Config, error) {
	if err := c.Validate(); err != nil {
		return vibration.Config{}, err
	}
	return c.analysis()
}

func (c Config) analysis() (vibration.Config, error) {
	w, err := window.ParseType(c.Window)
	if err != nil {
		return vibration.Config{}, fmt.Errorf("config: %w", err)
	}

	return vibration.Config{
		Trim:              vibration.TrimPolicy{Axis: c.Trim.Axis, Magnitude: c.Trim.Magnitude},
		RemoveDC:          c.RemoveDC,
		Window:            w,
		NominalIntervalMs: c.NominalIntervalMs,
		IntervalTolerance: c.IntervalTolerance,
	}, nil
}
