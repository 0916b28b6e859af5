package config

import (
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/cwbudde/accel-spectrum/dsp/window"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.MaxFreqHz != 50 {
		t.Fatalf("MaxFreqHz=%v want=50", cfg.MaxFreqHz)
	}
	if cfg.Window != "hann" {
		t.Fatalf("Window=%q want=hann", cfg.Window)
	}
	if cfg.Trim.Axis != 2 || cfg.Trim.Magnitude != 1 {
		t.Fatalf("Trim=%+v want={2 1}", cfg.Trim)
	}
	if cfg.LogLevel != "info" || cfg.Delimiter != "," || cfg.RemoveDC {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
}

func TestParseOverlaysDefaults(t *testing.T) {
	cfg, err := Parse([]byte("remove_dc: true\nwindow: blackman\ntrim:\n  axis: 0\n"))
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}

	if !cfg.RemoveDC || cfg.Window != "blackman" {
		t.Fatalf("unexpected overlay: %+v", cfg)
	}
	if cfg.Trim.Axis != 0 || cfg.Trim.Magnitude != 1 {
		t.Fatalf("Trim=%+v want={0 1}", cfg.Trim)
	}
	if cfg.MaxFreqHz != 50 {
		t.Fatalf("MaxFreqHz=%v want default 50", cfg.MaxFreqHz)
	}
}

func TestParseEmpty(t *testing.T) {
	cfg, err := Parse(nil)
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if cfg != Default() {
		t.Fatalf("empty document=%+v want defaults", cfg)
	}
}

func TestParseRejectsUnknownKeys(t *testing.T) {
	if _, err := Parse([]byte("max_freq: 20\n")); err == nil {
		t.Fatal("expected error for unknown key")
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "accelspec.yaml")
	if err := os.WriteFile(path, []byte("max_freq_hz: 25\nlog_level: debug\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.MaxFreqHz != 25 || cfg.LogLevel != "debug" {
		t.Fatalf("unexpected config: %+v", cfg)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestBindFlagsOverride(t *testing.T) {
	cfg := Default()
	cfg.Window = "hamming"

	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	BindFlags(fs, &cfg)

	args := []string{"-remove-dc", "-trim-axis", "3", "-max-freq", "10", "-out", "plots"}
	if err := fs.Parse(args); err != nil {
		t.Fatalf("Parse error: %v", err)
	}

	if !cfg.RemoveDC || cfg.Trim.Axis != 3 || cfg.MaxFreqHz != 10 || cfg.OutputDir != "plots" {
		t.Fatalf("flags not applied: %+v", cfg)
	}
	if cfg.Window != "hamming" {
		t.Fatalf("Window=%q want value kept from before binding", cfg.Window)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"negative max freq", func(c *Config) { c.MaxFreqHz = -1 }},
		{"unknown window", func(c *Config) { c.Window = "kaiser" }},
		{"negative axis trim", func(c *Config) { c.Trim.Axis = -1 }},
		{"negative magnitude trim", func(c *Config) { c.Trim.Magnitude = -2 }},
		{"bad log level", func(c *Config) { c.LogLevel = "chatty" }},
		{"long delimiter", func(c *Config) { c.Delimiter = ",;" }},
		{"negative nominal interval", func(c *Config) { c.NominalIntervalMs = -5 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Fatalf("expected validation error for %+v", cfg)
			}
		})
	}
}

func TestAnalysis(t *testing.T) {
	cfg := Default()
	cfg.Window = "Flat-Top"
	cfg.RemoveDC = true
	cfg.NominalIntervalMs = 5

	a, err := cfg.Analysis()
	if err != nil {
		t.Fatalf("Analysis error: %v", err)
	}
	if a.Window != window.TypeFlatTop || !a.RemoveDC || a.NominalIntervalMs != 5 {
		t.Fatalf("unexpected analysis config: %+v", a)
	}
	if a.Trim.Axis != 2 || a.Trim.Magnitude != 1 {
		t.Fatalf("Trim=%+v want={2 1}", a.Trim)
	}
}

func TestDelimiterRune(t *testing.T) {
	cfg := Default()
	cfg.Delimiter = "\t"

	r, err := cfg.DelimiterRune()
	if err != nil || r != '\t' {
		t.Fatalf("DelimiterRune=%q, %v want tab", r, err)
	}
}
