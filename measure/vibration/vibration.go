package vibration

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/cwbudde/accel-spectrum/dsp/core"
	"github.com/cwbudde/accel-spectrum/dsp/spectrum"
	"github.com/cwbudde/accel-spectrum/dsp/window"
	"github.com/cwbudde/accel-spectrum/ingest"
	"github.com/cwbudde/accel-spectrum/measure/samplerate"
	frequencystats "github.com/cwbudde/accel-spectrum/stats/frequency"
	timestats "github.com/cwbudde/accel-spectrum/stats/time"
)

// Channel names in report order.
const (
	ChannelX         = ingest.ColumnX
	ChannelY         = ingest.ColumnY
	ChannelZ         = ingest.ColumnZ
	ChannelMagnitude = "AccMag"
)

const defaultIntervalTolerance = 0.1

var errLengthMismatch = errors.New("channel lengths differ")

// TrimPolicy sets how many leading spectrum bins are dropped per channel kind.
type TrimPolicy struct {
	Axis      int
	Magnitude int
}

// DefaultTrimPolicy drops bins 0 and 1 from axis spectra and bin 0 from the
// magnitude spectrum.
func DefaultTrimPolicy() TrimPolicy {
	return TrimPolicy{Axis: 2, Magnitude: 1}
}

// Config holds analysis parameters.
type Config struct {
	Trim     TrimPolicy
	RemoveDC bool
	Window   window.Type

	// NominalIntervalMs is the logger's configured sample interval. When
	// positive, a median interval further than IntervalTolerance (relative)
	// from it adds a report warning. A zero tolerance warns on any deviation.
	NominalIntervalMs float64
	IntervalTolerance float64
}

// DefaultConfig returns the reference analysis settings.
func DefaultConfig() Config {
	return Config{
		Trim:              DefaultTrimPolicy(),
		Window:            window.TypeHann,
		IntervalTolerance: defaultIntervalTolerance,
	}
}

// Validate reports configuration errors.
func (c Config) Validate() error {
	if c.Trim.Axis < 0 || c.Trim.Magnitude < 0 {
		return fmt.Errorf("vibration: trim must be >= 0: axis=%d magnitude=%d", c.Trim.Axis, c.Trim.Magnitude)
	}
	if !c.Window.Valid() {
		return fmt.Errorf("vibration: unsupported window: %v", c.Window)
	}
	if c.NominalIntervalMs < 0 {
		return fmt.Errorf("vibration: nominal interval must be >= 0: %v", c.NominalIntervalMs)
	}
	if c.IntervalTolerance < 0 {
		return fmt.Errorf("vibration: interval tolerance must be >= 0: %v", c.IntervalTolerance)
	}
	return nil
}

// Channel is one analyzed signal.
type Channel struct {
	Name          string
	Signal        []float64
	Spectrum      spectrum.Amplitude // trimmed per the TrimPolicy
	Stats         timestats.Stats
	SpectrumStats frequencystats.Stats
}

// Report is the complete result of one analysis run.
type Report struct {
	Source      string
	Samples     int
	Dropped     int
	Rate        samplerate.Estimate
	TimeSeconds []float64
	Channels    []Channel
	Warnings    []string
}

// Channel returns the channel with the given name.
func (r Report) Channel(name string) (Channel, bool) {
	for _, ch := range r.Channels {
		if ch.Name == name {
			return ch, true
		}
	}
	return Channel{}, false
}

// LogValue implements slog.LogValuer with the run diagnostics.
func (r Report) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("file", r.Source),
		slog.Int("samples", r.Samples),
		slog.Int("dropped_rows", r.Dropped),
		slog.Float64("fs_hz", r.Rate.SampleRate),
		slog.Float64("median_dt_ms", r.Rate.MedianIntervalMs),
		slog.Float64("nyquist_hz", r.Rate.Nyquist()),
		slog.Int("rejected_steps", r.Rate.Rejected),
		slog.Float64("jitter", r.Rate.Jitter()),
	)
}

// Magnitude returns sqrt(x²+y²+z²) per index.
func Magnitude(x, y, z []float64) ([]float64, error) {
	if len(x) != len(y) || len(x) != len(z) {
		return nil, fmt.Errorf("vibration: magnitude: %w: %d/%d/%d", errLengthMismatch, len(x), len(y), len(z))
	}

	out := make([]float64, len(x))
	for i := range out {
		out[i] = core.Hypot3(x[i], y[i], z[i])
	}
	return out, nil
}

// Analyze estimates the sampling rate of s and computes every channel
// spectrum. Any stage failure aborts the run; no partial report is returned.
func Analyze(s ingest.Samples, cfg Config) (Report, error) {
	if err := cfg.Validate(); err != nil {
		return Report{}, err
	}

	n := s.Len()
	if len(s.X) != n || len(s.Y) != n || len(s.Z) != n {
		return Report{}, fmt.Errorf("vibration: %w: t=%d x=%d y=%d z=%d", errLengthMismatch, n, len(s.X), len(s.Y), len(s.Z))
	}

	rate, err := samplerate.FromMillis(s.TimeMs)
	if err != nil {
		return Report{}, fmt.Errorf("vibration: sample rate: %w", err)
	}

	mag, err := Magnitude(s.X, s.Y, s.Z)
	if err != nil {
		return Report{}, err
	}

	opts := []spectrum.Option{spectrum.WithWindow(cfg.Window)}
	if cfg.RemoveDC {
		opts = append(opts, spectrum.WithDCRemoval())
	}

	inputs := []struct {
		name   string
		signal []float64
		trim   int
	}{
		{ChannelX, s.X, cfg.Trim.Axis},
		{ChannelY, s.Y, cfg.Trim.Axis},
		{ChannelZ, s.Z, cfg.Trim.Axis},
		{ChannelMagnitude, mag, cfg.Trim.Magnitude},
	}

	channels := make([]Channel, 0, len(inputs))
	for _, in := range inputs {
		amp, err := spectrum.AmplitudeSpectrum(in.signal, rate.SampleRate, opts...)
		if err != nil {
			return Report{}, fmt.Errorf("vibration: spectrum channel %s: %w", in.name, err)
		}
		amp = amp.Trim(in.trim)

		sstats, err := frequencystats.Calculate(amp.Freqs, amp.Values)
		if err != nil {
			return Report{}, fmt.Errorf("vibration: channel %s: %w", in.name, err)
		}

		channels = append(channels, Channel{
			Name:          in.name,
			Signal:        in.signal,
			Spectrum:      amp,
			Stats:         timestats.Calculate(in.signal),
			SpectrumStats: sstats,
		})
	}

	tSec := make([]float64, n)
	for i, ms := range s.TimeMs {
		tSec[i] = ms / 1000.0
	}

	r := Report{
		Source:      s.Source,
		Samples:     n,
		Dropped:     s.Dropped,
		Rate:        rate,
		TimeSeconds: tSec,
		Channels:    channels,
	}

	if d := rate.Deviation(cfg.NominalIntervalMs); d > cfg.IntervalTolerance {
		r.Warnings = append(r.Warnings, fmt.Sprintf(
			"median interval %.3f ms deviates %.1f%% from nominal %.3f ms",
			rate.MedianIntervalMs, 100*d, cfg.NominalIntervalMs))
	}

	return r, nil
}
