package spectrum

import (
	"fmt"

	"github.com/cwbudde/accel-spectrum/dsp/core"
	"github.com/cwbudde/accel-spectrum/dsp/window"
)

// MinSamples is the smallest finite sample count [AmplitudeSpectrum] accepts.
const MinSamples = 8

// Option configures [AmplitudeSpectrum].
type Option func(*config)

type config struct {
	removeDC bool
	window   window.Type
}

// WithDCRemoval subtracts the mean of the finite samples before windowing.
func WithDCRemoval() Option {
	return func(c *config) {
		c.removeDC = true
	}
}

// WithWindow selects the analysis window. The default is symmetric Hann.
func WithWindow(t window.Type) Option {
	return func(c *config) {
		c.window = t
	}
}

// Amplitude is a one-sided amplitude spectrum.
//
// Freqs is ascending and the same length as Values. N is the transform length
// and SampleRate the rate the bins were computed for.
type Amplitude struct {
	Freqs      []float64
	Values     []float64
	N          int
	SampleRate float64
}

// Len returns the bin count.
func (a Amplitude) Len() int { return len(a.Freqs) }

// Resolution returns the bin spacing in Hz.
func (a Amplitude) Resolution() float64 {
	if a.N == 0 {
		return 0
	}
	return a.SampleRate / float64(a.N)
}

// Trim returns a copy without the first k bins. k past the end yields an
// empty spectrum; negative k is treated as 0.
func (a Amplitude) Trim(k int) Amplitude {
	k = max(0, min(k, a.Len()))
	out := a
	out.Freqs = append([]float64(nil), a.Freqs[k:]...)
	out.Values = append([]float64(nil), a.Values[k:]...)
	return out
}

// Limit returns a copy holding only bins with frequency <= maxHz.
// maxHz <= 0 keeps everything.
func (a Amplitude) Limit(maxHz float64) Amplitude {
	end := a.Len()
	if maxHz > 0 {
		for end > 0 && a.Freqs[end-1] > maxHz {
			end--
		}
	}
	out := a
	out.Freqs = append([]float64(nil), a.Freqs[:end]...)
	out.Values = append([]float64(nil), a.Values[:end]...)
	return out
}

// AmplitudeSpectrum returns the windowed one-sided amplitude spectrum of
// signal sampled at sampleRate Hz.
//
// Non-finite samples are discarded first. Fewer than [MinSamples] remaining
// yields a *core.InsufficientDataError. signal is never modified.
func AmplitudeSpectrum(signal []float64, sampleRate float64, opts ...Option) (Amplitude, error) {
	if !(sampleRate > 0) || !core.IsFinite(sampleRate) {
		return Amplitude{}, fmt.Errorf("spectrum: sample rate must be > 0: %v", sampleRate)
	}

	cfg := config{window: window.TypeHann}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	if !cfg.window.Valid() {
		return Amplitude{}, fmt.Errorf("spectrum: unsupported window: %v", cfg.window)
	}

	x := core.FiniteOnly(signal)
	if cfg.removeDC && len(x) > 0 {
		mean := core.Mean(x)
		for i := range x {
			x[i] -= mean
		}
	}

	n := len(x)
	if n < MinSamples {
		return Amplitude{}, &core.InsufficientDataError{
			Op:   "spectrum",
			What: "finite samples",
			Have: n,
			Need: MinSamples,
		}
	}

	w := window.Generate(cfg.window, n)
	gain, err := window.CoherentGain(w)
	if err != nil {
		return Amplitude{}, fmt.Errorf("spectrum: %s window: %w", cfg.window, err)
	}

	xw, err := window.ApplyCoefficients(x, w)
	if err != nil {
		return Amplitude{}, fmt.Errorf("spectrum: %w", err)
	}

	mag, err := oneSidedMagnitude(xw)
	if err != nil {
		return Amplitude{}, err
	}

	nf := float64(n)
	freqs := make([]float64, len(mag))
	for k := range mag {
		freqs[k] = float64(k) * sampleRate / nf
		mag[k] = (mag[k] / nf) * (2 / gain)
	}

	return Amplitude{
		Freqs:      freqs,
		Values:     mag,
		N:          n,
		SampleRate: sampleRate,
	}, nil
}
