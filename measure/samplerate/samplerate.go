// Package samplerate infers the sampling rate of a logger from its
// millisecond time column.
//
// Interrupt-driven loggers drop and duplicate samples, so the interval
// distribution has outliers. The estimate uses the median interval, which
// stays put as long as the outliers are a minority.
package samplerate

import (
	"math"

	"github.com/cwbudde/accel-spectrum/dsp/core"
	timestats "github.com/cwbudde/accel-spectrum/stats/time"
)

// MinIntervals is the number of valid time steps [FromMillis] requires.
const MinIntervals = 2

// Estimate is an inferred sampling rate.
type Estimate struct {
	SampleRate       float64 // Hz
	MedianIntervalMs float64
	MADIntervalMs    float64 // median absolute deviation of the kept intervals
	Intervals        int     // finite, strictly positive steps used
	Rejected         int     // zero, negative or non-finite steps discarded
}

// Nyquist returns half the sampling rate.
func (e Estimate) Nyquist() float64 {
	return e.SampleRate / 2
}

// Jitter returns the interval MAD relative to the median interval.
func (e Estimate) Jitter() float64 {
	if e.MedianIntervalMs == 0 {
		return 0
	}
	return e.MADIntervalMs / e.MedianIntervalMs
}

// Deviation returns |median - nominal| / nominal, or 0 when nominalMs <= 0.
func (e Estimate) Deviation(nominalMs float64) float64 {
	if !(nominalMs > 0) {
		return 0
	}
	return math.Abs(e.MedianIntervalMs-nominalMs) / nominalMs
}

// Intervals returns the finite, strictly positive consecutive differences of
// timeMs in order, and how many differences were rejected.
func Intervals(timeMs []float64) (valid []float64, rejected int) {
	if len(timeMs) < 2 {
		return nil, 0
	}

	valid = make([]float64, 0, len(timeMs)-1)
	for i := 1; i < len(timeMs); i++ {
		d := timeMs[i] - timeMs[i-1]
		if core.IsFinite(d) && d > 0 {
			valid = append(valid, d)
			continue
		}
		rejected++
	}

	return valid, rejected
}

// FromMillis estimates the sampling rate as 1000 / median(valid intervals).
//
// Fewer than [MinIntervals] valid intervals yields a
// *core.InsufficientDataError; no default rate is ever assumed.
func FromMillis(timeMs []float64) (Estimate, error) {
	valid, rejected := Intervals(timeMs)
	if len(valid) < MinIntervals {
		return Estimate{}, &core.InsufficientDataError{
			Op:   "samplerate",
			What: "positive time steps",
			Have: len(valid),
			Need: MinIntervals,
		}
	}

	median := timestats.Median(valid)

	return Estimate{
		SampleRate:       1000.0 / median,
		MedianIntervalMs: median,
		MADIntervalMs:    timestats.MedianAbsDeviation(valid),
		Intervals:        len(valid),
		Rejected:         rejected,
	}, nil
}
