package samplerate

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/accel-spectrum/dsp/core"
	"github.com/cwbudde/accel-spectrum/internal/testutil"
)

func TestFromMillisUniform(t *testing.T) {
	e, err := FromMillis(testutil.UniformTimeMs(8, 10))
	if err != nil {
		t.Fatalf("FromMillis error: %v", err)
	}

	if e.SampleRate != 100 {
		t.Fatalf("SampleRate=%v want=100", e.SampleRate)
	}
	if e.MedianIntervalMs != 10 {
		t.Fatalf("MedianIntervalMs=%v want=10", e.MedianIntervalMs)
	}
	if e.Nyquist() != 50 {
		t.Fatalf("Nyquist=%v want=50", e.Nyquist())
	}
	if e.Intervals != 7 || e.Rejected != 0 {
		t.Fatalf("Intervals=%d Rejected=%d", e.Intervals, e.Rejected)
	}
	if e.Jitter() != 0 {
		t.Fatalf("Jitter=%v want=0", e.Jitter())
	}
}

func TestFromMillisIgnoresOutlierGap(t *testing.T) {
	base := testutil.UniformTimeMs(50, 5)

	before, err := FromMillis(base)
	if err != nil {
		t.Fatalf("FromMillis error: %v", err)
	}

	// Insert a 400 ms dropout after sample 20.
	gapped := append([]float64(nil), base...)
	for i := 21; i < len(gapped); i++ {
		gapped[i] += 400
	}

	after, err := FromMillis(gapped)
	if err != nil {
		t.Fatalf("FromMillis error: %v", err)
	}

	if after.SampleRate != before.SampleRate {
		t.Fatalf("outlier moved estimate: %v -> %v", before.SampleRate, after.SampleRate)
	}
	if after.SampleRate != 200 {
		t.Fatalf("SampleRate=%v want=200", after.SampleRate)
	}
}

func TestFromMillisRejectsNonPositiveSteps(t *testing.T) {
	// Duplicate (0), backwards (-5) and NaN-adjacent steps are discarded.
	ts := []float64{0, 10, 10, 20, 15, 25, 35, math.NaN(), 45, 55}

	valid, rejected := Intervals(ts)
	testutil.RequireSliceNearlyEqual(t, valid, []float64{10, 10, 10, 10, 10}, 0)
	if rejected != 4 {
		t.Fatalf("rejected=%d want=4", rejected)
	}

	e, err := FromMillis(ts)
	if err != nil {
		t.Fatalf("FromMillis error: %v", err)
	}
	if e.SampleRate != 100 || e.Rejected != 4 {
		t.Fatalf("SampleRate=%v Rejected=%d", e.SampleRate, e.Rejected)
	}
}

func TestFromMillisEvenCountMedian(t *testing.T) {
	// Intervals 4, 6 -> median 5 -> 200 Hz.
	e, err := FromMillis([]float64{0, 4, 10})
	if err != nil {
		t.Fatalf("FromMillis error: %v", err)
	}
	if e.MedianIntervalMs != 5 || e.SampleRate != 200 {
		t.Fatalf("median=%v fs=%v want 5/200", e.MedianIntervalMs, e.SampleRate)
	}
}

func TestFromMillisMinimumIntervals(t *testing.T) {
	tests := []struct {
		name    string
		ts      []float64
		wantErr bool
	}{
		{name: "empty", ts: nil, wantErr: true},
		{name: "single", ts: []float64{0}, wantErr: true},
		{name: "one interval", ts: []float64{0, 10}, wantErr: true},
		{name: "one valid of two", ts: []float64{0, 10, 10}, wantErr: true},
		{name: "two intervals", ts: []float64{0, 10, 20}, wantErr: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FromMillis(tt.ts)
			if tt.wantErr {
				if !errors.Is(err, core.ErrInsufficientData) {
					t.Fatalf("expected ErrInsufficientData, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestEstimateDeviation(t *testing.T) {
	e := Estimate{SampleRate: 100, MedianIntervalMs: 10}
	if got := e.Deviation(5); got != 1 {
		t.Fatalf("Deviation(5)=%v want=1", got)
	}
	if got := e.Deviation(0); got != 0 {
		t.Fatalf("Deviation(0)=%v want=0", got)
	}
}

func TestEstimateJitter(t *testing.T) {
	e, err := FromMillis([]float64{0, 10, 20, 31, 40, 50})
	if err != nil {
		t.Fatalf("FromMillis error: %v", err)
	}
	// Intervals 10,10,11,9,10: median 10, MAD 0.
	if e.MedianIntervalMs != 10 || e.Jitter() != 0 {
		t.Fatalf("median=%v jitter=%v", e.MedianIntervalMs, e.Jitter())
	}

	e, err = FromMillis([]float64{0, 10, 21, 30, 42})
	if err != nil {
		t.Fatalf("FromMillis error: %v", err)
	}
	// Intervals 10,11,9,12: median 10.5, deviations .5,.5,1.5,1.5 -> MAD 1.
	if math.Abs(e.Jitter()-1/10.5) > 1e-12 {
		t.Fatalf("jitter=%v want=%v", e.Jitter(), 1/10.5)
	}
}
