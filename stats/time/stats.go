package time

import (
	"math"
	"sort"
)

// Stats holds time-domain statistics of one channel.
type Stats struct {
	Length   int
	DC       float64 // mean
	RMS      float64
	Max      float64
	MaxPos   int
	Min      float64
	MinPos   int
	Peak     float64 // max(|max|, |min|)
	Range    float64 // max - min
	Variance float64 // population variance
	StdDev   float64
}

// Calculate computes the statistics in a single pass, using Welford's update
// for the variance.
func Calculate(signal []float64) Stats {
	n := len(signal)
	if n == 0 {
		return Stats{}
	}

	var (
		mean   float64
		m2     float64
		sumSq  float64
		maxVal = signal[0]
		maxPos int
		minVal = signal[0]
		minPos int
	)

	for i, x := range signal {
		delta := x - mean
		mean += delta / float64(i+1)
		m2 += delta * (x - mean)

		sumSq += x * x

		if x > maxVal {
			maxVal = x
			maxPos = i
		}

		if x < minVal {
			minVal = x
			minPos = i
		}
	}

	nf := float64(n)
	variance := m2 / nf

	return Stats{
		Length:   n,
		DC:       mean,
		RMS:      math.Sqrt(sumSq / nf),
		Max:      maxVal,
		MaxPos:   maxPos,
		Min:      minVal,
		MinPos:   minPos,
		Peak:     math.Max(math.Abs(maxVal), math.Abs(minVal)),
		Range:    maxVal - minVal,
		Variance: variance,
		StdDev:   math.Sqrt(variance),
	}
}

// Median returns the median of x. For an even count it is the mean of the
// two middle values. x is not reordered. Returns NaN for an empty slice.
func Median(x []float64) float64 {
	n := len(x)
	if n == 0 {
		return math.NaN()
	}

	sorted := append([]float64(nil), x...)
	sort.Float64s(sorted)

	mid := n / 2
	if n%2 == 1 {
		return sorted[mid]
	}

	return (sorted[mid-1] + sorted[mid]) / 2
}

// MedianAbsDeviation returns median(|x - median(x)|).
func MedianAbsDeviation(x []float64) float64 {
	if len(x) == 0 {
		return math.NaN()
	}

	m := Median(x)
	devs := make([]float64, len(x))
	for i, v := range x {
		devs[i] = math.Abs(v - m)
	}

	return Median(devs)
}
