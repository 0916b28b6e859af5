package frequency

import (
	"fmt"
	"math"
)

// Stats summarizes an amplitude spectrum sampled at explicit frequencies.
type Stats struct {
	BinCount      int
	PeakBin       int
	PeakFreq      float64 // Hz
	PeakAmplitude float64
	Centroid      float64 // Hz
	Spread        float64 // Hz
	Rolloff       float64 // Hz, 85% energy
	Bandwidth     float64 // Hz, -3 dB around the peak
}

// Calculate computes all statistics. freqs must be ascending and the same
// length as magnitude; bins need not start at 0 Hz.
func Calculate(freqs, magnitude []float64) (Stats, error) {
	if len(freqs) != len(magnitude) {
		return Stats{}, fmt.Errorf("frequency stats: length mismatch: %d != %d", len(freqs), len(magnitude))
	}

	n := len(magnitude)
	if n == 0 {
		return Stats{}, nil
	}

	s := Stats{BinCount: n}
	s.PeakBin = peakBin(magnitude)
	s.PeakFreq = freqs[s.PeakBin]
	s.PeakAmplitude = magnitude[s.PeakBin]

	sum := 0.0
	energy := 0.0
	for _, v := range magnitude {
		sum += v
		energy += v * v
	}

	s.Centroid = centroid(freqs, magnitude, sum)
	s.Spread = spread(freqs, magnitude, s.Centroid, sum)
	s.Rolloff = rolloff(freqs, magnitude, 0.85, energy)
	s.Bandwidth = bandwidth(freqs, magnitude, s.PeakBin)

	return s, nil
}

func peakBin(magnitude []float64) int {
	best := 0
	for i, v := range magnitude {
		if v > magnitude[best] {
			best = i
		}
	}
	return best
}

// centroid is the amplitude-weighted mean frequency,
// sum(f_i * |X_i|) / sum(|X_i|).
func centroid(freqs, magnitude []float64, sumMag float64) float64 {
	if sumMag == 0 {
		return 0
	}
	weightedSum := 0.0
	for i, v := range magnitude {
		weightedSum += freqs[i] * v
	}
	return weightedSum / sumMag
}

func spread(freqs, magnitude []float64, cent, sumMag float64) float64 {
	if sumMag == 0 {
		return 0
	}
	weightedSqSum := 0.0
	for i, v := range magnitude {
		diff := freqs[i] - cent
		weightedSqSum += diff * diff * v
	}
	return math.Sqrt(weightedSqSum / sumMag)
}

func rolloff(freqs, magnitude []float64, percent, totalEnergy float64) float64 {
	n := len(magnitude)
	if totalEnergy == 0 {
		return 0
	}
	threshold := percent * totalEnergy
	cumEnergy := 0.0
	for i, v := range magnitude {
		cumEnergy += v * v
		if cumEnergy >= threshold {
			return freqs[i]
		}
	}
	return freqs[n-1]
}

// bandwidth locates the -3 dB points either side of the peak with linear
// interpolation between bins.
func bandwidth(freqs, magnitude []float64, peak int) float64 {
	n := len(magnitude)
	peakVal := magnitude[peak]
	if n < 2 || peakVal == 0 {
		return 0
	}

	threshold := peakVal / math.Sqrt2

	lowerFreq := freqs[0]
	for i := peak; i >= 1; i-- {
		if magnitude[i-1] <= threshold && magnitude[i] > threshold {
			lowerFreq = interpFreq(freqs[i-1], freqs[i], magnitude[i-1], magnitude[i], threshold)
			break
		}
	}

	upperFreq := freqs[n-1]
	for i := peak; i < n-1; i++ {
		if magnitude[i+1] <= threshold && magnitude[i] > threshold {
			upperFreq = interpFreq(freqs[i], freqs[i+1], magnitude[i], magnitude[i+1], threshold)
			break
		}
	}

	return math.Max(0, upperFreq-lowerFreq)
}

func interpFreq(fLow, fHigh, magLow, magHigh, threshold float64) float64 {
	denom := magHigh - magLow
	if denom == 0 {
		return (fLow + fHigh) / 2
	}
	t := (threshold - magLow) / denom
	return fLow + t*(fHigh-fLow)
}
