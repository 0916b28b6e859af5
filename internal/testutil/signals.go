package testutil

import (
	"math"
	"math/rand"
	"strconv"
	"strings"
)

// DeterministicSine generates a sine wave sampled at sampleRate Hz.
func DeterministicSine(freqHz, sampleRate, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	step := 2 * math.Pi * freqHz / sampleRate
	for i := range out {
		out[i] = amplitude * math.Sin(step*float64(i))
	}
	return out
}

// DeterministicNoise generates white noise with a fixed seed for reproducibility.
func DeterministicNoise(seed int64, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}
	return out
}

// DC generates a constant-valued signal.
func DC(value float64, length int) []float64 {
	out := make([]float64, length)
	for i := range out {
		out[i] = value
	}
	return out
}

// UniformTimeMs returns n timestamps in milliseconds starting at 0 with
// spacing dtMs.
func UniformTimeMs(n int, dtMs float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = float64(i) * dtMs
	}
	return out
}

// AccelCSV renders rows as a timedelta_ms,Xacc,Yacc,Zacc log. Each row must
// hold four values; NaN and Inf are written as the strings ParseFloat reads back.
func AccelCSV(rows [][4]float64) string {
	var b strings.Builder
	b.WriteString("timedelta_ms,Xacc,Yacc,Zacc\n")
	for _, r := range rows {
		for i, v := range r {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteString(strconv.FormatFloat(v, 'g', -1, 64))
		}
		b.WriteByte('\n')
	}
	return b.String()
}
