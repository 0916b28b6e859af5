package spectrum

import (
	"errors"
	"fmt"
	"math"
	"math/cmplx"

	algofft "github.com/MeKo-Christian/algo-fft"
)

var errNoPlan = errors.New("no fft plan")

// oneSidedMagnitude returns |X[k]| for k = 0..n/2 of the unnormalized DFT
// X[k] = sum_t x[t] * exp(-2*pi*i*k*t/n).
//
// Power-of-two lengths are transformed directly. Other lengths go through
// Bluestein's chirp-z algorithm on power-of-two plans. When no plan can be
// built the bins are evaluated with the Goertzel recurrence.
func oneSidedMagnitude(x []float64) ([]float64, error) {
	n := len(x)
	if n == 0 {
		return nil, nil
	}
	half := n/2 + 1

	var (
		spec []complex128
		err  error
	)
	if isPowerOfTwo(n) {
		in := make([]complex128, n)
		for i, v := range x {
			in[i] = complex(v, 0)
		}
		spec, err = fft(in)
	} else {
		spec, err = bluestein(x, half)
	}

	if errors.Is(err, errNoPlan) {
		return goertzelMagnitude(x, half), nil
	}
	if err != nil {
		return nil, err
	}

	return Magnitude(spec[:half]), nil
}

// fft is the unnormalized forward transform. len(in) must be a power of two.
func fft(in []complex128) ([]complex128, error) {
	plan, err := algofft.NewPlan64(len(in))
	if err != nil {
		return nil, fmt.Errorf("spectrum: %w (n=%d): %v", errNoPlan, len(in), err)
	}

	out := make([]complex128, len(in))
	if err := plan.Forward(out, in); err != nil {
		return nil, fmt.Errorf("spectrum: forward fft (n=%d): %w", len(in), err)
	}
	return out, nil
}

// bluestein returns the first bins DFT coefficients of x for any length,
// as a circular convolution with the chirp exp(i*pi*k²/n) of power-of-two
// size m >= 2n-1.
func bluestein(x []float64, bins int) ([]complex128, error) {
	n := len(x)
	m := nextPowerOf2(2*n - 1)

	// k² is reduced mod 2n so the phase stays exact for long inputs.
	chirp := make([]complex128, n)
	for k := range chirp {
		phi := math.Pi * float64((k*k)%(2*n)) / float64(n)
		chirp[k] = complex(math.Cos(phi), -math.Sin(phi))
	}

	a := make([]complex128, m)
	for k, v := range x {
		a[k] = complex(v, 0) * chirp[k]
	}

	b := make([]complex128, m)
	b[0] = cmplx.Conj(chirp[0])
	for k := 1; k < n; k++ {
		c := cmplx.Conj(chirp[k])
		b[k] = c
		b[m-k] = c
	}

	fa, err := fft(a)
	if err != nil {
		return nil, err
	}
	fb, err := fft(b)
	if err != nil {
		return nil, err
	}

	// Inverse transform as conj(fft(conj(.)))/m.
	for i := range fa {
		fa[i] = cmplx.Conj(fa[i] * fb[i])
	}
	conv, err := fft(fa)
	if err != nil {
		return nil, err
	}

	scale := complex(1/float64(m), 0)
	out := make([]complex128, bins)
	for k := range out {
		out[k] = chirp[k] * cmplx.Conj(conv[k]) * scale
	}
	return out, nil
}

func isPowerOfTwo(n int) bool {
	return n > 0 && n&(n-1) == 0
}

func nextPowerOf2(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}

// goertzelMagnitude evaluates the first bins DFT magnitudes with the
// Goertzel recurrence. Bin 0 is summed directly; the recurrence with
// coeff=2 loses precision on long inputs.
func goertzelMagnitude(x []float64, bins int) []float64 {
	n := float64(len(x))
	out := make([]float64, bins)

	for k := range out {
		if k == 0 {
			sum := 0.0
			for _, v := range x {
				sum += v
			}
			out[0] = math.Abs(sum)
			continue
		}

		coeff := 2 * math.Cos(2*math.Pi*float64(k)/n)
		var s0, s1 float64
		for _, v := range x {
			s := v + coeff*s0 - s1
			s1 = s0
			s0 = s
		}

		p := s0*s0 + s1*s1 - coeff*s0*s1
		if p > 0 {
			out[k] = math.Sqrt(p)
		}
	}

	return out
}
