package spectrum

import "github.com/cwbudde/algo-vecmath"

// Magnitude returns |X[k]| for each complex spectrum bin.
func Magnitude(in []complex128) []float64 {
	n := len(in)
	if n == 0 {
		return nil
	}

	parts := make([]float64, 2*n)
	re, im := parts[:n], parts[n:]
	for i, c := range in {
		re[i] = real(c)
		im[i] = imag(c)
	}

	out := make([]float64, n)
	vecmath.Magnitude(out, re, im)
	return out
}
