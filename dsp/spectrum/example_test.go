package spectrum_test

import (
	"fmt"

	"github.com/cwbudde/accel-spectrum/dsp/spectrum"
)

func ExampleMagnitude() {
	bins := []complex128{1 + 0i, 0 + 1i, -1 + 0i}
	mag := spectrum.Magnitude(bins)
	fmt.Printf("%.1f %.1f %.1f\n", mag[0], mag[1], mag[2])
	// Output:
	// 1.0 1.0 1.0
}

func ExampleAmplitudeSpectrum() {
	signal := []float64{1, 1, 1, 1, 1, 1, 1, 1}
	a, _ := spectrum.AmplitudeSpectrum(signal, 100)
	fmt.Printf("bins=%d nyquist=%.0f dc=%.3f\n", a.Len(), a.Freqs[a.Len()-1], a.Values[0])
	// Output:
	// bins=5 nyquist=50 dc=2.000
}
