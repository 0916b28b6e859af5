package spectrum

import (
	"testing"

	"github.com/cwbudde/accel-spectrum/internal/testutil"
)

func BenchmarkMagnitude(b *testing.B) {
	sizes := []struct {
		name string
		size int
	}{
		{"64", 64},
		{"1K", 1024},
		{"16K", 16384},
	}

	for _, testCase := range sizes {
		b.Run(testCase.name, func(b *testing.B) {
			inData := make([]complex128, testCase.size)
			for i := range inData {
				inData[i] = complex(float64(i)/10.0, float64(testCase.size-i)/10.0)
			}

			b.SetBytes(int64(testCase.size * 16)) // complex128 = 16 bytes
			b.ResetTimer()

			for range b.N {
				_ = Magnitude(inData)
			}
		})
	}
}

func BenchmarkAmplitudeSpectrum(b *testing.B) {
	sizes := []struct {
		name string
		size int
	}{
		{"1K", 1024},
		{"3000", 3000},
		{"16K", 16384},
	}

	for _, testCase := range sizes {
		b.Run(testCase.name, func(b *testing.B) {
			signal := testutil.DeterministicNoise(7, 1, testCase.size)

			b.SetBytes(int64(testCase.size * 8))
			b.ReportAllocs()
			b.ResetTimer()

			for range b.N {
				_, _ = AmplitudeSpectrum(signal, 100)
			}
		})
	}
}
