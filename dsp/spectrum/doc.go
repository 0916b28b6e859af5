// Package spectrum computes one-sided amplitude spectra of real signals.
//
// [AmplitudeSpectrum] filters non-finite samples, optionally removes the mean,
// applies a window to a transform copy and scales |X[k]| so that a full-scale
// tone of amplitude A reads approximately A:
//
//	amp[k] = (|X[k]| / n) * (2 / (sum(w) / n))
//
// The DC and Nyquist bins are scaled like every other bin, so a constant
// signal c reads 2c at bin 0.
//
// Transforms use algo-fft plans. Lengths without a plan fall back to a
// per-bin Goertzel evaluation with the same sign and scale convention.
package spectrum
