// Package vibration turns a cleaned accelerometer log into the views a
// plotting front end needs: a time trace and a trimmed amplitude spectrum for
// each axis and for the magnitude sqrt(x²+y²+z²).
//
// The first spectrum bins carry window leakage from the gravity offset and
// are dropped before presentation. The default [TrimPolicy] drops two bins
// from axis spectra and one from the magnitude spectrum, whose rectified
// signal leaks differently.
package vibration
