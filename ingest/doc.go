// Package ingest reads triaxial accelerometer logs.
//
// A log is delimited text whose header names the columns
//
//	timedelta_ms,Xacc,Yacc,Zacc
//
// Rows whose four values do not all parse as finite floats are dropped from
// every output sequence, so the returned slices stay index-aligned.
package ingest
