// Package export writes analysis reports as CSV for external plotting tools.
package export

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/cwbudde/accel-spectrum/measure/vibration"
)

// File names written by [WriteDir].
const (
	TimeSeriesFile = "time.csv"
	spectrumPrefix = "spectrum_"
)

// SpectrumFile returns the file name [WriteDir] uses for a channel.
func SpectrumFile(channel string) string {
	return spectrumPrefix + strings.ToLower(channel) + ".csv"
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// WriteTimeSeries writes time_s followed by one column per channel signal.
func WriteTimeSeries(w io.Writer, r vibration.Report) error {
	cw := csv.NewWriter(w)

	header := make([]string, 0, len(r.Channels)+1)
	header = append(header, "time_s")
	for _, ch := range r.Channels {
		if len(ch.Signal) != len(r.TimeSeconds) {
			return fmt.Errorf("export: channel %s has %d samples, time has %d", ch.Name, len(ch.Signal), len(r.TimeSeconds))
		}
		header = append(header, ch.Name)
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("export: write header: %w", err)
	}

	row := make([]string, len(header))
	for i, ts := range r.TimeSeconds {
		row[0] = formatFloat(ts)
		for j, ch := range r.Channels {
			row[j+1] = formatFloat(ch.Signal[i])
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("export: write row %d: %w", i, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteSpectrum writes freq_hz,amplitude rows for bins up to maxHz
// (maxHz <= 0 writes every bin).
func WriteSpectrum(w io.Writer, ch vibration.Channel, maxHz float64) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"freq_hz", "amplitude"}); err != nil {
		return fmt.Errorf("export: write header: %w", err)
	}

	amp := ch.Spectrum.Limit(maxHz)
	for k := range amp.Freqs {
		if err := cw.Write([]string{formatFloat(amp.Freqs[k]), formatFloat(amp.Values[k])}); err != nil {
			return fmt.Errorf("export: write bin %d: %w", k, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteDir writes the time series and one spectrum file per channel into
// dir, creating it if needed. It returns the paths written.
func WriteDir(dir string, r vibration.Report, maxHz float64) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("export: %w", err)
	}

	var paths []string

	path := filepath.Join(dir, TimeSeriesFile)
	if err := writeFile(path, func(w io.Writer) error { return WriteTimeSeries(w, r) }); err != nil {
		return paths, err
	}
	paths = append(paths, path)

	for _, ch := range r.Channels {
		path := filepath.Join(dir, SpectrumFile(ch.Name))
		if err := writeFile(path, func(w io.Writer) error { return WriteSpectrum(w, ch, maxHz) }); err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}

	return paths, nil
}

func writeFile(path string, fn func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("export: create %s: %w", path, err)
	}

	bw := bufio.NewWriterSize(f, 256*1024)
	if err := fn(bw); err != nil {
		_ = f.Close()
		return fmt.Errorf("export: %s: %w", path, err)
	}
	if err := bw.Flush(); err != nil {
		_ = f.Close()
		return fmt.Errorf("export: flush %s: %w", path, err)
	}

	return f.Close()
}
