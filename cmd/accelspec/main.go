// Command accelspec analyzes a triaxial accelerometer log and prints the
// amplitude spectrum summary of each axis and of the magnitude channel.
//
// Usage:
//
//	accelspec [flags] file.csv
//
// The input needs the columns timedelta_ms, Xacc, Yacc and Zacc. Settings
// come from the defaults, then an optional YAML file (-config), then flags.
//
// Examples:
//
//	accelspec log.csv
//	accelspec -remove-dc -max-freq 25 log.csv
//	accelspec -config accelspec.yaml -out plots log.csv
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"text/tabwriter"

	"github.com/cwbudde/accel-spectrum/export"
	"github.com/cwbudde/accel-spectrum/ingest"
	"github.com/cwbudde/accel-spectrum/internal/config"
	"github.com/cwbudde/accel-spectrum/internal/logging"
	"github.com/cwbudde/accel-spectrum/measure/samplerate"
	"github.com/cwbudde/accel-spectrum/measure/vibration"
	frequencystats "github.com/cwbudde/accel-spectrum/stats/frequency"
	timestats "github.com/cwbudde/accel-spectrum/stats/time"
)

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	cfg, path, err := parseArgs(args, stderr)
	if err != nil {
		return err
	}

	logger, err := logging.New(cfg.LogLevel, stderr)
	if err != nil {
		return err
	}

	analysis, err := cfg.Analysis()
	if err != nil {
		return err
	}
	delim, err := cfg.DelimiterRune()
	if err != nil {
		return err
	}

	samples, err := ingest.LoadFile(path, ingest.WithDelimiter(delim))
	if err != nil {
		return err
	}
	logger.Debug("loaded", "file", samples.Source, "rows", samples.Rows, "dropped_rows", samples.Dropped)
	if logger.Enabled(context.Background(), slog.LevelDebug) {
		logIntervals(logger, samples.TimeMs)
	}

	report, err := vibration.Analyze(samples, analysis)
	if err != nil {
		return err
	}

	logger.Info("analysis complete", "report", report)
	for _, w := range report.Warnings {
		logger.Warn(w, "file", report.Source)
	}

	if err := printSummary(stdout, report, cfg.MaxFreqHz); err != nil {
		return err
	}

	if cfg.OutputDir != "" {
		paths, err := export.WriteDir(cfg.OutputDir, report, cfg.MaxFreqHz)
		if err != nil {
			return err
		}
		for _, p := range paths {
			logger.Info("wrote", "path", p)
		}
	}

	return nil
}

// parseArgs resolves defaults, the optional YAML file and explicit flags,
// in that order of precedence.
func parseArgs(args []string, stderr io.Writer) (config.Config, string, error) {
	fs := flag.NewFlagSet("accelspec", flag.ContinueOnError)
	fs.SetOutput(stderr)

	configPath := fs.String("config", "", "YAML settings file")
	cfg := config.Default()
	config.BindFlags(fs, &cfg)

	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: accelspec [flags] file.csv\n\n")
		fmt.Fprintf(stderr, "Prints amplitude spectrum summaries of an accelerometer log.\n\n")
		fmt.Fprintf(stderr, "Flags:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return config.Config{}, "", err
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return config.Config{}, "", fmt.Errorf("expected one input file, got %d", fs.NArg())
	}

	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			return config.Config{}, "", err
		}

		over := flag.NewFlagSet("override", flag.ContinueOnError)
		config.BindFlags(over, &loaded)

		var setErr error
		fs.Visit(func(f *flag.Flag) {
			if f.Name == "config" || setErr != nil {
				return
			}
			setErr = over.Set(f.Name, f.Value.String())
		})
		if setErr != nil {
			return config.Config{}, "", setErr
		}
		cfg = loaded
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, "", err
	}

	return cfg, fs.Arg(0), nil
}

// logIntervals reports the spread of the time steps the rate estimate uses
// and how many were rejected as non-positive or non-finite.
func logIntervals(logger *slog.Logger, timeMs []float64) {
	valid, rejected := samplerate.Intervals(timeMs)
	if len(valid) == 0 {
		logger.Debug("time steps", "valid", 0, "rejected", rejected)
		return
	}

	st := timestats.Calculate(valid)
	logger.Debug("time steps",
		"valid", len(valid),
		"rejected", rejected,
		"min_dt_ms", st.Min,
		"max_dt_ms", st.Max,
		"stddev_dt_ms", st.StdDev,
	)
}

func printSummary(w io.Writer, r vibration.Report, maxHz float64) error {
	if _, err := fmt.Fprintf(w, "%s: %d samples, fs=%.3f Hz, median dt=%.3f ms, Nyquist=%.3f Hz\n\n",
		r.Source, r.Samples, r.Rate.SampleRate, r.Rate.MedianIntervalMs, r.Rate.Nyquist()); err != nil {
		return fmt.Errorf("write summary: %w", err)
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintf(tw, "Channel\tBins\tRes [Hz]\tPeak [Hz]\tPeak Amp\tCentroid [Hz]\tRMS\tDC\n"); err != nil {
		return fmt.Errorf("write summary: %w", err)
	}
	if _, err := fmt.Fprintf(tw, "-------\t----\t--------\t---------\t--------\t-------------\t---\t--\n"); err != nil {
		return fmt.Errorf("write summary: %w", err)
	}

	for _, ch := range r.Channels {
		amp := ch.Spectrum.Limit(maxHz)
		fstats, err := frequencystats.Calculate(amp.Freqs, amp.Values)
		if err != nil {
			return fmt.Errorf("channel %s: %w", ch.Name, err)
		}

		if _, err := fmt.Fprintf(tw, "%s\t%d\t%.4f\t%.3f\t%.6f\t%.3f\t%.6f\t%.6f\n",
			ch.Name,
			amp.Len(),
			amp.Resolution(),
			fstats.PeakFreq,
			fstats.PeakAmplitude,
			fstats.Centroid,
			ch.Stats.RMS,
			ch.Stats.DC,
		); err != nil {
			return fmt.Errorf("write summary: %w", err)
		}
	}

	if err := tw.Flush(); err != nil {
		return fmt.Errorf("flush summary: %w", err)
	}

	return nil
}
