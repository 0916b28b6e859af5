package ingest

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/cwbudde/accel-spectrum/dsp/core"
)

// Column names, in the order the data logger writes them.
const (
	ColumnTime = "timedelta_ms"
	ColumnX    = "Xacc"
	ColumnY    = "Yacc"
	ColumnZ    = "Zacc"
)

// Columns lists the required header fields.
var Columns = []string{ColumnTime, ColumnX, ColumnY, ColumnZ}

// Samples is the cleaned content of a log. TimeMs, X, Y and Z always have
// equal length and index i of each comes from the same source row.
type Samples struct {
	Source string
	TimeMs []float64
	X      []float64
	Y      []float64
	Z      []float64

	Rows    int // data rows read, valid or not
	Dropped int // rows rejected for unparsable or non-finite values
}

// Len returns the number of clean samples.
func (s Samples) Len() int { return len(s.TimeMs) }

// Option configures [Load].
type Option func(*config)

type config struct {
	comma  rune
	source string
}

// WithDelimiter sets the field delimiter. The default is ','.
func WithDelimiter(r rune) Option {
	return func(c *config) {
		c.comma = r
	}
}

// WithSource names the input in errors and in [Samples.Source].
func WithSource(name string) Option {
	return func(c *config) {
		c.source = name
	}
}

// LoadFile opens path and calls [Load] on it.
func LoadFile(path string, opts ...Option) (Samples, error) {
	f, err := os.Open(path)
	if err != nil {
		return Samples{}, fmt.Errorf("ingest: %w", err)
	}
	defer f.Close()

	return Load(f, append([]Option{WithSource(path)}, opts...)...)
}

// Load reads a complete log from r.
//
// The first non-comment row must name every column in [Columns]; columns are
// matched by exact name and extra columns are ignored. Lines starting with
// '#' and blank lines are skipped. Rows that cannot be split or parsed are
// counted in [Samples.Dropped]; only read errors fail the load.
func Load(r io.Reader, opts ...Option) (Samples, error) {
	cfg := config{comma: ','}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	sep := string(cfg.comma)

	br := bufio.NewReaderSize(r, 64*1024)
	s := Samples{Source: cfg.source}

	var (
		idx       [4]int
		haveHeader bool
		row       [4]float64
	)

	for {
		line, err := br.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return Samples{}, fmt.Errorf("ingest: read: %w", err)
		}

		if text, ok := dataLine(line); ok {
			fields := strings.Split(text, sep)

			switch {
			case !haveHeader:
				var missing []string
				idx, missing = columnIndex(fields)
				if len(missing) > 0 {
					return Samples{}, &FormatError{Source: cfg.source, Missing: missing}
				}
				haveHeader = true
			case parseRow(fields, idx, &row):
				s.Rows++
				s.TimeMs = append(s.TimeMs, row[0])
				s.X = append(s.X, row[1])
				s.Y = append(s.Y, row[2])
				s.Z = append(s.Z, row[3])
			default:
				s.Rows++
				s.Dropped++
			}
		}

		if err != nil {
			break
		}
	}

	if !haveHeader {
		return Samples{}, &FormatError{Source: cfg.source, Err: errNoHeader}
	}
	return s, nil
}

// dataLine strips the line terminator and reports whether the line carries
// content (not blank, not a '#' comment).
func dataLine(line string) (string, bool) {
	line = strings.TrimRight(line, "\r\n")
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || strings.HasPrefix(trimmed, "#") {
		return "", false
	}
	return line, true
}

// unquote removes one pair of enclosing double quotes.
func unquote(field string) string {
	field = strings.TrimSpace(field)
	if len(field) >= 2 && field[0] == '"' && field[len(field)-1] == '"' {
		return strings.TrimSpace(field[1 : len(field)-1])
	}
	return field
}

// columnIndex maps each required column to its header position.
func columnIndex(header []string) (idx [4]int, missing []string) {
	pos := make(map[string]int, len(header))
	for i, name := range header {
		if i == 0 {
			name = strings.TrimPrefix(name, "\ufeff")
		}
		name = unquote(name)
		if _, dup := pos[name]; !dup {
			pos[name] = i
		}
	}

	for i, name := range Columns {
		p, ok := pos[name]
		if !ok {
			missing = append(missing, name)
			continue
		}
		idx[i] = p
	}

	return idx, missing
}

func parseRow(rec []string, idx [4]int, out *[4]float64) bool {
	for i, p := range idx {
		if p >= len(rec) {
			return false
		}

		v, err := strconv.ParseFloat(unquote(rec[p]), 64)
		if err != nil || !core.IsFinite(v) {
			return false
		}
		out[i] = v
	}

	return true
}
