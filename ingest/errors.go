package ingest

import (
	"errors"
	"fmt"
	"strings"
)

var errNoHeader = errors.New("missing header row")

// FormatError reports an input whose header is absent or lacks a required
// column. The load cannot continue.
type FormatError struct {
	Source  string
	Missing []string
	Err     error
}

func (e *FormatError) Error() string {
	var b strings.Builder
	b.WriteString("ingest: ")
	if e.Source != "" {
		b.WriteString(e.Source)
		b.WriteString(": ")
	}
	switch {
	case len(e.Missing) > 0:
		fmt.Fprintf(&b, "header missing column(s) %s", strings.Join(e.Missing, ", "))
	case e.Err != nil:
		b.WriteString(e.Err.Error())
	default:
		b.WriteString("invalid format")
	}
	return b.String()
}

func (e *FormatError) Unwrap() error { return e.Err }
