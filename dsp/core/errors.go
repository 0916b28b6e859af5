package core

import (
	"errors"
	"fmt"
)

// ErrInsufficientData matches every [InsufficientDataError] via errors.Is.
var ErrInsufficientData = errors.New("insufficient data")

// InsufficientDataError reports that a stage received fewer usable points
// than it needs.
type InsufficientDataError struct {
	Op   string // stage that failed, e.g. "samplerate" or "spectrum"
	What string // unit being counted, e.g. "finite samples"
	Have int
	Need int
}

func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("%s: fewer than %d %s (have %d)", e.Op, e.Need, e.What, e.Have)
}

// Is makes errors.Is(err, ErrInsufficientData) true.
func (e *InsufficientDataError) Is(target error) bool {
	return target == ErrInsufficientData
}
