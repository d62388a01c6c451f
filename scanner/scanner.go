package scanner

import (
	"fmt"

	"github.com/ardnew/softmatrix/matrix"
)

// Status is the outcome of one scan call.
type Status uint8

const (
	// StatusError means the scanner cannot produce events, usually because
	// Begin has not succeeded.
	StatusError Status = iota

	// StatusInProgress means the matrix is not yet known to be stable. The
	// buffer is untouched and the caller should scan again soon.
	StatusInProgress

	// StatusComplete means the matrix is stable and the buffer holds the
	// events for it.
	StatusComplete
)

// String returns a human-readable status name.
func (s Status) String() string {
	switch s {
	case StatusError:
		return "error"
	case StatusInProgress:
		return "in progress"
	case StatusComplete:
		return "complete"
	default:
		return fmt.Sprintf("Status(%d)", uint8(s))
	}
}

// Scanner turns a key matrix into key events.
//
// Scanners are driven from a single polling context and never block.
type Scanner interface {
	// Begin initializes the ports, settles the matrix and starts the mapper.
	Begin() error

	// End stops the scanner and releases its hardware.
	End() error

	// Loop advances the scanner without producing events.
	Loop()

	// Scan advances the scanner and, on StatusComplete, fills buf with the
	// events for the stable matrix.
	Scan(buf *matrix.Buffer) Status

	// UpdateLeds reflects the host's lock-key state on the keyboard, if
	// the keyboard has indicators.
	UpdateLeds(caps, num, scroll bool)
}
