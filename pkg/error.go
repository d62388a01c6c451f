package pkg

import "errors"

// Scanner stack errors.
var (
	// ErrNotStarted indicates an operation on a scanner whose Begin has not
	// succeeded.
	ErrNotStarted = errors.New("scanner not started")

	// ErrAlreadyRunning indicates Begin was called on a running scanner.
	ErrAlreadyRunning = errors.New("already running")

	// ErrInvalidKeyMap indicates a layout is missing a required table or
	// designates a cell outside the matrix.
	ErrInvalidKeyMap = errors.New("invalid key map")

	// ErrUnstable indicates the matrix did not settle during start-up.
	ErrUnstable = errors.New("matrix did not settle")

	// ErrBufferFull indicates the key event buffer is at capacity.
	ErrBufferFull = errors.New("key buffer full")

	// ErrDuplicateEvent indicates a second event for the same matrix cell.
	ErrDuplicateEvent = errors.New("duplicate key event")

	// ErrUnmappedKey indicates a pressed cell with no key map entry.
	ErrUnmappedKey = errors.New("unmapped key")

	// ErrInvalidParameter indicates an invalid parameter was provided.
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrNoDevice indicates the input device is not present.
	ErrNoDevice = errors.New("device not present")

	// ErrNotSupported indicates an unsupported operation or feature.
	ErrNotSupported = errors.New("not supported")
)
