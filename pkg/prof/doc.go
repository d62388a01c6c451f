// Package prof captures CPU and heap profiles of a scanning session.
//
// Profiling is compiled in only with the "profile" build tag:
//
//	go build -tags profile ./cmd/matrixscan
//	matrixscan --profile /tmp/scan
//
// Without the tag, [Start] returns an inert [Capture] and [Enabled] reports
// false, so callers can leave profiling hooks in place.
//
// A capture writes three files into its directory:
//
//   - cpu.prof: CPU samples from [Start] until [Capture.Stop]
//   - heap.prof: live allocations at [Capture.Stop]
//   - goroutine.prof: goroutine stacks at [Capture.Stop], debug=1 text
//
// Only one capture may run at a time; a second [Start] returns
// [ErrActive].
package prof

import "errors"

// ErrActive indicates a capture is already running.
var ErrActive = errors.New("profile capture already active")

// File names written by a capture.
const (
	CPUFile       = "cpu.prof"
	HeapFile      = "heap.prof"
	GoroutineFile = "goroutine.prof"
)
