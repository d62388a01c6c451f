// Package matrix defines the keyboard matrix snapshot and the key events
// produced from it.
//
// # Matrix
//
// A [Matrix] holds one byte per row. Bit n of row r reflects column n of
// that row and is active-low: a cleared bit means the switch at (r, n) is
// closed. An all-ones row means no key in that row is known to be pressed.
//
// # Key Events
//
// A [KeyEvent] pairs a semantic [Key] with the matrix cell that produced it.
// Events for one scan cycle are collected in a [Buffer], which holds at most
// [BufferSize] events (the USB boot-protocol limit) in detection order:
//
//	var buf matrix.Buffer
//	if err := buf.Append(matrix.KeyEvent{Key: k, Row: 1, Col: 7}); err != nil {
//	    // pkg.ErrBufferFull or pkg.ErrDuplicateEvent
//	}
//
// # Zero-Allocation Design
//
// Both [Matrix] and [Buffer] are fixed-size values. Lookups, removals and
// appends run in O(capacity) without touching the heap, so a Buffer can live
// on the stack of the polling loop.
package matrix
