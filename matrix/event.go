package matrix

import (
	"fmt"

	"github.com/ardnew/softmatrix/pkg"
)

// BufferSize is the maximum number of simultaneous key events, the limit of
// the USB boot keyboard report.
const BufferSize = 6

// KeyEvent is a key detected as pressed in one scan cycle.
type KeyEvent struct {
	Key Key   // Semantic key code
	Row uint8 // Matrix row that produced the event
	Col uint8 // Matrix column that produced the event
}

// String returns a diagnostic representation of the event.
func (e KeyEvent) String() string {
	return fmt.Sprintf("%v@(%d,%d)", e.Key, e.Row, e.Col)
}

// SameCell reports whether e and o were produced by the same matrix cell.
func (e KeyEvent) SameCell(o KeyEvent) bool {
	return e.Row == o.Row && e.Col == o.Col
}

// Buffer is a fixed-capacity, insertion-ordered set of key events.
// The zero value is an empty buffer ready for use.
type Buffer struct {
	events [BufferSize]KeyEvent
	size   uint8
}

// Reset empties the buffer.
func (b *Buffer) Reset() {
	b.size = 0
}

// Len returns the number of events in the buffer.
func (b *Buffer) Len() int {
	return int(b.size)
}

// Full reports whether the buffer is at capacity.
func (b *Buffer) Full() bool {
	return b.size >= BufferSize
}

// At returns the event at index i. It panics if i is out of range, like a
// slice index.
func (b *Buffer) At(i int) KeyEvent {
	return b.Events()[i]
}

// Events returns the events in detection order. The slice aliases the
// buffer's storage and is valid until the buffer is next modified.
func (b *Buffer) Events() []KeyEvent {
	return b.events[:b.size]
}

// Append adds e at the end of the buffer.
// Returns pkg.ErrBufferFull if the buffer is at capacity and
// pkg.ErrDuplicateEvent if an event for the same cell is already present.
// The buffer is left unchanged on error.
func (b *Buffer) Append(e KeyEvent) error {
	if b.Full() {
		return pkg.ErrBufferFull
	}
	if b.Contains(e.Row, e.Col) {
		return pkg.ErrDuplicateEvent
	}
	b.events[b.size] = e
	b.size++
	return nil
}

// Find returns the index of the first event carrying k, or -1.
func (b *Buffer) Find(k Key) int {
	return b.FindFunc(func(e KeyEvent) bool { return e.Key == k })
}

// FindFunc returns the index of the first event satisfying match, or -1.
func (b *Buffer) FindFunc(match func(KeyEvent) bool) int {
	for i := 0; i < int(b.size); i++ {
		if match(b.events[i]) {
			return i
		}
	}
	return -1
}

// Has reports whether any event carries k.
func (b *Buffer) Has(k Key) bool {
	return b.Find(k) >= 0
}

// Contains reports whether an event for cell (row, col) is present.
func (b *Buffer) Contains(row, col uint8) bool {
	return b.FindFunc(func(e KeyEvent) bool { return e.Row == row && e.Col == col }) >= 0
}

// Remove deletes the first event carrying k, keeping the order of the
// remaining events. Reports whether an event was removed.
func (b *Buffer) Remove(k Key) bool {
	return b.RemoveFunc(func(e KeyEvent) bool { return e.Key == k })
}

// RemoveFunc deletes the first event satisfying match, keeping the order of
// the remaining events. Reports whether an event was removed.
func (b *Buffer) RemoveFunc(match func(KeyEvent) bool) bool {
	pos := b.FindFunc(match)
	if pos < 0 {
		return false
	}
	b.removeAt(pos)
	return true
}

// removeAt compacts the buffer over index i.
func (b *Buffer) removeAt(i int) {
	copy(b.events[i:b.size], b.events[i+1:b.size])
	b.size--
	b.events[b.size] = KeyEvent{}
}

// SetKey replaces the key of the event at index i, keeping its cell.
// Out-of-range indices are ignored.
func (b *Buffer) SetKey(i int, k Key) {
	if i >= 0 && i < int(b.size) {
		b.events[i].Key = k
	}
}

// Equal reports whether both buffers hold the same events in the same order.
func (b *Buffer) Equal(o *Buffer) bool {
	if b.size != o.size {
		return false
	}
	for i := 0; i < int(b.size); i++ {
		if b.events[i] != o.events[i] {
			return false
		}
	}
	return true
}
