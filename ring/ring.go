package ring

import "sync/atomic"

// Capacity is the number of physical slots in a Ring.
const Capacity = 32

// mask maps a free-running index onto a slot. Capacity must be a power of two.
const mask = Capacity - 1

// Sample is the pair of port bytes captured by one interrupt.
type Sample struct {
	Rows uint8 // Row lines as driven by the host, active-low
	Cols uint8 // Column lines as returned by the keyboard, active-low
}

// Ring is a lock-free single-producer, single-consumer circular buffer of
// samples. The zero value is an empty ring ready for use.
//
// head and tail are free-running counters; occupancy is tail-head modulo
// 2^32, so all Capacity slots are usable.
type Ring struct {
	buf     [Capacity]Sample
	head    atomic.Uint32 // Next slot to read; written by the consumer only
	tail    atomic.Uint32 // Next slot to write; written by the producer only
	dropped atomic.Uint32 // Samples discarded by Put; written by the producer only
}

// Put appends s. It returns false and drops s if the ring is full.
// Put must only be called from the producer context.
func (r *Ring) Put(s Sample) bool {
	tail := r.tail.Load()
	if tail-r.head.Load() >= Capacity {
		r.dropped.Add(1)
		return false
	}
	r.buf[tail&mask] = s
	r.tail.Store(tail + 1)
	return true
}

// Get removes and returns the oldest sample. The second result is false if
// the ring is empty. Get must only be called from the consumer context.
func (r *Ring) Get() (Sample, bool) {
	head := r.head.Load()
	if head == r.tail.Load() {
		return Sample{}, false
	}
	s := r.buf[head&mask]
	r.head.Store(head + 1)
	return s, true
}

// Peek returns the n-th oldest unread sample without removing it.
// The second result is false if fewer than n+1 samples are available.
func (r *Ring) Peek(n int) (Sample, bool) {
	head := r.head.Load()
	if n < 0 || uint32(n) >= r.tail.Load()-head {
		return Sample{}, false
	}
	return r.buf[(head+uint32(n))&mask], true
}

// Discard drops every sample currently available and returns how many were
// dropped. It must only be called from the consumer context.
func (r *Ring) Discard() int {
	head := r.head.Load()
	tail := r.tail.Load()
	r.head.Store(tail)
	return int(tail - head)
}

// Available returns the number of unread samples.
func (r *Ring) Available() int {
	return int(r.tail.Load() - r.head.Load())
}

// Free returns the number of slots Put can fill before dropping.
func (r *Ring) Free() int {
	return Capacity - r.Available()
}

// Empty reports whether no samples are waiting.
func (r *Ring) Empty() bool {
	return r.Available() == 0
}

// Full reports whether the next Put would drop its sample.
func (r *Ring) Full() bool {
	return r.Available() >= Capacity
}

// Dropped returns the number of samples discarded because the ring was full.
func (r *Ring) Dropped() uint32 {
	return r.dropped.Load()
}

// Reset empties the ring and clears the drop counter. It must only be called
// while the producer is stopped.
func (r *Ring) Reset() {
	r.head.Store(0)
	r.tail.Store(0)
	r.dropped.Store(0)
}
