// Package ring implements the fixed-capacity sample channel between the
// pin-change interrupt and the polling loop of the passive scanner.
//
// # Single Producer, Single Consumer
//
// Exactly one context may call [Ring.Put] (the interrupt handler) and
// exactly one other context may call [Ring.Get], [Ring.Peek] and
// [Ring.Discard] (the polling loop). No locks are taken. The producer writes
// a slot and only then publishes the advanced tail index; the consumer reads
// a slot and only then publishes the advanced head index. Index publication
// uses [sync/atomic], which gives the ordering guarantee on every target Go
// supports.
//
// # Overflow
//
// Put never blocks. When all [Capacity] slots hold unread samples, the new
// sample is dropped and counted; samples already queued keep their FIFO
// order. The host rescans its matrix every few milliseconds, so a lost
// sample is re-supplied by the next pass.
package ring
