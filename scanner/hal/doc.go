// Package hal defines the port interfaces the keyboard scanners are built on.
//
// The HAL is the only place where the scanners touch hardware. A platform
// provides an implementation for its GPIO controller; the scanners implement
// all matrix logic on top of it.
//
// # Design Principles
//
//   - Minimal: one 8-bit port per direction, one pin-change source
//   - Generic: no register addresses or pin numbers in the interfaces
//   - Non-blocking: every method returns immediately
//
// # Interface Overview
//
// An [OutputPort] drives the eight row lines of the active scanner. Lines are
// either driven low or released to high impedance; releasing lets the pull-ups
// on the column side settle the line high.
//
// An [InputPort] samples eight lines at once with pull-ups enabled, so an
// open switch reads as 1. The passive scanner uses two of them: one on the
// host's row lines and one on its column lines.
//
// A [PinChange] delivers a callback whenever a monitored line changes. The
// callback runs in interrupt context on microcontrollers and on a producer
// goroutine in simulation; it must not block.
//
// # Implementations
//
// [github.com/ardnew/softmatrix/scanner/hal/sim] simulates a matrix board and
// a host computer for tests and the CLI.
// [github.com/ardnew/softmatrix/scanner/hal/evdev] feeds the simulated board
// from a Linux input device.
package hal
