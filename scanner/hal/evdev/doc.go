// Package evdev drives a simulated matrix board from a Linux input device.
//
// Each key event read from the device closes or opens the switch of the
// matrix cell whose positional mapping is that PC key, so typing on a PC
// keyboard exercises the scanners as if the matching C16 keys were pressed.
// Keys with no cell in the layout are ignored.
//
// The package requires Linux. On other systems [Open] returns
// pkg.ErrNotSupported.
package evdev
