//go:build linux

// Package usbid names USB keyboards from the system usb.ids database.
//
// The evdev board uses it to log which keyboard it attached to:
//
//	vendor, product := usbid.Lookup(dev.Vendor, dev.Product)
//
// The database is read once, from the first of [DefaultPaths] that exists.
// When none exists every lookup returns empty names.
package usbid
