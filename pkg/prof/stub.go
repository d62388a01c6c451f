//go:build !profile

package prof

// Capture is a running profile capture. Without the "profile" tag it
// records nothing.
type Capture struct{}

// Enabled reports whether profiling is compiled in.
func Enabled() bool { return false }

// Start returns an inert capture.
func Start(string) (*Capture, error) { return &Capture{}, nil }

// Stop is a no-op.
func (*Capture) Stop() error { return nil }
