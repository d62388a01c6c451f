package hal

// Lines is the width of every port.
const Lines = 8

// OutputPort drives the row lines of a matrix.
type OutputPort interface {
	// Begin configures every line as a released (high-impedance) output.
	Begin() error

	// DriveLow releases every line except line, which is driven low.
	// Lines outside [0, Lines) release every line.
	DriveLow(line uint8)

	// ReleaseAll returns every line to high impedance.
	ReleaseAll()
}

// InputPort samples eight pulled-up input lines.
type InputPort interface {
	// Begin configures every line as an input with pull-up.
	Begin() error

	// Read returns the current level of all lines, bit n = line n.
	Read() uint8
}

// PinChange signals level changes on monitored input lines.
type PinChange interface {
	// Enable installs handler and starts delivering changes to it.
	// It returns pkg.ErrAlreadyRunning if a handler is installed.
	Enable(handler func()) error

	// Disable stops delivery. Disable without Enable is a no-op.
	Disable() error
}
