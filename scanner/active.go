package scanner

import (
	"fmt"
	"time"

	"github.com/ardnew/softmatrix/keymap"
	"github.com/ardnew/softmatrix/matrix"
	"github.com/ardnew/softmatrix/pkg"
	"github.com/ardnew/softmatrix/scanner/hal"
)

// Active scanner defaults.
const (
	DefaultDebounce         = 20
	DefaultSettle           = 30 * time.Microsecond
	DefaultMaxInitialPasses = 1000
)

// ActiveConfig tunes an Active scanner. Zero fields take their defaults.
type ActiveConfig struct {
	// Debounce is the number of unchanged passes required before the
	// matrix is trusted.
	Debounce int

	// Settle is the wait between driving a row and reading the columns.
	Settle time.Duration

	// Delay waits for the settle time. It defaults to BusyWait.
	Delay func(time.Duration)

	// MaxInitialPasses bounds the passes Begin makes waiting for a stable
	// matrix.
	MaxInitialPasses int
}

func (c ActiveConfig) withDefaults() ActiveConfig {
	if c.Debounce <= 0 {
		c.Debounce = DefaultDebounce
	}
	if c.Settle <= 0 {
		c.Settle = DefaultSettle
	}
	if c.Delay == nil {
		c.Delay = BusyWait
	}
	if c.MaxInitialPasses <= 0 {
		c.MaxInitialPasses = DefaultMaxInitialPasses
	}
	return c
}

// BusyWait spins for d without yielding to the scheduler.
func BusyWait(d time.Duration) {
	start := time.Now()
	for time.Since(start) < d {
	}
}

// Active scans a matrix by driving one row low at a time and reading the
// columns back. The matrix is trusted once Debounce consecutive passes read
// the same values.
type Active struct {
	out    hal.OutputPort
	in     hal.InputPort
	mapper *keymap.Mapper
	cfg    ActiveConfig

	matrix    matrix.Matrix
	countdown int
	begun     bool
	passes    uint64
}

// NewActive returns an active scanner driving rows through out and reading
// columns through in.
func NewActive(out hal.OutputPort, in hal.InputPort, mapper *keymap.Mapper, cfg ActiveConfig) *Active {
	return &Active{
		out:    out,
		in:     in,
		mapper: mapper,
		cfg:    cfg.withDefaults(),
	}
}

// Begin configures the ports, scans until the matrix is stable and starts
// the mapper with the stable matrix.
func (a *Active) Begin() error {
	if a.begun {
		return pkg.ErrAlreadyRunning
	}

	a.matrix.Clear()
	a.countdown = a.cfg.Debounce

	if err := a.out.Begin(); err != nil {
		return fmt.Errorf("row port: %w", err)
	}
	if err := a.in.Begin(); err != nil {
		return fmt.Errorf("column port: %w", err)
	}

	stable := false
	for i := 0; i < a.cfg.MaxInitialPasses && !stable; i++ {
		stable = a.pass()
	}
	if !stable {
		pkg.LogError(pkg.ComponentScanner, "matrix never settled",
			"passes", a.cfg.MaxInitialPasses, "matrix", a.matrix)
		return fmt.Errorf("%w after %d passes", pkg.ErrUnstable, a.cfg.MaxInitialPasses)
	}

	if err := a.mapper.Begin(a.matrix); err != nil {
		return err
	}

	a.begun = true
	pkg.LogInfo(pkg.ComponentScanner, "active scanner started",
		"debounce", a.cfg.Debounce, "settle", a.cfg.Settle, "passes", a.passes)
	return nil
}

// End releases the row lines.
func (a *Active) End() error {
	if !a.begun {
		return nil
	}
	a.out.ReleaseAll()
	a.begun = false
	pkg.LogInfo(pkg.ComponentScanner, "active scanner stopped")
	return nil
}

// pass reads every row once and reports whether the matrix is stable.
func (a *Active) pass() bool {
	for row := uint8(0); row < matrix.Rows; row++ {
		a.out.DriveLow(row)
		a.cfg.Delay(a.cfg.Settle)
		if v := a.in.Read(); v != a.matrix[row] {
			a.matrix[row] = v
			a.countdown = a.cfg.Debounce
		}
	}
	a.out.ReleaseAll()
	a.passes++

	if a.countdown > 1 {
		a.countdown--
	}
	return a.countdown <= 1
}

// Loop performs one scan pass.
func (a *Active) Loop() {
	if a.begun {
		a.pass()
	}
}

// Scan performs one scan pass and maps the matrix once it is stable.
func (a *Active) Scan(buf *matrix.Buffer) Status {
	if !a.begun {
		return StatusError
	}
	if !a.pass() {
		return StatusInProgress
	}
	a.mapper.Map(a.matrix, buf)
	return StatusComplete
}

// UpdateLeds does nothing; the matrix has no indicators.
func (a *Active) UpdateLeds(caps, num, scroll bool) {}

// Matrix returns the last matrix read, stable or not.
func (a *Active) Matrix() matrix.Matrix {
	return a.matrix
}

// Passes returns the number of scan passes made since construction.
func (a *Active) Passes() uint64 {
	return a.passes
}
