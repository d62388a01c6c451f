package scanner

import (
	"fmt"

	"github.com/ardnew/softmatrix/keymap"
	"github.com/ardnew/softmatrix/matrix"
	"github.com/ardnew/softmatrix/pkg"
	"github.com/ardnew/softmatrix/ring"
	"github.com/ardnew/softmatrix/scanner/hal"
)

// Passive reconstructs the matrix by snooping the host computer's own scan.
//
// The pin-change handler (Capture) samples the host's row and column lines
// and queues the pair; the polling side drains the queue through a Decoder.
// The host debounces upstream, so accepted samples are trusted at once.
type Passive struct {
	rows   hal.InputPort
	cols   hal.InputPort
	irq    hal.PinChange
	mapper *keymap.Mapper

	samples ring.Ring
	decoder Decoder
	matrix  matrix.Matrix
	dropped uint32 // Dropped count already reported
	begun   bool
}

// NewPassive returns a passive scanner reading the host's row lines through
// rows and column lines through cols, woken by irq.
func NewPassive(rows, cols hal.InputPort, irq hal.PinChange, mapper *keymap.Mapper) *Passive {
	return &Passive{
		rows:   rows,
		cols:   cols,
		irq:    irq,
		mapper: mapper,
	}
}

// Begin configures the ports, installs the pin-change handler and starts the
// mapper.
func (p *Passive) Begin() error {
	if p.begun {
		return pkg.ErrAlreadyRunning
	}

	p.matrix.Clear()
	p.samples.Reset()
	p.decoder.Reset()
	p.dropped = 0

	if err := p.rows.Begin(); err != nil {
		return fmt.Errorf("row port: %w", err)
	}
	if err := p.cols.Begin(); err != nil {
		return fmt.Errorf("column port: %w", err)
	}
	if err := p.irq.Enable(p.Capture); err != nil {
		return fmt.Errorf("pin change: %w", err)
	}
	if err := p.mapper.Begin(p.matrix); err != nil {
		_ = p.irq.Disable()
		return err
	}

	p.begun = true
	pkg.LogInfo(pkg.ComponentScanner, "passive scanner started")
	return nil
}

// End removes the pin-change handler.
func (p *Passive) End() error {
	if !p.begun {
		return nil
	}
	p.begun = false
	if err := p.irq.Disable(); err != nil {
		return fmt.Errorf("pin change: %w", err)
	}
	pending := p.samples.Discard()
	st := p.decoder.Stats()
	pkg.LogDebug(pkg.ComponentDecoder, "sample totals",
		"released", st.Released, "rows", st.Rows, "discarded", st.Discarded,
		"dropped", p.samples.Dropped(), "pending", pending)
	pkg.LogInfo(pkg.ComponentScanner, "passive scanner stopped")
	return nil
}

// Capture samples the host's lines and queues them. It runs in interrupt
// context: it never logs, allocates or blocks. A full queue drops the
// sample.
func (p *Passive) Capture() {
	p.samples.Put(ring.Sample{Rows: p.rows.Read(), Cols: p.cols.Read()})
}

// drain decodes at most n queued samples.
func (p *Passive) drain(n int) {
	for i := 0; i < n; i++ {
		s, ok := p.samples.Get()
		if !ok {
			break
		}
		p.decoder.Apply(&p.matrix, s)
	}
	if d := p.samples.Dropped(); d != p.dropped {
		pkg.LogWarn(pkg.ComponentRing, "sample queue overflow",
			"dropped", d-p.dropped, "total", d)
		p.dropped = d
	}
}

// Loop decodes the queued samples.
func (p *Passive) Loop() {
	if p.begun {
		p.drain(p.samples.Available())
	}
}

// Scan decodes the samples queued on entry. If more arrived meanwhile it
// reports StatusInProgress; otherwise it maps the matrix into buf.
func (p *Passive) Scan(buf *matrix.Buffer) Status {
	if !p.begun {
		return StatusError
	}
	p.drain(p.samples.Available())
	if !p.samples.Empty() {
		return StatusInProgress
	}
	p.mapper.Map(p.matrix, buf)
	return StatusComplete
}

// UpdateLeds does nothing; the host owns the keyboard lines.
func (p *Passive) UpdateLeds(caps, num, scroll bool) {}

// Matrix returns the matrix reconstructed so far.
func (p *Passive) Matrix() matrix.Matrix {
	return p.matrix
}

// PassiveStats reports the sample counters of a Passive scanner.
type PassiveStats struct {
	DecoderStats
	Dropped uint32
}

// Stats returns the sample counters since Begin.
func (p *Passive) Stats() PassiveStats {
	return PassiveStats{DecoderStats: p.decoder.Stats(), Dropped: p.samples.Dropped()}
}
