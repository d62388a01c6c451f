package sim

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/ardnew/softmatrix/matrix"
	"github.com/ardnew/softmatrix/pkg"
	"github.com/ardnew/softmatrix/scanner/hal"
)

// Host simulates a computer scanning a Board through its own keyboard port,
// the traffic a passive scanner snoops on. Its row and column line levels
// are exposed as input ports, and every level change is delivered through
// the PinChange returned by Interrupt.
//
// A scan pass mirrors the C16 KERNAL: all rows are driven low to test for
// any key; with none pressed the rows are released, otherwise each row is
// driven low in turn and the columns are read back.
type Host struct {
	board *Board

	rows atomic.Uint32
	cols atomic.Uint32

	mu      sync.Mutex
	handler func()
	passes  uint64
}

// NewHost returns a host scanning board with every line idle high.
func NewHost(board *Board) *Host {
	h := &Host{board: board}
	h.rows.Store(0xFF)
	h.cols.Store(0xFF)
	return h
}

// RowPort returns an input port reading the host's row lines.
func (h *Host) RowPort() hal.InputPort {
	return &linePort{v: &h.rows, name: "rows"}
}

// ColPort returns an input port reading the host's column lines.
func (h *Host) ColPort() hal.InputPort {
	return &linePort{v: &h.cols, name: "cols"}
}

// Interrupt returns the pin-change source for the host's lines.
func (h *Host) Interrupt() hal.PinChange {
	return (*hostIRQ)(h)
}

// Drive sets the host's row lines and lets the columns settle. The
// pin-change handler, if any, runs synchronously when a level changed.
func (h *Host) Drive(rows uint8) {
	cols := h.board.columns(^rows)
	changed := uint32(rows) != h.rows.Load() || uint32(cols) != h.cols.Load()
	h.rows.Store(uint32(rows))
	h.cols.Store(uint32(cols))
	if !changed {
		return
	}
	h.mu.Lock()
	fn := h.handler
	h.mu.Unlock()
	if fn != nil {
		fn()
	}
}

// Pass performs one complete keyboard scan.
func (h *Host) Pass() {
	h.Drive(0x00)
	if uint8(h.cols.Load()) == 0xFF {
		h.Drive(0xFF)
	} else {
		for row := uint8(0); row < matrix.Rows; row++ {
			h.Drive(^(uint8(1) << row))
		}
	}
	h.mu.Lock()
	h.passes++
	h.mu.Unlock()
}

// Passes returns the number of completed scan passes.
func (h *Host) Passes() uint64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.passes
}

// Run scans every interval until ctx is done.
func (h *Host) Run(ctx context.Context, interval time.Duration) error {
	t := time.NewTicker(interval)
	defer t.Stop()
	pkg.LogInfo(pkg.ComponentHAL, "host scanning", "board", h.board.ID(), "interval", interval)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
			h.Pass()
		}
	}
}

type linePort struct {
	v     *atomic.Uint32
	name  string
	ready atomic.Bool
}

func (p *linePort) Begin() error {
	p.ready.Store(true)
	pkg.LogDebug(pkg.ComponentHAL, "snoop port ready", "lines", p.name)
	return nil
}

func (p *linePort) Read() uint8 {
	if !p.ready.Load() {
		return 0xFF
	}
	return uint8(p.v.Load())
}

type hostIRQ Host

func (i *hostIRQ) Enable(handler func()) error {
	i.mu.Lock()
	defer i.mu.Unlock()
	if i.handler != nil {
		return pkg.ErrAlreadyRunning
	}
	i.handler = handler
	return nil
}

func (i *hostIRQ) Disable() error {
	i.mu.Lock()
	i.handler = nil
	i.mu.Unlock()
	return nil
}
