package sim

import (
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/ardnew/softmatrix/matrix"
	"github.com/ardnew/softmatrix/pkg"
	"github.com/ardnew/softmatrix/scanner/hal"
)

// Board simulates a key matrix. Rows are selected through the port returned
// by RowPort and sensed through the port returned by ColPort, which reads
// the selected row with pull-ups: a pressed key in that row reads as 0.
//
// Board is safe for concurrent use. Keys may change while a scanner runs.
type Board struct {
	id uuid.UUID

	mu      sync.Mutex
	pressed [matrix.Rows]uint8 // Bit n set = column n closed
	bounce  [matrix.Rows][matrix.Cols]int
	driven  int // Selected row, or -1
	reads   uint64
	rowsUp  bool
	colsUp  bool
}

// NewBoard returns a board with every key released.
func NewBoard() *Board {
	return &Board{id: uuid.New(), driven: -1}
}

// ID identifies the board in log output.
func (b *Board) ID() uuid.UUID {
	return b.id
}

func checkCell(row, col uint8) error {
	if row >= matrix.Rows || col >= matrix.Cols {
		return fmt.Errorf("%w: cell (%d,%d)", pkg.ErrInvalidParameter, row, col)
	}
	return nil
}

// Press closes the switch at (row, col).
func (b *Board) Press(row, col uint8) error {
	if err := checkCell(row, col); err != nil {
		return err
	}
	b.mu.Lock()
	b.pressed[row] |= 1 << col
	b.mu.Unlock()
	return nil
}

// Release opens the switch at (row, col).
func (b *Board) Release(row, col uint8) error {
	if err := checkCell(row, col); err != nil {
		return err
	}
	b.mu.Lock()
	b.pressed[row] &^= 1 << col
	b.mu.Unlock()
	return nil
}

// ReleaseKeys opens every switch.
func (b *Board) ReleaseKeys() {
	b.mu.Lock()
	b.pressed = [matrix.Rows]uint8{}
	b.mu.Unlock()
}

// Load sets every switch from an active-low matrix snapshot.
func (b *Board) Load(m matrix.Matrix) {
	b.mu.Lock()
	for row, v := range m {
		b.pressed[row] = ^v
	}
	b.mu.Unlock()
}

// Matrix returns the true switch state as an active-low snapshot.
func (b *Board) Matrix() matrix.Matrix {
	b.mu.Lock()
	defer b.mu.Unlock()
	var m matrix.Matrix
	for row, v := range b.pressed {
		m[row] = ^v
	}
	return m
}

// Bounce makes the next n reads of (row, col) return the opposite of the
// switch state, as a chattering contact would.
func (b *Board) Bounce(row, col uint8, n int) error {
	if err := checkCell(row, col); err != nil {
		return err
	}
	b.mu.Lock()
	b.bounce[row][col] = n
	b.mu.Unlock()
	return nil
}

// Reads returns the number of column reads taken.
func (b *Board) Reads() uint64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.reads
}

// sense returns the active-low column levels for a single driven row.
// The caller holds b.mu.
func (b *Board) sense(row int) uint8 {
	v := ^b.pressed[row]
	for col := range b.bounce[row] {
		if b.bounce[row][col] > 0 {
			b.bounce[row][col]--
			v ^= 1 << col
		}
	}
	return v
}

// columns returns the column levels while the rows in lowMask are driven
// low. Any closed switch on a driven row pulls its column low.
func (b *Board) columns(lowMask uint8) uint8 {
	b.mu.Lock()
	defer b.mu.Unlock()
	v := uint8(0xFF)
	for row := 0; row < matrix.Rows; row++ {
		if lowMask&(1<<row) != 0 {
			v &^= b.pressed[row]
		}
	}
	return v
}

// RowPort returns the output port that selects rows.
func (b *Board) RowPort() hal.OutputPort {
	return (*rowPort)(b)
}

// ColPort returns the input port that senses columns.
func (b *Board) ColPort() hal.InputPort {
	return (*colPort)(b)
}

type rowPort Board

func (p *rowPort) Begin() error {
	b := (*Board)(p)
	b.mu.Lock()
	b.driven = -1
	b.rowsUp = true
	b.mu.Unlock()
	pkg.LogDebug(pkg.ComponentHAL, "row port ready", "board", b.id)
	return nil
}

func (p *rowPort) DriveLow(line uint8) {
	b := (*Board)(p)
	b.mu.Lock()
	if !b.rowsUp {
		b.mu.Unlock()
		return
	}
	if line < matrix.Rows {
		b.driven = int(line)
	} else {
		b.driven = -1
	}
	b.mu.Unlock()
}

func (p *rowPort) ReleaseAll() {
	b := (*Board)(p)
	b.mu.Lock()
	b.driven = -1
	b.mu.Unlock()
}

type colPort Board

func (p *colPort) Begin() error {
	b := (*Board)(p)
	b.mu.Lock()
	b.colsUp = true
	b.mu.Unlock()
	pkg.LogDebug(pkg.ComponentHAL, "column port ready", "board", b.id)
	return nil
}

func (p *colPort) Read() uint8 {
	b := (*Board)(p)
	b.mu.Lock()
	defer b.mu.Unlock()
	b.reads++
	if b.driven < 0 || !b.colsUp {
		return 0xFF
	}
	return b.sense(b.driven)
}
