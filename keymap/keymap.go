package keymap

import (
	"fmt"

	"github.com/ardnew/softmatrix/matrix"
	"github.com/ardnew/softmatrix/pkg"
)

// Cell addresses one switch in the matrix.
type Cell struct {
	Row uint8
	Col uint8
}

// Valid reports whether the cell lies inside the matrix.
func (c Cell) Valid() bool {
	return c.Row < matrix.Rows && c.Col < matrix.Cols
}

// String returns the cell as (row,col).
func (c Cell) String() string {
	return fmt.Sprintf("(%d,%d)", c.Row, c.Col)
}

// KeyMap maps every matrix cell to a key. KeyNone marks unmapped cells.
// Key maps are package-level values that are never written after init.
type KeyMap [matrix.Rows][matrix.Cols]matrix.Key

// Lookup returns the key at (row, col), or KeyNone outside the matrix.
func (km *KeyMap) Lookup(row, col uint8) matrix.Key {
	if row >= matrix.Rows || col >= matrix.Cols {
		return KeyNone
	}
	return km[row][col]
}

// Event renders the key at (row, col) as a KeyEvent for that cell.
func (km *KeyMap) Event(row, col uint8) matrix.KeyEvent {
	return matrix.KeyEvent{Key: km.Lookup(row, col), Row: row, Col: col}
}

// Find returns the first cell, in row-major order, holding k.
func (km *KeyMap) Find(k matrix.Key) (Cell, bool) {
	for row := uint8(0); row < matrix.Rows; row++ {
		for col := uint8(0); col < matrix.Cols; col++ {
			if km[row][col] == k {
				return Cell{row, col}, true
			}
		}
	}
	return Cell{}, false
}

// with returns a copy of km with one cell replaced.
func (km KeyMap) with(row, col uint8, k matrix.Key) *KeyMap {
	km[row][col] = k
	return &km
}

// Layout bundles the tables for one keyboard.
//
// Positional is required. Symbolic and SymbolicShifted are optional but must
// be given together; without them the mapper always runs positional.
type Layout struct {
	Name string

	Positional      *KeyMap // Raw position = key identity
	Symbolic        *KeyMap // Keycap meaning, Shift released
	SymbolicShifted *KeyMap // Keycap meaning, Shift held

	// ModeCell selects positional mode when held at start-up.
	ModeCell Cell

	// ShiftCell selects the shifted symbolic table while held.
	ShiftCell Cell
}

// HasSymbolic reports whether the layout defines symbolic tables.
func (l *Layout) HasSymbolic() bool {
	return l.Symbolic != nil && l.SymbolicShifted != nil
}

// Validate checks that the layout can be used by a Mapper.
func (l *Layout) Validate() error {
	if l.Positional == nil {
		return fmt.Errorf("%w: %s: no positional table", pkg.ErrInvalidKeyMap, l.Name)
	}
	if (l.Symbolic == nil) != (l.SymbolicShifted == nil) {
		return fmt.Errorf("%w: %s: symbolic tables must be given together", pkg.ErrInvalidKeyMap, l.Name)
	}
	if !l.ModeCell.Valid() {
		return fmt.Errorf("%w: %s: mode cell %v outside matrix", pkg.ErrInvalidKeyMap, l.Name, l.ModeCell)
	}
	if !l.ShiftCell.Valid() {
		return fmt.Errorf("%w: %s: shift cell %v outside matrix", pkg.ErrInvalidKeyMap, l.Name, l.ShiftCell)
	}
	return nil
}
