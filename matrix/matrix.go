package matrix

import (
	"fmt"
	"math/bits"
	"strings"
)

// Matrix dimensions.
const (
	Rows = 8
	Cols = 8
)

// RowReleased is the value of a row with no key pressed.
const RowReleased uint8 = 0xFF

// Matrix is a snapshot of the key matrix, one active-low byte per row.
type Matrix [Rows]uint8

// Released returns a matrix with every key released.
func Released() Matrix {
	var m Matrix
	m.Clear()
	return m
}

// Clear marks every key as released.
func (m *Matrix) Clear() {
	for row := range m {
		m[row] = RowReleased
	}
}

// Pressed reports whether the switch at (row, col) is closed.
// Out-of-range coordinates report false.
func (m Matrix) Pressed(row, col uint8) bool {
	if row >= Rows || col >= Cols {
		return false
	}
	return m[row]&(1<<col) == 0
}

// Set stores the column byte read for row.
func (m *Matrix) Set(row, cols uint8) {
	if row < Rows {
		m[row] = cols
	}
}

// IsReleased reports whether no key is pressed.
func (m Matrix) IsReleased() bool {
	for _, v := range m {
		if v != RowReleased {
			return false
		}
	}
	return true
}

// PressedCount returns the number of closed switches.
func (m Matrix) PressedCount() int {
	n := 0
	for _, v := range m {
		n += bits.OnesCount8(^v)
	}
	return n
}

// String renders the matrix as eight binary rows, MSB (column 7) first.
func (m Matrix) String() string {
	var sb strings.Builder
	for row, v := range m {
		if row > 0 {
			sb.WriteByte(' ')
		}
		fmt.Fprintf(&sb, "%08b", v)
	}
	return sb.String()
}
