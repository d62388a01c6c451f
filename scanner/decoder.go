package scanner

import (
	"math/bits"

	"github.com/ardnew/softmatrix/matrix"
	"github.com/ardnew/softmatrix/ring"
)

// Class is the interpretation of one snooped sample.
type Class uint8

const (
	// ClassIndeterminate is a sample taken while the host drove several
	// rows at once, or none. It carries no per-row information.
	ClassIndeterminate Class = iota

	// ClassReleased is a sample with every row and column line high: the
	// host saw no key down.
	ClassReleased

	// ClassRow is a sample with exactly one row driven low. Its column
	// byte is the state of that row.
	ClassRow
)

// String returns a short class name.
func (c Class) String() string {
	switch c {
	case ClassReleased:
		return "released"
	case ClassRow:
		return "row"
	default:
		return "indeterminate"
	}
}

// DecoderStats counts samples by class.
type DecoderStats struct {
	Released  uint32
	Rows      uint32
	Discarded uint32
}

// Decoder reconstructs a matrix from samples of a host's own keyboard scan.
type Decoder struct {
	stats DecoderStats
}

// Classify returns the class of s without changing any state.
func (d *Decoder) Classify(s ring.Sample) Class {
	switch {
	case s.Rows == 0xFF && s.Cols == 0xFF:
		return ClassReleased
	case bits.OnesCount8(s.Rows) == matrix.Rows-1:
		return ClassRow
	default:
		return ClassIndeterminate
	}
}

// Apply folds s into m and returns its class. Released samples clear m, row
// samples overwrite the driven row, and indeterminate samples are counted
// and otherwise ignored.
func (d *Decoder) Apply(m *matrix.Matrix, s ring.Sample) Class {
	c := d.Classify(s)
	switch c {
	case ClassReleased:
		m.Clear()
		d.stats.Released++
	case ClassRow:
		m.Set(uint8(bits.TrailingZeros8(^s.Rows)), s.Cols)
		d.stats.Rows++
	default:
		d.stats.Discarded++
	}
	return c
}

// Stats returns the sample counters.
func (d *Decoder) Stats() DecoderStats {
	return d.stats
}

// Reset zeroes the counters.
func (d *Decoder) Reset() {
	d.stats = DecoderStats{}
}
