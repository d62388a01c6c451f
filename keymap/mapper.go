package keymap

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/ardnew/softmatrix/matrix"
	"github.com/ardnew/softmatrix/pkg"
)

// Mode selects which tables the Mapper reads.
type Mode uint8

const (
	// ModeAuto defers the choice to the matrix state seen by Begin.
	ModeAuto Mode = iota
	ModePositional
	ModeSymbolic
)

// String returns the configuration name of m.
func (m Mode) String() string {
	switch m {
	case ModeAuto:
		return "auto"
	case ModePositional:
		return "positional"
	case ModeSymbolic:
		return "symbolic"
	default:
		return fmt.Sprintf("Mode(%d)", uint8(m))
	}
}

// ParseMode parses a configuration name into a Mode.
func ParseMode(name string) (Mode, error) {
	switch strings.ToLower(name) {
	case "", "auto":
		return ModeAuto, nil
	case "positional":
		return ModePositional, nil
	case "symbolic":
		return ModeSymbolic, nil
	}
	return ModeAuto, fmt.Errorf("%w: unknown keymap mode %q", pkg.ErrInvalidParameter, name)
}

// MapperOption configures a Mapper.
type MapperOption func(*Mapper)

// WithMode fixes the mode instead of reading the mode cell at Begin.
// ModeAuto restores the default.
func WithMode(mode Mode) MapperOption {
	return func(m *Mapper) { m.forced = mode }
}

// WithEuro reports the euro sign in place of the pound sign.
func WithEuro(on bool) MapperOption {
	return func(m *Mapper) { m.euro = on }
}

// MapperStats counts conditions the mapper recovered from.
type MapperStats struct {
	Unmapped   uint32 // Pressed cells with no key in the active table
	Overflow   uint32 // Pressed cells dropped because the buffer was full
	Suppressed uint32 // Scans where Shift was removed
}

// Mapper converts a stable matrix into key events.
//
// The mode is chosen once by Begin and does not change afterwards.
type Mapper struct {
	layout Layout
	forced Mode
	euro   bool

	mode     Mode
	ready    bool
	stats    MapperStats
	symbolic *KeyMap
	shifted  *KeyMap
}

// NewMapper returns a mapper for layout. Begin must be called before Map.
func NewMapper(layout Layout, opts ...MapperOption) *Mapper {
	m := &Mapper{layout: layout}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Begin validates the layout and fixes the mode. The mode cell held in mtx
// selects positional mode; otherwise symbolic mode is used when the layout
// has symbolic tables.
func (m *Mapper) Begin(mtx matrix.Matrix) error {
	if err := m.layout.Validate(); err != nil {
		pkg.LogError(pkg.ComponentMapper, "invalid layout", "layout", m.layout.Name, "error", err)
		return err
	}

	mode := m.forced
	if mode == ModeAuto {
		mode = ModeSymbolic
		if mtx.Pressed(m.layout.ModeCell.Row, m.layout.ModeCell.Col) {
			mode = ModePositional
		}
	}
	if mode == ModeSymbolic && !m.layout.HasSymbolic() {
		if m.forced == ModeSymbolic {
			return fmt.Errorf("%w: %s: no symbolic tables", pkg.ErrInvalidKeyMap, m.layout.Name)
		}
		mode = ModePositional
	}

	m.symbolic, m.shifted = m.layout.Symbolic, m.layout.SymbolicShifted
	if m.euro && mode == ModeSymbolic {
		m.symbolic = euroTable(m.symbolic)
		m.shifted = euroTable(m.shifted)
	}

	m.mode = mode
	m.ready = true
	m.stats = MapperStats{}
	pkg.LogInfo(pkg.ComponentMapper, "mapper started", "layout", m.layout.Name, "mode", mode)
	return nil
}

// Mode returns the mode chosen by Begin, or ModeAuto before Begin.
func (m *Mapper) Mode() Mode {
	if !m.ready {
		return ModeAuto
	}
	return m.mode
}

// Layout returns the layout the mapper was built with.
func (m *Mapper) Layout() Layout {
	return m.layout
}

// Stats returns the recovery counters since Begin.
func (m *Mapper) Stats() MapperStats {
	return m.stats
}

// euroTable returns km with the pound sign replaced by the euro sign, or km
// itself when it has no pound sign.
func euroTable(km *KeyMap) *KeyMap {
	c, ok := km.Find(PoundSign)
	if !ok {
		return km
	}
	return km.with(c.Row, c.Col, EuroSign)
}

// table returns the key map for the current scan.
func (m *Mapper) table(mtx *matrix.Matrix) *KeyMap {
	if m.mode == ModePositional {
		return m.layout.Positional
	}
	if mtx.Pressed(m.layout.ShiftCell.Row, m.layout.ShiftCell.Col) {
		return m.shifted
	}
	return m.symbolic
}

// Map resets buf and fills it with one event per pressed cell, in row-major
// order. Cells without a key are skipped and cells beyond the buffer
// capacity are dropped; both are logged. In symbolic mode the held Shift is
// removed when it would change the meaning of another reported key. Map
// returns the number of events in buf.
func (m *Mapper) Map(mtx matrix.Matrix, buf *matrix.Buffer) int {
	buf.Reset()
	if !m.ready {
		pkg.LogWarn(pkg.ComponentMapper, "map before begin")
		return 0
	}

	km := m.table(&mtx)
	for row := uint8(0); row < matrix.Rows; row++ {
		if mtx[row] == matrix.RowReleased {
			continue
		}
		for col := uint8(0); col < matrix.Cols; col++ {
			if !mtx.Pressed(row, col) {
				continue
			}
			k := km.Lookup(row, col)
			if k == KeyNone {
				m.stats.Unmapped++
				pkg.LogWarn(pkg.ComponentMapper, "skipping unmapped key",
					"row", row, "col", col, "error", pkg.ErrUnmappedKey)
				continue
			}
			if err := buf.Append(matrix.KeyEvent{Key: k, Row: row, Col: col}); err != nil {
				m.stats.Overflow++
				pkg.LogError(pkg.ComponentMapper, "dropping key",
					"key", k, "row", row, "col", col, "error", err)
			}
		}
	}

	if m.mode == ModeSymbolic && suppressShift(buf, m.layout.Symbolic) {
		m.stats.Suppressed++
	}
	if buf.Len() > 0 && pkg.LogEnabled(slog.LevelDebug) {
		pkg.LogDebug(pkg.ComponentMapper, "mapped", "mode", m.mode, "events", buf.Events())
	}
	return buf.Len()
}
