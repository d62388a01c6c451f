package scanner

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ardnew/softmatrix/keymap"
	"github.com/ardnew/softmatrix/matrix"
	"github.com/ardnew/softmatrix/pkg"
	"github.com/ardnew/softmatrix/scanner/hal/sim"
)

func noDelay(time.Duration) {}

func newActive(t *testing.T, b *sim.Board, debounce int) *Active {
	t.Helper()
	cfg := ActiveConfig{Debounce: debounce, Delay: noDelay}
	return NewActive(b.RowPort(), b.ColPort(), keymap.NewMapper(keymap.C16), cfg)
}

func TestActive_ScanBeforeBegin(t *testing.T) {
	a := newActive(t, sim.NewBoard(), 4)
	var buf matrix.Buffer
	assert.Equal(t, StatusError, a.Scan(&buf))
	a.Loop()
	assert.Zero(t, a.Passes())
	assert.NoError(t, a.End())
}

func TestActive_Begin(t *testing.T) {
	a := newActive(t, sim.NewBoard(), DefaultDebounce)
	require.NoError(t, a.Begin())
	assert.Equal(t, uint64(DefaultDebounce-1), a.Passes(), "countdown from threshold to 1")
	assert.Equal(t, matrix.Released(), a.Matrix())
	assert.ErrorIs(t, a.Begin(), pkg.ErrAlreadyRunning)

	require.NoError(t, a.End())
	var buf matrix.Buffer
	assert.Equal(t, StatusError, a.Scan(&buf))
}

func TestActive_BeginSelectsMode(t *testing.T) {
	b := sim.NewBoard()
	require.NoError(t, b.Press(keymap.C16ModeCell.Row, keymap.C16ModeCell.Col))

	m := keymap.NewMapper(keymap.C16)
	a := NewActive(b.RowPort(), b.ColPort(), m, ActiveConfig{Debounce: 3, Delay: noDelay})
	require.NoError(t, a.Begin())
	assert.Equal(t, keymap.ModePositional, m.Mode())
}

func TestActive_Defaults(t *testing.T) {
	cfg := ActiveConfig{}.withDefaults()
	assert.Equal(t, DefaultDebounce, cfg.Debounce)
	assert.Equal(t, DefaultSettle, cfg.Settle)
	assert.Equal(t, DefaultMaxInitialPasses, cfg.MaxInitialPasses)
	assert.NotNil(t, cfg.Delay)
}

func TestActive_SettleDelay(t *testing.T) {
	var waits []time.Duration
	b := sim.NewBoard()
	cfg := ActiveConfig{
		Debounce: 2,
		Settle:   50 * time.Microsecond,
		Delay:    func(d time.Duration) { waits = append(waits, d) },
	}
	a := NewActive(b.RowPort(), b.ColPort(), keymap.NewMapper(keymap.C16), cfg)
	require.NoError(t, a.Begin())
	require.Len(t, waits, matrix.Rows, "one wait per row")
	for _, d := range waits {
		assert.Equal(t, 50*time.Microsecond, d)
	}
}

func TestActive_DebounceSingleTransition(t *testing.T) {
	const debounce = 4
	b := sim.NewBoard()
	a := newActive(t, b, debounce)
	require.NoError(t, a.Begin())

	require.NoError(t, b.Press(1, 2))

	var buf matrix.Buffer
	var got []Status
	for i := 0; i < 3*debounce; i++ {
		got = append(got, a.Scan(&buf))
	}

	transitions := 0
	for i := 1; i < len(got); i++ {
		if got[i-1] != StatusComplete && got[i] == StatusComplete {
			transitions++
		}
	}
	assert.Equal(t, 1, transitions)
	assert.Equal(t, StatusInProgress, got[0])
	assert.Equal(t, StatusComplete, got[debounce-2])
	assert.Equal(t, StatusComplete, got[len(got)-1])

	require.Equal(t, 1, buf.Len())
	assert.Equal(t, matrix.KeyEvent{Key: matrix.ASCII('a'), Row: 1, Col: 2}, buf.At(0))
}

func TestActive_BounceRestartsCountdown(t *testing.T) {
	const debounce = 4
	b := sim.NewBoard()
	a := newActive(t, b, debounce)
	require.NoError(t, a.Begin())

	var buf matrix.Buffer
	require.NoError(t, b.Press(2, 3))
	assert.Equal(t, StatusInProgress, a.Scan(&buf))

	// One chattering read restarts the countdown twice: once when it
	// reads open, once when it reads closed again.
	require.NoError(t, b.Bounce(2, 3, 1))
	for i := 0; i < debounce-1; i++ {
		assert.Equal(t, StatusInProgress, a.Scan(&buf), "pass %d", i)
	}
	assert.Equal(t, StatusComplete, a.Scan(&buf))
	require.Equal(t, 1, buf.Len())
	assert.Equal(t, uint8(2), buf.At(0).Row)
	assert.Equal(t, uint8(3), buf.At(0).Col)
}

func TestActive_LoopAdvancesDebounce(t *testing.T) {
	b := sim.NewBoard()
	a := newActive(t, b, 3)
	require.NoError(t, a.Begin())

	require.NoError(t, b.Press(7, 0))
	a.Loop()
	a.Loop()

	var buf matrix.Buffer
	assert.Equal(t, StatusComplete, a.Scan(&buf))
	assert.Equal(t, matrix.ASCII('1'), buf.At(0).Key)
}

func TestActive_ReleaseAll(t *testing.T) {
	b := sim.NewBoard()
	a := newActive(t, b, 3)
	require.NoError(t, b.Press(1, 2))
	require.NoError(t, a.Begin())

	var buf matrix.Buffer
	require.Equal(t, StatusComplete, a.Scan(&buf))
	require.Equal(t, 1, buf.Len())

	b.ReleaseKeys()
	assert.Equal(t, StatusInProgress, a.Scan(&buf))
	assert.Equal(t, StatusComplete, a.Scan(&buf))
	assert.Zero(t, buf.Len())
}

// flapping reads every row pressed on one pass and released on the next.
type flapping struct{ n int }

func (f *flapping) Begin() error { return nil }

func (f *flapping) Read() uint8 {
	pass := f.n / matrix.Rows
	f.n++
	if pass%2 == 0 {
		return 0xFE
	}
	return 0xFF
}

func TestActive_Unstable(t *testing.T) {
	b := sim.NewBoard()
	cfg := ActiveConfig{Debounce: 3, Delay: noDelay, MaxInitialPasses: 10}
	a := NewActive(b.RowPort(), &flapping{}, keymap.NewMapper(keymap.C16), cfg)
	err := a.Begin()
	assert.ErrorIs(t, err, pkg.ErrUnstable)
	assert.Equal(t, uint64(10), a.Passes())

	var buf matrix.Buffer
	assert.Equal(t, StatusError, a.Scan(&buf))
}

var errBroken = errors.New("broken")

type brokenPort struct{}

func (brokenPort) Begin() error { return errBroken }
func (brokenPort) Read() uint8  { return 0xFF }

func TestActive_PortError(t *testing.T) {
	b := sim.NewBoard()
	a := NewActive(b.RowPort(), brokenPort{}, keymap.NewMapper(keymap.C16), ActiveConfig{Delay: noDelay})
	assert.ErrorIs(t, a.Begin(), errBroken)
}

func TestActive_InvalidKeyMap(t *testing.T) {
	b := sim.NewBoard()
	m := keymap.NewMapper(keymap.Layout{Name: "empty"})
	a := NewActive(b.RowPort(), b.ColPort(), m, ActiveConfig{Debounce: 2, Delay: noDelay})
	assert.ErrorIs(t, a.Begin(), pkg.ErrInvalidKeyMap)
}
