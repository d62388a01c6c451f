package scanner

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ardnew/softmatrix/keymap"
	"github.com/ardnew/softmatrix/matrix"
	"github.com/ardnew/softmatrix/pkg"
	"github.com/ardnew/softmatrix/ring"
	"github.com/ardnew/softmatrix/scanner/hal/sim"
)

func TestDecoder_Classify(t *testing.T) {
	tests := []struct {
		name string
		s    ring.Sample
		want Class
	}{
		{"all high", ring.Sample{Rows: 0xFF, Cols: 0xFF}, ClassReleased},
		{"row 0", ring.Sample{Rows: 0xFE, Cols: 0xF0}, ClassRow},
		{"row 7 idle", ring.Sample{Rows: 0x7F, Cols: 0xFF}, ClassRow},
		{"quick test", ring.Sample{Rows: 0x00, Cols: 0xFB}, ClassIndeterminate},
		{"quick test idle", ring.Sample{Rows: 0x00, Cols: 0xFF}, ClassIndeterminate},
		{"two rows", ring.Sample{Rows: 0xFC, Cols: 0xFF}, ClassIndeterminate},
		{"no row low", ring.Sample{Rows: 0xFF, Cols: 0xFE}, ClassIndeterminate},
	}
	var d Decoder
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, d.Classify(tt.s))
		})
	}
	assert.Zero(t, d.Stats(), "classify is pure")
}

func TestDecoder_Apply(t *testing.T) {
	var d Decoder
	m := matrix.Released()

	assert.Equal(t, ClassRow, d.Apply(&m, ring.Sample{Rows: 0b11111101, Cols: 0b11111011}))
	assert.True(t, m.Pressed(1, 2))
	assert.Equal(t, 1, m.PressedCount(), "only the driven row changes")

	before := m
	assert.Equal(t, ClassIndeterminate, d.Apply(&m, ring.Sample{Rows: 0x00, Cols: 0x00}))
	assert.Equal(t, before, m, "indeterminate samples are ignored")

	assert.Equal(t, ClassRow, d.Apply(&m, ring.Sample{Rows: 0b11111101, Cols: 0xFF}))
	assert.True(t, m.IsReleased())

	d.Apply(&m, ring.Sample{Rows: 0x7F, Cols: 0x00})
	assert.Equal(t, 8, m.PressedCount())
	assert.Equal(t, ClassReleased, d.Apply(&m, ring.Sample{Rows: 0xFF, Cols: 0xFF}))
	assert.True(t, m.IsReleased())

	assert.Equal(t, DecoderStats{Released: 1, Rows: 3, Discarded: 1}, d.Stats())
	d.Reset()
	assert.Zero(t, d.Stats())
}

func newPassive(t *testing.T, host *sim.Host) *Passive {
	t.Helper()
	p := NewPassive(host.RowPort(), host.ColPort(), host.Interrupt(), keymap.NewMapper(keymap.C16))
	require.NoError(t, p.Begin())
	t.Cleanup(func() { _ = p.End() })
	return p
}

func TestPassive_ScanBeforeBegin(t *testing.T) {
	host := sim.NewHost(sim.NewBoard())
	p := NewPassive(host.RowPort(), host.ColPort(), host.Interrupt(), keymap.NewMapper(keymap.C16))
	var buf matrix.Buffer
	assert.Equal(t, StatusError, p.Scan(&buf))
	assert.NoError(t, p.End())
}

func TestPassive_Begin(t *testing.T) {
	host := sim.NewHost(sim.NewBoard())
	p := newPassive(t, host)
	assert.ErrorIs(t, p.Begin(), pkg.ErrAlreadyRunning)

	other := NewPassive(host.RowPort(), host.ColPort(), host.Interrupt(), keymap.NewMapper(keymap.C16))
	assert.ErrorIs(t, other.Begin(), pkg.ErrAlreadyRunning, "interrupt already owned")
}

func TestPassive_Scan(t *testing.T) {
	board := sim.NewBoard()
	host := sim.NewHost(board)
	p := newPassive(t, host)

	var buf matrix.Buffer
	assert.Equal(t, StatusComplete, p.Scan(&buf), "empty queue")
	assert.Zero(t, buf.Len())

	require.NoError(t, board.Press(1, 2))
	require.NoError(t, board.Press(keymap.C16ShiftCell.Row, keymap.C16ShiftCell.Col))
	host.Pass()

	assert.Equal(t, StatusComplete, p.Scan(&buf))
	assert.Equal(t, []matrix.KeyEvent{
		{Key: matrix.ASCII('A'), Row: 1, Col: 2},
		{Key: keymap.KeyLeftShift, Row: 1, Col: 7},
	}, buf.Events())
	assert.Equal(t, board.Matrix(), p.Matrix())

	board.ReleaseKeys()
	host.Pass()
	assert.Equal(t, StatusComplete, p.Scan(&buf))
	assert.Zero(t, buf.Len())
	assert.True(t, p.Matrix().IsReleased())

	st := p.Stats()
	assert.Equal(t, uint32(1), st.Released)
	assert.Equal(t, uint32(matrix.Rows), st.Rows)
	assert.Equal(t, uint32(2), st.Discarded)
	assert.Zero(t, st.Dropped)
}

func TestPassive_LoopDrains(t *testing.T) {
	board := sim.NewBoard()
	host := sim.NewHost(board)
	p := newPassive(t, host)

	require.NoError(t, board.Press(6, 1))
	host.Pass()
	p.Loop()
	assert.True(t, p.Matrix().Pressed(6, 1))

	var buf matrix.Buffer
	assert.Equal(t, StatusComplete, p.Scan(&buf))
	assert.Equal(t, matrix.ASCII('*'), buf.At(0).Key)
}

func TestPassive_Overflow(t *testing.T) {
	board := sim.NewBoard()
	host := sim.NewHost(board)
	p := newPassive(t, host)

	require.NoError(t, board.Press(1, 2))
	const passes = 5
	for i := 0; i < passes; i++ {
		host.Pass()
	}
	perPass := 1 + matrix.Rows

	var buf matrix.Buffer
	assert.Equal(t, StatusComplete, p.Scan(&buf))
	require.Equal(t, 1, buf.Len())
	assert.Equal(t, matrix.ASCII('a'), buf.At(0).Key)

	st := p.Stats()
	assert.Equal(t, uint32(passes*perPass-ring.Capacity), st.Dropped)
	assert.Equal(t, uint32(ring.Capacity), st.Rows+st.Discarded+st.Released)
}

func TestPassive_End(t *testing.T) {
	board := sim.NewBoard()
	host := sim.NewHost(board)
	p := NewPassive(host.RowPort(), host.ColPort(), host.Interrupt(), keymap.NewMapper(keymap.C16))
	require.NoError(t, p.Begin())
	host.Pass()
	require.NotZero(t, p.samples.Available())
	require.NoError(t, p.End())
	assert.Zero(t, p.samples.Available(), "queued samples discarded")

	require.NoError(t, board.Press(1, 2))
	host.Pass()
	assert.Zero(t, p.Stats().Rows)

	// The interrupt is free for a new scanner.
	require.NoError(t, p.Begin())
	require.NoError(t, p.End())
}

func TestPassive_ConcurrentHost(t *testing.T) {
	board := sim.NewBoard()
	host := sim.NewHost(board)
	p := newPassive(t, host)
	require.NoError(t, board.Press(4, 3))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = host.Run(ctx, 100*time.Microsecond)
	}()
	defer func() {
		cancel()
		<-done
	}()

	var buf matrix.Buffer
	assert.Eventually(t, func() bool {
		st := p.Scan(&buf)
		if st != StatusComplete && st != StatusInProgress {
			t.Errorf("unexpected status %v", st)
		}
		return st == StatusComplete && buf.Len() == 1 && buf.At(0).Key == matrix.ASCII('0')
	}, 2*time.Second, time.Millisecond)
}
