package matrix

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ardnew/softmatrix/pkg"
)

// fill appends n events with distinct keys and cells.
func fill(t *testing.T, b *Buffer, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		require.NoError(t, b.Append(KeyEvent{Key: Key(0x04 + i), Row: uint8(i), Col: uint8(i)}))
	}
}

func TestBuffer_Append(t *testing.T) {
	var b Buffer
	assert.Zero(t, b.Len())
	assert.False(t, b.Full())

	fill(t, &b, BufferSize)
	assert.Equal(t, BufferSize, b.Len())
	assert.True(t, b.Full())

	for i, e := range b.Events() {
		assert.Equal(t, Key(0x04+i), e.Key, "insertion order")
	}
}

func TestBuffer_AppendFull(t *testing.T) {
	var b Buffer
	fill(t, &b, BufferSize)
	before := b

	err := b.Append(KeyEvent{Key: 0x30, Row: 7, Col: 7})
	assert.ErrorIs(t, err, pkg.ErrBufferFull)
	assert.Equal(t, before, b, "full buffer must not change")
	assert.LessOrEqual(t, b.Len(), BufferSize)
}

func TestBuffer_AppendDuplicateCell(t *testing.T) {
	var b Buffer
	require.NoError(t, b.Append(KeyEvent{Key: 0x04, Row: 2, Col: 3}))

	err := b.Append(KeyEvent{Key: 0x05, Row: 2, Col: 3})
	assert.ErrorIs(t, err, pkg.ErrDuplicateEvent)
	assert.Equal(t, 1, b.Len())

	// Same key from another cell is a distinct event.
	assert.NoError(t, b.Append(KeyEvent{Key: 0x04, Row: 2, Col: 4}))
}

func TestBuffer_Find(t *testing.T) {
	var b Buffer
	fill(t, &b, 3)

	assert.Equal(t, 0, b.Find(0x04))
	assert.Equal(t, 2, b.Find(0x06))
	assert.Equal(t, -1, b.Find(0x07))
	assert.True(t, b.Has(0x05))
	assert.False(t, b.Has(0x99))

	idx := b.FindFunc(func(e KeyEvent) bool { return e.Row == 1 })
	assert.Equal(t, 1, idx)
	assert.True(t, b.Contains(2, 2))
	assert.False(t, b.Contains(2, 3))
}

func TestBuffer_Remove(t *testing.T) {
	tests := []struct {
		name   string
		remove Key
		want   []Key
		found  bool
	}{
		{"first", 0x04, []Key{0x05, 0x06, 0x07}, true},
		{"middle", 0x05, []Key{0x04, 0x06, 0x07}, true},
		{"last", 0x07, []Key{0x04, 0x05, 0x06}, true},
		{"missing", 0x30, []Key{0x04, 0x05, 0x06, 0x07}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var b Buffer
			fill(t, &b, 4)

			assert.Equal(t, tt.found, b.Remove(tt.remove))

			got := make([]Key, 0, b.Len())
			for _, e := range b.Events() {
				got = append(got, e.Key)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBuffer_RemoveFunc(t *testing.T) {
	var b Buffer
	fill(t, &b, 3)

	ok := b.RemoveFunc(func(e KeyEvent) bool { return e.Col == 1 })
	assert.True(t, ok)
	assert.Equal(t, 2, b.Len())
	assert.Equal(t, KeyEvent{Key: 0x06, Row: 2, Col: 2}, b.At(1))

	assert.False(t, b.RemoveFunc(func(e KeyEvent) bool { return e.Col == 1 }))
}

func TestBuffer_RemoveThenAppend(t *testing.T) {
	var b Buffer
	fill(t, &b, BufferSize)
	require.True(t, b.Remove(0x04))
	assert.NoError(t, b.Append(KeyEvent{Key: 0x30, Row: 7, Col: 0}))
	assert.Equal(t, Key(0x30), b.At(BufferSize-1).Key)
}

func TestBuffer_SetKeyAndEqual(t *testing.T) {
	var a, b Buffer
	fill(t, &a, 2)
	fill(t, &b, 2)
	assert.True(t, a.Equal(&b))

	b.SetKey(1, 0x3A)
	assert.False(t, a.Equal(&b))
	assert.Equal(t, KeyEvent{Key: 0x3A, Row: 1, Col: 1}, b.At(1))

	b.SetKey(5, 0x3B) // ignored
	assert.Equal(t, 2, b.Len())

	b.Reset()
	assert.Zero(t, b.Len())
	assert.False(t, a.Equal(&b))
}

func TestKeyEvent(t *testing.T) {
	e := KeyEvent{Key: ASCII('q'), Row: 7, Col: 6}
	assert.Equal(t, "'q'@(7,6)", e.String())
	assert.True(t, e.SameCell(KeyEvent{Key: 0x14, Row: 7, Col: 6}))
	assert.False(t, e.SameCell(KeyEvent{Key: ASCII('q'), Row: 7, Col: 5}))
}
