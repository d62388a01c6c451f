package keymap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ardnew/softmatrix/matrix"
	"github.com/ardnew/softmatrix/pkg"
)

func TestKeyMap_Lookup(t *testing.T) {
	assert.Equal(t, KeyA, C16Positional.Lookup(1, 2))
	assert.Equal(t, KeyNone, C16Positional.Lookup(8, 0))
	assert.Equal(t, KeyNone, C16Positional.Lookup(0, 8))

	e := C16Symbolic.Event(6, 1)
	assert.Equal(t, matrix.KeyEvent{Key: matrix.ASCII('*'), Row: 6, Col: 1}, e)
}

func TestKeyMap_Find(t *testing.T) {
	c, ok := C16Positional.Find(KeyLeftShift)
	require.True(t, ok)
	assert.Equal(t, C16ShiftCell, c)

	_, ok = C16Positional.Find(KeyF12)
	assert.False(t, ok)
}

func TestKeyMap_With(t *testing.T) {
	km := C16Positional.with(0, 0, KeyF12)
	assert.Equal(t, KeyF12, km.Lookup(0, 0))
	assert.Equal(t, KeyBackspace, C16Positional.Lookup(0, 0), "source table unchanged")
}

func TestLayout_Validate(t *testing.T) {
	tests := []struct {
		name    string
		layout  Layout
		wantErr bool
	}{
		{"c16", C16, false},
		{"no positional", Layout{Name: "x"}, true},
		{"half symbolic", Layout{Name: "x", Positional: &C16Positional, Symbolic: &C16Symbolic}, true},
		{"mode cell outside", Layout{Name: "x", Positional: &C16Positional, ModeCell: Cell{8, 0}}, true},
		{"shift cell outside", Layout{Name: "x", Positional: &C16Positional, ShiftCell: Cell{0, 9}}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.layout.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, pkg.ErrInvalidKeyMap)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestC16Tables(t *testing.T) {
	for _, km := range []*KeyMap{&C16Positional, &C16Symbolic, &C16SymbolicShifted} {
		for row := uint8(0); row < matrix.Rows; row++ {
			for col := uint8(0); col < matrix.Cols; col++ {
				assert.NotEqual(t, KeyNone, km.Lookup(row, col), "cell (%d,%d)", row, col)
			}
		}
	}
	assert.Equal(t, KeyLeftShift, C16Symbolic.Lookup(C16ShiftCell.Row, C16ShiftCell.Col))
	assert.Equal(t, KeyLeftShift, C16SymbolicShifted.Lookup(C16ShiftCell.Row, C16ShiftCell.Col))
	assert.Equal(t, C16KeyCommodore, C16Physical[C16ModeCell.Row][C16ModeCell.Col])
	assert.Equal(t, C16KeyShift, C16Physical[C16ShiftCell.Row][C16ShiftCell.Col])
}

func TestC16Coordinates(t *testing.T) {
	assert.Equal(t, C16Key(matrix.Rows*matrix.Cols), C16KeyCount)
	for k := C16Key(0); k < C16KeyCount; k++ {
		c, ok := Coordinates(k)
		require.True(t, ok)
		assert.Equal(t, k, C16Physical[c.Row][c.Col])
	}
	_, ok := Coordinates(C16KeyNone)
	assert.False(t, ok)
}

func TestKeyName(t *testing.T) {
	tests := []struct {
		key  C16Key
		want string
	}{
		{C16KeyCommodore, "C="},
		{C16KeyPound, "£"},
		{C16KeyRunStop, "RUN"},
		{C16KeyA, "A"},
		{C16Key0, "0"},
		{C16KeyNone, "?"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, KeyName(tt.key))
			assert.Equal(t, tt.want, tt.key.String())
		})
	}
	assert.Equal(t, "SHF", CellName(1, 7))
	assert.Equal(t, "?", CellName(8, 8))
}

func TestNeedsShift(t *testing.T) {
	tests := []struct {
		key  matrix.Key
		want bool
	}{
		{matrix.ASCII('a'), false},
		{matrix.ASCII('A'), true},
		{matrix.ASCII('-'), false},
		{matrix.ASCII('@'), true},
		{matrix.ASCII(':'), true},
		{matrix.ASCII('['), false},
		{matrix.ASCII('!'), true},
		{matrix.ASCII(' '), false},
		{PoundSign, false},
		{KeyF1, false},
		{KeyLeftShift, false},
	}
	for _, tt := range tests {
		t.Run(tt.key.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, NeedsShift(tt.key))
		})
	}
}

func TestEncode(t *testing.T) {
	enc, ok := Encode(matrix.ASCII('?'))
	require.True(t, ok)
	assert.Equal(t, Encoding{KeySlash, true}, enc)

	_, ok = Encode(KeyA)
	assert.False(t, ok)
	_, ok = Encode(matrix.ASCII(0x01))
	assert.False(t, ok)
	_, ok = Encode(EuroSign)
	assert.False(t, ok)
}

func TestDescribe(t *testing.T) {
	assert.Equal(t, "None", Describe(KeyNone))
	assert.Equal(t, "A", Describe(KeyA))
	assert.Equal(t, "0", Describe(Key0))
	assert.Equal(t, "5", Describe(Key5))
	assert.Equal(t, "'q'", Describe(matrix.ASCII('q')))
	assert.True(t, IsModifier(KeyLeftShift))
	assert.False(t, IsModifier(KeyA))
}
