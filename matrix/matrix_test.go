package matrix

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReleased(t *testing.T) {
	m := Released()
	for row := range m {
		assert.Equal(t, RowReleased, m[row], "row %d", row)
	}
	assert.True(t, m.IsReleased())
	assert.Zero(t, m.PressedCount())
}

func TestMatrix_Pressed(t *testing.T) {
	m := Released()
	m.Set(1, 0x7F) // column 7 low
	m.Set(7, 0xDF) // column 5 low

	tests := []struct {
		name     string
		row, col uint8
		want     bool
	}{
		{"shift cell", 1, 7, true},
		{"commodore cell", 7, 5, true},
		{"same row other column", 1, 6, false},
		{"untouched row", 3, 3, false},
		{"row out of range", 8, 0, false},
		{"column out of range", 0, 8, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, m.Pressed(tt.row, tt.col))
		})
	}

	assert.False(t, m.IsReleased())
	assert.Equal(t, 2, m.PressedCount())
}

func TestMatrix_SetOutOfRange(t *testing.T) {
	m := Released()
	m.Set(Rows, 0x00)
	assert.Equal(t, Released(), m)
}

func TestMatrix_Clear(t *testing.T) {
	var m Matrix
	assert.Equal(t, 64, m.PressedCount())
	m.Clear()
	assert.True(t, m.IsReleased())
}

func TestMatrix_String(t *testing.T) {
	m := Released()
	m.Set(0, 0xFE)
	assert.Equal(t,
		"11111110 11111111 11111111 11111111 11111111 11111111 11111111 11111111",
		m.String())
}

func TestKey(t *testing.T) {
	k := ASCII('a')
	assert.True(t, k.IsASCII())
	assert.Equal(t, byte('a'), k.Char())
	assert.Equal(t, "'a'", k.String())

	u := Key(0x3A)
	assert.False(t, u.IsASCII())
	assert.Equal(t, uint8(0x3A), u.Usage())
	assert.Equal(t, "0x3A", u.String())

	assert.Equal(t, `'\xa3'`, ASCII(0xA3).String())
}

func TestMatrix_QueriesOnReturnedValue(t *testing.T) {
	pressed := func() Matrix {
		m := Released()
		m.Set(6, 0xFD)
		return m
	}
	assert.True(t, pressed().Pressed(6, 1))
	assert.False(t, pressed().IsReleased())
	assert.Equal(t, 1, pressed().PressedCount())
	assert.True(t, Released().IsReleased())
}
