package keymap

import "github.com/ardnew/softmatrix/matrix"

// ch is shorthand for an ASCII-encoded symbolic key.
func ch(c byte) matrix.Key { return matrix.ASCII(c) }

// Currency glyphs in Latin-1. They are above the 7-bit range and never need
// Shift.
var (
	PoundSign = matrix.ASCII(0xA3)
	EuroSign  = matrix.ASCII(0xA4)
)

// C16 mode and shift cells.
var (
	C16ModeCell  = Cell{Row: 7, Col: 5} // C=
	C16ShiftCell = Cell{Row: 1, Col: 7} // SHIFT
)

// C16Positional maps each Commodore 16 key to the US key in the same place.
var C16Positional = KeyMap{
	{KeyBackspace, KeyEnter, KeyEqual, KeyF8, KeyF1, KeyF2, KeyF3, KeyLeftBrace},
	{Key3, KeyW, KeyA, Key4, KeyZ, KeyS, KeyE, KeyLeftShift},
	{Key5, KeyR, KeyD, Key6, KeyC, KeyF, KeyT, KeyX},
	{Key7, KeyY, KeyG, Key8, KeyB, KeyH, KeyU, KeyV},
	{Key9, KeyI, KeyJ, Key0, KeyM, KeyK, KeyO, KeyN},
	{KeyDown, KeyP, KeyL, KeyUp, KeyDot, KeySemicolon, KeyMinus, KeyComma},
	{KeyLeft, KeyBackslash, KeyQuote, KeyRight, KeyGrave, KeyInsert, KeyRightBrace, KeySlash},
	{Key1, KeyHome, KeyTab, Key2, KeySpace, KeyLeftCtrl, KeyQ, KeyEscape},
}

// C16Symbolic is what the keycaps print with Shift released.
var C16Symbolic = KeyMap{
	{KeyBackspace, KeyEnter, PoundSign, KeyF8, KeyF1, KeyF2, KeyF3, ch('@')},
	{ch('3'), ch('w'), ch('a'), ch('4'), ch('z'), ch('s'), ch('e'), KeyLeftShift},
	{ch('5'), ch('r'), ch('d'), ch('6'), ch('c'), ch('f'), ch('t'), ch('x')},
	{ch('7'), ch('y'), ch('g'), ch('8'), ch('b'), ch('h'), ch('u'), ch('v')},
	{ch('9'), ch('i'), ch('j'), ch('0'), ch('m'), ch('k'), ch('o'), ch('n')},
	{KeyDown, ch('p'), ch('l'), KeyUp, ch('.'), ch(':'), ch('-'), ch(',')},
	{KeyLeft, ch('*'), ch(';'), KeyRight, KeyEscape, ch('='), ch('+'), ch('/')},
	{ch('1'), KeyHome, KeyLeftCtrl, ch('2'), ch(' '), KeyLeftAlt, ch('q'), KeyTab},
}

// C16SymbolicShifted is what the keycaps print with Shift held.
var C16SymbolicShifted = KeyMap{
	{KeyInsert, KeyEnter, PoundSign, KeyF7, KeyF4, KeyF5, KeyF6, ch('@')},
	{ch('#'), ch('W'), ch('A'), ch('$'), ch('Z'), ch('S'), ch('E'), KeyLeftShift},
	{ch('%'), ch('R'), ch('D'), ch('&'), ch('C'), ch('F'), ch('T'), ch('X')},
	{ch('\''), ch('Y'), ch('G'), ch('('), ch('B'), ch('H'), ch('U'), ch('V')},
	{ch(')'), ch('I'), ch('J'), ch('^'), ch('M'), ch('K'), ch('O'), ch('N')},
	{KeyDown, ch('P'), ch('L'), KeyUp, ch('>'), ch('['), ch('-'), ch('<')},
	{KeyLeft, ch('*'), ch(']'), KeyRight, KeyEscape, ch('='), ch('+'), ch('?')},
	{ch('!'), KeyHome, KeyLeftCtrl, ch('"'), ch(' '), KeyLeftAlt, ch('Q'), KeyTab},
}

// C16 is the Commodore 16 / Plus4 layout.
var C16 = Layout{
	Name:            "c16",
	Positional:      &C16Positional,
	Symbolic:        &C16Symbolic,
	SymbolicShifted: &C16SymbolicShifted,
	ModeCell:        C16ModeCell,
	ShiftCell:       C16ShiftCell,
}

// C16Key identifies a physical key on the Commodore 16 keyboard.
type C16Key uint8

const (
	C16Key0 C16Key = iota
	C16Key1
	C16Key2
	C16Key3
	C16Key4
	C16Key5
	C16Key6
	C16Key7
	C16Key8
	C16Key9
	C16KeyA
	C16KeyB
	C16KeyC
	C16KeyD
	C16KeyE
	C16KeyF
	C16KeyG
	C16KeyH
	C16KeyI
	C16KeyJ
	C16KeyK
	C16KeyL
	C16KeyM
	C16KeyN
	C16KeyO
	C16KeyP
	C16KeyQ
	C16KeyR
	C16KeyS
	C16KeyT
	C16KeyU
	C16KeyV
	C16KeyW
	C16KeyX
	C16KeyY
	C16KeyZ
	C16KeyF1
	C16KeyF2
	C16KeyF3
	C16KeyHelp
	C16KeyUp
	C16KeyDown
	C16KeyLeft
	C16KeyRight
	C16KeyAsterisk
	C16KeyAt
	C16KeyClear
	C16KeyCommodore
	C16KeyColon
	C16KeyComma
	C16KeyCtrl
	C16KeyDel
	C16KeyReturn
	C16KeyEqual
	C16KeyEsc
	C16KeyMinus
	C16KeyPeriod
	C16KeyPlus
	C16KeyPound
	C16KeyRunStop
	C16KeySemicolon
	C16KeyShift
	C16KeySlash
	C16KeySpace

	C16KeyCount = C16KeySpace + 1

	C16KeyNone C16Key = 0xFF
)

// C16Physical maps each matrix cell to the key wired there.
var C16Physical = [matrix.Rows][matrix.Cols]C16Key{
	{C16KeyDel, C16KeyReturn, C16KeyPound, C16KeyHelp, C16KeyF1, C16KeyF2, C16KeyF3, C16KeyAt},
	{C16Key3, C16KeyW, C16KeyA, C16Key4, C16KeyZ, C16KeyS, C16KeyE, C16KeyShift},
	{C16Key5, C16KeyR, C16KeyD, C16Key6, C16KeyC, C16KeyF, C16KeyT, C16KeyX},
	{C16Key7, C16KeyY, C16KeyG, C16Key8, C16KeyB, C16KeyH, C16KeyU, C16KeyV},
	{C16Key9, C16KeyI, C16KeyJ, C16Key0, C16KeyM, C16KeyK, C16KeyO, C16KeyN},
	{C16KeyDown, C16KeyP, C16KeyL, C16KeyUp, C16KeyPeriod, C16KeyColon, C16KeyMinus, C16KeyComma},
	{C16KeyLeft, C16KeyAsterisk, C16KeySemicolon, C16KeyRight, C16KeyEsc, C16KeyEqual, C16KeyPlus, C16KeySlash},
	{C16Key1, C16KeyClear, C16KeyCtrl, C16Key2, C16KeySpace, C16KeyCommodore, C16KeyQ, C16KeyRunStop},
}

var c16Names = [matrix.Rows][matrix.Cols]string{
	{"DEL", "RET", "£", "HLP", "F1", "F2", "F3", "@"},
	{"3", "W", "A", "4", "Z", "S", "E", "SHF"},
	{"5", "R", "D", "6", "C", "F", "T", "X"},
	{"7", "Y", "G", "8", "B", "H", "U", "V"},
	{"9", "I", "J", "0", "M", "K", "O", "N"},
	{"DN", "P", "L", "UP", ".", ":", "-", ","},
	{"LF", "*", ";", "RT", "ESC", "=", "+", "/"},
	{"1", "CLR", "CTL", "2", "SPC", "C=", "Q", "RUN"},
}

// c16Cells is the inverse of C16Physical.
var c16Cells = func() (cells [C16KeyCount]Cell) {
	var seen [C16KeyCount]bool
	for row := uint8(0); row < matrix.Rows; row++ {
		for col := uint8(0); col < matrix.Cols; col++ {
			k := C16Physical[row][col]
			if k >= C16KeyCount || seen[k] {
				panic("keymap: C16Physical is not a permutation")
			}
			seen[k] = true
			cells[k] = Cell{row, col}
		}
	}
	return cells
}()

// Coordinates returns the matrix cell of a physical key.
func Coordinates(k C16Key) (Cell, bool) {
	if k >= C16KeyCount {
		return Cell{}, false
	}
	return c16Cells[k], true
}

// KeyName returns the short label printed for k in debug output.
func KeyName(k C16Key) string {
	c, ok := Coordinates(k)
	if !ok {
		return "?"
	}
	return c16Names[c.Row][c.Col]
}

// CellName returns the label of the key wired at (row, col).
func CellName(row, col uint8) string {
	if row >= matrix.Rows || col >= matrix.Cols {
		return "?"
	}
	return c16Names[row][col]
}

// String implements fmt.Stringer.
func (k C16Key) String() string { return KeyName(k) }
