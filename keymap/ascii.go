package keymap

import "github.com/ardnew/softmatrix/matrix"

// Encoding is how a character is typed on a US keyboard: a usage ID and
// whether Shift must be held with it.
type Encoding struct {
	Usage matrix.Key
	Shift bool
}

// ASCII is the US-layout encoding of the 7-bit character set. Characters
// with a zero Usage cannot be typed.
var ASCII = [128]Encoding{
	'\b': {KeyBackspace, false},
	'\t': {KeyTab, false},
	'\n': {KeyEnter, false},
	'\r': {KeyEnter, false},
	0x1B: {KeyEscape, false},
	' ':  {KeySpace, false},
	'!':  {Key1, true},
	'"':  {KeyQuote, true},
	'#':  {Key3, true},
	'$':  {Key4, true},
	'%':  {Key5, true},
	'&':  {Key7, true},
	'\'': {KeyQuote, false},
	'(':  {Key9, true},
	')':  {Key0, true},
	'*':  {Key8, true},
	'+':  {KeyEqual, true},
	',':  {KeyComma, false},
	'-':  {KeyMinus, false},
	'.':  {KeyDot, false},
	'/':  {KeySlash, false},
	'0':  {Key0, false},
	'1':  {Key1, false},
	'2':  {Key2, false},
	'3':  {Key3, false},
	'4':  {Key4, false},
	'5':  {Key5, false},
	'6':  {Key6, false},
	'7':  {Key7, false},
	'8':  {Key8, false},
	'9':  {Key9, false},
	':':  {KeySemicolon, true},
	';':  {KeySemicolon, false},
	'<':  {KeyComma, true},
	'=':  {KeyEqual, false},
	'>':  {KeyDot, true},
	'?':  {KeySlash, true},
	'@':  {Key2, true},
	'A':  {KeyA, true},
	'B':  {KeyB, true},
	'C':  {KeyC, true},
	'D':  {KeyD, true},
	'E':  {KeyE, true},
	'F':  {KeyF, true},
	'G':  {KeyG, true},
	'H':  {KeyH, true},
	'I':  {KeyI, true},
	'J':  {KeyJ, true},
	'K':  {KeyK, true},
	'L':  {KeyL, true},
	'M':  {KeyM, true},
	'N':  {KeyN, true},
	'O':  {KeyO, true},
	'P':  {KeyP, true},
	'Q':  {KeyQ, true},
	'R':  {KeyR, true},
	'S':  {KeyS, true},
	'T':  {KeyT, true},
	'U':  {KeyU, true},
	'V':  {KeyV, true},
	'W':  {KeyW, true},
	'X':  {KeyX, true},
	'Y':  {KeyY, true},
	'Z':  {KeyZ, true},
	'[':  {KeyLeftBrace, false},
	'\\': {KeyBackslash, false},
	']':  {KeyRightBrace, false},
	'^':  {Key6, true},
	'_':  {KeyMinus, true},
	'`':  {KeyGrave, false},
	'a':  {KeyA, false},
	'b':  {KeyB, false},
	'c':  {KeyC, false},
	'd':  {KeyD, false},
	'e':  {KeyE, false},
	'f':  {KeyF, false},
	'g':  {KeyG, false},
	'h':  {KeyH, false},
	'i':  {KeyI, false},
	'j':  {KeyJ, false},
	'k':  {KeyK, false},
	'l':  {KeyL, false},
	'm':  {KeyM, false},
	'n':  {KeyN, false},
	'o':  {KeyO, false},
	'p':  {KeyP, false},
	'q':  {KeyQ, false},
	'r':  {KeyR, false},
	's':  {KeyS, false},
	't':  {KeyT, false},
	'u':  {KeyU, false},
	'v':  {KeyV, false},
	'w':  {KeyW, false},
	'x':  {KeyX, false},
	'y':  {KeyY, false},
	'z':  {KeyZ, false},
	'{':  {KeyLeftBrace, true},
	'|':  {KeyBackslash, true},
	'}':  {KeyRightBrace, true},
	'~':  {KeyGrave, true},
}

// Encode returns the US-layout encoding of a character key. The second
// result is false for usage keys and for characters with no encoding.
func Encode(k matrix.Key) (Encoding, bool) {
	if !k.IsASCII() {
		return Encoding{}, false
	}
	c := k.Char()
	if c >= byte(len(ASCII)) || ASCII[c].Usage == KeyNone {
		return Encoding{}, false
	}
	return ASCII[c], true
}

// NeedsShift reports whether reproducing k on a US-layout host requires
// Shift. Usage keys and characters outside the table never do.
func NeedsShift(k matrix.Key) bool {
	enc, ok := Encode(k)
	return ok && enc.Shift
}
