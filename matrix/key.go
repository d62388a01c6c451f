package matrix

import "fmt"

// Key is a semantic key code.
//
// When ASCIIFlag is set, the low byte is a character (symbolic layouts);
// otherwise the value is a USB HID keyboard usage ID (positional layouts and
// non-printing keys). The zero Key marks an unmapped cell.
type Key uint16

// ASCIIFlag marks a Key carrying a character rather than a usage ID.
const ASCIIFlag Key = 1 << 15

// ASCII returns the Key for character c.
func ASCII(c byte) Key {
	return Key(c) | ASCIIFlag
}

// IsASCII reports whether k carries a character.
func (k Key) IsASCII() bool {
	return k&ASCIIFlag != 0
}

// Char returns the character carried by k. It is only meaningful when
// IsASCII reports true.
func (k Key) Char() byte {
	return byte(k)
}

// Usage returns the HID usage ID of a non-character key.
func (k Key) Usage() uint8 {
	return uint8(k)
}

// String returns a short diagnostic form: 'c' for characters and 0xNN for
// usage IDs.
func (k Key) String() string {
	if k.IsASCII() {
		c := k.Char()
		if c >= 0x20 && c < 0x7F {
			return fmt.Sprintf("'%c'", c)
		}
		return fmt.Sprintf("'\\x%02x'", c)
	}
	return fmt.Sprintf("0x%02X", uint16(k))
}
