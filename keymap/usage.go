package keymap

import (
	"fmt"

	"github.com/ardnew/softmatrix/matrix"
)

// KeyNone is the unmapped-cell sentinel.
const KeyNone matrix.Key = 0x00

// Keyboard usage IDs (USB HID Usage Tables, page 0x07).
const (
	KeyA           matrix.Key = 0x04
	KeyB           matrix.Key = 0x05
	KeyC           matrix.Key = 0x06
	KeyD           matrix.Key = 0x07
	KeyE           matrix.Key = 0x08
	KeyF           matrix.Key = 0x09
	KeyG           matrix.Key = 0x0A
	KeyH           matrix.Key = 0x0B
	KeyI           matrix.Key = 0x0C
	KeyJ           matrix.Key = 0x0D
	KeyK           matrix.Key = 0x0E
	KeyL           matrix.Key = 0x0F
	KeyM           matrix.Key = 0x10
	KeyN           matrix.Key = 0x11
	KeyO           matrix.Key = 0x12
	KeyP           matrix.Key = 0x13
	KeyQ           matrix.Key = 0x14
	KeyR           matrix.Key = 0x15
	KeyS           matrix.Key = 0x16
	KeyT           matrix.Key = 0x17
	KeyU           matrix.Key = 0x18
	KeyV           matrix.Key = 0x19
	KeyW           matrix.Key = 0x1A
	KeyX           matrix.Key = 0x1B
	KeyY           matrix.Key = 0x1C
	KeyZ           matrix.Key = 0x1D
	Key1           matrix.Key = 0x1E
	Key2           matrix.Key = 0x1F
	Key3           matrix.Key = 0x20
	Key4           matrix.Key = 0x21
	Key5           matrix.Key = 0x22
	Key6           matrix.Key = 0x23
	Key7           matrix.Key = 0x24
	Key8           matrix.Key = 0x25
	Key9           matrix.Key = 0x26
	Key0           matrix.Key = 0x27
	KeyEnter       matrix.Key = 0x28
	KeyEscape      matrix.Key = 0x29
	KeyBackspace   matrix.Key = 0x2A
	KeyTab         matrix.Key = 0x2B
	KeySpace       matrix.Key = 0x2C
	KeyMinus       matrix.Key = 0x2D
	KeyEqual       matrix.Key = 0x2E
	KeyLeftBrace   matrix.Key = 0x2F
	KeyRightBrace  matrix.Key = 0x30
	KeyBackslash   matrix.Key = 0x31
	KeySemicolon   matrix.Key = 0x33
	KeyQuote       matrix.Key = 0x34
	KeyGrave       matrix.Key = 0x35
	KeyComma       matrix.Key = 0x36
	KeyDot         matrix.Key = 0x37
	KeySlash       matrix.Key = 0x38
	KeyCapsLock    matrix.Key = 0x39
	KeyF1          matrix.Key = 0x3A
	KeyF2          matrix.Key = 0x3B
	KeyF3          matrix.Key = 0x3C
	KeyF4          matrix.Key = 0x3D
	KeyF5          matrix.Key = 0x3E
	KeyF6          matrix.Key = 0x3F
	KeyF7          matrix.Key = 0x40
	KeyF8          matrix.Key = 0x41
	KeyF9          matrix.Key = 0x42
	KeyF10         matrix.Key = 0x43
	KeyF11         matrix.Key = 0x44
	KeyF12         matrix.Key = 0x45
	KeyPrintScreen matrix.Key = 0x46
	KeyScrollLock  matrix.Key = 0x47
	KeyPause       matrix.Key = 0x48
	KeyInsert      matrix.Key = 0x49
	KeyHome        matrix.Key = 0x4A
	KeyPageUp      matrix.Key = 0x4B
	KeyDelete      matrix.Key = 0x4C
	KeyEnd         matrix.Key = 0x4D
	KeyPageDown    matrix.Key = 0x4E
	KeyRight       matrix.Key = 0x4F
	KeyLeft        matrix.Key = 0x50
	KeyDown        matrix.Key = 0x51
	KeyUp          matrix.Key = 0x52
)

// Modifier usage IDs.
const (
	KeyLeftCtrl   matrix.Key = 0xE0
	KeyLeftShift  matrix.Key = 0xE1
	KeyLeftAlt    matrix.Key = 0xE2
	KeyLeftGUI    matrix.Key = 0xE3
	KeyRightCtrl  matrix.Key = 0xE4
	KeyRightShift matrix.Key = 0xE5
	KeyRightAlt   matrix.Key = 0xE6
	KeyRightGUI   matrix.Key = 0xE7
)

// IsModifier reports whether k is one of the eight modifier usages.
func IsModifier(k matrix.Key) bool {
	return !k.IsASCII() && k >= KeyLeftCtrl && k <= KeyRightGUI
}

// usageNames holds names for the non-printing usages the layouts use.
var usageNames = map[matrix.Key]string{
	KeyEnter:      "Enter",
	KeyEscape:     "Esc",
	KeyBackspace:  "Backspace",
	KeyTab:        "Tab",
	KeySpace:      "Space",
	KeyCapsLock:   "CapsLock",
	KeyF1:         "F1",
	KeyF2:         "F2",
	KeyF3:         "F3",
	KeyF4:         "F4",
	KeyF5:         "F5",
	KeyF6:         "F6",
	KeyF7:         "F7",
	KeyF8:         "F8",
	KeyInsert:     "Insert",
	KeyHome:       "Home",
	KeyDelete:     "Delete",
	KeyRight:      "Right",
	KeyLeft:       "Left",
	KeyDown:       "Down",
	KeyUp:         "Up",
	KeyLeftCtrl:   "LCtrl",
	KeyLeftShift:  "LShift",
	KeyLeftAlt:    "LAlt",
	KeyLeftGUI:    "LGUI",
	KeyRightCtrl:  "RCtrl",
	KeyRightShift: "RShift",
	KeyRightAlt:   "RAlt",
	KeyRightGUI:   "RGUI",
}

// Describe returns a human-readable name for k.
func Describe(k matrix.Key) string {
	switch {
	case k == KeyNone:
		return "None"
	case k.IsASCII():
		return k.String()
	case k >= KeyA && k <= KeyZ:
		return string(rune('A' + (k - KeyA)))
	case k >= Key1 && k <= Key9:
		return string(rune('1' + (k - Key1)))
	case k == Key0:
		return "0"
	}
	if name, ok := usageNames[k]; ok {
		return name
	}
	return fmt.Sprintf("usage(0x%02X)", uint16(k))
}
