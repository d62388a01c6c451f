//go:build linux

package evdev

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	evdev "github.com/gvalkov/golang-evdev"

	"github.com/ardnew/softmatrix/keymap"
	"github.com/ardnew/softmatrix/matrix"
	"github.com/ardnew/softmatrix/pkg"
	"github.com/ardnew/softmatrix/pkg/linux/usbid"
	"github.com/ardnew/softmatrix/scanner/hal/sim"
)

// Key event values reported by the kernel.
const (
	valueRelease = 0
	valuePress   = 1
	valueRepeat  = 2
)

// busUSB is the input_id bus type of USB devices.
const busUSB = 0x03

// usages maps Linux key codes to the HID usages of the same keys.
var usages = map[uint16]matrix.Key{
	evdev.KEY_A: keymap.KeyA, evdev.KEY_B: keymap.KeyB, evdev.KEY_C: keymap.KeyC,
	evdev.KEY_D: keymap.KeyD, evdev.KEY_E: keymap.KeyE, evdev.KEY_F: keymap.KeyF,
	evdev.KEY_G: keymap.KeyG, evdev.KEY_H: keymap.KeyH, evdev.KEY_I: keymap.KeyI,
	evdev.KEY_J: keymap.KeyJ, evdev.KEY_K: keymap.KeyK, evdev.KEY_L: keymap.KeyL,
	evdev.KEY_M: keymap.KeyM, evdev.KEY_N: keymap.KeyN, evdev.KEY_O: keymap.KeyO,
	evdev.KEY_P: keymap.KeyP, evdev.KEY_Q: keymap.KeyQ, evdev.KEY_R: keymap.KeyR,
	evdev.KEY_S: keymap.KeyS, evdev.KEY_T: keymap.KeyT, evdev.KEY_U: keymap.KeyU,
	evdev.KEY_V: keymap.KeyV, evdev.KEY_W: keymap.KeyW, evdev.KEY_X: keymap.KeyX,
	evdev.KEY_Y: keymap.KeyY, evdev.KEY_Z: keymap.KeyZ,

	evdev.KEY_1: keymap.Key1, evdev.KEY_2: keymap.Key2, evdev.KEY_3: keymap.Key3,
	evdev.KEY_4: keymap.Key4, evdev.KEY_5: keymap.Key5, evdev.KEY_6: keymap.Key6,
	evdev.KEY_7: keymap.Key7, evdev.KEY_8: keymap.Key8, evdev.KEY_9: keymap.Key9,
	evdev.KEY_0: keymap.Key0,

	evdev.KEY_ENTER:      keymap.KeyEnter,
	evdev.KEY_ESC:        keymap.KeyEscape,
	evdev.KEY_BACKSPACE:  keymap.KeyBackspace,
	evdev.KEY_TAB:        keymap.KeyTab,
	evdev.KEY_SPACE:      keymap.KeySpace,
	evdev.KEY_MINUS:      keymap.KeyMinus,
	evdev.KEY_EQUAL:      keymap.KeyEqual,
	evdev.KEY_LEFTBRACE:  keymap.KeyLeftBrace,
	evdev.KEY_RIGHTBRACE: keymap.KeyRightBrace,
	evdev.KEY_BACKSLASH:  keymap.KeyBackslash,
	evdev.KEY_SEMICOLON:  keymap.KeySemicolon,
	evdev.KEY_APOSTROPHE: keymap.KeyQuote,
	evdev.KEY_GRAVE:      keymap.KeyGrave,
	evdev.KEY_COMMA:      keymap.KeyComma,
	evdev.KEY_DOT:        keymap.KeyDot,
	evdev.KEY_SLASH:      keymap.KeySlash,

	evdev.KEY_F1: keymap.KeyF1, evdev.KEY_F2: keymap.KeyF2, evdev.KEY_F3: keymap.KeyF3,
	evdev.KEY_F4: keymap.KeyF4, evdev.KEY_F5: keymap.KeyF5, evdev.KEY_F6: keymap.KeyF6,
	evdev.KEY_F7: keymap.KeyF7, evdev.KEY_F8: keymap.KeyF8,

	evdev.KEY_INSERT: keymap.KeyInsert,
	evdev.KEY_HOME:   keymap.KeyHome,
	evdev.KEY_RIGHT:  keymap.KeyRight,
	evdev.KEY_LEFT:   keymap.KeyLeft,
	evdev.KEY_DOWN:   keymap.KeyDown,
	evdev.KEY_UP:     keymap.KeyUp,

	evdev.KEY_LEFTCTRL:   keymap.KeyLeftCtrl,
	evdev.KEY_RIGHTCTRL:  keymap.KeyLeftCtrl,
	evdev.KEY_LEFTSHIFT:  keymap.KeyLeftShift,
	evdev.KEY_RIGHTSHIFT: keymap.KeyLeftShift,
}

// Cell returns the matrix cell that positional places at Linux key code.
func Cell(positional *keymap.KeyMap, code uint16) (keymap.Cell, bool) {
	u, ok := usages[code]
	if !ok {
		return keymap.Cell{}, false
	}
	return positional.Find(u)
}

// Apply updates board for one key event. Repeats are ignored. It reports
// whether the event changed a switch.
func Apply(board *sim.Board, positional *keymap.KeyMap, code uint16, value int32) (bool, error) {
	c, ok := Cell(positional, code)
	if !ok {
		return false, nil
	}
	switch value {
	case valuePress:
		return true, board.Press(c.Row, c.Col)
	case valueRelease:
		return true, board.Release(c.Row, c.Col)
	default:
		return false, nil
	}
}

// Source feeds a Board from an input device.
type Source struct {
	dev        *evdev.InputDevice
	board      *sim.Board
	positional *keymap.KeyMap
}

// Open opens the input device at path. An empty path selects the first
// device that looks like a keyboard.
func Open(path string, board *sim.Board, positional *keymap.KeyMap) (*Source, error) {
	if path == "" {
		found, err := Find()
		if err != nil {
			return nil, err
		}
		path = found
	}
	dev, err := evdev.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", pkg.ErrNoDevice, path)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	args := []any{"path", path, "name", dev.Name, "board", board.ID()}
	if dev.Bustype == busUSB {
		vendor, product := usbid.Lookup(dev.Vendor, dev.Product)
		args = append(args,
			"id", fmt.Sprintf("%04x:%04x", dev.Vendor, dev.Product),
			"vendor", vendor, "product", product)
	}
	pkg.LogInfo(pkg.ComponentHAL, "input device opened", args...)
	return &Source{dev: dev, board: board, positional: positional}, nil
}

// Find returns the path of the first input device whose name mentions a
// keyboard.
func Find() (string, error) {
	devs, err := evdev.ListInputDevices()
	if err != nil {
		return "", fmt.Errorf("list input devices: %w", err)
	}
	for _, d := range devs {
		if strings.Contains(strings.ToLower(d.Name), "keyboard") {
			return d.Fn, nil
		}
	}
	return "", pkg.ErrNoDevice
}

// Name returns the device name reported by the kernel.
func (s *Source) Name() string {
	return s.dev.Name
}

// Run copies key events to the board until ctx is done or the device fails.
// The device is closed when Run returns.
func (s *Source) Run(ctx context.Context) error {
	stop := context.AfterFunc(ctx, func() { _ = s.dev.File.Close() })
	defer func() {
		if stop() {
			_ = s.dev.File.Close()
		}
	}()

	for {
		ev, err := s.dev.ReadOne()
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return fmt.Errorf("read %s: %w", s.dev.Fn, err)
		}
		if ev.Type != evdev.EV_KEY || ev.Value == valueRepeat {
			continue
		}
		changed, err := Apply(s.board, s.positional, ev.Code, ev.Value)
		if err != nil {
			pkg.LogWarn(pkg.ComponentHAL, "dropping key event", "code", ev.Code, "error", err)
			continue
		}
		if changed {
			pkg.LogDebug(pkg.ComponentHAL, "key event", "code", ev.Code, "value", ev.Value)
		}
	}
}
