package keymap

import (
	"github.com/ardnew/softmatrix/matrix"
	"github.com/ardnew/softmatrix/pkg"
)

// ShiftExempt lists the keys that are read together with Shift on the host
// and never cause a held Shift to be dropped.
var ShiftExempt = [...]matrix.Key{
	KeyLeftShift,
	KeyLeftCtrl,
	KeyLeftAlt,
	KeyUp,
	KeyDown,
	KeyLeft,
	KeyRight,
	KeyHome,
	KeyTab,
	KeyEscape,
}

// FunctionKeys lists the keys whose shifted meaning lives in the symbolic
// table itself. Pressing one with Shift drops Shift and reports the
// unshifted cell.
var FunctionKeys = [...]matrix.Key{
	KeyF1, KeyF2, KeyF3, KeyF4, KeyF5, KeyF6, KeyF7, KeyF8,
}

func isShiftExempt(k matrix.Key) bool {
	for _, e := range ShiftExempt {
		if k == e {
			return true
		}
	}
	return false
}

func isFunctionKey(k matrix.Key) bool {
	for _, f := range FunctionKeys {
		if k == f {
			return true
		}
	}
	return false
}

// suppressShift removes Left-Shift from buf when another key in buf would be
// misread by the host with Shift held. Function-key events are rewritten to
// their identity in unshifted. It reports whether Shift was removed.
func suppressShift(buf *matrix.Buffer, unshifted *KeyMap) bool {
	if buf.Len() < 2 || !buf.Has(KeyLeftShift) {
		return false
	}

	var trigger matrix.Key
	function := false
	for _, ev := range buf.Events() {
		switch {
		case isShiftExempt(ev.Key):
			continue
		case isFunctionKey(ev.Key):
			function = true
		case NeedsShift(ev.Key):
			continue
		}
		if trigger == KeyNone {
			trigger = ev.Key
		}
	}
	if trigger == KeyNone {
		return false
	}

	buf.Remove(KeyLeftShift)
	if function && unshifted != nil {
		for i := 0; i < buf.Len(); i++ {
			ev := buf.At(i)
			if !isFunctionKey(ev.Key) {
				continue
			}
			if k := unshifted.Lookup(ev.Row, ev.Col); k != KeyNone {
				buf.SetKey(i, k)
			}
		}
	}
	pkg.LogDebug(pkg.ComponentMapper, "shift suppressed", "trigger", trigger)
	return true
}
