// Package keymap translates matrix cells into semantic keys.
//
// # Tables
//
// A [Layout] holds up to three [KeyMap] tables. The positional table reports
// the US key found at the same place on a PC keyboard. The symbolic tables
// report what is printed on the keycap, as a character ([matrix.ASCII]) where
// one exists and as a HID usage ID otherwise; the shifted table applies while
// the layout's Shift cell is held. [C16] is the Commodore 16 / Plus4 layout.
//
// # Modes
//
// [Mapper.Begin] inspects the matrix once. If the layout's mode cell (C= on
// the C16) is held, the mapper runs positional for its lifetime, otherwise
// symbolic. [WithMode] fixes the mode from configuration.
//
// # Shift Suppression
//
// Many C16 symbols sit on different keys than on a US keyboard: Shift with
// ':' prints '[' on the C16, which a US host types without Shift. When Shift is held together with another key, the mapper drops Shift from
// the events if any non-exempt key would be typed without Shift on a US
// host (see [ASCII]). Keys in [ShiftExempt] are normally combined with Shift
// and never trigger removal. Keys in [FunctionKeys] always trigger removal
// and are reported with their unshifted identity.
//
// # Physical Keys
//
// [C16Key] names the physical switches independently of any table, and
// [Coordinates] locates them in the matrix.
package keymap
