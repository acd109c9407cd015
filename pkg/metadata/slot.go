package metadata

import "strings"

// Slot is a fixed component position on a station (table-type
// container): monitor, keyboard, mouse, pc unit, desk.
type Slot string

const (
	SlotMonitor  Slot = "monitor"
	SlotKeyboard Slot = "keyboard"
	SlotMouse    Slot = "mouse"
	SlotPC       Slot = "pc"
	SlotDesk     Slot = "desk"
	SlotNone     Slot = ""
)

// slotAliases is the total mapping from legacy item type strings to
// station slots. Matching is exact on the lower-cased type; anything
// not listed classifies as SlotNone. Kept as a compatibility shim for
// data written before Category replaced Type.
var slotAliases = map[string]Slot{
	"monitor":       SlotMonitor,
	"screen":        SlotMonitor,
	"display":       SlotMonitor,
	"keyboard":      SlotKeyboard,
	"keypad":        SlotKeyboard,
	"mouse":         SlotMouse,
	"trackpad":      SlotMouse,
	"pc":            SlotPC,
	"computer":      SlotPC,
	"desktop":       SlotPC,
	"tower":         SlotPC,
	"pc unit":       SlotPC,
	"desk":          SlotDesk,
	"table":         SlotDesk,
	"physical desk": SlotDesk,
	"workstation":   SlotDesk,
}

// ClassifySlot maps an item type to its station slot.
func ClassifySlot(itemType string) Slot {
	return slotAliases[strings.ToLower(itemType)]
}
