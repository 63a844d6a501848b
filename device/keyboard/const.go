package keyboard

import "fmt"

// Modifier bits of report byte 0.
const (
	ModLeftCtrl   = 0x01
	ModLeftShift  = 0x02
	ModLeftAlt    = 0x04
	ModLeftGUI    = 0x08 // Windows/Command key
	ModRightCtrl  = 0x10
	ModRightShift = 0x20
	ModRightAlt   = 0x40
	ModRightGUI   = 0x80
)

// HID usage codes (Keyboard/Keypad page) used by the default key sets.
// Letters run from KeyA upwards and digits from Key1 upwards.
const (
	KeyA = 0x04
	KeyZ = 0x1D
	Key1 = 0x1E
	Key0 = 0x27

	KeyEnter  = 0x28
	KeyEscape = 0x29
	KeyTab    = 0x2B
	KeySpace  = 0x2C
	KeyMinus  = 0x2D
	KeyEqual  = 0x2E

	KeyF1  = 0x3A
	KeyF12 = 0x45

	KeyRight = 0x4F
	KeyLeft  = 0x50
	KeyDown  = 0x51
	KeyUp    = 0x52

	// Modifier keys. Codes from KeyLeftCtrl up set modifier bits instead of
	// bitmap bits.
	KeyLeftCtrl   = 0xE0
	KeyLeftShift  = 0xE1
	KeyLeftAlt    = 0xE2
	KeyLeftGUI    = 0xE3
	KeyRightCtrl  = 0xE4
	KeyRightShift = 0xE5
	KeyRightAlt   = 0xE6
	KeyRightGUI   = 0xE7
)

const ReportSize = 34

var specialNames = map[uint8]string{
	KeyEnter: "Enter", KeyEscape: "Escape", KeyTab: "Tab", KeySpace: "Space",
	KeyMinus: "Minus", KeyEqual: "Equal",
	KeyRight: "Right", KeyLeft: "Left", KeyDown: "Down", KeyUp: "Up",
	KeyLeftCtrl: "LeftCtrl", KeyLeftShift: "LeftShift", KeyLeftAlt: "LeftAlt", KeyLeftGUI: "LeftGUI",
	KeyRightCtrl: "RightCtrl", KeyRightShift: "RightShift", KeyRightAlt: "RightAlt", KeyRightGUI: "RightGUI",
}

// KeyName returns a readable name for a usage code.
func KeyName(code uint8) string {
	switch {
	case code >= KeyA && code <= KeyZ:
		return string(rune('A' + code - KeyA))
	case code >= Key1 && code < Key0:
		return string(rune('1' + code - Key1))
	case code == Key0:
		return "0"
	case code >= KeyF1 && code <= KeyF12:
		return fmt.Sprintf("F%d", code-KeyF1+1)
	}
	if n, ok := specialNames[code]; ok {
		return n
	}
	return fmt.Sprintf("0x%02X", code)
}
