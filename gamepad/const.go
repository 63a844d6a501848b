package gamepad

// Directional pad bitmasks.
const (
	MaskUp    uint8 = 0x01
	MaskDown  uint8 = 0x02
	MaskLeft  uint8 = 0x04
	MaskRight uint8 = 0x08

	MaskDpad = MaskUp | MaskDown | MaskLeft | MaskRight
)

// Button bitmasks. Names follow the generic layout:
// B1-B4 face buttons (south, east, west, north), L/R shoulders and triggers,
// S1/S2 select/start, L3/R3 stick clicks, A1 home, A2 capture.
const (
	MaskB1 uint16 = 1 << 0
	MaskB2 uint16 = 1 << 1
	MaskB3 uint16 = 1 << 2
	MaskB4 uint16 = 1 << 3
	MaskL1 uint16 = 1 << 4
	MaskR1 uint16 = 1 << 5
	MaskL2 uint16 = 1 << 6
	MaskR2 uint16 = 1 << 7
	MaskS1 uint16 = 1 << 8
	MaskS2 uint16 = 1 << 9
	MaskL3 uint16 = 1 << 10
	MaskR3 uint16 = 1 << 11
	MaskA1 uint16 = 1 << 12
	MaskA2 uint16 = 1 << 13
)

// Aux bits.
const (
	AuxSettings uint16 = 1 << 0
)

// Modifier chords recognised by the hotkey engine.
const (
	ChordF1 = MaskS1 | MaskS2
	ChordF2 = MaskL3 | MaskR3
)

// Joystick range. Axes are unsigned 16-bit with 0 at left/up.
const (
	JoystickMin uint16 = 0x0000
	JoystickMid uint16 = 0x8000
	JoystickMax uint16 = 0xFFFF
)

const (
	// NumBankPins is the number of directly addressable digital pins.
	NumBankPins = 30
	// PinUnassigned marks a mapping without a physical pin.
	PinUnassigned uint8 = 0xFF
)

// DefaultDebounceMS is the debounce window used when the board does not set one.
const DefaultDebounceMS = 5
