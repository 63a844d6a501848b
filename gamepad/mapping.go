package gamepad

// ButtonMapping ties a physical pin to a logical input.
// Pin and PinMask are always updated together through SetPin.
type ButtonMapping struct {
	Pin        uint8
	PinMask    uint32
	ButtonMask uint16
}

// NewButtonMapping returns a mapping for pin. Pins outside the bank are unassigned.
func NewButtonMapping(pin uint8, buttonMask uint16) ButtonMapping {
	m := ButtonMapping{ButtonMask: buttonMask}
	m.SetPin(pin)
	return m
}

// SetPin reassigns the physical pin.
func (m *ButtonMapping) SetPin(pin uint8) {
	if pin < NumBankPins {
		m.Pin = pin
		m.PinMask = 1 << pin
		return
	}
	m.Pin = PinUnassigned
	m.PinMask = 0
}

// IsAssigned reports whether the mapping has a physical pin.
func (m ButtonMapping) IsAssigned() bool {
	return m.Pin != PinUnassigned
}

// Asserted reports whether the mapping's pin is set in values.
// Unassigned mappings are never asserted.
func (m ButtonMapping) Asserted(values uint32) bool {
	return values&m.PinMask != 0
}

// Mappings is the arena of pin mappings for both players, indexed by Input.
type Mappings [NumPlayers][NumInputs]ButtonMapping

// NewMappings builds the arena from pin assignments.
func NewMappings(pins [NumPlayers][NumInputs]uint8) Mappings {
	var m Mappings
	for p := range m {
		for i := range m[p] {
			m[p][i] = NewButtonMapping(pins[p][i], Input(i).Mask())
		}
	}
	return m
}

// UnassignedPins returns an assignment table with every pin unassigned.
func UnassignedPins() [NumPlayers][NumInputs]uint8 {
	var pins [NumPlayers][NumInputs]uint8
	for p := range pins {
		for i := range pins[p] {
			pins[p][i] = PinUnassigned
		}
	}
	return pins
}
