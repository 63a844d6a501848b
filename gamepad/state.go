package gamepad

import (
	"fmt"
	"strings"
)

// Player selects one of the two independent logical controllers.
type Player int

const (
	P1 Player = iota
	P2

	NumPlayers = 2
)

func (p Player) String() string {
	return fmt.Sprintf("p%d", int(p)+1)
}

// State is the canonical snapshot of one player's controls for a single cycle.
type State struct {
	Dpad    uint8
	Buttons uint16
	Aux     uint16
	// Sticks: 0x0000 left/up, 0x8000 center, 0xFFFF right/down
	LX, LY uint16
	RX, RY uint16
	// Analog triggers: 0-255
	LT, RT uint8
}

// Pressed reports whether every bit of mask is held.
func (s *State) Pressed(mask uint16) bool {
	return s.Buttons&mask == mask
}

// PressedDpad reports whether every direction of mask is held.
func (s *State) PressedDpad(mask uint8) bool {
	return s.Dpad&mask == mask
}

func (s *State) centerSticks() {
	s.LX, s.LY = JoystickMid, JoystickMid
	s.RX, s.RY = JoystickMid, JoystickMid
}

// Input identifies a logical input line. Directions map onto the dpad mask,
// everything else onto the button mask.
type Input uint8

const (
	InputUp Input = iota
	InputDown
	InputLeft
	InputRight
	InputB1
	InputB2
	InputB3
	InputB4
	InputL1
	InputR1
	InputL2
	InputR2
	InputS1
	InputS2
	InputL3
	InputR3
	InputA1
	InputA2

	NumInputs = 18
)

var inputNames = [NumInputs]string{
	"up", "down", "left", "right",
	"b1", "b2", "b3", "b4",
	"l1", "r1", "l2", "r2",
	"s1", "s2", "l3", "r3",
	"a1", "a2",
}

var inputMasks = [NumInputs]uint16{
	uint16(MaskUp), uint16(MaskDown), uint16(MaskLeft), uint16(MaskRight),
	MaskB1, MaskB2, MaskB3, MaskB4,
	MaskL1, MaskR1, MaskL2, MaskR2,
	MaskS1, MaskS2, MaskL3, MaskR3,
	MaskA1, MaskA2,
}

// IsDirection reports whether the input drives the dpad.
func (i Input) IsDirection() bool {
	return i <= InputRight
}

// Mask returns the dpad bit for directions and the button bit otherwise.
func (i Input) Mask() uint16 {
	if int(i) >= NumInputs {
		return 0
	}
	return inputMasks[i]
}

func (i Input) String() string {
	if int(i) >= NumInputs {
		return fmt.Sprintf("input(%d)", uint8(i))
	}
	return inputNames[i]
}

// ParseInput resolves a case-insensitive input name such as "up" or "B1".
func ParseInput(s string) (Input, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, n := range inputNames {
		if n == s {
			return Input(i), nil
		}
	}
	return 0, fmt.Errorf("unknown input %q", s)
}

// Inject ORs the input into the state as a press.
func (s *State) Inject(i Input) {
	if i.IsDirection() {
		s.Dpad |= uint8(i.Mask())
	} else {
		s.Buttons |= i.Mask()
	}
}
