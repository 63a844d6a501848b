package device

import "github.com/Alia5/padcore/gamepad"

// Hat switch values shared by the HID class protocols.
const (
	HatUp        uint8 = 0x00
	HatUpRight   uint8 = 0x01
	HatRight     uint8 = 0x02
	HatDownRight uint8 = 0x03
	HatDown      uint8 = 0x04
	HatDownLeft  uint8 = 0x05
	HatLeft      uint8 = 0x06
	HatUpLeft    uint8 = 0x07
	HatNeutral   uint8 = 0x08
)

var hatTable = func() (t [16]uint8) {
	for i := range t {
		t[i] = HatNeutral
	}
	t[gamepad.MaskUp] = HatUp
	t[gamepad.MaskUp|gamepad.MaskRight] = HatUpRight
	t[gamepad.MaskRight] = HatRight
	t[gamepad.MaskDown|gamepad.MaskRight] = HatDownRight
	t[gamepad.MaskDown] = HatDown
	t[gamepad.MaskDown|gamepad.MaskLeft] = HatDownLeft
	t[gamepad.MaskLeft] = HatLeft
	t[gamepad.MaskUp|gamepad.MaskLeft] = HatUpLeft
	return t
}()

// Hat converts a directional mask into an 8-way hat value. Opposing or
// three/four direction masks are neutral.
func Hat(dpad uint8) uint8 {
	return hatTable[dpad&gamepad.MaskDpad]
}

// Axis8 truncates a 16-bit axis to its high byte.
func Axis8(v uint16) uint8 {
	return uint8(v >> 8)
}

// AxisSigned recenters an unsigned axis on zero.
func AxisSigned(v uint16) int16 {
	return int16(v ^ 0x8000)
}

// AxisSignedInverted recenters an axis on zero and flips its direction, for
// protocols where positive Y is up.
func AxisSignedInverted(v uint16) int16 {
	return int16(^v ^ 0x8000)
}
