package keyboard

import (
	"io"
)

// InputState represents the keyboard state used to build a report.
// Internally uses a 256-bit bitmap for N-key rollover support.
type InputState struct {
	Modifiers uint8     // bit 0-7: LCtrl, LShift, LAlt, LGui, RCtrl, RShift, RAlt, RGui
	KeyBitmap [32]uint8 // 256 bits for HID usage codes 0x00-0xFF
}

// Press asserts a usage code. Modifier keys set their modifier bit, codes
// above the modifier range and code 0 are ignored.
func (st *InputState) Press(code uint8) {
	switch {
	case code == 0:
	case code >= KeyLeftCtrl:
		if code <= KeyRightGUI {
			st.Modifiers |= 1 << (code - KeyLeftCtrl)
		}
	default:
		st.KeyBitmap[code>>3] |= 1 << (code & 7)
	}
}

// Pressed reports whether a non-modifier usage code is set.
func (st *InputState) Pressed(code uint8) bool {
	return st.KeyBitmap[code>>3]&(1<<(code&7)) != 0
}

// Keys returns the set usage codes in ascending order, modifiers last.
func (st *InputState) Keys() []uint8 {
	var keys []uint8
	for i := 0; i < KeyLeftCtrl; i++ {
		if st.Pressed(uint8(i)) {
			keys = append(keys, uint8(i))
		}
	}
	for i := uint8(0); i < 8; i++ {
		if st.Modifiers&(1<<i) != 0 {
			keys = append(keys, KeyLeftCtrl+i)
		}
	}
	return keys
}

// BuildReport encodes an InputState into the 34-byte HID keyboard report.
//
// Report layout (34 bytes):
//
//	Byte 0: Modifiers (8 bits)
//	Byte 1: Reserved (0x00)
//	Bytes 2-33: Key bitmap (256 bits, 32 bytes)
func (st InputState) BuildReport() []byte {
	b := make([]byte, ReportSize)
	b[0] = st.Modifiers
	b[1] = 0x00 // Reserved
	copy(b[2:ReportSize], st.KeyBitmap[:])
	return b
}

// UnmarshalBinary decodes a report built by BuildReport.
func (st *InputState) UnmarshalBinary(data []byte) error {
	if len(data) < ReportSize {
		return io.ErrUnexpectedEOF
	}
	st.Modifiers = data[0]
	copy(st.KeyBitmap[:], data[2:ReportSize])
	return nil
}
