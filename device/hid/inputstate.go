package hid

import (
	"encoding/binary"
	"io"
)

// InputState is the generic HID gamepad report.
type InputState struct {
	Buttons uint16
	Hat     uint8
	LX, LY  uint8
	RX, RY  uint8
	// Analog button pressure, unused by the firmware and always zero.
	Pressure [PressureCount]uint8
}

// BuildReport encodes the 19-byte report.
//
//	 0-1: Buttons (little-endian, 14 bits used)
//	 2:   Hat (0-7, 8 neutral)
//	 3-6: LX, LY, RX, RY (0x80 center)
//	 7-18: Button pressure
func (s *InputState) BuildReport() []byte {
	b := make([]byte, ReportSize)
	binary.LittleEndian.PutUint16(b[0:2], s.Buttons)
	b[2] = s.Hat
	b[3] = s.LX
	b[4] = s.LY
	b[5] = s.RX
	b[6] = s.RY
	copy(b[7:], s.Pressure[:])
	return b
}

func (s *InputState) UnmarshalBinary(data []byte) error {
	if len(data) < ReportSize {
		return io.ErrUnexpectedEOF
	}
	s.Buttons = binary.LittleEndian.Uint16(data[0:2])
	s.Hat = data[2]
	s.LX = data[3]
	s.LY = data[4]
	s.RX = data[5]
	s.RY = data[6]
	copy(s.Pressure[:], data[7:ReportSize])
	return nil
}
