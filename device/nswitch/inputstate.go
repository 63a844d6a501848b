package nswitch

import (
	"encoding/binary"
	"io"
)

// InputState is the Switch wired controller report.
type InputState struct {
	Buttons uint16
	Hat     uint8
	LX, LY  uint8
	RX, RY  uint8
	Vendor  uint8
}

// BuildReport encodes the 8-byte report.
//
//	0-1: Buttons (little-endian)
//	2:   Hat (0-7, 8 neutral)
//	3-6: LX, LY, RX, RY (0x80 center)
//	7:   Vendor byte
func (s *InputState) BuildReport() []byte {
	b := make([]byte, ReportSize)
	binary.LittleEndian.PutUint16(b[0:2], s.Buttons)
	b[2] = s.Hat
	b[3] = s.LX
	b[4] = s.LY
	b[5] = s.RX
	b[6] = s.RY
	b[7] = s.Vendor
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
	s.Vendor = data[7]
	return nil
}
