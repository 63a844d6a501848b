package ps4

import (
	"encoding/binary"
	"io"

	"github.com/Alia5/padcore/device"
)

var _ device.ReportBuilder = (*InputState)(nil)

// InputState is the PS4 controller input report.
type InputState struct {
	LX, LY    uint8
	RX, RY    uint8
	Buttons   uint16
	Hat       uint8
	L2, R2    uint8
	Counter   uint8
	Timestamp uint16
	Battery   uint8

	Touch1Active bool
	Touch2Active bool
}

// BuildReport encodes the 64-byte USB input report.
//
//	 0:     Report ID (0x01)
//	 1-4:   LX, LY, RX, RY (0x80 center)
//	 5:     Hat (low nibble) | square, cross, circle, triangle
//	 6:     L1, R1, L2, R2, share, options, L3, R3
//	 7:     PS | touchpad click | 6-bit counter << 2
//	 8-9:   L2, R2 analog
//	 10-11: Timestamp (little-endian)
//	 30:    Battery
//	 35:    Touch 1 counter, 0x80 when not touching
//	 39:    Touch 2 counter, 0x80 when not touching
func (s *InputState) BuildReport() []byte {
	b := make([]byte, InputReportSize)
	b[0] = ReportIDInput

	b[offsetSticks] = s.LX
	b[offsetSticks+1] = s.LY
	b[offsetSticks+2] = s.RX
	b[offsetSticks+3] = s.RY

	b[offsetButtons] = (s.Hat & DPadMask) | (uint8(s.Buttons) & 0xF0)
	b[offsetButtons+1] = uint8(s.Buttons >> 8)

	special := uint8(0)
	if s.Buttons&ButtonPS != 0 {
		special |= ButtonPSUSB
	}
	if s.Buttons&ButtonTouchpadClick != 0 {
		special |= ButtonTouchpadClickUSB
	}
	b[offsetSpecial] = special | (s.Counter&CounterMax)<<CounterShift

	b[offsetTriggers] = s.L2
	b[offsetTriggers+1] = s.R2
	binary.LittleEndian.PutUint16(b[offsetTimestamp:offsetTimestamp+2], s.Timestamp)

	b[offsetBattery] = s.Battery
	if !s.Touch1Active {
		b[offsetTouch1] = TouchInactiveMask
	}
	if !s.Touch2Active {
		b[offsetTouch2] = TouchInactiveMask
	}
	return b
}

// UnmarshalBinary decodes a report built by BuildReport.
func (s *InputState) UnmarshalBinary(data []byte) error {
	if len(data) < InputReportSize {
		return io.ErrUnexpectedEOF
	}
	s.LX = data[offsetSticks]
	s.LY = data[offsetSticks+1]
	s.RX = data[offsetSticks+2]
	s.RY = data[offsetSticks+3]
	s.Hat = data[offsetButtons] & DPadMask
	s.Buttons = uint16(data[offsetButtons]&0xF0) | uint16(data[offsetButtons+1])<<8
	if data[offsetSpecial]&ButtonPSUSB != 0 {
		s.Buttons |= ButtonPS
	}
	if data[offsetSpecial]&ButtonTouchpadClickUSB != 0 {
		s.Buttons |= ButtonTouchpadClick
	}
	s.Counter = (data[offsetSpecial] & CounterMask) >> CounterShift
	s.L2 = data[offsetTriggers]
	s.R2 = data[offsetTriggers+1]
	s.Timestamp = binary.LittleEndian.Uint16(data[offsetTimestamp : offsetTimestamp+2])
	s.Battery = data[offsetBattery]
	s.Touch1Active = data[offsetTouch1]&TouchInactiveMask == 0
	s.Touch2Active = data[offsetTouch2]&TouchInactiveMask == 0
	return nil
}
