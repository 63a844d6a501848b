package gamepad

import (
	"encoding/binary"
	"hash/crc32"
	"io"
)

// OptionsSize is the encoded size of an Options record.
const OptionsSize = 61

// NumHotkeys is the number of chord bindings: four directions for F1 and F2 each.
const NumHotkeys = 8

// Hotkey slots, F1 first.
const (
	HotkeyF1Up = iota
	HotkeyF1Down
	HotkeyF1Left
	HotkeyF1Right
	HotkeyF2Up
	HotkeyF2Down
	HotkeyF2Left
	HotkeyF2Right
)

// HotkeyEntry binds an exact directional mask to an action.
type HotkeyEntry struct {
	DpadMask uint8
	Action   HotkeyAction
}

// Options is the persisted gamepad configuration.
type Options struct {
	InputMode InputMode
	DpadMode  DpadMode
	SOCDMode  SOCDMode
	InvertX   bool
	InvertY   bool
	// Keyboard codes per player, indexed by Input. 0 is unmapped.
	Keys     [NumPlayers][NumInputs]uint8
	Hotkeys  [NumHotkeys]HotkeyEntry
	Checksum uint32
}

// DefaultOptions returns the built-in configuration used on first boot and
// after an integrity failure.
func DefaultOptions() Options {
	o := Options{
		InputMode: InputModeXInput,
		DpadMode:  DpadModeDigital,
		SOCDMode:  SOCDNeutral,
		Keys: [NumPlayers][NumInputs]uint8{
			// arrows, lshift z lctrl lalt, c space v x, 5 1 = -, 9 f2
			{0x52, 0x51, 0x50, 0x4F, 0xE1, 0x1D, 0xE0, 0xE2, 0x06, 0x2C, 0x19, 0x1B, 0x22, 0x1E, 0x2E, 0x2D, 0x26, 0x3B},
			// r f d g, a s q w, e t y u, 6 2 o p, 0 f3
			{0x15, 0x09, 0x07, 0x0A, 0x04, 0x16, 0x14, 0x1A, 0x08, 0x17, 0x1C, 0x18, 0x23, 0x1F, 0x12, 0x13, 0x27, 0x3C},
		},
		Hotkeys: [NumHotkeys]HotkeyEntry{
			HotkeyF1Up:    {MaskUp, HotkeyHomeButton},
			HotkeyF1Down:  {MaskDown, HotkeyDpadDigital},
			HotkeyF1Left:  {MaskLeft, HotkeyDpadLeftAnalog},
			HotkeyF1Right: {MaskRight, HotkeyDpadRightAnalog},
			HotkeyF2Up:    {MaskUp, HotkeySOCDUpPriority},
			HotkeyF2Down:  {MaskDown, HotkeySOCDNeutral},
			HotkeyF2Left:  {MaskLeft, HotkeySOCDLastInput},
			HotkeyF2Right: {MaskRight, HotkeyInvertY},
		},
	}
	o.Checksum = o.ComputeChecksum()
	return o
}

// MarshalBinary encodes the record.
//
// Layout (61 bytes, little-endian):
//
//	Byte 0:      Input mode
//	Byte 1:      Dpad mode
//	Byte 2:      SOCD mode
//	Byte 3:      Invert X (0/1)
//	Byte 4:      Invert Y (0/1)
//	Bytes 5-22:  Player 1 key codes (Input order)
//	Bytes 23-40: Player 2 key codes
//	Bytes 41-56: Hotkeys, 8 x (dpad mask, action)
//	Bytes 57-60: Checksum (uint32)
func (o Options) MarshalBinary() ([]byte, error) {
	return o.encode(), nil
}

func (o Options) encode() []byte {
	b := make([]byte, OptionsSize)
	b[0] = uint8(o.InputMode)
	b[1] = uint8(o.DpadMode)
	b[2] = uint8(o.SOCDMode)
	b[3] = boolByte(o.InvertX)
	b[4] = boolByte(o.InvertY)
	copy(b[5:23], o.Keys[P1][:])
	copy(b[23:41], o.Keys[P2][:])
	for i, h := range o.Hotkeys {
		b[41+2*i] = h.DpadMask
		b[42+2*i] = uint8(h.Action)
	}
	binary.LittleEndian.PutUint32(b[57:61], o.Checksum)
	return b
}

// UnmarshalBinary decodes a record produced by MarshalBinary. The checksum
// is copied, not verified.
func (o *Options) UnmarshalBinary(data []byte) error {
	if len(data) < OptionsSize {
		return io.ErrUnexpectedEOF
	}
	o.InputMode = InputMode(data[0])
	o.DpadMode = DpadMode(data[1])
	o.SOCDMode = SOCDMode(data[2])
	o.InvertX = data[3] != 0
	o.InvertY = data[4] != 0
	copy(o.Keys[P1][:], data[5:23])
	copy(o.Keys[P2][:], data[23:41])
	for i := range o.Hotkeys {
		o.Hotkeys[i] = HotkeyEntry{DpadMask: data[41+2*i], Action: HotkeyAction(data[42+2*i])}
	}
	o.Checksum = binary.LittleEndian.Uint32(data[57:61])
	return nil
}

// ComputeChecksum returns the CRC32 (IEEE) of the record with the checksum
// field zeroed.
func (o Options) ComputeChecksum() uint32 {
	o.Checksum = 0
	return crc32.ChecksumIEEE(o.encode())
}

// Valid reports whether the stored checksum matches the content.
func (o Options) Valid() bool {
	return o.Checksum == o.ComputeChecksum()
}

// Equal compares content, ignoring the checksum.
func (o Options) Equal(other Options) bool {
	o.Checksum, other.Checksum = 0, 0
	return o == other
}

func boolByte(v bool) byte {
	if v {
		return 1
	}
	return 0
}
