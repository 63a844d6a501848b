package options

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"hash/crc32"
	"io"

	"github.com/Alia5/padcore/gamepad"
)

// Turbo rate bounds in shots per second.
const (
	TurboShotMin = 2
	TurboShotMax = 30
)

// MixMode decides which wins when a button is both a charge button and
// turbo-enabled.
type MixMode uint8

const (
	MixTurboPriority MixMode = iota
	MixChargePriority
)

// ReverseAction is the per-direction policy of the reverse addon.
type ReverseAction uint8

const (
	ReverseIgnore ReverseAction = iota
	ReverseEnable
	ReverseNeutral
)

// NumChargeButtons is the number of shmup charge buttons.
const NumChargeButtons = 4

// NumExpanderLines is the width of the expander input register.
const NumExpanderLines = 16

// LineUnmapped marks an expander line without a logical input.
const LineUnmapped uint8 = 0xFF

type Turbo struct {
	Enabled   bool
	ButtonPin uint8
	LEDPin    uint8
	ShotCount uint8
	// Analog channel of the rate dial, PinUnassigned if absent.
	DialChannel uint8
	Shmup       bool
	MixMode     MixMode
	// Buttons that are always turbo-enabled in shmup mode.
	AlwaysOn    uint16
	ChargePins  [NumChargeButtons]uint8
	ChargeMasks [NumChargeButtons]uint16
}

type Reverse struct {
	Enabled     bool
	ButtonPin   uint8
	LEDPin      uint8
	ActionUp    ReverseAction
	ActionDown  ReverseAction
	ActionLeft  ReverseAction
	ActionRight ReverseAction
}

// Expander configures one input-expander bridge.
type Expander struct {
	Enabled bool
	Address uint16
	// Interrupt line, only used by the interrupt-aware bridge.
	IntPin    uint8
	ActiveLow bool
	// Lines maps each register bit to a gamepad.Input, LineUnmapped if none.
	Lines [NumExpanderLines]uint8
}

// Input returns the logical input bound to a line.
func (e Expander) Input(line int) (gamepad.Input, bool) {
	v := e.Lines[line]
	if v == LineUnmapped || int(v) >= gamepad.NumInputs {
		return 0, false
	}
	return gamepad.Input(v), true
}

type Wii struct {
	Enabled bool
	Address uint16
}

// Addons is the persisted addon configuration.
type Addons struct {
	Turbo       Turbo
	Reverse     Reverse
	Expander    Expander
	ExpanderInt Expander
	Wii         Wii
	Checksum    uint32
}

// AddonsSize is the encoded size of an Addons record.
var AddonsSize = binary.Size(Addons{})

// DefaultAddons returns every addon disabled with sane pin defaults.
func DefaultAddons() Addons {
	a := Addons{
		Turbo: Turbo{
			ButtonPin:   gamepad.PinUnassigned,
			LEDPin:      gamepad.PinUnassigned,
			ShotCount:   5,
			DialChannel: gamepad.PinUnassigned,
			ChargePins:  [NumChargeButtons]uint8{gamepad.PinUnassigned, gamepad.PinUnassigned, gamepad.PinUnassigned, gamepad.PinUnassigned},
		},
		Reverse: Reverse{
			ButtonPin:   gamepad.PinUnassigned,
			LEDPin:      gamepad.PinUnassigned,
			ActionUp:    ReverseEnable,
			ActionDown:  ReverseEnable,
			ActionLeft:  ReverseEnable,
			ActionRight: ReverseEnable,
		},
		Expander:    defaultExpander(),
		ExpanderInt: defaultExpander(),
		Wii:         Wii{Address: 0x52},
	}
	a.Checksum = a.ComputeChecksum()
	return a
}

func defaultExpander() Expander {
	e := Expander{Address: 0x20, IntPin: gamepad.PinUnassigned, ActiveLow: true}
	for i := range e.Lines {
		e.Lines[i] = LineUnmapped
	}
	return e
}

// MarshalBinary encodes the record little-endian in field order.
func (a Addons) MarshalBinary() ([]byte, error) {
	var buf bytes.Buffer
	buf.Grow(AddonsSize)
	if err := binary.Write(&buf, binary.LittleEndian, a); err != nil {
		return nil, fmt.Errorf("encode addon options: %w", err)
	}
	return buf.Bytes(), nil
}

// UnmarshalBinary decodes a record. The checksum is copied, not verified.
func (a *Addons) UnmarshalBinary(data []byte) error {
	if len(data) < AddonsSize {
		return io.ErrUnexpectedEOF
	}
	if err := binary.Read(bytes.NewReader(data[:AddonsSize]), binary.LittleEndian, a); err != nil {
		return fmt.Errorf("decode addon options: %w", err)
	}
	return nil
}

// ComputeChecksum returns the CRC32 (IEEE) of the record with the checksum
// field zeroed.
func (a Addons) ComputeChecksum() uint32 {
	a.Checksum = 0
	b, err := a.MarshalBinary()
	if err != nil {
		return 0
	}
	return crc32.ChecksumIEEE(b)
}

func (a Addons) Valid() bool {
	return a.Checksum == a.ComputeChecksum()
}

// ClampShotCount bounds a turbo rate to [TurboShotMin, TurboShotMax].
func ClampShotCount(v int) uint8 {
	switch {
	case v < TurboShotMin:
		return TurboShotMin
	case v > TurboShotMax:
		return TurboShotMax
	}
	return uint8(v)
}
