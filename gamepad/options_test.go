package gamepad_test

import (
	"encoding/binary"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alia5/padcore/gamepad"
)

func TestDefaultOptions(t *testing.T) {
	o := gamepad.DefaultOptions()
	assert.True(t, o.Valid())
	assert.Equal(t, gamepad.InputModeXInput, o.InputMode)
	assert.Equal(t, gamepad.DpadModeDigital, o.DpadMode)
	assert.Equal(t, gamepad.SOCDNeutral, o.SOCDMode)
	assert.Equal(t, gamepad.HotkeyEntry{DpadMask: gamepad.MaskUp, Action: gamepad.HotkeyHomeButton}, o.Hotkeys[gamepad.HotkeyF1Up])
	assert.Equal(t, gamepad.HotkeyEntry{DpadMask: gamepad.MaskRight, Action: gamepad.HotkeyInvertY}, o.Hotkeys[gamepad.HotkeyF2Right])
	assert.Equal(t, uint8(0x52), o.Keys[gamepad.P1][gamepad.InputUp])
}

func TestOptionsBinaryLayout(t *testing.T) {
	o := gamepad.DefaultOptions()
	o.InputMode = gamepad.InputModePS4
	o.DpadMode = gamepad.DpadModeRightAnalog
	o.SOCDMode = gamepad.SOCDBypass
	o.InvertY = true
	o.Keys[gamepad.P2][gamepad.InputA2] = 0x42
	o.Hotkeys[gamepad.HotkeyF2Left] = gamepad.HotkeyEntry{DpadMask: gamepad.MaskLeft | gamepad.MaskDown, Action: gamepad.HotkeySOCDBypass}
	o.Checksum = o.ComputeChecksum()

	b, err := o.MarshalBinary()
	require.NoError(t, err)
	require.Len(t, b, gamepad.OptionsSize)

	assert.Equal(t, []byte{4, 2, 4, 0, 1}, b[:5])
	assert.Equal(t, byte(0x52), b[5])
	assert.Equal(t, byte(0x42), b[40])
	assert.Equal(t, []byte{gamepad.MaskLeft | gamepad.MaskDown, byte(gamepad.HotkeySOCDBypass)}, b[41+2*gamepad.HotkeyF2Left:43+2*gamepad.HotkeyF2Left])
	assert.Equal(t, o.Checksum, binary.LittleEndian.Uint32(b[57:]))

	var decoded gamepad.Options
	require.NoError(t, decoded.UnmarshalBinary(b))
	assert.Equal(t, o, decoded)
	assert.True(t, decoded.Valid())
}

func TestOptionsIntegrity(t *testing.T) {
	o := gamepad.DefaultOptions()
	b, err := o.MarshalBinary()
	require.NoError(t, err)

	for _, offset := range []int{0, 3, 20, 50} {
		corrupt := append([]byte(nil), b...)
		corrupt[offset] ^= 0x01
		var decoded gamepad.Options
		require.NoError(t, decoded.UnmarshalBinary(corrupt))
		assert.False(t, decoded.Valid(), "offset %d", offset)
	}

	var short gamepad.Options
	assert.ErrorIs(t, short.UnmarshalBinary(b[:gamepad.OptionsSize-1]), io.ErrUnexpectedEOF)
}

func TestOptionsEqualIgnoresChecksum(t *testing.T) {
	a := gamepad.DefaultOptions()
	b := a
	b.Checksum = 0
	assert.True(t, a.Equal(b))
	b.InvertX = true
	assert.False(t, a.Equal(b))
}

func TestParseInputMode(t *testing.T) {
	m, err := gamepad.ParseInputMode(" PS4 ")
	require.NoError(t, err)
	assert.Equal(t, gamepad.InputModePS4, m)

	_, err = gamepad.ParseInputMode("n64")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown input mode "n64"`)
	assert.Contains(t, err.Error(), "xinput, switch, hid, keyboard, ps4")
}
