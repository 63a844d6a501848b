package nswitch_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alia5/padcore/device"
	"github.com/Alia5/padcore/device/nswitch"
	"github.com/Alia5/padcore/gamepad"
	th "github.com/Alia5/padcore/internal/testing"
)

func TestInputReport(t *testing.T) {
	st := nswitch.InputState{
		Buttons: nswitch.ButtonHome | nswitch.ButtonY,
		Hat:     device.HatLeft,
		LX:      0x80,
		LY:      0x80,
		RX:      0x00,
		RY:      0xFF,
	}
	report := st.BuildReport()
	assert.Equal(t, []byte{0x01, 0x10, 0x06, 0x80, 0x80, 0x00, 0xFF, 0x00}, report)

	var decoded nswitch.InputState
	require.NoError(t, decoded.UnmarshalBinary(report))
	assert.Equal(t, st, decoded)
}

func TestEncodeButtons(t *testing.T) {
	type testCase struct {
		input    gamepad.Input
		expected uint16
	}

	cases := []testCase{
		{gamepad.InputB1, nswitch.ButtonB},
		{gamepad.InputB2, nswitch.ButtonA},
		{gamepad.InputB3, nswitch.ButtonY},
		{gamepad.InputB4, nswitch.ButtonX},
		{gamepad.InputL1, nswitch.ButtonL},
		{gamepad.InputR1, nswitch.ButtonR},
		{gamepad.InputL2, nswitch.ButtonZL},
		{gamepad.InputR2, nswitch.ButtonZR},
		{gamepad.InputS1, nswitch.ButtonMinus},
		{gamepad.InputS2, nswitch.ButtonPlus},
		{gamepad.InputL3, nswitch.ButtonLStick},
		{gamepad.InputR3, nswitch.ButtonRStick},
		{gamepad.InputA1, nswitch.ButtonHome},
		{gamepad.InputA2, nswitch.ButtonCapture},
	}

	for _, tc := range cases {
		t.Run(tc.input.String(), func(t *testing.T) {
			r := th.NewRig(t, func(s *th.Store) {
				s.Gamepad.InputMode = gamepad.InputModeSwitch
			})
			r.Press(gamepad.P1, tc.input)
			r.Cycle()

			var st nswitch.InputState
			require.NoError(t, st.UnmarshalBinary(nswitch.New().Encode(r.Gamepad)))
			assert.Equal(t, tc.expected, st.Buttons)
			assert.Equal(t, device.HatNeutral, st.Hat)
		})
	}
}

func TestEncodeRightAnalogDpad(t *testing.T) {
	r := th.NewRig(t, func(s *th.Store) {
		s.Gamepad.InputMode = gamepad.InputModeSwitch
		s.Gamepad.DpadMode = gamepad.DpadModeRightAnalog
	})
	r.Press(gamepad.P1, gamepad.InputDown, gamepad.InputLeft)
	r.Cycle()

	st := nswitch.New().InputState(r.Gamepad)
	assert.Equal(t, device.HatNeutral, st.Hat)
	assert.Equal(t, uint8(0x00), st.RX)
	assert.Equal(t, uint8(0xFF), st.RY)
	assert.Equal(t, uint8(0x80), st.LX)
}
