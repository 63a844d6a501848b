package hid_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alia5/padcore/device"
	"github.com/Alia5/padcore/device/hid"
	"github.com/Alia5/padcore/gamepad"
	th "github.com/Alia5/padcore/internal/testing"
)

func TestInputReport(t *testing.T) {
	st := hid.InputState{
		Buttons: hid.ButtonCross | hid.ButtonTouchpad,
		Hat:     device.HatDownLeft,
		LX:      0x00,
		LY:      0x80,
		RX:      0xFF,
		RY:      0x7F,
	}
	report := st.BuildReport()
	assert.Equal(t, []byte{
		0x02, 0x20,
		0x05,
		0x00, 0x80, 0xFF, 0x7F,
		0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
	}, report)

	var decoded hid.InputState
	require.NoError(t, decoded.UnmarshalBinary(report))
	assert.Equal(t, st, decoded)
	assert.Error(t, decoded.UnmarshalBinary(report[:hid.ReportSize-1]))
}

func TestEncode(t *testing.T) {
	type testCase struct {
		name    string
		inputs  []gamepad.Input
		buttons uint16
		hat     uint8
	}

	cases := []testCase{
		{name: "idle", hat: device.HatNeutral},
		{name: "face buttons", inputs: []gamepad.Input{gamepad.InputB1, gamepad.InputB2, gamepad.InputB3, gamepad.InputB4},
			buttons: hid.ButtonCross | hid.ButtonCircle | hid.ButtonSquare | hid.ButtonTriangle, hat: device.HatNeutral},
		{name: "shoulders", inputs: []gamepad.Input{gamepad.InputL1, gamepad.InputR1, gamepad.InputL2, gamepad.InputR2},
			buttons: hid.ButtonL1 | hid.ButtonR1 | hid.ButtonL2 | hid.ButtonR2, hat: device.HatNeutral},
		{name: "system", inputs: []gamepad.Input{gamepad.InputS1, gamepad.InputS2, gamepad.InputA1, gamepad.InputA2},
			buttons: hid.ButtonSelect | hid.ButtonStart | hid.ButtonPS | hid.ButtonTouchpad, hat: device.HatNeutral},
		{name: "sticks", inputs: []gamepad.Input{gamepad.InputL3, gamepad.InputR3},
			buttons: hid.ButtonL3 | hid.ButtonR3, hat: device.HatNeutral},
		{name: "diagonal", inputs: []gamepad.Input{gamepad.InputUp, gamepad.InputRight}, hat: device.HatUpRight},
		{name: "opposites resolve to neutral", inputs: []gamepad.Input{gamepad.InputLeft, gamepad.InputRight}, hat: device.HatNeutral},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := th.NewRig(t, func(s *th.Store) {
				s.Gamepad.InputMode = gamepad.InputModeHID
			})
			r.Press(gamepad.P1, tc.inputs...)
			r.Cycle()

			st := hid.New().InputState(r.Gamepad)
			assert.Equal(t, tc.buttons, st.Buttons)
			assert.Equal(t, tc.hat, st.Hat)
			assert.Equal(t, uint8(0x80), st.LX)
			assert.Equal(t, uint8(0x80), st.RY)
			assert.Len(t, hid.New().Encode(r.Gamepad), hid.ReportSize)
		})
	}
}
