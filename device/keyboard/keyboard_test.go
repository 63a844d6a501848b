package keyboard_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alia5/padcore/device/keyboard"
	"github.com/Alia5/padcore/gamepad"
	th "github.com/Alia5/padcore/internal/testing"
)

func TestInputState(t *testing.T) {
	type testCase struct {
		name      string
		codes     []uint8
		modifiers uint8
		keys      []uint8
	}

	cases := []testCase{
		{name: "nothing", codes: []uint8{0}},
		{name: "letter", codes: []uint8{keyboard.KeyA}, keys: []uint8{keyboard.KeyA}},
		{name: "modifiers", codes: []uint8{keyboard.KeyLeftShift, keyboard.KeyRightGUI},
			modifiers: keyboard.ModLeftShift | keyboard.ModRightGUI,
			keys:      []uint8{keyboard.KeyLeftShift, keyboard.KeyRightGUI}},
		{name: "mixed", codes: []uint8{keyboard.KeyUp, keyboard.KeyLeftCtrl, keyboard.KeySpace},
			modifiers: keyboard.ModLeftCtrl,
			keys:      []uint8{keyboard.KeySpace, keyboard.KeyUp, keyboard.KeyLeftCtrl}},
		{name: "beyond modifiers ignored", codes: []uint8{0xE8, 0xFF}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var st keyboard.InputState
			for _, c := range tc.codes {
				st.Press(c)
			}
			assert.Equal(t, tc.modifiers, st.Modifiers)
			assert.Equal(t, tc.keys, st.Keys())

			var decoded keyboard.InputState
			require.NoError(t, decoded.UnmarshalBinary(st.BuildReport()))
			assert.Equal(t, st, decoded)
		})
	}
}

func TestBuildReport(t *testing.T) {
	var st keyboard.InputState
	st.Press(keyboard.KeyLeftAlt)
	st.Press(keyboard.KeyA)    // 0x04: byte 0 bit 4
	st.Press(keyboard.KeyDown) // 0x51: byte 10 bit 1

	b := st.BuildReport()
	require.Len(t, b, keyboard.ReportSize)
	assert.Equal(t, uint8(keyboard.ModLeftAlt), b[0])
	assert.Zero(t, b[1])
	assert.Equal(t, uint8(0x10), b[2])
	assert.Equal(t, uint8(0x02), b[12])
}

func TestEncode(t *testing.T) {
	r := th.NewRig(t, func(s *th.Store) {
		s.Gamepad.InputMode = gamepad.InputModeKeyboard
		s.Gamepad.Keys[gamepad.P1][gamepad.InputR3] = 0
	})
	enc := keyboard.New()

	r.Press(gamepad.P1, gamepad.InputUp, gamepad.InputB1, gamepad.InputR3)
	r.Press(gamepad.P2, gamepad.InputB1)
	r.Cycle()

	st := enc.InputState(r.Gamepad)
	keys := r.Gamepad.Options().Keys
	assert.True(t, st.Pressed(keys[gamepad.P1][gamepad.InputUp]))
	assert.True(t, st.Pressed(keys[gamepad.P2][gamepad.InputB1]))
	assert.Equal(t, uint8(keyboard.ModLeftShift), st.Modifiers, "default P1 B1 is left shift")
	assert.Len(t, st.Keys(), 3, "unmapped R3 presses nothing")

	r.Bank.ReleaseAll()
	r.Cycle()
	st = enc.InputState(r.Gamepad)
	assert.Empty(t, st.Keys(), "state is cleared every cycle")
	assert.Zero(t, st.Modifiers)
}

func TestKeyName(t *testing.T) {
	assert.Equal(t, "A", keyboard.KeyName(keyboard.KeyA))
	assert.Equal(t, "Z", keyboard.KeyName(keyboard.KeyZ))
	assert.Equal(t, "5", keyboard.KeyName(keyboard.Key1+4))
	assert.Equal(t, "0", keyboard.KeyName(keyboard.Key0))
	assert.Equal(t, "F12", keyboard.KeyName(keyboard.KeyF12))
	assert.Equal(t, "LeftShift", keyboard.KeyName(keyboard.KeyLeftShift))
	assert.Equal(t, "0x99", keyboard.KeyName(0x99))
}
