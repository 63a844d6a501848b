// Package keyboard emulates an N-key rollover HID keyboard, mapping each
// logical input of both players to a configured usage code.
package keyboard

import (
	"github.com/Alia5/padcore/device"
	"github.com/Alia5/padcore/gamepad"
)

func init() {
	device.Register(gamepad.InputModeKeyboard, device.NewRegistration("keyboard", func() device.Encoder { return New() }))
}

type Encoder struct{}

func New() *Encoder {
	return &Encoder{}
}

// InputState starts from a cleared report every call; held inputs of player 1
// then player 2 press their configured keys.
func (e *Encoder) InputState(gp *gamepad.Gamepad) InputState {
	var st InputState
	keys := gp.Options().Keys
	for p := gamepad.P1; p < gamepad.NumPlayers; p++ {
		s := gp.State(p)
		for i := gamepad.InputUp; i < gamepad.NumInputs; i++ {
			var held bool
			if i.IsDirection() {
				held = s.PressedDpad(uint8(i.Mask()))
			} else {
				held = s.Pressed(i.Mask())
			}
			if held {
				st.Press(keys[p][i])
			}
		}
	}
	return st
}

func (e *Encoder) Encode(gp *gamepad.Gamepad) []byte {
	return e.InputState(gp).BuildReport()
}
