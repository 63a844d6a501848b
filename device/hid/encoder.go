// Package hid encodes the gamepad state as a generic HID gamepad report.
package hid

import (
	"github.com/Alia5/padcore/device"
	"github.com/Alia5/padcore/gamepad"
)

func init() {
	device.Register(gamepad.InputModeHID, device.NewRegistration("hid", func() device.Encoder { return New() }))
}

var buttons = [...]struct{ from, to uint16 }{
	{gamepad.MaskB3, ButtonSquare},
	{gamepad.MaskB1, ButtonCross},
	{gamepad.MaskB2, ButtonCircle},
	{gamepad.MaskB4, ButtonTriangle},
	{gamepad.MaskL1, ButtonL1},
	{gamepad.MaskR1, ButtonR1},
	{gamepad.MaskL2, ButtonL2},
	{gamepad.MaskR2, ButtonR2},
	{gamepad.MaskS1, ButtonSelect},
	{gamepad.MaskS2, ButtonStart},
	{gamepad.MaskL3, ButtonL3},
	{gamepad.MaskR3, ButtonR3},
	{gamepad.MaskA1, ButtonPS},
	{gamepad.MaskA2, ButtonTouchpad},
}

type Encoder struct{}

func New() *Encoder {
	return &Encoder{}
}

// InputState converts player 1's processed state.
func (e *Encoder) InputState(gp *gamepad.Gamepad) InputState {
	s := gp.State(gamepad.P1)
	st := InputState{
		Hat: device.Hat(s.Dpad),
		LX:  device.Axis8(s.LX),
		LY:  device.Axis8(s.LY),
		RX:  device.Axis8(s.RX),
		RY:  device.Axis8(s.RY),
	}
	for _, m := range buttons {
		if s.Pressed(m.from) {
			st.Buttons |= m.to
		}
	}
	return st
}

func (e *Encoder) Encode(gp *gamepad.Gamepad) []byte {
	st := e.InputState(gp)
	return st.BuildReport()
}
