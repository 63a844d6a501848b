// Package nswitch encodes the gamepad state as a Nintendo Switch wired
// controller report.
package nswitch

import (
	"github.com/Alia5/padcore/device"
	"github.com/Alia5/padcore/gamepad"
)

func init() {
	device.Register(gamepad.InputModeSwitch, device.NewRegistration("switch", func() device.Encoder { return New() }))
}

// South/east/west/north follow position, so B1 is B and B2 is A.
var buttons = [...]struct{ from, to uint16 }{
	{gamepad.MaskB1, ButtonB},
	{gamepad.MaskB2, ButtonA},
	{gamepad.MaskB3, ButtonY},
	{gamepad.MaskB4, ButtonX},
	{gamepad.MaskL1, ButtonL},
	{gamepad.MaskR1, ButtonR},
	{gamepad.MaskL2, ButtonZL},
	{gamepad.MaskR2, ButtonZR},
	{gamepad.MaskS1, ButtonMinus},
	{gamepad.MaskS2, ButtonPlus},
	{gamepad.MaskL3, ButtonLStick},
	{gamepad.MaskR3, ButtonRStick},
	{gamepad.MaskA1, ButtonHome},
	{gamepad.MaskA2, ButtonCapture},
}

type Encoder struct{}

func New() *Encoder {
	return &Encoder{}
}

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
