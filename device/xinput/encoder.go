// Package xinput encodes the gamepad state as an XInput (Xbox 360 wired) report.
package xinput

import (
	"github.com/Alia5/padcore/device"
	"github.com/Alia5/padcore/gamepad"
)

func init() {
	device.Register(gamepad.InputModeXInput, device.NewRegistration("xinput", func() device.Encoder { return New() }))
}

type buttonMap struct {
	dpad   uint8
	button uint16
	xinput uint16
}

var buttons = []buttonMap{
	{dpad: gamepad.MaskUp, xinput: ButtonDPadUp},
	{dpad: gamepad.MaskDown, xinput: ButtonDPadDown},
	{dpad: gamepad.MaskLeft, xinput: ButtonDPadLeft},
	{dpad: gamepad.MaskRight, xinput: ButtonDPadRight},
	{button: gamepad.MaskS2, xinput: ButtonStart},
	{button: gamepad.MaskS1, xinput: ButtonBack},
	{button: gamepad.MaskL3, xinput: ButtonLThumb},
	{button: gamepad.MaskR3, xinput: ButtonRThumb},
	{button: gamepad.MaskL1, xinput: ButtonLShoulder},
	{button: gamepad.MaskR1, xinput: ButtonRShoulder},
	{button: gamepad.MaskA1, xinput: ButtonGuide},
	{button: gamepad.MaskB1, xinput: ButtonA},
	{button: gamepad.MaskB2, xinput: ButtonB},
	{button: gamepad.MaskB3, xinput: ButtonX},
	{button: gamepad.MaskB4, xinput: ButtonY},
}

// Encoder builds XInput reports from player 1.
type Encoder struct{}

func New() *Encoder {
	return &Encoder{}
}

// InputState converts the processed gamepad state.
func (e *Encoder) InputState(gp *gamepad.Gamepad) InputState {
	s := gp.State(gamepad.P1)
	var x InputState
	for _, m := range buttons {
		if (m.dpad != 0 && s.PressedDpad(m.dpad)) || (m.button != 0 && s.Pressed(m.button)) {
			x.Buttons |= m.xinput
		}
	}
	x.LX = device.AxisSigned(s.LX)
	x.LY = device.AxisSignedInverted(s.LY)
	x.RX = device.AxisSigned(s.RX)
	x.RY = device.AxisSignedInverted(s.RY)
	x.LT, x.RT = device.Triggers(gp)
	return x
}

func (e *Encoder) Encode(gp *gamepad.Gamepad) []byte {
	x := e.InputState(gp)
	return x.BuildReport()
}
