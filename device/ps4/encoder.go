// Package ps4 encodes the gamepad state as a PS4 controller report.
package ps4

import (
	"github.com/Alia5/padcore/device"
	"github.com/Alia5/padcore/gamepad"
)

func init() {
	device.Register(gamepad.InputModePS4, device.NewRegistration("ps4", func() device.Encoder { return New() }))
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
	{gamepad.MaskS1, ButtonShare},
	{gamepad.MaskS2, ButtonOptions},
	{gamepad.MaskL3, ButtonL3},
	{gamepad.MaskR3, ButtonR3},
	{gamepad.MaskA1, ButtonPS},
	{gamepad.MaskA2, ButtonTouchpadClick},
}

// Encoder keeps the rolling report counter and timestamp between reports.
type Encoder struct {
	counter   uint8
	timestamp uint16
}

func New() *Encoder {
	return &Encoder{}
}

// InputState converts player 1's processed state and advances the counters.
func (e *Encoder) InputState(gp *gamepad.Gamepad) InputState {
	s := gp.State(gamepad.P1)
	st := InputState{
		LX:      device.Axis8(s.LX),
		LY:      device.Axis8(s.LY),
		RX:      device.Axis8(s.RX),
		RY:      device.Axis8(s.RY),
		Hat:     device.Hat(s.Dpad),
		Counter: e.counter,
		Battery: BatteryFullyCharged,
	}
	for _, m := range buttons {
		if s.Pressed(m.from) {
			st.Buttons |= m.to
		}
	}
	st.L2, st.R2 = device.Triggers(gp)

	e.counter = (e.counter + 1) & CounterMax
	e.timestamp++
	st.Timestamp = e.timestamp
	return st
}

func (e *Encoder) Encode(gp *gamepad.Gamepad) []byte {
	st := e.InputState(gp)
	return st.BuildReport()
}
