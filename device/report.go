package device

import "github.com/Alia5/padcore/gamepad"

// ReportBuilder is implemented by protocol input states that can build a host report.
type ReportBuilder interface {
	// BuildReport encodes the input state into the byte layout the host expects.
	BuildReport() []byte
}

// Encoder projects the processed gamepad state into one protocol's report.
// Encoders are stateless apart from protocol counters and are not safe for
// concurrent use.
type Encoder interface {
	Encode(gp *gamepad.Gamepad) []byte
}

// Triggers returns the analog trigger magnitudes for player 1. Without analog
// trigger hardware the digital L2/R2 buttons report full or zero travel.
func Triggers(gp *gamepad.Gamepad) (lt, rt uint8) {
	s := gp.State(gamepad.P1)
	if gp.Config().HasAnalogTriggers {
		return s.LT, s.RT
	}
	if s.Pressed(gamepad.MaskL2) {
		lt = 0xFF
	}
	if s.Pressed(gamepad.MaskR2) {
		rt = 0xFF
	}
	return lt, rt
}
