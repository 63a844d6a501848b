package nswitch

// Button bits of the Switch wired controller report.
const (
	ButtonY       uint16 = 1 << 0
	ButtonB       uint16 = 1 << 1
	ButtonA       uint16 = 1 << 2
	ButtonX       uint16 = 1 << 3
	ButtonL       uint16 = 1 << 4
	ButtonR       uint16 = 1 << 5
	ButtonZL      uint16 = 1 << 6
	ButtonZR      uint16 = 1 << 7
	ButtonMinus   uint16 = 1 << 8
	ButtonPlus    uint16 = 1 << 9
	ButtonLStick  uint16 = 1 << 10
	ButtonRStick  uint16 = 1 << 11
	ButtonHome    uint16 = 1 << 12
	ButtonCapture uint16 = 1 << 13
)

const ReportSize = 8
