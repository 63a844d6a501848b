package hid

// Button bits of the generic (PS3 style) HID gamepad report.
const (
	ButtonSquare   uint16 = 1 << 0
	ButtonCross    uint16 = 1 << 1
	ButtonCircle   uint16 = 1 << 2
	ButtonTriangle uint16 = 1 << 3
	ButtonL1       uint16 = 1 << 4
	ButtonR1       uint16 = 1 << 5
	ButtonL2       uint16 = 1 << 6
	ButtonR2       uint16 = 1 << 7
	ButtonSelect   uint16 = 1 << 8
	ButtonStart    uint16 = 1 << 9
	ButtonL3       uint16 = 1 << 10
	ButtonR3       uint16 = 1 << 11
	ButtonPS       uint16 = 1 << 12
	ButtonTouchpad uint16 = 1 << 13
)

const (
	ReportSize    = 19
	PressureCount = 12
)
