package ps4

const (
	ReportIDInput   = 0x01
	InputReportSize = 64
)

const (
	ButtonSquare   uint16 = 0x0010
	ButtonCross    uint16 = 0x0020
	ButtonCircle   uint16 = 0x0040
	ButtonTriangle uint16 = 0x0080

	DPadMask uint8 = 0x0F
)

const (
	ButtonL1      uint16 = 0x0100
	ButtonR1      uint16 = 0x0200
	ButtonL2      uint16 = 0x0400
	ButtonR2      uint16 = 0x0800
	ButtonShare   uint16 = 0x1000
	ButtonOptions uint16 = 0x2000
	ButtonL3      uint16 = 0x4000
	ButtonR3      uint16 = 0x8000

	// Carried in byte 7 of the report, below the counter.
	ButtonPS            uint16 = 0x0001
	ButtonTouchpadClick uint16 = 0x0002
)

const (
	ButtonPSUSB            uint8 = 0x01
	ButtonTouchpadClickUSB uint8 = 0x02

	CounterMask  = 0xFC
	CounterShift = 2
	CounterMax   = 0x3F
)

const (
	TouchInactiveMask uint8 = 0x80

	BatteryFullyCharged = 0x0B
)

// Report offsets.
const (
	offsetSticks    = 1
	offsetButtons   = 5
	offsetSpecial   = 7
	offsetTriggers  = 8
	offsetTimestamp = 10
	offsetBattery   = 30
	offsetTouch1    = 35
	offsetTouch2    = 39
)
