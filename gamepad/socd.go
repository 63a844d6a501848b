package gamepad

// SOCDState carries the per-axis memory used by the first-input and
// second-input policies. It holds the last direction that was pressed alone
// on each axis, or zero.
type SOCDState struct {
	lastUD uint8
	lastLR uint8
}

// Reset forgets the axis history.
func (s *SOCDState) Reset() {
	*s = SOCDState{}
}

// Resolve removes opposing direction pairs from mask according to mode.
// Bypass returns the mask untouched.
func (s *SOCDState) Resolve(mode SOCDMode, mask uint8) uint8 {
	if mode == SOCDBypass {
		return mask & MaskDpad
	}

	var out uint8
	switch mask & (MaskUp | MaskDown) {
	case MaskUp | MaskDown:
		switch {
		case mode == SOCDUpPriority:
			out |= MaskUp
			s.lastUD = MaskUp
		case mode == SOCDSecondInput && s.lastUD != 0:
			out |= opposite(s.lastUD, MaskUp, MaskDown)
		case mode == SOCDFirstInput && s.lastUD != 0:
			out |= s.lastUD
		default:
			s.lastUD = 0
		}
	case MaskUp:
		out |= MaskUp
		s.lastUD = MaskUp
	case MaskDown:
		out |= MaskDown
		s.lastUD = MaskDown
	default:
		s.lastUD = 0
	}

	switch mask & (MaskLeft | MaskRight) {
	case MaskLeft | MaskRight:
		switch {
		case mode == SOCDSecondInput && s.lastLR != 0:
			out |= opposite(s.lastLR, MaskLeft, MaskRight)
		case mode == SOCDFirstInput && s.lastLR != 0:
			out |= s.lastLR
		default:
			s.lastLR = 0
		}
	case MaskLeft:
		out |= MaskLeft
		s.lastLR = MaskLeft
	case MaskRight:
		out |= MaskRight
		s.lastLR = MaskRight
	default:
		s.lastLR = 0
	}

	return out
}

func opposite(dir, a, b uint8) uint8 {
	if dir == a {
		return b
	}
	return a
}

// EffectiveSOCDMode applies the protocol constraint: HID, Switch and PS4
// cannot carry opposing directions, so bypass becomes neutral.
func EffectiveSOCDMode(mode SOCDMode, input InputMode) SOCDMode {
	if mode == SOCDBypass && input.ForcesNeutralSOCD() {
		return SOCDNeutral
	}
	return mode
}
