package gamepad

// Hotkey checks player 1 for a held F1 or F2 chord combined with one of the
// chord's configured directions. A match strips the chord and the direction
// from the outgoing state, applies the bound action and persists any
// configuration change. F1 is checked first.
//
// Chord and direction are both taken from the debounced state. In analog
// dpad modes the outgoing dpad is empty, so the resolved directions are used;
// they are not debounced.
func (g *Gamepad) Hotkey() HotkeyAction {
	s := &g.states[P1]
	dpad := s.Dpad
	if g.options.DpadMode != DpadModeDigital {
		dpad = g.resolved[P1]
	}

	var (
		chord   uint16
		entries []HotkeyEntry
	)
	switch {
	case s.Pressed(ChordF1):
		chord, entries = ChordF1, g.options.Hotkeys[HotkeyF1Up:HotkeyF2Up]
	case s.Pressed(ChordF2):
		chord, entries = ChordF2, g.options.Hotkeys[HotkeyF2Up:]
	}

	action := HotkeyNone
	if chord != 0 && dpad != 0 {
		for _, e := range entries {
			if e.Action != HotkeyNone && dpad == e.DpadMask {
				action = e.Action
			}
		}
	}

	if action == HotkeyNone {
		g.lastHotkey = HotkeyNone
		return HotkeyNone
	}

	g.stripDirections(s, dpad)
	s.Buttons &^= chord

	switch action {
	case HotkeyDpadDigital:
		g.options.DpadMode = DpadModeDigital
	case HotkeyDpadLeftAnalog:
		g.options.DpadMode = DpadModeLeftAnalog
	case HotkeyDpadRightAnalog:
		g.options.DpadMode = DpadModeRightAnalog
	case HotkeyHomeButton:
		s.Buttons |= MaskA1
	case HotkeyCaptureButton:
		s.Buttons |= MaskA2
	case HotkeySOCDUpPriority:
		g.options.SOCDMode = SOCDUpPriority
	case HotkeySOCDNeutral:
		g.options.SOCDMode = SOCDNeutral
	case HotkeySOCDLastInput:
		g.options.SOCDMode = SOCDSecondInput
	case HotkeySOCDFirstInput:
		g.options.SOCDMode = SOCDFirstInput
	case HotkeySOCDBypass:
		g.options.SOCDMode = SOCDBypass
	case HotkeyInvertX:
		if g.lastHotkey != HotkeyInvertX {
			g.options.InvertX = !g.options.InvertX
		}
	case HotkeyInvertY:
		if g.lastHotkey != HotkeyInvertY {
			g.options.InvertY = !g.options.InvertY
		}
	}

	if g.lastHotkey != action {
		g.logger.Info("hotkey", "action", action)
	}
	g.lastHotkey = action

	if err := g.Save(); err != nil {
		g.logger.Warn("hotkey not persisted", "action", action, "error", err)
	}
	return action
}

// stripDirections removes the triggering directions from the outgoing state,
// including a stick they were remapped onto.
func (g *Gamepad) stripDirections(s *State, dpad uint8) {
	s.Dpad &^= dpad
	g.resolved[P1] &^= dpad
	switch g.options.DpadMode {
	case DpadModeLeftAnalog:
		s.LX, s.LY = JoystickMid, JoystickMid
	case DpadModeRightAnalog:
		s.RX, s.RY = JoystickMid, JoystickMid
	}
}
