package gamepad

import (
	"fmt"
	"strings"
)

// InputMode selects the host protocol the report is encoded for.
type InputMode uint8

const (
	InputModeXInput InputMode = iota
	InputModeSwitch
	InputModeHID
	InputModeKeyboard
	InputModePS4
)

var inputModeNames = map[InputMode]string{
	InputModeXInput:   "xinput",
	InputModeSwitch:   "switch",
	InputModeHID:      "hid",
	InputModeKeyboard: "keyboard",
	InputModePS4:      "ps4",
}

func (m InputMode) String() string {
	if n, ok := inputModeNames[m]; ok {
		return n
	}
	return fmt.Sprintf("inputmode(%d)", uint8(m))
}

// ForcesNeutralSOCD reports whether the protocol cannot carry opposing
// directions and therefore downgrades bypass to neutral.
func (m InputMode) ForcesNeutralSOCD() bool {
	switch m {
	case InputModeHID, InputModeSwitch, InputModePS4:
		return true
	}
	return false
}

// DpadMode selects where the directional mask is reported.
type DpadMode uint8

const (
	DpadModeDigital DpadMode = iota
	DpadModeLeftAnalog
	DpadModeRightAnalog
)

var dpadModeNames = map[DpadMode]string{
	DpadModeDigital:     "digital",
	DpadModeLeftAnalog:  "left-analog",
	DpadModeRightAnalog: "right-analog",
}

func (m DpadMode) String() string {
	if n, ok := dpadModeNames[m]; ok {
		return n
	}
	return fmt.Sprintf("dpadmode(%d)", uint8(m))
}

// SOCDMode selects how opposing directions are resolved.
type SOCDMode uint8

const (
	SOCDUpPriority SOCDMode = iota
	SOCDNeutral
	SOCDSecondInput
	SOCDFirstInput
	SOCDBypass
)

var socdModeNames = map[SOCDMode]string{
	SOCDUpPriority:  "up-priority",
	SOCDNeutral:     "neutral",
	SOCDSecondInput: "second-input",
	SOCDFirstInput:  "first-input",
	SOCDBypass:      "bypass",
}

func (m SOCDMode) String() string {
	if n, ok := socdModeNames[m]; ok {
		return n
	}
	return fmt.Sprintf("socdmode(%d)", uint8(m))
}

// HotkeyAction is the configuration change bound to a chord direction.
type HotkeyAction uint8

const (
	HotkeyNone HotkeyAction = iota
	HotkeyDpadDigital
	HotkeyDpadLeftAnalog
	HotkeyDpadRightAnalog
	HotkeyHomeButton
	HotkeyCaptureButton
	HotkeySOCDUpPriority
	HotkeySOCDNeutral
	HotkeySOCDLastInput
	HotkeyInvertX
	HotkeyInvertY
	HotkeySOCDFirstInput
	HotkeySOCDBypass
)

var hotkeyActionNames = map[HotkeyAction]string{
	HotkeyNone:            "none",
	HotkeyDpadDigital:     "dpad-digital",
	HotkeyDpadLeftAnalog:  "dpad-left-analog",
	HotkeyDpadRightAnalog: "dpad-right-analog",
	HotkeyHomeButton:      "home-button",
	HotkeyCaptureButton:   "capture-button",
	HotkeySOCDUpPriority:  "socd-up-priority",
	HotkeySOCDNeutral:     "socd-neutral",
	HotkeySOCDLastInput:   "socd-last-input",
	HotkeyInvertX:         "invert-x",
	HotkeyInvertY:         "invert-y",
	HotkeySOCDFirstInput:  "socd-first-input",
	HotkeySOCDBypass:      "socd-bypass",
}

func (a HotkeyAction) String() string {
	if n, ok := hotkeyActionNames[a]; ok {
		return n
	}
	return fmt.Sprintf("hotkey(%d)", uint8(a))
}

func parseName[T comparable](kind, s string, names map[T]string) (T, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for v, n := range names {
		if n == s {
			return v, nil
		}
	}
	var zero T
	return zero, fmt.Errorf("unknown %s %q", kind, s)
}

// ParseInputMode parses names such as "xinput" or "ps4".
func ParseInputMode(s string) (InputMode, error) {
	m, err := parseName("input mode", s, inputModeNames)
	if err != nil {
		return m, fmt.Errorf("%w; expected one of %s", err, strings.Join(InputModeNames(), ", "))
	}
	return m, nil
}

// ParseDpadMode parses "digital", "left-analog" or "right-analog".
func ParseDpadMode(s string) (DpadMode, error) {
	return parseName("dpad mode", s, dpadModeNames)
}

// ParseSOCDMode parses "neutral", "up-priority", "second-input", "first-input" or "bypass".
func ParseSOCDMode(s string) (SOCDMode, error) {
	return parseName("socd mode", s, socdModeNames)
}

func ParseHotkeyAction(s string) (HotkeyAction, error) {
	return parseName("hotkey action", s, hotkeyActionNames)
}

// InputModeNames lists the valid input mode names.
func InputModeNames() []string {
	out := make([]string, 0, len(inputModeNames))
	for m := InputModeXInput; m <= InputModePS4; m++ {
		out = append(out, m.String())
	}
	return out
}
