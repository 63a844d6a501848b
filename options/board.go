package options

import (
	"fmt"

	"github.com/Alia5/padcore/gamepad"
)

// Board describes the physical controller. Pin maps are keyed by input name
// ("up", "b1", ...); inputs missing from a map are unassigned.
type Board struct {
	P1          map[string]int `json:"p1" yaml:"p1" toml:"p1" help:"Player 1 pin assignments (input name -> GPIO)"`
	P2          map[string]int `json:"p2" yaml:"p2" toml:"p2" help:"Player 2 pin assignments (input name -> GPIO)"`
	SettingsPin int            `json:"settingsPin" yaml:"settingsPin" toml:"settingsPin" help:"Settings GPIO, -1 if absent"`
	LeftStick   bool           `json:"leftStick" yaml:"leftStick" toml:"leftStick" help:"Board has a physical left analog stick"`
	RightStick  bool           `json:"rightStick" yaml:"rightStick" toml:"rightStick" help:"Board has a physical right analog stick"`
	Triggers    bool           `json:"analogTriggers" yaml:"analogTriggers" toml:"analogTriggers" help:"Board has analog triggers"`
	DebounceMS  int            `json:"debounceMs" yaml:"debounceMs" toml:"debounceMs" help:"Debounce window in milliseconds"`
}

// DefaultBoard returns the reference 2-player layout on bank pins 0-29:
// player 1 on pins 2-19, player 2 directions and face buttons on 20-27.
func DefaultBoard() Board {
	return Board{
		P1: map[string]int{
			"up": 2, "down": 3, "left": 5, "right": 4,
			"b1": 6, "b2": 7, "b3": 10, "b4": 11,
			"l1": 13, "r1": 12, "l2": 9, "r2": 8,
			"s1": 16, "s2": 17, "l3": 18, "r3": 19,
			"a1": 20, "a2": 21,
		},
		P2: map[string]int{
			"up": 22, "down": 23, "left": 24, "right": 25,
			"b1": 26, "b2": 27,
		},
		SettingsPin: -1,
		DebounceMS:  gamepad.DefaultDebounceMS,
	}
}

// GamepadConfig converts the board into the core's hardware description.
// Out-of-range pins are stored unassigned.
func (b Board) GamepadConfig() (gamepad.Config, error) {
	cfg := gamepad.DefaultConfig()
	for p, pins := range []map[string]int{b.P1, b.P2} {
		for name, pin := range pins {
			in, err := gamepad.ParseInput(name)
			if err != nil {
				return cfg, fmt.Errorf("board %s: %w", gamepad.Player(p), err)
			}
			cfg.Pins[p][in] = pinNumber(pin)
		}
	}
	cfg.SettingsPin = pinNumber(b.SettingsPin)
	cfg.HasLeftAnalogStick = b.LeftStick
	cfg.HasRightAnalogStick = b.RightStick
	cfg.HasAnalogTriggers = b.Triggers
	if b.DebounceMS >= 0 {
		cfg.DebounceMS = uint32(b.DebounceMS)
	}
	return cfg, nil
}

// UsedPins lists every assigned bank pin of the board.
func (b Board) UsedPins() []uint8 {
	seen := map[uint8]bool{}
	var out []uint8
	add := func(pin int) {
		n := pinNumber(pin)
		if n == gamepad.PinUnassigned || seen[n] {
			return
		}
		seen[n] = true
		out = append(out, n)
	}
	for _, pins := range []map[string]int{b.P1, b.P2} {
		for _, pin := range pins {
			add(pin)
		}
	}
	add(b.SettingsPin)
	return out
}

func pinNumber(pin int) uint8 {
	if pin < 0 || pin >= gamepad.NumBankPins {
		return gamepad.PinUnassigned
	}
	return uint8(pin)
}

func pinValue(pin uint8) int {
	if pin == gamepad.PinUnassigned {
		return -1
	}
	return int(pin)
}
