package sim

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	toml "github.com/pelletier/go-toml"
	yaml "gopkg.in/yaml.v3"

	"github.com/Alia5/padcore/gamepad"
	"github.com/Alia5/padcore/options"
)

// DefaultCycleMS is the simulated poll period when a trace does not set one.
const DefaultCycleMS = 1

// Trace is a scripted input sequence. Steps run in order; each step changes
// the inputs and then runs its cycles.
type Trace struct {
	CycleMS int    `json:"cycleMs" yaml:"cycleMs" toml:"cycleMs"`
	Steps   []Step `json:"steps" yaml:"steps" toml:"steps"`
}

// Step edits held inputs. Targets are "p1.b1" style input names resolved
// through the board, or raw bank pins as "gpio20".
type Step struct {
	Name       string   `json:"name,omitempty" yaml:"name,omitempty" toml:"name,omitempty"`
	Cycles     int      `json:"cycles,omitempty" yaml:"cycles,omitempty" toml:"cycles,omitempty"`
	ReleaseAll bool     `json:"releaseAll,omitempty" yaml:"releaseAll,omitempty" toml:"releaseAll,omitempty"`
	Press      []string `json:"press,omitempty" yaml:"press,omitempty" toml:"press,omitempty"`
	Release    []string `json:"release,omitempty" yaml:"release,omitempty" toml:"release,omitempty"`
	// Expander lines (0-15) driven low or released on the emulated expander.
	ExpanderPress   []int `json:"expanderPress,omitempty" yaml:"expanderPress,omitempty" toml:"expanderPress,omitempty"`
	ExpanderRelease []int `json:"expanderRelease,omitempty" yaml:"expanderRelease,omitempty" toml:"expanderRelease,omitempty"`
	// Raw 12-bit samples keyed by analog channel.
	Analog map[string]int `json:"analog,omitempty" yaml:"analog,omitempty" toml:"analog,omitempty"`
	// Expected hex of the last report of the step; empty skips the check.
	Expect string `json:"expect,omitempty" yaml:"expect,omitempty" toml:"expect,omitempty"`
}

// LoadTrace reads a trace in the format given by its extension.
func LoadTrace(path string) (Trace, error) {
	format, err := options.FormatFromPath(path)
	if err != nil {
		return Trace{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Trace{}, fmt.Errorf("read trace: %w", err)
	}
	t, err := DecodeTrace(data, format)
	if err != nil {
		return Trace{}, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

func DecodeTrace(data []byte, format string) (Trace, error) {
	var t Trace
	var err error
	switch format {
	case "json":
		err = json.Unmarshal(data, &t)
	case "yaml":
		err = yaml.Unmarshal(data, &t)
	case "toml":
		err = toml.Unmarshal(data, &t)
	default:
		return t, options.ErrUnknownFormat
	}
	if err != nil {
		return t, fmt.Errorf("decode %s trace: %w", format, err)
	}
	if t.CycleMS <= 0 {
		t.CycleMS = DefaultCycleMS
	}
	for i := range t.Steps {
		if t.Steps[i].Cycles <= 0 {
			t.Steps[i].Cycles = 1
		}
		if t.Steps[i].Name == "" {
			t.Steps[i].Name = "step" + strconv.Itoa(i+1)
		}
	}
	return t, nil
}

// ResolvePin maps a step target onto a bank pin.
func ResolvePin(target string, cfg gamepad.Config) (uint8, error) {
	target = strings.ToLower(strings.TrimSpace(target))
	if rest, ok := strings.CutPrefix(target, "gpio"); ok {
		n, err := strconv.Atoi(rest)
		if err != nil || n < 0 || n >= gamepad.NumBankPins {
			return 0, fmt.Errorf("invalid pin %q", target)
		}
		return uint8(n), nil
	}

	player, name, ok := strings.Cut(target, ".")
	if !ok {
		return 0, fmt.Errorf("target %q: want p1.<input>, p2.<input> or gpio<n>", target)
	}
	var p gamepad.Player
	switch player {
	case "p1":
		p = gamepad.P1
	case "p2":
		p = gamepad.P2
	default:
		return 0, fmt.Errorf("target %q: unknown player", target)
	}
	in, err := gamepad.ParseInput(name)
	if err != nil {
		return 0, err
	}
	pin := cfg.Pins[p][in]
	if pin == gamepad.PinUnassigned {
		return 0, fmt.Errorf("target %q: input has no pin on this board", target)
	}
	return pin, nil
}
