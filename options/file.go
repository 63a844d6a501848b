package options

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/Alia5/padcore/gamepad"

	toml "github.com/pelletier/go-toml"
	yaml "gopkg.in/yaml.v3"
)

// ErrUnknownFormat is returned for file extensions other than json, yaml, yml and toml.
var ErrUnknownFormat = errors.New("unknown options file format")

// File is the on-disk board description. Its gamepad and addon sections are
// the defaults written to storage on first boot or after an integrity reset.
type File struct {
	Board   Board          `json:"board" yaml:"board" toml:"board"`
	Gamepad GamepadSection `json:"gamepad" yaml:"gamepad" toml:"gamepad"`
	Addons  AddonsSection  `json:"addons" yaml:"addons" toml:"addons"`
}

type GamepadSection struct {
	InputMode string `json:"inputMode" yaml:"inputMode" toml:"inputMode"`
	DpadMode  string `json:"dpadMode" yaml:"dpadMode" toml:"dpadMode"`
	SOCDMode  string `json:"socdMode" yaml:"socdMode" toml:"socdMode"`
	InvertX   bool   `json:"invertX" yaml:"invertX" toml:"invertX"`
	InvertY   bool   `json:"invertY" yaml:"invertY" toml:"invertY"`
	// Keyboard usage codes keyed by input name.
	KeysP1 map[string]int `json:"keysP1" yaml:"keysP1" toml:"keysP1"`
	KeysP2 map[string]int `json:"keysP2" yaml:"keysP2" toml:"keysP2"`
	// Actions keyed by slot, e.g. "f1-up".
	Hotkeys map[string]string `json:"hotkeys" yaml:"hotkeys" toml:"hotkeys"`
}

type AddonsSection struct {
	Turbo       TurboSection    `json:"turbo" yaml:"turbo" toml:"turbo"`
	Reverse     ReverseSection  `json:"reverse" yaml:"reverse" toml:"reverse"`
	Expander    ExpanderSection `json:"expander" yaml:"expander" toml:"expander"`
	ExpanderInt ExpanderSection `json:"expanderInt" yaml:"expanderInt" toml:"expanderInt"`
	Wii         WiiSection      `json:"wii" yaml:"wii" toml:"wii"`
}

type TurboSection struct {
	Enabled     bool   `json:"enabled" yaml:"enabled" toml:"enabled"`
	ButtonPin   int    `json:"buttonPin" yaml:"buttonPin" toml:"buttonPin"`
	LEDPin      int    `json:"ledPin" yaml:"ledPin" toml:"ledPin"`
	ShotCount   int    `json:"shotCount" yaml:"shotCount" toml:"shotCount"`
	DialChannel int    `json:"dialChannel" yaml:"dialChannel" toml:"dialChannel"`
	Shmup       bool   `json:"shmup" yaml:"shmup" toml:"shmup"`
	MixMode     string `json:"mixMode" yaml:"mixMode" toml:"mixMode"`
	// Input names always turbo-enabled in shmup mode.
	AlwaysOn []string        `json:"alwaysOn" yaml:"alwaysOn" toml:"alwaysOn"`
	Charge   []ChargeSection `json:"charge" yaml:"charge" toml:"charge"`
}

type ChargeSection struct {
	Pin    int    `json:"pin" yaml:"pin" toml:"pin"`
	Button string `json:"button" yaml:"button" toml:"button"`
}

type ReverseSection struct {
	Enabled   bool   `json:"enabled" yaml:"enabled" toml:"enabled"`
	ButtonPin int    `json:"buttonPin" yaml:"buttonPin" toml:"buttonPin"`
	LEDPin    int    `json:"ledPin" yaml:"ledPin" toml:"ledPin"`
	Up        string `json:"up" yaml:"up" toml:"up"`
	Down      string `json:"down" yaml:"down" toml:"down"`
	Left      string `json:"left" yaml:"left" toml:"left"`
	Right     string `json:"right" yaml:"right" toml:"right"`
}

type ExpanderSection struct {
	Enabled   bool   `json:"enabled" yaml:"enabled" toml:"enabled"`
	Address   int    `json:"address" yaml:"address" toml:"address"`
	IntPin    int    `json:"intPin" yaml:"intPin" toml:"intPin"`
	ActiveLow bool   `json:"activeLow" yaml:"activeLow" toml:"activeLow"`
	// Input names keyed by register line ("0".."15").
	Lines map[string]string `json:"lines" yaml:"lines" toml:"lines"`
}

type WiiSection struct {
	Enabled bool `json:"enabled" yaml:"enabled" toml:"enabled"`
	Address int  `json:"address" yaml:"address" toml:"address"`
}

var hotkeySlots = [gamepad.NumHotkeys]string{
	"f1-up", "f1-down", "f1-left", "f1-right",
	"f2-up", "f2-down", "f2-left", "f2-right",
}

var slotMasks = [gamepad.NumHotkeys]uint8{
	gamepad.MaskUp, gamepad.MaskDown, gamepad.MaskLeft, gamepad.MaskRight,
	gamepad.MaskUp, gamepad.MaskDown, gamepad.MaskLeft, gamepad.MaskRight,
}

var mixModeNames = map[MixMode]string{
	MixTurboPriority:  "turbo-priority",
	MixChargePriority: "charge-priority",
}

var reverseActionNames = map[ReverseAction]string{
	ReverseIgnore:  "ignore",
	ReverseEnable:  "enable",
	ReverseNeutral: "neutral",
}

func (m MixMode) String() string { return mixModeNames[m] }

func (a ReverseAction) String() string { return reverseActionNames[a] }

// DefaultFile returns the file form of DefaultBoard, DefaultOptions and DefaultAddons.
func DefaultFile() File {
	return File{
		Board:   DefaultBoard(),
		Gamepad: GamepadSectionFrom(gamepad.DefaultOptions()),
		Addons:  AddonsSectionFrom(DefaultAddons()),
	}
}

// FormatFromPath maps a file extension to "json", "yaml" or "toml".
func FormatFromPath(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return "json", nil
	case ".yaml", ".yml":
		return "yaml", nil
	case ".toml":
		return "toml", nil
	}
	return "", fmt.Errorf("%s: %w", path, ErrUnknownFormat)
}

// Load reads a board file. Fields absent from the file keep their defaults.
func Load(path string) (File, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return File{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return File{}, fmt.Errorf("read options file: %w", err)
	}
	f, err := Decode(data, format)
	if err != nil {
		return File{}, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

// Decode parses data in the given format over DefaultFile. Maps present in
// the data replace the default map as a whole.
func Decode(data []byte, format string) (File, error) {
	def := DefaultFile()
	f := def
	f.Board.P1, f.Board.P2 = nil, nil
	f.Gamepad.KeysP1, f.Gamepad.KeysP2, f.Gamepad.Hotkeys = nil, nil, nil
	f.Addons.Expander.Lines, f.Addons.ExpanderInt.Lines = nil, nil

	var err error
	switch format {
	case "json":
		err = json.Unmarshal(data, &f)
	case "yaml":
		err = yaml.Unmarshal(data, &f)
	case "toml":
		err = toml.Unmarshal(data, &f)
	default:
		return File{}, ErrUnknownFormat
	}
	if err != nil {
		return File{}, fmt.Errorf("decode %s: %w", format, err)
	}

	keepDefault(&f.Board.P1, def.Board.P1)
	keepDefault(&f.Board.P2, def.Board.P2)
	keepDefault(&f.Gamepad.KeysP1, def.Gamepad.KeysP1)
	keepDefault(&f.Gamepad.KeysP2, def.Gamepad.KeysP2)
	keepDefault(&f.Gamepad.Hotkeys, def.Gamepad.Hotkeys)
	keepDefault(&f.Addons.Expander.Lines, def.Addons.Expander.Lines)
	keepDefault(&f.Addons.ExpanderInt.Lines, def.Addons.ExpanderInt.Lines)
	return f, nil
}

func keepDefault[K comparable, V any](dst *map[K]V, def map[K]V) {
	if *dst == nil {
		*dst = def
	}
}

// Encode renders f in the given format.
func Encode(f File, format string) ([]byte, error) {
	switch format {
	case "json":
		return json.MarshalIndent(f, "", "  ")
	case "yaml":
		return yaml.Marshal(f)
	case "toml":
		return toml.Marshal(f)
	}
	return nil, ErrUnknownFormat
}

// GamepadSectionFrom renders options in file form.
func GamepadSectionFrom(o gamepad.Options) GamepadSection {
	s := GamepadSection{
		InputMode: o.InputMode.String(),
		DpadMode:  o.DpadMode.String(),
		SOCDMode:  o.SOCDMode.String(),
		InvertX:   o.InvertX,
		InvertY:   o.InvertY,
		KeysP1:    map[string]int{},
		KeysP2:    map[string]int{},
		Hotkeys:   map[string]string{},
	}
	for i := gamepad.Input(0); i < gamepad.NumInputs; i++ {
		if k := o.Keys[gamepad.P1][i]; k != 0 {
			s.KeysP1[i.String()] = int(k)
		}
		if k := o.Keys[gamepad.P2][i]; k != 0 {
			s.KeysP2[i.String()] = int(k)
		}
	}
	for i, h := range o.Hotkeys {
		s.Hotkeys[hotkeySlots[i]] = h.Action.String()
	}
	return s
}

// Options converts the section into a checksummed gamepad record.
func (s GamepadSection) Options() (gamepad.Options, error) {
	var (
		o   gamepad.Options
		err error
	)
	if o.InputMode, err = gamepad.ParseInputMode(s.InputMode); err != nil {
		return o, err
	}
	if o.DpadMode, err = gamepad.ParseDpadMode(s.DpadMode); err != nil {
		return o, err
	}
	if o.SOCDMode, err = gamepad.ParseSOCDMode(s.SOCDMode); err != nil {
		return o, err
	}
	o.InvertX, o.InvertY = s.InvertX, s.InvertY

	for p, keys := range []map[string]int{s.KeysP1, s.KeysP2} {
		for name, code := range keys {
			in, err := gamepad.ParseInput(name)
			if err != nil {
				return o, fmt.Errorf("keys %s: %w", gamepad.Player(p), err)
			}
			if code < 0 || code > 0xFF {
				return o, fmt.Errorf("keys %s %s: code %d out of range", gamepad.Player(p), name, code)
			}
			o.Keys[p][in] = uint8(code)
		}
	}

	for i, slot := range hotkeySlots {
		o.Hotkeys[i] = gamepad.HotkeyEntry{DpadMask: slotMasks[i], Action: gamepad.HotkeyNone}
		name, ok := s.Hotkeys[slot]
		if !ok {
			continue
		}
		a, err := gamepad.ParseHotkeyAction(name)
		if err != nil {
			return o, fmt.Errorf("hotkey %s: %w", slot, err)
		}
		o.Hotkeys[i].Action = a
	}
	for slot := range s.Hotkeys {
		if !knownSlot(slot) {
			return o, fmt.Errorf("unknown hotkey slot %q", slot)
		}
	}

	o.Checksum = o.ComputeChecksum()
	return o, nil
}

func knownSlot(s string) bool {
	for _, n := range hotkeySlots {
		if n == s {
			return true
		}
	}
	return false
}

// AddonsSectionFrom renders addon options in file form.
func AddonsSectionFrom(a Addons) AddonsSection {
	t := a.Turbo
	s := AddonsSection{
		Turbo: TurboSection{
			Enabled:     t.Enabled,
			ButtonPin:   pinValue(t.ButtonPin),
			LEDPin:      pinValue(t.LEDPin),
			ShotCount:   int(t.ShotCount),
			DialChannel: pinValue(t.DialChannel),
			Shmup:       t.Shmup,
			MixMode:     t.MixMode.String(),
			AlwaysOn:    maskNames(t.AlwaysOn),
		},
		Reverse: ReverseSection{
			Enabled:   a.Reverse.Enabled,
			ButtonPin: pinValue(a.Reverse.ButtonPin),
			LEDPin:    pinValue(a.Reverse.LEDPin),
			Up:        a.Reverse.ActionUp.String(),
			Down:      a.Reverse.ActionDown.String(),
			Left:      a.Reverse.ActionLeft.String(),
			Right:     a.Reverse.ActionRight.String(),
		},
		Expander:    expanderSectionFrom(a.Expander),
		ExpanderInt: expanderSectionFrom(a.ExpanderInt),
		Wii:         WiiSection{Enabled: a.Wii.Enabled, Address: int(a.Wii.Address)},
	}
	for i, pin := range t.ChargePins {
		if pin == gamepad.PinUnassigned && t.ChargeMasks[i] == 0 {
			continue
		}
		names := maskNames(t.ChargeMasks[i])
		btn := ""
		if len(names) > 0 {
			btn = names[0]
		}
		s.Turbo.Charge = append(s.Turbo.Charge, ChargeSection{Pin: pinValue(pin), Button: btn})
	}
	return s
}

func expanderSectionFrom(e Expander) ExpanderSection {
	s := ExpanderSection{
		Enabled:   e.Enabled,
		Address:   int(e.Address),
		IntPin:    pinValue(e.IntPin),
		ActiveLow: e.ActiveLow,
		Lines:     map[string]string{},
	}
	for line := range e.Lines {
		if in, ok := e.Input(line); ok {
			s.Lines[strconv.Itoa(line)] = in.String()
		}
	}
	return s
}

// Addons converts the section into a checksummed addon record.
func (s AddonsSection) Addons() (Addons, error) {
	a := DefaultAddons()

	t := &a.Turbo
	t.Enabled = s.Turbo.Enabled
	t.ButtonPin = pinNumber(s.Turbo.ButtonPin)
	t.LEDPin = pinNumber(s.Turbo.LEDPin)
	t.ShotCount = ClampShotCount(s.Turbo.ShotCount)
	t.DialChannel = pinNumber(s.Turbo.DialChannel)
	t.Shmup = s.Turbo.Shmup
	mix, err := parseName("mix mode", s.Turbo.MixMode, mixModeNames)
	if err != nil {
		return a, err
	}
	t.MixMode = mix
	if t.AlwaysOn, err = buttonMask(s.Turbo.AlwaysOn); err != nil {
		return a, fmt.Errorf("turbo always-on: %w", err)
	}
	if len(s.Turbo.Charge) > NumChargeButtons {
		return a, fmt.Errorf("turbo: at most %d charge buttons", NumChargeButtons)
	}
	for i, c := range s.Turbo.Charge {
		t.ChargePins[i] = pinNumber(c.Pin)
		if t.ChargeMasks[i], err = buttonMask([]string{c.Button}); err != nil {
			return a, fmt.Errorf("turbo charge %d: %w", i, err)
		}
	}

	r := &a.Reverse
	r.Enabled = s.Reverse.Enabled
	r.ButtonPin = pinNumber(s.Reverse.ButtonPin)
	r.LEDPin = pinNumber(s.Reverse.LEDPin)
	for _, x := range []struct {
		dst  *ReverseAction
		name string
	}{
		{&r.ActionUp, s.Reverse.Up},
		{&r.ActionDown, s.Reverse.Down},
		{&r.ActionLeft, s.Reverse.Left},
		{&r.ActionRight, s.Reverse.Right},
	} {
		if *x.dst, err = parseName("reverse action", x.name, reverseActionNames); err != nil {
			return a, err
		}
	}

	if a.Expander, err = s.Expander.expander(); err != nil {
		return a, fmt.Errorf("expander: %w", err)
	}
	if a.ExpanderInt, err = s.ExpanderInt.expander(); err != nil {
		return a, fmt.Errorf("expanderInt: %w", err)
	}

	a.Wii = Wii{Enabled: s.Wii.Enabled, Address: uint16(s.Wii.Address)}

	a.Checksum = a.ComputeChecksum()
	return a, nil
}

func (s ExpanderSection) expander() (Expander, error) {
	e := defaultExpander()
	e.Enabled = s.Enabled
	e.Address = uint16(s.Address)
	e.IntPin = pinNumber(s.IntPin)
	e.ActiveLow = s.ActiveLow
	for key, name := range s.Lines {
		line, err := strconv.Atoi(key)
		if err != nil || line < 0 || line >= NumExpanderLines {
			return e, fmt.Errorf("invalid line %q", key)
		}
		in, err := gamepad.ParseInput(name)
		if err != nil {
			return e, err
		}
		e.Lines[line] = uint8(in)
	}
	return e, nil
}

// buttonMask ORs the button masks of named non-direction inputs.
func buttonMask(names []string) (uint16, error) {
	var m uint16
	for _, n := range names {
		in, err := gamepad.ParseInput(n)
		if err != nil {
			return 0, err
		}
		if in.IsDirection() {
			return 0, fmt.Errorf("%s is not a button", in)
		}
		m |= in.Mask()
	}
	return m, nil
}

func maskNames(mask uint16) []string {
	var out []string
	for i := gamepad.InputB1; i < gamepad.NumInputs; i++ {
		if mask&i.Mask() != 0 {
			out = append(out, i.String())
		}
	}
	return out
}

func parseName[T comparable](kind, s string, names map[T]string) (T, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for v, n := range names {
		if n == s {
			return v, nil
		}
	}
	var zero T
	valid := make([]string, 0, len(names))
	for _, n := range names {
		valid = append(valid, n)
	}
	sort.Strings(valid)
	return zero, fmt.Errorf("unknown %s %q (valid: %s)", kind, s, strings.Join(valid, ", "))
}
