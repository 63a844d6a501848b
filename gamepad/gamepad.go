package gamepad

import (
	"fmt"
	"log/slog"

	"github.com/Alia5/padcore/hal"
)

// OptionsStore is the persisted configuration collaborator.
type OptionsStore interface {
	GamepadOptions() Options
	SetGamepadOptions(Options)
	Save() error
}

// Config describes the physical controller.
type Config struct {
	Pins                [NumPlayers][NumInputs]uint8
	SettingsPin         uint8
	HasLeftAnalogStick  bool
	HasRightAnalogStick bool
	HasAnalogTriggers   bool
	DebounceMS          uint32
}

// DefaultConfig returns a config with every pin unassigned.
func DefaultConfig() Config {
	return Config{
		Pins:        UnassignedPins(),
		SettingsPin: PinUnassigned,
		DebounceMS:  DefaultDebounceMS,
	}
}

// Gamepad owns the two player states, the pin mapping arena and the
// gamepad options for one session. It is not safe for concurrent use.
type Gamepad struct {
	pins   hal.Pins
	store  OptionsStore
	logger *slog.Logger

	options  Options
	config   Config
	mappings Mappings

	states   [NumPlayers]State
	raw      State
	resolved [NumPlayers]uint8

	socd     [NumPlayers]SOCDState
	socdPrev [NumPlayers]SOCDState
	debounce [NumPlayers]*Debouncer

	lastHotkey HotkeyAction
}

// New creates a gamepad and loads its options from store.
func New(pins hal.Pins, store OptionsStore, logger *slog.Logger) *Gamepad {
	if logger == nil {
		logger = slog.Default()
	}
	g := &Gamepad{
		pins:    pins,
		store:   store,
		logger:  logger,
		options: store.GamepadOptions(),
		config:  DefaultConfig(),
	}
	g.mappings = NewMappings(g.config.Pins)
	for p := range g.debounce {
		g.debounce[p] = NewDebouncer(g.config.DebounceMS)
	}
	for p := range g.states {
		g.states[p].centerSticks()
	}
	return g
}

// Setup applies the hardware description: builds the mapping arena,
// configures assigned pins as pulled-up inputs and resets the debouncers.
func (g *Gamepad) Setup(cfg Config) error {
	g.config = cfg
	g.mappings = NewMappings(cfg.Pins)

	for p := range g.mappings {
		for i, m := range g.mappings[p] {
			if !m.IsAssigned() {
				continue
			}
			if err := g.pins.ConfigurePin(m.Pin, hal.Input, hal.PullUp); err != nil {
				return fmt.Errorf("%s %s: %w", Player(p), Input(i), err)
			}
		}
	}
	if cfg.SettingsPin < NumBankPins {
		if err := g.pins.ConfigurePin(cfg.SettingsPin, hal.Input, hal.PullUp); err != nil {
			return fmt.Errorf("settings pin: %w", err)
		}
	}

	for p := range g.debounce {
		g.debounce[p] = NewDebouncer(cfg.DebounceMS)
		g.socd[p].Reset()
	}
	g.logger.Debug("gamepad configured",
		"inputMode", g.options.InputMode,
		"dpadMode", g.options.DpadMode,
		"socdMode", g.options.SOCDMode,
		"debounceMS", cfg.DebounceMS,
	)
	return nil
}

func (g *Gamepad) Logger() *slog.Logger { return g.logger }

// Options returns a copy of the live options.
func (g *Gamepad) Options() Options { return g.options }

// Config returns the hardware description.
func (g *Gamepad) Config() Config { return g.config }

// State returns the mutable state of a player for the current cycle.
func (g *Gamepad) State(p Player) *State { return &g.states[p] }

// Raw returns player 1's state as it was before SOCD resolution.
func (g *Gamepad) Raw() State { return g.raw }

// Directions returns the SOCD-resolved directional mask of a player for the
// current cycle, before dpad-mode remapping.
func (g *Gamepad) Directions(p Player) uint8 { return g.resolved[p] }

// Mapping returns a copy of the pin mapping for one input.
func (g *Gamepad) Mapping(p Player, i Input) ButtonMapping { return g.mappings[p][i] }

// SetPin reassigns the physical pin of one input.
func (g *Gamepad) SetPin(p Player, i Input, pin uint8) {
	g.mappings[p][i].SetPin(pin)
	g.config.Pins[p][i] = g.mappings[p][i].Pin
}

// SetAnalogTriggers marks the device as reporting analog trigger magnitudes.
func (g *Gamepad) SetAnalogTriggers(v bool) { g.config.HasAnalogTriggers = v }

// Read samples every bank pin into both player states. Axes are centered and
// triggers released; addons and remapping fill them in later.
func (g *Gamepad) Read() {
	// pulled-up inputs read low while pressed
	values := ^g.pins.ReadAll()

	var aux uint16
	if g.config.SettingsPin < NumBankPins && values&(1<<g.config.SettingsPin) != 0 {
		aux |= AuxSettings
	}

	for p := range g.states {
		m := &g.mappings[p]
		s := &g.states[p]
		*s = State{Aux: aux}
		s.centerSticks()

		up, down := m[InputUp], m[InputDown]
		if g.options.InvertY {
			up, down = down, up
		}
		left, right := m[InputLeft], m[InputRight]
		if g.options.InvertX {
			left, right = right, left
		}
		if up.Asserted(values) {
			s.Dpad |= MaskUp
		}
		if down.Asserted(values) {
			s.Dpad |= MaskDown
		}
		if left.Asserted(values) {
			s.Dpad |= MaskLeft
		}
		if right.Asserted(values) {
			s.Dpad |= MaskRight
		}

		for i := InputB1; i < NumInputs; i++ {
			if m[i].Asserted(values) {
				s.Buttons |= m[i].ButtonMask
			}
		}
	}
}

// Process snapshots the raw state, resolves SOCD per player and applies the
// dpad mode.
func (g *Gamepad) Process() {
	g.raw = g.states[P1]
	mode := EffectiveSOCDMode(g.options.SOCDMode, g.options.InputMode)
	for p := range g.states {
		g.socdPrev[p] = g.socd[p]
		g.applyDpad(Player(p), g.socd[p].Resolve(mode, g.states[p].Dpad))
	}
}

// OverrideDpad replaces a player's directional input for this cycle. The mask
// is resolved and remapped the same way Process does, replacing the
// resolution already made this cycle. Only the dpad and, in analog dpad
// modes, the stick it is remapped onto change; other stick values set since
// Process are kept.
func (g *Gamepad) OverrideDpad(p Player, mask uint8) {
	mode := EffectiveSOCDMode(g.options.SOCDMode, g.options.InputMode)
	g.socd[p] = g.socdPrev[p]
	g.remapDpad(p, g.socd[p].Resolve(mode, mask))
}

func (g *Gamepad) applyDpad(p Player, dpad uint8) {
	s := &g.states[p]
	left := g.config.HasLeftAnalogStick || g.options.DpadMode == DpadModeLeftAnalog
	right := g.config.HasRightAnalogStick || g.options.DpadMode == DpadModeRightAnalog
	if !left {
		s.LX, s.LY = JoystickMid, JoystickMid
	}
	if !right {
		s.RX, s.RY = JoystickMid, JoystickMid
	}
	g.remapDpad(p, dpad)
}

func (g *Gamepad) remapDpad(p Player, dpad uint8) {
	s := &g.states[p]
	g.resolved[p] = dpad
	s.Dpad = dpad

	switch g.options.DpadMode {
	case DpadModeLeftAnalog:
		s.LX, s.LY = DpadToAnalogX(dpad), DpadToAnalogY(dpad)
		s.Dpad = 0
	case DpadModeRightAnalog:
		s.RX, s.RY = DpadToAnalogX(dpad), DpadToAnalogY(dpad)
		s.Dpad = 0
	}
}

// DpadToAnalogX projects the horizontal part of a dpad mask onto a stick axis.
func DpadToAnalogX(dpad uint8) uint16 {
	switch dpad & (MaskLeft | MaskRight) {
	case MaskLeft:
		return JoystickMin
	case MaskRight:
		return JoystickMax
	}
	return JoystickMid
}

// DpadToAnalogY projects the vertical part of a dpad mask onto a stick axis.
func DpadToAnalogY(dpad uint8) uint16 {
	switch dpad & (MaskUp | MaskDown) {
	case MaskUp:
		return JoystickMin
	case MaskDown:
		return JoystickMax
	}
	return JoystickMid
}

// Debounce filters the digital part of both player states.
func (g *Gamepad) Debounce(now uint32) {
	for p := range g.states {
		s := &g.states[p]
		unpackState(s, g.debounce[p].Update(packState(s), now))
	}
}

// Save persists the options if they differ from the stored record.
func (g *Gamepad) Save() error {
	if g.store.GamepadOptions().Equal(g.options) {
		return nil
	}
	g.options.Checksum = g.options.ComputeChecksum()
	g.store.SetGamepadOptions(g.options)
	if err := g.store.Save(); err != nil {
		return fmt.Errorf("save gamepad options: %w", err)
	}
	g.logger.Info("gamepad options saved",
		"dpadMode", g.options.DpadMode,
		"socdMode", g.options.SOCDMode,
		"invertX", g.options.InvertX,
		"invertY", g.options.InvertY,
	)
	return nil
}
