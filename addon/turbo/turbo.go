// Package turbo implements rapid fire: buttons toggled into the turbo set
// while the turbo button is held are flickered off at the configured rate.
package turbo

import (
	"fmt"
	"log/slog"

	"github.com/Alia5/padcore/addon"
	"github.com/Alia5/padcore/gamepad"
	"github.com/Alia5/padcore/hal"
	"github.com/Alia5/padcore/options"
)

const Name = "turbo"

// Eligible is the set of buttons that can join the turbo set.
const Eligible = gamepad.MaskB1 | gamepad.MaskB2 | gamepad.MaskB3 | gamepad.MaskB4 |
	gamepad.MaskL1 | gamepad.MaskR1 | gamepad.MaskL2 | gamepad.MaskR2

// dialStep maps a 12-bit dial reading onto the shot range.
const dialStep = 0xFFF / (options.TurboShotMax - options.TurboShotMin)

type Turbo struct {
	addon.Base

	store  addon.Store
	pins   hal.Pins
	logger *slog.Logger

	opts options.Turbo

	buttonDeb *gamepad.Debouncer
	chargeDeb *gamepad.Debouncer
	held      bool
	charge    uint16

	enabled     uint16
	lastPressed [gamepad.NumPlayers]uint16
	lastDpad    uint8

	dial     uint16
	shots    uint8
	interval uint32
	offPhase bool
	next     uint32
}

func New(store addon.Store, pins hal.Pins, logger *slog.Logger) *Turbo {
	if logger == nil {
		logger = slog.Default()
	}
	return &Turbo{store: store, pins: pins, logger: logger.With("addon", Name)}
}

func (t *Turbo) Name() string { return Name }

func (t *Turbo) Available() bool {
	o := t.store.AddonOptions().Turbo
	return o.Enabled && o.ButtonPin < gamepad.NumBankPins
}

func (t *Turbo) Setup(gp *gamepad.Gamepad) error {
	t.opts = t.store.AddonOptions().Turbo

	if err := t.pins.ConfigurePin(t.opts.ButtonPin, hal.Input, hal.PullUp); err != nil {
		return fmt.Errorf("turbo button: %w", err)
	}
	if t.opts.LEDPin < gamepad.NumBankPins {
		if err := t.pins.ConfigurePin(t.opts.LEDPin, hal.Output, hal.Float); err != nil {
			return fmt.Errorf("turbo led: %w", err)
		}
		t.pins.WritePin(t.opts.LEDPin, true)
	}

	t.enabled = 0
	if t.opts.Shmup {
		for i, pin := range t.opts.ChargePins {
			if pin >= gamepad.NumBankPins {
				continue
			}
			if err := t.pins.ConfigurePin(pin, hal.Input, hal.PullUp); err != nil {
				return fmt.Errorf("charge button %d: %w", i+1, err)
			}
		}
		t.enabled = t.opts.AlwaysOn
	}

	window := gp.Config().DebounceMS
	t.buttonDeb = gamepad.NewDebouncer(window)
	t.chargeDeb = gamepad.NewDebouncer(window)
	t.lastPressed = [gamepad.NumPlayers]uint16{}
	t.lastDpad = 0
	t.offPhase = false
	t.next = 0

	t.setShots(int(t.opts.ShotCount), false)
	if t.hasDial() {
		t.dial = t.pins.ReadAnalog(t.opts.DialChannel)
		t.setShots(int(t.dial/dialStep)+options.TurboShotMin, false)
	}
	return nil
}

func (t *Turbo) hasDial() bool {
	return t.opts.DialChannel != gamepad.PinUnassigned
}

// Shots returns the current rate in shots per second.
func (t *Turbo) Shots() uint8 { return t.shots }

// Interval returns the flicker period in milliseconds.
func (t *Turbo) Interval() uint32 { return t.interval }

// OffPhase reports whether turbo buttons are currently suppressed.
func (t *Turbo) OffPhase() bool { return t.offPhase }

// Enabled returns the turbo set.
func (t *Turbo) Enabled() uint16 { return t.enabled }

// SetShots clamps and applies a new rate and persists it.
func (t *Turbo) SetShots(v int) {
	t.setShots(v, true)
}

func (t *Turbo) setShots(v int, persist bool) {
	t.shots = options.ClampShotCount(v)
	t.interval = 1000 / uint32(t.shots)
	if !persist {
		return
	}
	a := t.store.AddonOptions()
	if a.Turbo.ShotCount == t.shots {
		return
	}
	a.Turbo.ShotCount = t.shots
	t.opts.ShotCount = t.shots
	t.store.SetAddonOptions(a)
	if err := t.store.Save(); err != nil {
		t.logger.Warn("turbo rate not persisted", "shots", t.shots, "error", err)
		return
	}
	t.logger.Info("turbo rate changed", "shots", t.shots)
}

func (t *Turbo) read(now uint32) {
	var raw uint32
	if !t.pins.ReadPin(t.opts.ButtonPin) {
		raw = 1
	}
	t.held = t.buttonDeb.Update(raw, now) != 0

	if !t.opts.Shmup {
		return
	}
	raw = 0
	for i, pin := range t.opts.ChargePins {
		if pin < gamepad.NumBankPins && !t.pins.ReadPin(pin) {
			raw |= 1 << i
		}
	}
	bits := t.chargeDeb.Update(raw, now)
	t.charge = 0
	for i, mask := range t.opts.ChargeMasks {
		if bits&(1<<i) != 0 {
			t.charge |= mask
		}
	}
}

func (t *Turbo) Process(gp *gamepad.Gamepad, now uint32) {
	p1, p2 := gp.State(gamepad.P1), gp.State(gamepad.P2)
	pressed := [gamepad.NumPlayers]uint16{p1.Buttons & Eligible, p2.Buttons & Eligible}
	dpad := gp.Directions(gamepad.P1)

	t.read(now)

	if t.held {
		for p, s := range []*gamepad.State{p1, p2} {
			if pressed[p] != 0 && pressed[p] != t.lastPressed[p] {
				t.enabled ^= pressed[p]
				if t.opts.Shmup {
					t.enabled |= t.opts.AlwaysOn
				}
				t.logger.Debug("turbo set changed", "player", gamepad.Player(p), "enabled", t.enabled)
			}
			// the toggle press itself is not reported
			s.Buttons &^= pressed[p]
		}
		if dpad != t.lastDpad {
			switch {
			case dpad&gamepad.MaskDown != 0:
				t.SetShots(int(t.shots) - 1)
			case dpad&gamepad.MaskUp != 0:
				t.SetShots(int(t.shots) + 1)
			}
		}
		t.lastPressed = pressed
		t.lastDpad = dpad
		return
	}
	t.lastPressed = [gamepad.NumPlayers]uint16{}
	t.lastDpad = 0

	if t.hasDial() {
		raw := t.pins.ReadAnalog(t.opts.DialChannel)
		if raw != t.dial {
			t.setShots(int(raw/dialStep)+options.TurboShotMin, false)
		}
		t.dial = raw
	}

	if t.opts.LEDPin < gamepad.NumBankPins {
		lit := (p1.Buttons|p2.Buttons)&t.enabled != 0 && !t.offPhase
		t.pins.WritePin(t.opts.LEDPin, !lit)
	}

	if t.opts.Shmup {
		p1.Buttons |= t.charge
		p2.Buttons |= t.charge
	}

	if t.offPhase {
		mask := t.enabled
		if t.opts.Shmup && t.opts.MixMode == options.MixChargePriority {
			mask &^= t.charge
		}
		p1.Buttons &^= mask
		p2.Buttons &^= mask
	}

	if int32(now-t.next) < 0 {
		return
	}
	t.offPhase = !t.offPhase
	t.next = now + t.interval
}
