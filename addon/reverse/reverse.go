// Package reverse flips or neutralises directions while the reverse button is held.
package reverse

import (
	"fmt"
	"log/slog"

	"github.com/Alia5/padcore/addon"
	"github.com/Alia5/padcore/gamepad"
	"github.com/Alia5/padcore/hal"
	"github.com/Alia5/padcore/options"
)

const Name = "reverse"

type Reverse struct {
	addon.Base

	store  addon.Store
	pins   hal.Pins
	logger *slog.Logger

	opts     options.Reverse
	reversed bool
}

func New(store addon.Store, pins hal.Pins, logger *slog.Logger) *Reverse {
	if logger == nil {
		logger = slog.Default()
	}
	return &Reverse{store: store, pins: pins, logger: logger.With("addon", Name)}
}

func (r *Reverse) Name() string { return Name }

func (r *Reverse) Available() bool {
	o := r.store.AddonOptions().Reverse
	return o.Enabled && o.ButtonPin < gamepad.NumBankPins
}

func (r *Reverse) Setup(gp *gamepad.Gamepad) error {
	r.opts = r.store.AddonOptions().Reverse
	if err := r.pins.ConfigurePin(r.opts.ButtonPin, hal.Input, hal.PullUp); err != nil {
		return fmt.Errorf("reverse button: %w", err)
	}
	if r.opts.LEDPin < gamepad.NumBankPins {
		if err := r.pins.ConfigurePin(r.opts.LEDPin, hal.Output, hal.Float); err != nil {
			return fmt.Errorf("reverse led: %w", err)
		}
		r.pins.WritePin(r.opts.LEDPin, true)
	}
	r.reversed = false
	return nil
}

// Reversed reports the sampled reverse button.
func (r *Reverse) Reversed() bool { return r.reversed }

// input returns the mask a pressed direction contributes.
func (r *Reverse) input(pressed bool, natural, opposite uint8, action options.ReverseAction, invertAxis bool) uint8 {
	if !pressed {
		return 0
	}
	if r.reversed && action == options.ReverseNeutral {
		return 0
	}
	invert := invertAxis
	if r.reversed && action == options.ReverseEnable {
		invert = !invert
	}
	if invert {
		return opposite
	}
	return natural
}

func (r *Reverse) Process(gp *gamepad.Gamepad, _ uint32) {
	r.reversed = !r.pins.ReadPin(r.opts.ButtonPin)
	values := ^r.pins.ReadAll()
	o := gp.Options()

	for p := gamepad.P1; p < gamepad.NumPlayers; p++ {
		up := gp.Mapping(p, gamepad.InputUp)
		down := gp.Mapping(p, gamepad.InputDown)
		left := gp.Mapping(p, gamepad.InputLeft)
		right := gp.Mapping(p, gamepad.InputRight)

		dpad := r.input(up.Asserted(values), gamepad.MaskUp, gamepad.MaskDown, r.opts.ActionUp, o.InvertY) |
			r.input(down.Asserted(values), gamepad.MaskDown, gamepad.MaskUp, r.opts.ActionDown, o.InvertY) |
			r.input(left.Asserted(values), gamepad.MaskLeft, gamepad.MaskRight, r.opts.ActionLeft, o.InvertX) |
			r.input(right.Asserted(values), gamepad.MaskRight, gamepad.MaskLeft, r.opts.ActionRight, o.InvertX)
		gp.OverrideDpad(p, dpad)
	}

	if r.opts.LEDPin < gamepad.NumBankPins {
		r.pins.WritePin(r.opts.LEDPin, !r.reversed)
	}
}
