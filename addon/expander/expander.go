// Package expander bridges a 16-line I/O expander into player 1's state.
// The bridge reads the input register pair with a single write-then-read
// transaction before SOCD resolution, so expander lines behave like pins.
package expander

import (
	"fmt"
	"log/slog"

	"github.com/Alia5/padcore/addon"
	"github.com/Alia5/padcore/gamepad"
	"github.com/Alia5/padcore/hal"
	"github.com/Alia5/padcore/options"
)

const (
	Name          = "expander"
	InterruptName = "expander-int"
)

// InputRegister is the first of the two input port registers.
const InputRegister = 0x00

type bridge struct {
	bus    hal.Bus
	opts   options.Expander
	health addon.BusHealth
	logger *slog.Logger
	buf    [2]byte
	last   uint16
}

// read returns the asserted lines, bit n for line n.
func (b *bridge) read() (uint16, bool) {
	if err := hal.ReadRegister(b.bus, b.opts.Address, InputRegister, b.buf[:]); err != nil {
		b.health.Fail(err)
		return 0, false
	}
	b.health.OK()
	v := uint16(b.buf[0]) | uint16(b.buf[1])<<8
	if b.opts.ActiveLow {
		v = ^v
	}
	if v != b.last {
		b.logger.Debug("expander lines changed", "lines", fmt.Sprintf("%04x", v))
		b.last = v
	}
	return v, true
}

func (b *bridge) apply(gp *gamepad.Gamepad, lines uint16) {
	if lines == 0 {
		return
	}
	s := gp.State(gamepad.P1)
	for line := 0; line < options.NumExpanderLines; line++ {
		if lines&(1<<line) == 0 {
			continue
		}
		if in, ok := b.opts.Input(line); ok {
			s.Inject(in)
		}
	}
}

func newBridge(bus hal.Bus, name string, logger *slog.Logger) bridge {
	if logger == nil {
		logger = slog.Default()
	}
	return bridge{
		bus:    bus,
		logger: logger.With("addon", name),
		health: addon.BusHealth{Name: name, Logger: logger},
	}
}

// Polling reads the expander every cycle.
type Polling struct {
	addon.Base
	bridge
	store addon.Store
}

func NewPolling(store addon.Store, bus hal.Bus, logger *slog.Logger) *Polling {
	return &Polling{store: store, bridge: newBridge(bus, Name, logger)}
}

func (p *Polling) Name() string { return Name }

func (p *Polling) Available() bool {
	return p.store.AddonOptions().Expander.Enabled && p.bus != nil
}

func (p *Polling) Setup(*gamepad.Gamepad) error {
	p.opts = p.store.AddonOptions().Expander
	return nil
}

// Failures returns the number of failed transactions.
func (p *Polling) Failures() uint64 { return p.health.Failures }

func (p *Polling) PreProcess(gp *gamepad.Gamepad, _ uint32) {
	if lines, ok := p.read(); ok {
		p.apply(gp, lines)
	}
}

// Interrupt reads the expander only while its interrupt line is asserted
// (low) and re-applies the last lines read on every other cycle.
type Interrupt struct {
	addon.Base
	bridge
	store  addon.Store
	pins   hal.Pins
	cached uint16
}

func NewInterrupt(store addon.Store, pins hal.Pins, bus hal.Bus, logger *slog.Logger) *Interrupt {
	return &Interrupt{store: store, pins: pins, bridge: newBridge(bus, InterruptName, logger)}
}

func (i *Interrupt) Name() string { return InterruptName }

func (i *Interrupt) Available() bool {
	o := i.store.AddonOptions().ExpanderInt
	return o.Enabled && o.IntPin < gamepad.NumBankPins && i.bus != nil
}

func (i *Interrupt) Setup(*gamepad.Gamepad) error {
	i.opts = i.store.AddonOptions().ExpanderInt
	if err := i.pins.ConfigurePin(i.opts.IntPin, hal.Input, hal.PullUp); err != nil {
		return fmt.Errorf("expander interrupt pin: %w", err)
	}
	i.cached = 0
	return nil
}

func (i *Interrupt) Failures() uint64 { return i.health.Failures }

func (i *Interrupt) PreProcess(gp *gamepad.Gamepad, _ uint32) {
	if !i.pins.ReadPin(i.opts.IntPin) {
		if lines, ok := i.read(); ok {
			i.cached = lines
		}
	}
	i.apply(gp, i.cached)
}
