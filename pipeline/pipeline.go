// Package pipeline runs one controller poll cycle: read, addon pre-process,
// core processing, debounce, addon process, hotkeys and report encoding.
package pipeline

import (
	"fmt"
	"log/slog"

	"github.com/Alia5/padcore/addon"
	"github.com/Alia5/padcore/addon/expander"
	"github.com/Alia5/padcore/addon/reverse"
	"github.com/Alia5/padcore/addon/turbo"
	"github.com/Alia5/padcore/addon/wiiext"
	"github.com/Alia5/padcore/device"
	"github.com/Alia5/padcore/gamepad"
	"github.com/Alia5/padcore/hal"
	"github.com/Alia5/padcore/internal/log"

	_ "github.com/Alia5/padcore/internal/registry" // Register report encoders
)

// Store is the persisted configuration used by the core and the addons.
type Store interface {
	gamepad.OptionsStore
	addon.Store
}

// DefaultAddons returns every addon in run order. Input sources come first so
// their lines pass through SOCD and debouncing, then reverse rewrites
// directions, then turbo gates everything before it.
func DefaultAddons(store addon.Store, pins hal.Pins, bus hal.Bus, logger *slog.Logger) []addon.Addon {
	return []addon.Addon{
		expander.NewPolling(store, bus, logger),
		expander.NewInterrupt(store, pins, bus, logger),
		wiiext.New(store, bus, logger),
		reverse.New(store, pins, logger),
		turbo.New(store, pins, logger),
	}
}

// Observer receives the processed state and encoded report of every cycle.
type Observer interface {
	Observe(cycle uint64, gp *gamepad.Gamepad, report []byte)
}

// Pipeline owns one gamepad session. It is not safe for concurrent use.
type Pipeline struct {
	gp      *gamepad.Gamepad
	addons  *addon.Manager
	clock   Clock
	logger  *slog.Logger
	raw     log.RawLogger
	observe []Observer

	mode    gamepad.InputMode
	encoder device.Encoder
	cycles  uint64
}

type Option func(*Pipeline)

// WithRawLogger dumps every encoded report.
func WithRawLogger(r log.RawLogger) Option {
	return func(p *Pipeline) { p.raw = r }
}

// WithObserver adds a per-cycle observer.
func WithObserver(o Observer) Option {
	return func(p *Pipeline) { p.observe = append(p.observe, o) }
}

// New builds a pipeline over a configured gamepad and a loaded addon manager.
// The encoder follows the gamepad's input mode.
func New(gp *gamepad.Gamepad, addons *addon.Manager, clock Clock, logger *slog.Logger, opts ...Option) (*Pipeline, error) {
	if logger == nil {
		logger = slog.Default()
	}
	p := &Pipeline{
		gp:     gp,
		addons: addons,
		clock:  clock,
		logger: logger,
	}
	for _, o := range opts {
		o(p)
	}
	if err := p.selectEncoder(gp.Options().InputMode); err != nil {
		return nil, err
	}
	return p, nil
}

// Build wires a complete session: gamepad setup, the default addons in their
// fixed order, and the encoder.
func Build(cfg gamepad.Config, store Store, pins hal.Pins, bus hal.Bus, clock Clock, logger *slog.Logger, opts ...Option) (*Pipeline, error) {
	if logger == nil {
		logger = slog.Default()
	}
	gp := gamepad.New(pins, store, logger)
	if err := gp.Setup(cfg); err != nil {
		return nil, fmt.Errorf("gamepad setup: %w", err)
	}
	m := addon.NewManager(logger)
	m.Load(gp, DefaultAddons(store, pins, bus, logger)...)
	return New(gp, m, clock, logger, opts...)
}

func (p *Pipeline) selectEncoder(mode gamepad.InputMode) error {
	enc, err := device.NewEncoder(mode)
	if err != nil {
		return err
	}
	p.mode, p.encoder = mode, enc
	p.logger.Info("report encoder selected", "mode", mode)
	return nil
}

// Tick runs one cycle and returns the encoded report.
func (p *Pipeline) Tick() []byte {
	now := p.clock.Millis()
	p.cycles++

	p.gp.Read()
	p.addons.PreProcess(p.gp, now)
	p.gp.Process()
	p.gp.Debounce(now)
	p.addons.Process(p.gp, now)
	if action := p.gp.Hotkey(); action != gamepad.HotkeyNone {
		p.logger.Debug("hotkey", "action", action, "cycle", p.cycles)
	}

	if mode := p.gp.Options().InputMode; mode != p.mode {
		if err := p.selectEncoder(mode); err != nil {
			p.logger.Error("keeping previous encoder", "mode", mode, "error", err)
		}
	}
	report := p.encoder.Encode(p.gp)

	if p.raw != nil {
		p.raw.Log(false, report)
	}
	for _, o := range p.observe {
		o.Observe(p.cycles, p.gp, report)
	}
	return report
}

func (p *Pipeline) Gamepad() *gamepad.Gamepad { return p.gp }

// Addons returns the active addon names in run order.
func (p *Pipeline) Addons() []string { return p.addons.Active() }

func (p *Pipeline) Cycles() uint64 { return p.cycles }

func (p *Pipeline) Mode() gamepad.InputMode { return p.mode }
