package sim

import (
	"context"
	"encoding/hex"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/Alia5/padcore/gamepad"
	"github.com/Alia5/padcore/options"
	"github.com/Alia5/padcore/pipeline"
	"github.com/Alia5/padcore/storage"
)

// Session is a complete pipeline over simulated hardware.
type Session struct {
	Bank     *Bank
	Bus      *Bus
	Expander *PCA9555
	Storage  *storage.Storage
	Pipeline *pipeline.Pipeline
	Config   gamepad.Config

	clock  advancer
	logger *slog.Logger
}

type advancer interface {
	clockwork.Clock
	Advance(d time.Duration)
}

// NewSession opens storage over medium with the file's defaults, attaches an
// emulated expander at every enabled expander address and builds the
// pipeline. The expander interrupt output drives the configured bank pin.
func NewSession(file options.File, medium storage.Medium, logger *slog.Logger, opts ...pipeline.Option) (*Session, error) {
	if logger == nil {
		logger = slog.Default()
	}
	cfg, err := file.Board.GamepadConfig()
	if err != nil {
		return nil, err
	}
	defGamepad, err := file.Gamepad.Options()
	if err != nil {
		return nil, fmt.Errorf("gamepad defaults: %w", err)
	}
	defAddons, err := file.Addons.Addons()
	if err != nil {
		return nil, fmt.Errorf("addon defaults: %w", err)
	}
	store, err := storage.Open(medium, defGamepad, defAddons, logger)
	if err != nil {
		return nil, err
	}

	bank, err := NewBank(logger)
	if err != nil {
		return nil, err
	}
	s := &Session{
		Bank:     bank,
		Bus:      NewBus(),
		Expander: NewPCA9555(),
		Storage:  store,
		Config:   cfg,
		clock:    clockwork.NewFakeClock(),
		logger:   logger,
	}

	a := store.AddonOptions()
	if a.Expander.Enabled {
		s.Bus.Attach(a.Expander.Address, s.Expander)
	}
	if a.ExpanderInt.Enabled {
		s.Bus.Attach(a.ExpanderInt.Address, s.Expander)
		if pin := a.ExpanderInt.IntPin; pin < gamepad.NumBankPins {
			s.Expander.Interrupt = func(level bool) {
				if level {
					bank.Release(pin)
				} else {
					bank.Press(pin)
				}
			}
		}
	}

	s.Pipeline, err = pipeline.Build(cfg, store, bank, s.Bus, pipeline.NewClock(s.clock), logger, opts...)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// Mismatch is a step whose last report differed from its expectation.
type Mismatch struct {
	Step     string
	Cycle    uint64
	Expected string
	Got      string
}

type Summary struct {
	Steps      int
	Cycles     uint64
	Elapsed    time.Duration
	Changes    int
	Last       []byte
	Mismatches []Mismatch
}

// Run replays a trace. The clock advances by the trace's cycle period
// before every cycle after the first.
func (s *Session) Run(ctx context.Context, t Trace) (Summary, error) {
	var sum Summary
	period := time.Duration(t.CycleMS) * time.Millisecond
	if period <= 0 {
		period = DefaultCycleMS * time.Millisecond
	}
	var prev []byte

	for _, step := range t.Steps {
		if err := s.apply(step); err != nil {
			return sum, fmt.Errorf("%s: %w", step.Name, err)
		}
		s.logger.Debug("trace step", "step", step.Name, "cycles", step.Cycles)
		for range step.Cycles {
			if err := ctx.Err(); err != nil {
				return sum, err
			}
			if sum.Cycles > 0 {
				s.clock.Advance(period)
				sum.Elapsed += period
			}
			report := s.Pipeline.Tick()
			sum.Cycles++
			if prev == nil || string(prev) != string(report) {
				sum.Changes++
				prev = append(prev[:0], report...)
			}
		}
		sum.Steps++
		if step.Expect != "" {
			got := hex.EncodeToString(prev)
			if want := normalizeHex(step.Expect); want != got {
				sum.Mismatches = append(sum.Mismatches, Mismatch{Step: step.Name, Cycle: sum.Cycles, Expected: want, Got: got})
			}
		}
	}
	sum.Last = prev
	return sum, nil
}

func (s *Session) apply(step Step) error {
	if step.ReleaseAll {
		s.Bank.ReleaseAll()
		s.Expander.Assert(0)
	}
	for _, list := range []struct {
		targets []string
		set     func(...uint8)
	}{
		{step.Release, s.Bank.Release},
		{step.Press, s.Bank.Press},
	} {
		for _, target := range list.targets {
			pin, err := ResolvePin(target, s.Config)
			if err != nil {
				return err
			}
			list.set(pin)
		}
	}

	asserted := ^s.Expander.Port()
	for _, l := range step.ExpanderRelease {
		if l < 0 || l >= options.NumExpanderLines {
			return fmt.Errorf("expander line %d out of range", l)
		}
		asserted &^= 1 << l
	}
	for _, l := range step.ExpanderPress {
		if l < 0 || l >= options.NumExpanderLines {
			return fmt.Errorf("expander line %d out of range", l)
		}
		asserted |= 1 << l
	}
	s.Expander.Assert(asserted)

	for key, raw := range step.Analog {
		ch, err := strconv.Atoi(key)
		if err != nil || ch < 0 || ch >= NumADC {
			return fmt.Errorf("invalid analog channel %q", key)
		}
		s.Bank.SetAnalog(uint8(ch), int32(raw))
	}
	return nil
}

func normalizeHex(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'A' && c <= 'F':
			out = append(out, c+('a'-'A'))
		case c >= '0' && c <= '9', c >= 'a' && c <= 'f':
			out = append(out, c)
		}
	}
	return string(out)
}
