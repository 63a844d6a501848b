package cmd

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/Alia5/padcore/gamepad"
	"github.com/Alia5/padcore/internal/log"
	"github.com/Alia5/padcore/internal/monitor"
	"github.com/Alia5/padcore/internal/sim"
	"github.com/Alia5/padcore/options"
	"github.com/Alia5/padcore/pipeline"
	"github.com/Alia5/padcore/storage"
)

// Simulate replays an input trace through the full pipeline on simulated
// hardware.
type Simulate struct {
	Board   string        `help:"Board file (json, yaml or toml); built-in defaults when empty" type:"path" env:"PADCORE_BOARD"`
	Trace   string        `help:"Input trace to replay" type:"path" env:"PADCORE_TRACE"`
	Storage string        `help:"Options image file; kept in memory when empty" type:"path" env:"PADCORE_STORAGE"`
	Monitor string        `help:"Serve live state as websocket JSON on this address, e.g. 127.0.0.1:8754" env:"PADCORE_MONITOR"`
	Pace    bool          `help:"Sleep one trace period between cycles so monitor clients can follow" default:"false"`
	Linger  time.Duration `help:"Keep the monitor running this long after the trace ends" default:"0s"`

	Out io.Writer `kong:"-"`
}

// Run is called by Kong when the simulate command is executed.
func (s *Simulate) Run(logger *slog.Logger, rawLogger log.RawLogger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return s.Simulate(ctx, logger, rawLogger)
}

func (s *Simulate) Simulate(ctx context.Context, logger *slog.Logger, rawLogger log.RawLogger) error {
	if s.Trace == "" {
		return errors.New("missing --trace")
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	out := s.Out
	if out == nil {
		out = os.Stdout
	}

	file, err := loadBoard(s.Board)
	if err != nil {
		return err
	}
	trace, err := sim.LoadTrace(s.Trace)
	if err != nil {
		return err
	}

	var opts []pipeline.Option
	if rawLogger != nil {
		opts = append(opts, pipeline.WithRawLogger(rawLogger))
	}

	var mon *monitor.Server
	if s.Monitor != "" {
		mon = monitor.NewServer(clockwork.NewRealClock(), logger)
		addr, errCh, err := mon.ListenAndServe(ctx, s.Monitor)
		if err != nil {
			return fmt.Errorf("monitor: %w", err)
		}
		_, _ = fmt.Fprintf(out, "monitor: ws://%s/ws\n", addr)
		defer func() {
			cancel()
			if err := <-errCh; err != nil {
				logger.Warn("monitor stopped", "error", err)
			}
		}()
		opts = append(opts, pipeline.WithObserver(mon.Broadcaster))
		if s.Pace {
			opts = append(opts, pipeline.WithObserver(pacer(time.Duration(trace.CycleMS)*time.Millisecond)))
		}
	}

	var medium storage.Medium = storage.NewMemoryMedium(nil)
	if s.Storage != "" {
		medium = storage.FileMedium{Path: s.Storage}
	}
	session, err := sim.NewSession(file, medium, logger, opts...)
	if err != nil {
		return err
	}
	logger.Info("simulation ready",
		"mode", session.Pipeline.Mode(),
		"addons", session.Pipeline.Addons(),
		"steps", len(trace.Steps))

	sum, err := session.Run(ctx, trace)
	if err != nil {
		return err
	}
	printSummary(out, sum, session)

	if mon != nil && s.Linger > 0 {
		select {
		case <-ctx.Done():
		case <-time.After(s.Linger):
		}
	}
	if n := len(sum.Mismatches); n > 0 {
		return fmt.Errorf("%d step(s) did not produce the expected report", n)
	}
	return nil
}

func printSummary(w io.Writer, sum sim.Summary, s *sim.Session) {
	_, _ = fmt.Fprintf(w, "steps: %d\ncycles: %d\nsimulated: %s\nreport changes: %d\n",
		sum.Steps, sum.Cycles, sum.Elapsed, sum.Changes)
	_, _ = fmt.Fprintf(w, "mode: %s\naddons: %v\n", s.Pipeline.Mode(), s.Pipeline.Addons())
	_, _ = fmt.Fprintf(w, "last report: %s\n", hex.EncodeToString(sum.Last))
	for _, m := range sum.Mismatches {
		_, _ = fmt.Fprintf(w, "mismatch %s (cycle %d): want %s got %s\n", m.Step, m.Cycle, m.Expected, m.Got)
	}
}

// loadBoard reads a board file, or returns the defaults for an empty path.
func loadBoard(path string) (options.File, error) {
	if path == "" {
		return options.DefaultFile(), nil
	}
	return options.Load(path)
}

type pacer time.Duration

func (p pacer) Observe(uint64, *gamepad.Gamepad, []byte) {
	time.Sleep(time.Duration(p))
}
