package sim_test

import (
	"context"
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alia5/padcore/device/xinput"
	"github.com/Alia5/padcore/gamepad"
	"github.com/Alia5/padcore/internal/sim"
	th "github.com/Alia5/padcore/internal/testing"
	"github.com/Alia5/padcore/options"
	"github.com/Alia5/padcore/storage"
)

func TestPCA9555Registers(t *testing.T) {
	d := sim.NewPCA9555()
	buf := make([]byte, 2)

	require.NoError(t, d.Tx([]byte{sim.RegInput0}, buf))
	assert.Equal(t, []byte{0xFF, 0xFF}, buf, "inputs idle high")

	d.Assert(0x0101)
	require.NoError(t, d.Tx([]byte{sim.RegInput0}, buf))
	assert.Equal(t, []byte{0xFE, 0xFE}, buf)

	require.NoError(t, d.Tx([]byte{sim.RegPolarity0, 0xFF}, nil))
	require.NoError(t, d.Tx([]byte{sim.RegInput0}, buf))
	assert.Equal(t, []byte{0x01, 0xFE}, buf, "polarity inversion applies per port")

	require.NoError(t, d.Tx([]byte{sim.RegInput1}, buf))
	assert.Equal(t, []byte{0xFE, 0x01}, buf, "pointer toggles within the pair")

	require.NoError(t, d.Tx([]byte{sim.RegInput0, 0x00}, nil))
	assert.Equal(t, uint16(0xFEFE), d.Port(), "input port is read-only")

	assert.Error(t, d.Tx(nil, buf))
	assert.Error(t, d.Tx([]byte{0x08}, buf))
}

func TestPCA9555Interrupt(t *testing.T) {
	d := sim.NewPCA9555()
	var levels []bool
	d.Interrupt = func(level bool) { levels = append(levels, level) }

	d.Assert(0x0001)
	d.Assert(0x0001)
	require.NoError(t, d.Tx([]byte{sim.RegConfig0}, make([]byte, 1)))
	require.NoError(t, d.Tx([]byte{sim.RegInput0}, make([]byte, 2)))
	require.NoError(t, d.Tx([]byte{sim.RegInput0}, make([]byte, 2)))

	assert.Equal(t, []bool{false, true}, levels)
}

func TestBusDispatch(t *testing.T) {
	b := sim.NewBus()
	b.Attach(0x20, sim.NewPCA9555())

	buf := make([]byte, 2)
	require.NoError(t, b.Tx(0x20, []byte{sim.RegInput0}, buf))

	err := b.Tx(0x21, []byte{sim.RegInput0}, buf)
	var nd sim.ErrNoDevice
	require.True(t, errors.As(err, &nd))
	assert.Equal(t, uint16(0x21), nd.Addr)

	b.Detach(0x20)
	assert.Error(t, b.Tx(0x20, []byte{sim.RegInput0}, buf))
	assert.Equal(t, 3, b.Calls)
}

func TestDecodeTrace(t *testing.T) {
	type testCase struct {
		format string
		data   string
	}

	cases := []testCase{
		{"yaml", "cycleMs: 2\nsteps:\n  - press: [p1.b1]\n    cycles: 3\n    analog: {\"0\": 2048}\n  - releaseAll: true\n"},
		{"json", `{"cycleMs":2,"steps":[{"press":["p1.b1"],"cycles":3,"analog":{"0":2048}},{"releaseAll":true}]}`},
		{"toml", "cycleMs = 2\n[[steps]]\npress = [\"p1.b1\"]\ncycles = 3\n[steps.analog]\n\"0\" = 2048\n[[steps]]\nreleaseAll = true\n"},
	}

	for _, tc := range cases {
		t.Run(tc.format, func(t *testing.T) {
			tr, err := sim.DecodeTrace([]byte(tc.data), tc.format)
			require.NoError(t, err)
			assert.Equal(t, 2, tr.CycleMS)
			require.Len(t, tr.Steps, 2)
			assert.Equal(t, []string{"p1.b1"}, tr.Steps[0].Press)
			assert.Equal(t, 3, tr.Steps[0].Cycles)
			assert.Equal(t, 2048, tr.Steps[0].Analog["0"])
			assert.True(t, tr.Steps[1].ReleaseAll)
			assert.Equal(t, 1, tr.Steps[1].Cycles, "cycles default to one")
			assert.Equal(t, "step2", tr.Steps[1].Name)
		})
	}

	_, err := sim.DecodeTrace(nil, "ini")
	assert.ErrorIs(t, err, options.ErrUnknownFormat)
}

func TestLoadTrace(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trace.yml")
	require.NoError(t, os.WriteFile(path, []byte("steps:\n  - press: [gpio20]\n"), 0o644))

	tr, err := sim.LoadTrace(path)
	require.NoError(t, err)
	assert.Equal(t, sim.DefaultCycleMS, tr.CycleMS)

	_, err = sim.LoadTrace(filepath.Join(t.TempDir(), "trace.txt"))
	assert.ErrorIs(t, err, options.ErrUnknownFormat)
}

func TestResolvePin(t *testing.T) {
	type testCase struct {
		target   string
		expected uint8
		err      bool
	}

	cfg := th.Config()
	cases := []testCase{
		{target: "p1.b1", expected: th.Pin(gamepad.P1, gamepad.InputB1)},
		{target: " P2.Up ", expected: th.Pin(gamepad.P2, gamepad.InputUp)},
		{target: "gpio20", expected: 20},
		{target: "gpio30", err: true},
		{target: "p2.a1", err: true},
		{target: "p3.b1", err: true},
		{target: "b1", err: true},
		{target: "p1.zz", err: true},
	}

	for _, tc := range cases {
		t.Run(tc.target, func(t *testing.T) {
			pin, err := sim.ResolvePin(tc.target, cfg)
			if tc.err {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, pin)
		})
	}
}

func newSession(t *testing.T, mutate func(*options.File)) *sim.Session {
	t.Helper()
	f := options.DefaultFile()
	if mutate != nil {
		mutate(&f)
	}
	s, err := sim.NewSession(f, storage.NewMemoryMedium(nil), th.DiscardLogger())
	require.NoError(t, err)
	return s
}

func lastButtons(t *testing.T, sum sim.Summary) uint16 {
	t.Helper()
	var x xinput.InputState
	require.NoError(t, x.UnmarshalBinary(sum.Last))
	return x.Buttons
}

func TestSessionReplaysPins(t *testing.T) {
	s := newSession(t, nil)
	sum, err := s.Run(context.Background(), sim.Trace{CycleMS: 1, Steps: []sim.Step{
		{Name: "press", Press: []string{"p1.b1"}, Cycles: 10},
		{Name: "release", Release: []string{"p1.b1"}, Cycles: 10},
	}})
	require.NoError(t, err)

	assert.Equal(t, 2, sum.Steps)
	assert.Equal(t, uint64(20), sum.Cycles)
	assert.Equal(t, 19*time.Millisecond, sum.Elapsed)
	assert.Equal(t, uint64(20), s.Pipeline.Cycles())
	assert.Zero(t, lastButtons(t, sum))
	assert.GreaterOrEqual(t, sum.Changes, 2)
}

func TestSessionExpectations(t *testing.T) {
	s := newSession(t, func(f *options.File) { f.Board.DebounceMS = 0 })

	var want xinput.InputState
	want.Buttons = xinput.ButtonA
	want.LY, want.RY = -1, -1
	report := hex.EncodeToString(want.BuildReport())

	sum, err := s.Run(context.Background(), sim.Trace{CycleMS: 1, Steps: []sim.Step{
		{Name: "a", Press: []string{"p1.b1"}, Expect: report},
		{Name: "wrong", Expect: "00"},
	}})
	require.NoError(t, err)
	require.Len(t, sum.Mismatches, 1)
	assert.Equal(t, "wrong", sum.Mismatches[0].Step)
	assert.Equal(t, report, sum.Mismatches[0].Got)
}

func TestSessionExpanderInterrupt(t *testing.T) {
	s := newSession(t, func(f *options.File) {
		f.Board.DebounceMS = 0
		f.Addons.ExpanderInt.Enabled = true
		f.Addons.ExpanderInt.IntPin = 28
		f.Addons.ExpanderInt.Lines = map[string]string{"3": "b2"}
	})
	require.Equal(t, []string{"expander-int"}, s.Pipeline.Addons())

	sum, err := s.Run(context.Background(), sim.Trace{Steps: []sim.Step{
		{ExpanderPress: []int{3}, Cycles: 3},
	}})
	require.NoError(t, err)
	assert.Equal(t, uint16(xinput.ButtonB), lastButtons(t, sum))
	assert.True(t, s.Bank.Level(28), "interrupt released after the read")
	calls := s.Bus.Calls

	sum, err = s.Run(context.Background(), sim.Trace{Steps: []sim.Step{{Cycles: 5}}})
	require.NoError(t, err)
	assert.Equal(t, uint16(xinput.ButtonB), lastButtons(t, sum), "cached lines re-applied")
	assert.Equal(t, calls, s.Bus.Calls, "no reads without an interrupt")

	_, err = s.Run(context.Background(), sim.Trace{Steps: []sim.Step{{ExpanderPress: []int{16}}}})
	assert.Error(t, err)
}

func TestSessionRejectsUnknownTargets(t *testing.T) {
	s := newSession(t, nil)
	_, err := s.Run(context.Background(), sim.Trace{Steps: []sim.Step{{Name: "bad", Press: []string{"p2.r3"}}}})
	assert.ErrorContains(t, err, "bad")

	_, err = s.Run(context.Background(), sim.Trace{Steps: []sim.Step{{Analog: map[string]int{"9": 1}}}})
	assert.Error(t, err)
}

func TestSessionStopsOnCancel(t *testing.T) {
	s := newSession(t, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := s.Run(ctx, sim.Trace{Steps: []sim.Step{{Cycles: 5}}})
	assert.ErrorIs(t, err, context.Canceled)
}
