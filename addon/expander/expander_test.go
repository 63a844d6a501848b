package expander_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"periph.io/x/conn/v3/i2c/i2ctest"

	"github.com/Alia5/padcore/addon/expander"
	"github.com/Alia5/padcore/gamepad"
	th "github.com/Alia5/padcore/internal/testing"
	"github.com/Alia5/padcore/options"
)

const (
	addr   = 0x20
	intPin = th.FreePinA
)

func read(lo, hi byte) i2ctest.IO {
	return i2ctest.IO{Addr: addr, W: []byte{expander.InputRegister}, R: []byte{lo, hi}}
}

func configure(e *options.Expander) {
	e.Enabled = true
	e.Lines[0] = uint8(gamepad.InputB1)
	e.Lines[9] = uint8(gamepad.InputUp)
	e.Lines[15] = uint8(gamepad.InputS2)
}

func TestPolling(t *testing.T) {
	type testCase struct {
		name      string
		activeLow bool
		data      i2ctest.IO
		buttons   uint16
		dpad      uint8
	}

	cases := []testCase{
		{
			name:      "active-low lines",
			activeLow: true,
			data:      read(0b1111_0110, 0b1111_1101),
			buttons:   gamepad.MaskB1,
			dpad:      gamepad.MaskUp,
		},
		{
			name:      "active-high lines",
			activeLow: false,
			data:      read(0x00, 0x80),
			buttons:   gamepad.MaskS2,
		},
		{
			name:      "idle",
			activeLow: true,
			data:      read(0xFF, 0xFF),
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := th.NewRig(t, func(s *th.Store) {
				configure(&s.Addons.Expander)
				s.Addons.Expander.ActiveLow = tc.activeLow
			})
			bus := &i2ctest.Playback{Ops: []i2ctest.IO{tc.data}}
			e := expander.NewPolling(r.Store, bus, th.DiscardLogger())
			require.True(t, e.Available())
			require.NoError(t, e.Setup(r.Gamepad))

			r.Gamepad.Read()
			e.PreProcess(r.Gamepad, 0)
			r.Gamepad.Process()

			s := r.Gamepad.State(gamepad.P1)
			assert.Equal(t, tc.buttons, s.Buttons)
			assert.Equal(t, tc.dpad, s.Dpad)
			assert.NoError(t, bus.Close())
		})
	}
}

func TestPollingLinesGoThroughSOCD(t *testing.T) {
	r := th.NewRig(t, func(s *th.Store) {
		configure(&s.Addons.Expander)
	})
	bus := &i2ctest.Playback{Ops: []i2ctest.IO{read(0xFF, 0b1111_1101)}}
	e := expander.NewPolling(r.Store, bus, th.DiscardLogger())
	require.NoError(t, e.Setup(r.Gamepad))

	r.Press(gamepad.P1, gamepad.InputDown)
	r.Gamepad.Read()
	e.PreProcess(r.Gamepad, 0)
	r.Gamepad.Process()
	assert.Zero(t, r.Gamepad.State(gamepad.P1).Dpad)
}

func TestPollingBusFailure(t *testing.T) {
	r := th.NewRig(t, func(s *th.Store) {
		configure(&s.Addons.Expander)
	})
	bus := &th.Bus{Err: errors.New("nack")}
	e := expander.NewPolling(r.Store, bus, th.DiscardLogger())
	require.NoError(t, e.Setup(r.Gamepad))

	r.Press(gamepad.P1, gamepad.InputB4)
	for i := 0; i < 3; i++ {
		r.Gamepad.Read()
		e.PreProcess(r.Gamepad, uint32(i))
		r.Gamepad.Process()
		assert.Equal(t, gamepad.MaskB4, r.Gamepad.State(gamepad.P1).Buttons)
	}
	assert.Equal(t, uint64(3), e.Failures())
}

func TestPollingUnavailable(t *testing.T) {
	r := th.NewRig(t, nil)
	assert.False(t, expander.NewPolling(r.Store, &th.Bus{}, nil).Available())

	r.Store.Addons.Expander.Enabled = true
	assert.False(t, expander.NewPolling(r.Store, nil, nil).Available(), "no bus")
}

func TestInterrupt(t *testing.T) {
	r := th.NewRig(t, func(s *th.Store) {
		configure(&s.Addons.ExpanderInt)
		s.Addons.ExpanderInt.IntPin = intPin
	})
	bus := &i2ctest.Playback{Ops: []i2ctest.IO{read(0b1111_1110, 0xFF)}}
	e := expander.NewInterrupt(r.Store, r.Bank, bus, th.DiscardLogger())
	require.True(t, e.Available())
	require.NoError(t, e.Setup(r.Gamepad))

	step := func() uint16 {
		r.Gamepad.Read()
		e.PreProcess(r.Gamepad, 0)
		r.Gamepad.Process()
		return r.Gamepad.State(gamepad.P1).Buttons
	}

	assert.Zero(t, step(), "no interrupt, no read")

	r.Bank.Press(intPin)
	assert.Equal(t, gamepad.MaskB1, step())

	r.Bank.Release(intPin)
	assert.Equal(t, gamepad.MaskB1, step(), "cached lines are re-applied")
	assert.NoError(t, bus.Close())
}

func TestInterruptNeedsPin(t *testing.T) {
	r := th.NewRig(t, func(s *th.Store) {
		configure(&s.Addons.ExpanderInt)
	})
	assert.False(t, expander.NewInterrupt(r.Store, r.Bank, &th.Bus{}, nil).Available())
}
