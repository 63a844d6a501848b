package turbo_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alia5/padcore/addon/turbo"
	"github.com/Alia5/padcore/gamepad"
	th "github.com/Alia5/padcore/internal/testing"
	"github.com/Alia5/padcore/options"
)

const (
	buttonPin = th.FreePinA
	ledPin    = th.FreePinB
	chargePin = th.FreePinC
)

type fixture struct {
	*th.Rig
	turbo *turbo.Turbo
}

func newFixture(t *testing.T, mutate func(*options.Turbo)) *fixture {
	t.Helper()
	r := th.NewRig(t, func(s *th.Store) {
		s.Addons.Turbo.Enabled = true
		s.Addons.Turbo.ButtonPin = buttonPin
		s.Addons.Turbo.LEDPin = ledPin
		s.Addons.Turbo.ShotCount = 10
		if mutate != nil {
			mutate(&s.Addons.Turbo)
		}
	})
	f := &fixture{Rig: r, turbo: turbo.New(r.Store, r.Bank, th.DiscardLogger())}
	require.True(t, f.turbo.Available())
	require.NoError(t, f.turbo.Setup(r.Gamepad))
	return f
}

func (f *fixture) step(now uint32) *gamepad.State {
	f.Cycle()
	f.turbo.Process(f.Gamepad, now)
	return f.Gamepad.State(gamepad.P1)
}

func TestAvailable(t *testing.T) {
	r := th.NewRig(t, nil)
	assert.False(t, turbo.New(r.Store, r.Bank, nil).Available())

	r.Store.Addons.Turbo.Enabled = true
	assert.False(t, turbo.New(r.Store, r.Bank, nil).Available(), "no button pin")

	r.Store.Addons.Turbo.ButtonPin = buttonPin
	assert.True(t, turbo.New(r.Store, r.Bank, nil).Available())
}

func TestSetup(t *testing.T) {
	f := newFixture(t, nil)
	assert.Equal(t, uint8(10), f.turbo.Shots())
	assert.Equal(t, uint32(100), f.turbo.Interval())
	assert.True(t, f.Bank.Level(ledPin), "led starts off")
	assert.Zero(t, f.turbo.Enabled())
}

func TestToggleAndFlicker(t *testing.T) {
	f := newFixture(t, nil)

	f.Bank.Press(buttonPin)
	f.Press(gamepad.P1, gamepad.InputB1)
	s := f.step(0)
	assert.Equal(t, gamepad.MaskB1, f.turbo.Enabled())
	assert.Zero(t, s.Buttons, "toggle press is not reported")
	assert.Zero(t, f.step(1).Buttons)
	assert.Equal(t, gamepad.MaskB1, f.turbo.Enabled(), "holding does not toggle again")

	f.Bank.Release(buttonPin)
	assert.Equal(t, gamepad.MaskB1, f.step(2).Buttons)
	assert.False(t, f.Bank.Level(ledPin), "led lit while a turbo button is active")
	assert.True(t, f.turbo.OffPhase())

	assert.Zero(t, f.step(50).Buttons)
	assert.True(t, f.Bank.Level(ledPin))
	assert.Zero(t, f.step(102).Buttons)
	assert.False(t, f.turbo.OffPhase())
	assert.Equal(t, gamepad.MaskB1, f.step(103).Buttons)
}

func TestToggleOff(t *testing.T) {
	f := newFixture(t, nil)
	f.Bank.Press(buttonPin)

	f.Press(gamepad.P1, gamepad.InputB2)
	f.step(0)
	f.Release(gamepad.P1, gamepad.InputB2)
	f.step(1)
	f.Press(gamepad.P1, gamepad.InputB2)
	f.step(2)
	assert.Zero(t, f.turbo.Enabled())
}

func TestIneligibleButtonsPassThrough(t *testing.T) {
	f := newFixture(t, nil)
	f.Bank.Press(buttonPin)
	f.Press(gamepad.P1, gamepad.InputS2)
	assert.Equal(t, gamepad.MaskS2, f.step(0).Buttons)
	assert.Zero(t, f.turbo.Enabled())
}

func TestPlayerTwoToggle(t *testing.T) {
	f := newFixture(t, nil)
	f.Bank.Press(buttonPin)
	f.Press(gamepad.P2, gamepad.InputB1)
	f.step(0)
	assert.Equal(t, gamepad.MaskB1, f.turbo.Enabled())
	assert.Zero(t, f.Gamepad.State(gamepad.P2).Buttons)
}

func TestRateChange(t *testing.T) {
	f := newFixture(t, nil)
	f.Bank.Press(buttonPin)

	f.Press(gamepad.P1, gamepad.InputUp)
	f.step(0)
	f.step(1)
	assert.Equal(t, uint8(11), f.turbo.Shots())
	assert.Equal(t, uint8(11), f.Store.Addons.Turbo.ShotCount)
	assert.Equal(t, 1, f.Store.Saves)
	assert.True(t, f.Store.Addons.Valid())

	f.Release(gamepad.P1, gamepad.InputUp)
	f.step(2)
	f.Press(gamepad.P1, gamepad.InputDown)
	f.step(3)
	assert.Equal(t, uint8(10), f.turbo.Shots())
	assert.Equal(t, uint32(100), f.turbo.Interval())
	assert.Equal(t, 2, f.Store.Saves)
}

func TestRateClamped(t *testing.T) {
	f := newFixture(t, func(o *options.Turbo) { o.ShotCount = options.TurboShotMax })
	f.Bank.Press(buttonPin)
	f.Press(gamepad.P1, gamepad.InputUp)
	f.step(0)
	assert.Equal(t, uint8(options.TurboShotMax), f.turbo.Shots())
	assert.Zero(t, f.Store.Saves)
}

func TestDial(t *testing.T) {
	r := th.NewRig(t, func(s *th.Store) {
		s.Addons.Turbo.Enabled = true
		s.Addons.Turbo.ButtonPin = buttonPin
		s.Addons.Turbo.LEDPin = gamepad.PinUnassigned
		s.Addons.Turbo.DialChannel = 0
	})
	r.Bank.SetAnalog(0, 0xFFF)
	tb := turbo.New(r.Store, r.Bank, th.DiscardLogger())
	require.NoError(t, tb.Setup(r.Gamepad))
	assert.Equal(t, uint8(options.TurboShotMax), tb.Shots())

	r.Bank.SetAnalog(0, 0)
	r.Cycle()
	tb.Process(r.Gamepad, 0)
	assert.Equal(t, uint8(options.TurboShotMin), tb.Shots())
	assert.Zero(t, r.Store.Saves, "dial rate is not persisted")
}

func TestShmupChargeButtons(t *testing.T) {
	type testCase struct {
		name     string
		mix      options.MixMode
		expected uint16
	}

	cases := []testCase{
		{name: "charge priority keeps charge buttons", mix: options.MixChargePriority, expected: gamepad.MaskB3},
		{name: "turbo priority flickers them", mix: options.MixTurboPriority, expected: 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t, func(o *options.Turbo) {
				o.Shmup = true
				o.MixMode = tc.mix
				o.AlwaysOn = gamepad.MaskB3 | gamepad.MaskB4
				o.ChargePins[0] = chargePin
				o.ChargeMasks[0] = gamepad.MaskB3
			})
			assert.Equal(t, gamepad.MaskB3|gamepad.MaskB4, f.turbo.Enabled())

			f.Bank.Press(chargePin)
			f.Press(gamepad.P1, gamepad.InputB4)
			assert.Equal(t, gamepad.MaskB3|gamepad.MaskB4, f.step(0).Buttons)
			assert.Equal(t, tc.expected, f.step(10).Buttons)
		})
	}
}
