package reverse_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alia5/padcore/addon/reverse"
	"github.com/Alia5/padcore/gamepad"
	th "github.com/Alia5/padcore/internal/testing"
	"github.com/Alia5/padcore/options"
)

const (
	buttonPin = th.FreePinC
	ledPin    = th.FreePinD
)

func newReverse(t *testing.T, mutate func(*th.Store)) (*th.Rig, *reverse.Reverse) {
	t.Helper()
	r := th.NewRig(t, func(s *th.Store) {
		s.Addons.Reverse.Enabled = true
		s.Addons.Reverse.ButtonPin = buttonPin
		s.Addons.Reverse.LEDPin = ledPin
		if mutate != nil {
			mutate(s)
		}
	})
	rv := reverse.New(r.Store, r.Bank, th.DiscardLogger())
	require.True(t, rv.Available())
	require.NoError(t, rv.Setup(r.Gamepad))
	return r, rv
}

func TestReverse(t *testing.T) {
	type testCase struct {
		name     string
		mutate   func(*th.Store)
		held     bool
		inputs   []gamepad.Input
		expected uint8
	}

	cases := []testCase{
		{
			name:     "released passes directions",
			inputs:   []gamepad.Input{gamepad.InputUp, gamepad.InputLeft},
			expected: gamepad.MaskUp | gamepad.MaskLeft,
		},
		{
			name:     "held flips both axes",
			held:     true,
			inputs:   []gamepad.Input{gamepad.InputUp, gamepad.InputLeft},
			expected: gamepad.MaskDown | gamepad.MaskRight,
		},
		{
			name: "neutral action drops the direction",
			mutate: func(s *th.Store) {
				s.Addons.Reverse.ActionUp = options.ReverseNeutral
			},
			held:     true,
			inputs:   []gamepad.Input{gamepad.InputUp, gamepad.InputRight},
			expected: gamepad.MaskLeft,
		},
		{
			name: "ignore action keeps the direction",
			mutate: func(s *th.Store) {
				s.Addons.Reverse.ActionDown = options.ReverseIgnore
			},
			held:     true,
			inputs:   []gamepad.Input{gamepad.InputDown},
			expected: gamepad.MaskDown,
		},
		{
			name: "right uses its own action",
			mutate: func(s *th.Store) {
				s.Addons.Reverse.ActionLeft = options.ReverseIgnore
				s.Addons.Reverse.ActionRight = options.ReverseEnable
			},
			held:     true,
			inputs:   []gamepad.Input{gamepad.InputRight},
			expected: gamepad.MaskLeft,
		},
		{
			name: "held with inverted Y undoes the inversion",
			mutate: func(s *th.Store) {
				s.Gamepad.InvertY = true
			},
			held:     true,
			inputs:   []gamepad.Input{gamepad.InputUp},
			expected: gamepad.MaskUp,
		},
		{
			name: "released keeps inverted Y",
			mutate: func(s *th.Store) {
				s.Gamepad.InvertY = true
			},
			inputs:   []gamepad.Input{gamepad.InputUp},
			expected: gamepad.MaskDown,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r, rv := newReverse(t, tc.mutate)
			if tc.held {
				r.Bank.Press(buttonPin)
			}
			r.Press(gamepad.P1, tc.inputs...)
			r.Cycle()
			rv.Process(r.Gamepad, 0)

			assert.Equal(t, tc.held, rv.Reversed())
			assert.Equal(t, tc.expected, r.Gamepad.State(gamepad.P1).Dpad)
			assert.Equal(t, !tc.held, r.Bank.Level(ledPin), "led is active-low")
		})
	}
}

func TestReverseAppliesToBothPlayers(t *testing.T) {
	r, rv := newReverse(t, nil)
	r.Bank.Press(buttonPin)
	r.Press(gamepad.P2, gamepad.InputLeft)
	r.Cycle()
	rv.Process(r.Gamepad, 0)
	assert.Equal(t, gamepad.MaskRight, r.Gamepad.State(gamepad.P2).Dpad)
}

func TestReverseFollowsDpadMode(t *testing.T) {
	r, rv := newReverse(t, func(s *th.Store) {
		s.Gamepad.DpadMode = gamepad.DpadModeLeftAnalog
	})
	r.Bank.Press(buttonPin)
	r.Press(gamepad.P1, gamepad.InputLeft)
	r.Cycle()
	rv.Process(r.Gamepad, 0)

	s := r.Gamepad.State(gamepad.P1)
	assert.Zero(t, s.Dpad)
	assert.Equal(t, gamepad.JoystickMax, s.LX)
	assert.Equal(t, gamepad.MaskRight, r.Gamepad.Directions(gamepad.P1))
}
