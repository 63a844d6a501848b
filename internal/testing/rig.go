package testing

import (
	"testing"

	"github.com/Alia5/padcore/gamepad"
)

// Pins of the shared test board. Player 1 uses 2-19 in input order, player 2
// has its directions and B1 on 22-26. The rest are free for addons.
const (
	SettingsPin uint8 = 28
	FreePinA    uint8 = 20
	FreePinB    uint8 = 21
	FreePinC    uint8 = 27
	FreePinD    uint8 = 29
)

// Pin returns the bank pin wired to an input on the test board.
func Pin(p gamepad.Player, i gamepad.Input) uint8 {
	if p == gamepad.P1 {
		return uint8(i) + 2
	}
	return uint8(i) + 22
}

// Config returns the test board without debouncing.
func Config() gamepad.Config {
	cfg := gamepad.DefaultConfig()
	for i := gamepad.InputUp; i < gamepad.NumInputs; i++ {
		cfg.Pins[gamepad.P1][i] = Pin(gamepad.P1, i)
	}
	for i := gamepad.InputUp; i <= gamepad.InputB1; i++ {
		cfg.Pins[gamepad.P2][i] = Pin(gamepad.P2, i)
	}
	cfg.SettingsPin = SettingsPin
	cfg.DebounceMS = 0
	return cfg
}

// Rig is a configured gamepad over a test bank and store.
type Rig struct {
	Bank    *Bank
	Store   *Store
	Gamepad *gamepad.Gamepad
}

// NewRig builds a rig. mutate may edit the stored records before the
// gamepad loads them; checksums are refreshed afterwards.
func NewRig(t *testing.T, mutate func(*Store)) *Rig {
	t.Helper()
	r := &Rig{Bank: NewBank(t), Store: NewStore()}
	if mutate != nil {
		mutate(r.Store)
		r.Store.Gamepad.Checksum = r.Store.Gamepad.ComputeChecksum()
		r.Store.Addons.Checksum = r.Store.Addons.ComputeChecksum()
	}
	r.Gamepad = gamepad.New(r.Bank, r.Store, nil)
	if err := r.Gamepad.Setup(Config()); err != nil {
		t.Fatalf("gamepad setup: %v", err)
	}
	return r
}

// Press holds inputs of a player.
func (r *Rig) Press(p gamepad.Player, inputs ...gamepad.Input) {
	for _, i := range inputs {
		r.Bank.Press(Pin(p, i))
	}
}

// Release lets inputs of a player go.
func (r *Rig) Release(p gamepad.Player, inputs ...gamepad.Input) {
	for _, i := range inputs {
		r.Bank.Release(Pin(p, i))
	}
}

// Cycle reads and processes the core state.
func (r *Rig) Cycle() {
	r.Gamepad.Read()
	r.Gamepad.Process()
}
