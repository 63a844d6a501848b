package testing

import (
	"errors"
	"testing"

	"github.com/Alia5/padcore/gamepad"
	"github.com/Alia5/padcore/internal/sim"
	"github.com/Alia5/padcore/options"
)

// Bank is a simulated pin bank bound to a test.
type Bank struct {
	*sim.Bank
}

// NewBank returns a bank with every pin present and the simulated analog channels.
func NewBank(t *testing.T) *Bank {
	t.Helper()
	b, err := sim.NewBank(DiscardLogger())
	if err != nil {
		t.Fatalf("create pin bank: %v", err)
	}
	return &Bank{Bank: b}
}

// ErrSave is returned by Store.Save when FailSave is set.
var ErrSave = errors.New("store: save failed")

// Store is an in-memory options store that counts saves.
type Store struct {
	Gamepad  gamepad.Options
	Addons   options.Addons
	Saves    int
	FailSave bool
}

// NewStore returns a store holding the default records.
func NewStore() *Store {
	return &Store{Gamepad: gamepad.DefaultOptions(), Addons: options.DefaultAddons()}
}

func (s *Store) GamepadOptions() gamepad.Options { return s.Gamepad }

// SetGamepadOptions stores the record with a fresh checksum, like storage.Storage.
func (s *Store) SetGamepadOptions(o gamepad.Options) {
	o.Checksum = o.ComputeChecksum()
	s.Gamepad = o
}

func (s *Store) AddonOptions() options.Addons { return s.Addons }

func (s *Store) SetAddonOptions(a options.Addons) {
	a.Checksum = a.ComputeChecksum()
	s.Addons = a
}

func (s *Store) Save() error {
	if s.FailSave {
		return ErrSave
	}
	s.Saves++
	return nil
}

// Bus fails every transaction with Err.
type Bus struct {
	Err   error
	Calls int
}

func (b *Bus) Tx(uint16, []byte, []byte) error {
	b.Calls++
	return b.Err
}
