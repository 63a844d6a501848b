package sim

import (
	"fmt"
	"sync"

	"github.com/Alia5/padcore/hal"
)

// Device answers transactions addressed to it on a Bus.
type Device interface {
	Tx(w, r []byte) error
}

// ErrNoDevice reports a transaction to an address nothing answers.
type ErrNoDevice struct{ Addr uint16 }

func (e ErrNoDevice) Error() string { return fmt.Sprintf("no device at 0x%02x", e.Addr) }

// Bus dispatches transactions by address.
type Bus struct {
	mu      sync.Mutex
	devices map[uint16]Device
	Calls   int
}

var _ hal.Bus = (*Bus)(nil)

func NewBus() *Bus {
	return &Bus{devices: map[uint16]Device{}}
}

// Attach places d at addr, replacing whatever was there.
func (b *Bus) Attach(addr uint16, d Device) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.devices[addr] = d
}

func (b *Bus) Detach(addr uint16) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.devices, addr)
}

func (b *Bus) Tx(addr uint16, w, r []byte) error {
	b.mu.Lock()
	b.Calls++
	d, ok := b.devices[addr]
	b.mu.Unlock()
	if !ok {
		return ErrNoDevice{Addr: addr}
	}
	return d.Tx(w, r)
}
