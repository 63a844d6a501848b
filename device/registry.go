package device

import (
	"fmt"
	"slices"
	"sync"

	"github.com/Alia5/padcore/gamepad"
)

// Registration describes a protocol encoder type.
type Registration interface {
	// Name is the protocol's configuration name.
	Name() string
	// NewEncoder returns a fresh encoder with its counters reset.
	NewEncoder() Encoder
}

var (
	encoderRegistry   = make(map[gamepad.InputMode]Registration)
	encoderRegistryMu sync.RWMutex
)

// Register registers a protocol encoder for an input mode.
// This should be called from encoder package init() functions.
func Register(mode gamepad.InputMode, reg Registration) {
	encoderRegistryMu.Lock()
	defer encoderRegistryMu.Unlock()
	encoderRegistry[mode] = reg
}

// GetRegistration returns the registration for mode, or nil if none exists.
func GetRegistration(mode gamepad.InputMode) Registration {
	encoderRegistryMu.RLock()
	defer encoderRegistryMu.RUnlock()
	return encoderRegistry[mode]
}

// NewEncoder creates an encoder for mode.
func NewEncoder(mode gamepad.InputMode) (Encoder, error) {
	reg := GetRegistration(mode)
	if reg == nil {
		return nil, fmt.Errorf("no encoder registered for input mode %s", mode)
	}
	return reg.NewEncoder(), nil
}

// Modes returns the registered input modes in ascending order.
func Modes() []gamepad.InputMode {
	encoderRegistryMu.RLock()
	defer encoderRegistryMu.RUnlock()
	modes := make([]gamepad.InputMode, 0, len(encoderRegistry))
	for m := range encoderRegistry {
		modes = append(modes, m)
	}
	slices.Sort(modes)
	return modes
}

type registration struct {
	name    string
	factory func() Encoder
}

func (r registration) Name() string        { return r.name }
func (r registration) NewEncoder() Encoder { return r.factory() }

// NewRegistration builds a Registration from a name and a factory.
func NewRegistration(name string, factory func() Encoder) Registration {
	return registration{name: name, factory: factory}
}
