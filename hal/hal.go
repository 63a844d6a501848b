// Package hal defines the pin, analog and bus primitives the controller core
// consumes, plus a periph.io backed implementation.
package hal

import (
	"periph.io/x/conn/v3/i2c"
)

// Direction of a digital pin.
type Direction uint8

const (
	Input Direction = iota
	Output
)

// Pull resistor configuration.
type Pull uint8

const (
	Float Pull = iota
	PullUp
	PullDown
)

// Pins is the digital/analog pin primitive set.
// Levels are electrical: true is high. Inputs wired to ground through a
// switch read low while pressed.
type Pins interface {
	ConfigurePin(pin uint8, dir Direction, pull Pull) error
	ReadPin(pin uint8) bool
	// ReadAll returns the level of every bank pin, bit n for pin n.
	ReadAll() uint32
	// ReadAnalog returns a 12-bit sample. Unknown channels read 0.
	ReadAnalog(channel uint8) uint16
	WritePin(pin uint8, level bool)
}

// Bus is a synchronous two-wire transaction primitive: write w, then read
// into r. Either may be empty.
type Bus interface {
	Tx(addr uint16, w, r []byte) error
}

var _ Bus = (i2c.Bus)(nil)

// ReadRegister writes the register address and reads len(buf) bytes back.
func ReadRegister(bus Bus, addr uint16, reg byte, buf []byte) error {
	return bus.Tx(addr, []byte{reg}, buf)
}

// WriteRegister writes a register address followed by data.
func WriteRegister(bus Bus, addr uint16, reg byte, data ...byte) error {
	w := make([]byte, 0, len(data)+1)
	w = append(w, reg)
	w = append(w, data...)
	return bus.Tx(addr, w, nil)
}
