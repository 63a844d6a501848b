package sim

import (
	"errors"
	"sync"
)

// PCA9555 register map.
const (
	RegInput0    = 0x00
	RegInput1    = 0x01
	RegOutput0   = 0x02
	RegOutput1   = 0x03
	RegPolarity0 = 0x04
	RegPolarity1 = 0x05
	RegConfig0   = 0x06
	RegConfig1   = 0x07

	numRegisters = 8
)

// PCA9555 emulates a 16-line I/O expander. Inputs idle high behind the
// part's pull-ups. The interrupt output goes low when an input changes and
// is released when the input port is read.
type PCA9555 struct {
	mu    sync.Mutex
	regs  [numRegisters]byte
	port  uint16
	dirty bool

	// Optional interrupt line; called with false to assert, true to release.
	Interrupt func(level bool)
}

func NewPCA9555() *PCA9555 {
	d := &PCA9555{port: 0xFFFF}
	d.regs[RegOutput0], d.regs[RegOutput1] = 0xFF, 0xFF
	d.regs[RegConfig0], d.regs[RegConfig1] = 0xFF, 0xFF
	return d
}

// SetPort sets the electrical level of all sixteen lines, bit n for line n.
func (d *PCA9555) SetPort(v uint16) {
	d.mu.Lock()
	changed := v != d.port
	d.port = v
	if changed {
		d.dirty = true
	}
	irq := d.Interrupt
	d.mu.Unlock()
	if changed && irq != nil {
		irq(false)
	}
}

// Assert drives the given lines low and releases every other line.
func (d *PCA9555) Assert(lines uint16) {
	d.SetPort(^lines)
}

func (d *PCA9555) Port() uint16 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.port
}

// Register returns a register value as the host would read it.
func (d *PCA9555) Register(reg byte) byte {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.read(reg)
}

func (d *PCA9555) read(reg byte) byte {
	switch reg {
	case RegInput0:
		return byte(d.port) ^ d.regs[RegPolarity0]
	case RegInput1:
		return byte(d.port>>8) ^ d.regs[RegPolarity1]
	}
	return d.regs[reg]
}

// Tx handles a command byte followed by optional data, then reads. The
// register pointer toggles within its pair on each byte, like the part.
func (d *PCA9555) Tx(w, r []byte) error {
	if len(w) == 0 {
		return errors.New("pca9555: missing command byte")
	}
	ptr := w[0]
	if ptr >= numRegisters {
		return errors.New("pca9555: invalid register")
	}

	d.mu.Lock()
	for _, b := range w[1:] {
		if ptr > RegInput1 {
			d.regs[ptr] = b
		}
		ptr ^= 1
	}
	readInput := false
	for i := range r {
		r[i] = d.read(ptr)
		if ptr <= RegInput1 {
			readInput = true
		}
		ptr ^= 1
	}
	release := readInput && d.dirty
	if readInput {
		d.dirty = false
	}
	irq := d.Interrupt
	d.mu.Unlock()

	if release && irq != nil {
		irq(true)
	}
	return nil
}
