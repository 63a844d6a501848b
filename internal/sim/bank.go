// Package sim drives the controller pipeline without hardware: a gpiotest
// pin bank, an emulated PCA9555 expander on a software bus, and a scripted
// input trace.
package sim

import (
	"log/slog"
	"strconv"
	"sync"

	"periph.io/x/conn/v3/analog"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpiotest"

	"github.com/Alia5/padcore/hal"
)

// NumADC is the number of analog channels on the simulated bank.
const NumADC = 4

// Bank is a full pin bank of gpiotest pins behind hal.Periph. Every pin
// starts high (released).
type Bank struct {
	*hal.Periph
	Pins [hal.NumBankPins]*gpiotest.Pin
	ADCs map[uint8]*ADC
}

func NewBank(logger *slog.Logger) (*Bank, error) {
	b := &Bank{ADCs: make(map[uint8]*ADC, NumADC)}
	pins := make(map[uint8]gpio.PinIO, hal.NumBankPins)
	for n := range b.Pins {
		b.Pins[n] = &gpiotest.Pin{N: "GPIO" + strconv.Itoa(n), Num: n, L: gpio.High}
		pins[uint8(n)] = b.Pins[n]
	}
	adcs := make(map[uint8]hal.ADC, NumADC)
	for ch := uint8(0); ch < NumADC; ch++ {
		b.ADCs[ch] = &ADC{}
		adcs[ch] = b.ADCs[ch]
	}
	p, err := hal.NewPeriph(pins, adcs, logger)
	if err != nil {
		return nil, err
	}
	b.Periph = p
	return b, nil
}

// Press pulls pins low.
func (b *Bank) Press(pins ...uint8) {
	for _, n := range pins {
		if int(n) < len(b.Pins) {
			_ = b.Pins[n].Out(gpio.Low)
		}
	}
}

// Release lets pins float back high.
func (b *Bank) Release(pins ...uint8) {
	for _, n := range pins {
		if int(n) < len(b.Pins) {
			_ = b.Pins[n].Out(gpio.High)
		}
	}
}

func (b *Bank) ReleaseAll() {
	for _, p := range b.Pins {
		_ = p.Out(gpio.High)
	}
}

// Level returns the electrical level of a pin.
func (b *Bank) Level(n uint8) bool {
	return bool(b.Pins[n].Read())
}

// Pull returns the pull configured on a pin.
func (b *Bank) Pull(n uint8) gpio.Pull {
	return b.Pins[n].Pull()
}

// SetAnalog sets the raw sample returned by a channel. Unknown channels are ignored.
func (b *Bank) SetAnalog(ch uint8, raw int32) {
	if a, ok := b.ADCs[ch]; ok {
		a.Set(raw)
	}
}

// ADC is a settable analog channel.
type ADC struct {
	mu     sync.Mutex
	sample analog.Sample
	Err    error
}

func (a *ADC) Set(raw int32) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.sample = analog.Sample{Raw: raw}
}

func (a *ADC) Read() (analog.Sample, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.sample, a.Err
}
