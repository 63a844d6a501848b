package hal

import (
	"fmt"
	"log/slog"

	"periph.io/x/conn/v3/analog"
	"periph.io/x/conn/v3/gpio"
)

// NumBankPins is the size of the digital pin bank.
const NumBankPins = 30

// ADC is the sampling side of analog.PinADC.
type ADC interface {
	Read() (analog.Sample, error)
}

// Periph maps bank pin numbers onto periph.io pins and analog channels onto
// ADC inputs. Missing pins read high (released) and ignore writes.
type Periph struct {
	pins   [NumBankPins]gpio.PinIO
	adcs   map[uint8]ADC
	logger *slog.Logger
}

// NewPeriph builds a bank from the given pins. Keys are bank pin numbers.
func NewPeriph(pins map[uint8]gpio.PinIO, adcs map[uint8]ADC, logger *slog.Logger) (*Periph, error) {
	if logger == nil {
		logger = slog.Default()
	}
	p := &Periph{adcs: adcs, logger: logger}
	for n, pin := range pins {
		if int(n) >= NumBankPins {
			return nil, fmt.Errorf("pin %d outside bank (0-%d)", n, NumBankPins-1)
		}
		p.pins[n] = pin
	}
	if p.adcs == nil {
		p.adcs = map[uint8]ADC{}
	}
	return p, nil
}

func (p *Periph) pin(n uint8) gpio.PinIO {
	if int(n) >= NumBankPins {
		return nil
	}
	return p.pins[n]
}

func (p *Periph) ConfigurePin(n uint8, dir Direction, pull Pull) error {
	pin := p.pin(n)
	if pin == nil {
		return fmt.Errorf("pin %d not present", n)
	}
	if dir == Output {
		if err := pin.Out(gpio.High); err != nil {
			return fmt.Errorf("configure pin %d as output: %w", n, err)
		}
		return nil
	}
	gp := gpio.Float
	switch pull {
	case PullUp:
		gp = gpio.PullUp
	case PullDown:
		gp = gpio.PullDown
	}
	if err := pin.In(gp, gpio.NoEdge); err != nil {
		return fmt.Errorf("configure pin %d as input: %w", n, err)
	}
	return nil
}

func (p *Periph) ReadPin(n uint8) bool {
	pin := p.pin(n)
	if pin == nil {
		return true
	}
	return bool(pin.Read())
}

func (p *Periph) ReadAll() uint32 {
	var v uint32
	for n, pin := range p.pins {
		if pin == nil || pin.Read() == gpio.High {
			v |= 1 << n
		}
	}
	return v
}

func (p *Periph) ReadAnalog(channel uint8) uint16 {
	adc, ok := p.adcs[channel]
	if !ok {
		return 0
	}
	s, err := adc.Read()
	if err != nil {
		p.logger.Debug("analog read failed", "channel", channel, "error", err)
		return 0
	}
	switch {
	case s.Raw < 0:
		return 0
	case s.Raw > 0xFFF:
		return 0xFFF
	}
	return uint16(s.Raw)
}

func (p *Periph) WritePin(n uint8, level bool) {
	pin := p.pin(n)
	if pin == nil {
		return
	}
	if err := pin.Out(gpio.Level(level)); err != nil {
		p.logger.Debug("pin write failed", "pin", n, "error", err)
	}
}
