package hal_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"periph.io/x/conn/v3/analog"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpiotest"
	"periph.io/x/conn/v3/i2c/i2ctest"

	"github.com/Alia5/padcore/hal"
)

type adc struct {
	raw int32
	err error
}

func (a adc) Read() (analog.Sample, error) { return analog.Sample{Raw: a.raw}, a.err }

func newPeriph(t *testing.T) (*hal.Periph, map[uint8]*gpiotest.Pin) {
	t.Helper()
	pins := map[uint8]*gpiotest.Pin{
		0: {N: "GPIO0", L: gpio.High},
		3: {N: "GPIO3", L: gpio.High},
	}
	io := map[uint8]gpio.PinIO{}
	for n, p := range pins {
		io[n] = p
	}
	adcs := map[uint8]hal.ADC{
		0: adc{raw: 0x800},
		1: adc{raw: 0x1FFF},
		2: adc{raw: -4},
		3: adc{err: errors.New("busy")},
	}
	p, err := hal.NewPeriph(io, adcs, nil)
	require.NoError(t, err)
	return p, pins
}

func TestPeriphPins(t *testing.T) {
	p, pins := newPeriph(t)

	require.NoError(t, p.ConfigurePin(0, hal.Input, hal.PullUp))
	assert.Equal(t, gpio.PullUp, pins[0].Pull())
	require.NoError(t, p.ConfigurePin(3, hal.Input, hal.PullDown))
	assert.Equal(t, gpio.PullDown, pins[3].Pull())
	assert.Error(t, p.ConfigurePin(7, hal.Input, hal.PullUp), "absent pin")

	_ = pins[0].Out(gpio.Low)
	_ = pins[3].Out(gpio.High)
	assert.False(t, p.ReadPin(0))
	assert.True(t, p.ReadPin(3))
	assert.True(t, p.ReadPin(7), "absent pins read released")
	assert.True(t, p.ReadPin(200))

	all := p.ReadAll()
	assert.Zero(t, all&1)
	assert.NotZero(t, all&(1<<3))
	assert.NotZero(t, all&(1<<29))

	require.NoError(t, p.ConfigurePin(3, hal.Output, hal.Float))
	p.WritePin(3, false)
	assert.Equal(t, gpio.Low, pins[3].Read())
	p.WritePin(9, false)
}

func TestPeriphAnalog(t *testing.T) {
	p, _ := newPeriph(t)

	type testCase struct {
		channel  uint8
		expected uint16
	}

	cases := []testCase{
		{0, 0x800},
		{1, 0xFFF},
		{2, 0},
		{3, 0},
		{9, 0},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.expected, p.ReadAnalog(tc.channel), "channel %d", tc.channel)
	}
}

func TestNewPeriphRejectsOutOfBankPins(t *testing.T) {
	_, err := hal.NewPeriph(map[uint8]gpio.PinIO{hal.NumBankPins: &gpiotest.Pin{}}, nil, nil)
	assert.Error(t, err)
}

func TestRegisters(t *testing.T) {
	bus := &i2ctest.Playback{Ops: []i2ctest.IO{
		{Addr: 0x52, W: []byte{0xF0, 0x55}},
		{Addr: 0x20, W: []byte{0x00}, R: []byte{0xAA, 0x55}},
	}}

	require.NoError(t, hal.WriteRegister(bus, 0x52, 0xF0, 0x55))
	buf := make([]byte, 2)
	require.NoError(t, hal.ReadRegister(bus, 0x20, 0x00, buf))
	assert.Equal(t, []byte{0xAA, 0x55}, buf)
	assert.NoError(t, bus.Close())
}
