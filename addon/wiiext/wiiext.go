// Package wiiext reads a Wii extension controller (nunchuck or classic) over
// the two-wire bus and merges it into player 1.
//
// Digital inputs are injected before SOCD resolution and debouncing. Sticks
// and triggers are overlaid after core processing.
package wiiext

import (
	"bytes"
	"fmt"
	"log/slog"

	"github.com/Alia5/padcore/addon"
	"github.com/Alia5/padcore/gamepad"
	"github.com/Alia5/padcore/hal"
)

const Name = "wii"

// DefaultAddress is the fixed bus address of every extension controller.
const DefaultAddress = 0x52

// Extension registers.
const (
	RegData     = 0x00
	RegInit1    = 0xF0
	RegInit2    = 0xFB
	RegIdentify = 0xFA
)

// ReportSize is the length of both the identification and data blocks.
const ReportSize = 6

type Type uint8

const (
	TypeUnknown Type = iota
	TypeNunchuck
	TypeClassic
	TypeClassicPro
)

func (t Type) String() string {
	switch t {
	case TypeNunchuck:
		return "nunchuck"
	case TypeClassic:
		return "classic"
	case TypeClassicPro:
		return "classic-pro"
	}
	return "unknown"
}

var (
	idNunchuck   = []byte{0x00, 0x00, 0xA4, 0x20, 0x00, 0x00}
	idClassic    = []byte{0x00, 0x00, 0xA4, 0x20, 0x01, 0x01}
	idClassicPro = []byte{0x01, 0x00, 0xA4, 0x20, 0x01, 0x01}
)

// Identify maps an identification block to an extension type.
func Identify(id []byte) Type {
	switch {
	case bytes.Equal(id, idNunchuck):
		return TypeNunchuck
	case bytes.Equal(id, idClassic):
		return TypeClassic
	case bytes.Equal(id, idClassicPro):
		return TypeClassicPro
	}
	return TypeUnknown
}

// Report is one decoded data block in gamepad units.
type Report struct {
	Dpad    uint8
	Buttons uint16
	LX, LY  uint16
	RX, RY  uint16
	LT, RT  uint8
}

func neutralReport() Report {
	return Report{
		LX: gamepad.JoystickMid, LY: gamepad.JoystickMid,
		RX: gamepad.JoystickMid, RY: gamepad.JoystickMid,
	}
}

// scale maps 0..max onto the joystick range. Inverted axes map max to the
// low end so that up reads as 0x0000.
func scale(v, top uint32, invert bool) uint16 {
	if v > top {
		v = top
	}
	if invert {
		v = top - v
	}
	return uint16(v * uint32(gamepad.JoystickMax) / top)
}

// DecodeNunchuck decodes a nunchuck data block. C and Z are active-low.
func DecodeNunchuck(b []byte) Report {
	r := neutralReport()
	r.LX = scale(uint32(b[0]), 0xFF, false)
	r.LY = scale(uint32(b[1]), 0xFF, true)
	if b[5]&0x02 == 0 {
		r.Buttons |= gamepad.MaskB1
	}
	if b[5]&0x01 == 0 {
		r.Buttons |= gamepad.MaskB2
	}
	return r
}

// field locates one active-low flag in the data block.
type field struct {
	index, shift uint8
}

func (f field) set(b []byte) bool {
	return b[f.index]&(1<<f.shift) == 0
}

var classicButtons = []struct {
	field
	mask uint16
}{
	{field{4, 5}, gamepad.MaskL2}, // LT
	{field{4, 4}, gamepad.MaskS1}, // minus
	{field{4, 3}, gamepad.MaskA1}, // home
	{field{4, 2}, gamepad.MaskS2}, // plus
	{field{4, 1}, gamepad.MaskR2}, // RT
	{field{5, 7}, gamepad.MaskL1}, // ZL
	{field{5, 6}, gamepad.MaskB1}, // B
	{field{5, 5}, gamepad.MaskB3}, // Y
	{field{5, 4}, gamepad.MaskB2}, // A
	{field{5, 3}, gamepad.MaskB4}, // X
	{field{5, 2}, gamepad.MaskR1}, // ZR
}

var classicDpad = []struct {
	field
	mask uint8
}{
	{field{4, 7}, gamepad.MaskRight},
	{field{4, 6}, gamepad.MaskDown},
	{field{5, 1}, gamepad.MaskLeft},
	{field{5, 0}, gamepad.MaskUp},
}

// DecodeClassic decodes a classic controller data block. Buttons are
// active-low. Analog triggers are only meaningful on the original classic.
func DecodeClassic(b []byte) Report {
	r := neutralReport()

	lx := uint32(b[0] & 0x3F)
	ly := uint32(b[1] & 0x3F)
	rx := uint32(b[0]>>6)<<3 | uint32(b[1]>>6)<<1 | uint32(b[2]>>7)
	ry := uint32(b[2] & 0x1F)
	lt := (b[2]>>5&0x03)<<3 | b[3]>>5
	rt := b[3] & 0x1F

	r.LX = scale(lx, 0x3F, false)
	r.LY = scale(ly, 0x3F, true)
	r.RX = scale(rx, 0x1F, false)
	r.RY = scale(ry, 0x1F, true)
	r.LT = lt<<3 | lt>>2
	r.RT = rt<<3 | rt>>2

	for _, c := range classicButtons {
		if c.set(b) {
			r.Buttons |= c.mask
		}
	}
	for _, c := range classicDpad {
		if c.set(b) {
			r.Dpad |= c.mask
		}
	}
	return r
}

type Extension struct {
	addon.Base

	store  addon.Store
	bus    hal.Bus
	logger *slog.Logger
	health addon.BusHealth

	addr   uint16
	kind   Type
	report Report
	buf    [ReportSize]byte
}

func New(store addon.Store, bus hal.Bus, logger *slog.Logger) *Extension {
	if logger == nil {
		logger = slog.Default()
	}
	return &Extension{
		store:  store,
		bus:    bus,
		logger: logger.With("addon", Name),
		health: addon.BusHealth{Name: Name, Logger: logger},
		report: neutralReport(),
	}
}

func (e *Extension) Name() string { return Name }

func (e *Extension) Available() bool {
	return e.store.AddonOptions().Wii.Enabled && e.bus != nil
}

// Setup performs the unencrypted init handshake and a first identification.
// A device that does not answer yet is identified on a later cycle.
func (e *Extension) Setup(*gamepad.Gamepad) error {
	e.addr = e.store.AddonOptions().Wii.Address
	if e.addr == 0 {
		e.addr = DefaultAddress
	}
	if err := hal.WriteRegister(e.bus, e.addr, RegInit1, 0x55); err != nil {
		return fmt.Errorf("wii init: %w", err)
	}
	if err := hal.WriteRegister(e.bus, e.addr, RegInit2, 0x00); err != nil {
		return fmt.Errorf("wii init: %w", err)
	}
	e.kind = TypeUnknown
	e.report = neutralReport()
	e.identify()
	return nil
}

// Type returns the identified extension.
func (e *Extension) Type() Type { return e.kind }

// Report returns the last decoded data block.
func (e *Extension) Report() Report { return e.report }

func (e *Extension) Failures() uint64 { return e.health.Failures }

func (e *Extension) identify() {
	if err := hal.ReadRegister(e.bus, e.addr, RegIdentify, e.buf[:]); err != nil {
		e.health.Fail(err)
		return
	}
	e.health.OK()
	e.kind = Identify(e.buf[:])
	if e.kind == TypeUnknown {
		e.logger.Debug("unknown extension", "id", fmt.Sprintf("% x", e.buf[:]))
		return
	}
	e.logger.Info("extension identified", "type", e.kind)
}

func (e *Extension) poll() {
	if err := hal.ReadRegister(e.bus, e.addr, RegData, e.buf[:]); err != nil {
		e.health.Fail(err)
		return
	}
	e.health.OK()
	switch e.kind {
	case TypeNunchuck:
		e.report = DecodeNunchuck(e.buf[:])
	case TypeClassic, TypeClassicPro:
		e.report = DecodeClassic(e.buf[:])
		if e.kind == TypeClassicPro {
			e.report.LT, e.report.RT = 0, 0
		}
	}
}

func (e *Extension) PreProcess(gp *gamepad.Gamepad, _ uint32) {
	if e.kind == TypeUnknown {
		e.identify()
		if e.kind == TypeUnknown {
			return
		}
	}
	e.poll()

	s := gp.State(gamepad.P1)
	s.Dpad |= e.report.Dpad
	s.Buttons |= e.report.Buttons
}

func (e *Extension) Process(gp *gamepad.Gamepad, _ uint32) {
	if e.kind == TypeUnknown {
		return
	}
	s := gp.State(gamepad.P1)
	s.LX, s.LY = e.report.LX, e.report.LY
	s.RX, s.RY = e.report.RX, e.report.RY

	classic := e.kind == TypeClassic
	gp.SetAnalogTriggers(classic)
	if classic {
		s.LT, s.RT = e.report.LT, e.report.RT
	}
}
