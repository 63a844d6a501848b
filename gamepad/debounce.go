package gamepad

import "math/bits"

// Debouncer filters contact bounce on up to 32 independent digital signals.
// A changed bit is committed only after it has differed from the settled
// value for longer than the window.
type Debouncer struct {
	window  uint32
	settled uint32
	pending uint32
	since   [32]uint32
	primed  bool
}

// NewDebouncer returns a debouncer with the given window in milliseconds.
func NewDebouncer(windowMS uint32) *Debouncer {
	return &Debouncer{window: windowMS}
}

// Window returns the debounce window in milliseconds.
func (d *Debouncer) Window() uint32 {
	return d.window
}

// Settled returns the current committed value.
func (d *Debouncer) Settled() uint32 {
	return d.settled
}

// Update feeds a raw sample taken at now and returns the settled value.
// The first sample is committed immediately.
func (d *Debouncer) Update(raw uint32, now uint32) uint32 {
	if !d.primed {
		d.primed = true
		d.settled = raw
		return raw
	}
	if d.window == 0 {
		d.settled = raw
		d.pending = 0
		return raw
	}

	diff := raw ^ d.settled
	// bits that returned to the settled value drop their timers
	d.pending &= diff

	for diff != 0 {
		bit := bits.TrailingZeros32(diff)
		mask := uint32(1) << bit
		diff &^= mask
		if d.pending&mask == 0 {
			d.pending |= mask
			d.since[bit] = now
			continue
		}
		if now-d.since[bit] > d.window {
			d.settled ^= mask
			d.pending &^= mask
		}
	}
	return d.settled
}

// packState folds the debounced digital part of a state into one word:
// buttons in the low 16 bits, dpad in bits 16-19.
func packState(s *State) uint32 {
	return uint32(s.Buttons) | uint32(s.Dpad)<<16
}

func unpackState(s *State, v uint32) {
	s.Buttons = uint16(v)
	s.Dpad = uint8(v>>16) & MaskDpad
}
