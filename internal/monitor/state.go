// Package monitor streams the processed controller state of a running
// pipeline to websocket clients as JSON, one full snapshot on connect and
// deltas afterwards.
package monitor

import (
	"encoding/hex"

	"github.com/Alia5/padcore/gamepad"
)

type Sticks struct {
	LX uint16 `json:"lx"`
	LY uint16 `json:"ly"`
	RX uint16 `json:"rx"`
	RY uint16 `json:"ry"`
}

type Triggers struct {
	LT uint8 `json:"lt"`
	RT uint8 `json:"rt"`
}

// PadState is one player's processed state after a cycle.
type PadState struct {
	Player   int      `json:"player"`
	Cycle    uint64   `json:"cycle"`
	Mode     string   `json:"mode"`
	Dpad     uint8    `json:"dpad"`
	Buttons  uint16   `json:"buttons"`
	Aux      uint16   `json:"aux"`
	Sticks   Sticks   `json:"sticks"`
	Triggers Triggers `json:"triggers"`
	// Held lists the pressed inputs by name.
	Held []string `json:"held"`
	// Report is the hex encoded transport report. Only player 1 is encoded.
	Report string `json:"report,omitempty"`
}

// DeltaChanges carries the fields that differ from the previous state.
type DeltaChanges struct {
	Cycle    uint64    `json:"cycle"`
	Mode     *string   `json:"mode,omitempty"`
	Dpad     *uint8    `json:"dpad,omitempty"`
	Buttons  *uint16   `json:"buttons,omitempty"`
	Aux      *uint16   `json:"aux,omitempty"`
	Sticks   *Sticks   `json:"sticks,omitempty"`
	Triggers *Triggers `json:"triggers,omitempty"`
	Held     []string  `json:"held,omitempty"`
	Report   *string   `json:"report,omitempty"`
}

func (d *DeltaChanges) IsEmpty() bool {
	return d.Mode == nil &&
		d.Dpad == nil &&
		d.Buttons == nil &&
		d.Aux == nil &&
		d.Sticks == nil &&
		d.Triggers == nil &&
		d.Report == nil
}

// Snapshot copies a player's state out of the gamepad.
func Snapshot(gp *gamepad.Gamepad, p gamepad.Player, cycle uint64, report []byte) PadState {
	s := gp.State(p)
	st := PadState{
		Player:   int(p) + 1,
		Cycle:    cycle,
		Mode:     gp.Options().InputMode.String(),
		Dpad:     s.Dpad,
		Buttons:  s.Buttons,
		Aux:      s.Aux,
		Sticks:   Sticks{LX: s.LX, LY: s.LY, RX: s.RX, RY: s.RY},
		Triggers: Triggers{LT: s.LT, RT: s.RT},
		Held:     []string{},
	}
	for i := gamepad.Input(0); i < gamepad.NumInputs; i++ {
		held := s.Buttons&i.Mask() != 0
		if i.IsDirection() {
			held = s.Dpad&uint8(i.Mask()) != 0
		}
		if held {
			st.Held = append(st.Held, i.String())
		}
	}
	if p == gamepad.P1 && len(report) > 0 {
		st.Report = hex.EncodeToString(report)
	}
	return st
}

// ComputeDelta returns the changes from old to new.
func ComputeDelta(old, new_ PadState) *DeltaChanges {
	d := &DeltaChanges{Cycle: new_.Cycle}

	if old.Mode != new_.Mode {
		d.Mode = &new_.Mode
	}
	if old.Dpad != new_.Dpad {
		d.Dpad = &new_.Dpad
	}
	if old.Buttons != new_.Buttons {
		d.Buttons = &new_.Buttons
	}
	if old.Aux != new_.Aux {
		d.Aux = &new_.Aux
	}
	if old.Sticks != new_.Sticks {
		d.Sticks = &new_.Sticks
	}
	if old.Triggers != new_.Triggers {
		d.Triggers = &new_.Triggers
	}
	if old.Report != new_.Report {
		d.Report = &new_.Report
	}
	if d.Dpad != nil || d.Buttons != nil {
		d.Held = new_.Held
	}
	return d
}
