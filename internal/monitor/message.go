package monitor

import "time"

// Message types sent to clients.
const (
	TypeFull           = "full"
	TypeDelta          = "delta"
	TypePlayerSelected = "player_selected"
)

// WSMessage is a server to client message.
type WSMessage struct {
	Type      string        `json:"type"`
	Seq       int64         `json:"seq"`
	Timestamp int64         `json:"timestamp"` // Unix milliseconds
	Data      *PadState     `json:"data,omitempty"`
	Changes   *DeltaChanges `json:"changes,omitempty"`
	Player    int           `json:"player,omitempty"`
}

func NewFullMessage(seq int64, now time.Time, state *PadState) *WSMessage {
	return &WSMessage{Type: TypeFull, Seq: seq, Timestamp: now.UnixMilli(), Data: state}
}

func NewDeltaMessage(seq int64, now time.Time, changes *DeltaChanges) *WSMessage {
	return &WSMessage{Type: TypeDelta, Seq: seq, Timestamp: now.UnixMilli(), Changes: changes}
}

func NewPlayerSelectedMessage(now time.Time, player int) *WSMessage {
	return &WSMessage{Type: TypePlayerSelected, Timestamp: now.UnixMilli(), Player: player}
}

// ClientMessage is a client to server message. The only command is
// "select_player" with player 1 or 2.
type ClientMessage struct {
	Type   string `json:"type"`
	Player int    `json:"player,omitempty"`
}
