package monitor

import (
	"context"
	"encoding/json"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/Alia5/padcore/gamepad"
)

const (
	fullSyncInterval = 5 * time.Second
	deltaCountSync   = 100
	queueSize        = 256
)

type cycleStates [gamepad.NumPlayers]PadState

// Broadcaster turns pipeline cycles into full and delta messages. It
// implements pipeline.Observer; Observe never blocks the cycle.
type Broadcaster struct {
	hub     *Hub
	clock   clockwork.Clock
	changes chan cycleStates
	dropped atomic.Uint64

	mu   sync.Mutex
	last cycleStates
	seq  int64
}

func NewBroadcaster(h *Hub, clock clockwork.Clock) *Broadcaster {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	b := &Broadcaster{
		hub:     h,
		clock:   clock,
		changes: make(chan cycleStates, queueSize),
	}
	for p := range b.last {
		b.last[p] = PadState{Player: p + 1, Held: []string{}}
	}
	return b
}

// Observe snapshots both players. The cycle is dropped when the queue is full.
func (b *Broadcaster) Observe(cycle uint64, gp *gamepad.Gamepad, report []byte) {
	var s cycleStates
	for p := range s {
		s[p] = Snapshot(gp, gamepad.Player(p), cycle, report)
	}
	select {
	case b.changes <- s:
	default:
		b.dropped.Add(1)
	}
}

// Dropped returns how many cycles were not queued.
func (b *Broadcaster) Dropped() uint64 { return b.dropped.Load() }

// Run broadcasts queued cycles until ctx is done. Every deltaCountSync deltas
// and every fullSyncInterval a full state replaces the delta.
func (b *Broadcaster) Run(ctx context.Context) {
	ticker := b.clock.NewTicker(fullSyncInterval)
	defer ticker.Stop()

	var deltas [gamepad.NumPlayers]int

	for {
		select {
		case <-ctx.Done():
			return

		case states := <-b.changes:
			for p, state := range states {
				b.mu.Lock()
				delta := ComputeDelta(b.last[p], state)
				b.last[p] = state
				if delta.IsEmpty() {
					b.mu.Unlock()
					continue
				}
				b.seq++
				deltas[p]++
				var msg *WSMessage
				if deltas[p] >= deltaCountSync {
					msg = NewFullMessage(b.seq, b.clock.Now(), &state)
					deltas[p] = 0
				} else {
					msg = NewDeltaMessage(b.seq, b.clock.Now(), delta)
				}
				b.mu.Unlock()
				b.broadcast(msg, p+1)
			}

		case <-ticker.Chan():
			for p := range deltas {
				b.mu.Lock()
				b.seq++
				state := b.last[p]
				msg := NewFullMessage(b.seq, b.clock.Now(), &state)
				b.mu.Unlock()
				b.broadcast(msg, p+1)
			}
		}
	}
}

func (b *Broadcaster) broadcast(msg *WSMessage, player int) {
	data, err := json.Marshal(msg)
	if err != nil {
		b.hub.logger.Error("encode monitor message", "error", err)
		return
	}
	b.hub.BroadcastToPlayer(data, player)
}

// SendInitialState sends the last full state of the client's player.
func (b *Broadcaster) SendInitialState(c *Client) {
	p := c.Player() - 1
	b.mu.Lock()
	b.seq++
	state := b.last[p]
	msg := NewFullMessage(b.seq, b.clock.Now(), &state)
	b.mu.Unlock()
	b.send(c, msg)
}

func (b *Broadcaster) SendSelected(c *Client, player int) {
	b.send(c, NewPlayerSelectedMessage(b.clock.Now(), player))
}

func (b *Broadcaster) send(c *Client, msg *WSMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		b.hub.logger.Error("encode monitor message", "error", err)
		return
	}
	b.hub.Send(c, data)
}
