package pipeline

import (
	"time"

	"github.com/jonboulle/clockwork"
)

// Clock is the monotonic millisecond source sampled once per cycle. The
// value wraps around after about 49 days; deadlines compare by difference.
type Clock interface {
	Millis() uint32
}

type clock struct {
	c     clockwork.Clock
	start time.Time
}

// NewClock counts milliseconds from now on c. Pass clockwork.NewRealClock()
// in production and a fake clock in tests.
func NewClock(c clockwork.Clock) Clock {
	return &clock{c: c, start: c.Now()}
}

func (c *clock) Millis() uint32 {
	return uint32(c.c.Since(c.start).Milliseconds())
}
