package log

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

// RawLogger dumps encoded reports.
type RawLogger interface {
	// Log writes one report. in=true means host->pad, in=false pad->host.
	Log(in bool, data []byte)
}

type rawLogger struct {
	w   io.Writer
	mu  sync.Mutex
	now func() time.Time
	seq uint64
}

// NewRaw creates a new RawLogger. A nil writer discards everything.
func NewRaw(w io.Writer) RawLogger {
	return &rawLogger{w: w, now: time.Now}
}

// Log emits a single line with timestamp, direction, sequence and hex dump.
func (r *rawLogger) Log(in bool, data []byte) {
	if len(data) == 0 || r.w == nil {
		return
	}

	dir := "P->H"
	if in {
		dir = "H->P"
	}

	var hexbuf bytes.Buffer
	const hexdigits = "0123456789abcdef"
	for i, b := range data {
		if i > 0 {
			hexbuf.WriteByte(' ')
		}
		hexbuf.WriteByte(hexdigits[b>>4])
		hexbuf.WriteByte(hexdigits[b&0x0f])
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	line := fmt.Sprintf("%s %s #%d report: %d bytes, hex: %s\n",
		r.now().Format("2006/01/02 15:04:05.000"),
		dir,
		r.seq,
		len(data),
		hexbuf.String())
	_, _ = io.WriteString(r.w, line)
}

// OpenRaw picks the raw report sink: the file at path when set, stdout when
// trace is on, otherwise a discarding logger. The closer is nil unless a file
// was opened.
func OpenRaw(path string, trace bool) (RawLogger, io.Closer, error) {
	switch {
	case path != "":
		f, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
		if err != nil {
			return NewRaw(nil), nil, fmt.Errorf("open raw log %s: %w", path, err)
		}
		return NewRaw(f), f, nil
	case trace:
		return NewRaw(os.Stdout), nil, nil
	}
	return NewRaw(nil), nil, nil
}
