// Package log builds the slog.Logger used across padcore.
//
// Without a log file, records below error go to stdout and errors go to
// stderr. With a log file, the console gets everything on stderr and the file
// gets a copy.
package log

import (
	"context"
	"io"
	"log/slog"
	"math"
	"os"
	"strings"
)

// LevelTrace sits below Debug and is used for per-cycle output.
const LevelTrace slog.Level = -8

// ParseLevel maps a level name to a slog level. Unknown names are Info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trace":
		return LevelTrace
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// route forwards records whose level lies in [lo, hi].
type route struct {
	lo, hi slog.Level
	h      slog.Handler
}

func (r route) accepts(ctx context.Context, l slog.Level) bool {
	return l >= r.lo && l <= r.hi && r.h.Enabled(ctx, l)
}

// Router fans a record out to every route accepting its level.
type Router struct{ routes []route }

func (rt Router) Enabled(ctx context.Context, level slog.Level) bool {
	for _, r := range rt.routes {
		if r.accepts(ctx, level) {
			return true
		}
	}
	return false
}

func (rt Router) Handle(ctx context.Context, rec slog.Record) error {
	for _, r := range rt.routes {
		if r.accepts(ctx, rec.Level) {
			_ = r.h.Handle(ctx, rec)
		}
	}
	return nil
}

func (rt Router) WithAttrs(attrs []slog.Attr) slog.Handler {
	return rt.derive(func(h slog.Handler) slog.Handler { return h.WithAttrs(attrs) })
}

func (rt Router) WithGroup(name string) slog.Handler {
	return rt.derive(func(h slog.Handler) slog.Handler { return h.WithGroup(name) })
}

func (rt Router) derive(fn func(slog.Handler) slog.Handler) Router {
	out := Router{routes: make([]route, len(rt.routes))}
	for i, r := range rt.routes {
		out.routes[i] = route{lo: r.lo, hi: r.hi, h: fn(r.h)}
	}
	return out
}

const (
	minLevel slog.Level = math.MinInt
	maxLevel slog.Level = math.MaxInt
)

func textHandler(w io.Writer, level slog.Level) slog.Handler {
	return slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			if a.Key != slog.LevelKey {
				return a
			}
			if l, ok := a.Value.Any().(slog.Level); ok && l <= LevelTrace {
				a.Value = slog.StringValue("TRACE")
			}
			return a
		},
	})
}

// NewConsoleHandler sends errors to errOut and everything else at or above
// level to out.
func NewConsoleHandler(level slog.Level, out, errOut io.Writer) slog.Handler {
	return Router{routes: []route{
		{lo: minLevel, hi: slog.LevelError - 1, h: textHandler(out, level)},
		{lo: slog.LevelError, hi: maxLevel, h: textHandler(errOut, slog.LevelError)},
	}}
}

// SetupLogger builds the process logger. The returned closers own the log
// file, if any.
func SetupLogger(logLevel, logFile string) (*slog.Logger, []io.Closer, error) {
	level := ParseLevel(logLevel)
	if logFile == "" {
		return slog.New(NewConsoleHandler(level, os.Stdout, os.Stderr)), nil, nil
	}

	f, err := os.OpenFile(logFile, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, err
	}
	h := Router{routes: []route{
		{lo: minLevel, hi: maxLevel, h: textHandler(os.Stderr, level)},
		{lo: minLevel, hi: maxLevel, h: textHandler(f, level)},
	}}
	return slog.New(h), []io.Closer{f}, nil
}
