package addon

import "log/slog"

// BusHealth counts failed bus transactions for an addon. The first failure
// of a streak logs at warn, the rest at debug, and a success ends the streak.
type BusHealth struct {
	Name   string
	Logger *slog.Logger

	Failures uint64
	streak   uint64
}

// Fail records a failed transaction.
func (h *BusHealth) Fail(err error) {
	h.Failures++
	h.streak++
	if h.streak == 1 {
		h.Logger.Warn("bus transaction failed", "addon", h.Name, "error", err)
		return
	}
	h.Logger.Debug("bus transaction failed", "addon", h.Name, "error", err, "streak", h.streak)
}

// OK records a successful transaction.
func (h *BusHealth) OK() {
	if h.streak > 1 {
		h.Logger.Info("bus recovered", "addon", h.Name, "failed", h.streak)
	}
	h.streak = 0
}
