// Package addon defines the lifecycle shared by every addon and the manager
// that runs the active set in a fixed order.
package addon

import (
	"log/slog"

	"github.com/Alia5/padcore/gamepad"
	"github.com/Alia5/padcore/options"
)

// Addon is a pluggable unit that injects into or overlays the gamepad state.
type Addon interface {
	Name() string
	// Available decides from the persisted configuration whether the addon
	// runs this session. It is evaluated once.
	Available() bool
	// Setup acquires pins and buses. Called once, only if available.
	Setup(gp *gamepad.Gamepad) error
	// PreProcess runs before SOCD resolution and debouncing.
	PreProcess(gp *gamepad.Gamepad, now uint32)
	// Process runs after core processing.
	Process(gp *gamepad.Gamepad, now uint32)
}

// Store is the addon configuration collaborator.
type Store interface {
	AddonOptions() options.Addons
	SetAddonOptions(options.Addons)
	Save() error
}

// Manager holds the active addons in load order.
type Manager struct {
	active []Addon
	logger *slog.Logger
}

func NewManager(logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{logger: logger}
}

// Load probes each addon once and sets up the available ones. An addon
// whose setup fails is logged and left out.
func (m *Manager) Load(gp *gamepad.Gamepad, addons ...Addon) {
	for _, a := range addons {
		if !a.Available() {
			m.logger.Debug("addon unavailable", "addon", a.Name())
			continue
		}
		if err := a.Setup(gp); err != nil {
			m.logger.Error("addon setup failed", "addon", a.Name(), "error", err)
			continue
		}
		m.logger.Info("addon loaded", "addon", a.Name())
		m.active = append(m.active, a)
	}
}

// Active returns the names of the loaded addons in run order.
func (m *Manager) Active() []string {
	names := make([]string, 0, len(m.active))
	for _, a := range m.active {
		names = append(names, a.Name())
	}
	return names
}

func (m *Manager) PreProcess(gp *gamepad.Gamepad, now uint32) {
	for _, a := range m.active {
		a.PreProcess(gp, now)
	}
}

func (m *Manager) Process(gp *gamepad.Gamepad, now uint32) {
	for _, a := range m.active {
		a.Process(gp, now)
	}
}

// Base provides no-op hooks for addons that only use one of them.
type Base struct{}

func (Base) PreProcess(*gamepad.Gamepad, uint32) {}

func (Base) Process(*gamepad.Gamepad, uint32) {}
