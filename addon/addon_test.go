package addon_test

import (
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Alia5/padcore/addon"
	"github.com/Alia5/padcore/gamepad"
	th "github.com/Alia5/padcore/internal/testing"
)

type probe struct {
	addon.Base
	name      string
	available bool
	setupErr  error
	calls     *[]string
}

func (p *probe) Name() string    { return p.name }
func (p *probe) Available() bool { return p.available }

func (p *probe) Setup(*gamepad.Gamepad) error {
	*p.calls = append(*p.calls, p.name+".setup")
	return p.setupErr
}

func (p *probe) PreProcess(*gamepad.Gamepad, uint32) {
	*p.calls = append(*p.calls, p.name+".pre")
}

func (p *probe) Process(*gamepad.Gamepad, uint32) {
	*p.calls = append(*p.calls, p.name+".process")
}

func TestManagerLoad(t *testing.T) {
	r := th.NewRig(t, nil)
	var calls []string
	m := addon.NewManager(nil)
	m.Load(r.Gamepad,
		&probe{name: "a", available: true, calls: &calls},
		&probe{name: "b", available: false, calls: &calls},
		&probe{name: "c", available: true, setupErr: errors.New("no bus"), calls: &calls},
		&probe{name: "d", available: true, calls: &calls},
	)

	assert.Equal(t, []string{"a", "d"}, m.Active())
	assert.Equal(t, []string{"a.setup", "c.setup", "d.setup"}, calls)

	calls = nil
	m.PreProcess(r.Gamepad, 0)
	m.Process(r.Gamepad, 0)
	assert.Equal(t, []string{"a.pre", "d.pre", "a.process", "d.process"}, calls)
}

func TestBusHealth(t *testing.T) {
	logger, out := th.CaptureLogger(slog.LevelInfo)
	h := addon.BusHealth{Name: "x", Logger: logger}
	err := errors.New("nack")
	h.Fail(err)
	h.Fail(err)
	h.Fail(err)
	h.OK()
	h.Fail(err)
	h.OK()

	assert.Equal(t, uint64(4), h.Failures)
	assert.Equal(t, 2, strings.Count(out.String(), "level=WARN"))
	assert.Equal(t, 1, strings.Count(out.String(), "bus recovered"))
}
