package log_test

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alia5/padcore/internal/log"
)

func TestParseLevel(t *testing.T) {
	type testCase struct {
		in       string
		expected slog.Level
	}

	cases := []testCase{
		{"trace", log.LevelTrace},
		{"DEBUG", slog.LevelDebug},
		{"", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{" error ", slog.LevelError},
		{"bogus", slog.LevelInfo},
	}

	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			assert.Equal(t, tc.expected, log.ParseLevel(tc.in))
		})
	}
}

func TestConsoleHandlerSplitsByLevel(t *testing.T) {
	var out, errOut bytes.Buffer
	logger := slog.New(log.NewConsoleHandler(log.LevelTrace, &out, &errOut))

	logger.Log(t.Context(), log.LevelTrace, "cycle")
	logger.Info("loaded")
	logger.Error("failed")

	assert.Contains(t, out.String(), "level=TRACE msg=cycle")
	assert.Contains(t, out.String(), "msg=loaded")
	assert.NotContains(t, out.String(), "failed")
	assert.Contains(t, errOut.String(), "msg=failed")
	assert.NotContains(t, errOut.String(), "loaded")
}

func TestRawLogger(t *testing.T) {
	var buf bytes.Buffer
	r := log.NewRaw(&buf)
	r.Log(false, []byte{0x00, 0x14, 0xAB})
	r.Log(true, []byte{0x01})
	r.Log(false, nil)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if assert.Len(t, lines, 2) {
		assert.Contains(t, lines[0], "P->H #1 report: 3 bytes, hex: 00 14 ab")
		assert.Contains(t, lines[1], "H->P #2 report: 1 bytes, hex: 01")
	}

	log.NewRaw(nil).Log(false, []byte{1})
}

func TestOpenRaw(t *testing.T) {
	path := filepath.Join(t.TempDir(), "raw.log")
	r, c, err := log.OpenRaw(path, false)
	require.NoError(t, err)
	require.NotNil(t, c)
	r.Log(false, []byte{0xFF})
	require.NoError(t, c.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "hex: ff")

	_, c, err = log.OpenRaw("", true)
	assert.NoError(t, err)
	assert.Nil(t, c)

	_, _, err = log.OpenRaw(filepath.Join(t.TempDir(), "missing", "raw.log"), false)
	assert.Error(t, err)
}

func TestSetupLoggerWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "padcore.log")
	logger, closers, err := log.SetupLogger("debug", path)
	require.NoError(t, err)
	require.Len(t, closers, 1)

	logger.Debug("probe", "pin", 3)
	logger.Log(t.Context(), log.LevelTrace, "hidden")
	require.NoError(t, closers[0].Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "msg=probe pin=3")
	assert.NotContains(t, string(data), "hidden")
}
