package tty

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.td.teradata.com/sandbox/vtscreen/internal/config"
	"github.td.teradata.com/sandbox/vtscreen/internal/services/session"
	xterm "golang.org/x/term"
)

func TestOpenMissingDevice(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Terminal.Device = filepath.Join(t.TempDir(), "no-such-tty")
	_, err := Open(cfg)
	assert.Error(t, err)
}

func TestOpenMissingSerialPort(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Serial.PortName = filepath.Join(t.TempDir(), "no-such-port")
	_, err := Open(cfg)
	assert.Error(t, err)
}

func TestStdio(t *testing.T) {
	dev, err := Stdio()
	if !xterm.IsTerminal(int(os.Stdin.Fd())) {
		assert.Error(t, err)
		return
	}
	require.NoError(t, err)
	assert.Equal(t, session.FdDriver(int(os.Stdin.Fd())), dev.Driver)
	assert.NoError(t, dev.Close())
}

func TestCloseWithoutCloser(t *testing.T) {
	assert.NoError(t, (&Device{}).Close())
}

func TestOpenPathRejectsRegularFile(t *testing.T) {
	name := filepath.Join(t.TempDir(), "plain")
	require.NoError(t, os.WriteFile(name, nil, 0o600))
	_, err := OpenPath(name)
	assert.ErrorContains(t, err, "not a terminal")
}
