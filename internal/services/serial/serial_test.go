package serial

import (
	"errors"
	"io"
	"testing"

	srl "github.com/jacobsa/go-serial/serial"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.td.teradata.com/sandbox/vtscreen/internal/config"
)

type fakePort struct {
	io.Reader
	io.Writer
}

func (fakePort) Close() error { return nil }

func defaults() *config.Serial {
	cfg := config.DefaultConfig().Serial
	cfg.PortName = "/dev/ttyUSB0"
	return cfg
}

func TestOptions(t *testing.T) {
	cfg := defaults()
	cfg.Parity = 2
	cfg.StopBits = 2
	cfg.MinimumReadSize = 0

	opts, err := Options(cfg)
	require.NoError(t, err)
	assert.Equal(t, srl.OpenOptions{
		PortName:        "/dev/ttyUSB0",
		BaudRate:        9600,
		DataBits:        8,
		StopBits:        2,
		ParityMode:      srl.PARITY_EVEN,
		MinimumReadSize: 1,
	}, opts)
}

func TestOptionsRejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *config.Serial)
	}{
		{"no port", func(c *config.Serial) { c.PortName = "" }},
		{"baud", func(c *config.Serial) { c.BaudRate = 0 }},
		{"data bits", func(c *config.Serial) { c.DataBits = 9 }},
		{"stop bits", func(c *config.Serial) { c.StopBits = 3 }},
		{"parity", func(c *config.Serial) { c.Parity = 4 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaults()
			tt.mutate(cfg)
			_, err := Options(cfg)
			assert.Error(t, err)
		})
	}
}

func TestOpen(t *testing.T) {
	defer func() { openPort = srl.Open }()

	var got srl.OpenOptions
	openPort = func(o srl.OpenOptions) (io.ReadWriteCloser, error) {
		got = o
		return fakePort{}, nil
	}
	port, err := Open(defaults())
	require.NoError(t, err)
	assert.NotNil(t, port)
	assert.Equal(t, "/dev/ttyUSB0", got.PortName)

	failure := errors.New("busy")
	openPort = func(srl.OpenOptions) (io.ReadWriteCloser, error) { return nil, failure }
	_, err = Open(defaults())
	assert.ErrorIs(t, err, failure)
}
