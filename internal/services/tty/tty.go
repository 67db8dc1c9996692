package tty

import (
	"fmt"
	"io"
	"os"

	"github.td.teradata.com/sandbox/vtscreen/internal/config"
	"github.td.teradata.com/sandbox/vtscreen/internal/services/serial"
	"github.td.teradata.com/sandbox/vtscreen/internal/services/session"
	"golang.org/x/sys/unix"
	xterm "golang.org/x/term"
)

// Device is a terminal the program draws on and reads keys from, paired
// with the driver that can put it into raw mode.
type Device struct {
	Name   string
	In     io.Reader
	Out    io.Writer
	Driver session.Driver
	closer io.Closer
}

func (d *Device) Close() error {
	if d.closer == nil {
		return nil
	}
	return d.closer.Close()
}

// Open picks the device named by the configuration: a serial port, a tty
// path, or standard input and output.
func Open(cfg *config.Config) (*Device, error) {
	switch {
	case cfg.Serial.PortName != "":
		port, err := serial.Open(cfg.Serial)
		if err != nil {
			return nil, err
		}
		return &Device{Name: cfg.Serial.PortName, In: port, Out: port, Driver: session.NopDriver{}, closer: port}, nil

	case cfg.Terminal.Device != "":
		return OpenPath(cfg.Terminal.Device)

	default:
		return Stdio()
	}
}

// OpenPath opens a terminal device such as /dev/tty for reading and writing.
// The device does not become the controlling terminal.
func OpenPath(name string) (*Device, error) {
	f, err := os.OpenFile(name, os.O_RDWR|unix.O_NOCTTY, 0)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", name, err)
	}
	if !xterm.IsTerminal(int(f.Fd())) {
		_ = f.Close()
		return nil, fmt.Errorf("%s is not a terminal", name)
	}
	return &Device{Name: name, In: f, Out: f, Driver: session.TermDriver{Fd: f.Fd()}, closer: f}, nil
}

// Stdio uses standard input for keys and standard output for the screen.
func Stdio() (*Device, error) {
	fd := int(os.Stdin.Fd())
	if !xterm.IsTerminal(fd) {
		return nil, fmt.Errorf("standard input is not a terminal")
	}
	return &Device{Name: "stdio", In: os.Stdin, Out: os.Stdout, Driver: session.FdDriver(fd)}, nil
}
