package session

import (
	"errors"
	"fmt"

	"github.com/pkg/term/termios"
	"golang.org/x/sys/unix"
	xterm "golang.org/x/term"
)

// Attributes is an opaque snapshot of a terminal's line discipline, only
// meaningful to the Driver that produced it.
type Attributes interface{}

// Driver switches a terminal device between its saved settings and raw mode.
type Driver interface {
	Snapshot() (Attributes, error)
	MakeRaw() error
	Restore(Attributes) error
}

var errForeignAttributes = errors.New("attributes were not produced by this driver")

// FdDriver drives the terminal behind a file descriptor, usually stdin.
type FdDriver int

func (fd FdDriver) Snapshot() (Attributes, error) {
	return xterm.GetState(int(fd))
}

// MakeRaw turns off echo, canonical mode and signal generation and makes
// reads return after a single byte.
func (fd FdDriver) MakeRaw() error {
	_, err := xterm.MakeRaw(int(fd))
	return err
}

func (fd FdDriver) Restore(a Attributes) error {
	state, ok := a.(*xterm.State)
	if !ok {
		return fmt.Errorf("fd %d: %w", int(fd), errForeignAttributes)
	}
	return xterm.Restore(int(fd), state)
}

// TermDriver drives a terminal device opened by path. Snapshot reads the
// settings the device has at that moment.
type TermDriver struct {
	Fd uintptr
}

type termState struct {
	fd   uintptr
	attr unix.Termios
}

func (d TermDriver) Snapshot() (Attributes, error) {
	attr, err := QueryAttributes(int(d.Fd))
	if err != nil {
		return nil, err
	}
	return termState{fd: d.Fd, attr: *attr}, nil
}

func (d TermDriver) MakeRaw() error {
	var attr unix.Termios
	if err := termios.Tcgetattr(d.Fd, &attr); err != nil {
		return err
	}
	termios.Cfmakeraw(&attr)
	return termios.Tcsetattr(d.Fd, termios.TCSANOW, &attr)
}

func (d TermDriver) Restore(a Attributes) error {
	state, ok := a.(termState)
	if !ok || state.fd != d.Fd {
		return errForeignAttributes
	}
	return termios.Tcsetattr(d.Fd, termios.TCSANOW, &state.attr)
}

// NopDriver is for links that carry no line discipline, such as a serial
// port opened in raw mode already.
type NopDriver struct{}

func (NopDriver) Snapshot() (Attributes, error) { return NopDriver{}, nil }
func (NopDriver) MakeRaw() error                 { return nil }
func (NopDriver) Restore(Attributes) error       { return nil }
