//go:build darwin || dragonfly || freebsd || netbsd || openbsd

package session

import "golang.org/x/sys/unix"

const ioctlReadTermios = unix.TIOCGETA

func QueryAttributes(fd int) (*unix.Termios, error) {
	return unix.IoctlGetTermios(fd, ioctlReadTermios)
}
