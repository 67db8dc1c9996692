package session

import "golang.org/x/sys/unix"

const ioctlReadTermios = unix.TCGETS

// QueryAttributes reads the termios settings of fd straight from the driver.
func QueryAttributes(fd int) (*unix.Termios, error) {
	return unix.IoctlGetTermios(fd, ioctlReadTermios)
}
