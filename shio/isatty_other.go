//go:build unix && !linux && !darwin

package shio

import "golang.org/x/sys/unix"

func isTerminal(fd int) bool {
	// No termios ioctl is portable across the remaining unixes; a
	// character device is the closest approximation.
	var st unix.Stat_t
	if err := unix.Fstat(fd, &st); err != nil {
		return false
	}
	return st.Mode&unix.S_IFMT == unix.S_IFCHR
}
