package proc

import (
	"golang.org/x/sys/unix"

	"github.com/kbukum/pipekit/errors"
)

// setFdFlags ORs flags into the descriptor's status flags.
func setFdFlags(fd int, flags int) error {
	cur, err := unix.FcntlInt(uintptr(fd), unix.F_GETFL, 0)
	if err != nil {
		return errors.FdFlagsFailed("F_GETFL", err)
	}
	if _, err := unix.FcntlInt(uintptr(fd), unix.F_SETFL, cur|flags); err != nil {
		return errors.FdFlagsFailed("F_SETFL", err)
	}
	return nil
}

// resetFdFlags clears flags from the descriptor's status flags.
func resetFdFlags(fd int, flags int) error {
	cur, err := unix.FcntlInt(uintptr(fd), unix.F_GETFL, 0)
	if err != nil {
		return errors.FdFlagsFailed("F_GETFL", err)
	}
	if _, err := unix.FcntlInt(uintptr(fd), unix.F_SETFL, cur&^flags); err != nil {
		return errors.FdFlagsFailed("F_SETFL", err)
	}
	return nil
}

// setCloseOnExec marks the descriptor close-on-exec so forks performed
// elsewhere in the process cannot leak the pipe's write end.
func setCloseOnExec(fd int) error {
	if _, err := unix.FcntlInt(uintptr(fd), unix.F_SETFD, unix.FD_CLOEXEC); err != nil {
		return errors.FdFlagsFailed("F_SETFD", err)
	}
	return nil
}
