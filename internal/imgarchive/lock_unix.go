//go:build !windows

package imgarchive

import (
	"os"

	"golang.org/x/sys/unix"
)

type unixLock struct {
	fd int
}

// lockForMode takes an advisory, non-blocking flock on f: exclusive for
// ReadWrite, shared for ReadOnly. This is the enforcement mechanism behind
// §5's "exclusively owned" requirement — best-effort, since advisory locks
// don't stop a process that ignores them, but enough to catch the common
// case of reopening an archive that's already open for writing.
func lockForMode(f *os.File, mode Mode) (lockHandle, error) {
	how := unix.LOCK_SH | unix.LOCK_NB
	if mode == ReadWrite {
		how = unix.LOCK_EX | unix.LOCK_NB
	}
	fd := int(f.Fd())
	if err := unix.Flock(fd, how); err != nil {
		if err == unix.EWOULDBLOCK {
			return nil, newErr(KindAccess, "archive is already open elsewhere")
		}
		return nil, wrapErr(KindIO, "lock archive", err)
	}
	return unixLock{fd: fd}, nil
}

func unlockArchive(h lockHandle) {
	l, ok := h.(unixLock)
	if !ok {
		return
	}
	_ = unix.Flock(l.fd, unix.LOCK_UN)
}
