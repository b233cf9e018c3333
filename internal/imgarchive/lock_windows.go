//go:build windows

package imgarchive

import (
	"os"

	"golang.org/x/sys/windows"
)

type windowsLock struct {
	handle windows.Handle
}

// lockForMode takes an advisory, non-blocking lock on f's full byte range:
// exclusive for ReadWrite, shared for ReadOnly. See lock_unix.go for the
// rationale; this is the Windows half of the same build-tag split the
// teacher uses for platform-specific syscalls (fsops.DiskUsage).
func lockForMode(f *os.File, mode Mode) (lockHandle, error) {
	h := windows.Handle(f.Fd())
	var flags uint32 = windows.LOCKFILE_FAIL_IMMEDIATELY
	if mode == ReadWrite {
		flags |= windows.LOCKFILE_EXCLUSIVE_LOCK
	}
	ol := new(windows.Overlapped)
	const wholeFileHigh = 0xFFFFFFFF
	const wholeFileLow = 0xFFFFFFFF
	if err := windows.LockFileEx(h, flags, 0, wholeFileLow, wholeFileHigh, ol); err != nil {
		if err == windows.ERROR_LOCK_VIOLATION {
			return nil, newErr(KindAccess, "archive is already open elsewhere")
		}
		return nil, wrapErr(KindIO, "lock archive", err)
	}
	return windowsLock{handle: h}, nil
}

func unlockArchive(h lockHandle) {
	l, ok := h.(windowsLock)
	if !ok {
		return
	}
	ol := new(windows.Overlapped)
	const wholeFileHigh = 0xFFFFFFFF
	const wholeFileLow = 0xFFFFFFFF
	_ = windows.UnlockFileEx(l.handle, 0, wholeFileLow, wholeFileHigh, ol)
}
