package imgarchive

// lockHandle is the platform-specific advisory lock state returned by
// lockForMode and released by unlockArchive (see lock_unix.go/lock_windows.go).
type lockHandle interface{}
