package imgarchive

import (
	"os"

	"gtaimg/internal/imgconfig"
)

// Mode selects whether an archive is opened for reading only or for reading
// and writing.
type Mode int

const (
	ReadOnly Mode = iota
	ReadWrite
)

// Archive is a live handle onto an open IMG archive: its file handle(s), its
// in-memory directory, and the bookkeeping needed to place and persist
// mutations. An Archive is not safe for concurrent use by multiple
// goroutines (§5) and must be closed exactly once.
type Archive struct {
	path    string
	version Version
	mode    Mode

	payload *os.File // *.img (both formats)
	dirFile *os.File // *.dir (VER1 only); nil for VER2

	dir  *directory
	lock lockHandle
	cfg  *imgconfig.Config
}

// Path returns the path the archive was opened or created from (for VER1,
// the *.img half).
func (a *Archive) Path() string { return a.path }

// VersionOf reports which on-disk layout this archive uses.
func (a *Archive) VersionOf() Version { return a.version }

// EntryCount reports the number of live directory entries.
func (a *Archive) EntryCount() int { return a.dir.count() }

// SizeInBlocks reports the current size of the payload file in blocks,
// rounding up any partial trailing block.
func (a *Archive) SizeInBlocks() (uint32, error) {
	fi, err := a.payload.Stat()
	if err != nil {
		return 0, wrapErr(KindIO, "stat payload file", err)
	}
	return bytesToBlocks(fi.Size())
}

// Iterate returns the directory entries in insertion order.
func (a *Archive) Iterate() []Entry { return a.dir.iterate() }

// Contains reports whether name exists, case-insensitively.
func (a *Archive) Contains(name string) bool { return a.dir.contains(name) }

// Lookup returns a copy of the named entry, case-insensitively.
func (a *Archive) Lookup(name string) (Entry, bool) { return a.dir.lookup(name) }

// EntryInfo is a read-only view combining a directory entry with its
// derived byte-range, so callers don't reimplement offset*2048 arithmetic.
type EntryInfo struct {
	Entry
	OffsetBytes int64
	SizeBytes   int64
}

// Stat looks up name and returns its derived byte-range alongside the raw
// block-addressed record.
func (a *Archive) Stat(name string) (EntryInfo, bool) {
	e, ok := a.dir.lookup(name)
	if !ok {
		return EntryInfo{}, false
	}
	return EntryInfo{Entry: e, OffsetBytes: e.OffsetBytes(), SizeBytes: e.SizeBytes()}, true
}

// isDirty reports whether mutations since the last Sync are pending.
func (a *Archive) isDirty() bool { return a.dir.dirty }

// Open opens the archive at path, auto-detecting its on-disk version.
func Open(path string, mode Mode) (*Archive, error) {
	return OpenWithConfig(path, mode, imgconfig.Default())
}

// OpenWithConfig is Open with explicit engine tunables (see imgconfig).
func OpenWithConfig(path string, mode Mode, cfg *imgconfig.Config) (*Archive, error) {
	version, err := GuessVersion(path)
	if err != nil {
		return nil, err
	}
	var a *Archive
	switch version {
	case VER2:
		a, err = openVer2(path, mode)
	case VER1:
		a, err = openVer1(path, mode)
	default:
		return nil, newErr(KindFormat, "unrecognized archive version")
	}
	if err != nil {
		return nil, err
	}
	a.cfg = cfg
	return a, nil
}

// Create produces a new, empty archive of the requested version and leaves
// it open for writing.
func Create(path string, version Version) (*Archive, error) {
	return CreateWithConfig(path, version, imgconfig.Default())
}

// CreateWithConfig is Create with explicit engine tunables (see imgconfig).
func CreateWithConfig(path string, version Version, cfg *imgconfig.Config) (*Archive, error) {
	var a *Archive
	var err error
	switch version {
	case VER2:
		a, err = createVer2(path)
	case VER1:
		a, err = createVer1(path)
	default:
		return nil, newErr(KindInvalidName, "unknown archive version requested")
	}
	if err != nil {
		return nil, err
	}
	a.cfg = cfg
	return a, nil
}

func openFlags(mode Mode) int {
	if mode == ReadOnly {
		return os.O_RDONLY
	}
	return os.O_RDWR
}

// CloseWithoutSync releases file handles and discards any dirty in-memory
// state. It does not persist pending mutations.
func (a *Archive) CloseWithoutSync() error {
	unlockArchive(a.lock)
	var firstErr error
	if a.dirFile != nil {
		if err := a.dirFile.Close(); err != nil && firstErr == nil {
			firstErr = wrapErr(KindIO, "close directory file", err)
		}
	}
	if err := a.payload.Close(); err != nil && firstErr == nil {
		firstErr = wrapErr(KindIO, "close payload file", err)
	}
	return firstErr
}
