package imgarchive

import (
	"encoding/binary"
	"os"
)

func openVer2(path string, mode Mode) (*Archive, error) {
	f, err := os.OpenFile(path, openFlags(mode), 0)
	if err != nil {
		return nil, wrapErr(KindIO, "open "+path, err)
	}

	lock, err := lockForMode(f, mode)
	if err != nil {
		_ = f.Close()
		return nil, err
	}

	dir, err := readVer2Directory(f)
	if err != nil {
		unlockArchive(lock)
		_ = f.Close()
		return nil, err
	}

	if err := verifyPayloadBounds(f, dir); err != nil {
		unlockArchive(lock)
		_ = f.Close()
		return nil, err
	}

	return &Archive{path: path, version: VER2, mode: mode, payload: f, dir: dir, lock: lock}, nil
}

func readVer2Directory(f *os.File) (*directory, error) {
	header := make([]byte, ver2HeaderSize)
	if _, err := f.ReadAt(header, 0); err != nil {
		return nil, wrapErr(KindFormat, "short VER2 header", err)
	}
	if [4]byte(header[0:4]) != ver2Magic {
		return nil, newErr(KindFormat, "bad VER2 magic")
	}
	count := binary.LittleEndian.Uint32(header[4:8])

	raw := make([]byte, int64(count)*int64(recordSize))
	if len(raw) > 0 {
		if _, err := f.ReadAt(raw, ver2HeaderSize); err != nil {
			return nil, wrapErr(KindFormat, "directory truncated: file ends before all entries are readable", err)
		}
	}

	entries := make([]Entry, count)
	for i := uint32(0); i < count; i++ {
		e, err := decodeEntry(raw[i*recordSize : (i+1)*recordSize])
		if err != nil {
			return nil, err
		}
		entries[i] = e
	}
	return newDirectoryFromEntries(entries)
}

func createVer2(path string) (*Archive, error) {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return nil, wrapErr(KindIO, "create "+path, err)
	}

	lock, err := lockForMode(f, ReadWrite)
	if err != nil {
		_ = f.Close()
		return nil, err
	}

	header := make([]byte, ver2HeaderSize)
	writeVer2Header(header, 0)
	if _, err := f.WriteAt(header, 0); err != nil {
		unlockArchive(lock)
		_ = f.Close()
		return nil, wrapErr(KindIO, "write VER2 header", err)
	}

	return &Archive{path: path, version: VER2, mode: ReadWrite, payload: f, dir: newDirectory(), lock: lock}, nil
}

// verifyPayloadBounds rejects a directory whose entries claim payload bytes
// beyond the end of the file: this can only happen if an external tool
// produced (or corrupted) the archive, since the engine's own writes always
// extend the file before recording an entry.
func verifyPayloadBounds(f *os.File, dir *directory) error {
	fi, err := f.Stat()
	if err != nil {
		return wrapErr(KindIO, "stat payload file", err)
	}
	size := fi.Size()
	for _, e := range dir.iterate() {
		if e.Size == 0 {
			continue
		}
		if e.OffsetBytes()+e.SizeBytes() > size {
			return newErr(KindFormat, "entry "+e.Name+" references data beyond end of file")
		}
	}
	return nil
}
