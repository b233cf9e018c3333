package imgarchive

import "os"

func openVer1(path string, mode Mode) (*Archive, error) {
	dirPath, imgPath, err := ver1Paths(path)
	if err != nil {
		return nil, err
	}

	dirFile, err := os.OpenFile(dirPath, openFlags(mode), 0)
	if err != nil {
		return nil, wrapErr(KindIO, "open "+dirPath, err)
	}
	payload, err := os.OpenFile(imgPath, openFlags(mode), 0)
	if err != nil {
		_ = dirFile.Close()
		return nil, wrapErr(KindIO, "open "+imgPath, err)
	}

	lock, err := lockForMode(payload, mode)
	if err != nil {
		_ = dirFile.Close()
		_ = payload.Close()
		return nil, err
	}

	dir, err := readVer1Directory(dirFile)
	if err != nil {
		unlockArchive(lock)
		_ = dirFile.Close()
		_ = payload.Close()
		return nil, err
	}

	if err := verifyPayloadBounds(payload, dir); err != nil {
		unlockArchive(lock)
		_ = dirFile.Close()
		_ = payload.Close()
		return nil, err
	}

	return &Archive{path: imgPath, version: VER1, mode: mode, payload: payload, dirFile: dirFile, dir: dir, lock: lock}, nil
}

func readVer1Directory(dirFile *os.File) (*directory, error) {
	fi, err := dirFile.Stat()
	if err != nil {
		return nil, wrapErr(KindIO, "stat directory file", err)
	}
	if fi.Size()%recordSize != 0 {
		return nil, newErr(KindFormat, "directory file length is not a multiple of the record size")
	}
	count := fi.Size() / recordSize

	raw := make([]byte, fi.Size())
	if len(raw) > 0 {
		if _, err := dirFile.ReadAt(raw, 0); err != nil {
			return nil, wrapErr(KindFormat, "short read of directory file", err)
		}
	}

	entries := make([]Entry, count)
	for i := int64(0); i < count; i++ {
		e, err := decodeEntry(raw[i*recordSize : (i+1)*recordSize])
		if err != nil {
			return nil, err
		}
		entries[i] = e
	}
	return newDirectoryFromEntries(entries)
}

func createVer1(path string) (*Archive, error) {
	dirPath, imgPath, err := ver1Paths(path)
	if err != nil {
		return nil, err
	}

	dirFile, err := os.OpenFile(dirPath, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return nil, wrapErr(KindIO, "create "+dirPath, err)
	}
	payload, err := os.OpenFile(imgPath, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		_ = dirFile.Close()
		return nil, wrapErr(KindIO, "create "+imgPath, err)
	}

	lock, err := lockForMode(payload, ReadWrite)
	if err != nil {
		_ = dirFile.Close()
		_ = payload.Close()
		return nil, err
	}

	return &Archive{path: imgPath, version: VER1, mode: ReadWrite, payload: payload, dirFile: dirFile, dir: newDirectory(), lock: lock}, nil
}
