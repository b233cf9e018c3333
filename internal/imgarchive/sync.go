package imgarchive

// Sync persists the in-memory directory to disk and clears the dirty flag.
// It is the only operation that makes structural changes durable; a crash
// before Sync discards every mutation since the last successful Sync.
func (a *Archive) Sync() error {
	if a.mode != ReadWrite {
		return newErr(KindAccess, "archive is opened read-only")
	}
	if !a.isDirty() {
		return nil
	}

	switch a.version {
	case VER2:
		if err := a.syncVer2(); err != nil {
			return err
		}
	case VER1:
		if err := a.syncVer1(); err != nil {
			return err
		}
	}

	if err := a.payload.Sync(); err != nil {
		return wrapErr(KindIO, "flush payload file", err)
	}
	a.dir.dirty = false
	return nil
}

func (a *Archive) syncVer2() error {
	entries := a.dir.iterate()
	n := uint32(len(entries))

	requiredHeaderBlocks, err := ver2RequiredHeaderBlocks(len(entries))
	if err != nil {
		return err
	}
	for _, e := range entries {
		if e.Size != 0 && e.Offset < requiredHeaderBlocks {
			return newErr(KindInvariant, "entry "+e.Name+" would be clobbered by the directory region")
		}
	}

	buf := make([]byte, ver2HeaderSize+int(n)*recordSize)
	writeVer2Header(buf[:ver2HeaderSize], n)
	for i, e := range entries {
		rec, err := encodeEntry(e)
		if err != nil {
			return err
		}
		copy(buf[ver2HeaderSize+i*recordSize:], rec)
	}

	if _, err := a.payload.WriteAt(buf, 0); err != nil {
		return wrapErr(KindIO, "write VER2 header and directory", err)
	}
	return nil
}

func (a *Archive) syncVer1() error {
	entries := a.dir.iterate()
	buf := make([]byte, len(entries)*recordSize)
	for i, e := range entries {
		rec, err := encodeEntry(e)
		if err != nil {
			return err
		}
		copy(buf[i*recordSize:], rec)
	}

	perm := fileMode(a.dirFile)
	dirPath := a.dirFile.Name()
	if err := writeFileAtomic(dirPath, buf, perm); err != nil {
		return wrapErr(KindIO, "write directory file", err)
	}

	// Reopen so subsequent reads/writes through the existing *os.File see
	// the file writeFileAtomic just renamed into place.
	reopened, err := reopenSameFlags(a.dirFile, dirPath)
	if err != nil {
		return err
	}
	a.dirFile = reopened

	if err := a.dirFile.Sync(); err != nil {
		return wrapErr(KindIO, "flush directory file", err)
	}
	return nil
}
