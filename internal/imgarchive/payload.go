package imgarchive

import "io"

// ReadEntryData reads the full byte range of the named entry, including any
// trailing zero padding up to the block boundary.
func (a *Archive) ReadEntryData(name string) ([]byte, error) {
	e, ok := a.dir.lookup(name)
	if !ok {
		return nil, newErr(KindNotFound, "no such entry: "+name)
	}
	buf := make([]byte, e.SizeBytes())
	if len(buf) > 0 {
		if _, err := a.payload.ReadAt(buf, e.OffsetBytes()); err != nil {
			return nil, wrapErr(KindIO, "read payload for "+name, err)
		}
	}
	return buf, nil
}

// OpenEntry returns a bounded, read-only view over the named entry's byte
// range, supporting both sequential and random access. Reads past the
// entry's length return io.EOF, never data belonging to a neighboring entry.
func (a *Archive) OpenEntry(name string) (*io.SectionReader, error) {
	e, ok := a.dir.lookup(name)
	if !ok {
		return nil, newErr(KindNotFound, "no such entry: "+name)
	}
	return io.NewSectionReader(a.payload, e.OffsetBytes(), e.SizeBytes()), nil
}

// ExtractEntry reads the named entry's full byte range (including trailing
// padding) and writes it verbatim to destPath.
func (a *Archive) ExtractEntry(name, destPath string) error {
	e, ok := a.dir.lookup(name)
	if !ok {
		return newErr(KindNotFound, "no such entry: "+name)
	}

	out, err := createFileAt(destPath)
	if err != nil {
		return err
	}
	defer out.Close()

	src := io.NewSectionReader(a.payload, e.OffsetBytes(), e.SizeBytes())
	if _, err := io.Copy(out, src); err != nil {
		return wrapErr(KindIO, "write "+destPath, err)
	}
	if err := out.Sync(); err != nil {
		return wrapErr(KindIO, "flush "+destPath, err)
	}
	return nil
}
