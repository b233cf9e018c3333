package imgarchive

import (
	"io"
	"os"
	"path/filepath"

	"gtaimg/internal/fsops"
)

// ImportFile validates name, determines the source's size, places it with
// the append-at-end policy, writes it zero-padded to a full block range, and
// inserts the new directory record. On any failure the directory is left
// unchanged; a partial payload write may have extended the file, but no
// entry ever references that region until Sync.
func (a *Archive) ImportFile(sourcePath, name string) error {
	if a.mode != ReadWrite {
		return newErr(KindAccess, "archive is opened read-only")
	}
	if err := validateName(name); err != nil {
		return err
	}
	if a.dir.contains(name) {
		return newErr(KindDuplicateName, "entry already exists: "+name)
	}

	src, err := os.Open(sourcePath)
	if err != nil {
		return wrapErr(KindIO, "open "+sourcePath, err)
	}
	defer src.Close()

	fi, err := src.Stat()
	if err != nil {
		return wrapErr(KindIO, "stat "+sourcePath, err)
	}
	if fi.Size() == 0 {
		return newErr(KindIO, "source is empty: "+sourcePath)
	}

	blocks, err := bytesToBlocks(fi.Size())
	if err != nil {
		return err
	}

	if a.cfg != nil && a.cfg.PreflightDiskCheck {
		if err := a.checkFreeSpace(blocksToBytes(blocks)); err != nil {
			return err
		}
	}

	offset, err := a.placePayload(a.dir.count()+1, blocks)
	if err != nil {
		return err
	}

	if err := a.writePaddedPayload(src, fi.Size(), offset, blocks); err != nil {
		return err
	}

	return a.dir.insert(Entry{Offset: offset, Size: blocks, Name: name})
}

// ExtractEntry is defined in payload.go.

// RemoveEntry deletes name from the directory. The payload blocks are
// neither zeroed nor reclaimed until Pack.
func (a *Archive) RemoveEntry(name string) error {
	if a.mode != ReadWrite {
		return newErr(KindAccess, "archive is opened read-only")
	}
	return a.dir.remove(name)
}

// RenameEntry renames an existing entry. No payload data moves.
func (a *Archive) RenameEntry(oldName, newName string) error {
	if a.mode != ReadWrite {
		return newErr(KindAccess, "archive is opened read-only")
	}
	return a.dir.rename(oldName, newName)
}

// ReplaceEntry is semantically RemoveEntry(name) followed by
// ImportFile(sourcePath, name), exposed as one operation. The old payload
// becomes a hole reclaimed only by Pack.
func (a *Archive) ReplaceEntry(name, sourcePath string) error {
	if a.mode != ReadWrite {
		return newErr(KindAccess, "archive is opened read-only")
	}
	if !a.dir.contains(name) {
		return newErr(KindNotFound, "no such entry: "+name)
	}

	src, err := os.Open(sourcePath)
	if err != nil {
		return wrapErr(KindIO, "open "+sourcePath, err)
	}
	defer src.Close()

	fi, err := src.Stat()
	if err != nil {
		return wrapErr(KindIO, "stat "+sourcePath, err)
	}
	if fi.Size() == 0 {
		return newErr(KindIO, "source is empty: "+sourcePath)
	}

	blocks, err := bytesToBlocks(fi.Size())
	if err != nil {
		return err
	}

	if a.cfg != nil && a.cfg.PreflightDiskCheck {
		if err := a.checkFreeSpace(blocksToBytes(blocks)); err != nil {
			return err
		}
	}

	// The entry count is unchanged by a replace (one removed, one added),
	// and the entry being replaced is still counted in placePayload's scan
	// of live entries, so the new payload never overlaps it.
	offset, err := a.placePayload(a.dir.count(), blocks)
	if err != nil {
		return err
	}

	if err := a.writePaddedPayload(src, fi.Size(), offset, blocks); err != nil {
		return err
	}

	if err := a.dir.remove(name); err != nil {
		return err
	}
	return a.dir.insert(Entry{Offset: offset, Size: blocks, Name: name})
}

// writePaddedPayload copies srcSize bytes from src to the payload file at
// offset (in blocks), then zero-pads the remainder of the final block.
func (a *Archive) writePaddedPayload(src io.Reader, srcSize int64, offset, blocks uint32) error {
	dst := io.NewOffsetWriter(a.payload, blocksToBytes(offset))
	if _, err := io.Copy(dst, src); err != nil {
		return wrapErr(KindIO, "write payload", err)
	}
	padLen := blocksToBytes(blocks) - srcSize
	if padLen > 0 {
		if _, err := dst.Write(make([]byte, padLen)); err != nil {
			return wrapErr(KindIO, "write payload padding", err)
		}
	}
	return nil
}

func (a *Archive) checkFreeSpace(needed int64) error {
	dir := filepath.Dir(a.payload.Name())
	_, free, err := fsops.DiskUsage(dir)
	if err != nil {
		// Free-space probing isn't available on every platform/filesystem;
		// don't block the write over a check that couldn't run.
		return nil
	}
	if int64(free) < needed {
		return newErr(KindIO, "insufficient free space for payload write")
	}
	return nil
}
