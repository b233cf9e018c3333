package imgarchive

import (
	"io"
	"sort"
)

// Pack compacts the archive: payloads are moved so that, sorted by offset,
// they are contiguous with no gaps and no overlaps, and the payload file is
// truncated to the result. Directory iteration order is unchanged; only
// offsets move. Returns the new archive size in blocks, including the
// header/directory region.
func (a *Archive) Pack() (uint32, error) {
	if a.mode != ReadWrite {
		return 0, newErr(KindAccess, "archive is opened read-only")
	}

	entries := a.dir.iterate()
	sorted := make([]Entry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Offset < sorted[j].Offset })

	// The relocation copy never grows the file (cursor <= every original
	// offset), but a copy-on-write filesystem can still need fresh blocks to
	// hold the destination range until the source range is freed by
	// Truncate; preflight the same way ImportFile does rather than
	// discovering ENOSPC partway through a relocation.
	if a.cfg != nil && a.cfg.PreflightDiskCheck {
		var relocateBytes int64
		for _, e := range sorted {
			relocateBytes += e.SizeBytes()
		}
		if err := a.checkFreeSpace(relocateBytes); err != nil {
			return 0, err
		}
	}

	var cursor uint32
	if a.version == VER2 {
		hb, err := ver2RequiredHeaderBlocks(len(entries))
		if err != nil {
			return 0, err
		}
		cursor = hb
	}

	bufSize := 1 << 20
	if a.cfg != nil && a.cfg.PackCopyBufferBytes > 0 {
		bufSize = a.cfg.PackCopyBufferBytes
	}
	buf := make([]byte, bufSize)

	newOffsets := make(map[string]uint32, len(sorted))
	for _, e := range sorted {
		if e.Offset != cursor {
			// cursor <= e.Offset always holds here: every earlier record in
			// sorted order has already been moved down to or left at a
			// position <= its original offset, so the forward streaming
			// copy below never reads bytes it has already overwritten.
			if err := a.copyBlockRange(e.OffsetBytes(), blocksToBytes(cursor), e.SizeBytes(), buf); err != nil {
				return 0, err
			}
		}
		newOffsets[foldName(e.Name)] = cursor
		cursor += e.Size
	}

	if err := a.payload.Truncate(blocksToBytes(cursor)); err != nil {
		return 0, wrapErr(KindIO, "truncate payload file", err)
	}

	a.dir.replaceOffsets(newOffsets)
	return cursor, nil
}

func (a *Archive) copyBlockRange(srcOffset, dstOffset, size int64, buf []byte) error {
	if size == 0 {
		return nil
	}
	src := io.NewSectionReader(a.payload, srcOffset, size)
	dst := io.NewOffsetWriter(a.payload, dstOffset)
	if _, err := io.CopyBuffer(dst, src, buf); err != nil {
		return wrapErr(KindIO, "relocate payload during pack", err)
	}
	return nil
}
