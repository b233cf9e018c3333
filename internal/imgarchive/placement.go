package imgarchive

// placePayload implements the append-at-end free-space policy (§4.4): a new
// or grown payload goes at the block just past every live entry's end, or
// past the header/directory region if that is further out. No explicit
// free-list is kept; reclaiming holes left by remove/replace is pack's job.
//
// finalEntryCount is the directory's entry count once the in-flight mutation
// completes (e.g. current count + 1 for an import of a brand-new name,
// unchanged for a replace). It only affects VER2, whose header grows with
// the entry count.
func (a *Archive) placePayload(finalEntryCount int, blocks uint32) (uint32, error) {
	var headerBlocks uint32
	if a.version == VER2 {
		hb, err := ver2RequiredHeaderBlocks(finalEntryCount)
		if err != nil {
			return 0, err
		}
		headerBlocks = hb
	}

	cursor := uint64(headerBlocks)
	for _, e := range a.dir.iterate() {
		end := uint64(e.Offset) + uint64(e.Size)
		if end > cursor {
			cursor = end
		}
	}
	if cursor > maxBlocks || cursor+uint64(blocks) > maxBlocks {
		return 0, newErr(KindIO, "payload placement exceeds the addressable block range")
	}
	return uint32(cursor), nil
}
