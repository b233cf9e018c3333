package imgarchive

import "sort"

// VerifyLayout walks the directory checking the invariants spec.md §3
// requires of a well-formed archive: valid names, no entry clobbering the
// VER2 header/directory region, and no two live payload ranges overlapping.
// It exists so a caller can sanity-check an archive that may have been
// produced or edited by another tool before handing it to a mutation; the
// engine's own writes can never violate these, so a failure here always
// indicates external interference (§7's InvariantViolation).
func (a *Archive) VerifyLayout() error {
	entries := a.dir.iterate()

	for _, e := range entries {
		if err := validateName(e.Name); err != nil {
			return wrapErr(KindInvariant, "entry has an invalid name", err)
		}
	}

	if a.version == VER2 {
		requiredHeaderBlocks, err := ver2RequiredHeaderBlocks(len(entries))
		if err != nil {
			return err
		}
		for _, e := range entries {
			if e.Size != 0 && e.Offset < requiredHeaderBlocks {
				return newErr(KindInvariant, "entry "+e.Name+" overlaps the directory region")
			}
		}
	}

	sorted := make([]Entry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Offset < sorted[j].Offset })
	var maxEnd uint64
	var maxEndName string
	for _, e := range sorted {
		if e.Size == 0 {
			continue
		}
		if uint64(e.Offset) < maxEnd {
			return newErr(KindInvariant, "entries "+maxEndName+" and "+e.Name+" overlap")
		}
		if end := uint64(e.Offset) + uint64(e.Size); end > maxEnd {
			maxEnd, maxEndName = end, e.Name
		}
	}
	return nil
}
