package imgarchive

// directory is the in-memory ordered set of entry records plus a
// case-insensitive name index. It has no notion of files or formats; that
// is the archive's job. The directory is never safe for concurrent use.
type directory struct {
	entries []Entry
	byName  map[string]int // folded name -> index into entries
	dirty   bool
}

func newDirectory() *directory {
	return &directory{byName: make(map[string]int)}
}

func newDirectoryFromEntries(entries []Entry) (*directory, error) {
	d := newDirectory()
	for _, e := range entries {
		key := foldName(e.Name)
		if _, exists := d.byName[key]; exists {
			return nil, newErr(KindFormat, "duplicate name in on-disk directory: "+e.Name)
		}
		d.byName[key] = len(d.entries)
		d.entries = append(d.entries, e)
	}
	return d, nil
}

// insert appends a new entry, rejecting a case-insensitive name collision.
func (d *directory) insert(e Entry) error {
	key := foldName(e.Name)
	if _, exists := d.byName[key]; exists {
		return newErr(KindDuplicateName, "entry already exists: "+e.Name)
	}
	d.byName[key] = len(d.entries)
	d.entries = append(d.entries, e)
	d.dirty = true
	return nil
}

// remove deletes the entry with the given name (case-insensitive). Index
// positions after the removed entry shift down by one.
func (d *directory) remove(name string) error {
	key := foldName(name)
	idx, exists := d.byName[key]
	if !exists {
		return newErr(KindNotFound, "no such entry: "+name)
	}
	d.entries = append(d.entries[:idx], d.entries[idx+1:]...)
	delete(d.byName, key)
	for k, i := range d.byName {
		if i > idx {
			d.byName[k] = i - 1
		}
	}
	d.dirty = true
	return nil
}

// rename updates an entry's name in place. No intermediate state is visible
// to concurrent lookups on the same goroutine (the map and slice are updated
// together before returning).
func (d *directory) rename(oldName, newName string) error {
	if err := validateName(newName); err != nil {
		return err
	}
	oldKey := foldName(oldName)
	idx, exists := d.byName[oldKey]
	if !exists {
		return newErr(KindNotFound, "no such entry: "+oldName)
	}
	newKey := foldName(newName)
	if newKey != oldKey {
		if _, collide := d.byName[newKey]; collide {
			return newErr(KindDuplicateName, "entry already exists: "+newName)
		}
	}
	d.entries[idx].Name = newName
	delete(d.byName, oldKey)
	d.byName[newKey] = idx
	d.dirty = true
	return nil
}

// lookup returns a copy of the named entry, case-insensitively.
func (d *directory) lookup(name string) (Entry, bool) {
	idx, exists := d.byName[foldName(name)]
	if !exists {
		return Entry{}, false
	}
	return d.entries[idx], true
}

func (d *directory) contains(name string) bool {
	_, exists := d.byName[foldName(name)]
	return exists
}

// iterate returns a copy of the entries in insertion order. Callers never
// get a reference into the directory's internal slice.
func (d *directory) iterate() []Entry {
	out := make([]Entry, len(d.entries))
	copy(out, d.entries)
	return out
}

func (d *directory) count() int { return len(d.entries) }

// replaceOffsets rewrites offsets in place following a pack; it preserves
// insertion order and entry identity (matched by folded name), only moving
// the block range each entry points at.
func (d *directory) replaceOffsets(newOffsets map[string]uint32) {
	for i, e := range d.entries {
		if off, ok := newOffsets[foldName(e.Name)]; ok {
			d.entries[i].Offset = off
		}
	}
	d.dirty = true
}
