package imgarchive

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDirectoryInsertLookupContains(t *testing.T) {
	d := newDirectory()
	require.NoError(t, d.insert(Entry{Offset: 1, Size: 1, Name: "FOO.DFF"}))
	require.True(t, d.contains("foo.dff"))
	e, ok := d.lookup("FOO.DFF")
	require.True(t, ok)
	require.Equal(t, uint32(1), e.Offset)
	require.True(t, d.dirty)
}

func TestDirectoryInsertRejectsCaseInsensitiveDuplicate(t *testing.T) {
	d := newDirectory()
	require.NoError(t, d.insert(Entry{Name: "FOO.DFF"}))
	err := d.insert(Entry{Name: "foo.dff"})
	require.Error(t, err)
	require.Equal(t, KindDuplicateName, err.(*ArchiveError).Kind())
}

func TestDirectoryRemoveShiftsIndices(t *testing.T) {
	d := newDirectory()
	require.NoError(t, d.insert(Entry{Name: "A"}))
	require.NoError(t, d.insert(Entry{Name: "B"}))
	require.NoError(t, d.insert(Entry{Name: "C"}))

	require.NoError(t, d.remove("A"))
	require.Equal(t, 2, d.count())

	e, ok := d.lookup("B")
	require.True(t, ok)
	require.Equal(t, "B", e.Name)
	e, ok = d.lookup("C")
	require.True(t, ok)
	require.Equal(t, "C", e.Name)
}

func TestDirectoryRemoveUnknownFails(t *testing.T) {
	d := newDirectory()
	err := d.remove("MISSING")
	require.Error(t, err)
	require.Equal(t, KindNotFound, err.(*ArchiveError).Kind())
}

func TestDirectoryRename(t *testing.T) {
	d := newDirectory()
	require.NoError(t, d.insert(Entry{Name: "OLD.TXT"}))
	require.NoError(t, d.rename("OLD.TXT", "NEW.TXT"))
	require.False(t, d.contains("OLD.TXT"))
	_, ok := d.lookup("NEW.TXT")
	require.True(t, ok)
}

func TestDirectoryRenameRejectsCollision(t *testing.T) {
	d := newDirectory()
	require.NoError(t, d.insert(Entry{Name: "A"}))
	require.NoError(t, d.insert(Entry{Name: "B"}))
	err := d.rename("A", "B")
	require.Error(t, err)
	require.Equal(t, KindDuplicateName, err.(*ArchiveError).Kind())
}

func TestDirectoryRenameRejectsInvalidNewName(t *testing.T) {
	d := newDirectory()
	require.NoError(t, d.insert(Entry{Name: "A"}))
	err := d.rename("A", "")
	require.Error(t, err)
	require.Equal(t, KindInvalidName, err.(*ArchiveError).Kind())
}

func TestNewDirectoryFromEntriesRejectsDuplicates(t *testing.T) {
	_, err := newDirectoryFromEntries([]Entry{{Name: "A"}, {Name: "a"}})
	require.Error(t, err)
	require.Equal(t, KindFormat, err.(*ArchiveError).Kind())
}

func TestDirectoryIterateReturnsCopy(t *testing.T) {
	d := newDirectory()
	require.NoError(t, d.insert(Entry{Name: "A"}))
	entries := d.iterate()
	entries[0].Name = "MUTATED"
	e, _ := d.lookup("A")
	require.Equal(t, "A", e.Name)
}

func TestDirectoryReplaceOffsets(t *testing.T) {
	d := newDirectory()
	require.NoError(t, d.insert(Entry{Name: "A", Offset: 5}))
	require.NoError(t, d.insert(Entry{Name: "B", Offset: 9}))
	d.dirty = false

	d.replaceOffsets(map[string]uint32{"A": 1, "B": 2})
	a, _ := d.lookup("A")
	b, _ := d.lookup("B")
	require.Equal(t, uint32(1), a.Offset)
	require.Equal(t, uint32(2), b.Offset)
	require.True(t, d.dirty)
}
