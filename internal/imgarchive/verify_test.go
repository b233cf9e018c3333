package imgarchive

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestVerifyLayoutDetectsOverlap(t *testing.T) {
	path := filepath.Join(t.TempDir(), "archive.img")
	a, err := Create(path, VER2)
	require.NoError(t, err)

	// Corrupt the in-memory directory directly to simulate overlap that the
	// engine's own mutation path can never produce.
	require.NoError(t, a.dir.insert(Entry{Offset: 5, Size: 4, Name: "A"}))
	require.NoError(t, a.dir.insert(Entry{Offset: 6, Size: 4, Name: "B"}))

	err = a.VerifyLayout()
	require.Error(t, err)
	require.Equal(t, KindInvariant, err.(*ArchiveError).Kind())
}

func TestVerifyLayoutDetectsHeaderClobber(t *testing.T) {
	path := filepath.Join(t.TempDir(), "archive.img")
	a, err := Create(path, VER2)
	require.NoError(t, err)

	require.NoError(t, a.dir.insert(Entry{Offset: 0, Size: 1, Name: "A"}))

	err = a.VerifyLayout()
	require.Error(t, err)
	require.Equal(t, KindInvariant, err.(*ArchiveError).Kind())
}
