package imgarchive

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPlacePayloadSkipsHeaderRegionOnEmptyVer2(t *testing.T) {
	path := filepath.Join(t.TempDir(), "archive.img")
	a, err := Create(path, VER2)
	require.NoError(t, err)

	offset, err := a.placePayload(1, 3)
	require.NoError(t, err)
	headerBlocks, err := ver2RequiredHeaderBlocks(1)
	require.NoError(t, err)
	require.Equal(t, headerBlocks, offset)
}

func TestPlacePayloadGoesPastLastLiveEntry(t *testing.T) {
	path := filepath.Join(t.TempDir(), "archive.img")
	a, err := Create(path, VER2)
	require.NoError(t, err)
	require.NoError(t, a.dir.insert(Entry{Offset: 10, Size: 5, Name: "A"}))

	offset, err := a.placePayload(2, 2)
	require.NoError(t, err)
	require.Equal(t, uint32(15), offset)
}

func TestPlacePayloadVer1HasNoHeaderReservation(t *testing.T) {
	path := filepath.Join(t.TempDir(), "archive.img")
	a, err := Create(path, VER1)
	require.NoError(t, err)

	offset, err := a.placePayload(1, 4)
	require.NoError(t, err)
	require.Equal(t, uint32(0), offset)
}
