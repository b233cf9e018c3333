package imgarchive

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGuessVersionVer2Magic(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "gta3.img")
	header := make([]byte, ver2HeaderSize)
	writeVer2Header(header, 0)
	require.NoError(t, os.WriteFile(path, header, 0o644))

	v, err := GuessVersion(path)
	require.NoError(t, err)
	require.Equal(t, VER2, v)
}

func TestGuessVersionVer1Pair(t *testing.T) {
	dir := t.TempDir()
	dirPath := filepath.Join(dir, "gta3.dir")
	imgPath := filepath.Join(dir, "gta3.img")
	require.NoError(t, os.WriteFile(dirPath, make([]byte, recordSize*2), 0o644))
	require.NoError(t, os.WriteFile(imgPath, []byte("payload"), 0o644))

	v, err := GuessVersion(imgPath)
	require.NoError(t, err)
	require.Equal(t, VER1, v)

	v, err = GuessVersion(dirPath)
	require.NoError(t, err)
	require.Equal(t, VER1, v)
}

func TestGuessVersionRejectsMisalignedDirFile(t *testing.T) {
	dir := t.TempDir()
	dirPath := filepath.Join(dir, "gta3.dir")
	imgPath := filepath.Join(dir, "gta3.img")
	require.NoError(t, os.WriteFile(dirPath, make([]byte, recordSize+1), 0o644))
	require.NoError(t, os.WriteFile(imgPath, []byte("x"), 0o644))

	_, err := GuessVersion(imgPath)
	require.Error(t, err)
	require.Equal(t, KindFormat, err.(*ArchiveError).Kind())
}

func TestGuessVersionRejectsMissingSibling(t *testing.T) {
	dir := t.TempDir()
	imgPath := filepath.Join(dir, "gta3.img")
	require.NoError(t, os.WriteFile(imgPath, []byte("nope"), 0o644))

	_, err := GuessVersion(imgPath)
	require.Error(t, err)
	require.Equal(t, KindFormat, err.(*ArchiveError).Kind())
}

func TestVer2RequiredHeaderBlocks(t *testing.T) {
	blocks, err := ver2RequiredHeaderBlocks(0)
	require.NoError(t, err)
	require.Equal(t, uint32(1), blocks) // 8 bytes still claims one 2048-byte block

	entriesPerBlock := (BlockSize - ver2HeaderSize) / recordSize
	blocks, err = ver2RequiredHeaderBlocks(entriesPerBlock)
	require.NoError(t, err)
	require.Equal(t, uint32(1), blocks)

	blocks, err = ver2RequiredHeaderBlocks(entriesPerBlock + 1)
	require.NoError(t, err)
	require.Equal(t, uint32(2), blocks)
}
