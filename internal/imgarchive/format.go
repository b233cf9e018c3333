package imgarchive

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"strings"
)

// Version distinguishes the two on-disk IMG layouts.
type Version int

const (
	// VER1 is the paired *.dir + *.img layout with no embedded header.
	VER1 Version = iota + 1
	// VER2 is the single *.img layout with an embedded, magic-prefixed
	// directory.
	VER2
)

func (v Version) String() string {
	switch v {
	case VER1:
		return "VER1"
	case VER2:
		return "VER2"
	default:
		return "unknown"
	}
}

// ver2Magic is the four-byte signature that opens a VER2 archive.
var ver2Magic = [4]byte{'V', 'E', 'R', '2'}

// ver2HeaderSize is the fixed VER2 header width: magic + entry count.
const ver2HeaderSize = 8

// GuessVersion probes path and reports which on-disk layout it is, without
// leaving any file handle open. For a VER1 archive, path may be either half
// of the pair; the sibling is located by swapping the extension.
func GuessVersion(path string) (Version, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, wrapErr(KindIO, "open "+path, err)
	}
	defer f.Close()

	header := make([]byte, 4)
	n, _ := f.ReadAt(header, 0)
	if n == 4 && [4]byte(header) == ver2Magic {
		return VER2, nil
	}

	dirPath, imgPath, err := ver1Paths(path)
	if err != nil {
		return 0, err
	}
	fi, err := os.Stat(dirPath)
	if err != nil {
		return 0, newErr(KindFormat, "not a recognizable IMG archive: "+path)
	}
	if fi.Size()%recordSize != 0 {
		return 0, newErr(KindFormat, "sibling .dir file length is not a multiple of the record size")
	}
	if _, err := os.Stat(imgPath); err != nil {
		return 0, newErr(KindFormat, "sibling .img payload file is missing")
	}
	return VER1, nil
}

// ver1Paths derives the canonical *.dir/*.img pair from either half.
func ver1Paths(path string) (dirPath, imgPath string, err error) {
	ext := filepath.Ext(path)
	base := strings.TrimSuffix(path, ext)
	switch strings.ToLower(ext) {
	case ".dir":
		return path, base + ".img", nil
	case ".img":
		return base + ".dir", path, nil
	default:
		return base + ".dir", base + ".img", nil
	}
}

// ver2RequiredHeaderBlocks returns the number of blocks the VER2 header and
// directory occupy for n entries: ceil((8 + 40*n) / 2048).
func ver2RequiredHeaderBlocks(n int) (uint32, error) {
	bytesNeeded := int64(ver2HeaderSize) + int64(n)*int64(recordSize)
	return bytesToBlocks(bytesNeeded)
}

func writeVer2Header(buf []byte, count uint32) {
	copy(buf[0:4], ver2Magic[:])
	binary.LittleEndian.PutUint32(buf[4:8], count)
}
