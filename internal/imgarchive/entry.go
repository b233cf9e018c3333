package imgarchive

import (
	"bytes"
	"encoding/binary"
)

// nameFieldSize is the width of the null-padded ASCII name field.
const nameFieldSize = 24

// nameFieldStart is the byte offset of the name field within a record.
// Bytes [8, 16) are reserved and always written as zero.
const nameFieldStart = 16

// recordSize is the full on-disk width of one entry record: 4-byte offset +
// 4-byte size + 8 reserved bytes + 24-byte name = 40 bytes.
const recordSize = nameFieldStart + nameFieldSize

// Entry is a directory entry: a payload's block range and name. Entries are
// value types; callers receive copies, never pointers into the directory's
// internal state.
type Entry struct {
	Offset uint32 // start of payload, in blocks
	Size   uint32 // payload length, in blocks (padded)
	Name   string
}

// OffsetBytes returns the payload's starting byte offset.
func (e Entry) OffsetBytes() int64 { return blocksToBytes(e.Offset) }

// SizeBytes returns the payload's length in bytes, including any trailing
// zero padding up to the block boundary.
func (e Entry) SizeBytes() int64 { return blocksToBytes(e.Size) }

// encodeEntry serializes an entry to its 40-byte little-endian on-disk form.
func encodeEntry(e Entry) ([]byte, error) {
	buf := make([]byte, recordSize)
	binary.LittleEndian.PutUint32(buf[0:4], e.Offset)
	binary.LittleEndian.PutUint32(buf[4:8], e.Size)

	nameBytes := []byte(e.Name)
	if len(nameBytes) > nameFieldSize-1 {
		// validateName should have already rejected this; guard anyway.
		return nil, newErr(KindInvalidName, "name exceeds on-disk field width")
	}
	copy(buf[nameFieldStart:nameFieldStart+nameFieldSize], nameBytes)
	// Bytes [8:16) stay zero (reserved); remaining name bytes are NUL padding.
	return buf, nil
}

// decodeEntry parses one 40-byte record. The name is taken up to the first
// NUL byte in its field; if no NUL is present, the full 24 bytes are used.
func decodeEntry(buf []byte) (Entry, error) {
	if len(buf) != recordSize {
		return Entry{}, newErr(KindFormat, "short entry record")
	}
	offset := binary.LittleEndian.Uint32(buf[0:4])
	size := binary.LittleEndian.Uint32(buf[4:8])
	nameField := buf[nameFieldStart : nameFieldStart+nameFieldSize]
	end := bytes.IndexByte(nameField, 0)
	var name string
	if end < 0 {
		name = string(nameField)
	} else {
		name = string(nameField[:end])
	}
	return Entry{Offset: offset, Size: size, Name: name}, nil
}
