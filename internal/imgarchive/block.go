package imgarchive

// BlockSize is the archive's native allocation granularity: every payload
// offset and size is expressed in 2048-byte blocks on disk.
const BlockSize = 2048

// maxBlocks bounds block counts to what fits in the on-disk unsigned 32-bit
// offset/size fields (≈8 TiB of payload data).
const maxBlocks = 1<<32 - 1

// blocksToBytes converts a block count to a byte count.
func blocksToBytes(blocks uint32) int64 {
	return int64(blocks) * BlockSize
}

// bytesToBlocks converts a byte count to the number of blocks needed to hold
// it, always rounding up so a partial trailing block is claimed in full.
func bytesToBlocks(n int64) (uint32, error) {
	if n < 0 {
		return 0, newErr(KindInvariant, "negative byte length")
	}
	blocks := (n + BlockSize - 1) / BlockSize
	if blocks > maxBlocks {
		return 0, newErr(KindIO, "payload too large: exceeds addressable block range")
	}
	return uint32(blocks), nil
}
