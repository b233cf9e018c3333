package imgarchive

import "testing"

func TestBlocksToBytes(t *testing.T) {
	if got := blocksToBytes(3); got != 3*BlockSize {
		t.Fatalf("blocksToBytes(3) = %d, want %d", got, 3*BlockSize)
	}
	if got := blocksToBytes(0); got != 0 {
		t.Fatalf("blocksToBytes(0) = %d, want 0", got)
	}
}

func TestBytesToBlocksRoundsUp(t *testing.T) {
	cases := []struct {
		n    int64
		want uint32
	}{
		{0, 0},
		{1, 1},
		{BlockSize, 1},
		{BlockSize + 1, 2},
		{2 * BlockSize, 2},
	}
	for _, c := range cases {
		got, err := bytesToBlocks(c.n)
		if err != nil {
			t.Fatalf("bytesToBlocks(%d): %v", c.n, err)
		}
		if got != c.want {
			t.Errorf("bytesToBlocks(%d) = %d, want %d", c.n, got, c.want)
		}
	}
}

func TestBytesToBlocksRejectsNegative(t *testing.T) {
	if _, err := bytesToBlocks(-1); err == nil {
		t.Fatal("expected error for negative byte length")
	}
}
