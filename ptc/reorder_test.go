package ptc

import "testing"

// TestReorderDCOnlyPlacement checks that the first DC coefficient of each
// 16x16 block lands at the expected block-raster offset.
func TestReorderDCOnlyPlacement(t *testing.T) {
	const chunkWidth = 16

	pSrc := make([]int32, 16*chunkWidth)
	// one DC value per 16-wide group, placed at i*16 per the source's
	// DC-gather loop (i,j := 0,0; j<chunkWidth; i++, j+=16).
	pSrc[0] = 100

	l0 := make([]int32, 16*chunkWidth)
	reorder(pSrc, l0, chunkWidth, true)

	if l0[0] != 100 {
		t.Errorf("block 0 DC = %d want 100", l0[0])
	}
}

func TestReorderNoOpOnZeroWidth(t *testing.T) {
	// Must not panic or index out of range when chunkWidth is 0.
	reorder(nil, nil, 0, true)
}

func TestReorderSkipsL0WhenDisabled(t *testing.T) {
	const chunkWidth = 16
	pSrc := make([]int32, 16*chunkWidth)
	for i := range pSrc {
		pSrc[i] = int32(i + 1)
	}
	l0 := make([]int32, 16*chunkWidth)
	for i := range l0 {
		l0[i] = -1
	}
	reorder(pSrc, l0, chunkWidth, false)

	for i, v := range l0 {
		if v != -1 {
			t.Fatalf("l0[%d] = %d, expected untouched sentinel when genL0=false", i, v)
		}
	}
}

// TestDecodeTileCopiesL0IntoL1ForMip1 checks the mip-1 half-resolution
// plane is populated as a straight copy of the freshly-decoded L0 rows,
// per PTC.c's post-loop memcpy (the downscaled transform run afterwards
// is what actually derives the half-resolution pixels from this copy).
func TestDecodeTileCopiesL0IntoL1ForMip1(t *testing.T) {
	const width = 32
	const numChannels = 1

	var l0, l1 [32][]int32
	for i := range l0 {
		l0[i] = make([]int32, width*numChannels)
		l1[i] = make([]int32, width*numChannels)
	}
	for i := 0; i < 16; i++ {
		for j := range l1[16+i] {
			l1[16+i][j] = -1 // sentinel: must be overwritten when genMip1
		}
	}

	frame := FrameHeader{ChunkWidth: int16(width), BitDepth: 8, QSColor: 0, NumChannels: int16(numChannels)}
	tileData := make([]byte, 16*numChannels)
	if err := decodeTile(tileData, frame, width, numChannels, l0, l1, true); err != nil {
		t.Fatalf("decodeTile: %v", err)
	}

	for i := 0; i < 16; i++ {
		for j, v := range l1[16+i] {
			if v != l0[16+i][j] {
				t.Fatalf("l1[%d][%d] = %d want %d (copy of l0)", 16+i, j, v, l0[16+i][j])
			}
		}
	}
}

// TestDecodeTileLeavesL1UntouchedWithoutMip1 checks the mip-1 copy is
// skipped entirely when genMip1 is false.
func TestDecodeTileLeavesL1UntouchedWithoutMip1(t *testing.T) {
	const width = 32
	const numChannels = 1

	var l0, l1 [32][]int32
	for i := range l0 {
		l0[i] = make([]int32, width*numChannels)
		l1[i] = nil
	}

	frame := FrameHeader{ChunkWidth: int16(width), BitDepth: 8, QSColor: 0, NumChannels: int16(numChannels)}
	tileData := make([]byte, 16*numChannels)
	if err := decodeTile(tileData, frame, width, numChannels, l0, l1, false); err != nil {
		t.Fatalf("decodeTile: %v", err)
	}
}

func TestBlockOffsetTablesAreSixteenEntries(t *testing.T) {
	if len(kBlockOffsetAC) != 16 {
		t.Errorf("kBlockOffsetAC has %d entries want 16", len(kBlockOffsetAC))
	}
	if len(kBlockOffsetDC) != 16 {
		t.Errorf("kBlockOffsetDC has %d entries want 16", len(kBlockOffsetDC))
	}
	if kBlockOffsetAC[0] != 0 || kBlockOffsetDC[0] != 0 {
		t.Errorf("both scan tables must start at block (0,0)")
	}
}
