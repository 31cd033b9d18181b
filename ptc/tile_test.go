package ptc

import (
	"encoding/binary"
	"testing"
)

// TestDecodeTileRawSingleChannel exercises decodeTile's simplest path: a
// single lossless color channel, one 16-wide chunk, raw (uncompressed)
// coefficient storage (coderType 3). It pins the DC-gather mapping that
// reorder performs for block (0,0): the first coefficient of the chunk
// lands at row 16 (the first macroblock row), column 0.
func TestDecodeTileRawSingleChannel(t *testing.T) {
	const chunkWidth = 16

	// 1-byte numCoefficients header: 4*4 = 16 raw int32 coefficients follow.
	tileData := make([]byte, 1+4*16)
	tileData[0] = 4
	binary.LittleEndian.PutUint32(tileData[1:5], uint32(int32(100)))
	for i := 1; i < 16; i++ {
		binary.LittleEndian.PutUint32(tileData[1+4*i:5+4*i], 0)
	}

	frame := FrameHeader{
		NumChannels: 1,
		ChunkWidth:  chunkWidth,
		Flags:       3, // coderType = 3 (raw) in bits 0-1
		QSColor:     0, // lossless: no dequantization multiply
	}

	var l0, l1 [32][]int32
	for i := range l0 {
		l0[i] = make([]int32, chunkWidth)
	}

	if err := decodeTile(tileData, frame, chunkWidth, 1, l0, l1, false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if l0[16][0] != 100 {
		t.Errorf("l0[16][0] = %d want 100", l0[16][0])
	}
	if l0[16][1] != 0 {
		t.Errorf("l0[16][1] = %d want 0", l0[16][1])
	}
}

func TestReadTileTableAndReadTile(t *testing.T) {
	file := FileHeader{OffsetToFrame: 0, NumFrames: 1}
	frame := FrameHeader{TileCount: 2, OffsetToData: 0}

	// Layout: [tile length table][tile 0 bytes][tile 1 bytes]
	tableOffset := int(file.OffsetToFrame) + int(frame.OffsetToData) +
		4*int(file.NumFrames) + fileHeaderSize + frameHeaderSize

	tile0 := []byte{1, 2, 3}
	tile1 := []byte{4, 5}

	data := make([]byte, tableOffset+8+len(tile0)+len(tile1))
	binary.LittleEndian.PutUint32(data[tableOffset:tableOffset+4], uint32(len(tile0)))
	binary.LittleEndian.PutUint32(data[tableOffset+4:tableOffset+8], uint32(len(tile1)))
	copy(data[tableOffset+8:], tile0)
	copy(data[tableOffset+8+len(tile0):], tile1)

	table, err := readTileTable(data, file, frame)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got0, err := readTile(data, table, 0)
	if err != nil {
		t.Fatalf("readTile(0): %v", err)
	}
	if string(got0) != string(tile0) {
		t.Errorf("tile 0 = %v want %v", got0, tile0)
	}

	got1, err := readTile(data, table, 1)
	if err != nil {
		t.Fatalf("readTile(1): %v", err)
	}
	if string(got1) != string(tile1) {
		t.Errorf("tile 1 = %v want %v", got1, tile1)
	}

	if _, err := readTile(data, table, 2); err == nil {
		t.Fatal("expected error for out-of-range tile index")
	}
}
