package ptc

import (
	"encoding/binary"
	"math"
	"testing"
)

func buildFileHeader(versionMajor int16, numFrames, offsetToFrame int32) []byte {
	b := make([]byte, fileHeaderSize)
	copy(b[0:8], magic[:])
	binary.LittleEndian.PutUint16(b[8:10], uint16(versionMajor))
	binary.LittleEndian.PutUint16(b[10:12], 0)
	// b[12:16] reserved
	binary.LittleEndian.PutUint32(b[16:20], 0) // DataLength
	binary.LittleEndian.PutUint32(b[20:24], uint32(numFrames))
	// b[24:36] reserved
	binary.LittleEndian.PutUint32(b[36:40], uint32(offsetToFrame))
	return b
}

func TestParseFileHeaderValid(t *testing.T) {
	b := buildFileHeader(1, 1, 0)
	c := &cursor{data: b}
	h, err := parseFileHeader(c)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if h.Magic != magic {
		t.Errorf("magic mismatch")
	}
	if h.NumFrames != 1 {
		t.Errorf("NumFrames = %d want 1", h.NumFrames)
	}
}

func TestParseFileHeaderBadMagic(t *testing.T) {
	b := buildFileHeader(1, 1, 0)
	b[0] = 'X'
	c := &cursor{data: b}
	if _, err := parseFileHeader(c); err == nil {
		t.Fatal("expected error for bad magic")
	}
}

func TestParseFileHeaderRejectsMultiFrame(t *testing.T) {
	b := buildFileHeader(1, 2, 0)
	c := &cursor{data: b}
	if _, err := parseFileHeader(c); err == nil {
		t.Fatal("expected error for NumFrames != 1")
	}
}

func TestParseFileHeaderRejectsFutureVersion(t *testing.T) {
	b := buildFileHeader(0x1AF, 1, 0)
	c := &cursor{data: b}
	if _, err := parseFileHeader(c); err == nil {
		t.Fatal("expected error for version too new")
	}
}

func buildFrameHeader(width, height, numChannels, chunkWidth int16, flags uint16) []byte {
	b := make([]byte, frameHeaderSize)
	binary.LittleEndian.PutUint32(b[0:4], 0)  // CompressedLength
	binary.LittleEndian.PutUint32(b[4:8], 0)  // TileLength
	binary.LittleEndian.PutUint32(b[8:12], 0) // TileCount
	// b[12:20] reserved
	binary.LittleEndian.PutUint16(b[20:22], 0) // OneBitAlpha
	binary.LittleEndian.PutUint16(b[22:24], flags)
	binary.LittleEndian.PutUint32(b[24:28], 0) // QSColor
	binary.LittleEndian.PutUint32(b[28:32], 0) // QSAlpha
	binary.LittleEndian.PutUint32(b[32:36], uint32(int32(height)))
	binary.LittleEndian.PutUint32(b[36:40], uint32(int32(width)))
	// b[40:48] reserved
	binary.LittleEndian.PutUint16(b[48:50], 8) // BitCount
	binary.LittleEndian.PutUint16(b[50:52], 8) // BitDepth
	binary.LittleEndian.PutUint16(b[52:54], uint16(numChannels))
	binary.LittleEndian.PutUint16(b[54:56], uint16(chunkWidth))
	// b[56:64] reserved
	binary.LittleEndian.PutUint32(b[64:68], math.Float32bits(1.0)) // Scale
	return b
}

func TestParseFrameHeaderValid(t *testing.T) {
	b := buildFrameHeader(64, 64, 3, 256, 0)
	c := &cursor{data: b}
	f, err := parseFrameHeader(c)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.Width != 64 || f.Height != 64 || f.NumChannels != 3 || f.ChunkWidth != 256 {
		t.Errorf("unexpected frame header: %+v", f)
	}
}

func TestParseFrameHeaderRejectsZeroDimensions(t *testing.T) {
	b := buildFrameHeader(0, 64, 3, 256, 0)
	c := &cursor{data: b}
	if _, err := parseFrameHeader(c); err == nil {
		t.Fatal("expected error for zero width")
	}
}

func TestGetChannelInfoAlphaIsLastChannel(t *testing.T) {
	f := FrameHeader{NumChannels: 4, Flags: 0x1000}
	info := getChannelInfo(f, 3)
	if !info.IsAlpha {
		t.Error("expected last channel to be alpha when has-alpha flag set")
	}
	info0 := getChannelInfo(f, 0)
	if info0.IsAlpha {
		t.Error("channel 0 should not be alpha")
	}
}

func TestGetChannelInfoOneBitAlphaMask(t *testing.T) {
	f := FrameHeader{NumChannels: 2, OneBitAlpha: 0x2}
	if !getChannelInfo(f, 1).IsOneBitAlpha {
		t.Error("channel 1 should be marked one-bit alpha per mask")
	}
	if getChannelInfo(f, 0).IsOneBitAlpha {
		t.Error("channel 0 should not be one-bit alpha")
	}
}

func TestGetChannelInfoScaledQuantizedChromaOnly(t *testing.T) {
	// colorspace = 1 (YCoCg) lives in Flags bits 4-7.
	f := FrameHeader{NumChannels: 3, Flags: 1 << 4}
	if getChannelInfo(f, 0).IsScaledQuantized {
		t.Error("channel 0 (Y) should not be scaled-quantized")
	}
	if !getChannelInfo(f, 1).IsScaledQuantized {
		t.Error("channel 1 (chroma) should be scaled-quantized")
	}
}

func TestFrameHeaderColorspaceForcedToYBelowThreeChannels(t *testing.T) {
	f := FrameHeader{NumChannels: 2, Flags: 1 << 4}
	if f.colorspace() != 0 {
		t.Errorf("colorspace() = %d want 0 (forced Y)", f.colorspace())
	}
}

func TestFrameHeaderColorspaceYCrCxDcSurvivesTwoChannels(t *testing.T) {
	f := FrameHeader{NumChannels: 2, Flags: 4 << 4}
	if f.colorspace() != 4 {
		t.Errorf("colorspace() = %d want 4 (YCrCxDc)", f.colorspace())
	}
}
