package raster

import (
	"encoding/binary"
	"testing"
)

func TestCompressionTypeString(t *testing.T) {
	cases := map[CompressionType]string{
		CompressionDelta:   "delta",
		CompressionLZ1:     "lz1",
		CompressionPTC:     "ptc",
		CompressionDxt1:    "dxt1",
		CompressionMax:     "max",
	}
	for ct, want := range cases {
		if got := ct.String(); got != want {
			t.Errorf("%d.String() = %q want %q", ct, got, want)
		}
	}
}

func TestDecodeUnsupportedVariant(t *testing.T) {
	for _, ct := range []CompressionType{CompressionDxt1, CompressionDxt3, CompressionDxt5, CompressionSolidBlock, CompressionMax} {
		if _, err := Decode(ct, nil, Params{}); err == nil {
			t.Errorf("%s: expected unsupported-variant error", ct)
		}
	}
}

func TestDecodeDelta(t *testing.T) {
	// uncompressedSize=2 (even): 2-byte little-endian anchor only.
	compressed := []byte{0x34, 0x12}
	out, err := Decode(CompressionDelta, compressed, Params{UncompressedSize: 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 2 || out[0] != 0x34 || out[1] != 0x12 {
		t.Errorf("got %v want [0x34 0x12]", out)
	}
}

func TestDecodeLZSignatureMismatch(t *testing.T) {
	compressed := []byte{0x00, 0x00}
	if _, err := Decode(CompressionLZ1, compressed, Params{UncompressedSize: 4}); err == nil {
		t.Fatal("expected signature mismatch error")
	}
}

func TestDecodeChainedMissingPrefix(t *testing.T) {
	if _, err := Decode(CompressionDeltaLZ1, []byte{1, 2, 3}, Params{UncompressedSize: 4}); err == nil {
		t.Fatal("expected underrun error for missing 4-byte intermediate size prefix")
	}
}

func TestDecodeChainedDeltaLZ1SizeMismatch(t *testing.T) {
	// A well-formed LZ1 header with no token stream behind it, against a
	// nonzero declared intermediate size, must fail (the LZ stage runs out
	// of input) rather than silently short-circuiting.
	compressed := make([]byte, 4+2)
	binary.LittleEndian.PutUint32(compressed[:4], 10) // intermediateSize
	compressed[4], compressed[5] = 0x44, 0x53          // LZ1 signature, then nothing

	if _, err := Decode(CompressionDeltaLZ1, compressed, Params{UncompressedSize: 10}); err == nil {
		t.Fatal("expected error from short intermediate LZ1 stream")
	}
}

func TestDecodeBitPackNonPositiveDimensions(t *testing.T) {
	_, err := Decode(CompressionBitPack, []byte{0, 0, 0, 0}, Params{UncompressedSize: 0, Rows: 0, Cols: 0})
	if err == nil {
		t.Fatal("expected error for non-positive raster dimensions")
	}
}
