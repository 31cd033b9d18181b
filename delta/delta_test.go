package delta

import (
	"encoding/binary"
	"testing"
)

func TestDecodeAnchorOnly(t *testing.T) {
	compressed := []byte{0x64, 0x00} // anchor = 100
	got, err := Decode(compressed, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v := int16(binary.LittleEndian.Uint16(got)); v != 100 {
		t.Errorf("got %d want 100", v)
	}
}

func TestDecodeSignedDelta(t *testing.T) {
	// anchor=100, then signed byte -5 -> 95
	compressed := []byte{0x64, 0x00, 0xFB}
	got, err := Decode(compressed, 4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	v0 := int16(binary.LittleEndian.Uint16(got[0:2]))
	v1 := int16(binary.LittleEndian.Uint16(got[2:4]))
	if v0 != 100 {
		t.Errorf("anchor got %d want 100", v0)
	}
	if v1 != 95 {
		t.Errorf("delta got %d want 95", v1)
	}
}

func TestDecodeLiteral16Escape(t *testing.T) {
	// anchor=0, then literal16 escape -> little-endian 0xBBAA
	compressed := []byte{0x00, 0x00, 0x80, 0xAA, 0xBB}
	got, err := Decode(compressed, 4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	v1 := uint16(binary.LittleEndian.Uint16(got[2:4]))
	if v1 != 0xBBAA {
		t.Errorf("got %#x want 0xBBAA", v1)
	}
}

func TestDecodeNegativeEscape(t *testing.T) {
	// anchor=200, negative escape with next_byte=1 -> 200 - 1 - 126 = 73
	compressed := []byte{0xC8, 0x00, 0x81, 0x01}
	got, err := Decode(compressed, 4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	v1 := int16(binary.LittleEndian.Uint16(got[2:4]))
	if v1 != 73 {
		t.Errorf("got %d want 73", v1)
	}
}

func TestDecodePositiveEscape(t *testing.T) {
	// anchor=0, positive escape with next_byte=1 -> 0 + 1 + 128 = 129
	compressed := []byte{0x00, 0x00, 0x82, 0x01}
	got, err := Decode(compressed, 4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	v1 := int16(binary.LittleEndian.Uint16(got[2:4]))
	if v1 != 129 {
		t.Errorf("got %d want 129", v1)
	}
}

func TestDecodeOddSizePassthrough(t *testing.T) {
	// 1-byte passthrough, then anchor, for an odd total size of 3 bytes.
	compressed := []byte{0x7F, 0x64, 0x00}
	got, err := Decode(compressed, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got[0] != 0x7F {
		t.Errorf("passthrough byte got %#x want 0x7F", got[0])
	}
	v := int16(binary.LittleEndian.Uint16(got[1:3]))
	if v != 100 {
		t.Errorf("anchor got %d want 100", v)
	}
}

func TestDecodeUnderrun(t *testing.T) {
	if _, err := Decode([]byte{0x01}, 4); err == nil {
		t.Fatal("expected underrun error")
	}
}
