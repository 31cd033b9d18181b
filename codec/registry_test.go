package codec_test

import (
	"testing"

	"github.com/flightsimlib/terraincodec/codec"
)

func TestRegistryGetByUIDAndName(t *testing.T) {
	tests := []struct {
		key      string
		wantUID  string
		wantName string
	}{
		{"delta", "delta", "bgl-delta"},
		{"bgl-delta", "delta", "bgl-delta"},
		{"bitpack", "bitpack", "bgl-bitpack"},
		{"lz1", "lz1", "bgl-lz1"},
		{"lz2", "lz2", "bgl-lz2"},
		{"ptc", "ptc", "ptc"},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			c, err := codec.Get(tt.key)
			if err != nil {
				t.Fatalf("Get(%q): %v", tt.key, err)
			}
			if c.UID() != tt.wantUID {
				t.Errorf("UID() = %q want %q", c.UID(), tt.wantUID)
			}
			if c.Name() != tt.wantName {
				t.Errorf("Name() = %q want %q", c.Name(), tt.wantName)
			}
		})
	}
}

func TestRegistryGetNonExistent(t *testing.T) {
	if _, err := codec.Get("not-a-codec"); err != codec.ErrCodecNotFound {
		t.Errorf("Get(non-existent) error = %v want %v", err, codec.ErrCodecNotFound)
	}
}

func TestRegistryListIncludesAllRegisteredCodecs(t *testing.T) {
	codecs := codec.List()
	want := map[string]bool{"delta": false, "bitpack": false, "lz1": false, "lz2": false, "ptc": false}
	for _, c := range codecs {
		if _, ok := want[c.UID()]; ok {
			want[c.UID()] = true
		}
	}
	for uid, found := range want {
		if !found {
			t.Errorf("List() missing codec %q", uid)
		}
	}
}

func TestDeltaCodecDecode(t *testing.T) {
	c, err := codec.Get("delta")
	if err != nil {
		t.Fatalf("Get(delta): %v", err)
	}
	// uncompressedSize=2 (even): 2-byte little-endian anchor only.
	result, err := c.Decode([]byte{0x34, 0x12}, codec.DecodeParams{UncompressedSize: 2})
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(result.Pixels) != 2 || result.Pixels[0] != 0x34 || result.Pixels[1] != 0x12 {
		t.Errorf("Pixels = %v want [0x34 0x12]", result.Pixels)
	}
}

func TestLZ1CodecDecodeSignatureMismatch(t *testing.T) {
	c, err := codec.Get("lz1")
	if err != nil {
		t.Fatalf("Get(lz1): %v", err)
	}
	if _, err := c.Decode([]byte{0x00, 0x00}, codec.DecodeParams{UncompressedSize: 4}); err == nil {
		t.Fatal("expected signature mismatch error")
	}
}
