package entropy

import (
	"testing"

	"github.com/flightsimlib/terraincodec/bitio"
)

type bitWriter struct {
	bits []int
}

func (w *bitWriter) writeBits(v uint32, n int) {
	for i := n - 1; i >= 0; i-- {
		w.bits = append(w.bits, int((v>>uint(i))&1))
	}
}

func (w *bitWriter) bytes() []byte {
	var out []byte
	var cur byte
	var n int
	for _, b := range w.bits {
		cur = cur<<1 | byte(b)
		n++
		if n == 8 {
			out = append(out, cur)
			cur = 0
			n = 0
		}
	}
	if n > 0 {
		cur <<= uint(8 - n)
		out = append(out, cur)
	}
	return out
}

func TestDecodeBPCAllZeroPlanes(t *testing.T) {
	w := &bitWriter{}
	w.writeBits(0, 6) // planes = 0 -> loop body never runs
	w.writeBits(0, 2) // no unknown prefix

	r := bitio.NewMSBReader(w.bytes())
	dest := make([]int32, 4)
	if err := DecodeBPC(r, dest, 1, 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i, v := range dest {
		if v != 0 {
			t.Errorf("dest[%d] = %d want 0", i, v)
		}
	}
}

func TestDecodeBPCSingleActivation(t *testing.T) {
	w := &bitWriter{}
	w.writeBits(1, 6) // planes = 1
	w.writeBits(0, 2) // no unknown prefix
	// kInit=1 -> kp=8 -> k=1 on the (only, highest) plane, which skips the
	// refinement pass. first bit = 1 (activation path), sign=1 (negative),
	// tail (k=1 bit) = 0 -> run length 1, covering the lone entry.
	w.writeBits(1, 1) // first bit: activation path
	w.writeBits(1, 1) // sign = negative
	w.writeBits(0, 1) // tail (k=1 bits) = 0 -> run = 1

	r := bitio.NewMSBReader(w.bytes())
	dest := make([]int32, 1)
	if err := DecodeBPC(r, dest, 1, 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dest[0] != -1 {
		t.Errorf("dest[0] = %d want -1", dest[0])
	}
}

func TestDecodeRLGRAllZeroRun(t *testing.T) {
	w := &bitWriter{}
	// rangeHint <= 1 -> k=1,kr=2 (run mode). first bit=0 -> full run of 2^1=2 zeros.
	w.writeBits(0, 1)
	// remaining 2 entries: another full run covers them.
	w.writeBits(0, 1)

	r := bitio.NewMSBReader(w.bytes())
	dest := make([]int32, 4)
	if err := DecodeRLGR(r, dest, 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i, v := range dest {
		if v != 0 {
			t.Errorf("dest[%d] = %d want 0", i, v)
		}
	}
}

func TestDecodeRLGRGolombRiceMode(t *testing.T) {
	w := &bitWriter{}
	// rangeHint=8 -> v=9; 9->4(kr1)->2(kr2)->1(kr3) -> kr=3, k stays 0.
	// unary prefix terminates on a 0 bit (prefix length 0), then 3 tail bits = 0.
	w.writeBits(0, 1)
	w.writeBits(0, 3)

	r := bitio.NewMSBReader(w.bytes())
	dest := make([]int32, 1)
	if err := DecodeRLGR(r, dest, 8); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dest[0] != 0 {
		t.Errorf("got %d want 0", dest[0])
	}
}

func TestDecodeBLCAllConstantMode(t *testing.T) {
	w := &bitWriter{}
	w.writeBits(2, 2) // mode 2: single constant bit for all blocks
	w.writeBits(1, 1) // constant value = 1

	r := bitio.NewMSBReader(w.bytes())
	dest := make([]int32, 16)
	if err := DecodeBLC(r, dest, 4, 4); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i, v := range dest {
		if v != 1 {
			t.Errorf("dest[%d] = %d want 1", i, v)
		}
	}
}

func TestDecodeDispatchRaw(t *testing.T) {
	w := &bitWriter{}
	w.writeBits(0xDEADBEEF, 32)
	r := bitio.NewMSBReader(w.bytes())
	dest := make([]int32, 1)
	n, err := Decode(r, CoderRaw, dest, 0, 0, 0, 0, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 4 {
		t.Errorf("bytes consumed = %d want 4", n)
	}
	if dest[0] != int32(0xDEADBEEF) {
		t.Errorf("got %#x want 0xDEADBEEF", uint32(dest[0]))
	}
}
