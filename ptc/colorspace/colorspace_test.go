package colorspace

import "testing"

func TestRecolorYLosslessPassesThrough(t *testing.T) {
	src := []int32{10, -20, 30}
	dest := [][]int32{make([]int32, 1), make([]int32, 1), make([]int32, 1)}

	RecolorY(src, 1, 0, 1, 3, func(ch int) bool { return true }, 16, false, dest)

	want := []int32{10, -20, 30}
	for ch, w := range want {
		if dest[ch][0] != w {
			t.Errorf("channel %d = %d want %d", ch, dest[ch][0], w)
		}
	}
}

func TestRecolorYQuantizesAndClips(t *testing.T) {
	// bitDepth=8 -> dynamic range [-128,127]. A large input must clip.
	src := []int32{100000}
	dest := [][]int32{make([]int32, 1)}

	RecolorY(src, 1, 0, 1, 1, func(ch int) bool { return false }, 8, false, dest)

	if dest[0][0] != 127 {
		t.Errorf("got %d want clipped to 127", dest[0][0])
	}
}

func TestRecolorYCoCgLosslessIdentity(t *testing.T) {
	// y=co=cg=0 should reconstruct r=g=b=0.
	src := []int32{0, 0, 0}
	dest := [][]int32{make([]int32, 1), make([]int32, 1), make([]int32, 1)}

	RecolorYCoCg(src, 1, 0, 1, 3, true, true, ColorspaceYCoCg1, false, 16, false, dest)

	for ch, v := range dest {
		if v[0] != 0 {
			t.Errorf("channel %d = %d want 0", ch, v[0])
		}
	}
}

func TestRecolorYCoCgKFourChannels(t *testing.T) {
	src := []int32{0, 0, 0, 0}
	dest := [][]int32{make([]int32, 1), make([]int32, 1), make([]int32, 1), make([]int32, 1)}

	RecolorYCoCg(src, 1, 0, 1, 4, true, true, ColorspaceYCoCgK, false, 16, false, dest)

	for ch, v := range dest {
		if v[0] != 0 {
			t.Errorf("channel %d = %d want 0", ch, v[0])
		}
	}
}

func TestRecolorYCrCxDcBayerShortCircuits(t *testing.T) {
	src := []int32{1, 2, 3, 4}
	dest := make([]int32, 4)
	for i := range dest {
		dest[i] = -1
	}

	RecolorYCrCxDc(src, 1, 2, 0, true, true, 16, dest)

	for i, v := range dest {
		if v != -1 {
			t.Errorf("dest[%d] = %d, bayer path should be a no-op", i, v)
		}
	}
}

func TestRecolorYCrCxDcIdentityAtZero(t *testing.T) {
	src := []int32{0, 0, 0, 0}
	dest := make([]int32, 4)

	RecolorYCrCxDc(src, 1, 2, 0, false, true, 16, dest)

	for i, v := range dest {
		if v != 0 {
			t.Errorf("dest[%d] = %d want 0", i, v)
		}
	}
}

func TestDynamicRangeAtBitDepth16(t *testing.T) {
	min, max := dynamicRange(16)
	if min != -32768 || max != 32767 {
		t.Errorf("got [%d,%d] want [-32768,32767]", min, max)
	}
}
