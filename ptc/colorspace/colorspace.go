// Package colorspace reconstructs PTC pixel channels from decoded
// coefficient rows (Y, YCoCg, YCoCgK, YCrCxDc) and packs the result into
// one of nine destination pixel layouts.
package colorspace

// Colorspace selects which channel-reconstruction path a frame's flag
// bits name.
type Colorspace int

const (
	ColorspaceY       Colorspace = 0
	ColorspaceYCoCg1  Colorspace = 1
	ColorspaceYCoCg2  Colorspace = 2
	ColorspaceYCoCgK  Colorspace = 3
	ColorspaceYCrCxDc Colorspace = 4
)

// dynamicRange returns the symmetric clip bounds for a non-lossless
// channel at the given bit depth: [-2^(bitDepth-1), 2^(bitDepth-1)-1].
func dynamicRange(bitDepth int) (min, max int32) {
	r := int32(32768 >> uint(16-bitDepth))
	return -r, r - 1
}

// quantize applies the "(v+4)>>3" dequantization rounding used by every
// non-lossless recolor path, then clips to [min,max].
func quantize(v, min, max int32) int32 {
	v = (v + 4) >> 3
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// RecolorY reconstructs each of numChannels independent grayscale
// channels from the interleaved coefficient row pSrc. oddMip halves the
// number of samples produced and reads every second sample.
// channelLossless(ch) reports whether channel ch skips quantization
// (always true for a one-bit-alpha channel).
func RecolorY(pSrc []int32, rowWidth, leftOffset, width, numChannels int, channelLossless func(ch int) bool, bitDepth int, oddMip bool, dest [][]int32) {
	min, max := dynamicRange(bitDepth)

	w := width
	offset := 1
	if oddMip {
		w = width >> 1
		offset = 2
	}

	for ch := 0; ch < numChannels; ch++ {
		lossless := channelLossless(ch)
		for i := 0; i < w; i++ {
			v := pSrc[leftOffset+rowWidth*ch+offset*i]
			if !lossless {
				v = quantize(v, min, max)
			}
			dest[ch][i] = v
		}
	}
}

// RecolorYCoCg reconstructs RGB (colorSpace 1 or 2) or CMYK-like YCoCgK
// (colorSpace 3) channels, plus an optional trailing alpha channel, from
// the interleaved coefficient row pSrc.
func RecolorYCoCg(pSrc []int32, rowWidth, leftOffset, width, numChannels int, lossless, alphaLossless bool, colorSpace Colorspace, hasAlpha bool, bitDepth int, oddMip bool, dest [][]int32) {
	min, max := dynamicRange(bitDepth)

	w := width
	offset := 1
	if oddMip {
		w >>= 1
		offset = 2
	}

	if colorSpace == ColorspaceYCoCgK {
		for i := 0; i < w; i++ {
			y0 := pSrc[leftOffset+0*rowWidth+offset*i]
			co := pSrc[leftOffset+1*rowWidth+offset*i]
			cg := pSrc[leftOffset+2*rowWidth+offset*i]
			k0 := pSrc[leftOffset+3*rowWidth+offset*i]

			s := y0 - (k0 >> 1)
			t := s - (cg >> 1)
			k := s + k0
			m := t + cg
			y := t - (co >> 1)
			c := y + co

			if !lossless {
				c = quantize(c, min, max)
				m = quantize(m, min, max)
				y = quantize(y, min, max)
				k = quantize(k, min, max)
			}

			dest[0][i] = c
			dest[1][i] = m
			dest[2][i] = y
			dest[3][i] = k
		}
	} else {
		for i := 0; i < w; i++ {
			y := pSrc[leftOffset+0*rowWidth+offset*i]
			co := pSrc[leftOffset+1*rowWidth+offset*i]
			cg := pSrc[leftOffset+2*rowWidth+offset*i]

			t := y - (cg >> 1)
			g := t + cg
			b := t - (co >> 1)
			r := b + co

			if !lossless {
				r = quantize(r, min, max)
				g = quantize(g, min, max)
				b = quantize(b, min, max)
			}

			dest[0][i] = r
			dest[1][i] = g
			dest[2][i] = b
		}
	}

	if hasAlpha {
		last := numChannels - 1
		for i := 0; i < w; i++ {
			v := pSrc[leftOffset+last*rowWidth+offset*i]
			if !alphaLossless {
				v = quantize(v, min, max)
			}
			dest[last][i] = v
		}
	}
}

// RecolorYCrCxDc reconstructs the CMYK-like HDR colorspace used only for
// non-Bayer-pattern frames. bayerPattern short-circuits to a no-op, per
// the original: this path was never hooked up for Bayer sources.
//
// This correction replaces an upstream bug: an earlier decoder shifted
// the channel-select flags by 6 bits instead of 8 when deriving
// bayerPattern. Only the corrected behavior is implemented here.
func RecolorYCrCxDc(pSrc []int32, rowWidth, width, leftOffset int, bayerPattern bool, lossless bool, bitDepth int, dest []int32) {
	if bayerPattern {
		return
	}

	min, max := dynamicRange(bitDepth)

	for i := 0; i < width>>1; i++ {
		y := pSrc[leftOffset+0*rowWidth+i]
		cr := pSrc[leftOffset+1*rowWidth+i]
		cx := pSrc[leftOffset+2*rowWidth+i]
		dc := pSrc[leftOffset+3*rowWidth+i]

		t := y - (dc >> 1)
		m := t + dc - (cr >> 1)
		k := t - (cx >> 1)
		c := k + cx
		yy := m + cr

		if !lossless {
			c = quantize(c, min, max)
			m = quantize(m, min, max)
			yy = quantize(yy, min, max)
			k = quantize(k, min, max)
		}

		dest[0+2*i] = c
		dest[1+2*i] = m
		dest[0+2*i+width] = yy
		dest[1+2*i+width] = k
	}
}
