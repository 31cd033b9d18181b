package colorspace

import (
	"encoding/binary"
	"math"

	"github.com/pkg/errors"

	"github.com/flightsimlib/terraincodec/internal/errs"
)

// PixelFormat enumerates the nine destination pixel layouts a decoded row
// can be packed to.
type PixelFormat int

const (
	PixelNone PixelFormat = iota
	Pixel888              // 24 bit, RGB 888
	Pixel8888             // 32 bit, RGBA 8888
	Pixel565              // 16 bit, RGB 565
	Pixel1555             // 16 bit, ARGB 1555
	Pixel555              // 16 bit, RGB 555
	Pixel4444             // 16 bit, ARGB 4444
	Pixel8                // 8 bit, uniform
	Pixel16               // 16 bit, uniform
	Pixel32               // 32 bit, uniform (float)
)

// RowParams describes one output row's destination layout, mirroring the
// union of integer bit-depth parameters and the float scale/bias pair
// PT32 uses instead.
type RowParams struct {
	Format       PixelFormat
	RowWidth     int
	StrideBytes  int
	NumBitsColor int
	NumBitsAlpha int
	Scale        float32
	Bias         float32
}

func writeRowRGB(src [][]int32, width int, writePixel func(a, r, g, b int32, dest []byte), dest []byte, numBitsColor, bitDepth, destPixelBytes int) {
	shift := bitDepth - numBitsColor
	offset := int32(1) << uint(numBitsColor-1)

	pos := 0
	for i := 0; i < width; i++ {
		var r, g, b int32
		switch {
		case shift == 0:
			r, g, b = src[0][i]+offset, src[1][i]+offset, src[2][i]+offset
		case shift < 0:
			r = (src[0][i] + offset) >> uint(-shift)
			g = (src[1][i] + offset) >> uint(-shift)
			b = (src[2][i] + offset) >> uint(-shift)
		default:
			r = (src[0][i] + offset) << uint(shift)
			g = (src[1][i] + offset) << uint(shift)
			b = (src[2][i] + offset) << uint(shift)
		}
		writePixel(255, r, g, b, dest[pos:pos+destPixelBytes])
		pos += destPixelBytes
	}
}

func writeRowARGB(src [][]int32, width int, writePixel func(a, r, g, b int32, dest []byte), dest []byte, numBitsColor, numBitsAlpha, bitDepthColor, bitDepthAlpha, destPixelBytes int) {
	shiftColor := bitDepthColor - numBitsColor
	shiftAlpha := bitDepthAlpha - numBitsAlpha
	offsetColor := int32(0)
	if numBitsColor > 1 {
		offsetColor = int32(1) << uint(numBitsColor-1)
	}
	offsetAlpha := int32(0)
	if numBitsAlpha > 1 {
		offsetAlpha = int32(1) << uint(numBitsAlpha-1)
	}

	applyShift := func(v int32, shift int) int32 {
		if shift > 0 {
			return v << uint(shift)
		}
		if shift < 0 {
			return v >> uint(-shift)
		}
		return v
	}

	pos := 0
	for i := 0; i < width; i++ {
		a := applyShift(src[3][i]+offsetAlpha, shiftAlpha)
		r := applyShift(src[0][i]+offsetColor, shiftColor)
		g := applyShift(src[1][i]+offsetColor, shiftColor)
		b := applyShift(src[2][i]+offsetColor, shiftColor)
		writePixel(a, r, g, b, dest[pos:pos+destPixelBytes])
		pos += destPixelBytes
	}
}

func writeRowUniform(src [][]int32, width int, dest []byte, numBitsColor, destPixelBytes int) {
	shift := 8*destPixelBytes - numBitsColor
	offset := int32(1) << uint(numBitsColor-1)

	pos := 0
	for i := 0; i < width; i++ {
		var val int32
		switch {
		case shift == 0:
			val = src[0][i] + offset
		case shift < 0:
			val = (src[0][i] + offset) >> uint(-shift)
		default:
			val = (src[0][i] + offset) << uint(shift)
		}

		if destPixelBytes == 2 {
			binary.LittleEndian.PutUint16(dest[pos:pos+2], uint16(val))
		} else {
			dest[pos] = byte(val)
		}
		pos += destPixelBytes
	}
}

func writePixel888(a, r, g, b int32, dest []byte) {
	dest[0] = byte(b)
	dest[1] = byte(g)
	dest[2] = byte(r)
}

// writePixel565 matches the source's 1-6-6-6 packing exactly: r and b are
// each truncated to 5 bits sharing one XOR-combined green field.
func writePixel565(a, r, g, b int32, dest []byte) {
	v := uint16((b>>1)&0x1F) | 32*uint16((32*r)^((g^(32*r))&0x3F))
	binary.LittleEndian.PutUint16(dest, v)
}

func writePixel555(a, r, g, b int32, dest []byte) {
	v := uint16(b&0x1F) | 32*(uint16(g&0x1F)|32*uint16(r&0x1F))
	binary.LittleEndian.PutUint16(dest, v)
}

func writePixel8888(a, r, g, b int32, dest []byte) {
	v := uint32(b) | (uint32(g)|(uint32(r)|uint32(a)<<8)<<8)<<8
	binary.LittleEndian.PutUint32(dest, v)
}

func writePixel1555(a, r, g, b int32, dest []byte) {
	v := uint16(b&0x1F) | 32*(uint16(g&0x1F)|32*(32*uint16(a)|uint16(r&0x1F)))
	binary.LittleEndian.PutUint16(dest, v)
}

func writePixel4444(a, r, g, b int32, dest []byte) {
	v := uint16(b&0xF) | 16*(uint16(g&0xF)|16*(uint16(r&0xF)|16*uint16(a)))
	binary.LittleEndian.PutUint16(dest, v)
}

// PackRow writes one reconstructed, colorspace-inverted row of channels
// into dest at the given row's stride offset, per params.Format.
func PackRow(params RowParams, src [][]int32, dest []byte, row int) error {
	base := row * params.StrideBytes
	out := dest[base : base+params.StrideBytes]

	switch params.Format {
	case Pixel888:
		writeRowRGB(src, params.RowWidth, writePixel888, out, params.NumBitsColor, 8, 3)
	case Pixel565:
		writeRowRGB(src, params.RowWidth, writePixel565, out, params.NumBitsColor, 6, 2)
	case Pixel555:
		writeRowRGB(src, params.RowWidth, writePixel555, out, params.NumBitsColor, 5, 2)
	case Pixel8888:
		if params.NumBitsAlpha == 0 {
			writeRowRGB(src, params.RowWidth, writePixel8888, out, params.NumBitsColor, 8, 4)
		} else {
			writeRowARGB(src, params.RowWidth, writePixel8888, out, params.NumBitsColor, params.NumBitsAlpha, 8, 8, 4)
		}
	case Pixel1555:
		if params.NumBitsAlpha == 0 {
			writeRowRGB(src, params.RowWidth, writePixel1555, out, params.NumBitsColor, 5, 2)
		} else {
			writeRowARGB(src, params.RowWidth, writePixel1555, out, params.NumBitsColor, params.NumBitsAlpha, 5, 1, 2)
		}
	case Pixel4444:
		if params.NumBitsAlpha == 0 {
			writeRowRGB(src, params.RowWidth, writePixel4444, out, params.NumBitsColor, 4, 2)
		} else {
			writeRowARGB(src, params.RowWidth, writePixel4444, out, params.NumBitsColor, params.NumBitsAlpha, 4, 4, 2)
		}
	case Pixel8:
		writeRowUniform(src, params.RowWidth, out, params.NumBitsColor, 1)
	case Pixel16:
		writeRowUniform(src, params.RowWidth, out, params.NumBitsColor, 2)
	case Pixel32:
		for i := 0; i < params.RowWidth; i++ {
			v := float32(src[0][i])*params.Scale + params.Bias
			binary.LittleEndian.PutUint32(out[i*4:i*4+4], math.Float32bits(v))
		}
	default:
		return errors.Wrap(errs.ErrUnsupportedVariant, "colorspace: unknown pixel format")
	}
	return nil
}
