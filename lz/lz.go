// Package lz implements the two signature-prefixed LZ variants used to
// compress BGL raster blocks: LZ1 (minimum match length 2) and LZ2
// (minimum match length 3). Both share one token grammar over an
// LSB-first bit pool; only the signature and minimum match length differ.
package lz

import (
	"github.com/pkg/errors"

	"github.com/flightsimlib/terraincodec/bitio"
	"github.com/flightsimlib/terraincodec/internal/errs"
)

// sentinelOffset terminates a token without emitting a copy. It is the one
// value a 12-bit far-offset (320 + 4095) can reach that no literal match
// would ever need.
const sentinelOffset = 0x113F

type variant struct {
	signature [2]byte
	minMatch  int
}

var lz1 = variant{signature: [2]byte{0x44, 0x53}, minMatch: 2}
var lz2 = variant{signature: [2]byte{0x4A, 0x4D}, minMatch: 3}

// DecodeLZ1 reconstructs exactly uncompressedSize bytes from an LZ1 stream.
func DecodeLZ1(compressed []byte, uncompressedSize int) ([]byte, error) {
	return decode(compressed, uncompressedSize, lz1)
}

// DecodeLZ2 reconstructs exactly uncompressedSize bytes from an LZ2 stream.
func DecodeLZ2(compressed []byte, uncompressedSize int) ([]byte, error) {
	return decode(compressed, uncompressedSize, lz2)
}

func decode(compressed []byte, size int, v variant) ([]byte, error) {
	if len(compressed) < 2 || compressed[0] != v.signature[0] || compressed[1] != v.signature[1] {
		return nil, errors.Wrapf(errs.ErrInvalidSignature, "lz: want %02x%02x", v.signature[0], v.signature[1])
	}
	if size == 0 {
		return []byte{}, nil
	}

	r := bitio.NewLSBReader(compressed[2:])
	out := make([]byte, 0, size)

	for len(out) < size {
		var err error
		out, err = v.decodeToken(r, out, size)
		if err != nil {
			return nil, errors.Wrap(err, "lz: decode token")
		}
	}
	return out, nil
}

// decodeToken reads one token and returns the (possibly extended) output.
func (v variant) decodeToken(r *bitio.LSBReader, out []byte, size int) ([]byte, error) {
	isLZ1 := v.signature == lz1.signature

	var isLiteral, isHigh bool
	var isLong bool

	if isLZ1 {
		mode, err := r.ReadBits(2)
		if err != nil {
			return nil, err
		}
		switch mode {
		case 0: // long match
			isLiteral, isLong = false, true
		case 1: // high-ASCII literal
			isLiteral, isHigh = true, true
		case 2: // low-ASCII literal
			isLiteral, isHigh = true, false
		case 3: // short match
			isLiteral, isLong = false, false
		}
	} else {
		lit, err := r.ReadBit()
		if err != nil {
			return nil, err
		}
		isLiteral = lit == 1
		if isLiteral {
			hi, err := r.ReadBit()
			if err != nil {
				return nil, err
			}
			isHigh = hi == 1
		} else {
			long, err := r.ReadBit()
			if err != nil {
				return nil, err
			}
			isLong = long == 1
		}
	}

	if isLiteral {
		payload, err := r.ReadBits(7)
		if err != nil {
			return nil, err
		}
		b := byte(payload & 0x7F)
		if isHigh {
			b |= 0x80
		}
		return append(out, b), nil
	}

	offset, err := readOffset(r, isLong)
	if err != nil {
		return nil, err
	}
	if offset == sentinelOffset {
		return out, nil
	}

	length, err := readMatchLength(r, v.minMatch)
	if err != nil {
		return nil, err
	}
	if remaining := size - len(out); length > remaining {
		length = remaining
	}
	return copyMatch(out, offset, length)
}

func readOffset(r *bitio.LSBReader, long bool) (int, error) {
	if !long {
		v, err := r.ReadBits(6)
		if err != nil {
			return 0, err
		}
		return int(v), nil
	}
	far, err := r.ReadBit()
	if err != nil {
		return 0, err
	}
	if far == 0 {
		v, err := r.ReadBits(8)
		if err != nil {
			return 0, err
		}
		return int(v) + 64, nil
	}
	v, err := r.ReadBits(12)
	if err != nil {
		return 0, err
	}
	return int(v) + 320, nil
}

// readMatchLength decodes the Elias-gamma-like length prefix: k leading
// zero bits (k in 0..15) followed by a terminating one bit.
func readMatchLength(r *bitio.LSBReader, minMatch int) (int, error) {
	k := 0
	for {
		bit, err := r.ReadBit()
		if err != nil {
			return 0, err
		}
		if bit == 1 {
			break
		}
		k++
		if k > 15 {
			return 0, errors.Wrap(errs.ErrInvalidHeader, "lz: match length prefix exceeds 15")
		}
	}
	if k == 0 {
		return minMatch, nil
	}
	extra, err := r.ReadBits(k)
	if err != nil {
		return 0, err
	}
	return (1 << uint(k)) + int(extra) + minMatch, nil
}

// copyMatch copies length bytes from offset bytes behind the current
// output position (offset 0 means "the previous byte"), supporting
// self-extending overlaps where offset < length.
func copyMatch(out []byte, offset, length int) ([]byte, error) {
	if offset+1 > len(out) {
		return nil, errors.Wrap(errs.ErrUnderrun, "lz: match offset precedes start of output")
	}
	srcStart := len(out) - offset - 1
	for i := 0; i < length; i++ {
		out = append(out, out[srcStart+i])
	}
	return out, nil
}
