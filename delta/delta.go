// Package delta implements the escape-coded 16-bit differential decoder
// used for elevation-style rasters: a little-endian signed 16-bit anchor
// followed by a byte stream of signed deltas and three escape opcodes.
package delta

import (
	"encoding/binary"

	"github.com/pkg/errors"

	"github.com/flightsimlib/terraincodec/internal/errs"
)

const (
	opLiteral16 = 0x80
	opNegEscape = 0x81
	opPosEscape = 0x82
)

// Decode expands compressed into exactly uncompressedSize bytes (an
// array of little-endian int16 samples, optionally preceded by one
// passthrough byte when uncompressedSize is odd).
func Decode(compressed []byte, uncompressedSize int) ([]byte, error) {
	out := make([]byte, 0, uncompressedSize)
	pos := 0

	if uncompressedSize%2 == 1 {
		if pos >= len(compressed) {
			return nil, errors.Wrap(errs.ErrUnderrun, "delta: missing passthrough byte")
		}
		out = append(out, compressed[pos])
		pos++
	}

	if len(out) >= uncompressedSize {
		return out, nil
	}

	if pos+2 > len(compressed) {
		return nil, errors.Wrap(errs.ErrUnderrun, "delta: missing anchor")
	}
	previous := int16(binary.LittleEndian.Uint16(compressed[pos:]))
	pos += 2
	out = binary.LittleEndian.AppendUint16(out, uint16(previous))

	for len(out) < uncompressedSize {
		if pos >= len(compressed) {
			return nil, errors.Wrap(errs.ErrUnderrun, "delta: opcode stream exhausted")
		}
		b := compressed[pos]
		pos++

		var value int16
		switch b {
		case opLiteral16:
			if pos+2 > len(compressed) {
				return nil, errors.Wrap(errs.ErrUnderrun, "delta: literal16 operand")
			}
			value = int16(binary.LittleEndian.Uint16(compressed[pos:]))
			pos += 2
		case opNegEscape:
			if pos >= len(compressed) {
				return nil, errors.Wrap(errs.ErrUnderrun, "delta: negative-escape operand")
			}
			value = previous - int16(compressed[pos]) - 126
			pos++
		case opPosEscape:
			if pos >= len(compressed) {
				return nil, errors.Wrap(errs.ErrUnderrun, "delta: positive-escape operand")
			}
			value = previous + int16(compressed[pos]) + 128
			pos++
		default:
			value = previous + int16(int8(b))
		}

		previous = value
		out = binary.LittleEndian.AppendUint16(out, uint16(value))
	}

	return out, nil
}
