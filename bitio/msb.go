package bitio

import (
	"github.com/pkg/errors"

	"github.com/flightsimlib/terraincodec/internal/errs"
)

// MSBReader pulls bits most-significant-bit first out of a bounded byte
// slice. Used by BitPack and all three PTC entropy coders.
type MSBReader struct {
	data []byte
	pos  int
	acc  uint64
	bits int // valid bits currently sitting in acc, always 0..7 between reads
}

// NewMSBReader wraps data for MSB-first bit reading starting at offset 0.
func NewMSBReader(data []byte) *MSBReader {
	return &MSBReader{data: data}
}

func (r *MSBReader) fillTo(n int) error {
	for r.bits < n {
		if r.pos >= len(r.data) {
			return errors.Wrap(errs.ErrUnderrun, "msb pool exhausted")
		}
		r.acc = (r.acc << 8) | uint64(r.data[r.pos])
		r.pos++
		r.bits += 8
	}
	return nil
}

// ReadBits reads n (0..32) bits MSB-first, stitching across byte
// boundaries as needed.
func (r *MSBReader) ReadBits(n int) (uint32, error) {
	if n == 0 {
		return 0, nil
	}
	if err := r.fillTo(n); err != nil {
		return 0, err
	}
	shift := uint(r.bits - n)
	val := (r.acc >> shift) & ((uint64(1) << uint(n)) - 1)
	r.bits -= n
	return uint32(val), nil
}

// ReadBit reads a single bit.
func (r *MSBReader) ReadBit() (int, error) {
	v, err := r.ReadBits(1)
	if err != nil {
		return 0, err
	}
	return int(v), nil
}

// ReadByte reads a full 8-bit value, stitching carry with the next byte
// even when the pool is already byte-aligned.
func (r *MSBReader) ReadByte() (byte, error) {
	v, err := r.ReadBits(8)
	if err != nil {
		return 0, err
	}
	return byte(v), nil
}

// Flush snaps the pool to the next whole-byte boundary, discarding any
// unconsumed bits of the current byte, and returns the total number of
// bytes consumed by this pool so far.
func (r *MSBReader) Flush() int {
	r.bits = 0
	return r.pos
}

// BytesConsumed returns the number of whole bytes pulled from the
// underlying slice so far (including any partially-consumed trailing byte).
func (r *MSBReader) BytesConsumed() int { return r.pos }
