// Package bitio provides the two bit-pool flavors the terrain codecs share:
// an LSB-first pool for LZ token streams and an MSB-first pool for BitPack
// and the PTC entropy coders. Both are bounded readers over an in-memory
// byte slice — there is no I/O here, only bit-level cursor arithmetic.
package bitio

import (
	"github.com/pkg/errors"

	"github.com/flightsimlib/terraincodec/internal/errs"
)

// LSBReader pulls bits least-significant-bit first out of a bounded byte
// slice, buffering the unconsumed high bits of the last byte read in carry.
type LSBReader struct {
	data  []byte
	pos   int
	carry uint32
	nbits int
}

// NewLSBReader wraps data for LSB-first bit reading starting at offset 0.
func NewLSBReader(data []byte) *LSBReader {
	return &LSBReader{data: data}
}

// Pos returns the number of whole bytes consumed from the underlying slice.
func (r *LSBReader) Pos() int { return r.pos }

func (r *LSBReader) refill() error {
	if r.pos >= len(r.data) {
		return errors.Wrap(errs.ErrUnderrun, "lsb pool exhausted")
	}
	r.carry |= uint32(r.data[r.pos]) << uint(r.nbits)
	r.pos++
	r.nbits += 8
	return nil
}

// ReadBit returns the next single bit, LSB-first.
func (r *LSBReader) ReadBit() (int, error) {
	if r.nbits == 0 {
		if err := r.refill(); err != nil {
			return 0, err
		}
	}
	bit := int(r.carry & 1)
	r.carry >>= 1
	r.nbits--
	return bit, nil
}

// ReadBits reads n (0..32) bits, each successively-read bit landing one
// position higher in the returned value (bit 0 is the first bit read).
func (r *LSBReader) ReadBits(n int) (uint32, error) {
	var out uint32
	for i := 0; i < n; i++ {
		bit, err := r.ReadBit()
		if err != nil {
			return 0, err
		}
		out |= uint32(bit) << uint(i)
	}
	return out, nil
}
