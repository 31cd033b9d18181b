// Package entropy implements the three adaptive PTC coefficient coders:
// BPC (bit-plane coding), RLGR (run-length Golomb-Rice), and BLC (block
// lossless, two-dimensional context prediction). All three pull bits from
// a shared MSB-first pool and share the "adaptive parameter scaled by 8"
// update discipline.
package entropy

import (
	"github.com/pkg/errors"

	"github.com/flightsimlib/terraincodec/bitio"
	"github.com/flightsimlib/terraincodec/internal/errs"
)

// Coder names the three entropy coder types selectable by a PTC frame's
// type bits, plus the raw-coefficient passthrough.
type Coder int

const (
	CoderBPC Coder = iota
	CoderRLGR
	CoderBLC
	CoderRaw
)

const (
	activeFlag = 0x40000000
	signFlag   = 0x80000000
	magMask    = 0x3FFFFFFF
)

// DecodeBPC decodes len(dest) signed coefficients using bit-plane coding.
// planeCount mirrors the reference decoder's own parameter of the same
// name: the plane loop runs from planes-1 down to (planeCount-planes)+1,
// not down to plane 0 — kept exactly as the reference computes it.
func DecodeBPC(r *bitio.MSBReader, dest []int32, kInit, planeCount int) error {
	destCount := len(dest)
	if destCount == 0 {
		return nil
	}

	planesU, err := r.ReadBits(6)
	if err != nil {
		return errors.Wrap(err, "bpc: planes")
	}
	planes := int(planesU)

	unknownCount, err := r.ReadBits(2)
	if err != nil {
		return errors.Wrap(err, "bpc: unknown prefix count")
	}
	if unknownCount > 0 {
		unknownLength, err := r.ReadBits(4)
		if err != nil {
			return errors.Wrap(err, "bpc: unknown prefix width")
		}
		for i := 0; i < int(unknownCount)+1; i++ {
			if _, err := r.ReadBits(int(unknownLength)); err != nil {
				return errors.Wrap(err, "bpc: unknown prefix field")
			}
		}
	}
	r.Flush()

	flags := make([]uint32, destCount)

	for plane := planes - 1; plane > planeCount-planes; plane-- {
		localMask := uint32(1) << uint(plane)

		if plane != planes-1 {
			for i := 0; i < destCount; i++ {
				if flags[i]&activeFlag == 0 {
					continue
				}
				b, err := r.ReadBit()
				if err != nil {
					return errors.Wrap(err, "bpc: refinement bit")
				}
				if b == 1 {
					flags[i] |= localMask
				}
			}
		}

		kp := kInit << 3

		for i := 0; i < destCount; i++ {
			if flags[i]&activeFlag != 0 {
				continue
			}
			k := kp >> 3

			if k == 0 {
				b, err := r.ReadBit()
				if err != nil {
					return errors.Wrap(err, "bpc: degenerate bit")
				}
				if b == 0 {
					kp += 4
					if kp > 96 {
						kp = 96
					}
					continue
				}
				flags[i] |= activeFlag
				sign, err := r.ReadBit()
				if err != nil {
					return errors.Wrap(err, "bpc: sign bit")
				}
				if sign == 1 {
					flags[i] |= signFlag
				}
				flags[i] |= localMask
				// Redundant when k is 0, but the reference decoder
				// applies it unconditionally; kept exactly.
				kp -= 3
				if kp < 0 {
					kp = 0
				}
				continue
			}

			first, err := r.ReadBit()
			if err != nil {
				return errors.Wrap(err, "bpc: run flag")
			}
			if first == 0 {
				run := 1 << uint(k)
				for run > 0 && i < destCount {
					if flags[i]&activeFlag == 0 {
						run--
					}
					i++
				}
				i--
				kp += 5
				if kp > 96 {
					kp = 96
				}
				continue
			}

			sign, err := r.ReadBit()
			if err != nil {
				return errors.Wrap(err, "bpc: run sign bit")
			}
			tail, err := r.ReadBits(k)
			if err != nil {
				return errors.Wrap(err, "bpc: run length tail")
			}
			run := int(tail) + 1
			for run > 0 && i < destCount {
				if flags[i]&activeFlag == 0 {
					run--
				}
				i++
			}
			if run > 0 {
				continue
			}
			i--
			flags[i] |= activeFlag
			if sign == 1 {
				flags[i] |= signFlag
			}
			flags[i] |= localMask
			kp -= 6
			if kp < 0 {
				kp = 0
			}
		}

		r.Flush()
	}

	for i, f := range flags {
		mag := int32(f & magMask)
		if f&signFlag != 0 {
			dest[i] = -mag
		} else {
			dest[i] = mag
		}
	}
	return nil
}

// rlgrState holds the two adaptive run-length-Golomb-Rice parameters,
// scaled by 8, plus the pending zero-run carried between calls.
type rlgrState struct {
	run int
	k   int
	kp  int
	kr  int
	krp int
}

// runLength writes zeros for the pending run, advancing count, and
// updates kp: -6 (floor 0) for a partial run, +4 (cap 120) for a
// complete run (which also backs count off by one so the caller's own
// increment lands back on the correct next slot).
func runLength(s *rlgrState, dest []int32, count, destCount int, partial bool) int {
	if s.run > 0 {
		for {
			dest[count] = 0
			count++
			s.run--
			if count >= destCount || s.run <= 0 {
				break
			}
		}
	}
	if partial {
		s.kp -= 6
		if s.kp < 0 {
			s.kp = 0
		}
	} else {
		count--
		s.kp += 4
		if s.kp > 120 {
			s.kp = 120
		}
	}
	return count
}

// codeGR decodes one Golomb-Rice-coded raw value: a unary run of 1-bits
// terminated by a 0, then kr residual bits. The unary length nudges krp.
func codeGR(r *bitio.MSBReader, s *rlgrState) (int, error) {
	s.kr = s.krp >> 3
	p := 0
	var val int
	for {
		b, err := r.ReadBit()
		if err != nil {
			return 0, err
		}
		if b == 0 {
			if s.kr != 0 {
				tail, err := r.ReadBits(s.kr)
				if err != nil {
					return 0, err
				}
				val = (p << uint(s.kr)) + int(tail)
			} else {
				val = p
			}
			break
		}
		p++
	}

	if p == 0 {
		s.krp -= 2
		if s.krp < 0 {
			s.krp = 0
		}
	} else if p > 1 {
		s.krp += p
		if s.krp > 120 {
			s.krp = 120
		}
	}
	return val, nil
}

// DecodeRLGR decodes len(dest) signed coefficients with run-length +
// Golomb-Rice coding, per spec §4.5.
func DecodeRLGR(r *bitio.MSBReader, dest []int32, rangeHint int) error {
	s := &rlgrState{}
	if rangeHint > 1 {
		v := rangeHint + 1
		for v > 1 {
			v >>= 1
			s.kr++
		}
	} else {
		s.k = 1
		s.kr = 2
	}
	s.kp = s.k << 3
	s.krp = s.kr << 3

	destCount := len(dest)
	for count := 0; count < destCount; count++ {
		s.k = s.kp >> 3

		if s.k == 0 {
			rawVal, err := codeGR(r, s)
			if err != nil {
				return errors.Wrap(err, "rlgr: golomb-rice value")
			}
			val := (rawVal + 1) >> 1
			if val != 0 {
				s.kp -= 3
				if s.kp < 0 {
					s.kp = 0
				}
			} else {
				s.kp += 3
				if s.kp > 120 {
					s.kp = 120
				}
			}
			if rawVal&1 != 0 {
				val = -val
			}
			dest[count] = int32(val)
			continue
		}

		first, err := r.ReadBit()
		if err != nil {
			return errors.Wrap(err, "rlgr: run flag")
		}
		if first == 0 {
			s.run = 1 << uint(s.k)
			count = runLength(s, dest, count, destCount, false)
			continue
		}

		tail, err := r.ReadBits(s.k)
		if err != nil {
			return errors.Wrap(err, "rlgr: partial run")
		}
		s.run = int(tail)
		count = runLength(s, dest, count, destCount, true)

		sign, err := r.ReadBit()
		if err != nil {
			return errors.Wrap(err, "rlgr: sign bit")
		}
		val, err := codeGR(r, s)
		if err != nil {
			return errors.Wrap(err, "rlgr: residual magnitude")
		}
		if count < destCount {
			if sign == 1 {
				dest[count] = -int32(val + 1)
			} else {
				dest[count] = int32(val + 1)
			}
		}
	}
	return nil
}

// blcContexts is the fixed number of neighbor-context buckets the BLC
// predictor table is indexed by.
const blcContexts = 64

// blcState holds the per-context run/bit/kp registers and qzc predictor
// table shared across all 16 rows of one BLC-coded tile channel.
type blcState struct {
	run [blcContexts]int
	bit [blcContexts]int
	kp  [blcContexts]int
	qzc [blcContexts]int
}

func newBLCState() *blcState {
	s := &blcState{}
	for c := 0; c < blcContexts; c++ {
		t := 6
		for _, bit := range [6]int{1, 2, 4, 8, 0x10, 0x20} {
			if c&bit != 0 {
				t--
			}
		}
		s.qzc[c] = 7 * t / 6
		s.kp[c] = 16
	}
	return s
}

// adaptiveRLR decodes one context-coded bit: a pending zero-run is
// consumed first; otherwise a run-length-coded "zero or short-run" bit
// is read, with kp nudged by ±(k+4) (k==0 degenerates to ±4) and capped
// at 224.
func adaptiveRLR(r *bitio.MSBReader, c int, s *blcState) (int, error) {
	if s.run[c] > 0 {
		s.run[c]--
		if s.run[c] == 0 {
			return s.bit[c], nil
		}
		return 0, nil
	}

	kp := s.kp[c]
	k := kp >> 4

	if k != 0 {
		b, err := r.ReadBit()
		if err != nil {
			return 0, err
		}
		if b == 1 {
			bits, err := r.ReadBits(k)
			if err != nil {
				return 0, err
			}
			s.run[c] = int(bits)
			out := 0
			if bits != 0 {
				s.bit[c] = 1
				out = 0
			} else {
				out = 1
			}
			kp -= k + 4
			if kp < 0 {
				kp = 0
			}
			s.kp[c] = kp
			return out, nil
		}

		s.run[c] = (1 << uint(k)) - 1
		s.bit[c] = 0
		kp += k + 4
		if kp > 224 {
			kp = 224
		}
		s.kp[c] = kp
		return 0, nil
	}

	bit, err := r.ReadBit()
	if err != nil {
		return 0, err
	}
	if bit == 0 {
		kp += 4
		if kp > 224 {
			kp = 224
		}
	} else {
		kp -= 4
		if kp < 0 {
			kp = 0
		}
	}
	s.kp[c] = kp
	return bit, nil
}

// DecodeBLC decodes blockCount rows (at most 16: one tile's worth) of
// width samples each using the block-lossless 2-D predictive coder. Each
// row is independently either coded (context-predicted) or constant, per
// the 2-bit block-mode header.
func DecodeBLC(r *bitio.MSBReader, dest []int32, width, blockCount int) error {
	if blockCount > 16 {
		return errors.Wrap(errs.ErrInvalidHeader, "blc: block count exceeds 16")
	}
	if width <= 0 || blockCount <= 0 {
		return nil
	}

	blockMode, err := r.ReadBits(2)
	if err != nil {
		return errors.Wrap(err, "blc: block-mode header")
	}

	coded := make([]bool, 16)
	constVal := make([]int32, 16)

	switch blockMode {
	case 0:
		for i := range coded {
			coded[i] = true
		}
	case 1:
		blockMask, err := r.ReadBits(16)
		if err != nil {
			return errors.Wrap(err, "blc: coded-block mask")
		}
		blockValue, err := r.ReadBits(16)
		if err != nil {
			return errors.Wrap(err, "blc: const-value mask")
		}
		for i, bitmask := 15, uint32(1<<15); i >= 0; i, bitmask = i-1, bitmask>>1 {
			if blockMask&bitmask != 0 {
				coded[i] = true
			} else if blockValue&bitmask != 0 {
				constVal[i] = 1
			}
		}
	case 2:
		bit, err := r.ReadBit()
		if err != nil {
			return errors.Wrap(err, "blc: constant bit")
		}
		for i := range constVal {
			constVal[i] = int32(bit)
		}
	}

	s := newBLCState()
	pad := width + 6
	rows := [3][]int32{make([]int32, pad), make([]int32, pad), make([]int32, pad)}
	row0, row1, row2 := 0, 1, 2

	for block := 0; block < blockCount; block++ {
		out := dest[block*width : (block+1)*width]
		cur := rows[row0]

		if !coded[block] {
			for i := 0; i < width; i++ {
				out[i] = constVal[block]
				cur[3+i] = constVal[block]
			}
		} else {
			r0, r1, r2 := rows[row0], rows[row1], rows[row2]
			cr0, cr1 := 0, 0
			for i := 0; i < width; i++ {
				cr0 = int(r0[2+i]) + 2*(cr0&1)
				cr1 = 2 * (2*int(r1[i+4]) + (cr1 & 0xF))
				c := (cr0 + cr1 + 32*int(r2[i+4])) & (blcContexts - 1)

				pc := 1 - (s.qzc[c] >> 2)
				errBit, err := adaptiveRLR(r, c, s)
				if err != nil {
					return errors.Wrap(err, "blc: context bit")
				}
				x := pc ^ errBit
				cur[3+i] = int32(x)
				out[i] = int32(x)

				qzc := s.qzc[c] - 2*x + 1
				if qzc < 0 {
					qzc = 0
				}
				if qzc > 7 {
					qzc = 7
				}
				s.qzc[c] = qzc
			}
		}

		// Cascade: the row just written becomes the previous-row context
		// (row1), the old row1 becomes the "two rows back" context (row2),
		// and the oldest buffer is reused as the next row to write.
		row0, row1, row2 = row2, row0, row1
	}
	return nil
}

// Decode dispatches to the requested coder and returns the number of
// bytes the shared pool consumed.
func Decode(r *bitio.MSBReader, coder Coder, dest []int32, width, blockCount, kInit, planeCount, rangeHint int) (int, error) {
	start := r.BytesConsumed()
	var err error
	switch coder {
	case CoderBPC:
		err = DecodeBPC(r, dest, kInit, planeCount)
	case CoderRLGR:
		err = DecodeRLGR(r, dest, rangeHint)
	case CoderBLC:
		err = DecodeBLC(r, dest, width, blockCount)
	case CoderRaw:
		for i := range dest {
			v, rerr := r.ReadBits(32)
			if rerr != nil {
				err = rerr
				break
			}
			dest[i] = int32(v)
		}
	default:
		return 0, errors.Wrap(errs.ErrUnsupportedVariant, "entropy: unknown coder")
	}
	if err != nil {
		return 0, err
	}
	return r.BytesConsumed() - start, nil
}
