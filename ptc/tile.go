package ptc

import (
	"encoding/binary"

	"github.com/pkg/errors"

	"github.com/flightsimlib/terraincodec/bitio"
	"github.com/flightsimlib/terraincodec/internal/errs"
	"github.com/flightsimlib/terraincodec/ptc/entropy"
)

// tileTable holds the per-tile compressed byte length and file offset,
// read once up front from the frame's tile-length index.
type tileTable struct {
	sizes   []int32
	offsets []int32
}

func readTileTable(data []byte, file FileHeader, frame FrameHeader) (tileTable, error) {
	offset := int(file.OffsetToFrame) + int(frame.OffsetToData) +
		4*int(file.NumFrames) + fileHeaderSize + frameHeaderSize

	c := &cursor{data: data}
	if err := c.seek(offset); err != nil {
		return tileTable{}, errors.Wrap(err, "ptc: tile length table offset")
	}

	t := tileTable{
		sizes:   make([]int32, frame.TileCount),
		offsets: make([]int32, frame.TileCount),
	}
	for i := range t.sizes {
		v, err := c.i32()
		if err != nil {
			return tileTable{}, errors.Wrap(err, "ptc: tile size entry")
		}
		t.sizes[i] = v
	}

	pos := int32(offset + 4*int(frame.TileCount))
	for i := range t.offsets {
		t.offsets[i] = pos
		pos += t.sizes[i]
	}
	return t, nil
}

func readTile(data []byte, table tileTable, tile int) ([]byte, error) {
	if tile < 0 || tile >= len(table.sizes) {
		return nil, errors.Wrap(errs.ErrInvalidHeader, "ptc: tile index out of range")
	}
	start := int(table.offsets[tile])
	end := start + int(table.sizes[tile])
	if start < 0 || end > len(data) {
		return nil, errors.Wrap(errs.ErrUnderrun, "ptc: tile data out of range")
	}
	return data[start:end], nil
}

// decodeTile decodes every chunk of one 16-row macroblock tile, scattering
// coefficients into the per-row channel buffers l0 (and l1, when present,
// for the mip-1 half-resolution path). width is the frame's total
// (chunk-padded) width; stride is the per-row element count across all
// channels (numChannels*width).
func decodeTile(tileData []byte, frame FrameHeader, width, numChannels int, l0, l1 [32][]int32, genMip1 bool) error {
	chunkWidth := int(frame.ChunkWidth)
	numChunks := (chunkWidth + width - 1) / chunkWidth
	vectorReorder := make([]int32, 16*chunkWidth)

	channelOffsets := make([]int, numChannels)

	for chunk := 0; chunk < numChunks; chunk++ {
		cw := chunkWidth
		if chunk == numChunks-1 {
			cw = width - chunk*chunkWidth
		}

		pos := 0
		for channel := 0; channel < numChannels; channel++ {
			info := getChannelInfo(frame, channel)

			var numCoefficients int
			var headerBytes int
			if info.IsOneBitAlpha {
				numCoefficients = (16 * cw) / 4
			} else if tileData[pos]&1 != 0 {
				numCoefficients = 4 * int(binary.LittleEndian.Uint16(tileData[pos:pos+2])&0xFFFE)
				pos += 2
				headerBytes = 2
			} else {
				numCoefficients = 4 * int(tileData[pos])
				pos++
				headerBytes = 1
			}

			qs := int(frame.QSColor)
			if info.IsAlpha {
				qs = int(frame.QSAlpha)
			}

			dest := make([]int32, 16*cw)
			var entropyBytes int

			if numCoefficients > 0 {
				coderStart := pos
				if channel != numChannels-1 {
					pos += 2
					headerBytes += 2
				}

				coderType := int(frame.Flags) & 3
				if info.IsAlpha {
					coderType = int(frame.Flags>>2) & 3
				}
				if info.IsOneBitAlpha {
					coderType = 2
				}

				var err error
				switch coderType {
				case 3:
					for i := 0; i < numCoefficients; i++ {
						dest[i] = int32(binary.LittleEndian.Uint32(tileData[pos+4*i:]))
					}
					entropyBytes = 4 * numCoefficients
				case 0:
					n := numCoefficients
					if n > cw {
						n = cw
					}
					entropyBytes, err = decodeChunk(tileData[pos:], entropy.CoderBPC, dest, cw, 1, 0)
					if err == nil && numCoefficients > cw {
						more, err2 := decodeChunk(tileData[pos+entropyBytes:], entropy.CoderBPC, dest[cw:], cw, 1, 0)
						entropyBytes += more
						err = err2
					}
				case 1:
					rng := 81920000 >> uint(24-frame.BitDepth)
					if qs != 0 {
						rng = rng/((qs>>3)+1) + 1
					}
					n := numCoefficients
					if n > cw {
						n = cw
					}
					entropyBytes, err = decodeChunk(tileData[pos:], entropy.CoderRLGR, dest, cw, 0, rng)
					if err == nil && numCoefficients > cw {
						rng2 := 6225920 >> uint(24-frame.BitDepth)
						if qs != 0 {
							rng2 = rng2/((qs>>3)+1) + 1
						}
						more, err2 := decodeChunk(tileData[pos+entropyBytes:], entropy.CoderRLGR, dest[cw:], numCoefficients-cw, 0, rng2)
						entropyBytes += more
						err = err2
					}
				case 2:
					entropyBytes, err = decodeChunk(tileData[pos:], entropy.CoderBLC, dest, cw, 16, 0)
				default:
					return errors.Wrap(errs.ErrUnsupportedVariant, "ptc: unknown entropy coder type")
				}
				if err != nil {
					return errors.Wrap(err, "ptc: chunk entropy decode")
				}
				pos = coderStart + headerBytes + entropyBytes
			}

			offset := channelOffsets[channel] + channel*width
			if info.IsOneBitAlpha {
				bit := (1 << uint(frame.BitCount-1)) - 1
				for i := 0; i < 16; i++ {
					for j := 0; j < cw; j++ {
						v := dest[i*cw+j]
						if frame.BitCount == 1 {
							l0[16+i][offset+j] = v
						} else if v != 0 {
							l0[16+i][offset+j] = int32(bit)
						} else {
							l0[16+i][offset+j] = int32(-1 - bit)
						}
					}
				}
			} else {
				dcCount := cw / 16
				if numCoefficients < dcCount {
					dcCount = numCoefficients
				}
				for j := 1; j < dcCount; j++ {
					dest[j] += dest[j-1]
				}
				if qs != 0 {
					if info.IsScaledQuantized {
						qs *= 2
					}
					for k := 0; k < numCoefficients; k++ {
						dest[k] *= int32(qs)
					}
				}
				for k := numCoefficients; k < len(dest); k++ {
					dest[k] = 0
				}

				reorder(dest, vectorReorder, cw, true)

				for i := 0; i < 16; i++ {
					copy(l0[16+i][offset:offset+cw], vectorReorder[i*chunkWidth:i*chunkWidth+cw])
				}
			}
			channelOffsets[channel] += cw
		}
	}

	if genMip1 {
		stride := numChannels * width
		for i := 0; i < 16; i++ {
			copy(l1[16+i][:stride], l0[16+i][:stride])
		}
	}
	return nil
}

// decodeChunk dispatches one entropy-coded coefficient field and returns
// the number of compressed bytes it consumed.
func decodeChunk(buf []byte, coder entropy.Coder, dest []int32, width, blockCount, rangeHint int) (int, error) {
	r := bitio.NewMSBReader(buf)
	return entropy.Decode(r, coder, dest, width, blockCount, 1, 0, rangeHint)
}
