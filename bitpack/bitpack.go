// Package bitpack implements the recursive quadtree bit-plane raster
// decoder shared by the 8-bit and 16-bit BitPack variants: a 4x4 quadtree
// of sub-rectangles, each carrying its own accumulated add-value and
// bit-width, terminating either in a uniform fill or a flat per-sample
// bit-field read.
package bitpack

import (
	"github.com/pkg/errors"

	"github.com/flightsimlib/terraincodec/bitio"
	"github.com/flightsimlib/terraincodec/internal/errs"
)

// Decode dispatches to the 8-bit or 16-bit variant by dividing the
// caller-declared expected size by rows*cols, per the external interface
// contract (spec §6): a quotient of 1 selects 8-bit samples, 2 selects
// 16-bit samples.
func Decode(compressed []byte, expectedSize, rows, cols int) ([]byte, error) {
	if rows <= 0 || cols <= 0 {
		return nil, errors.Wrap(errs.ErrInvalidHeader, "bitpack: non-positive raster dimensions")
	}
	total := rows * cols
	if total == 0 || expectedSize%total != 0 {
		return nil, errors.Wrap(errs.ErrUnsupportedVariant, "bitpack: expected size does not divide rows*cols")
	}
	switch expectedSize / total {
	case 1:
		return decode8(compressed, rows, cols)
	case 2:
		return decode16(compressed, rows, cols)
	default:
		return nil, errors.Wrap(errs.ErrUnsupportedVariant, "bitpack: unsupported sample width")
	}
}

type header struct {
	shift       int
	addValue    int
	numBits     int
	maxBitsRead int
}

func readHeader(r *bitio.MSBReader) (header, error) {
	numBitsAddValue, err := r.ReadBits(8)
	if err != nil {
		return header{}, err
	}
	shift, err := r.ReadBits(8)
	if err != nil {
		return header{}, err
	}
	initialAddValue, err := r.ReadBits(int(numBitsAddValue))
	if err != nil {
		return header{}, err
	}
	numBits, err := r.ReadBits(4)
	if err != nil {
		return header{}, err
	}
	maxBitsRead, err := r.ReadBits(4)
	if err != nil {
		return header{}, err
	}
	if maxBitsRead == 0 {
		maxBitsRead = 16
	}
	return header{
		shift:       int(shift),
		addValue:    int(initialAddValue),
		numBits:     int(numBits),
		maxBitsRead: int(maxBitsRead),
	}, nil
}

func decodeCore(compressed []byte, rows, cols int) ([]uint32, error) {
	r := bitio.NewMSBReader(compressed)
	h, err := readHeader(r)
	if err != nil {
		return nil, errors.Wrap(err, "bitpack: header")
	}
	samples := make([]uint32, rows*cols)
	rect := rectangle{rowStart: 0, colStart: 0, rows: rows, cols: cols}
	if err := decodeRect(r, samples, cols, rect, h.addValue, h.shift, h.numBits, h.maxBitsRead); err != nil {
		return nil, errors.Wrap(err, "bitpack: body")
	}
	return samples, nil
}

func decode8(compressed []byte, rows, cols int) ([]byte, error) {
	samples, err := decodeCore(compressed, rows, cols)
	if err != nil {
		return nil, err
	}
	out := make([]byte, len(samples))
	for i, s := range samples {
		out[i] = byte(s)
	}
	return out, nil
}

func decode16(compressed []byte, rows, cols int) ([]byte, error) {
	samples, err := decodeCore(compressed, rows, cols)
	if err != nil {
		return nil, err
	}
	out := make([]byte, len(samples)*2)
	for i, s := range samples {
		out[2*i] = byte(s)
		out[2*i+1] = byte(s >> 8)
	}
	return out, nil
}

type rectangle struct {
	rowStart, colStart int
	rows, cols         int
}

// decodeRect decodes one sub-rectangle already carrying its own
// addValue/numBits (either the root header's values or values derived
// from the parent's per-child increment read).
func decodeRect(r *bitio.MSBReader, samples []uint32, rasterCols int, rect rectangle, addValue, shift, numBits, maxBitsRead int) error {
	if numBits == 0 {
		fill(samples, rasterCols, rect, uint32(addValue))
		return nil
	}

	if rect.rows < 8 || rect.cols < 8 {
		nb := numBits
		if nb > maxBitsRead {
			nb = maxBitsRead
		}
		for dr := 0; dr < rect.rows; dr++ {
			for dc := 0; dc < rect.cols; dc++ {
				sample, err := r.ReadBits(nb)
				if err != nil {
					return err
				}
				idx := (rect.rowStart+dr)*rasterCols + (rect.colStart + dc)
				samples[idx] = uint32(addValue) + (sample << uint(shift))
			}
		}
		return nil
	}

	readWidth := numBits
	if readWidth > 8 {
		readWidth = 8
	}
	extraShift := 0
	if numBits > 8 {
		extraShift = numBits - 8
	}

	rowSizes := quadSizes(rect.rows)
	colSizes := quadSizes(rect.cols)

	rowOffset := 0
	for gr := 0; gr < 4; gr++ {
		colOffset := 0
		for gc := 0; gc < 4; gc++ {
			increment, err := r.ReadBits(readWidth)
			if err != nil {
				return err
			}
			childAdd := addValue + int(increment<<uint(extraShift+shift))

			childNumBits, err := r.ReadBits(4)
			if err != nil {
				return err
			}

			child := rectangle{
				rowStart: rect.rowStart + rowOffset,
				colStart: rect.colStart + colOffset,
				rows:     rowSizes[gr],
				cols:     colSizes[gc],
			}
			if err := decodeRect(r, samples, rasterCols, child, childAdd, shift, int(childNumBits), maxBitsRead); err != nil {
				return err
			}
			colOffset += colSizes[gc]
		}
		rowOffset += rowSizes[gr]
	}
	return nil
}

// quadSizes splits dim into 4 parts, the first three equal and the last
// absorbing the remainder.
func quadSizes(dim int) [4]int {
	base := dim / 4
	var sizes [4]int
	sizes[0], sizes[1], sizes[2] = base, base, base
	sizes[3] = dim - 3*base
	return sizes
}

func fill(samples []uint32, rasterCols int, rect rectangle, value uint32) {
	for dr := 0; dr < rect.rows; dr++ {
		row := (rect.rowStart + dr) * rasterCols
		for dc := 0; dc < rect.cols; dc++ {
			samples[row+rect.colStart+dc] = value
		}
	}
}
