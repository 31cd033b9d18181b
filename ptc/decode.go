// Package ptc implements the PTC tile-based image codec: adaptive
// entropy decoding (package entropy), an inverse lapped-biorthogonal
// transform cascade (package transform), and colorspace reconstruction
// plus pixel-format row packing (package colorspace).
//
// Subregion cropping and mip levels 2-4 are not implemented: they are
// DecodeParams-level features of the reference decoder that spec.md
// never names as a module or operation, so they are treated as scope
// the distillation intentionally left out rather than a dropped
// requirement. The Bayer-pattern half-resolution frame mode
// (Flags&0xF0==64) is dropped for the same reason.
package ptc

import (
	"github.com/pkg/errors"

	"github.com/flightsimlib/terraincodec/internal/errs"
	"github.com/flightsimlib/terraincodec/ptc/colorspace"
	"github.com/flightsimlib/terraincodec/ptc/transform"
)

// Options configures one Decode call.
type Options struct {
	// GenerateMip1 additionally produces a half-resolution coefficient
	// plane (L1) alongside the full-resolution L0 output.
	GenerateMip1 bool
	// Row describes the destination pixel layout for PackRow.
	Row colorspace.RowParams
}

// Result is one decoded frame: its header metadata and the packed pixel
// buffer (stride-aligned per Options.Row).
type Result struct {
	File   FileHeader
	Frame  FrameHeader
	Pixels []byte
	Width  int
	Height int

	// MipPixels holds the half-resolution (mip-1) plane, packed with the
	// same Options.Row layout as Pixels, when Options.GenerateMip1 is
	// set; nil otherwise.
	MipPixels []byte
}

// Decode parses a complete PTC container and decodes its single frame.
func Decode(data []byte, opts Options) (*Result, error) {
	c := &cursor{data: data}
	fileHdr, err := parseFileHeader(c)
	if err != nil {
		return nil, errors.Wrap(err, "ptc: file header")
	}

	if err := c.seek(int(fileHdr.OffsetToFrame) + fileHeaderSize); err != nil {
		return nil, errors.Wrap(err, "ptc: frame length offset")
	}
	frameLen, err := c.i32()
	if err != nil {
		return nil, errors.Wrap(err, "ptc: frame length")
	}

	if err := c.seek(int(fileHdr.OffsetToFrame) + fileHeaderSize + 4*int(fileHdr.NumFrames)); err != nil {
		return nil, errors.Wrap(err, "ptc: frame header offset")
	}
	frameHdr, err := parseFrameHeader(c)
	if err != nil {
		return nil, errors.Wrap(err, "ptc: frame header")
	}
	if frameLen != frameHdr.CompressedLength {
		return nil, errors.Wrap(errs.ErrInvalidHeader, "ptc: frame length mismatch")
	}

	totalWidth := 32 * ((int(frameHdr.Width) + 31) >> 5)
	totalHeight := 32 * ((int(frameHdr.Height) + 31) >> 5)
	numChannels := int(frameHdr.NumChannels)
	useOverlap := frameHdr.Flags&0x800 == 0
	chunkWidth := int(frameHdr.ChunkWidth)
	chunksPerRow := (totalWidth + chunkWidth - 1) / chunkWidth

	table, err := readTileTable(data, fileHdr, frameHdr)
	if err != nil {
		return nil, err
	}

	stride := totalWidth * numChannels
	var l0phys, l1phys [32][]int32
	for i := range l0phys {
		l0phys[i] = make([]int32, stride)
		if opts.GenerateMip1 {
			l1phys[i] = make([]int32, stride)
		}
	}

	rowWindow := func(phys *[32][]int32, blockRow, channel int) *transform.Plane {
		p := &transform.Plane{}
		for i := 0; i < 32; i++ {
			p.Rows[i] = phys[(blockRow+i)%32][channel*totalWidth : channel*totalWidth+totalWidth]
		}
		return p
	}

	decodeOneTile := func(tile, blockRow int) error {
		tileData, err := readTile(data, table, tile)
		if err != nil {
			return err
		}
		var l0window, l1window [32][]int32
		for i := 0; i < 32; i++ {
			l0window[i] = l0phys[(blockRow+i)%32]
			if opts.GenerateMip1 {
				l1window[i] = l1phys[(blockRow+i)%32]
			}
		}
		// chunksPerRow/leftChunk/topChunk would locate this tile within
		// a subregion; full-frame decode always reads tiles in order.
		_ = chunksPerRow
		return decodeTile(tileData, frameHdr, totalWidth, numChannels, l0window, l1window, opts.GenerateMip1)
	}

	runTransform := func(blockRow int, kind int, bLast bool, rowInMacroblock int) {
		for channel := 0; channel < numChannels; channel++ {
			info := getChannelInfo(frameHdr, channel)
			if info.IsOneBitAlpha {
				continue
			}
			p := rowWindow(&l0phys, blockRow, channel)
			switch kind {
			case 0:
				transform.InvTransformInitial(p, totalWidth, useOverlap, false)
			case 1:
				transform.InvTransformMacroblock(p, totalWidth, useOverlap, bLast)
			case 2:
				transform.InvTransformBlock(p, totalWidth, useOverlap, false, bLast, rowInMacroblock)
			}
			if opts.GenerateMip1 {
				p1 := rowWindow(&l1phys, blockRow, channel)
				switch kind {
				case 0:
					transform.InvTransformInitial(p1, totalWidth, useOverlap, true)
				case 1:
					transform.InvTransformMacroblock(p1, totalWidth, useOverlap, bLast)
				case 2:
					transform.InvTransformBlock(p1, totalWidth, useOverlap, true, bLast, rowInMacroblock)
				}
			}
		}
	}

	height := totalHeight
	tile := 0
	blockRow := 0
	rowInMacroblock := 16
	rowInBlock := 2

	outWidth := int(frameHdr.Width)
	outHeight := int(frameHdr.Height)
	pixels := make([]byte, opts.Row.StrideBytes*outHeight)
	var mipPixels []byte
	if opts.GenerateMip1 {
		mipPixels = make([]byte, opts.Row.StrideBytes*outHeight)
	}

	colorSpace := colorspace.Colorspace(frameHdr.colorspace())
	lossless := frameHdr.QSColor == 0
	alphaLossless := frameHdr.QSAlpha == 0
	if frameHdr.Flags&0x1000 != 0 && frameHdr.OneBitAlpha&(1<<uint(numChannels-1)) != 0 {
		alphaLossless = true
	}
	hasAlpha := frameHdr.Flags&0x1000 != 0
	bayer := (frameHdr.Flags>>8)&0x7 != 0

	// packRow recolors one decoded coefficient row (src, either the L0
	// full-resolution plane or the L1 mip-1 plane) and packs it into
	// destPixels at row, sharing the colorspace dispatch between both
	// resolutions.
	packRow := func(src []int32, destPixels []byte, row int) error {
		dest := make([][]int32, numChannels)
		for i := range dest {
			width := outWidth
			if colorSpace == colorspace.ColorspaceYCrCxDc {
				// RecolorYCrCxDc packs c/m into the first half of
				// dest[0] and y/k into the second, doubling its span.
				width = 2 * outWidth
			}
			dest[i] = make([]int32, width)
		}

		switch colorSpace {
		case colorspace.ColorspaceY:
			colorspace.RecolorY(src, totalWidth, 0, outWidth, numChannels, func(ch int) bool {
				ci := getChannelInfo(frameHdr, ch)
				l := lossless
				if ci.IsAlpha {
					l = alphaLossless
				}
				if ci.IsOneBitAlpha {
					l = true
				}
				return l
			}, int(frameHdr.BitDepth), false, dest)
		case colorspace.ColorspaceYCoCg1, colorspace.ColorspaceYCoCg2, colorspace.ColorspaceYCoCgK:
			colorspace.RecolorYCoCg(src, totalWidth, 0, outWidth, numChannels, lossless, alphaLossless, colorSpace, hasAlpha, int(frameHdr.BitDepth), false, dest)
		case colorspace.ColorspaceYCrCxDc:
			colorspace.RecolorYCrCxDc(src, totalWidth, outWidth, 0, bayer, lossless, int(frameHdr.BitDepth), dest[0])
		}

		return colorspace.PackRow(opts.Row, dest, destPixels, row)
	}

	for row := 0; row < height; row++ {
		if row == 0 {
			blockRow = 0
			if err := decodeOneTile(tile, blockRow); err != nil {
				return nil, errors.Wrap(err, "ptc: initial tile")
			}
			tile++
			runTransform(blockRow, 0, false, rowInMacroblock)
		}

		if rowInMacroblock == 16 {
			rowInMacroblock = 0
			if tile%2 == 1 {
				blockRow = 16
			} else {
				blockRow = 0
			}
			if row != height-16 {
				if err := decodeOneTile(tile, blockRow); err != nil {
					return nil, errors.Wrap(err, "ptc: macroblock tile")
				}
				tile++
				runTransform(blockRow, 1, row == height-32, rowInMacroblock)
			}
		}

		if rowInBlock == 4 && row != height-2 {
			rowInBlock = 0
			runTransform(blockRow, 2, row == height-6, rowInMacroblock)
		}

		if row < outHeight {
			logicalRow := (blockRow + rowInMacroblock) % 32

			if err := packRow(l0phys[logicalRow], pixels, row); err != nil {
				return nil, errors.Wrap(err, "ptc: pack row")
			}
			if opts.GenerateMip1 {
				if err := packRow(l1phys[logicalRow], mipPixels, row); err != nil {
					return nil, errors.Wrap(err, "ptc: pack mip-1 row")
				}
			}
		}

		rowInBlock++
		rowInMacroblock++
	}

	return &Result{
		File:      fileHdr,
		Frame:     frameHdr,
		Pixels:    pixels,
		Width:     outWidth,
		Height:    outHeight,
		MipPixels: mipPixels,
	}, nil
}
