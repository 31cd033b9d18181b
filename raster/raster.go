// Package raster dispatches a compressed BGL raster block to the codec
// (or codec chain) its compression type names: Delta, BitPack, LZ1, LZ2,
// one of the four chained Delta/BitPack-over-LZ forms, or PTC. Dxt1/3/5
// and the Max sentinel are recognized but have no decoder.
package raster

import (
	"encoding/binary"

	"github.com/pkg/errors"

	"github.com/flightsimlib/terraincodec/bitpack"
	"github.com/flightsimlib/terraincodec/delta"
	"github.com/flightsimlib/terraincodec/internal/errs"
	"github.com/flightsimlib/terraincodec/lz"
	"github.com/flightsimlib/terraincodec/ptc"
	"github.com/flightsimlib/terraincodec/ptc/colorspace"
)

// CompressionType is a raster block's compression-type byte, in the order
// the original BGL decompressor's dispatch switch handles them.
type CompressionType int

const (
	CompressionNone CompressionType = iota
	CompressionDelta
	CompressionBitPack
	CompressionLZ1
	CompressionLZ2
	CompressionDeltaLZ1
	CompressionDeltaLZ2
	CompressionBitPackLZ1
	CompressionBitPackLZ2
	CompressionPTC
	CompressionDxt1
	CompressionDxt3
	CompressionDxt5
	CompressionSolidBlock
	CompressionMax
)

func (t CompressionType) String() string {
	switch t {
	case CompressionNone:
		return "none"
	case CompressionDelta:
		return "delta"
	case CompressionBitPack:
		return "bitpack"
	case CompressionLZ1:
		return "lz1"
	case CompressionLZ2:
		return "lz2"
	case CompressionDeltaLZ1:
		return "delta+lz1"
	case CompressionDeltaLZ2:
		return "delta+lz2"
	case CompressionBitPackLZ1:
		return "bitpack+lz1"
	case CompressionBitPackLZ2:
		return "bitpack+lz2"
	case CompressionPTC:
		return "ptc"
	case CompressionDxt1:
		return "dxt1"
	case CompressionDxt3:
		return "dxt3"
	case CompressionDxt5:
		return "dxt5"
	case CompressionSolidBlock:
		return "solid-block"
	default:
		return "max"
	}
}

// Params carries every dimension a decoder in the chain might need. Not
// every field applies to every compression type: BitPack and the chained
// BitPack forms need Rows/Cols; PTC additionally consults Channels, Bpp,
// and Row/GenerateMip1.
type Params struct {
	Rows, Cols, Channels, Bpp int
	UncompressedSize          int

	// Row and GenerateMip1 configure the PTC orchestrator when
	// CompressionType is CompressionPTC; ignored otherwise.
	Row          colorspace.RowParams
	GenerateMip1 bool
}

// simpleDecoder decodes one non-chained compression type.
type simpleDecoder func(compressed []byte, p Params) ([]byte, error)

var registry = map[CompressionType]simpleDecoder{
	CompressionDelta:   decodeDelta,
	CompressionBitPack: decodeBitPack,
	CompressionLZ1:     decodeLZ1,
	CompressionLZ2:     decodeLZ2,
	CompressionPTC:     decodePTC,
}

func decodeDelta(compressed []byte, p Params) ([]byte, error) {
	return delta.Decode(compressed, p.UncompressedSize)
}

func decodeBitPack(compressed []byte, p Params) ([]byte, error) {
	return bitpack.Decode(compressed, p.UncompressedSize, p.Rows, p.Cols)
}

func decodeLZ1(compressed []byte, p Params) ([]byte, error) {
	return lz.DecodeLZ1(compressed, p.UncompressedSize)
}

func decodeLZ2(compressed []byte, p Params) ([]byte, error) {
	return lz.DecodeLZ2(compressed, p.UncompressedSize)
}

// DecodePTC runs the PTC orchestrator directly and returns its full
// result, including the optional mip-1 buffer (Params.GenerateMip1) that
// the uniform Decode dispatch below discards in favor of a plain byte
// slice shared with every other compression type.
func DecodePTC(compressed []byte, p Params) (*ptc.Result, error) {
	return ptc.Decode(compressed, ptc.Options{GenerateMip1: p.GenerateMip1, Row: p.Row})
}

func decodePTC(compressed []byte, p Params) ([]byte, error) {
	result, err := DecodePTC(compressed, p)
	if err != nil {
		return nil, err
	}
	return result.Pixels, nil
}

// Decode runs the codec chain compressionType names against compressed,
// returning exactly p.UncompressedSize bytes (for chained forms, that is
// the size of the final stage's output; the LZ stage underneath targets
// the intermediate size read from the first 4 bytes of compressed).
func Decode(compressionType CompressionType, compressed []byte, p Params) ([]byte, error) {
	switch compressionType {
	case CompressionDeltaLZ1, CompressionDeltaLZ2, CompressionBitPackLZ1, CompressionBitPackLZ2:
		return decodeChained(compressionType, compressed, p)
	case CompressionDxt1, CompressionDxt3, CompressionDxt5, CompressionSolidBlock, CompressionNone, CompressionMax:
		return nil, errors.Wrapf(errs.ErrUnsupportedVariant, "raster: %s has no decoder", compressionType)
	}

	dec, ok := registry[compressionType]
	if !ok {
		return nil, errors.Wrapf(errs.ErrUnsupportedVariant, "raster: unknown compression type %d", int(compressionType))
	}
	out, err := dec(compressed, p)
	if err != nil {
		return nil, errors.Wrapf(err, "raster: %s", compressionType)
	}
	return out, nil
}

// decodeChained handles the four Delta/BitPack-over-LZ forms: a 4-byte
// little-endian intermediate size precedes the LZ payload. The dispatcher
// allocates the intermediate buffer, runs the LZ stage into it, then runs
// the final stage from the intermediate into the caller's output size. A
// size mismatch at either stage fails the request with a nil result.
func decodeChained(compressionType CompressionType, compressed []byte, p Params) ([]byte, error) {
	if len(compressed) < 4 {
		return nil, errors.Wrap(errs.ErrUnderrun, "raster: missing intermediate size prefix")
	}
	intermediateSize := int(binary.LittleEndian.Uint32(compressed[:4]))
	lzPayload := compressed[4:]

	var lzDecode simpleDecoder
	switch compressionType {
	case CompressionDeltaLZ1, CompressionBitPackLZ1:
		lzDecode = decodeLZ1
	default:
		lzDecode = decodeLZ2
	}

	intermediate, err := lzDecode(lzPayload, Params{UncompressedSize: intermediateSize})
	if err != nil {
		return nil, errors.Wrapf(err, "raster: %s intermediate stage", compressionType)
	}
	if len(intermediate) != intermediateSize {
		return nil, errors.Wrapf(errs.ErrSizeMismatch, "raster: %s intermediate size", compressionType)
	}

	finalParams := Params{Rows: p.Rows, Cols: p.Cols, UncompressedSize: p.UncompressedSize}
	var out []byte
	switch compressionType {
	case CompressionDeltaLZ1, CompressionDeltaLZ2:
		out, err = decodeDelta(intermediate, finalParams)
	default:
		out, err = decodeBitPack(intermediate, finalParams)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "raster: %s final stage", compressionType)
	}
	if len(out) != p.UncompressedSize {
		return nil, errors.Wrapf(errs.ErrSizeMismatch, "raster: %s final size", compressionType)
	}
	return out, nil
}
