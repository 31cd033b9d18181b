// Package codec provides a name/UID-addressable facade over the
// module's byte-stream decoders, for callers that look a decoder up
// by its wire identifier rather than holding a raster.CompressionType
// in hand.
package codec

// Codec is the common interface every registered decoder presents.
type Codec interface {
	// Decode decodes a compressed block into its pixel payload.
	Decode(data []byte, params DecodeParams) (*DecodeResult, error)

	// UID returns a stable identifier for this codec (the raster
	// CompressionType name, or "ptc").
	UID() string

	// Name returns a human-readable name.
	Name() string
}

// DecodeParams carries the dimension parameters a codec's Decode may
// need; not every field applies to every codec.
type DecodeParams struct {
	Rows, Cols, Channels, Bpp int
	UncompressedSize          int
}

// DecodeResult is a decoded pixel buffer plus the dimensions it was
// decoded against, when the codec produces them (PTC reports its own;
// single-stage codecs like Delta/BitPack leave them zero since the
// caller already knows its raster's Rows/Cols).
type DecodeResult struct {
	Pixels                     []byte
	Width, Height, Components int
}
