// Package errs holds the sentinel error vocabulary shared by every codec
// in terraincodec. Callers should match with errors.Is; decode functions
// wrap these with github.com/pkg/errors to attach call-site context.
package errs

import "errors"

var (
	// ErrInvalidSignature means the magic bytes at the start of a stream
	// did not match the codec's expected signature.
	ErrInvalidSignature = errors.New("terraincodec: invalid signature")

	// ErrInvalidHeader means a header field was out of range: version,
	// frame count, channel count, or a subregion bound.
	ErrInvalidHeader = errors.New("terraincodec: invalid header")

	// ErrSizeMismatch means a decode stage produced a different byte
	// count than the next stage or the caller expected.
	ErrSizeMismatch = errors.New("terraincodec: size mismatch")

	// ErrUnderrun means a bit or byte pool was exhausted before a
	// required read completed.
	ErrUnderrun = errors.New("terraincodec: underrun")

	// ErrUnsupportedVariant means the request named a compression type
	// or parameterization with no decoder (Dxt1/3/5, the Max marker, or
	// a BitPack size that does not divide rows*cols).
	ErrUnsupportedVariant = errors.New("terraincodec: unsupported variant")

	// ErrAllocation means a header-derived allocation could not be made.
	ErrAllocation = errors.New("terraincodec: allocation failure")
)
