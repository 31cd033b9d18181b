// Package vectortile parses the quadkey-addressed vector feature tiles
// that carry roads, land polygons, water, rivers, points of interest,
// rail and power lines, and two unclassified line categories, each
// referencing a shared 16-bit-quantized vertex array.
package vectortile

import (
	"github.com/pkg/errors"

	"github.com/flightsimlib/terraincodec/internal/errs"
)

// Quad identifies a tile by its Bing-Maps-style quadkey coordinates.
type Quad struct {
	Level int
	TileX uint32
	TileY uint32
}

// ParseQuadKey decodes a quadkey string into (level, tileX, tileY). Each
// character selects one bit of tileX and/or tileY at the bit position
// corresponding to its distance from the end of the string: '0' sets
// neither, '1' sets tileX, '2' sets tileY, '3' sets both.
func ParseQuadKey(quadKey string) (Quad, error) {
	level := len(quadKey)
	var tileX, tileY uint32
	for i := level; i > 0; i-- {
		mask := uint32(1) << uint(i-1)
		switch quadKey[level-i] {
		case '0':
		case '1':
			tileX |= mask
		case '2':
			tileY |= mask
		case '3':
			tileX |= mask
			tileY |= mask
		default:
			return Quad{}, errors.Wrapf(errs.ErrInvalidHeader, "vectortile: invalid quadkey digit %q", quadKey[level-i])
		}
	}
	return Quad{Level: level, TileX: tileX, TileY: tileY}, nil
}
