package vectortile

import "math"

// vertexUnit converts a 16-bit quantized vertex coordinate into the
// [0,1] fraction of a tile's delta-lat/delta-lon span it represents.
// Equivalent to 65536/65535/2^16, i.e. 1/65535.
const vertexUnit = 1.0 / 65535.0

// Bounds holds the Mercator-projected geodetic rectangle a tile's
// vertex coordinates resolve against, plus the overlap-padded pixel
// footprint used by callers that need to know the tile's pixel size.
type Bounds struct {
	TopLeftLat   float64
	TopLeftLon   float64
	DeltaLat     float64
	DeltaLon     float64
	TileWidth    float32
	TileHeight   float32
	OverlapFactor float32
}

func normalizedToLat(norm float64) float64 {
	return 90.0 - math.Atan(math.Exp(norm*2*math.Pi-math.Pi))*(360.0/math.Pi)
}

func normalizedToLon(norm float64) float64 {
	return (norm - 0.5) * 360.0
}

// CalcBounds reproduces the original decoder's tile-bounds computation:
// a small overlap margin (in degrees) is added around the tile's exact
// Mercator cell so that features straddling a tile boundary still place
// correctly near the edge.
func CalcBounds(quad Quad) Bounds {
	overlapFactor := float32(10.0)
	if quad.Level > 14 {
		overlapFactor = 80.0
	}

	levelCells := math.Ldexp(1, quad.Level)
	normLon := (float64(quad.TileX) + 0.5) / levelCells
	normLat := (float64(quad.TileY) + 0.5) / levelCells

	pixelRatio := 1.442700600680826e10 / float64(uint64(256)<<uint(quad.Level))

	overlapY := float64(overlapFactor)*0.000008983152841195214 +
		pixelRatio*0.00000002495320233665337 +
		0.001122894105149402
	overlapX := 0.00000002495320233665337 / math.Cos(normalizedToLat(normLat)*math.Pi/180.0) *
		(float64(overlapFactor)*360.0 + pixelRatio + 45000.0)

	topLeftLat := normalizedToLat(normLat+0.5/levelCells) - overlapY
	topLeftLon := normalizedToLon(normLon-0.5/levelCells) - overlapX
	deltaLat := normalizedToLat(normLat-0.5/levelCells) + overlapY - topLeftLat
	deltaLon := normalizedToLon(normLon+0.5/levelCells) + overlapX - topLeftLon

	tileWidth := float32((2*overlapX)/(deltaLon-2*overlapX) + 1.0)
	tileHeight := float32((2*overlapY)/(deltaLat-2*overlapY) + 1.0)

	return Bounds{
		TopLeftLat:    topLeftLat,
		TopLeftLon:    topLeftLon,
		DeltaLat:      deltaLat,
		DeltaLon:      deltaLon,
		TileWidth:     tileWidth,
		TileHeight:    tileHeight,
		OverlapFactor: overlapFactor,
	}
}

// VertexToLatLon resolves a quantized vertex into a geodetic coordinate
// within b. Start maps to longitude, End maps to latitude.
func (b Bounds) VertexToLatLon(v Vertex) (lat, lon float64) {
	lon = b.TopLeftLon + b.DeltaLon*float64(v.Start)*vertexUnit
	lat = b.TopLeftLat + b.DeltaLat*float64(v.End)*vertexUnit
	return lat, lon
}

// BoundingBox is an axis-aligned rectangle in pixel-fraction units,
// computed from a span of vertices rather than geodetic coordinates.
type BoundingBox struct {
	TopLeftX, TopLeftY         float32
	BottomRightX, BottomRightY float32
}

// verticesToBoundingBox computes the pixel-space bounding box spanned by
// vertices, given the tile's pixel width and height.
func verticesToBoundingBox(vertices []Vertex, tileWidth, tileHeight float32) BoundingBox {
	if len(vertices) == 0 {
		return BoundingBox{}
	}
	minStart, maxStart := vertices[0].Start, vertices[0].Start
	minEnd, maxEnd := vertices[0].End, vertices[0].End
	for _, v := range vertices[1:] {
		if v.Start < minStart {
			minStart = v.Start
		}
		if v.Start > maxStart {
			maxStart = v.Start
		}
		if v.End < minEnd {
			minEnd = v.End
		}
		if v.End > maxEnd {
			maxEnd = v.End
		}
	}
	const q16ToFloat = 0.000030518044
	return BoundingBox{
		TopLeftX:     float32(minStart) * tileWidth * q16ToFloat,
		TopLeftY:     float32(minEnd) * tileHeight * q16ToFloat,
		BottomRightX: float32(maxStart) * tileWidth * q16ToFloat,
		BottomRightY: float32(maxEnd) * tileHeight * q16ToFloat,
	}
}

// CalcWaterBoundingBox computes the pixel-space bounding box of one water
// polygon's vertex span.
func (t *Tile) CalcWaterBoundingBox(polygonIndex int) BoundingBox {
	poly := t.WaterPolygons[polygonIndex]
	return verticesToBoundingBox(t.WaterVertices[poly.Start:poly.End], t.bounds.TileWidth, t.bounds.TileHeight)
}
