package vectortile

import "github.com/pkg/errors"

// Number of distinct feature types in each category. Parse sizes each
// category's type-index table at one more slot than this, so that
// types[type+1]-types[type] is defined for every type.
const (
	RoadTypeCount      = 31
	LandTypeCount      = 28
	PointTypeCount     = 20
	RailTypeCount      = 9
	PowerTypeCount     = 2
	Unknown1TypeCount  = 10
	Unknown2TypeCount  = 5
)

// Tile is a parsed vector feature tile bound to one quadkey. Every
// category's features reference ranges into that category's own flat
// vertex array via Vertex.Start/Vertex.End (except roads, water
// polygons, rivers, rails, and power lines, which carry a Start/End pair
// directly on the feature).
type Tile struct {
	Quad    Quad
	bounds  Bounds
	version int

	RoadFeatures []RoadFeature
	RoadVertices []Vertex
	roadTypes    []uint16

	LandRanges   []Vertex
	LandVertices []Vertex
	landTypes    []uint16

	WaterPolygons []WaterPolygon
	WaterVertices []Vertex
	WaterFeatures []WaterFeature

	RiverFeatures []RiverFeature
	RiverVertices []Vertex

	PointVertices []Vertex
	pointTypes    []uint16

	RailFeatures []RailFeature
	RailVertices []Vertex
	railTypes    []uint16

	PowerFeatures []PowerFeature
	PowerVertices []Vertex
	powerTypes    []uint16

	Unknown1Ranges   []Vertex
	Unknown1Vertices []Vertex
	unknown1Types    []uint16

	Unknown2Ranges   []Vertex
	Unknown2Vertices []Vertex
	unknown2Types    []uint16
}

// Bounds returns the tile's computed geodetic rectangle.
func (t *Tile) Bounds() Bounds { return t.bounds }

// ParseOptions configures a Parse call. Elevations supplies external
// per-polygon water heights for tiles at version 20 or later; leave it
// nil to always fall back to the -750 sentinel height.
type ParseOptions struct {
	Elevations []float32
}

// FromBinary parses a raw vector-tile buffer addressed by quadKey. Two
// wire shapes are empty-tile sentinels and parse to a zero-value tile
// with no features: a 5-byte buffer at version 19, or any 1-byte buffer.
func FromBinary(data []byte, quadKey string, version int, opts ParseOptions) (*Tile, error) {
	if (version == 19 && len(data) == 5) || len(data) == 1 {
		return &Tile{version: version}, nil
	}
	quad, err := ParseQuadKey(quadKey)
	if err != nil {
		return nil, errors.Wrap(err, "vectortile: quadkey")
	}
	return Parse(data, quad, version, opts)
}

// Parse decodes data into a Tile already bound to quad, in the fixed
// category order roads, land, water, rivers, points, rails, power,
// unknown1, unknown2.
func Parse(data []byte, quad Quad, version int, opts ParseOptions) (*Tile, error) {
	t := &Tile{Quad: quad, version: version, bounds: CalcBounds(quad)}
	c := &cursor{data: data}

	if typeIndex, count, present, err := unpackBitmask32(c, RoadTypeCount+1); err != nil {
		return nil, errors.Wrap(err, "vectortile: road bitmask")
	} else if present {
		roads, verts, err := readRoads(c, count, version)
		if err != nil {
			return nil, errors.Wrap(err, "vectortile: roads")
		}
		t.RoadFeatures, t.RoadVertices, t.roadTypes = roads, verts, typeIndex
		fixRoads(t)
	}

	if typeIndex, count, present, err := unpackBitmask32(c, LandTypeCount+1); err != nil {
		return nil, errors.Wrap(err, "vectortile: land bitmask")
	} else if present {
		ranges, lastEnd, err := readIndexRanges(c, count)
		if err != nil {
			return nil, errors.Wrap(err, "vectortile: land")
		}
		verts, err := readVertices(c, lastEnd)
		if err != nil {
			return nil, errors.Wrap(err, "vectortile: land vertices")
		}
		t.LandRanges, t.LandVertices, t.landTypes = ranges, verts, typeIndex
	}

	elevation := &elevationSource{values: opts.Elevations}
	polygons, waterVerts, waterFeatures, err := readWater(c, version, elevation)
	if err != nil {
		return nil, errors.Wrap(err, "vectortile: water")
	}
	t.WaterPolygons, t.WaterVertices, t.WaterFeatures = polygons, waterVerts, waterFeatures

	rivers, riverVerts, err := readRivers(c)
	if err != nil {
		return nil, errors.Wrap(err, "vectortile: rivers")
	}
	t.RiverFeatures, t.RiverVertices = rivers, riverVerts

	var pointTypeIndex []uint16
	var pointCount int
	var pointsPresent bool
	if version > 20 {
		pointTypeIndex, pointCount, pointsPresent, err = unpackBitmask32(c, PointTypeCount+1)
	} else {
		pointTypeIndex, pointCount, pointsPresent, err = unpackBitmask16(c, PointTypeCount+1)
	}
	if err != nil {
		return nil, errors.Wrap(err, "vectortile: point bitmask")
	}
	if pointsPresent {
		verts, err := readVertices(c, uint16(pointCount))
		if err != nil {
			return nil, errors.Wrap(err, "vectortile: point vertices")
		}
		t.PointVertices, t.pointTypes = verts, pointTypeIndex
	}

	if typeIndex, count, present, err := unpackBitmask16(c, RailTypeCount+1); err != nil {
		return nil, errors.Wrap(err, "vectortile: rail bitmask")
	} else if present {
		rails, verts, err := readRails(c, count)
		if err != nil {
			return nil, errors.Wrap(err, "vectortile: rails")
		}
		for i := 0; i < len(typeIndex)-1; i++ {
			for j := typeIndex[i]; j < typeIndex[i+1]; j++ {
				rails[j].Class = uint8(i)
			}
		}
		t.RailFeatures, t.RailVertices, t.railTypes = rails, verts, typeIndex
	}

	if typeIndex, count, present, err := unpackBitmask8(c, PowerTypeCount+1); err != nil {
		return nil, errors.Wrap(err, "vectortile: power bitmask")
	} else if present {
		power, verts, err := readPower(c, count)
		if err != nil {
			return nil, errors.Wrap(err, "vectortile: power")
		}
		t.PowerFeatures, t.PowerVertices, t.powerTypes = power, verts, typeIndex
	}

	if version > 20 {
		if typeIndex, count, present, err := unpackBitmask16(c, Unknown1TypeCount+1); err != nil {
			return nil, errors.Wrap(err, "vectortile: unknown1 bitmask")
		} else if present {
			ranges, lastEnd, err := readIndexRanges(c, count)
			if err != nil {
				return nil, errors.Wrap(err, "vectortile: unknown1")
			}
			verts, err := readVertices(c, lastEnd)
			if err != nil {
				return nil, errors.Wrap(err, "vectortile: unknown1 vertices")
			}
			t.Unknown1Ranges, t.Unknown1Vertices, t.unknown1Types = ranges, verts, typeIndex
		}

		if typeIndex, count, present, err := unpackBitmask8(c, Unknown2TypeCount+1); err != nil {
			return nil, errors.Wrap(err, "vectortile: unknown2 bitmask")
		} else if present {
			ranges, lastEnd, err := readIndexRanges(c, count)
			if err != nil {
				return nil, errors.Wrap(err, "vectortile: unknown2")
			}
			verts, err := readVertices(c, lastEnd)
			if err != nil {
				return nil, errors.Wrap(err, "vectortile: unknown2 vertices")
			}
			t.Unknown2Ranges, t.Unknown2Vertices, t.unknown2Types = ranges, verts, typeIndex
		}
	}

	return t, nil
}

// RoadFeatureCount returns the number of road features of the given
// type index.
func (t *Tile) RoadFeatureCount(typ int) int {
	if t.roadTypes == nil || typ+1 >= len(t.roadTypes) {
		return 0
	}
	return int(t.roadTypes[typ+1] - t.roadTypes[typ])
}

// RoadFeatureAt returns the index-th road feature of the given type.
func (t *Tile) RoadFeatureAt(typ, index int) *RoadFeature {
	return &t.RoadFeatures[int(t.roadTypes[typ])+index]
}

// LandFeatureCount returns the number of land-use ranges of the given
// type index.
func (t *Tile) LandFeatureCount(typ int) int {
	if t.landTypes == nil || typ+1 >= len(t.landTypes) {
		return 0
	}
	return int(t.landTypes[typ+1] - t.landTypes[typ])
}

// LandFeatureAt returns the index-th land range of the given type.
func (t *Tile) LandFeatureAt(typ, index int) *Vertex {
	return &t.LandRanges[int(t.landTypes[typ])+index]
}

// PointVertexCount returns the number of point vertices of the given
// type index.
func (t *Tile) PointVertexCount(typ int) int {
	if t.pointTypes == nil || typ+1 >= len(t.pointTypes) {
		return 0
	}
	return int(t.pointTypes[typ+1] - t.pointTypes[typ])
}

// PointVertexAt returns the index-th point vertex of the given type.
func (t *Tile) PointVertexAt(typ, index int) *Vertex {
	return &t.PointVertices[int(t.pointTypes[typ])+index]
}

// RailFeatureCount returns the number of rail features of the given
// type index.
func (t *Tile) RailFeatureCount(typ int) int {
	if t.railTypes == nil || typ+1 >= len(t.railTypes) {
		return 0
	}
	return int(t.railTypes[typ+1] - t.railTypes[typ])
}

// RailFeatureAt returns the index-th rail feature of the given type.
func (t *Tile) RailFeatureAt(typ, index int) *RailFeature {
	return &t.RailFeatures[int(t.railTypes[typ])+index]
}

// PowerFeatureCount returns the number of power-line features of the
// given type index.
func (t *Tile) PowerFeatureCount(typ int) int {
	if t.powerTypes == nil || typ+1 >= len(t.powerTypes) {
		return 0
	}
	return int(t.powerTypes[typ+1] - t.powerTypes[typ])
}

// PowerFeatureAt returns the index-th power-line feature of the given
// type.
func (t *Tile) PowerFeatureAt(typ, index int) *PowerFeature {
	return &t.PowerFeatures[int(t.powerTypes[typ])+index]
}

// Unknown1FeatureCount returns the number of unknown1 ranges of the
// given type index.
func (t *Tile) Unknown1FeatureCount(typ int) int {
	if t.unknown1Types == nil || typ+1 >= len(t.unknown1Types) {
		return 0
	}
	return int(t.unknown1Types[typ+1] - t.unknown1Types[typ])
}

// Unknown1FeatureAt returns the index-th unknown1 range of the given
// type.
func (t *Tile) Unknown1FeatureAt(typ, index int) *Vertex {
	return &t.Unknown1Ranges[int(t.unknown1Types[typ])+index]
}

// Unknown2FeatureCount returns the number of unknown2 ranges of the
// given type index.
func (t *Tile) Unknown2FeatureCount(typ int) int {
	if t.unknown2Types == nil || typ+1 >= len(t.unknown2Types) {
		return 0
	}
	return int(t.unknown2Types[typ+1] - t.unknown2Types[typ])
}

// Unknown2FeatureAt returns the index-th unknown2 range of the given
// type.
func (t *Tile) Unknown2FeatureAt(typ, index int) *Vertex {
	return &t.Unknown2Ranges[int(t.unknown2Types[typ])+index]
}

// WaterPolygonAt returns the index-th polygon of the given water
// feature. Water features record a polygon-count in End rather than an
// index, so locating the start requires summing the counts of every
// preceding feature; kept this way to match the original's on-disk
// layout rather than pay to re-derive prefix-sum indices at parse time.
func (t *Tile) WaterPolygonAt(feature, index int) *WaterPolygon {
	count := 0
	for i := 0; i < feature; i++ {
		count += int(t.WaterFeatures[i].End)
	}
	return &t.WaterPolygons[count+index]
}
