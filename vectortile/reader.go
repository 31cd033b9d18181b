package vectortile

import (
	"encoding/binary"
	"math"

	"github.com/pkg/errors"

	"github.com/flightsimlib/terraincodec/internal/errs"
)

// cursor is a little-endian byte reader over a fixed buffer, mirroring
// the ptc package's stream reader.
type cursor struct {
	data   []byte
	offset int
}

func (c *cursor) remaining() int { return len(c.data) - c.offset }

func (c *cursor) take(n int) ([]byte, error) {
	if c.remaining() < n {
		return nil, errors.Wrap(errs.ErrUnderrun, "vectortile: short read")
	}
	b := c.data[c.offset : c.offset+n]
	c.offset += n
	return b, nil
}

func (c *cursor) u8() (uint8, error) {
	b, err := c.take(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (c *cursor) u16() (uint16, error) {
	b, err := c.take(2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b), nil
}

func (c *cursor) u32() (uint32, error) {
	b, err := c.take(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

func (c *cursor) f32() (float32, error) {
	v, err := c.u32()
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(v), nil
}

// maskWidth is the set of bitmask integer widths a feature category can
// declare, matched against the per-category table in the parser.
type maskWidth interface {
	~uint8 | ~uint16 | ~uint32
}

// unpackBitmask reads a T-wide presence bitmask followed by a run-length
// table of per-type starting offsets, then a trailing uint16 feature
// count. It returns a type-index table of typeSlots entries (such that
// feature count for type i is typeIndex[i+1]-typeIndex[i]) and the total
// feature count; present is false when the bitmask itself is zero,
// meaning the category carries no features in this tile.
func unpackBitmask[T maskWidth](c *cursor, readMask func(*cursor) (T, error), typeSlots int) (typeIndex []uint16, featureCount int, present bool, err error) {
	mask, err := readMask(c)
	if err != nil {
		return nil, 0, false, err
	}
	if mask == 0 {
		return nil, 0, false, nil
	}
	maskBits := uint64(mask)

	lengths := make([]uint16, typeSlots)
	typ := int(maskBits & 1)

	for i := 1; i < typeSlots-1; i++ {
		bit := uint64(1) << uint(i)
		if maskBits&bit == 0 {
			continue
		}
		if maskBits&(bit-1) != 0 {
			offset, err := c.u16()
			if err != nil {
				return nil, 0, false, err
			}
			for ; typ <= i; typ++ {
				lengths[typ] = offset
			}
		} else {
			for ; typ <= i; typ++ {
				lengths[typ] = 0
			}
		}
	}

	count, err := c.u16()
	if err != nil {
		return nil, 0, false, err
	}
	for i := typ; i < typeSlots; i++ {
		lengths[i] = count
	}

	return lengths, int(count), true, nil
}

func unpackBitmask32(c *cursor, typeSlots int) ([]uint16, int, bool, error) {
	return unpackBitmask(c, (*cursor).u32, typeSlots)
}

func unpackBitmask16(c *cursor, typeSlots int) ([]uint16, int, bool, error) {
	return unpackBitmask(c, (*cursor).u16, typeSlots)
}

func unpackBitmask8(c *cursor, typeSlots int) ([]uint16, int, bool, error) {
	return unpackBitmask(c, (*cursor).u8, typeSlots)
}

func readVertices(c *cursor, count uint16) ([]Vertex, error) {
	vs := make([]Vertex, count)
	for i := range vs {
		start, err := c.u16()
		if err != nil {
			return nil, err
		}
		end, err := c.u16()
		if err != nil {
			return nil, err
		}
		vs[i] = Vertex{Start: start, End: end}
	}
	return vs, nil
}

// readIndexRanges reads a leading start value followed by count (start,
// end) pairs where each end becomes the next pair's start; it returns
// the ranges and the final end, which callers resize the shared vertex
// array to. Land, unknown1, and unknown2 all use this shape.
func readIndexRanges(c *cursor, count int) ([]Vertex, uint16, error) {
	val, err := c.u16()
	if err != nil {
		return nil, 0, err
	}
	ranges := make([]Vertex, count)
	for i := 0; i < count; i++ {
		start := val
		end, err := c.u16()
		if err != nil {
			return nil, 0, err
		}
		val = end
		ranges[i] = Vertex{Start: start, End: end}
	}
	return ranges, val, nil
}

func isValidHeight(v float32) bool {
	return !math.IsNaN(float64(v)) && v > -750.0 && v < 10000.0
}

// elevationSource yields external heights for water polygons in tiles
// at version 20 or later, mirroring the original decoder's optional
// float* cursor; a nil source always falls back to the -750 sentinel.
type elevationSource struct {
	values []float32
	pos    int
}

func (e *elevationSource) next() (float32, bool) {
	if e == nil || e.pos >= len(e.values) {
		return 0, false
	}
	v := e.values[e.pos]
	e.pos++
	return v, isValidHeight(v)
}

func readRoads(c *cursor, featureCount int, version int) ([]RoadFeature, []Vertex, error) {
	val, err := c.u16()
	if err != nil {
		return nil, nil, err
	}
	roads := make([]RoadFeature, featureCount)
	for i := range roads {
		var rf RoadFeature
		rf.Start = uint32(val)

		id, err := c.u32()
		if err != nil {
			return nil, nil, err
		}
		rf.ID = id

		flags, err := c.u8()
		if err != nil {
			return nil, nil, err
		}
		if version < 21 {
			rf.Flags = ((flags >> 1) & 0xE0) | 0x80
		} else {
			rf.Flags = (flags >> 1) & 0x60
		}
		rf.Width = 2 * (flags & 0x3F)

		if version >= 21 {
			lanes, err := c.u8()
			if err != nil {
				return nil, nil, err
			}
			rf.Lanes = lanes & 0x1F
			rf.Flags = (4 * lanes) ^ ((rf.Flags ^ (4 * lanes)) & 0x7F)
		}

		if rf.Flags&0x60 == 0x40 {
			lvl, err := c.u8()
			if err != nil {
				return nil, nil, err
			}
			rf.Level = int8(lvl)
		} else {
			rf.Level = -1
		}

		end, err := c.u16()
		if err != nil {
			return nil, nil, err
		}
		rf.End = uint32(end)
		val = end
		roads[i] = rf
	}

	vertices, err := readVertices(c, val)
	if err != nil {
		return nil, nil, err
	}
	return roads, vertices, nil
}

func readRails(c *cursor, featureCount int) ([]RailFeature, []Vertex, error) {
	val, err := c.u16()
	if err != nil {
		return nil, nil, err
	}
	rails := make([]RailFeature, featureCount)
	for i := range rails {
		var rf RailFeature
		rf.Start = val

		id, err := c.u32()
		if err != nil {
			return nil, nil, err
		}
		width, err := c.u8()
		if err != nil {
			return nil, nil, err
		}
		rf.Width = width
		rf.Crossing = uint8(id >> 30)
		rf.ID = id & 0x3FFFFF

		if rf.Crossing == 2 {
			lvl, err := c.u8()
			if err != nil {
				return nil, nil, err
			}
			rf.Level = int8(lvl)
		} else {
			rf.Level = -1
		}

		end, err := c.u16()
		if err != nil {
			return nil, nil, err
		}
		rf.End = end
		val = end
		rails[i] = rf
	}

	vertices, err := readVertices(c, val)
	if err != nil {
		return nil, nil, err
	}
	return rails, vertices, nil
}

func readPower(c *cursor, featureCount int) ([]PowerFeature, []Vertex, error) {
	val, err := c.u16()
	if err != nil {
		return nil, nil, err
	}
	features := make([]PowerFeature, featureCount)
	for i := range features {
		start := val
		id, err := c.u32()
		if err != nil {
			return nil, nil, err
		}
		end, err := c.u16()
		if err != nil {
			return nil, nil, err
		}
		val = end
		features[i] = PowerFeature{ID: id, Start: start, End: end}
	}

	vertices, err := readVertices(c, val)
	if err != nil {
		return nil, nil, err
	}
	return features, vertices, nil
}

func readRivers(c *cursor) ([]RiverFeature, []Vertex, error) {
	count, err := c.u16()
	if err != nil {
		return nil, nil, err
	}
	if count == 0 {
		return nil, nil, nil
	}
	val, err := c.u16()
	if err != nil {
		return nil, nil, err
	}
	rivers := make([]RiverFeature, count)
	for i := range rivers {
		start := val
		width, err := c.u8()
		if err != nil {
			return nil, nil, err
		}
		if width >= 100 {
			width = 20
		}
		end, err := c.u16()
		if err != nil {
			return nil, nil, err
		}
		val = end
		rivers[i] = RiverFeature{Width: width, Start: start, End: end}
	}

	vertices, err := readVertices(c, val)
	if err != nil {
		return nil, nil, err
	}
	return rivers, vertices, nil
}

func remapWaterType(b uint8) uint8 {
	switch b {
	case 0:
		return 5
	case 1:
		return 2
	case 2:
		return 3
	case 3:
		return 4
	case 4:
		return 0
	case 5:
		return 1
	default:
		return 7
	}
}

func readWater(c *cursor, version int, elevation *elevationSource) ([]WaterPolygon, []Vertex, []WaterFeature, error) {
	count, err := c.u16()
	if err != nil {
		return nil, nil, nil, err
	}
	if count == 0 {
		return nil, nil, nil, nil
	}

	val, err := c.u16()
	if err != nil {
		return nil, nil, nil, err
	}
	polygons := make([]WaterPolygon, count)
	for i := range polygons {
		start := val
		var height float32
		switch {
		case version < 20:
			height, err = c.f32()
			if err != nil {
				return nil, nil, nil, err
			}
		default:
			if h, ok := elevation.next(); ok {
				height = h
			} else {
				height = -750.0
			}
		}
		end, err := c.u16()
		if err != nil {
			return nil, nil, nil, err
		}
		val = end
		polygons[i] = WaterPolygon{Height: height, Start: start, End: end}
	}

	vertices, err := readVertices(c, val)
	if err != nil {
		return nil, nil, nil, err
	}

	featureCount, err := c.u16()
	if err != nil {
		return nil, nil, nil, err
	}
	features := make([]WaterFeature, featureCount)
	for i := range features {
		end, err := c.u16()
		if err != nil {
			return nil, nil, nil, err
		}
		typeByte, err := c.u8()
		if err != nil {
			return nil, nil, nil, err
		}
		features[i] = WaterFeature{Type: remapWaterType(typeByte), End: end}
	}

	return polygons, vertices, features, nil
}
