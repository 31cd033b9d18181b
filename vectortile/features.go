package vectortile

// Vertex is a shared 16-bit-quantized coordinate pair; Start resolves to
// longitude and End to latitude via Bounds.VertexToLatLon. Land, point,
// unknown1, and unknown2 features reference a vertex range directly
// rather than carrying their own struct.
type Vertex struct {
	Start, End uint16
}

// RoadFeature is one road segment: its class (packed into Flags bits
// 0-4), width in the unit the source used, and vertex range.
type RoadFeature struct {
	ID     uint32
	Width  uint8
	Start  uint32
	End    uint32
	Flags  uint8
	Lanes  uint8
	// Level is -1 when the record carried no explicit elevation level
	// (bridge/tunnel deck), matching the absence of a level byte.
	Level int8
}

// culvertFlag is the Flags bit fixRoads stamps on when a road matches the
// hard-coded culvert overrides.
const culvertFlag = 0x20

// RailFeature is one rail segment, with its grade-crossing state folded
// out of the top two bits of the wire ID.
type RailFeature struct {
	ID       uint32
	Width    uint8
	Start    uint16
	End      uint16
	Class    uint8
	Crossing uint8
	Level    int8
}

// RiverFeature is one river segment; Width is clamped so a wire value of
// 100 or more collapses to 20.
type RiverFeature struct {
	Width uint8
	Start uint16
	End   uint16
}

// WaterPolygon is one water-body outline: a vertex range plus the
// elevation height used to flood-fill it.
type WaterPolygon struct {
	Height float32
	Start  uint16
	End    uint16
}

// WaterFeature names a water polygon's surface type (after the wire
// byte's 0..6 remap) and, in End, the number of polygons it covers.
type WaterFeature struct {
	Type uint8
	End  uint16
}

// PowerFeature is one power line segment.
type PowerFeature struct {
	ID    uint32
	Start uint16
	End   uint16
}
