package vectortile

// roadFixup names a road id (masked to its low 27 bits) and up to three
// quadkey levels at which it should be forced into the culvert flag
// state; L1/L2 of -1 mean "no second/third level", L0 of -1 means "any
// level".
type roadFixup struct {
	ID         uint32
	L0, L1, L2 int32
}

var roadFixups = []roadFixup{
	{0x0102D8D6, -1, -1, -1},
	{0x0102D8E3, -1, -1, -1},
	{0x0103782D, -1, -1, -1},
	{0x01037833, -1, -1, -1},
	{0x01037834, -1, -1, -1},
	{0x01037835, -1, -1, -1},
	{0x01037844, -1, -1, -1},
	{0x01037855, -1, -1, -1},
	{0x0104718C, -1, -1, -1},
	{0x010471AE, -1, -1, -1},
	{0x01047CE1, -1, -1, -1},
	{0x00817821, 8, 12, -1},
	{0x0081781E, 8, 12, -1},
	{0x01E830C0, 14, -1, -1},
	{0x01E83101, 14, -1, -1},
	{0x01E83136, 14, -1, -1},
	{0x01E830B7, 14, -1, -1},
	{0x01E7C672, 12, 14, -1},
	{0x01E82FE8, 12, 14, -1},
	{0x01E83151, 12, 14, -1},
	{0x01E8315E, 12, 14, -1},
	{0x01E83171, 12, 14, -1},
	{0x01E82F33, 8, 12, -1},
	{0x01E82EC4, 12, 14, -1},
	{0x01E8315F, -1, -1, -1},
	{0x01E83163, -1, -1, -1},
	{0x01E82EE8, 14, -1, -1},
	{0x01E83154, 12, 14, -1},
	{0x01E83152, 12, 14, -1},
	{0x01E82FA3, 12, 14, -1},
	{0x01E83170, 12, 14, -1},
	{0x04D097A7, -1, -1, -1},
	{0x00F2488E, -1, -1, -1},
	{0x01BCF210, -1, -1, -1},
	{0x03F6FAE8, -1, -1, -1},
	{0x055342B7, -1, -1, -1},
	{0x06D680A9, -1, -1, -1},
	{0x06357AAC, -1, -1, -1},
	{0x0676006B, -1, -1, -1},
	{0x067600F8, -1, -1, -1},
	{0x067600FD, -1, -1, -1},
	{0x06760395, -1, -1, -1},
	{0x0676039F, -1, -1, -1},
	{0x067603BD, -1, -1, -1},
	{0x067603C0, -1, -1, -1},
	{0x067603C2, -1, -1, -1},
	{0x067603C5, -1, -1, -1},
	{0x067603DB, -1, -1, -1},
	{0x005CC197, -1, -1, -1},
	{0x01D4862F, -1, -1, -1},
	{0x01D47EFE, -1, -1, -1},
	{0x0628E1E0, -1, -1, -1},
	{0x0628E1AD, -1, -1, -1},
	{0x027EF4EA, -1, -1, -1},
	{0x027EF4EB, -1, -1, -1},
	{0x0728AD25, -1, -1, -1},
	{0x05AC979C, -1, -1, -1},
	{0x04BDF011, -1, -1, -1},
	{0x06EF8996, -1, -1, -1},
	{0x06533E90, -1, -1, -1},
	{0x06533923, -1, -1, -1},
	{0x06533E89, -1, -1, -1},
	{0x005EB09D, -1, -1, -1},
	{0x0623E32B, -1, -1, -1},
	{0x06F3C47C, -1, -1, -1},
	{0x0391FA99, -1, -1, -1},
	{0x04460CB0, -1, -1, -1},
	{0x008A4916, -1, -1, -1},
	{0x05216484, -1, -1, -1},
	{0x05E3DFE6, -1, -1, -1},
	{0x0623E32B, -1, -1, -1},
	{0x07FFFFFF, -1, -1, -1},
	{0x033F34AA, -1, -1, -1},
	{0x029F7146, -1, -1, -1},
	{0x04DAA4CD, -1, -1, -1},
	{0x027B8B1D, -1, -1, -1},
	{0x03825BAF, -1, -1, -1},
	{0x0265A627, -1, -1, -1},
	{0x0265A626, -1, -1, -1},
	{0x0265A0DB, -1, -1, -1},
	{0x0265A632, -1, -1, -1},
	{0x0265A629, -1, -1, -1},
	{0x0265A62C, -1, -1, -1},
	{0x0265A62D, -1, -1, -1},
	{0x0265A62E, -1, -1, -1},
	{0x0265A62F, -1, -1, -1},
	{0x0265A630, -1, -1, -1},
	{0x0265A631, -1, -1, -1},
	{0x0478B01E, -1, -1, -1},
	{0x02D6B3B5, -1, -1, -1},
	{0x02D6B3C1, -1, -1, -1},
	{0x05797AD3, -1, -1, -1},
	{0x0360131D, -1, -1, -1},
	{0x03601310, -1, -1, -1},
	{0x0360130C, -1, -1, -1},
	{0x0360130E, -1, -1, -1},
	{0x0360130B, -1, -1, -1},
	{0x0455DB55, -1, -1, -1},
	{0x0455DB85, -1, -1, -1},
	{0x0455DB89, -1, -1, -1},
	{0x0455DB88, -1, -1, -1},
	{0x0664B2E2, -1, -1, -1},
	{0x051BDA74, -1, -1, -1},
	{0x05FDF782, -1, -1, -1},
	{0x01E1E701, -1, -1, -1},
	{0x01E1E6FD, -1, -1, -1},
	{0x01E1E6FE, -1, -1, -1},
	{0x014875AB, -1, -1, -1},
	{0x06F91748, -1, -1, -1},
	{0x02054E70, -1, -1, -1},
	{0x02054E70, -1, -1, -1},
}

// roadWidthsByClass maps a road type's class-pair index (type >> 1) to
// a default width in meters, used only when a road's wire width is 0.
// The trailing zero entries are never looked up explicitly by name in
// the source either; they exist because the array is declared with 16
// slots but only the first 15 classes ever carry a nonzero default.
var roadWidthsByClass = [16]float32{
	12.5, 12.5, 12.5, 12.5, 12.5,
	10.0, 10.0, 10.0, 10.0, 10.0, 10.0, 10.0, 10.0,
	7.5, 3.0, 0,
}

// fixRoads stamps each road's class into its low 5 flag bits, fills in
// a default width from roadWidthsByClass when the wire width was zero,
// and forces the culvert flag (0x20) on roads matched by quadkey-level
// overrides: a hard-coded quad at level 14, or an id/level hit in
// roadFixups. A road already flagged culvert is left alone.
func fixRoads(t *Tile) {
	for i := 0; i < len(t.roadTypes)-1; i++ {
		for j := t.roadTypes[i]; j < t.roadTypes[i+1]; j++ {
			road := &t.RoadFeatures[j]
			road.Flags &= 0xE0
			road.Flags |= uint8(i) & 0x1F

			if road.Width == 0 {
				if road.ID>>27 == 0 {
					road.ID = (road.ID & 0x7FFFFFF) | 0x8000000
				}
				road.Width = uint8(float32(road.ID>>27) * roadWidthsByClass[i>>1])
			}

			if t.Quad.Level == 14 && t.Quad.TileX == 8157 &&
				(t.Quad.TileY == 4718 || t.Quad.TileY == 4719) {
				road.Flags &= 0xBF
				road.Flags |= culvertFlag
			}

			if road.Flags&0x60 == culvertFlag {
				continue
			}

			for _, fix := range roadFixups {
				masked := road.ID & 0x7FFFFFF
				if masked == fix.ID &&
					(fix.L0 < 0 || int32(t.Quad.Level) == fix.L0 || int32(t.Quad.Level) == fix.L1 || int32(t.Quad.Level) == fix.L2) {
					road.Flags &= 0xBF
					road.Flags |= culvertFlag
					break
				}
			}
		}
	}
}
