package vectortile

import "testing"

func TestCalcBoundsOverlapFactorByVersion(t *testing.T) {
	low := CalcBounds(Quad{Level: 14, TileX: 100, TileY: 100})
	if low.OverlapFactor != 10 {
		t.Errorf("level 14 overlap = %v want 10", low.OverlapFactor)
	}
	high := CalcBounds(Quad{Level: 15, TileX: 100, TileY: 100})
	if high.OverlapFactor != 80 {
		t.Errorf("level 15 overlap = %v want 80", high.OverlapFactor)
	}
}

func TestCalcBoundsOrdering(t *testing.T) {
	b := CalcBounds(Quad{Level: 10, TileX: 300, TileY: 400})
	if b.DeltaLat <= 0 {
		t.Errorf("DeltaLat = %v want > 0", b.DeltaLat)
	}
	if b.DeltaLon <= 0 {
		t.Errorf("DeltaLon = %v want > 0", b.DeltaLon)
	}
}

func TestVertexToLatLonInterpolatesWithinBounds(t *testing.T) {
	b := CalcBounds(Quad{Level: 10, TileX: 300, TileY: 400})

	latMin, lonMin := b.VertexToLatLon(Vertex{Start: 0, End: 0})
	if latMin != b.TopLeftLat || lonMin != b.TopLeftLon {
		t.Errorf("VertexToLatLon(0,0) = (%v,%v) want top-left (%v,%v)", latMin, lonMin, b.TopLeftLat, b.TopLeftLon)
	}

	latMax, lonMax := b.VertexToLatLon(Vertex{Start: 65535, End: 65535})
	wantLat := b.TopLeftLat + b.DeltaLat
	wantLon := b.TopLeftLon + b.DeltaLon
	const eps = 1e-9
	if diff := latMax - wantLat; diff > eps || diff < -eps {
		t.Errorf("VertexToLatLon(65535) lat = %v want %v", latMax, wantLat)
	}
	if diff := lonMax - wantLon; diff > eps || diff < -eps {
		t.Errorf("VertexToLatLon(65535) lon = %v want %v", lonMax, wantLon)
	}
}
