// Package transform implements the inverse of PTC's two-stage 4x4 lapped
// biorthogonal transform: an integer lifting cascade (THH/THR/TRR
// butterflies plus rotate-scale overlap smoothing) applied horizontally
// at block scale (stride 1) and vertically at macroblock scale (stride 4).
//
// A Plane holds the 32 logical coefficient rows for one channel. Column
// position within a row is tracked as a plain integer cursor rather than
// re-sliced pointers, so stepping back across a just-crossed boundary
// (the reference decoder's "pointer - n" reach-back) is just arithmetic.
package transform

// Plane is the 32-row coefficient view for a single channel, per spec
// §3's "logical array of 32 row pointers into a contiguous buffer."
type Plane struct {
	Rows [32][]int32
}

// NewPlane allocates a zeroed plane with tileWidth columns per row.
func NewPlane(tileWidth int) *Plane {
	p := &Plane{}
	for i := range p.Rows {
		p.Rows[i] = make([]int32, tileWidth)
	}
	return p
}

func swap32(a, b *int32) {
	*a, *b = *b, *a
}

// rotateScale is a two-pass integer lifting pair with halving; the
// inverse of the forward scaled rotation used between adjacent 4x4
// cells in the overlap stage.
func rotateScale(pa, pb *int32) {
	a, b := *pa, *pb
	a -= (b + 1) >> 1
	b -= (3*a + 2) >> 2
	a += (b + 1) >> 1
	b >>= 1
	*pa, *pb = a, b
}

func butterflyDown(pa, pb, pc, pd *int32) {
	a, b, c, d := *pa, *pb, *pc, *pd
	d = a - d
	a -= d >> 1
	c = b - c
	b -= c >> 1
	*pa, *pb, *pc, *pd = a, b, c, d
}

func butterflyUp(pa, pb, pc, pd *int32) {
	a, b, c, d := *pa, *pb, *pc, *pd
	b += c >> 1
	c = b - c
	a += d >> 1
	d = a - d
	*pa, *pb, *pc, *pd = a, b, c, d
}

// invTHH is the inverse "Hadamard-Hadamard" 4-point lifting.
func invTHH(pa, pb, pc, pd *int32) {
	a, b, c := *pa, *pb, *pc
	D := *pd
	a += b
	c -= D
	t := (a - c) >> 1
	d := t - b
	b = d + c
	c = t - D
	a -= c
	*pa, *pb, *pc, *pd = a, b, c, d
}

// invTHR is the inverse "Hadamard-Rotate" 4-point lifting.
func invTHR(pa, pb, pc, pd *int32) {
	a, b, c, d := *pa, *pb, *pc, *pd
	t1 := a + ((b + 1) >> 1)
	t2 := d - ((c + 1) >> 1)
	d = b - ((5*t1 + 2) >> 2)
	a = c + ((5*t2 + 2) >> 2)
	c = t1 + ((d + 1) >> 1) + (a >> 1)
	b = t2 - ((a + 1) >> 1) - (d >> 1)
	a -= c
	d += b
	*pa, *pb, *pc, *pd = a, b, c, d
}

// invTRR is the inverse "Rotate-Rotate" 4-point lifting.
func invTRR(pa, pb, pc, pd *int32) {
	a, b, c, d := *pa, *pb, *pc, *pd
	t1 := a - d
	t2 := c + b
	b -= t2 >> 1
	d += t1 >> 1
	c = (t1 >> 1) - t2
	a = c - t1
	c -= a >> 1
	b += c >> 1
	c -= b
	d -= a >> 1
	a += d
	*pa, *pb, *pc, *pd = a, b, c, d
}

// grid is the 4x4 working cell:
//
//	a b c d
//	e f g h
//	i j k l
//	m n o p
type grid struct {
	a, b, c, d, e, f, g, h, i, j, k, l, m, n, o, p int32
}

// invDCT permutes the even/odd sub-blocks into place then applies one
// THH, two THR (opposite rotation sense), one TRR, and four column THH
// passes to invert the forward DCT-like stage.
func invDCT(r *grid) {
	swap32(&r.b, &r.c)
	swap32(&r.i, &r.e)
	swap32(&r.l, &r.h)
	swap32(&r.k, &r.f)
	swap32(&r.j, &r.g)
	swap32(&r.o, &r.n)

	invTHH(&r.a, &r.b, &r.e, &r.f)
	invTHR(&r.h, &r.g, &r.d, &r.c)
	invTHR(&r.n, &r.j, &r.m, &r.i)
	invTRR(&r.k, &r.l, &r.o, &r.p)

	invTHH(&r.a, &r.d, &r.m, &r.p)
	invTHH(&r.b, &r.c, &r.n, &r.o)
	invTHH(&r.e, &r.h, &r.i, &r.l)
	invTHH(&r.f, &r.g, &r.j, &r.k)
}

// invOverlap is the lossless inverse boundary smoothing between cells:
// two Hadamard phases around eight rotate-scale edge pairs.
func invOverlap(r *grid) {
	invTHH(&r.a, &r.m, &r.d, &r.p)
	invTHH(&r.b, &r.n, &r.c, &r.o)
	invTHH(&r.e, &r.i, &r.h, &r.l)
	invTHH(&r.f, &r.j, &r.g, &r.k)

	rotateScale(&r.m, &r.i)
	rotateScale(&r.n, &r.j)
	rotateScale(&r.o, &r.k)
	rotateScale(&r.p, &r.l)
	rotateScale(&r.d, &r.c)
	rotateScale(&r.h, &r.g)
	rotateScale(&r.l, &r.k)
	rotateScale(&r.p, &r.o)

	invTHH(&r.a, &r.d, &r.m, &r.p)
	invTHH(&r.b, &r.c, &r.n, &r.o)
	invTHH(&r.e, &r.h, &r.i, &r.l)
	invTHH(&r.f, &r.g, &r.j, &r.k)
}

func gridReadStage1(row0, row1, row2, row3 []int32, col int) grid {
	return grid{
		a: row0[col+0], b: row0[col+1], c: row0[col+2], d: row0[col+3],
		e: row1[col+0], f: row1[col+1], g: row1[col+2], h: row1[col+3],
		i: row2[col+0], j: row2[col+1], k: row2[col+2], l: row2[col+3],
		m: row3[col+0], n: row3[col+1], o: row3[col+2], p: row3[col+3],
	}
}

func gridWriteStage1(g grid, row0, row1, row2, row3 []int32, col int) {
	row0[col+0], row0[col+1], row0[col+2], row0[col+3] = g.a, g.b, g.c, g.d
	row1[col+0], row1[col+1], row1[col+2], row1[col+3] = g.e, g.f, g.g, g.h
	row2[col+0], row2[col+1], row2[col+2], row2[col+3] = g.i, g.j, g.k, g.l
	row3[col+0], row3[col+1], row3[col+2], row3[col+3] = g.m, g.n, g.o, g.p
}

func invDCTStage1(row0, row1, row2, row3 []int32, col int) {
	g := gridReadStage1(row0, row1, row2, row3, col)
	invDCT(&g)
	gridWriteStage1(g, row0, row1, row2, row3, col)
}

func invOverlapStage1(row0, row1, row2, row3 []int32, col int) {
	g := gridReadStage1(row0, row1, row2, row3, col)
	invOverlap(&g)
	gridWriteStage1(g, row0, row1, row2, row3, col)
}

func gridReadStage2(row0, row1, row2, row3 []int32, col int) grid {
	return grid{
		a: row0[col+0], b: row0[col+4], c: row0[col+8], d: row0[col+12],
		e: row1[col+0], f: row1[col+4], g: row1[col+8], h: row1[col+12],
		i: row2[col+0], j: row2[col+4], k: row2[col+8], l: row2[col+12],
		m: row3[col+0], n: row3[col+4], o: row3[col+8], p: row3[col+12],
	}
}

func gridWriteStage2(g grid, row0, row1, row2, row3 []int32, col int) {
	row0[col+0], row0[col+4], row0[col+8], row0[col+12] = g.a, g.b, g.c, g.d
	row1[col+0], row1[col+4], row1[col+8], row1[col+12] = g.e, g.f, g.g, g.h
	row2[col+0], row2[col+4], row2[col+8], row2[col+12] = g.i, g.j, g.k, g.l
	row3[col+0], row3[col+4], row3[col+8], row3[col+12] = g.m, g.n, g.o, g.p
}

func invDCTStage2(row0, row1, row2, row3 []int32, col int) {
	g := gridReadStage2(row0, row1, row2, row3, col)
	invDCT(&g)
	gridWriteStage2(g, row0, row1, row2, row3, col)
}

func invOverlapStage2(row0, row1, row2, row3 []int32, col int) {
	g := gridReadStage2(row0, row1, row2, row3, col)
	invOverlap(&g)
	gridWriteStage2(g, row0, row1, row2, row3, col)
}

func invOverlapVerticalStage1(row0, row1, row2, row3 []int32, col int) {
	butterflyDown(&row0[col+0], &row1[col+0], &row2[col+0], &row3[col+0])
	rotateScale(&row3[col+0], &row2[col+0])
	butterflyUp(&row0[col+0], &row1[col+0], &row2[col+0], &row3[col+0])

	butterflyDown(&row0[col+1], &row1[col+1], &row2[col+1], &row3[col+1])
	rotateScale(&row3[col+1], &row2[col+1])
	butterflyUp(&row0[col+1], &row1[col+1], &row2[col+1], &row3[col+1])
}

func invOverlapHorizontalStage1(row0, row1 []int32, col int) {
	butterflyDown(&row0[col+0], &row0[col+1], &row0[col+2], &row0[col+3])
	rotateScale(&row0[col+3], &row0[col+2])
	butterflyUp(&row0[col+0], &row0[col+1], &row0[col+2], &row0[col+3])

	butterflyDown(&row1[col+0], &row1[col+1], &row1[col+2], &row1[col+3])
	rotateScale(&row1[col+3], &row1[col+2])
	butterflyUp(&row1[col+0], &row1[col+1], &row1[col+2], &row1[col+3])
}

func invOverlapVerticalStage2(row0, row1, row2, row3 []int32, col int) {
	butterflyDown(&row0[col+0], &row1[col+0], &row2[col+0], &row3[col+0])
	rotateScale(&row3[col+0], &row2[col+0])
	butterflyUp(&row0[col+0], &row1[col+0], &row2[col+0], &row3[col+0])

	butterflyDown(&row0[col+4], &row1[col+4], &row2[col+4], &row3[col+4])
	rotateScale(&row3[col+4], &row2[col+4])
	butterflyUp(&row0[col+4], &row1[col+4], &row2[col+4], &row3[col+4])
}

func invOverlapHorizontalStage2(row0, row1 []int32, col int) {
	butterflyDown(&row0[col+0], &row0[col+4], &row0[col+8], &row0[col+12])
	rotateScale(&row0[col+12], &row0[col+8])
	butterflyUp(&row0[col+0], &row0[col+4], &row0[col+8], &row0[col+12])

	butterflyDown(&row1[col+0], &row1[col+4], &row1[col+8], &row1[col+12])
	rotateScale(&row1[col+12], &row1[col+8])
	butterflyUp(&row1[col+0], &row1[col+4], &row1[col+8], &row1[col+12])
}

// Downscale zeroes the AC coefficients and rescales the kept DC of a
// 4x4 cell, producing the input to a half-resolution (mip-1) decode.
func Downscale(row0, row1, row2, row3 []int32, col int) {
	row0[col+2] = (row0[col+2] + 2) >> 2
	row0[col+3] = 0
	row1[col+1] = (3*row1[col+1] + 2) >> 2
	row1[col+2] = (row1[col+2] + 2) >> 2
	row1[col+3] = 0
	row2[col+0] = (row2[col+0] + 2) >> 2
	row2[col+1] = (row2[col+1] + 2) >> 2
	row2[col+2] = (row2[col+2] + 4) >> 3
	row2[col+3] = 0
	row3[col+0] = 0
	row3[col+1] = 0
	row3[col+2] = 0
	row3[col+3] = 0
}

// InvTransformInitial decodes the first tile of a channel: stage-2
// inverse DCT across the whole tile width, then stage-1 inverse DCT
// across each 4-row block, with stage-1 horizontal overlap between
// adjacent blocks once overlap is enabled and it is not the first block.
func InvTransformInitial(p *Plane, tileWidth int, overlap, downscale bool) {
	row0, row1, row2, row3 := p.Rows[16], p.Rows[20], p.Rows[24], p.Rows[28]
	col := 0
	for i := 0; i < ((tileWidth-16)>>4)+1; i++ {
		invDCTStage2(row0, row1, row2, row3, col)
		if i != 0 && overlap {
			invOverlapHorizontalStage2(row0, row1, col-8)
		}
		col += 16
	}

	row0, row1, row2, row3 = p.Rows[16], p.Rows[17], p.Rows[18], p.Rows[19]
	col = 0
	for i := 0; i < ((tileWidth-1)>>2)+1; i++ {
		if downscale {
			Downscale(row0, row1, row2, row3, col)
		}
		invDCTStage1(row0, row1, row2, row3, col)
		if i != 0 && overlap {
			invOverlapHorizontalStage1(row0, row1, col-2)
		}
		col += 4
	}
}

// InvTransformMacroblock handles the inter-macroblock boundary: vertical
// overlap between the current macroblock and the buffered previous one,
// and (when last) horizontal overlap at the rightmost edge.
func InvTransformMacroblock(p *Plane, tileWidth int, overlap, last bool) {
	row0, row1 := p.Rows[8], p.Rows[12]
	row2, row3, row4, row5 := p.Rows[16], p.Rows[20], p.Rows[24], p.Rows[28]
	col01, col2345 := 0, 0

	for i := 0; i < ((tileWidth-16)>>4)+1; i++ {
		invDCTStage2(row2, row3, row4, row5, col2345)

		if i == 0 {
			if overlap {
				invOverlapVerticalStage2(row0, row1, row2, row3, col01)
			}
			col01 += 8
		} else {
			if overlap {
				invOverlapStage2(row0, row1, row2, row3, col01)
			}
			if last && overlap {
				invOverlapHorizontalStage2(row4, row5, col2345-8)
			}
			col01 += 16
		}

		col2345 += 16
	}

	if overlap {
		invOverlapVerticalStage2(row0, row1, row2, row3, col01)
	}
}

// InvTransformBlock handles inter-block boundaries inside a macroblock.
func InvTransformBlock(p *Plane, tileWidth int, overlap, downscale, last bool, rowInMacroblock int) {
	row0 := p.Rows[rowInMacroblock+0]
	row1 := p.Rows[rowInMacroblock+1]
	row2 := p.Rows[rowInMacroblock+2]
	row3 := p.Rows[rowInMacroblock+3]
	row4 := p.Rows[rowInMacroblock+4]
	row5 := p.Rows[rowInMacroblock+5]
	col01, col2345 := 0, 0

	for i := 0; i < ((tileWidth-1)>>2)+1; i++ {
		if downscale {
			Downscale(row2, row3, row4, row5, col2345)
		}
		invDCTStage1(row2, row3, row4, row5, col2345)

		if i == 0 {
			if overlap {
				invOverlapVerticalStage1(row0, row1, row2, row3, col01)
			}
			col01 += 2
		} else {
			if overlap {
				invOverlapStage1(row0, row1, row2, row3, col01)
			}
			if last && overlap {
				invOverlapHorizontalStage1(row4, row5, col2345-2)
			}
			col01 += 4
		}

		col2345 += 4
	}

	if overlap {
		invOverlapVerticalStage1(row0, row1, row2, row3, col01)
	}
}
