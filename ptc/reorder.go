package ptc

// kBlockOffsetAC is the Peano + spatial-frequency ordered scan (source
// Fig. 7) for AC coefficient subgroups: each byte packs a block row in
// its high nibble and a block column in its low nibble.
var kBlockOffsetAC = [16]byte{
	0x00, 0x04, 0x44, 0x40, 0x80, 0xC0, 0xC4, 0x84,
	0x88, 0xC8, 0xCC, 0x8C, 0x4C, 0x48, 0x08, 0x0C,
}

// kBlockOffsetDC is the pure spatial-frequency scan (source Fig. 8) used
// for DC coefficients.
var kBlockOffsetDC = [16]byte{
	0x00, 0x04, 0x44, 0x40, 0x80, 0x84, 0x48, 0x08,
	0x0C, 0x4C, 0x88, 0xC4, 0xC0, 0xC8, 0xCC, 0x8C,
}

// reorder scatters one chunk's zig-zag-ordered, dequantized, DC-expanded
// coefficient stream (pSrc, 16*chunkWidth entries) into the block-raster
// layout the inverse transform expects (coefficientsL0). genL0 gates
// whether the scatter runs at all; the mip-1 half-resolution plane is
// derived later, straight from the finished L0 rows (see decodeTile).
func reorder(pSrc, coefficientsL0 []int32, chunkWidth int, genL0 bool) {
	if chunkWidth <= 0 || !genL0 {
		return
	}

	sg0 := pSrc[1*chunkWidth:]
	sg1 := pSrc[4*chunkWidth:]
	sg2 := pSrc[8*chunkWidth:]
	sg3 := pSrc[13*chunkWidth:]
	sg0i, sg1i, sg2i, sg3i := 0, 0, 0, 0

	for i, j := 0, 0; j < chunkWidth; i, j = i+1, j+16 {
		coefficientsL0[j] = pSrc[i]
	}

	for i := 0; i < chunkWidth; i += 16 {
		for k := 0; k < 16; k++ {
			if k != 0 {
				dc := pSrc[(i>>4)+k*16]
				coefficientsL0[i+chunkWidth*(int(kBlockOffsetDC[k])>>4)+(int(kBlockOffsetDC[k])&0xF)] = dc
			}

			base := i + chunkWidth*(int(kBlockOffsetAC[k])>>4) + (int(kBlockOffsetAC[k]) & 0xF)
			dest := coefficientsL0[base:]

			dest[1] = sg0[sg0i]
			dest[2] = sg1[sg1i]
			dest[3] = sg2[sg2i]

			dest = dest[chunkWidth:]
			dest[0] = sg0[sg0i+1]
			dest[1] = sg0[sg0i+2]
			dest[2] = sg1[sg1i+1]
			dest[3] = sg2[sg2i+1]

			dest = dest[chunkWidth:]
			dest[0] = sg1[sg1i+2]
			dest[1] = sg1[sg1i+3]
			dest[2] = sg2[sg2i+2]
			dest[3] = sg3[sg3i]

			dest = dest[chunkWidth:]
			dest[0] = sg2[sg2i+3]
			dest[1] = sg2[sg2i+4]
			dest[2] = sg3[sg3i+1]
			dest[3] = sg3[sg3i+2]

			sg0i += 3
			sg1i += 4
			sg2i += 5
			sg3i += 3
		}
	}
}
