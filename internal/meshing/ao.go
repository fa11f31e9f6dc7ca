package meshing

// Occlusion levels, stored 2 bits per quad corner:
//
//	a01(2)  -  a11(6)   ^ k
//	  -     -           +> j
//	a00(0)  -  a10(4)
//
// 1 is flat, 2 partial, 3 maximal (inside corners) and 0 marks an exposed
// convex edge that gets the reverse multiplier.
const (
	aoReverse = 0
	aoFlat    = 1
	aoPartial = 2
	aoCorner  = 3
)

// aoPacker computes the packed occlusion of the face between slices ipos and
// ineg at (j, k). ipos is the cell the face points into.
type aoPacker func(v *axisView, solid []bool, ipos, ineg, j, k int) uint16

func packAO(a00, a01, a10, a11 int) uint16 {
	return uint16(a11<<6 | a10<<4 | a01<<2 | a00)
}

func unpackAO(ao uint16, jpos, kpos bool) int {
	var offset uint
	switch {
	case jpos && kpos:
		offset = 6
	case jpos:
		offset = 4
	case kpos:
		offset = 2
	}
	return int(ao>>offset) & 3
}

// sideOcclusion counts the occluded edge neighbors of each corner and, when the
// face looks into a solid cell, forces every corner to partial or corner level.
func sideOcclusion(v *axisView, solid []bool, ipos, j, k int) (a00, a01, a10, a11 int, facingSolid bool) {
	a00, a01, a10, a11 = aoFlat, aoFlat, aoFlat, aoFlat
	if solid[v.get(ipos, j+1, k)] {
		a10++
		a11++
	}
	if solid[v.get(ipos, j-1, k)] {
		a00++
		a01++
	}
	if solid[v.get(ipos, j, k+1)] {
		a01++
		a11++
	}
	if solid[v.get(ipos, j, k-1)] {
		a00++
		a10++
	}

	if !solid[v.get(ipos, j, k)] {
		return a00, a01, a10, a11, false
	}
	level := func(a int, diag bool) int {
		if a == aoCorner || diag {
			return aoCorner
		}
		return aoPartial
	}
	a11 = level(a11, solid[v.get(ipos, j+1, k+1)])
	a01 = level(a01, solid[v.get(ipos, j-1, k+1)])
	a10 = level(a10, solid[v.get(ipos, j+1, k-1)])
	a00 = level(a00, solid[v.get(ipos, j-1, k-1)])
	return a00, a01, a10, a11, true
}

// packAONoReverse is used when the reverse multiplier equals the flat one,
// so exposed edges need no detection.
func packAONoReverse(v *axisView, solid []bool, ipos, _, j, k int) uint16 {
	a00, a01, a10, a11, facingSolid := sideOcclusion(v, solid, ipos, j, k)
	if !facingSolid {
		if a11 == aoFlat && solid[v.get(ipos, j+1, k+1)] {
			a11 = aoPartial
		}
		if a01 == aoFlat && solid[v.get(ipos, j-1, k+1)] {
			a01 = aoPartial
		}
		if a10 == aoFlat && solid[v.get(ipos, j+1, k-1)] {
			a10 = aoPartial
		}
		if a00 == aoFlat && solid[v.get(ipos, j-1, k-1)] {
			a00 = aoPartial
		}
	}
	return packAO(a00, a01, a10, a11)
}

// packAOWithReverse additionally marks a flat corner as an exposed edge when
// any of the three cells behind the face around that corner is open.
func packAOWithReverse(v *axisView, solid []bool, ipos, ineg, j, k int) uint16 {
	a00, a01, a10, a11, facingSolid := sideOcclusion(v, solid, ipos, j, k)
	if !facingSolid {
		corner := func(a, dj, dk int) int {
			if a != aoFlat {
				return a
			}
			if solid[v.get(ipos, j+dj, k+dk)] {
				return aoPartial
			}
			if !solid[v.get(ineg, j, k+dk)] || !solid[v.get(ineg, j+dj, k)] || !solid[v.get(ineg, j+dj, k+dk)] {
				return aoReverse
			}
			return a
		}
		a11 = corner(a11, 1, 1)
		a10 = corner(a10, 1, -1)
		a01 = corner(a01, -1, 1)
		a00 = corner(a00, -1, -1)
	}
	return packAO(a00, a01, a10, a11)
}

// triangleSplit picks the quad diagonal that best follows the occlusion
// gradient. true splits through corners 00 and 11.
func triangleSplit(ao00, ao01, ao10, ao11 int) bool {
	if ao00 == ao11 {
		if ao01 == ao10 {
			return ao01 == aoPartial
		}
		return true
	}
	if ao01 == ao10 {
		return false
	}
	return ao00+ao11 > ao01+ao10
}
