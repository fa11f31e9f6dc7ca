package meshing

import "github.com/go-gl/mathgl/mgl32"

// maskCompare reports whether cell idx matches the seed values.
type maskCompare func(mask []int16, aomask []uint16, idx int, val int16, ao uint16) bool

func sameMaskAndAO(mask []int16, aomask []uint16, idx int, val int16, ao uint16) bool {
	return mask[idx] == val && aomask[idx] == ao
}

func sameMask(mask []int16, _ []uint16, idx int, val int16, _ uint16) bool {
	return mask[idx] == val
}

// colorPusher appends the four vertex colors of a quad (corners 00, 10, 11,
// 01) and returns the triangle split to use.
type colorPusher func(dst []float32, base mgl32.Vec3, ao uint16) ([]float32, bool)

func pushFlatColors(dst []float32, base mgl32.Vec3, _ uint16) ([]float32, bool) {
	for range 4 {
		dst = append(dst, base[0], base[1], base[2], 1)
	}
	return dst, true
}

func aoColorPusher(mults [3]float32, rev float32) colorPusher {
	scale := func(level int) float32 {
		if level == aoReverse {
			return rev
		}
		return mults[level-1]
	}
	return func(dst []float32, base mgl32.Vec3, ao uint16) ([]float32, bool) {
		ao00 := unpackAO(ao, false, false)
		ao10 := unpackAO(ao, true, false)
		ao11 := unpackAO(ao, true, true)
		ao01 := unpackAO(ao, false, true)
		for _, level := range [4]int{ao00, ao10, ao11, ao01} {
			f := scale(level)
			dst = append(dst, base[0]*f, base[1]*f, base[2]*f, 1)
		}
		return dst, triangleSplit(ao00, ao01, ao10, ao11)
	}
}

// greedyRects walks an s*s mask row by row and calls emit for each maximal
// rectangle: width first along j, then full rows along k. Consumed cells are
// zeroed so the mask is empty afterwards.
func greedyRects(mask []int16, aomask []uint16, s int, same maskCompare, emit func(j, k, w, h int, val int16, ao uint16)) {
	n := 0
	for k := 0; k < s; k++ {
		w := 1
		for j := 0; j < s; j, n = j+w, n+w {
			val := mask[n]
			if val == 0 {
				w = 1
				continue
			}
			ao := aomask[n]

			for w = 1; w < s-j; w++ {
				if !same(mask, aomask, n+w, val, ao) {
					break
				}
			}

			h := 1
		rows:
			for ; h < s-k; h++ {
				for x := 0; x < w; x++ {
					if !same(mask, aomask, n+x+h*s, val, ao) {
						break rows
					}
				}
			}

			emit(j, k, w, h, val, ao)

			for y := 0; y < h; y++ {
				clear(mask[n+y*s : n+y*s+w])
			}
		}
	}
}

// mergeSlice turns the masks of slice i into quads.
func (m *TerrainMesher) mergeSlice(sw *sweep, i int) {
	s := sw.size
	greedyRects(m.mask[:s*s], m.aomask[:s*s], s, sw.same, func(j, k, w, h int, val int16, ao uint16) {
		sw.emitQuad(i, j, k, w, h, val, ao)
	})
}

func (sw *sweep) emitQuad(i, j, k, w, h int, val int16, ao uint16) {
	matID := int(val)
	if matID < 0 {
		matID = -matID
	}
	sm, ok := sw.buckets.Get(matID)
	if !ok {
		sm = newSubmesh(matID)
		sw.buckets.Set(matID, sm)
	}

	var triDir bool
	sm.Colors, triDir = sw.colors(sm.Colors, sw.color(matID), ao)

	dir := 1
	if val < 0 {
		dir = -1
	}
	sm.addQuad(quad{d: sw.d, u: sw.u, v: sw.v, i: i, j: j, k: k, w: w, h: h, dir: dir, triDir: triDir})
}
