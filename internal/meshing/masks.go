package meshing

// faceDir decides which side of the boundary between id0 (at i-1) and id1
// (at i) gets a face: +1 for id0's face, -1 for id1's face, 0 for none.
func faceDir(id0, id1 uint16, opaque []bool, material MaterialFunc, matDir int) int {
	op0, op1 := opaque[id0], opaque[id1]
	switch {
	case op0 && op1:
		return 0
	case op0:
		return 1
	case op1:
		return -1
	}
	m0 := material(id0, matDir)
	m1 := material(id1, matDir+1)
	switch {
	case m0 == m1:
		return 0
	case m0 == 0:
		return -1
	case m1 == 0:
		return 1
	}
	// Two different see-through materials facing each other: draw neither.
	return 0
}

// buildMasks fills the face and occlusion masks for slice i of the current
// axis, indexed n = k*S + j. It reports whether any face was found.
func (m *TerrainMesher) buildMasks(sw *sweep, i int) bool {
	s := sw.size
	view := &sw.view
	matDir := 2 * sw.d
	mask, aomask := m.mask[:s*s], m.aomask[:s*s]
	clear(mask)

	found := false
	n := 0
	for k := 0; k < s; k++ {
		for j := 0; j < s; j, n = j+1, n+1 {
			id0 := view.get(i-1, j, k)
			id1 := view.get(i, j, k)
			if id0 == id1 {
				continue
			}

			var val int
			switch faceDir(id0, id1, sw.opaque, sw.material, matDir) {
			case 1:
				val = sw.material(id0, matDir)
				if val != 0 && sw.pack != nil {
					aomask[n] = sw.pack(view, sw.solid, i, i-1, j, k)
				}
			case -1:
				val = -sw.material(id1, matDir+1)
				if val != 0 && sw.pack != nil {
					aomask[n] = sw.pack(view, sw.solid, i-1, i, j, k)
				}
			}
			if val != 0 {
				mask[n] = int16(val)
				found = true
			}
		}
	}
	return found
}
