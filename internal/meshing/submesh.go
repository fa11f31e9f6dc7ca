package meshing

// Submesh accumulates the geometry of one material during a sweep.
type Submesh struct {
	MaterialID int
	Positions  []float32 // xyz per vertex, chunk-local
	Indices    []uint32
	Normals    []int8    // xyz per vertex, each -1, 0 or 1
	Colors     []float32 // rgba per vertex
	UVs        []float32

	mergeable bool
	parts     []MaterialRange
}

func newSubmesh(matID int) *Submesh {
	return &Submesh{MaterialID: matID}
}

// VertexCount returns the number of vertices in the submesh.
func (s *Submesh) VertexCount() int {
	return len(s.Positions) / 3
}

type quad struct {
	d, u, v int
	i, j, k int
	w, h    int
	dir     int // +1 or -1 along d
	triDir  bool
}

// addQuad appends positions, uvs, indices and normals for one quad.
// Colors are appended by the caller.
func (s *Submesh) addQuad(q quad) {
	var x, du, dv [3]float32
	x[q.d] = float32(q.i)
	x[q.u] = float32(q.j)
	x[q.v] = float32(q.k)
	du[q.u] = float32(q.w)
	dv[q.v] = float32(q.h)

	vs := uint32(s.VertexCount())
	s.Positions = append(s.Positions,
		x[0], x[1], x[2],
		x[0]+du[0], x[1]+du[1], x[2]+du[2],
		x[0]+du[0]+dv[0], x[1]+du[1]+dv[1], x[2]+du[2]+dv[2],
		x[0]+dv[0], x[1]+dv[1], x[2]+dv[2],
	)

	// Orientation depends on axis and facing so textures are never mirrored.
	w, h, dir := float32(q.w), float32(q.h), float32(q.dir)
	if q.d == 2 {
		s.UVs = append(s.UVs, 0, h, -dir*w, h, -dir*w, 0, 0, 0)
	} else {
		s.UVs = append(s.UVs, 0, w, 0, 0, dir*h, 0, dir*h, w)
	}

	switch {
	case q.dir < 0 && q.triDir:
		s.Indices = append(s.Indices, vs, vs+1, vs+2, vs, vs+2, vs+3)
	case q.dir < 0:
		s.Indices = append(s.Indices, vs+1, vs+2, vs+3, vs, vs+1, vs+3)
	case q.triDir:
		s.Indices = append(s.Indices, vs, vs+2, vs+1, vs, vs+3, vs+2)
	default:
		s.Indices = append(s.Indices, vs+3, vs+1, vs, vs+3, vs+2, vs+1)
	}

	var n [3]int8
	n[q.d] = int8(q.dir)
	for range 4 {
		s.Normals = append(s.Normals, n[0], n[1], n[2])
	}
}

// appendSubmesh copies o onto the end of s, rebasing its indices.
func (s *Submesh) appendSubmesh(o *Submesh) {
	offset := uint32(s.VertexCount())
	s.Positions = append(s.Positions, o.Positions...)
	s.Normals = append(s.Normals, o.Normals...)
	s.Colors = append(s.Colors, o.Colors...)
	s.UVs = append(s.UVs, o.UVs...)
	for _, idx := range o.Indices {
		s.Indices = append(s.Indices, idx+offset)
	}
}
