package meshing

import (
	"encoding/binary"
	"math"

	"github.com/ethaniccc/float32-cube/cube"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/zeebo/xxh3"

	"voxmesh/internal/world"
)

// MaterialRange is the span one material occupies in a merged buffer.
type MaterialRange struct {
	MaterialID  int
	VertexStart int
	VertexCount int
	IndexStart  int
	IndexCount  int
}

// SubMesh binds a range of the surface buffers to an appearance.
type SubMesh struct {
	MaterialRange
	Appearance *Appearance
	// Parts lists the materials folded into this range when several
	// flat materials were merged. Nil otherwise.
	Parts []MaterialRange
}

// Surface is the meshed geometry of one chunk, in chunk-local coordinates.
// Exactly one of Appearance and SubMeshes is set.
type Surface struct {
	Name   string
	Coord  world.ChunkCoord
	Origin mgl32.Vec3 // world position of the chunk's local origin

	Positions []float32
	Normals   []int8
	Colors    []float32
	UVs       []float32
	Indices   []uint32

	Appearance *Appearance
	SubMeshes  []SubMesh

	ranges []SubMesh
}

// VertexCount returns the number of vertices.
func (s *Surface) VertexCount() int { return len(s.Positions) / 3 }

// QuadCount returns the number of quads (two triangles each).
func (s *Surface) QuadCount() int { return len(s.Indices) / 6 }

// Ranges returns the appearance bindings. A surface with a single
// appearance reports one range covering the whole buffer.
func (s *Surface) Ranges() []SubMesh {
	if s.SubMeshes != nil {
		return s.SubMeshes
	}
	if s.ranges != nil {
		return s.ranges
	}
	return []SubMesh{{
		MaterialRange: MaterialRange{VertexCount: s.VertexCount(), IndexCount: len(s.Indices)},
		Appearance:    s.Appearance,
	}}
}

// Bounds returns the local bounding box of all vertices.
func (s *Surface) Bounds() cube.BBox {
	if len(s.Positions) < 3 {
		return cube.Box(0, 0, 0, 0, 0, 0)
	}
	lo := mgl32.Vec3{s.Positions[0], s.Positions[1], s.Positions[2]}
	hi := lo
	for i := 3; i+2 < len(s.Positions); i += 3 {
		for c := 0; c < 3; c++ {
			p := s.Positions[i+c]
			lo[c] = min(lo[c], p)
			hi[c] = max(hi[c], p)
		}
	}
	return cube.Box(lo[0], lo[1], lo[2], hi[0], hi[1], hi[2])
}

// WorldBounds returns Bounds offset by Origin.
func (s *Surface) WorldBounds() cube.BBox {
	b := s.Bounds()
	lo, hi := b.Min().Add(s.Origin), b.Max().Add(s.Origin)
	return cube.Box(lo[0], lo[1], lo[2], hi[0], hi[1], hi[2])
}

// Fingerprint hashes the geometry buffers and appearance bindings.
// Equal surfaces always have equal fingerprints.
func (s *Surface) Fingerprint() uint64 {
	h := xxh3.New()
	buf := make([]byte, 0, 4096)
	flush := func() {
		_, _ = h.Write(buf)
		buf = buf[:0]
	}
	putU32 := func(v uint32) {
		buf = binary.LittleEndian.AppendUint32(buf, v)
		if len(buf) >= 4092 {
			flush()
		}
	}
	floats := func(fs []float32) {
		putU32(uint32(len(fs)))
		for _, f := range fs {
			putU32(math.Float32bits(f))
		}
	}

	floats(s.Positions)
	putU32(uint32(len(s.Normals)))
	for _, n := range s.Normals {
		putU32(uint32(int32(n)))
	}
	floats(s.Colors)
	floats(s.UVs)
	putU32(uint32(len(s.Indices)))
	for _, idx := range s.Indices {
		putU32(idx)
	}
	for _, r := range s.Ranges() {
		putU32(uint32(r.MaterialID))
		putU32(uint32(r.VertexCount))
		putU32(uint32(r.IndexCount))
		if r.Appearance != nil {
			flush()
			_, _ = h.Write([]byte(r.Appearance.Name))
		}
	}
	flush()
	return h.Sum64()
}
