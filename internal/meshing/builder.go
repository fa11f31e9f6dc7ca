package meshing

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"voxmesh/internal/world"
)

// buildSurface merges the per-material buckets of a chunk into one Surface.
// Buckets whose material can use the flat appearance are folded together
// first; the remaining buckets become appearance ranges of one buffer.
func buildSurface(c *world.Chunk, buckets []*Submesh, ignoreMaterials bool, mats appearanceSource, cache *AppearanceCache) *Surface {
	numMergeable := 0
	for _, b := range buckets {
		b.mergeable = ignoreMaterials || isMergeable(mats.MaterialData(b.MaterialID))
		if b.mergeable {
			numMergeable++
		}
	}
	if numMergeable > 1 {
		buckets = foldMergeable(buckets)
	}

	merged := &Submesh{}
	ranges := make([]SubMesh, 0, len(buckets))
	for _, b := range buckets {
		r := SubMesh{
			MaterialRange: MaterialRange{
				MaterialID:  b.MaterialID,
				VertexStart: merged.VertexCount(),
				VertexCount: b.VertexCount(),
				IndexStart:  len(merged.Indices),
				IndexCount:  len(b.Indices),
			},
			Appearance: cache.Get(b.MaterialID, ignoreMaterials),
		}
		for _, p := range b.parts {
			p.VertexStart += r.VertexStart
			p.IndexStart += r.IndexStart
			r.Parts = append(r.Parts, p)
		}
		ranges = append(ranges, r)
		merged.appendSubmesh(b)
	}

	s := c.Size()
	surf := &Surface{
		Name:      fmt.Sprintf("chunk_%d_%d_%d", c.Coord.X, c.Coord.Y, c.Coord.Z),
		Coord:     c.Coord,
		Origin:    mgl32.Vec3{float32(c.Coord.X * s), float32(c.Coord.Y * s), float32(c.Coord.Z * s)},
		Positions: merged.Positions,
		Normals:   merged.Normals,
		Colors:    merged.Colors,
		UVs:       merged.UVs,
		Indices:   merged.Indices,
		ranges:    ranges,
	}
	if len(ranges) == 1 {
		surf.Appearance = ranges[0].Appearance
	} else {
		surf.SubMeshes = ranges
	}
	return surf
}

// foldMergeable returns a new bucket list where every mergeable bucket is
// appended onto the first mergeable one, which keeps its position. The
// folded bucket records where each material landed.
func foldMergeable(buckets []*Submesh) []*Submesh {
	out := make([]*Submesh, 0, len(buckets))
	var target *Submesh
	for _, b := range buckets {
		if !b.mergeable {
			out = append(out, b)
			continue
		}
		if target == nil {
			target = &Submesh{MaterialID: b.MaterialID, mergeable: true}
			out = append(out, target)
		}
		target.parts = append(target.parts, MaterialRange{
			MaterialID:  b.MaterialID,
			VertexStart: target.VertexCount(),
			VertexCount: b.VertexCount(),
			IndexStart:  len(target.Indices),
			IndexCount:  len(b.Indices),
		})
		target.appendSubmesh(b)
	}
	return out
}
