package meshing

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"voxmesh/internal/registry"
	"voxmesh/internal/world"
)

// Block IDs of testRegistry.
const (
	blockStone uint16 = 1
	blockDirt  uint16 = 2
	blockGlass uint16 = 3
	blockWater uint16 = 4
	blockIce   uint16 = 5
)

func testRegistry(t testing.TB) *registry.Registry {
	t.Helper()
	r := registry.New()
	materials := []registry.MaterialDefinition{
		{Name: "stone", Color: mgl32.Vec3{0.5, 0.5, 0.5}, Alpha: 1},
		{Name: "dirt", Color: mgl32.Vec3{0.4, 0.3, 0.2}, Alpha: 1},
		{Name: "glass", Color: mgl32.Vec3{1, 1, 1}, Alpha: 1, Texture: "glass.png", TextureAlpha: true},
		{Name: "water", Color: mgl32.Vec3{0.2, 0.4, 0.8}, Alpha: 0.6},
		{Name: "ice", Color: mgl32.Vec3{0.8, 0.9, 1}, Alpha: 0.5},
	}
	for _, m := range materials {
		if _, err := r.RegisterMaterial(m); err != nil {
			t.Fatalf("register material %s: %v", m.Name, err)
		}
	}
	blocks := []registry.BlockDefinition{
		{ID: blockStone, Name: "stone", Solid: true, Opaque: true, Materials: []string{"stone"}},
		{ID: blockDirt, Name: "dirt", Solid: true, Opaque: true, Materials: []string{"dirt"}},
		{ID: blockGlass, Name: "glass", Solid: true, Materials: []string{"glass"}},
		{ID: blockWater, Name: "water", Materials: []string{"water"}},
		{ID: blockIce, Name: "ice", Materials: []string{"ice"}},
	}
	for _, b := range blocks {
		if err := r.RegisterBlock(b); err != nil {
			t.Fatalf("register block %s: %v", b.Name, err)
		}
	}
	return r
}

func noAOParams() Params {
	p := DefaultParams()
	p.UseAO = false
	return p
}

// flatAOParams enables AO without exposed-edge detection.
func flatAOParams() Params {
	p := DefaultParams()
	p.ReverseAOMultiplier = p.AOMultipliers[0]
	return p
}

func filledChunk(coord world.ChunkCoord, size int, id uint16) *world.Chunk {
	c := world.NewChunk(coord, size)
	c.Fill(id)
	return c
}

// uniformNeighborhood surrounds c with chunks filled with id.
func uniformNeighborhood(c *world.Chunk, id uint16) *world.Neighborhood {
	var n world.Neighborhood
	for dx := -1; dx <= 1; dx++ {
		for dy := -1; dy <= 1; dy++ {
			for dz := -1; dz <= 1; dz++ {
				if dx == 0 && dy == 0 && dz == 0 {
					n.SetNeighbor(0, 0, 0, c)
					continue
				}
				n.SetNeighbor(dx, dy, dz, filledChunk(c.Coord.Add(dx, dy, dz), c.Size(), id))
			}
		}
	}
	return &n
}

// quadCorners returns the world-space min and max corner of every quad.
func quadCorners(s *Surface) [][2]mgl32.Vec3 {
	var out [][2]mgl32.Vec3
	for q := 0; q < s.VertexCount()/4; q++ {
		p := s.Positions[q*12:]
		a := mgl32.Vec3{p[0], p[1], p[2]}.Add(s.Origin)
		b := mgl32.Vec3{p[6], p[7], p[8]}.Add(s.Origin)
		lo := mgl32.Vec3{min(a[0], b[0]), min(a[1], b[1]), min(a[2], b[2])}
		hi := mgl32.Vec3{max(a[0], b[0]), max(a[1], b[1]), max(a[2], b[2])}
		out = append(out, [2]mgl32.Vec3{lo, hi})
	}
	return out
}

// checkIndices verifies every index of every range points into that range.
func checkIndices(t *testing.T, s *Surface) {
	t.Helper()
	for _, r := range s.Ranges() {
		for _, idx := range s.Indices[r.IndexStart : r.IndexStart+r.IndexCount] {
			if int(idx) < r.VertexStart || int(idx) >= r.VertexStart+r.VertexCount {
				t.Fatalf("material %d: index %d outside vertices [%d,%d)", r.MaterialID, idx, r.VertexStart, r.VertexStart+r.VertexCount)
			}
		}
	}
}
