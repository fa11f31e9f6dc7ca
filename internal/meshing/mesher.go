package meshing

import (
	"github.com/elliotchance/orderedmap/v2"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"voxmesh/internal/logger"
	"voxmesh/internal/profiling"
	"voxmesh/internal/registry"
	"voxmesh/internal/world"
)

// Materials is the part of the block registry the mesher reads.
type Materials interface {
	SolidityLookup() []bool
	OpacityLookup() []bool
	BlockFaceMaterial(id uint16, dir int) int
	MaterialColor(id int) mgl32.Vec3
	MaterialData(id int) registry.MaterialData
	Version() uint64
}

// MaterialFunc maps a voxel ID and face direction (registry.FacePosX..FaceNegZ)
// to a material ID. 0 means the face is not drawn. IDs must fit in an int16.
type MaterialFunc func(id uint16, dir int) int

// ColorFunc returns the base vertex color of a material.
type ColorFunc func(matID int) mgl32.Vec3

// Params controls a single MeshChunk call.
type Params struct {
	MaterialFn      MaterialFunc // nil uses Materials.BlockFaceMaterial
	ColorFn         ColorFunc    // nil uses Materials.MaterialColor
	IgnoreMaterials bool         // bind everything to the flat appearance
	UseAO           bool
	// AOMultipliers scale the base color for occlusion levels 1, 2 and 3.
	AOMultipliers [3]float32
	// ReverseAOMultiplier scales exposed convex edges (level 0). When it
	// equals AOMultipliers[0] edge detection is skipped.
	ReverseAOMultiplier float32
	// FullSweep disables the edges-only path for empty or uniform chunks.
	FullSweep bool
}

// DefaultParams returns AO-enabled parameters with the stock multipliers.
func DefaultParams() Params {
	return Params{
		UseAO:               true,
		AOMultipliers:       [3]float32{0.93, 0.8, 0.5},
		ReverseAOMultiplier: 1.0,
	}
}

// TerrainMesher turns chunks into surfaces. It owns scratch buffers that are
// reused between calls, so a TerrainMesher must only be used by one goroutine.
type TerrainMesher struct {
	mats   Materials
	cache  *AppearanceCache
	grid   paddedGrid
	mask   []int16
	aomask []uint16
	slices []int
	timer  *profiling.StageTimer
}

// NewTerrainMesher creates a mesher. A nil cache gets a private one; pass a
// shared cache when several meshers serve the same registry.
func NewTerrainMesher(mats Materials, cache *AppearanceCache) *TerrainMesher {
	if cache == nil {
		cache = NewAppearanceCache(mats)
	}
	return &TerrainMesher{mats: mats, cache: cache}
}

// SetProfileEvery enables per-stage timing, logged every n calls. 0 disables it.
func (m *TerrainMesher) SetProfileEvery(n int) {
	if n <= 0 {
		m.timer = nil
		return
	}
	m.timer = profiling.NewStageTimer("terrain meshing", n, func(name string, runs int, report string) {
		logger.Info("mesher profile",
			zap.String("name", name),
			zap.Int("runs", runs),
			zap.String("stages", report))
	})
}

// sweep carries what the per-slice loops need for one MeshChunk call.
type sweep struct {
	view     axisView
	d, u, v  int
	size     int
	solid    []bool
	opaque   []bool
	material MaterialFunc
	color    ColorFunc
	pack     aoPacker // nil without AO
	same     maskCompare
	colors   colorPusher
	buckets  *orderedmap.OrderedMap[int, *Submesh]
}

// MeshChunk meshes c using the neighbors from nb. It returns nil when the
// chunk produces no faces. A nil chunk or one whose voxel data does not
// match its size panics.
func (m *TerrainMesher) MeshChunk(c *world.Chunk, nb world.NeighborSource, p Params) *Surface {
	defer profiling.Track("meshing.MeshChunk")()
	m.timer.Start()
	defer m.timer.End()

	m.grid.assemble(c, nb)
	m.timer.Mark("copy")

	sw := m.newSweep(p)
	edgesOnly := !p.FullSweep && (c.IsEmpty() || c.IsFull())
	s := c.Size()
	if n := s * s; len(m.mask) < n {
		m.mask = make([]int16, n)
		m.aomask = make([]uint16, n)
	}

	for d := 0; d < 3; d++ {
		sw.d, sw.u, sw.v = d, (d+1)%3, (d+2)%3
		sw.view = m.grid.view(d)
		m.slices = sliceIndices(m.slices[:0], s, edgesOnly, m.grid.owned[d])
		for _, i := range m.slices {
			found := m.buildMasks(sw, i)
			m.timer.Mark("masks")
			if found {
				m.mergeSlice(sw, i)
			}
			m.timer.Mark("submeshes")
		}
	}

	if sw.buckets.Len() == 0 {
		return nil
	}
	buckets := make([]*Submesh, 0, sw.buckets.Len())
	for el := sw.buckets.Front(); el != nil; el = el.Next() {
		buckets = append(buckets, el.Value)
	}
	surf := buildSurface(c, buckets, p.IgnoreMaterials, m.mats, m.cache)
	m.timer.Mark("terrain")

	logger.Debug("meshed chunk",
		zap.Stringer("chunk", c.Coord),
		zap.Int("quads", surf.QuadCount()),
		zap.Int("submeshes", len(surf.SubMeshes)),
		zap.Bool("edgesOnly", edgesOnly))
	return surf
}

func (m *TerrainMesher) newSweep(p Params) *sweep {
	sw := &sweep{
		size:     m.grid.size,
		solid:    m.mats.SolidityLookup(),
		opaque:   m.mats.OpacityLookup(),
		material: p.MaterialFn,
		color:    p.ColorFn,
		buckets:  orderedmap.NewOrderedMap[int, *Submesh](),
	}
	if sw.material == nil {
		sw.material = m.mats.BlockFaceMaterial
	}
	if sw.color == nil {
		sw.color = m.mats.MaterialColor
	}
	if p.UseAO {
		sw.pack = packAOWithReverse
		if p.ReverseAOMultiplier == p.AOMultipliers[0] {
			sw.pack = packAONoReverse
		}
		sw.same = sameMaskAndAO
		sw.colors = aoColorPusher(p.AOMultipliers, p.ReverseAOMultiplier)
	} else {
		sw.same = sameMask
		sw.colors = pushFlatColors
	}
	return sw
}

// sliceIndices lists the slices to sweep along one axis. Slice i compares
// cells i-1 and i; slice s is the +d boundary and is only meshed here when
// the chunk owns it.
func sliceIndices(dst []int, s int, edgesOnly, ownsBoundary bool) []int {
	if edgesOnly {
		dst = append(dst, 0)
		if s > 1 {
			dst = append(dst, s-1)
		}
	} else {
		for i := 0; i < s; i++ {
			dst = append(dst, i)
		}
	}
	if ownsBoundary {
		dst = append(dst, s)
	}
	return dst
}
