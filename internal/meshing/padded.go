package meshing

import (
	"fmt"

	"go.uber.org/zap"

	"voxmesh/internal/logger"
	"voxmesh/internal/world"
)

// region is the copy box for one of the 27 neighbor offsets.
type region struct {
	src  [3]int // start in the source chunk
	size [3]int
	dst  [3]int // start in the padded grid
}

// paddedGrid is a (S+2)^3 copy of a chunk with one layer of neighbor data
// around it. Absent neighbors leave their part of the border zeroed.
type paddedGrid struct {
	size    int // S
	side    int // S+2
	data    []uint16
	regions [27]region
	// owned[d] is true when the +d face neighbor is absent, so this chunk
	// emits the faces on its +d boundary itself.
	owned [3]bool
}

func (g *paddedGrid) resize(s int) {
	if s == g.size && g.data != nil {
		return
	}
	g.size = s
	g.side = s + 2
	g.data = make([]uint16, g.side*g.side*g.side)

	srcPos := [3]int{s - 1, 0, 0}
	sizes := [3]int{1, s, 1}
	dstPos := [3]int{0, 1, s + 1}
	for n := range g.regions {
		loc := [3]int{n / 9, n / 3 % 3, n % 3}
		r := &g.regions[n]
		for c := 0; c < 3; c++ {
			r.src[c] = srcPos[loc[c]]
			r.size[c] = sizes[loc[c]]
			r.dst[c] = dstPos[loc[c]]
		}
	}
}

// assemble fills the grid from c and its neighbors.
func (g *paddedGrid) assemble(c *world.Chunk, nb world.NeighborSource) {
	validateChunk(c)
	s := c.Size()
	g.resize(s)

	for n := range g.regions {
		dx, dy, dz := n/9-1, n/3%3-1, n%3-1
		src := c
		if n != 13 {
			src = neighbor(c, nb, dx, dy, dz)
		}
		g.copyRegion(&g.regions[n], src)
	}

	g.owned[0] = neighbor(c, nb, 1, 0, 0) == nil
	g.owned[1] = neighbor(c, nb, 0, 1, 0) == nil
	g.owned[2] = neighbor(c, nb, 0, 0, 1) == nil
}

func (g *paddedGrid) copyRegion(r *region, src *world.Chunk) {
	s, p := g.size, g.side
	var voxels []uint16
	if src != nil {
		voxels = src.Voxels()
	}
	for x := 0; x < r.size[0]; x++ {
		for y := 0; y < r.size[1]; y++ {
			di := ((r.dst[0]+x)*p+(r.dst[1]+y))*p + r.dst[2]
			row := g.data[di : di+r.size[2]]
			if voxels == nil {
				clear(row)
				continue
			}
			si := ((r.src[0]+x)*s+(r.src[1]+y))*s + r.src[2]
			copy(row, voxels[si:si+r.size[2]])
		}
	}
}

// neighbor looks up one neighbor, dropping any whose size does not match c.
func neighbor(c *world.Chunk, nb world.NeighborSource, dx, dy, dz int) *world.Chunk {
	if nb == nil {
		return nil
	}
	n := nb.Neighbor(dx, dy, dz)
	if n == nil {
		return nil
	}
	if n.Size() != c.Size() || len(n.Voxels()) != c.Size()*c.Size()*c.Size() {
		logger.Debug("ignoring mismatched neighbor",
			zap.Stringer("chunk", c.Coord),
			zap.Stringer("neighbor", n.Coord),
			zap.Int("size", n.Size()),
			zap.Int("want", c.Size()))
		return nil
	}
	return n
}

func validateChunk(c *world.Chunk) {
	if c == nil {
		panic("meshing: nil chunk")
	}
	s := c.Size()
	if s <= 0 {
		panic(fmt.Sprintf("meshing: chunk %v has invalid size %d", c.Coord, s))
	}
	if len(c.Voxels()) != s*s*s {
		panic(fmt.Sprintf("meshing: chunk %v has %d voxels, want %d", c.Coord, len(c.Voxels()), s*s*s))
	}
}

// axisView reads the padded grid with sweep axis d mapped to i and the two
// transverse axes u=(d+1)%3, v=(d+2)%3 mapped to j and k. Indices run from
// -1 to S inclusive; -1 and S land in the border.
type axisView struct {
	data       []uint16
	base       int
	si, sj, sk int
}

func (g *paddedGrid) view(d int) axisView {
	strides := [3]int{g.side * g.side, g.side, 1}
	u, v := (d+1)%3, (d+2)%3
	return axisView{
		data: g.data,
		base: strides[0] + strides[1] + strides[2],
		si:   strides[d],
		sj:   strides[u],
		sk:   strides[v],
	}
}

func (v *axisView) get(i, j, k int) uint16 {
	return v.data[v.base+i*v.si+j*v.sj+k*v.sk]
}
