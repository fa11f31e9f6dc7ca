package meshing

import (
	"testing"

	"voxmesh/internal/world"
)

func TestPaddedGridBorders(t *testing.T) {
	const s = 3
	c := world.NewChunk(world.ChunkCoord{}, s)
	c.Set(0, 0, 0, 7)
	c.Set(2, 2, 2, 8)

	var n world.Neighborhood
	n.SetNeighbor(1, 0, 0, filledChunk(world.ChunkCoord{X: 1}, s, 11))
	corner := world.NewChunk(world.ChunkCoord{X: -1, Y: -1, Z: -1}, s)
	corner.Set(s-1, s-1, s-1, 12)
	n.SetNeighbor(-1, -1, -1, corner)

	var g paddedGrid
	g.assemble(c, &n)
	at := func(x, y, z int) uint16 {
		return g.data[(x*g.side+y)*g.side+z]
	}

	if g.side != s+2 || len(g.data) != (s+2)*(s+2)*(s+2) {
		t.Fatalf("got side %d with %d cells", g.side, len(g.data))
	}
	if got := at(1, 1, 1); got != 7 {
		t.Fatalf("interior (0,0,0): got %d, want 7", got)
	}
	if got := at(3, 3, 3); got != 8 {
		t.Fatalf("interior (2,2,2): got %d, want 8", got)
	}
	for y := 1; y <= s; y++ {
		for z := 1; z <= s; z++ {
			if got := at(s+1, y, z); got != 11 {
				t.Fatalf("+x face border (%d,%d): got %d, want 11", y, z, got)
			}
			if got := at(0, y, z); got != 0 {
				t.Fatalf("-x face border (%d,%d): got %d, want 0", y, z, got)
			}
		}
	}
	if got := at(0, 0, 0); got != 12 {
		t.Fatalf("corner border: got %d, want 12", got)
	}
	// The +x neighbor only contributes its face, not edges.
	if got := at(s+1, 0, 1); got != 0 {
		t.Fatalf("+x/-y edge: got %d, want 0", got)
	}
	if g.owned != [3]bool{false, true, true} {
		t.Fatalf("got owned %v, want [false true true]", g.owned)
	}

	// Reassembling without neighbors must clear the old border.
	g.assemble(c, nil)
	if at(s+1, 1, 1) != 0 || at(0, 0, 0) != 0 {
		t.Fatal("stale border data after reassembly")
	}
	if g.owned != [3]bool{true, true, true} {
		t.Fatalf("got owned %v, want all true", g.owned)
	}
}

func TestPaddedGridResize(t *testing.T) {
	var g paddedGrid
	g.assemble(world.NewChunk(world.ChunkCoord{}, 4), nil)
	first := &g.data[0]
	g.assemble(world.NewChunk(world.ChunkCoord{}, 4), nil)
	if &g.data[0] != first {
		t.Fatal("grid reallocated for the same size")
	}
	g.assemble(world.NewChunk(world.ChunkCoord{}, 2), nil)
	if g.side != 4 || len(g.data) != 64 {
		t.Fatalf("after resize: got side %d, %d cells", g.side, len(g.data))
	}
	r := g.regions[0] // offset (-1,-1,-1)
	if r.src != [3]int{1, 1, 1} || r.size != [3]int{1, 1, 1} || r.dst != [3]int{0, 0, 0} {
		t.Fatalf("corner region: got %+v", r)
	}
	r = g.regions[13] // the chunk itself
	if r.src != [3]int{0, 0, 0} || r.size != [3]int{2, 2, 2} || r.dst != [3]int{1, 1, 1} {
		t.Fatalf("center region: got %+v", r)
	}
}

func TestAxisView(t *testing.T) {
	const s = 2
	c := world.NewChunk(world.ChunkCoord{}, s)
	c.Set(1, 0, 0, 1) // x
	c.Set(0, 1, 0, 2) // y
	c.Set(0, 0, 1, 3) // z

	var g paddedGrid
	g.assemble(c, nil)
	for d, want := range [3][3]uint16{
		{1, 2, 3}, // i=x, j=y, k=z
		{2, 3, 1}, // i=y, j=z, k=x
		{3, 1, 2}, // i=z, j=x, k=y
	} {
		v := g.view(d)
		got := [3]uint16{v.get(1, 0, 0), v.get(0, 1, 0), v.get(0, 0, 1)}
		if got != want {
			t.Fatalf("axis %d: got %v, want %v", d, got, want)
		}
		if v.get(-1, -1, -1) != 0 || v.get(s, s, s) != 0 {
			t.Fatalf("axis %d: border not readable as air", d)
		}
	}
}
