package world

// NeighborSource gives access to the chunks surrounding a chunk.
// Offsets are in {-1,0,1} on each axis; (0,0,0) is the chunk itself.
// A nil result means the neighbor is absent and reads as air.
type NeighborSource interface {
	Neighbor(dx, dy, dz int) *Chunk
}

// Neighborhood is a fixed 3x3x3 block of chunks centered on one chunk.
type Neighborhood [27]*Chunk

func neighborIndex(dx, dy, dz int) int {
	return (dx+1)*9 + (dy+1)*3 + (dz + 1)
}

// Neighbor implements NeighborSource.
func (n *Neighborhood) Neighbor(dx, dy, dz int) *Chunk {
	if n == nil || dx < -1 || dx > 1 || dy < -1 || dy > 1 || dz < -1 || dz > 1 {
		return nil
	}
	return n[neighborIndex(dx, dy, dz)]
}

// SetNeighbor stores c at the given offset.
func (n *Neighborhood) SetNeighbor(dx, dy, dz int, c *Chunk) {
	n[neighborIndex(dx, dy, dz)] = c
}

// Center returns the chunk at offset (0,0,0).
func (n *Neighborhood) Center() *Chunk {
	return n[neighborIndex(0, 0, 0)]
}
