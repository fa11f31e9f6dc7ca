package world

import "fmt"

// Air is the voxel ID of an empty cell.
const Air uint16 = 0

// DefaultChunkSize is the side length used when no configuration overrides it.
const DefaultChunkSize = 32

// ChunkCoord identifies a chunk by its position in chunk units.
type ChunkCoord struct {
	X, Y, Z int
}

// Add returns the coordinate offset by (dx, dy, dz) chunks.
func (c ChunkCoord) Add(dx, dy, dz int) ChunkCoord {
	return ChunkCoord{X: c.X + dx, Y: c.Y + dy, Z: c.Z + dz}
}

func (c ChunkCoord) String() string {
	return fmt.Sprintf("(%d,%d,%d)", c.X, c.Y, c.Z)
}

// Chunk is a cubic grid of voxel IDs with side length Size().
// Voxels are stored flat at index x*S*S + y*S + z.
type Chunk struct {
	Coord  ChunkCoord
	size   int
	voxels []uint16
	nonAir int
	dirty  bool
}

// NewChunk creates an all-air chunk of the given side length.
// A non-positive size is a programming error and panics.
func NewChunk(coord ChunkCoord, size int) *Chunk {
	if size <= 0 {
		panic(fmt.Sprintf("world: invalid chunk size %d", size))
	}
	return &Chunk{
		Coord:  coord,
		size:   size,
		voxels: make([]uint16, size*size*size),
		dirty:  true,
	}
}

// NewChunkFromVoxels wraps existing voxel data. The slice is owned by the chunk afterwards.
func NewChunkFromVoxels(coord ChunkCoord, size int, voxels []uint16) (*Chunk, error) {
	if size <= 0 {
		return nil, fmt.Errorf("invalid chunk size %d", size)
	}
	if len(voxels) != size*size*size {
		return nil, fmt.Errorf("chunk %v: got %d voxels, want %d", coord, len(voxels), size*size*size)
	}
	c := &Chunk{Coord: coord, size: size, voxels: voxels, dirty: true}
	for _, id := range voxels {
		if id != Air {
			c.nonAir++
		}
	}
	return c, nil
}

// Size returns the side length of the chunk.
func (c *Chunk) Size() int { return c.size }

// Voxels exposes the raw voxel data. Callers must treat it as read-only.
func (c *Chunk) Voxels() []uint16 { return c.voxels }

func (c *Chunk) index(x, y, z int) int {
	return x*c.size*c.size + y*c.size + z
}

func (c *Chunk) inBounds(x, y, z int) bool {
	return x >= 0 && x < c.size && y >= 0 && y < c.size && z >= 0 && z < c.size
}

// Get returns the voxel at local coordinates, or Air when out of bounds.
func (c *Chunk) Get(x, y, z int) uint16 {
	if !c.inBounds(x, y, z) {
		return Air
	}
	return c.voxels[c.index(x, y, z)]
}

// Set writes a voxel at local coordinates. Out of bounds writes are ignored.
func (c *Chunk) Set(x, y, z int, id uint16) {
	if !c.inBounds(x, y, z) {
		return
	}
	idx := c.index(x, y, z)
	old := c.voxels[idx]
	if old == id {
		return
	}
	switch {
	case old == Air:
		c.nonAir++
	case id == Air:
		c.nonAir--
	}
	c.voxels[idx] = id
	c.dirty = true
}

// Fill sets every voxel to id.
func (c *Chunk) Fill(id uint16) {
	for i := range c.voxels {
		c.voxels[i] = id
	}
	if id == Air {
		c.nonAir = 0
	} else {
		c.nonAir = len(c.voxels)
	}
	c.dirty = true
}

// IsEmpty reports whether every voxel is air.
func (c *Chunk) IsEmpty() bool {
	return c.nonAir == 0
}

// IsFull reports whether every voxel holds the same non-air ID.
func (c *Chunk) IsFull() bool {
	if c.nonAir != len(c.voxels) {
		return false
	}
	first := c.voxels[0]
	for _, id := range c.voxels[1:] {
		if id != first {
			return false
		}
	}
	return true
}

// IsDirty returns whether the chunk has been modified since it was last meshed.
func (c *Chunk) IsDirty() bool {
	return c.dirty
}

// MarkDirty flags the chunk for remeshing.
func (c *Chunk) MarkDirty() {
	c.dirty = true
}

// SetClean marks the chunk as meshed.
func (c *Chunk) SetClean() {
	c.dirty = false
}
