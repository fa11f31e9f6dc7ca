package world

import (
	"sort"
	"sync"

	"voxmesh/internal/profiling"
)

// ChunkStore manages the storage and retrieval of equally sized chunks.
type ChunkStore struct {
	chunkSize int
	chunks    map[ChunkCoord]*Chunk
	mu        sync.RWMutex
	modCount  uint64 // Increases on any chunk add/remove
}

// NewChunkStore creates a new chunk store holding chunks of side chunkSize.
func NewChunkStore(chunkSize int) *ChunkStore {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	return &ChunkStore{
		chunkSize: chunkSize,
		chunks:    make(map[ChunkCoord]*Chunk),
	}
}

// ChunkSize returns the side length of stored chunks.
func (cs *ChunkStore) ChunkSize() int {
	return cs.chunkSize
}

// GetChunk returns the chunk at the specified chunk coordinates.
// If the chunk doesn't exist and create is true, an all-air chunk is created.
func (cs *ChunkStore) GetChunk(coord ChunkCoord, create bool) *Chunk {
	cs.mu.RLock()
	chunk, exists := cs.chunks[coord]
	cs.mu.RUnlock()
	if exists || !create {
		return chunk
	}

	cs.mu.Lock()
	defer cs.mu.Unlock()
	// Double-check: another goroutine might have created it while we were waiting for the lock
	if existing, ok := cs.chunks[coord]; ok {
		return existing
	}
	chunk = NewChunk(coord, cs.chunkSize)
	cs.chunks[coord] = chunk
	cs.modCount++
	cs.markNeighborsDirtyLocked(coord)
	return chunk
}

// AddChunk adds a pre-populated chunk. Chunks of the wrong size are rejected.
func (cs *ChunkStore) AddChunk(chunk *Chunk) bool {
	if chunk == nil || chunk.Size() != cs.chunkSize {
		return false
	}
	cs.mu.Lock()
	defer cs.mu.Unlock()
	if _, ok := cs.chunks[chunk.Coord]; ok {
		return false
	}
	cs.chunks[chunk.Coord] = chunk
	cs.modCount++
	// Neighbors now have fresh padding data available.
	cs.markNeighborsDirtyLocked(chunk.Coord)
	return true
}

// RemoveChunk drops the chunk at coord, returning whether it existed.
func (cs *ChunkStore) RemoveChunk(coord ChunkCoord) bool {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	if _, ok := cs.chunks[coord]; !ok {
		return false
	}
	delete(cs.chunks, coord)
	cs.modCount++
	cs.markNeighborsDirtyLocked(coord)
	return true
}

// HasChunk checks if a chunk exists without creating it.
func (cs *ChunkStore) HasChunk(coord ChunkCoord) bool {
	cs.mu.RLock()
	_, exists := cs.chunks[coord]
	cs.mu.RUnlock()
	return exists
}

// CoordFromBlock converts world block coordinates to the containing chunk coordinate.
func (cs *ChunkStore) CoordFromBlock(x, y, z int) ChunkCoord {
	return ChunkCoord{
		X: floorDiv(x, cs.chunkSize),
		Y: floorDiv(y, cs.chunkSize),
		Z: floorDiv(z, cs.chunkSize),
	}
}

// Get returns the voxel at world coordinates.
func (cs *ChunkStore) Get(x, y, z int) uint16 {
	chunk := cs.GetChunk(cs.CoordFromBlock(x, y, z), false)
	if chunk == nil {
		return Air
	}
	return chunk.Get(mod(x, cs.chunkSize), mod(y, cs.chunkSize), mod(z, cs.chunkSize))
}

// Set writes the voxel at world coordinates, creating the chunk when needed.
// Neighbor chunks sharing the edited border voxel are marked dirty, including
// edge and corner neighbors since their padding and AO read it too.
func (cs *ChunkStore) Set(x, y, z int, id uint16) {
	coord := cs.CoordFromBlock(x, y, z)
	chunk := cs.GetChunk(coord, true)
	lx, ly, lz := mod(x, cs.chunkSize), mod(y, cs.chunkSize), mod(z, cs.chunkSize)
	chunk.Set(lx, ly, lz, id)

	xs := borderOffsets(lx, cs.chunkSize)
	ys := borderOffsets(ly, cs.chunkSize)
	zs := borderOffsets(lz, cs.chunkSize)
	if len(xs) == 1 && len(ys) == 1 && len(zs) == 1 {
		return
	}

	cs.mu.RLock()
	defer cs.mu.RUnlock()
	for _, dx := range xs {
		for _, dy := range ys {
			for _, dz := range zs {
				if dx == 0 && dy == 0 && dz == 0 {
					continue
				}
				if nb := cs.chunks[coord.Add(dx, dy, dz)]; nb != nil {
					nb.dirty = true
				}
			}
		}
	}
}

// Neighborhood returns the 3x3x3 chunks around coord. Missing chunks are nil.
func (cs *ChunkStore) Neighborhood(coord ChunkCoord) *Neighborhood {
	var n Neighborhood
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	for dx := -1; dx <= 1; dx++ {
		for dy := -1; dy <= 1; dy++ {
			for dz := -1; dz <= 1; dz++ {
				n.SetNeighbor(dx, dy, dz, cs.chunks[coord.Add(dx, dy, dz)])
			}
		}
	}
	return &n
}

// Chunks returns all stored chunks ordered by coordinate (X, then Y, then Z).
func (cs *ChunkStore) Chunks() []*Chunk {
	cs.mu.RLock()
	out := make([]*Chunk, 0, len(cs.chunks))
	for _, c := range cs.chunks {
		out = append(out, c)
	}
	cs.mu.RUnlock()
	sortChunks(out)
	return out
}

// DirtyChunks returns the chunks awaiting a remesh, in coordinate order.
func (cs *ChunkStore) DirtyChunks() []*Chunk {
	defer profiling.Track("world.DirtyChunks")()
	cs.mu.RLock()
	var out []*Chunk
	for _, c := range cs.chunks {
		if c.IsDirty() {
			out = append(out, c)
		}
	}
	cs.mu.RUnlock()
	sortChunks(out)
	return out
}

// GetModCount returns the current modification count of the chunk map.
func (cs *ChunkStore) GetModCount() uint64 {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	return cs.modCount
}

func (cs *ChunkStore) markNeighborsDirtyLocked(coord ChunkCoord) {
	for dx := -1; dx <= 1; dx++ {
		for dy := -1; dy <= 1; dy++ {
			for dz := -1; dz <= 1; dz++ {
				if dx == 0 && dy == 0 && dz == 0 {
					continue
				}
				if nb := cs.chunks[coord.Add(dx, dy, dz)]; nb != nil {
					nb.dirty = true
				}
			}
		}
	}
}

func sortChunks(list []*Chunk) {
	sort.Slice(list, func(i, j int) bool {
		a, b := list[i].Coord, list[j].Coord
		if a.X != b.X {
			return a.X < b.X
		}
		if a.Y != b.Y {
			return a.Y < b.Y
		}
		return a.Z < b.Z
	})
}

// borderOffsets lists the chunk offsets along one axis that can see a voxel at local.
func borderOffsets(local, size int) []int {
	offsets := []int{0}
	if local == 0 {
		offsets = append(offsets, -1)
	}
	if local == size-1 {
		offsets = append(offsets, 1)
	}
	return offsets
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func mod(a, b int) int {
	m := a % b
	if m < 0 {
		m += b
	}
	return m
}
