package world

import "math"

// Palette names the voxel IDs the generator places.
// A zero entry disables that layer (it becomes air or falls back to Fill).
type Palette struct {
	Surface uint16 // top voxel of each column
	Fill    uint16 // voxels below the surface
	Stone   uint16 // voxels deeper than FillDepth
	Bedrock uint16 // world y == 0
	Water   uint16 // air below SeaLevel
}

// Generator fills chunks from a value-noise heightmap with optional caves.
type Generator struct {
	seed        int64
	scale       float64
	baseHeight  int
	amp         float64
	octaves     int
	persistence float64
	lacunarity  float64

	SeaLevel  int
	FillDepth int
	Caves     bool
	Palette   Palette
}

// NewGenerator creates a generator with default shaping parameters.
func NewGenerator(seed int64, palette Palette) *Generator {
	return &Generator{
		seed:        seed,
		scale:       1.0 / 64.0,
		baseHeight:  24,
		amp:         24,
		octaves:     4,
		persistence: 0.5,
		lacunarity:  2.0,
		SeaLevel:    20,
		FillDepth:   3,
		Caves:       true,
		Palette:     palette,
	}
}

// HeightAt computes the surface height (world Y of the top voxel) at world X,Z.
func (g *Generator) HeightAt(worldX, worldZ int) int {
	x := float64(worldX) * g.scale
	z := float64(worldZ) * g.scale
	n := octaveNoise2D(x, z, g.seed, g.octaves, g.persistence, g.lacunarity)
	height := float64(g.baseHeight) + (n-0.5)*2*g.amp
	if height < 0 {
		height = 0
	}
	return int(math.Floor(height))
}

func (g *Generator) isCave(wx, wy, wz int) bool {
	if !g.Caves || wy <= 1 {
		return false
	}
	const caveScale = 1.0 / 12.0
	n := valueNoise3D(float64(wx)*caveScale, float64(wy)*caveScale, float64(wz)*caveScale, g.seed^0x5DEECE66D)
	return n > 0.72
}

// BlockAt returns the generated voxel at world coordinates.
func (g *Generator) BlockAt(wx, wy, wz int) uint16 {
	if wy < 0 {
		return Air
	}
	if wy == 0 && g.Palette.Bedrock != Air {
		return g.Palette.Bedrock
	}
	height := g.HeightAt(wx, wz)
	if wy > height {
		if wy <= g.SeaLevel {
			return g.Palette.Water
		}
		return Air
	}
	if g.isCave(wx, wy, wz) {
		return Air
	}
	switch {
	case wy == height:
		return g.Palette.Surface
	case wy >= height-g.FillDepth || g.Palette.Stone == Air:
		return g.Palette.Fill
	default:
		return g.Palette.Stone
	}
}

// PopulateChunk fills a chunk from the generator.
func (g *Generator) PopulateChunk(c *Chunk) {
	s := c.Size()
	bx, by, bz := c.Coord.X*s, c.Coord.Y*s, c.Coord.Z*s
	for lx := range s {
		for lz := range s {
			for ly := range s {
				c.Set(lx, ly, lz, g.BlockAt(bx+lx, by+ly, bz+lz))
			}
		}
	}
	c.MarkDirty()
}

// Populate creates and fills every chunk of the store within the given
// horizontal radius (in chunks) and vertical range [minY, maxY].
func (g *Generator) Populate(cs *ChunkStore, cx, cz, radius, minY, maxY int) int {
	created := 0
	for x := cx - radius; x <= cx+radius; x++ {
		for z := cz - radius; z <= cz+radius; z++ {
			for y := minY; y <= maxY; y++ {
				c := NewChunk(ChunkCoord{X: x, Y: y, Z: z}, cs.ChunkSize())
				g.PopulateChunk(c)
				if cs.AddChunk(c) {
					created++
				}
			}
		}
	}
	return created
}
