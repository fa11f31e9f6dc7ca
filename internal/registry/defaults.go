package registry

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"voxmesh/internal/world"
)

var defaultMaterials = []MaterialDefinition{
	{Name: "dirt", Color: mgl32.Vec3{0.45, 0.36, 0.25}, Alpha: 1},
	{Name: "grass_top", Color: mgl32.Vec3{0.36, 0.62, 0.24}, Alpha: 1},
	{Name: "grass_side", Color: mgl32.Vec3{0.42, 0.47, 0.26}, Alpha: 1},
	{Name: "stone", Color: mgl32.Vec3{0.5, 0.5, 0.52}, Alpha: 1},
	{Name: "sand", Color: mgl32.Vec3{0.86, 0.81, 0.6}, Alpha: 1},
	{Name: "bedrock", Color: mgl32.Vec3{0.2, 0.2, 0.22}, Alpha: 1},
	{Name: "log_top", Color: mgl32.Vec3{0.6, 0.48, 0.3}, Alpha: 1},
	{Name: "log_side", Color: mgl32.Vec3{0.38, 0.29, 0.18}, Alpha: 1},
	{Name: "leaves", Color: mgl32.Vec3{0.24, 0.5, 0.2}, Alpha: 1, Texture: "leaves.png", TextureAlpha: true},
	{Name: "glass", Color: mgl32.Vec3{0.85, 0.92, 0.95}, Alpha: 1, Texture: "glass.png", TextureAlpha: true},
	{Name: "water", Color: mgl32.Vec3{0.2, 0.4, 0.85}, Alpha: 0.6},
}

var defaultBlocks = []BlockDefinition{
	{ID: 1, Name: "dirt", Solid: true, Opaque: true, Materials: []string{"dirt"}},
	{ID: 2, Name: "grass", Solid: true, Opaque: true, Materials: []string{"grass_top", "dirt", "grass_side"}},
	{ID: 3, Name: "stone", Solid: true, Opaque: true, Materials: []string{"stone"}},
	{ID: 4, Name: "sand", Solid: true, Opaque: true, Materials: []string{"sand"}},
	{ID: 5, Name: "bedrock", Solid: true, Opaque: true, Materials: []string{"bedrock"}},
	{ID: 6, Name: "log", Solid: true, Opaque: true, Materials: []string{"log_top", "log_side"}},
	// Leaves and glass occlude light but let neighbors show through.
	{ID: 7, Name: "leaves", Solid: true, Materials: []string{"leaves"}},
	{ID: 8, Name: "glass", Solid: true, Materials: []string{"glass"}},
	{ID: 9, Name: "water", Materials: []string{"water"}},
}

// Default returns a registry with the built-in palette.
func Default() *Registry {
	r := New()
	for _, m := range defaultMaterials {
		if _, err := r.RegisterMaterial(m); err != nil {
			panic(fmt.Sprintf("registry: default palette: %v", err))
		}
	}
	for _, b := range defaultBlocks {
		if err := r.RegisterBlock(b); err != nil {
			panic(fmt.Sprintf("registry: default palette: %v", err))
		}
	}
	return r
}

// GeneratorPalette maps the terrain generator layers onto blocks of r.
// Layers whose block is not registered stay air.
func (r *Registry) GeneratorPalette() world.Palette {
	id := func(name string) uint16 {
		v, _ := r.BlockID(name)
		return v
	}
	return world.Palette{
		Surface: id("grass"),
		Fill:    id("dirt"),
		Stone:   id("stone"),
		Bedrock: id("bedrock"),
		Water:   id("water"),
	}
}
