package meshing

import (
	"strconv"
	"sync"

	"go.uber.org/zap"

	"voxmesh/internal/logger"
	"voxmesh/internal/registry"
)

// Appearance is a renderer-agnostic description of how a surface range is drawn.
// Appearances returned by a cache are shared and must not be modified.
type Appearance struct {
	Name         string
	Flat         bool    // the shared untextured, opaque default
	Texture      string  // texture reference, empty when untextured
	TextureAlpha bool    // texture has its own transparency
	Alpha        float32 // 1 is opaque
	Custom       string  // renderer-side appearance handle, overrides everything else
}

type appearanceSource interface {
	MaterialData(id int) registry.MaterialData
	Version() uint64
}

// AppearanceCache resolves material IDs to appearances, creating each at most
// once per registry version. It is safe for concurrent use.
type AppearanceCache struct {
	src     appearanceSource
	flat    *Appearance
	mu      sync.Mutex
	version uint64
	entries map[int]*Appearance
}

// NewAppearanceCache creates a cache backed by src.
func NewAppearanceCache(src appearanceSource) *AppearanceCache {
	return &AppearanceCache{
		src:     src,
		flat:    &Appearance{Name: "flat", Flat: true, Alpha: 1},
		version: src.Version(),
		entries: make(map[int]*Appearance),
	}
}

// Flat returns the shared default appearance.
func (c *AppearanceCache) Flat() *Appearance {
	return c.flat
}

// Get returns the appearance for matID. With ignoreMaterials every ID
// resolves to the flat appearance.
func (c *AppearanceCache) Get(matID int, ignoreMaterials bool) *Appearance {
	if ignoreMaterials {
		return c.flat
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	if v := c.src.Version(); v != c.version {
		logger.Debug("registry changed, dropping appearances",
			zap.Uint64("from", c.version),
			zap.Uint64("to", v),
			zap.Int("entries", len(c.entries)))
		clear(c.entries)
		c.version = v
	}
	if a, ok := c.entries[matID]; ok {
		return a
	}
	a := c.makeAppearance(matID)
	c.entries[matID] = a
	return a
}

// Len returns the number of cached appearances.
func (c *AppearanceCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func (c *AppearanceCache) makeAppearance(matID int) *Appearance {
	md := c.src.MaterialData(matID)
	if md.CustomAppearance != "" {
		return &Appearance{Name: md.CustomAppearance, Custom: md.CustomAppearance, Alpha: md.Alpha}
	}
	if md.Texture == "" && md.Alpha == 1 {
		return c.flat
	}
	a := *c.flat
	a.Name = "terrain_mat:" + strconv.Itoa(matID)
	a.Flat = false
	if md.Texture != "" {
		a.Texture = md.Texture
		a.TextureAlpha = md.TextureAlpha
	}
	if md.Alpha < 1 {
		a.Alpha = md.Alpha
	}
	return &a
}

// isMergeable reports whether a material can share the flat appearance.
func isMergeable(md registry.MaterialData) bool {
	return md.Texture == "" && md.Alpha == 1 && md.CustomAppearance == ""
}
