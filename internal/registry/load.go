package registry

import (
	"fmt"
	"os"

	"github.com/go-gl/mathgl/mgl32"
	"gopkg.in/yaml.v3"
)

// paletteFile is the YAML layout of a palette:
//
//	materials:
//	  - name: stone
//	    color: [0.5, 0.5, 0.5]
//	blocks:
//	  - id: 1
//	    name: stone
//	    solid: true
//	    opaque: true
//	    materials: [stone]
type paletteFile struct {
	Materials []materialEntry `yaml:"materials"`
	Blocks    []blockEntry    `yaml:"blocks"`
}

type materialEntry struct {
	Name             string     `yaml:"name"`
	Color            [3]float32 `yaml:"color"`
	Alpha            *float32   `yaml:"alpha"`
	Texture          string     `yaml:"texture"`
	TextureAlpha     bool       `yaml:"texture_alpha"`
	CustomAppearance string     `yaml:"custom_appearance"`
}

type blockEntry struct {
	ID        uint16   `yaml:"id"`
	Name      string   `yaml:"name"`
	Solid     bool     `yaml:"solid"`
	Opaque    bool     `yaml:"opaque"`
	Materials []string `yaml:"materials"`
}

// LoadFile reads a YAML palette into a new registry.
func LoadFile(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read palette file: %w", err)
	}
	r, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("palette %s: %w", path, err)
	}
	return r, nil
}

// Parse builds a registry from YAML palette data.
func Parse(data []byte) (*Registry, error) {
	var pf paletteFile
	if err := yaml.Unmarshal(data, &pf); err != nil {
		return nil, fmt.Errorf("failed to parse palette: %w", err)
	}

	r := New()
	for _, m := range pf.Materials {
		alpha := float32(1)
		if m.Alpha != nil {
			alpha = *m.Alpha
		}
		_, err := r.RegisterMaterial(MaterialDefinition{
			Name:             m.Name,
			Color:            mgl32.Vec3(m.Color),
			Alpha:            alpha,
			Texture:          m.Texture,
			TextureAlpha:     m.TextureAlpha,
			CustomAppearance: m.CustomAppearance,
		})
		if err != nil {
			return nil, err
		}
	}
	for _, b := range pf.Blocks {
		err := r.RegisterBlock(BlockDefinition{
			ID:        b.ID,
			Name:      b.Name,
			Solid:     b.Solid,
			Opaque:    b.Opaque,
			Materials: b.Materials,
		})
		if err != nil {
			return nil, err
		}
	}
	return r, nil
}
