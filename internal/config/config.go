// Package config handles mesher configuration loading and management.
package config

import (
	"fmt"

	"github.com/chewxy/math32"
)

// Config holds all settings of the mesher and its demo tooling.
type Config struct {
	Mesher  MesherConfig  `yaml:"mesher"`
	World   WorldConfig   `yaml:"world"`
	Logging LoggingConfig `yaml:"logging"`
	Debug   DebugConfig   `yaml:"debug"`
}

// MesherConfig holds terrain meshing defaults.
type MesherConfig struct {
	ChunkSize           int        `yaml:"chunk_size"`
	UseAO               bool       `yaml:"use_ao"`
	AOMultipliers       [3]float32 `yaml:"ao_multipliers"`        // least to most occluded
	ReverseAOMultiplier float32    `yaml:"reverse_ao_multiplier"` // exposed convex edges
	IgnoreMaterials     bool       `yaml:"ignore_materials"`
	Workers             int        `yaml:"workers"`
	QueueSize           int        `yaml:"queue_size"`
	ProfileEvery        int        `yaml:"profile_every"` // 0 disables stage profiling
}

// WorldConfig drives the demo terrain generator.
type WorldConfig struct {
	Seed      int64  `yaml:"seed"`
	Radius    int    `yaml:"radius"` // in chunks, around the origin
	MinChunkY int    `yaml:"min_chunk_y"`
	MaxChunkY int    `yaml:"max_chunk_y"`
	Caves     bool   `yaml:"caves"`
	Palette   string `yaml:"palette"` // optional YAML palette file; empty uses built-in materials
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// DebugConfig holds developer tooling settings.
type DebugConfig struct {
	PreviewPath   string `yaml:"preview_path"`
	PreviewSize   int    `yaml:"preview_size"`
	StatsViewAddr string `yaml:"statsview_addr"` // empty disables the stats viewer
	SentryDSN     string `yaml:"sentry_dsn"`
}

const (
	MinChunkSize = 1
	MaxChunkSize = 64
)

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Mesher: MesherConfig{
			ChunkSize:           32,
			UseAO:               true,
			AOMultipliers:       [3]float32{0.93, 0.8, 0.5},
			ReverseAOMultiplier: 1.0,
			IgnoreMaterials:     false,
			Workers:             4,
			QueueSize:           64,
			ProfileEvery:        0,
		},
		World: WorldConfig{
			Seed:      1337,
			Radius:    2,
			MinChunkY: 0,
			MaxChunkY: 1,
			Caves:     true,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
		Debug: DebugConfig{
			PreviewPath: "chunk.png",
			PreviewSize: 512,
		},
	}
}

// Validate clamps values into their supported ranges and rejects settings
// that cannot be repaired.
func (c *Config) Validate() error {
	m := &c.Mesher
	if m.ChunkSize < MinChunkSize || m.ChunkSize > MaxChunkSize {
		return fmt.Errorf("mesher.chunk_size %d out of range [%d,%d]", m.ChunkSize, MinChunkSize, MaxChunkSize)
	}
	for i, v := range m.AOMultipliers {
		m.AOMultipliers[i] = clamp01(v)
	}
	m.ReverseAOMultiplier = clamp01(m.ReverseAOMultiplier)
	if m.Workers < 1 {
		m.Workers = 1
	}
	if m.QueueSize < 1 {
		m.QueueSize = 1
	}
	if m.ProfileEvery < 0 {
		m.ProfileEvery = 0
	}
	if c.World.Radius < 0 {
		c.World.Radius = 0
	}
	if c.World.MaxChunkY < c.World.MinChunkY {
		return fmt.Errorf("world.max_chunk_y %d below min_chunk_y %d", c.World.MaxChunkY, c.World.MinChunkY)
	}
	if c.Debug.PreviewSize < 16 {
		c.Debug.PreviewSize = 16
	}
	return nil
}

func clamp01(v float32) float32 {
	if math32.IsNaN(v) {
		return 1
	}
	return math32.Max(0, math32.Min(1, v))
}
