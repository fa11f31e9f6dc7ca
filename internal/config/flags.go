package config

import "flag"

// Flags are command-line overrides applied on top of the config file.
type Flags struct {
	Config      string
	debug       bool
	noAO        bool
	ignoreMats  bool
	chunkSize   int
	workers     int
	seed        int64
	radius      int
	preview     string
	statsView   string
	profileEach int
}

// RegisterFlags defines the override flags on fs.
func RegisterFlags(fs *flag.FlagSet) *Flags {
	f := &Flags{}
	fs.StringVar(&f.Config, "config", "", "Path to config file")
	fs.BoolVar(&f.debug, "debug", false, "Enable debug logging")
	fs.BoolVar(&f.noAO, "no-ao", false, "Disable ambient occlusion")
	fs.BoolVar(&f.ignoreMats, "ignore-materials", false, "Render every chunk with the flat material")
	fs.IntVar(&f.chunkSize, "chunk-size", 0, "Chunk side length")
	fs.IntVar(&f.workers, "workers", 0, "Meshing worker count")
	fs.Int64Var(&f.seed, "seed", 0, "Terrain seed")
	fs.IntVar(&f.radius, "radius", -1, "Generated radius in chunks")
	fs.StringVar(&f.preview, "preview", "", "Write a PNG preview of the origin chunk to this path")
	fs.StringVar(&f.statsView, "statsview", "", "Serve runtime stats on this address")
	fs.IntVar(&f.profileEach, "profile-every", -1, "Log meshing stage timings every N chunks")
	return f
}

// apply applies CLI flag overrides to the config.
func (f *Flags) apply(cfg *Config) {
	if f.debug {
		cfg.Logging.Level = "debug"
	}
	if f.noAO {
		cfg.Mesher.UseAO = false
	}
	if f.ignoreMats {
		cfg.Mesher.IgnoreMaterials = true
	}
	if f.chunkSize > 0 {
		cfg.Mesher.ChunkSize = f.chunkSize
	}
	if f.workers > 0 {
		cfg.Mesher.Workers = f.workers
	}
	if f.seed != 0 {
		cfg.World.Seed = f.seed
	}
	if f.radius >= 0 {
		cfg.World.Radius = f.radius
	}
	if f.preview != "" {
		cfg.Debug.PreviewPath = f.preview
	}
	if f.statsView != "" {
		cfg.Debug.StatsViewAddr = f.statsView
	}
	if f.profileEach >= 0 {
		cfg.Mesher.ProfileEvery = f.profileEach
	}
}
