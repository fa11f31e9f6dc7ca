// Command meshchunk generates a patch of terrain, meshes every chunk on a
// worker pool and writes a PNG preview of the chunk column at the origin.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/go-echarts/statsview"
	"github.com/go-echarts/statsview/viewer"
	"go.uber.org/zap"

	"voxmesh/internal/config"
	"voxmesh/internal/logger"
	"voxmesh/internal/meshing"
	"voxmesh/internal/preview"
	"voxmesh/internal/profiling"
	"voxmesh/internal/registry"
	"voxmesh/internal/world"
)

func main() {
	flags := config.RegisterFlags(flag.CommandLine)
	flag.Parse()

	cfg, err := config.Load(flags.Config, flags)
	if err != nil {
		fmt.Fprintf(os.Stderr, "meshchunk: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "meshchunk: init logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if cfg.Debug.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{Dsn: cfg.Debug.SentryDSN}); err != nil {
			logger.Warn("sentry disabled", zap.Error(err))
		} else {
			defer sentry.Flush(2 * time.Second)
		}
	}

	if cfg.Debug.StatsViewAddr != "" {
		// set configurations before calling `statsview.New()` method
		viewer.SetConfiguration(viewer.WithAddr(cfg.Debug.StatsViewAddr))
		mgr := statsview.New()
		go mgr.Start()
		defer mgr.Stop()
		logger.Info("stats viewer listening", zap.String("addr", cfg.Debug.StatsViewAddr))
	}

	if err := run(cfg); err != nil {
		logger.Error("meshchunk failed", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
}

func loadRegistry(path string) (*registry.Registry, error) {
	if path == "" {
		return registry.Default(), nil
	}
	return registry.LoadFile(path)
}

func run(cfg *config.Config) error {
	reg, err := loadRegistry(cfg.World.Palette)
	if err != nil {
		return err
	}

	store := world.NewChunkStore(cfg.Mesher.ChunkSize)
	gen := world.NewGenerator(cfg.World.Seed, reg.GeneratorPalette())
	gen.Caves = cfg.World.Caves

	start := time.Now()
	created := gen.Populate(store, 0, 0, cfg.World.Radius, cfg.World.MinChunkY, cfg.World.MaxChunkY)
	logger.Info("terrain generated",
		zap.Int("chunks", created),
		zap.Int64("seed", cfg.World.Seed),
		zap.Duration("took", time.Since(start)))

	params := meshing.DefaultParams()
	params.UseAO = cfg.Mesher.UseAO
	params.AOMultipliers = cfg.Mesher.AOMultipliers
	params.ReverseAOMultiplier = cfg.Mesher.ReverseAOMultiplier
	params.IgnoreMaterials = cfg.Mesher.IgnoreMaterials

	pool := meshing.NewWorkerPool(reg, cfg.Mesher.Workers, cfg.Mesher.QueueSize, cfg.Mesher.ProfileEvery)
	defer pool.Shutdown()

	dirty := store.DirtyChunks()
	results := make(chan meshing.MeshResult, len(dirty))
	go func() {
		for _, c := range dirty {
			pool.SubmitJobBlocking(meshing.MeshJob{
				Chunk:      c,
				Neighbors:  store.Neighborhood(c.Coord),
				Params:     params,
				ResultChan: results,
			})
		}
	}()

	start = time.Now()
	surfaces := make(map[world.ChunkCoord]*meshing.Surface, len(dirty))
	quads, failed := 0, 0
	for range dirty {
		r := <-results
		if r.Error != nil {
			failed++
			logger.Error("mesh job failed", zap.Stringer("chunk", r.Coord), zap.Error(r.Error))
			continue
		}
		store.GetChunk(r.Coord, false).SetClean()
		if r.Surface != nil {
			surfaces[r.Coord] = r.Surface
			quads += r.Surface.QuadCount()
		}
	}
	logger.Info("chunks meshed",
		zap.Int("chunks", len(dirty)),
		zap.Int("surfaces", len(surfaces)),
		zap.Int("quads", quads),
		zap.Int("failed", failed),
		zap.Int("appearances", pool.Appearances().Len()),
		zap.Duration("took", time.Since(start)),
		zap.String("top", profiling.TopN(5)))

	if cfg.Debug.PreviewPath == "" {
		return nil
	}
	var column []*meshing.Surface
	columnQuads := 0
	for y := cfg.World.MinChunkY; y <= cfg.World.MaxChunkY; y++ {
		if s := surfaces[world.ChunkCoord{Y: y}]; s != nil {
			column = append(column, s)
			columnQuads += s.QuadCount()
		}
	}
	opt := preview.DefaultOptions(cfg.Debug.PreviewSize)
	opt.Caption = fmt.Sprintf("seed %d  chunk (0,*,0)  %d quads", cfg.World.Seed, columnQuads)
	if err := preview.WritePNG(cfg.Debug.PreviewPath, preview.Render(column, opt)); err != nil {
		return err
	}
	logger.Info("preview written", zap.String("path", cfg.Debug.PreviewPath), zap.Int("surfaces", len(column)))
	return nil
}
