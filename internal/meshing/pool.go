package meshing

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/getsentry/sentry-go"
	"go.uber.org/zap"

	"voxmesh/internal/logger"
	"voxmesh/internal/world"
)

// MeshJob represents a meshing job request
type MeshJob struct {
	Chunk     *world.Chunk
	Neighbors world.NeighborSource
	Params    Params
	// Result channel - will be sent the result when done
	ResultChan chan MeshResult
}

// MeshResult contains the result of a meshing operation
type MeshResult struct {
	Coord   world.ChunkCoord
	Surface *Surface // nil when the chunk has no faces
	Error   error
}

// WorkerPool manages goroutines for mesh generation. Every worker owns its
// own TerrainMesher; appearances are shared through one cache.
type WorkerPool struct {
	jobQueue chan MeshJob
	workers  int
	ctx      context.Context
	cancel   context.CancelFunc
	wg       sync.WaitGroup
	cache    *AppearanceCache
}

// NewWorkerPool creates a new mesh worker pool
func NewWorkerPool(mats Materials, workers int, queueSize int, profileEvery int) *WorkerPool {
	ctx, cancel := context.WithCancel(context.Background())
	workers = max(workers, 1)

	pool := &WorkerPool{
		jobQueue: make(chan MeshJob, max(queueSize, 0)),
		workers:  workers,
		ctx:      ctx,
		cancel:   cancel,
		cache:    NewAppearanceCache(mats),
	}

	// Start worker goroutines
	for i := range workers {
		mesher := NewTerrainMesher(mats, pool.cache)
		mesher.SetProfileEvery(profileEvery)
		pool.wg.Add(1)
		go pool.worker(i, mesher)
	}

	logger.Info("mesh worker pool started", zap.Int("workers", workers), zap.Int("queue", queueSize))
	return pool
}

// SubmitJob submits a mesh generation job to the pool
// Returns true if job was submitted successfully, false if queue is full
func (p *WorkerPool) SubmitJob(job MeshJob) bool {
	if p.ctx.Err() != nil {
		return false
	}
	select {
	case p.jobQueue <- job:
		return true
	default:
		return false // Queue is full
	}
}

// SubmitJobBlocking submits a job and blocks until it's queued.
// It returns false if the pool was shut down first.
func (p *WorkerPool) SubmitJobBlocking(job MeshJob) bool {
	if p.ctx.Err() != nil {
		return false
	}
	select {
	case p.jobQueue <- job:
		return true
	case <-p.ctx.Done():
		return false
	}
}

// worker is the worker goroutine that processes mesh jobs
func (p *WorkerPool) worker(id int, mesher *TerrainMesher) {
	defer p.wg.Done()

	for {
		select {
		case job := <-p.jobQueue:
			result := p.run(id, mesher, job)

			// Send result back
			select {
			case job.ResultChan <- result:
			case <-p.ctx.Done():
				return
			}

		case <-p.ctx.Done():
			return
		}
	}
}

// run meshes one job, turning a panic into an error result.
func (p *WorkerPool) run(id int, mesher *TerrainMesher, job MeshJob) (result MeshResult) {
	if job.Chunk != nil {
		result.Coord = job.Chunk.Coord
	}
	defer func() {
		if r := recover(); r != nil {
			result.Surface = nil
			result.Error = fmt.Errorf("meshing chunk %v: %v", result.Coord, r)
			logger.Error("mesh worker recovered from panic",
				zap.Int("worker", id),
				zap.Stringer("chunk", result.Coord),
				zap.Any("panic", r))

			hub := sentry.CurrentHub().Clone()
			hub.ConfigureScope(func(scope *sentry.Scope) {
				scope.SetTag("chunk", result.Coord.String())
				scope.SetTag("worker", fmt.Sprint(id))
			})
			hub.Recover(r)
			hub.Flush(2 * time.Second)
		}
	}()

	result.Surface = mesher.MeshChunk(job.Chunk, job.Neighbors, job.Params)
	return result
}

// Shutdown stops the workers once their current job is done and waits for them.
// Jobs still queued are dropped.
func (p *WorkerPool) Shutdown() {
	p.cancel()
	p.wg.Wait()
	logger.Info("mesh worker pool stopped", zap.Int("dropped", len(p.jobQueue)))
}

// GetQueueLength returns the current number of jobs in the queue
func (p *WorkerPool) GetQueueLength() int {
	return len(p.jobQueue)
}

// Appearances returns the cache shared by the workers.
func (p *WorkerPool) Appearances() *AppearanceCache {
	return p.cache
}
