package renderer

import (
	"context"
	"encoding/binary"
	"fmt"
	"runtime"

	"github.com/cespare/xxhash/v2"
	"golang.org/x/sync/errgroup"

	"github.com/df07/go-frame-tracer/pkg/raster"
)

// SampleTask is one full-frame pass of a render
type SampleTask struct {
	Index int   // Position in the fold order
	Seed  int64 // Seed for this pass's generator
}

// SampleFunc renders a single task
type SampleFunc func(ctx context.Context, task SampleTask) (*raster.Image, error)

// WorkerPool runs sample tasks with bounded concurrency
type WorkerPool struct {
	numWorkers int
}

// NewWorkerPool creates a pool running at most numWorkers tasks at once
func NewWorkerPool(numWorkers int) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	return &WorkerPool{numWorkers: numWorkers}
}

// NumWorkers returns the concurrency limit
func (wp *WorkerPool) NumWorkers() int {
	return wp.numWorkers
}

// Run executes every task and returns the results indexed by task.Index once
// all of them have finished. The first error cancels tasks that have not yet
// started; cancellation of ctx is reported as ctx.Err().
func (wp *WorkerPool) Run(ctx context.Context, tasks []SampleTask, fn SampleFunc) ([]*raster.Image, error) {
	for _, task := range tasks {
		if task.Index < 0 || task.Index >= len(tasks) {
			return nil, fmt.Errorf("task index %d out of range [0, %d)", task.Index, len(tasks))
		}
	}
	results := make([]*raster.Image, len(tasks))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(wp.numWorkers)

	for _, task := range tasks {
		if gctx.Err() != nil {
			break
		}

		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			img, err := fn(gctx, task)
			if err != nil {
				return fmt.Errorf("sample %d: %w", task.Index, err)
			}
			results[task.Index] = img
			return nil
		})
	}

	err := g.Wait()
	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, ctxErr
	}
	if err != nil {
		return nil, err
	}
	return results, nil
}

// sampleSeed derives the seed of pass index from the base seed
func sampleSeed(base int64, index int) int64 {
	var buf [16]byte
	binary.LittleEndian.PutUint64(buf[:8], uint64(base))
	binary.LittleEndian.PutUint64(buf[8:], uint64(index))
	return int64(xxhash.Sum64(buf[:]))
}
