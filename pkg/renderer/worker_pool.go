package renderer

import (
	"context"
	"fmt"
	"runtime/debug"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/juli-99/raytracing.github.io/pkg/core"
)

// WorkerError reports a worker that failed or panicked. The framebuffer is
// incomplete whenever one is returned.
type WorkerError struct {
	Worker int
	Rows   RowRange
	Err    error
}

func (e *WorkerError) Error() string {
	return fmt.Sprintf("worker %d (rows %v): %v", e.Worker, e.Rows, e.Err)
}

func (e *WorkerError) Unwrap() error {
	return e.Err
}

// Worker renders one fixed block of rows with its own sampler
type Worker struct {
	ID        int
	Rows      RowRange
	raytracer *Raytracer
	sampler   core.Sampler
}

// WorkerPool runs one worker per row block and waits for all of them
type WorkerPool struct {
	workers []*Worker
	logger  core.Logger
}

// NewWorkerPool partitions the image rows over numWorkers workers.
// Worker i samples from a source seeded with seed+i.
func NewWorkerPool(raytracer *Raytracer, numWorkers int, seed int64) (*WorkerPool, error) {
	ranges, err := PartitionRows(raytracer.height, numWorkers)
	if err != nil {
		return nil, err
	}

	wp := &WorkerPool{logger: raytracer.logger}
	for i, rows := range ranges {
		wp.workers = append(wp.workers, &Worker{
			ID:        i,
			Rows:      rows,
			raytracer: raytracer,
			sampler:   raytracer.newSampler(seed + int64(i)),
		})
	}

	return wp, nil
}

// GetNumWorkers returns the number of workers in the pool
func (wp *WorkerPool) GetNumWorkers() int {
	return len(wp.workers)
}

// Run renders every worker's rows into fb and blocks until all have returned.
// The first failure cancels the remaining workers at their next row.
func (wp *WorkerPool) Run(ctx context.Context, fb *Framebuffer) ([]WorkerStats, error) {
	stats := make([]WorkerStats, len(wp.workers))
	g, ctx := errgroup.WithContext(ctx)

	for _, worker := range wp.workers {
		worker := worker
		g.Go(func() error {
			// Each worker writes only its own stats slot
			s, err := worker.run(ctx, fb)
			stats[worker.ID] = s
			if err != nil {
				return &WorkerError{Worker: worker.ID, Rows: worker.Rows, Err: err}
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	// Workers never touch the logger; report from this goroutine only
	for _, s := range stats {
		wp.logger.Printf("Worker %d finished rows %v in %v\n", s.ID, s.Rows, s.Duration)
	}
	return stats, nil
}

// run renders the worker's rows, converting a panic into an error
func (w *Worker) run(ctx context.Context, fb *Framebuffer) (stats WorkerStats, err error) {
	stats = WorkerStats{ID: w.ID, Rows: w.Rows}
	start := time.Now()

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v\n%s", r, debug.Stack())
		}
		stats.Duration = time.Since(start)
	}()

	rows, err := w.raytracer.RenderRows(ctx, w.Rows, fb, w.sampler)
	stats.Pixels = rows * fb.Width
	stats.Samples = stats.Pixels * w.raytracer.config.SamplesPerPixel
	return stats, err
}
