package renderer

import "time"

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	TotalPixels  int           // Total number of pixels rendered
	TotalSamples int           // Total number of camera samples taken
	Duration     time.Duration // Wall time from first worker start to barrier
	Workers      []WorkerStats // One entry per worker, by worker ID
}

// WorkerStats describes the work done by a single worker
type WorkerStats struct {
	ID       int
	Rows     RowRange
	Pixels   int
	Samples  int
	Duration time.Duration
}

// AverageSamples returns the mean samples per pixel
func (s RenderStats) AverageSamples() float64 {
	if s.TotalPixels == 0 {
		return 0
	}
	return float64(s.TotalSamples) / float64(s.TotalPixels)
}

func summarize(workers []WorkerStats, elapsed time.Duration) RenderStats {
	stats := RenderStats{Duration: elapsed, Workers: workers}
	for _, w := range workers {
		stats.TotalPixels += w.Pixels
		stats.TotalSamples += w.Samples
	}
	return stats
}
