package renderer

import (
	"fmt"

	"github.com/juli-99/raytracing.github.io/pkg/core"
)

// RowRange is the half-open row interval [Start, End)
type RowRange struct {
	Start int
	End   int
}

// Len returns the number of rows in the range
func (r RowRange) Len() int {
	return r.End - r.Start
}

func (r RowRange) String() string {
	return fmt.Sprintf("[%d,%d)", r.Start, r.End)
}

// PartitionRows splits [0, height) into contiguous blocks, one per worker.
// Every block has height/workers rows except the last, which also takes the
// remainder. Workers beyond height are dropped so no block is empty.
func PartitionRows(height, workers int) ([]RowRange, error) {
	if height <= 0 {
		return nil, fmt.Errorf("%w: height must be positive, got %d", core.ErrInvalidConfig, height)
	}
	if workers <= 0 {
		return nil, fmt.Errorf("%w: worker count must be positive, got %d", core.ErrInvalidConfig, workers)
	}

	workers = min(workers, height)
	rowsPerWorker := height / workers

	ranges := make([]RowRange, workers)
	for i := range ranges {
		ranges[i] = RowRange{Start: i * rowsPerWorker, End: (i + 1) * rowsPerWorker}
	}
	ranges[workers-1].End = height

	return ranges, nil
}
