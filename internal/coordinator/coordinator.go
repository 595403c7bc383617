// Package coordinator fans clip sampling out across workers and aggregates
// the results back in plan order.
package coordinator

import (
	"context"
	"fmt"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/user/vidpreview/internal/types"
)

// ClipSource produces one sampled clip per timestamp. Implementations must
// absorb per-clip decode failures into placeholder clips; only mechanism
// failures (panics) escape.
type ClipSource interface {
	Sample(ctx context.Context, index int, ts types.Timestamp) types.SampledClip
}

// sequentialThreshold is the plan size below which parallel setup overhead
// is not worth paying. Tunable constant.
const sequentialThreshold = 2

// Progress is called after each completed clip with (done, total). It may be
// called from multiple goroutines.
type Progress func(done, total int)

// SampleAll samples every timestamp in the plan and returns the clips
// aligned index-for-index with it. Parallel execution is used when enabled
// and worthwhile; if the parallel mechanism itself breaks, the whole plan is
// retried sequentially exactly once before the failure surfaces.
func SampleAll(ctx context.Context, src ClipSource, plan []types.Timestamp, proc types.ProcessingConfig, progress Progress) ([]types.SampledClip, error) {
	if len(plan) == 0 {
		return nil, fmt.Errorf("%w: empty plan", types.ErrInvalidParameter)
	}
	if !proc.EnableParallel || proc.MaxWorkers <= 1 || len(plan) < sequentialThreshold {
		return sampleSequential(ctx, src, plan, progress)
	}

	clips, err := sampleParallel(ctx, src, plan, proc.MaxWorkers, progress)
	if err == nil {
		return clips, nil
	}

	clips, seqErr := sampleSequential(ctx, src, plan, progress)
	if seqErr != nil {
		return nil, fmt.Errorf("sequential retry failed: %w (after %w)", seqErr, err)
	}
	return clips, nil
}

func sampleParallel(ctx context.Context, src ClipSource, plan []types.Timestamp, workers int, progress Progress) ([]types.SampledClip, error) {
	results := make([]types.SampledClip, len(plan))
	filled := make([]bool, len(plan))
	var done atomic.Int64

	g, ctx := errgroup.WithContext(ctx)
	if workers > len(plan) {
		workers = len(plan)
	}
	g.SetLimit(workers)

	for i, ts := range plan {
		i, ts := i, ts
		g.Go(func() (err error) {
			defer func() {
				if r := recover(); r != nil {
					err = fmt.Errorf("worker for clip %d panicked: %v", i, r)
				}
			}()
			if err := ctx.Err(); err != nil {
				return err
			}
			// Workers write disjoint slots, so no lock is needed and the
			// plan order is preserved no matter the completion order.
			results[i] = src.Sample(ctx, i, ts)
			filled[i] = true
			if progress != nil {
				progress(int(done.Add(1)), len(plan))
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, &types.CoordinationError{Cause: err}
	}
	// Every dispatched timestamp must be accounted for exactly once.
	for i := range filled {
		if !filled[i] {
			return nil, &types.CoordinationError{Cause: fmt.Errorf("no result for clip %d", i)}
		}
	}
	return results, nil
}

func sampleSequential(ctx context.Context, src ClipSource, plan []types.Timestamp, progress Progress) (clips []types.SampledClip, err error) {
	defer func() {
		if r := recover(); r != nil {
			clips, err = nil, fmt.Errorf("sequential sampling panicked: %v", r)
		}
	}()

	clips = make([]types.SampledClip, 0, len(plan))
	for i, ts := range plan {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		clips = append(clips, src.Sample(ctx, i, ts))
		if progress != nil {
			progress(i+1, len(plan))
		}
	}
	return clips, nil
}
