package coordinator

import (
	"context"
	"errors"
	"fmt"
	"image"
	"sync/atomic"
	"testing"

	"github.com/user/vidpreview/internal/types"
)

// fakeSource produces deterministic clips keyed by index. panicOnce makes
// the first Sample call for panicIndex panic, simulating a broken worker.
type fakeSource struct {
	panicIndex int
	panicOnce  bool
	panicked   atomic.Bool
	calls      atomic.Int64
	failIndex  int // index returned as placeholder; -1 for none
}

func newFakeSource() *fakeSource {
	return &fakeSource{panicIndex: -1, failIndex: -1}
}

func (f *fakeSource) Sample(ctx context.Context, index int, ts types.Timestamp) types.SampledClip {
	f.calls.Add(1)
	if index == f.panicIndex && (!f.panicOnce || f.panicked.CompareAndSwap(false, true)) {
		panic(fmt.Sprintf("worker %d crashed", index))
	}
	clip := types.SampledClip{
		Index:  index,
		Start:  ts,
		Frames: []image.Image{image.NewRGBA(image.Rect(0, 0, index+1, 1))},
	}
	if index == f.failIndex {
		clip.Placeholder = true
		clip.Cause = errors.New("decode error")
	}
	return clip
}

func testPlan(n int) []types.Timestamp {
	plan := make([]types.Timestamp, n)
	for i := range plan {
		plan[i] = types.Timestamp(i * 40)
	}
	return plan
}

func parallelConfig(workers int) types.ProcessingConfig {
	return types.ProcessingConfig{
		MaxWorkers:       workers,
		ProcessingFPS:    10,
		ProcessingHeight: 180,
		EnableParallel:   true,
	}
}

func assertOrdered(t *testing.T, plan []types.Timestamp, clips []types.SampledClip) {
	t.Helper()
	if len(clips) != len(plan) {
		t.Fatalf("got %d clips, want %d", len(clips), len(plan))
	}
	for i, c := range clips {
		if c.Index != i || c.Start != plan[i] {
			t.Errorf("slot %d holds clip %d at %v, want %d at %v", i, c.Index, c.Start, i, plan[i])
		}
	}
}

func TestSampleAllOrdering(t *testing.T) {
	plan := testPlan(12)
	clips, err := SampleAll(context.Background(), newFakeSource(), plan, parallelConfig(4), nil)
	if err != nil {
		t.Fatalf("SampleAll() error = %v", err)
	}
	assertOrdered(t, plan, clips)
}

func TestParallelMatchesSequential(t *testing.T) {
	plan := testPlan(9)

	par, err := SampleAll(context.Background(), newFakeSource(), plan, parallelConfig(3), nil)
	if err != nil {
		t.Fatalf("parallel SampleAll() error = %v", err)
	}

	seqCfg := parallelConfig(3)
	seqCfg.EnableParallel = false
	seq, err := SampleAll(context.Background(), newFakeSource(), plan, seqCfg, nil)
	if err != nil {
		t.Fatalf("sequential SampleAll() error = %v", err)
	}

	assertOrdered(t, plan, par)
	assertOrdered(t, plan, seq)
	for i := range par {
		pb := par[i].Frames[0].Bounds()
		sb := seq[i].Frames[0].Bounds()
		if !pb.Eq(sb) {
			t.Errorf("slot %d differs between parallel and sequential: %v != %v", i, pb, sb)
		}
	}
}

func TestPlaceholderClipDoesNotTriggerFallback(t *testing.T) {
	src := newFakeSource()
	src.failIndex = 2
	plan := testPlan(5)

	clips, err := SampleAll(context.Background(), src, plan, parallelConfig(2), nil)
	if err != nil {
		t.Fatalf("SampleAll() error = %v", err)
	}
	if !clips[2].Placeholder {
		t.Error("clip 2 should be a placeholder")
	}
	// One call per timestamp: no retry happened.
	if got := src.calls.Load(); got != 5 {
		t.Errorf("Sample called %d times, want 5", got)
	}
}

func TestWorkerPanicFallsBackToSequentialOnce(t *testing.T) {
	src := newFakeSource()
	src.panicIndex = 3
	src.panicOnce = true
	plan := testPlan(6)

	clips, err := SampleAll(context.Background(), src, plan, parallelConfig(2), nil)
	if err != nil {
		t.Fatalf("SampleAll() error = %v, want transparent sequential recovery", err)
	}
	assertOrdered(t, plan, clips)
}

func TestPersistentFailureSurfaces(t *testing.T) {
	src := newFakeSource()
	src.panicIndex = 1 // panics on every attempt

	_, err := SampleAll(context.Background(), src, testPlan(4), parallelConfig(2), nil)
	if err == nil {
		t.Fatal("SampleAll() expected error after both paths failed")
	}
	var coordErr *types.CoordinationError
	if !errors.As(err, &coordErr) {
		t.Errorf("error %v should wrap CoordinationError", err)
	}
}

func TestSequentialBelowThreshold(t *testing.T) {
	src := newFakeSource()
	plan := testPlan(1) // below sequentialThreshold

	clips, err := SampleAll(context.Background(), src, plan, parallelConfig(8), nil)
	if err != nil {
		t.Fatalf("SampleAll() error = %v", err)
	}
	assertOrdered(t, plan, clips)
}

func TestEmptyPlanRejected(t *testing.T) {
	_, err := SampleAll(context.Background(), newFakeSource(), nil, parallelConfig(2), nil)
	if !errors.Is(err, types.ErrInvalidParameter) {
		t.Errorf("SampleAll(empty plan) error = %v, want ErrInvalidParameter", err)
	}
}

func TestProgressAccountsEveryClip(t *testing.T) {
	var count atomic.Int64
	var sawTotal atomic.Bool
	progress := func(done, total int) {
		count.Add(1)
		if done == total {
			sawTotal.Store(true)
		}
	}

	plan := testPlan(7)
	if _, err := SampleAll(context.Background(), newFakeSource(), plan, parallelConfig(3), progress); err != nil {
		t.Fatalf("SampleAll() error = %v", err)
	}
	if got := count.Load(); got != 7 {
		t.Errorf("progress called %d times, want 7", got)
	}
	if !sawTotal.Load() {
		t.Error("progress never reported completion")
	}
}

func TestCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	cfg := parallelConfig(2)
	cfg.EnableParallel = false
	_, err := SampleAll(ctx, newFakeSource(), testPlan(4), cfg, nil)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("SampleAll() error = %v, want context.Canceled", err)
	}
}
