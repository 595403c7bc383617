// Package pipeline orchestrates the full preview generation run: planning,
// sampling, grid compositing, GIF encoding and compression.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/user/vidpreview/internal/compress"
	"github.com/user/vidpreview/internal/coordinator"
	"github.com/user/vidpreview/internal/gifenc"
	"github.com/user/vidpreview/internal/grid"
	"github.com/user/vidpreview/internal/planner"
	"github.com/user/vidpreview/internal/probe"
	"github.com/user/vidpreview/internal/sampler"
	"github.com/user/vidpreview/internal/types"
)

// Result describes a completed run.
type Result struct {
	RawPath        string
	CompressedPath string
	Degraded       bool // compression skipped because gifsicle was missing
	Clips          int
	FailedClips    int
}

// Artifact returns the path of the surviving output file.
func (r Result) Artifact() string {
	return r.CompressedPath
}

// Pipeline runs the Planning -> Sampling -> Compositing -> Encoding ->
// Compressing sequence for one config. External capabilities are held as
// function fields so tests can substitute them.
type Pipeline struct {
	cfg      types.Config
	probe    func(path string) (probe.Metadata, error)
	source   func(meta probe.Metadata, cfg types.Config) coordinator.ClipSource
	compress func(ctx context.Context, in, out string, cfg types.CompressionConfig) error
	progress coordinator.Progress
}

// New wires a pipeline to the real ffmpeg and gifsicle capabilities.
func New(cfg types.Config) *Pipeline {
	return &Pipeline{
		cfg:   cfg,
		probe: probe.File,
		source: func(meta probe.Metadata, cfg types.Config) coordinator.ClipSource {
			return sampler.New(cfg.VideoPath, meta.Width, meta.Height, cfg.Processing, cfg.ClipDuration)
		},
		compress: compress.Run,
	}
}

// OnProgress registers a callback for per-clip sampling progress.
func (p *Pipeline) OnProgress(fn coordinator.Progress) {
	p.progress = fn
}

// Run executes the pipeline. A failed run removes every artifact it created
// and returns a PipelineError naming the failing stage. A run that only
// skipped compression because gifsicle is missing succeeds with the
// Degraded flag set and CompressedPath equal to RawPath.
func (p *Pipeline) Run(ctx context.Context) (Result, error) {
	cfg := p.cfg
	if err := cfg.Validate(); err != nil {
		return Result{}, err
	}

	// Planning.
	meta, err := p.probe(cfg.VideoPath)
	if err != nil {
		return Result{}, stageErr(types.StagePlanning, err)
	}
	plan, err := planner.Plan(meta.Duration, cfg.ClipDuration, cfg.Interval, cfg.Cols*cfg.Rows)
	if err != nil {
		return Result{}, stageErr(types.StagePlanning, err)
	}

	// Sampling.
	clips, err := coordinator.SampleAll(ctx, p.source(meta, cfg), plan, cfg.Processing, p.progress)
	if err != nil {
		return Result{}, stageErr(types.StageSampling, err)
	}

	// Compositing and encoding stream straight into a temp artifact, moved
	// into place only once the whole animation encoded.
	tempDir, err := os.MkdirTemp("", "vidpreview_")
	if err != nil {
		return Result{}, stageErr(types.StageEncoding, err)
	}
	defer os.RemoveAll(tempDir)

	tempRaw := filepath.Join(tempDir, fmt.Sprintf("preview_%s.gif", uuid.NewString()[:8]))
	if err := p.encode(clips, tempRaw); err != nil {
		return Result{}, err
	}
	if err := moveFile(tempRaw, cfg.OutputPath); err != nil {
		return Result{}, stageErr(types.StageEncoding, err)
	}

	result := Result{
		RawPath:        cfg.OutputPath,
		CompressedPath: cfg.OutputPath,
		Clips:          len(clips),
		FailedClips:    countPlaceholders(clips),
	}
	if cfg.SkipCompression {
		return result, nil
	}

	// Compressing.
	switch err := p.compress(ctx, cfg.OutputPath, cfg.CompressedOutputPath, cfg.Compression); {
	case err == nil:
		result.CompressedPath = cfg.CompressedOutputPath
		// The raw artifact is superseded by the compressed one.
		os.Remove(cfg.OutputPath)
		return result, nil
	case errors.Is(err, types.ErrCompressionUnavailable):
		result.Degraded = true
		return result, nil
	default:
		os.Remove(cfg.OutputPath)
		os.Remove(cfg.CompressedOutputPath)
		return Result{}, stageErr(types.StageCompressing, err)
	}
}

// encode composes one grid frame per shared frame index and appends it to
// the GIF stream. Composite frames are quantized immediately and never
// accumulate in full color.
func (p *Pipeline) encode(clips []types.SampledClip, path string) error {
	writer, err := gifenc.NewWriter(path, p.cfg.FPS)
	if err != nil {
		return stageErr(types.StageEncoding, err)
	}

	layout := p.cfg.Layout()
	for k := 0; k < clipFrameCount(p.cfg); k++ {
		frame, err := grid.Compose(k, clips, layout)
		if err != nil {
			writer.Close()
			return stageErr(types.StageCompositing, err)
		}
		if err := writer.WriteFrame(frame); err != nil {
			writer.Close()
			return stageErr(types.StageEncoding, err)
		}
	}
	if err := writer.Close(); err != nil {
		return stageErr(types.StageEncoding, err)
	}
	return nil
}

// clipFrameCount is the number of composite frames: clip duration at the
// processing frame rate.
func clipFrameCount(cfg types.Config) int {
	n := int(math.Round(float64(cfg.Processing.ProcessingFPS) * cfg.ClipDuration))
	if n < 1 {
		n = 1
	}
	return n
}

func countPlaceholders(clips []types.SampledClip) int {
	n := 0
	for _, c := range clips {
		if c.Placeholder {
			n++
		}
	}
	return n
}

func stageErr(stage types.Stage, err error) error {
	return &types.PipelineError{Stage: stage, Cause: err}
}

// moveFile renames src to dst, falling back to a copy when they live on
// different filesystems.
func moveFile(src, dst string) error {
	if err := os.Rename(src, dst); err == nil {
		return nil
	}
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()
	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(dst)
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}
	return os.Remove(src)
}
