package types

import (
	"fmt"
	"image"
)

// Timestamp is a point in the source video, in seconds from the start.
// It is never negative.
type Timestamp float64

// Clock formats the timestamp as an HH:MM:SS string.
func (t Timestamp) Clock() string {
	s := int(t)
	h, rem := s/3600, s%3600
	m, sec := rem/60, rem%60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, sec)
}

// SampledClip holds the decoded frames of one short clip sampled at Start.
// When decoding failed, Placeholder is true, Frames holds solid filler
// frames of the same shape and Cause records the decode error.
type SampledClip struct {
	Index       int
	Start       Timestamp
	Frames      []image.Image
	Placeholder bool
	Cause       error
}

// GridLayout describes how sampled clips are tiled into one composite frame.
type GridLayout struct {
	Cols    int
	Rows    int
	Padding int // pixels of background between and around cells
}

// Capacity returns the number of clips a single grid frame can display.
func (l GridLayout) Capacity() int {
	return l.Cols * l.Rows
}

// ProcessingConfig holds the clip sampling parameters.
type ProcessingConfig struct {
	MaxWorkers       int // concrete worker count, resolved at construction
	ProcessingFPS    int
	ProcessingHeight int
	EnableParallel   bool
}

// CompressionConfig holds the gifsicle compression parameters.
type CompressionConfig struct {
	LossyLevel          int // 0-200
	OptimizationLevel   int // 1-3
	MaxColors           int // 2-256
	CarefulOptimization bool
}

// Config bundles all settings for one preview generation run. It is a plain
// value: overrides copy it rather than mutating it in place.
type Config struct {
	VideoPath            string
	ClipDuration         float64 // seconds per sampled clip
	Interval             float64 // seconds between clip start times
	FPS                  int     // final output frame rate
	Cols                 int
	Rows                 int
	GridPadding          int
	OutputPath           string
	CompressedOutputPath string
	SkipCompression      bool
	Compression          CompressionConfig
	Processing           ProcessingConfig
}

// Layout returns the grid layout described by the config.
func (c Config) Layout() GridLayout {
	return GridLayout{Cols: c.Cols, Rows: c.Rows, Padding: c.GridPadding}
}

// WithGrid returns a copy of the config with the grid dimensions overridden.
func (c Config) WithGrid(cols, rows int) Config {
	c.Cols = cols
	c.Rows = rows
	return c
}

// WithOutputs returns a copy of the config with the output paths overridden.
func (c Config) WithOutputs(raw, compressed string) Config {
	c.OutputPath = raw
	c.CompressedOutputPath = compressed
	return c
}

// Validate checks every parameter once, before any I/O happens.
func (c Config) Validate() error {
	if c.VideoPath == "" {
		return fmt.Errorf("%w: video path is empty", ErrInvalidParameter)
	}
	if c.ClipDuration <= 0 {
		return fmt.Errorf("%w: clip duration %v must be positive", ErrInvalidParameter, c.ClipDuration)
	}
	if c.Interval <= 0 {
		return fmt.Errorf("%w: interval %v must be positive", ErrInvalidParameter, c.Interval)
	}
	if c.FPS <= 0 {
		return fmt.Errorf("%w: output fps %d must be positive", ErrInvalidParameter, c.FPS)
	}
	if c.Cols < 1 || c.Rows < 1 {
		return fmt.Errorf("%w: grid %dx%d needs at least one column and one row", ErrInvalidParameter, c.Cols, c.Rows)
	}
	if c.GridPadding < 0 {
		return fmt.Errorf("%w: grid padding %d must not be negative", ErrInvalidParameter, c.GridPadding)
	}
	if c.OutputPath == "" {
		return fmt.Errorf("%w: output path is empty", ErrInvalidParameter)
	}
	if !c.SkipCompression && c.CompressedOutputPath == "" {
		return fmt.Errorf("%w: compressed output path is empty", ErrInvalidParameter)
	}
	if c.Processing.MaxWorkers < 1 {
		return fmt.Errorf("%w: max workers %d must be resolved to a positive count", ErrInvalidParameter, c.Processing.MaxWorkers)
	}
	if c.Processing.ProcessingFPS <= 0 {
		return fmt.Errorf("%w: processing fps %d must be positive", ErrInvalidParameter, c.Processing.ProcessingFPS)
	}
	if c.Processing.ProcessingHeight <= 0 {
		return fmt.Errorf("%w: processing height %d must be positive", ErrInvalidParameter, c.Processing.ProcessingHeight)
	}
	if c.Compression.LossyLevel < 0 || c.Compression.LossyLevel > 200 {
		return fmt.Errorf("%w: lossy level %d out of range 0-200", ErrInvalidParameter, c.Compression.LossyLevel)
	}
	if c.Compression.OptimizationLevel < 1 || c.Compression.OptimizationLevel > 3 {
		return fmt.Errorf("%w: optimization level %d out of range 1-3", ErrInvalidParameter, c.Compression.OptimizationLevel)
	}
	if c.Compression.MaxColors < 2 || c.Compression.MaxColors > 256 {
		return fmt.Errorf("%w: max colors %d out of range 2-256", ErrInvalidParameter, c.Compression.MaxColors)
	}
	return nil
}
