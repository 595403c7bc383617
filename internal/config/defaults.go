// Package config provides preset configuration factories. Every preset
// resolves the worker count to a concrete number at construction, so the
// coordinator never has to consult the environment.
package config

import (
	"runtime"

	"github.com/user/vidpreview/internal/types"
)

// ResolveWorkers turns a "0 or negative means auto" worker setting into a
// concrete count.
func ResolveWorkers(requested int) int {
	if requested > 0 {
		return requested
	}
	return runtime.NumCPU()
}

// DefaultProcessing returns balanced clip sampling settings.
func DefaultProcessing() types.ProcessingConfig {
	return types.ProcessingConfig{
		MaxWorkers:       ResolveWorkers(0),
		ProcessingFPS:    10,
		ProcessingHeight: 180,
		EnableParallel:   true,
	}
}

// DefaultCompression returns balanced gifsicle settings.
func DefaultCompression() types.CompressionConfig {
	return types.CompressionConfig{
		LossyLevel:          70,
		OptimizationLevel:   3,
		MaxColors:           128,
		CarefulOptimization: true,
	}
}

// Default returns the balanced preset: 3x5 grid, 2 second clips every 40
// seconds, 25fps output.
func Default(videoPath, outputPath, compressedPath string) types.Config {
	return types.Config{
		VideoPath:            videoPath,
		ClipDuration:         2,
		Interval:             40,
		FPS:                  25,
		Cols:                 3,
		Rows:                 5,
		GridPadding:          4,
		OutputPath:           outputPath,
		CompressedOutputPath: compressedPath,
		Compression:          DefaultCompression(),
		Processing:           DefaultProcessing(),
	}
}

// Fast returns a preset tuned for speed: lower processing resolution and
// heavier lossy compression.
func Fast(videoPath, outputPath, compressedPath string) types.Config {
	cfg := Default(videoPath, outputPath, compressedPath)
	cfg.FPS = 20
	cfg.Processing.ProcessingHeight = 120
	cfg.Compression.LossyLevel = 80
	cfg.Compression.CarefulOptimization = false
	return cfg
}

// Quality returns a preset tuned for output quality: denser grid, longer
// clips, higher resolution and gentler compression.
func Quality(videoPath, outputPath, compressedPath string) types.Config {
	cfg := Default(videoPath, outputPath, compressedPath)
	cfg.ClipDuration = 3
	cfg.Interval = 30
	cfg.FPS = 30
	cfg.Cols = 4
	cfg.Rows = 6
	cfg.GridPadding = 5
	cfg.Processing.ProcessingFPS = 15
	cfg.Processing.ProcessingHeight = 240
	cfg.Compression.LossyLevel = 50
	cfg.Compression.MaxColors = 256
	return cfg
}

// Preset looks up a preset factory by name. Unknown names fall back to the
// default preset.
func Preset(name, videoPath, outputPath, compressedPath string) types.Config {
	switch name {
	case "fast":
		return Fast(videoPath, outputPath, compressedPath)
	case "quality":
		return Quality(videoPath, outputPath, compressedPath)
	default:
		return Default(videoPath, outputPath, compressedPath)
	}
}
