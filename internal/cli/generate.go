package cli

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/user/vidpreview/internal/config"
	"github.com/user/vidpreview/internal/pipeline"
	"github.com/user/vidpreview/internal/types"
)

var generateFlags struct {
	output       string
	compressed   string
	preset       string
	grid         string
	interval     float64
	clipDuration float64
	fps          int
	padding      int
	workers      int
	noParallel   bool
	noCompress   bool
	dryRun       bool
	lossy        int
	colors       int
}

var generateCmd = &cobra.Command{
	Use:   "generate <video-file>",
	Short: "Generate an animated preview from a video",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := buildConfig(args[0])
		if err != nil {
			return err
		}
		if generateFlags.dryRun {
			printConfig(cfg)
			return nil
		}
		return runPipeline(cmd, cfg)
	},
}

// buildConfig layers the command-line overrides over the chosen preset.
func buildConfig(videoPath string) (types.Config, error) {
	if _, err := os.Stat(videoPath); err != nil {
		return types.Config{}, fmt.Errorf("video file not accessible: %w", err)
	}

	raw, compressed := defaultOutputs(videoPath)
	if generateFlags.output != "" {
		raw = generateFlags.output
		compressed = strings.TrimSuffix(raw, ".gif") + "_compressed.gif"
	}
	if generateFlags.compressed != "" {
		compressed = generateFlags.compressed
	}

	cfg := config.Preset(generateFlags.preset, videoPath, raw, compressed)

	if generateFlags.grid != "" {
		g, err := parseGrid(generateFlags.grid)
		if err != nil {
			return types.Config{}, err
		}
		cfg = cfg.WithGrid(g.Cols, g.Rows)
	}
	if generateFlags.interval > 0 {
		cfg.Interval = generateFlags.interval
	}
	if generateFlags.clipDuration > 0 {
		cfg.ClipDuration = generateFlags.clipDuration
	}
	if generateFlags.fps > 0 {
		cfg.FPS = generateFlags.fps
	}
	if generateFlags.padding >= 0 {
		cfg.GridPadding = generateFlags.padding
	}
	if generateFlags.workers != 0 {
		cfg.Processing.MaxWorkers = config.ResolveWorkers(generateFlags.workers)
	}
	if generateFlags.noParallel {
		cfg.Processing.EnableParallel = false
	}
	if generateFlags.noCompress {
		cfg.SkipCompression = true
	}
	if generateFlags.lossy >= 0 {
		cfg.Compression.LossyLevel = generateFlags.lossy
	}
	if generateFlags.colors > 0 {
		cfg.Compression.MaxColors = generateFlags.colors
	}

	return cfg, cfg.Validate()
}

func printConfig(cfg types.Config) {
	fmt.Printf("Input: %s\n", cfg.VideoPath)
	fmt.Printf("Output: %s\n", cfg.OutputPath)
	if !cfg.SkipCompression {
		fmt.Printf("Compressed output: %s\n", cfg.CompressedOutputPath)
	}
	fmt.Printf("Grid: %dx%d, padding %dpx\n", cfg.Cols, cfg.Rows, cfg.GridPadding)
	fmt.Printf("Clips: %.1fs every %.1fs, output %dfps\n", cfg.ClipDuration, cfg.Interval, cfg.FPS)
	fmt.Printf("Processing: %dfps at %dpx height, %d workers (parallel: %v)\n",
		cfg.Processing.ProcessingFPS, cfg.Processing.ProcessingHeight,
		cfg.Processing.MaxWorkers, cfg.Processing.EnableParallel)
}

func runPipeline(cmd *cobra.Command, cfg types.Config) error {
	if verbose {
		printConfig(cfg)
	}

	start := time.Now()
	p := pipeline.New(cfg)

	bar := progressbar.NewOptions(-1,
		progressbar.OptionSetDescription("Sampling clips"),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(40),
	)
	p.OnProgress(func(done, total int) {
		bar.ChangeMax(total)
		bar.Set(done)
	})

	result, err := p.Run(cmd.Context())
	fmt.Println()
	if err != nil {
		return err
	}

	if result.FailedClips > 0 {
		fmt.Printf("Warning: %d of %d clips failed to decode and were replaced with placeholders\n",
			result.FailedClips, result.Clips)
	}
	if result.Degraded {
		fmt.Println("Warning: gifsicle not found, keeping uncompressed output")
	}
	fmt.Printf("Completed in %.1fs: %s\n", time.Since(start).Seconds(), result.Artifact())
	return nil
}

func init() {
	f := generateCmd.Flags()
	f.StringVarP(&generateFlags.output, "output", "o", "", "output GIF path (default: <video>.gif)")
	f.StringVar(&generateFlags.compressed, "compressed-output", "", "compressed output path")
	f.StringVar(&generateFlags.preset, "preset", "default", "configuration preset: default, fast, quality")
	f.StringVar(&generateFlags.grid, "grid", "", "grid size as COLSxROWS, e.g. 4x3")
	f.Float64Var(&generateFlags.interval, "interval", 0, "seconds between clips")
	f.Float64Var(&generateFlags.clipDuration, "clip-duration", 0, "seconds per clip")
	f.IntVar(&generateFlags.fps, "fps", 0, "output frame rate")
	f.IntVar(&generateFlags.padding, "padding", -1, "grid padding in pixels")
	f.IntVar(&generateFlags.workers, "workers", 0, "worker count (0 = auto)")
	f.BoolVar(&generateFlags.noParallel, "no-parallel", false, "sample clips sequentially")
	f.BoolVar(&generateFlags.noCompress, "no-compress", false, "skip the compression step")
	f.BoolVar(&generateFlags.dryRun, "dry-run", false, "show the configuration without processing")
	f.IntVar(&generateFlags.lossy, "lossy", -1, "gifsicle lossy level (0-200)")
	f.IntVar(&generateFlags.colors, "colors", 0, "maximum palette colors (2-256)")
	rootCmd.AddCommand(generateCmd)
}
