// Package compress shrinks GIF artifacts by shelling out to gifsicle.
package compress

import (
	"context"
	"fmt"
	"os/exec"

	"github.com/user/vidpreview/internal/types"
)

const binary = "gifsicle"

// lookPath is swappable for tests.
var lookPath = exec.LookPath

// Available reports whether the gifsicle binary can be found.
func Available() bool {
	_, err := lookPath(binary)
	return err == nil
}

// Command builds the gifsicle argument list for the given settings.
func Command(inputPath, outputPath string, cfg types.CompressionConfig) []string {
	args := []string{
		fmt.Sprintf("-O%d", cfg.OptimizationLevel),
		fmt.Sprintf("--lossy=%d", cfg.LossyLevel),
		fmt.Sprintf("--colors=%d", cfg.MaxColors),
	}
	if cfg.CarefulOptimization {
		args = append(args, "--careful")
	}
	return append(args, inputPath, "-o", outputPath)
}

// Run compresses inputPath into outputPath. A missing gifsicle binary is
// reported as ErrCompressionUnavailable so the caller can degrade to the
// uncompressed artifact.
func Run(ctx context.Context, inputPath, outputPath string, cfg types.CompressionConfig) error {
	path, err := lookPath(binary)
	if err != nil {
		return fmt.Errorf("%w: %v", types.ErrCompressionUnavailable, err)
	}

	cmd := exec.CommandContext(ctx, path, Command(inputPath, outputPath, cfg)...)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("gifsicle failed: %w: %s", err, out)
	}
	return nil
}
