package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/user/vidpreview/internal/config"
)

var previewCmd = &cobra.Command{
	Use:   "preview <video-file>",
	Short: "Generate a quick low-quality preview",
	Long:  `Generate a small 2x2 preview using the fast preset. Useful for checking a video before committing to a full generate run.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		videoPath := args[0]
		if _, err := os.Stat(videoPath); err != nil {
			return fmt.Errorf("video file not accessible: %w", err)
		}

		raw, compressed := defaultOutputs(videoPath)
		cfg := config.Fast(videoPath, raw, compressed).WithGrid(2, 2)
		if err := cfg.Validate(); err != nil {
			return err
		}
		return runPipeline(cmd, cfg)
	},
}

func init() {
	rootCmd.AddCommand(previewCmd)
}
