package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/user/vidpreview/internal/config"
	"github.com/user/vidpreview/internal/pipeline"
	"github.com/user/vidpreview/internal/source"
)

var batchPreset string

var batchCmd = &cobra.Command{
	Use:   "batch <video-or-directory>...",
	Short: "Generate previews for multiple videos",
	Long:  `Generate previews for every video in the given files and directories. Output files are written next to each source video. A failing video does not stop the batch.`,
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		videos, err := source.ListVideos(args)
		if err != nil {
			return err
		}
		if len(videos) == 0 {
			return fmt.Errorf("no video files found in %v", args)
		}
		fmt.Printf("Processing %d videos...\n", len(videos))

		failed := 0
		for i, video := range videos {
			fmt.Printf("[%d/%d] %s\n", i+1, len(videos), video)

			raw, compressed := defaultOutputs(video)
			cfg := config.Preset(batchPreset, video, raw, compressed)
			p := pipeline.New(cfg)

			result, err := p.Run(cmd.Context())
			if err != nil {
				failed++
				fmt.Printf("  failed: %v\n", err)
				continue
			}
			fmt.Printf("  done: %s\n", result.Artifact())
		}

		fmt.Printf("Batch complete: %d succeeded, %d failed\n", len(videos)-failed, failed)
		if failed == len(videos) {
			return fmt.Errorf("all %d videos failed", failed)
		}
		return nil
	},
}

func init() {
	batchCmd.Flags().StringVar(&batchPreset, "preset", "default", "configuration preset: default, fast, quality")
	rootCmd.AddCommand(batchCmd)
}
