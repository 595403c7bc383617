// Package cli implements the vidpreview command tree.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var Version = "1.0.0"

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "vidpreview",
	Short: "Create animated GIF previews from video files",
	Long: `vidpreview samples short clips across a video, tiles them into an
animated grid and compresses the result with gifsicle.

Examples:
  vidpreview generate movie.mp4                 # defaults, 3x5 grid
  vidpreview generate movie.mp4 --preset fast   # speed over quality
  vidpreview generate movie.mp4 --grid 4x3      # custom grid
  vidpreview preview movie.mp4                  # quick 2x2 look
  vidpreview batch ./videos                     # every video in a directory
  vidpreview info movie.mp4                     # show media information`,
	SilenceUsage: true,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("vidpreview version %s\n", Version)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.AddCommand(versionCmd)
}

// Execute runs the command tree.
func Execute() error {
	return rootCmd.Execute()
}
