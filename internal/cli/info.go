package cli

import (
	"fmt"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/user/vidpreview/internal/probe"
	"github.com/user/vidpreview/internal/types"
)

var infoCmd = &cobra.Command{
	Use:   "info <video-file>",
	Short: "Show media information for a video",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		meta, err := probe.File(args[0])
		if err != nil {
			return err
		}

		fmt.Printf("File:       %s\n", filepath.Base(meta.Filename))
		fmt.Printf("Container:  %s\n", meta.Format)
		fmt.Printf("Duration:   %s\n", types.Timestamp(meta.Duration).Clock())
		fmt.Printf("Size:       %s\n", humanize.IBytes(uint64(meta.SizeBytes)))
		if meta.BitRate > 0 {
			fmt.Printf("Bit rate:   %s/s\n", humanize.SI(float64(meta.BitRate), "b"))
		}
		if meta.HasVideo() {
			fmt.Printf("Video:      %s, %dx%d (%s), %.3f fps\n",
				meta.VideoCodec, meta.Width, meta.Height, meta.AspectRatio(), meta.FrameRate)
		}
		if meta.AudioCodec != "" {
			fmt.Printf("Audio:      %s, %d channel(s), %d Hz\n",
				meta.AudioCodec, meta.AudioChannels, meta.SampleRate)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(infoCmd)
}
