package sampler

import (
	"fmt"
	"strconv"

	ffmpeg "github.com/u2takey/ffmpeg-go"
)

// Filter is one ffmpeg video filter in the decode chain.
type Filter struct {
	Name string
	Args ffmpeg.Args
}

// fpsFilter resamples the clip to the given frame rate.
func fpsFilter(fps int) Filter {
	return Filter{Name: "fps", Args: ffmpeg.Args{strconv.Itoa(fps)}}
}

// scaleFilter resizes the clip to exact pixel dimensions.
func scaleFilter(width, height int) Filter {
	return Filter{Name: "scale", Args: ffmpeg.Args{fmt.Sprintf("%d:%d", width, height)}}
}

// applyFilters chains the filters onto the stream in order.
func applyFilters(stream *ffmpeg.Stream, filters ...Filter) *ffmpeg.Stream {
	for _, f := range filters {
		stream = stream.Filter(f.Name, f.Args)
	}
	return stream
}
