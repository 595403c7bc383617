// Package sampler decodes short clips from a source video through ffmpeg.
// A failed decode never surfaces as an error: the clip comes back as a
// placeholder of the same shape so grid composition stays uniform.
package sampler

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/disintegration/imaging"
	ffmpeg "github.com/u2takey/ffmpeg-go"

	"github.com/user/vidpreview/internal/types"
)

var placeholderColor = color.NRGBA{R: 24, G: 24, B: 24, A: 255}

// Source decodes clips from one video file at fixed processing dimensions.
type Source struct {
	path         string
	width        int
	height       int
	fps          int
	clipDuration float64
}

// New creates a clip source for the video at path. srcWidth and srcHeight
// are the probed source dimensions, used to derive the scaled width that
// preserves aspect ratio at the configured processing height.
func New(path string, srcWidth, srcHeight int, proc types.ProcessingConfig, clipDuration float64) *Source {
	return &Source{
		path:         path,
		width:        ScaledWidth(srcWidth, srcHeight, proc.ProcessingHeight),
		height:       proc.ProcessingHeight,
		fps:          proc.ProcessingFPS,
		clipDuration: clipDuration,
	}
}

// ScaledWidth returns the even width that preserves the source aspect ratio
// at targetHeight. Unknown source dimensions fall back to 16:9.
func ScaledWidth(srcWidth, srcHeight, targetHeight int) int {
	if srcWidth <= 0 || srcHeight <= 0 {
		srcWidth, srcHeight = 16, 9
	}
	w := int(math.Round(float64(srcWidth) * float64(targetHeight) / float64(srcHeight)))
	if w%2 != 0 {
		w++
	}
	if w < 2 {
		w = 2
	}
	return w
}

// Sample decodes the clip starting at ts. On any decode failure it returns a
// placeholder clip carrying the cause instead of an error.
func (s *Source) Sample(ctx context.Context, index int, ts types.Timestamp) types.SampledClip {
	if err := ctx.Err(); err != nil {
		return s.placeholder(index, ts, err)
	}
	frames, err := s.decode(ts)
	if err != nil {
		return s.placeholder(index, ts, err)
	}
	return types.SampledClip{Index: index, Start: ts, Frames: frames}
}

// decode pulls raw rgb24 frames for [ts, ts+clipDuration) through a pipe and
// slices the byte stream into images. The buffer is scoped to this call.
func (s *Source) decode(ts types.Timestamp) ([]image.Image, error) {
	buf := new(bytes.Buffer)
	stream := ffmpeg.Input(s.path, ffmpeg.KwArgs{
		"ss": fmt.Sprintf("%.3f", float64(ts)),
		"t":  fmt.Sprintf("%.3f", s.clipDuration),
	})
	stream = applyFilters(stream, fpsFilter(s.fps), scaleFilter(s.width, s.height))
	err := stream.
		Output("pipe:", ffmpeg.KwArgs{"format": "rawvideo", "pix_fmt": "rgb24"}).
		WithOutput(buf).
		Silent(true).
		Run()
	if err != nil {
		return nil, fmt.Errorf("decoding clip at %s: %w", ts.Clock(), err)
	}

	frameSize := s.width * s.height * 3
	raw := buf.Bytes()
	count := len(raw) / frameSize
	if count == 0 {
		return nil, fmt.Errorf("no frames decoded at %s", ts.Clock())
	}

	frames := make([]image.Image, 0, count)
	for k := 0; k < count; k++ {
		img := rgbFrame(raw[k*frameSize:(k+1)*frameSize], s.width, s.height)
		drawClock(img, clockAt(ts, k, s.fps))
		frames = append(frames, img)
	}
	return frames, nil
}

// placeholder builds a failed clip with the nominal frame count so the grid
// shape invariant holds downstream.
func (s *Source) placeholder(index int, ts types.Timestamp, cause error) types.SampledClip {
	filler := imaging.New(s.width, s.height, placeholderColor)
	frames := make([]image.Image, s.nominalFrames())
	for i := range frames {
		frames[i] = filler
	}
	return types.SampledClip{
		Index:       index,
		Start:       ts,
		Frames:      frames,
		Placeholder: true,
		Cause:       cause,
	}
}

// nominalFrames is the expected frame count of a full-length clip.
func (s *Source) nominalFrames() int {
	n := int(math.Round(float64(s.fps) * s.clipDuration))
	if n < 1 {
		n = 1
	}
	return n
}

func clockAt(start types.Timestamp, frame, fps int) string {
	return (start + types.Timestamp(float64(frame)/float64(fps))).Clock()
}

// rgbFrame copies packed rgb24 bytes into an RGBA image.
func rgbFrame(raw []byte, width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for i := 0; i < width*height; i++ {
		img.Pix[i*4+0] = raw[i*3+0]
		img.Pix[i*4+1] = raw[i*3+1]
		img.Pix[i*4+2] = raw[i*3+2]
		img.Pix[i*4+3] = 0xff
	}
	return img
}
