// Package gifenc handles writing composite frame streams to animated GIF
// files.
package gifenc

import (
	"fmt"
	"image"
	"image/color/palette"
	"image/draw"
	"image/gif"
	"os"
)

// Writer accumulates quantized frames and encodes them as one animated GIF
// on Close. Frames are palettized as they arrive, so the full-color
// composites handed in never pile up in memory.
type Writer struct {
	file  *os.File
	anim  gif.GIF
	delay int // per-frame delay in 100ths of a second
}

// NewWriter creates a GIF writer targeting the given file at fps.
func NewWriter(filepath string, fps int) (*Writer, error) {
	if fps <= 0 {
		return nil, fmt.Errorf("fps %d must be positive", fps)
	}
	file, err := os.Create(filepath)
	if err != nil {
		return nil, fmt.Errorf("error creating gif file: %w", err)
	}
	delay := 100 / fps
	if delay < 1 {
		delay = 1
	}
	return &Writer{file: file, delay: delay}, nil
}

// WriteFrame quantizes one composite frame and appends it to the animation.
// Quantization uses the fixed Plan9 palette with Floyd-Steinberg dithering,
// which keeps output byte-identical across runs.
func (w *Writer) WriteFrame(img image.Image) error {
	b := img.Bounds()
	paletted := image.NewPaletted(b, palette.Plan9)
	draw.FloydSteinberg.Draw(paletted, b, img, b.Min)

	w.anim.Image = append(w.anim.Image, paletted)
	w.anim.Delay = append(w.anim.Delay, w.delay)
	return nil
}

// FrameCount returns the number of frames written so far.
func (w *Writer) FrameCount() int {
	return len(w.anim.Image)
}

// Close encodes the accumulated animation and closes the file.
func (w *Writer) Close() error {
	if len(w.anim.Image) == 0 {
		w.file.Close()
		return fmt.Errorf("no frames written")
	}
	if err := gif.EncodeAll(w.file, &w.anim); err != nil {
		w.file.Close()
		return fmt.Errorf("error encoding gif: %w", err)
	}
	return w.file.Close()
}
