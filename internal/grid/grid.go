// Package grid assembles one frame from every sampled clip into a single
// padded composite image.
package grid

import (
	"fmt"
	"image"
	"image/color"

	"github.com/disintegration/imaging"

	"github.com/user/vidpreview/internal/types"
)

var background = color.NRGBA{A: 255} // black

// Compose tiles frame frameIndex of each clip into a cols x rows grid,
// left-to-right, top-to-bottom, in clip order. Clips shorter than frameIndex
// contribute their last frame; clips beyond the grid capacity are omitted;
// cells without a clip stay background. Every cell shares a uniform size
// taken from the largest clip frame, with smaller frames centered.
func Compose(frameIndex int, clips []types.SampledClip, layout types.GridLayout) (*image.NRGBA, error) {
	if len(clips) == 0 {
		return nil, fmt.Errorf("no clips to compose")
	}
	if frameIndex < 0 {
		return nil, fmt.Errorf("negative frame index %d", frameIndex)
	}

	cellW, cellH := cellSize(clips)
	pad := layout.Padding
	canvasW := layout.Cols*cellW + (layout.Cols+1)*pad
	canvasH := layout.Rows*cellH + (layout.Rows+1)*pad
	canvas := imaging.New(canvasW, canvasH, background)

	n := len(clips)
	if capacity := layout.Capacity(); n > capacity {
		n = capacity
	}
	for i := 0; i < n; i++ {
		frame := frameAt(clips[i], frameIndex)
		if frame == nil {
			continue
		}
		col, row := i%layout.Cols, i/layout.Cols
		x := pad + col*(cellW+pad)
		y := pad + row*(cellH+pad)
		// Center smaller frames in the cell, never stretch them.
		fb := frame.Bounds()
		x += (cellW - fb.Dx()) / 2
		y += (cellH - fb.Dy()) / 2
		canvas = imaging.Paste(canvas, frame, image.Pt(x, y))
	}
	return canvas, nil
}

// frameAt selects frame k of the clip, clamped to the last available frame.
func frameAt(clip types.SampledClip, k int) image.Image {
	if len(clip.Frames) == 0 {
		return nil
	}
	if k >= len(clip.Frames) {
		k = len(clip.Frames) - 1
	}
	return clip.Frames[k]
}

// cellSize is the uniform cell size: the maximum frame width and height
// across all clips.
func cellSize(clips []types.SampledClip) (int, int) {
	var w, h int
	for _, c := range clips {
		if len(c.Frames) == 0 {
			continue
		}
		b := c.Frames[0].Bounds()
		if b.Dx() > w {
			w = b.Dx()
		}
		if b.Dy() > h {
			h = b.Dy()
		}
	}
	return w, h
}
