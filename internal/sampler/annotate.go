package sampler

import (
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// drawClock burns a wall-clock label into the bottom-left corner of the
// frame: black box, white text. Frames too small for the overlay are left
// untouched.
func drawClock(img *image.RGBA, label string) {
	b := img.Bounds()
	boxW := 7*len(label) + 14 // Face7x13 advances 7px per glyph
	if b.Dx() < boxW+10 || b.Dy() < 30 {
		return
	}

	box := image.Rect(b.Min.X+5, b.Max.Y-22, b.Min.X+5+boxW, b.Max.Y-5)
	draw.Draw(img, box, image.NewUniform(color.Black), image.Point{}, draw.Src)

	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(color.White),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(b.Min.X+12, b.Max.Y-10),
	}
	d.DrawString(label)
}
