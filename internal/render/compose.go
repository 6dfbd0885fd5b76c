package render

import (
	"image"
	"image/color"
	"image/draw"
)

// Background is the canvas fill behind pages.
var Background = color.RGBA{R: 128, G: 128, B: 128, A: 255}

// Compose draws two frames onto one image: the left canvas occupies
// [0, canvas.W) and the right one [canvas.W, 2·canvas.W). The seam is at
// x = canvas.W. Parts of a frame wider than its canvas are clipped.
func Compose(left, right Frame, canvas Size) *image.RGBA {
	h := max(canvas.H, left.Height, right.Height)
	out := image.NewRGBA(image.Rect(0, 0, 2*canvas.W, h))
	draw.Draw(out, out.Bounds(), image.NewUniform(Background), image.Point{}, draw.Src)

	place(out, left, image.Rect(0, 0, canvas.W, h))
	place(out, right, image.Rect(canvas.W, 0, 2*canvas.W, h))
	return out
}

func place(dst *image.RGBA, f Frame, area image.Rectangle) {
	if f.Image == nil {
		return
	}
	r := image.Rect(area.Min.X+f.X, 0, area.Min.X+f.X+f.Width, f.Height).Intersect(area)
	draw.Draw(dst, r, f.Image, image.Point{X: r.Min.X - area.Min.X - f.X}, draw.Src)
}
