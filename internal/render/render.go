// Package render scales native page rasters to a viewport height and
// places them so the two facing pages meet at the center seam.
package render

import (
	"fmt"
	"image"
	"strings"

	"golang.org/x/image/draw"
)

// Side identifies which half of the comparison a viewport occupies.
type Side int

const (
	Left Side = iota
	Right
)

func (s Side) String() string {
	if s == Left {
		return "left"
	}
	return "right"
}

// Other returns the facing side.
func (s Side) Other() Side {
	if s == Left {
		return Right
	}
	return Left
}

// Size is a viewport or canvas size in pixels.
type Size struct {
	W int
	H int
}

// Options configures a Renderer.
type Options struct {
	// FallbackHeight replaces the viewport height while the hosting UI
	// reports less than MinHeight (not yet laid out).
	FallbackHeight int
	MinHeight      int
	Filter         string
}

// DefaultOptions mirrors the configuration defaults.
func DefaultOptions() Options {
	return Options{FallbackHeight: 600, MinHeight: 10, Filter: "catmullrom"}
}

// Frame is a scaled page ready to be drawn at (X, 0) on a canvas.
type Frame struct {
	Image  *image.RGBA
	X      int
	Width  int
	Height int
	// Extent is the scrollable region of the canvas.
	Extent Size
}

// Renderer scales native bitmaps. It holds no per-page state.
type Renderer struct {
	opts   Options
	interp draw.Interpolator
}

// NewRenderer validates opts and resolves the resampling filter.
func NewRenderer(opts Options) (*Renderer, error) {
	if opts.FallbackHeight < 1 {
		return nil, fmt.Errorf("fallback height must be positive, got %d", opts.FallbackHeight)
	}
	if opts.MinHeight < 1 {
		opts.MinHeight = 1
	}
	interp, err := ParseFilter(opts.Filter)
	if err != nil {
		return nil, err
	}
	return &Renderer{opts: opts, interp: interp}, nil
}

// ParseFilter maps a filter name to an interpolator. Empty selects CatmullRom.
func ParseFilter(name string) (draw.Interpolator, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "catmullrom":
		return draw.CatmullRom, nil
	case "bilinear":
		return draw.BiLinear, nil
	case "approxbilinear":
		return draw.ApproxBiLinear, nil
	case "nearest":
		return draw.NearestNeighbor, nil
	}
	return nil, fmt.Errorf("unknown resample filter %q", name)
}

// TargetHeight returns the height a page is scaled to for a viewport.
func (r *Renderer) TargetHeight(viewport Size) int {
	if viewport.H < r.opts.MinHeight {
		return r.opts.FallbackHeight
	}
	return viewport.H
}

// ScaledSize returns the size of a w×h raster scaled uniformly to height
// target: (floor(w·target/h), target).
func ScaledSize(w, h, target int) (int, int) {
	if h <= 0 {
		return 0, target
	}
	return int(int64(w) * int64(target) / int64(h)), target
}

// Offset returns the x position of an image of the given width on a canvas.
// Left pages hug the right edge, right pages hug the left edge, so both meet
// at the seam between the two canvases.
func Offset(side Side, canvasW, width int) int {
	if side == Right {
		return 0
	}
	return max(canvasW-width, 0)
}

// Render scales src to the viewport height and anchors it for side.
// The source is never modified; rescaling always starts from it.
func (r *Renderer) Render(src image.Image, side Side, viewport Size) Frame {
	b := src.Bounds()
	target := r.TargetHeight(viewport)
	w, h := ScaledSize(b.Dx(), b.Dy(), target)

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	if w > 0 && b.Dx() > 0 && b.Dy() > 0 {
		r.interp.Scale(dst, dst.Bounds(), src, b, draw.Src, nil)
	}
	return Frame{
		Image:  dst,
		X:      Offset(side, viewport.W, w),
		Width:  w,
		Height: h,
		Extent: Size{W: viewport.W, H: h},
	}
}
