// shapes.go - Decorative primitives rasterised with x/image/vector so edges
// are anti-aliased and translucent fills blend over the background.
package canvas

import (
	"image"
	"image/color"
	"image/draw"
	"math"
	"math/rand/v2"

	"golang.org/x/image/vector"
)

// ShapeType names a decorative primitive.
type ShapeType string

const (
	ShapeRect   ShapeType = "rectangle"
	ShapeCircle ShapeType = "circle"
	ShapeLine   ShapeType = "line"
)

// Shape is one decorative primitive. For rectangles and lines (X1,Y1)-(X2,Y2)
// are the corners/end points; circles use (X1,Y1) as centre and Radius.
type Shape struct {
	Type           ShapeType
	X1, Y1, X2, Y2 int
	Radius         int
	Width          int // line width
	Color          color.NRGBA
}

// kappa approximates a quarter circle with one cubic Bézier.
const kappa = 0.5522847498

// drawShape rasterises s over dst.
func drawShape(dst draw.Image, s Shape) {
	b := dst.Bounds()
	z := vector.NewRasterizer(b.Dx(), b.Dy())
	z.DrawOp = draw.Over

	switch s.Type {
	case ShapeRect:
		r := image.Rect(s.X1, s.Y1, s.X2, s.Y2) // canonicalises reversed corners
		// Inclusive corners, so the far edge gets one more pixel.
		x0, y0 := float32(r.Min.X), float32(r.Min.Y)
		x1, y1 := float32(r.Max.X+1), float32(r.Max.Y+1)
		z.MoveTo(x0, y0)
		z.LineTo(x1, y0)
		z.LineTo(x1, y1)
		z.LineTo(x0, y1)
		z.ClosePath()
	case ShapeCircle:
		cx, cy, r := float32(s.X1), float32(s.Y1), float32(s.Radius)
		k := r * kappa
		z.MoveTo(cx+r, cy)
		z.CubeTo(cx+r, cy+k, cx+k, cy+r, cx, cy+r)
		z.CubeTo(cx-k, cy+r, cx-r, cy+k, cx-r, cy)
		z.CubeTo(cx-r, cy-k, cx-k, cy-r, cx, cy-r)
		z.CubeTo(cx+k, cy-r, cx+r, cy-k, cx+r, cy)
		z.ClosePath()
	case ShapeLine:
		dx, dy := float64(s.X2-s.X1), float64(s.Y2-s.Y1)
		length := math.Hypot(dx, dy)
		if length == 0 {
			return
		}
		half := float64(max(s.Width, 1)) / 2
		nx, ny := float32(-dy/length*half), float32(dx/length*half)
		x1, y1, x2, y2 := float32(s.X1), float32(s.Y1), float32(s.X2), float32(s.Y2)
		z.MoveTo(x1+nx, y1+ny)
		z.LineTo(x2+nx, y2+ny)
		z.LineTo(x2-nx, y2-ny)
		z.LineTo(x1-nx, y1-ny)
		z.ClosePath()
	default:
		return
	}

	z.Draw(dst, b, image.NewUniform(s.Color), b.Min)
}

// between returns a uniform int in [lo, hi].
func between(rng *rand.Rand, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + rng.IntN(hi-lo+1)
}

// RandomColor samples each channel from cr.
func RandomColor(rng *rand.Rand, cr ChannelRange) color.RGBA {
	return color.RGBA{
		R: uint8(between(rng, cr.Min, cr.Max)),
		G: uint8(between(rng, cr.Min, cr.Max)),
		B: uint8(between(rng, cr.Min, cr.Max)),
		A: 255,
	}
}

// posterShapes returns n translucent rectangles in bright colours.
func posterShapes(rng *rand.Rand, n, w, h int) []Shape {
	shapes := make([]Shape, 0, n)
	for range n {
		c := RandomColor(rng, PosterShapeChannelRange)
		shapes = append(shapes, Shape{
			Type:  ShapeRect,
			X1:    between(rng, 0, w),
			Y1:    between(rng, 0, h),
			X2:    between(rng, 0, w),
			Y2:    between(rng, 0, h),
			Color: color.NRGBA{R: c.R, G: c.G, B: c.B, A: uint8(between(rng, 30, 100))},
		})
	}
	return shapes
}

// bannerShapes returns n mixed shapes tinted from the background colour.
func bannerShapes(rng *rand.Rand, n, w, h int, bg color.RGBA) []Shape {
	types := []ShapeType{ShapeRect, ShapeCircle, ShapeLine}
	tint := func(v uint8) uint8 {
		return uint8(min(max(int(v)+between(rng, -20, 100), 0), 255))
	}

	shapes := make([]Shape, 0, n)
	for range n {
		s := Shape{
			Color: color.NRGBA{R: tint(bg.R), G: tint(bg.G), B: tint(bg.B), A: uint8(between(rng, 30, 150))},
			Type:  types[rng.IntN(len(types))],
			X1:    between(rng, 0, w),
			Y1:    between(rng, 0, h),
		}
		switch s.Type {
		case ShapeCircle:
			s.Radius = between(rng, 20, 200)
		case ShapeLine:
			s.X2 = between(rng, 0, w)
			s.Y2 = between(rng, 0, h)
			s.Width = between(rng, 5, 20)
		default:
			s.X2 = between(rng, 0, w)
			s.Y2 = between(rng, 0, h)
		}
		shapes = append(shapes, s)
	}
	return shapes
}
