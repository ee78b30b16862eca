package render

import "image/color"

// Point is a 2D coordinate in the current transform space.
type Point struct {
	X, Y float64
}

// BlitOptions positions a source surface on the destination.
// The source is scaled by Scale (0 means 1), rotated by Angle, and its centre
// is placed at (X, Y) when Centered is set, otherwise its top-left corner is.
type BlitOptions struct {
	X, Y     float64
	Scale    float64
	Angle    float64
	Alpha    float64 // 0 means fully opaque
	Centered bool
}

func (o BlitOptions) scale() float64 {
	if o.Scale == 0 {
		return 1
	}
	return o.Scale
}

func (o BlitOptions) alpha() float64 {
	if o.Alpha <= 0 || o.Alpha > 1 {
		return 1
	}
	return o.Alpha
}

// Allocator creates off-screen raster surfaces.
type Allocator interface {
	NewSurface(w, h int) Surface
}

// Surface is an immediate-mode 2D drawing target with a transform stack.
// Off-screen surfaces created through NewSurface are themselves Surfaces and
// can be blitted onto any other surface from the same backend.
type Surface interface {
	Allocator

	Width() int
	Height() int

	Save()
	Restore()
	Translate(x, y float64)
	Rotate(theta float64)
	Scale(sx, sy float64)

	Clear()
	FillRect(x, y, w, h float64, clr color.Color)
	StrokeRect(x, y, w, h, width float64, clr color.Color)
	FillCircle(cx, cy, r float64, clr color.Color)
	StrokeCircle(cx, cy, r, width float64, clr color.Color)
	FillEllipse(cx, cy, rx, ry float64, clr color.Color)
	StrokeLine(x0, y0, x1, y1, width float64, clr color.Color)
	FillPolygon(pts []Point, clr color.Color)
	StrokePolygon(pts []Point, width float64, clr color.Color)
	Text(s string, x, y, size float64, clr color.Color)

	Blit(src Surface, opts BlitOptions)
}

// withAlpha returns c with its alpha channel multiplied by a (0..1).
func withAlpha(c color.RGBA, a float64) color.RGBA {
	if a < 0 {
		a = 0
	}
	if a > 1 {
		a = 1
	}
	// Premultiplied: scale every channel.
	return color.RGBA{
		R: uint8(float64(c.R) * a),
		G: uint8(float64(c.G) * a),
		B: uint8(float64(c.B) * a),
		A: uint8(float64(c.A) * a),
	}
}

// shade lightens (f > 0) or darkens (f < 0) an opaque colour.
func shade(c color.RGBA, f float64) color.RGBA {
	mix := func(v uint8) uint8 {
		x := float64(v)
		if f >= 0 {
			x += (255 - x) * f
		} else {
			x *= 1 + f
		}
		if x < 0 {
			x = 0
		}
		if x > 255 {
			x = 255
		}
		return uint8(x)
	}
	return color.RGBA{R: mix(c.R), G: mix(c.G), B: mix(c.B), A: c.A}
}
