package render

// CullMargin is the extra world-space border kept around the viewport so
// entities do not pop in at the edge.
const CullMargin = 50.0

// Camera is the visible world rectangle; X/Y is its top-left corner.
type Camera struct {
	X, Y          float64
	Width, Height float64
}

// CenterX returns the world-space x of the viewport centre.
func (c Camera) CenterX() float64 { return c.X + c.Width/2 }

// CenterY returns the world-space y of the viewport centre.
func (c Camera) CenterY() float64 { return c.Y + c.Height/2 }

// IsVisible reports whether the circle at (x, y) with radius r, grown by
// CullMargin, overlaps the camera rectangle.
func IsVisible(x, y, r float64, cam Camera) bool {
	if r < 0 {
		r = 0
	}
	pad := r + CullMargin
	return x+pad >= cam.X &&
		x-pad <= cam.X+cam.Width &&
		y+pad >= cam.Y &&
		y-pad <= cam.Y+cam.Height
}
