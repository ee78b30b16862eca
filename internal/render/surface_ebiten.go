package render

import (
	"bytes"
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/gofont/goregular"
)

// LoadFont parses the embedded Go Regular face used for world-space text.
func LoadFont() (*text.GoTextFaceSource, error) {
	src, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		return nil, fmt.Errorf("load go regular font: %w", err)
	}
	return src, nil
}

// EbitenSurface draws onto an *ebiten.Image. Shapes are built as vector
// paths in transformed space so rotation and non-uniform scale apply to
// everything, blits included.
type EbitenSurface struct {
	img   *ebiten.Image
	font  *text.GoTextFaceSource
	geom  ebiten.GeoM
	stack []ebiten.GeoM

	path vector.Path
	pts  []Point
}

// NewEbitenSurface wraps img. font may be nil, in which case Text is a no-op.
func NewEbitenSurface(img *ebiten.Image, font *text.GoTextFaceSource) *EbitenSurface {
	return &EbitenSurface{img: img, font: font}
}

// Image returns the wrapped image.
func (s *EbitenSurface) Image() *ebiten.Image { return s.img }

// NewSurface allocates an off-screen surface sharing this surface's font.
func (s *EbitenSurface) NewSurface(w, h int) Surface {
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return NewEbitenSurface(ebiten.NewImage(w, h), s.font)
}

func (s *EbitenSurface) Width() int  { return s.img.Bounds().Dx() }
func (s *EbitenSurface) Height() int { return s.img.Bounds().Dy() }

func (s *EbitenSurface) Save() { s.stack = append(s.stack, s.geom) }

func (s *EbitenSurface) Restore() {
	if len(s.stack) == 0 {
		return
	}
	s.geom = s.stack[len(s.stack)-1]
	s.stack = s.stack[:len(s.stack)-1]
}

// pre applies m in local space: m first, then the current transform.
func (s *EbitenSurface) pre(m ebiten.GeoM) {
	m.Concat(s.geom)
	s.geom = m
}

func (s *EbitenSurface) Translate(x, y float64) {
	var m ebiten.GeoM
	m.Translate(x, y)
	s.pre(m)
}

func (s *EbitenSurface) Rotate(theta float64) {
	var m ebiten.GeoM
	m.Rotate(theta)
	s.pre(m)
}

func (s *EbitenSurface) Scale(sx, sy float64) {
	var m ebiten.GeoM
	m.Scale(sx, sy)
	s.pre(m)
}

func (s *EbitenSurface) Clear() { s.img.Clear() }

// lineScale is the factor the current transform applies to lengths.
func (s *EbitenSurface) lineScale() float64 {
	a, b := s.geom.Element(0, 0), s.geom.Element(0, 1)
	c, d := s.geom.Element(1, 0), s.geom.Element(1, 1)
	return math.Sqrt(math.Abs(a*d - b*c))
}

func (s *EbitenSurface) buildPath(pts []Point, closed bool) {
	s.path = vector.Path{}
	for i, p := range pts {
		x, y := s.geom.Apply(p.X, p.Y)
		if i == 0 {
			s.path.MoveTo(float32(x), float32(y))
		} else {
			s.path.LineTo(float32(x), float32(y))
		}
	}
	if closed {
		s.path.Close()
	}
}

func (s *EbitenSurface) fill(pts []Point, clr color.Color) {
	if len(pts) < 3 {
		return
	}
	s.buildPath(pts, true)
	op := &vector.DrawPathOptions{AntiAlias: true}
	op.ColorScale.ScaleWithColor(clr)
	vector.FillPath(s.img, &s.path, &vector.FillOptions{}, op)
}

func (s *EbitenSurface) stroke(pts []Point, closed bool, width float64, clr color.Color) {
	if len(pts) < 2 {
		return
	}
	s.buildPath(pts, closed)
	op := &vector.DrawPathOptions{AntiAlias: true}
	op.ColorScale.ScaleWithColor(clr)
	vector.StrokePath(s.img, &s.path, &vector.StrokeOptions{Width: float32(width * s.lineScale())}, op)
}

// ellipsePoints approximates an ellipse with enough segments for its
// on-screen size.
func (s *EbitenSurface) ellipsePoints(cx, cy, rx, ry float64) []Point {
	n := int(math.Max(rx, ry) * s.lineScale())
	if n < 12 {
		n = 12
	}
	if n > 64 {
		n = 64
	}
	s.pts = s.pts[:0]
	for i := 0; i < n; i++ {
		a := float64(i) / float64(n) * 2 * math.Pi
		s.pts = append(s.pts, Point{cx + math.Cos(a)*rx, cy + math.Sin(a)*ry})
	}
	return s.pts
}

func (s *EbitenSurface) rectPoints(x, y, w, h float64) []Point {
	s.pts = append(s.pts[:0], Point{x, y}, Point{x + w, y}, Point{x + w, y + h}, Point{x, y + h})
	return s.pts
}

func (s *EbitenSurface) FillRect(x, y, w, h float64, clr color.Color) {
	s.fill(s.rectPoints(x, y, w, h), clr)
}

func (s *EbitenSurface) StrokeRect(x, y, w, h, width float64, clr color.Color) {
	s.stroke(s.rectPoints(x, y, w, h), true, width, clr)
}

func (s *EbitenSurface) FillCircle(cx, cy, r float64, clr color.Color) {
	if r <= 0 {
		return
	}
	s.fill(s.ellipsePoints(cx, cy, r, r), clr)
}

func (s *EbitenSurface) StrokeCircle(cx, cy, r, width float64, clr color.Color) {
	if r <= 0 {
		return
	}
	s.stroke(s.ellipsePoints(cx, cy, r, r), true, width, clr)
}

func (s *EbitenSurface) FillEllipse(cx, cy, rx, ry float64, clr color.Color) {
	if rx <= 0 || ry <= 0 {
		return
	}
	s.fill(s.ellipsePoints(cx, cy, rx, ry), clr)
}

func (s *EbitenSurface) StrokeLine(x0, y0, x1, y1, width float64, clr color.Color) {
	s.pts = append(s.pts[:0], Point{x0, y0}, Point{x1, y1})
	s.stroke(s.pts, false, width, clr)
}

func (s *EbitenSurface) FillPolygon(pts []Point, clr color.Color) { s.fill(pts, clr) }

func (s *EbitenSurface) StrokePolygon(pts []Point, width float64, clr color.Color) {
	s.stroke(pts, true, width, clr)
}

// Text draws str centred horizontally on x with its top at y.
func (s *EbitenSurface) Text(str string, x, y, size float64, clr color.Color) {
	if s.font == nil || str == "" {
		return
	}
	face := &text.GoTextFace{Source: s.font, Size: size}
	op := &text.DrawOptions{}
	op.PrimaryAlign = text.AlignCenter
	op.GeoM.Translate(x, y)
	op.GeoM.Concat(s.geom)
	op.ColorScale.ScaleWithColor(clr)
	text.Draw(s.img, str, face, op)
}

// Blit draws src, which must come from the same backend, onto s.
func (s *EbitenSurface) Blit(src Surface, opts BlitOptions) {
	es, ok := src.(*EbitenSurface)
	if !ok || es == nil {
		return
	}
	op := &ebiten.DrawImageOptions{Filter: ebiten.FilterLinear}
	if opts.Centered {
		op.GeoM.Translate(-float64(es.Width())/2, -float64(es.Height())/2)
	}
	sc := opts.scale()
	op.GeoM.Scale(sc, sc)
	if opts.Angle != 0 {
		op.GeoM.Rotate(opts.Angle)
	}
	op.GeoM.Translate(opts.X, opts.Y)
	op.GeoM.Concat(s.geom)
	op.ColorScale.ScaleAlpha(float32(opts.alpha()))
	s.img.DrawImage(es.img, op)
}
