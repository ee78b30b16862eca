package render

import (
	"image/color"
	"math"
)

// OpKind identifies a recorded drawing operation.
type OpKind uint8

const (
	OpClear OpKind = iota
	OpFillRect
	OpStrokeRect
	OpFillCircle
	OpStrokeCircle
	OpFillEllipse
	OpLine
	OpFillPolygon
	OpStrokePolygon
	OpText
	OpBlit
)

var opNames = [...]string{
	OpClear:         "clear",
	OpFillRect:      "fill_rect",
	OpStrokeRect:    "stroke_rect",
	OpFillCircle:    "fill_circle",
	OpStrokeCircle:  "stroke_circle",
	OpFillEllipse:   "fill_ellipse",
	OpLine:          "line",
	OpFillPolygon:   "fill_polygon",
	OpStrokePolygon: "stroke_polygon",
	OpText:          "text",
	OpBlit:          "blit",
}

func (k OpKind) String() string {
	if int(k) < len(opNames) {
		return opNames[k]
	}
	return "unknown"
}

// Op is one recorded drawing call. X/Y is the operation's anchor point
// mapped through the transform that was current when it was issued.
type Op struct {
	Kind  OpKind
	X, Y  float64
	Color color.RGBA
	Text  string
	Src   int // surface id of the blit source
	Scale float64
	Alpha float64
}

// affine is a 2x3 matrix [a b tx; c d ty].
type affine [6]float64

var identity = affine{1, 0, 0, 0, 1, 0}

func (m affine) apply(x, y float64) (float64, float64) {
	return m[0]*x + m[1]*y + m[2], m[3]*x + m[4]*y + m[5]
}

// mul returns m*n: n is applied first.
func (m affine) mul(n affine) affine {
	return affine{
		m[0]*n[0] + m[1]*n[3], m[0]*n[1] + m[1]*n[4], m[0]*n[2] + m[1]*n[5] + m[2],
		m[3]*n[0] + m[4]*n[3], m[3]*n[1] + m[4]*n[4], m[3]*n[2] + m[4]*n[5] + m[5],
	}
}

type recorderShared struct {
	nextID      int
	allocations int
}

// Recorder is a Surface that records operations instead of rasterising
// them. It backs tests and the headless report. Off-screen surfaces it
// allocates are Recorders too and share its id space.
type Recorder struct {
	id     int
	w, h   int
	m      affine
	stack  []affine
	ops    []Op
	shared *recorderShared
}

// NewRecorder creates a root recording surface of the given size.
func NewRecorder(w, h int) *Recorder {
	return &Recorder{id: 0, w: w, h: h, m: identity, shared: &recorderShared{nextID: 1}}
}

// ID returns the surface id; the root recorder is 0.
func (r *Recorder) ID() int { return r.id }

// Ops returns every operation recorded since the last Reset.
func (r *Recorder) Ops() []Op { return r.ops }

// Count returns how many recorded operations have the given kind.
func (r *Recorder) Count(kind OpKind) int {
	n := 0
	for _, op := range r.ops {
		if op.Kind == kind {
			n++
		}
	}
	return n
}

// Allocations returns how many off-screen surfaces were created from this
// recorder tree.
func (r *Recorder) Allocations() int { return r.shared.allocations }

// Reset drops recorded operations and the transform stack.
func (r *Recorder) Reset() {
	r.ops = r.ops[:0]
	r.m = identity
	r.stack = r.stack[:0]
}

func (r *Recorder) NewSurface(w, h int) Surface {
	r.shared.allocations++
	c := &Recorder{id: r.shared.nextID, w: w, h: h, m: identity, shared: r.shared}
	r.shared.nextID++
	return c
}

func (r *Recorder) Width() int  { return r.w }
func (r *Recorder) Height() int { return r.h }

func (r *Recorder) Save() { r.stack = append(r.stack, r.m) }

func (r *Recorder) Restore() {
	if len(r.stack) == 0 {
		return
	}
	r.m = r.stack[len(r.stack)-1]
	r.stack = r.stack[:len(r.stack)-1]
}

func (r *Recorder) Translate(x, y float64) { r.m = r.m.mul(affine{1, 0, x, 0, 1, y}) }

func (r *Recorder) Rotate(theta float64) {
	c, s := math.Cos(theta), math.Sin(theta)
	r.m = r.m.mul(affine{c, -s, 0, s, c, 0})
}

func (r *Recorder) Scale(sx, sy float64) { r.m = r.m.mul(affine{sx, 0, 0, 0, sy, 0}) }

func (r *Recorder) record(kind OpKind, x, y float64, clr color.Color) {
	wx, wy := r.m.apply(x, y)
	op := Op{Kind: kind, X: wx, Y: wy}
	if clr != nil {
		op.Color = color.RGBAModel.Convert(clr).(color.RGBA)
	}
	r.ops = append(r.ops, op)
}

func (r *Recorder) Clear() { r.record(OpClear, 0, 0, nil) }

func (r *Recorder) FillRect(x, y, w, h float64, clr color.Color) {
	r.record(OpFillRect, x, y, clr)
}

func (r *Recorder) StrokeRect(x, y, w, h, width float64, clr color.Color) {
	r.record(OpStrokeRect, x, y, clr)
}

func (r *Recorder) FillCircle(cx, cy, rad float64, clr color.Color) {
	r.record(OpFillCircle, cx, cy, clr)
}

func (r *Recorder) StrokeCircle(cx, cy, rad, width float64, clr color.Color) {
	r.record(OpStrokeCircle, cx, cy, clr)
}

func (r *Recorder) FillEllipse(cx, cy, rx, ry float64, clr color.Color) {
	r.record(OpFillEllipse, cx, cy, clr)
}

func (r *Recorder) StrokeLine(x0, y0, x1, y1, width float64, clr color.Color) {
	r.record(OpLine, x0, y0, clr)
}

func (r *Recorder) FillPolygon(pts []Point, clr color.Color) {
	if len(pts) == 0 {
		return
	}
	r.record(OpFillPolygon, pts[0].X, pts[0].Y, clr)
}

func (r *Recorder) StrokePolygon(pts []Point, width float64, clr color.Color) {
	if len(pts) == 0 {
		return
	}
	r.record(OpStrokePolygon, pts[0].X, pts[0].Y, clr)
}

func (r *Recorder) Text(s string, x, y, size float64, clr color.Color) {
	r.record(OpText, x, y, clr)
	r.ops[len(r.ops)-1].Text = s
}

func (r *Recorder) Blit(src Surface, opts BlitOptions) {
	rs, ok := src.(*Recorder)
	if !ok || rs == nil {
		return
	}
	wx, wy := r.m.apply(opts.X, opts.Y)
	r.ops = append(r.ops, Op{
		Kind:  OpBlit,
		X:     wx,
		Y:     wy,
		Src:   rs.id,
		Scale: opts.scale(),
		Alpha: opts.alpha(),
	})
}
