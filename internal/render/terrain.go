package render

import (
	"image/color"
	"math"
)

var (
	gridFine    = color.RGBA{R: 34, G: 40, B: 46, A: 255}
	gridMid     = color.RGBA{R: 40, G: 48, B: 56, A: 255}
	gridCoarse  = color.RGBA{R: 52, G: 62, B: 72, A: 255}
	boundaryCol = color.RGBA{R: 120, G: 140, B: 160, A: 220}
	defaultSoil = color.RGBA{R: 26, G: 30, B: 36, A: 255}
)

// TerrainRenderer owns one world-sized raster of the static terrain layer,
// rebuilt only when the snapshot carries a different *Terrain.
type TerrainRenderer struct {
	alloc    Allocator
	raster   Surface
	last     *Terrain
	rebuilds int
	animated int
}

// NewTerrainRenderer creates a renderer that allocates its raster via alloc.
func NewTerrainRenderer(alloc Allocator) *TerrainRenderer {
	return &TerrainRenderer{alloc: alloc}
}

// Rebuilds returns how many times the static raster has been built.
func (r *TerrainRenderer) Rebuilds() int { return r.rebuilds }

// AnimatedDrawn returns how many animated features the last frame drew.
func (r *TerrainRenderer) AnimatedDrawn() int { return r.animated }

// ClearCache forgets the raster; the next frame rebuilds it.
func (r *TerrainRenderer) ClearCache() {
	r.raster = nil
	r.last = nil
}

// Render draws the terrain in world space onto s.
func (r *TerrainRenderer) Render(s Surface, snap *Snapshot, t float64) {
	r.animated = 0
	tr := snap.Terrain
	if tr == nil {
		return
	}
	if tr != r.last || r.raster == nil {
		r.rebuild(tr)
	}

	s.Blit(r.raster, BlitOptions{})
	s.StrokeRect(0, 0, tr.Width, tr.Height, 2, boundaryCol)

	if !snap.Settings.AnimatedBackground {
		return
	}
	for i := range tr.Features {
		f := &tr.Features[i]
		if !f.Kind.IsAnimated() {
			continue
		}
		if !IsVisible(f.X, f.Y, f.Radius, snap.Camera) {
			continue
		}
		s.Save()
		s.Translate(f.X, f.Y)
		drawAnimatedFeature(s, f, t)
		s.Restore()
		r.animated++
	}
}

func (r *TerrainRenderer) rebuild(tr *Terrain) {
	w, h := int(math.Ceil(tr.Width)), int(math.Ceil(tr.Height))
	raster := r.alloc.NewSurface(w, h)

	ground := tr.Ground
	if ground.A == 0 {
		ground = defaultSoil
	}
	raster.FillRect(0, 0, tr.Width, tr.Height, ground)

	drawGrid(raster, tr.Width, tr.Height, 32, gridFine)
	drawGrid(raster, tr.Width, tr.Height, 128, gridMid)
	drawGrid(raster, tr.Width, tr.Height, 512, gridCoarse)

	for i := range tr.Features {
		f := &tr.Features[i]
		if f.Kind.IsAnimated() {
			continue
		}
		raster.Save()
		raster.Translate(f.X, f.Y)
		raster.Rotate(f.Angle)
		drawStaticFeature(raster, f)
		raster.Restore()
	}

	r.raster = raster
	r.last = tr
	r.rebuilds++
}

func drawGrid(s Surface, w, h, spacing float64, c color.Color) {
	if spacing <= 0 {
		return
	}
	for x := 0.0; x <= w; x += spacing {
		s.StrokeLine(x, 0, x, h, 1, c)
	}
	for y := 0.0; y <= h; y += spacing {
		s.StrokeLine(0, y, w, y, 1, c)
	}
}

func featureColor(f *Feature, def color.RGBA) color.RGBA {
	if f.Color.A == 0 {
		return def
	}
	return f.Color
}

func featureRadius(f *Feature) float64 {
	if f.Radius <= 0 {
		return FallbackRadius
	}
	return f.Radius
}

// jitter returns a stable pseudo-random value in [0,1) for (seed, i).
func jitter(seed int64, i int) float64 {
	h := uint64(seed)*0x9e3779b97f4a7c15 + uint64(i)*0xbf58476d1ce4e5b9
	h ^= h >> 31
	h *= 0x94d049bb133111eb
	h ^= h >> 29
	return float64(h&0xFFFFFF) / float64(0x1000000)
}

func drawStaticFeature(s Surface, f *Feature) {
	r := featureRadius(f)
	switch f.Kind {
	case FeatureRock:
		c := featureColor(f, color.RGBA{R: 86, G: 82, B: 78, A: 255})
		pts := make([]Point, 7)
		for i := range pts {
			a := float64(i) / 7 * 2 * math.Pi
			k := 0.75 + 0.25*jitter(f.Seed, i)
			pts[i] = Point{math.Cos(a) * r * k, math.Sin(a) * r * k}
		}
		s.FillPolygon(pts, shade(c, -0.4))
		for i := range pts {
			pts[i].X *= 0.8
			pts[i].Y *= 0.8
		}
		s.FillPolygon(pts, c)
	case FeatureCrater:
		c := featureColor(f, color.RGBA{R: 40, G: 38, B: 36, A: 255})
		s.FillCircle(0, 0, r, shade(c, 0.25))
		s.FillCircle(r*0.08, r*0.08, r*0.8, c)
		s.StrokeCircle(0, 0, r, 1.5, shade(c, 0.45))
	case FeatureIceSpike:
		c := featureColor(f, color.RGBA{R: 170, G: 220, B: 240, A: 255})
		for i := 0; i < 3; i++ {
			a := float64(i)*2.1 + jitter(f.Seed, i)
			x, y := math.Cos(a)*r*0.3, math.Sin(a)*r*0.3
			s.FillPolygon([]Point{{x, y - r}, {x + r*0.25, y + r*0.3}, {x - r*0.25, y + r*0.3}}, c)
		}
	case FeatureCrystal:
		c := featureColor(f, color.RGBA{R: 150, G: 90, B: 230, A: 255})
		s.FillPolygon([]Point{{0, -r}, {r * 0.45, 0}, {0, r}, {-r * 0.45, 0}}, c)
		s.StrokeLine(0, -r, 0, r, 1, shade(c, 0.5))
	case FeatureDust:
		c := featureColor(f, color.RGBA{R: 60, G: 56, B: 48, A: 255})
		for i := 0; i < 5; i++ {
			x := (jitter(f.Seed, i*2) - 0.5) * r * 1.6
			y := (jitter(f.Seed, i*2+1) - 0.5) * r * 1.6
			s.FillCircle(x, y, r*0.35, withAlpha(c, 0.35))
		}
	}
}

func drawAnimatedFeature(s Surface, f *Feature, t float64) {
	r := featureRadius(f)
	phase := jitter(f.Seed, 99) * 2 * math.Pi
	switch f.Kind {
	case FeatureMagma:
		c := featureColor(f, color.RGBA{R: 230, G: 80, B: 20, A: 255})
		pulse := 0.5 + 0.5*math.Sin(t*2+phase)
		s.FillCircle(0, 0, r*(1+0.08*pulse), withAlpha(c, 0.35+0.2*pulse))
		s.FillCircle(0, 0, r*0.7, c)
		s.FillCircle(r*0.15*math.Cos(t+phase), r*0.15*math.Sin(t+phase), r*0.3, color.RGBA{R: 255, G: 200, B: 80, A: 255})
	case FeatureFlora:
		c := featureColor(f, color.RGBA{R: 80, G: 220, B: 160, A: 255})
		for i := 0; i < 5; i++ {
			a := float64(i)/5*2*math.Pi + math.Sin(t*1.5+phase+float64(i))*0.25
			s.StrokeLine(0, 0, math.Cos(a)*r, math.Sin(a)*r, 2, c)
			s.FillCircle(math.Cos(a)*r, math.Sin(a)*r, r*0.15, shade(c, 0.3))
		}
	case FeatureSporePod:
		c := featureColor(f, color.RGBA{R: 200, G: 180, B: 60, A: 255})
		breathe := 1 + 0.12*math.Sin(t*3+phase)
		s.FillCircle(0, 0, r*breathe, c)
		s.StrokeCircle(0, 0, r*breathe, 1.5, shade(c, -0.4))
		s.FillCircle(-r*0.3, -r*0.3, r*0.2, shade(c, 0.4))
	}
}
