package render

import (
	"image/color"
	"math"
)

// ReloadingLabel is shown above the player while a reload is in progress.
const ReloadingLabel = "RELOADING"

const (
	textRise      = 24.0 // px risen over a text's lifetime
	textFadeStart = 0.70 // progress at which a text starts to fade
	textCullPad   = 40.0
	charWidth     = 0.6 // of font size, for background sizing
)

var textDefaults = map[TextKind]struct {
	size float64
	clr  color.RGBA
}{
	TextDamage: {12, color.RGBA{R: 255, G: 90, B: 70, A: 255}},
	TextLoot:   {13, color.RGBA{R: 255, G: 215, B: 80, A: 255}},
	TextSystem: {16, color.RGBA{R: 200, G: 230, B: 255, A: 255}},
}

// OverlayRenderer draws world-space labels. Nothing here is cached.
type OverlayRenderer struct {
	drawn int
}

// NewOverlayRenderer creates an overlay renderer.
func NewOverlayRenderer() *OverlayRenderer { return &OverlayRenderer{} }

// Drawn returns how many labels the last frame drew.
func (r *OverlayRenderer) Drawn() int { return r.drawn }

// Render draws the reload indicator and every visible floating text.
func (r *OverlayRenderer) Render(s Surface, snap *Snapshot) {
	r.drawn = 0
	if p := snap.Player; p != nil && snap.Status.Reloading && !snap.BaseDrop.Active {
		if IsVisible(p.X, p.Y, radiusOf(p)+textCullPad, snap.Camera) {
			pulse := 0.65 + 0.35*math.Sin(snap.Time*8)
			drawLabel(s, ReloadingLabel, p.X, p.Y-radiusOf(p)-18, 11,
				withAlpha(color.RGBA{R: 255, G: 200, B: 60, A: 255}, pulse), pulse)
			r.drawn++
		}
	}

	for i := range snap.FloatingTexts {
		ft := &snap.FloatingTexts[i]
		if ft.Text == "" || !IsVisible(ft.X, ft.Y, textCullPad, snap.Camera) {
			continue
		}
		progress := 1 - ft.LifeFraction()
		alpha := 1.0
		if progress > textFadeStart {
			alpha = 1 - (progress-textFadeStart)/(1-textFadeStart)
		}
		if alpha < 0.05 {
			continue
		}
		def, ok := textDefaults[ft.Kind]
		if !ok {
			def = textDefaults[TextSystem]
		}
		clr := def.clr
		if ft.Color.A != 0 {
			clr = ft.Color
		}
		y := ft.Y - progress*textRise
		if ft.Kind == TextSystem {
			drawLabel(s, ft.Text, ft.X, y, def.size, withAlpha(clr, alpha), alpha)
		} else {
			s.Text(ft.Text, ft.X+1, y+1, def.size, withAlpha(color.RGBA{A: 255}, alpha*0.6))
			s.Text(ft.Text, ft.X, y, def.size, withAlpha(clr, alpha))
		}
		r.drawn++
	}
}

// drawLabel draws str centred on (x, y) over a dark plate.
func drawLabel(s Surface, str string, x, y, size float64, clr color.RGBA, alpha float64) {
	w := float64(len(str))*size*charWidth + 10
	h := size + 6
	s.FillRect(x-w/2, y-h/2, w, h, withAlpha(color.RGBA{R: 20, G: 22, B: 20, A: 210}, alpha))
	s.FillRect(x-w/2, y-h/2, 3, h, clr)
	s.StrokeRect(x-w/2, y-h/2, w, h, 0.5, withAlpha(color.RGBA{R: 100, G: 100, B: 100, A: 80}, alpha))
	s.Text(str, x, y-size*0.6, size, clr)
}
