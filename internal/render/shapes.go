package render

import (
	"image/color"
	"math"
)

// Procedural shape library. Every routine draws around (0,0) facing +x,
// in the caller's transform, and reads only its arguments. Higher lod
// values drop secondary detail (limbs, glows) but keep time-driven motion.

var (
	outlineDark = color.RGBA{R: 10, G: 12, B: 10, A: 200}
	eyeWhite    = color.RGBA{R: 240, G: 240, B: 225, A: 255}
	glowWhite   = color.RGBA{R: 255, G: 255, B: 230, A: 255}
)

func bodyColor(e *Entity, def color.RGBA) color.RGBA {
	if e.Color.A == 0 {
		return def
	}
	return e.Color
}

// regularPolygon returns n vertices on a circle of radius r, first vertex
// at angle rot.
func regularPolygon(n int, r, rot float64) []Point {
	pts := make([]Point, n)
	for i := 0; i < n; i++ {
		a := rot + float64(i)/float64(n)*2*math.Pi
		pts[i] = Point{math.Cos(a) * r, math.Sin(a) * r}
	}
	return pts
}

// drawLegs draws count limb strokes that swing with t.
func drawLegs(s Surface, r float64, count int, t, speed float64, clr color.RGBA) {
	for i := 0; i < count; i++ {
		side := 1.0
		if i%2 == 1 {
			side = -1
		}
		base := float64(i/2)*r*0.5 - r*0.25
		swing := math.Sin(t*speed+float64(i)) * r * 0.3
		s.StrokeLine(base, side*r*0.6, base+swing, side*r*1.25, 2, clr)
	}
}

func drawGrunt(s Surface, e *Entity, t float64, lod int) {
	r := radiusOf(e)
	c := bodyColor(e, color.RGBA{R: 200, G: 60, B: 50, A: 255})
	if lod == 0 {
		drawLegs(s, r, 4, t, 9, shade(c, -0.4))
	}
	s.FillCircle(0, 0, r, c)
	s.StrokeCircle(0, 0, r, 1.5, outlineDark)
	s.FillCircle(r*0.45, -r*0.25, r*0.18, eyeWhite)
	s.FillCircle(r*0.45, r*0.25, r*0.18, eyeWhite)
	if lod < 2 {
		s.FillCircle(-r*0.2, 0, r*0.35, shade(c, 0.2))
	}
}

func drawDart(s Surface, e *Entity, t float64, lod int) {
	r := radiusOf(e)
	c := bodyColor(e, color.RGBA{R: 230, G: 150, B: 40, A: 255})
	pts := []Point{{r * 1.2, 0}, {-r * 0.8, -r * 0.75}, {-r * 0.4, 0}, {-r * 0.8, r * 0.75}}
	s.FillPolygon(pts, c)
	s.StrokePolygon(pts, 1.2, outlineDark)
	if lod == 0 {
		flick := 0.6 + 0.4*math.Sin(t*20)
		s.FillCircle(-r*0.7, 0, r*0.25*flick, withAlpha(color.RGBA{R: 255, G: 220, B: 120, A: 255}, 0.7))
	}
}

func drawBrute(s Surface, e *Entity, t float64, lod int) {
	r := radiusOf(e)
	c := bodyColor(e, color.RGBA{R: 120, G: 70, B: 160, A: 255})
	if lod == 0 {
		drawLegs(s, r, 6, t, 5, shade(c, -0.5))
	}
	s.FillRect(-r*0.85, -r*0.85, r*1.7, r*1.7, c)
	s.StrokeRect(-r*0.85, -r*0.85, r*1.7, r*1.7, 2, outlineDark)
	s.FillRect(r*0.3, -r*0.6, r*0.5, r*1.2, shade(c, -0.3))
	if lod < 2 {
		for i := 0; i < e.Level && i < 3; i++ {
			y := -r*0.5 + float64(i)*r*0.5
			s.StrokeLine(-r*0.6, y, 0, y, 2, shade(c, 0.35))
		}
	}
}

func drawSwarmer(s Surface, e *Entity, t float64, lod int) {
	r := radiusOf(e)
	c := bodyColor(e, color.RGBA{R: 90, G: 200, B: 90, A: 255})
	if lod == 0 {
		beat := math.Sin(t * 30)
		s.StrokeLine(0, 0, -r*0.4, -r*(1.1+0.3*beat), 1, shade(c, 0.3))
		s.StrokeLine(0, 0, -r*0.4, r*(1.1+0.3*beat), 1, shade(c, 0.3))
	}
	s.FillEllipse(0, 0, r, r*0.7, c)
	s.FillCircle(r*0.6, 0, r*0.25, eyeWhite)
}

func drawShellback(s Surface, e *Entity, t float64, lod int) {
	r := radiusOf(e)
	c := bodyColor(e, color.RGBA{R: 60, G: 130, B: 170, A: 255})
	hex := regularPolygon(6, r, 0)
	s.FillPolygon(hex, c)
	s.StrokePolygon(hex, 2, outlineDark)
	if lod < 2 {
		s.StrokePolygon(regularPolygon(6, r*0.6, 0), 1.5, shade(c, 0.35))
	}
	if lod == 0 {
		pulse := 0.5 + 0.5*math.Sin(t*3)
		s.StrokeCircle(0, 0, r*1.15, 1, withAlpha(color.RGBA{R: 140, G: 220, B: 255, A: 255}, 0.3+0.4*pulse))
	}
}

func drawSplitter(s Surface, e *Entity, t float64, lod int) {
	r := radiusOf(e)
	c := bodyColor(e, color.RGBA{R: 220, G: 90, B: 170, A: 255})
	wob := 0.0
	if lod == 0 {
		wob = math.Sin(t*6) * r * 0.08
	}
	pts := []Point{{r + wob, 0}, {0, -r - wob}, {-r + wob, 0}, {0, r + wob}}
	s.FillPolygon(pts, c)
	s.StrokeLine(0, -r, 0, r, 1.5, shade(c, -0.4))
}

// drawBurrower encodes its dig cycle in a vertical bob; it cannot be frozen.
func drawBurrower(s Surface, e *Entity, t float64, lod int) {
	r := radiusOf(e)
	c := bodyColor(e, color.RGBA{R: 150, G: 110, B: 70, A: 255})
	bob := math.Sin(t*4) * r * 0.25
	s.FillEllipse(0, bob, r*1.1, r*0.8, shade(c, -0.35))
	s.FillCircle(0, bob-r*0.1, r*0.8, c)
	if lod < 2 {
		for i := 0; i < 3; i++ {
			a := -0.5 + float64(i)*0.5
			s.StrokeLine(r*0.6, bob, r*0.6+math.Cos(a)*r*0.6, bob+math.Sin(a)*r*0.6, 2, eyeWhite)
		}
	}
}

func drawBoss(s Surface, e *Entity, t float64, lod int) {
	r := radiusOf(e)
	c := bodyColor(e, color.RGBA{R: 170, G: 30, B: 40, A: 255})
	if lod == 0 {
		glow := 0.25 + 0.15*math.Sin(t*2)
		s.FillCircle(0, 0, r*1.35, withAlpha(color.RGBA{R: 255, G: 60, B: 40, A: 255}, glow))
	}
	spikes := 10
	if lod > 0 {
		spikes = 6
	}
	for i := 0; i < spikes; i++ {
		a := float64(i)/float64(spikes)*2*math.Pi + t*0.5
		s.StrokeLine(math.Cos(a)*r*0.8, math.Sin(a)*r*0.8, math.Cos(a)*r*1.2, math.Sin(a)*r*1.2, 3, shade(c, -0.3))
	}
	s.FillCircle(0, 0, r, c)
	s.StrokeCircle(0, 0, r, 3, outlineDark)
	s.FillCircle(r*0.4, 0, r*0.3, glowWhite)
	s.FillCircle(r*0.48, 0, r*0.12, outlineDark)
}

func drawDrone(s Surface, e *Entity, t float64, lod int) {
	r := radiusOf(e)
	c := bodyColor(e, color.RGBA{R: 80, G: 180, B: 230, A: 255})
	for i := 0; i < 4; i++ {
		a := float64(i)*math.Pi/2 + math.Pi/4
		x, y := math.Cos(a)*r*0.9, math.Sin(a)*r*0.9
		s.StrokeLine(0, 0, x, y, 1.5, shade(c, -0.4))
		if lod == 0 {
			spin := t * 40
			s.StrokeLine(x-math.Cos(spin)*r*0.35, y-math.Sin(spin)*r*0.35,
				x+math.Cos(spin)*r*0.35, y+math.Sin(spin)*r*0.35, 1, withAlpha(eyeWhite, 0.6))
		} else {
			s.StrokeCircle(x, y, r*0.3, 1, withAlpha(eyeWhite, 0.4))
		}
	}
	s.FillCircle(0, 0, r*0.45, c)
}

func drawMarine(s Surface, e *Entity, t float64, lod int) {
	r := radiusOf(e)
	c := bodyColor(e, color.RGBA{R: 60, G: 150, B: 80, A: 255})
	if lod == 0 {
		drawLegs(s, r, 2, t, 8, shade(c, -0.4))
	}
	s.FillCircle(0, 0, r, c)
	s.FillRect(r*0.3, -r*0.15, r*1.1, r*0.3, color.RGBA{R: 50, G: 50, B: 55, A: 255})
	s.FillCircle(0, 0, r*0.45, shade(c, 0.25))
}

// turretBase draws the shared plinth every turret sits on.
func turretBase(s Surface, r float64, lvl int) {
	s.FillPolygon(regularPolygon(8, r, math.Pi/8), color.RGBA{R: 70, G: 72, B: 78, A: 255})
	s.StrokePolygon(regularPolygon(8, r, math.Pi/8), 1.5, outlineDark)
	for i := 0; i < lvl && i < 5; i++ {
		a := float64(i) * 0.4
		s.FillCircle(math.Cos(a+math.Pi)*r*0.75, math.Sin(a+math.Pi)*r*0.75, 1.8, color.RGBA{R: 255, G: 210, B: 60, A: 255})
	}
}

func drawGunTurret(s Surface, e *Entity, _ float64, _ int) {
	r := radiusOf(e)
	turretBase(s, r, e.Level)
	c := bodyColor(e, color.RGBA{R: 150, G: 160, B: 170, A: 255})
	s.FillRect(0, -r*0.18, r*1.3, r*0.36, shade(c, -0.3))
	s.FillCircle(0, 0, r*0.55, c)
}

func drawLaserTurret(s Surface, e *Entity, _ float64, _ int) {
	r := radiusOf(e)
	turretBase(s, r, e.Level)
	c := bodyColor(e, color.RGBA{R: 200, G: 60, B: 220, A: 255})
	s.FillPolygon([]Point{{r * 1.4, 0}, {0, -r * 0.4}, {0, r * 0.4}}, shade(c, -0.2))
	s.FillCircle(0, 0, r*0.5, c)
	s.FillCircle(r*0.2, 0, r*0.18, glowWhite)
}

func drawFlameTurret(s Surface, e *Entity, _ float64, _ int) {
	r := radiusOf(e)
	turretBase(s, r, e.Level)
	c := bodyColor(e, color.RGBA{R: 230, G: 110, B: 30, A: 255})
	s.FillRect(0, -r*0.3, r*1.1, r*0.6, shade(c, -0.35))
	s.FillEllipse(0, 0, r*0.6, r*0.5, c)
}

// drawTeslaTurret arcs continuously, so it is always live.
func drawTeslaTurret(s Surface, e *Entity, t float64, lod int) {
	r := radiusOf(e)
	turretBase(s, r, e.Level)
	c := bodyColor(e, color.RGBA{R: 120, G: 200, B: 255, A: 255})
	s.FillCircle(0, 0, r*0.5, c)
	arcs := 3
	if lod > 0 {
		arcs = 1
	}
	for i := 0; i < arcs; i++ {
		a := t*7 + float64(i)*2.1
		x, y := math.Cos(a)*r*0.9, math.Sin(a)*r*0.9
		mx, my := x*0.5+math.Sin(t*31+float64(i))*r*0.15, y*0.5+math.Cos(t*27+float64(i))*r*0.15
		s.StrokeLine(0, 0, mx, my, 1.2, glowWhite)
		s.StrokeLine(mx, my, x, y, 1.2, glowWhite)
	}
}

// drawBase is the player's dropped command structure; its beacon blinks.
func drawBase(s Surface, e *Entity, t float64, lod int) {
	r := radiusOf(e)
	c := bodyColor(e, color.RGBA{R: 90, G: 100, B: 120, A: 255})
	s.FillPolygon(regularPolygon(8, r, math.Pi/8), shade(c, -0.3))
	s.FillPolygon(regularPolygon(8, r*0.8, math.Pi/8), c)
	s.StrokePolygon(regularPolygon(8, r, math.Pi/8), 2, outlineDark)
	s.FillRect(-r*0.3, -r*0.3, r*0.6, r*0.6, shade(c, 0.25))
	if lod < 2 {
		s.StrokeCircle(0, 0, r*0.55, 1, withAlpha(eyeWhite, 0.3))
	}
	blink := 0.3
	if math.Mod(t, 1.2) < 0.6 {
		blink = 1
	}
	s.FillCircle(0, 0, r*0.12, withAlpha(color.RGBA{R: 80, G: 255, B: 120, A: 255}, blink))
}

func drawBuildSlot(s Surface, e *Entity, _ float64, _ int) {
	r := radiusOf(e)
	dash := color.RGBA{R: 180, G: 200, B: 180, A: 140}
	const segs = 12
	for i := 0; i < segs; i += 2 {
		a0 := float64(i) / segs * 2 * math.Pi
		a1 := float64(i+1) / segs * 2 * math.Pi
		s.StrokeLine(math.Cos(a0)*r, math.Sin(a0)*r, math.Cos(a1)*r, math.Sin(a1)*r, 1.5, dash)
	}
	s.StrokeLine(-r*0.3, 0, r*0.3, 0, 1.5, dash)
	s.StrokeLine(0, -r*0.3, 0, r*0.3, 1.5, dash)
}

func drawPlayer(s Surface, e *Entity, t float64, lod int) {
	r := radiusOf(e)
	c := bodyColor(e, color.RGBA{R: 240, G: 220, B: 90, A: 255})
	if lod < 2 {
		glow := 0.2 + 0.1*math.Sin(t*4)
		s.FillCircle(0, 0, r*1.4, withAlpha(c, glow))
	}
	s.FillCircle(0, 0, r, c)
	s.StrokeCircle(0, 0, r, 2, outlineDark)
	s.FillRect(r*0.2, -r*0.2, r*1.2, r*0.4, color.RGBA{R: 60, G: 60, B: 70, A: 255})
	s.FillCircle(r*0.3, 0, r*0.3, shade(c, -0.3))
}

// drawGlowDisc paints a soft radial disc as concentric translucent rings,
// brightest at the centre.
func drawGlowDisc(s Surface, cx, cy, r float64, clr color.RGBA) {
	rings := []struct{ f, a float64 }{
		{1.0, 0.12},
		{0.75, 0.2},
		{0.5, 0.35},
		{0.28, 0.6},
	}
	for _, ring := range rings {
		s.FillCircle(cx, cy, r*ring.f, withAlpha(clr, ring.a))
	}
	s.FillCircle(cx, cy, r*0.12, withAlpha(glowWhite, 0.8))
}
