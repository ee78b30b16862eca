package render

import (
	"image/color"
	"math"
)

// ShadowMinLift is the lowest Lift that still casts a shadow.
const ShadowMinLift = 0.2

// projectileCullRadius covers the largest projectile visual.
const projectileCullRadius = ProjectileSpriteSize / 2

var (
	shadowCol    = color.RGBA{A: 90}
	barBack      = color.RGBA{R: 20, G: 20, B: 20, A: 200}
	barHealth    = color.RGBA{R: 90, G: 220, B: 90, A: 255}
	barHealthLow = color.RGBA{R: 230, G: 70, B: 50, A: 255}
	barShell     = color.RGBA{R: 90, G: 170, B: 255, A: 255}
)

// EntityRenderer draws every gameplay entity category in a fixed order.
type EntityRenderer struct {
	registry    *Registry
	cfg         *Config
	sprites     *SpriteCache
	projectiles *ProjectileCache

	stats FrameStats
}

// NewEntityRenderer creates a renderer whose caches allocate via alloc.
func NewEntityRenderer(alloc Allocator, registry *Registry, cfg *Config) *EntityRenderer {
	if registry == nil {
		registry = DefaultRegistry()
	}
	if cfg == nil {
		cfg = NewConfig()
	}
	return &EntityRenderer{
		registry:    registry,
		cfg:         cfg,
		sprites:     NewSpriteCache(alloc),
		projectiles: NewProjectileCache(alloc),
	}
}

// Sprites exposes the entity sprite cache.
func (r *EntityRenderer) Sprites() *SpriteCache { return r.sprites }

// Projectiles exposes the projectile sprite cache.
func (r *EntityRenderer) Projectiles() *ProjectileCache { return r.projectiles }

// Stats returns the entity counters of the last frame.
func (r *EntityRenderer) Stats() FrameStats { return r.stats }

// ClearCache drops all entity and projectile sprites.
func (r *EntityRenderer) ClearCache() {
	r.sprites.Clear()
	r.projectiles.Clear()
}

// Render draws slots, bases, turrets, allies, enemies, the player and then
// projectiles, in that order, in world space.
func (r *EntityRenderer) Render(s Surface, snap *Snapshot, t float64) {
	hits, misses := r.sprites.Hits(), r.sprites.Misses()
	r.stats = FrameStats{}

	lod := DetailLevel(len(snap.Enemies), r.cfg.Thresholds(snap.Settings.Mode))
	r.stats.LOD = lod

	if !snap.BaseDrop.InFlight {
		for i := range snap.TurretSpots {
			spot := &snap.TurretSpots[i]
			if spot.Occupied {
				continue
			}
			e := Entity{Kind: KindBuildSlot, X: spot.X, Y: spot.Y, Radius: spot.Radius}
			r.drawEntity(s, &e, snap, t, lod, true)
		}
	}
	for i := range snap.Bases {
		r.drawEntity(s, &snap.Bases[i], snap, t, lod, true)
	}
	for i := range snap.Turrets {
		r.drawEntity(s, &snap.Turrets[i], snap, t, lod, true)
	}
	for i := range snap.Allies {
		r.drawEntity(s, &snap.Allies[i], snap, t, lod, true)
	}
	for i := range snap.Enemies {
		e := &snap.Enemies[i]
		cached := lod > 0 && !r.cfg.NeverCache(r.registry.ResolveKind(e))
		r.drawEntity(s, e, snap, t, lod, cached)
	}
	if snap.Player != nil && !snap.BaseDrop.Active {
		r.drawEntity(s, snap.Player, snap, t, lod, true)
	}
	for i := range snap.Projectiles {
		r.drawProjectile(s, &snap.Projectiles[i], snap.Camera)
	}

	r.stats.SpriteHits = r.sprites.Hits() - hits
	r.stats.SpriteMiss = r.sprites.Misses() - misses
}

func (r *EntityRenderer) drawEntity(s Surface, e *Entity, snap *Snapshot, t float64, lod int, cached bool) {
	rad := radiusOf(e)
	if !IsVisible(e.X, e.Y, rad, snap.Camera) {
		r.stats.Culled++
		return
	}
	def := r.registry.Definition(e)

	s.Save()
	s.Translate(e.X, e.Y)
	if snap.Settings.ShowShadows && e.Lift >= ShadowMinLift && !e.Underground {
		drawShadow(s, rad, e.Lift)
	}
	s.Rotate(e.Angle)

	var sprite Surface
	if cached {
		sprite = r.sprites.Sprite(e, def, lod)
	}
	if sprite != nil {
		s.Blit(sprite, BlitOptions{Centered: true})
		r.stats.SpriteBlits++
	} else {
		def.Render(s, e, t, lod)
		r.stats.LiveDraws++
	}
	s.Restore()

	if !e.Underground {
		drawBars(s, e, rad)
	}
}

func (r *EntityRenderer) drawProjectile(s Surface, p *Projectile, cam Camera) {
	if !IsVisible(p.X, p.Y, projectileCullRadius, cam) {
		r.stats.Culled++
		return
	}
	s.Save()
	s.Translate(p.X, p.Y)
	s.Rotate(p.Angle)
	if sprite := r.projectiles.Sprite(p); sprite != nil {
		s.Blit(sprite, BlitOptions{Centered: true})
		r.stats.ProjectilesCached++
	} else {
		drawProjectile(s, p)
		r.stats.ProjectilesLive++
	}
	s.Restore()
}

// drawShadow puts a flat ellipse under the body, offset down-right and
// shrinking as the entity rises.
func drawShadow(s Surface, r, lift float64) {
	k := math.Min(lift, 1.5)
	s.FillEllipse(r*0.25*k, r*0.35*k, r*0.9, r*0.45, shadowCol)
}

// drawBars draws health and shell bars above e in unrotated world space.
func drawBars(s Surface, e *Entity, r float64) {
	w := math.Max(r*2, 16)
	x := e.X - w/2
	y := e.Y - r - 8
	if e.MaxHealth > 0 && e.Health < e.MaxHealth {
		f := clamp01(e.Health / e.MaxHealth)
		clr := barHealth
		if f < 0.3 {
			clr = barHealthLow
		}
		s.FillRect(x, y, w, 3, barBack)
		s.FillRect(x, y, w*f, 3, clr)
		y -= 4
	}
	if e.MaxShell > 0 && e.Shell > 0 {
		f := clamp01(e.Shell / e.MaxShell)
		s.FillRect(x, y, w, 2, barBack)
		s.FillRect(x, y, w*f, 2, barShell)
	}
}

func clamp01(v float64) float64 {
	if v < 0 || math.IsNaN(v) {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
