package render

import (
	"fmt"
	"image/color"
	"math"
)

// SpritePadding is added to the radius on every side of a cached sprite so
// outlines, legs and glows are not clipped.
const SpritePadding = 10.0

// SpriteCache serves frozen-pose rasters for cacheable visuals. Keys are
// "{resolvedKind}|{cacheKey}_LOD{lod}"; entries are never evicted, only dropped together
// by Clear.
type SpriteCache struct {
	alloc   Allocator
	entries map[string]Surface

	hits, misses int
}

// NewSpriteCache creates an empty cache that allocates through alloc.
func NewSpriteCache(alloc Allocator) *SpriteCache {
	return &SpriteCache{alloc: alloc, entries: make(map[string]Surface)}
}

// SpriteKey returns the cache key for e under def at lod. The resolved kind
// leads the key so shape-matched entities never share another kind's raster.
func SpriteKey(def *VisualDef, e *Entity, lod int) string {
	return string(def.Kind) + "|" + def.Key(e) + "_LOD" + fmt.Sprint(lod)
}

// SpriteSize is the side length of the square raster for radius r.
func SpriteSize(r float64) int {
	if r <= 0 {
		r = FallbackRadius
	}
	return int(math.Ceil((r + SpritePadding) * 2))
}

// Sprite returns the cached raster for e, building it on first use, or nil
// when def is dynamic at lod and must be drawn live.
func (c *SpriteCache) Sprite(e *Entity, def *VisualDef, lod int) Surface {
	if def == nil || def.Policy(lod) == Dynamic {
		return nil
	}
	key := SpriteKey(def, e, lod)
	if s, ok := c.entries[key]; ok {
		c.hits++
		return s
	}
	c.misses++
	size := SpriteSize(e.Radius)
	s := c.alloc.NewSurface(size, size)
	s.Save()
	s.Translate(float64(size)/2, float64(size)/2)
	def.Render(s, e, 0, lod)
	s.Restore()
	c.entries[key] = s
	return s
}

// Clear drops every entry; they are rebuilt lazily.
func (c *SpriteCache) Clear() {
	c.entries = make(map[string]Surface)
}

// Len returns the number of cached rasters.
func (c *SpriteCache) Len() int { return len(c.entries) }

// Hits returns lookups served from the cache since creation.
func (c *SpriteCache) Hits() int { return c.hits }

// Misses returns lookups that built a new raster since creation.
func (c *SpriteCache) Misses() int { return c.misses }

// ProjectileSpriteSize is the fixed side of every cached projectile sprite.
const ProjectileSpriteSize = 16

// ProjectileCache is the simplified sprite path for projectiles, keyed by
// kind, colour and homing flag.
type ProjectileCache struct {
	alloc   Allocator
	entries map[string]Surface
	misses  int
}

// NewProjectileCache creates an empty projectile sprite cache.
func NewProjectileCache(alloc Allocator) *ProjectileCache {
	return &ProjectileCache{alloc: alloc, entries: make(map[string]Surface)}
}

// Cacheable reports whether a projectile kind's pixels are independent of
// its per-instance state.
func Cacheable(kind ProjectileKind) bool {
	return kind != ProjectileFlame
}

func projectileKey(p *Projectile) string {
	c := p.Color
	return fmt.Sprintf("%s|%02x%02x%02x%02x|%t", p.Kind, c.R, c.G, c.B, c.A, p.Homing)
}

// Sprite returns the cached sprite for p, or nil when p must be drawn live.
func (c *ProjectileCache) Sprite(p *Projectile) Surface {
	if !Cacheable(p.Kind) {
		return nil
	}
	key := projectileKey(p)
	if s, ok := c.entries[key]; ok {
		return s
	}
	c.misses++
	s := c.alloc.NewSurface(ProjectileSpriteSize, ProjectileSpriteSize)
	s.Save()
	s.Translate(ProjectileSpriteSize/2, ProjectileSpriteSize/2)
	drawProjectile(s, p)
	s.Restore()
	c.entries[key] = s
	return s
}

// Clear drops every projectile sprite.
func (c *ProjectileCache) Clear() { c.entries = make(map[string]Surface) }

// Len returns the number of cached projectile sprites.
func (c *ProjectileCache) Len() int { return len(c.entries) }

// Misses returns how many sprites were built since creation.
func (c *ProjectileCache) Misses() int { return c.misses }

// drawProjectile draws p around the origin facing +x.
func drawProjectile(s Surface, p *Projectile) {
	clr := p.Color
	if clr.A == 0 {
		clr = color.RGBA{R: 255, G: 230, B: 120, A: 255}
	}
	switch p.Kind {
	case ProjectileMissile:
		s.FillPolygon([]Point{{6, 0}, {-4, -3}, {-4, 3}}, clr)
		s.FillCircle(-5, 0, 2, color.RGBA{R: 255, G: 160, B: 40, A: 220})
		if p.Homing {
			s.StrokeCircle(0, 0, 6.5, 1, withAlpha(glowWhite, 0.5))
		}
	case ProjectileLaser:
		s.StrokeLine(-7, 0, 7, 0, 2, clr)
		s.StrokeLine(-7, 0, 7, 0, 0.8, glowWhite)
	case ProjectilePlasma:
		drawGlowDisc(s, 0, 0, 7, clr)
	case ProjectileFlame:
		drawFlameJet(s, p)
	default:
		s.FillCircle(0, 0, 2.5, clr)
		s.StrokeLine(-6, 0, -2, 0, 1.5, withAlpha(clr, 0.5))
		if p.Homing {
			s.StrokeCircle(0, 0, 5, 1, withAlpha(glowWhite, 0.5))
		}
	}
}

// drawFlameJet grows and fades with the distance the jet has travelled.
func drawFlameJet(s Surface, p *Projectile) {
	rng := p.Range
	if rng <= 0 {
		rng = 120
	}
	f := p.Travelled / rng
	if f > 1 {
		f = 1
	}
	r := 3 + 9*f
	s.FillCircle(0, 0, r, withAlpha(color.RGBA{R: 255, G: 120, B: 20, A: 255}, 0.7*(1-f)+0.1))
	s.FillCircle(0, 0, r*0.5, withAlpha(color.RGBA{R: 255, G: 230, B: 120, A: 255}, 0.8*(1-f)+0.1))
}
