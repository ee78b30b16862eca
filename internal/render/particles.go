package render

import (
	"image/color"
)

// GlowBaseSize is the side of every shared glow raster; blits scale it to
// each particle's radius.
const GlowBaseSize = 32

// minParticleAlpha keeps a spent particle's blit translucent rather than
// letting a zero alpha read as opaque.
const minParticleAlpha = 0.01

type glowKey struct {
	clr  color.RGBA
	size int
}

// ParticleRenderer batches particles by colour so each distinct colour
// costs one glow fetch and every particle one blit.
type ParticleRenderer struct {
	alloc Allocator
	glows map[glowKey]Surface

	// per-frame scratch
	order  []color.RGBA
	groups map[color.RGBA][]int

	fetches, blits, builds int
}

// NewParticleRenderer creates a renderer with an empty glow cache.
func NewParticleRenderer(alloc Allocator) *ParticleRenderer {
	return &ParticleRenderer{
		alloc:  alloc,
		glows:  make(map[glowKey]Surface),
		groups: make(map[color.RGBA][]int),
	}
}

// Fetches returns the glow fetches of the last frame.
func (r *ParticleRenderer) Fetches() int { return r.fetches }

// Blits returns the particle blits of the last frame.
func (r *ParticleRenderer) Blits() int { return r.blits }

// Builds returns how many glow rasters were created since the last clear.
func (r *ParticleRenderer) Builds() int { return r.builds }

// ClearCache drops every glow raster.
func (r *ParticleRenderer) ClearCache() {
	r.glows = make(map[glowKey]Surface)
	r.groups = make(map[color.RGBA][]int)
	r.builds = 0
}

// Render culls, groups and blits particles in world space.
func (r *ParticleRenderer) Render(s Surface, particles []Particle, cam Camera) {
	r.fetches, r.blits = 0, 0
	// Slices keep their capacity across frames; an empty one marks a colour
	// not yet seen this frame.
	for k, idx := range r.groups {
		r.groups[k] = idx[:0]
	}
	r.order = r.order[:0]

	for i := range particles {
		p := &particles[i]
		if !IsVisible(p.X, p.Y, p.Radius, cam) {
			continue
		}
		idx := r.groups[p.Color]
		if len(idx) == 0 {
			r.order = append(r.order, p.Color)
		}
		r.groups[p.Color] = append(idx, i)
	}

	for _, clr := range r.order {
		glow := r.glow(clr)
		r.fetches++
		for _, i := range r.groups[clr] {
			p := &particles[i]
			rad := p.Radius
			if rad <= 0 {
				rad = 1
			}
			alpha := p.LifeFraction()
			if alpha < minParticleAlpha {
				alpha = minParticleAlpha
			}
			s.Blit(glow, BlitOptions{
				X:        p.X,
				Y:        p.Y,
				Scale:    rad * 2 / GlowBaseSize,
				Alpha:    alpha,
				Centered: true,
			})
			r.blits++
		}
	}
}

func (r *ParticleRenderer) glow(clr color.RGBA) Surface {
	key := glowKey{clr: clr, size: GlowBaseSize}
	if g, ok := r.glows[key]; ok {
		return g
	}
	g := r.alloc.NewSurface(GlowBaseSize, GlowBaseSize)
	half := float64(GlowBaseSize) / 2
	drawGlowDisc(g, half, half, half, clr)
	r.glows[key] = g
	r.builds++
	return g
}
