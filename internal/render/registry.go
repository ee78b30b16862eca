package render

import (
	"fmt"
	"image/color"
)

// CachePolicy says whether a visual may be served from a frozen raster.
type CachePolicy uint8

const (
	Dynamic CachePolicy = iota // draw live every frame
	Static                     // rasterise once, blit afterwards
)

func (p CachePolicy) String() string {
	if p == Static {
		return "static"
	}
	return "dynamic"
}

// RenderFunc draws e around the origin of the current transform. It must be
// deterministic for its inputs and must not panic.
type RenderFunc func(s Surface, e *Entity, t float64, lod int)

// PolicyFunc decides the cache policy for an LOD tier.
type PolicyFunc func(lod int) CachePolicy

// KeyFunc derives a cache key from the pixel-affecting attributes only.
type KeyFunc func(e *Entity) string

// VisualDef is the complete visual description of one entity kind.
type VisualDef struct {
	Kind   Kind
	Render RenderFunc
	Policy PolicyFunc
	Key    KeyFunc
}

// AlwaysStatic caches at every LOD.
func AlwaysStatic(int) CachePolicy { return Static }

// AlwaysDynamic never caches.
func AlwaysDynamic(int) CachePolicy { return Dynamic }

// StaticFrom caches once the LOD reaches min.
func StaticFrom(min int) PolicyFunc {
	return func(lod int) CachePolicy {
		if lod >= min {
			return Static
		}
		return Dynamic
	}
}

// DefaultKey is kind|rgba|radius|level. Radius is rounded to a tenth so
// float noise cannot split one configuration into many entries.
func DefaultKey(e *Entity) string {
	c := e.Color
	return fmt.Sprintf("%s|%02x%02x%02x%02x|%.1f|%d", e.Kind, c.R, c.G, c.B, c.A, e.Radius, e.Level)
}

// Registry maps entity kinds to visual definitions. It holds no per-frame
// state; it is configured at startup and read afterwards.
type Registry struct {
	defs     map[Kind]*VisualDef
	shapes   map[Shape]Kind
	fallback *VisualDef
}

// NewRegistry returns an empty registry that resolves everything to the
// default filled-circle definition.
func NewRegistry() *Registry {
	return &Registry{
		defs: make(map[Kind]*VisualDef),
		shapes: map[Shape]Kind{
			ShapeCircle:   KindGrunt,
			ShapeTriangle: KindDart,
			ShapeSquare:   KindBrute,
			ShapeHexagon:  KindShellback,
			ShapeDiamond:  KindSplitter,
		},
		fallback: &VisualDef{
			Kind:   KindUnknown,
			Render: drawFallbackCircle,
			Policy: StaticFrom(1),
			Key:    DefaultKey,
		},
	}
}

// Register installs a definition for kind using DefaultKey.
func (r *Registry) Register(kind Kind, render RenderFunc, policy PolicyFunc) {
	r.RegisterDef(VisualDef{Kind: kind, Render: render, Policy: policy})
}

// RegisterDef installs def, filling in missing functions with defaults.
func (r *Registry) RegisterDef(def VisualDef) {
	if def.Render == nil {
		def.Render = drawFallbackCircle
	}
	if def.Policy == nil {
		def.Policy = AlwaysDynamic
	}
	if def.Key == nil {
		def.Key = DefaultKey
	}
	d := def
	r.defs[def.Kind] = &d
}

// ResolveKind returns the entity's explicit tag, or a shape-based guess for
// untagged entities, or KindUnknown.
func (r *Registry) ResolveKind(e *Entity) Kind {
	if e == nil {
		return KindUnknown
	}
	if e.Kind != KindUnknown {
		return e.Kind
	}
	return r.shapes[e.Shape]
}

// Definition returns the visual definition for e. Unknown kinds silently
// get the default filled circle.
func (r *Registry) Definition(e *Entity) *VisualDef {
	if d, ok := r.defs[r.ResolveKind(e)]; ok {
		return d
	}
	return r.fallback
}

// Has reports whether kind has a registered definition.
func (r *Registry) Has(kind Kind) bool {
	_, ok := r.defs[kind]
	return ok
}

// drawFallbackCircle is the default visual: a plain filled disc.
func drawFallbackCircle(s Surface, e *Entity, _ float64, _ int) {
	clr := e.Color
	if clr.A == 0 {
		clr = color.RGBA{R: 200, G: 200, B: 200, A: 255}
	}
	s.FillCircle(0, 0, radiusOf(e), clr)
}

// FallbackRadius substitutes for a missing radius.
const FallbackRadius = 12.0

func radiusOf(e *Entity) float64 {
	if e == nil || e.Radius <= 0 {
		return FallbackRadius
	}
	return e.Radius
}

// DefaultRegistry returns a registry populated with every built-in kind.
func DefaultRegistry() *Registry {
	r := NewRegistry()

	// Enemies cache from LOD 1 up; their live routines simplify on their own.
	r.Register(KindGrunt, drawGrunt, StaticFrom(1))
	r.Register(KindDart, drawDart, StaticFrom(1))
	r.Register(KindBrute, drawBrute, StaticFrom(1))
	r.Register(KindSwarmer, drawSwarmer, StaticFrom(1))
	r.Register(KindShellback, drawShellback, StaticFrom(1))
	r.Register(KindSplitter, drawSplitter, StaticFrom(1))
	r.Register(KindBurrower, drawBurrower, AlwaysDynamic)
	r.Register(KindBoss, drawBoss, StaticFrom(2))

	r.Register(KindDrone, drawDrone, StaticFrom(1))
	r.Register(KindMarine, drawMarine, StaticFrom(1))

	r.Register(KindGunTurret, drawGunTurret, AlwaysStatic)
	r.Register(KindLaserTurret, drawLaserTurret, AlwaysStatic)
	r.Register(KindFlameTurret, drawFlameTurret, AlwaysStatic)
	r.Register(KindTeslaTurret, drawTeslaTurret, AlwaysDynamic)
	r.Register(KindBase, drawBase, AlwaysDynamic)
	r.Register(KindBuildSlot, drawBuildSlot, AlwaysStatic)

	r.Register(KindPlayer, drawPlayer, AlwaysDynamic)
	return r
}
