package render

import (
	"fmt"
	"strings"
)

// Pipeline runs the four renderers in their fixed order against one
// snapshot per frame. It must only be used from the render thread.
type Pipeline struct {
	cfg      *Config
	registry *Registry

	terrain   *TerrainRenderer
	entities  *EntityRenderer
	overlay   *OverlayRenderer
	particles *ParticleRenderer

	reporter *StatsReporter

	frame    int
	mode     PerformanceMode
	lastLOD  int
	rebuilds int
}

// NewPipeline wires the renderers together. Nil registry or cfg get the
// defaults.
func NewPipeline(alloc Allocator, registry *Registry, cfg *Config) *Pipeline {
	if registry == nil {
		registry = DefaultRegistry()
	}
	if cfg == nil {
		cfg = NewConfig()
	}
	return &Pipeline{
		cfg:       cfg,
		registry:  registry,
		terrain:   NewTerrainRenderer(alloc),
		entities:  NewEntityRenderer(alloc, registry, cfg),
		overlay:   NewOverlayRenderer(),
		particles: NewParticleRenderer(alloc),
		reporter:  NewStatsReporter(0),
		lastLOD:   -1,
	}
}

// Accessors for the HUD, reports and tests.
func (p *Pipeline) Config() *Config { return p.cfg }
func (p *Pipeline) Registry() *Registry { return p.registry }
func (p *Pipeline) Terrain() *TerrainRenderer { return p.terrain }
func (p *Pipeline) Entities() *EntityRenderer { return p.entities }
func (p *Pipeline) Overlay() *OverlayRenderer { return p.overlay }
func (p *Pipeline) Particles() *ParticleRenderer { return p.particles }
func (p *Pipeline) Reporter() *StatsReporter { return p.reporter }
func (p *Pipeline) Frame() int { return p.frame }
func (p *Pipeline) Log() *RenderLog { return p.cfg.Log() }

// Render draws snap onto s and returns the frame's counters.
func (p *Pipeline) Render(s Surface, snap *Snapshot) FrameStats {
	p.frame++
	if snap == nil {
		return FrameStats{Frame: p.frame}
	}
	if snap.Settings.Mode != p.mode {
		if p.mode != "" {
			p.clear(fmt.Sprintf("mode %s → %s", p.mode, snap.Settings.Mode))
		}
		p.mode = snap.Settings.Mode
	}

	cam := snap.Camera
	s.Save()
	s.Translate(-cam.X, -cam.Y)
	p.terrain.Render(s, snap, snap.Time)
	p.entities.Render(s, snap, snap.Time)
	p.overlay.Render(s, snap)
	p.particles.Render(s, snap.Particles, cam)
	s.Restore()

	fs := p.entities.Stats()
	fs.Frame = p.frame
	fs.TerrainRebuilds = p.terrain.Rebuilds() - p.rebuilds
	fs.AnimatedDrawn = p.terrain.AnimatedDrawn()
	fs.TextsDrawn = p.overlay.Drawn()
	fs.ParticleFetches = p.particles.Fetches()
	fs.ParticleBlits = p.particles.Blits()
	p.rebuilds = p.terrain.Rebuilds()

	log := p.cfg.Log()
	if fs.TerrainRebuilds > 0 && snap.Terrain != nil {
		log.Add(p.frame, LogTerrain, "rebuild",
			fmt.Sprintf("%.0fx%.0f, %d features", snap.Terrain.Width, snap.Terrain.Height, len(snap.Terrain.Features)),
			float64(p.terrain.Rebuilds()))
	}
	if fs.LOD != p.lastLOD {
		if p.lastLOD >= 0 {
			log.Add(p.frame, LogLOD, "change",
				fmt.Sprintf("%d → %d (%d enemies, %s)", p.lastLOD, fs.LOD, len(snap.Enemies), p.mode),
				float64(fs.LOD))
		}
		p.lastLOD = fs.LOD
	}

	p.reporter.Collect(fs)
	return fs
}

// ClearCache drops every cached raster. The next frame rebuilds lazily.
func (p *Pipeline) ClearCache() {
	p.clear("requested")
}

func (p *Pipeline) clear(reason string) {
	p.terrain.ClearCache()
	p.entities.ClearCache()
	p.particles.ClearCache()
	p.rebuilds = p.terrain.Rebuilds()
	p.cfg.Log().Add(p.frame, LogCache, "clear", reason, 0)
}

// ApplyTuning swaps the threshold table and never-cache set, then clears
// every cache so no raster outlives the tuning it was built under.
func (p *Pipeline) ApplyTuning(table map[PerformanceMode]Thresholds, neverCache []Kind) {
	p.cfg.Apply(WithThresholdTable(table), WithNeverCache(neverCache...))
	names := make([]string, len(neverCache))
	for i, k := range neverCache {
		names[i] = string(k)
	}
	p.cfg.Log().Add(p.frame, LogTuning, "reload",
		fmt.Sprintf("%d modes, never cache [%s]", len(table), strings.Join(names, " ")),
		float64(len(table)))
	p.clear("tuning reload")
}
