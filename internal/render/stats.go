package render

import (
	"fmt"
	"strings"
)

// reportWindowFrames is the default sliding window for cost reports (~10s at 60fps).
const reportWindowFrames = 600

// FrameStats counts the work one frame did.
type FrameStats struct {
	Frame int
	LOD   int

	TerrainRebuilds int
	AnimatedDrawn   int

	LiveDraws   int // entities drawn by their procedure
	SpriteBlits int // entities drawn from a cached raster
	SpriteHits  int
	SpriteMiss  int
	Culled      int

	ProjectilesLive   int
	ProjectilesCached int

	TextsDrawn int

	ParticleFetches int
	ParticleBlits   int
}

// Drawn returns every entity that reached the surface, live or cached.
func (f FrameStats) Drawn() int { return f.LiveDraws + f.SpriteBlits }

// StatsReporter keeps recent FrameStats and summarises them over a window.
type StatsReporter struct {
	history      []FrameStats
	windowFrames int
}

// NewStatsReporter creates a reporter with the given window size.
func NewStatsReporter(windowFrames int) *StatsReporter {
	if windowFrames <= 0 {
		windowFrames = reportWindowFrames
	}
	return &StatsReporter{windowFrames: windowFrames}
}

// Collect appends one frame's counters, keeping at most one window.
func (r *StatsReporter) Collect(fs FrameStats) {
	r.history = append(r.history, fs)
	if len(r.history) > r.windowFrames {
		drop := len(r.history) - r.windowFrames
		r.history = append(r.history[:0], r.history[drop:]...)
	}
}

// Latest returns the most recent frame, or nil.
func (r *StatsReporter) Latest() *FrameStats {
	if len(r.history) == 0 {
		return nil
	}
	return &r.history[len(r.history)-1]
}

// WindowReport is an aggregated summary over the retained frames.
type WindowReport struct {
	FromFrame, ToFrame int
	SampleCount        int

	LODFrames [3]int

	AvgLive, AvgBlits, AvgCulled        float64
	AvgParticleFetches, AvgParticleBlit float64
	AvgTexts                            float64
	HitRate                             float64 // sprite hits / lookups, 0..1

	TotalTerrainRebuilds int
	TotalSpriteMisses    int
}

// WindowSummary aggregates the retained frames.
func (r *StatsReporter) WindowSummary() *WindowReport {
	if len(r.history) == 0 {
		return nil
	}
	n := float64(len(r.history))
	wr := &WindowReport{
		FromFrame:   r.history[0].Frame,
		ToFrame:     r.history[len(r.history)-1].Frame,
		SampleCount: len(r.history),
	}
	var hits, lookups int
	for _, fs := range r.history {
		if fs.LOD >= 0 && fs.LOD < len(wr.LODFrames) {
			wr.LODFrames[fs.LOD]++
		}
		wr.AvgLive += float64(fs.LiveDraws)
		wr.AvgBlits += float64(fs.SpriteBlits)
		wr.AvgCulled += float64(fs.Culled)
		wr.AvgParticleFetches += float64(fs.ParticleFetches)
		wr.AvgParticleBlit += float64(fs.ParticleBlits)
		wr.AvgTexts += float64(fs.TextsDrawn)
		wr.TotalTerrainRebuilds += fs.TerrainRebuilds
		wr.TotalSpriteMisses += fs.SpriteMiss
		hits += fs.SpriteHits
		lookups += fs.SpriteHits + fs.SpriteMiss
	}
	wr.AvgLive /= n
	wr.AvgBlits /= n
	wr.AvgCulled /= n
	wr.AvgParticleFetches /= n
	wr.AvgParticleBlit /= n
	wr.AvgTexts /= n
	if lookups > 0 {
		wr.HitRate = float64(hits) / float64(lookups)
	}
	return wr
}

// Format returns a human-readable multi-line string of the window summary.
func (wr *WindowReport) Format() string {
	if wr == nil {
		return "No frames collected yet.\n"
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "=== Render Cost Report (F=%d..%d, %d frames) ===\n",
		wr.FromFrame, wr.ToFrame, wr.SampleCount)

	sb.WriteString("\n--- Detail Level ---\n")
	for lod, c := range wr.LODFrames {
		pct := float64(c) / float64(wr.SampleCount) * 100
		fmt.Fprintf(&sb, "  LOD%d  %5.1f%%\n", lod, pct)
	}

	sb.WriteString("\n--- Entities / frame ---\n")
	fmt.Fprintf(&sb, "  live=%.1f  cached=%.1f  culled=%.1f  texts=%.1f\n",
		wr.AvgLive, wr.AvgBlits, wr.AvgCulled, wr.AvgTexts)
	fmt.Fprintf(&sb, "  sprite hit rate=%.1f%%  sprite builds=%d\n",
		wr.HitRate*100, wr.TotalSpriteMisses)

	sb.WriteString("\n--- Particles / frame ---\n")
	fmt.Fprintf(&sb, "  sprite fetches=%.1f  blits=%.1f\n",
		wr.AvgParticleFetches, wr.AvgParticleBlit)

	sb.WriteString("\n--- Terrain ---\n")
	fmt.Fprintf(&sb, "  rebuilds=%d\n", wr.TotalTerrainRebuilds)
	return sb.String()
}

// FormatLatest returns a one-line summary of the most recent frame.
func (r *StatsReporter) FormatLatest() string {
	fs := r.Latest()
	if fs == nil {
		return "No data."
	}
	return fmt.Sprintf("F=%d LOD%d live=%d cached=%d culled=%d particles=%d/%d",
		fs.Frame, fs.LOD, fs.LiveDraws, fs.SpriteBlits, fs.Culled, fs.ParticleFetches, fs.ParticleBlits)
}
