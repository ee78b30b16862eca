package game

import (
	"math/rand"

	"github.com/Garsondee/Drop-Siege/internal/render"
)

// optionKind controls the pass in which an option is applied.
type optionKind int

const (
	optInfra   optionKind = iota // world size, seed, biome, settings: applied first
	optTerrain                   // terrain override: applied after generation
	optUnits                     // turrets, allies, enemies, particles: after layout
	optState                     // drop, reload, waves: applied last
)

// Option is a builder function applied to a World during construction.
type Option struct {
	kind optionKind
	fn   func(*World)
}

// WithWorldSize sets the playfield dimensions.
func WithWorldSize(w, h float64) Option {
	return Option{optInfra, func(wd *World) {
		wd.Width = w
		wd.Height = h
	}}
}

// WithSeed sets the RNG seed for deterministic runs.
func WithSeed(seed int64) Option {
	return Option{optInfra, func(wd *World) {
		wd.seed = seed
		wd.rng = rand.New(rand.NewSource(seed)) // #nosec G404 -- deterministic sim
	}}
}

// WithBiome selects the terrain generator's feature mix.
func WithBiome(b Biome) Option {
	return Option{optInfra, func(wd *World) { wd.Biome = b }}
}

// WithMode sets the performance mode.
func WithMode(m render.PerformanceMode) Option {
	return Option{optInfra, func(wd *World) { wd.Settings.Mode = m }}
}

// WithShadows toggles entity shadows.
func WithShadows(on bool) Option {
	return Option{optInfra, func(wd *World) { wd.Settings.ShowShadows = on }}
}

// WithAnimatedBackground toggles live terrain features.
func WithAnimatedBackground(on bool) Option {
	return Option{optInfra, func(wd *World) { wd.Settings.AnimatedBackground = on }}
}

// WithTerrain replaces the generated layout.
func WithTerrain(t *render.Terrain) Option {
	return Option{optTerrain, func(wd *World) { wd.terrain = t }}
}

// WithEnemies scatters n enemies of kind across the world.
func WithEnemies(kind render.Kind, n int) Option {
	return Option{optUnits, func(wd *World) { wd.SpawnScattered(kind, n) }}
}

// WithEnemyAt places one enemy of kind at (x, y).
func WithEnemyAt(kind render.Kind, x, y float64) Option {
	return Option{optUnits, func(wd *World) { wd.SpawnEnemy(kind, x, y) }}
}

// WithParticles keeps n ambient particles alive.
func WithParticles(n int) Option {
	return Option{optUnits, func(wd *World) { wd.AddAmbient(n) }}
}

// WithTurrets fills n build spots, cycling through the turret kinds.
func WithTurrets(n int) Option {
	return Option{optUnits, func(wd *World) {
		for i := 0; i < n; i++ {
			if !wd.AddTurret(turretOrder[i%len(turretOrder)]) {
				return
			}
		}
	}}
}

// WithAllies adds drones and marines around the base.
func WithAllies(drones, marines int) Option {
	return Option{optUnits, func(wd *World) {
		for i := 0; i < drones; i++ {
			wd.AddAlly(render.KindDrone)
		}
		for i := 0; i < marines; i++ {
			wd.AddAlly(render.KindMarine)
		}
	}}
}

// WithBaseDrop starts the world in the base-drop intro.
func WithBaseDrop() Option {
	return Option{optState, func(wd *World) { wd.StartDrop() }}
}

// WithReloading starts the player mid-reload.
func WithReloading() Option {
	return Option{optState, func(wd *World) { wd.SetReloading(true) }}
}

// WithoutWaves disables wave spawning so a run only contains what the
// options placed.
func WithoutWaves() Option {
	return Option{optState, func(wd *World) { wd.waves = false }}
}

// NewWorld constructs a World from the given options in ordered passes:
//  1. Infrastructure (size, seed, biome, settings)
//  2. Terrain generation, then terrain overrides
//  3. Base layout, then units
//  4. State (drop, reload, waves)
func NewWorld(opts ...Option) *World {
	w := newWorld()
	apply := func(kind optionKind) {
		for _, o := range opts {
			if o.kind == kind {
				o.fn(w)
			}
		}
	}
	apply(optInfra)
	w.Regenerate()
	apply(optTerrain)
	w.layout()
	apply(optUnits)
	apply(optState)
	return w
}
