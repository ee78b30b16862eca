package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/Garsondee/Drop-Siege/internal/game"
	"github.com/Garsondee/Drop-Siege/internal/render"
	"github.com/Garsondee/Drop-Siege/internal/tuning"
)

const (
	viewW = 1280
	viewH = 800
)

type runConfig struct {
	frames    int
	enemies   int
	kind      render.Kind
	particles int
	turrets   int
	mode      render.PerformanceMode
	waves     bool
	table     *tuning.Table
}

type runStats struct {
	runIndex int
	seed     int64

	maxEnemies   int
	peakLOD      int
	lodChanges   int
	rebuilds     int
	cacheClears  int
	allocations  int
	spriteCached int
	kills        int

	windowSummary *render.WindowReport
}

func main() {
	var rc runConfig
	var runs int
	var seedBase int64
	var seedStep int64
	var mode, kind, tuningPath string
	var dumpTuning bool

	flag.IntVar(&runs, "runs", 3, "number of headless runs")
	flag.IntVar(&rc.frames, "frames", 1800, "frames per run")
	flag.IntVar(&rc.enemies, "enemies", 120, "enemies scattered at start")
	flag.StringVar(&kind, "kind", string(render.KindGrunt), "kind of the scattered enemies")
	flag.IntVar(&rc.particles, "particles", 500, "ambient particles kept alive")
	flag.IntVar(&rc.turrets, "turrets", 4, "turrets built at start")
	flag.StringVar(&mode, "mode", string(render.ModeBalanced), "performance mode (quality|balanced|performance)")
	flag.BoolVar(&rc.waves, "waves", true, "spawn waves during the run")
	flag.Int64Var(&seedBase, "seed", 42, "base RNG seed for run 1")
	flag.Int64Var(&seedStep, "seed-step", 1, "seed increment between runs")
	flag.StringVar(&tuningPath, "tuning", "", "render tuning file (defaults when empty)")
	flag.BoolVar(&dumpTuning, "dump-tuning", false, "print the effective tuning table as TOML and exit")
	flag.Parse()

	table, err := loadTable(tuningPath)
	if err != nil {
		fmt.Printf("error: %v\n", err)
		os.Exit(1)
	}
	if dumpTuning {
		data, err := table.Marshal()
		if err != nil {
			fmt.Printf("error: %v\n", err)
			os.Exit(1)
		}
		fmt.Print(string(data))
		return
	}
	rc.table = table
	rc.mode = render.PerformanceMode(mode)
	rc.kind = render.Kind(kind)

	if err := validate(rc, runs); err != nil {
		fmt.Printf("error: %v\n", err)
		os.Exit(2)
	}

	fmt.Printf("=== Headless Render Report ===\n")
	fmt.Printf("mode=%s runs=%d frames=%d enemies=%d kind=%s particles=%d seed=%d seed_step=%d\n\n",
		rc.mode, runs, rc.frames, rc.enemies, rc.kind, rc.particles, seedBase, seedStep)

	all := make([]runStats, 0, runs)
	for i := 0; i < runs; i++ {
		seed := seedBase + int64(i)*seedStep
		stats := runOnce(i+1, seed, rc)
		all = append(all, stats)
		printRun(stats)
	}
	printAggregate(all)
}

func loadTable(path string) (*tuning.Table, error) {
	if path == "" {
		return tuning.Default(), nil
	}
	t, err := tuning.Load(path)
	if err != nil {
		return nil, err
	}
	return t, nil
}

var errBadFlag = errors.New("bad flag")

func validate(rc runConfig, runs int) error {
	if runs <= 0 {
		return fmt.Errorf("%w: -runs must be > 0", errBadFlag)
	}
	if rc.frames <= 0 {
		return fmt.Errorf("%w: -frames must be > 0", errBadFlag)
	}
	if rc.enemies < 0 || rc.particles < 0 || rc.turrets < 0 {
		return fmt.Errorf("%w: counts must be >= 0", errBadFlag)
	}
	known := false
	for _, m := range render.Modes() {
		if m == rc.mode {
			known = true
		}
	}
	if !known {
		return fmt.Errorf("%w: unsupported mode %q", errBadFlag, rc.mode)
	}
	if !render.DefaultRegistry().Has(rc.kind) {
		return fmt.Errorf("%w: unknown kind %q", errBadFlag, rc.kind)
	}
	return nil
}

// runOnce steps one world and renders every frame into a recorder.
func runOnce(runIndex int, seed int64, rc runConfig) runStats {
	opts := []game.Option{
		game.WithSeed(seed),
		game.WithMode(rc.mode),
		game.WithEnemies(rc.kind, rc.enemies),
		game.WithParticles(rc.particles),
		game.WithTurrets(rc.turrets),
		game.WithAllies(2, 2),
	}
	if !rc.waves {
		opts = append(opts, game.WithoutWaves())
	}
	w := game.NewWorld(opts...)

	rec := render.NewRecorder(viewW, viewH)
	cfg := render.NewConfig(rc.table.Options()...)
	pl := render.NewPipeline(rec, render.DefaultRegistry(), cfg)

	bx, by := w.BaseCenter()
	cam := render.Camera{X: bx - viewW/2, Y: by - viewH/2, Width: viewW, Height: viewH}

	rs := runStats{runIndex: runIndex, seed: seed}
	for f := 0; f < rc.frames; f++ {
		w.Step()
		rec.Reset()
		fs := pl.Render(rec, w.Snapshot(cam))
		if n := w.EnemyCount(); n > rs.maxEnemies {
			rs.maxEnemies = n
		}
		if fs.LOD > rs.peakLOD {
			rs.peakLOD = fs.LOD
		}
	}

	rs.lodChanges = pl.Log().Count(render.LogLOD, "change")
	rs.rebuilds = pl.Log().Count(render.LogTerrain, "rebuild")
	rs.cacheClears = pl.Log().Count(render.LogCache, "clear")
	rs.allocations = rec.Allocations()
	rs.spriteCached = pl.Entities().Sprites().Len()
	rs.kills = w.Kills()
	rs.windowSummary = pl.Reporter().WindowSummary()
	return rs
}

func printRun(rs runStats) {
	fmt.Printf("--- Run %d (seed=%d) ---\n", rs.runIndex, rs.seed)
	fmt.Printf("world: max_enemies=%d kills=%d\n", rs.maxEnemies, rs.kills)
	fmt.Printf("events: lod_changes=%d peak_lod=%d terrain_rebuilds=%d cache_clears=%d\n",
		rs.lodChanges, rs.peakLOD, rs.rebuilds, rs.cacheClears)
	fmt.Printf("memory: offscreen_surfaces=%d sprites_cached=%d\n", rs.allocations, rs.spriteCached)
	if rs.windowSummary != nil {
		fmt.Print(rs.windowSummary.Format())
	}
	fmt.Println()
}

type aggregate struct {
	runs          int
	avgMaxEnemies float64
	avgLive       float64
	avgBlits      float64
	avgHitRate    float64
	lodFrames     [3]int
	totalFrames   int
	peakLOD       int
}

func aggregateRuns(all []runStats) aggregate {
	var ag aggregate
	ag.runs = len(all)
	withWindow := 0
	for _, rs := range all {
		ag.avgMaxEnemies += float64(rs.maxEnemies)
		if rs.peakLOD > ag.peakLOD {
			ag.peakLOD = rs.peakLOD
		}
		wr := rs.windowSummary
		if wr == nil {
			continue
		}
		withWindow++
		ag.avgLive += wr.AvgLive
		ag.avgBlits += wr.AvgBlits
		ag.avgHitRate += wr.HitRate
		for i, c := range wr.LODFrames {
			ag.lodFrames[i] += c
		}
		ag.totalFrames += wr.SampleCount
	}
	if ag.runs > 0 {
		ag.avgMaxEnemies /= float64(ag.runs)
	}
	if withWindow > 0 {
		ag.avgLive /= float64(withWindow)
		ag.avgBlits /= float64(withWindow)
		ag.avgHitRate /= float64(withWindow)
	}
	return ag
}

func (ag aggregate) format() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "=== Aggregate (%d runs) ===\n", ag.runs)
	fmt.Fprintf(&sb, "max_enemies_avg=%.1f peak_lod=%d\n", ag.avgMaxEnemies, ag.peakLOD)
	fmt.Fprintf(&sb, "entities/frame: live=%.1f cached=%.1f hit_rate=%.1f%%\n",
		ag.avgLive, ag.avgBlits, ag.avgHitRate*100)
	for lod, c := range ag.lodFrames {
		pct := 0.0
		if ag.totalFrames > 0 {
			pct = float64(c) / float64(ag.totalFrames) * 100
		}
		fmt.Fprintf(&sb, "  LOD%d  %5.1f%%\n", lod, pct)
	}
	return sb.String()
}

func printAggregate(all []runStats) {
	fmt.Print(aggregateRuns(all).format())
}
