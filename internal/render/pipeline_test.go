package render

import (
	"strings"
	"testing"
)

func pipelineSnapshot(terrain *Terrain, enemyCount int) *Snapshot {
	return &Snapshot{
		Camera:    testCam,
		Time:      1.5,
		Terrain:   terrain,
		Player:    &Entity{Kind: KindPlayer, X: 400, Y: 300, Radius: 12, Lift: 1},
		Enemies:   enemies(KindGrunt, enemyCount),
		Particles: []Particle{{X: 50, Y: 50, Radius: 3, Color: red, Life: 1, MaxLife: 1}},
		Settings:  Settings{Mode: ModeBalanced, ShowShadows: true},
	}
}

func TestPipeline_CameraTransformAppliedOnce(t *testing.T) {
	rec := NewRecorder(800, 600)
	p := NewPipeline(rec, DefaultRegistry(), NewConfig())
	snap := &Snapshot{
		Camera:    Camera{X: 400, Y: 300, Width: 800, Height: 600},
		Particles: []Particle{{X: 500, Y: 400, Radius: 4, Color: red, Life: 1, MaxLife: 1}},
	}
	p.Render(rec, snap)
	ops := rec.Ops()
	if len(ops) != 1 {
		t.Fatalf("recorded %d ops, want 1", len(ops))
	}
	if ops[0].X != 100 || ops[0].Y != 100 {
		t.Fatalf("particle at screen (%.0f,%.0f), want (100,100)", ops[0].X, ops[0].Y)
	}
}

func TestPipeline_LayerOrder(t *testing.T) {
	rec := NewRecorder(800, 600)
	p := NewPipeline(rec, DefaultRegistry(), NewConfig())
	snap := pipelineSnapshot(testTerrain(), 1)
	snap.Status.Reloading = true
	p.Render(rec, snap)

	ops := rec.Ops()
	if ops[0].Kind != OpBlit {
		t.Fatalf("first op = %s, want the terrain blit", ops[0].Kind)
	}
	last := ops[len(ops)-1]
	if last.Kind != OpBlit || last.Src == ops[0].Src {
		t.Fatalf("last op = %s src %d, want a particle blit", last.Kind, last.Src)
	}
	label := -1
	for i, op := range ops {
		if op.Kind == OpText && op.Text == ReloadingLabel {
			label = i
		}
	}
	if label < 0 || label > len(ops)-2 {
		t.Fatalf("reloading label at op %d of %d", label, len(ops))
	}
}

func TestPipeline_FrameStats(t *testing.T) {
	rec := NewRecorder(800, 600)
	p := NewPipeline(rec, DefaultRegistry(), NewConfig())
	terrain := testTerrain()

	fs := p.Render(rec, pipelineSnapshot(terrain, 40))
	if fs.Frame != 1 || fs.TerrainRebuilds != 1 || fs.LOD != 1 {
		t.Fatalf("frame 1: frame=%d rebuilds=%d lod=%d", fs.Frame, fs.TerrainRebuilds, fs.LOD)
	}
	if fs.SpriteBlits != 40 || fs.LiveDraws != 1 {
		t.Fatalf("frame 1: cached=%d live=%d, want 40/1", fs.SpriteBlits, fs.LiveDraws)
	}
	if fs.ParticleFetches != 1 || fs.ParticleBlits != 1 {
		t.Fatalf("frame 1: particles %d/%d", fs.ParticleFetches, fs.ParticleBlits)
	}

	fs = p.Render(rec, pipelineSnapshot(terrain, 40))
	if fs.Frame != 2 || fs.TerrainRebuilds != 0 {
		t.Fatalf("frame 2: frame=%d rebuilds=%d", fs.Frame, fs.TerrainRebuilds)
	}
	if p.Reporter().Latest().Frame != 2 {
		t.Fatal("reporter did not collect frame 2")
	}
}

func TestPipeline_ModeSwitchClearsCaches(t *testing.T) {
	rec := NewRecorder(800, 600)
	p := NewPipeline(rec, DefaultRegistry(), NewConfig())
	terrain := testTerrain()
	snap := pipelineSnapshot(terrain, 40)

	p.Render(rec, snap)
	p.Render(rec, snap)
	if p.Entities().Sprites().Len() == 0 {
		t.Fatal("no sprites cached at lod 1")
	}

	snap.Settings.Mode = ModePerformance
	fs := p.Render(rec, snap)
	if fs.TerrainRebuilds != 1 {
		t.Fatalf("mode switch: terrain rebuilds = %d, want 1", fs.TerrainRebuilds)
	}
	if fs.SpriteMiss != 1 {
		t.Fatalf("mode switch: sprite misses = %d, want 1", fs.SpriteMiss)
	}
	if n := p.Log().Count(LogCache, "clear"); n != 1 {
		t.Fatalf("cache clear logged %d times, want 1", n)
	}
	e, ok := p.Log().LastOf(LogCache, "clear")
	if !ok || !strings.Contains(e.Value, string(ModePerformance)) {
		t.Fatalf("clear entry = %+v", e)
	}
}

func TestPipeline_LODChangeLogged(t *testing.T) {
	rec := NewRecorder(800, 600)
	p := NewPipeline(rec, DefaultRegistry(), NewConfig())

	p.Render(rec, pipelineSnapshot(nil, 10))
	p.Render(rec, pipelineSnapshot(nil, 10))
	p.Render(rec, pipelineSnapshot(nil, 120))
	entries := p.Log().Filter(LogLOD, "change")
	if len(entries) != 1 {
		t.Fatalf("lod changes logged = %d, want 1", len(entries))
	}
	if entries[0].Frame != 3 || entries[0].NumVal != 2 {
		t.Fatalf("lod entry = %+v", entries[0])
	}
}

func TestPipeline_ApplyTuning(t *testing.T) {
	rec := NewRecorder(800, 600)
	p := NewPipeline(rec, DefaultRegistry(), NewConfig())
	snap := pipelineSnapshot(testTerrain(), 40)
	p.Render(rec, snap)

	table := map[PerformanceMode]Thresholds{ModeBalanced: {Low: 5, SuperLow: 20}}
	p.ApplyTuning(table, []Kind{KindBurrower, KindGrunt})
	if p.Entities().Sprites().Len() != 0 {
		t.Fatal("ApplyTuning left sprites cached")
	}
	if p.Log().Count(LogTuning, "reload") != 1 {
		t.Fatal("tuning reload not logged")
	}

	fs := p.Render(rec, snap)
	if fs.LOD != 2 {
		t.Fatalf("lod after tuning = %d, want 2", fs.LOD)
	}
	// Grunts are now excluded from caching.
	if fs.SpriteBlits != 0 || fs.LiveDraws != 41 {
		t.Fatalf("cached=%d live=%d, want 0/41", fs.SpriteBlits, fs.LiveDraws)
	}
	if fs.TerrainRebuilds != 1 {
		t.Fatalf("terrain rebuilds after tuning = %d, want 1", fs.TerrainRebuilds)
	}
}

func TestPipeline_NilSnapshot(t *testing.T) {
	rec := NewRecorder(800, 600)
	p := NewPipeline(rec, nil, nil)
	fs := p.Render(rec, nil)
	if fs.Frame != 1 || len(rec.Ops()) != 0 {
		t.Fatalf("nil snapshot: frame=%d ops=%d", fs.Frame, len(rec.Ops()))
	}
}
