package render

import "testing"

func testTerrain() *Terrain {
	return &Terrain{
		Width:  1000,
		Height: 800,
		Features: []Feature{
			{Kind: FeatureRock, X: 100, Y: 100, Radius: 12, Seed: 1},
			{Kind: FeatureCrater, X: 300, Y: 200, Radius: 30, Seed: 2},
			{Kind: FeatureMagma, X: 200, Y: 150, Radius: 20, Seed: 3},
			{Kind: FeatureFlora, X: 950, Y: 750, Radius: 10, Seed: 4},
		},
	}
}

func TestTerrain_RebuildsOnlyOnNewPointer(t *testing.T) {
	rec := NewRecorder(800, 600)
	tr := NewTerrainRenderer(rec)
	terrain := testTerrain()
	snap := &Snapshot{Camera: Camera{Width: 800, Height: 600}, Terrain: terrain}

	for i := 0; i < 5; i++ {
		tr.Render(rec, snap, float64(i))
	}
	if tr.Rebuilds() != 1 {
		t.Fatalf("rebuilds after 5 frames = %d, want 1", tr.Rebuilds())
	}

	// Same contents, different identity.
	copied := *terrain
	snap.Terrain = &copied
	tr.Render(rec, snap, 6)
	if tr.Rebuilds() != 2 {
		t.Fatalf("rebuilds after pointer change = %d, want 2", tr.Rebuilds())
	}

	tr.Render(rec, snap, 7)
	if tr.Rebuilds() != 2 {
		t.Fatalf("rebuilt again without a change: %d", tr.Rebuilds())
	}

	tr.ClearCache()
	tr.Render(rec, snap, 8)
	if tr.Rebuilds() != 3 {
		t.Fatalf("rebuilds after ClearCache = %d, want 3", tr.Rebuilds())
	}
}

func TestTerrain_NilDrawsNothing(t *testing.T) {
	rec := NewRecorder(800, 600)
	tr := NewTerrainRenderer(rec)
	tr.Render(rec, &Snapshot{}, 0)
	if tr.Rebuilds() != 0 || len(rec.Ops()) != 0 || rec.Allocations() != 0 {
		t.Fatalf("nil terrain: rebuilds=%d ops=%d allocs=%d", tr.Rebuilds(), len(rec.Ops()), rec.Allocations())
	}
}

func TestTerrain_BlitsRasterThenBoundary(t *testing.T) {
	rec := NewRecorder(800, 600)
	tr := NewTerrainRenderer(rec)
	snap := &Snapshot{Camera: Camera{Width: 800, Height: 600}, Terrain: testTerrain()}
	tr.Render(rec, snap, 0)

	ops := rec.Ops()
	if len(ops) != 2 {
		t.Fatalf("static-only frame recorded %d ops, want 2", len(ops))
	}
	raster := tr.raster.(*Recorder)
	if ops[0].Kind != OpBlit || ops[0].Src != raster.ID() {
		t.Fatalf("first op = %s src %d, want blit of raster %d", ops[0].Kind, ops[0].Src, raster.ID())
	}
	if ops[1].Kind != OpStrokeRect {
		t.Fatalf("second op = %s, want stroke_rect", ops[1].Kind)
	}
	if raster.Width() != 1000 || raster.Height() != 800 {
		t.Fatalf("raster %dx%d, want 1000x800", raster.Width(), raster.Height())
	}
	// Ground fill is the first thing baked.
	if raster.Ops()[0].Kind != OpFillRect {
		t.Fatalf("raster starts with %s, want fill_rect", raster.Ops()[0].Kind)
	}
}

func TestTerrain_AnimatedFeaturesCulledAndToggled(t *testing.T) {
	rec := NewRecorder(800, 600)
	tr := NewTerrainRenderer(rec)
	snap := &Snapshot{
		Camera:   Camera{Width: 800, Height: 600},
		Terrain:  testTerrain(),
		Settings: Settings{AnimatedBackground: true},
	}

	tr.Render(rec, snap, 1)
	// Magma is on screen; the flora at (950,750) is past the margin.
	if tr.AnimatedDrawn() != 1 {
		t.Fatalf("animated drawn = %d, want 1", tr.AnimatedDrawn())
	}

	snap.Camera = Camera{X: 200, Y: 200, Width: 800, Height: 600}
	tr.Render(rec, snap, 2)
	if tr.AnimatedDrawn() != 2 {
		t.Fatalf("animated drawn after pan = %d, want 2", tr.AnimatedDrawn())
	}

	snap.Settings.AnimatedBackground = false
	tr.Render(rec, snap, 3)
	if tr.AnimatedDrawn() != 0 {
		t.Fatalf("animated drawn with background off = %d", tr.AnimatedDrawn())
	}
	if tr.Rebuilds() != 1 {
		t.Fatalf("camera movement caused rebuilds: %d", tr.Rebuilds())
	}
}

func TestTerrain_AnimatedNotBaked(t *testing.T) {
	rec := NewRecorder(800, 600)
	tr := NewTerrainRenderer(rec)
	only := &Terrain{Width: 200, Height: 200, Features: []Feature{{Kind: FeatureSporePod, X: 50, Y: 50, Radius: 8}}}
	tr.Render(rec, &Snapshot{Camera: Camera{Width: 800, Height: 600}, Terrain: only}, 0)

	baked := tr.raster.(*Recorder)
	withPod := len(baked.Ops())

	tr2 := NewTerrainRenderer(rec)
	empty := &Terrain{Width: 200, Height: 200}
	tr2.Render(rec, &Snapshot{Camera: Camera{Width: 800, Height: 600}, Terrain: empty}, 0)
	if got := len(tr2.raster.(*Recorder).Ops()); got != withPod {
		t.Fatalf("spore pod was baked: %d ops vs %d for empty terrain", withPod, got)
	}
}
