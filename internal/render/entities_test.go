package render

import (
	"image/color"
	"reflect"
	"testing"
)

var testCam = Camera{Width: 800, Height: 600}

// orderRegistry registers every kind with a render func that only records
// the kind it was asked to draw.
func orderRegistry(order *[]Kind, policy PolicyFunc) *Registry {
	r := NewRegistry()
	for _, k := range allKinds() {
		r.Register(k, func(s Surface, e *Entity, t float64, lod int) {
			*order = append(*order, e.Kind)
		}, policy)
	}
	return r
}

func noopRegistry() *Registry {
	r := NewRegistry()
	for _, k := range allKinds() {
		r.Register(k, func(Surface, *Entity, float64, int) {}, AlwaysDynamic)
	}
	return r
}

func fullSnapshot() *Snapshot {
	return &Snapshot{
		Camera:      testCam,
		Player:      &Entity{Kind: KindPlayer, X: 400, Y: 300, Radius: 12},
		TurretSpots: []TurretSpot{{X: 100, Y: 100, Radius: 14}, {X: 200, Y: 100, Radius: 14, Occupied: true}},
		Bases:       []Entity{{Kind: KindBase, X: 400, Y: 400, Radius: 40}},
		Turrets:     []Entity{{Kind: KindGunTurret, X: 200, Y: 100, Radius: 14}},
		Allies:      []Entity{{Kind: KindMarine, X: 300, Y: 300, Radius: 8}},
		Enemies:     []Entity{{Kind: KindGrunt, X: 600, Y: 200, Radius: 10}},
		Projectiles: []Projectile{{Kind: ProjectileBullet, X: 500, Y: 300}},
	}
}

func TestEntities_DrawOrder(t *testing.T) {
	var order []Kind
	rec := NewRecorder(800, 600)
	er := NewEntityRenderer(rec, orderRegistry(&order, AlwaysDynamic), NewConfig())
	er.Render(rec, fullSnapshot(), 0)

	want := []Kind{KindBuildSlot, KindBase, KindGunTurret, KindMarine, KindGrunt, KindPlayer}
	if !reflect.DeepEqual(order, want) {
		t.Fatalf("draw order = %v, want %v", order, want)
	}
	// The only thing reaching the root surface is the projectile, last.
	ops := rec.Ops()
	if len(ops) != 1 || ops[0].Kind != OpBlit {
		t.Fatalf("root ops = %v, want a single projectile blit", ops)
	}
	if er.Stats().ProjectilesCached != 1 {
		t.Fatalf("projectiles cached = %d", er.Stats().ProjectilesCached)
	}
}

func TestEntities_DrawOrderOverlapping(t *testing.T) {
	var order []Kind
	rec := NewRecorder(800, 600)
	er := NewEntityRenderer(rec, orderRegistry(&order, AlwaysDynamic), NewConfig())
	at := func(k Kind) Entity { return Entity{Kind: k, X: 300, Y: 300, Radius: 12} }
	player := at(KindPlayer)
	snap := &Snapshot{
		Camera:  testCam,
		Player:  &player,
		Enemies: []Entity{at(KindBoss), at(KindGrunt), at(KindDart)},
		Allies:  []Entity{at(KindDrone)},
		Turrets: []Entity{at(KindLaserTurret), at(KindGunTurret)},
		Bases:   []Entity{at(KindBase)},
	}
	er.Render(rec, snap, 0)

	want := []Kind{KindBase, KindLaserTurret, KindGunTurret, KindDrone, KindBoss, KindGrunt, KindDart, KindPlayer}
	if !reflect.DeepEqual(order, want) {
		t.Fatalf("draw order = %v, want %v", order, want)
	}
}

func TestEntities_BaseDropSkips(t *testing.T) {
	var order []Kind
	rec := NewRecorder(800, 600)
	er := NewEntityRenderer(rec, orderRegistry(&order, AlwaysDynamic), NewConfig())

	snap := fullSnapshot()
	snap.BaseDrop = BaseDropState{Active: true, InFlight: true}
	er.Render(rec, snap, 0)
	want := []Kind{KindBase, KindGunTurret, KindMarine, KindGrunt}
	if !reflect.DeepEqual(order, want) {
		t.Fatalf("in flight: order = %v, want %v", order, want)
	}

	order = order[:0]
	snap.BaseDrop = BaseDropState{Active: true}
	er.Render(rec, snap, 0)
	want = []Kind{KindBuildSlot, KindBase, KindGunTurret, KindMarine, KindGrunt}
	if !reflect.DeepEqual(order, want) {
		t.Fatalf("landed: order = %v, want %v", order, want)
	}
}

func TestDetailLevel_Boundaries(t *testing.T) {
	th := Thresholds{Low: 30, SuperLow: 100}
	cases := []struct{ count, want int }{
		{0, 0}, {30, 0}, {31, 1}, {100, 1}, {101, 2}, {5000, 2},
	}
	for _, tc := range cases {
		if got := DetailLevel(tc.count, th); got != tc.want {
			t.Fatalf("DetailLevel(%d) = %d, want %d", tc.count, got, tc.want)
		}
	}
}

func enemies(kind Kind, n int) []Entity {
	out := make([]Entity, n)
	for i := range out {
		out[i] = Entity{Kind: kind, X: float64(20 + i%30*20), Y: float64(20 + i/30*20), Radius: 8}
	}
	return out
}

func TestEntities_LODSelectsPath(t *testing.T) {
	cases := []struct {
		count      int
		wantLOD    int
		wantLive   int
		wantCached int
	}{
		{30, 0, 30, 0},
		{31, 1, 0, 31},
		{101, 2, 0, 101},
	}
	for _, tc := range cases {
		rec := NewRecorder(800, 600)
		er := NewEntityRenderer(rec, DefaultRegistry(), NewConfig())
		snap := &Snapshot{Camera: testCam, Enemies: enemies(KindGrunt, tc.count), Settings: Settings{Mode: ModeBalanced}}
		er.Render(rec, snap, 1)
		st := er.Stats()
		if st.LOD != tc.wantLOD || st.LiveDraws != tc.wantLive || st.SpriteBlits != tc.wantCached {
			t.Fatalf("%d enemies: lod=%d live=%d cached=%d, want %d/%d/%d",
				tc.count, st.LOD, st.LiveDraws, st.SpriteBlits, tc.wantLOD, tc.wantLive, tc.wantCached)
		}
	}
}

func TestEntities_ModeThresholds(t *testing.T) {
	rec := NewRecorder(800, 600)
	er := NewEntityRenderer(rec, DefaultRegistry(), NewConfig())
	snap := &Snapshot{Camera: testCam, Enemies: enemies(KindGrunt, 40)}

	want := map[PerformanceMode]int{ModeQuality: 0, ModeBalanced: 1, ModePerformance: 1}
	for mode, lod := range want {
		snap.Settings.Mode = mode
		er.Render(rec, snap, 0)
		if er.Stats().LOD != lod {
			t.Fatalf("%s with 40 enemies: lod %d, want %d", mode, er.Stats().LOD, lod)
		}
	}
}

func TestEntities_NeverCacheKindStaysLive(t *testing.T) {
	// Burrowers registered as cacheable still go live: the exclusion wins.
	reg := DefaultRegistry()
	reg.Register(KindBurrower, drawBurrower, AlwaysStatic)

	rec := NewRecorder(800, 600)
	er := NewEntityRenderer(rec, reg, NewConfig())
	snap := &Snapshot{
		Camera:   testCam,
		Enemies:  append(enemies(KindGrunt, 35), enemies(KindBurrower, 5)...),
		Settings: Settings{Mode: ModeBalanced},
	}
	er.Render(rec, snap, 2)
	st := er.Stats()
	if st.LOD != 1 || st.LiveDraws != 5 || st.SpriteBlits != 35 {
		t.Fatalf("lod=%d live=%d cached=%d, want 1/5/35", st.LOD, st.LiveDraws, st.SpriteBlits)
	}

	er2 := NewEntityRenderer(rec, reg, NewConfig(WithNeverCache()))
	er2.Render(rec, snap, 2)
	if er2.Stats().SpriteBlits != 40 {
		t.Fatalf("with empty never-cache set: cached=%d, want 40", er2.Stats().SpriteBlits)
	}
}

func TestEntities_SpriteHitsAcrossFrames(t *testing.T) {
	rec := NewRecorder(800, 600)
	er := NewEntityRenderer(rec, DefaultRegistry(), NewConfig())
	snap := &Snapshot{Camera: testCam, Enemies: enemies(KindGrunt, 50), Settings: Settings{Mode: ModeBalanced}}

	er.Render(rec, snap, 0)
	if st := er.Stats(); st.SpriteMiss != 1 || st.SpriteHits != 49 {
		t.Fatalf("frame 1: miss=%d hits=%d, want 1/49", st.SpriteMiss, st.SpriteHits)
	}
	er.Render(rec, snap, 1)
	if st := er.Stats(); st.SpriteMiss != 0 || st.SpriteHits != 50 {
		t.Fatalf("frame 2: miss=%d hits=%d, want 0/50", st.SpriteMiss, st.SpriteHits)
	}
}

func TestEntities_CullsBeforeWork(t *testing.T) {
	var order []Kind
	rec := NewRecorder(800, 600)
	er := NewEntityRenderer(rec, orderRegistry(&order, AlwaysDynamic), NewConfig())
	snap := &Snapshot{
		Camera:  testCam,
		Enemies: []Entity{{Kind: KindGrunt, X: 5000, Y: 5000, Radius: 10}, {Kind: KindDart, X: 100, Y: 100, Radius: 10}},
		Allies:  []Entity{{Kind: KindDrone, X: -400, Y: 100, Radius: 6}},
	}
	er.Render(rec, snap, 0)
	if len(order) != 1 || order[0] != KindDart {
		t.Fatalf("drawn = %v, want only the dart", order)
	}
	if er.Stats().Culled != 2 {
		t.Fatalf("culled = %d, want 2", er.Stats().Culled)
	}
}

func TestEntities_Shadows(t *testing.T) {
	cases := []struct {
		name    string
		shadows bool
		lift    float64
		under   bool
		want    int
	}{
		{"standing", true, 1, false, 1},
		{"flattened", true, 0.1, false, 0},
		{"disabled", false, 1, false, 0},
		{"underground", true, 1, true, 0},
	}
	for _, tc := range cases {
		rec := NewRecorder(800, 600)
		er := NewEntityRenderer(rec, noopRegistry(), NewConfig())
		snap := &Snapshot{
			Camera:   testCam,
			Enemies:  []Entity{{Kind: KindGrunt, X: 100, Y: 100, Radius: 10, Lift: tc.lift, Underground: tc.under}},
			Settings: Settings{ShowShadows: tc.shadows},
		}
		er.Render(rec, snap, 0)
		if got := rec.Count(OpFillEllipse); got != tc.want {
			t.Fatalf("%s: %d shadow ellipses, want %d", tc.name, got, tc.want)
		}
	}
}

func TestEntities_ShadowIgnoresRotation(t *testing.T) {
	rec := NewRecorder(800, 600)
	er := NewEntityRenderer(rec, noopRegistry(), NewConfig())
	e := Entity{Kind: KindGrunt, X: 100, Y: 100, Radius: 10, Lift: 1}
	snap := &Snapshot{Camera: testCam, Enemies: []Entity{e}, Settings: Settings{ShowShadows: true}}
	er.Render(rec, snap, 0)
	first := rec.Ops()[0]

	rec.Reset()
	snap.Enemies[0].Angle = 2.5
	er.Render(rec, snap, 0)
	second := rec.Ops()[0]
	if first.X != second.X || first.Y != second.Y {
		t.Fatalf("shadow moved with rotation: (%.2f,%.2f) vs (%.2f,%.2f)", first.X, first.Y, second.X, second.Y)
	}
}

func TestEntities_BarsHiddenUnderground(t *testing.T) {
	damaged := Entity{Kind: KindGrunt, X: 100, Y: 100, Radius: 10, Health: 4, MaxHealth: 10, Shell: 2, MaxShell: 5}
	for _, under := range []bool{false, true} {
		rec := NewRecorder(800, 600)
		er := NewEntityRenderer(rec, noopRegistry(), NewConfig())
		e := damaged
		e.Underground = under
		er.Render(rec, &Snapshot{Camera: testCam, Enemies: []Entity{e}}, 0)
		want := 4
		if under {
			want = 0
		}
		if got := rec.Count(OpFillRect); got != want {
			t.Fatalf("underground=%v: %d bar rects, want %d", under, got, want)
		}
	}
}

func TestEntities_FullHealthNoBar(t *testing.T) {
	rec := NewRecorder(800, 600)
	er := NewEntityRenderer(rec, noopRegistry(), NewConfig())
	e := Entity{Kind: KindGrunt, X: 100, Y: 100, Radius: 10, Health: 10, MaxHealth: 10, Color: color.RGBA{A: 255}}
	er.Render(rec, &Snapshot{Camera: testCam, Enemies: []Entity{e}}, 0)
	if rec.Count(OpFillRect) != 0 {
		t.Fatal("full-health entity drew a bar")
	}
}

func TestEntities_FlameProjectileIsLive(t *testing.T) {
	rec := NewRecorder(800, 600)
	er := NewEntityRenderer(rec, noopRegistry(), NewConfig())
	snap := &Snapshot{Camera: testCam, Projectiles: []Projectile{
		{Kind: ProjectileFlame, X: 100, Y: 100, Travelled: 40, Range: 120},
		{Kind: ProjectileLaser, X: 120, Y: 100},
		{Kind: ProjectileLaser, X: 9000, Y: 100},
	}}
	er.Render(rec, snap, 0)
	st := er.Stats()
	if st.ProjectilesLive != 1 || st.ProjectilesCached != 1 || st.Culled != 1 {
		t.Fatalf("live=%d cached=%d culled=%d, want 1/1/1", st.ProjectilesLive, st.ProjectilesCached, st.Culled)
	}
	if er.Projectiles().Len() != 1 {
		t.Fatalf("projectile cache len = %d", er.Projectiles().Len())
	}
}
