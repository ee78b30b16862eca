package render

import (
	"image/color"
	"testing"
)

func allKinds() []Kind {
	return []Kind{
		KindGrunt, KindDart, KindBrute, KindSwarmer, KindShellback, KindSplitter,
		KindBurrower, KindBoss, KindDrone, KindMarine,
		KindGunTurret, KindLaserTurret, KindFlameTurret, KindTeslaTurret,
		KindBase, KindBuildSlot, KindPlayer,
	}
}

func TestRegistry_ResolveKind(t *testing.T) {
	r := NewRegistry()
	cases := []struct {
		e    *Entity
		want Kind
	}{
		{&Entity{Kind: KindBoss, Shape: ShapeTriangle}, KindBoss},
		{&Entity{Shape: ShapeTriangle}, KindDart},
		{&Entity{Shape: ShapeHexagon}, KindShellback},
		{&Entity{}, KindUnknown},
		{nil, KindUnknown},
	}
	for i, tc := range cases {
		if got := r.ResolveKind(tc.e); got != tc.want {
			t.Fatalf("case %d: ResolveKind = %q, want %q", i, got, tc.want)
		}
	}
}

func TestRegistry_UnknownKindFallsBack(t *testing.T) {
	r := DefaultRegistry()
	def := r.Definition(&Entity{Kind: "mystery", Radius: 8})
	if def == nil {
		t.Fatal("Definition returned nil for an unknown kind")
	}
	if def.Kind != KindUnknown {
		t.Fatalf("fallback kind = %q, want unknown", def.Kind)
	}

	rec := NewRecorder(64, 64)
	def.Render(rec, &Entity{Kind: "mystery"}, 0, 0)
	if rec.Count(OpFillCircle) != 1 {
		t.Fatalf("fallback drew %d circles, want 1", rec.Count(OpFillCircle))
	}
}

func TestRegistry_RegisterDefFillsDefaults(t *testing.T) {
	r := NewRegistry()
	r.RegisterDef(VisualDef{Kind: KindGrunt})
	def := r.Definition(&Entity{Kind: KindGrunt})
	if def.Render == nil || def.Policy == nil || def.Key == nil {
		t.Fatal("RegisterDef left a nil function")
	}
	if def.Policy(2) != Dynamic {
		t.Fatalf("default policy = %s, want dynamic", def.Policy(2))
	}
}

func TestDefaultRegistry_CoversEveryKind(t *testing.T) {
	r := DefaultRegistry()
	for _, k := range allKinds() {
		if !r.Has(k) {
			t.Fatalf("DefaultRegistry missing %q", k)
		}
	}
}

func TestDefaultRegistry_Policies(t *testing.T) {
	r := DefaultRegistry()
	cases := []struct {
		kind Kind
		want [3]CachePolicy
	}{
		{KindGrunt, [3]CachePolicy{Dynamic, Static, Static}},
		{KindBoss, [3]CachePolicy{Dynamic, Dynamic, Static}},
		{KindBurrower, [3]CachePolicy{Dynamic, Dynamic, Dynamic}},
		{KindGunTurret, [3]CachePolicy{Static, Static, Static}},
		{KindTeslaTurret, [3]CachePolicy{Dynamic, Dynamic, Dynamic}},
		{KindPlayer, [3]CachePolicy{Dynamic, Dynamic, Dynamic}},
	}
	for _, tc := range cases {
		def := r.Definition(&Entity{Kind: tc.kind})
		for lod, want := range tc.want {
			if got := def.Policy(lod); got != want {
				t.Fatalf("%s lod %d: policy %s, want %s", tc.kind, lod, got, want)
			}
		}
	}
}

func TestDefaultKey_IgnoresPose(t *testing.T) {
	a := &Entity{Kind: KindGrunt, X: 10, Y: 20, Angle: 1, Radius: 9, Color: color.RGBA{R: 1, A: 255}, Level: 2}
	b := *a
	b.X, b.Y, b.Angle = 500, -30, 3
	if DefaultKey(a) != DefaultKey(&b) {
		t.Fatalf("key depends on pose: %q vs %q", DefaultKey(a), DefaultKey(&b))
	}
	b.Level = 3
	if DefaultKey(a) == DefaultKey(&b) {
		t.Fatal("key ignores level")
	}
}

func TestShapes_NeverPanic(t *testing.T) {
	r := DefaultRegistry()
	entities := []Entity{
		{},
		{Radius: -4, Level: -1},
		{Radius: 30, Level: 9, Health: 5, MaxHealth: 10},
	}
	for _, k := range allKinds() {
		for _, base := range entities {
			e := base
			e.Kind = k
			def := r.Definition(&e)
			for lod := 0; lod <= 2; lod++ {
				rec := NewRecorder(128, 128)
				def.Render(rec, &e, 12.5, lod)
				if len(rec.Ops()) == 0 {
					t.Fatalf("%s lod %d drew nothing", k, lod)
				}
			}
		}
	}
}

func TestShapes_DetailDropsWithLOD(t *testing.T) {
	e := &Entity{Kind: KindGrunt, Radius: 10}
	full := NewRecorder(64, 64)
	drawGrunt(full, e, 0, 0)
	low := NewRecorder(64, 64)
	drawGrunt(low, e, 0, 2)
	if len(low.Ops()) >= len(full.Ops()) {
		t.Fatalf("lod 2 drew %d ops, lod 0 drew %d; expected fewer", len(low.Ops()), len(full.Ops()))
	}
}
