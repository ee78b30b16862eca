package game

import (
	"math/rand"
	"reflect"
	"testing"

	"github.com/Garsondee/Drop-Siege/internal/render"
)

func TestValueNoise2D_Range(t *testing.T) {
	// Verify noise output is in [0,1].
	seed := int64(12345)
	for y := -10.0; y < 10.0; y += 0.37 {
		for x := -10.0; x < 10.0; x += 0.37 {
			v := valueNoise2D(x, y, seed)
			if v < 0 || v > 1 {
				t.Fatalf("noise at (%.2f,%.2f) = %f, out of [0,1]", x, y, v)
			}
		}
	}
}

func TestValueNoise2D_Deterministic(t *testing.T) {
	seed := int64(99999)
	a := valueNoise2D(3.7, 8.2, seed)
	b := valueNoise2D(3.7, 8.2, seed)
	if a != b {
		t.Fatalf("noise not deterministic: %f != %f", a, b)
	}
}

func TestGenerateTerrain_Deterministic(t *testing.T) {
	a := GenerateTerrain(1600, 1200, BiomeVolcanic, rand.New(rand.NewSource(7)))
	b := GenerateTerrain(1600, 1200, BiomeVolcanic, rand.New(rand.NewSource(7)))
	if !reflect.DeepEqual(a, b) {
		t.Fatal("same seed produced different layouts")
	}
	if a == b {
		t.Fatal("expected distinct *Terrain values")
	}
}

func TestGenerateTerrain_FeaturesInBoundsAndFromMix(t *testing.T) {
	for b := Biome(0); b < biomeCount; b++ {
		tr := GenerateTerrain(2000, 1500, b, rand.New(rand.NewSource(42)))
		if tr.Width != 2000 || tr.Height != 1500 {
			t.Fatalf("%s: size %vx%v", b, tr.Width, tr.Height)
		}
		if tr.Ground != biomeConfigs[b].Ground {
			t.Fatalf("%s: ground %v", b, tr.Ground)
		}
		if len(tr.Features) == 0 {
			t.Fatalf("%s: no features placed", b)
		}
		allowed := map[render.FeatureKind]bool{}
		for _, fw := range biomeConfigs[b].Mix {
			allowed[fw.kind] = true
		}
		for _, f := range tr.Features {
			if f.X < 0 || f.X > tr.Width || f.Y < 0 || f.Y > tr.Height {
				t.Fatalf("%s: feature out of bounds at (%.0f,%.0f)", b, f.X, f.Y)
			}
			if !allowed[f.Kind] {
				t.Fatalf("%s: unexpected feature %s", b, f.Kind)
			}
			if f.Radius <= 0 {
				t.Fatalf("%s: feature with radius %f", b, f.Radius)
			}
		}
	}
}

func TestGenerateTerrain_VolcanicHasAnimatedFeatures(t *testing.T) {
	tr := GenerateTerrain(3000, 3000, BiomeVolcanic, rand.New(rand.NewSource(3)))
	animated := 0
	for _, f := range tr.Features {
		if f.Kind.IsAnimated() {
			animated++
		}
	}
	if animated == 0 {
		t.Fatal("expected magma pools in a volcanic layout")
	}
}

func TestPickFeature_CoversWeights(t *testing.T) {
	mix := []featureWeight{
		{render.FeatureRock, 1, 1, 2},
		{render.FeatureCrater, 3, 1, 2},
	}
	if got := pickFeature(mix, 4, 0.1).kind; got != render.FeatureRock {
		t.Fatalf("v=0.1 picked %s", got)
	}
	if got := pickFeature(mix, 4, 0.9).kind; got != render.FeatureCrater {
		t.Fatalf("v=0.9 picked %s", got)
	}
	if got := pickFeature(mix, 4, 1.5).kind; got != render.FeatureCrater {
		t.Fatalf("v past the end picked %s", got)
	}
}

func TestBiome_String(t *testing.T) {
	if BiomeIce.String() != "ice" || Biome(99).String() != "unknown" {
		t.Fatal("biome names")
	}
}
