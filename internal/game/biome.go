package game

import (
	"image/color"
	"math"
	"math/rand"

	"github.com/Garsondee/Drop-Siege/internal/render"
)

// Biome selects the planet surface a level is generated on.
type Biome int

const (
	BiomeBarren Biome = iota
	BiomeIce
	BiomeVolcanic
	BiomeJungle
	biomeCount
)

var biomeNames = [biomeCount]string{"barren", "ice", "volcanic", "jungle"}

func (b Biome) String() string {
	if b >= 0 && b < biomeCount {
		return biomeNames[b]
	}
	return "unknown"
}

// featureWeight is one entry in a biome's feature mix.
type featureWeight struct {
	kind   render.FeatureKind
	weight float64
	minR   float64
	maxR   float64
}

// biomeConfig holds tuneable noise and scatter parameters.
type biomeConfig struct {
	Ground color.RGBA

	// Noise layer scales (smaller = broader clusters).
	DensityScale float64
	MixScale     float64

	// Grid cell a feature may be placed in, in world pixels.
	CellSize float64

	// Density noise above this places a feature in the cell.
	PlaceThreshold float64

	Mix []featureWeight
}

var biomeConfigs = [biomeCount]biomeConfig{
	BiomeBarren: {
		Ground:         color.RGBA{R: 46, G: 40, B: 34, A: 255},
		DensityScale:   0.09,
		MixScale:       0.05,
		CellSize:       64,
		PlaceThreshold: 0.58,
		Mix: []featureWeight{
			{render.FeatureRock, 4, 8, 22},
			{render.FeatureCrater, 3, 18, 48},
			{render.FeatureDust, 3, 14, 30},
			{render.FeatureCrystal, 1, 6, 12},
		},
	},
	BiomeIce: {
		Ground:         color.RGBA{R: 54, G: 66, B: 78, A: 255},
		DensityScale:   0.08,
		MixScale:       0.04,
		CellSize:       64,
		PlaceThreshold: 0.6,
		Mix: []featureWeight{
			{render.FeatureIceSpike, 5, 10, 24},
			{render.FeatureCrater, 2, 20, 40},
			{render.FeatureCrystal, 2, 6, 14},
		},
	},
	BiomeVolcanic: {
		Ground:         color.RGBA{R: 36, G: 26, B: 24, A: 255},
		DensityScale:   0.1,
		MixScale:       0.06,
		CellSize:       64,
		PlaceThreshold: 0.6,
		Mix: []featureWeight{
			{render.FeatureRock, 4, 10, 26},
			{render.FeatureMagma, 3, 16, 36},
			{render.FeatureCrater, 2, 20, 44},
			{render.FeatureDust, 1, 12, 24},
		},
	},
	BiomeJungle: {
		Ground:         color.RGBA{R: 24, G: 40, B: 30, A: 255},
		DensityScale:   0.12,
		MixScale:       0.05,
		CellSize:       56,
		PlaceThreshold: 0.52,
		Mix: []featureWeight{
			{render.FeatureFlora, 5, 10, 22},
			{render.FeatureSporePod, 2, 8, 14},
			{render.FeatureRock, 2, 8, 18},
		},
	},
}

// GenerateTerrain scatters biome features over a w×h world. Features
// cluster where the density noise is high; which kind lands in a cell
// follows a second, broader noise layer so patches of one kind appear
// together. The result is a fresh *Terrain, so the renderer rebuilds.
func GenerateTerrain(w, h float64, biome Biome, rng *rand.Rand) *render.Terrain {
	if biome < 0 || biome >= biomeCount {
		biome = BiomeBarren
	}
	cfg := biomeConfigs[biome]
	densitySeed := rng.Int63()
	mixSeed := rng.Int63()

	tr := &render.Terrain{Width: w, Height: h, Ground: cfg.Ground}

	total := 0.0
	for _, fw := range cfg.Mix {
		total += fw.weight
	}

	cols := int(math.Ceil(w / cfg.CellSize))
	rows := int(math.Ceil(h / cfg.CellSize))
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			d := valueNoise2D(float64(col)*cfg.DensityScale*4, float64(row)*cfg.DensityScale*4, densitySeed)
			if d < cfg.PlaceThreshold {
				continue
			}
			m := valueNoise2D(float64(col)*cfg.MixScale*4, float64(row)*cfg.MixScale*4, mixSeed)
			fw := pickFeature(cfg.Mix, total, m)

			x := (float64(col) + 0.15 + 0.7*rng.Float64()) * cfg.CellSize
			y := (float64(row) + 0.15 + 0.7*rng.Float64()) * cfg.CellSize
			if x > w || y > h {
				continue
			}
			tr.Features = append(tr.Features, render.Feature{
				Kind:   fw.kind,
				X:      x,
				Y:      y,
				Radius: fw.minR + (fw.maxR-fw.minR)*rng.Float64(),
				Angle:  rng.Float64() * 2 * math.Pi,
				Seed:   rng.Int63(),
			})
		}
	}
	return tr
}

// pickFeature maps v in [0,1] onto the weighted mix.
func pickFeature(mix []featureWeight, total, v float64) featureWeight {
	acc := 0.0
	for _, fw := range mix {
		acc += fw.weight / total
		if v <= acc {
			return fw
		}
	}
	return mix[len(mix)-1]
}

// --- Value noise implementation ---

// valueNoise2D returns a smooth noise value in [0,1] for the given coordinates.
// Uses lattice-based value noise with hermite interpolation.
func valueNoise2D(x, y float64, seed int64) float64 {
	xi := int(math.Floor(x))
	yi := int(math.Floor(y))
	xf := x - float64(xi)
	yf := y - float64(yi)

	u := xf * xf * (3 - 2*xf)
	v := yf * yf * (3 - 2*yf)

	n00 := latticeValue(xi, yi, seed)
	n10 := latticeValue(xi+1, yi, seed)
	n01 := latticeValue(xi, yi+1, seed)
	n11 := latticeValue(xi+1, yi+1, seed)

	nx0 := n00*(1-u) + n10*u
	nx1 := n01*(1-u) + n11*u
	return nx0*(1-v) + nx1*v
}

// latticeValue returns a pseudo-random value in [0,1] for integer coordinates.
func latticeValue(x, y int, seed int64) float64 {
	h := uint64(seed)
	h ^= uint64(x) * 0x517cc1b727220a95
	h ^= uint64(y) * 0x6c62272e07bb0142
	h = h*0x2545f4914f6cdd1d + 0x14057b7ef767814f
	h ^= h >> 16
	h *= 0xd6e8feb86659fd93
	h ^= h >> 16
	return float64(h&0xFFFFFFFF) / float64(0xFFFFFFFF)
}
