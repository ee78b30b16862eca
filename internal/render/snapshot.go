package render

import "image/color"

// Kind is the explicit visual discriminant carried by every entity.
type Kind string

const (
	KindUnknown Kind = ""

	// Enemies.
	KindGrunt     Kind = "grunt"
	KindDart      Kind = "dart"
	KindBrute     Kind = "brute"
	KindSwarmer   Kind = "swarmer"
	KindShellback Kind = "shellback"
	KindSplitter  Kind = "splitter"
	KindBurrower  Kind = "burrower"
	KindBoss      Kind = "boss"

	// Allies.
	KindDrone  Kind = "drone"
	KindMarine Kind = "marine"

	// Structures.
	KindGunTurret   Kind = "turret_gun"
	KindLaserTurret Kind = "turret_laser"
	KindFlameTurret Kind = "turret_flame"
	KindTeslaTurret Kind = "turret_tesla"
	KindBase        Kind = "base"
	KindBuildSlot   Kind = "build_slot"

	KindPlayer Kind = "player"
)

// Shape is a coarse outline hint used only to classify untagged entities.
type Shape string

const (
	ShapeNone     Shape = ""
	ShapeCircle   Shape = "circle"
	ShapeTriangle Shape = "triangle"
	ShapeSquare   Shape = "square"
	ShapeHexagon  Shape = "hexagon"
	ShapeDiamond  Shape = "diamond"
)

// Entity is one drawable world object.
type Entity struct {
	ID     int
	Kind   Kind
	Shape  Shape
	X, Y   float64
	Angle  float64
	Radius float64
	Color  color.RGBA
	Level  int

	Health, MaxHealth float64
	Shell, MaxShell   float64

	// Lift is the vertical visual scale: 1 stands on the ground plane,
	// values near 0 are flattened into it (emerging, submerged).
	Lift        float64
	Underground bool
}

// ProjectileKind identifies a projectile visual.
type ProjectileKind string

const (
	ProjectileBullet  ProjectileKind = "bullet"
	ProjectileMissile ProjectileKind = "missile"
	ProjectileLaser   ProjectileKind = "laser"
	ProjectilePlasma  ProjectileKind = "plasma"
	ProjectileFlame   ProjectileKind = "flame"
)

// Projectile is a transient shot in flight.
type Projectile struct {
	Kind      ProjectileKind
	X, Y      float64
	Angle     float64
	Color     color.RGBA
	Homing    bool
	Travelled float64 // distance covered since launch
	Range     float64
}

// Particle is an ephemeral glow.
type Particle struct {
	X, Y    float64
	Radius  float64
	Color   color.RGBA
	Life    float64 // remaining
	MaxLife float64
}

// LifeFraction returns remaining life in [0,1].
func (p *Particle) LifeFraction() float64 {
	if p.MaxLife <= 0 {
		return 1
	}
	f := p.Life / p.MaxLife
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}

// TextKind selects the styling of floating text.
type TextKind uint8

const (
	TextDamage TextKind = iota
	TextLoot
	TextSystem
)

// FloatingText is a short-lived world-space label.
type FloatingText struct {
	Text    string
	Kind    TextKind
	X, Y    float64
	Color   color.RGBA
	Life    float64
	MaxLife float64
}

// TurretSpot is a build slot; occupied slots are drawn by their turret.
type TurretSpot struct {
	X, Y     float64
	Radius   float64
	Occupied bool
}

// FeatureKind identifies a terrain feature.
type FeatureKind string

const (
	FeatureRock     FeatureKind = "rock"
	FeatureCrater   FeatureKind = "crater"
	FeatureIceSpike FeatureKind = "ice_spike"
	FeatureCrystal  FeatureKind = "crystal"
	FeatureDust     FeatureKind = "dust"
	FeatureMagma    FeatureKind = "magma_pool"
	FeatureFlora    FeatureKind = "alien_flora"
	FeatureSporePod FeatureKind = "spore_pod"
)

// IsAnimated reports whether a feature kind is drawn live every frame
// instead of being baked into the terrain raster.
func (k FeatureKind) IsAnimated() bool {
	switch k {
	case FeatureMagma, FeatureFlora, FeatureSporePod:
		return true
	}
	return false
}

// Feature is one terrain decoration.
type Feature struct {
	Kind   FeatureKind
	X, Y   float64
	Radius float64
	Angle  float64
	Color  color.RGBA
	Seed   int64
}

// Terrain is the static level layout. The renderer keys its raster cache on
// the pointer, so a new layout must be a new *Terrain.
type Terrain struct {
	Width, Height float64
	Ground        color.RGBA
	Features      []Feature
}

// PerformanceMode selects an LOD threshold pair.
type PerformanceMode string

const (
	ModeQuality     PerformanceMode = "quality"
	ModeBalanced    PerformanceMode = "balanced"
	ModePerformance PerformanceMode = "performance"
)

// Settings are the user-facing visual toggles.
type Settings struct {
	Mode               PerformanceMode
	ShowShadows        bool
	AnimatedBackground bool
}

// BaseDropState describes the intro sequence where the base is dropped in.
// Active covers the whole sequence; InFlight only the descent.
type BaseDropState struct {
	Active   bool
	InFlight bool
}

// PlayerStatus carries player state that only overlays care about.
type PlayerStatus struct {
	Reloading bool
}

// Snapshot is the read-only view of one frame of simulation state.
type Snapshot struct {
	Camera Camera
	Time   float64 // seconds

	Player      *Entity
	Bases       []Entity
	TurretSpots []TurretSpot
	Turrets     []Entity
	Allies      []Entity
	Enemies     []Entity
	Projectiles []Projectile
	Particles   []Particle

	Terrain       *Terrain
	FloatingTexts []FloatingText

	Settings Settings
	BaseDrop BaseDropState
	Status   PlayerStatus
}

// LifeFraction returns remaining life in [0,1].
func (t *FloatingText) LifeFraction() float64 {
	if t.MaxLife <= 0 {
		return 1
	}
	return clamp01(t.Life / t.MaxLife)
}
