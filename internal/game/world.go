package game

import (
	"fmt"
	"image/color"
	"math"
	"math/rand"

	"github.com/Garsondee/Drop-Siege/internal/render"
)

// tickDT is the fixed simulation step (Ebiten's default 60 TPS).
const tickDT = 1.0 / 60.0

const (
	baseRadius    = 34.0
	spotRadius    = 18.0
	spotRing      = 120.0
	spotCount     = 8
	playerOffset  = 62.0
	playerRadius  = 11.0
	magazineSize  = 6
	reloadSeconds = 1.6
	playerCadence = 0.35
	missileRange  = 900.0
	missileSpeed  = 320.0
	missileTurn   = 4.0 // rad/s

	dropFallSeconds = 1.4
	dropSettle      = 0.8

	waveInterval  = 9.0
	burrowUp      = 3.0
	burrowDown    = 2.0
	burrowEmerge  = 0.5
	maxParticles  = 4000
	textLife      = 1.1
	lootTextLife  = 1.6
	systemTextDur = 2.4
)

// particlePalette is deliberately small so the batch renderer can share
// one glow sprite per colour.
var particlePalette = []color.RGBA{
	{R: 255, G: 170, B: 60, A: 255},
	{R: 255, G: 230, B: 120, A: 255},
	{R: 230, G: 70, B: 50, A: 255},
	{R: 110, G: 220, B: 255, A: 255},
	{R: 190, G: 120, B: 255, A: 255},
}

var (
	damageTextCol = color.RGBA{R: 255, G: 110, B: 90, A: 255}
	lootTextCol   = color.RGBA{R: 255, G: 215, B: 90, A: 255}
	systemTextCol = color.RGBA{R: 200, G: 235, B: 255, A: 255}
)

// enemyStat is the per-kind baseline an enemy spawns with.
type enemyStat struct {
	radius float64
	speed  float64
	health float64
	shell  float64
	loot   int
}

var enemyStats = map[render.Kind]enemyStat{
	render.KindGrunt:     {radius: 10, speed: 42, health: 30, loot: 1},
	render.KindDart:      {radius: 7, speed: 95, health: 14, loot: 1},
	render.KindBrute:     {radius: 17, speed: 24, health: 120, loot: 4},
	render.KindSwarmer:   {radius: 6, speed: 70, health: 8, loot: 1},
	render.KindShellback: {radius: 14, speed: 28, health: 60, shell: 80, loot: 3},
	render.KindSplitter:  {radius: 12, speed: 38, health: 40, loot: 2},
	render.KindBurrower:  {radius: 11, speed: 50, health: 45, loot: 2},
	render.KindBoss:      {radius: 36, speed: 16, health: 1400, shell: 600, loot: 40},
}

// turretStat describes how a turret kind fires.
type turretStat struct {
	rng      float64
	cooldown float64
	damage   float64
	speed    float64
	shot     render.ProjectileKind
	color    color.RGBA
}

var turretStats = map[render.Kind]turretStat{
	render.KindGunTurret:   {rng: 260, cooldown: 0.18, damage: 6, speed: 520, shot: render.ProjectileBullet, color: color.RGBA{R: 255, G: 230, B: 140, A: 255}},
	render.KindLaserTurret: {rng: 340, cooldown: 0.6, damage: 22, speed: 900, shot: render.ProjectileLaser, color: color.RGBA{R: 255, G: 80, B: 80, A: 255}},
	render.KindFlameTurret: {rng: 150, cooldown: 0.06, damage: 2, speed: 240, shot: render.ProjectileFlame, color: color.RGBA{R: 255, G: 150, B: 40, A: 255}},
	render.KindTeslaTurret: {rng: 220, cooldown: 0.45, damage: 14, speed: 600, shot: render.ProjectilePlasma, color: color.RGBA{R: 120, G: 200, B: 255, A: 255}},
}

var turretOrder = []render.Kind{
	render.KindGunTurret, render.KindLaserTurret, render.KindFlameTurret, render.KindTeslaTurret,
}

// waveKinds is the unlock order of enemy kinds across waves.
var waveKinds = []render.Kind{
	render.KindGrunt, render.KindSwarmer, render.KindDart, render.KindSplitter,
	render.KindShellback, render.KindBurrower, render.KindBrute,
}

type enemy struct {
	render.Entity
	speed float64
	loot  int
	phase float64 // burrow cycle clock
}

type turret struct {
	render.Entity
	stat     turretStat
	cooldown float64
}

type ally struct {
	render.Entity
	orbit    float64
	phase    float64
	cooldown float64
}

type shot struct {
	render.Projectile
	speed  float64
	damage float64
	target int // enemy ID for homing shots, 0 for none
}

type dropState struct {
	active bool
	timer  float64
}

// World is the deterministic siege simulation that feeds the render
// pipeline. It owns no drawing state; Snapshot hands the renderers a
// read-only view.
type World struct {
	Width, Height float64
	Biome         Biome
	Settings      render.Settings

	rng     *rand.Rand
	seed    int64
	terrain *render.Terrain
	time    float64
	tick    int

	base        render.Entity
	player      render.Entity
	ammo        int
	reloadTimer float64
	fireTimer   float64

	spots       []render.TurretSpot
	turrets     []turret
	allies      []ally
	enemies     []enemy
	projectiles []shot
	particles   []render.Particle
	texts       []render.FloatingText

	drop      dropState
	waves     bool
	wave      int
	waveTimer float64
	ambient   int

	nextID int
	kills  int
	ore    int
}

func newWorld() *World {
	return &World{
		Width:  2400,
		Height: 1800,
		Biome:  BiomeBarren,
		Settings: render.Settings{
			Mode:               render.ModeBalanced,
			ShowShadows:        true,
			AnimatedBackground: true,
		},
		rng:       rand.New(rand.NewSource(1)), // #nosec G404 -- deterministic sim
		seed:      1,
		waves:     true,
		waveTimer: 2,
		ammo:      magazineSize,
	}
}

// layout places the base, player and build spots at the world centre.
func (w *World) layout() {
	cx, cy := w.Width/2, w.Height/2
	w.base = render.Entity{
		ID: w.id(), Kind: render.KindBase,
		X: cx, Y: cy, Radius: baseRadius, Lift: 1,
		Health: 500, MaxHealth: 500, Shell: 300, MaxShell: 300,
	}
	w.player = render.Entity{
		ID: w.id(), Kind: render.KindPlayer,
		X: cx + playerOffset, Y: cy + playerOffset*0.4, Radius: playerRadius, Lift: 1,
		Health: 100, MaxHealth: 100,
	}
	w.spots = w.spots[:0]
	for i := 0; i < spotCount; i++ {
		a := float64(i) / spotCount * 2 * math.Pi
		w.spots = append(w.spots, render.TurretSpot{
			X: cx + math.Cos(a)*spotRing, Y: cy + math.Sin(a)*spotRing, Radius: spotRadius,
		})
	}
}

func (w *World) id() int {
	w.nextID++
	return w.nextID
}

// Terrain returns the current layout.
func (w *World) Terrain() *render.Terrain { return w.terrain }

// Regenerate builds a new terrain layout from the world's RNG.
func (w *World) Regenerate() {
	w.terrain = GenerateTerrain(w.Width, w.Height, w.Biome, w.rng)
}

// Seed returns the seed the world was built from.
func (w *World) Seed() int64 { return w.seed }

// Time returns simulated seconds.
func (w *World) Time() float64 { return w.time }

// Tick returns the number of steps taken.
func (w *World) Tick() int { return w.tick }

// Wave returns the last spawned wave number.
func (w *World) Wave() int { return w.wave }

// Kills returns how many enemies have died.
func (w *World) Kills() int { return w.kills }

// Ore returns the loot collected so far.
func (w *World) Ore() int { return w.ore }

// EnemyCount returns the live enemy count.
func (w *World) EnemyCount() int { return len(w.enemies) }

// ParticleCount returns the live particle count.
func (w *World) ParticleCount() int { return len(w.particles) }

// BaseCenter returns the base position.
func (w *World) BaseCenter() (float64, float64) { return w.base.X, w.base.Y }

// Dropping reports whether the base-drop intro is running.
func (w *World) Dropping() bool { return w.drop.active }

// Reloading reports whether the player is between magazines.
func (w *World) Reloading() bool { return w.reloadTimer > 0 }

// StartDrop restarts the base-drop intro.
func (w *World) StartDrop() {
	w.drop = dropState{active: true, timer: dropFallSeconds + dropSettle}
	w.base.Lift = 0.2
}

// AddTurret occupies the next free build spot with a turret of kind.
// It returns false when every spot is taken or kind is not a turret.
func (w *World) AddTurret(kind render.Kind) bool {
	stat, ok := turretStats[kind]
	if !ok {
		return false
	}
	for i := range w.spots {
		if w.spots[i].Occupied {
			continue
		}
		w.spots[i].Occupied = true
		w.turrets = append(w.turrets, turret{
			Entity: render.Entity{
				ID: w.id(), Kind: kind,
				X: w.spots[i].X, Y: w.spots[i].Y, Radius: spotRadius - 2, Lift: 1,
				Level: 1 + len(w.turrets)%3,
			},
			stat: stat,
		})
		return true
	}
	return false
}

// AddAlly spawns a drone or marine near the base.
func (w *World) AddAlly(kind render.Kind) {
	a := ally{
		Entity: render.Entity{ID: w.id(), Kind: kind, Lift: 1, Health: 60, MaxHealth: 60},
		phase:  w.rng.Float64() * 2 * math.Pi,
	}
	switch kind {
	case render.KindDrone:
		a.Radius = 8
		a.Lift = 0.8
		a.orbit = 70 + 30*w.rng.Float64()
	default:
		a.Kind = render.KindMarine
		a.Radius = 9
		a.orbit = 55 + 20*w.rng.Float64()
	}
	a.X = w.base.X + math.Cos(a.phase)*a.orbit
	a.Y = w.base.Y + math.Sin(a.phase)*a.orbit
	w.allies = append(w.allies, a)
}

// SpawnEnemy adds one enemy of kind at (x, y).
func (w *World) SpawnEnemy(kind render.Kind, x, y float64) {
	st, ok := enemyStats[kind]
	if !ok {
		st = enemyStats[render.KindGrunt]
	}
	e := enemy{
		Entity: render.Entity{
			ID: w.id(), Kind: kind, X: x, Y: y,
			Radius: st.radius, Lift: 1,
			Health: st.health, MaxHealth: st.health,
			Shell: st.shell, MaxShell: st.shell,
		},
		speed: st.speed * (0.85 + 0.3*w.rng.Float64()),
		loot:  st.loot,
		phase: w.rng.Float64() * (burrowUp + burrowDown),
	}
	e.Angle = math.Atan2(w.base.Y-y, w.base.X-x)
	w.enemies = append(w.enemies, e)
}

// SpawnScattered adds n enemies of kind at random positions away from the base.
func (w *World) SpawnScattered(kind render.Kind, n int) {
	for i := 0; i < n; i++ {
		x, y := w.randomAwayFromBase(spotRing * 2)
		w.SpawnEnemy(kind, x, y)
	}
}

// scatterAttempts bounds the rejection sampling in randomAwayFromBase.
const scatterAttempts = 64

// randomAwayFromBase samples a point at least minDist from the base. Worlds
// too small to hold such a point get an edge point instead.
func (w *World) randomAwayFromBase(minDist float64) (float64, float64) {
	for i := 0; i < scatterAttempts; i++ {
		x := w.rng.Float64() * w.Width
		y := w.rng.Float64() * w.Height
		if math.Hypot(x-w.base.X, y-w.base.Y) >= minDist {
			return x, y
		}
	}
	return w.edgePoint()
}

// edgePoint returns a random point on the world boundary.
func (w *World) edgePoint() (float64, float64) {
	t := w.rng.Float64()
	switch w.rng.Intn(4) {
	case 0:
		return t * w.Width, 0
	case 1:
		return w.Width, t * w.Height
	case 2:
		return t * w.Width, w.Height
	default:
		return 0, t * w.Height
	}
}

// spawnWave sends the next wave in from the edges.
func (w *World) spawnWave() {
	w.wave++
	unlocked := w.wave
	if unlocked > len(waveKinds) {
		unlocked = len(waveKinds)
	}
	count := 6 + w.wave*4
	for i := 0; i < count; i++ {
		kind := waveKinds[w.rng.Intn(unlocked)]
		x, y := w.edgePoint()
		w.SpawnEnemy(kind, x, y)
	}
	if w.wave%5 == 0 {
		x, y := w.edgePoint()
		w.SpawnEnemy(render.KindBoss, x, y)
	}
	w.systemText(fmt.Sprintf("WAVE %d", w.wave))
}

// AddAmbient keeps n drifting background particles alive.
func (w *World) AddAmbient(n int) { w.ambient += n }

// Step advances the simulation by one fixed tick.
func (w *World) Step() {
	dt := tickDT
	w.tick++
	w.time += dt

	w.stepDrop(dt)
	if w.waves && !w.drop.active {
		w.waveTimer -= dt
		if w.waveTimer <= 0 {
			w.spawnWave()
			w.waveTimer = waveInterval
		}
	}
	w.stepEnemies(dt)
	if !w.drop.active {
		w.stepTurrets(dt)
		w.stepAllies(dt)
		w.stepPlayer(dt)
	}
	w.stepShots(dt)
	w.stepParticles(dt)
	w.stepTexts(dt)
}

func (w *World) stepDrop(dt float64) {
	if !w.drop.active {
		return
	}
	w.drop.timer -= dt
	left := w.drop.timer - dropSettle
	if left > 0 {
		// Falling: lift ramps 0.2 -> 1, which only moves the shadow offset.
		w.base.Lift = 0.2 + 0.8*(1-left/dropFallSeconds)
		return
	}
	if w.base.Lift < 1 {
		w.base.Lift = 1
		w.burst(w.base.X, w.base.Y, 40, 3)
		w.systemText("BASE DEPLOYED")
	}
	if w.drop.timer <= 0 {
		w.drop.active = false
	}
}

func (w *World) stepEnemies(dt float64) {
	kept := w.enemies[:0]
	for i := range w.enemies {
		e := &w.enemies[i]
		if e.Kind == render.KindBurrower {
			w.stepBurrow(e, dt)
		}
		dx, dy := w.base.X-e.X, w.base.Y-e.Y
		dist := math.Hypot(dx, dy)
		if dist <= baseRadius+e.Radius {
			// Contact: the enemy detonates against the base.
			w.damageBase(e.MaxHealth * 0.2)
			w.burst(e.X, e.Y, 10, 1)
			continue
		}
		e.Angle = math.Atan2(dy, dx)
		step := e.speed * dt
		e.X += dx / dist * step
		e.Y += dy / dist * step
		kept = append(kept, *e)
	}
	w.enemies = kept
}

// stepBurrow cycles a burrower between the surface and underground.
// Lift eases in and out around each transition.
func (w *World) stepBurrow(e *enemy, dt float64) {
	e.phase = math.Mod(e.phase+dt, burrowUp+burrowDown)
	if e.phase < burrowUp {
		e.Underground = false
		e.Lift = math.Min(1, e.phase/burrowEmerge)
		if rem := burrowUp - e.phase; rem < burrowEmerge {
			e.Lift = math.Min(e.Lift, rem/burrowEmerge)
		}
		return
	}
	e.Underground = true
	e.Lift = 0
}

func (w *World) nearestEnemy(x, y, rng float64) int {
	best, bestD := -1, rng
	for i := range w.enemies {
		e := &w.enemies[i]
		if e.Underground {
			continue
		}
		d := math.Hypot(e.X-x, e.Y-y)
		if d <= bestD {
			best, bestD = i, d
		}
	}
	return best
}

func (w *World) fire(kind render.ProjectileKind, x, y, angle, speed, rng, damage float64, clr color.RGBA, target int) {
	w.projectiles = append(w.projectiles, shot{
		Projectile: render.Projectile{
			Kind: kind, X: x, Y: y, Angle: angle, Color: clr,
			Homing: target != 0, Range: rng,
		},
		speed:  speed,
		damage: damage,
		target: target,
	})
}

func (w *World) stepTurrets(dt float64) {
	for i := range w.turrets {
		t := &w.turrets[i]
		t.cooldown -= dt
		idx := w.nearestEnemy(t.X, t.Y, t.stat.rng)
		if idx < 0 {
			continue
		}
		e := &w.enemies[idx]
		t.Angle = math.Atan2(e.Y-t.Y, e.X-t.X)
		if t.cooldown > 0 {
			continue
		}
		t.cooldown = t.stat.cooldown
		spread := 0.0
		if t.stat.shot == render.ProjectileFlame {
			spread = (w.rng.Float64() - 0.5) * 0.4
		}
		w.fire(t.stat.shot, t.X, t.Y, t.Angle+spread, t.stat.speed, t.stat.rng*1.1,
			t.stat.damage*float64(t.Level), t.stat.color, 0)
	}
}

func (w *World) stepAllies(dt float64) {
	for i := range w.allies {
		a := &w.allies[i]
		a.cooldown -= dt
		if a.Kind == render.KindDrone {
			a.phase += dt * 0.9
		}
		a.X = w.base.X + math.Cos(a.phase)*a.orbit
		a.Y = w.base.Y + math.Sin(a.phase)*a.orbit
		idx := w.nearestEnemy(a.X, a.Y, 240)
		if idx < 0 {
			if a.Kind == render.KindDrone {
				a.Angle = a.phase + math.Pi/2
			}
			continue
		}
		e := &w.enemies[idx]
		a.Angle = math.Atan2(e.Y-a.Y, e.X-a.X)
		if a.cooldown <= 0 {
			a.cooldown = 0.5
			w.fire(render.ProjectileBullet, a.X, a.Y, a.Angle, 480, 280, 5,
				color.RGBA{R: 180, G: 255, B: 180, A: 255}, 0)
		}
	}
}

func (w *World) stepPlayer(dt float64) {
	if w.reloadTimer > 0 {
		w.reloadTimer -= dt
		if w.reloadTimer <= 0 {
			w.ammo = magazineSize
		}
		return
	}
	w.fireTimer -= dt
	idx := w.nearestEnemy(w.player.X, w.player.Y, missileRange*0.6)
	if idx < 0 {
		return
	}
	e := &w.enemies[idx]
	w.player.Angle = math.Atan2(e.Y-w.player.Y, e.X-w.player.X)
	if w.fireTimer > 0 {
		return
	}
	w.fireTimer = playerCadence
	w.fire(render.ProjectileMissile, w.player.X, w.player.Y, w.player.Angle,
		missileSpeed, missileRange, 35, color.RGBA{R: 255, G: 240, B: 200, A: 255}, e.ID)
	w.ammo--
	if w.ammo <= 0 {
		w.reloadTimer = reloadSeconds
	}
}

// SetReloading forces the player into (or out of) a reload.
func (w *World) SetReloading(on bool) {
	if on {
		w.ammo = 0
		w.reloadTimer = reloadSeconds
		return
	}
	w.ammo = magazineSize
	w.reloadTimer = 0
}

func (w *World) enemyByID(id int) int {
	for i := range w.enemies {
		if w.enemies[i].ID == id {
			return i
		}
	}
	return -1
}

func (w *World) stepShots(dt float64) {
	kept := w.projectiles[:0]
	for i := range w.projectiles {
		p := &w.projectiles[i]
		if p.Homing {
			if idx := w.enemyByID(p.target); idx >= 0 && !w.enemies[idx].Underground {
				e := &w.enemies[idx]
				want := math.Atan2(e.Y-p.Y, e.X-p.X)
				diff := math.Remainder(want-p.Angle, 2*math.Pi)
				limit := missileTurn * dt
				p.Angle += math.Max(-limit, math.Min(limit, diff))
			}
		}
		step := p.speed * dt
		p.X += math.Cos(p.Angle) * step
		p.Y += math.Sin(p.Angle) * step
		p.Travelled += step
		if p.Travelled > p.Range || p.X < 0 || p.Y < 0 || p.X > w.Width || p.Y > w.Height {
			continue
		}
		if hit := w.shotHit(p); hit >= 0 {
			w.damageEnemy(hit, p.damage, p.Color)
			continue
		}
		kept = append(kept, *p)
	}
	w.projectiles = kept
}

func (w *World) shotHit(p *shot) int {
	for i := range w.enemies {
		e := &w.enemies[i]
		if e.Underground {
			continue
		}
		if math.Hypot(e.X-p.X, e.Y-p.Y) <= e.Radius+2 {
			return i
		}
	}
	return -1
}

// damageEnemy drains shell before health and removes the enemy on death.
func (w *World) damageEnemy(idx int, dmg float64, clr color.RGBA) {
	e := &w.enemies[idx]
	absorbed := math.Min(e.Shell, dmg)
	e.Shell -= absorbed
	e.Health -= dmg - absorbed
	w.texts = append(w.texts, render.FloatingText{
		Text: fmt.Sprintf("%.0f", dmg), Kind: render.TextDamage,
		X: e.X, Y: e.Y - e.Radius, Color: damageTextCol,
		Life: textLife, MaxLife: textLife,
	})
	w.sparks(e.X, e.Y, clr, 3)
	if e.Health > 0 {
		return
	}

	dead := *e
	w.enemies = append(w.enemies[:idx], w.enemies[idx+1:]...)
	w.kills++
	w.ore += dead.loot
	w.burst(dead.X, dead.Y, 12+int(dead.Radius), 1.5)
	w.texts = append(w.texts, render.FloatingText{
		Text: fmt.Sprintf("+%d ore", dead.loot), Kind: render.TextLoot,
		X: dead.X, Y: dead.Y, Color: lootTextCol,
		Life: lootTextLife, MaxLife: lootTextLife,
	})
	if dead.Kind == render.KindSplitter {
		for k := 0; k < 2; k++ {
			off := (float64(k) - 0.5) * dead.Radius * 2
			w.SpawnEnemy(render.KindSwarmer, dead.X+off, dead.Y-off)
		}
	}
}

func (w *World) damageBase(dmg float64) {
	absorbed := math.Min(w.base.Shell, dmg)
	w.base.Shell -= absorbed
	w.base.Health -= dmg - absorbed
	if w.base.Health <= 0 {
		w.base.Health = w.base.MaxHealth
		w.base.Shell = w.base.MaxShell
		w.systemText("HULL BREACH - EMERGENCY REPAIR")
	}
}

func (w *World) systemText(msg string) {
	w.texts = append(w.texts, render.FloatingText{
		Text: msg, Kind: render.TextSystem,
		X: w.base.X, Y: w.base.Y - baseRadius - 40, Color: systemTextCol,
		Life: systemTextDur, MaxLife: systemTextDur,
	})
}

func (w *World) addParticle(p render.Particle) {
	if len(w.particles) >= maxParticles {
		return
	}
	w.particles = append(w.particles, p)
}

// sparks emits n short-lived particles tinted by the nearest palette colour.
func (w *World) sparks(x, y float64, clr color.RGBA, n int) {
	c := nearestPalette(clr)
	for i := 0; i < n; i++ {
		life := 0.2 + 0.3*w.rng.Float64()
		w.addParticle(render.Particle{
			X: x + (w.rng.Float64()-0.5)*8, Y: y + (w.rng.Float64()-0.5)*8,
			Radius: 2 + 2*w.rng.Float64(), Color: c,
			Life: life, MaxLife: life,
		})
	}
}

// burst emits an explosion of n particles spread over the palette.
func (w *World) burst(x, y float64, n int, scale float64) {
	for i := 0; i < n; i++ {
		a := w.rng.Float64() * 2 * math.Pi
		d := w.rng.Float64() * 14 * scale
		life := 0.4 + 0.6*w.rng.Float64()
		w.addParticle(render.Particle{
			X: x + math.Cos(a)*d, Y: y + math.Sin(a)*d,
			Radius: (3 + 4*w.rng.Float64()) * scale,
			Color:  particlePalette[w.rng.Intn(3)],
			Life:   life, MaxLife: life,
		})
	}
}

func nearestPalette(c color.RGBA) color.RGBA {
	best, bestD := particlePalette[0], math.MaxFloat64
	for _, p := range particlePalette {
		dr, dg, db := float64(c.R)-float64(p.R), float64(c.G)-float64(p.G), float64(c.B)-float64(p.B)
		if d := dr*dr + dg*dg + db*db; d < bestD {
			best, bestD = p, d
		}
	}
	return best
}

func (w *World) stepParticles(dt float64) {
	kept := w.particles[:0]
	for _, p := range w.particles {
		p.Life -= dt
		if p.Life <= 0 {
			continue
		}
		p.Y -= 6 * dt
		kept = append(kept, p)
	}
	w.particles = kept

	live := 0
	for i := range w.particles {
		if w.particles[i].MaxLife >= ambientLife {
			live++
		}
	}
	for ; live < w.ambient && len(w.particles) < maxParticles; live++ {
		w.particles = append(w.particles, render.Particle{
			X: w.rng.Float64() * w.Width, Y: w.rng.Float64() * w.Height,
			Radius: 2 + 3*w.rng.Float64(),
			Color:  particlePalette[3+w.rng.Intn(2)],
			Life:   ambientLife, MaxLife: ambientLife,
		})
	}
}

// ambientLife marks background motes; bursts never live this long.
const ambientLife = 6.0

func (w *World) stepTexts(dt float64) {
	kept := w.texts[:0]
	for _, t := range w.texts {
		t.Life -= dt
		if t.Life > 0 {
			kept = append(kept, t)
		}
	}
	w.texts = kept
}

// Snapshot copies the world into a read-only render view for cam.
func (w *World) Snapshot(cam render.Camera) *render.Snapshot {
	snap := &render.Snapshot{
		Camera:      cam,
		Time:        w.time,
		Terrain:     w.terrain,
		Settings:    w.Settings,
		TurretSpots: append([]render.TurretSpot(nil), w.spots...),
		Particles:   append([]render.Particle(nil), w.particles...),
		BaseDrop: render.BaseDropState{
			Active:   w.drop.active,
			InFlight: w.drop.active && w.drop.timer > dropSettle,
		},
		Status: render.PlayerStatus{Reloading: w.reloadTimer > 0},
	}
	snap.FloatingTexts = append([]render.FloatingText(nil), w.texts...)
	snap.Bases = []render.Entity{w.base}
	player := w.player
	snap.Player = &player

	snap.Turrets = make([]render.Entity, len(w.turrets))
	for i := range w.turrets {
		snap.Turrets[i] = w.turrets[i].Entity
	}
	snap.Allies = make([]render.Entity, len(w.allies))
	for i := range w.allies {
		snap.Allies[i] = w.allies[i].Entity
	}
	snap.Enemies = make([]render.Entity, len(w.enemies))
	for i := range w.enemies {
		snap.Enemies[i] = w.enemies[i].Entity
	}
	snap.Projectiles = make([]render.Projectile, len(w.projectiles))
	for i := range w.projectiles {
		snap.Projectiles[i] = w.projectiles[i].Projectile
	}
	return snap
}
