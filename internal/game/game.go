package game

import (
	"fmt"
	"image/color"
	"log/slog"

	"github.com/atotto/clipboard"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/Garsondee/Drop-Siege/internal/render"
	"github.com/Garsondee/Drop-Siege/internal/tuning"
)

// borderWidth is the pixel gap between the window edge and the viewport.
const borderWidth = 24

// hudScale is the integer upscale factor applied to all HUD text (2 = 2× larger).
const hudScale = 2

// panSpeed is the camera speed in world pixels per tick.
const panSpeed = 9.0

// statusSeconds is how long a one-shot HUD status line stays up.
const statusSeconds = 3.0

// Config is everything the game shell needs from main.
type Config struct {
	ViewWidth, ViewHeight int
	Seed                  int64
	Biome                 Biome
	Font                  *text.GoTextFaceSource
	Tuning                *tuning.Table
	Watcher               *tuning.Watcher // optional hot reload
	Logger                *slog.Logger
}

// Game is the interactive shell: it steps the world, draws it through the
// render pipeline and shows the HUD and event panel around it.
type Game struct {
	width  int
	height int
	viewW  int
	viewH  int
	offX   int
	offY   int

	world    *World
	pipeline *render.Pipeline
	panel    *EventPanel
	watcher  *tuning.Watcher
	log      *slog.Logger

	// Persistent viewport the pipeline draws into; also its allocator.
	view     *ebiten.Image
	viewSurf *render.EbitenSurface
	// Offscreen buffer for HUD text, rendered at 1x then blitted at hudScale.
	hudBuf *ebiten.Image

	// Camera centre in world space.
	camX float64
	camY float64

	prevKeys map[ebiten.Key]bool
	showHUD  bool
	paused   bool

	lastStats   render.FrameStats
	status      string
	statusTimer float64
}

// New builds the game shell.
func New(cfg Config) *Game {
	if cfg.ViewWidth <= 0 {
		cfg.ViewWidth = 1280
	}
	if cfg.ViewHeight <= 0 {
		cfg.ViewHeight = 800
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Tuning == nil {
		cfg.Tuning = tuning.Default()
	}

	g := &Game{
		width:    borderWidth + cfg.ViewWidth + borderWidth + panelWidth,
		height:   borderWidth + cfg.ViewHeight + borderWidth,
		viewW:    cfg.ViewWidth,
		viewH:    cfg.ViewHeight,
		offX:     borderWidth,
		offY:     borderWidth,
		panel:    NewEventPanel(),
		watcher:  cfg.Watcher,
		log:      cfg.Logger,
		prevKeys: make(map[ebiten.Key]bool),
		showHUD:  true,
	}
	g.world = NewWorld(
		WithSeed(cfg.Seed),
		WithBiome(cfg.Biome),
		WithTurrets(4),
		WithAllies(2, 2),
		WithBaseDrop(),
	)
	g.view = ebiten.NewImage(g.viewW, g.viewH)
	g.viewSurf = render.NewEbitenSurface(g.view, cfg.Font)
	renderCfg := render.NewConfig(append(cfg.Tuning.Options(), render.WithLog(render.NewRenderLog(512)))...)
	g.pipeline = render.NewPipeline(g.viewSurf, render.DefaultRegistry(), renderCfg)
	g.hudBuf = ebiten.NewImage(g.width/hudScale, g.height/hudScale)

	g.camX, g.camY = g.world.BaseCenter()
	return g
}

func (g *Game) Update() error {
	g.handleInput()
	g.applyTuning()

	if g.statusTimer > 0 {
		g.statusTimer -= tickDT
	}
	if !g.paused {
		g.world.Step()
	}
	g.panel.Sync(g.pipeline.Log())
	return nil
}

// applyTuning installs the newest reloaded table, if any.
func (g *Game) applyTuning() {
	if g.watcher == nil {
		return
	}
	select {
	case t := <-g.watcher.Updates():
		g.pipeline.ApplyTuning(t.Thresholds(), t.NeverCacheKinds())
		g.setStatus("tuning reloaded")
	default:
	}
}

func (g *Game) setStatus(msg string) {
	g.status = msg
	g.statusTimer = statusSeconds
}

// pressed reports a key that went down this tick (edge-triggered).
func (g *Game) pressed(cur map[ebiten.Key]bool, k ebiten.Key) bool {
	cur[k] = ebiten.IsKeyPressed(k)
	return cur[k] && !g.prevKeys[k]
}

// handleInput processes toggles (edge-triggered) and camera panning.
func (g *Game) handleInput() {
	currentKeys := map[ebiten.Key]bool{}
	w := g.world

	if g.pressed(currentKeys, ebiten.KeyM) {
		w.Settings.Mode = render.NextMode(w.Settings.Mode)
		g.setStatus("mode: " + string(w.Settings.Mode))
	}
	if g.pressed(currentKeys, ebiten.KeyH) {
		w.Settings.ShowShadows = !w.Settings.ShowShadows
	}
	if g.pressed(currentKeys, ebiten.KeyB) {
		w.Settings.AnimatedBackground = !w.Settings.AnimatedBackground
	}
	if g.pressed(currentKeys, ebiten.KeyR) {
		w.Regenerate()
	}
	if g.pressed(currentKeys, ebiten.KeyG) {
		w.Biome = (w.Biome + 1) % biomeCount
		w.Regenerate()
		g.setStatus("biome: " + w.Biome.String())
	}
	if g.pressed(currentKeys, ebiten.KeyX) {
		g.pipeline.ClearCache()
	}
	if g.pressed(currentKeys, ebiten.KeyN) {
		w.spawnWave()
	}
	if g.pressed(currentKeys, ebiten.KeyT) {
		if !w.AddTurret(turretOrder[len(w.turrets)%len(turretOrder)]) {
			g.setStatus("no free build spot")
		}
	}
	if g.pressed(currentKeys, ebiten.KeyC) {
		g.copyReport()
	}
	if g.pressed(currentKeys, ebiten.KeyP) {
		g.paused = !g.paused
	}
	if g.pressed(currentKeys, ebiten.KeyTab) {
		g.showHUD = !g.showHUD
	}

	if ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		g.camX -= panSpeed
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		g.camX += panSpeed
	}
	if ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyArrowUp) {
		g.camY -= panSpeed
	}
	if ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyArrowDown) {
		g.camY += panSpeed
	}
	g.camX = clampf(g.camX, 0, w.Width)
	g.camY = clampf(g.camY, 0, w.Height)

	g.prevKeys = currentKeys
}

// copyReport puts the current cost window on the system clipboard.
func (g *Game) copyReport() {
	report := g.pipeline.Reporter().WindowSummary().Format() + "\n" + g.pipeline.Log().Format()
	if err := clipboard.WriteAll(report); err != nil {
		g.log.Warn("clipboard write failed", "err", err)
		g.setStatus("clipboard unavailable")
		return
	}
	g.setStatus("report copied")
}

// camera converts the centre-based pan state to the pipeline's top-left view.
func (g *Game) camera() render.Camera {
	return render.Camera{
		X:      g.camX - float64(g.viewW)/2,
		Y:      g.camY - float64(g.viewH)/2,
		Width:  float64(g.viewW),
		Height: float64(g.viewH),
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{R: 10, G: 11, B: 14, A: 255})

	g.viewSurf.Clear()
	g.lastStats = g.pipeline.Render(g.viewSurf, g.world.Snapshot(g.camera()))

	var blit ebiten.DrawImageOptions
	blit.GeoM.Translate(float64(g.offX), float64(g.offY))
	screen.DrawImage(g.view, &blit)
	g.drawVignette(screen)

	ox, oy := float32(g.offX), float32(g.offY)
	vw, vh := float32(g.viewW), float32(g.viewH)
	vector.StrokeRect(screen, ox-1, oy-1, vw+2, vh+2, 2.0, color.RGBA{R: 60, G: 80, B: 110, A: 255}, false)
	vector.StrokeRect(screen, ox-3, oy-3, vw+6, vh+6, 1.0, color.RGBA{R: 40, G: 55, B: 80, A: 100}, false)

	g.panel.Draw(screen, g.offX+g.viewW+g.offX, g.height)

	if g.showHUD {
		g.drawHUD(screen)
	}
}

// drawVignette darkens the edges of the viewport.
func (g *Game) drawVignette(screen *ebiten.Image) {
	ox, oy := float32(g.offX), float32(g.offY)
	gw, gh := float32(g.viewW), float32(g.viewH)

	outer := float32(30)
	outerDark := color.RGBA{A: 70}
	vector.FillRect(screen, ox, oy, gw, outer, outerDark, false)
	vector.FillRect(screen, ox, oy+gh-outer, gw, outer, outerDark, false)
	vector.FillRect(screen, ox, oy, outer, gh, outerDark, false)
	vector.FillRect(screen, ox+gw-outer, oy, outer, gh, outerDark, false)

	inner := float32(90)
	innerDark := color.RGBA{A: 25}
	vector.FillRect(screen, ox, oy, gw, inner, innerDark, false)
	vector.FillRect(screen, ox, oy+gh-inner, gw, inner, innerDark, false)
	vector.FillRect(screen, ox, oy, inner, gh, innerDark, false)
	vector.FillRect(screen, ox+gw-inner, oy, inner, gh, innerDark, false)
}

func (g *Game) Layout(_, _ int) (int, int) {
	return g.width, g.height
}

// World exposes the running simulation.
func (g *Game) World() *World { return g.world }

// Pipeline exposes the render pipeline.
func (g *Game) Pipeline() *render.Pipeline { return g.pipeline }

func clampf(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

// hudLines builds the HUD text; split out so it can be tested headlessly.
func hudLines(w *World, fs render.FrameStats, paused bool, status string) []string {
	simStr := "running"
	if paused {
		simStr = "PAUSED"
	}
	lines := []string{
		fmt.Sprintf("SIM: %s  t=%.1fs  wave %d  kills %d  ore %d", simStr, w.Time(), w.Wave(), w.Kills(), w.Ore()),
		fmt.Sprintf("MODE: %s  LOD%d  enemies %d  particles %d",
			w.Settings.Mode, fs.LOD, w.EnemyCount(), w.ParticleCount()),
		fmt.Sprintf("draw: live %d  cached %d  culled %d  proj %d/%d",
			fs.LiveDraws, fs.SpriteBlits, fs.Culled, fs.ProjectilesCached, fs.ProjectilesLive),
		fmt.Sprintf("glow: %d fetches  %d blits  texts %d", fs.ParticleFetches, fs.ParticleBlits, fs.TextsDrawn),
		fmt.Sprintf("[M] mode  [H] shadows %s  [B] anim bg %s", onOff(w.Settings.ShowShadows), onOff(w.Settings.AnimatedBackground)),
		fmt.Sprintf("[R] new terrain  [G] biome: %s  [X] clear cache", w.Biome),
		"[N] wave  [T] turret  [C] copy report  [P] pause",
		"WASD/arrows=pan  [Tab] HUD",
	}
	if status != "" {
		lines = append(lines, "> "+status)
	}
	return lines
}

// drawHUD renders stats and key hints in the bottom-left corner.
// Text is drawn into hudBuf at 1x then composited onto the screen at hudScale.
func (g *Game) drawHUD(screen *ebiten.Image) {
	status := ""
	if g.statusTimer > 0 {
		status = g.status
	}
	lines := hudLines(g.world, g.lastStats, g.paused, status)

	const lineH = 12 // debug font line height at 1x
	const charW = 6  // debug font char width at 1x
	const padX = 5
	const padY = 4

	maxLen := 0
	for _, l := range lines {
		if len(l) > maxLen {
			maxLen = len(l)
		}
	}
	boxW := float32(maxLen*charW + padX*2)
	boxH := float32(len(lines)*lineH + padY*2)

	bufH := float32(g.height / hudScale)
	bx := float32(g.offX/hudScale + 4)
	by := bufH - boxH - float32(g.offY/hudScale) - 4

	g.hudBuf.Clear()
	vector.FillRect(g.hudBuf, bx, by, boxW, boxH, color.RGBA{R: 6, G: 8, B: 12, A: 200}, false)
	vector.StrokeRect(g.hudBuf, bx, by, boxW, boxH, 1.0, color.RGBA{R: 60, G: 90, B: 130, A: 180}, false)
	vector.StrokeLine(g.hudBuf, bx+1, by+1, bx+boxW-1, by+1, 1.0, color.RGBA{R: 90, G: 130, B: 180, A: 80}, false)

	for i, line := range lines {
		ebitenutil.DebugPrintAt(g.hudBuf, line, int(bx)+padX, int(by)+padY+i*lineH)
	}

	opts := &ebiten.DrawImageOptions{}
	opts.GeoM.Scale(float64(hudScale), float64(hudScale))
	screen.DrawImage(g.hudBuf, opts)
}
