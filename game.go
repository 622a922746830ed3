package main

import (
	"fmt"
	"image/color"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/gunplay/anim"
	"github.com/milk9111/gunplay/camera"
	"github.com/milk9111/gunplay/config"
	"github.com/milk9111/gunplay/firearm"
	"github.com/milk9111/gunplay/input"
	"github.com/milk9111/gunplay/player"
	"github.com/milk9111/gunplay/pose"
	"github.com/milk9111/gunplay/prefabs"
	"github.com/milk9111/gunplay/schedule"
	"github.com/milk9111/gunplay/weapon"
	"github.com/rs/zerolog"
	"golang.org/x/image/colornames"
)

const (
	walkSpeed   = 180.0
	maxFrameDt  = 100 * time.Millisecond
	bodyWidth   = 24.0
	bodyHeight  = 64.0
	shoulderOff = 18.0
)

var loadoutKeys = []ebiten.Key{
	ebiten.Key1, ebiten.Key2, ebiten.Key3, ebiten.Key4, ebiten.Key5,
	ebiten.Key6, ebiten.Key7, ebiten.Key8, ebiten.Key9,
}

type Game struct {
	log    zerolog.Logger
	cfg    config.Config
	debug  bool
	frames int
	last   time.Time
	paused bool

	tasks      *schedule.Scheduler
	animator   *anim.Animator
	input      *input.Map
	camera     *camera.Camera
	controller *player.Controller
	holder     *weapon.Holder
	armory     *firearm.Armory

	body     *pose.Node
	shoulder *pose.Node
	current  string

	projectiles *Projectiles
	watcher     *prefabs.Watcher
	hud         *HUD
}

func NewGame(log zerolog.Logger, cfg config.Config, debug bool) *Game {
	now := time.Now()
	w, h := cfg.Window.Width, cfg.Window.Height

	g := &Game{
		log:         log,
		cfg:         cfg,
		debug:       debug,
		last:        now,
		tasks:       schedule.NewScheduler(),
		animator:    anim.NewAnimator(log),
		input:       input.NewMap(),
		camera:      camera.NewCamera(w, h),
		controller:  player.NewController(player.NewCrosshair()),
		projectiles: &Projectiles{},
	}
	g.tasks.Tick(now)

	sampler := weapon.NewAimSampler(g.controller.Crosshair, g.camera)
	g.holder = weapon.NewHolder(log, cfg.Holder(), g.animator, g.controller, sampler, g.tasks)
	g.animator.OnIK(g.holder.OnAnimatorIK)
	g.holder.Enable(g.input)

	g.armory = firearm.NewArmory(log, g.tasks)
	g.armory.OnShot = g.projectiles.Spawn

	g.body = pose.NewNode("body", cp.Vector{X: float64(w) / 4, Y: float64(h) * 0.65}, 0)
	g.shoulder = pose.NewNode("shoulder", cp.Vector{X: 0, Y: -shoulderOff}, 0)
	g.shoulder.SetParent(g.body)

	g.hud = NewHUD(cfg.Weapon.Loadout, g.equip)
	g.equip(cfg.Weapon.Prefab)

	if cfg.Prefabs.Watch {
		watcher, err := prefabs.NewWatcher(cfg.Prefabs.Debounce)
		if err != nil {
			log.Warn().Err(err).Str("dir", prefabs.Dir).Msg("prefab hot reload disabled")
		} else {
			g.watcher = watcher
		}
	}

	return g
}

// equip attaches the named prefab to the shoulder socket and binds its reload
// clip. Props and broken prefabs leave the player unarmed.
func (g *Game) equip(name string) {
	g.current = ""
	if !g.holder.Attach(g.armory, name, g.shoulder) {
		return
	}
	g.current = name
	if gun, ok := g.holder.Weapon().(*firearm.Gun); ok {
		def := gun.ReloadAnimation()
		g.animator.BindClip(weapon.ParamIsReloading, anim.Clip{Name: def.Name, FrameCount: def.FrameCount, FPS: def.FPS})
	}
}

func (g *Game) Close() {
	g.holder.Close()
	if g.watcher != nil {
		_ = g.watcher.Close()
	}
}

func (g *Game) Update() error {
	g.frames++
	now := time.Now()
	dt := now.Sub(g.last)
	if dt > maxFrameDt {
		dt = maxFrameDt
	}
	g.last = now

	if inpututil.IsKeyJustPressed(ebiten.KeyF12) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.setPaused(!g.paused)
	}

	g.hud.UI.Update()
	if g.paused {
		return nil
	}

	g.drainPrefabChanges()
	for i, key := range loadoutKeys {
		if i < len(g.cfg.Weapon.Loadout) && inpututil.IsKeyJustPressed(key) {
			g.equip(g.cfg.Weapon.Loadout[i])
		}
	}

	g.walk(dt)
	state := pollInput(g.hud.Contains)
	cursor := cp.Vector{X: state.CursorX, Y: state.CursorY}
	g.controller.Crosshair.Track(cursor)
	g.aimShoulder(cursor)
	g.input.Update(state)

	g.tasks.Tick(now)
	if gun, ok := g.holder.Weapon().(*firearm.Gun); ok {
		gun.Update(dt)
	}
	g.animator.Update(dt)

	sw, sh := g.camera.ScreenSize()
	g.projectiles.Update(dt, sw, sh)
	g.hud.Set(g.snapshot())
	return nil
}

// setPaused releases the trigger on pause so a held button does not keep
// firing behind the menu.
func (g *Game) setPaused(paused bool) {
	g.paused = paused
	if paused {
		g.holder.Disable()
		g.holder.OnFire(false)
		return
	}
	g.holder.Enable(g.input)
}

func (g *Game) drainPrefabChanges() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case change, ok := <-g.watcher.Changes:
			if !ok {
				g.watcher = nil
				return
			}
			g.log.Info().Str("file", change.Name).Msg("prefab changed, re-equipping")
			if g.current != "" {
				g.equip(g.current)
			}
		case err, ok := <-g.watcher.Errors:
			if ok {
				g.log.Warn().Err(err).Msg("prefab watcher")
			}
		default:
			return
		}
	}
}

func (g *Game) walk(dt time.Duration) {
	var dir float64
	if ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		dir--
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		dir++
	}
	if dir == 0 {
		return
	}
	pos := g.body.WorldPosition()
	sw, _ := g.camera.ScreenSize()
	pos.X += dir * walkSpeed * g.controller.MoveSpeedScale() * dt.Seconds()
	pos.X = math.Max(bodyWidth, math.Min(sw-bodyWidth, pos.X))
	g.body.SetLocal(pos, 0)
}

// aimShoulder rotates the weapon socket toward the cursor so the grip target
// sweeps with the aim.
func (g *Game) aimShoulder(cursor cp.Vector) {
	d := cursor.Sub(g.shoulder.WorldPosition())
	if d.Length() == 0 {
		return
	}
	g.shoulder.SetLocal(cp.Vector{X: 0, Y: -shoulderOff}, math.Atan2(d.Y, d.X))
}

func (g *Game) snapshot() hudSnapshot {
	s := hudSnapshot{
		Weapon:    g.current,
		Armed:     g.holder.Armed(),
		Firing:    g.holder.Firing(),
		Reloading: g.holder.Reloading(),
		Shots:     g.projectiles.fired,
	}
	if inst := g.holder.Weapon(); inst != nil {
		s.Clip = inst.BulletsInClip()
		s.Available = inst.BulletsAvailable()
	}
	s.Progress, _ = g.animator.Progress(weapon.ParamIsReloading)
	return s
}

// pollInput reads the devices. overUI reports whether a screen point lies on
// an interface panel; only mouse clicks there are handed to the panel.
func pollInput(overUI func(x, y int) bool) input.State {
	mx, my := ebiten.CursorPosition()
	click := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	s := input.State{
		Fire:     click || ebiten.IsKeyPressed(ebiten.KeySpace),
		Reload:   ebiten.IsKeyPressed(ebiten.KeyR),
		CursorX:  float64(mx),
		CursorY:  float64(my),
		HasMouse: true,
	}
	s.PointerOverUI = click && overUI(mx, my)
	for _, id := range ebiten.AppendGamepadIDs(nil) {
		if !ebiten.IsStandardGamepadLayoutAvailable(id) {
			continue
		}
		s.Fire = s.Fire || ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonFrontBottomRight)
		s.Reload = s.Reload || ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonRightLeft)
	}
	return s
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(colornames.Darkslategray)

	sw, sh := g.camera.ScreenSize()
	floor := g.body.WorldPosition().Y + bodyHeight/2
	vector.FillRect(screen, 0, float32(floor), float32(sw), float32(sh-floor), colornames.Dimgray, false)

	body := g.body.WorldPosition()
	vector.FillRect(screen, float32(body.X-bodyWidth/2), float32(body.Y-bodyHeight/2), bodyWidth, bodyHeight, colornames.Steelblue, false)

	g.drawWeapon(screen)
	g.drawArm(screen)
	g.projectiles.Draw(screen)

	cross := g.controller.Crosshair.CurrentAimPosition()
	vector.StrokeCircle(screen, float32(cross.X), float32(cross.Y), 8, 1.5, colornames.White, true)

	g.hud.UI.Draw(screen)

	if g.debug {
		ebitenutil.DebugPrint(screen, fmt.Sprintf(
			"FPS: %.2f  tasks: %d\nAimHorizontal: %.3f  AimVertical: %.3f\nspeed scale: %.2f",
			ebiten.ActualFPS(), g.tasks.Len(),
			g.animator.Float(weapon.ParamAimHorizontal), g.animator.Float(weapon.ParamAimVertical),
			g.controller.MoveSpeedScale(),
		))
	}
	if g.paused {
		ebitenutil.DebugPrintAt(screen, "Paused", int(sw)/2-18, int(sh)/2)
	}
}

func (g *Game) drawWeapon(screen *ebiten.Image) {
	gun, ok := g.holder.Weapon().(*firearm.Gun)
	if !ok {
		return
	}
	root := gun.Root().WorldPosition()
	muzzle := gun.Muzzle().WorldPosition()
	clr := color.Color(colornames.Lightgrey)
	if g.holder.Reloading() {
		clr = colornames.Orange
	}
	vector.StrokeLine(screen, float32(root.X), float32(root.Y), float32(muzzle.X), float32(muzzle.Y), 5, clr, true)
}

// drawArm draws the off arm from the shoulder to the IK target written by the
// last animator pass.
func (g *Game) drawArm(screen *ebiten.Image) {
	target, ok := g.animator.IK(weapon.IKGoalLeftHand)
	if !ok || target.Weight == 0 {
		return
	}
	shoulder := g.shoulder.WorldPosition()
	vector.StrokeLine(screen, float32(shoulder.X), float32(shoulder.Y), float32(target.Position.X), float32(target.Position.Y), 3, colornames.Peachpuff, true)
	vector.FillCircle(screen, float32(target.Position.X), float32(target.Position.Y), 3, colornames.Peachpuff, true)
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	w, h := g.camera.ScreenSize()
	return w, h
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}
