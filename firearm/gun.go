package firearm

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/gunplay/pose"
	"github.com/milk9111/gunplay/prefabs"
	"github.com/milk9111/gunplay/schedule"
	"github.com/milk9111/gunplay/weapon"
	"github.com/rs/zerolog"
)

// Shot is one projectile leaving the muzzle. World space is screen space in
// the demo, so aim positions are used as world targets directly.
type Shot struct {
	Weapon   string
	Origin   cp.Vector
	Velocity cp.Vector
}

// Gun is a magazine-fed weapon. It owns its ammunition, its rate of fire and
// its pose hierarchy (root, grip and muzzle nodes).
type Gun struct {
	log   zerolog.Logger
	spec  *prefabs.WeaponSpec
	tasks *schedule.Scheduler
	rng   *rand.Rand

	clipSize int
	clip     int
	reserve  int
	interval time.Duration
	reloader Reloader

	root   *pose.Node
	grip   *pose.Node
	muzzle *pose.Node
	rest   cp.Vector
	kick   float64

	owner weapon.Owner
	aim   weapon.AimProvider

	cadence     *schedule.Task
	nextShot    time.Time
	triggerHeld bool
	reloading   bool

	// OnShot receives every projectile the gun fires.
	OnShot func(Shot)
}

// NewGun builds a gun from a validated spec with a firearm block. root is
// the weapon's root node, already placed under its socket.
func NewGun(log zerolog.Logger, spec *prefabs.WeaponSpec, root *pose.Node, tasks *schedule.Scheduler, reloader Reloader, seed uint64) *Gun {
	f := spec.Firearm
	if reloader == nil {
		reloader = TopUp{}
	}

	grip := pose.NewNode(spec.Name+"/grip", cp.Vector{X: spec.Grip.X, Y: spec.Grip.Y}, spec.Grip.Radians())
	grip.SetParent(root)
	muzzle := pose.NewNode(spec.Name+"/muzzle", cp.Vector{X: spec.Muzzle.X, Y: spec.Muzzle.Y}, spec.Muzzle.Radians())
	muzzle.SetParent(root)

	return &Gun{
		log:      log.With().Str("weapon", spec.Name).Logger(),
		spec:     spec,
		tasks:    tasks,
		rng:      rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		clipSize: f.ClipSize,
		clip:     f.Clip,
		reserve:  f.Reserve,
		interval: time.Duration(float64(time.Second) / f.RoundsPerSecond),
		reloader: reloader,
		root:     root,
		grip:     grip,
		muzzle:   muzzle,
		rest:     cp.Vector{X: spec.Transform.X, Y: spec.Transform.Y},
	}
}

func (g *Gun) Initialize(owner weapon.Owner, aim weapon.AimProvider) {
	g.owner = owner
	g.aim = aim
}

func (g *Gun) StartFiringWeapon() {
	g.triggerHeld = true
	g.startCadence()
}

func (g *Gun) StopFiringWeapon() {
	g.triggerHeld = false
	g.stopCadence()
}

func (g *Gun) StartReloading() {
	g.reloading = true
	g.stopCadence()
}

// StopReloading completes a reload: ammunition moves into the clip and a
// still-held trigger resumes the cadence.
func (g *Gun) StopReloading() {
	if !g.reloading {
		return
	}
	g.reloading = false

	clip, reserve, err := g.reloader.Transfer(g.clip, g.clipSize, g.reserve)
	if err != nil {
		g.log.Error().Err(err).Msg("reload transfer failed, falling back to top-up")
		clip, reserve, _ = TopUp{}.Transfer(g.clip, g.clipSize, g.reserve)
	}
	g.clip, g.reserve = clip, reserve

	if g.triggerHeld && g.clip > 0 {
		g.startCadence()
	}
}

func (g *Gun) BulletsInClip() int { return g.clip }

func (g *Gun) BulletsAvailable() int { return g.reserve }

func (g *Gun) WeaponType() weapon.Type { return g.spec.Firearm.Type }

func (g *Gun) GripLocation() weapon.Locator { return g.grip }

// Name returns the prefab name.
func (g *Gun) Name() string { return g.spec.Name }

// Root returns the weapon's root node.
func (g *Gun) Root() *pose.Node { return g.root }

// Muzzle returns the node projectiles leave from.
func (g *Gun) Muzzle() *pose.Node { return g.muzzle }

// ReloadAnimation returns the reload clip settings from the prefab.
func (g *Gun) ReloadAnimation() prefabs.AnimationDefSpec { return g.spec.ReloadAnimation }

// Firing reports whether the cadence is running.
func (g *Gun) Firing() bool { return g.cadence != nil }

// Release unhooks the gun from its socket and stops the cadence.
func (g *Gun) Release() {
	g.stopCadence()
	g.triggerHeld = false
	g.root.SetParent(nil)
}

// Update recovers recoil. The root slides back along its local x axis and
// returns at the prefab's recovery rate.
func (g *Gun) Update(dt time.Duration) {
	rate := g.spec.Firearm.Recoil.RecoverPerSecond
	if g.kick > 0 && rate > 0 {
		g.kick = math.Max(0, g.kick-rate*dt.Seconds())
	}
	g.root.SetLocal(cp.Vector{X: g.rest.X - g.kick, Y: g.rest.Y}, g.spec.Transform.Radians())
}

func (g *Gun) startCadence() {
	if g.cadence != nil || g.reloading || g.tasks == nil {
		return
	}
	delay := g.nextShot.Sub(g.tasks.Now())
	if delay < 0 {
		delay = 0
	}
	g.cadence = g.tasks.InvokeRepeating(delay, g.interval, g.fireOnce)
}

func (g *Gun) stopCadence() {
	g.cadence.Cancel()
	g.cadence = nil
}

func (g *Gun) fireOnce() {
	if g.reloading {
		g.stopCadence()
		return
	}
	if g.clip <= 0 {
		g.stopCadence()
		g.requestReload()
		return
	}

	g.clip--
	g.nextShot = g.tasks.Now().Add(g.interval)
	g.emit()
	g.kick += g.spec.Firearm.Recoil.Kick
	g.Update(0)

	if g.clip == 0 {
		g.stopCadence()
		g.requestReload()
	}
}

func (g *Gun) requestReload() {
	if g.owner == nil {
		return
	}
	g.owner.StartReloading()
}

func (g *Gun) emit() {
	if g.OnShot == nil {
		return
	}
	origin := g.muzzle.WorldPosition()
	dir := g.muzzle.World().Vect(cp.Vector{X: 1, Y: 0})
	if g.aim != nil {
		if d := g.aim.CurrentAimPosition().Sub(origin); d.Length() > 0 {
			dir = d
		}
	}
	base := math.Atan2(dir.Y, dir.X)
	spread := g.spec.Firearm.SpreadDegrees * math.Pi / 180
	speed := g.spec.Firearm.MuzzleSpeed

	for i := 0; i < g.spec.Firearm.Pellets; i++ {
		angle := base
		if spread > 0 {
			angle += (g.rng.Float64() - 0.5) * spread
		}
		g.OnShot(Shot{
			Weapon:   g.spec.Name,
			Origin:   origin,
			Velocity: cp.ForAngle(angle).Mult(speed),
		})
	}
}
