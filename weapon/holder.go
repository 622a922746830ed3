package weapon

import (
	"time"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/gunplay/pose"
	"github.com/rs/zerolog"
)

// DefaultReloadPollPeriod is how often a running reload checks whether the
// animation layer has cleared IsReloading.
const DefaultReloadPollPeriod = 100 * time.Millisecond

// Config tunes a Holder.
type Config struct {
	// ReloadPollPeriod is the completion check interval.
	ReloadPollPeriod time.Duration
	// ResumeFireAfterReload re-enters firing after a reload that started
	// while firing, provided the trigger is still held when it completes.
	ResumeFireAfterReload bool
	// NotifyReloadCompletion finishes reloads from a BoolWatcher
	// notification instead of polling when the sink supports it.
	NotifyReloadCompletion bool
}

func DefaultConfig() Config {
	return Config{ReloadPollPeriod: DefaultReloadPollPeriod}
}

// Releaser is implemented by spawned objects and instances that must unhook
// themselves from the scene when the holder lets go of them.
type Releaser interface {
	Release()
}

// Holder binds an equipped weapon to input, animation and the player's
// firing/reloading flags. All methods must be called from the game loop.
type Holder struct {
	log zerolog.Logger
	cfg Config

	anim    AnimationSink
	player  PlayerFlags
	sampler *AimSampler
	tasks   Scheduler

	weapon Instance
	socket *pose.Node
	grip   Locator

	firing    bool
	reloading bool
	wasFiring bool
	latch     InputLatch

	reload *reloadPoller
	subs   []func()
}

func NewHolder(log zerolog.Logger, cfg Config, anim AnimationSink, player PlayerFlags, sampler *AimSampler, tasks Scheduler) *Holder {
	if cfg.ReloadPollPeriod <= 0 {
		cfg.ReloadPollPeriod = DefaultReloadPollPeriod
	}
	return &Holder{
		log:     log.With().Str("component", "weapon_holder").Logger(),
		cfg:     cfg,
		anim:    anim,
		player:  player,
		sampler: sampler,
		tasks:   tasks,
	}
}

// Attach spawns prototype under socket and equips it. Any previously equipped
// weapon is detached first. Failures leave the holder unarmed and are only
// logged.
func (h *Holder) Attach(provider AttachmentProvider, prototype string, socket *pose.Node) bool {
	h.Detach()
	h.socket = socket

	if provider == nil {
		h.log.Warn().Str("prototype", prototype).Msg("attach: no attachment provider")
		return false
	}
	spawned, ok := provider.Spawn(prototype, socket)
	if !ok || spawned == nil {
		h.log.Warn().Str("prototype", prototype).Msg("attach: spawn failed")
		return false
	}
	inst, ok := spawned.WeaponInstance()
	if !ok || inst == nil {
		h.log.Warn().Str("prototype", prototype).Msg("attach: spawned object has no weapon instance")
		if r, ok := spawned.(Releaser); ok {
			r.Release()
		}
		return false
	}

	h.weapon = inst
	inst.Initialize(h, h.sampler.Provider())
	h.grip = inst.GripLocation()
	h.anim.SetInteger(ParamWeaponType, int(inst.WeaponType()))

	h.log.Info().
		Str("prototype", prototype).
		Stringer("type", inst.WeaponType()).
		Int("clip", inst.BulletsInClip()).
		Int("available", inst.BulletsAvailable()).
		Msg("weapon attached")
	return true
}

// Detach stops firing, ends any reload and lets go of the equipped weapon.
func (h *Holder) Detach() {
	if h.weapon == nil {
		return
	}
	if h.reloading {
		h.cancelReload()
		h.reloading = false
		h.player.SetReloading(false)
		h.anim.SetBool(ParamIsReloading, false)
		h.weapon.StopReloading()
	}
	h.StopFiring()

	if r, ok := h.weapon.(Releaser); ok {
		r.Release()
	}
	h.weapon = nil
	h.grip = nil
	h.wasFiring = false
	h.log.Info().Msg("weapon detached")
}

// Enable subscribes to src. Calling it again while enabled does nothing.
func (h *Holder) Enable(src InputSource) {
	if src == nil || len(h.subs) > 0 {
		return
	}
	h.subs = append(h.subs,
		src.OnFire(h.OnFire),
		src.OnLook(h.OnLook),
		src.OnReload(h.StartReloading),
	)
}

// Disable drops every subscription made by Enable. The fire release would
// no longer arrive, so the latch is released too.
func (h *Holder) Disable() {
	for _, unsubscribe := range h.subs {
		if unsubscribe != nil {
			unsubscribe()
		}
	}
	h.subs = nil
	h.latch.Reset()
}

// Close disables input and detaches the weapon.
func (h *Holder) Close() {
	h.Disable()
	h.Detach()
}

// OnFire maps the fire button level onto the firing state machine.
func (h *Holder) OnFire(pressed bool) {
	h.latch.Set(pressed)
	if pressed {
		h.StartFiring()
		return
	}
	h.StopFiring()
}

// StartFiring enters the firing state unless the weapon is completely out of
// ammunition.
func (h *Holder) StartFiring() {
	if h.weapon == nil {
		return
	}
	if h.weapon.BulletsAvailable() <= 0 && h.weapon.BulletsInClip() <= 0 {
		h.log.Debug().Msg("start firing refused: out of ammunition")
		return
	}

	h.firing = true
	h.player.SetFiring(true)
	h.anim.SetBool(ParamIsFiring, true)
	h.weapon.StartFiringWeapon()
}

// StopFiring leaves the firing state. It is safe to call repeatedly.
func (h *Holder) StopFiring() {
	if h.weapon == nil {
		return
	}
	h.firing = false
	h.player.SetFiring(false)
	h.anim.SetBool(ParamIsFiring, false)
	h.weapon.StopFiringWeapon()
}

// OnLook forwards the projected aim point to the animation layer as is.
func (h *Holder) OnLook() {
	v, ok := h.sampler.Sample()
	if !ok {
		return
	}
	h.anim.SetFloat(ParamAimHorizontal, v.X)
	h.anim.SetFloat(ParamAimVertical, v.Y)
}

// OnAnimatorIK is called by the animation engine once per IK pass and pins
// the off hand to the weapon grip.
func (h *Holder) OnAnimatorIK(layer int) {
	pos, ok := h.CurrentGripWorldPosition()
	if !ok {
		return
	}
	h.anim.SetIKPositionWeight(IKGoalLeftHand, 1)
	h.anim.SetIKPosition(IKGoalLeftHand, pos)
}

// CurrentGripWorldPosition reads the grip target's world position.
func (h *Holder) CurrentGripWorldPosition() (cp.Vector, bool) {
	if h.grip == nil {
		return cp.Vector{}, false
	}
	return h.grip.WorldPosition(), true
}

func (h *Holder) Armed() bool { return h.weapon != nil }

func (h *Holder) Weapon() Instance { return h.weapon }

func (h *Holder) Socket() *pose.Node { return h.socket }

func (h *Holder) Firing() bool { return h.firing }

func (h *Holder) Reloading() bool { return h.reloading }

func (h *Holder) FirePressed() bool { return h.latch.Pressed() }
