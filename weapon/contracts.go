package weapon

import (
	"time"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/gunplay/pose"
	"github.com/milk9111/gunplay/schedule"
)

// Owner is the view of the holder handed to an equipped Instance.
type Owner interface {
	// StartReloading requests a reload, e.g. when the clip runs dry.
	StartReloading()
}

// Instance is an equipped weapon. It owns its ammunition, its firing cadence
// and its pose hierarchy.
type Instance interface {
	Initialize(owner Owner, aim AimProvider)
	StartFiringWeapon()
	StopFiringWeapon()
	StartReloading()
	StopReloading()
	BulletsInClip() int
	BulletsAvailable() int
	WeaponType() Type
	GripLocation() Locator
}

// Locator is anything with a world position that may change between reads.
type Locator interface {
	WorldPosition() cp.Vector
}

// Spawned is an object produced by an AttachmentProvider. It may or may not
// carry a weapon instance.
type Spawned interface {
	WeaponInstance() (Instance, bool)
}

// AttachmentProvider spawns a prototype under a socket.
type AttachmentProvider interface {
	Spawn(prototype string, socket *pose.Node) (Spawned, bool)
}

// PlayerFlags is the state shared with the locomotion controller. The holder
// is the only writer of both flags.
type PlayerFlags interface {
	IsFiring() bool
	SetFiring(v bool)
	IsReloading() bool
	SetReloading(v bool)
}

// AimProvider reports the tracked aim point in screen pixels.
type AimProvider interface {
	CurrentAimPosition() cp.Vector
}

// Projector maps screen pixels to normalized viewport coordinates.
type Projector interface {
	ScreenToViewport(screen cp.Vector) cp.Vector
}

// AnimationSink receives animation parameters and IK overrides.
type AnimationSink interface {
	SetFloat(name string, v float64)
	SetBool(name string, v bool)
	SetInteger(name string, v int)
	Bool(name string) bool
	SetIKPositionWeight(goal IKGoal, weight float64)
	SetIKPosition(goal IKGoal, pos cp.Vector)
}

// BoolWatcher is an optional AnimationSink capability that reports changes
// of a boolean parameter.
type BoolWatcher interface {
	WatchBool(name string, fn func(v bool)) (cancel func())
}

// InputSource delivers discrete input events. Each subscription returns its
// own unsubscribe func.
type InputSource interface {
	OnFire(fn func(pressed bool)) (unsubscribe func())
	OnLook(fn func()) (unsubscribe func())
	OnReload(fn func()) (unsubscribe func())
}

// Scheduler runs repeating callbacks on the game loop.
type Scheduler interface {
	InvokeRepeating(delay, period time.Duration, fn func()) *schedule.Task
}
