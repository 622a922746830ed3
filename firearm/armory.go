package firearm

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/gunplay/pose"
	"github.com/milk9111/gunplay/prefabs"
	"github.com/milk9111/gunplay/schedule"
	"github.com/milk9111/gunplay/weapon"
	"github.com/rs/zerolog"
)

// Rig is a spawned prefab: its root node under the socket and, for armed
// prefabs, the gun driving it.
type Rig struct {
	Spec *prefabs.WeaponSpec
	Root *pose.Node
	Gun  *Gun
}

func (r *Rig) WeaponInstance() (weapon.Instance, bool) {
	if r == nil || r.Gun == nil {
		return nil, false
	}
	return r.Gun, true
}

// Release detaches the rig from its socket.
func (r *Rig) Release() {
	if r.Gun != nil {
		r.Gun.Release()
		return
	}
	r.Root.SetParent(nil)
}

// Armory spawns weapon prefabs onto sockets.
type Armory struct {
	log   zerolog.Logger
	tasks *schedule.Scheduler
	seed  uint64

	// OnShot is handed to every gun the armory spawns.
	OnShot func(Shot)
}

func NewArmory(log zerolog.Logger, tasks *schedule.Scheduler) *Armory {
	return &Armory{log: log, tasks: tasks, seed: 1}
}

// Spawn loads the prototype prefab and places it under socket. A prefab
// without a firearm block spawns as a prop. A firearm whose reload script
// fails to compile falls back to the default top-up.
func (a *Armory) Spawn(prototype string, socket *pose.Node) (weapon.Spawned, bool) {
	spec, err := prefabs.LoadWeaponSpec(prototype)
	if err != nil {
		a.log.Warn().Err(err).Str("prefab", prototype).Msg("spawn failed")
		return nil, false
	}

	root := pose.NewNode(spec.Name, cp.Vector{X: spec.Transform.X, Y: spec.Transform.Y}, spec.Transform.Radians())
	root.SetParent(socket)
	rig := &Rig{Spec: spec, Root: root}
	if spec.Firearm == nil {
		return rig, true
	}

	reloader, err := NewReloader(spec.Firearm)
	if err != nil {
		a.log.Error().Err(err).Str("prefab", prototype).Msg("reload script unavailable, using top-up")
		reloader = TopUp{}
	}

	a.seed++
	rig.Gun = NewGun(a.log, spec, root, a.tasks, reloader, a.seed)
	rig.Gun.OnShot = a.OnShot
	return rig, true
}
