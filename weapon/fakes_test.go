package weapon

import (
	"time"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/gunplay/pose"
	"github.com/milk9111/gunplay/schedule"
	"github.com/rs/zerolog"
)

var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

type fakeAnim struct {
	floats map[string]float64
	bools  map[string]bool
	ints   map[string]int
	writes []string

	ikWeight map[IKGoal]float64
	ikPos    map[IKGoal]cp.Vector
}

func newFakeAnim() *fakeAnim {
	return &fakeAnim{
		floats:   map[string]float64{},
		bools:    map[string]bool{},
		ints:     map[string]int{},
		ikWeight: map[IKGoal]float64{},
		ikPos:    map[IKGoal]cp.Vector{},
	}
}

func (a *fakeAnim) SetFloat(name string, v float64) {
	a.floats[name] = v
	a.writes = append(a.writes, name)
}

func (a *fakeAnim) SetBool(name string, v bool) {
	a.bools[name] = v
	a.writes = append(a.writes, name)
}

func (a *fakeAnim) SetInteger(name string, v int) {
	a.ints[name] = v
	a.writes = append(a.writes, name)
}

func (a *fakeAnim) Bool(name string) bool { return a.bools[name] }

func (a *fakeAnim) SetIKPositionWeight(goal IKGoal, weight float64) { a.ikWeight[goal] = weight }

func (a *fakeAnim) SetIKPosition(goal IKGoal, pos cp.Vector) { a.ikPos[goal] = pos }

// watchingAnim adds change notification on top of fakeAnim.
type watchingAnim struct {
	*fakeAnim
	watchers map[int]func(bool)
	next     int
}

func newWatchingAnim() *watchingAnim {
	return &watchingAnim{fakeAnim: newFakeAnim(), watchers: map[int]func(bool){}}
}

func (a *watchingAnim) WatchBool(name string, fn func(v bool)) func() {
	a.next++
	id := a.next
	a.watchers[id] = fn
	return func() { delete(a.watchers, id) }
}

func (a *watchingAnim) finishClip() {
	a.bools[ParamIsReloading] = false
	for _, fn := range a.watchers {
		fn(false)
	}
}

type fakePlayer struct {
	firing    bool
	reloading bool
}

func (p *fakePlayer) IsFiring() bool { return p.firing }
func (p *fakePlayer) SetFiring(v bool) { p.firing = v }
func (p *fakePlayer) IsReloading() bool { return p.reloading }
func (p *fakePlayer) SetReloading(v bool) { p.reloading = v }

type fakeWeapon struct {
	clip      int
	available int
	kind      Type
	grip      *pose.Node

	owner       Owner
	aim         AimProvider
	startFire   int
	stopFire    int
	startReload int
	stopReload  int
	released    bool
}

func (w *fakeWeapon) Initialize(owner Owner, aim AimProvider) {
	w.owner = owner
	w.aim = aim
}

func (w *fakeWeapon) StartFiringWeapon() { w.startFire++ }
func (w *fakeWeapon) StopFiringWeapon() { w.stopFire++ }
func (w *fakeWeapon) StartReloading() { w.startReload++ }
func (w *fakeWeapon) StopReloading() { w.stopReload++ }
func (w *fakeWeapon) BulletsInClip() int { return w.clip }
func (w *fakeWeapon) BulletsAvailable() int { return w.available }
func (w *fakeWeapon) WeaponType() Type { return w.kind }
func (w *fakeWeapon) GripLocation() Locator { return w.grip }
func (w *fakeWeapon) Release() { w.released = true }

type fakeSpawned struct {
	inst     Instance
	released bool
}

func (s *fakeSpawned) WeaponInstance() (Instance, bool) { return s.inst, s.inst != nil }
func (s *fakeSpawned) Release() { s.released = true }

type fakeProvider struct {
	spawned *fakeSpawned
	calls   int
	socket  *pose.Node
}

func (p *fakeProvider) Spawn(prototype string, socket *pose.Node) (Spawned, bool) {
	p.calls++
	p.socket = socket
	if p.spawned == nil {
		return nil, false
	}
	return p.spawned, true
}

type fakeAim struct{ pos cp.Vector }

func (a *fakeAim) CurrentAimPosition() cp.Vector { return a.pos }

type scaleProjector struct{ w, h float64 }

func (p scaleProjector) ScreenToViewport(s cp.Vector) cp.Vector {
	return cp.Vector{X: s.X / p.w, Y: s.Y / p.h}
}

type fakeInput struct {
	fire   map[int]func(bool)
	look   map[int]func()
	reload map[int]func()
	next   int
}

func newFakeInput() *fakeInput {
	return &fakeInput{fire: map[int]func(bool){}, look: map[int]func(){}, reload: map[int]func(){}}
}

func (in *fakeInput) OnFire(fn func(bool)) func() {
	in.next++
	id := in.next
	in.fire[id] = fn
	return func() { delete(in.fire, id) }
}

func (in *fakeInput) OnLook(fn func()) func() {
	in.next++
	id := in.next
	in.look[id] = fn
	return func() { delete(in.look, id) }
}

func (in *fakeInput) OnReload(fn func()) func() {
	in.next++
	id := in.next
	in.reload[id] = fn
	return func() { delete(in.reload, id) }
}

func (in *fakeInput) pressFire(v bool) {
	for _, fn := range in.fire {
		fn(v)
	}
}

func (in *fakeInput) moveLook() {
	for _, fn := range in.look {
		fn()
	}
}

func (in *fakeInput) requestReload() {
	for _, fn := range in.reload {
		fn()
	}
}

func (in *fakeInput) subscribers() int {
	return len(in.fire) + len(in.look) + len(in.reload)
}

type rig struct {
	holder *Holder
	anim   *fakeAnim
	player *fakePlayer
	weapon *fakeWeapon
	aim    *fakeAim
	tasks  *schedule.Scheduler
	socket *pose.Node
	now    time.Time
}

func newRig(clip, available int, cfg Config) *rig {
	return newRigWithAnim(clip, available, cfg, newFakeAnim(), nil)
}

func newRigWithAnim(clip, available int, cfg Config, anim *fakeAnim, sink AnimationSink) *rig {
	if sink == nil {
		sink = anim
	}
	socket := pose.NewNode("socket", cp.Vector{X: 10, Y: 20}, 0)
	grip := pose.NewNode("grip", cp.Vector{X: 3, Y: 1}, 0)
	grip.SetParent(socket)

	r := &rig{
		anim:   anim,
		player: &fakePlayer{},
		weapon: &fakeWeapon{clip: clip, available: available, kind: TypeRifle, grip: grip},
		aim:    &fakeAim{pos: cp.Vector{X: 640, Y: 360}},
		tasks:  schedule.NewScheduler(),
		socket: socket,
		now:    epoch,
	}
	r.tasks.Tick(r.now)
	sampler := NewAimSampler(r.aim, scaleProjector{w: 1280, h: 720})
	r.holder = NewHolder(zerolog.Nop(), cfg, sink, r.player, sampler, r.tasks)
	r.holder.Attach(&fakeProvider{spawned: &fakeSpawned{inst: r.weapon}}, "rifle", socket)
	return r
}

func (r *rig) advance(d time.Duration) {
	r.now = r.now.Add(d)
	r.tasks.Tick(r.now)
}
