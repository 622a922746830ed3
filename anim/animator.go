package anim

import (
	"math"
	"sort"
	"time"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/gunplay/weapon"
	"github.com/rs/zerolog"
)

// Clip is a frame-based animation. Frames advance at FPS; a Clip that does
// not loop ends after FrameCount frames.
type Clip struct {
	Name       string
	FrameCount int
	FPS        float64
}

// Duration returns how long one pass of the clip takes.
func (c Clip) Duration() time.Duration {
	if c.FrameCount <= 0 {
		return 0
	}
	fps := c.FPS
	if fps <= 0 {
		fps = 12
	}
	return time.Duration(float64(c.FrameCount) / fps * float64(time.Second))
}

// IKTarget is the override requested for one goal during the current pass.
type IKTarget struct {
	Weight   float64
	Position cp.Vector
}

type playback struct {
	clip    Clip
	elapsed time.Duration
}

// Animator stores animation parameters, plays clips bound to boolean
// parameters and runs IK passes. A clip bound to a parameter starts when the
// parameter turns true and clears it when the clip ends.
type Animator struct {
	log zerolog.Logger

	floats map[string]float64
	bools  map[string]bool
	ints   map[string]int
	ik     map[weapon.IKGoal]IKTarget

	clips   map[string]Clip
	playing map[string]*playback

	watchers  map[string]map[int]func(bool)
	nextWatch int

	ikHandlers []func(layer int)
}

func NewAnimator(log zerolog.Logger) *Animator {
	return &Animator{
		log:      log.With().Str("component", "animator").Logger(),
		floats:   map[string]float64{},
		bools:    map[string]bool{},
		ints:     map[string]int{},
		ik:       map[weapon.IKGoal]IKTarget{},
		clips:    map[string]Clip{},
		playing:  map[string]*playback{},
		watchers: map[string]map[int]func(bool){},
	}
}

// BindClip plays clip whenever the boolean parameter param turns true.
func (a *Animator) BindClip(param string, clip Clip) {
	a.clips[param] = clip
}

// OnIK registers a callback for every IK pass.
func (a *Animator) OnIK(fn func(layer int)) {
	if fn == nil {
		return
	}
	a.ikHandlers = append(a.ikHandlers, fn)
}

func (a *Animator) SetFloat(name string, v float64) {
	a.floats[name] = v
}

func (a *Animator) Float(name string) float64 {
	return a.floats[name]
}

func (a *Animator) SetInteger(name string, v int) {
	a.ints[name] = v
}

func (a *Animator) Integer(name string) int {
	return a.ints[name]
}

func (a *Animator) SetBool(name string, v bool) {
	prev := a.bools[name]
	a.bools[name] = v
	if prev == v {
		return
	}

	if clip, ok := a.clips[name]; ok {
		if v {
			a.playing[name] = &playback{clip: clip}
			a.log.Debug().Str("param", name).Str("clip", clip.Name).Dur("duration", clip.Duration()).Msg("clip started")
		} else {
			delete(a.playing, name)
		}
	}
	a.notify(name, v)
}

func (a *Animator) Bool(name string) bool {
	return a.bools[name]
}

func (a *Animator) SetIKPositionWeight(goal weapon.IKGoal, weight float64) {
	t := a.ik[goal]
	t.Weight = math.Max(0, math.Min(1, weight))
	a.ik[goal] = t
}

func (a *Animator) SetIKPosition(goal weapon.IKGoal, pos cp.Vector) {
	t := a.ik[goal]
	t.Position = pos
	a.ik[goal] = t
}

// IK returns the override for goal from the last pass.
func (a *Animator) IK(goal weapon.IKGoal) (IKTarget, bool) {
	t, ok := a.ik[goal]
	return t, ok
}

// WatchBool calls fn every time the parameter changes value.
func (a *Animator) WatchBool(name string, fn func(v bool)) func() {
	if fn == nil {
		return func() {}
	}
	a.nextWatch++
	id := a.nextWatch
	if a.watchers[name] == nil {
		a.watchers[name] = map[int]func(bool){}
	}
	a.watchers[name][id] = fn
	return func() {
		delete(a.watchers[name], id)
	}
}

// Progress reports how far the clip bound to param has played, in [0,1].
func (a *Animator) Progress(param string) (float64, bool) {
	p, ok := a.playing[param]
	if !ok {
		return 0, false
	}
	d := p.clip.Duration()
	if d <= 0 {
		return 1, true
	}
	return math.Min(1, float64(p.elapsed)/float64(d)), true
}

// Update advances playing clips by dt, then runs the IK pass.
func (a *Animator) Update(dt time.Duration) {
	if dt < 0 {
		dt = 0
	}

	var finished []string
	for param, p := range a.playing {
		p.elapsed += dt
		if p.elapsed >= p.clip.Duration() {
			finished = append(finished, param)
		}
	}
	sort.Strings(finished)
	for _, param := range finished {
		a.log.Debug().Str("param", param).Msg("clip finished")
		a.SetBool(param, false)
	}

	a.ik = map[weapon.IKGoal]IKTarget{}
	for _, fn := range a.ikHandlers {
		fn(0)
	}
}

func (a *Animator) notify(name string, v bool) {
	ws := a.watchers[name]
	if len(ws) == 0 {
		return
	}
	ids := make([]int, 0, len(ws))
	for id := range ws {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	for _, id := range ids {
		if fn, ok := ws[id]; ok {
			fn(v)
		}
	}
}
