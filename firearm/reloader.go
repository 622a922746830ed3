package firearm

import (
	"context"
	"fmt"
	"time"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/gunplay/prefabs"
)

// ScriptTimeout bounds a single reload script run.
var ScriptTimeout = 50 * time.Millisecond

// Reloader decides how many rounds move from the reserve into the clip when
// a reload completes.
type Reloader interface {
	Transfer(clip, clipSize, available int) (newClip, newAvailable int, err error)
}

// TopUp fills the clip from the reserve, keeping the rounds already loaded.
type TopUp struct{}

func (TopUp) Transfer(clip, clipSize, available int) (int, int, error) {
	need := clipSize - clip
	if need > available {
		need = available
	}
	if need < 0 {
		need = 0
	}
	return clip + need, available - need, nil
}

// NewReloader returns the reloader a firearm prefab asks for: its reload
// script when it names one, TopUp otherwise.
func NewReloader(f *prefabs.FirearmSpec) (Reloader, error) {
	if f == nil || f.ReloadScript == "" {
		return TopUp{}, nil
	}
	r, err := LoadScriptReloader(f.ReloadScript)
	if err != nil {
		return nil, err
	}
	return r, nil
}

// ScriptReloader runs a tengo script with the globals clip, clip_size and
// available; the script assigns the new clip and available values.
type ScriptReloader struct {
	name     string
	compiled *tengo.Compiled
}

// LoadScriptReloader compiles a reload script from the prefabs.
func LoadScriptReloader(name string) (*ScriptReloader, error) {
	src, err := prefabs.LoadScript(name)
	if err != nil {
		return nil, fmt.Errorf("firearm: load reload script %s: %w", name, err)
	}
	return NewScriptReloader(name, src)
}

func NewScriptReloader(name string, src []byte) (*ScriptReloader, error) {
	script := tengo.NewScript(src)
	_ = script.Add("clip", 0)
	_ = script.Add("clip_size", 0)
	_ = script.Add("available", 0)
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("firearm: compile reload script %s: %w", name, err)
	}
	return &ScriptReloader{name: name, compiled: compiled}, nil
}

// Transfer runs the script. Runtime faults and scripts that outlive
// ScriptTimeout come back as errors. Results that create ammunition,
// overfill the clip or go negative are rejected.
func (r *ScriptReloader) Transfer(clip, clipSize, available int) (int, int, error) {
	if err := r.compiled.Set("clip", clip); err != nil {
		return clip, available, err
	}
	if err := r.compiled.Set("clip_size", clipSize); err != nil {
		return clip, available, err
	}
	if err := r.compiled.Set("available", available); err != nil {
		return clip, available, err
	}
	ctx, cancel := context.WithTimeout(context.Background(), ScriptTimeout)
	defer cancel()
	if err := r.compiled.RunContext(ctx); err != nil {
		return clip, available, fmt.Errorf("firearm: run reload script %s: %w", r.name, err)
	}

	newClip := r.compiled.Get("clip").Int()
	newAvailable := r.compiled.Get("available").Int()
	switch {
	case newClip < 0 || newClip > clipSize:
		return clip, available, fmt.Errorf("firearm: reload script %s: clip %d outside [0,%d]", r.name, newClip, clipSize)
	case newAvailable < 0:
		return clip, available, fmt.Errorf("firearm: reload script %s: negative reserve %d", r.name, newAvailable)
	case newClip+newAvailable > clip+available:
		return clip, available, fmt.Errorf("firearm: reload script %s: created %d rounds", r.name, newClip+newAvailable-clip-available)
	}
	return newClip, newAvailable, nil
}
