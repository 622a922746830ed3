package prefabs

import (
	"fmt"
	"math"
	"strings"

	"github.com/milk9111/gunplay/weapon"
	"gopkg.in/yaml.v3"
)

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

// WeaponSpec describes an attachable object. Objects without a firearm block
// are props: they spawn but carry no weapon instance.
type WeaponSpec struct {
	Name            string           `yaml:"name"`
	Transform       TransformSpec    `yaml:"transform"`
	Grip            TransformSpec    `yaml:"grip"`
	Muzzle          TransformSpec    `yaml:"muzzle"`
	Firearm         *FirearmSpec     `yaml:"firearm"`
	ReloadAnimation AnimationDefSpec `yaml:"reload_animation"`
}

type FirearmSpec struct {
	Type            weapon.Type `yaml:"type"`
	ClipSize        int         `yaml:"clip_size"`
	Clip            int         `yaml:"clip"`
	Reserve         int         `yaml:"reserve"`
	RoundsPerSecond float64     `yaml:"rounds_per_second"`
	MuzzleSpeed     float64     `yaml:"muzzle_speed"`
	Pellets         int         `yaml:"pellets"`
	SpreadDegrees   float64     `yaml:"spread_degrees"`
	Recoil          RecoilSpec  `yaml:"recoil"`
	ReloadScript    string      `yaml:"reload_script"`
}

type RecoilSpec struct {
	Kick             float64 `yaml:"kick"`
	RecoverPerSecond float64 `yaml:"recover_per_second"`
}

type TransformSpec struct {
	X        float64 `yaml:"x"`
	Y        float64 `yaml:"y"`
	Rotation float64 `yaml:"rotation"`
}

// Radians converts Rotation, given in degrees, to radians.
func (t TransformSpec) Radians() float64 {
	return t.Rotation * math.Pi / 180
}

type AnimationDefSpec struct {
	Name       string  `yaml:"name"`
	FrameCount int     `yaml:"frame_count"`
	FPS        float64 `yaml:"fps"`
	Loop       bool    `yaml:"loop"`
}

// LoadWeaponSpec loads and validates a weapon prefab by name.
func LoadWeaponSpec(name string) (*WeaponSpec, error) {
	spec, err := LoadSpec[WeaponSpec](name)
	if err != nil {
		return nil, err
	}
	if err := spec.Validate(); err != nil {
		return nil, fmt.Errorf("prefabs: %s: %w", name, err)
	}
	return &spec, nil
}

// Validate checks ammunition and cadence settings and fills defaults.
func (s *WeaponSpec) Validate() error {
	if strings.TrimSpace(s.Name) == "" {
		return fmt.Errorf("name is required")
	}
	f := s.Firearm
	if f == nil {
		return nil
	}
	if f.ClipSize <= 0 {
		return fmt.Errorf("firearm.clip_size must be positive, got %d", f.ClipSize)
	}
	if f.Clip < 0 || f.Clip > f.ClipSize {
		return fmt.Errorf("firearm.clip must be within [0,%d], got %d", f.ClipSize, f.Clip)
	}
	if f.Reserve < 0 {
		return fmt.Errorf("firearm.reserve must not be negative, got %d", f.Reserve)
	}
	if f.RoundsPerSecond <= 0 {
		return fmt.Errorf("firearm.rounds_per_second must be positive, got %v", f.RoundsPerSecond)
	}
	// a looping reload clip never clears IsReloading
	if s.ReloadAnimation.Loop {
		return fmt.Errorf("reload_animation.loop must be false")
	}
	if f.Pellets <= 0 {
		f.Pellets = 1
	}
	if s.ReloadAnimation.FPS <= 0 {
		s.ReloadAnimation.FPS = 12
	}
	return nil
}
