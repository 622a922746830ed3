package weapon

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Animation parameter names.
const (
	ParamAimHorizontal = "AimHorizontal"
	ParamAimVertical   = "AimVertical"
	ParamIsFiring      = "IsFiring"
	ParamIsReloading   = "IsReloading"
	ParamWeaponType    = "WeaponType"
)

// IKGoal identifies a limb driven by inverse kinematics.
type IKGoal int

const (
	IKGoalLeftHand IKGoal = iota
	IKGoalRightHand
	IKGoalLeftFoot
	IKGoalRightFoot
)

// Type is the weapon category the animation layer uses to select a pose set.
type Type int

const (
	TypePistol Type = iota
	TypeRifle
	TypeShotgun
)

var typeNames = map[Type]string{
	TypePistol:  "pistol",
	TypeRifle:   "rifle",
	TypeShotgun: "shotgun",
}

func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("type(%d)", int(t))
}

// ParseType resolves a weapon type by name.
func ParseType(s string) (Type, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for t, name := range typeNames {
		if name == s {
			return t, nil
		}
	}
	return 0, fmt.Errorf("weapon: unknown type %q", s)
}

func (t *Type) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("weapon type must be a string")
	}
	parsed, err := ParseType(value.Value)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
