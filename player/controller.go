package player

import "github.com/jakecoffman/cp"

// Controller carries the player's locomotion-facing state. IsFiring and
// IsReloading are written by the weapon holder only; everything else reads.
type Controller struct {
	Crosshair *Crosshair

	firing    bool
	reloading bool
}

func NewController(crosshair *Crosshair) *Controller {
	return &Controller{Crosshair: crosshair}
}

func (c *Controller) IsFiring() bool { return c.firing }

func (c *Controller) SetFiring(v bool) { c.firing = v }

func (c *Controller) IsReloading() bool { return c.reloading }

func (c *Controller) SetReloading(v bool) { c.reloading = v }

// MoveSpeedScale slows the player while busy with the weapon.
func (c *Controller) MoveSpeedScale() float64 {
	switch {
	case c.reloading:
		return 0.5
	case c.firing:
		return 0.75
	default:
		return 1
	}
}

// Crosshair tracks the aim point in screen pixels.
type Crosshair struct {
	pos cp.Vector
}

func NewCrosshair() *Crosshair {
	return &Crosshair{}
}

// Track moves the crosshair to a screen position.
func (c *Crosshair) Track(screen cp.Vector) {
	c.pos = screen
}

func (c *Crosshair) CurrentAimPosition() cp.Vector {
	return c.pos
}
