package main

import (
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/gunplay/firearm"
)

const projectileLife = 2 * time.Second

type projectile struct {
	pos cp.Vector
	vel cp.Vector
	age time.Duration
}

// Projectiles moves and draws the shots fired by the equipped gun. Dead
// projectiles are recycled in place.
type Projectiles struct {
	active []projectile
	fired  int
}

func (p *Projectiles) Spawn(s firearm.Shot) {
	p.fired++
	p.active = append(p.active, projectile{pos: s.Origin, vel: s.Velocity})
}

func (p *Projectiles) Update(dt time.Duration, w, h float64) {
	live := p.active[:0]
	for _, b := range p.active {
		b.age += dt
		b.pos = b.pos.Add(b.vel.Mult(dt.Seconds()))
		if b.age > projectileLife || b.pos.X < 0 || b.pos.Y < 0 || b.pos.X > w || b.pos.Y > h {
			continue
		}
		live = append(live, b)
	}
	p.active = live
}

func (p *Projectiles) Draw(screen *ebiten.Image) {
	for _, b := range p.active {
		tail := b.pos.Sub(b.vel.Normalize().Mult(6))
		vector.StrokeLine(screen, float32(tail.X), float32(tail.Y), float32(b.pos.X), float32(b.pos.Y), 2, color.RGBA{R: 255, G: 220, B: 120, A: 255}, true)
	}
}
