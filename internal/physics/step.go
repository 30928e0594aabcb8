package physics

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Step advances the simulation by dt seconds: integrate every body under gravity,
// then resolve wall penetrations for every body. A negative or non-finite dt is rejected
// and leaves the world untouched.
func (w *World) Step(dt float64) error {
	if dt < 0 || math.IsNaN(dt) || math.IsInf(dt, 0) {
		return fmt.Errorf("%w: dt %v", ErrInvalidArgument, dt)
	}

	for _, b := range w.Bodies {
		w.integrate(b, dt)
	}
	for _, b := range w.Bodies {
		if w.collideWalls(b) {
			w.stats.WallHits++
		}
	}

	w.stats.Frames++
	w.stats.Elapsed += dt
	return nil
}

func (w *World) integrate(b *Body, dt float64) {
	f := b.netForce(w.gravity)
	acc := mgl64.Vec2{f.X() / b.mass, f.Y() / b.mass}

	vInitial := b.Velocity
	vFinal := vInitial.Add(acc.Mul(dt))
	vAvg := vInitial.Add(vFinal).Mul(0.5)

	// As built, position uses the initial velocity and vAvg goes unused.
	move := vInitial
	if w.mode.TrapezoidalIntegration {
		move = vAvg
	}
	b.Center = b.Center.Add(move.Mul(dt))
	b.Velocity = vFinal
}

// collideWalls corrects at most one axis per call: horizontal first, vertical only when
// the body is clear horizontally. A corner hit resolves its vertical part on a later frame.
// Reports whether a correction was made.
func (w *World) collideWalls(b *Body) bool {
	c := b.Center
	e := w.restitution

	left := w.bounds.Left - (c.X() - b.halfWidth)
	right := (c.X() + b.halfWidth) - w.bounds.Right
	if left > 0 || right > 0 {
		if left > 0 {
			c[0] += 2 * left
		} else {
			c[0] -= 2 * right
		}
		b.Center = c
		b.Velocity[0] = -b.Velocity[0] * e
		return true
	}

	// As built, the vertical margin is the half-width.
	margin := b.halfWidth
	if w.mode.TrueExtents {
		margin = b.halfHeight
	}
	top := w.bounds.Top - (c.Y() - margin)
	bottom := (c.Y() + margin) - w.bounds.Bottom
	if top > 0 || bottom > 0 {
		if top > 0 {
			c[1] += 2 * top
		} else {
			c[1] -= 2 * bottom
		}
		b.Center = c
		b.Velocity[1] = -b.Velocity[1] * e
		return true
	}
	return false
}
