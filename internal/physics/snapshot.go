package physics

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/jinzhu/copier"
)

// BodyState is the mutable part of a body at one instant.
type BodyState struct {
	ID       int
	Center   mgl64.Vec2
	Velocity mgl64.Vec2
}

// Snapshot captures everything Step mutates, plus the tunable constants.
type Snapshot struct {
	Bodies      []BodyState
	Stats       Stats
	Gravity     float64
	Restitution float64
}

// Snapshot copies the current state. The result shares nothing with the world.
func (w *World) Snapshot() (Snapshot, error) {
	s := Snapshot{
		Stats:       w.stats,
		Gravity:     w.gravity,
		Restitution: w.restitution,
	}
	// ID is read through the Body.ID method.
	if err := copier.Copy(&s.Bodies, w.Bodies); err != nil {
		return Snapshot{}, fmt.Errorf("snapshot bodies: %w", err)
	}
	return s, nil
}

// Restore puts every body present in s back to its recorded center and velocity,
// and restores stats and constants. Bodies created after s was taken are left as they are.
// Everything is checked before anything changes; on error the world is untouched.
func (w *World) Restore(s Snapshot) error {
	if !(s.Restitution >= 0 && s.Restitution <= 1) {
		return fmt.Errorf("%w: restitution %v not in [0, 1]", ErrInvalidArgument, s.Restitution)
	}
	if math.IsNaN(s.Gravity) || math.IsInf(s.Gravity, 0) {
		return fmt.Errorf("%w: gravity %v", ErrInvalidArgument, s.Gravity)
	}
	targets := make([]*Body, len(s.Bodies))
	for i, st := range s.Bodies {
		b := w.Body(st.ID)
		if b == nil {
			return fmt.Errorf("%w: snapshot body %d not in world", ErrInvalidArgument, st.ID)
		}
		targets[i] = b
	}
	for _, b := range w.Bodies {
		if err := checkMass(b.mass, s.Gravity); err != nil {
			return fmt.Errorf("body %d: %w", b.id, err)
		}
	}

	w.restitution = s.Restitution
	w.gravity = s.Gravity
	for i, st := range s.Bodies {
		targets[i].Center = st.Center
		targets[i].Velocity = st.Velocity
	}
	w.stats = s.Stats
	return nil
}
