package session

import (
	"context"
	"fmt"

	"air-track/internal/logger"
	"air-track/internal/physics"
	"air-track/internal/render"

	"github.com/google/uuid"
)

// Session drives one world frame by frame: step every body, then draw every body.
// It also owns the pause flag and the initial snapshot used by Reset.
// All methods must be called from the goroutine running the frame loop.
type Session struct {
	Name  string
	World *physics.World
	RunID string

	log     *logger.Logger
	initial physics.Snapshot
	paused  bool
}

// New wraps w, records its current state as the reset point and issues a run id.
func New(name string, w *physics.World, log *logger.Logger) (*Session, error) {
	if log == nil {
		log = logger.Nop()
	}
	snap, err := w.Snapshot()
	if err != nil {
		return nil, err
	}
	s := &Session{
		Name:    name,
		World:   w,
		RunID:   uuid.NewString(),
		log:     log,
		initial: snap,
	}
	log.Infof("session %s: %q, %d bodies, g=%.3f e=%.3f", s.RunID, name, len(w.Bodies), w.Gravity(), w.Restitution())
	return s, nil
}

// Frame advances the world by dt (unless paused) and then draws it on c.
// A rejected dt is returned before anything is drawn.
func (s *Session) Frame(dt float64, c render.Canvas) error {
	if !s.paused {
		if err := s.World.Step(dt); err != nil {
			return err
		}
	}
	if c == nil {
		return nil
	}
	render.DrawWorld(c, s.World)
	if cp, ok := c.(render.Captioner); ok {
		cp.SetCaption(s.Caption())
	}
	return nil
}

// Run calls Frame with clock ticks until ctx is done or frames frames have run (frames <= 0: no limit).
// after, if set, is called once per frame with the zero-based frame number.
func (s *Session) Run(ctx context.Context, clock Clock, c render.Canvas, frames int, after func(frame uint64) error) error {
	for n := uint64(0); frames <= 0 || n < uint64(frames); n++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := s.Frame(clock.Tick(), c); err != nil {
			return fmt.Errorf("frame %d: %w", n, err)
		}
		if after != nil {
			if err := after(n); err != nil {
				return fmt.Errorf("frame %d: %w", n, err)
			}
		}
	}
	return nil
}

// Paused reports whether Frame skips stepping.
func (s *Session) Paused() bool { return s.paused }

// SetPaused stops or resumes stepping. Drawing continues while paused.
func (s *Session) SetPaused(p bool) {
	if p != s.paused {
		s.log.Infof("paused=%v at t=%.3fs", p, s.World.Stats().Elapsed)
	}
	s.paused = p
}

// Reset puts every initial body back where it started and restores gravity, restitution and stats.
func (s *Session) Reset() error {
	if err := s.World.Restore(s.initial); err != nil {
		return err
	}
	s.log.Infof("reset to initial state")
	return nil
}

// Caption is the title line: name, simulated time, body count, wall hits.
func (s *Session) Caption() string {
	st := s.World.Stats()
	text := fmt.Sprintf("%s  t=%.2fs  bodies=%d  hits=%d", s.Name, st.Elapsed, len(s.World.Bodies), st.WallHits)
	if s.paused {
		text += "  [paused]"
	}
	return text
}
