package session

import (
	"flag"
	"fmt"

	"air-track/internal/commands"
	"air-track/internal/mapgen"
	"air-track/internal/physics"
	"air-track/internal/scene"
)

// RegisterCommands adds the simulation console commands to reg:
// gravity, restitution, spawn, scatter, pause, reset, stats, help.
func (s *Session) RegisterCommands(reg *commands.Registry) {
	reg.Register("gravity", "show or set gravity", func(fs *flag.FlagSet) func([]string) error {
		g := fs.Float64("g", s.World.Gravity(), "downward acceleration in units/s²")
		return func([]string) error {
			if commands.IsSet(fs, "g") {
				if err := s.World.SetGravity(*g); err != nil {
					return err
				}
			}
			s.log.Infof("gravity=%.3f", s.World.Gravity())
			return nil
		}
	})

	reg.Register("restitution", "show or set wall restitution", func(fs *flag.FlagSet) func([]string) error {
		e := fs.Float64("e", s.World.Restitution(), "fraction of speed kept after a wall hit, 0..1")
		return func([]string) error {
			if commands.IsSet(fs, "e") {
				if err := s.World.SetRestitution(*e); err != nil {
					return err
				}
			}
			s.log.Infof("restitution=%.3f", s.World.Restitution())
			return nil
		}
	})

	reg.Register("spawn", "add a body", func(fs *flag.FlagSet) func([]string) error {
		def := scene.Default().Bodies[0]
		left := fs.Int("x", def.Left, "left edge in px")
		top := fs.Int("y", def.Top, "top edge in px")
		width := fs.Int("w", def.Width, "width in px")
		height := fs.Int("h", def.Height, "height in px")
		density := fs.Float64("density", def.Density, "mass per unit area")
		vx := fs.Float64("vx", 0, "horizontal velocity in units/s")
		vy := fs.Float64("vy", 0, "vertical velocity in units/s")
		col := fs.String("color", def.Color, "#rrggbb or a color name")
		return func([]string) error {
			spec, err := scene.BodyDef{
				Color:    *col,
				Left:     *left,
				Top:      *top,
				Width:    *width,
				Height:   *height,
				Density:  *density,
				Velocity: [2]float64{*vx, *vy},
			}.Spec()
			if err != nil {
				return err
			}
			b, err := s.World.CreateBody(spec)
			if err != nil {
				return err
			}
			s.log.Infof("spawned body %d at (%d, %d) px", b.ID(), *left, *top)
			return nil
		}
	})

	reg.Register("scatter", "add procedurally placed bodies", func(fs *flag.FlagSet) func([]string) error {
		def := mapgen.DefaultScatterOptions()
		n := fs.Int("n", def.Count, "number of bodies")
		seed := fs.Int64("seed", 0, "layout seed, 0 for a new one")
		speed := fs.Float64("speed", def.MaxSpeed, "maximum speed in units/s")
		return func([]string) error {
			opts := def
			opts.Count = *n
			opts.Seed = *seed
			opts.MaxSpeed = *speed
			b := s.World.Bounds()
			conv := s.World.Converter()
			width, height := conv.ToPixels(b.Width()), conv.ToPixels(b.Height())
			if limit := mapgen.MaxCount(width, height); *n < 0 || *n > limit {
				return fmt.Errorf("%w: scatter -n %d not in [0, %d]", physics.ErrInvalidArgument, *n, limit)
			}
			defs := mapgen.Scatter(width, height, opts)
			for _, d := range defs {
				spec, err := d.Spec()
				if err != nil {
					return err
				}
				if _, err := s.World.CreateBody(spec); err != nil {
					return err
				}
			}
			s.log.Infof("scattered %d bodies", len(defs))
			return nil
		}
	})

	reg.Register("pause", "toggle pause", commands.Simple(func() error {
		s.SetPaused(!s.paused)
		return nil
	}))

	reg.Register("reset", "restore the initial state", commands.Simple(s.Reset))

	reg.Register("stats", "print simulation counters", commands.Simple(func() error {
		st := s.World.Stats()
		s.log.Infof("frames=%d t=%.3fs hits=%d bodies=%d", st.Frames, st.Elapsed, st.WallHits, len(s.World.Bodies))
		for _, b := range s.World.Bodies {
			s.log.Infof("body %d center=(%.4f, %.4f) v=(%.4f, %.4f)", b.ID(), b.Center.X(), b.Center.Y(), b.Velocity.X(), b.Velocity.Y())
		}
		return nil
	}))

	reg.Register("help", "list commands", commands.Simple(func() error {
		for _, line := range reg.Help() {
			s.log.Log("cmd " + line)
		}
		return nil
	}))
}
