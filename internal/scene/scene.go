package scene

import (
	"errors"
	"fmt"
	"image/color"
	"os"
	"strings"

	"air-track/internal/physics"
	"air-track/internal/units"

	"github.com/go-gl/mathgl/mgl64"
	"gopkg.in/yaml.v3"
)

// DefaultPath is where the scene is looked up when none is given, relative to the working directory.
const DefaultPath = "assets/scenes/default.yaml"

// ErrInvalidScene is returned when a scene file parses but describes an impossible setup.
var ErrInvalidScene = errors.New("invalid scene")

// Scene is the YAML description of a simulation: window, constants and the initial bodies.
type Scene struct {
	Name        string      `yaml:"name"`
	Window      Window      `yaml:"window"`
	Gravity     *float64    `yaml:"gravity,omitempty"`
	Restitution *float64    `yaml:"restitution,omitempty"`
	Mode        ModeDef     `yaml:"mode,omitempty"`
	Bodies      []BodyDef   `yaml:"bodies"`
	Scatter     *ScatterDef `yaml:"scatter,omitempty"`
}

// Window is the display size in pixels and the physical length spanned by its width.
type Window struct {
	Width  int     `yaml:"width"`
	Height int     `yaml:"height"`
	Length float64 `yaml:"length"`
}

// ModeDef mirrors physics.Mode.
type ModeDef struct {
	TrueExtents bool `yaml:"true_extents,omitempty"`
	Trapezoidal bool `yaml:"trapezoidal,omitempty"`
}

// ScatterDef asks for Count procedurally placed bodies on top of Bodies.
// Seed 0 picks a new layout every run. MaxSpeed is in units/s.
type ScatterDef struct {
	Count    int     `yaml:"count"`
	Seed     int64   `yaml:"seed,omitempty"`
	MaxSpeed float64 `yaml:"max_speed,omitempty"`
}

// BodyDef is one body in pixel coordinates. Color is "#rrggbb" or a name such as "white".
type BodyDef struct {
	Color    string     `yaml:"color,omitempty"`
	Left     int        `yaml:"left"`
	Top      int        `yaml:"top"`
	Width    int        `yaml:"width"`
	Height   int        `yaml:"height"`
	Density  float64    `yaml:"density,omitempty"`
	Velocity [2]float64 `yaml:"velocity,omitempty"`
}

const (
	defaultBodyWidth  = 26
	defaultBodyHeight = 98
	defaultDensity    = 1.0
)

// Default returns the built-in scene: a 1280×720 window spanning 1.5 units, with one
// white body at (450, 200) px drifting at (0.1, 0.1) units/s.
func Default() Scene {
	return Scene{
		Name:   "air track",
		Window: Window{Width: 1280, Height: 720, Length: 1.5},
		Bodies: []BodyDef{{
			Color:    "white",
			Left:     450,
			Top:      200,
			Width:    defaultBodyWidth,
			Height:   defaultBodyHeight,
			Density:  defaultDensity,
			Velocity: [2]float64{0.1, 0.1},
		}},
	}
}

// Load reads and validates a scene file. Window fields left out fall back to Default().
func Load(path string) (Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Scene{}, fmt.Errorf("read scene: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML scene data and validates it.
func Parse(data []byte) (Scene, error) {
	s := Scene{Window: Default().Window}
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Scene{}, fmt.Errorf("parse scene: %w", err)
	}
	for i := range s.Bodies {
		b := &s.Bodies[i]
		if b.Width == 0 {
			b.Width = defaultBodyWidth
		}
		if b.Height == 0 {
			b.Height = defaultBodyHeight
		}
		if b.Density == 0 {
			b.Density = defaultDensity
		}
	}
	if err := s.Validate(); err != nil {
		return Scene{}, err
	}
	return s, nil
}

// Validate checks the parts of the scene that physics does not check itself.
func (s Scene) Validate() error {
	if s.Window.Width <= 0 || s.Window.Height <= 0 {
		return fmt.Errorf("%w: window %dx%d", ErrInvalidScene, s.Window.Width, s.Window.Height)
	}
	if s.Window.Length <= 0 {
		return fmt.Errorf("%w: window length %v", ErrInvalidScene, s.Window.Length)
	}
	if s.Restitution != nil && (*s.Restitution < 0 || *s.Restitution > 1) {
		return fmt.Errorf("%w: restitution %v", ErrInvalidScene, *s.Restitution)
	}
	if s.Scatter != nil && (s.Scatter.Count < 0 || s.Scatter.MaxSpeed < 0) {
		return fmt.Errorf("%w: scatter count %d, max speed %v", ErrInvalidScene, s.Scatter.Count, s.Scatter.MaxSpeed)
	}
	for i, b := range s.Bodies {
		if _, err := ParseColor(b.Color); err != nil {
			return fmt.Errorf("%w: body %d: %v", ErrInvalidScene, i, err)
		}
	}
	return nil
}

// Build creates the converter and world for s and spawns its bodies in order.
func Build(s Scene) (*physics.World, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	conv, err := units.New(s.Window.Width, s.Window.Length)
	if err != nil {
		return nil, err
	}
	w, err := physics.NewWorld(conv, s.Window.Width, s.Window.Height)
	if err != nil {
		return nil, err
	}
	w.SetMode(physics.Mode{
		TrueExtents:            s.Mode.TrueExtents,
		TrapezoidalIntegration: s.Mode.Trapezoidal,
	})
	if s.Gravity != nil {
		if err := w.SetGravity(*s.Gravity); err != nil {
			return nil, err
		}
	}
	if s.Restitution != nil {
		if err := w.SetRestitution(*s.Restitution); err != nil {
			return nil, err
		}
	}
	for i, b := range s.Bodies {
		spec, err := b.Spec()
		if err != nil {
			return nil, fmt.Errorf("body %d: %w", i, err)
		}
		if _, err := w.CreateBody(spec); err != nil {
			return nil, fmt.Errorf("body %d: %w", i, err)
		}
	}
	return w, nil
}

// Spec converts the definition into a physics.BodySpec.
func (b BodyDef) Spec() (physics.BodySpec, error) {
	c, err := ParseColor(b.Color)
	if err != nil {
		return physics.BodySpec{}, err
	}
	return physics.BodySpec{
		Color:    c,
		LeftPx:   b.Left,
		TopPx:    b.Top,
		WidthPx:  b.Width,
		HeightPx: b.Height,
		Density:  b.Density,
		Velocity: mgl64.Vec2{b.Velocity[0], b.Velocity[1]},
	}, nil
}

var namedColors = map[string]color.RGBA{
	"white":  {255, 255, 255, 255},
	"black":  {0, 0, 0, 255},
	"red":    {255, 0, 0, 255},
	"green":  {0, 255, 0, 255},
	"blue":   {0, 0, 255, 255},
	"yellow": {255, 255, 0, 255},
	"orange": {255, 165, 0, 255},
	"purple": {160, 32, 240, 255},
	"cyan":   {0, 255, 255, 255},
	"gray":   {190, 190, 190, 255},
}

// ParseColor accepts "#rrggbb", a color name, or "" (white).
func ParseColor(s string) (color.RGBA, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return namedColors["white"], nil
	}
	if c, ok := namedColors[s]; ok {
		return c, nil
	}
	var r, g, b uint8
	if len(s) == 7 && s[0] == '#' {
		if n, err := fmt.Sscanf(s, "#%02x%02x%02x", &r, &g, &b); err == nil && n == 3 {
			return color.RGBA{r, g, b, 255}, nil
		}
	}
	return color.RGBA{}, fmt.Errorf("unknown color %q", s)
}
