package physics

import (
	"errors"
	"fmt"
	"math"

	"air-track/internal/units"

	"github.com/go-gl/mathgl/mgl64"
)

// ErrInvalidArgument marks a programming error in the caller: negative time step,
// non-positive body size or density, restitution outside [0, 1].
var ErrInvalidArgument = errors.New("invalid argument")

const (
	// DefaultGravity is the downward acceleration in units/s² (Y grows downward, like the screen).
	DefaultGravity = 9.8
	// DefaultRestitution is the fraction of speed kept after hitting a wall.
	DefaultRestitution = 0.9
)

// Mode switches between the as-built behavior and corrected physics.
// The zero value is the as-built behavior.
type Mode struct {
	// TrueExtents derives body height from the pixel height and uses half-height as the
	// vertical wall margin. When false, height is derived from the pixel width.
	TrueExtents bool
	// TrapezoidalIntegration advances position with the average of the initial and final
	// velocity. When false, position advances with the initial velocity.
	TrapezoidalIntegration bool
}

// Bounds is the simulated area in physical units.
type Bounds struct {
	Left, Top, Right, Bottom float64
}

// Width returns Right - Left.
func (b Bounds) Width() float64 { return b.Right - b.Left }

// Height returns Bottom - Top.
func (b Bounds) Height() float64 { return b.Bottom - b.Top }

// Stats accumulates over the life of the world.
type Stats struct {
	Frames   uint64
	Elapsed  float64 // simulated seconds
	WallHits uint64
}

// World holds the bodies, the walls and the constants of the simulation.
// It is not safe for concurrent use; one goroutine owns it and runs Step.
type World struct {
	Bodies []*Body

	conv        *units.Converter
	bounds      Bounds
	gravity     float64
	restitution float64
	mode        Mode
	nextID      int
	stats       Stats
}

// NewWorld returns an empty world whose bounds match a display of widthPx × heightPx.
// Gravity and restitution start at DefaultGravity and DefaultRestitution.
func NewWorld(conv *units.Converter, widthPx, heightPx int) (*World, error) {
	if conv == nil {
		return nil, fmt.Errorf("%w: nil converter", ErrInvalidArgument)
	}
	if widthPx <= 0 || heightPx <= 0 {
		return nil, fmt.Errorf("%w: display size %dx%d", ErrInvalidArgument, widthPx, heightPx)
	}
	return &World{
		conv: conv,
		bounds: Bounds{
			Left:   0,
			Top:    0,
			Right:  conv.ToUnits(widthPx),
			Bottom: conv.ToUnits(heightPx),
		},
		gravity:     DefaultGravity,
		restitution: DefaultRestitution,
		nextID:      1,
	}, nil
}

// Converter returns the unit converter the world was built with.
func (w *World) Converter() *units.Converter { return w.conv }

// Bounds returns the wall positions in physical units.
func (w *World) Bounds() Bounds { return w.bounds }

// Gravity returns the downward acceleration in units/s².
func (w *World) Gravity() float64 { return w.gravity }

// SetGravity sets the downward acceleration. Negative values pull toward the top.
func (w *World) SetGravity(g float64) error {
	if math.IsNaN(g) || math.IsInf(g, 0) {
		return fmt.Errorf("%w: gravity %v", ErrInvalidArgument, g)
	}
	for _, b := range w.Bodies {
		if err := checkMass(b.mass, g); err != nil {
			return fmt.Errorf("body %d: %w", b.id, err)
		}
	}
	w.gravity = g
	return nil
}

// Restitution returns the fraction of speed kept after a wall bounce.
func (w *World) Restitution() float64 { return w.restitution }

// SetRestitution sets the wall restitution; e must be in [0, 1].
func (w *World) SetRestitution(e float64) error {
	if !(e >= 0 && e <= 1) {
		return fmt.Errorf("%w: restitution %v not in [0, 1]", ErrInvalidArgument, e)
	}
	w.restitution = e
	return nil
}

// Mode returns the physics mode.
func (w *World) Mode() Mode { return w.mode }

// SetMode changes the physics mode. Bodies already created keep their extents.
func (w *World) SetMode(m Mode) { w.mode = m }

// Stats returns the counters accumulated by Step.
func (w *World) Stats() Stats { return w.stats }

// CreateBody builds a body from pixel-space arguments, assigns the next identifier
// and appends it. Order of creation is the order of update and rendering.
func (w *World) CreateBody(spec BodySpec) (*Body, error) {
	if spec.WidthPx <= 0 || spec.HeightPx <= 0 {
		return nil, fmt.Errorf("%w: body size %dx%d px", ErrInvalidArgument, spec.WidthPx, spec.HeightPx)
	}
	if spec.LeftPx < 0 || spec.TopPx < 0 {
		return nil, fmt.Errorf("%w: body position (%d, %d) px", ErrInvalidArgument, spec.LeftPx, spec.TopPx)
	}
	if !(spec.Density > 0) || math.IsInf(spec.Density, 0) {
		return nil, fmt.Errorf("%w: density %v", ErrInvalidArgument, spec.Density)
	}
	if !finite(spec.Velocity) {
		return nil, fmt.Errorf("%w: velocity %v", ErrInvalidArgument, spec.Velocity)
	}

	width := w.conv.ToUnits(spec.WidthPx)
	// As built, height comes from the pixel width.
	height := w.conv.ToUnits(spec.WidthPx)
	if w.mode.TrueExtents {
		height = w.conv.ToUnits(spec.HeightPx)
	}
	mass := spec.Density * width * height
	if err := checkMass(mass, w.gravity); err != nil {
		return nil, err
	}

	b := &Body{
		Center: mgl64.Vec2{
			w.conv.ToUnits(spec.LeftPx) + width/2,
			w.conv.ToUnits(spec.TopPx) + height/2,
		},
		Velocity:   spec.Velocity,
		id:         w.nextID,
		color:      spec.Color,
		halfWidth:  width / 2,
		halfHeight: height / 2,
		mass:       mass,
		widthPx:    spec.WidthPx,
		heightPx:   spec.HeightPx,
	}
	w.nextID++
	w.Bodies = append(w.Bodies, b)
	return b, nil
}

// Body returns the body with the given id, or nil.
func (w *World) Body(id int) *Body {
	for _, b := range w.Bodies {
		if b.id == id {
			return b
		}
	}
	return nil
}

// RenderRect returns the pixel rectangle of b using the world's converter.
func (w *World) RenderRect(b *Body) Rect {
	return b.RenderRect(w.conv)
}

// minNormalMass is the smallest normal float64. Below it acceleration loses precision.
const minNormalMass = 0x1p-1022

// checkMass rejects a mass that is not a normal finite float or whose weight under g overflows.
func checkMass(m, g float64) error {
	if !(m >= minNormalMass) || math.IsInf(m, 0) || math.IsInf(m*math.Abs(g), 0) {
		return fmt.Errorf("%w: mass %v under gravity %v", ErrInvalidArgument, m, g)
	}
	return nil
}

func finite(v mgl64.Vec2) bool {
	for _, c := range v {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}
	return true
}
