package physics

import (
	"image/color"

	"air-track/internal/units"

	"github.com/go-gl/mathgl/mgl64"
)

// BodySpec describes a body in the pixel space of the window it is spawned in.
// Velocity is in physical units per second.
type BodySpec struct {
	Color    color.RGBA
	LeftPx   int
	TopPx    int
	WidthPx  int
	HeightPx int
	Density  float64
	Velocity mgl64.Vec2
}

// Body is an axis-aligned rectangle with mass moving in physical units.
// Extents, mass and identity are fixed at construction. Center and Velocity are
// mutated only by World.Step (and snapshot restore).
type Body struct {
	Center   mgl64.Vec2
	Velocity mgl64.Vec2

	id         int
	color      color.RGBA
	halfWidth  float64
	halfHeight float64
	mass       float64
	widthPx    int
	heightPx   int
}

// Rect is an axis-aligned pixel rectangle: top-left corner plus size.
type Rect struct {
	X, Y int
	W, H int
}

// ID returns the sequential identifier issued by the world, starting at 1.
func (b *Body) ID() int { return b.id }

// Color returns the render color.
func (b *Body) Color() color.RGBA { return b.color }

// HalfWidth returns half the body width in physical units.
func (b *Body) HalfWidth() float64 { return b.halfWidth }

// HalfHeight returns half the body height in physical units.
func (b *Body) HalfHeight() float64 { return b.halfHeight }

// Mass returns density × width × height. Always positive.
func (b *Body) Mass() float64 { return b.mass }

// SizePx returns the pixel size the body was created with.
func (b *Body) SizePx() (w, h int) { return b.widthPx, b.heightPx }

// RenderRect returns the pixel rectangle centered on the body's current center.
// The size is the construction-time pixel size; only the position follows the simulation.
func (b *Body) RenderRect(conv *units.Converter) Rect {
	cx := conv.ToPixels(b.Center.X())
	cy := conv.ToPixels(b.Center.Y())
	return Rect{
		X: cx - b.widthPx/2,
		Y: cy - b.heightPx/2,
		W: b.widthPx,
		H: b.heightPx,
	}
}

// netForce is the sum of all forces on the body. Gravity is the only one.
func (b *Body) netForce(g float64) mgl64.Vec2 {
	return mgl64.Vec2{0, b.mass * g}
}
