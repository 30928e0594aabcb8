package units

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidScale is returned by New when the reference lengths cannot define a scale.
var ErrInvalidScale = errors.New("invalid unit scale")

// Converter maps pixel distances to physical distances and back.
// The scale is fixed at construction from a reference pixel length and the physical length it spans
// (e.g. the window width in pixels and the width of the track in meters).
type Converter struct {
	pixelsPerUnit float64
	unitsPerPixel float64
}

// New returns a converter where lengthPx pixels correspond to length physical units.
func New(lengthPx int, length float64) (*Converter, error) {
	if lengthPx <= 0 {
		return nil, fmt.Errorf("%w: reference pixel length %d", ErrInvalidScale, lengthPx)
	}
	if length <= 0 || math.IsNaN(length) || math.IsInf(length, 0) {
		return nil, fmt.Errorf("%w: reference length %v", ErrInvalidScale, length)
	}
	return &Converter{
		pixelsPerUnit: float64(lengthPx) / length,
		unitsPerPixel: length / float64(lengthPx),
	}, nil
}

// PixelsPerUnit returns the scale factor from physical units to pixels.
func (c *Converter) PixelsPerUnit() float64 {
	return c.pixelsPerUnit
}

// UnitsPerPixel returns the scale factor from pixels to physical units.
func (c *Converter) UnitsPerPixel() float64 {
	return c.unitsPerPixel
}

// ToPixels converts a physical distance to the nearest whole pixel.
func (c *Converter) ToPixels(d float64) int {
	return int(math.Round(d * c.pixelsPerUnit))
}

// ToUnits converts a pixel distance to physical units. No rounding.
func (c *Converter) ToUnits(px int) float64 {
	return float64(px) * c.unitsPerPixel
}
