package render

import (
	"image/color"

	"air-track/internal/physics"
)

// Background is the clear color used before drawing bodies.
var Background = color.RGBA{0, 0, 0, 255}

// Canvas is the pixel drawing primitive a frame driver provides.
// Coordinates are window pixels with the origin at the top-left.
type Canvas interface {
	Clear(c color.RGBA)
	FillRect(r physics.Rect, c color.RGBA)
}

// Captioner is implemented by canvases that can show a title line (window caption, status row).
type Captioner interface {
	SetCaption(text string)
}

// DrawWorld clears c and draws every body in world order.
// Call after Step has run for all bodies.
func DrawWorld(c Canvas, w *physics.World) {
	c.Clear(Background)
	for _, b := range w.Bodies {
		c.FillRect(w.RenderRect(b), b.Color())
	}
}
