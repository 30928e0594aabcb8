package render

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"os"
	"path/filepath"

	"air-track/internal/physics"

	"github.com/anthonynsimon/bild/imgio"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

var captionColor = color.RGBA{200, 200, 200, 255}

const captionPadding = 4

// ImageCanvas draws into an in-memory RGBA image. Used for headless runs and tests.
type ImageCanvas struct {
	img *image.RGBA
}

// NewImageCanvas returns a canvas of w × h pixels.
func NewImageCanvas(w, h int) *ImageCanvas {
	return &ImageCanvas{img: image.NewRGBA(image.Rect(0, 0, w, h))}
}

// Image returns the backing image. It is overwritten by the next frame.
func (c *ImageCanvas) Image() *image.RGBA {
	return c.img
}

func (c *ImageCanvas) Clear(col color.RGBA) {
	draw.Draw(c.img, c.img.Bounds(), image.NewUniform(col), image.Point{}, draw.Src)
}

// FillRect clips r to the image; parts outside the window are dropped.
func (c *ImageCanvas) FillRect(r physics.Rect, col color.RGBA) {
	rect := image.Rect(r.X, r.Y, r.X+r.W, r.Y+r.H).Intersect(c.img.Bounds())
	if rect.Empty() {
		return
	}
	draw.Draw(c.img, rect, image.NewUniform(col), image.Point{}, draw.Src)
}

// SetCaption draws text in the top-left corner, over whatever is already there.
func (c *ImageCanvas) SetCaption(text string) {
	face := basicfont.Face7x13
	d := &font.Drawer{
		Dst:  c.img,
		Src:  image.NewUniform(captionColor),
		Face: face,
		Dot:  fixed.P(captionPadding, captionPadding+face.Ascent),
	}
	d.DrawString(text)
}

// Save writes the current image as PNG, creating the directory if needed.
func (c *ImageCanvas) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	if err := imgio.Save(path, c.img, imgio.PNGEncoder()); err != nil {
		return fmt.Errorf("save frame %s: %w", path, err)
	}
	return nil
}
