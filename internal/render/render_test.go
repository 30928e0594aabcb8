package render

import (
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"air-track/internal/physics"
	"air-track/internal/units"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fillCall struct {
	r physics.Rect
	c color.RGBA
}

type recordingCanvas struct {
	cleared []color.RGBA
	fills   []fillCall
}

func (c *recordingCanvas) Clear(col color.RGBA) { c.cleared = append(c.cleared, col) }
func (c *recordingCanvas) FillRect(r physics.Rect, col color.RGBA) {
	c.fills = append(c.fills, fillCall{r, col})
}

func testWorld(t *testing.T) *physics.World {
	t.Helper()
	conv, err := units.New(100, 1)
	require.NoError(t, err)
	w, err := physics.NewWorld(conv, 100, 80)
	require.NoError(t, err)
	red := color.RGBA{255, 0, 0, 255}
	blue := color.RGBA{0, 0, 255, 255}
	_, err = w.CreateBody(physics.BodySpec{Color: red, LeftPx: 10, TopPx: 10, WidthPx: 10, HeightPx: 10, Density: 1})
	require.NoError(t, err)
	_, err = w.CreateBody(physics.BodySpec{Color: blue, LeftPx: 95, TopPx: 60, WidthPx: 10, HeightPx: 30, Density: 1})
	require.NoError(t, err)
	return w
}

func TestDrawWorldOrder(t *testing.T) {
	w := testWorld(t)
	c := &recordingCanvas{}
	DrawWorld(c, w)

	assert.Equal(t, []color.RGBA{Background}, c.cleared)
	require.Len(t, c.fills, 2)
	assert.Equal(t, physics.Rect{X: 10, Y: 10, W: 10, H: 10}, c.fills[0].r)
	assert.Equal(t, color.RGBA{255, 0, 0, 255}, c.fills[0].c)
	assert.Equal(t, color.RGBA{0, 0, 255, 255}, c.fills[1].c)
}

func TestImageCanvasClipsAndFills(t *testing.T) {
	w := testWorld(t)
	c := NewImageCanvas(100, 80)
	DrawWorld(c, w)

	img := c.Image()
	assert.Equal(t, color.RGBA{255, 0, 0, 255}, img.RGBAAt(15, 15))
	assert.Equal(t, Background, img.RGBAAt(50, 5))
	// Second body hangs off the right edge; the visible part is drawn.
	assert.Equal(t, color.RGBA{0, 0, 255, 255}, img.RGBAAt(99, 60))

	c.FillRect(physics.Rect{X: 500, Y: 500, W: 4, H: 4}, color.RGBA{1, 2, 3, 255})
}

func TestCaptionDrawsText(t *testing.T) {
	c := NewImageCanvas(200, 40)
	c.Clear(Background)
	c.SetCaption("t=1.00s")

	lit := 0
	img := c.Image()
	for y := 0; y < 20; y++ {
		for x := 0; x < 80; x++ {
			if img.RGBAAt(x, y) != Background {
				lit++
			}
		}
	}
	assert.Greater(t, lit, 0)
}

func TestRecorderSavesDueFrames(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "run")
	r := NewRecorder(dir, 3, 100, 80)
	w := testWorld(t)

	for frame := uint64(0); frame < 7; frame++ {
		DrawWorld(r, w)
		require.NoError(t, r.Capture(frame))
	}

	saved := r.Saved()
	require.Equal(t, []string{
		filepath.Join(dir, "frame_000000.png"),
		filepath.Join(dir, "frame_000003.png"),
		filepath.Join(dir, "frame_000006.png"),
	}, saved)

	f, err := os.Open(saved[0])
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, 100, img.Bounds().Dx())
	assert.Equal(t, 80, img.Bounds().Dy())
}
