package graphics

import (
	"image/color"

	"air-track/internal/physics"

	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// maxDt caps one frame's time step, e.g. after the window was dragged or the process stalled.
const maxDt float32 = 0.25

// captionEvery is how many frames pass between window title updates.
const captionEvery = 40

// Options for the window driver.
type Options struct {
	Width     int
	Height    int
	Title     string
	TargetFPS int
}

// Canvas draws with raylib. Only valid between BeginDrawing and EndDrawing, i.e. inside Run's frame callback.
type Canvas struct {
	frames  uint64
	caption string
}

func (c *Canvas) Clear(col color.RGBA) {
	rl.ClearBackground(col)
}

func (c *Canvas) FillRect(r physics.Rect, col color.RGBA) {
	rl.DrawRectangle(int32(r.X), int32(r.Y), int32(r.W), int32(r.H), col)
}

// SetCaption updates the window title every captionEvery frames.
func (c *Canvas) SetCaption(text string) {
	c.frames++
	if text == c.caption || (c.caption != "" && c.frames%captionEvery != 0) {
		return
	}
	c.caption = text
	rl.SetWindowTitle(text)
}

// FrameTime returns the last frame's duration in seconds, never negative or NaN and at most maxDt.
func FrameTime() float64 {
	dt := rl.GetFrameTime()
	if math32.IsNaN(dt) || dt < 0 {
		return 0
	}
	return float64(math32.Min(dt, maxDt))
}

// Run opens the window and runs the main loop until the window is closed or frame returns an error.
// Each frame: update (input), then BeginDrawing, frame(dt, canvas) (step + draw), overlay, EndDrawing.
// ESC is reserved for the console, so it does not close the window.
func Run(opts Options, update func(), frame func(dt float64, c *Canvas) error, overlay func()) error {
	rl.InitWindow(int32(opts.Width), int32(opts.Height), opts.Title)
	defer rl.CloseWindow()

	rl.SetExitKey(rl.KeyNull)
	rl.SetTargetFPS(int32(opts.TargetFPS))

	canvas := &Canvas{}
	for !rl.WindowShouldClose() {
		if update != nil {
			update()
		}

		rl.BeginDrawing()
		err := frame(FrameTime(), canvas)
		if err == nil && overlay != nil {
			overlay()
		}
		rl.EndDrawing()
		if err != nil {
			return err
		}
	}
	return nil
}
