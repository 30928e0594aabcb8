package debug

import (
	"fmt"

	"air-track/internal/physics"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	fontSize   = 18
	padding    = 10
	lineHeight = fontSize + 4
	// updateInterval: only refresh the text every N frames to reduce allocations.
	updateInterval = 30
)

// Debug draws optional overlays in the top-right corner. All overlays are off by default.
type Debug struct {
	ShowFPS   bool
	ShowStats bool

	world      *physics.World
	frameCount uint32
	lastFPS    string
	lastStats  []string
}

// New returns an overlay reading counters from w.
func New(w *physics.World) *Debug {
	return &Debug{world: w}
}

// Toggle flips both overlays together (F1).
func (d *Debug) Toggle() {
	on := !(d.ShowFPS || d.ShowStats)
	d.ShowFPS, d.ShowStats = on, on
}

// statsLines formats the simulation counters shown under the FPS line.
func statsLines(w *physics.World) []string {
	st := w.Stats()
	return []string{
		fmt.Sprintf("t: %.2f s", st.Elapsed),
		fmt.Sprintf("frames: %d", st.Frames),
		fmt.Sprintf("wall hits: %d", st.WallHits),
		fmt.Sprintf("bodies: %d", len(w.Bodies)),
		fmt.Sprintf("g: %.2f  e: %.2f", w.Gravity(), w.Restitution()),
	}
}

// Draw renders the enabled overlays. Call after the world and before the console.
func (d *Debug) Draw() {
	d.frameCount++
	update := d.frameCount%updateInterval == 0
	if d.ShowFPS && d.lastFPS == "" {
		update = true
	}
	if d.ShowStats && d.lastStats == nil {
		update = true
	}

	var lines []string
	if d.ShowFPS {
		if update {
			d.lastFPS = fmt.Sprintf("FPS: %d", rl.GetFPS())
		}
		lines = append(lines, d.lastFPS)
	}
	if d.ShowStats {
		if update {
			d.lastStats = statsLines(d.world)
		}
		lines = append(lines, d.lastStats...)
	}

	screenW := int32(rl.GetScreenWidth())
	y := int32(padding)
	for _, text := range lines {
		w := rl.MeasureText(text, fontSize)
		rl.DrawText(text, screenW-w-padding, y, fontSize, rl.Green)
		y += lineHeight
	}
}
