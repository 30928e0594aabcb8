package mapgen

import (
	"time"

	"air-track/internal/scene"

	"github.com/chewxy/math32"
)

// ScatterOptions controls procedural body placement.
// Count bodies are laid out on a grid covering the window, one per cell, and each cell's
// offset, size, color and velocity come from fractal value noise sampled at the cell.
// Seed == 0 uses a time-based seed. MinSize/MaxSize bound the body width in pixels; the
// height keeps the default body's aspect. MaxSpeed is in units/s.
type ScatterOptions struct {
	Count    int
	Seed     int64
	MinSize  int
	MaxSize  int
	MaxSpeed float64

	Octaves    int
	Frequency  float32
	Lacunarity float32
	Gain       float32
}

// DefaultScatterOptions returns a sane default configuration.
func DefaultScatterOptions() ScatterOptions {
	return ScatterOptions{
		Count:      8,
		MinSize:    12,
		MaxSize:    40,
		MaxSpeed:   0.3,
		Octaves:    3,
		Frequency:  0.6,
		Lacunarity: 2.0,
		Gain:       0.5,
	}
}

// aspect is height/width of the default 26×98 body.
const aspect = 98.0 / 26.0

var palette = []string{"white", "red", "green", "blue", "yellow", "orange", "purple", "cyan"}

// noise channels; each gets its own seed so the samples are independent.
const (
	chanSize = iota
	chanX
	chanY
	chanAngle
	chanSpeed
	chanColor
)

// Scatter returns opts.Count bodies that fit inside a width×height pixel window.
// Count is capped at MaxCount(width, height). The same seed and window always give
// the same bodies.
func Scatter(width, height int, opts ScatterOptions) []scene.BodyDef {
	if opts.Count <= 0 || width <= 0 || height <= 0 {
		return nil
	}
	def := DefaultScatterOptions()
	if opts.MinSize <= 0 {
		opts.MinSize = def.MinSize
	}
	if opts.MaxSize < opts.MinSize {
		opts.MaxSize = opts.MinSize
	}
	if opts.MaxSpeed < 0 {
		opts.MaxSpeed = 0
	}
	if opts.Octaves <= 0 {
		opts.Octaves = def.Octaves
	}
	if opts.Frequency <= 0 {
		opts.Frequency = def.Frequency
	}
	if opts.Lacunarity <= 0 {
		opts.Lacunarity = def.Lacunarity
	}
	if opts.Gain <= 0 {
		opts.Gain = def.Gain
	}
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	opts.Count = min(opts.Count, MaxCount(width, height))
	cols, rows := grid(opts.Count, width, height)
	cellW := width / cols
	cellH := height / rows

	defs := make([]scene.BodyDef, 0, opts.Count)
	for i := 0; i < opts.Count; i++ {
		cx, cy := i%cols, i/cols
		sample := func(ch int32) float32 {
			h := fractalValueNoise2D(float32(cx)*opts.Frequency, float32(cy)*opts.Frequency, int32(seed)+ch*7919, opts.Octaves, opts.Lacunarity, opts.Gain)
			if !isFinite(h) {
				return 0
			}
			return math32.Min(math32.Max(h, 0), 1)
		}

		w := opts.MinSize + int(sample(chanSize)*float32(opts.MaxSize-opts.MinSize))
		h := int(math32.Round(float32(w) * aspect))
		// Keep each body inside its own cell.
		w = max(min(w, cellW), 1)
		h = max(min(h, cellH), 1)

		left := cx*cellW + int(sample(chanX)*float32(cellW-w))
		top := cy*cellH + int(sample(chanY)*float32(cellH-h))

		angle := sample(chanAngle) * 2 * math32.Pi
		speed := sample(chanSpeed) * float32(opts.MaxSpeed)
		color := palette[int(sample(chanColor)*float32(len(palette)))%len(palette)]

		defs = append(defs, scene.BodyDef{
			Color:    color,
			Left:     left,
			Top:      top,
			Width:    w,
			Height:   h,
			Density:  1,
			Velocity: [2]float64{float64(speed * math32.Cos(angle)), float64(speed * math32.Sin(angle))},
		})
	}
	return defs
}

// MaxCount is the most bodies Scatter can fit: one per pixel.
func MaxCount(width, height int) int {
	if width <= 0 || height <= 0 {
		return 0
	}
	return width * height
}

// grid picks a near-square layout of at least n cells, no more than width columns
// and height rows. n must be in [1, width*height].
func grid(n, width, height int) (cols, rows int) {
	cols = min(int(math32.Ceil(math32.Sqrt(float32(n)))), width)
	rows = (n + cols - 1) / cols
	if rows > height {
		cols = (n + height - 1) / height
		rows = (n + cols - 1) / cols
	}
	return cols, rows
}

// Apply appends the bodies requested by s.Scatter to s.Bodies. A nil Scatter is a no-op.
func Apply(s *scene.Scene) {
	if s.Scatter == nil {
		return
	}
	opts := DefaultScatterOptions()
	opts.Count = s.Scatter.Count
	opts.Seed = s.Scatter.Seed
	if s.Scatter.MaxSpeed > 0 {
		opts.MaxSpeed = s.Scatter.MaxSpeed
	}
	s.Bodies = append(s.Bodies, Scatter(s.Window.Width, s.Window.Height, opts)...)
}

// fractalValueNoise2D is simple fractal value noise: layered smooth value noise with
// configurable octaves, lacunarity, and gain. Output is in [0,1].
func fractalValueNoise2D(x, y float32, seed int32, octaves int, lacunarity, gain float32) float32 {
	var sum float32
	var amplitude float32 = 1
	var maxAmp float32
	freq := float32(1)

	for i := 0; i < octaves; i++ {
		sum += valueNoise2D(x*freq, y*freq, seed+int32(i)) * amplitude
		maxAmp += amplitude
		amplitude *= gain
		freq *= lacunarity
	}
	if maxAmp == 0 {
		return 0
	}
	return sum / maxAmp
}

// valueNoise2D is smooth value noise in [0,1] on a hashed integer lattice.
func valueNoise2D(x, y float32, seed int32) float32 {
	x0 := int32(math32.Floor(x))
	y0 := int32(math32.Floor(y))
	sx := smoothStep(x - float32(x0))
	sy := smoothStep(y - float32(y0))

	ix0 := lerp(hash2D(x0, y0, seed), hash2D(x0+1, y0, seed), sx)
	ix1 := lerp(hash2D(x0, y0+1, seed), hash2D(x0+1, y0+1, seed), sx)
	return lerp(ix0, ix1, sy)
}

// hash2D maps integer lattice coordinates to a deterministic pseudo-random float in [0,1].
func hash2D(x, y, seed int32) float32 {
	n := x*374761393 + y*668265263 + seed*362437
	n = (n ^ (n >> 13)) * 1274126177
	n = n ^ (n >> 16)
	const invMaxInt = 1.0 / 2147483647.0
	return float32(n&0x7fffffff) * float32(invMaxInt)
}

func lerp(a, b, t float32) float32 {
	return a + (b-a)*t
}

// smoothStep is cubic easing: 3t^2 - 2t^3.
func smoothStep(t float32) float32 {
	if t <= 0 {
		return 0
	}
	if t >= 1 {
		return 1
	}
	return t * t * (3 - 2*t)
}

func isFinite(f float32) bool {
	return !math32.IsNaN(f) && !math32.IsInf(f, 0)
}
