package tui

import (
	"context"
	"fmt"
	"image/color"
	"time"

	"air-track/internal/logger"
	"air-track/internal/physics"
	"air-track/internal/session"

	"github.com/gdamore/tcell/v2"
)

const (
	blockRune = '█'
	// maxDt caps the wall-clock step after a stall (e.g. terminal suspended with Ctrl-Z).
	maxDt = 0.25
)

// Canvas draws window-pixel rectangles onto terminal cells. Row 0 carries the caption.
type Canvas struct {
	screen   tcell.Screen
	widthPx  int
	heightPx int
	bg       tcell.Style
}

// NewCanvas maps a widthPx × heightPx window onto the whole screen.
func NewCanvas(screen tcell.Screen, widthPx, heightPx int) *Canvas {
	return &Canvas{
		screen:   screen,
		widthPx:  widthPx,
		heightPx: heightPx,
		bg:       tcell.StyleDefault.Background(tcell.ColorBlack),
	}
}

func toTcell(c color.RGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

func (c *Canvas) Clear(col color.RGBA) {
	c.bg = tcell.StyleDefault.Background(toTcell(col)).Foreground(tcell.ColorWhite)
	cols, rows := c.screen.Size()
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			c.screen.SetContent(x, y, ' ', nil, c.bg)
		}
	}
}

// cells converts a pixel span [p, p+n) to a cell span, at least one cell wide.
func cells(p, n, px, count int) (int, int) {
	lo := p * count / px
	hi := ((p+n)*count + px - 1) / px
	if hi <= lo {
		hi = lo + 1
	}
	return max(lo, 0), min(hi, count)
}

func (c *Canvas) FillRect(r physics.Rect, col color.RGBA) {
	cols, rows := c.screen.Size()
	x0, x1 := cells(r.X, r.W, c.widthPx, cols)
	y0, y1 := cells(r.Y, r.H, c.heightPx, rows)
	style := c.bg.Foreground(toTcell(col))
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			c.screen.SetContent(x, y, blockRune, nil, style)
		}
	}
}

// SetCaption writes text on the first row, truncated to the screen width.
func (c *Canvas) SetCaption(text string) {
	cols, _ := c.screen.Size()
	x := 0
	for _, r := range text {
		if x >= cols {
			break
		}
		c.screen.SetContent(x, 0, r, nil, c.bg)
		x++
	}
}

// Driver runs a session in the terminal. Keys: q/Esc/Ctrl-C quit, space pause, r reset.
type Driver struct {
	screen tcell.Screen
	sess   *session.Session
	canvas *Canvas
	log    *logger.Logger
	fps    int
}

// NewDriver prepares a driver for an initialized screen. widthPx/heightPx is the
// window size the scene was laid out for.
func NewDriver(screen tcell.Screen, sess *session.Session, widthPx, heightPx, fps int, log *logger.Logger) *Driver {
	if log == nil {
		log = logger.Nop()
	}
	if fps <= 0 {
		fps = 60
	}
	return &Driver{
		screen: screen,
		sess:   sess,
		canvas: NewCanvas(screen, widthPx, heightPx),
		log:    log,
		fps:    fps,
	}
}

// handleEvent applies one input event. Returns false when the user asked to quit.
func (d *Driver) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
			return false
		}
		if ev.Key() != tcell.KeyRune {
			return true
		}
		switch ev.Rune() {
		case 'q':
			return false
		case ' ':
			d.sess.SetPaused(!d.sess.Paused())
		case 'r':
			if err := d.sess.Reset(); err != nil {
				d.log.Errorf("reset: %v", err)
			}
		}
	case *tcell.EventResize:
		d.screen.Sync()
	}
	return true
}

// Run loops until ctx is done or the user quits. Input is read on its own goroutine and
// handed over a channel; the session is only touched from this goroutine.
func (d *Driver) Run(ctx context.Context) error {
	ticker := time.NewTicker(time.Second / time.Duration(d.fps))
	defer ticker.Stop()

	done := make(chan struct{})
	defer close(done)
	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := d.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()

	clock := session.NewWallClock(maxDt)
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-events:
			if !d.handleEvent(ev) {
				d.log.Infof("quit at t=%.3fs", d.sess.World.Stats().Elapsed)
				return nil
			}
		case <-ticker.C:
			if err := d.sess.Frame(clock.Tick(), d.canvas); err != nil {
				return fmt.Errorf("tui frame: %w", err)
			}
			d.screen.Show()
		}
	}
}
