package tui

import (
	"image/color"
	"testing"

	"air-track/internal/physics"
	"air-track/internal/scene"
	"air-track/internal/session"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cell struct {
	r     rune
	style tcell.Style
}

// mockScreen is a minimal tcell.Screen that records SetContent.
type mockScreen struct {
	tcell.Screen
	width, height int
	cells         map[[2]int]cell
	synced        int
}

func newMockScreen(w, h int) *mockScreen {
	return &mockScreen{width: w, height: h, cells: make(map[[2]int]cell)}
}

func (m *mockScreen) Size() (int, int) { return m.width, m.height }
func (m *mockScreen) Show()            {}
func (m *mockScreen) Sync()            { m.synced++ }
func (m *mockScreen) SetContent(x, y int, mainc rune, combc []rune, style tcell.Style) {
	m.cells[[2]int{x, y}] = cell{mainc, style}
}

func (m *mockScreen) runeAt(x, y int) rune { return m.cells[[2]int{x, y}].r }

func TestCells(t *testing.T) {
	lo, hi := cells(10, 10, 100, 20)
	assert.Equal(t, 2, lo)
	assert.Equal(t, 4, hi)

	// Thinner than a cell still shows up.
	lo, hi = cells(50, 1, 1000, 10)
	assert.Equal(t, 0, lo)
	assert.Equal(t, 1, hi)

	// Clipped to the screen.
	lo, hi = cells(-20, 40, 100, 10)
	assert.Equal(t, 0, lo)
	assert.Equal(t, 2, hi)
	lo, hi = cells(90, 40, 100, 10)
	assert.Equal(t, 9, lo)
	assert.Equal(t, 10, hi)
}

func TestCanvasDrawsBlocks(t *testing.T) {
	scr := newMockScreen(20, 10)
	c := NewCanvas(scr, 100, 50)

	c.Clear(color.RGBA{0, 0, 0, 255})
	assert.Len(t, scr.cells, 200)
	assert.Equal(t, ' ', scr.runeAt(5, 5))

	c.FillRect(physics.Rect{X: 10, Y: 10, W: 10, H: 10}, color.RGBA{255, 0, 0, 255})
	assert.Equal(t, blockRune, scr.runeAt(2, 2))
	assert.Equal(t, blockRune, scr.runeAt(3, 3))
	assert.Equal(t, ' ', scr.runeAt(4, 4))
	fg, _, _ := scr.cells[[2]int{2, 2}].style.Decompose()
	assert.Equal(t, tcell.NewRGBColor(255, 0, 0), fg)

	c.SetCaption("hello world, this caption is too long")
	assert.Equal(t, 'h', scr.runeAt(0, 0))
	assert.Equal(t, 'o', scr.runeAt(4, 0))
	_, ok := scr.cells[[2]int{20, 0}]
	assert.False(t, ok)
}

func newDriver(t *testing.T) (*Driver, *session.Session, *mockScreen) {
	t.Helper()
	w, err := scene.Build(scene.Default())
	require.NoError(t, err)
	s, err := session.New("air track", w, nil)
	require.NoError(t, err)
	scr := newMockScreen(80, 24)
	return NewDriver(scr, s, 1280, 720, 0, nil), s, scr
}

func TestHandleEvent(t *testing.T) {
	d, s, scr := newDriver(t)

	assert.True(t, d.handleEvent(tcell.NewEventKey(tcell.KeyRune, ' ', tcell.ModNone)))
	assert.True(t, s.Paused())

	require.NoError(t, s.Frame(0, d.canvas))
	s.SetPaused(false)
	require.NoError(t, s.Frame(0.5, d.canvas))
	assert.True(t, d.handleEvent(tcell.NewEventKey(tcell.KeyRune, 'r', tcell.ModNone)))
	assert.Zero(t, s.World.Stats().Frames)

	assert.True(t, d.handleEvent(tcell.NewEventResize(100, 30)))
	assert.Equal(t, 1, scr.synced)

	assert.False(t, d.handleEvent(tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone)))
	assert.False(t, d.handleEvent(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone)))
	assert.False(t, d.handleEvent(tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl)))
	assert.Equal(t, 60, d.fps)
}

func TestSessionFrameOnTerminal(t *testing.T) {
	d, s, scr := newDriver(t)
	require.NoError(t, s.Frame(0.01, d.canvas))

	// Default body sits near x=450/1280 of the width.
	found := false
	for pos, c := range scr.cells {
		if c.r == blockRune && pos[1] > 0 {
			assert.InDelta(t, 450*80/1280, pos[0], 2)
			found = true
		}
	}
	assert.True(t, found)
	assert.Equal(t, 'a', scr.runeAt(0, 0))
}
