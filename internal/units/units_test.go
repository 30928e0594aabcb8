package units

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRejectsBadScale(t *testing.T) {
	_, err := New(0, 1.5)
	require.ErrorIs(t, err, ErrInvalidScale)

	_, err = New(1280, 0)
	require.ErrorIs(t, err, ErrInvalidScale)

	_, err = New(-5, 1.5)
	require.ErrorIs(t, err, ErrInvalidScale)
}

func TestScaleFactorsAreReciprocal(t *testing.T) {
	c, err := New(1280, 1.5)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, c.PixelsPerUnit()*c.UnitsPerPixel(), 1e-12)
	assert.InDelta(t, 1.5, c.ToUnits(1280), 1e-12)
	assert.Equal(t, 1280, c.ToPixels(1.5))
}

func TestToPixelsRoundsToNearest(t *testing.T) {
	c, err := New(100, 1)
	require.NoError(t, err)
	assert.Equal(t, 12, c.ToPixels(0.124))
	assert.Equal(t, 13, c.ToPixels(0.126))
	assert.Equal(t, -13, c.ToPixels(-0.126))
	assert.Equal(t, 0, c.ToPixels(0))
}

func TestRoundTripWithinOnePixel(t *testing.T) {
	for _, tc := range []struct {
		px     int
		length float64
	}{
		{1280, 1.5},
		{720, 0.843},
		{1000, 3},
		{7, 100},
	} {
		c, err := New(tc.px, tc.length)
		require.NoError(t, err)
		for p := 0; p <= 4000; p++ {
			got := c.ToPixels(c.ToUnits(p))
			if got-p > 1 || p-got > 1 {
				t.Fatalf("scale %d/%v: round trip of %d gave %d", tc.px, tc.length, p, got)
			}
		}
	}
}
