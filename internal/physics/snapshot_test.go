package physics

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshotRestore(t *testing.T) {
	w := buildScene(t)
	for i := 0; i < 100; i++ {
		require.NoError(t, w.Step(0.0025))
	}

	snap, err := w.Snapshot()
	require.NoError(t, err)
	require.Len(t, snap.Bodies, 3)
	for i, b := range w.Bodies {
		assert.Equal(t, b.ID(), snap.Bodies[i].ID)
		assert.Equal(t, b.Center, snap.Bodies[i].Center)
		assert.Equal(t, b.Velocity, snap.Bodies[i].Velocity)
	}
	want := make([]mgl64.Vec2, len(w.Bodies))
	for i, b := range w.Bodies {
		want[i] = b.Center
	}

	for i := 0; i < 500; i++ {
		require.NoError(t, w.Step(0.0025))
	}
	require.NoError(t, w.SetGravity(1))
	assert.NotEqual(t, want[0], w.Bodies[0].Center)
	// Stepping must not reach into the snapshot.
	assert.Equal(t, want[0], snap.Bodies[0].Center)

	require.NoError(t, w.Restore(snap))
	for i, b := range w.Bodies {
		assert.Equal(t, want[i], b.Center)
	}
	assert.Equal(t, 9.8, w.Gravity())
	assert.Equal(t, uint64(100), w.Stats().Frames)
}

func TestRestoreKeepsLaterBodies(t *testing.T) {
	w := newTestWorld(t, 0, 0.9, Mode{})
	a := mustBody(t, w, BodySpec{LeftPx: 100, TopPx: 100, WidthPx: 10, HeightPx: 10, Velocity: mgl64.Vec2{1, 0}})
	snap, err := w.Snapshot()
	require.NoError(t, err)

	b := mustBody(t, w, BodySpec{LeftPx: 500, TopPx: 500, WidthPx: 10, HeightPx: 10, Velocity: mgl64.Vec2{0, 1}})
	require.NoError(t, w.Step(0.1))
	bCenter := b.Center

	require.NoError(t, w.Restore(snap))
	assert.InDelta(t, 1.05, a.Center.X(), eps)
	assert.Equal(t, bCenter, b.Center)
	assert.Len(t, w.Bodies, 2)
}

func TestRestoreFailureLeavesWorldUntouched(t *testing.T) {
	w := newTestWorld(t, 2, 0.9, Mode{})
	a := mustBody(t, w, BodySpec{LeftPx: 100, TopPx: 100, WidthPx: 10, HeightPx: 10, Velocity: mgl64.Vec2{1, 0}})
	require.NoError(t, w.Step(0.1))
	center, velocity, stats := a.Center, a.Velocity, w.Stats()

	for name, snap := range map[string]Snapshot{
		"unknown body": {Gravity: 1, Restitution: 0.5, Bodies: []BodyState{
			{ID: a.ID(), Center: mgl64.Vec2{5, 5}},
			{ID: 7},
		}},
		"bad gravity":     {Gravity: math.NaN(), Restitution: 0.5, Bodies: []BodyState{{ID: a.ID()}}},
		"bad restitution": {Gravity: 1, Restitution: 3, Bodies: []BodyState{{ID: a.ID()}}},
	} {
		t.Run(name, func(t *testing.T) {
			assert.ErrorIs(t, w.Restore(snap), ErrInvalidArgument)
			assert.Equal(t, 2.0, w.Gravity())
			assert.Equal(t, 0.9, w.Restitution())
			assert.Equal(t, center, a.Center)
			assert.Equal(t, velocity, a.Velocity)
			assert.Equal(t, stats, w.Stats())
		})
	}
}
