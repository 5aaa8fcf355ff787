package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWorldSpawnsScene(t *testing.T) {
	w := NewWorld(DefaultOptions())

	player := w.Player()
	require.NotNil(t, player.Position)
	assert.Equal(t, Position{X: 220, Y: 340}, *player.Position)
	assert.Equal(t, Velocity{}, *player.Velocity)
	assert.Equal(t, Initial, player.BirdState.State)

	branch := w.Branch()
	assert.Equal(t, Position{X: 0, Y: 340}, *branch.Position)
	assert.Equal(t, StaticPosition{X: 0, Y: 340}, *branch.StaticPosition)

	stats := w.Storage().CollectStats()
	assert.Equal(t, 2, stats.TotalEntityCount)
}

func TestWorldFlapSequence(t *testing.T) {
	w := NewWorld(DefaultOptions())
	dt := 1.0 / 60

	w.Step(dt, Controls{Flap: true})
	assert.Equal(t, Ascending, w.Player().BirdState.State)
	assert.Equal(t, 100.0, w.Player().Velocity.Y)
	assert.InDelta(t, 340+100*dt, w.Player().Position.Y, 1e-9)

	w.Player().Velocity.Y = 0
	w.Step(dt, Controls{Flap: true})
	assert.Equal(t, Ascending, w.Player().BirdState.State)
	assert.Equal(t, 100.0, w.Player().Velocity.Y)
}

func TestWorldZeroStepKeepsEverything(t *testing.T) {
	w := NewWorld(DefaultOptions())

	for range 10 {
		w.Step(0, Controls{})
	}

	assert.Equal(t, Position{X: 220, Y: 340}, *w.Player().Position)
	assert.Equal(t, Position{X: 0, Y: 340}, *w.Branch().Position)
	assert.Equal(t, 320.0, w.Camera.X)
	assert.Equal(t, 240.0, w.Camera.Y)
}

func TestPlayerVisibleOnFirstFrame(t *testing.T) {
	w := NewWorld(DefaultOptions())
	vp := w.Viewport

	inView := func() bool {
		p := w.Player().Position
		sx, sy := w.Camera.Project(vp, p.X, p.Y, 100)
		return sx >= 0 && sy >= 0 && sx+100 <= vp.Width && sy+100 <= vp.Height
	}

	sx, sy := w.Camera.Project(vp, 220, 340, 100)
	assert.Equal(t, 220.0, sx)
	assert.Equal(t, 40.0, sy)
	assert.True(t, inView())

	w.Step(1.0/60, Controls{})
	assert.True(t, inView())

	// World origin sits at the bottom-left corner before the camera moves.
	ox, oy := NewWorld(DefaultOptions()).Camera.Project(vp, 0, 0, 0)
	assert.Equal(t, 0.0, ox)
	assert.Equal(t, vp.Height, oy)
}

func TestWorldBranchStaysPut(t *testing.T) {
	w := NewWorld(DefaultOptions())

	w.Step(1.0/60, Controls{Right: true, Flap: true})
	for range 300 {
		w.Step(1.0/60, Controls{})
	}

	assert.Equal(t, Position{X: 0, Y: 340}, *w.Branch().Position)
	assert.Equal(t, StaticPosition{X: 0, Y: 340}, *w.Branch().StaticPosition)
}

func TestWorldDistance(t *testing.T) {
	opts := DefaultOptions()
	opts.Wind = Wind{}
	w := NewWorld(opts)

	w.Step(1, Controls{Right: true})
	assert.InDelta(t, 100, w.Distance(), 1e-9)

	w.Step(1, Controls{Left: true})
	w.Step(1, Controls{})
	assert.InDelta(t, 100, w.Distance(), 1e-9, "distance keeps the maximum")
}

func TestCameraFollowsPlayer(t *testing.T) {
	opts := DefaultOptions()
	opts.Wind = Wind{}
	w := NewWorld(opts)

	w.Step(0.5, Controls{})

	// Camera starts at the viewport centre and closes Lerp*dt of the gap.
	assert.InDelta(t, 320+(220-320+50)*0.6*0.5, w.Camera.X, 1e-9)
	assert.InDelta(t, 240+(340-240)*0.6*0.5, w.Camera.Y, 1e-9)
}
