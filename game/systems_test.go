package game

import (
	"testing"

	"github.com/plus3/kingfisher/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestScheduler(t *testing.T) (*ecs.Storage, *ecs.Scheduler) {
	t.Helper()
	registry := ecs.NewComponentRegistry()
	RegisterComponents(registry)
	storage := ecs.NewStorage(registry)
	scheduler := ecs.NewScheduler(storage)
	scheduler.Register(&MovementSystem{})
	scheduler.Register(&WindMovementSystem{})
	return storage, scheduler
}

func TestMovementIntegratesVelocity(t *testing.T) {
	storage, scheduler := newTestScheduler(t)

	cases := []struct {
		pos Position
		vel Velocity
		dt  float64
	}{
		{Position{0, 0}, Velocity{10, 20}, 0.5},
		{Position{220, 340}, Velocity{-100, 100}, 0.25},
		{Position{-3, 7}, Velocity{0, -8}, 2},
	}

	ids := make([]ecs.EntityId, len(cases))
	for i, c := range cases {
		ids[i] = storage.Spawn(c.pos, c.vel)
	}

	// Each case gets its own tick so every entity sees every dt.
	want := make([]Position, len(cases))
	for i := range cases {
		want[i] = cases[i].pos
	}
	for _, c := range cases {
		scheduler.Once(c.dt)
		for i := range cases {
			want[i].X += cases[i].vel.X * c.dt
			want[i].Y += cases[i].vel.Y * c.dt
		}
	}

	for i, id := range ids {
		got := ecs.ReadComponent[Position](storage, id)
		require.NotNil(t, got)
		assert.InDelta(t, want[i].X, got.X, 1e-9, "case %d x", i)
		assert.InDelta(t, want[i].Y, got.Y, 1e-9, "case %d y", i)
	}
}

func TestMovementExactSingleStep(t *testing.T) {
	storage, scheduler := newTestScheduler(t)

	id := storage.Spawn(Position{X: 1.5, Y: -2}, Velocity{X: 4, Y: 8})
	scheduler.Once(0.25)

	assert.Equal(t, Position{X: 2.5, Y: 0}, *ecs.ReadComponent[Position](storage, id))
}

func TestMovementSkipsEntitiesWithoutVelocity(t *testing.T) {
	storage, scheduler := newTestScheduler(t)

	id := storage.Spawn(Position{X: 5, Y: 6})
	scheduler.Once(1)

	assert.Equal(t, Position{X: 5, Y: 6}, *ecs.ReadComponent[Position](storage, id))
}

func TestStaticPositionNeverChanges(t *testing.T) {
	storage, scheduler := newTestScheduler(t)

	anchorOnly := storage.Spawn(StaticPosition{X: 0, Y: 340})
	branch := storage.Spawn(Position{X: 0, Y: 340}, StaticPosition{X: 0, Y: 340})
	storage.Spawn(Position{}, Velocity{X: 1}, Wind{Amplitude: 50, Frequency: 1})

	for range 100 {
		scheduler.Once(1.0 / 60)
	}

	assert.Equal(t, StaticPosition{X: 0, Y: 340}, *ecs.ReadComponent[StaticPosition](storage, anchorOnly))
	assert.Equal(t, StaticPosition{X: 0, Y: 340}, *ecs.ReadComponent[StaticPosition](storage, branch))
	assert.Equal(t, Position{X: 0, Y: 340}, *ecs.ReadComponent[Position](storage, branch))
}

func TestZeroDeltaIsNoOp(t *testing.T) {
	storage, scheduler := newTestScheduler(t)

	plain := storage.Spawn(Position{X: 1, Y: 2}, Velocity{X: 3, Y: 4})
	windy := storage.Spawn(Position{X: 5, Y: 6}, Velocity{X: 7, Y: 8}, Wind{Amplitude: 10, Frequency: 1, Phase: 0.3})

	for range 5 {
		scheduler.Once(0)
	}

	assert.Equal(t, Position{X: 1, Y: 2}, *ecs.ReadComponent[Position](storage, plain))
	assert.Equal(t, Position{X: 5, Y: 6}, *ecs.ReadComponent[Position](storage, windy))
	assert.Equal(t, Velocity{X: 7, Y: 8}, *ecs.ReadComponent[Velocity](storage, windy))
}

func TestWindOnlyTouchesWindAffectedEntities(t *testing.T) {
	storage, scheduler := newTestScheduler(t)

	calm := storage.Spawn(Position{}, Velocity{X: 1})
	windy := storage.Spawn(Position{}, Velocity{X: 1}, Wind{Amplitude: 10, Frequency: 0.25})

	scheduler.Once(0.5)

	assert.Equal(t, 1.0, ecs.ReadComponent[Velocity](storage, calm).X)
	// g(0.5) - g(0) = 10 * sin(π/4)
	assert.InDelta(t, 1+10*0.7071067811865476, ecs.ReadComponent[Velocity](storage, windy).X, 1e-9)
}

func TestWindTakesEffectNextTick(t *testing.T) {
	storage, scheduler := newTestScheduler(t)

	id := storage.Spawn(Position{}, Velocity{X: 2}, Wind{Amplitude: 10, Frequency: 0.25})

	scheduler.Once(1)
	// Movement ran first with the unperturbed velocity.
	assert.InDelta(t, 2.0, ecs.ReadComponent[Position](storage, id).X, 1e-9)

	vel := ecs.ReadComponent[Velocity](storage, id).X
	scheduler.Once(1)
	assert.InDelta(t, 2.0+vel, ecs.ReadComponent[Position](storage, id).X, 1e-9)
}

func TestWindIsDeterministicAndBounded(t *testing.T) {
	run := func() []float64 {
		storage, scheduler := newTestScheduler(t)
		id := storage.Spawn(Position{}, Velocity{X: 5}, Wind{Amplitude: 30, Frequency: 0.7, Phase: 1.1})
		var xs []float64
		for range 600 {
			scheduler.Once(1.0 / 60)
			vel := ecs.ReadComponent[Velocity](storage, id)
			assert.LessOrEqual(t, vel.X, 5+2*30.0+1e-9)
			assert.GreaterOrEqual(t, vel.X, 5-2*30.0-1e-9)
			xs = append(xs, ecs.ReadComponent[Position](storage, id).X)
		}
		return xs
	}

	assert.Equal(t, run(), run())
}

func TestMovementRunsBeforeWind(t *testing.T) {
	_, scheduler := newTestScheduler(t)

	scheduler.Once(1.0 / 60)
	scheduler.Once(1.0 / 60)

	stats := scheduler.GetStats()
	require.Len(t, stats.Systems, 2)
	movement, wind := stats.Systems[0], stats.Systems[1]

	assert.Equal(t, "MovementSystem", movement.Name)
	assert.Equal(t, "WindMovementSystem", wind.Name)
	assert.Less(t, movement.LastSequence, wind.LastSequence)
	assert.False(t, movement.LastStarted.After(wind.LastStarted))
}
