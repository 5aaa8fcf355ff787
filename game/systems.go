package game

import (
	"math"

	"github.com/plus3/kingfisher/ecs"
)

// MovementSystem integrates velocity into position with a single Euler step.
// Entities missing either component are not visited.
type MovementSystem struct {
	Entities ecs.Query[struct {
		*Position
		*Velocity
	}]
}

func (s *MovementSystem) Execute(frame *ecs.UpdateFrame) {
	dt := frame.DeltaTime
	for e := range s.Entities.Values() {
		e.Position.X += e.Velocity.X * dt
		e.Position.Y += e.Velocity.Y * dt
	}
}

// WindMovementSystem pushes wind-affected entities sideways. Each tick adds
// the change in gust strength over [t, t+dt] to the horizontal velocity, so
// the perturbation oscillates around the entity's own speed instead of
// accumulating. Registered after MovementSystem, its effect shows up in
// positions from the next tick.
type WindMovementSystem struct {
	Entities ecs.Query[struct {
		*Position
		*Velocity
		*Wind
	}]

	// Elapsed is the simulated time seen by this system so far.
	Elapsed float64
}

func (s *WindMovementSystem) Execute(frame *ecs.UpdateFrame) {
	dt := frame.DeltaTime
	if dt == 0 {
		return
	}
	for e := range s.Entities.Values() {
		e.Velocity.X += e.Wind.Gust(s.Elapsed+dt) - e.Wind.Gust(s.Elapsed)
	}
	s.Elapsed += dt
}

// Gust returns the wind's horizontal contribution at time t.
func (w Wind) Gust(t float64) float64 {
	return w.Amplitude * math.Sin(2*math.Pi*w.Frequency*t+w.Phase)
}
