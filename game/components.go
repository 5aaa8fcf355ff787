// Package game holds the kingfisher simulation: its components, the movement
// and wind systems, the bird state machine and the World that ties them to a
// camera and viewport. It has no rendering or input dependencies.
package game

import "github.com/plus3/kingfisher/ecs"

// Position is an entity's location in world units, y pointing up.
type Position struct {
	X, Y float64
}

// Velocity is in world units per second.
type Velocity struct {
	X, Y float64
}

// StaticPosition anchors scenery. Nothing writes to it after spawn.
type StaticPosition struct {
	X, Y float64
}

// Wind opts an entity into WindMovementSystem. The gust applied to the
// entity at time t is Amplitude * sin(2π * Frequency * t + Phase).
type Wind struct {
	Amplitude float64
	Frequency float64
	Phase     float64
}

// RegisterComponents registers every component type of this package.
func RegisterComponents(registry *ecs.ComponentRegistry) {
	ecs.RegisterComponent[Position](registry)
	ecs.RegisterComponent[Velocity](registry)
	ecs.RegisterComponent[StaticPosition](registry)
	ecs.RegisterComponent[BirdState](registry)
	ecs.RegisterComponent[Wind](registry)
}
