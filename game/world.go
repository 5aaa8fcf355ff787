package game

import "github.com/plus3/kingfisher/ecs"

// Options configures a World.
type Options struct {
	PlayerStart  Position
	BranchAnchor StaticPosition
	Wind         Wind
	Tuning       Tuning
	CameraLerp   float64
	CameraOffset float64
	Viewport     Viewport
}

// DefaultOptions reproduces the original scene: the bird perched at
// (220, 340) next to a branch at (0, 340) in a 640x480 view.
func DefaultOptions() Options {
	return Options{
		PlayerStart:  Position{X: 220, Y: 340},
		BranchAnchor: StaticPosition{X: 0, Y: 340},
		Wind:         Wind{Amplitude: 20, Frequency: 0.25},
		Tuning:       DefaultTuning(),
		CameraLerp:   0.6,
		CameraOffset: 50,
		Viewport:     Viewport{Width: 640, Height: 480},
	}
}

// Player is the component set of the bird.
type Player struct {
	*Position
	*Velocity
	*BirdState
}

// Branch is the component set of the perch.
type Branch struct {
	*Position
	*StaticPosition
}

// World is the explicit context passed through update and draw: the entity
// storage, its systems, and the camera looking at it.
type World struct {
	Camera   Camera
	Viewport Viewport

	storage   *ecs.Storage
	scheduler *ecs.Scheduler
	tuning    Tuning

	player     ecs.EntityId
	branch     ecs.EntityId
	playerView *ecs.View[Player]
	branchView *ecs.View[Branch]

	startX   float64
	distance float64
}

// NewWorld spawns the bird and the branch and registers MovementSystem then
// WindMovementSystem.
func NewWorld(opts Options) *World {
	registry := ecs.NewComponentRegistry()
	RegisterComponents(registry)
	storage := ecs.NewStorage(registry)

	w := &World{
		// The camera starts centred on the viewport, so world (0, 0) is the
		// bottom-left corner of the first frame.
		Camera: Camera{
			X:       opts.Viewport.Width / 2,
			Y:       opts.Viewport.Height / 2,
			Lerp:    opts.CameraLerp,
			OffsetX: opts.CameraOffset,
		},
		Viewport:   opts.Viewport,
		storage:    storage,
		scheduler:  ecs.NewScheduler(storage),
		tuning:     opts.Tuning,
		playerView: ecs.NewView[Player](storage),
		branchView: ecs.NewView[Branch](storage),
		startX:     opts.PlayerStart.X,
	}

	w.player = storage.Spawn(
		opts.PlayerStart,
		Velocity{},
		BirdState{State: Initial},
		opts.Wind,
	)
	w.branch = storage.Spawn(
		Position{X: opts.BranchAnchor.X, Y: opts.BranchAnchor.Y},
		opts.BranchAnchor,
	)

	w.scheduler.Register(&MovementSystem{})
	w.scheduler.Register(&WindMovementSystem{})
	return w
}

// Step advances the world by one frame: apply this frame's input, run the
// systems, then move the camera after the bird.
func (w *World) Step(dt float64, controls Controls) {
	player := w.Player()
	w.tuning.Apply(controls, player.Velocity, player.BirdState)

	w.scheduler.Once(dt)

	w.Camera.Follow(*player.Position, dt)
	w.distance = max(w.distance, player.Position.X-w.startX)
}

// Player returns live pointers to the bird's components.
func (w *World) Player() Player {
	return *w.playerView.Get(w.player)
}

// Branch returns live pointers to the branch's components.
func (w *World) Branch() Branch {
	return *w.branchView.Get(w.branch)
}

// Distance is the furthest the bird has flown right of its perch.
func (w *World) Distance() float64 {
	return w.distance
}

// Storage exposes the entity storage, for overlays and tools.
func (w *World) Storage() *ecs.Storage {
	return w.storage
}

// Scheduler exposes the system scheduler. Systems registered here run after
// the movement and wind systems.
func (w *World) Scheduler() *ecs.Scheduler {
	return w.scheduler
}
