package debugui

import "github.com/plus3/kingfisher/ecs"

// RegisterComponents registers the overlay's component and singleton types.
func RegisterComponents(registry *ecs.ComponentRegistry) {
	ecs.RegisterComponent[ImguiItem](registry)
	ecs.RegisterComponent[ImguiInputState](registry)
	ecs.RegisterComponent[EntityBrowserComponent](registry)
	ecs.RegisterComponent[ComponentInspectorComponent](registry)
	ecs.RegisterComponent[PerformanceStatsComponent](registry)
	ecs.RegisterComponent[FrameTimer](registry)
}

// SpawnDebugUI adds the overlay panels to the scheduler's storage and
// registers the systems that draw them. The component types must already be
// registered with RegisterComponents.
func SpawnDebugUI(scheduler *ecs.Scheduler) {
	storage := scheduler.Storage()
	ecs.NewSingleton(storage, ImguiInputState{})

	storage.Spawn(NewEntityBrowserComponent(200), NewComponentInspectorComponent())
	storage.Spawn(NewPerformanceStatsComponent(120), NewFrameTimer())

	scheduler.Register(&DebugPanelSystem{scheduler: scheduler})
	scheduler.Register(&ImguiSystem{})
}

// DebugPanelSystem queues the built-in panels for rendering.
type DebugPanelSystem struct {
	Inspectors ecs.Query[struct {
		*EntityBrowserComponent
		*ComponentInspectorComponent
	}]
	Stats ecs.Query[struct {
		*PerformanceStatsComponent
		*FrameTimer
	}]

	scheduler *ecs.Scheduler
}

func (d *DebugPanelSystem) Execute(frame *ecs.UpdateFrame) {
	storage := frame.Storage

	for panel := range d.Inspectors.Values() {
		frame.Commands.Defer(func() {
			panel.EntityBrowserComponent.Render(storage)
			panel.ComponentInspectorComponent.Render(storage, panel.EntityBrowserComponent.Selected())
		})
	}

	for panel := range d.Stats.Values() {
		dt := panel.FrameTimer.GetDeltaTime()
		frame.Commands.Defer(func() {
			panel.PerformanceStatsComponent.Render(storage, d.scheduler.GetStats(), dt)
		})
	}
}
