package debugui

import "github.com/plus3/kingfisher/ecs"

type EntityBrowserComponent struct {
	selected   ecs.EntityId
	filterText string
	maxRows    int
}

type ComponentInspectorComponent struct {
	selected ecs.EntityId
}

type PerformanceStatsComponent struct {
	frameHistory []float32
	frameIndex   int
	samples      int
}
