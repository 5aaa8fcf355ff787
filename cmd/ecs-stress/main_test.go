package main

import (
	"math/rand/v2"
	"strings"
	"testing"
	"time"

	"github.com/plus3/kingfisher/ecs"
	"github.com/plus3/kingfisher/game"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPopulate(t *testing.T) {
	registry := ecs.NewComponentRegistry()
	game.RegisterComponents(registry)
	storage := ecs.NewStorage(registry)

	populate(storage, 30, 5, rand.New(rand.NewPCG(1, 1)))

	stats := storage.CollectStats()
	assert.Equal(t, 35, stats.TotalEntityCount)
	assert.Equal(t, 2, stats.ArchetypeCount)

	windy := ecs.NewView[struct {
		*game.Position
		*game.Wind
	}](storage)
	n := 0
	for item := range windy.Values() {
		assert.Greater(t, item.Wind.Amplitude, 0.0)
		n++
	}
	assert.Equal(t, 30, n)
}

func TestStatsFinalize(t *testing.T) {
	s := Stats{Samples: []time.Duration{3 * time.Millisecond, time.Millisecond, 2 * time.Millisecond}}
	s.Finalize()

	assert.Equal(t, time.Millisecond, s.Min)
	assert.Equal(t, 3*time.Millisecond, s.Max)
	assert.Equal(t, 2*time.Millisecond, s.Avg)

	empty := Stats{}
	empty.Finalize()
	assert.Zero(t, empty.Avg)
}

func TestReportUsesSchedulerStats(t *testing.T) {
	registry := ecs.NewComponentRegistry()
	game.RegisterComponents(registry)
	storage := ecs.NewStorage(registry)
	scheduler := ecs.NewScheduler(storage)
	scheduler.Register(&game.MovementSystem{})
	populate(storage, 5, 0, rand.New(rand.NewPCG(2, 2)))

	for range 3 {
		scheduler.Once(1.0 / 60)
	}

	report := &Report{Systems: scheduler.GetStats().Systems}
	require.Len(t, report.Systems, 1)
	sys := report.Systems[0]

	var out strings.Builder
	require.NoError(t, report.Generate(&out))
	assert.Contains(t, out.String(), "| MovementSystem | 3 | "+sys.AvgDuration.String()+" |")
}

func TestReportGenerate(t *testing.T) {
	report := &Report{
		Duration:     time.Second,
		Birds:        10,
		Statics:      2,
		TotalUpdates: 4,
		Systems: []ecs.SystemStats{
			{Name: "MovementSystem", ExecutionCount: 4, AvgDuration: 2 * time.Microsecond},
		},
	}

	var out strings.Builder
	require.NoError(t, report.Generate(&out))

	text := out.String()
	assert.Contains(t, text, "**Wind Birds:** 10")
	assert.Contains(t, text, "| MovementSystem | 4 | "+(2*time.Microsecond).String()+" |")
	assert.NotContains(t, text, "GC Pause Durations")
}
