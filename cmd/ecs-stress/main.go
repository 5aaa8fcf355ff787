// Command ecs-stress runs the kingfisher movement and wind systems headless
// over many birds and prints a markdown performance report.
package main

import (
	"context"
	"flag"
	"fmt"
	"math"
	"math/rand/v2"
	"os"
	"runtime"
	"time"

	"github.com/plus3/kingfisher/ecs"
	"github.com/plus3/kingfisher/game"
	"go.uber.org/zap"
)

func main() {
	duration := flag.Duration("duration", 10*time.Second, "The total duration the test should run for.")
	birdCount := flag.Int("birds", 10000, "Number of wind-affected birds to spawn.")
	staticCount := flag.Int("statics", 1000, "Number of static scenery entities to spawn.")
	seed := flag.Uint64("seed", 1, "Seed for entity placement and wind parameters.")
	gcPauseMetrics := flag.Bool("gc-pause-metrics", false, "Enable detailed GC pause metrics in the report.")
	flag.Parse()

	log, err := zap.NewDevelopment()
	if err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	log.Info("starting ECS stress test")

	registry := ecs.NewComponentRegistry()
	game.RegisterComponents(registry)
	storage := ecs.NewStorage(registry)
	scheduler := ecs.NewScheduler(storage)
	scheduler.Register(&game.MovementSystem{})
	scheduler.Register(&game.WindMovementSystem{})

	populate(storage, *birdCount, *staticCount, rand.New(rand.NewPCG(*seed, *seed)))
	log.Info("population complete",
		zap.Int("birds", *birdCount),
		zap.Int("statics", *staticCount),
		zap.Int("archetypes", storage.CollectStats().ArchetypeCount))

	report := &Report{
		Duration:       *duration,
		Birds:          *birdCount,
		Statics:        *staticCount,
		GCPauseMetrics: *gcPauseMetrics,
	}

	runtime.ReadMemStats(&report.MemStatsStart)

	log.Info("running simulation", zap.Duration("duration", *duration))
	ctx, cancel := context.WithTimeout(context.Background(), *duration)
	defer cancel()

	startTime := time.Now()
	lastFrameTime := startTime

Loop:
	for {
		select {
		case <-ctx.Done():
			break Loop
		default:
			deltaTime := time.Since(lastFrameTime)
			lastFrameTime = time.Now()

			updateStart := time.Now()
			scheduler.Once(deltaTime.Seconds())
			report.UpdateTime.Samples = append(report.UpdateTime.Samples, time.Since(updateStart))
			report.TotalUpdates++
		}
	}

	report.TotalTime = time.Since(startTime)
	report.UpdateTime.Finalize()
	report.Systems = scheduler.GetStats().Systems
	runtime.ReadMemStats(&report.MemStatsEnd)

	log.Info("simulation finished", zap.Int64("updates", report.TotalUpdates))

	fmt.Println("\n\n--- Stress Test Report ---")
	if err := report.Generate(os.Stdout); err != nil {
		log.Fatal("generate report", zap.Error(err))
	}
	fmt.Println("--- End of Report ---")
}

// populate spawns birds scattered around the perch with random wind, and
// static scenery along the ground.
func populate(storage *ecs.Storage, birds, statics int, rng *rand.Rand) {
	for range birds {
		storage.Spawn(
			game.Position{X: rng.Float64() * 2000, Y: 100 + rng.Float64()*400},
			game.Velocity{X: rng.Float64()*200 - 100},
			game.BirdState{State: game.Initial},
			game.Wind{
				Amplitude: 5 + rng.Float64()*30,
				Frequency: 0.1 + rng.Float64(),
				Phase:     rng.Float64() * 2 * math.Pi,
			},
		)
	}
	for i := range statics {
		anchor := game.StaticPosition{X: float64(i) * 50, Y: 340}
		storage.Spawn(game.Position{X: anchor.X, Y: anchor.Y}, anchor)
	}
}
