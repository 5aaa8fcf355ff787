package ecs

import (
	"context"
	"reflect"
	"time"
)

// SchedulerStats provides statistics about scheduler execution.
type SchedulerStats struct {
	SystemCount     int
	TotalExecutions int64
	Systems         []SystemStats
}

// SystemStats provides execution statistics for a single system.
type SystemStats struct {
	Name           string
	ExecutionCount int64
	MinDuration    time.Duration
	MaxDuration    time.Duration
	AvgDuration    time.Duration
	LastDuration   time.Duration
	TotalDuration  time.Duration
	// LastStarted is when the most recent Execute call began.
	LastStarted time.Time
	// LastSequence numbers Execute calls across all systems of the
	// scheduler, starting at 1. It orders calls even when two share a
	// timestamp.
	LastSequence uint64
}

type systemEntry struct {
	system  System
	queries []queryExecutor
	stats   SystemStats
}

// queryExecutor is implemented by *Query[T].
type queryExecutor interface {
	Execute()
}

// storageBinder is implemented by *Query[T] and *Singleton[T].
type storageBinder interface {
	Init(storage *Storage)
}

// Scheduler runs systems against one Storage in registration order.
type Scheduler struct {
	storage  *Storage
	systems  []*systemEntry
	sequence uint64
}

// NewScheduler creates a new scheduler for the given storage.
func NewScheduler(storage *Storage) *Scheduler {
	return &Scheduler{
		storage: storage,
	}
}

// Storage returns the storage the scheduler runs against.
func (s *Scheduler) Storage() *Storage {
	return s.storage
}

// Register appends system to the run order and binds its Query and Singleton
// fields. Registering the same system value twice panics.
func (s *Scheduler) Register(system System) {
	if system == nil {
		panic("ecs: Register called with nil system")
	}
	for _, entry := range s.systems {
		if sameSystem(entry.system, system) {
			panic("ecs: system " + systemName(system) + " registered twice")
		}
	}

	s.systems = append(s.systems, &systemEntry{
		system:  system,
		queries: s.bindFields(system),
		stats: SystemStats{
			Name:        systemName(system),
			MinDuration: time.Duration(1<<63 - 1),
		},
	})
}

// bindFields initializes every Query and Singleton field of a struct system
// and returns the queries that need refreshing before each run.
func (s *Scheduler) bindFields(system System) []queryExecutor {
	value := reflect.ValueOf(system)
	if value.Kind() != reflect.Pointer || value.Elem().Kind() != reflect.Struct {
		return nil
	}
	value = value.Elem()

	var queries []queryExecutor
	for i := 0; i < value.NumField(); i++ {
		field := value.Field(i)
		if !field.CanSet() || field.Kind() != reflect.Struct {
			continue
		}

		binder, ok := field.Addr().Interface().(storageBinder)
		if !ok {
			continue
		}
		binder.Init(s.storage)

		if query, ok := binder.(queryExecutor); ok {
			queries = append(queries, query)
		}
	}
	return queries
}

// Once runs every system once with the given delta time, then flushes the
// commands they queued.
func (s *Scheduler) Once(dt float64) {
	frame := newUpdateFrame(dt, s.storage)

	for _, entry := range s.systems {
		for _, query := range entry.queries {
			query.Execute()
		}

		s.sequence++
		start := time.Now()
		entry.system.Execute(frame)
		duration := time.Since(start)

		stats := &entry.stats
		stats.ExecutionCount++
		stats.LastStarted = start
		stats.LastSequence = s.sequence
		stats.LastDuration = duration
		stats.TotalDuration += duration
		stats.MinDuration = min(stats.MinDuration, duration)
		stats.MaxDuration = max(stats.MaxDuration, duration)
	}

	frame.Commands.Flush(s.storage)
}

// Run calls Once on every tick of interval until ctx is cancelled. Delta time
// is the measured time between ticks.
func (s *Scheduler) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	lastTime := time.Now()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			dt := now.Sub(lastTime).Seconds()
			lastTime = now
			s.Once(dt)
		}
	}
}

// GetStats returns statistics about system execution.
func (s *Scheduler) GetStats() *SchedulerStats {
	stats := &SchedulerStats{
		SystemCount: len(s.systems),
		Systems:     make([]SystemStats, len(s.systems)),
	}

	for i, entry := range s.systems {
		stats.Systems[i] = entry.stats
		if entry.stats.ExecutionCount > 0 {
			stats.Systems[i].AvgDuration = entry.stats.TotalDuration / time.Duration(entry.stats.ExecutionCount)
		}
		stats.TotalExecutions += entry.stats.ExecutionCount
	}
	return stats
}

func sameSystem(a, b System) bool {
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb || !ta.Comparable() {
		return false
	}
	return a == b
}

func systemName(system System) string {
	t := reflect.TypeOf(system)
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t.Name()
}
