package ecs_test

import (
	"reflect"
	"testing"

	"github.com/plus3/kingfisher/ecs"
	"github.com/stretchr/testify/assert"
)

func TestCommandsFlush(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	doomed := storage.Spawn(Score(1))
	target := storage.Spawn(Position{X: 2}, Velocity{})

	var cmds ecs.Commands
	var order []string

	cmds.Defer(func() { order = append(order, "defer") })
	cmds.Spawn(Health{Current: 5})
	cmds.Delete(doomed)
	cmds.AddComponent(doomed, Velocity{})
	cmds.RemoveComponent(target, reflect.TypeFor[Velocity]())
	cmds.AddComponent(target, Name("tagged"))

	cmds.Flush(storage)

	assert.False(t, storage.Exists(doomed))
	assert.Equal(t, []string{"defer"}, order)

	view := ecs.NewView[struct {
		*Position
		*Name
	}](storage)
	found := 0
	for _, item := range view.Iter() {
		found++
		assert.Equal(t, 2.0, item.Position.X)
		assert.Equal(t, Name("tagged"), *item.Name)
	}
	assert.Equal(t, 1, found)

	healthView := ecs.NewView[struct{ *Health }](storage)
	spawned := 0
	for range healthView.Iter() {
		spawned++
	}
	assert.Equal(t, 1, spawned)
}

func TestCommandsResetAfterFlush(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	var cmds ecs.Commands
	calls := 0
	cmds.Defer(func() { calls++ })
	cmds.Flush(storage)
	cmds.Flush(storage)

	assert.Equal(t, 1, calls)
}
