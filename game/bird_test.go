package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNextState(t *testing.T) {
	b := BirdState{}
	assert.Equal(t, Initial, b.State)

	b.NextState()
	assert.Equal(t, Ascending, b.State)
	b.NextState()
	assert.Equal(t, Falling, b.State)
	b.NextState()
	assert.Equal(t, Falling, b.State)
}

func TestBirdPhaseString(t *testing.T) {
	assert.Equal(t, "INITIAL", Initial.String())
	assert.Equal(t, "ASCENDING", Ascending.String())
	assert.Equal(t, "FALLING", Falling.String())
	assert.Equal(t, "UNKNOWN", BirdPhase(42).String())
}

func TestFlapFromInitial(t *testing.T) {
	var vel Velocity
	bird := BirdState{State: Initial}

	DefaultTuning().Apply(Controls{Flap: true}, &vel, &bird)

	assert.Equal(t, Ascending, bird.State)
	assert.Equal(t, 100.0, vel.Y)
}

func TestFlapWhileAscendingResetsSpeed(t *testing.T) {
	vel := Velocity{Y: 12}
	bird := BirdState{State: Ascending}

	DefaultTuning().Apply(Controls{Flap: true}, &vel, &bird)

	assert.Equal(t, Ascending, bird.State)
	assert.Equal(t, 100.0, vel.Y)
}

func TestFlapWhileFallingIsIgnored(t *testing.T) {
	vel := Velocity{Y: -30}
	bird := BirdState{State: Falling}

	DefaultTuning().Apply(Controls{Flap: true}, &vel, &bird)

	assert.Equal(t, Falling, bird.State)
	assert.Equal(t, -30.0, vel.Y)
}

func TestNoFlapLeavesStateAlone(t *testing.T) {
	vel := Velocity{Y: 7}
	bird := BirdState{State: Initial}

	DefaultTuning().Apply(Controls{}, &vel, &bird)

	assert.Equal(t, Initial, bird.State)
	assert.Equal(t, Velocity{Y: 7}, vel)
}

func TestStrafe(t *testing.T) {
	tuning := DefaultTuning()
	tests := []struct {
		name     string
		controls Controls
		want     float64
	}{
		{"left", Controls{Left: true}, -100},
		{"right", Controls{Right: true}, 100},
		{"left wins", Controls{Left: true, Right: true}, -100},
		{"none keeps speed", Controls{}, 33},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vel := Velocity{X: 33}
			bird := BirdState{}
			tuning.Apply(tt.controls, &vel, &bird)
			assert.Equal(t, tt.want, vel.X)
		})
	}
}
