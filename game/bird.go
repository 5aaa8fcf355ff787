package game

// BirdPhase is a step of the bird's flight.
type BirdPhase int

const (
	Initial BirdPhase = iota
	Ascending
	Falling
)

func (p BirdPhase) String() string {
	switch p {
	case Initial:
		return "INITIAL"
	case Ascending:
		return "ASCENDING"
	case Falling:
		return "FALLING"
	default:
		return "UNKNOWN"
	}
}

// BirdState tracks the player's flight phase.
type BirdState struct {
	State BirdPhase
}

// NextState advances Initial -> Ascending -> Falling. Falling is terminal.
func (b *BirdState) NextState() {
	switch b.State {
	case Initial:
		b.State = Ascending
	case Ascending:
		b.State = Falling
	}
}

// Controls is one frame's worth of discrete input: true means the key went
// down this frame.
type Controls struct {
	Left  bool
	Right bool
	Flap  bool
}

// Tuning holds the speeds input handling assigns.
type Tuning struct {
	FlapSpeed   float64
	StrafeSpeed float64
}

// DefaultTuning matches the original game feel.
func DefaultTuning() Tuning {
	return Tuning{
		FlapSpeed:   100,
		StrafeSpeed: 100,
	}
}

// Apply turns controls into velocity changes and state transitions.
//
// Left wins over Right when both are pressed. A flap from Initial lifts off
// and enters Ascending; every flap while Ascending, including the one that
// just entered it, sets the vertical speed again. Flaps in any other phase
// do nothing.
func (t Tuning) Apply(c Controls, vel *Velocity, bird *BirdState) {
	if c.Left {
		vel.X = -t.StrafeSpeed
	} else if c.Right {
		vel.X = t.StrafeSpeed
	}

	if !c.Flap {
		return
	}
	if bird.State == Initial {
		vel.Y = t.FlapSpeed
		bird.NextState()
	}
	if bird.State == Ascending {
		vel.Y = t.FlapSpeed
	}
}
