// File: game/input.go
package game

import (
	"github.com/lguibr/duopong/utils"
)

// KeyState is the logical up/down signal for one paddle during one tick.
type KeyState int

const (
	KeyNone KeyState = iota
	KeyUp
	KeyDown
	KeyBoth
)

func (k KeyState) String() string {
	switch k {
	case KeyUp:
		return "up"
	case KeyDown:
		return "down"
	case KeyBoth:
		return "both"
	}
	return "none"
}

// KeyStateFrom combines two held flags. Holding both cancels out.
func KeyStateFrom(up, down bool) KeyState {
	switch {
	case up && down:
		return KeyBoth
	case up:
		return KeyUp
	case down:
		return KeyDown
	}
	return KeyNone
}

// direction is +1 for up, -1 for down, 0 otherwise.
func (k KeyState) direction() float32 {
	switch k {
	case KeyUp:
		return 1
	case KeyDown:
		return -1
	}
	return 0
}

// InputFrame carries the key state of both paddles for one tick.
type InputFrame struct {
	Left  KeyState `json:"left"`
	Right KeyState `json:"right"`
}

// For returns the key state of the given side.
func (f InputFrame) For(side Side) KeyState {
	if side == SideRight {
		return f.Right
	}
	return f.Left
}

// With returns a copy with the given side's key state replaced.
func (f InputFrame) With(side Side, state KeyState) InputFrame {
	if side == SideRight {
		f.Right = state
	} else {
		f.Left = state
	}
	return f
}

// ApplyInput sets the paddle's vertical velocity from its key state. The speed is
// shortened near the edges so the next integration step ends at most on ±limit.
// It never moves the paddle itself.
func ApplyInput(paddle *Entity, key KeyState, speed, dt, limit float32) {
	vy := key.direction() * speed
	next := paddle.Position.Y + vy*dt
	switch {
	case next > limit:
		vy = utils.Clamp((limit-paddle.Position.Y)/dt, 0, speed)
	case next < -limit:
		vy = utils.Clamp((-limit-paddle.Position.Y)/dt, -speed, 0)
	}
	paddle.Velocity = utils.Vec2{X: 0, Y: vy}
}

// ApplyInputs runs ApplyInput for both paddles of the world.
func ApplyInputs(world *World, frame InputFrame, cfg utils.Config) {
	limit := cfg.PaddleLimit()
	for _, paddle := range world.Paddles {
		ApplyInput(paddle, frame.For(paddle.Side), cfg.PaddleVelocity, cfg.TickDelta, limit)
	}
}

// ConstrainPaddles snaps paddles back inside ±limit. It only ever corrects
// floating point residue left after integration.
func ConstrainPaddles(world *World, limit float32) {
	for _, paddle := range world.Paddles {
		paddle.Position.Y = utils.Clamp(paddle.Position.Y, -limit, limit)
	}
}
