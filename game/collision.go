// File: game/collision.go
package game

import (
	"fmt"
	"math"

	"github.com/lguibr/duopong/utils"
)

// Axis names the velocity component a bounce inverted.
type Axis int

const (
	AxisNone Axis = iota
	AxisX
	AxisY
)

func (a Axis) String() string {
	switch a {
	case AxisX:
		return "x"
	case AxisY:
		return "y"
	}
	return "none"
}

func (a Axis) MarshalText() ([]byte, error) { return []byte(a.String()), nil }

func (a *Axis) UnmarshalText(text []byte) error {
	for _, candidate := range []Axis{AxisNone, AxisX, AxisY} {
		if candidate.String() == string(text) {
			*a = candidate
			return nil
		}
	}
	return fmt.Errorf("unknown axis %q", text)
}

// CollisionEvent records one contact response.
type CollisionEvent struct {
	Tick     uint64     `json:"tick"`
	EntityID int        `json:"entityId"`
	Kind     Kind       `json:"kind"`
	Side     Side       `json:"side"`
	Response Collidable `json:"response"`
	Axis     Axis       `json:"axis"`
}

// RoundEnd is raised when the ball touches an End wall.
type RoundEnd struct {
	Conceder Side       `json:"conceder"` // side of the wall the ball passed
	Scorer   Side       `json:"scorer"`
	Position utils.Vec2 `json:"position"`
}

// Overlap tests two bounding boxes. It returns the penetration depth along
// each axis and whether the boxes overlap at all (strict inequality on both axes).
func Overlap(a, b *Entity) (utils.Vec2, bool) {
	a.assertValidBox()
	b.assertValidBox()

	ha, hb := a.HalfExtents(), b.HalfExtents()
	dx := utils.Abs(a.Position.X - b.Position.X)
	dy := utils.Abs(a.Position.Y - b.Position.Y)
	penetration := utils.Vec2{X: ha.X + hb.X - dx, Y: ha.Y + hb.Y - dy}
	return penetration, penetration.X > 0 && penetration.Y > 0
}

// away points v along the sign of delta (ball center minus surface center).
// With no separation on that axis the component is simply inverted.
func away(delta, v float32) float32 {
	switch {
	case delta > 0:
		return utils.Abs(v)
	case delta < 0:
		return -utils.Abs(v)
	}
	return -v
}

// PaddleBounce maps a contact offset in [-1, 1] (ball center relative to the
// paddle center, normalized by the combined half heights) to an outgoing
// velocity of the given speed. dir is the horizontal sign of the result.
// A center hit leaves horizontally; edge hits leave at ±maxDeflection.
func PaddleBounce(offset, speed, dir float32, maxDeflection float64) utils.Vec2 {
	angle := float64(utils.Clamp(offset, -1, 1)) * maxDeflection
	s := float64(speed)
	return utils.Vec2{
		X: dir * float32(s*math.Cos(angle)),
		Y: float32(s * math.Sin(angle)),
	}
}

// CollisionEngine resolves ball contacts against the static and paddle colliders.
type CollisionEngine struct {
	tracker       *CollisionTracker
	maxDeflection float64
}

// NewCollisionEngine creates an engine whose paddle deflection peaks at Pi/angleFactor.
func NewCollisionEngine(angleFactor float64) *CollisionEngine {
	return &CollisionEngine{
		tracker:       NewCollisionTracker(),
		maxDeflection: math.Pi / angleFactor,
	}
}

// Tracker exposes the contact bookkeeping.
func (c *CollisionEngine) Tracker() *CollisionTracker {
	return c.tracker
}

// Reset forgets all ongoing contacts.
func (c *CollisionEngine) Reset() {
	c.tracker.ClearAll()
}

// Resolve tests the ball against every collider. Reflect surfaces change the
// ball velocity; an End surface yields a RoundEnd and leaves the ball alone.
// Each pair responds once, on the tick its contact begins.
func (c *CollisionEngine) Resolve(tick uint64, ball *Entity, colliders []*Entity) ([]CollisionEvent, *RoundEnd) {
	var events []CollisionEvent
	var end *RoundEnd

	for _, other := range colliders {
		if other.Collidable == CollidableNone || other.ID == ball.ID {
			continue
		}

		key := CollisionKey{Object1ID: ball.ID, Object2ID: other.ID}
		penetration, hit := Overlap(ball, other)
		if !hit {
			c.tracker.EndCollision(key)
			continue
		}
		if !c.tracker.BeginCollision(key) {
			continue
		}

		event := CollisionEvent{
			Tick:     tick,
			EntityID: other.ID,
			Kind:     other.Kind,
			Side:     other.Side,
			Response: other.Collidable,
		}

		switch other.Collidable {
		case CollidableReflect:
			event.Axis = c.reflect(ball, other, penetration)
		case CollidableEnd:
			if end == nil {
				end = &RoundEnd{
					Conceder: other.Side,
					Scorer:   other.Side.Opponent(),
					Position: ball.Position,
				}
			}
		}
		events = append(events, event)
	}

	return events, end
}

// reflect bounces the ball along the axis of least penetration.
func (c *CollisionEngine) reflect(ball, surface *Entity, penetration utils.Vec2) Axis {
	delta := ball.Position.Sub(surface.Position)

	if penetration.X < penetration.Y {
		if surface.Kind == KindPaddle {
			c.deflect(ball, surface, delta)
		} else {
			ball.Velocity.X = away(delta.X, ball.Velocity.X)
		}
		return AxisX
	}

	ball.Velocity.Y = away(delta.Y, ball.Velocity.Y)
	return AxisY
}

// deflect sends the ball back off a paddle face, steering it by where it hit.
func (c *CollisionEngine) deflect(ball, paddle *Entity, delta utils.Vec2) {
	dir := utils.Sign(delta.X)
	if dir == 0 {
		dir = -utils.Sign(ball.Velocity.X)
	}
	reach := paddle.HalfExtents().Y + ball.HalfExtents().Y
	offset := delta.Y / reach
	ball.Velocity = PaddleBounce(offset, ball.Velocity.Length(), dir, c.maxDeflection)
}
