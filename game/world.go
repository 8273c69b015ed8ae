// File: game/world.go
package game

import (
	"math"

	"github.com/lguibr/duopong/utils"
)

// World holds every entity of a match. All entities are created once by
// NewWorld; afterwards only the ball and paddle positions/velocities change.
type World struct {
	Width   float32
	Height  float32
	Ball    *Entity
	Paddles [2]*Entity // indexed by paddleSlot
	Walls   [4]*Entity // left, right, top, bottom
	Dashes  []*Entity

	colliders []*Entity
}

// paddleSlot maps SideLeft/SideRight to an index into World.Paddles.
func paddleSlot(side Side) int {
	if side == SideRight {
		return 1
	}
	return 0
}

// NewWorld lays out the field for the configured window. The origin is the
// screen center; the ball starts at the origin with the given serve velocity.
func NewWorld(cfg utils.Config, serve utils.Vec2) *World {
	w := &World{Width: cfg.WindowWidth, Height: cfg.WindowHeight}
	nextID := 0
	spawn := func(e *Entity) *Entity {
		e.ID = nextID
		nextID++
		e.assertValidBox()
		return e
	}

	w.Ball = spawn(&Entity{
		Kind:       KindBall,
		Size:       cfg.BallSize,
		Velocity:   serve,
		Collidable: CollidableNone,
	})

	paddleX := cfg.PaddleXOffset * cfg.WindowWidth
	for _, side := range []Side{SideLeft, SideRight} {
		x := -paddleX
		if side == SideRight {
			x = paddleX
		}
		w.Paddles[paddleSlot(side)] = spawn(&Entity{
			Kind:       KindPaddle,
			Side:       side,
			Position:   utils.Vec2{X: x},
			Size:       cfg.PaddleSize,
			Collidable: CollidableReflect,
		})
	}

	thickness := cfg.WallThickness
	halfW, halfH := cfg.WindowWidth/2, cfg.WindowHeight/2
	w.Walls = [4]*Entity{
		spawn(&Entity{
			Kind: KindWall, Side: SideLeft,
			Position:   utils.Vec2{X: -halfW + cfg.WallInset},
			Size:       utils.Vec2{X: thickness, Y: cfg.WindowHeight},
			Collidable: CollidableEnd,
		}),
		spawn(&Entity{
			Kind: KindWall, Side: SideRight,
			Position:   utils.Vec2{X: halfW - cfg.WallInset},
			Size:       utils.Vec2{X: thickness, Y: cfg.WindowHeight},
			Collidable: CollidableEnd,
		}),
		spawn(&Entity{
			Kind: KindWall, Side: SideTop,
			Position:   utils.Vec2{Y: halfH - cfg.WallInset},
			Size:       utils.Vec2{X: cfg.WindowWidth, Y: thickness},
			Collidable: CollidableReflect,
		}),
		spawn(&Entity{
			Kind: KindWall, Side: SideBottom,
			Position:   utils.Vec2{Y: -halfH + cfg.WallInset},
			Size:       utils.Vec2{X: cfg.WindowWidth, Y: thickness},
			Collidable: CollidableReflect,
		}),
	}

	step := cfg.DashSize.Y + cfg.DashPadding
	dashCount := int(math.Floor(float64(cfg.WindowHeight / step)))
	w.Dashes = make([]*Entity, 0, dashCount+1)
	for i := 0; i <= dashCount; i++ {
		w.Dashes = append(w.Dashes, spawn(&Entity{
			Kind:       KindDash,
			Position:   utils.Vec2{Y: halfH - float32(i)*step},
			Size:       cfg.DashSize,
			Collidable: CollidableNone,
		}))
	}

	w.colliders = make([]*Entity, 0, len(w.Paddles)+len(w.Walls)+len(w.Dashes))
	w.colliders = append(w.colliders, w.Paddles[:]...)
	w.colliders = append(w.colliders, w.Walls[:]...)
	w.colliders = append(w.colliders, w.Dashes...)
	return w
}

// Paddle returns the paddle on the given side.
func (w *World) Paddle(side Side) *Entity {
	return w.Paddles[paddleSlot(side)]
}

// Wall returns the wall on the given side.
func (w *World) Wall(side Side) *Entity {
	for _, wall := range w.Walls {
		if wall.Side == side {
			return wall
		}
	}
	return nil
}

// Colliders lists everything the ball is tested against, in a stable order.
func (w *World) Colliders() []*Entity {
	return w.colliders
}

// Bodies lists the entities that carry a velocity.
func (w *World) Bodies() []*Entity {
	return []*Entity{w.Ball, w.Paddles[0], w.Paddles[1]}
}

// Entities lists every entity, ball first.
func (w *World) Entities() []*Entity {
	all := make([]*Entity, 0, 1+len(w.colliders))
	all = append(all, w.Ball)
	return append(all, w.colliders...)
}
