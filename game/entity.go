// File: game/entity.go
package game

import (
	"fmt"

	"github.com/lguibr/duopong/utils"
)

// Kind discriminates the role of an Entity.
type Kind int

const (
	KindBall Kind = iota
	KindPaddle
	KindWall
	KindDash
)

func (k Kind) String() string {
	switch k {
	case KindBall:
		return "ball"
	case KindPaddle:
		return "paddle"
	case KindWall:
		return "wall"
	case KindDash:
		return "dash"
	}
	return "unknown"
}

func (k Kind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

func (k *Kind) UnmarshalText(text []byte) error {
	for _, candidate := range []Kind{KindBall, KindPaddle, KindWall, KindDash} {
		if candidate.String() == string(text) {
			*k = candidate
			return nil
		}
	}
	return fmt.Errorf("unknown entity kind %q", text)
}

// Side places paddles (Left/Right) and walls (all four) on the field.
type Side int

const (
	SideNone Side = iota
	SideLeft
	SideRight
	SideTop
	SideBottom
)

func (s Side) String() string {
	switch s {
	case SideLeft:
		return "left"
	case SideRight:
		return "right"
	case SideTop:
		return "top"
	case SideBottom:
		return "bottom"
	}
	return "none"
}

func (s Side) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

func (s *Side) UnmarshalText(text []byte) error {
	for _, candidate := range []Side{SideNone, SideLeft, SideRight, SideTop, SideBottom} {
		if candidate.String() == string(text) {
			*s = candidate
			return nil
		}
	}
	return fmt.Errorf("unknown side %q", text)
}

// Opponent returns the other player's side. Only meaningful for Left and Right.
func (s Side) Opponent() Side {
	switch s {
	case SideLeft:
		return SideRight
	case SideRight:
		return SideLeft
	}
	return SideNone
}

// Collidable is the response the ball gets when it overlaps an entity.
type Collidable int

const (
	CollidableNone    Collidable = iota // decorative, no response
	CollidableReflect                   // bounce the ball
	CollidableEnd                       // the round is over
)

func (c Collidable) String() string {
	switch c {
	case CollidableReflect:
		return "reflect"
	case CollidableEnd:
		return "end"
	}
	return "none"
}

func (c Collidable) MarshalText() ([]byte, error) { return []byte(c.String()), nil }

func (c *Collidable) UnmarshalText(text []byte) error {
	for _, candidate := range []Collidable{CollidableNone, CollidableReflect, CollidableEnd} {
		if candidate.String() == string(text) {
			*c = candidate
			return nil
		}
	}
	return fmt.Errorf("unknown collidable %q", text)
}

// Entity is any simulated object. Size is the full width/height of its bounding box.
type Entity struct {
	ID         int        `json:"id"`
	Kind       Kind       `json:"kind"`
	Side       Side       `json:"side"`
	Position   utils.Vec2 `json:"position"`
	Size       utils.Vec2 `json:"size"`
	Velocity   utils.Vec2 `json:"velocity"`
	Collidable Collidable `json:"collidable"`
}

// HalfExtents returns half the entity size.
func (e *Entity) HalfExtents() utils.Vec2 {
	return e.Size.Half()
}

// Moves reports whether the entity carries a velocity. Walls and dashes are static.
func (e *Entity) Moves() bool {
	return e.Kind == KindBall || e.Kind == KindPaddle
}

func (e *Entity) Top() float32    { return e.Position.Y + e.Size.Y/2 }
func (e *Entity) Bottom() float32 { return e.Position.Y - e.Size.Y/2 }
func (e *Entity) Left() float32   { return e.Position.X - e.Size.X/2 }
func (e *Entity) Right() float32  { return e.Position.X + e.Size.X/2 }

// assertValidBox fails fast on boxes the overlap test cannot reason about.
func (e *Entity) assertValidBox() {
	utils.Assert(e.Size.X > 0 && e.Size.Y > 0 && e.Size.IsFinite(),
		"%s %d has degenerate size %+v", e.Kind, e.ID, e.Size)
	utils.Assert(e.Position.IsFinite(),
		"%s %d has non-finite position %+v", e.Kind, e.ID, e.Position)
}
