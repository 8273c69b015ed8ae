// File: game/input_test.go
package game

import (
	"math/rand"
	"testing"

	"github.com/lguibr/duopong/utils"
	"github.com/stretchr/testify/assert"
)

func TestKeyStateFrom(t *testing.T) {
	assert.Equal(t, KeyNone, KeyStateFrom(false, false))
	assert.Equal(t, KeyUp, KeyStateFrom(true, false))
	assert.Equal(t, KeyDown, KeyStateFrom(false, true))
	assert.Equal(t, KeyBoth, KeyStateFrom(true, true))
}

func TestApplyInput(t *testing.T) {
	testCases := []struct {
		name  string
		key   KeyState
		start float32
		want  float32
	}{
		{"up", KeyUp, 0, 10},
		{"down", KeyDown, 0, -10},
		{"none", KeyNone, 0, 0},
		{"both cancel", KeyBoth, 0, 0},
		{"up shortened near the top", KeyUp, 376, 6},
		{"up at the top", KeyUp, 382, 0},
		{"down shortened near the bottom", KeyDown, -380, -2},
		{"down away from the top is unrestricted", KeyDown, 382, -10},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			paddle := &Entity{Kind: KindPaddle, Position: utils.Vec2{X: -480, Y: tc.start}, Size: utils.Vec2{X: 6, Y: 36}}
			ApplyInput(paddle, tc.key, 10, 1, 382)
			assert.InDelta(t, tc.want, paddle.Velocity.Y, 1e-4)
			assert.Equal(t, float32(0), paddle.Velocity.X)
			assert.Equal(t, tc.start, paddle.Position.Y, "input never moves the paddle")
		})
	}
}

func TestInputFrame(t *testing.T) {
	frame := InputFrame{}.With(SideLeft, KeyUp).With(SideRight, KeyDown)
	assert.Equal(t, KeyUp, frame.For(SideLeft))
	assert.Equal(t, KeyDown, frame.For(SideRight))
}

// Any sequence of inputs keeps both paddles inside the field.
func TestPaddleClampProperty(t *testing.T) {
	cfg, world := testWorld()
	limit := cfg.PaddleLimit()
	keys := []KeyState{KeyNone, KeyUp, KeyDown, KeyBoth}
	rng := rand.New(rand.NewSource(11))

	for tick := 0; tick < 5000; tick++ {
		frame := InputFrame{Left: keys[rng.Intn(len(keys))], Right: keys[rng.Intn(len(keys))]}
		// Long runs in one direction so the paddles actually reach the edges
		if tick%500 < 200 {
			frame = InputFrame{Left: KeyUp, Right: KeyDown}
		}
		ApplyInputs(world, frame, cfg)
		Integrate(world.Bodies(), cfg.TickDelta)
		ConstrainPaddles(world, limit)

		for _, paddle := range world.Paddles {
			if paddle.Position.Y > limit || paddle.Position.Y < -limit {
				t.Fatalf("tick %d: %s paddle at y=%v outside ±%v", tick, paddle.Side, paddle.Position.Y, limit)
			}
		}
	}
}

func TestConstrainPaddles(t *testing.T) {
	_, world := testWorld()
	world.Paddle(SideLeft).Position.Y = 400
	world.Paddle(SideRight).Position.Y = -390
	ConstrainPaddles(world, 382)
	assert.Equal(t, float32(382), world.Paddle(SideLeft).Position.Y)
	assert.Equal(t, float32(-382), world.Paddle(SideRight).Position.Y)
}

func TestIntegrate(t *testing.T) {
	ball := &Entity{Kind: KindBall, Position: utils.Vec2{X: 1, Y: 2}, Velocity: utils.Vec2{X: 3, Y: -4}}
	wall := &Entity{Kind: KindWall, Position: utils.Vec2{X: 5}, Velocity: utils.Vec2{X: 1}}

	Integrate([]*Entity{ball, wall}, 0.5)
	assert.Equal(t, utils.Vec2{X: 2.5, Y: 0}, ball.Position)
	assert.Equal(t, utils.Vec2{X: 5}, wall.Position, "walls never move")
}
