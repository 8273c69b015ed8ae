// File: game/collision_test.go
package game

import (
	"math"
	"math/rand"
	"testing"

	"github.com/lguibr/duopong/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func box(kind Kind, x, y, w, h float32) *Entity {
	return &Entity{Kind: kind, Position: utils.Vec2{X: x, Y: y}, Size: utils.Vec2{X: w, Y: h}}
}

func TestOverlap(t *testing.T) {
	testCases := []struct {
		name    string
		a, b    *Entity
		overlap bool
		pen     utils.Vec2
	}{
		{"centred", box(KindBall, 0, 0, 4, 4), box(KindWall, 0, 0, 10, 2), true, utils.Vec2{X: 7, Y: 3}},
		{"partial", box(KindBall, 4, 1, 4, 4), box(KindWall, 0, 0, 6, 2), true, utils.Vec2{X: 1, Y: 2}},
		{"touching edges do not overlap", box(KindBall, 5, 0, 4, 4), box(KindWall, 0, 0, 6, 2), false, utils.Vec2{X: 0, Y: 3}},
		{"apart", box(KindBall, 50, 50, 4, 4), box(KindWall, 0, 0, 6, 2), false, utils.Vec2{X: -45, Y: -47}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			pen, hit := Overlap(tc.a, tc.b)
			assert.Equal(t, tc.overlap, hit)
			assert.Equal(t, tc.pen, pen)
		})
	}
}

// A ball that overlaps nothing keeps its velocity.
func TestResolveNoSpuriousReflection(t *testing.T) {
	_, world := testWorld()
	engine := NewCollisionEngine(3)
	rng := rand.New(rand.NewSource(3))

	checked := 0
	for i := 0; i < 2000; i++ {
		world.Ball.Position = utils.Vec2{X: float32(rng.Float64()*960 - 480), Y: float32(rng.Float64()*760 - 380)}
		world.Ball.Velocity = utils.Vec2{X: float32(rng.Float64()*20 - 10), Y: float32(rng.Float64()*20 - 10)}

		touching := false
		for _, c := range world.Colliders() {
			if _, hit := Overlap(world.Ball, c); hit && c.Collidable != CollidableNone {
				touching = true
			}
		}
		if touching {
			continue
		}
		checked++
		before := world.Ball.Velocity
		events, end := engine.Resolve(uint64(i), world.Ball, world.Colliders())
		assert.Empty(t, events)
		assert.Nil(t, end)
		assert.Equal(t, before, world.Ball.Velocity)
	}
	assert.Greater(t, checked, 1000)
}

func TestResolveWallFlipsVerticalAndKeepsMagnitude(t *testing.T) {
	testCases := []struct {
		name  string
		side  Side
		y     float32
		vy    float32
		wantY float32
	}{
		{"top wall", SideTop, 396, 4, -4},
		{"bottom wall", SideBottom, -396, -4, 4},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, world := testWorld()
			engine := NewCollisionEngine(3)
			world.Ball.Position = utils.Vec2{X: 100, Y: tc.y}
			world.Ball.Velocity = utils.Vec2{X: 3, Y: tc.vy}

			events, end := engine.Resolve(1, world.Ball, world.Colliders())
			require.Len(t, events, 1)
			assert.Nil(t, end)
			assert.Equal(t, tc.side, events[0].Side)
			assert.Equal(t, AxisY, events[0].Axis)
			assert.Equal(t, tc.wantY, world.Ball.Velocity.Y)
			assert.Equal(t, float32(3), world.Ball.Velocity.X)
		})
	}
}

func TestResolveReflectIsIdempotentWhileOverlapping(t *testing.T) {
	_, world := testWorld()
	engine := NewCollisionEngine(3)
	world.Ball.Position = utils.Vec2{X: 100, Y: 396}
	world.Ball.Velocity = utils.Vec2{X: 3, Y: 4}

	events, _ := engine.Resolve(1, world.Ball, world.Colliders())
	require.Len(t, events, 1)

	// Still overlapping next tick: no second response
	events, _ = engine.Resolve(2, world.Ball, world.Colliders())
	assert.Empty(t, events)
	assert.Equal(t, float32(-4), world.Ball.Velocity.Y)

	// Even a stale tracker cannot flip the ball back towards the wall
	engine.Reset()
	events, _ = engine.Resolve(3, world.Ball, world.Colliders())
	require.Len(t, events, 1)
	assert.Equal(t, float32(-4), world.Ball.Velocity.Y)
}

func TestPaddleReflectionScenarios(t *testing.T) {
	testCases := []struct {
		name     string
		velocity float32
		wantVX   float32
		check    func(t *testing.T, x float32)
	}{
		{"left paddle", -5, 5, func(t *testing.T, x float32) { assert.GreaterOrEqual(t, x, float32(-483)) }},
		{"right paddle", 5, -5, func(t *testing.T, x float32) { assert.LessOrEqual(t, x, float32(483)) }},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := utils.DefaultConfig()
			sim, err := NewSimulation(cfg, utils.NewRandomSource(1))
			require.NoError(t, err)
			ball := sim.World().Ball
			ball.Position = utils.Vec2{}
			ball.Velocity = utils.Vec2{X: tc.velocity}

			reflected := false
			for i := 0; i < 200 && !reflected; i++ {
				result := sim.Step(InputFrame{})
				require.Nil(t, result.Score, "ball must not get past the paddle")
				for _, ev := range result.Collisions {
					if ev.Kind == KindPaddle {
						reflected = true
					}
				}
				tc.check(t, ball.Position.X)
			}
			require.True(t, reflected)
			assert.InDelta(t, tc.wantVX, ball.Velocity.X, 1e-5)
			assert.InDelta(t, 0, ball.Velocity.Y, 1e-5)
		})
	}
}

func TestPaddleEdgeHitIsSteeper(t *testing.T) {
	hit := func(offsetY float32) utils.Vec2 {
		_, world := testWorld()
		engine := NewCollisionEngine(3)
		paddle := world.Paddle(SideLeft)
		world.Ball.Position = utils.Vec2{X: paddle.Position.X + 5, Y: paddle.Position.Y + offsetY}
		world.Ball.Velocity = utils.Vec2{X: -5, Y: 0}
		events, _ := engine.Resolve(1, world.Ball, world.Colliders())
		require.Len(t, events, 1)
		require.Equal(t, AxisX, events[0].Axis)
		return world.Ball.Velocity
	}

	centre := hit(0)
	near := hit(6)
	edge := hit(15)

	angle := func(v utils.Vec2) float64 { return math.Atan2(float64(utils.Abs(v.Y)), float64(v.X)) }
	assert.Less(t, angle(centre), angle(near))
	assert.Less(t, angle(near), angle(edge))
	assert.Greater(t, edge.Y, float32(0), "hits above the centre leave upwards")

	for _, v := range []utils.Vec2{centre, near, edge} {
		assert.Greater(t, v.X, float32(0), "ball always leaves the left paddle to the right")
		assert.InDelta(t, 5, v.Length(), 1e-4, "speed is preserved")
	}
}

func TestPaddleBounce(t *testing.T) {
	max := math.Pi / 3
	assert.InDelta(t, 5, PaddleBounce(0, 5, 1, max).X, 1e-6)
	assert.InDelta(t, 0, PaddleBounce(0, 5, 1, max).Y, 1e-6)

	top := PaddleBounce(1, 5, -1, max)
	assert.InDelta(t, -5*math.Cos(max), top.X, 1e-5)
	assert.InDelta(t, 5*math.Sin(max), top.Y, 1e-5)

	assert.Equal(t, PaddleBounce(1, 5, -1, max), PaddleBounce(3, 5, -1, max), "offset is clamped")
	assert.Equal(t, PaddleBounce(0.4, 5, 1, max), PaddleBounce(0.4, 5, 1, max), "deterministic")
}

func TestResolveEndWallRaisesRoundEnd(t *testing.T) {
	_, world := testWorld()
	engine := NewCollisionEngine(3)
	world.Ball.Position = utils.Vec2{X: -496, Y: 200}
	world.Ball.Velocity = utils.Vec2{X: -5, Y: 1}

	events, end := engine.Resolve(1, world.Ball, world.Colliders())
	require.NotNil(t, end)
	assert.Equal(t, SideLeft, end.Conceder)
	assert.Equal(t, SideRight, end.Scorer)
	assert.Equal(t, utils.Vec2{X: -496, Y: 200}, end.Position)
	require.Len(t, events, 1)
	assert.Equal(t, CollidableEnd, events[0].Response)
	assert.Equal(t, utils.Vec2{X: -5, Y: 1}, world.Ball.Velocity, "end walls do not move the ball")
}

func TestResolveIgnoresDecoration(t *testing.T) {
	_, world := testWorld()
	engine := NewCollisionEngine(3)
	world.Ball.Position = world.Dashes[3].Position
	world.Ball.Velocity = utils.Vec2{X: 2, Y: 2}

	events, end := engine.Resolve(1, world.Ball, world.Colliders())
	assert.Empty(t, events)
	assert.Nil(t, end)
	assert.Equal(t, utils.Vec2{X: 2, Y: 2}, world.Ball.Velocity)
}
