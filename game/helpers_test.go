// File: game/helpers_test.go
package game

import (
	"github.com/lguibr/duopong/utils"
)

// testWorld builds a default field with the ball parked at the origin, at rest.
func testWorld() (utils.Config, *World) {
	cfg := utils.DefaultConfig()
	return cfg, NewWorld(cfg, utils.Vec2{})
}

// fixedSource is a RandomSource that replays fixed values.
type fixedSource struct {
	floats []float64
	ints   []int
	fi, ii int
}

func (f *fixedSource) Float64() float64 {
	v := f.floats[f.fi%len(f.floats)]
	f.fi++
	return v
}

func (f *fixedSource) Intn(n int) int {
	v := f.ints[f.ii%len(f.ints)] % n
	f.ii++
	return v
}
