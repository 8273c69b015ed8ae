package render

import (
	"strings"
	"testing"

	"github.com/lguibr/duopong/game"
	"github.com/lguibr/duopong/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startSnapshot(t *testing.T) game.Snapshot {
	t.Helper()
	sim, err := game.NewSimulation(utils.DefaultConfig(), utils.NewRandomSource(1))
	require.NoError(t, err)
	return sim.Snapshot()
}

func TestRasterizePlacesEntities(t *testing.T) {
	raster := Rasterize(startSnapshot(t), 100, 40)
	require.Len(t, raster, 40)
	require.Len(t, raster[0], 100)

	assert.Equal(t, runeBall, raster[20][50].Rune, "ball at the centre")
	assert.Equal(t, ColorBall, raster[20][50].Color)
	assert.Equal(t, runePaddle, raster[20][2].Rune, "left paddle")
	assert.Equal(t, runePaddle, raster[20][97].Rune, "right paddle")
	assert.Equal(t, runeEdge, raster[0][25].Rune, "top wall")
	assert.Equal(t, runeEdge, raster[39][25].Rune, "bottom wall")
	assert.Equal(t, runeGoal, raster[10][0].Rune, "left end wall")
	assert.Equal(t, runeGoal, raster[10][99].Rune, "right end wall")
	assert.Equal(t, runeDash, raster[1][49].Rune, "divider")
	assert.Equal(t, runeEmpty, raster[10][25].Rune)
}

func TestRasterizeParticlesFade(t *testing.T) {
	s := startSnapshot(t)
	s.Particles = []game.Particle{
		{Position: utils.Vec2{X: 100, Y: 200}, Age: 0, Lifetime: 10},
		{Position: utils.Vec2{X: -100, Y: 200}, Age: 5, Lifetime: 10},
	}
	raster := Rasterize(s, 100, 40)

	assert.Equal(t, '@', raster[10][60].Rune)
	assert.Equal(t, ColorParticle, raster[10][60].Color)
	assert.Equal(t, 't', raster[10][40].Rune)
	assert.Equal(t, fade(ColorParticle, 0.5), raster[10][40].Color)
}

func TestRasterizeBallDrawnOverParticles(t *testing.T) {
	s := startSnapshot(t)
	s.Particles = []game.Particle{{Position: utils.Vec2{}, Lifetime: 10}}
	raster := Rasterize(s, 100, 40)
	assert.Equal(t, runeBall, raster[20][50].Rune)
}

func TestRasterizeEmptyField(t *testing.T) {
	raster := Rasterize(game.Snapshot{}, 4, 2)
	for _, row := range raster {
		for _, cell := range row {
			assert.Equal(t, runeEmpty, cell.Rune)
		}
	}
}

func TestParticleIntensity(t *testing.T) {
	assert.Equal(t, float32(1), particleIntensity(game.Particle{Lifetime: 4}))
	assert.Equal(t, float32(0.25), particleIntensity(game.Particle{Age: 3, Lifetime: 4}))
	assert.Equal(t, float32(0), particleIntensity(game.Particle{Age: 9, Lifetime: 4}))
	assert.Equal(t, float32(0), particleIntensity(game.Particle{}))
}

func TestRampRune(t *testing.T) {
	assert.Equal(t, '.', rampRune(0))
	assert.Equal(t, '.', rampRune(0.01))
	assert.Equal(t, '@', rampRune(1))
	assert.Equal(t, '@', rampRune(2))
}

func TestRenderASCII(t *testing.T) {
	raster := Rasterize(startSnapshot(t), 60, 20)

	plain := RenderASCII(raster, false)
	lines := strings.Split(strings.TrimSuffix(plain, "\n"), "\n")
	require.Len(t, lines, 20)
	for _, line := range lines {
		assert.Len(t, line, 60)
	}
	assert.NotContains(t, plain, "\033[")

	colored := RenderASCII(raster, true)
	assert.Contains(t, colored, rgbToAnsi(ColorBall)+"O"+ansiReset)
}

func TestStatusLine(t *testing.T) {
	s := game.Snapshot{Tick: 120, Round: 3, Score: game.Score{Left: 2, Right: 5}}
	assert.Equal(t, "LEFT 2  :  5 RIGHT   round 3   tick 120", StatusLine(s, false))
	assert.True(t, strings.HasSuffix(StatusLine(s, true), "[PAUSED]"))

	full := RenderSnapshotASCII(s, false, 10, 3, false)
	assert.Equal(t, 4, strings.Count(full, "\n"))
}
