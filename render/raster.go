// File: render/raster.go
package render

import (
	"github.com/lguibr/duopong/game"
)

// RGB is a 24-bit colour.
type RGB struct {
	R, G, B uint8
}

// Cell is one rasterized character.
type Cell struct {
	Rune  rune
	Color RGB
}

// Raster is a rows x cols grid of cells.
type Raster [][]Cell

var (
	ColorBackground = RGB{0, 0, 0}
	ColorWall       = RGB{90, 90, 90}
	ColorDash       = RGB{140, 140, 140}
	ColorPaddle     = RGB{240, 240, 240}
	ColorBall       = RGB{255, 220, 60}
	ColorParticle   = RGB{255, 140, 0}
)

const (
	runeEmpty  = ' '
	runeEdge   = '-'
	runeGoal   = '|'
	runeDash   = ':'
	runePaddle = '#'
	runeBall   = 'O'
)

// Rasterize draws a snapshot onto a cols x rows grid. Later layers win:
// walls, dashes, trail particles, paddles and finally the ball.
func Rasterize(s game.Snapshot, cols, rows int) Raster {
	raster := make(Raster, rows)
	for r := range raster {
		raster[r] = make([]Cell, cols)
		for c := range raster[r] {
			raster[r][c] = Cell{Rune: runeEmpty, Color: ColorBackground}
		}
	}

	proj := NewProjection(cols, rows, s.Width, s.Height)
	if !proj.Valid() {
		return raster
	}

	for _, kind := range []game.Kind{game.KindWall, game.KindDash} {
		for _, e := range s.Entities {
			if e.Kind == kind {
				raster.fill(proj, e, glyphFor(e))
			}
		}
	}

	for _, p := range s.Particles {
		col, row := proj.Cell(p.Position)
		intensity := particleIntensity(p)
		raster[row][col] = Cell{Rune: rampRune(intensity), Color: fade(ColorParticle, intensity)}
	}

	for _, kind := range []game.Kind{game.KindPaddle, game.KindBall} {
		for _, e := range s.Entities {
			if e.Kind == kind {
				raster.fill(proj, e, glyphFor(e))
			}
		}
	}
	return raster
}

func (r Raster) fill(proj Projection, e game.Entity, glyph Cell) {
	col0, row0, col1, row1 := proj.Rect(e)
	for row := row0; row <= row1; row++ {
		for col := col0; col <= col1; col++ {
			r[row][col] = glyph
		}
	}
}

func glyphFor(e game.Entity) Cell {
	switch e.Kind {
	case game.KindBall:
		return Cell{Rune: runeBall, Color: ColorBall}
	case game.KindPaddle:
		return Cell{Rune: runePaddle, Color: ColorPaddle}
	case game.KindDash:
		return Cell{Rune: runeDash, Color: ColorDash}
	case game.KindWall:
		if e.Collidable == game.CollidableEnd {
			return Cell{Rune: runeGoal, Color: ColorWall}
		}
		return Cell{Rune: runeEdge, Color: ColorWall}
	}
	return Cell{Rune: runeEmpty, Color: ColorBackground}
}

// particleIntensity is 1 for a fresh particle and falls linearly to 0 at expiry.
func particleIntensity(p game.Particle) float32 {
	if p.Lifetime <= 0 {
		return 0
	}
	i := 1 - p.Age/p.Lifetime
	if i < 0 {
		return 0
	}
	if i > 1 {
		return 1
	}
	return i
}

func fade(c RGB, intensity float32) RGB {
	return RGB{
		R: uint8(float32(c.R) * intensity),
		G: uint8(float32(c.G) * intensity),
		B: uint8(float32(c.B) * intensity),
	}
}
