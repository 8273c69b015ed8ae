// File: render/projection.go
package render

import (
	"math"

	"github.com/lguibr/duopong/game"
	"github.com/lguibr/duopong/utils"
)

// Projection maps world coordinates (origin at the centre, +y up) onto a grid
// of character cells (origin top-left, rows growing downwards).
type Projection struct {
	Cols, Rows    int
	Width, Height float32
}

// NewProjection returns a projection of a width x height field onto cols x rows cells.
func NewProjection(cols, rows int, width, height float32) Projection {
	return Projection{Cols: cols, Rows: rows, Width: width, Height: height}
}

// Valid reports whether the projection has a drawable area.
func (p Projection) Valid() bool {
	return p.Cols > 0 && p.Rows > 0 && p.Width > 0 && p.Height > 0
}

// Cell returns the cell containing the world point, clamped to the grid.
func (p Projection) Cell(at utils.Vec2) (col, row int) {
	col = p.column(at.X)
	row = p.row(at.Y)
	return col, row
}

// Rect returns the inclusive cell range covered by an entity. Every entity
// covers at least one cell, so thin dashes stay visible on small terminals.
func (p Projection) Rect(e game.Entity) (col0, row0, col1, row1 int) {
	col0 = p.column(e.Left())
	col1 = p.column(e.Right())
	row0 = p.row(e.Top())
	row1 = p.row(e.Bottom())
	if col1 < col0 {
		col1 = col0
	}
	if row1 < row0 {
		row1 = row0
	}
	return col0, row0, col1, row1
}

func (p Projection) column(x float32) int {
	fx := float64((x + p.Width/2) / p.Width * float32(p.Cols))
	return clampIndex(int(math.Floor(fx)), p.Cols)
}

func (p Projection) row(y float32) int {
	fy := float64((p.Height/2 - y) / p.Height * float32(p.Rows))
	return clampIndex(int(math.Floor(fy)), p.Rows)
}

func clampIndex(i, n int) int {
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}
