// File: render/terminal.go
package render

import (
	"github.com/gdamore/tcell/v2"
	"github.com/lguibr/duopong/game"
)

// TerminalRenderer draws frames onto a tcell screen. The top row holds the
// status line and the rest of the screen is the field.
type TerminalRenderer struct {
	screen tcell.Screen
	muted  bool
}

// NewTerminalRenderer wraps an initialised screen.
func NewTerminalRenderer(screen tcell.Screen) *TerminalRenderer {
	return &TerminalRenderer{screen: screen}
}

// SetMuted controls the sound indicator in the status line.
func (t *TerminalRenderer) SetMuted(muted bool) { t.muted = muted }

// Draw renders one frame and shows it.
func (t *TerminalRenderer) Draw(frame game.FrameMessage) {
	t.screen.Clear()
	cols, rows := t.screen.Size()
	if cols <= 0 || rows <= 1 {
		t.screen.Show()
		return
	}

	status := StatusLine(frame.Snapshot, frame.Paused)
	if t.muted {
		status += "   [muted]"
	}
	t.drawText(0, 0, status, tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true))

	raster := Rasterize(frame.Snapshot, cols, rows-1)
	for r, row := range raster {
		for c, cell := range row {
			if cell.Rune == runeEmpty {
				continue
			}
			t.screen.SetContent(c, r+1, cell.Rune, nil, styleFor(cell))
		}
	}
	t.screen.Show()
}

// DrawMessage shows a single centred line, used before the first frame arrives.
func (t *TerminalRenderer) DrawMessage(text string) {
	t.screen.Clear()
	cols, rows := t.screen.Size()
	x := (cols - len(text)) / 2
	if x < 0 {
		x = 0
	}
	t.drawText(x, rows/2, text, tcell.StyleDefault.Foreground(tcell.ColorYellow))
	t.screen.Show()
}

func (t *TerminalRenderer) drawText(x, y int, text string, style tcell.Style) {
	for i, r := range []rune(text) {
		t.screen.SetContent(x+i, y, r, nil, style)
	}
}

func styleFor(cell Cell) tcell.Style {
	color := tcell.NewRGBColor(int32(cell.Color.R), int32(cell.Color.G), int32(cell.Color.B))
	return tcell.StyleDefault.Foreground(color)
}
