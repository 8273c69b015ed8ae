package render

import (
	"fmt"
	"strings"

	"github.com/lguibr/duopong/game"
)

// ASCII characters for intensity, from lighter to darker
const asciiRamp = " .,:;i1tfLCG08@"

// rampRune maps an intensity in [0,1] to a ramp character. Anything visible
// gets at least the first non-blank step.
func rampRune(intensity float32) rune {
	if intensity <= 0 {
		return rune(asciiRamp[1])
	}
	index := int(intensity * float32(len(asciiRamp)-1))
	if index < 1 {
		index = 1
	}
	if index > len(asciiRamp)-1 {
		index = len(asciiRamp) - 1
	}
	return rune(asciiRamp[index])
}

// rgbToAnsi converts a colour to an ANSI truecolor foreground escape code
func rgbToAnsi(c RGB) string {
	return fmt.Sprintf("\033[38;2;%d;%d;%dm", c.R, c.G, c.B)
}

const ansiReset = "\033[0m"

// RenderASCII renders a raster to text, one line per row. With color set every
// non-blank cell is wrapped in ANSI colour codes.
func RenderASCII(raster Raster, color bool) string {
	var ascii strings.Builder
	for _, row := range raster {
		for _, cell := range row {
			if color && cell.Rune != runeEmpty {
				ascii.WriteString(rgbToAnsi(cell.Color))
				ascii.WriteRune(cell.Rune)
				ascii.WriteString(ansiReset)
				continue
			}
			ascii.WriteRune(cell.Rune)
		}
		ascii.WriteString("\n")
	}
	return ascii.String()
}

// StatusLine is the header shown above the field.
func StatusLine(s game.Snapshot, paused bool) string {
	line := fmt.Sprintf("LEFT %d  :  %d RIGHT   round %d   tick %d", s.Score.Left, s.Score.Right, s.Round, s.Tick)
	if paused {
		line += "   [PAUSED]"
	}
	return line
}

// RenderSnapshotASCII renders a full frame: status line plus a cols x rows field.
func RenderSnapshotASCII(s game.Snapshot, paused bool, cols, rows int, color bool) string {
	return StatusLine(s, paused) + "\n" + RenderASCII(Rasterize(s, cols, rows), color)
}
