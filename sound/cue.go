// File: sound/cue.go
package sound

import (
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/lguibr/duopong/game"
)

const sampleRate = beep.SampleRate(44100)

// Cue is a short sound played in response to a tick event.
type Cue int

const (
	CuePaddle Cue = iota
	CueWall
	CuePoint
)

func (c Cue) String() string {
	switch c {
	case CuePaddle:
		return "paddle"
	case CueWall:
		return "wall"
	case CuePoint:
		return "point"
	}
	return "unknown"
}

// Tone is one sine segment of a cue.
type Tone struct {
	Frequency float64
	Duration  time.Duration
}

// volume is in powers of two relative to the full-scale sine generator.
const volume = -2

// ToneFor returns the tones of a cue, played in order.
func ToneFor(c Cue) []Tone {
	switch c {
	case CuePaddle:
		return []Tone{{Frequency: 880, Duration: 50 * time.Millisecond}}
	case CueWall:
		return []Tone{{Frequency: 440, Duration: 40 * time.Millisecond}}
	case CuePoint:
		return []Tone{
			{Frequency: 330, Duration: 120 * time.Millisecond},
			{Frequency: 220, Duration: 180 * time.Millisecond},
		}
	}
	return nil
}

// CuesFor selects the cues of one tick: at most one of each, in the order
// paddle, wall, point.
func CuesFor(result game.TickResult) []Cue {
	var paddle, wall bool
	for _, ev := range result.Collisions {
		switch {
		case ev.Kind == game.KindPaddle:
			paddle = true
		case ev.Kind == game.KindWall && ev.Response == game.CollidableReflect:
			wall = true
		}
	}

	var cues []Cue
	if paddle {
		cues = append(cues, CuePaddle)
	}
	if wall {
		cues = append(cues, CueWall)
	}
	if result.Score != nil {
		cues = append(cues, CuePoint)
	}
	return cues
}

// Streamer builds the finite streamer of a cue.
func Streamer(c Cue) (beep.Streamer, error) {
	tones := ToneFor(c)
	parts := make([]beep.Streamer, 0, len(tones))
	for _, tone := range tones {
		sine, err := generators.SineTone(sampleRate, tone.Frequency)
		if err != nil {
			return nil, err
		}
		parts = append(parts, beep.Take(sampleRate.N(tone.Duration), sine))
	}
	return &effects.Volume{Streamer: beep.Seq(parts...), Base: 2, Volume: volume}, nil
}

// Samples is the number of samples a cue lasts.
func Samples(c Cue) int {
	n := 0
	for _, tone := range ToneFor(c) {
		n += sampleRate.N(tone.Duration)
	}
	return n
}
