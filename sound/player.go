// File: sound/player.go
package sound

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"github.com/rs/zerolog"
)

// Player plays cues through the system speaker. A Player whose Init failed
// stays usable and silently drops every cue.
type Player struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	initialized bool
	enabled     bool
	openDevice  func(beep.SampleRate, int) error
	log         zerolog.Logger
}

// NewPlayer creates a player. Nothing is heard until Init succeeds.
func NewPlayer(enabled bool, log zerolog.Logger) *Player {
	return &Player{
		mixer:      &beep.Mixer{},
		enabled:    enabled,
		openDevice: speaker.Init,
		log:        log,
	}
}

// Init opens the audio device and reports whether cues will be heard.
// Failure is logged and leaves the player muted for good.
func (p *Player) Init() bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return p.enabled
	}
	if err := p.openDevice(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		p.log.Warn().Err(err).Msg("Player: audio unavailable, sound disabled")
		p.enabled = false
		return false
	}
	speaker.Play(p.mixer)
	p.initialized = true
	return p.enabled
}

// Enabled reports whether cues are currently audible.
func (p *Player) Enabled() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.enabled && p.initialized
}

// Toggle flips the enabled flag and returns the new state.
func (p *Player) Toggle() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.initialized {
		return false
	}
	p.enabled = !p.enabled
	if !p.enabled {
		speaker.Lock()
		p.mixer.Clear()
		speaker.Unlock()
	}
	return p.enabled
}

// Play queues the given cues.
func (p *Player) Play(cues []Cue) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized || !p.enabled || len(cues) == 0 {
		return
	}
	for _, cue := range cues {
		streamer, err := Streamer(cue)
		if err != nil {
			p.log.Error().Err(err).Stringer("cue", cue).Msg("Player: failed to build cue")
			continue
		}
		speaker.Lock()
		p.mixer.Add(streamer)
		speaker.Unlock()
	}
}

// Close releases the audio device.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	speaker.Clear()
	speaker.Close()
	p.initialized = false
}
