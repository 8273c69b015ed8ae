// File: game/trail.go
package game

import (
	"github.com/lguibr/duopong/utils"
)

// Particle is a transient trail mark left behind the ball.
type Particle struct {
	Position utils.Vec2 `json:"position"`
	Age      float32    `json:"age"`
	Lifetime float32    `json:"lifetime"`
}

// TrailEmitter drops particles behind the ball on a fixed cadence and ages
// them out. It only tracks timing and placement; appearance is up to the renderer.
type TrailEmitter struct {
	interval  float32
	lifetime  float32
	burst     int
	elapsed   float32
	particles []Particle
}

func NewTrailEmitter(interval, lifetime float32, burst int) *TrailEmitter {
	return &TrailEmitter{
		interval:  interval,
		lifetime:  lifetime,
		burst:     burst,
		particles: make([]Particle, 0, int(lifetime/interval)+burst+1),
	}
}

// Update ages existing particles by dt, drops expired ones and emits at the
// ball position each time a full interval has elapsed. A nil ball emits nothing.
func (t *TrailEmitter) Update(ball *Entity, dt float32) {
	alive := t.particles[:0]
	for _, p := range t.particles {
		p.Age += dt
		if p.Age < p.Lifetime {
			alive = append(alive, p)
		}
	}
	t.particles = alive

	if ball == nil {
		return
	}
	t.elapsed += dt
	for t.elapsed >= t.interval {
		t.elapsed -= t.interval
		t.emit(ball.Position)
	}
}

// Burst emits the configured number of particles at once, e.g. where the ball left play.
func (t *TrailEmitter) Burst(at utils.Vec2) {
	for i := 0; i < t.burst; i++ {
		t.emit(at)
	}
}

func (t *TrailEmitter) emit(at utils.Vec2) {
	t.particles = append(t.particles, Particle{Position: at, Lifetime: t.lifetime})
}

// Particles returns a copy of the live particles.
func (t *TrailEmitter) Particles() []Particle {
	out := make([]Particle, len(t.particles))
	copy(out, t.particles)
	return out
}
