// File: game/simulation.go
package game

import (
	"fmt"

	"github.com/lguibr/duopong/utils"
)

// TickResult is everything a tick produced besides the mutated world.
type TickResult struct {
	Tick       uint64           `json:"tick"`
	Collisions []CollisionEvent `json:"collisions,omitempty"`
	Score      *ScoreEvent      `json:"score,omitempty"`
}

// Snapshot is the renderable state of a match at the end of a tick.
type Snapshot struct {
	Tick      uint64     `json:"tick"`
	Phase     RoundPhase `json:"phase"`
	Round     int        `json:"round"`
	Score     Score      `json:"score"`
	Width     float32    `json:"width"`
	Height    float32    `json:"height"`
	Entities  []Entity   `json:"entities"`
	Particles []Particle `json:"particles"`
}

// Ball returns the ball entry of the snapshot.
func (s Snapshot) Ball() (Entity, bool) {
	for _, e := range s.Entities {
		if e.Kind == KindBall {
			return e, true
		}
	}
	return Entity{}, false
}

// Simulation runs one match. It is single-threaded: Step, Snapshot and the
// accessors must be called from the goroutine that owns it.
type Simulation struct {
	cfg        utils.Config
	world      *World
	collisions *CollisionEngine
	round      *RoundMachine
	trail      *TrailEmitter
	tick       uint64
}

// NewSimulation validates cfg and builds the field with the ball already served.
func NewSimulation(cfg utils.Config, rng utils.RandomSource) (*Simulation, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("creating simulation: %w", err)
	}
	if rng == nil {
		rng = utils.NewRandomSource(cfg.Seed)
	}

	round := NewRoundMachine(cfg, rng)
	return &Simulation{
		cfg:        cfg,
		world:      NewWorld(cfg, round.Serve()),
		collisions: NewCollisionEngine(cfg.BallHitPaddleAngleFactor),
		round:      round,
		trail:      NewTrailEmitter(cfg.TrailInterval, cfg.TrailLifetime, cfg.TrailBurst),
	}, nil
}

// Step advances the match by one tick:
// input, collision, integration, paddle bounds, round check, trail.
func (s *Simulation) Step(input InputFrame) TickResult {
	s.tick++
	dt := s.cfg.TickDelta

	ApplyInputs(s.world, input, s.cfg)

	collisions, end := s.collisions.Resolve(s.tick, s.world.Ball, s.world.Colliders())

	Integrate(s.world.Bodies(), dt)
	ConstrainPaddles(s.world, s.cfg.PaddleLimit())

	score := s.round.Check(s.tick, s.world, end)
	if score != nil {
		s.collisions.Reset()
		s.trail.Burst(score.Exit)
	}

	s.trail.Update(s.world.Ball, dt)

	return TickResult{Tick: s.tick, Collisions: collisions, Score: score}
}

// Snapshot copies the current state.
func (s *Simulation) Snapshot() Snapshot {
	entities := s.world.Entities()
	snapshot := Snapshot{
		Tick:      s.tick,
		Phase:     s.round.Phase(),
		Round:     s.round.Round(),
		Score:     s.round.Score(),
		Width:     s.world.Width,
		Height:    s.world.Height,
		Entities:  make([]Entity, len(entities)),
		Particles: s.trail.Particles(),
	}
	for i, e := range entities {
		snapshot.Entities[i] = *e
	}
	return snapshot
}

func (s *Simulation) World() *World        { return s.world }
func (s *Simulation) Score() Score         { return s.round.Score() }
func (s *Simulation) Phase() RoundPhase    { return s.round.Phase() }
func (s *Simulation) Tick() uint64         { return s.tick }
func (s *Simulation) Config() utils.Config { return s.cfg }
