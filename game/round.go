// File: game/round.go
package game

import (
	"fmt"
	"math"

	"github.com/lguibr/duopong/utils"
)

// RoundPhase is the round lifecycle state. Resetting never lasts across a tick:
// it is entered and left inside a single Check call.
type RoundPhase int

const (
	PhasePlaying RoundPhase = iota
	PhaseResetting
)

func (p RoundPhase) String() string {
	if p == PhaseResetting {
		return "resetting"
	}
	return "playing"
}

func (p RoundPhase) MarshalText() ([]byte, error) { return []byte(p.String()), nil }

func (p *RoundPhase) UnmarshalText(text []byte) error {
	switch string(text) {
	case "playing":
		*p = PhasePlaying
	case "resetting":
		*p = PhaseResetting
	default:
		return fmt.Errorf("unknown round phase %q", text)
	}
	return nil
}

// Score counts points per player.
type Score struct {
	Left  int `json:"left"`
	Right int `json:"right"`
}

// For returns the points of the given side.
func (s Score) For(side Side) int {
	if side == SideRight {
		return s.Right
	}
	return s.Left
}

func (s *Score) add(side Side) {
	switch side {
	case SideLeft:
		s.Left++
	case SideRight:
		s.Right++
	}
}

// ScoreEvent reports a finished round: who scored and how the next round was served.
type ScoreEvent struct {
	Tick     uint64     `json:"tick"`
	Round    int        `json:"round"`
	Scorer   Side       `json:"scorer"`
	Conceder Side       `json:"conceder"`
	Score    Score      `json:"score"`
	Exit     utils.Vec2 `json:"exit"`
	Serve    utils.Vec2 `json:"serve"`
}

// RoundMachine owns the round lifecycle: it notices the ball leaving play,
// books the point and serves the ball again from the center.
type RoundMachine struct {
	phase    RoundPhase
	score    Score
	round    int
	rng      utils.RandomSource
	speed    float32
	minAngle float64 // radians
	maxAngle float64 // radians
}

func NewRoundMachine(cfg utils.Config, rng utils.RandomSource) *RoundMachine {
	return &RoundMachine{
		phase:    PhasePlaying,
		round:    1,
		rng:      rng,
		speed:    cfg.ServeSpeed,
		minAngle: cfg.ServeMinAngle * math.Pi / 180,
		maxAngle: cfg.ServeMaxAngle * math.Pi / 180,
	}
}

func (r *RoundMachine) Phase() RoundPhase { return r.phase }
func (r *RoundMachine) Score() Score      { return r.score }
func (r *RoundMachine) Round() int        { return r.round }

// Serve draws a launch velocity: a random side, a random angle inside
// [minAngle, maxAngle] above or below the horizontal, and the fixed serve speed.
func (r *RoundMachine) Serve() utils.Vec2 {
	horizontal := utils.RandomSign(r.rng)
	angle := utils.RandomBetween(r.rng, r.minAngle, r.maxAngle)
	vertical := utils.RandomSign(r.rng)

	speed := float64(r.speed)
	serve := utils.Vec2{
		X: horizontal * float32(speed*math.Cos(angle)),
		Y: vertical * float32(speed*math.Sin(angle)),
	}
	utils.Assert(serve.X != 0 && serve.Y != 0, "serve %+v is axis aligned", serve)
	return serve
}

// Check runs after integration. A RoundEnd from the collision engine, or the
// ball center leaving the field horizontally, ends the round: the ball is put
// back at the origin with a fresh serve before the next tick integrates.
func (r *RoundMachine) Check(tick uint64, world *World, end *RoundEnd) *ScoreEvent {
	ball := world.Ball
	if end == nil {
		end = r.exited(world)
	}
	if end == nil {
		return nil
	}

	r.phase = PhaseResetting
	r.score.add(end.Scorer)

	ball.Position = utils.Vec2{}
	ball.Velocity = r.Serve()

	event := &ScoreEvent{
		Tick:     tick,
		Round:    r.round,
		Scorer:   end.Scorer,
		Conceder: end.Conceder,
		Score:    r.score,
		Exit:     end.Position,
		Serve:    ball.Velocity,
	}
	r.round++
	r.phase = PhasePlaying
	return event
}

// exited catches a ball that got past an End wall without touching it.
func (r *RoundMachine) exited(world *World) *RoundEnd {
	x := world.Ball.Position.X
	half := world.Width / 2
	switch {
	case x < -half:
		return &RoundEnd{Conceder: SideLeft, Scorer: SideRight, Position: world.Ball.Position}
	case x > half:
		return &RoundEnd{Conceder: SideRight, Scorer: SideLeft, Position: world.Ball.Position}
	}
	return nil
}
