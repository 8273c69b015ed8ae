package utils

import "time"

// Field geometry defaults, in world units.
const (
	Period = 16 * time.Millisecond // ~60 ticks per second

	WindowWidth  = 1000
	WindowHeight = 800

	BallSize = 5 //INFO Side walls default to this thickness

	PaddleWidth    = 6
	PaddleHeight   = 36
	PaddleVelocity = 10

	DashWidth   = 1
	DashHeight  = 8
	DashPadding = 20
)
