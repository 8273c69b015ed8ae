// File: utils/config.go
package utils

import (
	"errors"
	"fmt"
	"math"
	"time"
)

// ErrInvalidConfig is wrapped by every error returned from Config.Validate.
var ErrInvalidConfig = errors.New("invalid config")

// Config holds all configurable match parameters.
type Config struct {
	// Timing
	TickPeriod time.Duration `json:"tickPeriod" yaml:"tickPeriod" toml:"tickPeriod"` // Wall-clock time between ticks
	TickDelta  float32       `json:"tickDelta" yaml:"tickDelta" toml:"tickDelta"`    // Simulation time advanced per tick (velocities are per unit)

	// Window
	WindowWidth  float32 `json:"windowWidth" yaml:"windowWidth" toml:"windowWidth"`
	WindowHeight float32 `json:"windowHeight" yaml:"windowHeight" toml:"windowHeight"`

	// Ball
	BallSize Vec2 `json:"ballSize" yaml:"ballSize" toml:"ballSize"` // Full width/height of the ball

	// Paddles
	PaddleSize     Vec2    `json:"paddleSize" yaml:"paddleSize" toml:"paddleSize"`
	PaddleXOffset  float32 `json:"paddleXOffset" yaml:"paddleXOffset" toml:"paddleXOffset"`    // Paddle distance from center as a fraction of window width
	PaddleVelocity float32 `json:"paddleVelocity" yaml:"paddleVelocity" toml:"paddleVelocity"` // Vertical speed while a key is held

	// Walls & divider
	WallThickness float32 `json:"wallThickness" yaml:"wallThickness" toml:"wallThickness"`
	WallInset     float32 `json:"wallInset" yaml:"wallInset" toml:"wallInset"`             // Distance from the window edge to the wall center
	DashSize      Vec2    `json:"dashSize" yaml:"dashSize" toml:"dashSize"`
	DashPadding   float32 `json:"dashPadding" yaml:"dashPadding" toml:"dashPadding"`

	// Serve & bounce
	ServeSpeed               float32 `json:"serveSpeed" yaml:"serveSpeed" toml:"serveSpeed"`
	ServeMinAngle            float64 `json:"serveMinAngle" yaml:"serveMinAngle" toml:"serveMinAngle"` // Degrees from horizontal
	ServeMaxAngle            float64 `json:"serveMaxAngle" yaml:"serveMaxAngle" toml:"serveMaxAngle"` // Degrees from horizontal
	BallHitPaddleAngleFactor float64 `json:"ballHitPaddleAngleFactor" yaml:"ballHitPaddleAngleFactor" toml:"ballHitPaddleAngleFactor"` // Max deflection is Pi / this value

	// Trail
	TrailInterval float32 `json:"trailInterval" yaml:"trailInterval" toml:"trailInterval"` // Ticks between trail particles
	TrailLifetime float32 `json:"trailLifetime" yaml:"trailLifetime" toml:"trailLifetime"` // Ticks a particle lives
	TrailBurst    int     `json:"trailBurst" yaml:"trailBurst" toml:"trailBurst"`          // Particles emitted when a round ends

	// Runtime
	Seed          int64         `json:"seed" yaml:"seed" toml:"seed"` // 0 seeds from the clock
	KeyHoldWindow time.Duration `json:"keyHoldWindow" yaml:"keyHoldWindow" toml:"keyHoldWindow"`
	SpectatorAddr string        `json:"spectatorAddr" yaml:"spectatorAddr" toml:"spectatorAddr"` // Empty disables the spectator server
	SoundEnabled  bool          `json:"soundEnabled" yaml:"soundEnabled" toml:"soundEnabled"`
	LogFile       string        `json:"logFile" yaml:"logFile" toml:"logFile"`
}

// DefaultConfig returns a Config struct with default values.
func DefaultConfig() Config {
	ballSize := Vec2{X: BallSize, Y: BallSize}

	return Config{
		// Timing
		TickPeriod: Period,
		TickDelta:  1,

		// Window
		WindowWidth:  WindowWidth,
		WindowHeight: WindowHeight,

		// Ball
		BallSize: ballSize,

		// Paddles
		PaddleSize:     Vec2{X: PaddleWidth, Y: PaddleHeight},
		PaddleXOffset:  0.48, // 480 units from center on a 1000 wide window
		PaddleVelocity: PaddleVelocity,

		// Walls & divider
		WallThickness: ballSize.X,
		WallInset:     1,
		DashSize:      Vec2{X: DashWidth, Y: DashHeight},
		DashPadding:   DashPadding,

		// Serve & bounce
		ServeSpeed:               6,
		ServeMinAngle:            10,
		ServeMaxAngle:            45,
		BallHitPaddleAngleFactor: 3, // Max 60 degrees deflection

		// Trail
		TrailInterval: 2,
		TrailLifetime: 20,
		TrailBurst:    8,

		// Runtime
		Seed:          0,
		KeyHoldWindow: 120 * time.Millisecond,
		SpectatorAddr: "",
		SoundEnabled:  true,
		LogFile:       "duopong.log",
	}
}

// PaddleLimit is the largest |y| a paddle center may reach.
func (c Config) PaddleLimit() float32 {
	return c.WindowHeight/2 - c.PaddleSize.Y/2
}

// Validate reports the first parameter that would break the simulation.
func (c Config) Validate() error {
	positive := []struct {
		name  string
		value float32
	}{
		{"tickDelta", c.TickDelta},
		{"windowWidth", c.WindowWidth},
		{"windowHeight", c.WindowHeight},
		{"ballSize.x", c.BallSize.X},
		{"ballSize.y", c.BallSize.Y},
		{"paddleSize.x", c.PaddleSize.X},
		{"paddleSize.y", c.PaddleSize.Y},
		{"paddleXOffset", c.PaddleXOffset},
		{"paddleVelocity", c.PaddleVelocity},
		{"wallThickness", c.WallThickness},
		{"dashSize.x", c.DashSize.X},
		{"dashSize.y", c.DashSize.Y},
		{"serveSpeed", c.ServeSpeed},
		{"trailInterval", c.TrailInterval},
		{"trailLifetime", c.TrailLifetime},
	}
	for _, p := range positive {
		if !(p.value > 0) || math.IsInf(float64(p.value), 0) {
			return fmt.Errorf("%w: %s must be positive and finite, got %v", ErrInvalidConfig, p.name, p.value)
		}
	}

	if c.TickPeriod <= 0 {
		return fmt.Errorf("%w: tickPeriod must be positive, got %v", ErrInvalidConfig, c.TickPeriod)
	}
	if c.PaddleXOffset >= 0.5 {
		return fmt.Errorf("%w: paddleXOffset must be below 0.5, got %v", ErrInvalidConfig, c.PaddleXOffset)
	}
	if c.PaddleSize.Y >= c.WindowHeight {
		return fmt.Errorf("%w: paddle height %v does not fit window height %v", ErrInvalidConfig, c.PaddleSize.Y, c.WindowHeight)
	}
	if c.WallInset < 0 {
		return fmt.Errorf("%w: wallInset must not be negative, got %v", ErrInvalidConfig, c.WallInset)
	}
	if c.DashPadding < 0 {
		return fmt.Errorf("%w: dashPadding must not be negative, got %v", ErrInvalidConfig, c.DashPadding)
	}
	if !(c.ServeMinAngle > 0) || c.ServeMaxAngle >= 90 || c.ServeMinAngle > c.ServeMaxAngle {
		return fmt.Errorf("%w: serve angles must satisfy 0 < min <= max < 90, got [%v, %v]", ErrInvalidConfig, c.ServeMinAngle, c.ServeMaxAngle)
	}
	if !(c.BallHitPaddleAngleFactor > 2) {
		return fmt.Errorf("%w: ballHitPaddleAngleFactor must be above 2 so deflection stays under 90 degrees, got %v", ErrInvalidConfig, c.BallHitPaddleAngleFactor)
	}
	if c.TrailBurst < 0 {
		return fmt.Errorf("%w: trailBurst must not be negative, got %d", ErrInvalidConfig, c.TrailBurst)
	}
	if c.KeyHoldWindow < 0 {
		return fmt.Errorf("%w: keyHoldWindow must not be negative, got %v", ErrInvalidConfig, c.KeyHoldWindow)
	}
	return nil
}
