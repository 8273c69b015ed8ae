// File: utils/config_test.go
package utils

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	assert.NoError(t, cfg.Validate())
	assert.Equal(t, float32(1000), cfg.WindowWidth)
	assert.Equal(t, float32(800), cfg.WindowHeight)
	assert.Equal(t, Vec2{X: 5, Y: 5}, cfg.BallSize)
	assert.Equal(t, Vec2{X: 6, Y: 36}, cfg.PaddleSize)
	assert.Equal(t, cfg.BallSize.X, cfg.WallThickness, "side walls are as thick as the ball")
}

func TestPaddleLimit(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, float32(382), cfg.PaddleLimit())
}

func TestConfigValidate(t *testing.T) {
	testCases := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"zero width", func(c *Config) { c.WindowWidth = 0 }},
		{"negative ball", func(c *Config) { c.BallSize.X = -1 }},
		{"NaN paddle height", func(c *Config) { c.PaddleSize.Y = float32(math.NaN()) }},
		{"infinite speed", func(c *Config) { c.ServeSpeed = float32(math.Inf(1)) }},
		{"zero tick period", func(c *Config) { c.TickPeriod = 0 }},
		{"paddle offset past the edge", func(c *Config) { c.PaddleXOffset = 0.5 }},
		{"paddle taller than window", func(c *Config) { c.PaddleSize.Y = c.WindowHeight }},
		{"zero wall thickness", func(c *Config) { c.WallThickness = 0 }},
		{"negative inset", func(c *Config) { c.WallInset = -1 }},
		{"negative dash padding", func(c *Config) { c.DashPadding = -1 }},
		{"zero min serve angle", func(c *Config) { c.ServeMinAngle = 0 }},
		{"vertical max serve angle", func(c *Config) { c.ServeMaxAngle = 90 }},
		{"min above max", func(c *Config) { c.ServeMinAngle, c.ServeMaxAngle = 40, 20 }},
		{"deflection reaching 90 degrees", func(c *Config) { c.BallHitPaddleAngleFactor = 2 }},
		{"negative burst", func(c *Config) { c.TrailBurst = -1 }},
		{"negative key hold", func(c *Config) { c.KeyHoldWindow = -time.Millisecond }},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(&cfg)
			err := cfg.Validate()
			assert.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidConfig), "error should wrap ErrInvalidConfig: %v", err)
		})
	}
}
