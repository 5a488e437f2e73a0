// pkg/config/env_config.go
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// EnvironmentConfig holds the settings that may be overridden from the
// process environment.
type EnvironmentConfig struct {
	ArenaWidth  float64
	ArenaHeight float64
	Radius      float64
	Friction    float64
	MinMove     float64
	BallLife    int
	PlayerLife  int
	Balls       int
	TickRate    int
	Broadphase  string
	ChargeScale time.Duration
	ShowHUD     bool
}

// LoadConfigFromEnv reads BOUNCE_* variables, falling back to the defaults
// for anything unset or unparsable.
func LoadConfigFromEnv() (*EnvironmentConfig, error) {
	env := environmentFrom(DefaultConfig())
	if err := env.Validate(); err != nil {
		return nil, err
	}
	return env, nil
}

func environmentFrom(base *GameConfig) *EnvironmentConfig {
	return &EnvironmentConfig{
		ArenaWidth:  getEnvAsFloatOrDefault("BOUNCE_ARENA_WIDTH", base.Arena.Width),
		ArenaHeight: getEnvAsFloatOrDefault("BOUNCE_ARENA_HEIGHT", base.Arena.Height),
		Radius:      getEnvAsFloatOrDefault("BOUNCE_RADIUS", base.Physics.Radius),
		Friction:    getEnvAsFloatOrDefault("BOUNCE_FRICTION", base.Physics.Friction),
		MinMove:     getEnvAsFloatOrDefault("BOUNCE_MIN_MOVE", base.Physics.MinMove),
		BallLife:    getEnvAsIntOrDefault("BOUNCE_BALL_LIFE", base.Game.BallLife),
		PlayerLife:  getEnvAsIntOrDefault("BOUNCE_PLAYER_LIFE", base.Game.PlayerLife),
		Balls:       getEnvAsIntOrDefault("BOUNCE_BALLS", base.Game.Balls),
		TickRate:    getEnvAsIntOrDefault("BOUNCE_TICK_RATE", base.Game.TickRate),
		Broadphase:  getEnvOrDefault("BOUNCE_BROADPHASE", base.Physics.Broadphase),
		ChargeScale: getEnvAsDurationOrDefault("BOUNCE_CHARGE_SCALE", time.Duration(base.Input.ChargeFullScale)),
		ShowHUD:     getEnvAsBoolOrDefault("BOUNCE_SHOW_HUD", base.Client.ShowHUD),
	}
}

// Validate checks the environment values in isolation.
func (e *EnvironmentConfig) Validate() error {
	switch {
	case !finite(e.ArenaWidth):
		return invalid("BOUNCE_ARENA_WIDTH", "must be finite, got %v", e.ArenaWidth)
	case !finite(e.ArenaHeight):
		return invalid("BOUNCE_ARENA_HEIGHT", "must be finite, got %v", e.ArenaHeight)
	case !finite(e.Radius):
		return invalid("BOUNCE_RADIUS", "must be finite, got %v", e.Radius)
	case !finite(e.Friction):
		return invalid("BOUNCE_FRICTION", "must be finite, got %v", e.Friction)
	case !finite(e.MinMove):
		return invalid("BOUNCE_MIN_MOVE", "must be finite, got %v", e.MinMove)
	case e.ArenaWidth <= 0:
		return invalid("BOUNCE_ARENA_WIDTH", "must be positive, got %v", e.ArenaWidth)
	case e.ArenaHeight <= 0:
		return invalid("BOUNCE_ARENA_HEIGHT", "must be positive, got %v", e.ArenaHeight)
	case e.Radius <= 0:
		return invalid("BOUNCE_RADIUS", "must be positive, got %v", e.Radius)
	case e.Friction <= 0 || e.Friction > 1:
		return invalid("BOUNCE_FRICTION", "must be in (0, 1], got %v", e.Friction)
	case e.MinMove < 0:
		return invalid("BOUNCE_MIN_MOVE", "must not be negative, got %v", e.MinMove)
	case e.BallLife <= 0:
		return invalid("BOUNCE_BALL_LIFE", "must be positive, got %d", e.BallLife)
	case e.PlayerLife <= 0:
		return invalid("BOUNCE_PLAYER_LIFE", "must be positive, got %d", e.PlayerLife)
	case e.Balls < 0:
		return invalid("BOUNCE_BALLS", "must not be negative, got %d", e.Balls)
	case e.TickRate <= 0 || e.TickRate > 1000:
		return invalid("BOUNCE_TICK_RATE", "must be between 1 and 1000, got %d", e.TickRate)
	case e.Broadphase != BroadphaseScan && e.Broadphase != BroadphaseGrid:
		return invalid("BOUNCE_BROADPHASE", "must be %q or %q, got %q", BroadphaseScan, BroadphaseGrid, e.Broadphase)
	case e.ChargeScale <= 0:
		return invalid("BOUNCE_CHARGE_SCALE", "must be positive, got %v", e.ChargeScale)
	}
	return nil
}

// ApplyEnvironmentOverrides overlays BOUNCE_* variables onto config. Unset
// variables keep the values already in config.
func ApplyEnvironmentOverrides(config *GameConfig) error {
	if config == nil {
		return fmt.Errorf("%w: config is nil", ErrInvalidConfig)
	}

	env := environmentFrom(config)
	if err := env.Validate(); err != nil {
		return fmt.Errorf("environment override rejected: %w", err)
	}

	config.Arena.Width = env.ArenaWidth
	config.Arena.Height = env.ArenaHeight
	config.Physics.Radius = env.Radius
	config.Physics.Friction = env.Friction
	config.Physics.MinMove = env.MinMove
	config.Physics.Broadphase = env.Broadphase
	config.Game.BallLife = env.BallLife
	config.Game.PlayerLife = env.PlayerLife
	config.Game.Balls = env.Balls
	config.Game.TickRate = env.TickRate
	config.Input.ChargeFullScale = Duration(env.ChargeScale)
	config.Client.ShowHUD = env.ShowHUD

	return config.Validate()
}

func getEnvOrDefault(key, defaultValue string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsIntOrDefault(key string, defaultValue int) int {
	if value, ok := os.LookupEnv(key); ok {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvAsBoolOrDefault(key string, defaultValue bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvAsFloatOrDefault(key string, defaultValue float64) float64 {
	if value, ok := os.LookupEnv(key); ok {
		if parsed, err := strconv.ParseFloat(value, 64); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvAsDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
