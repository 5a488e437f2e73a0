// pkg/config/config.go
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"time"
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid configuration")

// Broadphase strategies for candidate collision pairs
const (
	BroadphaseScan = "scan"
	BroadphaseGrid = "grid"
)

// GameConfig contains configuration for a bounce session
type GameConfig struct {
	Arena   ArenaConfig   `json:"arena"`
	Physics PhysicsConfig `json:"physics"`
	Game    GameRules     `json:"game"`
	Input   InputConfig   `json:"input"`
	Client  ClientConfig  `json:"client"`
}

// ArenaConfig is the size of the rectangular play field
type ArenaConfig struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// PhysicsConfig contains physics-related configuration
type PhysicsConfig struct {
	Radius             float64 `json:"radius"`
	Friction           float64 `json:"friction"`
	MinMove            float64 `json:"minMove"`
	InvincibilityTicks int     `json:"invincibilityTicks"`
	Broadphase         string  `json:"broadphase"`
}

// GameRules contains spawn and life configuration
type GameRules struct {
	Balls        int     `json:"balls"`
	BallLife     int     `json:"ballLife"`
	PlayerLife   int     `json:"playerLife"`
	SpawnMargin  int     `json:"spawnMargin"`
	InitialSpeed float64 `json:"initialSpeed"`
	TickRate     int     `json:"tickRate"`
}

// InputConfig tunes how gestures and keys become velocity
type InputConfig struct {
	ArrowSpeed      float64  `json:"arrowSpeed"`
	ChargeFullScale Duration `json:"chargeFullScale"`
}

// ClientConfig contains presentation settings for the desktop client
type ClientConfig struct {
	Title      string `json:"title"`
	Fullscreen bool   `json:"fullscreen"`
	ShowHUD    bool   `json:"showHUD"`
}

// Duration is a time.Duration that reads and writes as a string like "20s".
type Duration time.Duration

// MarshalJSON implements json.Marshaler
func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

// UnmarshalJSON accepts "20s" style strings or integer nanoseconds.
func (d *Duration) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		parsed, err := time.ParseDuration(s)
		if err != nil {
			return fmt.Errorf("invalid duration %q: %w", s, err)
		}
		*d = Duration(parsed)
		return nil
	}

	var n int64
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("invalid duration %s: %w", string(data), err)
	}
	*d = Duration(n)
	return nil
}

// TickInterval returns the wall-clock time between frames
func (c *GameConfig) TickInterval() time.Duration {
	if c.Game.TickRate <= 0 {
		return time.Second / 60
	}
	return time.Second / time.Duration(c.Game.TickRate)
}

// LoadConfig loads a configuration from a file. Fields missing from the file
// keep their default values.
func LoadConfig(path string) (*GameConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := json.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// SaveConfig saves a configuration to a file
func SaveConfig(config *GameConfig, path string) error {
	if config == nil {
		return fmt.Errorf("failed to marshal config: %w", ErrInvalidConfig)
	}

	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// DefaultConfig returns a default game configuration
func DefaultConfig() *GameConfig {
	return &GameConfig{
		Arena: ArenaConfig{
			Width:  800,
			Height: 600,
		},
		Physics: PhysicsConfig{
			Radius:             20,
			Friction:           0.998,
			MinMove:            0.05,
			InvincibilityTicks: 20,
			Broadphase:         BroadphaseScan,
		},
		Game: GameRules{
			Balls:        1,
			BallLife:     3,
			PlayerLife:   5,
			SpawnMargin:  60,
			InitialSpeed: 4,
			TickRate:     60,
		},
		Input: InputConfig{
			ArrowSpeed:      10,
			ChargeFullScale: Duration(20 * time.Second),
		},
		Client: ClientConfig{
			Title:   "Bounce",
			ShowHUD: true,
		},
	}
}

// Validate checks that the configuration can produce a playable session.
func (c *GameConfig) Validate() error {
	if c == nil {
		return fmt.Errorf("%w: config is nil", ErrInvalidConfig)
	}

	switch {
	case !finite(c.Arena.Width) || !finite(c.Arena.Height):
		return invalid("arena", "dimensions must be finite, got %vx%v", c.Arena.Width, c.Arena.Height)
	case !finite(c.Physics.Radius):
		return invalid("physics.radius", "must be finite, got %v", c.Physics.Radius)
	case !finite(c.Physics.Friction):
		return invalid("physics.friction", "must be finite, got %v", c.Physics.Friction)
	case !finite(c.Physics.MinMove):
		return invalid("physics.minMove", "must be finite, got %v", c.Physics.MinMove)
	case !finite(c.Input.ArrowSpeed):
		return invalid("input.arrowSpeed", "must be finite, got %v", c.Input.ArrowSpeed)
	case c.Arena.Width <= 0 || c.Arena.Height <= 0:
		return invalid("arena", "dimensions must be positive, got %vx%v", c.Arena.Width, c.Arena.Height)
	case c.Physics.Radius <= 0:
		return invalid("physics.radius", "must be positive, got %v", c.Physics.Radius)
	case 3*c.Physics.Radius > c.Arena.Width || c.Physics.Radius > c.Arena.Height:
		return invalid("physics.radius", "player spawn at (3r, h-r) does not fit a %vx%v arena", c.Arena.Width, c.Arena.Height)
	case c.Physics.Friction <= 0 || c.Physics.Friction > 1:
		return invalid("physics.friction", "must be in (0, 1], got %v", c.Physics.Friction)
	case c.Physics.MinMove < 0:
		return invalid("physics.minMove", "must not be negative, got %v", c.Physics.MinMove)
	case c.Physics.InvincibilityTicks < 0:
		return invalid("physics.invincibilityTicks", "must not be negative, got %d", c.Physics.InvincibilityTicks)
	case c.Physics.Broadphase != "" && c.Physics.Broadphase != BroadphaseScan && c.Physics.Broadphase != BroadphaseGrid:
		return invalid("physics.broadphase", "unknown strategy %q", c.Physics.Broadphase)
	case c.Game.Balls < 0:
		return invalid("game.balls", "must not be negative, got %d", c.Game.Balls)
	case c.Game.BallLife <= 0 || c.Game.PlayerLife <= 0:
		return invalid("game", "lives must be positive, got ball %d player %d", c.Game.BallLife, c.Game.PlayerLife)
	case c.Game.SpawnMargin < 0:
		return invalid("game.spawnMargin", "must not be negative, got %d", c.Game.SpawnMargin)
	case float64(2*c.Game.SpawnMargin) >= c.Arena.Width || float64(2*c.Game.SpawnMargin) >= c.Arena.Height:
		return invalid("game.spawnMargin", "leaves no spawn area in a %vx%v arena", c.Arena.Width, c.Arena.Height)
	case c.Game.TickRate <= 0:
		return invalid("game.tickRate", "must be positive, got %d", c.Game.TickRate)
	case c.Input.ArrowSpeed < 0:
		return invalid("input.arrowSpeed", "must not be negative, got %v", c.Input.ArrowSpeed)
	case c.Input.ChargeFullScale <= 0:
		return invalid("input.chargeFullScale", "must be positive, got %v", time.Duration(c.Input.ChargeFullScale))
	}

	return nil
}

// finite reports whether v is neither NaN nor an infinity. Ordered
// comparisons against NaN are always false, so range checks alone let it pass.
func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func invalid(field, format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s %s", ErrInvalidConfig, field, fmt.Sprintf(format, args...))
}
