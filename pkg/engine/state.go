// pkg/engine/state.go
package engine

import (
	"math/rand/v2"
	"time"

	"github.com/opd-ai/go-bounce/pkg/config"
	"github.com/opd-ai/go-bounce/pkg/entity"
	"github.com/opd-ai/go-bounce/pkg/physics"
)

// Arena is the rectangular play field; walls sit at 0 and at Width/Height.
type Arena struct {
	Width  float64
	Height float64
}

// Bounds converts the arena to the physics representation
func (a Arena) Bounds() physics.Bounds {
	return physics.Bounds{Width: a.Width, Height: a.Height}
}

// Gesture is a pending press: when it started and where.
type Gesture struct {
	Start  time.Time
	Anchor physics.Vector2D
}

// State is a complete snapshot of one game. States are values: every engine
// operation returns a fresh State and never writes through an older one.
type State struct {
	Tick      uint64
	Balls     []entity.Body
	Player    entity.Body
	Arena     Arena
	Press     *Gesture
	EndOfGame bool
}

// Clone returns a deep copy sharing no slices or pointers with s.
func (s State) Clone() State {
	next := s
	if s.Balls != nil {
		next.Balls = make([]entity.Body, len(s.Balls))
		copy(next.Balls, s.Balls)
	}
	if s.Press != nil {
		press := *s.Press
		next.Press = &press
	}
	return next
}

// FindBall returns the ball with the given ID.
func (s State) FindBall(id entity.ID) (entity.Body, bool) {
	for _, b := range s.Balls {
		if b.ID == id {
			return b, true
		}
	}
	return entity.Body{}, false
}

// NewState builds the opening position: cfg.Game.Balls balls at random
// integer positions at least SpawnMargin from every wall, moving
// horizontally at InitialSpeed in a random direction, and a stationary player
// in the bottom-left corner. EndOfGame starts true until a session starts.
func NewState(cfg *config.GameConfig, rng *rand.Rand) State {
	arena := Arena{Width: cfg.Arena.Width, Height: cfg.Arena.Height}
	margin := cfg.Game.SpawnMargin

	balls := make([]entity.Body, 0, cfg.Game.Balls)
	for i := 0; i < cfg.Game.Balls; i++ {
		pos := physics.Vector2D{
			X: float64(spawnCoordinate(rng, int(arena.Width), margin)),
			Y: float64(spawnCoordinate(rng, int(arena.Height), margin)),
		}
		vx := cfg.Game.InitialSpeed
		if rng.IntN(2) == 0 {
			vx = -vx
		}
		balls = append(balls, entity.NewBall(entity.GenerateID(), physics.Coordinate{
			Position: pos,
			Velocity: physics.Vector2D{X: vx},
		}, cfg.Game.BallLife))
	}

	r := cfg.Physics.Radius
	player := entity.NewPlayer(entity.GenerateID(), physics.Coordinate{
		Position: physics.Vector2D{X: 3 * r, Y: arena.Height - r},
	}, cfg.Game.PlayerLife)

	return State{
		Balls:     balls,
		Player:    player,
		Arena:     arena,
		EndOfGame: true,
	}
}

func spawnCoordinate(rng *rand.Rand, extent, margin int) int {
	span := extent - 2*margin
	if span <= 0 {
		return extent / 2
	}
	return rng.IntN(span) + margin
}
