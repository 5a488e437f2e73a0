package engine

import (
	"io"
	"math/rand/v2"
	"testing"

	"github.com/opd-ai/go-bounce/pkg/config"
	"github.com/opd-ai/go-bounce/pkg/entity"
	"github.com/opd-ai/go-bounce/pkg/logging"
	"github.com/opd-ai/go-bounce/pkg/physics"
)

func ball(id entity.ID, x, y, vx, vy float64, life int) entity.Body {
	return entity.NewBall(id, physics.Coordinate{
		Position: physics.Vector2D{X: x, Y: y},
		Velocity: physics.Vector2D{X: vx, Y: vy},
	}, life)
}

func player(x, y float64, life int) entity.Body {
	return entity.NewPlayer(1000, physics.Coordinate{
		Position: physics.Vector2D{X: x, Y: y},
	}, life)
}

func testState(balls ...entity.Body) State {
	return State{
		Balls:  balls,
		Player: player(60, 580, 5),
		Arena:  Arena{Width: 800, Height: 600},
	}
}

func testSimulator() *Simulator {
	return NewSimulator(config.DefaultConfig().Physics)
}

func seeded(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

func quietLogger() *logging.Logger {
	return logging.NewLoggerWithWriter(io.Discard)
}

func assertFinite(t *testing.T, s State) {
	t.Helper()
	bodies := append(append([]entity.Body(nil), s.Balls...), s.Player)
	for _, b := range bodies {
		if !b.Coord.Position.IsFinite() || !b.Coord.Velocity.IsFinite() {
			t.Fatalf("body %d has non-finite coordinate %+v", b.ID, b.Coord)
		}
	}
}
