package engo

import (
	"image/color"
	"io"
	"testing"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo/common"

	"github.com/opd-ai/go-bounce/pkg/config"
	"github.com/opd-ai/go-bounce/pkg/engine"
	"github.com/opd-ai/go-bounce/pkg/entity"
	"github.com/opd-ai/go-bounce/pkg/logging"
	"github.com/opd-ai/go-bounce/pkg/physics"
)

// fakeSink records entities added to and removed from the render system
type fakeSink struct {
	added   map[uint64]*common.SpaceComponent
	removed []uint64
}

func newFakeSink() *fakeSink {
	return &fakeSink{added: make(map[uint64]*common.SpaceComponent)}
}

func (s *fakeSink) Add(basic *ecs.BasicEntity, render *common.RenderComponent, space *common.SpaceComponent) {
	s.added[basic.ID()] = space
}

func (s *fakeSink) Remove(basic ecs.BasicEntity) {
	delete(s.added, basic.ID())
	s.removed = append(s.removed, basic.ID())
}

// recordingSink collects submitted inputs and can refuse them
type recordingSink struct {
	inputs []engine.Input
	full   bool
}

func (s *recordingSink) Submit(in engine.Input) bool {
	if s.full {
		return false
	}
	s.inputs = append(s.inputs, in)
	return true
}

func body(kind entity.Kind, id entity.ID, x, y float64, life int) entity.Body {
	coord := physics.Coordinate{Position: physics.Vector2D{X: x, Y: y}}
	if kind == entity.KindPlayer {
		return entity.NewPlayer(id, coord, life)
	}
	return entity.NewBall(id, coord, life)
}

func quietLogger() *logging.Logger {
	return logging.NewLoggerWithWriter(io.Discard)
}

func newTestSession(t *testing.T, cfg *config.GameConfig) *engine.Session {
	t.Helper()
	session, err := engine.NewSession(cfg, engine.WithLogger(quietLogger()))
	if err != nil {
		t.Fatalf("NewSession() failed: %v", err)
	}
	return session
}

func alphaOf(c color.Color) uint8 {
	if n, ok := c.(color.NRGBA); ok {
		return n.A
	}
	_, _, _, a := c.RGBA()
	return uint8(a >> 8)
}
