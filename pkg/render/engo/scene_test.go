package engo

import (
	"testing"
	"time"

	"github.com/opd-ai/go-bounce/pkg/config"
	"github.com/opd-ai/go-bounce/pkg/engine"
	"github.com/opd-ai/go-bounce/pkg/entity"
)

func testConfig() *config.GameConfig {
	cfg := config.DefaultConfig()
	cfg.Game.Balls = 2
	return cfg
}

// countingTicker ticks a canned state
type countingTicker struct {
	state engine.State
	ticks int
	endAt int
}

func (c *countingTicker) Start() engine.State {
	return c.state
}

func (c *countingTicker) Tick() (engine.State, engine.Report) {
	c.ticks++
	c.state.Tick++
	if c.endAt > 0 && c.ticks >= c.endAt {
		c.state.EndOfGame = true
	}
	return c.state, engine.Report{}
}

func newCountingTicker() *countingTicker {
	return &countingTicker{state: engine.State{
		Balls:  []entity.Body{body(entity.KindBall, 1, 100, 100, 3)},
		Player: body(entity.KindPlayer, 2, 60, 580, 5),
		Arena:  engine.Arena{Width: 800, Height: 600},
	}}
}

func TestSimulationSystem_FixedStep(t *testing.T) {
	tests := []struct {
		name  string
		dts   []float32
		ticks int
	}{
		{"short frame waits", []float32{0.05}, 0},
		{"one interval", []float32{0.1}, 1},
		{"accumulates", []float32{0.06, 0.06}, 1},
		{"catch up is bounded", []float32{2}, maxCatchUp},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ticker := newCountingTicker()
			sys := NewSimulationSystem(ticker, newTestRenderer(nil), 100*time.Millisecond)
			for _, dt := range tt.dts {
				sys.Update(dt)
			}
			if ticker.ticks != tt.ticks {
				t.Errorf("ticks = %d, want %d", ticker.ticks, tt.ticks)
			}
		})
	}
}

func TestSimulationSystem_StopsAtEndOfGame(t *testing.T) {
	ticker := newCountingTicker()
	ticker.endAt = 2
	r := newTestRenderer(nil)
	sys := NewSimulationSystem(ticker, r, 100*time.Millisecond)

	sys.Update(0.5)
	sys.Update(0.5)

	if ticker.ticks != 2 {
		t.Errorf("ticks = %d, want 2", ticker.ticks)
	}
	if !sys.State().EndOfGame {
		t.Error("State().EndOfGame = false, want true")
	}
	if r.Frames() != 2 {
		t.Errorf("Frames() = %d, want a frame per Update", r.Frames())
	}
}

func TestSimulationSystem_DrivesSession(t *testing.T) {
	session := newTestSession(t, testConfig())
	r := newTestRenderer(nil)
	sys := NewSimulationSystem(session, r, session.Config.TickInterval())

	interval := float32(session.Config.TickInterval().Seconds())
	for i := 0; i < 3; i++ {
		sys.Update(interval)
	}

	st := sys.State()
	if st.Tick == 0 {
		t.Error("session did not advance")
	}
	if st.Tick != session.State().Tick {
		t.Errorf("system tick %d out of step with session tick %d", st.Tick, session.State().Tick)
	}
	if r.Len() != len(st.Balls)+1 {
		t.Errorf("renderer holds %d sprites, want %d", r.Len(), len(st.Balls)+1)
	}
}

func TestNewGameScene(t *testing.T) {
	session := newTestSession(t, testConfig())
	scene := NewGameScene(session, quietLogger())

	if scene.Type() != "GameScene" {
		t.Errorf("Type() = %q, want %q", scene.Type(), "GameScene")
	}
	if scene.session != session {
		t.Error("session not stored")
	}
	if scene.palette == nil {
		t.Fatal("palette not built")
	}

	// Exit before Setup must not panic.
	scene.Exit()
}
