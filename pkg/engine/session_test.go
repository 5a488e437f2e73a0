package engine

import (
	"context"
	"errors"
	"math"
	"sync"
	"testing"
	"time"

	"github.com/opd-ai/go-bounce/pkg/config"
	"github.com/opd-ai/go-bounce/pkg/event"
	"github.com/opd-ai/go-bounce/pkg/physics"
)

func newTestSession(t *testing.T, cfg *config.GameConfig, opts ...Option) *Session {
	t.Helper()
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	opts = append([]Option{WithLogger(quietLogger()), WithRand(seeded(3))}, opts...)
	s, err := NewSession(cfg, opts...)
	if err != nil {
		t.Fatalf("NewSession() failed: %v", err)
	}
	return s
}

// replaceState swaps the session state for a hand-built one.
func replaceState(s *Session, st State) {
	s.mu.Lock()
	s.state = st
	s.mu.Unlock()
}

func TestNewSession_InvalidConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Physics.Radius = -1

	_, err := NewSession(cfg, WithLogger(quietLogger()))
	if !errors.Is(err, config.ErrInvalidConfig) {
		t.Errorf("NewSession() error = %v, want ErrInvalidConfig", err)
	}
}

func TestSession_StartPublishesOnce(t *testing.T) {
	s := newTestSession(t, nil)
	started := 0
	s.EventBus.Subscribe(event.GameStarted, func(e event.Event) { started++ })

	if !s.State().EndOfGame {
		t.Error("state before Start should carry EndOfGame=true")
	}

	st := s.Start()
	s.Start()

	if st.EndOfGame {
		t.Error("a started game with a ball and a live player is ongoing")
	}
	if started != 1 {
		t.Errorf("GameStarted published %d times, want 1", started)
	}
	if s.Context() == nil {
		t.Error("session context missing")
	}
}

func TestSession_InputsAppliedInOrder(t *testing.T) {
	tests := []struct {
		name   string
		inputs []Input
		wantVX float64
	}{
		{
			name:   "down_then_up",
			inputs: []Input{{Kind: InputKeyDown, Key: KeyArrowLeft}, {Kind: InputKeyUp}},
			wantVX: 0,
		},
		{
			name:   "up_then_down",
			inputs: []Input{{Kind: InputKeyUp}, {Kind: InputKeyDown, Key: KeyArrowLeft}},
			wantVX: -10 * 0.998,
		},
		{
			name:   "left_then_right",
			inputs: []Input{{Kind: InputKeyDown, Key: KeyArrowLeft}, {Kind: InputKeyDown, Key: KeyArrowRight}},
			wantVX: 10 * 0.998,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestSession(t, nil)
			s.Start()
			replaceState(s, testState(ball(1, 600, 100, 0, 0, 3)))

			for _, in := range tt.inputs {
				if !s.Submit(in) {
					t.Fatalf("Submit(%v) rejected", in.Kind)
				}
			}
			st, _ := s.Tick()

			if math.Abs(st.Player.Coord.Velocity.X-tt.wantVX) > tolerance {
				t.Errorf("player vx = %v, want %v", st.Player.Coord.Velocity.X, tt.wantVX)
			}
		})
	}
}

func TestSession_PressGesture(t *testing.T) {
	clock := NewManualClock(time.Unix(0, 0))
	s := newTestSession(t, nil, WithClock(clock))
	s.Start()
	replaceState(s, testState(ball(1, 600, 100, 0, 0, 3)))

	s.Submit(Input{Kind: InputPressStart, Pos: physics.Vector2D{X: 60, Y: 680}})
	s.Submit(Input{Kind: InputPointerMove, Pos: physics.Vector2D{X: 0, Y: 0}})
	st, _ := s.Tick()
	if st.Press == nil {
		t.Fatal("gesture should be pending after the first tick")
	}

	clock.Advance(4 * time.Second)
	s.Submit(Input{Kind: InputPressEnd})
	st, _ = s.Tick()

	if st.Press != nil {
		t.Error("gesture should be cleared")
	}
	// (player - anchor) * 4s/20s = (0, -100) * 0.2, then friction
	if got := st.Player.Coord.Velocity; got.X != 0 || math.Abs(got.Y+20*0.998) > tolerance {
		t.Errorf("player velocity = %+v, want (0, %v)", got, -20*0.998)
	}
}

func TestSession_SubmitDropsWhenFull(t *testing.T) {
	s := newTestSession(t, nil, WithInputBuffer(2))

	if !s.Submit(Input{Kind: InputKeyUp}) || !s.Submit(Input{Kind: InputKeyUp}) {
		t.Fatal("first two inputs should be accepted")
	}
	if s.Submit(Input{Kind: InputKeyUp}) {
		t.Error("third input should be dropped")
	}

	s.Tick()
	if !s.Submit(Input{Kind: InputKeyUp}) {
		t.Error("queue should be drained by Tick")
	}
}

func TestSession_SubmitRejectsMalformedInput(t *testing.T) {
	tests := []struct {
		name string
		in   Input
	}{
		{"nan press", Input{Kind: InputPressStart, Pos: physics.Vector2D{X: math.NaN(), Y: 10}}},
		{"infinite move", Input{Kind: InputPointerMove, Pos: physics.Vector2D{X: 10, Y: math.Inf(1)}}},
		{"control key", Input{Kind: InputKeyDown, Key: "Arrow\x00Left"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestSession(t, nil)
			if s.Submit(tt.in) {
				t.Fatal("Submit() accepted a malformed input")
			}
			st, _ := s.Tick()
			assertFinite(t, st)
		})
	}
}

func TestSession_SubmitTrimsKeyName(t *testing.T) {
	s := newTestSession(t, nil)
	if !s.Submit(Input{Kind: InputKeyDown, Key: " ArrowRight "}) {
		t.Fatal("Submit() rejected a padded key name")
	}
	st, _ := s.Tick()
	if st.Player.Velocity().X <= 0 {
		t.Errorf("player vx = %v, want positive after ArrowRight", st.Player.Velocity().X)
	}
}

func TestSession_TickPublishesEvents(t *testing.T) {
	s := newTestSession(t, nil)
	s.Start()

	st := testState(ball(1, 70, 560, 0, 0, 1))
	st.Player.Life = 3
	replaceState(s, st)

	var mu sync.Mutex
	seen := make(map[event.Type]int)
	var outcome event.Outcome
	for _, typ := range []event.Type{event.BallCollision, event.PlayerHit, event.BallDestroyed, event.GameEnded} {
		s.EventBus.Subscribe(typ, func(e event.Event) {
			mu.Lock()
			defer mu.Unlock()
			seen[e.GetType()]++
			if ge, ok := e.(*event.GameEvent); ok {
				outcome = ge.Outcome
			}
		})
	}

	next, report := s.Tick()

	if !next.EndOfGame {
		t.Error("last ball destroyed, game should be over")
	}
	if len(report.Pruned) != 1 {
		t.Errorf("report.Pruned = %v", report.Pruned)
	}
	for _, typ := range []event.Type{event.BallCollision, event.PlayerHit, event.BallDestroyed, event.GameEnded} {
		if seen[typ] != 1 {
			t.Errorf("%s published %d times, want 1", typ, seen[typ])
		}
	}
	if outcome != event.OutcomeWon {
		t.Errorf("outcome = %q, want won", outcome)
	}

	// further ticks are inert
	again, rep := s.Tick()
	if again.Tick != next.Tick || len(rep.Contacts) != 0 {
		t.Error("ticking a finished game should not advance it")
	}
}

func TestSession_RunUntilPlayerDies(t *testing.T) {
	s := newTestSession(t, nil)
	s.Start()

	st := testState(ball(1, 60, 560, 0, 0, 10))
	st.Player.Life = 1
	replaceState(s, st)

	frames := 0
	final, err := s.Run(context.Background(), time.Millisecond, func(State) { frames++ })
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if !final.EndOfGame || final.Player.Life != 0 {
		t.Errorf("final state = %+v", final)
	}
	if Outcome(final) != event.OutcomeLost {
		t.Errorf("Outcome() = %q, want lost", Outcome(final))
	}
	if frames != 1 {
		t.Errorf("onFrame called %d times, want 1", frames)
	}
}

func TestSession_RunCancelled(t *testing.T) {
	s := newTestSession(t, nil)
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := s.Run(ctx, time.Hour, nil)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Run() error = %v, want deadline exceeded", err)
	}
}

func TestSession_ZeroBallsEndsAtStart(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Game.Balls = 0
	s := newTestSession(t, cfg)

	ended := false
	s.EventBus.Subscribe(event.GameEnded, func(e event.Event) { ended = true })

	st, err := s.Run(context.Background(), time.Millisecond, nil)
	if err != nil || !st.EndOfGame {
		t.Errorf("Run() = %+v, %v; want finished state", st, err)
	}
	if !ended {
		t.Error("GameEnded should be published for an empty arena")
	}
}

func TestSession_ConcurrentSubmit(t *testing.T) {
	s := newTestSession(t, nil, WithInputBuffer(1000))
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				s.Submit(Input{Kind: InputPointerMove})
				_ = s.State()
			}
		}()
	}
	for i := 0; i < 20; i++ {
		s.Tick()
	}
	wg.Wait()
}

func TestOutcome(t *testing.T) {
	tests := []struct {
		name       string
		playerLife int
		balls      int
		expected   event.Outcome
	}{
		{"ongoing", 3, 2, event.OutcomeNone},
		{"won", 3, 0, event.OutcomeWon},
		{"lost", 0, 2, event.OutcomeLost},
		{"lost_on_last_ball", 0, 0, event.OutcomeLost},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := testState()
			st.Player.Life = tt.playerLife
			for i := 0; i < tt.balls; i++ {
				st.Balls = append(st.Balls, ball(1, 0, 0, 0, 0, 1))
			}
			if got := Outcome(st); got != tt.expected {
				t.Errorf("Outcome() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestInputKind_String(t *testing.T) {
	kinds := map[InputKind]string{
		InputPressStart:  "press_start",
		InputPressEnd:    "press_end",
		InputPointerMove: "pointer_move",
		InputKeyDown:     "key_down",
		InputKeyUp:       "key_up",
		InputKind(99):    "unknown",
	}
	for k, want := range kinds {
		if got := k.String(); got != want {
			t.Errorf("String() = %q, want %q", got, want)
		}
	}
}
