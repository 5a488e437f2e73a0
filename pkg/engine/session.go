// pkg/engine/session.go
package engine

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/opd-ai/go-bounce/pkg/config"
	"github.com/opd-ai/go-bounce/pkg/event"
	"github.com/opd-ai/go-bounce/pkg/logging"
	"github.com/opd-ai/go-bounce/pkg/physics"
	"github.com/opd-ai/go-bounce/pkg/validation"
)

// InputKind identifies a queued input command
type InputKind int

const (
	InputPressStart InputKind = iota
	InputPressEnd
	InputPointerMove
	InputKeyDown
	InputKeyUp
)

// String returns the input kind name
func (k InputKind) String() string {
	switch k {
	case InputPressStart:
		return "press_start"
	case InputPressEnd:
		return "press_end"
	case InputPointerMove:
		return "pointer_move"
	case InputKeyDown:
		return "key_down"
	case InputKeyUp:
		return "key_up"
	default:
		return "unknown"
	}
}

// Input is one user action waiting to be applied at the next tick.
type Input struct {
	Kind InputKind
	Pos  physics.Vector2D
	Key  string
}

const defaultInputBuffer = 64

// Session owns a running game. Any goroutine may Submit inputs; a single
// goroutine calls Tick (directly or through Run), which applies queued inputs
// in arrival order and then advances the simulation.
type Session struct {
	Config   *config.GameConfig
	EventBus *event.Bus

	sim    *Simulator
	mapper *InputMapper
	logger *logging.Logger
	ctx    context.Context
	inputs chan Input

	mu      sync.RWMutex
	state   State
	started bool

	clock       Clock
	rng         *rand.Rand
	inputBuffer int
}

// Option configures a Session
type Option func(*Session)

// WithClock sets the clock used to time press gestures
func WithClock(c Clock) Option {
	return func(s *Session) { s.clock = c }
}

// WithRand sets the random source used for the opening spawn
func WithRand(r *rand.Rand) Option {
	return func(s *Session) { s.rng = r }
}

// WithLogger sets the session logger
func WithLogger(l *logging.Logger) Option {
	return func(s *Session) { s.logger = l }
}

// WithEventBus publishes session events on an existing bus
func WithEventBus(b *event.Bus) Option {
	return func(s *Session) { s.EventBus = b }
}

// WithInputBuffer sets how many inputs may wait between ticks
func WithInputBuffer(n int) Option {
	return func(s *Session) { s.inputBuffer = n }
}

// NewSession validates cfg and builds the opening state.
func NewSession(cfg *config.GameConfig, opts ...Option) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	s := &Session{
		Config:      cfg,
		inputBuffer: defaultInputBuffer,
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.clock == nil {
		s.clock = SystemClock{}
	}
	if s.rng == nil {
		s.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if s.logger == nil {
		s.logger = logging.NewLogger()
	}
	if s.EventBus == nil {
		s.EventBus = event.NewEventBus()
	}
	if s.inputBuffer <= 0 {
		s.inputBuffer = defaultInputBuffer
	}

	s.ctx = logging.WithSessionID(context.Background(), "")
	s.sim = NewSimulator(cfg.Physics)
	s.mapper = NewInputMapper(cfg.Input, s.clock)
	s.inputs = make(chan Input, s.inputBuffer)
	s.state = NewState(cfg, s.rng)

	return s, nil
}

// Context carries the session ID for log correlation
func (s *Session) Context() context.Context {
	return s.ctx
}

// State returns a copy of the current state
func (s *Session) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Clone()
}

// Submit queues an input for the next tick. It never blocks: when the queue
// is full, or the input carries a non-finite position or a malformed key
// name, the input is dropped and false is returned.
func (s *Session) Submit(in Input) bool {
	if err := validateInput(&in); err != nil {
		s.logger.Warn(s.ctx, "rejecting input",
			"kind", in.Kind.String(),
			"error", err.Error(),
		)
		return false
	}

	select {
	case s.inputs <- in:
		return true
	default:
		s.logger.Warn(s.ctx, "input queue full, dropping input",
			"kind", in.Kind.String(),
			"capacity", cap(s.inputs),
		)
		return false
	}
}

// Start marks the game as running and publishes GameStarted. Calling it
// again has no effect.
func (s *Session) Start() State {
	s.mu.Lock()
	if s.started {
		st := s.state.Clone()
		s.mu.Unlock()
		return st
	}
	s.started = true
	s.state.EndOfGame = !IsGameOngoing(s.state)
	st := s.state.Clone()
	s.mu.Unlock()

	s.logger.Info(s.ctx, "game started",
		"balls", len(st.Balls),
		"player_life", st.Player.Life,
		"arena_width", st.Arena.Width,
		"arena_height", st.Arena.Height,
	)
	s.EventBus.Publish(event.NewGameEvent(event.GameStarted, s, st.Tick, len(st.Balls), event.OutcomeNone))
	if st.EndOfGame {
		s.publishEnd(st)
	}
	return st
}

// Tick applies every queued input in order, advances one step and publishes
// the resulting events. A finished game is returned unchanged.
func (s *Session) Tick() (State, Report) {
	s.Start()

	s.mu.Lock()
	if s.state.EndOfGame {
		st := s.state.Clone()
		s.mu.Unlock()
		return st, Report{}
	}

	st := s.state
	for drained := false; !drained; {
		select {
		case in := <-s.inputs:
			st = s.apply(st, in)
		default:
			drained = true
		}
	}

	next, report := s.sim.Advance(st)
	next.EndOfGame = !IsGameOngoing(next)
	s.state = next
	out := next.Clone()
	s.mu.Unlock()

	s.publish(out, report)
	return out, report
}

// Run ticks every interval until the game ends or ctx is cancelled. onFrame,
// when non-nil, receives each new state. The final state is returned, with
// ctx.Err() if the game was interrupted.
func (s *Session) Run(ctx context.Context, interval time.Duration, onFrame func(State)) (State, error) {
	st := s.Start()
	if st.EndOfGame {
		return st, nil
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info(s.ctx, "session interrupted", "tick", st.Tick)
			return st, ctx.Err()
		case <-ticker.C:
			st, _ = s.Tick()
			if onFrame != nil {
				onFrame(st)
			}
			if st.EndOfGame {
				return st, nil
			}
		}
	}
}

func validateInput(in *Input) error {
	if err := validation.ValidatePosition(in.Pos); err != nil {
		return err
	}
	key, err := validation.ValidateKeyName(in.Key)
	if err != nil {
		return err
	}
	in.Key = key
	return nil
}

func (s *Session) apply(st State, in Input) State {
	switch in.Kind {
	case InputPressStart:
		return s.mapper.BeginPress(st, in.Pos)
	case InputPressEnd:
		return s.mapper.EndPress(st)
	case InputPointerMove:
		return s.mapper.PointerMove(st, in.Pos)
	case InputKeyDown:
		return s.mapper.KeyDown(st, in.Key)
	case InputKeyUp:
		return s.mapper.KeyUp(st)
	default:
		s.logger.Warn(s.ctx, "ignoring unknown input", "kind", int(in.Kind))
		return st
	}
}

func (s *Session) publish(st State, report Report) {
	for _, c := range report.Contacts {
		s.logger.Debug(s.ctx, "collision", "tick", st.Tick, "a", uint64(c.A), "b", uint64(c.B), "player", c.Player)
		s.EventBus.Publish(event.NewCollisionEvent(s, uint64(c.A), uint64(c.B), c.Player))
	}
	if report.PlayerHit {
		s.logger.Info(s.ctx, "player hit", "tick", st.Tick, "life", st.Player.Life)
		s.EventBus.Publish(event.NewLifeEvent(event.PlayerHit, s, uint64(st.Player.ID), st.Player.Life))
	}
	for _, id := range report.Pruned {
		s.logger.Info(s.ctx, "ball destroyed", "tick", st.Tick, "ball", uint64(id), "remaining", len(st.Balls))
		s.EventBus.Publish(event.NewLifeEvent(event.BallDestroyed, s, uint64(id), 0))
	}
	if st.EndOfGame {
		s.publishEnd(st)
	}
}

func (s *Session) publishEnd(st State) {
	outcome := Outcome(st)
	s.logger.Info(s.ctx, "game ended",
		"tick", st.Tick,
		"outcome", string(outcome),
		"player_life", st.Player.Life,
		"balls", len(st.Balls),
	)
	s.EventBus.Publish(event.NewGameEvent(event.GameEnded, s, st.Tick, len(st.Balls), outcome))
}

// Outcome classifies a state. A dead player loses even if the last ball
// went down on the same tick.
func Outcome(st State) event.Outcome {
	switch {
	case st.Player.Life <= 0:
		return event.OutcomeLost
	case len(st.Balls) == 0:
		return event.OutcomeWon
	default:
		return event.OutcomeNone
	}
}
