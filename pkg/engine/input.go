// pkg/engine/input.go
package engine

import (
	"time"

	"github.com/opd-ai/go-bounce/pkg/config"
	"github.com/opd-ai/go-bounce/pkg/physics"
)

// Key names understood by KeyDown. Other keys are accepted and ignored.
const (
	KeyArrowLeft  = "ArrowLeft"
	KeyArrowRight = "ArrowRight"
)

// InputMapper turns pointer gestures and key events into player velocity
// changes. Every method returns a new State and leaves its argument untouched.
type InputMapper struct {
	Clock           Clock
	ArrowSpeed      float64
	ChargeFullScale time.Duration
}

// NewInputMapper creates a mapper from the input settings
func NewInputMapper(cfg config.InputConfig, clock Clock) *InputMapper {
	if clock == nil {
		clock = SystemClock{}
	}
	return &InputMapper{
		Clock:           clock,
		ArrowSpeed:      cfg.ArrowSpeed,
		ChargeFullScale: time.Duration(cfg.ChargeFullScale),
	}
}

// BeginPress records a pending gesture at pos, replacing any earlier one.
func (m *InputMapper) BeginPress(s State, pos physics.Vector2D) State {
	next := s.Clone()
	next.Press = &Gesture{Start: m.Clock.Now(), Anchor: pos}
	return next
}

// EndPress releases the pending gesture. The player is pushed along the
// vector from the anchor to the player, scaled by how long the press was held
// relative to ChargeFullScale. Without a pending gesture nothing changes.
func (m *InputMapper) EndPress(s State) State {
	if s.Press == nil {
		return s.Clone()
	}

	next := s.Clone()
	held := m.Clock.Now().Sub(s.Press.Start)
	charge := 0.0
	if m.ChargeFullScale > 0 {
		charge = float64(held) / float64(m.ChargeFullScale)
	}

	push := next.Player.Coord.Position.Sub(s.Press.Anchor).Scale(charge)
	next.Player.Coord.Velocity = next.Player.Coord.Velocity.Add(push)
	next.Press = nil
	return next
}

// PointerMove is accepted for completeness; pointer motion has no effect.
func (m *InputMapper) PointerMove(s State, pos physics.Vector2D) State {
	return s.Clone()
}

// KeyDown sets the player moving horizontally for the arrow keys.
func (m *InputMapper) KeyDown(s State, key string) State {
	next := s.Clone()
	switch key {
	case KeyArrowLeft:
		next.Player.Coord.Velocity = physics.Vector2D{X: -m.ArrowSpeed}
	case KeyArrowRight:
		next.Player.Coord.Velocity = physics.Vector2D{X: m.ArrowSpeed}
	}
	return next
}

// KeyUp stops the player, whichever key was released.
func (m *InputMapper) KeyUp(s State) State {
	next := s.Clone()
	next.Player.Coord.Velocity = physics.Vector2D{}
	return next
}
