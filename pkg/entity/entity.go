// pkg/entity/entity.go
package entity

import (
	"sync/atomic"

	"github.com/opd-ai/go-bounce/pkg/physics"
)

// ID is a unique identifier for an entity
type ID uint64

var nextID atomic.Uint64

// GenerateID returns a process-wide unique, non-zero ID.
func GenerateID() ID {
	return ID(nextID.Add(1))
}

// Kind distinguishes the two body variants.
type Kind int

const (
	KindBall Kind = iota
	KindPlayer
)

// String returns the kind name
func (k Kind) String() string {
	switch k {
	case KindBall:
		return "ball"
	case KindPlayer:
		return "player"
	default:
		return "unknown"
	}
}

// Body is a moving circle with a life counter: a ball or the player.
// Bodies are values; the engine replaces them rather than mutating shared copies.
type Body struct {
	ID            ID
	Kind          Kind
	Coord         physics.Coordinate
	Life          int
	Invincibility Invincibility
}

// NewBall creates a vulnerable ball.
func NewBall(id ID, coord physics.Coordinate, life int) Body {
	return Body{ID: id, Kind: KindBall, Coord: coord, Life: life}
}

// NewPlayer creates a vulnerable player body.
func NewPlayer(id ID, coord physics.Coordinate, life int) Body {
	return Body{ID: id, Kind: KindPlayer, Coord: coord, Life: life}
}

// Position returns the body's center
func (b Body) Position() physics.Vector2D {
	return b.Coord.Position
}

// Velocity returns the body's per-tick displacement
func (b Body) Velocity() physics.Vector2D {
	return b.Coord.Velocity
}

// Alive reports whether the body still has life left.
func (b Body) Alive() bool {
	return b.Life > 0
}

// Collider returns the body's collision shape for the given radius
func (b Body) Collider(radius float64) physics.Circle {
	return physics.Circle{Center: b.Coord.Position, Radius: radius}
}

// Hit applies one collision penalty. A vulnerable body loses one life and
// becomes invincible for cooldown ticks; an invincible body is unchanged.
// The second result reports whether life was lost.
func (b Body) Hit(cooldown int) (Body, bool) {
	if b.Invincibility.Active() {
		return b, false
	}
	b.Life--
	b.Invincibility = InvincibleFor(cooldown)
	return b, true
}
