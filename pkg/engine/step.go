// pkg/engine/step.go
package engine

import (
	"github.com/opd-ai/go-bounce/pkg/config"
	"github.com/opd-ai/go-bounce/pkg/entity"
	"github.com/opd-ai/go-bounce/pkg/physics"
)

// Contact is one resolved collision. For ball-player contacts B is the player.
type Contact struct {
	A      entity.ID
	B      entity.ID
	Player bool
}

// Report describes what happened during one Step.
type Report struct {
	Contacts  []Contact
	Pruned    []entity.ID
	PlayerHit bool
}

// Simulator advances game states by one tick. It holds only constants, so a
// single Simulator may be shared between goroutines.
type Simulator struct {
	Physics config.PhysicsConfig
}

// NewSimulator creates a simulator for the given physics settings
func NewSimulator(cfg config.PhysicsConfig) *Simulator {
	return &Simulator{Physics: cfg}
}

// Step returns the state one tick after s.
func (sim *Simulator) Step(s State) State {
	next, _ := sim.Advance(s)
	return next
}

// Advance returns the state one tick after s along with a report of the
// collisions and removals that produced it. s is not modified.
//
// Order within a tick: ball-ball pairs in ascending index order, then each
// ball against the player, then invincibility countdown and integration for
// every body, then removal of balls with no life left.
func (sim *Simulator) Advance(s State) (State, Report) {
	next := s.Clone()
	var report Report

	radius := sim.Physics.Radius
	for _, p := range sim.candidatePairs(next.Balls) {
		a, b := &next.Balls[p.I], &next.Balls[p.J]
		if !a.Collider(radius).Collides(b.Collider(radius)) {
			continue
		}
		sim.resolve(a, b)
		report.Contacts = append(report.Contacts, Contact{A: a.ID, B: b.ID})
	}

	for i := range next.Balls {
		ball := &next.Balls[i]
		if !ball.Collider(radius).Collides(next.Player.Collider(radius)) {
			continue
		}
		_, playerLost := sim.resolve(ball, &next.Player)
		report.PlayerHit = report.PlayerHit || playerLost
		report.Contacts = append(report.Contacts, Contact{A: ball.ID, B: next.Player.ID, Player: true})
	}

	motion := physics.Motion{
		Radius:   radius,
		Friction: sim.Physics.Friction,
		MinMove:  sim.Physics.MinMove,
	}
	bounds := next.Arena.Bounds()

	for i := range next.Balls {
		next.Balls[i] = integrate(next.Balls[i], s.Balls[i].Invincibility, motion, bounds)
	}
	next.Player = integrate(next.Player, s.Player.Invincibility, motion, bounds)

	alive := next.Balls[:0]
	for _, b := range next.Balls {
		if b.Alive() {
			alive = append(alive, b)
		} else {
			report.Pruned = append(report.Pruned, b.ID)
		}
	}
	next.Balls = alive
	next.Tick++

	return next, report
}

// resolve applies the hit rule to both bodies and exchanges their normal
// velocities. It reports which of the two lost life.
func (sim *Simulator) resolve(a, b *entity.Body) (aLost, bLost bool) {
	*a, aLost = a.Hit(sim.Physics.InvincibilityTicks)
	*b, bLost = b.Hit(sim.Physics.InvincibilityTicks)
	a.Coord, b.Coord, _ = physics.Exchange(a.Coord, b.Coord)
	return aLost, bLost
}

// integrate counts down invincibility that was already running before this
// tick, so protection granted during the tick lasts its full length, then
// moves the body.
func integrate(b entity.Body, before entity.Invincibility, m physics.Motion, bounds physics.Bounds) entity.Body {
	if before.Active() {
		b.Invincibility = b.Invincibility.Tick()
	}
	b.Coord = m.Integrate(b.Coord, bounds)
	return b
}

func (sim *Simulator) candidatePairs(balls []entity.Body) []physics.Pair {
	if sim.Physics.Broadphase != config.BroadphaseGrid || len(balls) < 2 {
		return physics.AllPairs(len(balls))
	}

	grid := physics.NewGrid(2 * sim.Physics.Radius)
	for i, b := range balls {
		grid.Insert(i, b.Coord.Position)
	}
	return grid.Pairs()
}

// IsGameOngoing reports whether the player is alive and any ball remains.
func IsGameOngoing(s State) bool {
	return s.Player.Life > 0 && len(s.Balls) > 0
}
