// pkg/event/event.go
package event

import (
	"sync"
)

// Type represents the type of event
type Type string

// Common event types
const (
	BallCollision Type = "ball_collision"
	PlayerHit     Type = "player_hit"
	BallDestroyed Type = "ball_destroyed"
	GameStarted   Type = "game_started"
	GameEnded     Type = "game_ended"
)

// Event is the base interface for all events
type Event interface {
	GetType() Type
	GetSource() interface{}
}

// BaseEvent provides common functionality for all events
type BaseEvent struct {
	EventType Type
	Source    interface{}
}

// GetType returns the event type
func (e *BaseEvent) GetType() Type {
	return e.EventType
}

// GetSource returns the event source
func (e *BaseEvent) GetSource() interface{} {
	return e.Source
}

// Handler is a function that handles events
type Handler func(Event)

// SubscriptionID identifies one registered handler
type SubscriptionID uint64

// Subscription is returned by Subscribe. Cancel removes the handler.
type Subscription struct {
	ID     SubscriptionID
	Type   Type
	Cancel func()
}

type registration struct {
	id      SubscriptionID
	handler Handler
}

// Bus manages event subscriptions and dispatching.
// Publish runs handlers synchronously on the caller's goroutine.
type Bus struct {
	handlers map[Type][]registration
	nextID   SubscriptionID
	mu       sync.RWMutex
}

// NewEventBus creates a new event bus
func NewEventBus() *Bus {
	return &Bus{
		handlers: make(map[Type][]registration),
		nextID:   1,
	}
}

// Subscribe registers a handler for a specific event type
func (b *Bus) Subscribe(eventType Type, handler Handler) *Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++
	b.handlers[eventType] = append(b.handlers[eventType], registration{id: id, handler: handler})

	return &Subscription{
		ID:   id,
		Type: eventType,
		Cancel: func() {
			b.Unsubscribe(eventType, id)
		},
	}
}

// Unsubscribe removes the handler registered under id. Unknown ids are ignored.
func (b *Bus) Unsubscribe(eventType Type, id SubscriptionID) {
	b.mu.Lock()
	defer b.mu.Unlock()

	regs, ok := b.handlers[eventType]
	if !ok {
		return
	}

	for i, r := range regs {
		if r.id == id {
			// copy so a Publish iterating the old slice is unaffected
			next := make([]registration, 0, len(regs)-1)
			next = append(next, regs[:i]...)
			next = append(next, regs[i+1:]...)
			if len(next) == 0 {
				delete(b.handlers, eventType)
			} else {
				b.handlers[eventType] = next
			}
			return
		}
	}
}

// Publish sends an event to all subscribed handlers
func (b *Bus) Publish(event Event) {
	b.mu.RLock()
	regs := b.handlers[event.GetType()]
	b.mu.RUnlock()

	for _, r := range regs {
		r.handler(event)
	}
}

// Specific event implementations

// CollisionEvent reports two bodies touching during a step
type CollisionEvent struct {
	BaseEvent
	EntityA uint64
	EntityB uint64
	Player  bool
}

// NewCollisionEvent creates a new collision event
func NewCollisionEvent(source interface{}, entityA, entityB uint64, player bool) *CollisionEvent {
	return &CollisionEvent{
		BaseEvent: BaseEvent{
			EventType: BallCollision,
			Source:    source,
		},
		EntityA: entityA,
		EntityB: entityB,
		Player:  player,
	}
}

// LifeEvent reports a body losing life or being removed
type LifeEvent struct {
	BaseEvent
	EntityID uint64
	Life     int
}

// NewLifeEvent creates a PlayerHit or BallDestroyed event
func NewLifeEvent(eventType Type, source interface{}, entityID uint64, life int) *LifeEvent {
	return &LifeEvent{
		BaseEvent: BaseEvent{
			EventType: eventType,
			Source:    source,
		},
		EntityID: entityID,
		Life:     life,
	}
}

// Outcome of a finished game
type Outcome string

const (
	OutcomeNone Outcome = ""
	OutcomeWon  Outcome = "won"
	OutcomeLost Outcome = "lost"
)

// GameEvent reports the start or end of a game
type GameEvent struct {
	BaseEvent
	Tick    uint64
	Balls   int
	Outcome Outcome
}

// NewGameEvent creates a GameStarted or GameEnded event
func NewGameEvent(eventType Type, source interface{}, tick uint64, balls int, outcome Outcome) *GameEvent {
	return &GameEvent{
		BaseEvent: BaseEvent{
			EventType: eventType,
			Source:    source,
		},
		Tick:    tick,
		Balls:   balls,
		Outcome: outcome,
	}
}
