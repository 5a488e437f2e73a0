// pkg/render/engo/renderer.go
package engo

import (
	"image/color"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"github.com/opd-ai/go-bounce/pkg/entity"
)

// Alpha range and period (seconds) of the flash shown while a body is
// invincible.
const (
	flashHigh   float32 = 255
	flashLow    float32 = 60
	flashPeriod float32 = 0.15
)

// renderSink is the part of common.RenderSystem the renderer needs
type renderSink interface {
	Add(basic *ecs.BasicEntity, render *common.RenderComponent, space *common.SpaceComponent)
	Remove(basic ecs.BasicEntity)
}

// bodySprite is the engo entity drawn for one body
type bodySprite struct {
	ecs.BasicEntity
	common.RenderComponent
	common.SpaceComponent

	kind  entity.Kind
	seen  bool
	flash *gween.Tween
}

// EngoRenderer implements entity.Renderer on top of the engo render system.
// Each body keeps one circle entity for as long as it appears in frames;
// entities missing from a frame are removed at Present.
type EngoRenderer struct {
	sink    renderSink
	palette *Palette
	radius  float32

	sprites map[entity.ID]*bodySprite
	dt      float32
	frames  uint64
}

// NewEngoRenderer creates a renderer that registers its entities with sink.
// A nil sink keeps the bookkeeping without drawing anything.
func NewEngoRenderer(sink renderSink, palette *Palette, radius float64) *EngoRenderer {
	return &EngoRenderer{
		sink:    sink,
		palette: palette,
		radius:  float32(radius),
		sprites: make(map[entity.ID]*bodySprite),
	}
}

// SetDelta sets the frame time used to advance flash tweens
func (r *EngoRenderer) SetDelta(dt float32) {
	r.dt = dt
}

// Frames returns the number of presented frames
func (r *EngoRenderer) Frames() uint64 {
	return r.frames
}

// Len returns the number of live sprites
func (r *EngoRenderer) Len() int {
	return len(r.sprites)
}

// Clear starts a new frame
func (r *EngoRenderer) Clear() {
	for _, s := range r.sprites {
		s.seen = false
	}
}

// RenderBall draws a ball
func (r *EngoRenderer) RenderBall(ball entity.Body) {
	r.draw(ball, r.palette.BallColor(ball.Life))
}

// RenderPlayer draws the player
func (r *EngoRenderer) RenderPlayer(player entity.Body) {
	r.draw(player, r.palette.PlayerColor(player.Life))
}

// Present drops sprites for bodies that were not drawn this frame
func (r *EngoRenderer) Present() {
	for id, s := range r.sprites {
		if s.seen {
			continue
		}
		if r.sink != nil {
			r.sink.Remove(s.BasicEntity)
		}
		delete(r.sprites, id)
	}
	r.frames++
}

func (r *EngoRenderer) draw(b entity.Body, fill color.NRGBA) {
	s, ok := r.sprites[b.ID]
	if !ok {
		s = r.newSprite(b.Kind)
		r.sprites[b.ID] = s
		if r.sink != nil {
			r.sink.Add(&s.BasicEntity, &s.RenderComponent, &s.SpaceComponent)
		}
	}
	s.seen = true

	pos := b.Position()
	s.SpaceComponent.Position = engo.Point{
		X: float32(pos.X) - r.radius,
		Y: float32(pos.Y) - r.radius,
	}
	s.RenderComponent.Color = r.flashColor(s, b, fill)
}

func (r *EngoRenderer) newSprite(kind entity.Kind) *bodySprite {
	s := &bodySprite{
		BasicEntity: ecs.NewBasic(),
		kind:        kind,
	}
	s.RenderComponent = common.RenderComponent{
		Drawable: common.Circle{},
	}
	s.SpaceComponent = common.SpaceComponent{
		Width:  2 * r.radius,
		Height: 2 * r.radius,
	}
	if kind == entity.KindPlayer {
		s.RenderComponent.SetZIndex(1)
	}
	return s
}

// flashColor pulses the alpha of an invincible body and resets it once the
// shield is gone.
func (r *EngoRenderer) flashColor(s *bodySprite, b entity.Body, fill color.NRGBA) color.NRGBA {
	if !b.Invincibility.Active() {
		s.flash = nil
		return fill
	}
	if s.flash == nil {
		s.flash = gween.New(flashHigh, flashLow, flashPeriod, ease.InOutSine)
	}
	alpha, done := s.flash.Update(r.dt)
	if done {
		s.flash.Reset()
	}
	return withAlpha(fill, alpha)
}
