package engine

import "github.com/opd-ai/go-bounce/pkg/entity"

// Render draws one frame of s: clear, every ball in order, the player, present.
func Render(s State, r entity.Renderer) {
	r.Clear()
	for _, b := range s.Balls {
		r.RenderBall(b)
	}
	r.RenderPlayer(s.Player)
	r.Present()
}
