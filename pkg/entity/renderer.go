package entity

// Renderer draws one frame of bodies. Implementations receive copies and must
// not retain them across frames.
type Renderer interface {
	RenderBall(ball Body)
	RenderPlayer(player Body)
	Clear()
	Present()
}
