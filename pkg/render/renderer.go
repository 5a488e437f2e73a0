// pkg/render/renderer.go
package render

import (
	"context"

	"github.com/opd-ai/go-bounce/pkg/entity"
	"github.com/opd-ai/go-bounce/pkg/logging"
)

// NullRenderer draws nothing and logs every call at debug level.
type NullRenderer struct {
	logger *logging.Logger
	ctx    context.Context
	frames uint64
}

// NewNullRenderer creates a new NullRenderer. A nil logger selects the
// environment-configured default.
func NewNullRenderer(ctx context.Context, logger *logging.Logger) *NullRenderer {
	if logger == nil {
		logger = logging.NewLogger()
	}
	if ctx == nil {
		ctx = context.Background()
	}
	return &NullRenderer{logger: logger, ctx: ctx}
}

// Frames returns how many frames have been presented
func (d *NullRenderer) Frames() uint64 {
	return d.frames
}

// Clear implements entity.Renderer.
func (d *NullRenderer) Clear() {
	d.logger.Debug(d.ctx, "Clear called", "frame", d.frames)
}

// Present implements entity.Renderer.
func (d *NullRenderer) Present() {
	d.logger.Debug(d.ctx, "Present called", "frame", d.frames)
	d.frames++
}

// RenderBall implements entity.Renderer.
func (d *NullRenderer) RenderBall(ball entity.Body) {
	d.logger.Debug(d.ctx, "RenderBall called",
		"ball_id", uint64(ball.ID),
		"x", ball.Coord.Position.X,
		"y", ball.Coord.Position.Y,
		"life", ball.Life,
		"invincible", ball.Invincibility.Remaining(),
	)
}

// RenderPlayer implements entity.Renderer.
func (d *NullRenderer) RenderPlayer(player entity.Body) {
	d.logger.Debug(d.ctx, "RenderPlayer called",
		"x", player.Coord.Position.X,
		"y", player.Coord.Position.Y,
		"vx", player.Coord.Velocity.X,
		"vy", player.Coord.Velocity.Y,
		"life", player.Life,
		"invincible", player.Invincibility.Remaining(),
	)
}
