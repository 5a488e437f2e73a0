package render

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/opd-ai/go-bounce/pkg/entity"
	"github.com/opd-ai/go-bounce/pkg/physics"
)

// Glyphs used by the terminal renderer
const (
	glyphBall             = 'o'
	glyphBallInvincible   = '0'
	glyphPlayer           = '@'
	glyphPlayerInvincible = '*'
)

// TerminalRenderer provides a simple ASCII-based rendering for terminals.
// The whole arena is scaled to fit the character grid.
type TerminalRenderer struct {
	out         io.Writer
	width       int
	height      int
	buffer      [][]rune
	arena       physics.Bounds
	clearScreen bool

	balls      int
	ballLife   int
	playerLife int
	shield     int
}

// NewTerminalRenderer creates a renderer drawing an arena onto a width x height grid
func NewTerminalRenderer(out io.Writer, width, height int, arena physics.Bounds) *TerminalRenderer {
	buffer := make([][]rune, height)
	for i := range buffer {
		buffer[i] = make([]rune, width)
	}

	r := &TerminalRenderer{
		out:    out,
		width:  width,
		height: height,
		buffer: buffer,
		arena:  arena,
	}
	r.Clear()
	return r
}

// SetClearScreen makes Present emit an ANSI clear before each frame
func (r *TerminalRenderer) SetClearScreen(enabled bool) {
	r.clearScreen = enabled
}

// worldToScreen converts arena coordinates to grid cells
func (r *TerminalRenderer) worldToScreen(pos physics.Vector2D) (int, int) {
	if r.arena.Width <= 0 || r.arena.Height <= 0 {
		return -1, -1
	}
	screenX := int(pos.X / r.arena.Width * float64(r.width))
	screenY := int(pos.Y / r.arena.Height * float64(r.height))
	if screenX == r.width {
		screenX--
	}
	if screenY == r.height {
		screenY--
	}
	return screenX, screenY
}

func (r *TerminalRenderer) plot(pos physics.Vector2D, glyph rune) {
	x, y := r.worldToScreen(pos)
	if x >= 0 && x < r.width && y >= 0 && y < r.height {
		r.buffer[y][x] = glyph
	}
}

// Clear implements entity.Renderer
func (r *TerminalRenderer) Clear() {
	for y := range r.buffer {
		for x := range r.buffer[y] {
			r.buffer[y][x] = ' '
		}
	}
	r.balls, r.ballLife, r.playerLife, r.shield = 0, 0, 0, 0
}

// RenderBall implements entity.Renderer
func (r *TerminalRenderer) RenderBall(ball entity.Body) {
	glyph := glyphBall
	if ball.Invincibility.Active() {
		glyph = glyphBallInvincible
	}
	r.plot(ball.Coord.Position, glyph)
	r.balls++
	r.ballLife += ball.Life
}

// RenderPlayer implements entity.Renderer
func (r *TerminalRenderer) RenderPlayer(player entity.Body) {
	glyph := glyphPlayer
	if player.Invincibility.Active() {
		glyph = glyphPlayerInvincible
	}
	r.plot(player.Coord.Position, glyph)
	r.playerLife = player.Life
	r.shield = player.Invincibility.Remaining()
}

// Present implements entity.Renderer
func (r *TerminalRenderer) Present() {
	w := bufio.NewWriter(r.out)
	defer w.Flush()

	if r.clearScreen {
		fmt.Fprint(w, "\033[H\033[2J")
	}

	border := "+" + strings.Repeat("-", r.width) + "+"
	fmt.Fprintln(w, border)
	for y := range r.buffer {
		fmt.Fprintf(w, "|%s|\n", string(r.buffer[y]))
	}
	fmt.Fprintln(w, border)
	fmt.Fprintln(w, r.StatusLine())
}

// StatusLine summarizes the frame drawn since the last Clear
func (r *TerminalRenderer) StatusLine() string {
	status := fmt.Sprintf("life %d  balls %d  ball life %d", r.playerLife, r.balls, r.ballLife)
	if r.shield > 0 {
		status += fmt.Sprintf("  invincible %d", r.shield)
	}
	return status
}
