// pkg/render/renderer_test.go
package render

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/opd-ai/go-bounce/pkg/entity"
	"github.com/opd-ai/go-bounce/pkg/logging"
	"github.com/opd-ai/go-bounce/pkg/physics"
)

// captureLog returns a debug-level renderer whose output lands in the buffer
func captureLog(t *testing.T) (*NullRenderer, *bytes.Buffer) {
	t.Helper()
	t.Setenv("BOUNCE_LOG_LEVEL", "DEBUG")
	var buf bytes.Buffer
	return NewNullRenderer(context.Background(), logging.NewLoggerWithWriter(&buf)), &buf
}

func TestNullRenderer_ImplementsRenderer(t *testing.T) {
	var _ entity.Renderer = (*NullRenderer)(nil)
}

func TestNullRenderer_ClearAndPresent(t *testing.T) {
	renderer, buf := captureLog(t)

	renderer.Clear()
	renderer.Present()

	output := buf.String()
	if !strings.Contains(output, "Clear called") {
		t.Errorf("Expected log to contain 'Clear called', got: %s", output)
	}
	if !strings.Contains(output, "Present called") {
		t.Errorf("Expected log to contain 'Present called', got: %s", output)
	}
	if renderer.Frames() != 1 {
		t.Errorf("Frames() = %d, want 1", renderer.Frames())
	}
}

func TestNullRenderer_RenderBodies(t *testing.T) {
	tests := []struct {
		name     string
		render   func(r *NullRenderer)
		expected []string
	}{
		{
			name: "ball",
			render: func(r *NullRenderer) {
				r.RenderBall(entity.NewBall(77, physics.Coordinate{Position: physics.Vector2D{X: 1, Y: 2}}, 3))
			},
			expected: []string{"RenderBall called", `"ball_id":77`, `"life":3`},
		},
		{
			name: "invincible_player",
			render: func(r *NullRenderer) {
				p := entity.NewPlayer(1, physics.Coordinate{}, 4)
				p.Invincibility = entity.InvincibleFor(12)
				r.RenderPlayer(p)
			},
			expected: []string{"RenderPlayer called", `"life":4`, `"invincible":12`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			renderer, buf := captureLog(t)
			tt.render(renderer)

			for _, want := range tt.expected {
				if !strings.Contains(buf.String(), want) {
					t.Errorf("log missing %s: %s", want, buf.String())
				}
			}
		})
	}
}

func TestNullRenderer_SilentAtInfo(t *testing.T) {
	t.Setenv("BOUNCE_LOG_LEVEL", "INFO")
	var buf bytes.Buffer
	renderer := NewNullRenderer(nil, logging.NewLoggerWithWriter(&buf))

	renderer.Clear()
	renderer.RenderBall(entity.Body{})
	renderer.Present()

	if buf.Len() != 0 {
		t.Errorf("expected no output at INFO level, got %s", buf.String())
	}
}
