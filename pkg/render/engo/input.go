// pkg/render/engo/input.go
package engo

import (
	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"

	"github.com/opd-ai/go-bounce/pkg/engine"
	"github.com/opd-ai/go-bounce/pkg/physics"
)

// arrowKeys maps button names to the keys they are bound to
var arrowKeys = []struct {
	name string
	key  engo.Key
}{
	{engine.KeyArrowLeft, engo.KeyArrowLeft},
	{engine.KeyArrowRight, engo.KeyArrowRight},
}

// inputSink receives translated inputs. *engine.Session satisfies it.
type inputSink interface {
	Submit(in engine.Input) bool
}

// InputSystem translates engo keyboard and mouse state into session inputs.
// It never touches the game state itself; inputs are applied at the next tick.
type InputSystem struct {
	sink inputSink

	pressed bool
	lastPos physics.Vector2D
	dropped int
}

// NewInputSystem creates an input system feeding sink
func NewInputSystem(sink inputSink) *InputSystem {
	return &InputSystem{sink: sink}
}

// SetupInputBindings registers the arrow key buttons with engo
func SetupInputBindings() {
	for _, k := range arrowKeys {
		engo.Input.RegisterButton(k.name, k.key)
	}
}

// Remove satisfies the ecs.System interface
func (is *InputSystem) Remove(basic ecs.BasicEntity) {}

// Update reads this frame's input
func (is *InputSystem) Update(dt float32) {
	for _, k := range arrowKeys {
		btn := engo.Input.Button(k.name)
		is.handleKey(k.name, btn.JustPressed(), btn.JustReleased())
	}

	m := engo.Input.Mouse
	if m.Button != engo.MouseButtonLeft && m.Action != engo.Move {
		return
	}
	is.handleMouse(m.Action, m.X, m.Y)
}

// Dropped returns how many inputs the sink refused
func (is *InputSystem) Dropped() int {
	return is.dropped
}

func (is *InputSystem) handleKey(name string, justPressed, justReleased bool) {
	if justPressed {
		is.submit(engine.Input{Kind: engine.InputKeyDown, Key: name})
	}
	if justReleased {
		is.submit(engine.Input{Kind: engine.InputKeyUp, Key: name})
	}
}

func (is *InputSystem) handleMouse(action engo.Action, x, y float32) {
	pos := physics.Vector2D{X: float64(x), Y: float64(y)}

	switch action {
	case engo.Press:
		is.pressed = true
		is.lastPos = pos
		is.submit(engine.Input{Kind: engine.InputPressStart, Pos: pos})
	case engo.Release:
		if !is.pressed {
			return
		}
		is.pressed = false
		is.submit(engine.Input{Kind: engine.InputPressEnd})
	case engo.Move:
		if pos == is.lastPos {
			return
		}
		is.lastPos = pos
		is.submit(engine.Input{Kind: engine.InputPointerMove, Pos: pos})
	}
}

func (is *InputSystem) submit(in engine.Input) {
	if !is.sink.Submit(in) {
		is.dropped++
	}
}
