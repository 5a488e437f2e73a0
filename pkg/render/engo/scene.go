// pkg/render/engo/scene.go
package engo

import (
	"time"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"

	"github.com/opd-ai/go-bounce/pkg/engine"
	"github.com/opd-ai/go-bounce/pkg/event"
	"github.com/opd-ai/go-bounce/pkg/logging"
)

// maxCatchUp bounds the ticks run in one frame after a stall
const maxCatchUp = 5

// ticker is the part of *engine.Session the simulation system drives
type ticker interface {
	Start() engine.State
	Tick() (engine.State, engine.Report)
}

// SimulationSystem ticks the session at the configured rate and draws the
// latest state every frame.
type SimulationSystem struct {
	session  ticker
	renderer *EngoRenderer
	interval float32

	acc   float32
	state engine.State
}

// NewSimulationSystem starts session and returns a system ticking it every
// interval.
func NewSimulationSystem(session ticker, renderer *EngoRenderer, interval time.Duration) *SimulationSystem {
	return &SimulationSystem{
		session:  session,
		renderer: renderer,
		interval: float32(interval.Seconds()),
		state:    session.Start(),
	}
}

// State returns the last state drawn
func (sys *SimulationSystem) State() engine.State {
	return sys.state
}

// Remove satisfies the ecs.System interface
func (sys *SimulationSystem) Remove(basic ecs.BasicEntity) {}

// Update advances the session by whole ticks and renders
func (sys *SimulationSystem) Update(dt float32) {
	sys.advance(dt)
	sys.renderer.SetDelta(dt)
	engine.Render(sys.state, sys.renderer)
}

func (sys *SimulationSystem) advance(dt float32) {
	if sys.state.EndOfGame {
		return
	}
	if sys.interval <= 0 {
		sys.state, _ = sys.session.Tick()
		return
	}

	sys.acc += dt
	steps := 0
	for sys.acc >= sys.interval && steps < maxCatchUp {
		sys.acc -= sys.interval
		sys.state, _ = sys.session.Tick()
		steps++
		if sys.state.EndOfGame {
			sys.acc = 0
			return
		}
	}
	if steps == maxCatchUp {
		sys.acc = 0
	}
}

// GameScene is the engo scene hosting one session
type GameScene struct {
	session *engine.Session
	logger  *logging.Logger
	palette *Palette

	renderer *EngoRenderer
	sim      *SimulationSystem
	input    *InputSystem
	hud      *HUDSystem
	sub      *event.Subscription
}

// NewGameScene creates a scene for session
func NewGameScene(session *engine.Session, logger *logging.Logger) *GameScene {
	if logger == nil {
		logger = logging.NewLogger()
	}
	return &GameScene{
		session: session,
		logger:  logger,
		palette: NewPalette(session.Config),
	}
}

// Type returns the scene name
func (scene *GameScene) Type() string {
	return "GameScene"
}

// Preload registers the HUD font
func (scene *GameScene) Preload() {
	if !scene.session.Config.Client.ShowHUD {
		return
	}
	if err := PreloadFont(); err != nil {
		scene.logger.Error(scene.session.Context(), "HUD font unavailable", err)
	}
}

// Setup builds the systems for the scene
func (scene *GameScene) Setup(u engo.Updater) {
	world, _ := u.(*ecs.World)
	cfg := scene.session.Config

	common.SetBackground(scene.palette.Background)
	SetupInputBindings()

	world.AddSystem(&common.RenderSystem{})

	var sink renderSink
	for _, system := range world.Systems() {
		if rs, ok := system.(*common.RenderSystem); ok {
			sink = rs
		}
	}

	scene.renderer = NewEngoRenderer(sink, scene.palette, cfg.Physics.Radius)
	scene.input = NewInputSystem(scene.session)
	scene.sim = NewSimulationSystem(scene.session, scene.renderer, cfg.TickInterval())

	world.AddSystem(scene.input)
	world.AddSystem(scene.sim)

	if cfg.Client.ShowHUD {
		font, err := NewFont(hudFontSize, scene.palette.Text)
		if err != nil {
			scene.logger.Error(scene.session.Context(), "HUD disabled", err)
		} else {
			scene.hud = NewHUDSystem(scene.sim, font, sink)
			world.AddSystem(scene.hud)
		}
	}

	scene.sub = scene.session.EventBus.Subscribe(event.GameEnded, func(e event.Event) {
		if ge, ok := e.(*event.GameEvent); ok {
			scene.logger.Info(scene.session.Context(), "round over",
				"outcome", string(ge.Outcome),
				"tick", ge.Tick,
			)
		}
	})

	scene.logger.Info(scene.session.Context(), "scene ready",
		"width", cfg.Arena.Width,
		"height", cfg.Arena.Height,
		"hud", scene.hud != nil,
	)
}

// Exit releases the event subscription when the window closes
func (scene *GameScene) Exit() {
	if scene.sub != nil {
		scene.sub.Cancel()
		scene.sub = nil
	}
	st := scene.session.State()
	scene.logger.Info(scene.session.Context(), "scene closed",
		"tick", st.Tick,
		"outcome", string(engine.Outcome(st)),
		"dropped_inputs", scene.droppedInputs(),
	)
}

func (scene *GameScene) droppedInputs() int {
	if scene.input == nil {
		return 0
	}
	return scene.input.Dropped()
}
