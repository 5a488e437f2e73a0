// cmd/headless/main.go
package main

import (
	"context"
	"errors"
	"flag"
	"math/rand/v2"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/opd-ai/go-bounce/pkg/config"
	"github.com/opd-ai/go-bounce/pkg/engine"
	"github.com/opd-ai/go-bounce/pkg/entity"
	"github.com/opd-ai/go-bounce/pkg/event"
	"github.com/opd-ai/go-bounce/pkg/logging"
	"github.com/opd-ai/go-bounce/pkg/render"
)

const demoPlan = "30:right;90:keyup;120:press:400,300;150:release;240:left;300:keyup"

func main() {
	// .env must be read before the logger picks up BOUNCE_LOG_* settings.
	dotEnvLoaded, dotEnvErr := config.LoadDotEnv("")
	logger := logging.NewLogger()
	ctx := context.Background()

	configPath := flag.String("config", "config.json", "Path to configuration file")
	createDefault := flag.Bool("default", false, "Create default configuration file")
	seed := flag.Uint64("seed", 1, "Spawn seed")
	maxTicks := flag.Uint64("ticks", 3600, "Stop after this many ticks (0 runs until the game ends)")
	planFlag := flag.String("plan", demoPlan, "Scripted inputs, tick:verb[:x,y] separated by ';'")
	rendererName := flag.String("renderer", "null", "Renderer type: 'null' or 'terminal'")
	cols := flag.Int("cols", 80, "Terminal grid width")
	rows := flag.Int("rows", 24, "Terminal grid height")
	realtime := flag.Bool("realtime", false, "Tick at the configured rate instead of as fast as possible")
	flag.Parse()

	if *createDefault {
		if err := config.SaveConfig(config.DefaultConfig(), *configPath); err != nil {
			logger.Error(ctx, "Failed to create default configuration", err,
				"config_path", *configPath,
			)
			os.Exit(1)
		}
		logger.Info(ctx, "Created default configuration file",
			"config_path", *configPath,
		)
		return
	}

	if dotEnvErr != nil {
		logger.Error(ctx, "Failed to read environment file", dotEnvErr)
		os.Exit(1)
	}
	if dotEnvLoaded {
		logger.Info(ctx, "Loaded environment file", "path", ".env")
	}

	gameConfig, err := loadGameConfig(ctx, logger, *configPath)
	if err != nil {
		logger.Error(ctx, "Failed to load configuration", err, "config_path", *configPath)
		os.Exit(1)
	}

	plan, err := ParsePlan(*planFlag)
	if err != nil {
		logger.Error(ctx, "Invalid input plan", err)
		os.Exit(1)
	}

	clock := engine.NewManualClock(time.Unix(0, 0))
	sessionOpts := []engine.Option{
		engine.WithLogger(logger),
		engine.WithRand(rand.New(rand.NewPCG(*seed, *seed))),
	}
	if !*realtime {
		sessionOpts = append(sessionOpts, engine.WithClock(clock))
	}

	session, err := engine.NewSession(gameConfig, sessionOpts...)
	if err != nil {
		logger.Error(ctx, "Failed to create session", err)
		os.Exit(1)
	}
	ctx = session.Context()

	renderer := newRenderer(ctx, logger, *rendererName, *cols, *rows, session.State().Arena, *realtime)

	var collisions, hits int
	session.EventBus.Subscribe(event.BallCollision, func(event.Event) { collisions++ })
	session.EventBus.Subscribe(event.PlayerHit, func(event.Event) { hits++ })

	runCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Info(ctx, "Starting headless session",
		"seed", *seed,
		"balls", gameConfig.Game.Balls,
		"planned_ticks", len(plan.Ticks()),
		"renderer", *rendererName,
		"realtime", *realtime,
	)

	var final engine.State
	if *realtime {
		final, err = runRealtime(runCtx, session, plan, renderer, *maxTicks)
	} else {
		final, err = runScripted(runCtx, session, clock, plan, renderer, *maxTicks)
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		logger.Error(ctx, "Session failed", err)
	}

	logger.Info(ctx, "Session finished",
		"tick", final.Tick,
		"outcome", string(engine.Outcome(final)),
		"player_life", final.Player.Life,
		"balls", len(final.Balls),
		"collisions", collisions,
		"player_hits", hits,
	)
	if err := logger.Close(); err != nil {
		os.Exit(1)
	}
}

// runScripted ticks as fast as possible, moving the manual clock one tick
// interval per step so press gestures are timed in game time.
func runScripted(ctx context.Context, session *engine.Session, clock *engine.ManualClock, plan Plan, r entity.Renderer, maxTicks uint64) (engine.State, error) {
	interval := session.Config.TickInterval()
	st := session.Start()
	for !st.EndOfGame {
		if maxTicks > 0 && st.Tick >= maxTicks {
			break
		}
		if err := ctx.Err(); err != nil {
			return st, err
		}
		plan.Submit(st.Tick, session)
		clock.Advance(interval)
		st, _ = session.Tick()
		engine.Render(st, r)
	}
	return st, nil
}

// runRealtime drives the session with its own ticker and feeds the plan from
// the frame callback.
func runRealtime(ctx context.Context, session *engine.Session, plan Plan, r entity.Renderer, maxTicks uint64) (engine.State, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	plan.Submit(0, session)
	st, err := session.Run(ctx, session.Config.TickInterval(), func(st engine.State) {
		engine.Render(st, r)
		if maxTicks > 0 && st.Tick >= maxTicks {
			cancel()
			return
		}
		plan.Submit(st.Tick, session)
	})
	if maxTicks > 0 && st.Tick >= maxTicks && errors.Is(err, context.Canceled) {
		return st, nil
	}
	return st, err
}

func newRenderer(ctx context.Context, logger *logging.Logger, name string, cols, rows int, arena engine.Arena, clearScreen bool) entity.Renderer {
	switch name {
	case "terminal":
		tr := render.NewTerminalRenderer(os.Stdout, cols, rows, arena.Bounds())
		tr.SetClearScreen(clearScreen)
		return tr
	case "null":
		fallthrough
	default:
		return render.NewNullRenderer(ctx, logger)
	}
}

// loadGameConfig reads path, falling back to defaults when it does not
// exist, and applies environment overrides.
func loadGameConfig(ctx context.Context, logger *logging.Logger, path string) (*config.GameConfig, error) {
	var gameConfig *config.GameConfig

	if _, err := os.Stat(path); os.IsNotExist(err) {
		logger.Info(ctx, "Configuration file not found, using default configuration",
			"config_path", path,
		)
		gameConfig = config.DefaultConfig()
	} else {
		gameConfig, err = config.LoadConfig(path)
		if err != nil {
			return nil, err
		}
	}

	if err := config.ApplyEnvironmentOverrides(gameConfig); err != nil {
		return nil, logging.WrapError(err, "environment overrides")
	}
	return gameConfig, nil
}
